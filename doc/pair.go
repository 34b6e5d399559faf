package doc

import "fmt"

// Pair round-trips as a two-element sequence.
type Pair[F, S any] struct {
	First  F
	Second S
}

func (p *Pair[F, S]) UnmarshalYDoc(r Reader) error {
	if r.ChildCount() != 2 {
		return r.deserializeErr(fmt.Sprintf("doc.Pair[%s, %s]",
			typeName[F](), typeName[S]()),
			fmt.Errorf("expected 2 elements, got %d", r.ChildCount()))
	}
	first, err := Read[F](r.At(0))
	if err != nil {
		return err
	}
	second, err := Read[S](r.At(1))
	if err != nil {
		return err
	}
	p.First, p.Second = first, second
	return nil
}

func (p Pair[F, S]) MarshalYDoc(w Writer) error {
	w.SetAsSeq().SetFlowStyle()
	if _, err := Write(w, p.First); err != nil {
		return err
	}
	_, err := Write(w, p.Second)
	return err
}
