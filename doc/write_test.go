package doc

import (
	"bytes"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func emit(t *testing.T, w Writer) string {
	t.Helper()
	s, err := w.Emit()
	if err != nil {
		t.Fatal(err)
	}
	return s
}

func TestWriteScalars(t *testing.T) {
	w := NewRootWriter()
	if _, err := WriteKey(w.Writer, "b", true); err != nil {
		t.Fatal(err)
	}
	if _, err := WriteKey(w.Writer, "n", 42); err != nil {
		t.Fatal(err)
	}
	if _, err := WriteKey(w.Writer, "s", "hi"); err != nil {
		t.Fatal(err)
	}
	if _, err := WriteKey(w.Writer, "f", 1.5); err != nil {
		t.Fatal(err)
	}
	want := "b: true\nn: 42\ns: hi\nf: 1.5\n"
	if got := emit(t, w.Writer); got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestWriteBoolWords(t *testing.T) {
	// booleans always render as words, never as 0/1
	w := NewRootWriter()
	WriteKey(w.Writer, "on", true)
	WriteKey(w.Writer, "off", false)
	if got, want := emit(t, w.Writer), "on: true\noff: false\n"; got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestWritePair(t *testing.T) {
	w := NewRootWriter()
	if _, err := WriteKey(w.Writer, "p", Pair[int, int]{3, 4}); err != nil {
		t.Fatal(err)
	}
	if got, want := emit(t, w.Writer), "p: [3, 4]\n"; got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestWriteSeq(t *testing.T) {
	w := NewRootWriter()
	if err := WriteSeq(w.Writer, "xs", []int{1, 2}); err != nil {
		t.Fatal(err)
	}
	if got, want := emit(t, w.Writer), "xs:\n  - 1\n  - 2\n"; got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestWriteSeqEmptyOmitted(t *testing.T) {
	w := NewRootWriter()
	if _, err := WriteKey(w.Writer, "kept", 1); err != nil {
		t.Fatal(err)
	}
	if err := WriteSeq(w.Writer, "xs", []string(nil)); err != nil {
		t.Fatal(err)
	}
	if got, want := emit(t, w.Writer), "kept: 1\n"; got != want {
		t.Errorf("got %q, want %q", got, want)
	}
	r, err := ParseString(emit(t, w.Writer), "roundtrip")
	if err != nil {
		t.Fatal(err)
	}
	if r.Child("xs").IsValid() {
		t.Error("empty sequence produced a node")
	}
}

func TestWriteMapSorted(t *testing.T) {
	w := NewRootWriter()
	m := map[string]int{"c": 3, "a": 1, "b": 2}
	if _, err := WriteKey(w.Writer, "m", m); err != nil {
		t.Fatal(err)
	}
	if got, want := emit(t, w.Writer), "m:\n  a: 1\n  b: 2\n  c: 3\n"; got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestSetValueFlow(t *testing.T) {
	w := NewRootWriter()
	c := w.AppendKey("s").SetFlowStyle()
	if err := SetValue(c, []int{1, 2}); err != nil {
		t.Fatal(err)
	}
	if got, want := emit(t, w.Writer), "s: [1, 2]\n"; got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestQuotedFlag(t *testing.T) {
	w := NewRootWriter()
	c := w.AppendKey("k").SetAsQuoted()
	if err := SetValue(c, "v"); err != nil {
		t.Fatal(err)
	}
	if got, want := emit(t, w.Writer), "k: \"v\"\n"; got != want {
		t.Errorf("got %q, want %q", got, want)
	}
	c.UnsetQuoted()
	if got, want := emit(t, w.Writer), "k: v\n"; got != want {
		t.Errorf("after unset: got %q, want %q", got, want)
	}
}

func TestStyleFlags(t *testing.T) {
	w := NewRootWriter()
	c := w.AppendKey("m").SetFlowStyle()
	WriteKey(c, "a", 1)
	if got, want := emit(t, w.Writer), "m: {a: 1}\n"; got != want {
		t.Errorf("flow: got %q, want %q", got, want)
	}
	c.UnsetFlowStyle()
	if got, want := emit(t, w.Writer), "m:\n  a: 1\n"; got != want {
		t.Errorf("block: got %q, want %q", got, want)
	}
}

func TestWriteNilPointer(t *testing.T) {
	w := NewRootWriter()
	if _, err := WriteKey[*int](w.Writer, "p", nil); err != nil {
		t.Fatal(err)
	}
	out := emit(t, w.Writer)
	if got, want := out, "p:\n"; got != want {
		t.Errorf("got %q, want %q", got, want)
	}
	r, err := ParseString(out, "roundtrip")
	if err != nil {
		t.Fatal(err)
	}
	if !r.Child("p").HasNullVal() {
		t.Error("nil pointer did not round-trip to null")
	}
}

func TestWriteMarshaler(t *testing.T) {
	w := NewRootWriter()
	if _, err := WriteKey(w.Writer, "ep", endpoint{Host: "db", Port: 5432}); err != nil {
		t.Fatal(err)
	}
	if got, want := emit(t, w.Writer), "ep:\n  host: db\n  port: 5432\n"; got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestWriteRegisteredScalar(t *testing.T) {
	w := NewRootWriter()
	if _, err := WriteKey(w.Writer, "level", sevError); err != nil {
		t.Fatal(err)
	}
	if got, want := emit(t, w.Writer), "level: error\n"; got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestWriteNoConversion(t *testing.T) {
	w := NewRootWriter()
	_, err := WriteKey(w.Writer, "ch", make(chan int))
	if !errors.Is(err, ErrNoConversion) {
		t.Errorf("got %v", err)
	}
}

func TestSetBase64RoundTrip(t *testing.T) {
	w := NewRootWriter()
	payload := []byte{0x00, 0x01, 0xfe, 0xff}
	if err := w.Writer.WriteBase64("d", payload); err != nil {
		t.Fatal(err)
	}
	r, err := ParseString(emit(t, w.Writer), "roundtrip")
	if err != nil {
		t.Fatal(err)
	}
	got, err := r.Child("d").ReadBase64()
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(got, payload) {
		t.Errorf("got %x, want %x", got, payload)
	}
}

func TestAsReader(t *testing.T) {
	w := NewRootWriter()
	WriteKey(w.Writer, "a", 7)
	r := w.Writer.AsReader()
	if got, err := Read[int](r.Child("a")); err != nil || got != 7 {
		t.Errorf("got %d, %v", got, err)
	}
}

func TestRoundTrip(t *testing.T) {
	type payload struct {
		hosts map[string][]int
		pairs []Pair[string, int]
	}
	in := payload{
		hosts: map[string][]int{"a": {1, 2}, "b": {3}},
		pairs: []Pair[string, int]{{"x", 1}, {"y", 2}},
	}
	w := NewRootWriter()
	if _, err := WriteKey(w.Writer, "hosts", in.hosts); err != nil {
		t.Fatal(err)
	}
	if _, err := WriteKey(w.Writer, "pairs", in.pairs); err != nil {
		t.Fatal(err)
	}
	r, err := ParseString(emit(t, w.Writer), "roundtrip")
	if err != nil {
		t.Fatal(err)
	}
	var out payload
	if _, err := TryRead(r.Reader, "hosts", &out.hosts); err != nil {
		t.Fatal(err)
	}
	if _, err := TryRead(r.Reader, "pairs", &out.pairs); err != nil {
		t.Fatal(err)
	}
	if d := cmp.Diff(in.hosts, out.hosts); d != "" {
		t.Errorf("hosts (-want +got):\n%s", d)
	}
	if d := cmp.Diff(in.pairs, out.pairs); d != "" {
		t.Errorf("pairs (-want +got):\n%s", d)
	}
}

func TestWriteInvalidWriter(t *testing.T) {
	var w Writer
	if _, err := WriteKey(w, "k", 1); !errors.Is(err, ErrInvalidNode) {
		t.Errorf("got %v", err)
	}
	if err := SetValue(w, 1); !errors.Is(err, ErrInvalidNode) {
		t.Errorf("got %v", err)
	}
}
