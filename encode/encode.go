package encode

import (
	"bytes"
	"io"
	"strconv"
	"strings"

	"github.com/signadot/ydoc-format/go-ydoc/tree"
)

// Encode renders the whole tree to w.
func Encode(t *tree.Tree, w io.Writer, opts ...EncodeOption) error {
	return EncodeNode(t, t.Root(), w, opts...)
}

// EncodeNode renders the subtree rooted at id to w. A keyed node is
// rendered as a single map entry.
func EncodeNode(t *tree.Tree, id tree.ID, w io.Writer, opts ...EncodeOption) error {
	es := &EncState{indent: 2}
	for _, opt := range opts {
		opt(es)
	}
	if es.color == nil {
		es.color = func(_ ColorAttr, s string) string { return s }
	}
	e := &encoder{t: t, w: w, es: es}
	f := t.Flags(id)
	if f == 0 && t.NumChildren(id) == 0 {
		// empty document
		return nil
	}
	if f.HasKey() {
		return e.entry(id, es.depth)
	}
	if s, ok := e.inlineValue(id); ok {
		return e.write(s + "\n")
	}
	return e.blockChildren(id, es.depth)
}

// String renders the subtree rooted at id and returns it as a string.
func String(t *tree.Tree, id tree.ID, opts ...EncodeOption) (string, error) {
	buf := bytes.NewBuffer(nil)
	if err := EncodeNode(t, id, buf, opts...); err != nil {
		return "", err
	}
	return buf.String(), nil
}

type encoder struct {
	t  *tree.Tree
	w  io.Writer
	es *EncState
}

func (e *encoder) write(s string) error {
	_, err := io.WriteString(e.w, s)
	return err
}

func (e *encoder) pad(depth int) string {
	return strings.Repeat(" ", depth*e.es.indent)
}

// blockChildren renders a container's children in block style.
func (e *encoder) blockChildren(id tree.ID, depth int) error {
	if e.t.IsMap(id) {
		for c := e.t.FirstChild(id); c != tree.None; c = e.t.NextSibling(c) {
			if err := e.entry(c, depth); err != nil {
				return err
			}
		}
		return nil
	}
	for c := e.t.FirstChild(id); c != tree.None; c = e.t.NextSibling(c) {
		if s, ok := e.inlineValue(c); ok {
			if err := e.write(e.pad(depth) + "- " + s + "\n"); err != nil {
				return err
			}
			continue
		}
		head := "-"
		if m := e.markup(c); m != "" {
			head += " " + m
		}
		if err := e.write(e.pad(depth) + head + "\n"); err != nil {
			return err
		}
		if err := e.blockChildren(c, depth+1); err != nil {
			return err
		}
	}
	return nil
}

// entry renders one keyed map child in block style.
func (e *encoder) entry(id tree.ID, depth int) error {
	key := e.es.color(KeyColor, maybeQuote(e.t.Key(id), false))
	sep := e.es.color(SepColor, ":")
	if s, ok := e.inlineValue(id); ok {
		return e.write(e.pad(depth) + key + sep + " " + s + "\n")
	}
	head := key + sep
	if m := e.markup(id); m != "" {
		head += " " + m
	}
	if err := e.write(e.pad(depth) + head + "\n"); err != nil {
		return err
	}
	return e.blockChildren(id, depth+1)
}

// inlineValue renders id on a single line when possible: scalars,
// references, empty containers, and flow-style containers.
func (e *encoder) inlineValue(id tree.ID) (string, bool) {
	f := e.t.Flags(id)
	if f.IsRef() {
		return e.markupRef(id), true
	}
	if f.HasVal() {
		return e.scalarText(id), true
	}
	if !f.IsMap() && !f.IsSeq() {
		return "", false
	}
	if e.t.NumChildren(id) == 0 {
		empty := "[]"
		if f.IsMap() {
			empty = "{}"
		}
		return e.withMarkup(id, empty), true
	}
	if f&tree.Flow != 0 {
		return e.flowValue(id), true
	}
	return "", false
}

// flowValue renders a container inline; nested containers are forced
// to flow style regardless of their own flags.
func (e *encoder) flowValue(id tree.ID) string {
	parts := []string{}
	if e.t.IsMap(id) {
		for c := e.t.FirstChild(id); c != tree.None; c = e.t.NextSibling(c) {
			key := e.es.color(KeyColor, maybeQuote(e.t.Key(c), false))
			sep := e.es.color(SepColor, ":")
			parts = append(parts, key+sep+" "+e.flowItem(c))
		}
		return e.withMarkup(id, "{"+strings.Join(parts, ", ")+"}")
	}
	for c := e.t.FirstChild(id); c != tree.None; c = e.t.NextSibling(c) {
		parts = append(parts, e.flowItem(c))
	}
	return e.withMarkup(id, "["+strings.Join(parts, ", ")+"]")
}

func (e *encoder) flowItem(id tree.ID) string {
	f := e.t.Flags(id)
	if f.IsRef() {
		return e.markupRef(id)
	}
	if f.HasVal() {
		return e.scalarText(id)
	}
	return e.flowValue(id)
}

func (e *encoder) scalarText(id tree.ID) string {
	val := e.t.Val(id)
	// a plain empty value is a null and must re-parse as one
	if val == "" && e.t.Flags(id)&tree.Quoted == 0 {
		return e.withMarkup(id, e.es.color(ValueColor, "~"))
	}
	v := maybeQuote(val, e.t.Flags(id)&tree.Quoted != 0)
	return e.withMarkup(id, e.es.color(ValueColor, v))
}

// markup renders the "&anchor !tag" prefix of a node, or "".
func (e *encoder) markup(id tree.ID) string {
	parts := []string{}
	if e.t.HasAnchor(id) {
		parts = append(parts, e.es.color(AnchorColor, "&"+e.t.AnchorName(id)))
	}
	if tag := e.t.Tag(id); tag != "" {
		parts = append(parts, e.es.color(TagColor, tag))
	}
	return strings.Join(parts, " ")
}

func (e *encoder) withMarkup(id tree.ID, s string) string {
	if m := e.markup(id); m != "" {
		return m + " " + s
	}
	return s
}

func (e *encoder) markupRef(id tree.ID) string {
	ref := e.es.color(RefColor, "*"+e.t.RefName(id))
	if e.t.HasAnchor(id) {
		return e.es.color(AnchorColor, "&"+e.t.AnchorName(id)) + " " + ref
	}
	return ref
}

func maybeQuote(s string, forced bool) string {
	if forced || needsQuote(s) {
		return strconv.Quote(s)
	}
	return s
}

// needsQuote over-approximates: quoting a plain-safe scalar is always
// legal, failing to quote an unsafe one is not.
func needsQuote(s string) bool {
	if s == "" || s == "~" {
		return true
	}
	if strings.TrimSpace(s) != s {
		return true
	}
	if strings.ContainsAny(s, "\n\t\"'\\#:{}[],&*!|>%@`") {
		return true
	}
	switch s[0] {
	case '-', '?':
		// "-3" is a safe plain scalar, "- x" and bare "-" are not
		if len(s) == 1 || s[1] == ' ' {
			return true
		}
	}
	return false
}
