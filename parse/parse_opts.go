package parse

type parseOpts struct {
	source     string
	positions  bool
	headerOnly bool
}

type ParseOption func(*parseOpts)

// Source names the document's origin (usually a file path) so that
// positions can be surfaced as name:line:col later.
func Source(name string) ParseOption {
	return func(po *parseOpts) { po.source = name }
}

// Positions controls whether node source positions are recorded in
// the tree. On by default; parses of synthesized strings typically
// turn it off.
func Positions(v bool) ParseOption {
	return func(po *parseOpts) { po.positions = v }
}

// HeaderOnly truncates the input at the first document separator, so
// only the leading document header is parsed. Used to peek at
// document metadata without paying for the whole document.
func HeaderOnly() ParseOption {
	return func(po *parseOpts) { po.headerOnly = true }
}
