package debug

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"

	"github.com/signadot/ydoc-format/go-ydoc/encode"
	"github.com/signadot/ydoc-format/go-ydoc/tree"
)

// Doc makes a tree render as document text under %s.
type Doc struct{ *tree.Tree }

func (y Doc) String() string {
	buf := bytes.NewBuffer(nil)
	if err := encode.Encode(y.Tree, buf); err != nil {
		return fmt.Sprintf("[raw tree] %v", y.Tree)
	}
	return buf.String()
}

func Logf(msg string, args ...any) {
	for i := range args {
		a := args[i]
		switch x := a.(type) {
		case map[string]any, []any, json.Number:
			d, err := json.MarshalIndent(a, "   |", "  ")
			if err != nil {
				args[i] = fmt.Sprintf("%v", a)
				continue
			}
			args[i] = string(d)
		case *tree.Tree:
			buf := bytes.NewBuffer(nil)
			if err := encode.Encode(x, buf); err != nil {
				args[i] = fmt.Sprintf("[raw tree] %v", x)
				continue
			}
			args[i] = buf.String()
		case bool, string, float64, int:

		default:
		}
	}
	fmt.Fprintf(os.Stderr, msg, args...)
}
