package libdiff

import (
	"strings"
	"testing"

	"github.com/signadot/ydoc-format/go-ydoc/parse"
)

func TestDiffResolved(t *testing.T) {
	raw, err := parse.Parse([]byte("a: &x 1\nb: *x\n"))
	if err != nil {
		t.Fatal(err)
	}
	resolved, err := parse.Parse([]byte("a: &x 1\nb: *x\n"))
	if err != nil {
		t.Fatal(err)
	}
	if err := resolved.ResolveRefs(); err != nil {
		t.Fatal(err)
	}
	eq, err := Equal(raw, resolved)
	if err != nil {
		t.Fatal(err)
	}
	if eq {
		t.Fatal("resolution changed nothing")
	}
	d, err := Diff(raw, resolved)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(d, "*x") || !strings.Contains(d, "1") {
		t.Errorf("diff missing expected fragments: %q", d)
	}
}

func TestEqualSelf(t *testing.T) {
	a, err := parse.Parse([]byte("k: v\n"))
	if err != nil {
		t.Fatal(err)
	}
	eq, err := Equal(a, a)
	if err != nil {
		t.Fatal(err)
	}
	if !eq {
		t.Error("tree not equal to itself")
	}
}
