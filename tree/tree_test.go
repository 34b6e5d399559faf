package tree

import "testing"

func TestAppendChildLinks(t *testing.T) {
	tr := New()
	root := tr.Root()
	tr.AddFlags(root, Seq)

	a := tr.AppendChild(root)
	b := tr.AppendChild(root)
	c := tr.AppendChild(root)

	if got := tr.FirstChild(root); got != a {
		t.Errorf("FirstChild = %d, want %d", got, a)
	}
	if got := tr.LastChild(root); got != c {
		t.Errorf("LastChild = %d, want %d", got, c)
	}
	if got := tr.NextSibling(a); got != b {
		t.Errorf("NextSibling(a) = %d, want %d", got, b)
	}
	if got := tr.PrevSibling(c); got != b {
		t.Errorf("PrevSibling(c) = %d, want %d", got, b)
	}
	if got := tr.NumChildren(root); got != 3 {
		t.Errorf("NumChildren = %d, want 3", got)
	}
	if got := tr.Child(root, 1); got != b {
		t.Errorf("Child(root, 1) = %d, want %d", got, b)
	}
	if got := tr.Child(root, 3); got != None {
		t.Errorf("Child(root, 3) = %d, want None", got)
	}
	for _, id := range []ID{a, b, c} {
		if got := tr.Parent(id); got != root {
			t.Errorf("Parent(%d) = %d, want root", id, got)
		}
	}
}

func TestFindChild(t *testing.T) {
	tr := New()
	root := tr.Root()
	tr.AddFlags(root, Map)

	a := tr.AppendChild(root)
	tr.SetKey(a, "a")
	tr.SetVal(a, "1")
	b := tr.AppendChild(root)
	tr.SetKey(b, "b")
	tr.SetVal(b, "2")

	if got := tr.FindChild(root, "b"); got != b {
		t.Errorf("FindChild(b) = %d, want %d", got, b)
	}
	if got := tr.FindChild(root, "z"); got != None {
		t.Errorf("FindChild(z) = %d, want None", got)
	}
	if got := tr.FindChild(a, "b"); got != None {
		t.Errorf("FindChild on scalar = %d, want None", got)
	}
}

func TestNavigationFromNone(t *testing.T) {
	tr := New()
	if tr.Parent(None) != None || tr.FirstChild(None) != None ||
		tr.NextSibling(None) != None || tr.Key(None) != "" || tr.Val(None) != "" {
		t.Error("navigation from None should stay at None")
	}
	if _, ok := tr.Pos(None); ok {
		t.Error("Pos(None) should report absent")
	}
}

func TestDuplicateIndependence(t *testing.T) {
	tr := New()
	root := tr.Root()
	tr.AddFlags(root, Seq)

	src := tr.AppendChild(root)
	tr.AddFlags(src, Map)
	kv := tr.AppendChild(src)
	tr.SetKey(kv, "k")
	tr.SetVal(kv, "v")

	cp := tr.Duplicate(tr, src, root)
	if !tr.IsMap(cp) {
		t.Fatal("copy is not a map")
	}
	ck := tr.FindChild(cp, "k")
	if ck == None {
		t.Fatal("copy has no child k")
	}
	if got := tr.Val(ck); got != "v" {
		t.Fatalf("copy val = %q, want %q", got, "v")
	}

	// mutating the copy must not affect the source
	tr.SetVal(ck, "changed")
	if got := tr.Val(kv); got != "v" {
		t.Errorf("source val = %q after mutating copy, want %q", got, "v")
	}
}

func TestDuplicateChildrenAcrossTrees(t *testing.T) {
	src := New()
	tr := New()
	sroot := src.Root()
	src.AddFlags(sroot, Seq)
	for _, v := range []string{"x", "y"} {
		c := src.AppendChild(sroot)
		src.SetVal(c, v)
	}

	droot := tr.Root()
	tr.AddFlags(droot, Seq)
	tr.DuplicateChildren(src, sroot, droot)

	if got := tr.NumChildren(droot); got != 2 {
		t.Fatalf("NumChildren = %d, want 2", got)
	}
	if got := tr.Val(tr.Child(droot, 1)); got != "y" {
		t.Errorf("second child = %q, want %q", got, "y")
	}
}

func TestSaveStr(t *testing.T) {
	tr := New()
	buf := []byte("ephemeral")
	s := tr.SaveStr(string(buf))
	buf[0] = 'X'
	if s != "ephemeral" {
		t.Errorf("SaveStr copy = %q, want %q", s, "ephemeral")
	}
}

func TestPosRoundTrip(t *testing.T) {
	tr := New()
	id := tr.AppendChild(tr.Root())
	if _, ok := tr.Pos(id); ok {
		t.Fatal("fresh node should have no position")
	}
	tr.SetPos(id, Pos{Offset: 10, Line: 4, Col: 2})
	p, ok := tr.Pos(id)
	if !ok {
		t.Fatal("position not recorded")
	}
	if p.Line != 4 || p.Col != 2 || p.Offset != 10 {
		t.Errorf("Pos = %+v", p)
	}
}
