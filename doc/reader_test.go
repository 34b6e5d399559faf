package doc

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
)

const sampleDoc = `name: demo
limits:
  cpu: 4
  mem: 2048
tags:
  - a
  - b
`

func TestChild(t *testing.T) {
	r, err := ParseString(sampleDoc, "sample")
	if err != nil {
		t.Fatal(err)
	}
	if got := r.Child("name").Val(); got != "demo" {
		t.Errorf("got %q, want %q", got, "demo")
	}
	if got := r.Child("limits").Child("mem").Val(); got != "2048" {
		t.Errorf("got %q, want %q", got, "2048")
	}
	if r.Child("nope").IsValid() {
		t.Error("missing key yielded a valid reader")
	}
}

func TestInvalidChain(t *testing.T) {
	r, err := ParseString(sampleDoc, "sample")
	if err != nil {
		t.Fatal(err)
	}
	c := r.Child("nope").Child("deeper").At(3)
	if c.IsValid() {
		t.Error("chained lookup on invalid reader yielded a valid reader")
	}
	if c.ChildCount() != 0 || c.Val() != "" || c.Key() != "" {
		t.Error("invalid reader leaked data")
	}
	if _, ok := c.Location(); ok {
		t.Error("invalid reader reported a location")
	}
}

func TestWithIndex(t *testing.T) {
	r, err := ParseString(sampleDoc, "sample")
	if err != nil {
		t.Fatal(err)
	}
	limits := r.Child("limits")
	indexed := limits.WithIndex()
	for _, key := range []string{"cpu", "mem", "missing"} {
		want := limits.Child(key)
		got := indexed.Child(key)
		if got.IsValid() != want.IsValid() || got.Val() != want.Val() {
			t.Errorf("indexed lookup of %q disagrees with scan", key)
		}
	}
	if got, want := indexed.ChildCount(), limits.ChildCount(); got != want {
		t.Errorf("ChildCount = %d, want %d", got, want)
	}
	// indexing a scalar or sequence is a no-op
	if r.Child("name").WithIndex().Val() != "demo" {
		t.Error("WithIndex mangled a scalar reader")
	}
}

func TestChildren(t *testing.T) {
	r, err := ParseString(sampleDoc, "sample")
	if err != nil {
		t.Fatal(err)
	}
	tags := r.Child("tags")
	if !tags.IsSeq() {
		t.Fatal("tags is not a sequence")
	}
	var got []string
	for _, c := range tags.Children() {
		got = append(got, c.Val())
	}
	if d := cmp.Diff([]string{"a", "b"}, got); d != "" {
		t.Errorf("children mismatch (-want +got):\n%s", d)
	}
	if tags.At(1).Val() != "b" || tags.At(2).IsValid() {
		t.Error("At misbehaved")
	}
}

func TestLocation(t *testing.T) {
	r, err := Parse([]byte("a: 1\nb: 2\n"), "test.yml")
	if err != nil {
		t.Fatal(err)
	}
	loc, ok := r.Child("b").Location()
	if !ok {
		t.Fatal("no location")
	}
	want := Location{Name: "test.yml", Line: 2, Col: 1}
	if loc != want {
		t.Errorf("got %v, want %v", loc, want)
	}
	if loc.String() != "test.yml:2:1" {
		t.Errorf("String() = %q", loc.String())
	}
}

func TestParseStringOmitsLocations(t *testing.T) {
	r, err := ParseString("a: 1\n", "inline")
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := r.Child("a").Location(); ok {
		t.Error("ParseString retained locations")
	}
}

func TestHasNullVal(t *testing.T) {
	r, err := ParseString("a:\nb: \"\"\nc: null\nd: x\n", "nulls")
	if err != nil {
		t.Fatal(err)
	}
	for _, tc := range []struct {
		key  string
		want bool
	}{
		{"a", true},
		{"b", false}, // quoted empty string is not null
		{"c", true},
		{"d", false},
	} {
		if got := r.Child(tc.key).HasNullVal(); got != tc.want {
			t.Errorf("HasNullVal(%q) = %v, want %v", tc.key, got, tc.want)
		}
	}
}

func TestResolvedOnParse(t *testing.T) {
	r, err := ParseString("x: &a 5\ny: *a\n", "refs")
	if err != nil {
		t.Fatal(err)
	}
	if got := r.Child("y").Val(); got != "5" {
		t.Errorf("alias not resolved: got %q", got)
	}
}

func TestEmit(t *testing.T) {
	r, err := ParseString("m:\n  a: 1\n  b: 2\n", "emit")
	if err != nil {
		t.Fatal(err)
	}
	got, err := r.Child("m").Emit()
	if err != nil {
		t.Fatal(err)
	}
	if want := "m:\n  a: 1\n  b: 2\n"; got != want {
		t.Errorf("Emit = %q, want %q", got, want)
	}
	got, err = r.Child("m").EmitDescendants()
	if err != nil {
		t.Fatal(err)
	}
	if want := "a: 1\nb: 2\n"; got != want {
		t.Errorf("EmitDescendants = %q, want %q", got, want)
	}
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "doc.yml")
	if err := os.WriteFile(path, []byte("a: 1\n---\nb: 2\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	r, err := LoadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if r.Child("a").Val() != "1" {
		t.Error("LoadFile lost data")
	}
	hdr, err := LoadFileHeader(path)
	if err != nil {
		t.Fatal(err)
	}
	if !hdr.Child("a").IsValid() || hdr.Child("b").IsValid() {
		t.Error("LoadFileHeader read past the document separator")
	}
	if _, err := LoadFile(filepath.Join(t.TempDir(), "missing.yml")); err == nil {
		t.Error("no error for missing file")
	}
}
