package debug

import (
	"os"
	"strconv"
)

type debug struct {
	Parse   bool
	Resolve bool
	Encode  bool
}

var d *debug

func init() {
	d = &debug{}
	d.Parse = boolEnv("YDOC_DEBUG_PARSE")
	d.Resolve = boolEnv("YDOC_DEBUG_RESOLVE")
	d.Encode = boolEnv("YDOC_DEBUG_ENCODE")
}

func boolEnv(v string) bool {
	x := os.Getenv(v)
	if x == "" {
		return false
	}
	b, _ := strconv.ParseBool(x)
	return b
}

func Parse() bool {
	return d.Parse
}
func Resolve() bool {
	return d.Resolve
}
func Encode() bool {
	return d.Encode
}
