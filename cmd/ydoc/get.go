package main

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/signadot/ydoc-format/go-ydoc/doc"

	"github.com/scott-cotton/cli"
)

func get(cfg *GetConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Get.Parse(cc, args)
	if err != nil {
		cfg.Get.Usage(cc, err)
		return cli.ExitCodeErr(1)
	}
	if len(args) == 0 {
		return fmt.Errorf("%w: get requires one argument, a dotted path", cli.ErrUsage)
	}
	path := args[0]
	for _, arg := range orStdin(args[1:]) {
		if err := getArg(cfg, cc.Out, arg, path); err != nil {
			return fmt.Errorf("error querying %s with %s: %w", arg, path, err)
		}
	}
	return nil
}

func getArg(cfg *GetConfig, w io.Writer, arg, path string) error {
	t, err := loadArg(cfg.MainConfig, arg)
	if err != nil {
		return err
	}
	if err := t.ResolveRefs(); err != nil {
		return err
	}
	r := lookup(doc.NewRootReader(t).Reader, path)
	if !r.IsValid() {
		// nothing found, nothing printed
		return nil
	}
	s, err := r.Emit()
	if err != nil {
		return err
	}
	_, err = io.WriteString(w, s)
	return err
}

// lookup walks a dotted path like "a.b.2.c"; numeric segments index
// into sequences.
func lookup(r doc.Reader, path string) doc.Reader {
	for _, seg := range strings.Split(path, ".") {
		if seg == "" {
			continue
		}
		if i, err := strconv.Atoi(seg); err == nil && !r.IsMap() {
			r = r.At(i)
			continue
		}
		r = r.Child(seg)
	}
	return r
}
