package main

import (
	"fmt"
	"io"

	"github.com/signadot/ydoc-format/go-ydoc/debug"
	"github.com/signadot/ydoc-format/go-ydoc/encode"
	"github.com/signadot/ydoc-format/go-ydoc/libdiff"

	"github.com/scott-cotton/cli"
)

func resolve(cfg *ResolveConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Resolve.Parse(cc, args)
	if err != nil {
		cfg.Resolve.Usage(cc, err)
		return cli.ExitCodeErr(1)
	}
	for _, arg := range orStdin(args) {
		if err := resolveArg(cfg, cc.Out, arg); err != nil {
			return fmt.Errorf("error resolving %s: %w", arg, err)
		}
	}
	return nil
}

func resolveArg(cfg *ResolveConfig, w io.Writer, arg string) error {
	t, err := loadArg(cfg.MainConfig, arg)
	if err != nil {
		return err
	}
	if debug.Resolve() {
		debug.Logf("resolving %s:\n%s", arg, debug.Doc{Tree: t})
	}
	if !cfg.Diff {
		if err := t.ResolveRefs(); err != nil {
			return err
		}
		return encode.Encode(t, w, cfg.encOpts(w)...)
	}
	before, err := encode.String(t, t.Root())
	if err != nil {
		return err
	}
	if err := t.ResolveRefs(); err != nil {
		return err
	}
	after, err := encode.String(t, t.Root())
	if err != nil {
		return err
	}
	_, err = io.WriteString(w, libdiff.DiffStrings(before, after))
	return err
}
