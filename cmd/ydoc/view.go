package main

import (
	"fmt"

	"github.com/signadot/ydoc-format/go-ydoc/encode"

	"github.com/scott-cotton/cli"
)

func view(cfg *ViewConfig, cc *cli.Context, args []string) error {
	args, err := cfg.View.Parse(cc, args)
	if err != nil {
		cfg.View.Usage(cc, err)
		return cli.ExitCodeErr(1)
	}
	for _, arg := range orStdin(args) {
		t, err := loadArg(cfg.MainConfig, arg)
		if err != nil {
			return err
		}
		if !cfg.Raw {
			if err := t.ResolveRefs(); err != nil {
				return fmt.Errorf("error resolving %s: %w", arg, err)
			}
		}
		if err := encode.Encode(t, cc.Out, cfg.encOpts(cc.Out)...); err != nil {
			return fmt.Errorf("error encoding %s: %w", arg, err)
		}
	}
	return nil
}
