package main

import (
	"github.com/scott-cotton/cli"
)

func MainCommand() *cli.Command {
	cfg := &MainConfig{}
	sOpts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	opts := append(sOpts, &cli.Opt{
		Name:        "o",
		Description: "output file (default stdout)",
		Type:        cli.NamedFuncOpt(cfg.outOpt, "(filepath)"),
	})

	return cli.NewCommandAt(&cfg.Main, "ydoc").
		WithSynopsis("ydoc [opts] command [opts]").
		WithDescription("ydoc is a tool for working with anchored document trees.").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return ydocMain(cfg, cc, args)
		}).
		WithSubs(
			ResolveCommand(cfg),
			ViewCommand(cfg),
			GetCommand(cfg))
}

func ResolveCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &ResolveConfig{MainConfig: mainCfg}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	cmd := cli.NewCommand("resolve").
		WithAliases("r", "res").
		WithSynopsis("resolve [-d] [files]").
		WithDescription("resolve anchors and aliases in document files").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return resolve(cfg, cc, args)
		})
	cfg.Resolve = cmd
	return cmd
}

func ViewCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &ViewConfig{MainConfig: mainCfg}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	cmd := cli.NewCommand("view").
		WithAliases("v").
		WithOpts(opts...).
		WithSynopsis("view [files]").
		WithDescription("view document files with markup in color").
		WithRun(func(cc *cli.Context, args []string) error {
			return view(cfg, cc, args)
		})
	cfg.View = cmd
	return cmd
}

func GetCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &GetConfig{MainConfig: mainCfg}
	cmd := cli.NewCommand("get").
		WithAliases("g", "ge").
		WithSynopsis("get <dotted.path> [files]").
		WithDescription("get elements from document files").
		WithRun(func(cc *cli.Context, args []string) error {
			return get(cfg, cc, args)
		})
	cfg.Get = cmd
	return cmd
}
