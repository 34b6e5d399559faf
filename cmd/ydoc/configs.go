package main

import (
	"io"
	"os"

	"github.com/signadot/ydoc-format/go-ydoc/encode"
	"github.com/signadot/ydoc-format/go-ydoc/parse"

	"github.com/scott-cotton/cli"

	"github.com/mattn/go-isatty"
)

type MainConfig struct {
	Color  bool `cli:"name=color desc='encode with color'"`
	Header bool `cli:"name=header desc='read only the leading document of each file'"`

	Out      string
	CloseOut func() error

	Main *cli.Command
}

func (cfg *MainConfig) parseOpts(path string) []parse.ParseOption {
	res := []parse.ParseOption{parse.Source(path)}
	if cfg.Header {
		res = append(res, parse.HeaderOnly())
	}
	return res
}

func (cfg *MainConfig) encOpts(w io.Writer) []encode.EncodeOption {
	res := []encode.EncodeOption{}
	if cfg.Color {
		return append(res, encode.EncodeColors(encode.NewColors()))
	}
	colorsSet := false
	for _, opt := range cfg.Main.Opts {
		if opt.Name != "color" {
			continue
		}
		colorsSet = opt.Value != nil
		break
	}
	if colorsSet {
		return res
	}
	f, ok := w.(*os.File)
	if !ok {
		return res
	}
	if isatty.IsTerminal(f.Fd()) {
		res = append(res, encode.EncodeColors(encode.NewColors()))
	}
	return res
}

type ResolveConfig struct {
	*MainConfig
	Diff bool `cli:"name=d aliases=diff desc='show resolution as a diff'"`

	Resolve *cli.Command
}

type ViewConfig struct {
	*MainConfig
	Raw bool `cli:"name=raw desc='view without resolving references'"`

	View *cli.Command
}

type GetConfig struct {
	*MainConfig

	Get *cli.Command
}
