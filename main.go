package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"ppmsteg/capacity"
	"ppmsteg/config"
	"ppmsteg/convert"
	"ppmsteg/hide"
	"ppmsteg/prompt"
	"ppmsteg/reveal"

	"github.com/alecthomas/kong"
)

type CLI struct {
	Config    kong.ConfigFlag `help:"YAML file with default flag values"`
	LogLevel  string          `help:"Minimum level of log messages" enum:"debug,info,warn,error" default:"info"`
	LogFormat string          `help:"Log output format" enum:"text,json" default:"text"`

	Hide     hide.CLICmd     `cmd:"" help:"Hide a message in a P3 image"`
	Reveal   reveal.CLICmd   `cmd:"" help:"Recover a message hidden in a P3 image"`
	Capacity capacity.CLICmd `cmd:"" help:"Report how many bytes P3 images can carry"`
	Convert  convert.CLICmd  `cmd:"" help:"Convert images to or from P3"`
}

func newLogger(w io.Writer, level, format string) (*slog.Logger, error) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", level, err)
	}

	opts := &slog.HandlerOptions{Level: lvl}
	switch format {
	case "text":
		return slog.New(slog.NewTextHandler(w, opts)), nil
	case "json":
		return slog.New(slog.NewJSONHandler(w, opts)), nil
	default:
		return nil, fmt.Errorf("unsupported log format: %s", format)
	}
}

func main() {
	var cli CLI
	kctx := kong.Parse(&cli,
		kong.Name("ppmsteg"),
		kong.Description("Hide messages in the channel parity of plain text PPM images."),
		kong.UsageOnError(),
		kong.Configuration(config.Loader, "~/.config/ppmsteg.yaml", ".ppmsteg.yaml"),
		kong.BindTo(os.Stdout, (*io.Writer)(nil)),
	)

	logger, err := newLogger(os.Stderr, cli.LogLevel, cli.LogFormat)
	kctx.FatalIfErrorf(err)
	slog.SetDefault(logger)

	err = kctx.Run(prompt.New(os.Stdin, os.Stderr))
	kctx.FatalIfErrorf(err)
}
