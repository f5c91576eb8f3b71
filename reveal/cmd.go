package reveal

import (
	"fmt"
	"io"
	"log/slog"

	"ppmsteg/fsutil"
	"ppmsteg/ppm"
	"ppmsteg/prompt"
	"ppmsteg/steg"

	"github.com/alecthomas/kong"
)

type CLICmd struct {
	Carrier string `arg:"" help:"P3 image holding a hidden message" type:"existingfile"`
	Secret  string `short:"s" help:"Unsigned 32-bit secret used when hiding. Read from stdin when empty" env:"PPMSTEG_SECRET"`
	Length  int    `short:"n" help:"Keep only the first N recovered bytes. 0 keeps the whole capacity" default:"0"`
	Output  string `short:"o" help:"Destination file for the raw bytes. Written to stdout with a trailing newline when empty" type:"path"`
	Force   bool   `short:"f" help:"Overwrite the destination file if it exists" default:"false"`
}

func (c *CLICmd) Validate(kctx *kong.Context) error {
	if c.Length < 0 {
		return fmt.Errorf("invalid length: %d", c.Length)
	}

	if c.Secret != "" {
		if _, err := prompt.ParseSecret(c.Secret); err != nil {
			return err
		}
	}

	if c.Output != "" {
		if err := fsutil.CheckDest(c.Output, c.Force); err != nil {
			return err
		}
	}
	return nil
}

func (c *CLICmd) Run(in *prompt.Input, stdout io.Writer) error {
	logger := slog.Default().With("file", c.Carrier)

	img, err := ppm.Load(c.Carrier)
	if err != nil {
		return err
	}

	var secret uint32
	if c.Secret != "" {
		secret, err = prompt.ParseSecret(c.Secret)
	} else {
		secret, err = in.Secret("Secret: ")
	}
	if err != nil {
		return err
	}

	msg, err := steg.Decode(img, secret)
	if err != nil {
		return fmt.Errorf("could not reveal message from %q: %w", c.Carrier, err)
	}
	logger.Debug("message revealed", "capacity", len(msg))

	if c.Length > 0 {
		if c.Length > len(msg) {
			logger.Warn("requested length exceeds capacity", "length", c.Length, "capacity", len(msg))
		} else {
			msg = msg[:c.Length]
		}
	}

	if c.Output == "" {
		if _, err = stdout.Write(append(msg, '\n')); err != nil {
			return fmt.Errorf("could not write message: %w", err)
		}
		return nil
	}

	return fsutil.WriteFile(c.Output, c.Force, func(w io.Writer) error {
		_, err := w.Write(msg)
		return err
	})
}
