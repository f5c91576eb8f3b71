package hide

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"ppmsteg/fsutil"
	"ppmsteg/ppm"
	"ppmsteg/prompt"
	"ppmsteg/steg"

	"github.com/alecthomas/kong"
)

type CLICmd struct {
	Carrier     string `arg:"" help:"P3 image to hide the message in" type:"existingfile"`
	Output      string `short:"o" help:"Destination file. Written to stdout when empty" type:"path"`
	Message     string `short:"m" help:"Message to hide. Read from the first line of stdin when neither this nor --message-file is given" xor:"message"`
	MessageFile string `help:"File holding the message to hide" type:"existingfile" xor:"message"`
	Secret      string `short:"s" help:"Unsigned 32-bit secret. Read from stdin after the message when empty" env:"PPMSTEG_SECRET"`
	Force       bool   `short:"f" help:"Overwrite the destination file if it exists" default:"false"`
}

func (c *CLICmd) Validate(kctx *kong.Context) error {
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
	logger.Debug("loaded carrier", "width", img.Width, "height", img.Height, "capacity", steg.Capacity(img))

	msg, err := c.message(in)
	if err != nil {
		return err
	}

	secret, err := c.readSecret(in)
	if err != nil {
		return err
	}

	overflow := steg.Overflow(img)
	if err = steg.Encode(img, msg, secret); err != nil {
		return fmt.Errorf("could not hide message in %q: %w", c.Carrier, err)
	}
	logger.Info("message hidden", "bytes", len(msg), "pixels", len(msg)*3, "capacity", steg.Capacity(img))

	if n := steg.Overflow(img) - overflow; n > 0 {
		logger.Warn("channels pushed above the declared max value", "channels", n, "max", img.Max)
	}

	if c.Output == "" {
		_, err = img.WriteTo(stdout)
		return err
	}

	return fsutil.WriteFile(c.Output, c.Force, func(w io.Writer) error {
		_, err := img.WriteTo(w)
		return err
	})
}

func (c *CLICmd) message(in *prompt.Input) ([]byte, error) {
	switch {
	case c.MessageFile != "":
		msg, err := os.ReadFile(c.MessageFile)
		if err != nil {
			return nil, fmt.Errorf("could not read message file %q: %w", c.MessageFile, err)
		}
		return msg, nil
	case c.Message != "":
		return []byte(c.Message), nil
	}

	line, err := in.Line("Message: ")
	if err != nil {
		return nil, fmt.Errorf("could not read message: %w", err)
	}
	return []byte(line), nil
}

func (c *CLICmd) readSecret(in *prompt.Input) (uint32, error) {
	if c.Secret != "" {
		return prompt.ParseSecret(c.Secret)
	}
	return in.Secret("Secret: ")
}
