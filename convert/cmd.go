package convert

import (
	"fmt"
	"image"
	"image/gif"
	"image/jpeg"
	"image/png"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"ppmsteg/fsutil"
	"ppmsteg/ppm"

	"github.com/alecthomas/kong"
	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

type CLICmd struct {
	Input   string   `arg:"" help:"Image to convert (PPM P3, PNG, JPEG, GIF, BMP, TIFF or WebP)" type:"existingfile"`
	Output  string   `short:"o" required:"" help:"Destination file" type:"path"`
	Format  string   `help:"Output format. 'auto' picks it from the destination extension. Only ppm keeps hidden data intact" enum:"auto,ppm,png,jpeg,gif,bmp,tiff" default:"auto"`
	Width   int      `help:"Max width" group:"resize"`
	Height  int      `help:"Max height" group:"resize"`
	Comment []string `help:"Comment line to add to PPM output. Repeatable"`
	Force   bool     `short:"f" help:"Overwrite the destination file if it exists" default:"false"`
}

var extFormats = map[string]string{
	".ppm":  "ppm",
	".pnm":  "ppm",
	".png":  "png",
	".jpg":  "jpeg",
	".jpeg": "jpeg",
	".gif":  "gif",
	".bmp":  "bmp",
	".tif":  "tiff",
	".tiff": "tiff",
}

func (c *CLICmd) Validate(kctx *kong.Context) error {
	switch {
	case c.Width < 0:
		return fmt.Errorf("invalid resize width: %d", c.Width)
	case c.Height < 0:
		return fmt.Errorf("invalid resize height: %d", c.Height)
	}

	if c.Format == "auto" {
		ext := strings.ToLower(filepath.Ext(c.Output))
		format, ok := extFormats[ext]
		if !ok {
			return fmt.Errorf("cannot guess output format from extension %q, use --format", ext)
		}
		c.Format = format
	}

	return fsutil.CheckDest(c.Output, c.Force)
}

func (c *CLICmd) Run() error {
	logger := slog.Default().With("file", c.Input)

	imgFile, err := os.Open(c.Input)
	if err != nil {
		return fmt.Errorf("could not open image %q: %w", c.Input, err)
	}
	img, imgType, err := image.Decode(imgFile)
	if closeErr := imgFile.Close(); closeErr != nil {
		logger.Error("could not close image", "error", closeErr)
	}
	if err != nil {
		return fmt.Errorf("could not decode image %q: %w", c.Input, err)
	}
	logger.Debug("decoded", "format", imgType, "bounds", img.Bounds())

	img = resize(logger, img, c.Width, c.Height)

	if err = fsutil.WriteFile(c.Output, c.Force, func(w io.Writer) error {
		return c.encode(w, img)
	}); err != nil {
		return err
	}

	logger.Info("converted", "from", imgType, "to", c.Format, "dest", c.Output)
	return nil
}

func (c *CLICmd) encode(w io.Writer, img image.Image) error {
	switch c.Format {
	case "ppm":
		out, ok := img.(*ppm.Image)
		if !ok {
			out = ppm.FromImage(img)
		}
		for _, comment := range c.Comment {
			out.AddComment(comment)
		}
		if _, err := out.WriteTo(w); err != nil {
			return fmt.Errorf("could not encode PPM: %w", err)
		}
	case "png":
		enc := png.Encoder{CompressionLevel: png.BestCompression}
		if err := enc.Encode(w, img); err != nil {
			return fmt.Errorf("could not encode PNG: %w", err)
		}
	case "jpeg":
		if err := jpeg.Encode(w, img, &jpeg.Options{Quality: 100}); err != nil {
			return fmt.Errorf("could not encode JPEG: %w", err)
		}
	case "gif":
		if err := gif.Encode(w, img, nil); err != nil {
			return fmt.Errorf("could not encode GIF: %w", err)
		}
	case "bmp":
		if err := bmp.Encode(w, img); err != nil {
			return fmt.Errorf("could not encode BMP: %w", err)
		}
	case "tiff":
		if err := tiff.Encode(w, img, nil); err != nil {
			return fmt.Errorf("could not encode TIFF: %w", err)
		}
	default:
		return fmt.Errorf("unsupported output format: %s", c.Format)
	}
	return nil
}
