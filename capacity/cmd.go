package capacity

import (
	"fmt"
	"io"
	"log/slog"
	"sync/atomic"
	"text/tabwriter"

	"ppmsteg/parallel"
	"ppmsteg/ppm"
	"ppmsteg/steg"

	"github.com/alecthomas/kong"
)

type CLICmd struct {
	Files   []string `arg:"" help:"P3 images to inspect" type:"existingfile"`
	Workers int      `short:"j" help:"Number of files read concurrently. 0 uses one per CPU" default:"0"`
}

type report struct {
	width, height int
	pixels        int
	capacity      int
	overflow      int
	err           error
}

func (c *CLICmd) Validate(kctx *kong.Context) error {
	if c.Workers < 0 {
		return fmt.Errorf("invalid number of workers: %d", c.Workers)
	}
	return nil
}

func (c *CLICmd) Run(stdout io.Writer) error {
	reports := make([]report, len(c.Files))
	var errCount atomic.Uint64

	pool := parallel.Start(c.Workers)
	for i, name := range c.Files {
		pool.Do(func() {
			logger := slog.Default().With("file", name)

			img, err := ppm.Load(name)
			if err != nil {
				errCount.Add(1)
				reports[i].err = err
				logger.Error("could not inspect image", "error", err)
				return
			}

			reports[i] = report{
				width:    img.Width,
				height:   img.Height,
				pixels:   img.PixelCount(),
				capacity: steg.Capacity(img),
				overflow: steg.Overflow(img),
			}
			logger.Debug("inspected", "pixels", reports[i].pixels, "capacity", reports[i].capacity)
		})
	}
	pool.Wait()

	tw := tabwriter.NewWriter(stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "FILE\tSIZE\tPIXELS\tCAPACITY\tOVER MAX")
	for i, name := range c.Files {
		r := reports[i]
		if r.err != nil {
			fmt.Fprintf(tw, "%s\t-\t-\t-\t-\n", name)
			continue
		}
		fmt.Fprintf(tw, "%s\t%dx%d\t%d\t%d\t%d\n", name, r.width, r.height, r.pixels, r.capacity, r.overflow)
	}
	if err := tw.Flush(); err != nil {
		return fmt.Errorf("could not write report: %w", err)
	}

	errors := errCount.Load()
	slog.Info("stats", "inspected", uint64(len(c.Files))-errors, "errors", errors, "total", len(c.Files))

	if errors > 0 {
		return fmt.Errorf("error processing %d files", errors)
	}
	return nil
}
