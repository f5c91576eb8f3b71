package ppm

import (
	"fmt"
	"log/slog"
	"os"
)

// Load parses the P3 image stored in the named file.
func Load(name string) (*Image, error) {
	f, err := os.Open(name)
	if err != nil {
		return nil, fmt.Errorf("could not open image %q: %w", name, err)
	}
	defer func() {
		if closeErr := f.Close(); closeErr != nil {
			slog.Error("could not close image", "name", name, "error", closeErr)
		}
	}()

	img, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("could not read image %q: %w", name, err)
	}
	return img, nil
}
