package hide

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"ppmsteg/ppm"
	"ppmsteg/prompt"
	"ppmsteg/steg"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func carrier(t *testing.T, width, height int) string {
	t.Helper()
	img, err := ppm.New(width, height, 255)
	require.NoError(t, err)
	for i := range img.Pixels {
		img.Pixels[i] = ppm.Pixel{uint(i % 200), 100, uint(i % 7)}
	}
	img.AddComment("test carrier")

	name := filepath.Join(t.TempDir(), "carrier.ppm")
	var buf bytes.Buffer
	_, err = img.WriteTo(&buf)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(name, buf.Bytes(), 0o644))
	return name
}

func TestRunStdinToStdout(t *testing.T) {
	cmd := &CLICmd{Carrier: carrier(t, 10, 10)}
	var out bytes.Buffer

	err := cmd.Run(prompt.NewReader(strings.NewReader("attack at dawn\n42\n")), &out)
	require.NoError(t, err)

	img, err := ppm.Parse(&out)
	require.NoError(t, err)
	assert.Equal(t, []string{"# test carrier\n"}, img.Comments)

	msg, err := steg.Decode(img, 42)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(msg, []byte("attack at dawn")))
}

func TestRunFlagsToFile(t *testing.T) {
	src := carrier(t, 8, 8)
	msgFile := filepath.Join(t.TempDir(), "msg.bin")
	require.NoError(t, os.WriteFile(msgFile, []byte{0, 1, 2, 0xff}, 0o644))
	dest := filepath.Join(t.TempDir(), "out.ppm")

	cmd := &CLICmd{Carrier: src, Output: dest, MessageFile: msgFile, Secret: "7"}
	require.NoError(t, cmd.Validate(nil))
	require.NoError(t, cmd.Run(prompt.NewReader(strings.NewReader("")), &bytes.Buffer{}))

	img, err := ppm.Load(dest)
	require.NoError(t, err)
	msg, err := steg.Decode(img, 7)
	require.NoError(t, err)
	assert.Equal(t, []byte{0, 1, 2, 0xff}, msg[:4])

	// destination exists now
	assert.Error(t, cmd.Validate(nil))
	cmd.Force = true
	assert.NoError(t, cmd.Validate(nil))
}

func TestRunTooLong(t *testing.T) {
	cmd := &CLICmd{Carrier: carrier(t, 3, 3), Message: "four", Secret: "1"}
	var out bytes.Buffer

	err := cmd.Run(prompt.NewReader(strings.NewReader("")), &out)
	var ce *steg.CapacityError
	assert.True(t, errors.As(err, &ce))
	assert.Zero(t, out.Len())
}

func TestValidateSecret(t *testing.T) {
	cmd := &CLICmd{Secret: "-3"}
	assert.Error(t, cmd.Validate(nil))
}
