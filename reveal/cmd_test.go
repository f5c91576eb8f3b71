package reveal

import (
	"bytes"
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

func stego(t *testing.T, msg string, secret uint32) string {
	t.Helper()
	img, err := ppm.New(12, 12, 255)
	require.NoError(t, err)
	for i := range img.Pixels {
		img.Pixels[i] = ppm.Pixel{uint(i * 3 % 256), uint(i % 5), 200}
	}
	require.NoError(t, steg.Encode(img, []byte(msg), secret))

	var buf bytes.Buffer
	_, err = img.WriteTo(&buf)
	require.NoError(t, err)
	name := filepath.Join(t.TempDir(), "stego.ppm")
	require.NoError(t, os.WriteFile(name, buf.Bytes(), 0o644))
	return name
}

func TestRunStdout(t *testing.T) {
	cmd := &CLICmd{Carrier: stego(t, "hello", 99), Length: 5}
	var out bytes.Buffer

	require.NoError(t, cmd.Run(prompt.NewReader(strings.NewReader("99\n")), &out))
	assert.Equal(t, "hello\n", out.String())
}

func TestRunFullCapacity(t *testing.T) {
	cmd := &CLICmd{Carrier: stego(t, "hello", 99), Secret: "99"}
	var out bytes.Buffer

	require.NoError(t, cmd.Run(prompt.NewReader(strings.NewReader("")), &out))
	assert.Equal(t, 144/3+1, out.Len())
	assert.True(t, strings.HasPrefix(out.String(), "hello"))
}

func TestRunLengthBeyondCapacity(t *testing.T) {
	cmd := &CLICmd{Carrier: stego(t, "hi", 3), Secret: "3", Length: 1000}
	var out bytes.Buffer

	require.NoError(t, cmd.Run(prompt.NewReader(strings.NewReader("")), &out))
	assert.Equal(t, 144/3+1, out.Len())
}

func TestRunToFile(t *testing.T) {
	dest := filepath.Join(t.TempDir(), "msg.txt")
	cmd := &CLICmd{Carrier: stego(t, "secret plans", 5), Secret: "5", Length: 12, Output: dest}
	require.NoError(t, cmd.Validate(nil))

	require.NoError(t, cmd.Run(prompt.NewReader(strings.NewReader("")), &bytes.Buffer{}))
	data, err := os.ReadFile(dest)
	require.NoError(t, err)
	assert.Equal(t, "secret plans", string(data))
}

func TestRunMissingSecret(t *testing.T) {
	cmd := &CLICmd{Carrier: stego(t, "x", 1)}
	assert.Error(t, cmd.Run(prompt.NewReader(strings.NewReader("")), &bytes.Buffer{}))
}

func TestValidate(t *testing.T) {
	assert.Error(t, (&CLICmd{Length: -1}).Validate(nil))
	assert.Error(t, (&CLICmd{Secret: "abc"}).Validate(nil))
	assert.NoError(t, (&CLICmd{Secret: "12"}).Validate(nil))
}
