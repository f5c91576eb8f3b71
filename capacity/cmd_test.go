package capacity

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRun(t *testing.T) {
	dir := t.TempDir()
	small := filepath.Join(dir, "small.ppm")
	require.NoError(t, os.WriteFile(small, []byte("P3\n3 1\n255\n255 0 0 0 255 0 0 0 255\n"), 0o644))
	over := filepath.Join(dir, "over.ppm")
	require.NoError(t, os.WriteFile(over, []byte("P3\n2 3\n15\n16 0 0 0 0 0\n0 0 0 0 0 0\n0 0 0 0 0 16\n"), 0o644))

	cmd := &CLICmd{Files: []string{small, over}, Workers: 2}
	require.NoError(t, cmd.Validate(nil))

	var out bytes.Buffer
	require.NoError(t, cmd.Run(&out))

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, []string{"FILE", "SIZE", "PIXELS", "CAPACITY", "OVER", "MAX"}, strings.Fields(lines[0]))
	assert.Equal(t, []string{small, "3x1", "3", "1", "0"}, strings.Fields(lines[1]))
	assert.Equal(t, []string{over, "2x3", "6", "2", "2"}, strings.Fields(lines[2]))
}

func TestRunBadFile(t *testing.T) {
	bad := filepath.Join(t.TempDir(), "bad.ppm")
	require.NoError(t, os.WriteFile(bad, []byte("P6\n"), 0o644))

	cmd := &CLICmd{Files: []string{bad}, Workers: 1}
	var out bytes.Buffer
	assert.Error(t, cmd.Run(&out))
	assert.Contains(t, out.String(), bad)
}

func TestValidate(t *testing.T) {
	assert.Error(t, (&CLICmd{Workers: -1}).Validate(nil))
}
