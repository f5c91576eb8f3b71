// Package prompt reads the message and secret a user types or pipes in.
package prompt

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"golang.org/x/term"
)

type Input struct {
	r        *bufio.Reader
	fd       int
	terminal bool
	prompts  io.Writer
}

// New reads from f. Prompts go to prompts only when f is a terminal, where the
// secret is also read without echo.
func New(f *os.File, prompts io.Writer) *Input {
	fd := int(f.Fd())
	return &Input{
		r:        bufio.NewReader(f),
		fd:       fd,
		terminal: term.IsTerminal(fd),
		prompts:  prompts,
	}
}

func NewReader(r io.Reader) *Input {
	return &Input{r: bufio.NewReader(r), fd: -1, prompts: io.Discard}
}

// Line returns the next line without its line ending.
func (in *Input) Line(prompt string) (string, error) {
	if in.terminal {
		fmt.Fprint(in.prompts, prompt)
	}

	line, err := in.r.ReadString('\n')
	if err != nil && !(errors.Is(err, io.EOF) && line != "") {
		if errors.Is(err, io.EOF) {
			return "", io.ErrUnexpectedEOF
		}
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}

func (in *Input) Secret(prompt string) (uint32, error) {
	if !in.terminal {
		line, err := in.Line(prompt)
		if err != nil {
			return 0, fmt.Errorf("could not read secret: %w", err)
		}
		return ParseSecret(line)
	}

	fmt.Fprint(in.prompts, prompt)
	b, err := term.ReadPassword(in.fd)
	fmt.Fprintln(in.prompts)
	if err != nil {
		return 0, fmt.Errorf("could not read secret: %w", err)
	}
	return ParseSecret(string(b))
}

func ParseSecret(s string) (uint32, error) {
	v, err := strconv.ParseUint(strings.TrimSpace(s), 10, 32)
	if err != nil {
		return 0, fmt.Errorf("invalid secret, want an unsigned 32-bit integer: %w", err)
	}
	return uint32(v), nil
}
