// Package clipboard copies rendered quotes to the system clipboard of the
// user's terminal using OSC 52 escape sequences.
package clipboard

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/aymanbagabas/go-osc52/v2"
)

// CopiedMessage is shown once the text has been handed to the terminal
const CopiedMessage = "Texto copiado com sucesso!"

// ErrEmpty is returned when there is nothing to copy
var ErrEmpty = errors.New("nothing to copy")

// Copier copies text to a clipboard
type Copier interface {
	Copy(text string) error
}

// Terminal writes OSC 52 sequences to a terminal. Inside tmux or screen the
// sequence is wrapped in the multiplexer's passthrough.
type Terminal struct {
	out    io.Writer
	getenv func(string) string
}

// NewTerminal creates a Copier writing to out
func NewTerminal(out io.Writer) *Terminal {
	return &Terminal{out: out, getenv: os.Getenv}
}

// Copy writes text to the clipboard. Write failures are returned.
func (t *Terminal) Copy(text string) error {
	if text == "" {
		return ErrEmpty
	}

	seq := osc52.New(text)
	switch {
	case t.getenv("TMUX") != "":
		seq = seq.Tmux()
	case strings.HasPrefix(t.getenv("TERM"), "screen"):
		seq = seq.Screen()
	}

	if _, err := seq.WriteTo(t.out); err != nil {
		return fmt.Errorf("failed to copy to clipboard: %w", err)
	}
	return nil
}
