// Package keywait implements the very-verbose mode's "press any key to
// continue" pause. Raw-mode handling is delegated to golang.org/x/term, a
// pure UI concern kept out of the tracer core.
package keywait

import (
	"fmt"
	"io"
	"os"

	"github.com/mattn/go-isatty"
	"golang.org/x/term"
)

// Prompt is the literal text shown before blocking.
const Prompt = "(V) Presiona cualquier tecla para continuar… "

// Waiter blocks on a single key press, writing Prompt to out first.
type Waiter struct {
	out io.Writer
	in  *os.File
}

// New returns a Waiter that prompts on out and reads from in (normally
// os.Stdin).
func New(out io.Writer, in *os.File) *Waiter {
	return &Waiter{out: out, in: in}
}

// Wait prints the prompt and blocks for one key press. When in is a
// terminal it puts the terminal into raw mode so a single byte suffices;
// otherwise (stdin redirected from a file or pipe) it falls back to a
// single read of up to 256 bytes, since there is no raw mode to enter.
func (w *Waiter) Wait() error {
	fmt.Fprint(w.out, Prompt)

	fd := int(w.in.Fd())
	if !isatty.IsTerminal(uintptr(fd)) {
		var buf [256]byte
		_, err := w.in.Read(buf[:])
		fmt.Fprintln(w.out)
		return err
	}

	oldState, err := term.MakeRaw(fd)
	if err != nil {
		return fmt.Errorf("keywait: enabling raw mode: %w", err)
	}
	defer term.Restore(fd, oldState)

	var b [1]byte
	_, err = w.in.Read(b[:])
	fmt.Fprintln(w.out)
	return err
}
