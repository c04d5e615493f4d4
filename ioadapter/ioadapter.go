// Package ioadapter supplies the VM's line-oriented text reader and
// unbuffered string writers (§1: I/O adapter is out of scope except for its
// interface).
package ioadapter

import (
	"bufio"
	"io"

	"github.com/mattn/go-isatty"
)

// Reader delivers one blocking line read per call, stripping the trailing
// newline. It never returns a partial line.
type Reader struct {
	scanner *bufio.Scanner
}

// NewReader wraps r for line-oriented reads.
func NewReader(r io.Reader) *Reader {
	return &Reader{scanner: bufio.NewScanner(r)}
}

// ReadLine blocks for the next line of input. ok is false on EOF or any
// read error; callers treat that as "no more input" per READ's semantics.
func (r *Reader) ReadLine() (line string, ok bool) {
	if !r.scanner.Scan() {
		return "", false
	}
	return r.scanner.Text(), true
}

// Writer performs unbuffered writes of a string to an underlying stream.
type Writer struct {
	w        io.Writer
	terminal bool
}

// NewWriter wraps w. If w is backed by a real file descriptor (a terminal,
// not a pipe or regular file), IsTerminal reports true — used by the VM's
// diagnostics to choose a fuller BREAK rendering.
func NewWriter(w io.Writer, fd uintptr) *Writer {
	return &Writer{w: w, terminal: isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)}
}

// WriteString writes s immediately, with no buffering and no appended
// newline (§6.3: WRITE has no trailing newline).
func (w *Writer) WriteString(s string) error {
	_, err := io.WriteString(w.w, s)
	return err
}

// IsTerminal reports whether this writer's underlying stream is a terminal.
func (w *Writer) IsTerminal() bool { return w.terminal }
