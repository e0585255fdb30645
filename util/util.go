// Package util holds small terminal and formatting helpers shared by commands.
package util

import (
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"
)

// Quantify renders count with the singular or plural label.
func Quantify(count int, singular, plural string) string {
	if count == 1 {
		return fmt.Sprintf("%d %s", count, singular)
	}
	return fmt.Sprintf("%d %s", count, plural)
}

// IsTerminal reports whether w is an interactive terminal.
func IsTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// PrintErasable prints msg on the current line of w and returns a func that
// blanks it again. Nothing is printed when w is not a terminal.
func PrintErasable(w io.Writer, msg string) (eraser func()) {
	if !IsTerminal(w) {
		return func() {}
	}

	fmt.Fprintf(w, "\r%s", msg)
	return func() {
		fmt.Fprintf(w, "\r%s\r", strings.Repeat(" ", len(msg)))
	}
}
