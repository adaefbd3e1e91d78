package terminal

import (
	"io"
	"os"

	"golang.org/x/term"
)

const defaultWidth = 80

// Width returns the character width of the terminal behind w. It returns 80
// when w is not a terminal or its size cannot be read.
func Width(w io.Writer) int {
	if f, ok := w.(*os.File); ok {
		if tw, _, err := term.GetSize(int(f.Fd())); err == nil && tw > 0 {
			return tw
		}
	}
	return defaultWidth
}

// IsTerminal reports whether w is connected to a terminal.
func IsTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}
