package main

import (
	"io"
	"os"

	"github.com/mattn/go-isatty"
	"golang.org/x/term"
)

func isTerminal(f *os.File) bool {
	if f == nil {
		return false
	}
	fd := f.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

// waitForKey blocks until one key is pressed. Without a terminal it reads
// a single byte, so EOF on a closed pipe returns at once.
func waitForKey(in io.Reader) {
	buf := make([]byte, 1)
	f, ok := in.(*os.File)
	if ok && isTerminal(f) {
		if state, err := term.MakeRaw(int(f.Fd())); err == nil {
			defer term.Restore(int(f.Fd()), state)
		}
	}
	_, _ = in.Read(buf)
}
