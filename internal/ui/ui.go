package ui

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/gookit/color"
)

// Prints a bold in-progress line without a trailing newline, so [Done] can
// complete it.
func Progress(format string, a ...any) {
	color.Bold.Printf(format+"... ", a...)
}

// Completes a [Progress] line.
func Done() {
	color.Green.Println("Done")
}

// Prints a yellow warning line.
func Warnf(format string, a ...any) {
	color.Yellow.Printf("warning: "+format+"\n", a...)
}

// Asks a yes/no question and reads one line from in.
//
// An empty answer selects the default. Unrecognized answers also fall back
// to the default rather than re-prompting.
func Ask(in io.Reader, out io.Writer, question string, def bool) bool {
	hint := "[y/N]"
	if def {
		hint = "[Y/n]"
	}
	fmt.Fprintf(out, "%s %s ", question, hint)

	line, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && line == "" {
		return def
	}

	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes":
		return true
	case "n", "no":
		return false
	default:
		return def
	}
}
