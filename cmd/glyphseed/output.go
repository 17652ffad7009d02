package main

import (
	"fmt"
	"io"

	"github.com/fatih/color"
)

var (
	labelColor  = color.New(color.FgCyan)
	secretColor = color.New(color.FgHiGreen, color.Bold)
	noteColor   = color.New(color.FgYellow)
)

// printer writes labelled artifacts. Colors are dropped when the output is
// not a terminal.
type printer struct {
	w io.Writer
}

func (p printer) field(label string, value any) {
	labelColor.Fprintf(p.w, "%-12s", label+":")
	fmt.Fprintln(p.w, value)
}

func (p printer) secret(label string, value string) {
	labelColor.Fprintf(p.w, "%-12s", label+":")
	secretColor.Fprintln(p.w, value)
}

func (p printer) note(format string, args ...any) {
	noteColor.Fprintf(p.w, format+"\n", args...)
}

func printVersion(w io.Writer) {
	fmt.Fprintf(w, "glyphseed %s\n", version)
	fmt.Fprintf(w, "Built: %s\n", getBuildTimestamp())
}
