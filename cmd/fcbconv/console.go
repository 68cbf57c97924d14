package main

import (
	"fmt"
	"io"

	"github.com/fatih/color"
)

// console prints user-facing status lines. Progress lines only appear in
// verbose mode.
type console struct {
	w       io.Writer
	verbose bool

	progress *color.Color
	success  *color.Color
	warning  *color.Color
	failure  *color.Color
}

func newConsole(w io.Writer, verbose bool) *console {
	return &console{
		w:        w,
		verbose:  verbose,
		progress: color.New(color.FgHiBlack),
		success:  color.New(color.FgGreen),
		warning:  color.New(color.FgYellow),
		failure:  color.New(color.FgRed, color.Bold),
	}
}

func (c *console) Progress(format string, args ...any) {
	if !c.verbose {
		return
	}
	c.progress.Fprintf(c.w, format+"\n", args...)
}

func (c *console) Done(format string, args ...any) {
	c.success.Fprintf(c.w, format+"\n", args...)
}

func (c *console) Warn(format string, args ...any) {
	c.warning.Fprint(c.w, "warning: ")
	fmt.Fprintf(c.w, format+"\n", args...)
}

func (c *console) Error(err error) {
	c.failure.Fprint(c.w, "error: ")
	fmt.Fprintln(c.w, err)
}
