// Package output provides user-facing stdout/stderr writing for typedcli.
package output

import (
	"fmt"
	"io"
	"os"
	"strings"
)

// Writer handles user-facing output. Error-shaped text goes to err only.
type Writer struct {
	out   io.Writer
	err   io.Writer
	color bool
}

// New creates a Writer on the process streams. Color is enabled when stderr
// is a terminal.
func New() *Writer {
	return &Writer{
		out:   os.Stdout,
		err:   os.Stderr,
		color: isTerminal(os.Stderr),
	}
}

// NewWithWriters creates a Writer with custom io.Writers (for testing and
// for applications that capture output).
func NewWithWriters(out, err io.Writer, color bool) *Writer {
	return &Writer{
		out:   out,
		err:   err,
		color: color,
	}
}

// Stdout returns the stdout stream.
func (w *Writer) Stdout() io.Writer { return w.out }

// Stderr returns the stderr stream.
func (w *Writer) Stderr() io.Writer { return w.err }

// Println writes a line to stdout.
func (w *Writer) Println(format string, args ...interface{}) {
	fmt.Fprintf(w.out, format+"\n", args...)
}

// Errorln writes a line to stderr.
func (w *Writer) Errorln(format string, args ...interface{}) {
	fmt.Fprintf(w.err, format+"\n", args...)
}

// Warning prints a warning message to stderr.
func (w *Writer) Warning(format string, args ...interface{}) {
	if w.color {
		w.Errorln(yellow+"warning: "+format+reset, args...)
	} else {
		w.Errorln("warning: "+format, args...)
	}
}

// Failure prints a handler's rendered failure line to stderr.
func (w *Writer) Failure(line string) {
	if w.color {
		w.Errorln("%s%s%s", red, line, reset)
	} else {
		w.Errorln("%s", line)
	}
}

// Bug prints the generic diagnostic for an abnormal termination. ref ties
// the line to the diagnostic log and may be empty.
func (w *Writer) Bug(what, ref string) {
	msg := "Unexpected error (bug): " + what
	if ref != "" {
		msg += " [ref " + ref + "]"
	}
	if w.color {
		w.Errorln("%s%s%s", red, msg, reset)
	} else {
		w.Errorln("%s", msg)
	}
}

// UsageError prints a host engine usage error and a help hint.
func (w *Writer) UsageError(commandPath string, err error) {
	if w.color {
		w.Errorln("%sError:%s %v", red, reset, err)
	} else {
		w.Errorln("Error: %v", err)
	}
	w.Errorln("Run '%s --help' for usage.", commandPath)
}

// ErrorPrefix prints an error message prefixed with the program name.
func (w *Writer) ErrorPrefix(program, format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	if w.color {
		w.Errorln("%s%s:%s %s", red, program, reset, msg)
	} else {
		w.Errorln("%s: %s", program, msg)
	}
}

// Success prints a success message.
func (w *Writer) Success(format string, args ...interface{}) {
	if w.color {
		w.Println(green+format+reset, args...)
	} else {
		w.Println(format, args...)
	}
}

// Section prints a section header.
func (w *Writer) Section(title string) {
	w.Println("")
	if w.color {
		w.Println("%s=== %s ===%s", bold, title, reset)
	} else {
		w.Println("=== %s ===", title)
	}
}

// List prints a list of items.
func (w *Writer) List(items []string) {
	for _, item := range items {
		w.Println("  - %s", item)
	}
}

// Table prints a simple table.
func (w *Writer) Table(headers []string, rows [][]string) {
	widths := make([]int, len(headers))
	for i, h := range headers {
		widths[i] = len(h)
	}
	for _, row := range rows {
		for i, cell := range row {
			if i < len(widths) && len(cell) > widths[i] {
				widths[i] = len(cell)
			}
		}
	}

	line := func(cells []string) string {
		parts := make([]string, 0, len(widths))
		for i, cell := range cells {
			if i < len(widths) {
				parts = append(parts, fmt.Sprintf("%-*s", widths[i], cell))
			}
		}
		return strings.TrimRight(strings.Join(parts, "  "), " ")
	}

	w.Println("%s", line(headers))
	seps := make([]string, len(widths))
	for i, width := range widths {
		seps[i] = strings.Repeat("-", width)
	}
	w.Println("%s", line(seps))
	for _, row := range rows {
		w.Println("%s", line(row))
	}
}

// isTerminal returns true if f is a terminal.
func isTerminal(f *os.File) bool {
	if fi, _ := f.Stat(); fi != nil {
		return (fi.Mode() & os.ModeCharDevice) != 0
	}
	return false
}

// ANSI color codes.
const (
	reset  = "\033[0m"
	bold   = "\033[1m"
	red    = "\033[31m"
	green  = "\033[32m"
	yellow = "\033[33m"
)
