package main

import (
	"fmt"
	"io"

	"github.com/fatih/color"

	"github.com/dhamidi/modinfo/java/codebase"
)

// problemReporter prints problems one per line, colored by severity.
type problemReporter struct {
	w        io.Writer
	errors   int
	warnings int

	location *color.Color
	error    *color.Color
	warning  *color.Color
}

func newProblemReporter(w io.Writer) *problemReporter {
	return &problemReporter{
		w:        w,
		location: color.New(color.Bold),
		error:    color.New(color.FgRed, color.Bold),
		warning:  color.New(color.FgYellow, color.Bold),
	}
}

func (r *problemReporter) Report(p codebase.Problem) {
	loc := p.Path
	if p.Line > 0 {
		loc = fmt.Sprintf("%s:%d:%d", p.Path, p.Line, p.Column+1)
	}
	r.location.Fprint(r.w, loc+": ")
	switch p.Severity {
	case codebase.SeverityWarning:
		r.warnings++
		r.warning.Fprint(r.w, "warning: ")
	default:
		r.errors++
		r.error.Fprint(r.w, "error: ")
	}
	fmt.Fprintln(r.w, p.Message)
}

func (r *problemReporter) Summary(files int) {
	if r.errors == 0 && r.warnings == 0 {
		color.New(color.FgGreen).Fprintf(r.w, "%d file(s) checked, no problems\n", files)
		return
	}
	fmt.Fprintf(r.w, "%d file(s) checked, %d error(s), %d warning(s)\n", files, r.errors, r.warnings)
}
