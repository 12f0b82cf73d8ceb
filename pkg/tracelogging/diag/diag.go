// Package diag collects point-located diagnostics produced while validating
// provider and event descriptions, and reports them as a single error.
package diag

import (
	"fmt"

	"github.com/pkg/errors"
	"go.uber.org/multierr"
)

// Pos is a location in a description source. The zero Pos is unknown.
type Pos struct {
	File string
	Line int
	Col  int
}

// IsValid reports whether the position carries a line number.
func (p Pos) IsValid() bool {
	return p.Line > 0
}

func (p Pos) String() string {
	switch {
	case !p.IsValid() && p.File == "":
		return "-"
	case !p.IsValid():
		return p.File
	case p.File == "":
		return fmt.Sprintf("%d:%d", p.Line, p.Col)
	default:
		return fmt.Sprintf("%s:%d:%d", p.File, p.Line, p.Col)
	}
}

// Diagnostic is a single human-readable problem found at Pos.
type Diagnostic struct {
	Pos Pos
	Msg string
}

func (d *Diagnostic) Error() string {
	if !d.Pos.IsValid() && d.Pos.File == "" {
		return d.Msg
	}
	return d.Pos.String() + ": " + d.Msg
}

// List accumulates diagnostics in report order. The zero List is ready to use.
type List struct {
	err error
	n   int
}

// Add records a diagnostic.
func (l *List) Add(pos Pos, msg string) {
	l.err = multierr.Append(l.err, &Diagnostic{Pos: pos, Msg: msg})
	l.n++
}

// Addf records a diagnostic with a formatted message.
func (l *List) Addf(pos Pos, format string, args ...interface{}) {
	l.Add(pos, fmt.Sprintf(format, args...))
}

// Append records the diagnostics combined in err, as returned by another
// List's Err.
func (l *List) Append(err error) {
	if err == nil {
		return
	}
	l.err = multierr.Append(l.err, err)
	l.n += len(multierr.Errors(err))
}

// Len returns the number of diagnostics recorded so far.
func (l *List) Len() int {
	return l.n
}

// Err returns nil if no diagnostics were recorded, otherwise a single error
// combining all of them.
func (l *List) Err() error {
	return l.err
}

// Diagnostics returns the individual diagnostics combined in err, in the order
// they were reported. Errors that are not diagnostics are returned with an
// unknown position.
func Diagnostics(err error) []*Diagnostic {
	var ds []*Diagnostic
	for _, e := range multierr.Errors(err) {
		var d *Diagnostic
		if errors.As(e, &d) {
			ds = append(ds, d)
		} else {
			ds = append(ds, &Diagnostic{Msg: e.Error()})
		}
	}
	return ds
}

// Messages returns just the message text of each diagnostic in err.
func Messages(err error) []string {
	ds := Diagnostics(err)
	msgs := make([]string, 0, len(ds))
	for _, d := range ds {
		msgs = append(msgs, d.Msg)
	}
	return msgs
}
