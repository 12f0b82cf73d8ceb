// Package syntax defines the description tree for TraceLogging providers and
// events. A description is a list of options, each a name followed by
// arguments: string literals, opaque value expressions, nested options such as
// tag(5), or a braced group of options.
package syntax

import (
	"strconv"

	"github.com/Microsoft/go-tracelogging/pkg/tracelogging/diag"
)

// Pos is a source location.
type Pos = diag.Pos

// Node is an option argument.
type Node interface {
	Position() Pos
	node()
}

// String is a string literal argument, such as a field name.
type String struct {
	Value string
	Pos   Pos
}

// Expr is an opaque expression argument, such as a value or an integer
// constant. Its text is only interpreted when it is folded to a constant or
// resolved when an event is written.
type Expr struct {
	Text string
	Pos  Pos
}

// Option is a named option with arguments, e.g. u32("x", v, tag(5)).
type Option struct {
	Name string
	Args []Node
	Pos  Pos
}

// Group is a braced list of options, used for the fields of a struct.
type Group struct {
	Options []*Option
	Pos     Pos
}

func (n *String) Position() Pos { return n.Pos }
func (n *Expr) Position() Pos   { return n.Pos }
func (n *Option) Position() Pos { return n.Pos }
func (n *Group) Position() Pos  { return n.Pos }

func (*String) node() {}
func (*Expr) node()   {}
func (*Option) node() {}
func (*Group) node()  {}

// AsExpr returns the expression form of an argument. String literals become
// quoted Go string expressions; options and groups are not expressions.
func AsExpr(n Node) (*Expr, bool) {
	switch n := n.(type) {
	case *Expr:
		return n, true
	case *String:
		return &Expr{Text: strconv.Quote(n.Value), Pos: n.Pos}, true
	}
	return nil, false
}

// Provider describes a provider: the symbol it is referenced by, its name and
// options such as id(...) and group_id(...).
type Provider struct {
	Symbol  string
	Name    *String
	Options []*Option
	Pos     Pos
}

// Event describes an event written by the provider named Provider.
type Event struct {
	Provider string
	Name     *String
	Options  []*Option
	Pos      Pos
}

// File is a parsed description document.
type File struct {
	Name      string
	Providers []*Provider
	Events    []*Event
}

// Str returns a string literal argument.
func Str(s string) *String {
	return &String{Value: s}
}

// X returns an expression argument.
func X(text string) *Expr {
	return &Expr{Text: text}
}

// Opt returns an option with the given arguments.
func Opt(name string, args ...Node) *Option {
	return &Option{Name: name, Args: args}
}

// Fields returns a group of options.
func Fields(opts ...*Option) *Group {
	return &Group{Options: opts}
}

// NewEvent returns an event description.
func NewEvent(provider, name string, opts ...*Option) *Event {
	return &Event{Provider: provider, Name: Str(name), Options: opts}
}

// NewProvider returns a provider description.
func NewProvider(symbol, name string, opts ...*Option) *Provider {
	return &Provider{Symbol: symbol, Name: Str(name), Options: opts}
}
