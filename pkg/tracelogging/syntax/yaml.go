package syntax

import (
	"os"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/Microsoft/go-tracelogging/pkg/tracelogging/diag"
)

// LoadFile reads and parses the YAML description document at path.
func LoadFile(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "read description")
	}
	return Load(path, data)
}

// Load parses a YAML description document:
//
//	providers:
//	  - symbol: PROV
//	    name: "MyCompany.MyComponent"
//	    options:
//	      - group_id: "12345678-9abc-def0-1234-56789abcdef0"
//	events:
//	  - provider: PROV
//	    name: "Started"
//	    options:
//	      - level: Informational
//	      - u32: ["pid", pid, {format: Hex}]
//	      - struct: ["point", [{i32: ["x", x]}, {i32: ["y", y]}]]
//
// Quoted scalars are string literals and plain scalars are expressions. A
// mapping in an argument list is one or more nested options, and a sequence is
// a braced group. Structural problems are reported as diagnostics.
func Load(name string, data []byte) (*File, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, errors.Wrapf(err, "parse %s", name)
	}

	l := loader{file: name}
	f := &File{Name: name}
	if doc.Kind == yaml.DocumentNode && len(doc.Content) > 0 {
		l.document(f, doc.Content[0])
	}
	if err := l.diags.Err(); err != nil {
		return nil, err
	}
	return f, nil
}

type loader struct {
	file  string
	diags diag.List
}

func (l *loader) pos(n *yaml.Node) Pos {
	return Pos{File: l.file, Line: n.Line, Col: n.Column}
}

func (l *loader) document(f *File, n *yaml.Node) {
	if n.Kind != yaml.MappingNode {
		l.diags.Add(l.pos(n), "expected mapping with providers and events")
		return
	}
	for i := 0; i+1 < len(n.Content); i += 2 {
		key, val := n.Content[i], n.Content[i+1]
		switch key.Value {
		case "providers":
			for _, item := range l.seq(val) {
				if p := l.provider(item); p != nil {
					f.Providers = append(f.Providers, p)
				}
			}
		case "events":
			for _, item := range l.seq(val) {
				if e := l.event(item); e != nil {
					f.Events = append(f.Events, e)
				}
			}
		default:
			l.diags.Addf(l.pos(key), "unknown key %q", key.Value)
		}
	}
}

func (l *loader) seq(n *yaml.Node) []*yaml.Node {
	switch n.Kind {
	case yaml.SequenceNode:
		return n.Content
	case yaml.ScalarNode:
		if n.Tag == "!!null" {
			return nil
		}
	}
	l.diags.Add(l.pos(n), "expected sequence")
	return nil
}

func (l *loader) provider(n *yaml.Node) *Provider {
	if n.Kind != yaml.MappingNode {
		l.diags.Add(l.pos(n), "expected provider mapping")
		return nil
	}
	p := &Provider{Pos: l.pos(n)}
	for i := 0; i+1 < len(n.Content); i += 2 {
		key, val := n.Content[i], n.Content[i+1]
		switch key.Value {
		case "symbol":
			p.Symbol = l.scalar(val)
		case "name":
			p.Name = &String{Value: l.scalar(val), Pos: l.pos(val)}
		case "options":
			p.Options = l.options(val)
		default:
			l.diags.Addf(l.pos(key), "unknown provider key %q", key.Value)
		}
	}
	if p.Name == nil {
		l.diags.Add(p.Pos, "expected string literal for provider name")
		return nil
	}
	return p
}

func (l *loader) event(n *yaml.Node) *Event {
	if n.Kind != yaml.MappingNode {
		l.diags.Add(l.pos(n), "expected event mapping")
		return nil
	}
	e := &Event{Pos: l.pos(n)}
	for i := 0; i+1 < len(n.Content); i += 2 {
		key, val := n.Content[i], n.Content[i+1]
		switch key.Value {
		case "provider":
			e.Provider = l.scalar(val)
		case "name":
			e.Name = &String{Value: l.scalar(val), Pos: l.pos(val)}
		case "options", "fields":
			e.Options = append(e.Options, l.options(val)...)
		default:
			l.diags.Addf(l.pos(key), "unknown event key %q", key.Value)
		}
	}
	if e.Name == nil {
		l.diags.Add(e.Pos, "expected string literal for event name")
		return nil
	}
	return e
}

func (l *loader) scalar(n *yaml.Node) string {
	if n.Kind != yaml.ScalarNode {
		l.diags.Add(l.pos(n), "expected scalar")
		return ""
	}
	return n.Value
}

// options converts a sequence of option items. Each item is either a bare
// option name or a mapping from option names to their arguments.
func (l *loader) options(n *yaml.Node) []*Option {
	var opts []*Option
	for _, item := range l.seq(n) {
		opts = append(opts, l.option(item)...)
	}
	return opts
}

func (l *loader) option(n *yaml.Node) []*Option {
	switch n.Kind {
	case yaml.ScalarNode:
		return []*Option{{Name: n.Value, Pos: l.pos(n)}}
	case yaml.MappingNode:
		opts := make([]*Option, 0, len(n.Content)/2)
		for i := 0; i+1 < len(n.Content); i += 2 {
			key, val := n.Content[i], n.Content[i+1]
			opts = append(opts, &Option{Name: key.Value, Args: l.args(val), Pos: l.pos(key)})
		}
		return opts
	}
	l.diags.Add(l.pos(n), "expected option")
	return nil
}

func (l *loader) args(n *yaml.Node) []Node {
	switch n.Kind {
	case yaml.ScalarNode:
		if n.Tag == "!!null" && n.Value == "" {
			return nil
		}
		return []Node{l.scalarNode(n)}
	case yaml.SequenceNode:
		var args []Node
		for _, c := range n.Content {
			args = append(args, l.arg(c)...)
		}
		return args
	case yaml.MappingNode:
		var args []Node
		for _, o := range l.option(n) {
			args = append(args, o)
		}
		return args
	}
	l.diags.Add(l.pos(n), "unsupported option arguments")
	return nil
}

func (l *loader) arg(n *yaml.Node) []Node {
	switch n.Kind {
	case yaml.ScalarNode:
		return []Node{l.scalarNode(n)}
	case yaml.MappingNode:
		var args []Node
		for _, o := range l.option(n) {
			args = append(args, o)
		}
		return args
	case yaml.SequenceNode:
		g := &Group{Pos: l.pos(n)}
		for _, item := range n.Content {
			g.Options = append(g.Options, l.option(item)...)
		}
		return []Node{g}
	}
	l.diags.Add(l.pos(n), "unsupported argument")
	return nil
}

func (l *loader) scalarNode(n *yaml.Node) Node {
	if n.Style&(yaml.DoubleQuotedStyle|yaml.SingleQuotedStyle) != 0 {
		return &String{Value: n.Value, Pos: l.pos(n)}
	}
	return &Expr{Text: n.Value, Pos: l.pos(n)}
}
