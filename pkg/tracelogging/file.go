package tracelogging

import (
	"github.com/Microsoft/go-tracelogging/pkg/tracelogging/diag"
	"github.com/Microsoft/go-tracelogging/pkg/tracelogging/layout"
	"github.com/Microsoft/go-tracelogging/pkg/tracelogging/schema"
	"github.com/Microsoft/go-tracelogging/pkg/tracelogging/syntax"
)

// CompiledProvider is a validated provider and its metadata block.
type CompiledProvider struct {
	Model    *schema.ProviderModel
	Metadata []byte
}

// Program is a compiled description file.
type Program struct {
	Name      string
	Providers []*CompiledProvider
	Events    []*layout.Layout
}

// Provider returns the provider declared with symbol.
func (prog *Program) Provider(symbol string) *CompiledProvider {
	for _, p := range prog.Providers {
		if p.Model.Symbol == symbol {
			return p
		}
	}
	return nil
}

// CompileFile validates and compiles every provider and event of f. All
// diagnostics of the file are returned together.
func CompileFile(f *syntax.File, env *schema.Env) (*Program, error) {
	var diags diag.List
	prog := &Program{Name: f.Name}

	symbols := make(map[string]bool, len(f.Providers))
	for _, desc := range f.Providers {
		if symbols[desc.Symbol] {
			diags.Addf(desc.Pos, "provider %q already declared", desc.Symbol)
		}
		symbols[desc.Symbol] = true

		m, err := schema.ParseProvider(desc)
		if err != nil {
			diags.Append(err)
			continue
		}
		prog.Providers = append(prog.Providers, &CompiledProvider{Model: m, Metadata: layout.EncodeProvider(m)})
	}

	for _, desc := range f.Events {
		if !symbols[desc.Provider] {
			diags.Addf(desc.Pos, "unknown provider %q", desc.Provider)
		}
		ev, err := schema.ParseEvent(desc, env)
		if err != nil {
			diags.Append(err)
			continue
		}
		l, err := layout.Compile(ev)
		if err != nil {
			diags.Add(desc.Pos, err.Error())
			continue
		}
		prog.Events = append(prog.Events, l)
	}

	if err := diags.Err(); err != nil {
		return nil, err
	}
	return prog, nil
}
