package schema

import (
	"strings"

	"github.com/Microsoft/go-tracelogging/pkg/etw"
	"github.com/Microsoft/go-tracelogging/pkg/guid"
	"github.com/Microsoft/go-tracelogging/pkg/tracelogging/diag"
	"github.com/Microsoft/go-tracelogging/pkg/tracelogging/syntax"
)

// MaxProviderNameLen is the largest provider name, in bytes, that fits in the
// provider metadata block.
const MaxProviderNameLen = 32767

const expectedGUID = `expected "GUID", e.g. "20cf46dd-3b90-476c-94e9-4e74bbc30e31"`

// ParseProvider validates a provider description. If no id option is given,
// the provider ID is derived from the provider name.
func ParseProvider(p *syntax.Provider) (*ProviderModel, error) {
	var diags diag.List

	m := &ProviderModel{Symbol: p.Symbol, Pos: p.Pos}
	if p.Name == nil {
		diags.Add(p.Pos, "expected string literal for provider name")
	} else {
		m.Name = p.Name.Value
		if len(m.Name) > MaxProviderNameLen {
			diags.Addf(p.Name.Pos, "provider name must be less than 32768 bytes (got %d)", len(m.Name))
		}
		if strings.IndexByte(m.Name, 0) >= 0 {
			diags.Add(p.Name.Pos, "provider name must not contain '\\0'")
		}
	}

	idSet := false
	groupNameSet := false
	for _, opt := range p.Options {
		switch opt.Name {
		case "debug":
			m.Debug = true
		case "id":
			if idSet {
				diags.Add(opt.Pos, "id already set")
			}
			idSet = true
			if g, ok := parseGUIDArg(&diags, opt); ok {
				m.ID = g
			}
		case "group_id", "groupid":
			if m.GroupID != nil {
				diags.Add(opt.Pos, "group_id already set")
			}
			g, _ := parseGUIDArg(&diags, opt)
			m.GroupID = &g
		case "group_name", "groupname":
			if groupNameSet {
				diags.Add(opt.Pos, "group_name already set")
			}
			name, ok := stringArg(opt)
			if !ok {
				diags.Add(opt.Pos, `expected "groupname"`)
				continue
			}
			for _, c := range name.Value {
				if !(c >= 'a' && c <= 'z' || c >= '0' && c <= '9') {
					diags.Add(name.Pos, "group_name must contain only lowercase ASCII letters and ASCII digits")
					break
				}
			}
			m.GroupName = name.Value
			groupNameSet = name.Value != ""
		default:
			diags.Add(opt.Pos, `expected id("GUID") or group_id("GUID")`)
		}
	}

	if !idSet {
		m.ID = etw.ProviderIDFromName(m.Name)
	}

	if err := diags.Err(); err != nil {
		return nil, err
	}
	return m, nil
}

func stringArg(opt *syntax.Option) (*syntax.String, bool) {
	if len(opt.Args) != 1 {
		return nil, false
	}
	s, ok := opt.Args[0].(*syntax.String)
	return s, ok
}

func parseGUIDArg(diags *diag.List, opt *syntax.Option) (guid.GUID, bool) {
	s, ok := stringArg(opt)
	if !ok {
		diags.Add(opt.Pos, expectedGUID)
		return guid.GUID{}, false
	}
	g, err := guid.FromString(s.Value)
	if err != nil {
		diags.Add(s.Pos, expectedGUID)
		return guid.GUID{}, false
	}
	return g, true
}
