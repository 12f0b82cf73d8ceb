package schema

import (
	"math"
	"strings"

	"github.com/Microsoft/go-tracelogging/pkg/etw"
	"github.com/Microsoft/go-tracelogging/pkg/tracelogging/catalog"
	"github.com/Microsoft/go-tracelogging/pkg/tracelogging/diag"
	"github.com/Microsoft/go-tracelogging/pkg/tracelogging/syntax"
)

const (
	metadataBytesMax = math.MaxUint16 // TraceLogging limit
	structFieldsMax  = 127            // TraceLogging limit
	dataDescMax      = 128            // EventWrite limit
	fieldsMax        = 128            // TDH limit
)

type eventParser struct {
	env   *Env
	diags diag.List
	ev    *EventModel

	id, version, channel, level, opcode, task, tag *Value

	// Set to 0 once a diagnostic was reported. The estimate assumes every
	// struct has at least one field and every tag takes 4 bytes.
	metadataBytesUsed uint16
	// Set to 0 once a diagnostic was reported.
	dataDescUsed uint8
}

// ParseEvent validates an event description. Constant expressions are folded
// using env, which may be nil. All problems found are returned together.
func ParseEvent(e *syntax.Event, env *Env) (*EventModel, error) {
	p := &eventParser{
		env:               env,
		ev:                &EventModel{Provider: e.Provider, Pos: e.Pos},
		metadataBytesUsed: 2 + 4, // metadata size + estimated event tag size
		dataDescUsed:      2,     // provider metadata, event metadata
	}

	if e.Name == nil {
		p.diags.Add(e.Pos, "expected string literal for event name")
	} else {
		p.ev.Name = e.Name.Value
		p.addMetadata(e.Name.Pos, len(e.Name.Value)+1)
		if strings.IndexByte(e.Name.Value, 0) >= 0 {
			p.diags.Add(e.Name.Pos, "event name must not contain '\\0'")
		}
	}

	p.options(e.Options, false)
	p.applyDefaults()

	if err := p.diags.Err(); err != nil {
		return nil, err
	}
	return p.ev, nil
}

func (p *eventParser) applyDefaults() {
	ev := p.ev
	ev.ID = orDefault(p.id, ConstValue(0, ""))
	ev.Version = orDefault(p.version, ConstValue(0, ""))
	ev.Channel = orDefault(p.channel, ConstValue(uint64(etw.ChannelTraceLogging), "etw.ChannelTraceLogging"))
	ev.Level = orDefault(p.level, ConstValue(uint64(etw.LevelVerbose), "etw.LevelVerbose"))
	ev.Opcode = orDefault(p.opcode, ConstValue(uint64(etw.OpcodeInfo), "etw.OpcodeInfo"))
	ev.Task = orDefault(p.task, ConstValue(0, ""))
	if len(ev.Keywords) == 0 {
		ev.Keywords = []Value{ConstValue(1, "")}
	}
	ev.Tag = orDefault(p.tag, ConstValue(0, ""))
}

func orDefault(v *Value, def Value) Value {
	if v == nil {
		return def
	}
	return *v
}

// options parses a list of event or struct options and returns the number of
// logical fields added, saturating at 255.
func (p *eventParser) options(opts []*syntax.Option, inStruct bool) uint8 {
	var added uint8
	for _, opt := range opts {
		kind, ok := catalog.Lookup(opt.Name)
		if !ok {
			p.eventOption(opt, inStruct)
			continue
		}

		p.field(opt, kind, inStruct)

		if kind.Strategy.HasMetadata() {
			if inStruct && added == structFieldsMax {
				p.diags.Add(opt.Pos, "too many fields in struct (limit 127)")
			}
			if added < math.MaxUint8 {
				added++
			}
		}
	}
	return added
}

func (p *eventParser) field(opt *syntax.Option, kind *catalog.FieldKind, inStruct bool) {
	f := &FieldModel{Kind: kind, Pos: opt.Pos, OutTypeByte: uint8(kind.OutType)}
	caps := kind.Strategy.Capabilities()
	args := opt.Args

	if kind.Strategy.HasMetadata() {
		args = p.fieldName(f, opt, args)
	}

	if caps.InType {
		var x *syntax.Expr
		if x, args = p.expr(opt, args, "expected InType value, e.g. Bool32, etw.InTypeBool32, or 13"); x != nil {
			v := p.enumValue(x, catalog.InTypes)
			f.InType = &v
		}
	}

	if caps.FieldCount {
		if inStruct {
			p.diags.Add(opt.Pos, "RawStruct not allowed within Struct")
		}
		var x *syntax.Expr
		if x, args = p.expr(opt, args, "expected struct field count value, e.g. 2"); x != nil {
			v := p.value(&syntax.Expr{Text: "etw.OutType(" + x.Text + ")", Pos: x.Pos})
			f.OutType = &v
		}
	}

	if kind.Strategy.DataCount() != 0 {
		f.Value, args = p.expr(opt, args, "expected field value")
	}

	var group *syntax.Group
	for _, arg := range args {
		switch arg := arg.(type) {
		case *syntax.Option:
			switch {
			case arg.Name == "tag" && caps.Tag:
				if f.Tag != nil {
					p.diags.Add(arg.Pos, "tag already set")
				}
				if v, ok := p.tagValue(arg); ok {
					f.Tag = &v
				}
			case arg.Name == "format" && caps.Format:
				if f.OutType != nil {
					p.diags.Add(arg.Pos, "format already set")
				}
				if x, _ := p.single(arg, "expected OutType value, e.g. String, etw.OutTypeString, or 2"); x != nil {
					v := p.enumValue(x, catalog.OutTypes)
					f.OutType = &v
				}
			default:
				p.diags.Add(arg.Pos, "unrecognized option")
			}
		case *syntax.Group:
			if !caps.Group || group != nil {
				p.diags.Add(arg.Pos, "unrecognized option")
				continue
			}
			group = arg
		default:
			p.diags.Add(arg.Position(), "unexpected argument")
		}
	}

	if group == nil {
		p.pushField(f)
		return
	}

	// Assume the struct has fields until they have been counted.
	index := len(p.ev.Fields)
	f.OutTypeByte = 1
	p.pushField(f)
	n := p.options(group.Options, true)
	p.ev.Fields[index].OutTypeByte = n & uint8(etw.OutTypeTypeMask)
}

func (p *eventParser) fieldName(f *FieldModel, opt *syntax.Option, args []syntax.Node) []syntax.Node {
	const msg = "expected field name (must be a string literal, e.g. \"field name\")"
	if len(args) == 0 {
		p.diags.Add(opt.Pos, msg)
		return args
	}
	switch name := args[0].(type) {
	case *syntax.String:
		f.Name = name.Value
		if strings.IndexByte(name.Value, 0) >= 0 {
			p.diags.Add(name.Pos, "field name must not contain '\\0'")
		}
		return args[1:]
	case *syntax.Expr:
		p.diags.Add(name.Pos, msg)
		return args[1:]
	default:
		p.diags.Add(args[0].Position(), msg)
		return args
	}
}

// expr consumes the next positional argument as an expression.
func (p *eventParser) expr(opt *syntax.Option, args []syntax.Node, msg string) (*syntax.Expr, []syntax.Node) {
	if len(args) > 0 {
		if x, ok := syntax.AsExpr(args[0]); ok {
			return x, args[1:]
		}
		p.diags.Add(args[0].Position(), msg)
		return nil, args
	}
	p.diags.Add(opt.Pos, msg)
	return nil, args
}

// single returns the only argument of opt as an expression.
func (p *eventParser) single(opt *syntax.Option, msg string) (*syntax.Expr, bool) {
	x, rest := p.expr(opt, opt.Args, msg)
	for _, extra := range rest {
		p.diags.Add(extra.Position(), "unexpected argument")
	}
	return x, x != nil && len(rest) == 0
}

func (p *eventParser) pushField(f *FieldModel) {
	size := len(f.Name) + 1 // name nul-termination
	switch {
	case f.Tag != nil:
		size += 6 // intype + outtype + tag
	case f.OutType != nil || f.OutTypeByte != 0:
		size += 2 // intype + outtype
	default:
		size++ // intype
	}
	p.addMetadata(f.Pos, size)
	p.addDataDesc(f.Pos, f.Kind.Strategy.DataCount())

	if len(p.ev.Fields) == fieldsMax {
		p.diags.Add(f.Pos, "event has too many fields (limit is 128 fields)")
	}
	p.ev.Fields = append(p.ev.Fields, f)
}

func (p *eventParser) addMetadata(pos diag.Pos, size int) {
	switch {
	case p.metadataBytesUsed == 0:
		// Already reported.
	case metadataBytesMax-int(p.metadataBytesUsed) >= size:
		p.metadataBytesUsed += uint16(size)
	default:
		p.metadataBytesUsed = 0
		p.diags.Add(pos, "event metadata is too large (includes event name string, field name strings, and field type codes; limit is 65535 bytes)")
	}
}

func (p *eventParser) addDataDesc(pos diag.Pos, count uint8) {
	switch {
	case p.dataDescUsed == 0:
		// Already reported.
	case dataDescMax-p.dataDescUsed >= count:
		p.dataDescUsed += count
	default:
		p.dataDescUsed = 0
		p.diags.Add(pos, "event has too many blocks of data (1 block per fixed-length field, 2 blocks per variable-length field; limit is 128 blocks)")
	}
}

func (p *eventParser) eventOption(opt *syntax.Option, inStruct bool) {
	if inStruct {
		p.diags.Add(opt.Pos, "unrecognized option")
		return
	}

	switch opt.Name {
	case "debug":
		p.ev.Debug = true
	case "id_version":
		if p.id != nil {
			p.diags.Add(opt.Pos, "id_version already set")
		}
		id, rest := p.expr(opt, opt.Args, "expected Id value, e.g. 1 or 0x200F")
		version, rest := p.expr(opt, rest, "expected Version value, e.g. 0 or 0x1F")
		for _, extra := range rest {
			p.diags.Add(extra.Position(), "unexpected argument")
		}
		if id != nil && version != nil {
			p.id = p.sized(id, 16, "id")
			p.version = p.sized(version, 8, "version")
		}
	case "channel":
		p.setEnum(&p.channel, opt, catalog.Channels, "expected Channel value, e.g. TraceLogging, etw.ChannelTraceLogging, or 11")
	case "level":
		p.setEnum(&p.level, opt, catalog.Levels, "expected Level value, e.g. Verbose, etw.LevelVerbose, or 5")
	case "opcode":
		p.setEnum(&p.opcode, opt, catalog.Opcodes, "expected Opcode value, e.g. Info, etw.OpcodeInfo, or 0")
	case "task":
		if p.task != nil {
			p.diags.Add(opt.Pos, "task already set")
		}
		if x, ok := p.single(opt, "expected Task value, e.g. 1 or 0x2001"); ok {
			p.task = p.sized(x, 16, "task")
		}
	case "keyword":
		if x, ok := p.single(opt, "expected Keyword value, e.g. 0x100F"); ok {
			p.ev.Keywords = append(p.ev.Keywords, p.value(x))
		}
	case "tag":
		if p.tag != nil {
			p.diags.Add(opt.Pos, "tag already set")
		}
		if v, ok := p.tagValue(opt); ok {
			p.tag = &v
		}
	case "activity_id":
		if p.ev.ActivityID != nil {
			p.diags.Add(opt.Pos, "activity_id already set")
		}
		if x, ok := p.single(opt, "expected Activity Id variable"); ok {
			p.ev.ActivityID = x
		}
	case "related_id":
		if p.ev.RelatedID != nil {
			p.diags.Add(opt.Pos, "related_id already set")
		}
		if x, ok := p.single(opt, "expected Related Id variable"); ok {
			p.ev.RelatedID = x
		}
	default:
		p.diags.Add(opt.Pos, "unrecognized option")
	}
}

func (p *eventParser) setEnum(dst **Value, opt *syntax.Option, e *catalog.Enum, msg string) {
	if *dst != nil {
		p.diags.Add(opt.Pos, opt.Name+" already set")
	}
	if x, ok := p.single(opt, msg); ok {
		v := p.enumValue(x, e)
		*dst = &v
	}
}

func (p *eventParser) tagValue(opt *syntax.Option) (Value, bool) {
	x, ok := p.single(opt, "expected Tag value, e.g. 1 or 0x0FF00000")
	if !ok {
		return Value{}, false
	}
	v := p.value(x)
	if v.IsConst && v.Const > etw.MaxTag {
		p.diags.Add(x.Pos, "tag must not be greater than 0x0FFFFFFF")
	}
	return v, true
}

// enumValue rewrites an enumeration-valued expression: a leading digit is
// wrapped in a conversion to the enumeration type, a known symbolic name is
// qualified, and anything else is kept as written.
func (p *eventParser) enumValue(x *syntax.Expr, e *catalog.Enum) Value {
	text := strings.TrimSpace(x.Text)
	if text != "" && text[0] >= '0' && text[0] <= '9' {
		v := p.value(&syntax.Expr{Text: e.Type + "(" + text + ")", Pos: x.Pos})
		if !v.IsConst {
			p.diags.Addf(x.Pos, "%s is not a valid %s value", text, e.Type)
		}
		return v
	}
	if n, ok := e.Lookup(text); ok {
		text = e.Qualified(n)
	}
	return p.value(&syntax.Expr{Text: text, Pos: x.Pos})
}

func (p *eventParser) value(x *syntax.Expr) Value {
	v := Value{Expr: x.Text, Pos: x.Pos}
	v.Const, v.IsConst = p.env.Fold(x.Text)
	return v
}

// sized folds x and reports constants that do not fit in bits.
func (p *eventParser) sized(x *syntax.Expr, bits uint, what string) *Value {
	v := p.value(x)
	if v.IsConst && v.Const>>bits != 0 {
		p.diags.Addf(x.Pos, "%s value %s does not fit in %d bits", what, x.Text, bits)
	}
	return &v
}
