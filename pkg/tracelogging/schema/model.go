// Package schema validates provider and event descriptions and turns them
// into the models consumed by the layout compiler. Problems are collected as
// diagnostics and reported together once the whole description was walked.
package schema

import (
	"strconv"

	"github.com/Microsoft/go-tracelogging/pkg/guid"
	"github.com/Microsoft/go-tracelogging/pkg/tracelogging/catalog"
	"github.com/Microsoft/go-tracelogging/pkg/tracelogging/diag"
	"github.com/Microsoft/go-tracelogging/pkg/tracelogging/syntax"
)

// Value is an integer-valued description expression. Expressions that are
// constant in the parsing Env are folded; the rest are resolved when the event
// is written.
type Value struct {
	Expr    string
	Pos     diag.Pos
	Const   uint64
	IsConst bool
}

// ConstValue returns a folded Value.
func ConstValue(v uint64, expr string) Value {
	if expr == "" {
		expr = strconv.FormatUint(v, 10)
	}
	return Value{Expr: expr, Const: v, IsConst: true}
}

func (v Value) String() string {
	if v.IsConst && v.Expr != strconv.FormatUint(v.Const, 10) {
		return v.Expr + " (" + strconv.FormatUint(v.Const, 10) + ")"
	}
	return v.Expr
}

// EventModel is a validated event description with all defaults applied.
type EventModel struct {
	Provider string
	Name     string
	Pos      diag.Pos

	ID      Value
	Version Value
	Channel Value
	Level   Value
	Opcode  Value
	Task    Value
	// Keywords are combined with bitwise OR.
	Keywords []Value
	Tag      Value

	// ActivityID and RelatedID are the correlation handles passed when the
	// event is written, or nil if the event does not take them.
	ActivityID *syntax.Expr
	RelatedID  *syntax.Expr

	Fields []*FieldModel

	// Debug is set by the debug option; the compiled layout is logged.
	Debug bool
}

// FieldModel is one field of an event. A Struct field is followed by the
// fields nested in it; its OutTypeByte holds the number of nested fields.
type FieldModel struct {
	Name string
	Kind *catalog.FieldKind
	Pos  diag.Pos

	// InType overrides Kind.InType for raw fields.
	InType *Value
	// OutType is an explicit format(...) value, or the field count of a raw
	// struct. When nil, OutTypeByte is written.
	OutType     *Value
	OutTypeByte uint8
	Tag         *Value

	// Value is the source expression of the field value, nil for fields that
	// carry no data.
	Value *syntax.Expr
}

// Strategy returns the field's marshalling strategy.
func (f *FieldModel) Strategy() catalog.Strategy {
	return f.Kind.Strategy
}

// HasOutType reports whether the field metadata includes an out-type byte.
func (f *FieldModel) HasOutType() bool {
	return f.OutType != nil || f.OutTypeByte != 0 || f.Tag != nil
}

// ProviderModel is a validated provider description.
type ProviderModel struct {
	Symbol    string
	Name      string
	Pos       diag.Pos
	ID        guid.GUID
	GroupID   *guid.GUID
	GroupName string
	Debug     bool
}
