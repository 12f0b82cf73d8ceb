// Package layout compiles validated event models into the TraceLogging event
// metadata block and the plan used to marshal event values into data
// descriptors, and encodes provider metadata blocks.
package layout

import (
	"reflect"

	"github.com/Microsoft/go-tracelogging/pkg/tracelogging/schema"
)

// ChunkKind identifies the contents of a metadata Chunk.
type ChunkKind uint8

const (
	// ChunkLiteral is a run of bytes known at compile time.
	ChunkLiteral ChunkKind = iota
	// ChunkByte is a single type code byte resolved when the event is written.
	ChunkByte
	// ChunkTag is a tag resolved and encoded when the event is written.
	ChunkTag
)

// Chunk is a piece of event metadata. Literal chunks never follow each other;
// the compiler merges adjacent known bytes.
type Chunk struct {
	Kind  ChunkKind
	Bytes []byte
	// Value is the deferred expression of a ChunkByte or ChunkTag.
	Value schema.Value
	// Flags are OR'ed into a resolved ChunkByte.
	Flags uint8
}

// BindingKind is the shape of an argument passed when writing an event.
type BindingKind uint8

const (
	// BindActivityID is the activity ID correlation handle.
	BindActivityID BindingKind = iota
	// BindRelatedID is the related activity ID correlation handle.
	BindRelatedID
	// BindScalar is a single value, or a fixed-length array of Elem.
	BindScalar
	// BindTime32 is a 32-bit time_t converted to a FILETIME.
	BindTime32
	// BindTime64 is a 64-bit time_t converted to a FILETIME.
	BindTime64
	// BindSystemTime is a calendar time converted to a FILETIME.
	BindSystemTime
	// BindSequence is a contiguous sequence of Elem values.
	BindSequence
)

var bindingKindNames = [...]string{"ActivityID", "RelatedID", "Scalar", "Time32", "Time64", "SystemTime", "Sequence"}

func (k BindingKind) String() string {
	if int(k) < len(bindingKindNames) {
		return bindingKindNames[k]
	}
	return "BindingKind?"
}

// Binding is one argument of the event, in call order.
type Binding struct {
	Kind BindingKind
	// Name is the argument name used in diagnostics, e.g. "_tlgArg3".
	Name string
	// Field is the index of the bound field, or -1 for correlation handles.
	Field int
	// Expr is the source expression the argument is taken from.
	Expr     string
	Elem     reflect.Type
	ArrayLen int
}

// DescriptorKind identifies what a data descriptor references.
type DescriptorKind uint8

const (
	DescProviderMetadata DescriptorKind = iota
	DescEventMetadata
	// DescValue references an argument's bytes directly.
	DescValue
	// DescCStr references a string argument up to its first nul element.
	DescCStr
	// DescZero references a static nul element terminating a DescCStr.
	DescZero
	// DescSid references a SID argument, sized by its sub-authority count.
	DescSid
	// DescCounted references an argument truncated to 65535 bytes.
	DescCounted
	// DescSlice references an argument truncated to 65535 elements.
	DescSlice
	// DescLength references a computed length slot.
	DescLength
)

var descriptorKindNames = [...]string{"ProviderMetadata", "EventMetadata", "Value", "CStr", "Zero", "Sid", "Counted", "Slice", "Length"}

func (k DescriptorKind) String() string {
	if int(k) < len(descriptorKindNames) {
		return descriptorKindNames[k]
	}
	return "DescriptorKind?"
}

// DescriptorSpec is one entry of the data descriptor array.
type DescriptorSpec struct {
	Kind DescriptorKind
	// Arg is the binding index for descriptors referencing an argument.
	Arg int
	// Slot is the length slot index for DescLength.
	Slot int
	// ElemSize is the element size for DescCStr, DescZero and DescSlice.
	ElemSize int
}

// LengthFunc computes a length slot from its argument.
type LengthFunc uint8

const (
	// CountedSize is the argument's byte count.
	CountedSize LengthFunc = iota
	// SliceCount is the argument's element count.
	SliceCount
)

func (f LengthFunc) String() string {
	if f == SliceCount {
		return "SliceCount"
	}
	return "CountedSize"
}

// LengthSlot is a UINT16 length computed when the event is written.
type LengthSlot struct {
	Arg  int
	Func LengthFunc
}

// NamedValue is a named constant of the compiled event.
type NamedValue struct {
	Name  string
	Value schema.Value
}

// Layout is a compiled event. It is immutable and may be shared.
type Layout struct {
	Event *schema.EventModel

	Chunks []Chunk
	// Tags lists the event tag and each field tag, named _tlgTag and
	// _tlgTagN for field N.
	Tags []NamedValue
	// Keywords lists the named keyword constants when the event has more than
	// one keyword. Keyword is their bitwise OR.
	Keywords []NamedValue
	Keyword  schema.Value

	Bindings    []Binding
	Descriptors []DescriptorSpec
	Lengths     []LengthSlot

	// metadata is set when every chunk is literal.
	metadata []byte
}

// Deferred reports whether any metadata byte is resolved at write time.
func (l *Layout) Deferred() bool {
	return l.metadata == nil
}
