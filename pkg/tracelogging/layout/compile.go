package layout

import (
	"encoding/hex"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/Microsoft/go-tracelogging/pkg/etw"
	"github.com/Microsoft/go-tracelogging/pkg/tracelogging/catalog"
	"github.com/Microsoft/go-tracelogging/pkg/tracelogging/schema"
)

// MaxMetadataSize is the largest event metadata block, including its size
// prefix.
const MaxMetadataSize = 65535

type compiler struct {
	l   *Layout
	buf []byte
}

// Compile lays out a validated event. It fails only if the event metadata
// known at compile time already exceeds MaxMetadataSize, which the validator
// should have rejected.
func Compile(ev *schema.EventModel) (*Layout, error) {
	c := &compiler{
		l:   &Layout{Event: ev},
		buf: make([]byte, 0, 128),
	}

	c.keywords(ev.Keywords)

	c.tag("_tlgTag", ev.Tag)
	c.buf = append(c.buf, ev.Name...)
	c.buf = append(c.buf, 0)

	c.l.Descriptors = append(c.l.Descriptors,
		DescriptorSpec{Kind: DescProviderMetadata},
		DescriptorSpec{Kind: DescEventMetadata},
	)

	if ev.ActivityID != nil {
		c.l.Bindings = append(c.l.Bindings, Binding{Kind: BindActivityID, Name: "_tlgAid", Field: -1, Expr: ev.ActivityID.Text})
	}
	if ev.RelatedID != nil {
		c.l.Bindings = append(c.l.Bindings, Binding{Kind: BindRelatedID, Name: "_tlgRid", Field: -1, Expr: ev.RelatedID.Text})
	}

	for i, f := range ev.Fields {
		c.field(i, f)
	}
	c.flush()

	if size := c.l.minMetadataSize(); size > MaxMetadataSize {
		return nil, errors.Errorf("event %q metadata is %d bytes (limit is %d bytes)", ev.Name, size, MaxMetadataSize)
	}

	if !c.hasDeferred() {
		meta, err := c.l.build(nil)
		if err != nil {
			return nil, err
		}
		c.l.metadata = meta
	}

	if ev.Debug {
		c.l.log()
	}
	return c.l, nil
}

func (c *compiler) keywords(kws []schema.Value) {
	if len(kws) == 1 {
		c.l.Keyword = kws[0]
		return
	}

	var (
		mask    uint64
		isConst = true
		names   = make([]string, 0, len(kws))
	)
	for i, kw := range kws {
		name := "_tlgKeyword" + strconv.Itoa(i)
		c.l.Keywords = append(c.l.Keywords, NamedValue{Name: name, Value: kw})
		names = append(names, name)
		mask |= kw.Const
		isConst = isConst && kw.IsConst
	}
	c.l.Keyword = schema.Value{Expr: strings.Join(names, " | ")}
	if isConst {
		c.l.Keyword.Const = mask
		c.l.Keyword.IsConst = true
	}
}

func (c *compiler) field(i int, f *schema.FieldModel) {
	s := f.Strategy()

	if s.HasMetadata() {
		c.buf = append(c.buf, f.Name...)
		c.buf = append(c.buf, 0)

		hasOut := f.HasOutType()
		var inFlags uint8
		if hasOut {
			inFlags |= uint8(etw.InTypeChainFlag)
		}
		if s.IsSlice() {
			inFlags |= uint8(etw.InTypeVariableCountFlag)
		}
		c.typeCode(f.InType, uint8(f.Kind.InType), inFlags)

		if hasOut {
			var outFlags uint8
			if f.Tag != nil {
				outFlags = uint8(etw.OutTypeChainFlag)
			}
			c.typeCode(f.OutType, f.OutTypeByte, outFlags)
		}

		if f.Tag != nil {
			c.tag("_tlgTag"+strconv.Itoa(i), *f.Tag)
		}
	}

	elemSize := f.Kind.ElemSize()
	switch s {
	case catalog.Scalar:
		c.desc(DescValue, c.bind(i, f, BindScalar), elemSize)
	case catalog.Time32:
		c.desc(DescValue, c.bind(i, f, BindTime32), 8)
	case catalog.Time64:
		c.desc(DescValue, c.bind(i, f, BindTime64), 8)
	case catalog.SystemTime:
		c.desc(DescValue, c.bind(i, f, BindSystemTime), 8)
	case catalog.RawData, catalog.RawField, catalog.RawFieldSlice:
		c.desc(DescCounted, c.bind(i, f, BindSequence), elemSize)
	case catalog.Sid:
		c.desc(DescSid, c.bind(i, f, BindSequence), elemSize)
	case catalog.CStr:
		arg := c.bind(i, f, BindSequence)
		c.desc(DescCStr, arg, elemSize)
		c.desc(DescZero, -1, elemSize)
	case catalog.Counted:
		kind := BindSequence
		if f.Kind.ArrayLen != 0 {
			kind = BindScalar
		}
		c.withLength(c.bind(i, f, kind), CountedSize, DescCounted, elemSize)
	case catalog.Slice:
		c.withLength(c.bind(i, f, BindSequence), SliceCount, DescSlice, elemSize)
	case catalog.Struct, catalog.RawMeta, catalog.RawMetaSlice, catalog.RawStruct, catalog.RawStructSlice:
		// Metadata only.
	}
}

func (c *compiler) bind(i int, f *schema.FieldModel, kind BindingKind) int {
	b := Binding{
		Kind:     kind,
		Name:     "_tlgArg" + strconv.Itoa(i),
		Field:    i,
		Elem:     f.Kind.ValueType,
		ArrayLen: f.Kind.ArrayLen,
	}
	if f.Value != nil {
		b.Expr = f.Value.Text
	}
	c.l.Bindings = append(c.l.Bindings, b)
	return len(c.l.Bindings) - 1
}

func (c *compiler) desc(kind DescriptorKind, arg, elemSize int) {
	c.l.Descriptors = append(c.l.Descriptors, DescriptorSpec{Kind: kind, Arg: arg, ElemSize: elemSize})
}

// withLength adds a length slot for arg, then a descriptor for the slot and
// one for the payload.
func (c *compiler) withLength(arg int, fn LengthFunc, kind DescriptorKind, elemSize int) {
	slot := len(c.l.Lengths)
	c.l.Lengths = append(c.l.Lengths, LengthSlot{Arg: arg, Func: fn})
	c.l.Descriptors = append(c.l.Descriptors, DescriptorSpec{Kind: DescLength, Arg: arg, Slot: slot})
	c.desc(kind, arg, elemSize)
}

// typeCode appends a type code byte: v if set, otherwise def. Non-constant
// values become deferred chunks.
func (c *compiler) typeCode(v *schema.Value, def uint8, flags uint8) {
	switch {
	case v == nil:
		c.buf = append(c.buf, def|flags)
	case v.IsConst:
		c.buf = append(c.buf, uint8(v.Const)|flags)
	default:
		c.flush()
		c.l.Chunks = append(c.l.Chunks, Chunk{Kind: ChunkByte, Value: *v, Flags: flags})
	}
}

func (c *compiler) tag(name string, v schema.Value) {
	c.l.Tags = append(c.l.Tags, NamedValue{Name: name, Value: v})
	if v.IsConst {
		c.buf = etw.AppendTag(c.buf, uint32(v.Const))
		return
	}
	c.flush()
	c.l.Chunks = append(c.l.Chunks, Chunk{Kind: ChunkTag, Value: v})
}

// flush moves buffered literal bytes into a chunk.
func (c *compiler) flush() {
	if len(c.buf) == 0 {
		return
	}
	c.l.Chunks = append(c.l.Chunks, Chunk{Kind: ChunkLiteral, Bytes: c.buf})
	c.buf = make([]byte, 0, 64)
}

func (c *compiler) hasDeferred() bool {
	for _, ch := range c.l.Chunks {
		if ch.Kind != ChunkLiteral {
			return true
		}
	}
	return false
}

// minMetadataSize returns the smallest size the metadata block can have.
func (l *Layout) minMetadataSize() int {
	size := 2
	for _, ch := range l.Chunks {
		if ch.Kind == ChunkLiteral {
			size += len(ch.Bytes)
		} else {
			size++
		}
	}
	return size
}

func (l *Layout) log() {
	fields := logrus.Fields{
		"provider":    l.Event.Provider,
		"event":       l.Event.Name,
		"chunks":      len(l.Chunks),
		"bindings":    len(l.Bindings),
		"descriptors": len(l.Descriptors),
		"lengths":     len(l.Lengths),
		"keyword":     l.Keyword.String(),
	}
	if l.metadata != nil {
		fields["metadata"] = hex.EncodeToString(l.metadata)
	}
	logrus.WithFields(fields).Debug("compiled event layout")
}
