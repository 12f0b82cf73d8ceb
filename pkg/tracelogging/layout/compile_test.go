package layout

import (
	"encoding/binary"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Microsoft/go-tracelogging/pkg/etw"
	"github.com/Microsoft/go-tracelogging/pkg/tracelogging/catalog"
	"github.com/Microsoft/go-tracelogging/pkg/tracelogging/schema"
	"github.com/Microsoft/go-tracelogging/pkg/tracelogging/syntax"
)

func compile(t *testing.T, opts ...*syntax.Option) *Layout {
	t.Helper()
	ev, err := schema.ParseEvent(syntax.NewEvent("PROV", "E", opts...), nil)
	require.NoError(t, err)
	l, err := Compile(ev)
	require.NoError(t, err)
	return l
}

func withSize(body ...byte) []byte {
	b := make([]byte, 2, 2+len(body))
	binary.LittleEndian.PutUint16(b, uint16(2+len(body)))
	return append(b, body...)
}

func cat(parts ...[]byte) []byte {
	var b []byte
	for _, p := range parts {
		b = append(b, p...)
	}
	return b
}

func TestCompileSingleU32(t *testing.T) {
	l := compile(t, syntax.Opt("u32", syntax.Str("x"), syntax.X("1")))

	meta, err := l.Metadata(nil)
	require.NoError(t, err)
	assert.Equal(t, withSize(0x00, 'E', 0, 'x', 0, byte(etw.InTypeU32)), meta)
	assert.False(t, l.Deferred())

	assert.Equal(t, []DescriptorSpec{
		{Kind: DescProviderMetadata},
		{Kind: DescEventMetadata},
		{Kind: DescValue, Arg: 0, ElemSize: 4},
	}, l.Descriptors)
	require.Len(t, l.Bindings, 1)
	assert.Equal(t, BindScalar, l.Bindings[0].Kind)
	assert.Equal(t, "1", l.Bindings[0].Expr)
	assert.Equal(t, "_tlgArg0", l.Bindings[0].Name)
	assert.Empty(t, l.Lengths)
	assert.Equal(t, []NamedValue{{Name: "_tlgTag", Value: schema.ConstValue(0, "")}}, l.Tags)
}

func TestCompileCounted(t *testing.T) {
	l := compile(t, syntax.Opt("str8", syntax.Str("s"), syntax.Str("ok")))

	assert.Equal(t, []LengthSlot{{Arg: 0, Func: CountedSize}}, l.Lengths)
	assert.Equal(t, []DescriptorSpec{
		{Kind: DescProviderMetadata},
		{Kind: DescEventMetadata},
		{Kind: DescLength, Arg: 0, Slot: 0},
		{Kind: DescCounted, Arg: 0, ElemSize: 1},
	}, l.Descriptors)

	meta, err := l.Metadata(nil)
	require.NoError(t, err)
	assert.Equal(t, withSize(0x00, 'E', 0, 's', 0,
		byte(etw.InTypeStr8)|byte(etw.InTypeChainFlag), byte(etw.OutTypeUTF8)), meta)
}

func TestCompileStrategies(t *testing.T) {
	l := compile(t,
		syntax.Opt("activity_id", syntax.X("aid")),
		syntax.Opt("u8_slice", syntax.Str("a"), syntax.X("a")),
		syntax.Opt("cstr16", syntax.Str("b"), syntax.X("b")),
		syntax.Opt("win_sid", syntax.Str("c"), syntax.X("c")),
		syntax.Opt("time32", syntax.Str("d"), syntax.X("d")),
		syntax.Opt("systemtime", syntax.Str("e"), syntax.X("e")),
		syntax.Opt("ipv6", syntax.Str("f"), syntax.X("f")),
		syntax.Opt("raw_data", syntax.X("g")),
		syntax.Opt("struct", syntax.Str("h"), syntax.Fields(
			syntax.Opt("bool8", syntax.Str("i"), syntax.X("i")),
		)),
	)

	kinds := make([]BindingKind, 0, len(l.Bindings))
	for _, b := range l.Bindings {
		kinds = append(kinds, b.Kind)
	}
	assert.Equal(t, []BindingKind{
		BindActivityID, BindSequence, BindSequence, BindSequence, BindTime32,
		BindSystemTime, BindScalar, BindSequence, BindScalar,
	}, kinds)

	want := []DescriptorSpec{
		{Kind: DescProviderMetadata},
		{Kind: DescEventMetadata},
		{Kind: DescLength, Arg: 1, Slot: 0},
		{Kind: DescSlice, Arg: 1, ElemSize: 1},
		{Kind: DescCStr, Arg: 2, ElemSize: 2},
		{Kind: DescZero, Arg: -1, ElemSize: 2},
		{Kind: DescSid, Arg: 3, ElemSize: 1},
		{Kind: DescValue, Arg: 4, ElemSize: 8},
		{Kind: DescValue, Arg: 5, ElemSize: 8},
		{Kind: DescLength, Arg: 6, Slot: 1},
		{Kind: DescCounted, Arg: 6, ElemSize: 16},
		{Kind: DescCounted, Arg: 7, ElemSize: 1},
		{Kind: DescValue, Arg: 8, ElemSize: 1},
	}
	if diff := cmp.Diff(want, l.Descriptors); diff != "" {
		t.Errorf("descriptors mismatch (-want +got):\n%s", diff)
	}
	assert.Equal(t, []LengthSlot{{Arg: 1, Func: SliceCount}, {Arg: 6, Func: CountedSize}}, l.Lengths)

	meta, err := l.Metadata(nil)
	require.NoError(t, err)
	body := cat(
		[]byte{0x00, 'E', 0},
		[]byte{'a', 0, byte(etw.InTypeU8) | byte(etw.InTypeVariableCountFlag)},
		[]byte{'b', 0, byte(etw.InTypeCStr16)},
		[]byte{'c', 0, byte(etw.InTypeSID)},
		[]byte{'d', 0, byte(etw.InTypeFileTime)},
		[]byte{'e', 0, byte(etw.InTypeFileTime)},
		[]byte{'f', 0, byte(etw.InTypeBinary) | 0x80, byte(etw.OutTypeIPv6)},
		[]byte{'h', 0, byte(etw.InTypeStruct) | 0x80, 1},
		[]byte{'i', 0, byte(etw.InTypeU8) | 0x80, byte(etw.OutTypeBoolean)},
	)
	assert.Equal(t, withSize(body...), meta)
}

func TestDescriptorParity(t *testing.T) {
	opts := []*syntax.Option{
		syntax.Opt("activity_id", syntax.X("aid")),
		syntax.Opt("related_id", syntax.X("rid")),
	}
	for i := range catalog.Kinds {
		k := &catalog.Kinds[i]
		switch k.Strategy {
		case catalog.RawField, catalog.RawFieldSlice:
			opts = append(opts, syntax.Opt(k.Name, syntax.Str(k.Name), syntax.X("U8"), syntax.X("v")))
		case catalog.RawMeta, catalog.RawMetaSlice:
			opts = append(opts, syntax.Opt(k.Name, syntax.Str(k.Name), syntax.X("U8")))
		case catalog.RawStruct, catalog.RawStructSlice:
			opts = append(opts, syntax.Opt(k.Name, syntax.Str(k.Name), syntax.X("0")))
		case catalog.RawData:
			opts = append(opts, syntax.Opt(k.Name, syntax.X("v")))
		case catalog.Struct:
			opts = append(opts, syntax.Opt(k.Name, syntax.Str(k.Name)))
		default:
			opts = append(opts, syntax.Opt(k.Name, syntax.Str(k.Name), syntax.X("v")))
		}
	}

	// The whole catalog needs more than 128 data blocks; check it in windows.
	for start := 2; start < len(opts); start += 40 {
		end := start + 40
		if end > len(opts) {
			end = len(opts)
		}
		l := compile(t, append(opts[:2:2], opts[start:end]...)...)

		want := 2
		for _, f := range l.Event.Fields {
			want += int(f.Strategy().DataCount())
		}
		assert.Equal(t, want, len(l.Descriptors), "fields %d-%d", start, end)
		assert.Equal(t, BindActivityID, l.Bindings[0].Kind)
		assert.Equal(t, BindRelatedID, l.Bindings[1].Kind)
	}
}

func TestCompileTagsAndDeferred(t *testing.T) {
	l := compile(t,
		syntax.Opt("tag", syntax.X("eventTag")),
		syntax.Opt("u32", syntax.Str("a"), syntax.X("a"), syntax.Opt("tag", syntax.X("5"))),
		syntax.Opt("u32", syntax.Str("b"), syntax.X("b"), syntax.Opt("format", syntax.X("myFormat"))),
		syntax.Opt("raw_field", syntax.Str("c"), syntax.X("rawType"), syntax.X("c")),
	)
	require.True(t, l.Deferred())

	kinds := make([]ChunkKind, 0, len(l.Chunks))
	for _, ch := range l.Chunks {
		kinds = append(kinds, ch.Kind)
	}
	assert.Equal(t, []ChunkKind{ChunkTag, ChunkLiteral, ChunkByte, ChunkLiteral, ChunkByte}, kinds)
	assert.Equal(t, uint8(0), l.Chunks[2].Flags)
	assert.Equal(t, "myFormat", l.Chunks[2].Value.Expr)
	assert.Equal(t, uint8(0), l.Chunks[4].Flags)

	assert.Equal(t, []string{"_tlgTag", "_tlgTag0"}, []string{l.Tags[0].Name, l.Tags[1].Name})

	_, err := l.Metadata(nil)
	assert.Error(t, err)

	r := Values{"eventTag": 0x0fe00000, "myFormat": uint64(etw.OutTypeHex), "rawType": uint64(etw.InTypeI16)}
	meta, err := l.Metadata(r)
	require.NoError(t, err)
	body := cat(
		[]byte{0x7f, 'E', 0},
		[]byte{'a', 0, byte(etw.InTypeU32) | 0x80, 0x80}, etw.EncodeTag(5),
		[]byte{'b', 0, byte(etw.InTypeU32) | 0x80, byte(etw.OutTypeHex)},
		[]byte{'c', 0, byte(etw.InTypeI16)},
	)
	assert.Equal(t, withSize(body...), meta)

	r["eventTag"] = 0x10000000
	_, err = l.Metadata(r)
	assert.ErrorContains(t, err, "must not be greater than 0x0FFFFFFF")

	r["eventTag"] = 0
	r["myFormat"] = 0x100
	_, err = l.Metadata(r)
	assert.ErrorContains(t, err, "does not fit in a byte")
}

func TestCompileKeywords(t *testing.T) {
	l := compile(t, syntax.Opt("keyword", syntax.X("0x10")))
	assert.Empty(t, l.Keywords)
	assert.Equal(t, uint64(0x10), l.Keyword.Const)

	l = compile(t,
		syntax.Opt("keyword", syntax.X("0x10")),
		syntax.Opt("keyword", syntax.X("0x4")),
		syntax.Opt("keyword", syntax.X("1")),
	)
	require.Len(t, l.Keywords, 3)
	assert.Equal(t, "_tlgKeyword2", l.Keywords[2].Name)
	assert.Equal(t, "_tlgKeyword0 | _tlgKeyword1 | _tlgKeyword2", l.Keyword.Expr)
	assert.True(t, l.Keyword.IsConst)
	assert.Equal(t, uint64(0x15), l.Keyword.Const)

	l = compile(t,
		syntax.Opt("keyword", syntax.X("0x10")),
		syntax.Opt("keyword", syntax.X("kwDynamic")),
	)
	assert.False(t, l.Keyword.IsConst)
	mask, err := l.KeywordMask(Values{"kwDynamic": 0x100})
	require.NoError(t, err)
	assert.Equal(t, uint64(0x110), mask)
}

func TestEventDescriptor(t *testing.T) {
	l := compile(t)
	d, err := l.EventDescriptor(nil)
	require.NoError(t, err)
	assert.Equal(t, *etw.NewEventDescriptor(), d)

	l = compile(t,
		syntax.Opt("id_version", syntax.X("12"), syntax.X("3")),
		syntax.Opt("level", syntax.X("lvl")),
		syntax.Opt("opcode", syntax.X("Stop")),
		syntax.Opt("task", syntax.X("7")),
		syntax.Opt("channel", syntax.X("TraceClassic")),
	)
	_, err = l.EventDescriptor(nil)
	assert.ErrorContains(t, err, `unresolved expression "lvl"`)

	d, err = l.EventDescriptor(Values{"lvl": 2})
	require.NoError(t, err)
	assert.Equal(t, etw.EventDescriptor{
		ID:      12,
		Version: 3,
		Channel: etw.ChannelTraceClassic,
		Level:   etw.LevelError,
		Opcode:  etw.OpcodeStop,
		Task:    7,
		Keyword: 1,
	}, d)

	_, err = l.EventDescriptor(Values{"lvl": 256})
	assert.ErrorContains(t, err, "level 256 out of range")
}

func TestCompileTooLarge(t *testing.T) {
	k, _ := catalog.Lookup("u8")
	ev := &schema.EventModel{
		Name:     "E",
		Level:    schema.ConstValue(5, ""),
		Keywords: []schema.Value{schema.ConstValue(1, "")},
		Tag:      schema.ConstValue(0, ""),
		Fields: []*schema.FieldModel{
			{Name: strings.Repeat("x", 65530), Kind: k},
		},
	}
	_, err := Compile(ev)
	assert.ErrorContains(t, err, "limit is 65535 bytes")

	ev.Fields[0].Name = strings.Repeat("x", 65525)
	l, err := Compile(ev)
	require.NoError(t, err)
	meta, err := l.Metadata(nil)
	require.NoError(t, err)
	assert.Len(t, meta, 2+1+2+65526+1)
}

func TestValuesAndChain(t *testing.T) {
	v := Values{"a": 1}
	x, err := v.Resolve(" a ")
	require.NoError(t, err)
	assert.Equal(t, uint64(1), x)

	r := Chain{Values{"a": 1}, schema.NewEnv(map[string]int64{"B": 2})}
	x, err = r.Resolve("B << 1")
	require.NoError(t, err)
	assert.Equal(t, uint64(4), x)

	_, err = r.Resolve("c")
	assert.Error(t, err)
	_, err = Chain{}.Resolve("c")
	assert.Error(t, err)
}
