package schema

import (
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Microsoft/go-tracelogging/pkg/etw"
	"github.com/Microsoft/go-tracelogging/pkg/tracelogging/catalog"
	"github.com/Microsoft/go-tracelogging/pkg/tracelogging/diag"
	. "github.com/Microsoft/go-tracelogging/pkg/tracelogging/syntax" //nolint:revive // description DSL
)

func parse(t *testing.T, opts ...*Option) *EventModel {
	t.Helper()
	ev, err := ParseEvent(NewEvent("PROV", "E", opts...), nil)
	require.NoError(t, err)
	return ev
}

func parseErr(t *testing.T, opts ...*Option) []string {
	t.Helper()
	_, err := ParseEvent(NewEvent("PROV", "E", opts...), nil)
	require.Error(t, err)
	return diag.Messages(err)
}

func count(msgs []string, substr string) int {
	n := 0
	for _, m := range msgs {
		if strings.Contains(m, substr) {
			n++
		}
	}
	return n
}

func TestEventDefaults(t *testing.T) {
	ev := parse(t, Opt("u32", Str("x"), X("1")))

	assert.Equal(t, "PROV", ev.Provider)
	assert.Equal(t, "E", ev.Name)
	assert.Equal(t, ConstValue(0, ""), ev.ID)
	assert.Equal(t, ConstValue(0, ""), ev.Version)
	assert.Equal(t, uint64(etw.ChannelTraceLogging), ev.Channel.Const)
	assert.Equal(t, uint64(etw.LevelVerbose), ev.Level.Const)
	assert.Equal(t, uint64(etw.OpcodeInfo), ev.Opcode.Const)
	assert.Equal(t, ConstValue(0, ""), ev.Task)
	assert.Equal(t, []Value{ConstValue(1, "")}, ev.Keywords)
	assert.Equal(t, ConstValue(0, ""), ev.Tag)
	assert.Nil(t, ev.ActivityID)
	assert.Nil(t, ev.RelatedID)
	assert.False(t, ev.Debug)

	require.Len(t, ev.Fields, 1)
	f := ev.Fields[0]
	assert.Equal(t, "x", f.Name)
	assert.Equal(t, catalog.Scalar, f.Strategy())
	assert.Equal(t, "1", f.Value.Text)
	assert.Nil(t, f.Tag)
	assert.Nil(t, f.OutType)
	assert.False(t, f.HasOutType())
}

func TestEventOptions(t *testing.T) {
	ev := parse(t,
		Opt("id_version", X("7"), X("2")),
		Opt("channel", X("TraceClassic")),
		Opt("level", X("Informational")),
		Opt("opcode", X("3")),
		Opt("task", X("0x20")),
		Opt("keyword", X("0x10")),
		Opt("keyword", X("1 << 3")),
		Opt("tag", X("0x0FF00000")),
		Opt("activity_id", X("aid")),
		Opt("related_id", X("rid")),
		Opt("debug"),
	)

	assert.Equal(t, uint64(7), ev.ID.Const)
	assert.Equal(t, uint64(2), ev.Version.Const)
	assert.Equal(t, "etw.ChannelTraceClassic", ev.Channel.Expr)
	assert.Equal(t, uint64(etw.ChannelTraceClassic), ev.Channel.Const)
	assert.Equal(t, "etw.LevelInfo", ev.Level.Expr)
	assert.Equal(t, uint64(etw.LevelInfo), ev.Level.Const)
	assert.Equal(t, "etw.Opcode(3)", ev.Opcode.Expr)
	assert.Equal(t, uint64(3), ev.Opcode.Const)
	assert.Equal(t, uint64(0x20), ev.Task.Const)
	require.Len(t, ev.Keywords, 2)
	assert.Equal(t, uint64(0x10), ev.Keywords[0].Const)
	assert.Equal(t, uint64(8), ev.Keywords[1].Const)
	assert.Equal(t, uint64(0x0ff00000), ev.Tag.Const)
	assert.Equal(t, "aid", ev.ActivityID.Text)
	assert.Equal(t, "rid", ev.RelatedID.Text)
	assert.True(t, ev.Debug)
	assert.Empty(t, ev.Fields)
}

func TestEnumFiltering(t *testing.T) {
	env := NewEnv(nil)
	ev, err := ParseEvent(NewEvent("PROV", "E",
		Opt("level", X("myLevel")),
		Opt("raw_field", Str("f"), X("Bool32"), X("data"), Opt("format", X("Json"))),
	), env)
	require.NoError(t, err)

	// Unknown names pass through unchanged and are resolved later.
	assert.Equal(t, "myLevel", ev.Level.Expr)
	assert.False(t, ev.Level.IsConst)

	f := ev.Fields[0]
	require.NotNil(t, f.InType)
	assert.Equal(t, "etw.InTypeBool32", f.InType.Expr)
	assert.Equal(t, uint64(etw.InTypeBool32), f.InType.Const)
	require.NotNil(t, f.OutType)
	assert.Equal(t, "etw.OutTypeJSON", f.OutType.Expr)
	assert.True(t, f.HasOutType())

	// Symbolic names are case-sensitive.
	ev, err = ParseEvent(NewEvent("PROV", "E", Opt("level", X("verbose"))), env)
	require.NoError(t, err)
	assert.Equal(t, "verbose", ev.Level.Expr)
	assert.False(t, ev.Level.IsConst)
}

func TestFieldSuboptions(t *testing.T) {
	ev := parse(t,
		Opt("u32", Str("a"), X("a"), Opt("tag", X("5")), Opt("format", X("Hex"))),
		Opt("str8", Str("s"), Str("ok")),
		Opt("raw_data", X("blob")),
		Opt("raw_struct", Str("rs"), X("2")),
	)
	require.Len(t, ev.Fields, 4)

	a := ev.Fields[0]
	require.NotNil(t, a.Tag)
	assert.Equal(t, uint64(5), a.Tag.Const)
	assert.Equal(t, "etw.OutTypeHex", a.OutType.Expr)

	s := ev.Fields[1]
	assert.Equal(t, `"ok"`, s.Value.Text)
	assert.Equal(t, uint8(etw.OutTypeUTF8), s.OutTypeByte)

	raw := ev.Fields[2]
	assert.Empty(t, raw.Name)
	assert.Equal(t, "blob", raw.Value.Text)

	rs := ev.Fields[3]
	require.NotNil(t, rs.OutType)
	assert.Equal(t, "etw.OutType(2)", rs.OutType.Expr)
	assert.Equal(t, uint64(2), rs.OutType.Const)
	assert.Nil(t, rs.Value)
}

func TestStructFieldCount(t *testing.T) {
	ev := parse(t,
		Opt("struct", Str("outer"), Fields(
			Opt("u8", Str("a"), X("a")),
			Opt("struct", Str("inner"), Fields(
				Opt("u8", Str("b"), X("b")),
				Opt("u8", Str("c"), X("c")),
			)),
			Opt("raw_data", X("d")),
		)),
		Opt("struct", Str("empty")),
		Opt("u8", Str("z"), X("z")),
	)
	require.Len(t, ev.Fields, 8)
	// outer counts a and inner, not raw_data or inner's children.
	assert.Equal(t, uint8(2), ev.Fields[0].OutTypeByte)
	assert.Equal(t, uint8(2), ev.Fields[2].OutTypeByte)
	assert.Equal(t, "empty", ev.Fields[6].Name)
	assert.Equal(t, uint8(0), ev.Fields[6].OutTypeByte)
	assert.Equal(t, "z", ev.Fields[7].Name)
}

func TestDiagnosticsAggregated(t *testing.T) {
	msgs := parseErr(t,
		Opt("bogus"),
		Opt("level", X("Verbose")),
		Opt("level", X("Error")),
		Opt("u32", Str("x"), X("x"), Opt("format", X("Hex")), Opt("format", X("Hex")), Opt("color", X("red"))),
		Opt("raw_data", X("d"), Opt("tag", X("1"))),
		Opt("struct", Str("s"), Fields(Opt("level", X("1")), Opt("raw_struct", Str("r"), X("1")))),
		Opt("u8", X("noname")),
		Opt("u16", Str("bad\x00name"), X("v")),
		Opt("u8", Str("novalue")),
		Opt("tag", X("0x10000000")),
	)
	assert.Equal(t, []string{
		"unrecognized option",
		"level already set",
		"format already set",
		"unrecognized option",
		"unrecognized option",
		"unrecognized option",
		"RawStruct not allowed within Struct",
		`expected field name (must be a string literal, e.g. "field name")`,
		`expected field value`,
		"field name must not contain '\\0'",
		"expected field value",
		"tag must not be greater than 0x0FFFFFFF",
	}, msgs)
}

func TestDuplicateTag(t *testing.T) {
	// A second tag on one field is a uniqueness error; the estimate counts
	// the field's type codes and tag once.
	p := &eventParser{ev: &EventModel{}, metadataBytesUsed: 6, dataDescUsed: 2}
	p.options([]*Option{
		Opt("u32", Str("x"), X("1"), Opt("tag", X("5")), Opt("tag", X("5"))),
	}, false)
	assert.Equal(t, []string{"tag already set"}, diag.Messages(p.diags.Err()))
	assert.Equal(t, uint16(6+2+6), p.metadataBytesUsed)
	assert.Equal(t, uint64(5), p.ev.Fields[0].Tag.Const)
}

func TestEventNameNul(t *testing.T) {
	_, err := ParseEvent(NewEvent("PROV", "a\x00b"), nil)
	assert.Equal(t, []string{"event name must not contain '\\0'"}, diag.Messages(err))
}

func TestOutOfRange(t *testing.T) {
	msgs := parseErr(t,
		Opt("id_version", X("0x10000"), X("1")),
		Opt("level", X("256")),
	)
	assert.Equal(t, []string{
		"id value 0x10000 does not fit in 16 bits",
		"256 is not a valid etw.Level value",
	}, msgs)
}

func TestFieldLimitSticky(t *testing.T) {
	opts := make([]*Option, 0, 130)
	for i := 0; i < 130; i++ {
		opts = append(opts, Opt("struct", Str("s"+strconv.Itoa(i))))
	}
	msgs := parseErr(t, opts...)
	assert.Equal(t, []string{"event has too many fields (limit is 128 fields)"}, msgs)
}

func TestDataBlockLimitSticky(t *testing.T) {
	// 2 reserved + 63*2 = 128 blocks; the next two variable-length fields
	// exceed the limit but only the first is reported.
	opts := make([]*Option, 0, 65)
	for i := 0; i < 65; i++ {
		opts = append(opts, Opt("str8", Str("f"+strconv.Itoa(i)), X("v")))
	}
	msgs := parseErr(t, opts...)
	require.Len(t, msgs, 1)
	assert.Contains(t, msgs[0], "limit is 128 blocks")

	opts = opts[:63]
	parse(t, opts...)
}

func TestStructLimitSticky(t *testing.T) {
	inner := make([]*Option, 0, 129)
	for i := 0; i < 129; i++ {
		inner = append(inner, Opt("struct", Str("n"+strconv.Itoa(i))))
	}
	msgs := parseErr(t, Opt("struct", Str("outer"), Fields(inner...)))
	assert.Equal(t, 1, count(msgs, "too many fields in struct (limit 127)"))
	// 1 + 129 fields also exceeds the event field limit.
	assert.Equal(t, 1, count(msgs, "event has too many fields"))
	assert.Len(t, msgs, 2)
}

func TestMetadataLimitSticky(t *testing.T) {
	name := strings.Repeat("n", 30000)
	msgs := parseErr(t,
		Opt("u8", Str(name), X("1")),
		Opt("u8", Str(name), X("2")),
		Opt("u8", Str(name), X("3")),
		Opt("u8", Str(name), X("4")),
	)
	assert.Len(t, msgs, 1)
	assert.Contains(t, msgs[0], "limit is 65535 bytes")

	// 6 + 2 (event name) + 65521 + 1 + 1 = 65531.
	parse(t, Opt("u8", Str(strings.Repeat("n", 65521)), X("1")))
}

func TestMissingName(t *testing.T) {
	_, err := ParseEvent(&Event{Provider: "PROV"}, nil)
	assert.Equal(t, []string{"expected string literal for event name"}, diag.Messages(err))
}
