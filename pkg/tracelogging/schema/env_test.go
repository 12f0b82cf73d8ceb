package schema

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Microsoft/go-tracelogging/pkg/etw"
)

func TestEnvFold(t *testing.T) {
	env := NewEnv(map[string]int64{"KW_NET": 0x10, "KW_DISK": 0x20})

	tt := []struct {
		expr string
		want uint64
		ok   bool
	}{
		{"0", 0, true},
		{"0x0FF00000", 0x0ff00000, true},
		{"1 << 40", 1 << 40, true},
		{"KW_NET | KW_DISK", 0x30, true},
		{"etw.LevelInfo", uint64(etw.LevelInfo), true},
		{"etw.Level(5)", 5, true},
		{"etw.OpcodeReceive", 240, true},
		{"etw.OutTypeJSON | 0x80", 0x80 | uint64(etw.OutTypeJSON), true},
		{"etw.InTypeUSize", uint64(etw.InTypeUSize), true},
		{"-1", 1<<64 - 1, true},
		{"2.0", 2, true},
		{"etw.Level(300)", 0, false},
		{"1 << 70", 0, false},
		{"2.5", 0, false},
		{`"text"`, 0, false},
		{"someVariable", 0, false},
		{"etw.Nope", 0, false},
		{"(", 0, false},
	}
	for _, tc := range tt {
		got, ok := env.Fold(tc.expr)
		assert.Equal(t, tc.ok, ok, tc.expr)
		if tc.ok {
			assert.Equal(t, tc.want, got, tc.expr)
		}
	}
}

func TestEnvNil(t *testing.T) {
	var env *Env
	v, ok := env.Fold("etw.LevelError + 1")
	require.True(t, ok)
	assert.Equal(t, uint64(3), v)

	_, err := env.Resolve("KW_NET")
	assert.Error(t, err)
}
