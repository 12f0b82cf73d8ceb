package schema

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Microsoft/go-tracelogging/pkg/etw"
	"github.com/Microsoft/go-tracelogging/pkg/guid"
	"github.com/Microsoft/go-tracelogging/pkg/tracelogging/diag"
	"github.com/Microsoft/go-tracelogging/pkg/tracelogging/syntax"
)

func mustGUID(t *testing.T, s string) guid.GUID {
	t.Helper()
	g, err := guid.FromString(s)
	require.NoError(t, err)
	return g
}

func TestParseProvider(t *testing.T) {
	p, err := ParseProvider(syntax.NewProvider("PROV", "TestProvider"))
	require.NoError(t, err)
	assert.Equal(t, "PROV", p.Symbol)
	assert.Equal(t, "TestProvider", p.Name)
	assert.Equal(t, etw.ProviderIDFromName("TestProvider"), p.ID)
	assert.Nil(t, p.GroupID)

	p, err = ParseProvider(syntax.NewProvider("PROV4", "TestProvider4",
		syntax.Opt("id", syntax.Str("97c801ee-c28b-5bb6-2ae4-11e18fe6137a")),
		syntax.Opt("groupid", syntax.Str("12345678-9abc-def0-1234-56789abcdef0")),
		syntax.Opt("group_name", syntax.Str("mygroup1")),
		syntax.Opt("debug"),
	))
	require.NoError(t, err)
	assert.Equal(t, mustGUID(t, "97c801ee-c28b-5bb6-2ae4-11e18fe6137a"), p.ID)
	require.NotNil(t, p.GroupID)
	assert.Equal(t, mustGUID(t, "12345678-9abc-def0-1234-56789abcdef0"), *p.GroupID)
	assert.Equal(t, "mygroup1", p.GroupName)
	assert.True(t, p.Debug)
}

func TestParseProviderErrors(t *testing.T) {
	_, err := ParseProvider(syntax.NewProvider("PROV", "Bad\x00Name",
		syntax.Opt("id", syntax.Str("not-a-guid")),
		syntax.Opt("id", syntax.Str("97c801ee-c28b-5bb6-2ae4-11e18fe6137a")),
		syntax.Opt("group_id", syntax.X("12345678")),
		syntax.Opt("group_id", syntax.Str("12345678-9abc-def0-1234-56789abcdef0")),
		syntax.Opt("group_name", syntax.Str("Upper")),
		syntax.Opt("group_name", syntax.Str("lower")),
		syntax.Opt("level", syntax.X("1")),
	))
	require.Error(t, err)
	assert.Equal(t, []string{
		"provider name must not contain '\\0'",
		expectedGUID,
		"id already set",
		expectedGUID,
		"group_id already set",
		"group_name must contain only lowercase ASCII letters and ASCII digits",
		"group_name already set",
		`expected id("GUID") or group_id("GUID")`,
	}, diag.Messages(err))
}

func TestProviderNameLength(t *testing.T) {
	_, err := ParseProvider(syntax.NewProvider("PROV", strings.Repeat("p", 32767)))
	assert.NoError(t, err)

	_, err = ParseProvider(syntax.NewProvider("PROV", strings.Repeat("p", 32768)))
	require.Error(t, err)
	msgs := diag.Messages(err)
	require.Len(t, msgs, 1)
	assert.Contains(t, msgs[0], "less than 32768 bytes")
}
