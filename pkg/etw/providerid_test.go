package etw

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Microsoft/go-tracelogging/pkg/guid"
)

func TestProviderIDFromName(t *testing.T) {
	for name, want := range map[string]string{
		"TestProvider":          "97c801ee-c28b-5bb6-2ae4-11e18fe6137a",
		"MyCompany.MyComponent": "ce5fa4ea-ab00-5402-8b76-9f76ac858fb5",
		// Names are case-insensitive.
		"testprovider": "97c801ee-c28b-5bb6-2ae4-11e18fe6137a",
	} {
		g, err := guid.FromString(want)
		require.NoError(t, err)
		assert.Equal(t, g, ProviderIDFromName(name), name)
	}
}

func TestValidateProviderMetadata(t *testing.T) {
	assert.NoError(t, validateProviderMetadata([]byte{4, 0, 'P', 0}))
	assert.Error(t, validateProviderMetadata([]byte{2, 0}))
	assert.Error(t, validateProviderMetadata([]byte{9, 0, 'P', 0}))
}

func TestProviderEnabled(t *testing.T) {
	p := &Provider{}
	assert.False(t, p.Enabled(LevelAlways, 0))

	p.setState(ProviderStateEnable, LevelInfo, 0x3, 0x1)
	assert.True(t, p.Enabled(LevelInfo, 0))
	assert.False(t, p.Enabled(LevelVerbose, 0))
	assert.True(t, p.Enabled(LevelError, 0x1))
	assert.False(t, p.Enabled(LevelError, 0x2))
	assert.False(t, p.Enabled(LevelError, 0x4))

	p.setState(ProviderStateDisable, 0, 0, 0)
	assert.False(t, p.Enabled(LevelAlways, 0))
}

func TestEventDescriptorIdentity(t *testing.T) {
	d := NewEventDescriptor()
	assert.Equal(t, ChannelTraceLogging, d.Channel)
	assert.Equal(t, LevelVerbose, d.Level)
	assert.Equal(t, uint64(1), d.Keyword)

	d.SetIdentity(0x00123456)
	assert.Equal(t, uint32(0x00123456), d.Identity())
}
