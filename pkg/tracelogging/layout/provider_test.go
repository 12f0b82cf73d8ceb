package layout

import (
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Microsoft/go-tracelogging/pkg/guid"
	"github.com/Microsoft/go-tracelogging/pkg/tracelogging/schema"
)

func TestEncodeProvider(t *testing.T) {
	meta := EncodeProvider(&schema.ProviderModel{Name: "MyCompany.MyComponent"})
	assert.Equal(t, uint16(len(meta)), binary.LittleEndian.Uint16(meta))
	assert.Equal(t, "MyCompany.MyComponent\x00", string(meta[2:]))
}

func TestEncodeProviderGroup(t *testing.T) {
	g, err := guid.FromString("20cf46dd-3b90-476c-94e9-4e74bbc30e31")
	require.NoError(t, err)

	meta := EncodeProvider(&schema.ProviderModel{Name: "P", GroupID: &g})
	require.Len(t, meta, 2+2+19)
	assert.Equal(t, uint16(23), binary.LittleEndian.Uint16(meta))
	assert.Equal(t, []byte{'P', 0}, meta[2:4])
	assert.Equal(t, uint16(19), binary.LittleEndian.Uint16(meta[4:]))
	assert.Equal(t, byte(1), meta[6])

	var b [16]byte
	copy(b[:], meta[7:])
	assert.Equal(t, g, guid.FromWindowsArray(b))
	assert.Equal(t, []byte{0xdd, 0x46, 0xcf, 0x20, 0x90, 0x3b, 0x6c, 0x47}, meta[7:15])
}
