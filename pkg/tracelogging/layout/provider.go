package layout

import (
	"encoding/binary"

	"github.com/Microsoft/go-tracelogging/pkg/tracelogging/schema"
)

const (
	// providerTraitGroupSize is sizeof(size) + sizeof(type) + sizeof(GUID).
	providerTraitGroupSize = 2 + 1 + 16
	// providerTraitTypeGroup is EtwProviderTraitTypeGroup.
	providerTraitTypeGroup = 1
)

// EncodeProvider returns the provider metadata block:
//
//	[u16 size][name][0][optional group trait: u16 19, u8 1, group GUID]
func EncodeProvider(p *schema.ProviderModel) []byte {
	meta := make([]byte, 2, 2+len(p.Name)+1+providerTraitGroupSize)
	meta = append(meta, p.Name...)
	meta = append(meta, 0)

	if p.GroupID != nil {
		meta = binary.LittleEndian.AppendUint16(meta, providerTraitGroupSize)
		meta = append(meta, providerTraitTypeGroup)
		g := p.GroupID.ToWindowsArray()
		meta = append(meta, g[:]...)
	}

	binary.LittleEndian.PutUint16(meta, uint16(len(meta)))
	return meta
}
