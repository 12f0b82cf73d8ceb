package etw

import (
	"bytes"
	"crypto/sha1"
	"encoding/binary"
	"strings"
	"unicode/utf16"

	"github.com/Microsoft/go-tracelogging/pkg/guid"
)

// ProviderIDFromName generates a provider ID based on the provider name. It
// uses the same algorithm as used by .NET's EventSource class, which is based
// on RFC 4122. More information on the algorithm can be found here:
// https://blogs.msdn.microsoft.com/dcook/2015/09/08/etw-provider-names-and-guids/
// The algorithm is roughly:
// Hash = Sha1(namespace + arg.ToUpper().ToUtf16be())
// Guid = Hash[0..15], with Hash[7] tweaked according to RFC 4122
func ProviderIDFromName(name string) guid.GUID {
	namespace := []byte{0x48, 0x2C, 0x2D, 0xB2, 0xC3, 0x90, 0x47, 0xC8, 0x87, 0xF8, 0x1A, 0x15, 0xBF, 0xC1, 0x30, 0xFB}
	buffer := &bytes.Buffer{}
	buffer.Write(namespace)
	binary.Write(buffer, binary.BigEndian, utf16.Encode([]rune(strings.ToUpper(name)))) //nolint:errcheck // bytes.Buffer writes do not fail

	sum := sha1.Sum(buffer.Bytes())
	sum[7] = (sum[7] & 0xf) | 0x50

	var b [16]byte
	copy(b[:], sum[:16])
	return guid.FromWindowsArray(b)
}
