package guid

import (
	"crypto/rand"
	"encoding"
	"encoding/binary"
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/pkg/errors"
)

var (
	_ encoding.TextMarshaler   = GUID{}
	_ encoding.TextUnmarshaler = &GUID{}
	_ fmt.Stringer             = GUID{}
)

// ErrSyntax is wrapped by every error FromString returns.
var ErrSyntax = errors.New("invalid GUID syntax")

// Variant is the layout family of a GUID, taken from the high bits of
// Data4[0].
type Variant uint8

// The variants of RFC 4122.
const (
	VariantUnknown Variant = iota
	VariantNCS
	VariantRFC4122
	VariantMicrosoft
	VariantFuture
)

// Version is the generation scheme of an RFC 4122 GUID: 4 for random, 5 for a
// name hash such as a provider ID.
type Version uint8

// offsets of the dashes in the canonical string form.
var dashes = [...]int{8, 13, 18, 23}

// NewV4 returns a random RFC 4122 GUID.
func NewV4() (GUID, error) {
	var b [16]byte
	if _, err := rand.Read(b[:]); err != nil {
		return GUID{}, errors.Wrap(err, "read random GUID")
	}
	b[6] = b[6]&0x0f | 0x40
	b[8] = b[8]&0x3f | 0x80
	return FromArray(b), nil
}

// FromArray decodes the big-endian byte form of RFC 4122.
func FromArray(b [16]byte) GUID {
	return decode(b, binary.BigEndian)
}

// ToArray returns the big-endian byte form of RFC 4122.
func (g GUID) ToArray() [16]byte {
	return g.encode(binary.BigEndian)
}

// FromWindowsArray decodes the mixed-endian byte form Windows keeps in memory
// and ETW metadata carries: Data1, Data2 and Data3 little-endian, Data4 as is.
func FromWindowsArray(b [16]byte) GUID {
	return decode(b, binary.LittleEndian)
}

// ToWindowsArray returns the mixed-endian byte form of g.
func (g GUID) ToWindowsArray() [16]byte {
	return g.encode(binary.LittleEndian)
}

func decode(b [16]byte, order binary.ByteOrder) GUID {
	g := GUID{
		Data1: order.Uint32(b[0:4]),
		Data2: order.Uint16(b[4:6]),
		Data3: order.Uint16(b[6:8]),
	}
	copy(g.Data4[:], b[8:])
	return g
}

func (g GUID) encode(order binary.ByteOrder) (b [16]byte) {
	order.PutUint32(b[0:4], g.Data1)
	order.PutUint16(b[4:6], g.Data2)
	order.PutUint16(b[6:8], g.Data3)
	copy(b[8:], g.Data4[:])
	return b
}

// IsEmpty reports whether g is the all-zero GUID, which ETW reads as "no
// activity ID".
func (g GUID) IsEmpty() bool {
	return g == GUID{}
}

// String formats g as lowercase xxxxxxxx-xxxx-xxxx-xxxx-xxxxxxxxxxxx.
func (g GUID) String() string {
	b := g.ToArray()
	var s [36]byte
	src, dst := 0, 0
	for _, d := range dashes {
		n := (d - dst) / 2
		hex.Encode(s[dst:d], b[src:src+n])
		s[d] = '-'
		src, dst = src+n, d+1
	}
	hex.Encode(s[dst:], b[src:])
	return string(s[:])
}

// FromString parses the canonical string form of a GUID, optionally wrapped
// in braces as manifests and the registry write it. Hex digits may be in
// either case.
func FromString(s string) (GUID, error) {
	t := s
	if len(t) == 38 && t[0] == '{' && t[37] == '}' {
		t = t[1:37]
	}
	if len(t) != 36 {
		return GUID{}, errors.Wrapf(ErrSyntax, "%q: length %d", s, len(s))
	}

	var digits strings.Builder
	prev := 0
	for _, d := range dashes {
		if t[d] != '-' {
			return GUID{}, errors.Wrapf(ErrSyntax, "%q: expected '-' at offset %d", s, d)
		}
		digits.WriteString(t[prev:d])
		prev = d + 1
	}
	digits.WriteString(t[prev:])

	var b [16]byte
	if _, err := hex.Decode(b[:], []byte(digits.String())); err != nil {
		return GUID{}, errors.Wrapf(ErrSyntax, "%q: %v", s, err)
	}
	return FromArray(b), nil
}

// Variant returns the RFC 4122 variant of g.
func (g GUID) Variant() Variant {
	switch b := g.Data4[0]; {
	case b&0x80 == 0:
		return VariantNCS
	case b&0xc0 == 0x80:
		return VariantRFC4122
	case b&0xe0 == 0xc0:
		return VariantMicrosoft
	default:
		return VariantFuture
	}
}

// Version returns the RFC 4122 version of g.
func (g GUID) Version() Version {
	return Version(g.Data3 >> 12)
}

// MarshalText implements encoding.TextMarshaler; the JSON reports of tlgc
// and YAML provider declarations use it.
func (g GUID) MarshalText() ([]byte, error) {
	return []byte(g.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (g *GUID) UnmarshalText(text []byte) error {
	parsed, err := FromString(strings.TrimSpace(string(text)))
	if err != nil {
		return err
	}
	*g = parsed
	return nil
}
