package etw

import (
	"testing"
)

func TestEncodeTag(t *testing.T) {
	for _, tc := range []struct {
		tags uint32
		want []byte
	}{
		{0, []byte{0x00}},
		{0x0fe00000, []byte{0x7f}},
		{0x00200000, []byte{0x01}},
		{0x00100000, []byte{0x80, 0x40}},
		{0x00004000, []byte{0x80, 0x01}},
		{0x00000080, []byte{0x80, 0x80, 0x01}},
		{5, []byte{0x80, 0x80, 0x80, 0x05}},
		{0x0fffffff, []byte{0xff, 0xff, 0xff, 0x7f}},
		// Bits above the low 28 are ignored.
		{0xffe00000, []byte{0x7f}},
	} {
		got := EncodeTag(tc.tags)
		if string(got) != string(tc.want) {
			t.Errorf("EncodeTag(%#x) = %x, want %x", tc.tags, got, tc.want)
		}
		if n := TagSize(tc.tags); n != len(tc.want) {
			t.Errorf("TagSize(%#x) = %d, want %d", tc.tags, n, len(tc.want))
		}
	}
}

func TestAppendTag(t *testing.T) {
	b := AppendTag([]byte{'E', 0}, 0x0fe00000)
	if string(b) != "E\x00\x7f" {
		t.Errorf("AppendTag = %q", b)
	}
}

func TestPointerSizedInTypes(t *testing.T) {
	if ptrBits == 64 {
		if InTypeISize != InTypeI64 || InTypeUSize != InTypeU64 || InTypeHexSize != InTypeHex64 {
			t.Errorf("pointer-sized in types = %d %d %d", InTypeISize, InTypeUSize, InTypeHexSize)
		}
	} else if InTypeISize != InTypeI32 || InTypeUSize != InTypeU32 || InTypeHexSize != InTypeHex32 {
		t.Errorf("pointer-sized in types = %d %d %d", InTypeISize, InTypeUSize, InTypeHexSize)
	}
}
