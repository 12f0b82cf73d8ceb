package etw

import (
	"bytes"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDescriptorFromCStr(t *testing.T) {
	assert.Equal(t, []byte("ab"), DescriptorFromCStr([]byte("ab\x00cd"), 1).Data)
	assert.Equal(t, []byte("abc"), DescriptorFromCStr([]byte("abc"), 1).Data)
	assert.Empty(t, DescriptorFromCStr(nil, 1).Data)

	utf16 := []byte{'h', 0, 0, 'i', 0, 0, 'x', 0}
	assert.Equal(t, []byte{'h', 0, 0, 'i'}, DescriptorFromCStr(utf16, 2).Data)
	// A trailing odd byte is not a whole code unit.
	assert.Equal(t, []byte{'h', 0}, DescriptorFromCStr([]byte{'h', 0, 'i'}, 2).Data)
	assert.Equal(t, EventDataDescriptorTypeUserData, DescriptorFromCStr(utf16, 2).Type)
}

func TestDescriptorFromSid(t *testing.T) {
	sid := []byte{1, 2, 0, 0, 0, 0, 0, 5, 32, 0, 0, 0, 32, 2, 0, 0, 0xff}
	assert.Len(t, DescriptorFromSid(sid).Data, 16)
	assert.Len(t, DescriptorFromSid(sid[:10]).Data, 10)
	assert.Empty(t, DescriptorFromSid(sid[:4]).Data)
}

func TestCountedAndSlice(t *testing.T) {
	big := make([]byte, math.MaxUint16+10)
	assert.Len(t, DescriptorFromCounted(big).Data, math.MaxUint16)
	assert.Equal(t, uint16(math.MaxUint16), CountedSize(big))
	assert.Equal(t, uint16(2), CountedSize([]byte("ok")))

	assert.Len(t, DescriptorFromSlice(big, 1).Data, math.MaxUint16)
	words := make([]byte, 2*(math.MaxUint16+1))
	assert.Len(t, DescriptorFromSlice(words, 2).Data, 2*math.MaxUint16)
	assert.Len(t, DescriptorFromSlice([]byte{1, 2, 3, 4}, 2).Data, 4)

	assert.Equal(t, uint16(3), SliceCount(3))
	assert.Equal(t, uint16(math.MaxUint16), SliceCount(1<<20))
}

func TestEncodeLength(t *testing.T) {
	if b := EncodeLength(0x0102); !bytes.Equal(b, []byte{0x02, 0x01}) {
		t.Errorf("EncodeLength = %x", b)
	}
}
