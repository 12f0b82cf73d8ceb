package etw

import (
	"encoding/binary"
	"math"
)

// EventDataDescriptorType tells ETW how to interpret a block of event data.
type EventDataDescriptorType uint8

const (
	EventDataDescriptorTypeUserData EventDataDescriptorType = iota
	EventDataDescriptorTypeEventMetadata
	EventDataDescriptorTypeProviderMetadata
)

// EventDataDescriptor references one block of data handed to the transport.
// The platform transport converts it into an EVENT_DATA_DESCRIPTOR pointing at
// Data, so Data must not be modified until the write returns.
type EventDataDescriptor struct {
	Data []byte
	Type EventDataDescriptorType
}

// NewEventDataDescriptor returns a descriptor of the given type for buffer.
func NewEventDataDescriptor(dataType EventDataDescriptorType, buffer []byte) EventDataDescriptor {
	return EventDataDescriptor{Data: buffer, Type: dataType}
}

// DescriptorFromValue returns a user data descriptor for an already encoded
// fixed-size value.
func DescriptorFromValue(b []byte) EventDataDescriptor {
	return NewEventDataDescriptor(EventDataDescriptorTypeUserData, b)
}

// DescriptorFromCStr returns a descriptor for a nul-terminated string payload
// made of elemSize-byte code units. The payload stops before the first nul
// unit; the terminator itself is described separately.
func DescriptorFromCStr(b []byte, elemSize int) EventDataDescriptor {
	if elemSize <= 0 {
		elemSize = 1
	}
	n := len(b) / elemSize
	for i := 0; i < n; i++ {
		zero := true
		for _, c := range b[i*elemSize : (i+1)*elemSize] {
			if c != 0 {
				zero = false
				break
			}
		}
		if zero {
			n = i
			break
		}
	}
	return DescriptorFromValue(b[:n*elemSize])
}

// DescriptorFromSid returns a descriptor for a binary SID. The length is taken
// from the SID's sub-authority count, bounded by the slice length.
func DescriptorFromSid(b []byte) EventDataDescriptor {
	n := 0
	if len(b) >= 8 {
		n = 8 + 4*int(b[1])
		if n > len(b) {
			n = len(b)
		}
	}
	return DescriptorFromValue(b[:n])
}

// DescriptorFromCounted returns a descriptor for a counted payload, truncated
// to the largest size a UINT16 length prefix can describe.
func DescriptorFromCounted(b []byte) EventDataDescriptor {
	if len(b) > math.MaxUint16 {
		b = b[:math.MaxUint16]
	}
	return DescriptorFromValue(b)
}

// DescriptorFromSlice returns a descriptor for the elements of a variable
// count array, truncated to the largest count a UINT16 prefix can describe.
func DescriptorFromSlice(b []byte, elemSize int) EventDataDescriptor {
	if elemSize > 0 && len(b)/elemSize > math.MaxUint16 {
		b = b[:math.MaxUint16*elemSize]
	}
	return DescriptorFromValue(b)
}

// CountedSize returns the UINT16 byte count that prefixes a counted payload.
func CountedSize(b []byte) uint16 {
	if len(b) > math.MaxUint16 {
		return math.MaxUint16
	}
	return uint16(len(b))
}

// SliceCount returns the UINT16 element count that prefixes a variable count
// array of n elements.
func SliceCount(n int) uint16 {
	if n > math.MaxUint16 {
		return math.MaxUint16
	}
	return uint16(n)
}

// EncodeLength returns the little-endian encoding of a length prefix.
func EncodeLength(n uint16) []byte {
	b := make([]byte, 2)
	binary.LittleEndian.PutUint16(b, n)
	return b
}
