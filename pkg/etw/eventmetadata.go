package etw

// InType indicates the type of data contained in the ETW event.
type InType byte

// Various InType definitions for TraceLogging. These must match the definitions
// found in TraceLoggingProvider.h in the Windows SDK.
const (
	InTypeInvalid InType = iota
	InTypeCStr16
	InTypeCStr8
	InTypeI8
	InTypeU8
	InTypeI16
	InTypeU16
	InTypeI32
	InTypeU32
	InTypeI64
	InTypeU64
	InTypeF32
	InTypeF64
	InTypeBool32
	InTypeBinary
	InTypeGUID
	inTypePointerUnsupported
	InTypeFileTime
	InTypeSystemTime
	InTypeSID
	InTypeHex32
	InTypeHex64
	InTypeStr16
	InTypeStr8
	InTypeStruct
	InTypeBinaryC
)

// ptrBits is 32 or 64 depending on the target's pointer size.
const ptrBits = 32 << (^uintptr(0) >> 63)

// Pointer-sized in types resolve to their 32-bit or 64-bit equivalents.
const (
	InTypeISize   = InTypeI32 + InType(ptrBits>>6)*(InTypeI64-InTypeI32)
	InTypeUSize   = InTypeU32 + InType(ptrBits>>6)*(InTypeU64-InTypeU32)
	InTypeHexSize = InTypeHex32 + InType(ptrBits>>6)*(InTypeHex64-InTypeHex32)
)

// Flags combined with an InType in the metadata byte.
const (
	InTypeConstantCountFlag InType = 0x20
	InTypeVariableCountFlag InType = 0x40
	InTypeCustomFlag        InType = 0x60
	InTypeChainFlag         InType = 0x80
	InTypeTypeMask          InType = 0x1f
)

// OutType specifies a hint to the event decoder for how the value should be
// formatted.
type OutType byte

// Various OutType definitions for TraceLogging. These must match the
// definitions found in TraceLoggingProvider.h in the Windows SDK.
const (
	// OutTypeDefault indicates that the default formatting for the in type will
	// be used by the event decoder.
	OutTypeDefault OutType = iota
	OutTypeNoPrint
	OutTypeString
	OutTypeBoolean
	OutTypeHex
	OutTypePID
	OutTypeTID
	OutTypePort
	OutTypeIPv4
	OutTypeIPv6
	OutTypeSocketAddress
	OutTypeXML
	OutTypeJSON
	OutTypeWin32Error
	OutTypeNTStatus
	OutTypeHResult
	OutTypeDateTime
	OutTypeSigned
	OutTypeUnsigned
	OutTypeDateTimeCultureInsensitive OutType = 33
	OutTypeUTF8                       OutType = 35
	OutTypePKCS7WithTypeInfo          OutType = 36
	OutTypeCodePointer                OutType = 37
	OutTypeDateTimeUTC                OutType = 38
)

// Flags combined with an OutType in the metadata byte.
const (
	OutTypeChainFlag OutType = 0x80
	OutTypeTypeMask  OutType = 0x7f
)

// MaxTag is the largest tag value that can be encoded in event or field
// metadata.
const MaxTag = 0x0fffffff

// TagSize returns the number of bytes EncodeTag produces for tags.
func TagSize(tags uint32) int {
	switch {
	case tags&0x1fffff == 0:
		return 1
	case tags&0x3fff == 0:
		return 2
	case tags&0x7f == 0:
		return 3
	default:
		return 4
	}
}

// EncodeTag returns the metadata encoding of a tags value. Tags is a 28-bit
// value, interpreted as bit flags, which are only relevant to the event
// consumer. Tags are written as a series of bytes, each containing 7 bits of
// tag value, with the high bit set if there is more tag data in the following
// byte. A tags value of 0 still takes one byte.
func EncodeTag(tags uint32) []byte {
	return AppendTag(make([]byte, 0, 4), tags)
}

// AppendTag appends the encoding of tags to b and returns the extended buffer.
func AppendTag(b []byte, tags uint32) []byte {
	// Only use the low 28 bits of the tags value.
	tags &= MaxTag

	for {
		// Tags are written with the most significant bits (e.g. 21-27) first.
		val := tags >> 21

		if tags&0x1fffff == 0 {
			return append(b, byte(val&0x7f))
		}

		b = append(b, byte(val|0x80))

		tags = (tags << 7) & MaxTag
	}
}
