package catalog

import (
	"sort"

	"github.com/Microsoft/go-tracelogging/pkg/etw"
)

// EnumName maps a symbolic name accepted in descriptions to the Go constant
// it stands for.
type EnumName struct {
	Name  string
	Ident string
	Value uint8
}

// Enum is a set of symbolic names for one enumeration-valued option. Names
// must be sorted.
type Enum struct {
	// Type is the qualified Go type of the enumeration, e.g. "etw.Level".
	Type  string
	Names []EnumName
}

// Lookup returns the entry for name. Matching is case-sensitive.
func (e *Enum) Lookup(name string) (EnumName, bool) {
	i := sort.Search(len(e.Names), func(i int) bool { return e.Names[i].Name >= name })
	if i < len(e.Names) && e.Names[i].Name == name {
		return e.Names[i], true
	}
	return EnumName{}, false
}

// Qualified returns the qualified constant reference for n.
func (e *Enum) Qualified(n EnumName) string {
	return "etw." + n.Ident
}

var Channels = &Enum{
	Type: "etw.Channel",
	Names: []EnumName{
		{"ProviderMetadata", "ChannelProviderMetadata", uint8(etw.ChannelProviderMetadata)},
		{"TraceClassic", "ChannelTraceClassic", uint8(etw.ChannelTraceClassic)},
		{"TraceLogging", "ChannelTraceLogging", uint8(etw.ChannelTraceLogging)},
	},
}

var Levels = &Enum{
	Type: "etw.Level",
	Names: []EnumName{
		{"Critical", "LevelCritical", uint8(etw.LevelCritical)},
		{"Error", "LevelError", uint8(etw.LevelError)},
		{"Informational", "LevelInfo", uint8(etw.LevelInfo)},
		{"LogAlways", "LevelAlways", uint8(etw.LevelAlways)},
		{"Verbose", "LevelVerbose", uint8(etw.LevelVerbose)},
		{"Warning", "LevelWarning", uint8(etw.LevelWarning)},
	},
}

var Opcodes = &Enum{
	Type: "etw.Opcode",
	Names: []EnumName{
		{"DC_Start", "OpcodeDCStart", uint8(etw.OpcodeDCStart)},
		{"DC_Stop", "OpcodeDCStop", uint8(etw.OpcodeDCStop)},
		{"Extension", "OpcodeExtension", uint8(etw.OpcodeExtension)},
		{"Info", "OpcodeInfo", uint8(etw.OpcodeInfo)},
		{"Receive", "OpcodeReceive", uint8(etw.OpcodeReceive)},
		{"Reply", "OpcodeReply", uint8(etw.OpcodeReply)},
		{"Resume", "OpcodeResume", uint8(etw.OpcodeResume)},
		{"Send", "OpcodeSend", uint8(etw.OpcodeSend)},
		{"Start", "OpcodeStart", uint8(etw.OpcodeStart)},
		{"Stop", "OpcodeStop", uint8(etw.OpcodeStop)},
		{"Suspend", "OpcodeSuspend", uint8(etw.OpcodeSuspend)},
	},
}

// InTypes includes the pointer-sized names ISize, USize and HexSize, whose
// values depend on the target.
var InTypes = &Enum{
	Type: "etw.InType",
	Names: []EnumName{
		{"Binary", "InTypeBinary", uint8(etw.InTypeBinary)},
		{"Bool32", "InTypeBool32", uint8(etw.InTypeBool32)},
		{"CStr16", "InTypeCStr16", uint8(etw.InTypeCStr16)},
		{"CStr8", "InTypeCStr8", uint8(etw.InTypeCStr8)},
		{"CountedBinary", "InTypeBinaryC", uint8(etw.InTypeBinaryC)},
		{"F32", "InTypeF32", uint8(etw.InTypeF32)},
		{"F64", "InTypeF64", uint8(etw.InTypeF64)},
		{"FileTime", "InTypeFileTime", uint8(etw.InTypeFileTime)},
		{"Guid", "InTypeGUID", uint8(etw.InTypeGUID)},
		{"Hex32", "InTypeHex32", uint8(etw.InTypeHex32)},
		{"Hex64", "InTypeHex64", uint8(etw.InTypeHex64)},
		{"HexSize", "InTypeHexSize", uint8(etw.InTypeHexSize)},
		{"I16", "InTypeI16", uint8(etw.InTypeI16)},
		{"I32", "InTypeI32", uint8(etw.InTypeI32)},
		{"I64", "InTypeI64", uint8(etw.InTypeI64)},
		{"I8", "InTypeI8", uint8(etw.InTypeI8)},
		{"ISize", "InTypeISize", uint8(etw.InTypeISize)},
		{"Invalid", "InTypeInvalid", uint8(etw.InTypeInvalid)},
		{"Sid", "InTypeSID", uint8(etw.InTypeSID)},
		{"Str16", "InTypeStr16", uint8(etw.InTypeStr16)},
		{"Str8", "InTypeStr8", uint8(etw.InTypeStr8)},
		{"Struct", "InTypeStruct", uint8(etw.InTypeStruct)},
		{"SystemTime", "InTypeSystemTime", uint8(etw.InTypeSystemTime)},
		{"U16", "InTypeU16", uint8(etw.InTypeU16)},
		{"U32", "InTypeU32", uint8(etw.InTypeU32)},
		{"U64", "InTypeU64", uint8(etw.InTypeU64)},
		{"U8", "InTypeU8", uint8(etw.InTypeU8)},
		{"USize", "InTypeUSize", uint8(etw.InTypeUSize)},
	},
}

var OutTypes = &Enum{
	Type: "etw.OutType",
	Names: []EnumName{
		{"Boolean", "OutTypeBoolean", uint8(etw.OutTypeBoolean)},
		{"CodePointer", "OutTypeCodePointer", uint8(etw.OutTypeCodePointer)},
		{"DateTime", "OutTypeDateTime", uint8(etw.OutTypeDateTime)},
		{"DateTimeCultureInsensitive", "OutTypeDateTimeCultureInsensitive", uint8(etw.OutTypeDateTimeCultureInsensitive)},
		{"DateTimeUtc", "OutTypeDateTimeUTC", uint8(etw.OutTypeDateTimeUTC)},
		{"Default", "OutTypeDefault", uint8(etw.OutTypeDefault)},
		{"HResult", "OutTypeHResult", uint8(etw.OutTypeHResult)},
		{"Hex", "OutTypeHex", uint8(etw.OutTypeHex)},
		{"IPv4", "OutTypeIPv4", uint8(etw.OutTypeIPv4)},
		{"IPv6", "OutTypeIPv6", uint8(etw.OutTypeIPv6)},
		{"Json", "OutTypeJSON", uint8(etw.OutTypeJSON)},
		{"NoPrint", "OutTypeNoPrint", uint8(etw.OutTypeNoPrint)},
		{"NtStatus", "OutTypeNTStatus", uint8(etw.OutTypeNTStatus)},
		{"Pid", "OutTypePID", uint8(etw.OutTypePID)},
		{"Pkcs7WithTypeInfo", "OutTypePKCS7WithTypeInfo", uint8(etw.OutTypePKCS7WithTypeInfo)},
		{"Port", "OutTypePort", uint8(etw.OutTypePort)},
		{"Signed", "OutTypeSigned", uint8(etw.OutTypeSigned)},
		{"SocketAddress", "OutTypeSocketAddress", uint8(etw.OutTypeSocketAddress)},
		{"String", "OutTypeString", uint8(etw.OutTypeString)},
		{"Tid", "OutTypeTID", uint8(etw.OutTypeTID)},
		{"Unsigned", "OutTypeUnsigned", uint8(etw.OutTypeUnsigned)},
		{"Utf8", "OutTypeUTF8", uint8(etw.OutTypeUTF8)},
		{"Win32Error", "OutTypeWin32Error", uint8(etw.OutTypeWin32Error)},
		{"Xml", "OutTypeXML", uint8(etw.OutTypeXML)},
	},
}
