package catalog

import (
	"reflect"
	"sort"
	"time"

	"github.com/Microsoft/go-tracelogging/pkg/etw"
	"github.com/Microsoft/go-tracelogging/pkg/guid"
)

// FieldKind defines one field option: the value type it accepts, the type
// codes written to the event metadata, and how its value is marshalled.
type FieldKind struct {
	Name string
	// ValueType is the element type of the field value. It is nil for
	// strategies that carry no data.
	ValueType reflect.Type
	InType    etw.InType
	OutType   etw.OutType
	Strategy  Strategy
	// ArrayLen is the fixed number of ValueType elements making up one value,
	// or 0 if a value is a single element.
	ArrayLen int
}

// ElemSize returns the encoded size of one element of the field value.
func (k *FieldKind) ElemSize() int {
	if k.ValueType == nil {
		return 0
	}
	n := 0
	switch k.ValueType {
	case guidT:
		n = 16
	case timeT:
		n = 8
	default:
		n = int(k.ValueType.Size())
	}
	if k.ArrayLen > 0 {
		n *= k.ArrayLen
	}
	return n
}

var (
	boolT    = reflect.TypeOf(false)
	i8T      = reflect.TypeOf(int8(0))
	u8T      = reflect.TypeOf(uint8(0))
	i16T     = reflect.TypeOf(int16(0))
	u16T     = reflect.TypeOf(uint16(0))
	i32T     = reflect.TypeOf(int32(0))
	u32T     = reflect.TypeOf(uint32(0))
	i64T     = reflect.TypeOf(int64(0))
	u64T     = reflect.TypeOf(uint64(0))
	f32T     = reflect.TypeOf(float32(0))
	f64T     = reflect.TypeOf(float64(0))
	intT     = reflect.TypeOf(int(0))
	uintT    = reflect.TypeOf(uint(0))
	uintptrT = reflect.TypeOf(uintptr(0))
	guidT    = reflect.TypeOf(guid.GUID{})
	timeT    = reflect.TypeOf(time.Time{})
)

// Kinds is the field option table. It must stay sorted by Name so that Lookup
// can binary search it.
var Kinds = []FieldKind{
	{"binary", u8T, etw.InTypeBinary, etw.OutTypeDefault, Counted, 0},
	{"binaryc", u8T, etw.InTypeBinaryC, etw.OutTypeDefault, Counted, 0},
	{"bool32", i32T, etw.InTypeBool32, etw.OutTypeDefault, Scalar, 0},
	{"bool32_slice", i32T, etw.InTypeBool32, etw.OutTypeDefault, Slice, 0},
	{"bool8", boolT, etw.InTypeU8, etw.OutTypeBoolean, Scalar, 0},
	{"bool8_slice", boolT, etw.InTypeU8, etw.OutTypeBoolean, Slice, 0},
	{"char16", u16T, etw.InTypeU16, etw.OutTypeString, Scalar, 0},
	{"char16_slice", u16T, etw.InTypeU16, etw.OutTypeString, Slice, 0},
	{"char8_cp1252", u8T, etw.InTypeU8, etw.OutTypeString, Scalar, 0},
	{"char8_cp1252_slice", u8T, etw.InTypeU8, etw.OutTypeString, Slice, 0},
	{"codepointer", uintptrT, etw.InTypeHexSize, etw.OutTypeCodePointer, Scalar, 0},
	{"codepointer_slice", uintptrT, etw.InTypeHexSize, etw.OutTypeCodePointer, Slice, 0},
	{"cstr16", u16T, etw.InTypeCStr16, etw.OutTypeDefault, CStr, 0},
	{"cstr16_json", u16T, etw.InTypeCStr16, etw.OutTypeJSON, CStr, 0},
	{"cstr16_xml", u16T, etw.InTypeCStr16, etw.OutTypeXML, CStr, 0},
	{"cstr8", u8T, etw.InTypeCStr8, etw.OutTypeUTF8, CStr, 0},
	{"cstr8_cp1252", u8T, etw.InTypeCStr8, etw.OutTypeDefault, CStr, 0},
	{"cstr8_json", u8T, etw.InTypeCStr8, etw.OutTypeJSON, CStr, 0},
	{"cstr8_xml", u8T, etw.InTypeCStr8, etw.OutTypeXML, CStr, 0},
	{"errno", i32T, etw.InTypeI32, etw.OutTypeDefault, Scalar, 0},
	{"errno_slice", i32T, etw.InTypeI32, etw.OutTypeDefault, Slice, 0},
	{"f32", f32T, etw.InTypeF32, etw.OutTypeDefault, Scalar, 0},
	{"f32_slice", f32T, etw.InTypeF32, etw.OutTypeDefault, Slice, 0},
	{"f64", f64T, etw.InTypeF64, etw.OutTypeDefault, Scalar, 0},
	{"f64_slice", f64T, etw.InTypeF64, etw.OutTypeDefault, Slice, 0},
	{"guid", guidT, etw.InTypeGUID, etw.OutTypeDefault, Scalar, 0},
	{"guid_slice", guidT, etw.InTypeGUID, etw.OutTypeDefault, Slice, 0},
	{"hresult", i32T, etw.InTypeI32, etw.OutTypeHResult, Scalar, 0},
	{"hresult_slice", i32T, etw.InTypeI32, etw.OutTypeHResult, Slice, 0},
	{"i16", i16T, etw.InTypeI16, etw.OutTypeDefault, Scalar, 0},
	{"i16_hex", i16T, etw.InTypeU16, etw.OutTypeHex, Scalar, 0},
	{"i16_hex_slice", i16T, etw.InTypeU16, etw.OutTypeHex, Slice, 0},
	{"i16_slice", i16T, etw.InTypeI16, etw.OutTypeDefault, Slice, 0},
	{"i32", i32T, etw.InTypeI32, etw.OutTypeDefault, Scalar, 0},
	{"i32_hex", i32T, etw.InTypeHex32, etw.OutTypeDefault, Scalar, 0},
	{"i32_hex_slice", i32T, etw.InTypeHex32, etw.OutTypeDefault, Slice, 0},
	{"i32_slice", i32T, etw.InTypeI32, etw.OutTypeDefault, Slice, 0},
	{"i64", i64T, etw.InTypeI64, etw.OutTypeDefault, Scalar, 0},
	{"i64_hex", i64T, etw.InTypeHex64, etw.OutTypeDefault, Scalar, 0},
	{"i64_hex_slice", i64T, etw.InTypeHex64, etw.OutTypeDefault, Slice, 0},
	{"i64_slice", i64T, etw.InTypeI64, etw.OutTypeDefault, Slice, 0},
	{"i8", i8T, etw.InTypeI8, etw.OutTypeDefault, Scalar, 0},
	{"i8_hex", i8T, etw.InTypeU8, etw.OutTypeHex, Scalar, 0},
	{"i8_hex_slice", i8T, etw.InTypeU8, etw.OutTypeHex, Slice, 0},
	{"i8_slice", i8T, etw.InTypeI8, etw.OutTypeDefault, Slice, 0},
	{"ipv4", u8T, etw.InTypeU32, etw.OutTypeIPv4, Scalar, 4},
	{"ipv4_slice", u8T, etw.InTypeU32, etw.OutTypeIPv4, Slice, 4},
	{"ipv6", u8T, etw.InTypeBinary, etw.OutTypeIPv6, Counted, 16},
	{"ipv6c", u8T, etw.InTypeBinaryC, etw.OutTypeIPv6, Counted, 16},
	{"isize", intT, etw.InTypeISize, etw.OutTypeDefault, Scalar, 0},
	{"isize_hex", intT, etw.InTypeHexSize, etw.OutTypeDefault, Scalar, 0},
	{"isize_hex_slice", intT, etw.InTypeHexSize, etw.OutTypeDefault, Slice, 0},
	{"isize_slice", intT, etw.InTypeISize, etw.OutTypeDefault, Slice, 0},
	{"pid", u32T, etw.InTypeU32, etw.OutTypePID, Scalar, 0},
	{"pid_slice", u32T, etw.InTypeU32, etw.OutTypePID, Slice, 0},
	{"pointer", uintptrT, etw.InTypeHexSize, etw.OutTypeDefault, Scalar, 0},
	{"pointer_slice", uintptrT, etw.InTypeHexSize, etw.OutTypeDefault, Slice, 0},
	{"port", u16T, etw.InTypeU16, etw.OutTypePort, Scalar, 0},
	{"port_slice", u16T, etw.InTypeU16, etw.OutTypePort, Slice, 0},
	{"raw_data", u8T, etw.InTypeInvalid, etw.OutTypeDefault, RawData, 0},
	{"raw_field", u8T, etw.InTypeInvalid, etw.OutTypeDefault, RawField, 0},
	{"raw_field_slice", u8T, etw.InTypeInvalid, etw.OutTypeDefault, RawFieldSlice, 0},
	{"raw_meta", nil, etw.InTypeInvalid, etw.OutTypeDefault, RawMeta, 0},
	{"raw_meta_slice", nil, etw.InTypeInvalid, etw.OutTypeDefault, RawMetaSlice, 0},
	{"raw_struct", nil, etw.InTypeStruct, etw.OutTypeDefault, RawStruct, 0},
	{"raw_struct_slice", nil, etw.InTypeStruct, etw.OutTypeDefault, RawStructSlice, 0},
	{"socketaddress", u8T, etw.InTypeBinary, etw.OutTypeSocketAddress, Counted, 0},
	{"socketaddressc", u8T, etw.InTypeBinaryC, etw.OutTypeSocketAddress, Counted, 0},
	{"str16", u16T, etw.InTypeStr16, etw.OutTypeDefault, Counted, 0},
	{"str16_json", u16T, etw.InTypeStr16, etw.OutTypeJSON, Counted, 0},
	{"str16_xml", u16T, etw.InTypeStr16, etw.OutTypeXML, Counted, 0},
	{"str8", u8T, etw.InTypeStr8, etw.OutTypeUTF8, Counted, 0},
	{"str8_cp1252", u8T, etw.InTypeStr8, etw.OutTypeDefault, Counted, 0},
	{"str8_json", u8T, etw.InTypeStr8, etw.OutTypeJSON, Counted, 0},
	{"str8_xml", u8T, etw.InTypeStr8, etw.OutTypeXML, Counted, 0},
	{"struct", nil, etw.InTypeStruct, etw.OutTypeDefault, Struct, 0},
	{"systemtime", timeT, etw.InTypeFileTime, etw.OutTypeDefault, SystemTime, 0},
	{"tid", u32T, etw.InTypeU32, etw.OutTypeTID, Scalar, 0},
	{"tid_slice", u32T, etw.InTypeU32, etw.OutTypeTID, Slice, 0},
	{"time32", i32T, etw.InTypeFileTime, etw.OutTypeDefault, Time32, 0},
	{"time64", i64T, etw.InTypeFileTime, etw.OutTypeDefault, Time64, 0},
	{"u16", u16T, etw.InTypeU16, etw.OutTypeDefault, Scalar, 0},
	{"u16_hex", u16T, etw.InTypeU16, etw.OutTypeHex, Scalar, 0},
	{"u16_hex_slice", u16T, etw.InTypeU16, etw.OutTypeHex, Slice, 0},
	{"u16_slice", u16T, etw.InTypeU16, etw.OutTypeDefault, Slice, 0},
	{"u32", u32T, etw.InTypeU32, etw.OutTypeDefault, Scalar, 0},
	{"u32_hex", u32T, etw.InTypeHex32, etw.OutTypeDefault, Scalar, 0},
	{"u32_hex_slice", u32T, etw.InTypeHex32, etw.OutTypeDefault, Slice, 0},
	{"u32_slice", u32T, etw.InTypeU32, etw.OutTypeDefault, Slice, 0},
	{"u64", u64T, etw.InTypeU64, etw.OutTypeDefault, Scalar, 0},
	{"u64_hex", u64T, etw.InTypeHex64, etw.OutTypeDefault, Scalar, 0},
	{"u64_hex_slice", u64T, etw.InTypeHex64, etw.OutTypeDefault, Slice, 0},
	{"u64_slice", u64T, etw.InTypeU64, etw.OutTypeDefault, Slice, 0},
	{"u8", u8T, etw.InTypeU8, etw.OutTypeDefault, Scalar, 0},
	{"u8_hex", u8T, etw.InTypeU8, etw.OutTypeHex, Scalar, 0},
	{"u8_hex_slice", u8T, etw.InTypeU8, etw.OutTypeHex, Slice, 0},
	{"u8_slice", u8T, etw.InTypeU8, etw.OutTypeDefault, Slice, 0},
	{"usize", uintT, etw.InTypeUSize, etw.OutTypeDefault, Scalar, 0},
	{"usize_hex", uintT, etw.InTypeHexSize, etw.OutTypeDefault, Scalar, 0},
	{"usize_hex_slice", uintT, etw.InTypeHexSize, etw.OutTypeDefault, Slice, 0},
	{"usize_slice", uintT, etw.InTypeUSize, etw.OutTypeDefault, Slice, 0},
	{"win_error", u32T, etw.InTypeU32, etw.OutTypeWin32Error, Scalar, 0},
	{"win_error_slice", u32T, etw.InTypeU32, etw.OutTypeWin32Error, Slice, 0},
	{"win_filetime", i64T, etw.InTypeFileTime, etw.OutTypeDefault, Scalar, 0},
	{"win_filetime_slice", i64T, etw.InTypeFileTime, etw.OutTypeDefault, Slice, 0},
	{"win_ntstatus", i32T, etw.InTypeHex32, etw.OutTypeNTStatus, Scalar, 0},
	{"win_ntstatus_slice", i32T, etw.InTypeHex32, etw.OutTypeNTStatus, Slice, 0},
	{"win_sid", u8T, etw.InTypeSID, etw.OutTypeDefault, Sid, 0},
	{"win_systemtime", u16T, etw.InTypeSystemTime, etw.OutTypeDefault, Scalar, 8},
	{"win_systemtime_slice", u16T, etw.InTypeSystemTime, etw.OutTypeDefault, Slice, 8},
	{"win_systemtime_utc", u16T, etw.InTypeSystemTime, etw.OutTypeDateTimeUTC, Scalar, 8},
	{"win_systemtime_utc_slice", u16T, etw.InTypeSystemTime, etw.OutTypeDateTimeUTC, Slice, 8},
}

// Lookup returns the field option named name.
func Lookup(name string) (*FieldKind, bool) {
	i := sort.Search(len(Kinds), func(i int) bool { return Kinds[i].Name >= name })
	if i < len(Kinds) && Kinds[i].Name == name {
		return &Kinds[i], true
	}
	return nil, false
}
