package catalog

import "strconv"

// Strategy selects how a field's value is marshalled and which suboptions the
// field accepts.
type Strategy uint8

const (
	// Scalar fields are a single fixed-size value, or a fixed-length array of
	// values.
	Scalar Strategy = iota
	// Time32 fields are a 32-bit time_t converted to a FILETIME.
	Time32
	// Time64 fields are a 64-bit time_t converted to a FILETIME.
	Time64
	// SystemTime fields are a calendar time converted to a FILETIME.
	SystemTime
	// CStr fields are a nul-terminated string followed by a separate
	// terminator block.
	CStr
	// Counted fields are a UINT16 byte count followed by the payload.
	Counted
	// Slice fields are a UINT16 element count followed by the elements.
	Slice
	// Sid fields are a binary SID whose length is derived from its content.
	Sid
	// Struct fields group the fields that follow them.
	Struct
	// RawData appends bytes to the event payload without any metadata.
	RawData
	// RawField is a field with a caller-supplied InType and pre-encoded data.
	RawField
	// RawFieldSlice is a variable count array with pre-encoded data.
	RawFieldSlice
	// RawMeta adds field metadata without any data.
	RawMeta
	// RawMetaSlice adds variable count array metadata without any data.
	RawMetaSlice
	// RawStruct adds struct metadata with a caller-supplied field count.
	RawStruct
	// RawStructSlice adds struct array metadata with a caller-supplied field
	// count.
	RawStructSlice
)

var strategyNames = [...]string{
	Scalar:         "Scalar",
	Time32:         "Time32",
	Time64:         "Time64",
	SystemTime:     "SystemTime",
	CStr:           "CStr",
	Counted:        "Counted",
	Slice:          "Slice",
	Sid:            "Sid",
	Struct:         "Struct",
	RawData:        "RawData",
	RawField:       "RawField",
	RawFieldSlice:  "RawFieldSlice",
	RawMeta:        "RawMeta",
	RawMetaSlice:   "RawMetaSlice",
	RawStruct:      "RawStruct",
	RawStructSlice: "RawStructSlice",
}

func (s Strategy) String() string {
	if int(s) < len(strategyNames) {
		return strategyNames[s]
	}
	return "Strategy(" + strconv.Itoa(int(s)) + ")"
}

// Capabilities describes the suboptions a strategy accepts.
type Capabilities struct {
	// Tag is set if the field accepts tag(...).
	Tag bool
	// Format is set if the field accepts format(...).
	Format bool
	// Group is set if the field introduces a braced group of nested fields.
	Group bool
	// InType is set if the field takes an explicit InType argument.
	InType bool
	// FieldCount is set if the field takes an explicit field count argument.
	FieldCount bool
}

// Capabilities returns the fixed capability table entry for s.
func (s Strategy) Capabilities() Capabilities {
	switch s {
	case Scalar, SystemTime, Time32, Time64, Sid, CStr, Counted, Slice:
		return Capabilities{Tag: true, Format: true}
	case Struct:
		return Capabilities{Tag: true, Group: true}
	case RawField, RawFieldSlice, RawMeta, RawMetaSlice:
		return Capabilities{Tag: true, Format: true, InType: true}
	case RawStruct, RawStructSlice:
		return Capabilities{Tag: true, FieldCount: true}
	default:
		return Capabilities{}
	}
}

// HasMetadata reports whether fields of this strategy contribute a name and
// type codes to the event metadata.
func (s Strategy) HasMetadata() bool {
	return s != RawData
}

// DataCount returns the number of data descriptors a field of this strategy
// uses: 0 for metadata-only fields, 1 for fixed-length fields and 2 for
// variable-length fields.
func (s Strategy) DataCount() uint8 {
	switch s {
	case Struct, RawMeta, RawMetaSlice, RawStruct, RawStructSlice:
		return 0
	case CStr, Counted, Slice:
		return 2
	default:
		return 1
	}
}

// IsSlice reports whether the field's InType carries the variable count flag.
func (s Strategy) IsSlice() bool {
	switch s {
	case Slice, RawFieldSlice, RawMetaSlice, RawStructSlice:
		return true
	}
	return false
}
