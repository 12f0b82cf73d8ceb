package tracelogging

import (
	"bytes"
	"encoding/binary"
	"reflect"
	"time"
	"unicode/utf16"

	"github.com/pkg/errors"

	"github.com/Microsoft/go-tracelogging/pkg/etw"
	"github.com/Microsoft/go-tracelogging/pkg/guid"
	"github.com/Microsoft/go-tracelogging/pkg/tracelogging/layout"
)

var (
	boolType  = reflect.TypeOf(false)
	bytesType = reflect.TypeOf([]byte(nil))
	guidType  = reflect.TypeOf(guid.GUID{})
	timeType  = reflect.TypeOf(time.Time{})
)

// correlationID converts an activity or related activity ID argument.
func correlationID(b *layout.Binding, v interface{}) (*guid.GUID, error) {
	switch v := v.(type) {
	case nil:
		return nil, nil
	case guid.GUID:
		return &v, nil
	case *guid.GUID:
		return v, nil
	}
	return nil, errors.Errorf("%s: expected guid.GUID or *guid.GUID, got %T", b.Name, v)
}

// marshalArg returns the little-endian bytes of an event argument.
func marshalArg(b *layout.Binding, v interface{}) ([]byte, error) {
	if v == nil {
		return nil, errors.Errorf("%s (%s): missing value", b.Name, b.Expr)
	}
	rv := reflect.ValueOf(v)

	switch b.Kind {
	case layout.BindTime32:
		t, err := intValue(b, rv)
		if err != nil {
			return nil, err
		}
		if int64(int32(t)) != t {
			return nil, errors.Errorf("%s: time32 value %d overflows int32", b.Name, t)
		}
		return encodeFiletime(etw.FiletimeFromTime32(int32(t))), nil
	case layout.BindTime64:
		t, err := intValue(b, rv)
		if err != nil {
			return nil, err
		}
		return encodeFiletime(etw.FiletimeFromTime64(t)), nil
	case layout.BindSystemTime:
		switch t := v.(type) {
		case time.Time:
			return encodeFiletime(etw.FiletimeFromTime(t)), nil
		case *time.Time:
			if t != nil {
				return encodeFiletime(etw.FiletimeFromTime(*t)), nil
			}
		}
		return nil, errors.Errorf("%s: expected time.Time, got %T", b.Name, v)
	case layout.BindScalar:
		if b.ArrayLen == 0 {
			buf := &bytes.Buffer{}
			if err := writeElem(buf, b, rv); err != nil {
				return nil, err
			}
			return buf.Bytes(), nil
		}
		data, err := marshalSequence(b, rv)
		if err != nil {
			return nil, err
		}
		if want := b.ArrayLen * elemSize(b.Elem); len(data) != want {
			return nil, errors.Errorf("%s: expected %d bytes, got %d", b.Name, want, len(data))
		}
		return data, nil
	case layout.BindSequence:
		return marshalSequence(b, rv)
	}
	return nil, errors.Errorf("%s: cannot marshal %s argument", b.Name, b.Kind)
}

func marshalSequence(b *layout.Binding, rv reflect.Value) ([]byte, error) {
	if rv.Kind() == reflect.Ptr && !rv.IsNil() && rv.Elem().Kind() == reflect.Array {
		rv = rv.Elem()
	}

	switch {
	case rv.Kind() == reflect.String:
		switch elemSize(b.Elem) {
		case 1:
			return []byte(rv.String()), nil
		case 2:
			buf := &bytes.Buffer{}
			if err := binary.Write(buf, binary.LittleEndian, utf16.Encode([]rune(rv.String()))); err != nil {
				return nil, err
			}
			return buf.Bytes(), nil
		}
		return nil, errors.Errorf("%s: string value for %s elements", b.Name, b.Elem)
	case rv.Kind() == reflect.Slice && rv.Type().Elem().Kind() == reflect.Uint8 && b.Elem.Kind() == reflect.Uint8:
		return rv.Convert(bytesType).Bytes(), nil
	case rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array:
		return nil, errors.Errorf("%s: expected a slice of %s, got %s", b.Name, b.Elem, rv.Type())
	}

	buf := &bytes.Buffer{}
	for i := 0; i < rv.Len(); i++ {
		e := rv.Index(i)
		// Nested fixed-length arrays, e.g. [][4]byte for ipv4 addresses.
		if b.ArrayLen != 0 && (e.Kind() == reflect.Array || e.Kind() == reflect.Slice) {
			if e.Len() != b.ArrayLen {
				return nil, errors.Errorf("%s[%d]: expected %d elements, got %d", b.Name, i, b.ArrayLen, e.Len())
			}
			for j := 0; j < e.Len(); j++ {
				if err := writeElem(buf, b, e.Index(j)); err != nil {
					return nil, err
				}
			}
			continue
		}
		if err := writeElem(buf, b, e); err != nil {
			return nil, err
		}
	}
	return buf.Bytes(), nil
}

// writeElem writes a single element converted to the binding's element type.
// Pointer-sized integers are written with the size of the element type.
func writeElem(buf *bytes.Buffer, b *layout.Binding, rv reflect.Value) error {
	elem := b.Elem
	if rv.Kind() == reflect.Interface {
		rv = rv.Elem()
	}
	if !rv.IsValid() {
		return errors.Errorf("%s: missing element", b.Name)
	}

	switch {
	case elem == guidType:
		if !rv.Type().ConvertibleTo(guidType) {
			return errors.Errorf("%s: expected guid.GUID, got %s", b.Name, rv.Type())
		}
		a := rv.Convert(guidType).Interface().(guid.GUID).ToWindowsArray()
		buf.Write(a[:])
		return nil
	case rv.Kind() == reflect.Bool:
		var x uint8
		if rv.Bool() {
			x = 1
		}
		switch elem.Size() {
		case 1:
			buf.WriteByte(x)
		case 4:
			return binary.Write(buf, binary.LittleEndian, uint32(x))
		default:
			return errors.Errorf("%s: bool value for %s element", b.Name, elem)
		}
		return nil
	case elem == boolType:
		return errors.Errorf("%s: expected bool, got %s", b.Name, rv.Type())
	case !isNumeric(rv.Kind()) || !rv.Type().ConvertibleTo(elem):
		return errors.Errorf("%s: cannot convert %s to %s", b.Name, rv.Type(), elem)
	}

	cv := rv.Convert(elem)
	switch elem.Kind() {
	case reflect.Int:
		if elem.Size() == 4 {
			return binary.Write(buf, binary.LittleEndian, int32(cv.Int()))
		}
		return binary.Write(buf, binary.LittleEndian, cv.Int())
	case reflect.Uint, reflect.Uintptr:
		if elem.Size() == 4 {
			return binary.Write(buf, binary.LittleEndian, uint32(cv.Uint()))
		}
		return binary.Write(buf, binary.LittleEndian, cv.Uint())
	}
	return binary.Write(buf, binary.LittleEndian, cv.Interface())
}

func intValue(b *layout.Binding, rv reflect.Value) (int64, error) {
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return rv.Int(), nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		u := rv.Uint()
		if int64(u) < 0 {
			return 0, errors.Errorf("%s: value %d overflows int64", b.Name, u)
		}
		return int64(u), nil
	}
	return 0, errors.Errorf("%s: expected an integer, got %s", b.Name, rv.Type())
}

func isNumeric(k reflect.Kind) bool {
	return k >= reflect.Int && k <= reflect.Float64
}

func elemSize(t reflect.Type) int {
	switch t {
	case guidType:
		return 16
	case timeType:
		return 8
	}
	return int(t.Size())
}

// sequenceElemSize returns the size of one element of a sequence argument.
func sequenceElemSize(b *layout.Binding) int {
	n := elemSize(b.Elem)
	if b.ArrayLen > 0 {
		n *= b.ArrayLen
	}
	return n
}

func encodeFiletime(ft int64) []byte {
	b := make([]byte, 8)
	binary.LittleEndian.PutUint64(b, uint64(ft))
	return b
}
