package doc

import (
	"encoding/base64"
	"fmt"
	"reflect"
	"sort"
	"strconv"
)

// Marshaler is the writer-side extension point, mirroring Unmarshaler.
type Marshaler interface {
	MarshalYDoc(w Writer) error
}

// SetValue serializes v into the node itself: scalars become the
// node's value, slices and maps become its children.
func SetValue[T any](w Writer, v T) error {
	return writeInto(w, v)
}

// Write appends an unkeyed child holding v and returns its writer.
func Write[T any](w Writer, v T) (Writer, error) {
	if !w.IsValid() {
		return w, &Error{Type: typeName[T](),
			Msg: "tried to serialize into invalid node", Err: ErrInvalidNode}
	}
	c := w.Append()
	if err := writeInto(c, v); err != nil {
		return c, err
	}
	return c, nil
}

// WriteKey appends a keyed child holding v and returns its writer.
func WriteKey[T any](w Writer, key string, v T) (Writer, error) {
	if !w.IsValid() {
		return w, &Error{Type: typeName[T](),
			Msg: "tried to serialize into invalid node", Err: ErrInvalidNode}
	}
	c := w.AppendKey(key)
	if err := writeInto(c, v); err != nil {
		return c, err
	}
	return c, nil
}

// WriteSeq writes vs as a keyed sequence child. An empty slice writes
// nothing at all: absence on re-read is indistinguishable from never
// having written, matching ReadChild's default behavior.
func WriteSeq[T any](w Writer, key string, vs []T) error {
	if len(vs) == 0 {
		return nil
	}
	_, err := WriteKey(w, key, vs)
	return err
}

// WriteBase64 writes d as a keyed base64 scalar child.
func (w Writer) WriteBase64(key string, d []byte) error {
	if !w.IsValid() {
		return &Error{Type: "[]byte",
			Msg: "tried to serialize into invalid node", Err: ErrInvalidNode}
	}
	return w.AppendKey(key).SetBase64(d)
}

// SetBase64 sets the node's value to the standard base64 encoding of d.
func (w Writer) SetBase64(d []byte) error {
	if !w.IsValid() {
		return &Error{Type: "[]byte",
			Msg: "tried to serialize into invalid node", Err: ErrInvalidNode}
	}
	w.tree().SetVal(w.id, base64.StdEncoding.EncodeToString(d))
	return nil
}

func writeInto(w Writer, v any) error {
	if !w.IsValid() {
		return &Error{Type: typeNameOfVal(v),
			Msg: "tried to serialize into invalid node", Err: ErrInvalidNode}
	}
	if m, ok := v.(Marshaler); ok {
		if err := m.MarshalYDoc(w); err != nil {
			if se, ok := err.(*Error); ok {
				return se
			}
			return serializeErr(typeNameOfVal(v), err)
		}
		return nil
	}
	return writeReflect(w, reflect.ValueOf(v))
}

func writeReflect(w Writer, v reflect.Value) error {
	if c, ok := lookupConv(v.Type()); ok {
		w.tree().SetVal(w.id, c.write(v))
		return nil
	}
	if v.CanAddr() {
		if m, ok := v.Addr().Interface().(Marshaler); ok {
			if err := m.MarshalYDoc(w); err != nil {
				if se, ok := err.(*Error); ok {
					return se
				}
				return serializeErr(v.Type().String(), err)
			}
			return nil
		}
	}
	switch v.Kind() {
	case reflect.Pointer:
		if v.IsNil() {
			// left valueless, the node renders as an explicit null
			return nil
		}
		return writeReflect(w, v.Elem())
	case reflect.String, reflect.Bool,
		reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		s, err := scalarToText(v)
		if err != nil {
			return serializeErr(v.Type().String(), err)
		}
		w.tree().SetVal(w.id, s)
		return nil
	case reflect.Slice, reflect.Array:
		w.SetAsSeq()
		for i := 0; i < v.Len(); i++ {
			if err := writeReflect(w.Append(), v.Index(i)); err != nil {
				return err
			}
		}
		return nil
	case reflect.Map:
		w.SetAsMap()
		type entry struct {
			key string
			val reflect.Value
		}
		entries := make([]entry, 0, v.Len())
		it := v.MapRange()
		for it.Next() {
			k, err := scalarToText(it.Key())
			if err != nil {
				return serializeErr(v.Type().Key().String(), err)
			}
			entries = append(entries, entry{key: k, val: it.Value()})
		}
		// deterministic output regardless of Go map iteration order
		sort.Slice(entries, func(i, j int) bool {
			return entries[i].key < entries[j].key
		})
		for _, e := range entries {
			if err := writeReflect(w.AppendKey(e.key), e.val); err != nil {
				return err
			}
		}
		return nil
	default:
		return &Error{Type: v.Type().String(),
			Msg: "no conversion registered for source type", Err: ErrNoConversion}
	}
}

// scalarToText renders a scalar-kinded value. Booleans render as the
// words true and false, never as numbers.
func scalarToText(v reflect.Value) (string, error) {
	if c, ok := lookupConv(v.Type()); ok {
		return c.write(v), nil
	}
	switch v.Kind() {
	case reflect.String:
		return v.String(), nil
	case reflect.Bool:
		return strconv.FormatBool(v.Bool()), nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return strconv.FormatInt(v.Int(), 10), nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return strconv.FormatUint(v.Uint(), 10), nil
	case reflect.Float32, reflect.Float64:
		return strconv.FormatFloat(v.Float(), 'g', -1, v.Type().Bits()), nil
	}
	return "", fmt.Errorf("%w for scalar type %s", ErrNoConversion, v.Type())
}

func serializeErr(typeName string, cause error) error {
	err := error(ErrSerialize)
	if cause != nil {
		err = fmt.Errorf("%w: %w", ErrSerialize, cause)
	}
	return &Error{Type: typeName, Msg: "could not serialize value", Err: err}
}

func typeNameOfVal(v any) string {
	if t := reflect.TypeOf(v); t != nil {
		return t.String()
	}
	return "nil"
}
