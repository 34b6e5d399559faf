package doc

import (
	"encoding/base64"
	"fmt"
	"reflect"
	"strconv"
	"strings"
	"sync"
)

// Unmarshaler is implemented by types that deserialize themselves
// from a node. It is the reader-side extension point: domain types
// opt in by implementing it rather than by overload lookup.
type Unmarshaler interface {
	UnmarshalYDoc(r Reader) error
}

type scalarConv struct {
	read  func(s string, out reflect.Value) error
	write func(v reflect.Value) string
}

var scalarConvs sync.Map // reflect.Type -> scalarConv

// RegisterScalar installs a scalar conversion for T, used by both
// readers and writers wherever a T (or a map key of type T) appears.
// Intended for enum-like types serialized as words.
func RegisterScalar[T any](read func(string) (T, error), write func(T) string) {
	rt := reflect.TypeFor[T]()
	scalarConvs.Store(rt, scalarConv{
		read: func(s string, out reflect.Value) error {
			v, err := read(s)
			if err != nil {
				return err
			}
			out.Set(reflect.ValueOf(v))
			return nil
		},
		write: func(v reflect.Value) string {
			return write(v.Interface().(T))
		},
	})
}

func lookupConv(rt reflect.Type) (scalarConv, bool) {
	c, ok := scalarConvs.Load(rt)
	if !ok {
		return scalarConv{}, false
	}
	return c.(scalarConv), true
}

// Read deserializes the node's value into a T. It fails with a
// *Error carrying the node's location and T's name if the reader is
// invalid or no conversion applies.
func Read[T any](r Reader) (T, error) {
	var out T
	if err := readInto(r, &out); err != nil {
		var zero T
		return zero, err
	}
	return out, nil
}

// ReadDefault is like Read but returns def instead of failing.
func ReadDefault[T any](r Reader, def T) T {
	var out T
	if err := readInto(r, &out); err != nil {
		return def
	}
	return out
}

// ReadKey deserializes the node's key rather than its value.
func ReadKey[T any](r Reader) (T, error) {
	var out T
	if !r.IsValid() {
		return out, &Error{Type: typeName[T](),
			Msg: "tried to deserialize invalid node's key", Err: ErrInvalidNode}
	}
	if !r.HasKey() {
		return out, &Error{Loc: r.locOrNil(), Type: typeName[T](),
			Msg: "node has no key", Err: ErrNoKey}
	}
	v := reflect.ValueOf(&out).Elem()
	if err := scalarFromText(r.Key(), v); err != nil {
		return out, r.deserializeErr(typeName[T](), err)
	}
	return out, nil
}

// ReadKeyDefault is like ReadKey but returns def instead of failing.
func ReadKeyDefault[T any](r Reader, def T) T {
	out, err := ReadKey[T](r)
	if err != nil {
		return def
	}
	return out
}

// TryRead looks up key on a map view and deserializes the child into
// out. Absence is not an error: found is false and out is untouched.
// A present but malformed value reports found with a non-nil error.
func TryRead[T any](r Reader, key string, out *T) (found bool, err error) {
	if !r.IsValid() {
		return false, nil
	}
	c := r.Child(key)
	if !c.IsValid() {
		return false, nil
	}
	if err := readInto(c, out); err != nil {
		return true, err
	}
	return true, nil
}

// TryReadVal deserializes the node's value into out, reporting false
// (and leaving out untouched) when the reader is invalid.
func TryReadVal[T any](r Reader, out *T) (found bool, err error) {
	if !r.IsValid() {
		return false, nil
	}
	if err := readInto(r, out); err != nil {
		return true, err
	}
	return true, nil
}

// ReadChild deserializes the keyed child, returning def when the key
// is absent or the view is not a map. A present but malformed value
// returns def along with the error.
func ReadChild[T any](r Reader, key string, def T) (T, error) {
	out := def
	found, err := TryRead(r, key, &out)
	if err != nil {
		return def, err
	}
	if !found {
		return def, nil
	}
	return out, nil
}

// ReadBase64 deserializes the node's scalar as standard base64. The
// decode is two-phase: the exact decoded length is computed first and
// an exact-size buffer allocated before decoding. A present empty
// scalar yields an empty, non-nil slice.
func (r Reader) ReadBase64() ([]byte, error) {
	if !r.IsValid() {
		return nil, &Error{Type: "[]byte",
			Msg: "tried to deserialize invalid node", Err: ErrInvalidNode}
	}
	s := r.Val()
	if s == "" {
		return []byte{}, nil
	}
	if len(s)%4 != 0 {
		return nil, r.deserializeErr("[]byte",
			fmt.Errorf("bad base64 length %d", len(s)))
	}
	size := len(s) / 4 * 3
	if strings.HasSuffix(s, "==") {
		size -= 2
	} else if strings.HasSuffix(s, "=") {
		size -= 1
	}
	buf := make([]byte, size)
	n, err := base64.StdEncoding.Decode(buf, []byte(s))
	if err != nil {
		return nil, r.deserializeErr("[]byte", err)
	}
	return buf[:n], nil
}

func readInto(r Reader, out any) error {
	if !r.IsValid() {
		return &Error{Type: typeNameOf(out),
			Msg: "tried to deserialize invalid node", Err: ErrInvalidNode}
	}
	if u, ok := out.(Unmarshaler); ok {
		if err := u.UnmarshalYDoc(r); err != nil {
			if de, ok := err.(*Error); ok {
				return de
			}
			return r.deserializeErr(typeNameOf(out), err)
		}
		return nil
	}
	return readReflect(r, reflect.ValueOf(out).Elem())
}

func readReflect(r Reader, v reflect.Value) error {
	if c, ok := lookupConv(v.Type()); ok {
		if !r.HasVal() {
			return r.deserializeErr(v.Type().String(),
				fmt.Errorf("node is not a scalar"))
		}
		if err := c.read(r.Val(), v); err != nil {
			return r.deserializeErr(v.Type().String(), err)
		}
		return nil
	}
	if v.CanAddr() {
		if u, ok := v.Addr().Interface().(Unmarshaler); ok {
			if err := u.UnmarshalYDoc(r); err != nil {
				if de, ok := err.(*Error); ok {
					return de
				}
				return r.deserializeErr(v.Type().String(), err)
			}
			return nil
		}
	}
	switch v.Kind() {
	case reflect.Pointer:
		if v.IsNil() {
			v.Set(reflect.New(v.Type().Elem()))
		}
		return readReflect(r, v.Elem())
	case reflect.String, reflect.Bool,
		reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		if !r.HasVal() {
			return r.deserializeErr(v.Type().String(),
				fmt.Errorf("node is not a scalar"))
		}
		if err := scalarFromText(r.Val(), v); err != nil {
			return r.deserializeErr(v.Type().String(), err)
		}
		return nil
	case reflect.Slice:
		if !r.IsSeq() {
			return r.deserializeErr(v.Type().String(),
				fmt.Errorf("node is not a sequence"))
		}
		// replace wholesale: prior contents never survive a read
		n := r.ChildCount()
		out := reflect.MakeSlice(v.Type(), n, n)
		for i, c := range r.Children() {
			if err := readReflect(c, out.Index(i)); err != nil {
				return err
			}
		}
		v.Set(out)
		return nil
	case reflect.Map:
		if !r.IsMap() {
			return r.deserializeErr(v.Type().String(),
				fmt.Errorf("node is not a mapping"))
		}
		out := reflect.MakeMap(v.Type())
		for _, c := range r.Children() {
			k := reflect.New(v.Type().Key()).Elem()
			if err := scalarFromText(c.Key(), k); err != nil {
				return c.deserializeErr(v.Type().Key().String(), err)
			}
			e := reflect.New(v.Type().Elem()).Elem()
			if err := readReflect(c, e); err != nil {
				return err
			}
			out.SetMapIndex(k, e)
		}
		v.Set(out)
		return nil
	default:
		return &Error{Loc: r.locOrNil(), Type: v.Type().String(),
			Msg: "no conversion registered for target type", Err: ErrNoConversion}
	}
}

// scalarFromText parses s into a scalar-kinded value. Booleans accept
// the usual word forms; numbers are base 10.
func scalarFromText(s string, v reflect.Value) error {
	if c, ok := lookupConv(v.Type()); ok {
		return c.read(s, v)
	}
	switch v.Kind() {
	case reflect.String:
		v.SetString(s)
	case reflect.Bool:
		b, err := strconv.ParseBool(s)
		if err != nil {
			return err
		}
		v.SetBool(b)
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		i, err := strconv.ParseInt(s, 10, v.Type().Bits())
		if err != nil {
			return err
		}
		v.SetInt(i)
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		u, err := strconv.ParseUint(s, 10, v.Type().Bits())
		if err != nil {
			return err
		}
		v.SetUint(u)
	case reflect.Float32, reflect.Float64:
		f, err := strconv.ParseFloat(s, v.Type().Bits())
		if err != nil {
			return err
		}
		v.SetFloat(f)
	default:
		return fmt.Errorf("%w for scalar type %s", ErrNoConversion, v.Type())
	}
	return nil
}

func (r Reader) deserializeErr(typeName string, cause error) error {
	err := error(ErrDeserialize)
	if cause != nil {
		err = fmt.Errorf("%w: %w", ErrDeserialize, cause)
	}
	return &Error{Loc: r.locOrNil(), Type: typeName,
		Msg: "could not deserialize value", Err: err}
}

func typeName[T any]() string {
	return reflect.TypeFor[T]().String()
}

func typeNameOf(p any) string {
	t := reflect.TypeOf(p)
	if t != nil && t.Kind() == reflect.Pointer {
		return t.Elem().String()
	}
	return fmt.Sprintf("%T", p)
}
