package eqkit

import (
	"encoding/binary"
	"hash"
	"hash/fnv"
	"math"
	"reflect"
)

// Hash returns the hash of the value.
//
// When no registered function or Hash/HashCode method covers the value's type,
// the hash is a FNV-1a digest over the value graph.
// The digest visits the same parts of the value that reflect.DeepEqual compares,
// which keeps fallback hashing consistent with fallback equality.
// Unexported struct fields stay out of the digest.
// It is deterministic within a process, but not meant to be stable across processes or releases.
func Hash(v any) uint64 {
	if v == nil {
		return fnv.New64a().Sum64()
	}
	rv := reflect.ValueOf(v)
	if fn, ok := lookupHashFunc(rv.Type()); ok {
		return fn(rv)
	}
	if h, ok := tryHashMethod(rv); ok {
		return h
	}
	return reflectHash(rv)
}

// HashBytes digests the given byte slices with FNV-1a.
// It is a convenience for writing RegisterHash functions
// that hash a canonical byte form of their value.
func HashBytes(bs ...[]byte) uint64 {
	h := fnv.New64a()
	for _, b := range bs {
		_, _ = h.Write(b)
	}
	return h.Sum64()
}

func lookupHashFunc(typ reflect.Type) (func(v reflect.Value) uint64, bool) {
	if fn, ok := hashFuncRegistry[typ]; ok {
		return fn, true
	}
	if typ.Kind() == reflect.Pointer {
		if fn, ok := hashFuncRegistry[typ.Elem()]; ok {
			return func(v reflect.Value) uint64 {
				if v.IsNil() {
					return fnv.New64a().Sum64()
				}
				return fn(v.Elem())
			}, true
		}
	}
	return nil, false
}

var hashMethodNames = []string{"Hash", "HashCode"}

func tryHashMethod(v reflect.Value) (uint64, bool) {
	for _, name := range hashMethodNames {
		for _, recv := range receiverForms(v) {
			method := recv.MethodByName(name)
			if !method.IsValid() {
				continue
			}
			mt := method.Type()
			if mt.NumIn() != 0 || mt.NumOut() != 1 {
				continue
			}
			out := method.Call(nil)[0]
			switch out.Kind() {
			case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
				return out.Uint(), true
			case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
				return uint64(out.Int()), true
			}
		}
	}
	return 0, false
}

func reflectHash(v reflect.Value) uint64 {
	h := fnv.New64a()
	writeHash(h, v, make(map[hashVisit]struct{}))
	return h.Sum64()
}

type hashVisit struct {
	ptr uintptr
	typ reflect.Type
}

func writeHash(h hash.Hash64, v reflect.Value, seen map[hashVisit]struct{}) {
	if !v.IsValid() {
		writeHashByte(h, 0)
		return
	}
	writeHashByte(h, byte(v.Kind())+1)
	switch v.Kind() {
	case reflect.Bool:
		if v.Bool() {
			writeHashByte(h, 1)
		} else {
			writeHashByte(h, 0)
		}

	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		writeHashUint64(h, uint64(v.Int()))

	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		writeHashUint64(h, v.Uint())

	case reflect.Float32, reflect.Float64:
		writeHashFloat(h, v.Float())

	case reflect.Complex64, reflect.Complex128:
		c := v.Complex()
		writeHashFloat(h, real(c))
		writeHashFloat(h, imag(c))

	case reflect.String:
		writeHashUint64(h, uint64(v.Len()))
		_, _ = h.Write([]byte(v.String()))

	case reflect.Slice:
		if v.IsNil() {
			writeHashByte(h, 0)
			return
		}
		writeHashByte(h, 1)
		writeHashUint64(h, uint64(v.Len()))
		if v.Type().Elem().Kind() == reflect.Uint8 {
			_, _ = h.Write(v.Bytes())
			return
		}
		visit, entered := enterHashVisit(seen, v)
		if !entered {
			return
		}
		for i, l := 0, v.Len(); i < l; i++ {
			writeHash(h, v.Index(i), seen)
		}
		delete(seen, visit)

	case reflect.Array:
		for i, l := 0, v.Len(); i < l; i++ {
			writeHash(h, v.Index(i), seen)
		}

	case reflect.Map:
		if v.IsNil() {
			writeHashByte(h, 0)
			return
		}
		writeHashByte(h, 1)
		writeHashUint64(h, uint64(v.Len()))
		visit, entered := enterHashVisit(seen, v)
		if !entered {
			return
		}
		// map iteration order is random, so entry hashes are combined order independently
		var acc uint64
		iter := v.MapRange()
		for iter.Next() {
			entry := fnv.New64a()
			writeHash(entry, iter.Key(), seen)
			writeHash(entry, iter.Value(), seen)
			acc ^= entry.Sum64()
		}
		writeHashUint64(h, acc)
		delete(seen, visit)

	case reflect.Pointer:
		if v.IsNil() {
			writeHashByte(h, 0)
			return
		}
		writeHashByte(h, 1)
		visit, entered := enterHashVisit(seen, v)
		if !entered {
			return
		}
		writeHash(h, v.Elem(), seen)
		delete(seen, visit)

	case reflect.Interface:
		if v.IsNil() {
			writeHashByte(h, 0)
			return
		}
		writeHashByte(h, 1)
		writeHash(h, v.Elem(), seen)

	case reflect.Struct:
		for i, n := 0, v.NumField(); i < n; i++ {
			if !v.Type().Field(i).IsExported() {
				continue
			}
			writeHash(h, v.Field(i), seen)
		}

	case reflect.Func:
		// non nil functions are never deeply equal, any constant works here
		if v.IsNil() {
			writeHashByte(h, 0)
		} else {
			writeHashByte(h, 1)
		}

	case reflect.Chan:
		if v.IsNil() {
			writeHashByte(h, 0)
			return
		}
		writeHashByte(h, 1)
		writeHashUint64(h, uint64(v.Pointer()))

	case reflect.UnsafePointer:
		writeHashUint64(h, uint64(v.Pointer()))
	}
}

// enterHashVisit guards against self referential values.
// The seen set holds the walk path down to the current value, and the caller
// removes the visit again on the way out, so that a value reached twice through
// different branches digests the same as two equal but distinct values would.
func enterHashVisit(seen map[hashVisit]struct{}, v reflect.Value) (hashVisit, bool) {
	visit := hashVisit{ptr: v.Pointer(), typ: v.Type()}
	if _, ok := seen[visit]; ok {
		return visit, false
	}
	seen[visit] = struct{}{}
	return visit, true
}

func writeHashByte(h hash.Hash64, b byte) {
	_, _ = h.Write([]byte{b})
}

func writeHashUint64(h hash.Hash64, u uint64) {
	var buf [8]byte
	binary.LittleEndian.PutUint64(buf[:], u)
	_, _ = h.Write(buf[:])
}

func writeHashFloat(h hash.Hash64, f float64) {
	if f == 0 {
		f = 0 // negative zero digests as positive zero
	}
	writeHashUint64(h, math.Float64bits(f))
}
