// Package eqkit defines what "the type's own equality and hash operation" means
// for the eqtest package, and makes both available as standalone functions.
//
// Equality resolution order for eqkit.Equal:
//   - a per type function registered with RegisterEqual
//   - an `Equal` or `IsEqual` method on the value (value or pointer receiver,
//     accepting either the same type or any, returning bool)
//   - a `Cmp` method in the math/big style, where a zero result means equal
//   - reflect.DeepEqual as the fallback
//
// Hash resolution order for eqkit.Hash mirrors the above:
//   - a per type function registered with RegisterHash
//   - a `Hash` or `HashCode` method on the value (no arguments, one integer result)
//   - a deterministic FNV-1a digest of the value graph as the fallback
//
// Pointer values resolve with their own type first,
// and then through the value they point to.
//
// The fallback hash is consistent with the fallback equality,
// so the "equal values must hash equally" law holds out of the box,
// and it remains the caller's responsibility to keep it holding
// once they supply their own methods or registrations.
package eqkit

import (
	"reflect"
)

var (
	equalFuncRegistry = map[reflect.Type]func(v1, v2 reflect.Value) bool{}
	hashFuncRegistry  = map[reflect.Type]func(v reflect.Value) uint64{}
)

// RegisterEqual lets you define how values of the T type should be compared.
// A registration takes precedence over both the methods of T and the deep equality fallback.
//
// Registration is meant to be done during package initialization:
//
//	var _ = eqkit.RegisterEqual[MyType](func(a, b MyType) bool { ... })
//
// The registry is not safe for concurrent mutation.
func RegisterEqual[T any](fn func(v1, v2 T) bool) struct{} {
	equalFuncRegistry[typeOf[T]()] = func(v1, v2 reflect.Value) bool {
		return fn(v1.Interface().(T), v2.Interface().(T))
	}
	return struct{}{}
}

// RegisterHash lets you define how values of the T type should be hashed.
// Whenever you register an equality function for a type,
// registering a matching hash function keeps the two operations consistent.
func RegisterHash[T any](fn func(v T) uint64) struct{} {
	hashFuncRegistry[typeOf[T]()] = func(v reflect.Value) uint64 {
		return fn(v.Interface().(T))
	}
	return struct{}{}
}

// Equal reports whether x considers itself equal to y.
//
// The check is directional: when x has an equality method, that method answers.
// A nil x is never equal to a non-nil y, while a non-nil x with an `Equal(any) bool`
// style method gets to answer even for a nil or foreign typed y.
func Equal(x, y any) bool {
	if x == nil || y == nil {
		if x != nil {
			if eq, ok := tryEqualAnyMethod(reflect.ValueOf(x), y); ok {
				return eq
			}
		}
		return x == nil && y == nil
	}
	var (
		v1 = reflect.ValueOf(x)
		v2 = reflect.ValueOf(y)
	)
	if v1.Type() != v2.Type() {
		// values of two distinct types can only relate through an any accepting equality method
		if eq, ok := tryEqualAnyMethod(v1, y); ok {
			return eq
		}
		return false
	}
	if fn, ok := lookupEqualFunc(v1.Type()); ok {
		return fn(v1, v2)
	}
	if eq, ok := tryEqualMethod(v1, v2); ok {
		return eq
	}
	if eq, ok := tryCmpMethod(v1, v2); ok {
		return eq
	}
	if v1.Kind() == reflect.Pointer && !v1.IsNil() && !v2.IsNil() {
		if eq, ok := tryEqualMethod(v1.Elem(), v2.Elem()); ok {
			return eq
		}
		if eq, ok := tryCmpMethod(v1.Elem(), v2.Elem()); ok {
			return eq
		}
	}
	return reflect.DeepEqual(x, y)
}

func lookupEqualFunc(typ reflect.Type) (func(v1, v2 reflect.Value) bool, bool) {
	if fn, ok := equalFuncRegistry[typ]; ok {
		return fn, true
	}
	if typ.Kind() == reflect.Pointer {
		if fn, ok := equalFuncRegistry[typ.Elem()]; ok {
			return func(v1, v2 reflect.Value) bool {
				if v1.IsNil() || v2.IsNil() {
					return v1.IsNil() && v2.IsNil()
				}
				return fn(v1.Elem(), v2.Elem())
			}, true
		}
	}
	return nil, false
}

var equalMethodNames = []string{"Equal", "IsEqual"}

func tryEqualMethod(v1, v2 reflect.Value) (isEqual, ok bool) {
	for _, name := range equalMethodNames {
		for _, recv := range receiverForms(v1) {
			method := recv.MethodByName(name)
			if !method.IsValid() {
				continue
			}
			mt := method.Type()
			if mt.NumIn() != 1 || mt.NumOut() != 1 || mt.Out(0) != boolType {
				continue
			}
			switch mt.In(0) {
			case v2.Type(), anyType:
				return method.Call([]reflect.Value{v2})[0].Bool(), true
			}
		}
	}
	return false, false
}

// tryEqualAnyMethod probes the value for an equality method with an `any` parameter
// and calls it with oth, which may be nil or a value of an unrelated type.
// An `Equal(any) bool` implementation answers the nil and foreign type probes itself.
func tryEqualAnyMethod(v reflect.Value, oth any) (isEqual, ok bool) {
	for _, name := range equalMethodNames {
		for _, recv := range receiverForms(v) {
			method := recv.MethodByName(name)
			if !method.IsValid() {
				continue
			}
			mt := method.Type()
			if mt.NumIn() != 1 || mt.In(0) != anyType || mt.NumOut() != 1 || mt.Out(0) != boolType {
				continue
			}
			arg := reflect.Zero(anyType)
			if oth != nil {
				arg = reflect.ValueOf(oth)
			}
			return method.Call([]reflect.Value{arg})[0].Bool(), true
		}
	}
	return false, false
}

func tryCmpMethod(v1, v2 reflect.Value) (isEqual, ok bool) {
	for _, recv := range receiverForms(v1) {
		method := recv.MethodByName("Cmp")
		if !method.IsValid() {
			continue
		}
		mt := method.Type()
		if mt.NumIn() != 1 || mt.In(0) != v2.Type() || mt.NumOut() != 1 || mt.Out(0) != intType {
			continue
		}
		return method.Call([]reflect.Value{v2})[0].Int() == 0, true
	}
	return false, false
}

// receiverForms yields the value itself plus an addressable copy,
// so methods declared on a pointer receiver are found as well.
func receiverForms(v reflect.Value) []reflect.Value {
	ptr := reflect.New(v.Type())
	ptr.Elem().Set(v)
	return []reflect.Value{v, ptr}
}

func typeOf[T any]() reflect.Type {
	return reflect.TypeOf((*T)(nil)).Elem()
}

var (
	boolType = reflect.TypeOf(true)
	intType  = reflect.TypeOf(int(0))
	anyType  = reflect.TypeOf((*any)(nil)).Elem()
)
