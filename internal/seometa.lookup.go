package internal

import (
	"context"
	"fmt"
	"reflect"
	"strings"
)

var (
	contextType = reflect.TypeOf((*context.Context)(nil)).Elem()
	errorType   = reflect.TypeOf((*error)(nil)).Elem()
)

// LookupAttribute finds a named attribute on target.
//
// Maps keyed by string are looked up by exact key. Structs (or pointers to
// structs) are searched for a method, then an exported field, first under the
// exact name and then under its CamelCase form ("page_title" -> "PageTitle").
// Methods are returned as bound method values.
func LookupAttribute(target any, name string) (any, bool) {
	if target == nil || name == StringEmpty {
		return nil, false
	}

	rv := reflect.ValueOf(target)
	if rv.Kind() == reflect.Map {
		if rv.Type().Key().Kind() != reflect.String {
			return nil, false
		}
		v := rv.MapIndex(reflect.ValueOf(name).Convert(rv.Type().Key()))
		if !v.IsValid() {
			return nil, false
		}
		return v.Interface(), true
	}

	for _, candidate := range candidateNames(name) {
		if m := rv.MethodByName(candidate); m.IsValid() {
			return m.Interface(), true
		}
	}

	sv := rv
	for sv.Kind() == reflect.Pointer || sv.Kind() == reflect.Interface {
		if sv.IsNil() {
			return nil, false
		}
		sv = sv.Elem()
	}
	if sv.Kind() != reflect.Struct {
		return nil, false
	}

	for _, candidate := range candidateNames(name) {
		field, ok := sv.Type().FieldByName(candidate)
		if !ok || !field.IsExported() {
			continue
		}
		return sv.FieldByIndex(field.Index).Interface(), true
	}
	return nil, false
}

// candidateNames returns the exact name followed by its CamelCase form when different.
func candidateNames(name string) []string {
	camel := CamelCase(name)
	if camel == name {
		return []string{name}
	}
	return []string{name, camel}
}

// CamelCase converts a snake_case identifier to an exported Go identifier.
func CamelCase(name string) string {
	parts := strings.Split(name, NameSeparator)
	var b strings.Builder
	for _, p := range parts {
		if p == StringEmpty {
			continue
		}
		b.WriteString(strings.ToUpper(p[:1]))
		b.WriteString(p[1:])
	}
	return b.String()
}

// IsFunc reports whether v is a non-nil function value.
func IsFunc(v any) bool {
	if v == nil {
		return false
	}
	rv := reflect.ValueOf(v)
	return rv.Kind() == reflect.Func && !rv.IsNil()
}

// CallNiladic invokes a function that takes no arguments or only a
// context.Context, and returns one value optionally followed by an error.
// Bound method values found by LookupAttribute fit this shape.
func CallNiladic(ctx context.Context, fn any) (any, error) {
	rv := reflect.ValueOf(fn)
	if rv.Kind() != reflect.Func || rv.IsNil() {
		return nil, fmt.Errorf(ErrFmtNameMessage, ErrMsgNotInvokable, rv.Kind())
	}
	ft := rv.Type()

	var args []reflect.Value
	switch {
	case ft.NumIn() == 0:
	case ft.NumIn() == 1 && ft.In(0) == contextType:
		if ctx == nil {
			ctx = context.Background()
		}
		args = []reflect.Value{reflect.ValueOf(ctx)}
	default:
		return nil, fmt.Errorf(ErrFmtNameMessage, ErrMsgUnsupportedFunc, ft)
	}

	switch {
	case ft.NumOut() == 1 && ft.Out(0) != errorType:
		out := rv.Call(args)
		return valueOrNil(out[0]), nil
	case ft.NumOut() == 2 && ft.Out(1) == errorType:
		out := rv.Call(args)
		if errv := out[1]; !errv.IsNil() {
			return nil, errv.Interface().(error)
		}
		return valueOrNil(out[0]), nil
	default:
		return nil, fmt.Errorf(ErrFmtNameMessage, ErrMsgUnsupportedFunc, ft)
	}
}

// valueOrNil unwraps a reflect.Value, mapping nil pointers/interfaces/slices to nil.
func valueOrNil(v reflect.Value) any {
	switch v.Kind() {
	case reflect.Pointer, reflect.Interface, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan:
		if v.IsNil() {
			return nil
		}
	}
	return v.Interface()
}
