package internal

import (
	"reflect"
	"strconv"
)

// ContextValue returns a typed value from the request context, or the
// zero value when missing or of a different type.
func ContextValue[T any](c Context, key any) T {
	if v, ok := c.Get(key).(T); ok {
		return v
	}
	var zero T
	return zero
}

// Param returns a typed URL parameter, zero value on parse failure.
func Param[T ~string | ~int | ~int64 | ~float64 | ~bool](c Context, name string) T {
	v, _ := convert[T](c.Param(name))
	return v
}

// Query returns a typed query parameter, zero value on parse failure.
func Query[T ~string | ~int | ~int64 | ~float64 | ~bool](c Context, name string) T {
	v, _ := convert[T](c.Query(name))
	return v
}

// QueryOr returns a typed query parameter, or def when the parameter is
// empty or cannot be parsed.
func QueryOr[T ~string | ~int | ~int64 | ~float64 | ~bool](c Context, name string, def T) T {
	raw := c.Query(name)
	if raw == "" {
		return def
	}
	v, ok := convert[T](raw)
	if !ok {
		return def
	}
	return v
}

// convert parses raw into T by its underlying kind, so defined types
// like `type UserID string` work the same as the predeclared ones.
func convert[T ~string | ~int | ~int64 | ~float64 | ~bool](raw string) (T, bool) {
	var zero T
	rv := reflect.ValueOf(&zero).Elem()
	switch rv.Kind() {
	case reflect.String:
		rv.SetString(raw)
		return zero, true
	case reflect.Int, reflect.Int64:
		v, err := strconv.ParseInt(raw, 10, rv.Type().Bits())
		if err != nil {
			return zero, false
		}
		rv.SetInt(v)
		return zero, true
	case reflect.Float64:
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return zero, false
		}
		rv.SetFloat(v)
		return zero, true
	case reflect.Bool:
		v, err := strconv.ParseBool(raw)
		if err != nil {
			return zero, false
		}
		rv.SetBool(v)
		return zero, true
	}
	return zero, false
}
