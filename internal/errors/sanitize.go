package errors

import (
	"context"
	"encoding"
	"encoding/json"
	"reflect"
	"strings"
)

// Redacted replaces sensitive argument values.
const Redacted = "[REDACTED]"

var sensitiveKeys = []string{"password", "token", "secret", "apiKey", "authorization"}

// IsSensitiveKey reports whether values stored under k must be redacted.
func IsSensitiveKey(k string) bool {
	for _, s := range sensitiveKeys {
		if strings.EqualFold(k, s) {
			return true
		}
	}

	return false
}

// SanitizeArguments returns a copy of args safe to keep in error context.
//
// Mappings (string-keyed maps, structs and pointers to structs, the latter
// projected through their json field names) are copied with sensitive keys
// redacted; mappings nested one level below receive the same treatment.
// Everything else passes through. context.Context values are dropped.
// The caller's values are never modified.
func SanitizeArguments(args ...any) []any {
	out := make([]any, 0, len(args))

	for _, a := range args {
		if _, ok := a.(context.Context); ok {
			continue
		}

		out = append(out, sanitizeValue(a, true))
	}

	return out
}

func sanitizeValue(v any, descend bool) any {
	m, ok := asMapping(v)
	if !ok {
		return copySlice(v)
	}

	out := make(map[string]any, len(m))

	for k, val := range m {
		switch {
		case IsSensitiveKey(k):
			out[k] = Redacted
		case descend:
			out[k] = sanitizeValue(val, false)
		default:
			out[k] = val
		}
	}

	return out
}

var (
	jsonMarshalerType = reflect.TypeOf((*json.Marshaler)(nil)).Elem()
	textMarshalerType = reflect.TypeOf((*encoding.TextMarshaler)(nil)).Elem()
)

// returns a fresh string-keyed view of v when v is a key-value mapping
func asMapping(v any) (map[string]any, bool) {
	switch tv := v.(type) {
	case nil:
		return nil, false
	case map[string]any:
		out := make(map[string]any, len(tv))
		for k, val := range tv {
			out[k] = val
		}
		return out, true
	case map[string]string:
		out := make(map[string]any, len(tv))
		for k, val := range tv {
			out[k] = val
		}
		return out, true
	}

	rv := reflect.ValueOf(v)

	if rv.Kind() == reflect.Pointer {
		if rv.IsNil() || rv.Elem().Kind() != reflect.Struct {
			return nil, false
		}
		rv = rv.Elem()
	}

	switch rv.Kind() {
	case reflect.Map:
		if rv.Type().Key().Kind() != reflect.String {
			return nil, false
		}

		out := make(map[string]any, rv.Len())
		iter := rv.MapRange()
		for iter.Next() {
			out[iter.Key().String()] = iter.Value().Interface()
		}
		return out, true

	case reflect.Struct:
		// values with their own encoding (time.Time, ids, ...) are scalars here
		if rv.Type().Implements(jsonMarshalerType) || rv.Type().Implements(textMarshalerType) ||
			reflect.PointerTo(rv.Type()).Implements(jsonMarshalerType) ||
			reflect.PointerTo(rv.Type()).Implements(textMarshalerType) {
			return nil, false
		}

		out := make(map[string]any, rv.NumField())
		projectStruct(rv, out)
		return out, true
	}

	return nil, false
}

func projectStruct(rv reflect.Value, out map[string]any) {
	rt := rv.Type()

	for i := 0; i < rt.NumField(); i++ {
		f := rt.Field(i)

		if f.Anonymous && f.Type.Kind() == reflect.Struct {
			projectStruct(rv.Field(i), out)
			continue
		}

		if !f.IsExported() {
			continue
		}

		name := f.Name
		if tag, ok := f.Tag.Lookup("json"); ok {
			tagName, _, _ := strings.Cut(tag, ",")
			if tagName == "-" {
				continue
			}
			if tagName != "" {
				name = tagName
			}
		}

		if fv := rv.Field(i); fv.CanInterface() {
			out[name] = fv.Interface()
		}
	}
}
