package schema

import (
	"reflect"
	"strings"
	"unicode"

	"github.com/wippyai/plainwire/errors"
)

// TagName is the struct tag consulted for field names: `wire:"qty_1"`.
// A tag of "-" excludes the field.
const TagName = "wire"

// FromStruct derives a schema from the exported fields of a Go struct type, in
// declaration order. The schema is named after the type in snake_case. A
// field's wire name is its `wire` tag, or the snake_case form of its Go name.
func FromStruct(t reflect.Type) (*Schema, error) {
	if t == nil {
		return nil, errors.NilPointer(errors.PhaseCompile, nil, "reflect.Type")
	}
	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	if t.Kind() != reflect.Struct {
		return nil, errors.TypeMismatch(errors.PhaseCompile, nil, t.String(), "record")
	}

	name := ToSnakeCase(t.Name())
	fields := make([]Field, 0, t.NumField())
	for i := 0; i < t.NumField(); i++ {
		sf := t.Field(i)
		if !sf.IsExported() {
			continue
		}
		wireName, skip := FieldName(sf)
		if skip {
			continue
		}
		kind, ok := KindOf(sf.Type.Kind())
		if !ok {
			return nil, errors.New(errors.PhaseCompile, errors.KindUnsupported).
				Path(name, wireName).
				GoType(sf.Type.String()).
				Detail("no wire kind for Go kind %s", sf.Type.Kind()).
				Build()
		}
		fields = append(fields, Field{Name: wireName, Kind: kind})
	}
	return New(name, fields...)
}

// FieldName returns the wire name of a struct field and whether the field is
// excluded by a "-" tag.
func FieldName(sf reflect.StructField) (string, bool) {
	if tag := sf.Tag.Get(TagName); tag != "" {
		if tag == "-" {
			return "", true
		}
		return tag, false
	}
	return ToSnakeCase(sf.Name), false
}

// ToSnakeCase converts a Go identifier to snake_case: "QtyOne" -> "qty_one",
// "ID" -> "id", "UserID2" -> "user_id2".
func ToSnakeCase(s string) string {
	var b strings.Builder
	runes := []rune(s)
	for i, r := range runes {
		if unicode.IsUpper(r) {
			if i > 0 {
				prev := runes[i-1]
				nextLower := i+1 < len(runes) && unicode.IsLower(runes[i+1])
				if !unicode.IsUpper(prev) && prev != '_' || unicode.IsUpper(prev) && nextLower {
					b.WriteByte('_')
				}
			}
			b.WriteRune(unicode.ToLower(r))
		} else {
			b.WriteRune(r)
		}
	}
	return b.String()
}
