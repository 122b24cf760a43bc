package querybuilder

import (
	"fmt"
	"reflect"
	"strings"
)

// taggedColumns lists the exported fields of a struct that carry a db tag,
// in declaration order, with their values.
func taggedColumns(row any) ([]string, []any, error) {
	v := reflect.ValueOf(row)
	for v.Kind() == reflect.Pointer {
		if v.IsNil() {
			return nil, nil, fmt.Errorf("row cannot be nil")
		}
		v = v.Elem()
	}
	if v.Kind() != reflect.Struct {
		return nil, nil, fmt.Errorf("row must be a struct, got %s", v.Kind())
	}

	var cols []string
	var vals []any
	for _, field := range reflect.VisibleFields(v.Type()) {
		if !field.IsExported() || len(field.Index) > 1 {
			continue
		}
		name, _, _ := strings.Cut(field.Tag.Get("db"), ",")
		name = strings.TrimSpace(name)
		if name == "" || name == "-" {
			continue
		}
		cols = append(cols, name)
		vals = append(vals, v.Field(field.Index[0]).Interface())
	}
	if len(cols) == 0 {
		return nil, nil, fmt.Errorf("row has no db columns")
	}
	return cols, vals, nil
}
