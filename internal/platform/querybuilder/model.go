package querybuilder

import (
	"fmt"
	"reflect"
	"strings"
)

// AppendModels adds one VALUES row per struct, reading columns from db tags.
// The first model fixes the column list; untagged and db:"-" fields are skipped.
func AppendModels[T any](b *InsertBuilder, models []T) error {
	if len(models) == 0 {
		return fmt.Errorf("insert models are required")
	}

	for i, model := range models {
		cols, vals, err := taggedFields(reflect.ValueOf(model))
		if err != nil {
			return fmt.Errorf("model %d: %w", i, err)
		}
		if i == 0 && len(b.columns) == 0 {
			b.Columns(cols...)
		}
		b.Values(vals...)
	}
	return nil
}

func taggedFields(v reflect.Value) ([]string, []any, error) {
	for v.Kind() == reflect.Pointer {
		if v.IsNil() {
			return nil, nil, fmt.Errorf("model cannot be nil")
		}
		v = v.Elem()
	}
	if v.Kind() != reflect.Struct {
		return nil, nil, fmt.Errorf("model must be a struct, got %s", v.Kind())
	}

	var (
		cols []string
		vals []any
	)
	for _, field := range reflect.VisibleFields(v.Type()) {
		if !field.IsExported() || field.Anonymous {
			continue
		}
		name, _, _ := strings.Cut(field.Tag.Get("db"), ",")
		name = strings.TrimSpace(name)
		if name == "" || name == "-" {
			continue
		}
		cols = append(cols, name)
		vals = append(vals, v.FieldByIndex(field.Index).Interface())
	}

	if len(cols) == 0 {
		return nil, nil, fmt.Errorf("model has no db columns")
	}
	return cols, vals, nil
}
