package log

import (
	"context"
	"maps"
)

type fieldsKey struct{}

// ContextWithFields returns a context whose log records carry fields in
// addition to any already attached upstream. Later keys win.
func ContextWithFields(ctx context.Context, fields map[string]any) context.Context {
	merged := maps.Clone(FieldsFromContext(ctx))
	if merged == nil {
		merged = make(map[string]any, len(fields))
	}
	maps.Copy(merged, fields)
	return context.WithValue(ctx, fieldsKey{}, merged)
}

// FieldsFromContext returns the fields attached with ContextWithFields.
func FieldsFromContext(ctx context.Context) map[string]any {
	if ctx == nil {
		return nil
	}
	fields, _ := ctx.Value(fieldsKey{}).(map[string]any)
	return fields
}
