package codegen

import (
	"fmt"
	"reflect"
	"sort"
	"strings"

	"github.com/hashicorp/hcl/v2"
	"github.com/mosaicgen/mosaic/internal/config"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/convert"
	"github.com/zclconf/go-cty/cty/gocty"
)

// ValidateConfig checks a node's raw config block against the generator's
// declared schema and returns the validated, type-converted values. All
// offending fields are collected before failing so the user sees the full
// picture in one pass.
func ValidateConfig(nodeID string, exprs map[string]hcl.Expression, fields map[string]*config.ConfigField) (map[string]cty.Value, error) {
	var fieldErrs []FieldError
	values := make(map[string]cty.Value, len(fields))

	for _, name := range sortedKeys(exprs) {
		if _, declared := fields[name]; !declared {
			fieldErrs = append(fieldErrs, FieldError{Name: name, Reason: "not declared in generator schema"})
		}
	}

	for _, name := range sortedKeys(fields) {
		field := fields[name]
		expr, provided := exprs[name]
		if !provided {
			if field.Default != nil {
				values[name] = *field.Default
				continue
			}
			if !field.Optional {
				fieldErrs = append(fieldErrs, FieldError{Name: name, Reason: "required field is missing"})
			}
			continue
		}

		// Config values are static; node-to-node data flows only through
		// wire mappings, so no evaluation context is offered here.
		val, diags := expr.Value(nil)
		if diags.HasErrors() {
			fieldErrs = append(fieldErrs, FieldError{Name: name, Reason: diags.Error()})
			continue
		}

		if field.Type != cty.DynamicPseudoType {
			converted, err := convert.Convert(val, field.Type)
			if err != nil {
				fieldErrs = append(fieldErrs, FieldError{
					Name:   name,
					Reason: fmt.Sprintf("cannot convert %s to %s", val.Type().FriendlyName(), field.Type.FriendlyName()),
				})
				continue
			}
			val = converted
		}
		values[name] = val
	}

	if len(fieldErrs) > 0 {
		return nil, &SchemaValidationError{NodeID: nodeID, Fields: fieldErrs}
	}
	return values, nil
}

// DecodeConfig populates a generator's Go config struct from validated
// values. Fields are matched by their `mosaic` struct tag.
func DecodeConfig(values map[string]cty.Value, target any) error {
	structVal := reflect.ValueOf(target)
	if structVal.Kind() != reflect.Ptr || structVal.IsNil() {
		return fmt.Errorf("config target must be a non-nil pointer, got %T", target)
	}
	structVal = structVal.Elem()
	structType := structVal.Type()

	for i := 0; i < structType.NumField(); i++ {
		field := structType.Field(i)
		fieldVal := structVal.Field(i)
		if !fieldVal.CanSet() {
			continue
		}

		tag := field.Tag.Get("mosaic")
		name := strings.Split(tag, ",")[0]
		if name == "" || name == "-" {
			continue
		}

		val, ok := values[name]
		if !ok || val.IsNull() {
			continue
		}
		if err := gocty.FromCtyValue(val, fieldVal.Addr().Interface()); err != nil {
			return fmt.Errorf("failed to decode config field '%s': %w", name, err)
		}
	}
	return nil
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
