package registry

import (
	"context"
	"fmt"
	"reflect"
	"strings"

	"github.com/mosaicgen/mosaic/internal/ctxlog"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/gocty"
)

// ValidateRegistry performs a strict parity check between loaded manifests
// and registered Go handlers: every definition must have a handler, and the
// handler's config struct must declare exactly the fields the manifest does,
// with compatible types.
func (r *Registry) ValidateRegistry(ctx context.Context) error {
	var errs []string
	logger := ctxlog.FromContext(ctx)

	for id, def := range r.Definitions {
		handler, ok := r.Handlers[def.Handler]
		if !ok {
			errs = append(errs, fmt.Sprintf("generator '%s': handler '%s' is not registered", id, def.Handler))
			continue
		}

		if handler.ConfigType == nil {
			if len(def.Config) > 0 {
				errs = append(errs, fmt.Sprintf("generator '%s': manifest declares config fields, but Go handler has no config struct", id))
			}
			continue
		}

		goFields := make(map[string]reflect.StructField)
		for i := 0; i < handler.ConfigType.NumField(); i++ {
			field := handler.ConfigType.Field(i)
			if !field.IsExported() {
				continue
			}
			tagName := strings.Split(field.Tag.Get("mosaic"), ",")[0]
			if tagName != "" && tagName != "-" {
				goFields[tagName] = field
			}
		}

		for name := range goFields {
			if _, ok := def.Config[name]; !ok {
				errs = append(errs, fmt.Sprintf("generator '%s': Go struct has field for config '%s' which is not declared in manifest", id, name))
			}
		}
		for name := range def.Config {
			if _, ok := goFields[name]; !ok {
				errs = append(errs, fmt.Sprintf("generator '%s': manifest declares config '%s' which is not found in Go struct", id, name))
			}
		}

		for name, fieldDef := range def.Config {
			goField, ok := goFields[name]
			if !ok {
				continue // presence mismatch already reported
			}
			if fieldDef.Type.Equals(cty.DynamicPseudoType) {
				logger.Warn("Manifest config field uses 'type = any', which disables static type checking.", "generator", id, "config", name)
				continue
			}
			goFieldType, err := gocty.ImpliedType(reflect.Zero(goField.Type).Interface())
			if err != nil {
				errs = append(errs, fmt.Sprintf("generator '%s', config '%s': could not imply cty type from Go field type %s: %v", id, name, goField.Type, err))
				continue
			}
			if !fieldDef.Type.Equals(goFieldType) {
				errs = append(errs, fmt.Sprintf("generator '%s', config '%s': type mismatch, manifest requires '%s' but Go struct field '%s' provides '%s'",
					id, name, fieldDef.Type.FriendlyName(), goField.Name, goFieldType.FriendlyName()))
			}
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("registry validation failed:\n- %s", strings.Join(errs, "\n- "))
	}
	return nil
}
