package manifest

import (
	"fmt"
	"strings"

	"github.com/mosaicgen/mosaic/internal/codegen"
)

// RenderEnvFile renders the aggregated declarations as a .env.example file,
// preserving first-declaration order. Secret variables never get a committed
// value, even when a default was declared.
func RenderEnvFile(vars []codegen.EnvVar) string {
	var b strings.Builder
	b.WriteString("# Environment variables. Copy to .env and fill in values.\n")

	for _, v := range vars {
		b.WriteString("\n")
		if v.Description != "" {
			fmt.Fprintf(&b, "# %s\n", v.Description)
		}
		var flags []string
		if v.Required {
			flags = append(flags, "required")
		}
		if v.Secret {
			flags = append(flags, "secret")
		}
		if len(flags) > 0 {
			fmt.Fprintf(&b, "# (%s)\n", strings.Join(flags, ", "))
		}

		value := ""
		if v.Default != "" && !v.Secret {
			value = v.Default
		}
		fmt.Fprintf(&b, "%s=%s\n", v.Name, value)
	}
	return b.String()
}
