package codegen

import (
	"fmt"
	"strings"
	"text/template"
)

// RenderTemplate renders a named text template with the given parameters.
// Generators keep their external contract of opaque text blobs but build
// those blobs from structured templates, so each template is testable on
// its own. Missing parameters are an error rather than silent empty output.
func RenderTemplate(id, text string, params map[string]any) (string, error) {
	tmpl, err := template.New(id).Option("missingkey=error").Parse(text)
	if err != nil {
		return "", fmt.Errorf("template '%s': %w", id, err)
	}
	var sb strings.Builder
	if err := tmpl.Execute(&sb, params); err != nil {
		return "", fmt.Errorf("template '%s': %w", id, err)
	}
	return sb.String(), nil
}
