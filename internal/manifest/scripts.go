package manifest

import (
	"encoding/json"
	"fmt"

	"github.com/mosaicgen/mosaic/internal/codegen"
)

// MergeScriptsIntoPackageJSON folds declared scripts into the project's root
// package manifest. An empty existing content creates a minimal manifest; an
// existing manifest keeps all its other keys untouched. A script name already
// present with a different command is a conflict against the node that owns
// the existing manifest.
func MergeScriptsIntoPackageJSON(existing, existingNode string, scripts []codegen.Script) (string, error) {
	doc := map[string]any{}
	if existing != "" {
		if err := json.Unmarshal([]byte(existing), &doc); err != nil {
			return "", fmt.Errorf("parsing existing /package.json: %w", err)
		}
	}

	section := map[string]any{}
	if raw, ok := doc["scripts"]; ok {
		obj, isObj := raw.(map[string]any)
		if !isObj {
			return "", fmt.Errorf("existing /package.json has a non-object \"scripts\" key")
		}
		section = obj
	}

	for _, s := range scripts {
		if raw, ok := section[s.Name]; ok {
			current, _ := raw.(string)
			if current != s.Command {
				return "", &ScriptConflictError{
					Name:          s.Name,
					FirstNode:     existingNode,
					SecondNode:    aggregatorID,
					FirstCommand:  current,
					SecondCommand: s.Command,
				}
			}
			continue
		}
		section[s.Name] = s.Command
	}
	doc["scripts"] = section

	out, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return "", fmt.Errorf("rendering /package.json: %w", err)
	}
	return string(out) + "\n", nil
}
