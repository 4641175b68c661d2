package merge

import (
	"encoding/json"
	"fmt"
	"reflect"
	"strings"
)

// DefaultMergeables declares the manifest-type paths that multiple nodes may
// legitimately target. Everything else is conflict-checked byte for byte.
func DefaultMergeables() map[string]MergeFunc {
	return map[string]MergeFunc{
		"/package.json": MergeJSON,
		"/.env.example": MergeEnvLines,
	}
}

// MergeJSON deep-merges two JSON objects: object keys union recursively,
// equal leaves collapse, and a genuine scalar disagreement is a hard
// conflict rather than a silent overwrite.
func MergeJSON(path, existing, incoming, existingNode, incomingNode string) (string, error) {
	var base, overlay map[string]any
	if err := json.Unmarshal([]byte(existing), &base); err != nil {
		return "", fmt.Errorf("mergeable target %s: existing content from '%s' is not a JSON object: %w", path, existingNode, err)
	}
	if err := json.Unmarshal([]byte(incoming), &overlay); err != nil {
		return "", fmt.Errorf("mergeable target %s: content from '%s' is not a JSON object: %w", path, incomingNode, err)
	}

	merged, err := mergeJSONObjects(base, overlay, "")
	if err != nil {
		return "", &HardConflictError{
			Path:       path,
			FirstNode:  existingNode,
			SecondNode: incomingNode,
			Detail:     err.Error(),
		}
	}

	// MarshalIndent sorts object keys, which keeps re-runs byte-identical.
	out, err := json.MarshalIndent(merged, "", "  ")
	if err != nil {
		return "", err
	}
	return string(out) + "\n", nil
}

// mergeJSONObjects unions two decoded JSON objects. keyPath tracks the
// location for conflict messages.
func mergeJSONObjects(base, overlay map[string]any, keyPath string) (map[string]any, error) {
	out := make(map[string]any, len(base)+len(overlay))
	for k, v := range base {
		out[k] = v
	}
	for k, v := range overlay {
		at := k
		if keyPath != "" {
			at = keyPath + "." + k
		}
		existing, present := out[k]
		if !present {
			out[k] = v
			continue
		}
		existingObj, existingIsObj := existing.(map[string]any)
		incomingObj, incomingIsObj := v.(map[string]any)
		if existingIsObj && incomingIsObj {
			merged, err := mergeJSONObjects(existingObj, incomingObj, at)
			if err != nil {
				return nil, err
			}
			out[k] = merged
			continue
		}
		if !reflect.DeepEqual(existing, v) {
			return nil, fmt.Errorf("key %q: %v vs %v", at, existing, v)
		}
	}
	return out, nil
}

// MergeEnvLines unions two env-template bodies line by line, preserving the
// existing order and appending lines the first body does not already have.
func MergeEnvLines(path, existing, incoming, existingNode, incomingNode string) (string, error) {
	seen := make(map[string]struct{})
	var out []string
	for _, line := range strings.Split(strings.TrimRight(existing, "\n"), "\n") {
		seen[line] = struct{}{}
		out = append(out, line)
	}
	for _, line := range strings.Split(strings.TrimRight(incoming, "\n"), "\n") {
		if _, dup := seen[line]; dup {
			continue
		}
		seen[line] = struct{}{}
		out = append(out, line)
	}
	return strings.Join(out, "\n") + "\n", nil
}
