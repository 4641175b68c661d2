package merge

import "fmt"

// HardConflictError reports two nodes that emitted different content for the
// same non-mergeable path. Always fatal: a silent overwrite would hide a
// genuine disagreement between generators.
type HardConflictError struct {
	Path       string
	FirstNode  string
	SecondNode string
	Detail     string
}

func (e *HardConflictError) Error() string {
	msg := fmt.Sprintf("conflicting content for '%s': nodes '%s' and '%s' disagree", e.Path, e.FirstNode, e.SecondNode)
	if e.Detail != "" {
		msg += ": " + e.Detail
	}
	return msg
}
