package manifest

import "fmt"

// ScriptConflictError is returned when two nodes declare the same script name
// with different commands. Scripts are run entry points, so disagreement is
// fatal rather than a warning.
type ScriptConflictError struct {
	Name          string
	FirstNode     string
	SecondNode    string
	FirstCommand  string
	SecondCommand string
}

func (e *ScriptConflictError) Error() string {
	return fmt.Sprintf("conflicting script %q: node '%s' declares %q but node '%s' declares %q",
		e.Name, e.FirstNode, e.FirstCommand, e.SecondNode, e.SecondCommand)
}

// EnvVarConflictWarning records a non-fatal redeclaration of an environment
// variable with a different description. The first declaration wins.
type EnvVarConflictWarning struct {
	Name             string
	FirstNode        string
	Node             string
	FirstDescription string
	Description      string
}

func (w EnvVarConflictWarning) String() string {
	return fmt.Sprintf("env var %q redeclared by node '%s' (first declared by node '%s')",
		w.Name, w.Node, w.FirstNode)
}
