package extract

import (
	"fmt"
	"strings"

	"doxy2js/pkg/ast"
)

// UnsupportedNodeKindError is returned when description markup contains an element the
// flattener cannot render
type UnsupportedNodeKindError struct {
	Kind string
	Pos  ast.Position
}

func (e *UnsupportedNodeKindError) Error() string {
	if e.Pos.Line > 0 {
		return fmt.Sprintf("unsupported node kind %q (line %d)", e.Kind, e.Pos.Line)
	}
	return fmt.Sprintf("unsupported node kind %q", e.Kind)
}

// MethodError records a method that could not be extracted
type MethodError struct {
	Owner  string
	Method string
	Err    error
}

// QualifiedName returns Owner.Method, or Method at module level
func (e *MethodError) QualifiedName() string {
	return qualify(e.Owner, e.Method)
}

func (e *MethodError) Error() string {
	return e.QualifiedName() + " is omitted from JS documentation: " + e.Err.Error()
}

func (e *MethodError) Unwrap() error {
	return e.Err
}

// UnknownParamWarning reports prose documentation for a parameter the signature lacks
type UnknownParamWarning struct {
	Owner       string
	Method      string
	Param       string
	Suggestions []string
}

func (w *UnknownParamWarning) String() string {
	msg := qualify(w.Owner, w.Method) + " has documentation for an unknown parameter: " + w.Param + "."
	if len(w.Suggestions) > 0 {
		msg += " Did you mean " + strings.Join(w.Suggestions, ", or ") + "?"
	}
	return msg
}

// Diagnostics collects the non-fatal findings of an extraction
type Diagnostics struct {
	Warnings []*UnknownParamWarning
	Failures []*MethodError
}

// Merge appends other's findings
func (d *Diagnostics) Merge(other Diagnostics) {
	d.Warnings = append(d.Warnings, other.Warnings...)
	d.Failures = append(d.Failures, other.Failures...)
}

func qualify(owner, name string) string {
	if owner == "" {
		return name
	}
	return owner + "." + name
}
