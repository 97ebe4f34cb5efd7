package customize

import "strings"

// UnknownClassError is reported for customizations of a class the model does not have
type UnknownClassError struct {
	Class  string
	Source string
}

func (e *UnknownClassError) Error() string {
	return "customizations for unknown class " + e.Class + " in " + e.Source + " are ignored"
}

// MethodSpecError is reported for a malformed method entry, naming every problem found
type MethodSpecError struct {
	Class    string
	Method   string
	Source   string
	Problems []string
}

func (e *MethodSpecError) Error() string {
	return e.Class + "." + e.Method + " from " + e.Source + " is omitted from JS documentation: " +
		strings.Join(e.Problems, "; ")
}

// ClassSpecError is reported for a class entry that is not a JSON object of methods
type ClassSpecError struct {
	Class  string
	Source string
	Err    error
}

func (e *ClassSpecError) Error() string {
	return "customizations for class " + e.Class + " in " + e.Source + " are ignored: " + e.Err.Error()
}

func (e *ClassSpecError) Unwrap() error {
	return e.Err
}
