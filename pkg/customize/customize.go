// Package customize overlays hand-written method documentation onto an extracted model.
//
// The customization file is a JSON object keyed by class name, then method name:
//
//	{"Gpio": {"read": {"description": "...", "params": {}, "return": {"type": "Number", "description": "..."}}}}
package customize

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"doxy2js/pkg/spec"
)

// Customizations holds the raw class entries of a customization file in file order
type Customizations struct {
	Source  string // Base name of the file, used in diagnostics
	classes spec.Map[json.RawMessage]
}

// Load reads and parses a customization file
func Load(filename string) (*Customizations, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read customization file: %w", err)
	}
	c, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("invalid customization file %s: %w", filename, err)
	}
	c.Source = filepath.Base(filename)
	return c, nil
}

// Parse decodes customization JSON. Only the top level must be an object; class entries
// are checked by Apply.
func Parse(data []byte) (*Customizations, error) {
	c := &Customizations{Source: "customizations"}
	if err := json.Unmarshal(data, &c.classes); err != nil {
		return nil, err
	}
	return c, nil
}

// Apply merges every well-formed method entry into the matching class of model, adding or
// replacing methods by name. Malformed entries and entries for unknown classes are skipped;
// the returned errors describe every skipped entry.
func Apply(model *spec.Model, c *Customizations) []error {
	if c == nil {
		return nil
	}

	var errs []error
	c.classes.Each(func(className string, raw json.RawMessage) {
		methodNames, methods, err := spec.DecodeObject(raw)
		if err != nil {
			err := &ClassSpecError{Class: className, Source: c.Source, Err: err}
			log.Errorf("%s", err)
			errs = append(errs, err)
			return
		}

		class := model.Class(className)
		if class == nil {
			err := &UnknownClassError{Class: className, Source: c.Source}
			log.Warningf("%s", err)
			errs = append(errs, err)
			return
		}

		for _, methodName := range methodNames {
			method, problems := decodeMethod(methods[methodName])
			if len(problems) > 0 {
				err := &MethodSpecError{Class: className, Method: methodName, Source: c.Source, Problems: problems}
				log.Errorf("%s", err)
				errs = append(errs, err)
				continue
			}
			log.Debugf("customized %s.%s", className, methodName)
			class.Methods.Set(methodName, method)
		}
	})
	return errs
}

// entry collects the problems of one method entry
type entry struct {
	problems []string
}

func (e *entry) check(ok bool, problem string) {
	if !ok {
		e.problems = append(e.problems, problem)
	}
}

// object decodes raw as a JSON object, or records that what is not one
func (e *entry) object(raw json.RawMessage, what string) ([]string, map[string]json.RawMessage, bool) {
	keys, fields, err := spec.DecodeObject(raw)
	if err != nil {
		e.problems = append(e.problems, what+" is not a JSON object")
		return nil, nil, false
	}
	return keys, fields, true
}

// text decodes the string field key of what, recording a missing or mistyped field
func (e *entry) text(fields map[string]json.RawMessage, key, what string) (string, bool) {
	raw, ok := fields[key]
	if !ok {
		e.problems = append(e.problems, "no "+key+" given for "+what)
		return "", false
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		e.problems = append(e.problems, key+" of "+what+" is not a string")
		return "", false
	}
	return s, true
}

// decodeMethod checks the shape of one method entry, naming every missing field
func decodeMethod(raw json.RawMessage) (spec.Method, []string) {
	method := spec.Method{Params: spec.NewMap[spec.Param]()}
	e := &entry{}

	_, fields, ok := e.object(raw, "method entry")
	if !ok {
		return method, e.problems
	}

	description, ok := fields["description"]
	e.check(ok, "no description given")
	if ok {
		e.check(json.Unmarshal(description, &method.Description) == nil, "description is not a string")
	}

	params, ok := fields["params"]
	e.check(ok, `no params given (specify "params": {} for no params)`)
	if ok {
		names, values, _ := e.object(params, "params")
		for _, name := range names {
			what := "param " + name
			_, p, isObject := e.object(values[name], what)
			if !isObject {
				continue
			}
			t, hasType := e.text(p, "type", what)
			d, hasDescription := e.text(p, "description", what)
			if hasType && hasDescription {
				method.Params.Set(name, spec.Param{Type: t, Description: d})
			}
		}
	}

	ret, ok := fields["return"]
	e.check(ok, `no return given (specify "return": {} for no return value)`)
	if ok {
		if keys, r, isObject := e.object(ret, "return"); isObject && len(keys) > 0 {
			t, hasType := e.text(r, "type", "return value")
			d, hasDescription := e.text(r, "description", "return value")
			if hasType && hasDescription {
				method.Return = spec.ReturnSpec{Type: t, Description: d}
			}
		}
	}

	return method, e.problems
}
