// Package validate checks that every documented type is one a JavaScript reader can resolve
// and, in strict mode, drops the members that use anything else.
package validate

import (
	"doxy2js/pkg/spec"
	"doxy2js/pkg/typemap"
)

// DefaultAllowTypes are opaque types understood by the bindings without being documented
var DefaultAllowTypes = []string{"Buffer", "Function", "mraa_result_t"}

// Validator decides type validity against a finished model
type Validator struct {
	resolver   *typemap.Resolver
	primitives map[string]bool
	allowed    map[string]bool
	strict     bool
}

// Option configures a Validator
type Option func(*Validator)

// WithStrict removes members with invalid types instead of only reporting them
func WithStrict(strict bool) Option {
	return func(v *Validator) {
		v.strict = strict
	}
}

// WithAllowTypes replaces the allow-list of opaque types
func WithAllowTypes(types []string) Option {
	return func(v *Validator) {
		v.allowed = toSet(types)
	}
}

// New creates a validator. The primitive type names are the targets of the resolver's rules.
func New(resolver *typemap.Resolver, opts ...Option) *Validator {
	v := &Validator{
		resolver:   resolver,
		primitives: resolver.Mapper().Targets(),
		allowed:    toSet(DefaultAllowTypes),
	}
	for _, opt := range opts {
		opt(v)
	}
	return v
}

// IsValidType reports whether t can be documented for a member of owner ("" for module level)
func (v *Validator) IsValidType(model *spec.Model, t, owner string) bool {
	if v.primitives[t] || v.allowed[t] {
		return true
	}
	if model.Classes.Has(t) || model.EnumsByGroup.Has(t) {
		return true
	}
	if owner != "" {
		if class := model.Class(owner); class != nil && class.EnumsByGroup.Has(t) {
			return true
		}
	}
	return v.resolver.IsPointerType(t, owner)
}

// Validate checks every method parameter, method return and class variable of model.
// All invalid types are returned; in strict mode the offending methods and variables are
// also removed from model. Every member is checked even after a sibling fails.
func (v *Validator) Validate(model *spec.Model) []*InvalidTypeError {
	var errs []*InvalidTypeError

	methods := model.Methods.Filter(func(name string, m spec.Method) bool {
		found := v.checkMethod(model, m, "", name)
		errs = append(errs, found...)
		return len(found) == 0
	})
	if v.strict {
		model.Methods = methods
	}

	model.Classes.Each(func(className string, class *spec.Class) {
		methods := class.Methods.Filter(func(name string, m spec.Method) bool {
			found := v.checkMethod(model, m, className, name)
			errs = append(errs, found...)
			return len(found) == 0
		})
		variables := class.Variables.Filter(func(name string, variable spec.Variable) bool {
			if v.IsValidType(model, variable.Type, className) {
				return true
			}
			err := &InvalidTypeError{Owner: className, Member: name, Role: RoleVariable, Type: variable.Type}
			if v.strict {
				log.Errorf("Error: %s. Omitted from JS documentation.", err)
			} else {
				log.Errorf("Error: %s.", err)
			}
			errs = append(errs, err)
			return false
		})
		if v.strict {
			class.Methods = methods
			class.Variables = variables
		}
	})

	return errs
}

func (v *Validator) checkMethod(model *spec.Model, m spec.Method, owner, name string) []*InvalidTypeError {
	var errs []*InvalidTypeError
	m.Params.Each(func(param string, p spec.Param) {
		if !v.IsValidType(model, p.Type, owner) {
			errs = append(errs, &InvalidTypeError{Owner: owner, Member: name, Role: RoleParam, Param: param, Type: p.Type})
		}
	})
	if !m.Return.IsVoid() && !v.IsValidType(model, m.Return.Type, owner) {
		errs = append(errs, &InvalidTypeError{Owner: owner, Member: name, Role: RoleReturn, Type: m.Return.Type})
	}

	if len(errs) > 0 {
		if v.strict {
			log.Errorf("%s is omitted from JS documentation.", errs[0].QualifiedName())
		} else {
			log.Errorf("%s has invalid type(s).", errs[0].QualifiedName())
		}
		for _, err := range errs {
			log.Errorf("  Error: %s", err.Reason())
		}
	}
	return errs
}

func toSet(list []string) map[string]bool {
	set := make(map[string]bool, len(list))
	for _, s := range list {
		set[s] = true
	}
	return set
}
