package generator

import (
	"doxy2js/pkg/spec"
)

// variadicType is the parameter type of a bare "..." parameter
const variadicType = "..."

// constructor returns the first method named after its class
func constructor(className string, class *spec.Class) (spec.Method, bool) {
	return class.Methods.Get(className)
}

// classMethods returns the non-constructor methods of a class
func classMethods(className string, class *spec.Class) spec.Map[spec.Method] {
	return class.Methods.Filter(func(name string, _ spec.Method) bool {
		return spec.DisplayName(name) != className
	})
}

// distinct returns methods without their overloads, keyed by display name
func distinct(methods spec.Map[spec.Method]) spec.Map[spec.Method] {
	result := spec.NewMap[spec.Method]()
	methods.Each(func(name string, m spec.Method) {
		display := spec.DisplayName(name)
		if !result.Has(display) {
			result.Set(display, m)
		}
	})
	return result
}
