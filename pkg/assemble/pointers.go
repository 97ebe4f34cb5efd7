package assemble

import (
	"doxy2js/pkg/spec"
	"doxy2js/pkg/typemap"
)

// addPointerClasses documents the proxy classes SWIG generates for %array_class and
// %pointer_functions directives
func addPointerClasses(model *spec.Model, typemaps *typemap.Typemaps, resolver *typemap.Resolver) {
	for _, array := range typemaps.Arrays() {
		model.Classes.Set(array.ArrayType, arrayClass(array, resolver.Resolve(array.DataType, "")))
	}
	for _, pointer := range typemaps.Pointers() {
		model.Classes.Set(pointer.PointerType, pointerClass(pointer, resolver.Resolve(pointer.DataType, "")))
	}
}

func arrayClass(array typemap.ArrayTypemap, elemType string) *spec.Class {
	class := spec.NewClass("Array of type " + array.DataType + ".")

	ctor := spec.NewMap[spec.Param]()
	ctor.Set("nelements", spec.Param{Type: typemap.Number, Description: "number of elements in the array"})
	class.Methods.Set(array.ArrayType, spec.Method{Description: "Instantiates the array.", Params: ctor})

	get := spec.NewMap[spec.Param]()
	get.Set("index", spec.Param{Type: typemap.Number, Description: "index of array to read from"})
	class.Methods.Set("getitem", spec.Method{
		Description: "Access a particular element in the array.",
		Params:      get,
		Return: spec.ReturnSpec{
			Type:        elemType,
			Description: "the value of the element found at the given index of the array",
		},
	})

	set := spec.NewMap[spec.Param]()
	set.Set("index", spec.Param{Type: typemap.Number, Description: "index of array to write to"})
	set.Set("value", spec.Param{Type: elemType, Description: "the value to set the element found at the given index of the array"})
	class.Methods.Set("setitem", spec.Method{Description: "Modify a particular element in the array.", Params: set})

	return class
}

func pointerClass(pointer typemap.PointerProxy, dataType string) *spec.Class {
	class := spec.NewClass("Proxy object to data of type " + pointer.DataType + ".")

	class.Methods.Set(pointer.PointerType, spec.Method{
		Description: "Instantiates the proxy object.",
		Params:      spec.NewMap[spec.Param](),
	})
	class.Methods.Set("value", spec.Method{
		Description: "Get the value of the object.",
		Params:      spec.NewMap[spec.Param](),
		Return:      spec.ReturnSpec{Type: dataType, Description: "the value of the object"},
	})

	assign := spec.NewMap[spec.Param]()
	assign.Set("value", spec.Param{Type: dataType, Description: "the value to set the object to"})
	class.Methods.Set("assign", spec.Method{Description: "Set the value of the object.", Params: assign})

	return class
}
