package validate

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"doxy2js/pkg/spec"
	"doxy2js/pkg/typemap"
)

func newValidator(strict bool, typemaps *typemap.Typemaps) *Validator {
	resolver := typemap.NewResolver(typemap.New(), typemaps, nil)
	return New(resolver, WithStrict(strict))
}

func testModel() *spec.Model {
	model := spec.NewModel("mod")
	model.EnumsByGroup.Set("Direction", spec.EnumGroup{Members: []string{"UP"}})

	class := spec.NewClass("A pin")
	class.EnumsByGroup.Set("Mode", spec.EnumGroup{Members: []string{"MODE_IN"}})
	class.Variables.Set("pin", spec.Variable{Type: "Number"})
	class.Variables.Set("opaque", spec.Variable{Type: "FooBarBaz"})

	params := spec.NewMap[spec.Param]()
	params.Set("mode", spec.Param{Type: "Mode"})
	params.Set("dir", spec.Param{Type: "Direction"})
	class.Methods.Set("setMode", spec.Method{Params: params})

	bad := spec.NewMap[spec.Param]()
	bad.Set("data", spec.Param{Type: "uint8_t*"})
	class.Methods.Set("writeBytes", spec.Method{Params: bad})
	class.Methods.Set("handle", spec.Method{
		Params: spec.NewMap[spec.Param](),
		Return: spec.ReturnSpec{Type: "context*", Description: "raw handle"},
	})
	class.Methods.Set("self", spec.Method{
		Params: spec.NewMap[spec.Param](),
		Return: spec.ReturnSpec{Type: "Gpio", Description: "this"},
	})
	model.Classes.Set("Gpio", class)

	moduleParams := spec.NewMap[spec.Param]()
	moduleParams.Set("cb", spec.Param{Type: "Function"})
	moduleParams.Set("buf", spec.Param{Type: "Buffer"})
	model.Methods.Set("onData", spec.Method{Params: moduleParams})
	model.Methods.Set("getMode", spec.Method{
		Params: spec.NewMap[spec.Param](),
		Return: spec.ReturnSpec{Type: "Mode", Description: "class-local enum"},
	})
	return model
}

func TestIsValidType(t *testing.T) {
	v := newValidator(false, nil)
	model := testModel()

	tests := []struct {
		typ   string
		owner string
		valid bool
	}{
		{"Number", "", true},
		{"String", "", true},
		{"Boolean", "", true},
		{"Function", "", true},
		{"Buffer", "", true},
		{"mraa_result_t", "", true},
		{"Gpio", "", true},
		{"Direction", "", true},
		{"Mode", "Gpio", true},
		{"Mode", "", false},
		{"FooBarBaz", "Gpio", false},
		{"uint8_t*", "Gpio", false},
	}
	for _, tt := range tests {
		if got := v.IsValidType(model, tt.typ, tt.owner); got != tt.valid {
			t.Errorf("IsValidType(%q, %q) = %v, want %v", tt.typ, tt.owner, got, tt.valid)
		}
	}
}

func TestIsValidPointerType(t *testing.T) {
	typemaps := typemap.NewTypemaps()
	typemaps.AddArrayClass("uint8_t", "uint8Array")
	typemaps.AddTypemap("gpio", "uint8_t *")
	typemaps.AddPointerFunctions("gpio", "float", "floatp")

	v := newValidator(true, typemaps)
	model := testModel()

	if !v.IsValidType(model, "uint8Array", "Gpio") {
		t.Error("Array type must be valid for its class")
	}
	if !v.IsValidType(model, "floatp", "Gpio") {
		t.Error("Pointer type must be valid for its class")
	}
	if v.IsValidType(model, "uint8Array", "Other") {
		t.Error("Array type must not be valid for other classes")
	}
}

func TestValidateStrict(t *testing.T) {
	v := newValidator(true, nil)
	model := testModel()

	errs := v.Validate(model)
	if len(errs) != 4 {
		t.Fatalf("Expected 4 invalid types, got %d: %v", len(errs), errs)
	}

	class := model.Class("Gpio")
	if diff := cmp.Diff([]string{"setMode", "self"}, class.Methods.Keys()); diff != "" {
		t.Errorf("Class methods mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"pin"}, class.Variables.Keys()); diff != "" {
		t.Errorf("Class variables mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"onData"}, model.Methods.Keys()); diff != "" {
		t.Errorf("Module methods mismatch (-want +got):\n%s", diff)
	}

	if errs := v.Validate(model); len(errs) != 0 {
		t.Errorf("Second validation must find nothing, got %v", errs)
	}
	if class.Methods.Len() != 2 || class.Variables.Len() != 1 || model.Methods.Len() != 1 {
		t.Error("Second validation must not remove anything")
	}
}

func TestValidateNonStrict(t *testing.T) {
	v := newValidator(false, nil)
	model := testModel()

	errs := v.Validate(model)
	if len(errs) != 4 {
		t.Fatalf("Expected 4 invalid types, got %d", len(errs))
	}

	class := model.Class("Gpio")
	if !class.Variables.Has("opaque") {
		t.Error("Non-strict mode must keep the invalid variable")
	}
	if class.Methods.Len() != 4 || model.Methods.Len() != 2 {
		t.Error("Non-strict mode must keep invalid methods")
	}
}

func TestInvalidTypeErrorMessages(t *testing.T) {
	tests := []struct {
		err      *InvalidTypeError
		expected string
	}{
		{
			&InvalidTypeError{Owner: "Gpio", Member: "write", Role: RoleParam, Param: "data", Type: "uint8_t*"},
			"Gpio.write: parameter data has invalid type uint8_t*",
		},
		{
			&InvalidTypeError{Member: "handle", Role: RoleReturn, Type: "context*"},
			"handle: returns invalid type context*",
		},
		{
			&InvalidTypeError{Owner: "Gpio", Member: "opaque", Role: RoleVariable, Type: "FooBarBaz"},
			"Gpio.opaque is of invalid type FooBarBaz",
		},
	}
	for _, tt := range tests {
		if got := tt.err.Error(); got != tt.expected {
			t.Errorf("Expected %q, got %q", tt.expected, got)
		}
	}
}
