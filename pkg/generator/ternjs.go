package generator

import (
	"encoding/json"
	"strings"

	"doxy2js/pkg/spec"
	"doxy2js/pkg/typemap"
)

// Tern renders a model as a Tern JSON type definition
type Tern struct{}

// NewTern creates a Tern generator
func NewTern() *Tern {
	return &Tern{}
}

func (g *Tern) Name() string {
	return "ternjs"
}

func (g *Tern) Filename() string {
	return "doc.json"
}

func (g *Tern) Generate(model *spec.Model) ([]byte, error) {
	types := ternTypes{model: model}
	module := spec.NewMap[any]()

	model.Enums.Each(func(name string, e spec.EnumMember) {
		module.Set(name, ternEnum(e))
	})

	distinct(model.Methods).Each(func(name string, m spec.Method) {
		module.Set(name, ternDoc(types.fn(m, ""), m.Description))
	})

	model.Classes.Each(func(className string, class *spec.Class) {
		module.Set(className, g.class(types, className, class))
	})

	root := spec.NewMap[any]()
	root.Set("!name", model.Module)
	root.Set("!define", spec.NewMap[any]())
	root.Set(model.Module, module)

	data, err := json.MarshalIndent(root, "", "  ")
	if err != nil {
		return nil, err
	}
	return append(data, '\n'), nil
}

func (g *Tern) class(types ternTypes, className string, class *spec.Class) spec.Map[any] {
	ctor, ok := constructor(className, class)
	if !ok {
		ctor = spec.Method{Params: spec.NewMap[spec.Param]()}
	}
	// a constructor never documents a return value
	ctor.Return = spec.ReturnSpec{}

	result := ternDoc(types.fn(ctor, className), class.Description)

	class.Enums.Each(func(name string, e spec.EnumMember) {
		result.Set(name, ternEnum(e))
	})

	proto := spec.NewMap[any]()
	if class.Parent != "" {
		proto.Set("!proto", types.model.Module+"."+class.Parent+".prototype")
	}
	distinct(classMethods(className, class)).Each(func(name string, m spec.Method) {
		proto.Set(name, ternDoc(types.fn(m, className), m.Description))
	})
	class.Variables.Each(func(name string, v spec.Variable) {
		proto.Set(name, ternDoc(types.of(v.Type, className), v.Description))
	})
	result.Set("prototype", proto)

	return result
}

func ternEnum(e spec.EnumMember) string {
	return "Enum " + e.Type
}

func ternDoc(t, doc string) spec.Map[any] {
	m := spec.NewMap[any]()
	m.Set("!type", t)
	if doc != "" {
		m.Set("!doc", doc)
	}
	return m
}

// ternTypes maps documentation types to Tern type expressions
type ternTypes struct {
	model *spec.Model
}

func (t ternTypes) fn(m spec.Method, owner string) string {
	var params []string
	m.Params.Each(func(name string, p spec.Param) {
		params = append(params, name+": "+t.of(p.Type, owner))
	})

	sig := "fn(" + strings.Join(params, ", ") + ")"
	if !m.Return.IsVoid() {
		sig += " -> " + t.of(m.Return.Type, owner)
	}
	return sig
}

func (t ternTypes) of(docType, owner string) string {
	switch docType {
	case typemap.Number:
		return "number"
	case typemap.String:
		return "string"
	case typemap.Boolean:
		return "bool"
	case typemap.Function:
		return "fn()"
	case variadicType:
		return "?"
	}

	if t.model.Classes.Has(docType) {
		return "+" + t.model.Module + "." + docType
	}
	if t.model.EnumsByGroup.Has(docType) {
		return "number"
	}
	if class := t.model.Class(owner); class != nil && class.EnumsByGroup.Has(docType) {
		return "number"
	}
	if docType == "Buffer" {
		return "+Buffer"
	}
	return "?"
}
