package generator

import (
	"doxy2js/pkg/formatter"
	"doxy2js/pkg/spec"
)

// CommonClass holds the module-level methods and enums in YUIDoc output
const CommonClass = "common"

// YUIDoc renders a model as YUIDoc comment blocks. When the model has class groups, each
// group becomes a YUIDoc module of its own.
type YUIDoc struct {
	f *formatter.Formatter
}

// NewYUIDoc creates a YUIDoc generator
func NewYUIDoc() *YUIDoc {
	return &YUIDoc{f: formatter.New()}
}

func (g *YUIDoc) Name() string {
	return "yuidoc"
}

func (g *YUIDoc) Filename() string {
	return "doc.js"
}

func (g *YUIDoc) Generate(model *spec.Model) ([]byte, error) {
	var blocks []*formatter.Comment

	blocks = append(blocks, formatter.NewComment("").Tag("module", model.Module))

	if model.Methods.Len() > 0 || model.Enums.Len() > 0 {
		blocks = append(blocks, formatter.NewComment("Module-level methods and constants of "+model.Module+".").
			Tag("class", CommonClass).
			Tag("module", model.Module))

		model.Methods.Each(func(name string, m spec.Method) {
			c := formatter.NewComment(m.Description).
				Tag("method", spec.DisplayName(name)).
				Tag("static").
				Tag("for", CommonClass)
			blocks = append(blocks, yuidocSignature(c, m))
		})
		model.Enums.Each(func(name string, e spec.EnumMember) {
			blocks = append(blocks, yuidocEnum(name, e, CommonClass))
		})
	}

	emitted := make(map[string]bool)
	emit := func(className, module string) {
		class := model.Class(className)
		if class == nil || emitted[className] {
			return
		}
		emitted[className] = true
		blocks = append(blocks, g.class(className, class, module)...)
	}

	model.ClassGroups.Each(func(name string, group *spec.ClassGroup) {
		blocks = append(blocks, formatter.NewComment(group.Description).Tag("module", name))
		for _, className := range group.Classes {
			emit(className, name)
		}
	})
	for _, className := range model.Classes.Keys() {
		emit(className, model.Module)
	}

	return []byte(g.f.FormatComments(blocks, 0)), nil
}

func (g *YUIDoc) class(className string, class *spec.Class, module string) []*formatter.Comment {
	c := formatter.NewComment(class.Description).
		Tag("class", className).
		TagIf(class.Parent != "", "extends", class.Parent).
		Tag("module", module)
	if ctor, ok := constructor(className, class); ok {
		c.Tag("constructor")
		yuidocParams(c, ctor)
	}
	blocks := []*formatter.Comment{c}

	class.Enums.Each(func(name string, e spec.EnumMember) {
		blocks = append(blocks, yuidocEnum(name, e, className))
	})

	class.Variables.Each(func(name string, v spec.Variable) {
		blocks = append(blocks, formatter.NewComment(v.Description).
			Tag("property", name).
			Tag("type", v.Type).
			Tag("for", className))
	})

	classMethods(className, class).Each(func(name string, m spec.Method) {
		c := formatter.NewComment(m.Description).
			Tag("method", spec.DisplayName(name)).
			Tag("for", className)
		blocks = append(blocks, yuidocSignature(c, m))
	})

	return blocks
}

func yuidocEnum(name string, e spec.EnumMember, owner string) *formatter.Comment {
	return formatter.NewComment(e.Description).
		Tag("property", name).
		Tag("type", e.Type).
		Tag("static").
		Tag("final").
		Tag("for", owner)
}

func yuidocParams(c *formatter.Comment, m spec.Method) *formatter.Comment {
	m.Params.Each(func(name string, p spec.Param) {
		if p.Type == variadicType {
			c.Tag("param", "{Any}", name+"*", p.Description)
			return
		}
		c.Tag("param", "{"+p.Type+"}", name, p.Description)
	})
	return c
}

func yuidocSignature(c *formatter.Comment, m spec.Method) *formatter.Comment {
	yuidocParams(c, m)
	if !m.Return.IsVoid() {
		c.Tag("return", "{"+m.Return.Type+"}", m.Return.Description)
	}
	return c
}
