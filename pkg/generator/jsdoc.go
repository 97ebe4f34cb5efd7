package generator

import (
	"doxy2js/pkg/formatter"
	"doxy2js/pkg/spec"
)

// JSDoc renders a model as JSDoc comment blocks
type JSDoc struct {
	f *formatter.Formatter
}

// NewJSDoc creates a JSDoc generator
func NewJSDoc() *JSDoc {
	return &JSDoc{f: formatter.New()}
}

func (g *JSDoc) Name() string {
	return "jsdoc"
}

func (g *JSDoc) Filename() string {
	return "doc.js"
}

func (g *JSDoc) Generate(model *spec.Model) ([]byte, error) {
	var blocks []*formatter.Comment

	blocks = append(blocks, formatter.NewComment("").Tag("module", model.Module))

	model.Enums.Each(func(name string, e spec.EnumMember) {
		blocks = append(blocks, formatter.NewComment(e.Description).
			Tag("constant", "{"+e.Type+"}", name).
			Tag("memberof", model.Module))
	})

	model.Methods.Each(func(name string, m spec.Method) {
		c := formatter.NewComment(m.Description).
			Tag("method", spec.DisplayName(name)).
			Tag("static").
			Tag("memberof", model.Module)
		blocks = append(blocks, jsdocSignature(c, m))
	})

	model.Classes.Each(func(className string, class *spec.Class) {
		c := formatter.NewComment(class.Description).
			Tag("class", className).
			TagIf(class.Parent != "", "augments", class.Parent).
			Tag("memberof", model.Module)
		if ctor, ok := constructor(className, class); ok {
			c = jsdocParams(c, ctor)
		}
		blocks = append(blocks, c)

		class.Enums.Each(func(name string, e spec.EnumMember) {
			blocks = append(blocks, formatter.NewComment(e.Description).
				Tag("constant", "{"+e.Type+"}", name).
				Tag("memberof", className))
		})

		class.Variables.Each(func(name string, v spec.Variable) {
			blocks = append(blocks, formatter.NewComment(v.Description).
				Tag("member", "{"+v.Type+"}", name).
				Tag("instance").
				Tag("memberof", className))
		})

		classMethods(className, class).Each(func(name string, m spec.Method) {
			c := formatter.NewComment(m.Description).
				Tag("method", spec.DisplayName(name)).
				Tag("instance").
				Tag("memberof", className)
			blocks = append(blocks, jsdocSignature(c, m))
		})
	})

	return []byte(g.f.FormatComments(blocks, 0)), nil
}

func jsdocParams(c *formatter.Comment, m spec.Method) *formatter.Comment {
	m.Params.Each(func(name string, p spec.Param) {
		t := p.Type
		if t == variadicType {
			t = "...*"
		}
		c.Tag("param", "{"+t+"}", name, p.Description)
	})
	return c
}

func jsdocSignature(c *formatter.Comment, m spec.Method) *formatter.Comment {
	jsdocParams(c, m)
	if !m.Return.IsVoid() {
		c.Tag("return", "{"+m.Return.Type+"}", m.Return.Description)
	}
	return c
}
