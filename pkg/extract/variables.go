package extract

import (
	"fmt"

	"doxy2js/pkg/ast"
	"doxy2js/pkg/spec"
)

// Variables extracts the public data members of a class compound
func (x *Extractor) Variables(compound *ast.Node, owner string) (spec.Map[spec.Variable], error) {
	variables := spec.NewMap[spec.Variable]()

	section := findSection(compound, "public-attrib")
	if section == nil {
		return variables, nil
	}

	for _, member := range members(section, "variable") {
		name, err := x.text.Flatten(member.FindChild("name"))
		if err != nil {
			return variables, err
		}
		rawType, err := x.text.Flatten(member.FindChild("type"))
		if err != nil {
			return variables, fmt.Errorf("variable %s: %w", name, err)
		}
		description, err := x.docs.Flatten(member.FindChild("detaileddescription"))
		if err != nil {
			return variables, fmt.Errorf("variable %s: %w", name, err)
		}
		variables.Set(name, spec.Variable{
			Type:        x.types.Resolve(rawType, owner),
			Description: description,
		})
	}

	return variables, nil
}
