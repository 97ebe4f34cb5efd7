package extract

import (
	"fmt"

	"doxy2js/pkg/ast"
	"doxy2js/pkg/spec"
)

// enumGroup is one parsed enum with its stripped member names
type enumGroup struct {
	name        string
	description string
	values      []enumValue
}

type enumValue struct {
	name        string
	description string
}

func (x *Extractor) enumGroups(compound *ast.Node) ([]enumGroup, error) {
	section := findSection(compound, "enum", "public-type")
	if section == nil {
		return nil, nil
	}

	var groups []enumGroup
	for _, member := range members(section, "enum") {
		name, err := x.text.Flatten(member.FindChild("name"))
		if err != nil {
			return nil, err
		}
		description, err := x.docs.Flatten(member.FindChild("detaileddescription"))
		if err != nil {
			return nil, fmt.Errorf("enum %s: %w", name, err)
		}

		group := enumGroup{name: name, description: description}
		for _, value := range member.FindChildren("enumvalue") {
			valueName, err := x.text.Flatten(value.FindChild("name"))
			if err != nil {
				return nil, err
			}
			if x.enumPrefix != nil {
				if loc := x.enumPrefix.FindStringIndex(valueName); loc != nil {
					valueName = valueName[:loc[0]] + valueName[loc[1]:]
				}
			}
			valueDescription, err := x.docs.Flatten(value.FindChild("detaileddescription"))
			if err != nil {
				return nil, fmt.Errorf("enum value %s: %w", valueName, err)
			}
			group.values = append(group.values, enumValue{name: valueName, description: valueDescription})
		}
		groups = append(groups, group)
	}

	return groups, nil
}

// Enums returns every enum value of the compound keyed by its stripped name
func (x *Extractor) Enums(compound *ast.Node) (spec.Map[spec.EnumMember], error) {
	result := spec.NewMap[spec.EnumMember]()
	groups, err := x.enumGroups(compound)
	if err != nil {
		return result, err
	}
	for _, g := range groups {
		for _, v := range g.values {
			result.Set(v.name, spec.EnumMember{Type: g.name, Description: v.description})
		}
	}
	return result, nil
}

// EnumGroups returns every enum of the compound with its ordered member names
func (x *Extractor) EnumGroups(compound *ast.Node) (spec.Map[spec.EnumGroup], error) {
	result := spec.NewMap[spec.EnumGroup]()
	groups, err := x.enumGroups(compound)
	if err != nil {
		return result, err
	}
	for _, g := range groups {
		members := make([]string, 0, len(g.values))
		for _, v := range g.values {
			members = append(members, v.name)
		}
		result.Set(g.name, spec.EnumGroup{Description: g.description, Members: members})
	}
	return result, nil
}
