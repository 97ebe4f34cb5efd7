package extract

import (
	"fmt"

	"doxy2js/pkg/ast"
	"doxy2js/pkg/spec"
)

// Class extracts a class compound as name. Method failures are reported in the returned
// diagnostics; any other failure aborts the class.
func (x *Extractor) Class(compound *ast.Node, name string) (*spec.Class, Diagnostics, error) {
	var diag Diagnostics

	description, err := x.Description(compound)
	if err != nil {
		return nil, diag, fmt.Errorf("description: %w", err)
	}
	class := spec.NewClass(description)

	if base := compound.FindChild("basecompoundref"); base != nil {
		class.Parent, err = x.text.Flatten(base)
		if err != nil {
			return nil, diag, fmt.Errorf("parent: %w", err)
		}
	}

	if class.Enums, err = x.Enums(compound); err != nil {
		return nil, diag, fmt.Errorf("enums: %w", err)
	}
	if class.EnumsByGroup, err = x.EnumGroups(compound); err != nil {
		return nil, diag, fmt.Errorf("enums by group: %w", err)
	}
	if class.Variables, err = x.Variables(compound, name); err != nil {
		return nil, diag, fmt.Errorf("variables: %w", err)
	}

	class.Methods, diag = x.Methods(compound, name)
	return class, diag, nil
}
