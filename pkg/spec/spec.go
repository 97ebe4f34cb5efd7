// Package spec defines the normalized documentation model shared by the extractors,
// the validator and the generators.
package spec

import (
	"encoding/json"
	"strings"
)

// EnumMember is a single enum value
type EnumMember struct {
	Type        string `json:"type"` // Name of the owning enum group
	Description string `json:"description"`
}

// EnumGroup is a named enum and the ordered names of its members
type EnumGroup struct {
	Description string   `json:"description"`
	Members     []string `json:"members"`
}

// Param documents one method parameter
type Param struct {
	Type        string `json:"type"`
	Description string `json:"description"`
}

// ReturnSpec documents a return value. The zero value means the method returns nothing.
type ReturnSpec struct {
	Type        string `json:"type"`
	Description string `json:"description"`
}

// IsVoid returns true if there is no return value
func (r ReturnSpec) IsVoid() bool {
	return r.Type == ""
}

// MarshalJSON writes {} for a void return and both fields otherwise
func (r ReturnSpec) MarshalJSON() ([]byte, error) {
	if r.IsVoid() {
		return []byte("{}"), nil
	}
	type plain ReturnSpec
	return json.Marshal(plain(r))
}

// Method documents a function of a module or class
type Method struct {
	Description string     `json:"description"`
	Params      Map[Param] `json:"params"`
	Return      ReturnSpec `json:"return"`
}

// Clone returns a deep copy of the method
func (m Method) Clone() Method {
	m.Params = m.Params.Map(func(p Param) Param { return p })
	return m
}

// Variable documents a public field of a class
type Variable struct {
	Type        string `json:"type"`
	Description string `json:"description"`
}

// Class documents one class of the module
type Class struct {
	Description  string          `json:"description"`
	Parent       string          `json:"parent,omitempty"`
	Group        string          `json:"group,omitempty"`
	Enums        Map[EnumMember] `json:"enums"`
	EnumsByGroup Map[EnumGroup]  `json:"enums_by_group"`
	Variables    Map[Variable]   `json:"variables"`
	Methods      Map[Method]     `json:"methods"`
}

// NewClass creates an empty class record
func NewClass(description string) *Class {
	return &Class{
		Description:  description,
		Enums:        NewMap[EnumMember](),
		EnumsByGroup: NewMap[EnumGroup](),
		Variables:    NewMap[Variable](),
		Methods:      NewMap[Method](),
	}
}

// Clone returns a deep copy of the class
func (c *Class) Clone() *Class {
	clone := *c
	clone.Enums = c.Enums.Map(func(e EnumMember) EnumMember { return e })
	clone.EnumsByGroup = c.EnumsByGroup.Map(cloneEnumGroup)
	clone.Variables = c.Variables.Map(func(v Variable) Variable { return v })
	clone.Methods = c.Methods.Map(Method.Clone)
	return &clone
}

// ClassGroup is a Doxygen group of classes
type ClassGroup struct {
	Description string   `json:"description"`
	Classes     []string `json:"classes"`
}

// Model is the complete normalized documentation of one module
type Model struct {
	Module       string           `json:"MODULE"`
	Enums        Map[EnumMember]  `json:"ENUMS"`
	EnumsByGroup Map[EnumGroup]   `json:"ENUMS_BY_GROUP"`
	Methods      Map[Method]      `json:"METHODS"`
	Classes      Map[*Class]      `json:"CLASSES"`
	ClassGroups  Map[*ClassGroup] `json:"CLASSGROUPS"`
}

// NewModel creates an empty model for module
func NewModel(module string) *Model {
	return &Model{
		Module:       module,
		Enums:        NewMap[EnumMember](),
		EnumsByGroup: NewMap[EnumGroup](),
		Methods:      NewMap[Method](),
		Classes:      NewMap[*Class](),
		ClassGroups:  NewMap[*ClassGroup](),
	}
}

// Clone returns a deep copy of the model; generators work on clones
func (m *Model) Clone() *Model {
	groups := m.ClassGroups.Map(func(g *ClassGroup) *ClassGroup {
		clone := *g
		clone.Classes = append([]string(nil), g.Classes...)
		return &clone
	})
	return &Model{
		Module:       m.Module,
		Enums:        m.Enums.Map(func(e EnumMember) EnumMember { return e }),
		EnumsByGroup: m.EnumsByGroup.Map(cloneEnumGroup),
		Methods:      m.Methods.Map(Method.Clone),
		Classes:      m.Classes.Map((*Class).Clone),
		ClassGroups:  groups,
	}
}

// Class returns the named class, or nil
func (m *Model) Class(name string) *Class {
	c, _ := m.Classes.Get(name)
	return c
}

// JSON renders the model as indented JSON
func (m *Model) JSON() ([]byte, error) {
	return json.MarshalIndent(m, "", "  ")
}

func cloneEnumGroup(g EnumGroup) EnumGroup {
	g.Members = append([]string(nil), g.Members...)
	return g
}

// DisplayName strips the trailing run of '!' used to keep overloaded methods apart
func DisplayName(name string) string {
	return strings.TrimRight(name, "!")
}

// UniqueName appends '!' to name until it is not already taken in methods
func UniqueName(name string, methods Map[Method]) string {
	for methods.Has(name) {
		name += "!"
	}
	return name
}
