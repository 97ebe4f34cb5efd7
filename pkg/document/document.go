// Package document provides access to a single Doxygen compound XML file: a namespace,
// class, group or file description.
package document

import (
	"fmt"
	"os"
	"strings"

	"doxy2js/pkg/ast"
	"doxy2js/pkg/parser"
)

// Document is a parsed Doxygen compound
type Document struct {
	filename string
	compound *ast.Node
}

// Ref is a cross-reference to another compound
type Ref struct {
	RefID string // Basename of the referenced compound's XML file
	Name  string // Qualified name, e.g. mraa::Gpio
}

// NewFromFile reads and parses a compound file
func NewFromFile(p *parser.Parser, filename string) (*Document, error) {
	content, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", filename, err)
	}
	return NewFromContent(p, filename, string(content))
}

// NewFromContent parses compound XML held in memory
func NewFromContent(p *parser.Parser, name, content string) (*Document, error) {
	doc, err := p.Parse(name, content)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", name, err)
	}

	compound := doc.Root
	if compound.Name == "doxygen" {
		compound = doc.Root.FindChild("compounddef")
	}
	if compound == nil || compound.Name != "compounddef" {
		return nil, fmt.Errorf("failed to parse %s: no compounddef element", name)
	}

	return &Document{filename: name, compound: compound}, nil
}

// GetFilename returns the document's filename
func (d *Document) GetFilename() string {
	return d.filename
}

// Compound returns the compounddef node
func (d *Document) Compound() *ast.Node {
	return d.compound
}

// Kind returns the compound kind (namespace, class, group, file, ...)
func (d *Document) Kind() string {
	return d.compound.AttrOr("kind")
}

// QualifiedName returns the compoundname text
func (d *Document) QualifiedName() string {
	return strings.TrimSpace(d.compound.FindChild("compoundname").InnerText())
}

// Name returns the compound name with the first "<module>::" removed
func (d *Document) Name(module string) string {
	return StripModule(d.QualifiedName(), module)
}

// InnerClasses returns the class cross-references in document order
func (d *Document) InnerClasses() []Ref {
	return d.refs("innerclass")
}

// InnerGroups returns the subgroup cross-references in document order
func (d *Document) InnerGroups() []Ref {
	return d.refs("innergroup")
}

func (d *Document) refs(element string) []Ref {
	var refs []Ref
	for _, n := range d.compound.FindChildren(element) {
		refs = append(refs, Ref{RefID: n.AttrOr("refid"), Name: strings.TrimSpace(n.InnerText())})
	}
	return refs
}

// StripModule removes the first occurrence of "<module>::" from name
func StripModule(name, module string) string {
	if module == "" {
		return name
	}
	return strings.Replace(name, module+"::", "", 1)
}
