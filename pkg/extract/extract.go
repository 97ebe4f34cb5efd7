// Package extract builds documentation model records from the sections of a Doxygen compound
package extract

import (
	"regexp"

	"doxy2js/pkg/ast"
)

// TypeResolver maps a source type of a member of owner to its documentation type
type TypeResolver interface {
	Resolve(source, owner string) string
}

// Extractor reads enums, methods and variables out of compound nodes.
// It holds no mutable state and can be shared between goroutines.
type Extractor struct {
	types      TypeResolver
	text       *Flattener // names and types
	docs       *Flattener // descriptions
	enumPrefix *regexp.Regexp
}

// Option configures an Extractor
type Option func(*Extractor)

// WithEnumPrefix strips the first match of re from enum value names
func WithEnumPrefix(re *regexp.Regexp) Option {
	return func(x *Extractor) {
		x.enumPrefix = re
	}
}

// WithImageDir sets the directory image references point to
func WithImageDir(dir string) Option {
	return func(x *Extractor) {
		x.docs.ImageDir = dir
	}
}

// WithLinkFunc sets how <ref> nodes inside descriptions are rendered
func WithLinkFunc(fn LinkFunc) Option {
	return func(x *Extractor) {
		x.docs.Link = fn
	}
}

// New creates an extractor resolving types through types
func New(types TypeResolver, opts ...Option) *Extractor {
	x := &Extractor{
		types: types,
		text:  NewFlattener(""),
		docs:  NewFlattener("images"),
	}
	for _, opt := range opts {
		opt(x)
	}
	return x
}

// Description flattens the compound's detailed description
func (x *Extractor) Description(compound *ast.Node) (string, error) {
	return x.docs.Flatten(compound.FindChild("detaileddescription"))
}

// Text flattens n without any link decoration
func (x *Extractor) Text(n *ast.Node) (string, error) {
	return x.text.Flatten(n)
}

// findSection returns the first sectiondef whose kind is one of kinds.
// Later sections of the same kind are not consulted.
func findSection(compound *ast.Node, kinds ...string) *ast.Node {
	for _, section := range compound.FindChildren("sectiondef") {
		kind := section.AttrOr("kind")
		for _, k := range kinds {
			if kind == k {
				return section
			}
		}
	}
	return nil
}

// members returns the memberdef children of section, optionally only those of kind
func members(section *ast.Node, kind string) []*ast.Node {
	var result []*ast.Node
	for _, m := range section.FindChildren("memberdef") {
		if kind == "" || m.AttrOr("kind") == kind {
			result = append(result, m)
		}
	}
	return result
}
