// Package typemap maps C/C++ type spellings to the JavaScript type names used in the
// generated documentation.
package typemap

import (
	"fmt"
	"regexp"
	"strings"
)

// Normalized primitive type names
const (
	Number   = "Number"
	Boolean  = "Boolean"
	String   = "String"
	Function = "Function"
)

// Rule maps every source type matching Pattern to Target
type Rule struct {
	Pattern *regexp.Regexp
	Target  string
}

// DefaultRules is the baseline C -> JS mapping, tried in order
var DefaultRules = []Rule{
	MustRule(`^(const)?\s*(unsigned|signed)?\s*(int|short|long|float|double|size_t|u?int\d{1,2}_t)?$`, Number),
	MustRule(`^bool$`, Boolean),
	MustRule(`^(const)?\s*(unsigned|signed)?\s*(char|char\s*\*|std::string)$`, String),
	MustRule(`^void\s*\(\s*\*\s*\)\s*\(\s*void\s*\*\)\s*$`, Function),
}

var pointerSpaceRe = regexp.MustCompile(`(\S)\s+\*$`)

// NewRule compiles a case-insensitive mapping rule
func NewRule(pattern, target string) (Rule, error) {
	re, err := regexp.Compile("(?i)" + pattern)
	if err != nil {
		return Rule{}, fmt.Errorf("invalid type pattern %q: %w", pattern, err)
	}
	return Rule{Pattern: re, Target: target}, nil
}

// MustRule is like NewRule but panics on a bad pattern
func MustRule(pattern, target string) Rule {
	r, err := NewRule(pattern, target)
	if err != nil {
		panic(err)
	}
	return r
}

// Mapper normalizes type strings with an ordered rule list. It is safe for concurrent use.
type Mapper struct {
	rules []Rule
}

// New creates a mapper; with no rules the DefaultRules are used
func New(rules ...Rule) *Mapper {
	if len(rules) == 0 {
		rules = DefaultRules
	}
	return &Mapper{rules: rules}
}

// Normalize maps source to its normalized name. The first rule matching at the start of
// the trimmed input wins; without a match the input passes through unchanged. Whitespace
// in front of a trailing '*' is removed either way.
func (m *Mapper) Normalize(source string) string {
	target := source
	trimmed := strings.TrimSpace(source)
	for _, r := range m.rules {
		if loc := r.Pattern.FindStringIndex(trimmed); loc != nil && loc[0] == 0 {
			target = r.Target
			break
		}
	}
	return pointerSpaceRe.ReplaceAllString(target, "$1*")
}

// Targets returns the set of names the rules produce
func (m *Mapper) Targets() map[string]bool {
	targets := make(map[string]bool, len(m.rules))
	for _, r := range m.rules {
		targets[r.Target] = true
	}
	return targets
}

var (
	pointerRe      = regexp.MustCompile(`\w\s*(\*|&)$`)
	pointerTailRe  = regexp.MustCompile(`\s*(\*|&)$`)
	constQualifier = regexp.MustCompile(`^const\s+`)
)

// IsPointer reports whether t looks like a C pointer or reference
func IsPointer(t string) bool {
	return pointerRe.MatchString(t)
}

// IsReference reports whether t is a C++ reference
func IsReference(t string) bool {
	return strings.HasSuffix(strings.TrimSpace(t), "&")
}

// PointerDataType returns the pointed-to type (int for int*, Foo for const Foo &)
func PointerDataType(t string) string {
	return constQualifier.ReplaceAllString(pointerTailRe.ReplaceAllString(strings.TrimSpace(t), ""), "")
}

// Resolver turns source types into documentation types in the context of the module's
// known classes and SWIG typemaps. It is read-only once built.
type Resolver struct {
	mapper   *Mapper
	typemaps *Typemaps
	classes  map[string]bool
}

// NewResolver creates a resolver; typemaps may be nil
func NewResolver(mapper *Mapper, typemaps *Typemaps, classes []string) *Resolver {
	known := make(map[string]bool, len(classes))
	for _, c := range classes {
		known[c] = true
	}
	if typemaps == nil {
		typemaps = NewTypemaps()
	}
	return &Resolver{mapper: mapper, typemaps: typemaps, classes: known}
}

// Mapper returns the underlying rule mapper
func (r *Resolver) Mapper() *Mapper {
	return r.mapper
}

// Resolve normalizes source for a member of owner ("" for module level)
func (r *Resolver) Resolve(source, owner string) string {
	t := r.mapper.Normalize(source)
	if !IsPointer(t) {
		return t
	}

	data := PointerDataType(t)
	className := strings.ToLower(owner)
	if arrayType, ok := r.typemaps.ArrayType(data, className); ok {
		return arrayType
	}
	if pointerType, ok := r.typemaps.PointerType(data, className); ok {
		return pointerType
	}
	if r.classes[data] {
		return data
	}
	if IsReference(t) {
		return r.mapper.Normalize(data)
	}
	return data + "*"
}

// IsPointerType reports whether t is an array or pointer proxy type available to owner
func (r *Resolver) IsPointerType(t, owner string) bool {
	return r.typemaps.HasProxy(t, strings.ToLower(owner))
}
