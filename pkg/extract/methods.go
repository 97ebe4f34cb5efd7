package extract

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"doxy2js/pkg/ast"
	"doxy2js/pkg/spec"
)

// VariadicParam is the name given to a bare "..." parameter
const VariadicParam = "arguments"

var qualifierRe = regexp.MustCompile(`^((virtual|static|inline|explicit)\s+)+`)

// Methods extracts the functions of the compound's first function section, skipping
// destructors. A function that cannot be extracted is reported in the returned
// diagnostics and left out; its siblings are still extracted.
func (x *Extractor) Methods(compound *ast.Node, owner string) (spec.Map[spec.Method], Diagnostics) {
	methods := spec.NewMap[spec.Method]()
	var diag Diagnostics

	section := findSection(compound, "public-func", "func")
	if section == nil {
		return methods, diag
	}

	for _, member := range members(section, "") {
		name, err := x.text.Flatten(member.FindChild("name"))
		if err != nil || name == "" {
			if err == nil {
				err = errors.New("function has no name")
			}
			diag.Failures = append(diag.Failures, &MethodError{Owner: owner, Method: name, Err: err})
			continue
		}
		if strings.HasPrefix(name, "~") {
			continue
		}

		method, warnings, err := x.method(member, name, owner)
		diag.Warnings = append(diag.Warnings, warnings...)
		if err != nil {
			diag.Failures = append(diag.Failures, &MethodError{Owner: owner, Method: name, Err: err})
			continue
		}
		methods.Set(spec.UniqueName(name, methods), method)
	}

	return methods, diag
}

func (x *Extractor) method(member *ast.Node, name, owner string) (spec.Method, []*UnknownParamWarning, error) {
	detail := member.FindChild("detaileddescription")
	description, err := x.docs.Flatten(detail)
	if err != nil {
		return spec.Method{}, nil, err
	}

	params := spec.NewMap[spec.Param]()
	var warnings []*UnknownParamWarning
	paramNodes := member.FindChildren("param")
	has, err := x.hasParams(paramNodes)
	if err != nil {
		return spec.Method{}, nil, err
	}
	if has {
		params, warnings, err = x.params(paramNodes, paramDetails(detail), name, owner)
		if err != nil {
			return spec.Method{}, warnings, err
		}
	}

	ret, err := x.returnSpec(member.FindChild("type"), returnDetails(detail), owner)
	if err != nil {
		return spec.Method{}, warnings, err
	}

	return spec.Method{Description: description, Params: params, Return: ret}, warnings, nil
}

// hasParams is false for no params and for a lone "void"
func (x *Extractor) hasParams(nodes []*ast.Node) (bool, error) {
	if len(nodes) == 0 {
		return false, nil
	}
	if len(nodes) == 1 {
		t, err := x.text.Flatten(nodes[0].FindChild("type"))
		if err != nil {
			return false, err
		}
		if t == "void" {
			return false, nil
		}
	}
	return true, nil
}

func (x *Extractor) params(nodes []*ast.Node, details []*ast.Node, method, owner string) (spec.Map[spec.Param], []*UnknownParamWarning, error) {
	params := spec.NewMap[spec.Param]()

	for i, p := range nodes {
		rawType, err := x.text.Flatten(p.FindChild("type"))
		if err != nil {
			return params, nil, err
		}
		if rawType == "..." {
			params.Set(VariadicParam, spec.Param{Type: rawType})
			continue
		}
		declname := p.FindChild("declname")
		if declname == nil {
			return params, nil, fmt.Errorf("parameter %d (%s) has no name", i+1, rawType)
		}
		name, err := x.text.Flatten(declname)
		if err != nil {
			return params, nil, err
		}
		params.Set(name, spec.Param{Type: x.types.Resolve(rawType, owner)})
	}

	documented := make(map[string]bool, len(details))
	names := make([]string, len(details))
	for i, item := range details {
		name, err := x.text.Flatten(item.FindByPath("parameternamelist", "parametername"))
		if err != nil {
			return params, nil, err
		}
		names[i] = name
		documented[name] = true
	}

	var warnings []*UnknownParamWarning
	for i, item := range details {
		description, err := x.docs.Flatten(item.FindChild("parameterdescription"))
		if err != nil {
			return params, warnings, err
		}
		name := names[i]
		if p, ok := params.Get(name); ok {
			p.Description = description
			params.Set(name, p)
			continue
		}
		var suggestions []string
		for _, candidate := range params.Keys() {
			if !documented[candidate] {
				suggestions = append(suggestions, candidate)
			}
		}
		warnings = append(warnings, &UnknownParamWarning{Owner: owner, Method: method, Param: name, Suggestions: suggestions})
	}

	return params, warnings, nil
}

func (x *Extractor) returnSpec(typeNode, details *ast.Node, owner string) (spec.ReturnSpec, error) {
	rawType, err := x.text.Flatten(typeNode)
	if err != nil {
		return spec.ReturnSpec{}, err
	}
	rawType = qualifierRe.ReplaceAllString(rawType, "")
	if strings.TrimSpace(rawType) == "" {
		// constructors
		return spec.ReturnSpec{}, nil
	}

	t := x.types.Resolve(rawType, owner)
	if t == "void" {
		return spec.ReturnSpec{}, nil
	}

	description, err := x.docs.Flatten(details)
	if err != nil {
		return spec.ReturnSpec{}, err
	}
	return spec.ReturnSpec{Type: t, Description: description}, nil
}

// paramDetails returns the parameteritems of the first parameter list in detail
func paramDetails(detail *ast.Node) []*ast.Node {
	for _, para := range detail.FindChildren("para") {
		for _, list := range para.FindChildren("parameterlist") {
			if kind, ok := list.Attr("kind"); ok && kind != "param" {
				continue
			}
			return list.FindChildren("parameteritem")
		}
	}
	return nil
}

// returnDetails returns the first <simplesect kind="return"> in detail
func returnDetails(detail *ast.Node) *ast.Node {
	for _, para := range detail.FindChildren("para") {
		for _, sect := range para.FindChildren("simplesect") {
			if sect.AttrOr("kind") == "return" {
				return sect
			}
		}
	}
	return nil
}
