package assemble

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"doxy2js/pkg/document"
	"doxy2js/pkg/extract"
	"doxy2js/pkg/parser"
	"doxy2js/pkg/spec"
)

type classGroup struct {
	name    string
	group   *spec.ClassGroup
	invalid error
}

// loadGroups reads every group*.xml compound of the input directory. Groups containing
// subgroups are not class groups and are left out.
func loadGroups(p *parser.Parser, x *extract.Extractor, opts Options) ([]*classGroup, error) {
	entries, err := os.ReadDir(opts.InputDir)
	if err != nil {
		return nil, fmt.Errorf("failed to read input directory %s: %w", opts.InputDir, err)
	}

	var files []string
	for _, entry := range entries {
		name := entry.Name()
		if !entry.IsDir() && filepath.Ext(name) == ".xml" && strings.HasPrefix(name, "group") {
			files = append(files, filepath.Join(opts.InputDir, name))
		}
	}

	groups := make([]*classGroup, len(files))
	var wg sync.WaitGroup
	for i, file := range files {
		wg.Add(1)
		go func(i int, file string) {
			defer wg.Done()
			groups[i] = loadGroup(p, x, opts.Module, file)
		}(i, file)
	}
	wg.Wait()

	result := groups[:0]
	for _, g := range groups {
		if g != nil {
			result = append(result, g)
		}
	}
	return result, nil
}

func loadGroup(p *parser.Parser, x *extract.Extractor, module, file string) *classGroup {
	doc, err := document.NewFromFile(p, file)
	if err != nil {
		return &classGroup{invalid: err}
	}
	if kind := doc.Kind(); kind != "group" {
		return &classGroup{invalid: fmt.Errorf("%s is a %s compound, not a group", doc.GetFilename(), kind)}
	}
	if len(doc.InnerGroups()) > 0 {
		return nil
	}

	description, err := x.Description(doc.Compound())
	if err != nil {
		return &classGroup{invalid: fmt.Errorf("group %s: %w", doc.GetFilename(), err)}
	}
	group := &spec.ClassGroup{Description: description, Classes: []string{}}
	for _, ref := range doc.InnerClasses() {
		group.Classes = append(group.Classes, document.StripModule(ref.Name, module))
	}
	return &classGroup{name: doc.Name(module), group: group}
}

// attachGroups records the groups in model and places ungrouped classes and module enums
// next to the classes that use them
func attachGroups(model *spec.Model, groups []*classGroup, report *Report) {
	for _, g := range groups {
		if g.invalid != nil {
			report.warn("Ignored class group: %s", g.invalid)
			continue
		}
		model.ClassGroups.Set(g.name, g.group)
		for _, c := range g.group.Classes {
			if class := model.Class(c); class != nil {
				class.Group = g.name
			} else {
				report.warn("Group %s has unknown class %s", g.name, c)
			}
		}
	}
	if model.ClassGroups.Len() == 0 {
		return
	}

	grouped := make(map[string]bool)
	model.ClassGroups.Each(func(_ string, g *spec.ClassGroup) {
		for _, c := range g.Classes {
			grouped[c] = true
		}
	})
	for _, c := range model.Classes.Keys() {
		if grouped[c] {
			continue
		}
		for _, name := range usageGroups(model, c) {
			g, _ := model.ClassGroups.Get(name)
			g.Classes = append(g.Classes, c)
			log.Debugf("class %s placed in group %s by usage", c, name)
		}
	}

	for _, enumGroup := range model.EnumsByGroup.Keys() {
		users := usage(model, enumGroup)
		if len(users) == 0 {
			continue
		}
		group, _ := model.EnumsByGroup.Get(enumGroup)
		for _, c := range users {
			class := model.Class(c)
			class.EnumsByGroup.Set(enumGroup, group)
			for _, member := range group.Members {
				if e, ok := model.Enums.Get(member); ok {
					class.Enums.Set(member, e)
				}
			}
		}
		for _, member := range group.Members {
			model.Enums.Delete(member)
		}
		model.EnumsByGroup.Delete(enumGroup)
		log.Debugf("enum %s moved to %s", enumGroup, strings.Join(users, ", "))
	}
}

// usage returns the classes with a method or variable of type t, followed by the classes
// extending t
func usage(model *spec.Model, t string) []string {
	var users, children []string
	model.Classes.Each(func(name string, class *spec.Class) {
		if usesType(class, t) {
			users = append(users, name)
		}
	})
	model.Classes.Each(func(name string, class *spec.Class) {
		if class.Parent == t && !contains(users, name) {
			children = append(children, name)
		}
	})
	return append(users, children...)
}

// usageGroups returns the distinct groups of the classes using t
func usageGroups(model *spec.Model, t string) []string {
	var groups []string
	for _, c := range usage(model, t) {
		if g := model.Class(c).Group; g != "" && !contains(groups, g) {
			groups = append(groups, g)
		}
	}
	return groups
}

func usesType(class *spec.Class, t string) bool {
	for _, name := range class.Methods.Keys() {
		m, _ := class.Methods.Get(name)
		if !m.Return.IsVoid() && m.Return.Type == t {
			return true
		}
		for _, p := range m.Params.Keys() {
			if param, _ := m.Params.Get(p); param.Type == t {
				return true
			}
		}
	}
	for _, name := range class.Variables.Keys() {
		if v, _ := class.Variables.Get(name); v.Type == t {
			return true
		}
	}
	return false
}

func contains(list []string, s string) bool {
	for _, item := range list {
		if item == s {
			return true
		}
	}
	return false
}
