package typemap

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"
)

var (
	arrayClassRe       = regexp.MustCompile(`%array_class\(([A-Za-z0-9_]+)[\s]*,[\s]*([A-Za-z0-9_]+)\)`)
	typemapRe          = regexp.MustCompile(`%typemap\((in|out)\)[\s]+([A-Za-z0-9_]+[\s]*[\*])`)
	pointerFunctionsRe = regexp.MustCompile(`%pointer_functions\(([A-Za-z0-9_]+)[\s]*,[\s]*([A-Za-z0-9_]+)\)`)
)

// ArrayTypemap is a SWIG %array_class proxy and the classes whose typemaps use it
type ArrayTypemap struct {
	DataType  string
	ArrayType string
	Classes   []string
}

// Typemaps holds the pointer proxies declared by SWIG interface files
type Typemaps struct {
	// data type -> array proxy, plus declaration order
	arrays     map[string]*ArrayTypemap
	arrayOrder []string
	// class -> data type -> pointer proxy, plus class order
	pointers   map[string]map[string]string
	classOrder []string
}

// NewTypemaps creates an empty typemap set
func NewTypemaps() *Typemaps {
	return &Typemaps{
		arrays:   make(map[string]*ArrayTypemap),
		pointers: make(map[string]map[string]string),
	}
}

// AddArrayClass registers %array_class(from, to)
func (t *Typemaps) AddArrayClass(from, to string) {
	if _, ok := t.arrays[from]; !ok {
		t.arrayOrder = append(t.arrayOrder, from)
	}
	t.arrays[from] = &ArrayTypemap{DataType: from, ArrayType: to}
}

// AddPointerFunctions registers %pointer_functions(from, to) for class
func (t *Typemaps) AddPointerFunctions(class, from, to string) {
	if _, ok := t.pointers[class]; !ok {
		t.pointers[class] = make(map[string]string)
		t.classOrder = append(t.classOrder, class)
	}
	t.pointers[class][from] = to
}

// AddTypemap registers a pointer typemap of class; it only matters when an array class
// exists for the pointed-to type
func (t *Typemaps) AddTypemap(class, pointerType string) bool {
	data := PointerDataType(strings.TrimSpace(pointerType))
	array, ok := t.arrays[data]
	if !ok {
		return false
	}
	array.Classes = append(array.Classes, class)
	return true
}

// ArrayType returns the array proxy replacing data* inside class
func (t *Typemaps) ArrayType(data, class string) (string, bool) {
	array, ok := t.arrays[data]
	if !ok || !contains(array.Classes, class) {
		return "", false
	}
	return array.ArrayType, true
}

// PointerType returns the pointer proxy replacing data* inside class
func (t *Typemaps) PointerType(data, class string) (string, bool) {
	to, ok := t.pointers[class][data]
	return to, ok
}

// HasProxy reports whether proxy is an array or pointer type usable by class
func (t *Typemaps) HasProxy(proxy, class string) bool {
	for _, array := range t.arrays {
		if array.ArrayType == proxy && contains(array.Classes, class) {
			return true
		}
	}
	for _, to := range t.pointers[class] {
		if to == proxy {
			return true
		}
	}
	return false
}

// Arrays returns the array proxies in declaration order
func (t *Typemaps) Arrays() []ArrayTypemap {
	result := make([]ArrayTypemap, 0, len(t.arrayOrder))
	for _, data := range t.arrayOrder {
		result = append(result, *t.arrays[data])
	}
	return result
}

// PointerProxy is a %pointer_functions proxy type
type PointerProxy struct {
	DataType    string
	PointerType string
}

// Pointers returns the distinct pointer proxies, ordered by class then data type
func (t *Typemaps) Pointers() []PointerProxy {
	seen := make(map[string]bool)
	var result []PointerProxy
	for _, class := range t.classOrder {
		dataTypes := make([]string, 0, len(t.pointers[class]))
		for data := range t.pointers[class] {
			dataTypes = append(dataTypes, data)
		}
		sort.Strings(dataTypes)
		for _, data := range dataTypes {
			to := t.pointers[class][data]
			if seen[to] {
				continue
			}
			seen[to] = true
			result = append(result, PointerProxy{DataType: data, PointerType: to})
		}
	}
	return result
}

// LoadTypemaps reads SWIG directives below dir. Top-level *.i files contribute
// %array_class directives; each class subdirectory contributes the first js*.i file's
// %typemap and %pointer_functions directives.
func LoadTypemaps(dir string) (*Typemaps, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read typemaps directory %s: %w", dir, err)
	}

	t := NewTypemaps()
	directives := make(map[string]string)
	var classes []string

	for _, entry := range entries {
		path := filepath.Join(dir, entry.Name())
		if entry.IsDir() {
			files, err := os.ReadDir(path)
			if err != nil {
				return nil, fmt.Errorf("failed to read typemaps directory %s: %w", path, err)
			}
			for _, f := range files {
				if !f.IsDir() && filepath.Ext(f.Name()) == ".i" && strings.HasPrefix(f.Name(), "js") {
					directives[entry.Name()] = filepath.Join(path, f.Name())
					classes = append(classes, entry.Name())
					break
				}
			}
			continue
		}
		if filepath.Ext(entry.Name()) != ".i" {
			continue
		}
		content, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", path, err)
		}
		t.parseArrayClasses(entry.Name(), string(content))
	}

	for _, class := range classes {
		path := directives[class]
		content, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", path, err)
		}
		t.parseClassDirectives(class, path, string(content))
	}

	return t, nil
}

func (t *Typemaps) parseArrayClasses(filename, content string) {
	for _, line := range strings.Split(content, "\n") {
		if !strings.HasPrefix(line, "%array_class") {
			continue
		}
		m := arrayClassRe.FindStringSubmatch(line)
		if m == nil {
			log.Warningf("Incorrectly parsed array_class from %s: %s", filename, line)
			continue
		}
		t.AddArrayClass(m[1], m[2])
	}
}

func (t *Typemaps) parseClassDirectives(class, filename, content string) {
	for _, line := range strings.Split(content, "\n") {
		switch {
		case strings.HasPrefix(line, "%typemap"):
			m := typemapRe.FindStringSubmatch(line)
			if m == nil {
				log.Infof("Ignored typemap from %s: %s (only considering in/out typemaps of pointer types)", filename, strings.Replace(line, "{", "", 1))
				continue
			}
			if !t.AddTypemap(class, m[2]) {
				log.Infof("Ignored typemap from %s: %s (no %%array_class directive found for %s)", filename, strings.Replace(line, "{", "", 1), PointerDataType(m[2]))
			}
		case strings.HasPrefix(line, "%pointer_functions"):
			if m := pointerFunctionsRe.FindStringSubmatch(line); m != nil {
				t.AddPointerFunctions(class, m[1], m[2])
			}
		}
	}
}

func contains(list []string, s string) bool {
	for _, item := range list {
		if item == s {
			return true
		}
	}
	return false
}
