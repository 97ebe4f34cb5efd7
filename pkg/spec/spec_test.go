package spec

import (
	"encoding/json"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestMapOrder(t *testing.T) {
	var m Map[int]
	m.Set("b", 1)
	m.Set("a", 2)
	m.Set("c", 3)
	m.Set("a", 4)

	if diff := cmp.Diff([]string{"b", "a", "c"}, m.Keys()); diff != "" {
		t.Errorf("Keys mismatch (-want +got):\n%s", diff)
	}
	if v, _ := m.Get("a"); v != 4 {
		t.Errorf("Expected replaced value 4, got %d", v)
	}

	m.Delete("b")
	m.Delete("missing")
	if diff := cmp.Diff([]string{"a", "c"}, m.Keys()); diff != "" {
		t.Errorf("Keys after delete mismatch (-want +got):\n%s", diff)
	}
	if m.Len() != 2 {
		t.Errorf("Expected 2 entries, got %d", m.Len())
	}
}

func TestMapFilterVisitsAll(t *testing.T) {
	m := NewMap[int]()
	for i, k := range []string{"a", "b", "c", "d"} {
		m.Set(k, i)
	}

	var visited []string
	kept := m.Filter(func(k string, v int) bool {
		visited = append(visited, k)
		return v%2 == 1
	})

	if diff := cmp.Diff([]string{"a", "b", "c", "d"}, visited); diff != "" {
		t.Errorf("Filter must visit every entry (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"b", "d"}, kept.Keys()); diff != "" {
		t.Errorf("Filter result mismatch (-want +got):\n%s", diff)
	}
	if m.Len() != 4 {
		t.Error("Filter must not modify the source map")
	}
}

func TestMapJSONRoundTripKeepsOrder(t *testing.T) {
	input := `{"zeta":{"type":"Number","description":"z"},"alpha":{"type":"String","description":"a"}}`

	var m Map[Param]
	if err := json.Unmarshal([]byte(input), &m); err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}
	if diff := cmp.Diff([]string{"zeta", "alpha"}, m.Keys()); diff != "" {
		t.Errorf("Decoded key order mismatch (-want +got):\n%s", diff)
	}

	out, err := json.Marshal(m)
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}
	if string(out) != input {
		t.Errorf("Expected %s, got %s", input, out)
	}
}

func TestDecodeObjectRejectsNonObject(t *testing.T) {
	for _, input := range []string{`[1,2]`, `"text"`, `{"a":1`} {
		if _, _, err := DecodeObject([]byte(input)); err == nil {
			t.Errorf("Expected error for %s", input)
		}
	}
}

func TestModelClone(t *testing.T) {
	model := NewModel("mod")
	model.Enums.Set("UP", EnumMember{Type: "Direction"})
	model.EnumsByGroup.Set("Direction", EnumGroup{Members: []string{"UP"}})

	params := NewMap[Param]()
	params.Set("pin", Param{Type: "Number", Description: "pin number"})
	class := NewClass("A pin")
	class.Methods.Set("write", Method{Description: "writes", Params: params})
	model.Classes.Set("Gpio", class)
	model.ClassGroups.Set("io", &ClassGroup{Description: "IO", Classes: []string{"Gpio"}})

	clone := model.Clone()

	clone.Enums.Delete("UP")
	g, _ := clone.EnumsByGroup.Get("Direction")
	g.Members[0] = "DOWN"
	cloneClass := clone.Class("Gpio")
	cloneClass.Description = "changed"
	write, _ := cloneClass.Methods.Get("write")
	write.Params.Delete("pin")
	group, _ := clone.ClassGroups.Get("io")
	group.Classes = append(group.Classes[:0], "Other")

	if !model.Enums.Has("UP") {
		t.Error("Clone shares enums")
	}
	if g, _ := model.EnumsByGroup.Get("Direction"); g.Members[0] != "UP" {
		t.Error("Clone shares enum group members")
	}
	if model.Class("Gpio").Description != "A pin" {
		t.Error("Clone shares classes")
	}
	if w, _ := model.Class("Gpio").Methods.Get("write"); !w.Params.Has("pin") {
		t.Error("Clone shares method params")
	}
	if g, _ := model.ClassGroups.Get("io"); g.Classes[0] != "Gpio" {
		t.Error("Clone shares class group members")
	}
}

func TestModelJSONKeys(t *testing.T) {
	model := NewModel("mod")
	model.Methods.Set("init", Method{Description: "Starts", Params: NewMap[Param]()})

	out, err := model.JSON()
	if err != nil {
		t.Fatalf("JSON failed: %v", err)
	}

	keys, _, err := DecodeObject(out)
	if err != nil {
		t.Fatalf("DecodeObject failed: %v", err)
	}
	expected := []string{"MODULE", "ENUMS", "ENUMS_BY_GROUP", "METHODS", "CLASSES", "CLASSGROUPS"}
	if diff := cmp.Diff(expected, keys); diff != "" {
		t.Errorf("Top-level keys mismatch (-want +got):\n%s", diff)
	}
}

func TestReturnSpecJSON(t *testing.T) {
	tests := []struct {
		name     string
		ret      ReturnSpec
		expected string
	}{
		{"void", ReturnSpec{}, `{}`},
		{"undocumented", ReturnSpec{Type: "Number"}, `{"type":"Number","description":""}`},
		{"documented", ReturnSpec{Type: "Boolean", Description: "high"}, `{"type":"Boolean","description":"high"}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := json.Marshal(tt.ret)
			if err != nil {
				t.Fatal(err)
			}
			if string(out) != tt.expected {
				t.Errorf("Expected %s, got %s", tt.expected, out)
			}
		})
	}
}

func TestUniqueName(t *testing.T) {
	methods := NewMap[Method]()
	methods.Set("read", Method{})
	methods.Set("read!", Method{})

	name := UniqueName("read", methods)
	if name != "read!!" {
		t.Errorf("Expected read!!, got %s", name)
	}
	if DisplayName(name) != "read" {
		t.Errorf("Expected display name read, got %s", DisplayName(name))
	}
	if UniqueName("write", methods) != "write" {
		t.Error("Free name must be kept")
	}
}
