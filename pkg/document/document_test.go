package document

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	"doxy2js/pkg/parser"
)

const namespaceXML = `<?xml version='1.0' encoding='UTF-8' standalone='no'?>
<doxygen version="1.8.9">
  <compounddef id="namespacemraa" kind="namespace">
    <compoundname>mraa</compoundname>
    <innerclass refid="classmraa_1_1Gpio" prot="public">mraa::Gpio</innerclass>
    <innerclass refid="classmraa_1_1I2c" prot="public">mraa::I2c</innerclass>
  </compounddef>
</doxygen>`

const groupXML = `<doxygen>
  <compounddef id="group__io" kind="group">
    <compoundname>io</compoundname>
    <innergroup refid="group__gpio">gpio</innergroup>
  </compounddef>
</doxygen>`

func TestNewFromContent(t *testing.T) {
	doc, err := NewFromContent(parser.New(), "namespacemraa.xml", namespaceXML)
	if err != nil {
		t.Fatalf("Failed to create document: %v", err)
	}

	if doc.GetFilename() != "namespacemraa.xml" {
		t.Errorf("Unexpected filename %s", doc.GetFilename())
	}
	if doc.Kind() != "namespace" {
		t.Errorf("Expected kind namespace, got %s", doc.Kind())
	}
	if doc.QualifiedName() != "mraa" {
		t.Errorf("Expected name mraa, got %s", doc.QualifiedName())
	}

	expected := []Ref{
		{RefID: "classmraa_1_1Gpio", Name: "mraa::Gpio"},
		{RefID: "classmraa_1_1I2c", Name: "mraa::I2c"},
	}
	if diff := cmp.Diff(expected, doc.InnerClasses()); diff != "" {
		t.Errorf("InnerClasses mismatch (-want +got):\n%s", diff)
	}
	if len(doc.InnerGroups()) != 0 {
		t.Errorf("Expected no inner groups, got %v", doc.InnerGroups())
	}
}

func TestGroupDocument(t *testing.T) {
	doc, err := NewFromContent(parser.New(), "group__io.xml", groupXML)
	if err != nil {
		t.Fatalf("Failed to create document: %v", err)
	}
	if doc.Kind() != "group" {
		t.Errorf("Expected kind group, got %s", doc.Kind())
	}
	if diff := cmp.Diff([]Ref{{RefID: "group__gpio", Name: "gpio"}}, doc.InnerGroups()); diff != "" {
		t.Errorf("InnerGroups mismatch (-want +got):\n%s", diff)
	}
}

func TestNewFromContentWithoutCompound(t *testing.T) {
	if _, err := NewFromContent(parser.New(), "empty.xml", "<doxygen></doxygen>"); err == nil {
		t.Error("Expected error for document without compounddef")
	}
	if _, err := NewFromContent(parser.New(), "broken.xml", "<doxygen>"); err == nil {
		t.Error("Expected error for malformed XML")
	}
}

func TestNewFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "namespacemraa.xml")
	if err := os.WriteFile(path, []byte(namespaceXML), 0644); err != nil {
		t.Fatal(err)
	}

	doc, err := NewFromFile(parser.New(), path)
	if err != nil {
		t.Fatalf("Failed to read document: %v", err)
	}
	if doc.Name("mraa") != "mraa" {
		t.Errorf("Unexpected name %s", doc.Name("mraa"))
	}

	if _, err := NewFromFile(parser.New(), filepath.Join(t.TempDir(), "missing.xml")); err == nil {
		t.Error("Expected error for missing file")
	}
}

func TestStripModule(t *testing.T) {
	tests := []struct {
		name     string
		module   string
		expected string
	}{
		{"mraa::Gpio", "mraa", "Gpio"},
		{"upm::mraa::Gpio", "mraa", "upm::Gpio"},
		{"Gpio", "mraa", "Gpio"},
		{"mraa::Gpio", "", "mraa::Gpio"},
	}
	for _, tt := range tests {
		if got := StripModule(tt.name, tt.module); got != tt.expected {
			t.Errorf("StripModule(%q, %q) = %q, want %q", tt.name, tt.module, got, tt.expected)
		}
	}
}
