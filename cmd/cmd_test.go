package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const testNamespaceXML = `<doxygen>
  <compounddef id="namespacemod" kind="namespace">
    <compoundname>mod</compoundname>
    <innerclass refid="classmod_1_1Gpio" prot="public">mod::Gpio</innerclass>
    <sectiondef kind="func">
      <memberdef kind="function" id="f1">
        <type>int</type>
        <name>init</name>
        <briefdescription><para>Initializes the library</para></briefdescription>
      </memberdef>
    </sectiondef>
  </compounddef>
</doxygen>`

const testGpioXML = `<doxygen>
  <compounddef id="classmod_1_1Gpio" kind="class">
    <compoundname>mod::Gpio</compoundname>
    <briefdescription><para>General purpose IO</para></briefdescription>
    <sectiondef kind="public-func">
      <memberdef kind="function" id="g1">
        <type>int</type>
        <name>read</name>
      </memberdef>
    </sectiondef>
  </compounddef>
</doxygen>`

func writeInput(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	files := map[string]string{
		"namespacemod.xml":     testNamespaceXML,
		"classmod_1_1Gpio.xml": testGpioXML,
	}
	for name, content := range files {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0644); err != nil {
			t.Fatal(err)
		}
	}
	return dir
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(append(args, "--quiet"))
	err := rootCmd.Execute()
	return out.String(), err
}

func TestGenerateCommand(t *testing.T) {
	input := writeInput(t)
	outdir := t.TempDir()

	out, err := execute(t, "generate", "-m", "mod", "-i", input, "-o", outdir,
		"--formats", "jsdoc,ternjs,yuidoc")
	if err != nil {
		t.Fatalf("generate failed: %v\n%s", err, out)
	}

	for _, rel := range []string{"jsdoc/mod/doc.js", "ternjs/mod/doc.json", "yuidoc/mod/doc.js"} {
		data, err := os.ReadFile(filepath.Join(outdir, filepath.FromSlash(rel)))
		if err != nil {
			t.Errorf("Expected %s to be written: %v", rel, err)
			continue
		}
		if !strings.Contains(string(data), "Gpio") {
			t.Errorf("Expected %s to document Gpio", rel)
		}
	}
	if !strings.Contains(out, "Omitted classes:   0") {
		t.Errorf("Expected summary in output, got:\n%s", out)
	}
}

func TestGenerateRejectsUnknownFormat(t *testing.T) {
	input := writeInput(t)

	_, err := execute(t, "generate", "-m", "mod", "-i", input, "-o", t.TempDir(), "--formats", "pdf")
	if err == nil || !strings.Contains(err.Error(), "invalid configuration") {
		t.Errorf("Expected configuration error, got %v", err)
	}
}

func TestParseCommand(t *testing.T) {
	input := writeInput(t)

	out, err := execute(t, "parse", "-m", "mod", "-i", input)
	if err != nil {
		t.Fatalf("parse failed: %v\n%s", err, out)
	}

	for _, key := range []string{`"MODULE": "mod"`, `"METHODS"`, `"init"`, `"CLASSES"`, `"Gpio"`} {
		if !strings.Contains(out, key) {
			t.Errorf("Expected %s in output, got:\n%s", key, out)
		}
	}
	if strings.Index(out, `"MODULE"`) > strings.Index(out, `"CLASSES"`) {
		t.Error("Expected MODULE before CLASSES")
	}
}

func TestParseMissingModule(t *testing.T) {
	_, err := execute(t, "parse", "-m", "nothing", "-i", t.TempDir())
	if err == nil {
		t.Error("Expected error for missing module XML")
	}
}
