package generator

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/google/go-cmp/cmp"

	"doxy2js/pkg/spec"
)

func testModel() *spec.Model {
	model := spec.NewModel("mod")
	model.Enums.Set("UP", spec.EnumMember{Type: "Direction", Description: "Upwards"})
	model.EnumsByGroup.Set("Direction", spec.EnumGroup{Members: []string{"UP"}})

	addParams := spec.NewMap[spec.Param]()
	addParams.Set("a", spec.Param{Type: "Number", Description: "first operand"})
	addParams.Set("b", spec.Param{Type: "Number", Description: "second operand"})
	model.Methods.Set("add", spec.Method{
		Description: "Adds two numbers",
		Params:      addParams,
		Return:      spec.ReturnSpec{Type: "Number", Description: "the sum"},
	})

	gpio := spec.NewClass("General purpose IO")
	gpio.Group = "io"
	ctorParams := spec.NewMap[spec.Param]()
	ctorParams.Set("pin", spec.Param{Type: "Number", Description: "pin number"})
	gpio.Methods.Set("Gpio", spec.Method{Description: "Creates a pin", Params: ctorParams})
	gpio.Methods.Set("read", spec.Method{
		Description: "Reads the level",
		Params:      spec.NewMap[spec.Param](),
		Return:      spec.ReturnSpec{Type: "Boolean", Description: "high"},
	})
	readCount := spec.NewMap[spec.Param]()
	readCount.Set("count", spec.Param{Type: "Number", Description: "samples"})
	gpio.Methods.Set("read!", spec.Method{
		Description: "Reads several levels",
		Params:      readCount,
		Return:      spec.ReturnSpec{Type: "String", Description: "levels"},
	})
	dirParams := spec.NewMap[spec.Param]()
	dirParams.Set("dir", spec.Param{Type: "Direction", Description: "direction"})
	gpio.Methods.Set("setDirection", spec.Method{Description: "Sets the direction", Params: dirParams})
	gpio.Variables.Set("pin", spec.Variable{Type: "Number", Description: "The pin"})
	gpio.Enums.Set("MODE_IN", spec.EnumMember{Type: "Mode", Description: "Input"})
	gpio.EnumsByGroup.Set("Mode", spec.EnumGroup{Members: []string{"MODE_IN"}})
	model.Classes.Set("Gpio", gpio)

	led := spec.NewClass("A light")
	led.Parent = "Gpio"
	led.Methods.Set("self", spec.Method{
		Params: spec.NewMap[spec.Param](),
		Return: spec.ReturnSpec{Type: "Led", Description: "this light"},
	})
	model.Classes.Set("Led", led)

	model.ClassGroups.Set("io", &spec.ClassGroup{Description: "IO classes", Classes: []string{"Gpio"}})
	return model
}

func generate(t *testing.T, g Generator, model *spec.Model) string {
	t.Helper()
	data, err := g.Generate(model)
	if err != nil {
		t.Fatalf("%s failed: %v", g.Name(), err)
	}
	return string(data)
}

func assertContains(t *testing.T, output string, expected ...string) {
	t.Helper()
	for _, e := range expected {
		if !strings.Contains(output, e) {
			t.Errorf("Expected output to contain %q, got:\n%s", e, output)
		}
	}
}

func TestJSDoc(t *testing.T) {
	out := generate(t, NewJSDoc(), testModel())

	assertContains(t, out,
		"/**\n * @module mod\n */",
		" * Upwards\n *\n * @constant {Direction} UP\n * @memberof mod\n",
		" * Adds two numbers\n *\n * @method add\n * @static\n * @memberof mod\n"+
			" * @param {Number} a first operand\n * @param {Number} b second operand\n * @return {Number} the sum\n",
		" * General purpose IO\n *\n * @class Gpio\n * @memberof mod\n * @param {Number} pin pin number\n",
		" * @class Led\n * @augments Gpio\n",
		" * @member {Number} pin\n * @instance\n * @memberof Gpio\n",
		" * @constant {Mode} MODE_IN\n * @memberof Gpio\n",
		" * @method setDirection\n * @instance\n * @memberof Gpio\n * @param {Direction} dir direction\n */",
		" * Reads several levels\n *\n * @method read\n",
	)
	if strings.Contains(out, "read!") {
		t.Error("Overload markers must not leak into the output")
	}
	if strings.Contains(out, "@method Gpio") {
		t.Error("Constructor must be folded into the class block")
	}
}

func TestTern(t *testing.T) {
	out := generate(t, NewTern(), testModel())

	keys, values, err := spec.DecodeObject([]byte(out))
	if err != nil {
		t.Fatalf("Invalid JSON: %v", err)
	}
	if diff := cmp.Diff([]string{"!name", "!define", "mod"}, keys); diff != "" {
		t.Errorf("Root keys mismatch (-want +got):\n%s", diff)
	}

	var module struct {
		UP   string `json:"UP"`
		Gpio struct {
			Type      string         `json:"!type"`
			Doc       string         `json:"!doc"`
			ModeIn    string         `json:"MODE_IN"`
			Prototype map[string]any `json:"prototype"`
		}
		Led struct {
			Prototype map[string]any `json:"prototype"`
		}
	}
	if err := json.Unmarshal(values["mod"], &module); err != nil {
		t.Fatalf("Unexpected module shape: %v", err)
	}
	var members map[string]json.RawMessage
	if err := json.Unmarshal(values["mod"], &members); err != nil {
		t.Fatal(err)
	}
	var add map[string]string
	if err := json.Unmarshal(members["add"], &add); err != nil {
		t.Fatal(err)
	}

	if module.UP != "Enum Direction" {
		t.Errorf("Unexpected enum %q", module.UP)
	}
	if add["!type"] != "fn(a: number, b: number) -> number" || add["!doc"] != "Adds two numbers" {
		t.Errorf("Unexpected method %v", add)
	}
	if module.Gpio.Type != "fn(pin: number)" || module.Gpio.Doc != "General purpose IO" {
		t.Errorf("Unexpected constructor %q %q", module.Gpio.Type, module.Gpio.Doc)
	}
	if module.Gpio.ModeIn != "Enum Mode" {
		t.Errorf("Unexpected class enum %q", module.Gpio.ModeIn)
	}

	read, _ := module.Gpio.Prototype["read"].(map[string]any)
	if read["!type"] != "fn() -> bool" {
		t.Errorf("Expected first overload only, got %v", read)
	}
	dir, _ := module.Gpio.Prototype["setDirection"].(map[string]any)
	if dir["!type"] != "fn(dir: number)" {
		t.Errorf("Expected enum parameter as number, got %v", dir)
	}
	pin, _ := module.Gpio.Prototype["pin"].(map[string]any)
	if pin["!type"] != "number" {
		t.Errorf("Unexpected variable %v", pin)
	}
	if module.Led.Prototype["!proto"] != "mod.Gpio.prototype" {
		t.Errorf("Unexpected !proto %v", module.Led.Prototype["!proto"])
	}
	self, _ := module.Led.Prototype["self"].(map[string]any)
	if self["!type"] != "fn() -> +mod.Led" {
		t.Errorf("Unexpected class return %v", self)
	}
}

func TestYUIDoc(t *testing.T) {
	out := generate(t, NewYUIDoc(), testModel())

	assertContains(t, out,
		"/**\n * @module mod\n */",
		" * @class common\n * @module mod\n",
		" * @method add\n * @static\n * @for common\n",
		" * Upwards\n *\n * @property UP\n * @type Direction\n * @static\n * @final\n * @for common\n",
		" * IO classes\n *\n * @module io\n */",
		" * @class Gpio\n * @module io\n * @constructor\n * @param {Number} pin pin number\n",
		" * @property pin\n * @type Number\n * @for Gpio\n",
		" * @method read\n * @for Gpio\n * @return {Boolean} high\n",
		" * @class Led\n * @extends Gpio\n * @module mod\n",
	)
	if strings.Count(out, "@class Gpio") != 1 {
		t.Error("Each class must be emitted once")
	}
	if strings.Index(out, "@module io") > strings.Index(out, "@class Gpio") {
		t.Error("Group module must precede its classes")
	}
}

func TestGeneratorsAreDeterministic(t *testing.T) {
	model := testModel()
	before, _ := model.JSON()

	for _, format := range Formats {
		g, err := New(format)
		if err != nil {
			t.Fatalf("New(%s) failed: %v", format, err)
		}
		first := generate(t, g, model)

		outputs := make([]string, 8)
		var wg sync.WaitGroup
		for i := range outputs {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				data, _ := g.Generate(model)
				outputs[i] = string(data)
			}(i)
		}
		wg.Wait()

		for i, out := range outputs {
			if out != first {
				t.Errorf("%s output %d differs from the first run", format, i)
			}
		}
	}

	after, _ := model.JSON()
	if !bytes.Equal(before, after) {
		t.Error("Generators must not modify the model")
	}
}

func TestNew(t *testing.T) {
	for _, name := range []string{"jsdoc", "JSDoc", "ternjs", "tern", "yuidoc"} {
		if _, err := New(name); err != nil {
			t.Errorf("New(%s) failed: %v", name, err)
		}
	}
	if _, err := New("markdown"); err == nil {
		t.Error("Expected error for unsupported format")
	}
}

func TestRun(t *testing.T) {
	outdir := t.TempDir()
	model := testModel()

	results := Run(model, outdir, []string{"jsdoc", "bogus", "ternjs", "yuidoc"})
	if len(results) != 4 {
		t.Fatalf("Expected 4 results, got %d", len(results))
	}

	var genErr *Error
	if !errors.As(results[1].Err, &genErr) || genErr.Format != "bogus" {
		t.Errorf("Expected generator error for bogus, got %v", results[1].Err)
	}

	expected := map[string]string{
		"jsdoc":  filepath.Join(outdir, "jsdoc", "mod", "doc.js"),
		"ternjs": filepath.Join(outdir, "ternjs", "mod", "doc.json"),
		"yuidoc": filepath.Join(outdir, "yuidoc", "mod", "doc.js"),
	}
	for _, r := range results {
		path, ok := expected[r.Format]
		if !ok {
			continue
		}
		if r.Err != nil {
			t.Errorf("%s failed: %v", r.Format, r.Err)
			continue
		}
		if r.Path != path {
			t.Errorf("Expected %s at %s, got %s", r.Format, path, r.Path)
		}
		data, err := os.ReadFile(path)
		if err != nil {
			t.Errorf("Output for %s not written: %v", r.Format, err)
			continue
		}
		g, _ := New(r.Format)
		if want := generate(t, g, model); string(data) != want {
			t.Errorf("Written %s output differs from Generate", r.Format)
		}
	}
}

func TestRunDuplicateFormats(t *testing.T) {
	outdir := t.TempDir()

	results := Run(testModel(), outdir, []string{"jsdoc", "JSDoc", "tern", "ternjs", "jsdoc"})
	var formats []string
	for _, r := range results {
		if r.Err != nil {
			t.Errorf("%s failed: %v", r.Format, r.Err)
		}
		formats = append(formats, r.Format)
	}
	if diff := cmp.Diff([]string{"jsdoc", "tern"}, formats); diff != "" {
		t.Errorf("Formats mismatch (-want +got):\n%s", diff)
	}
}
