// Package generator renders a documentation model as JSDoc, Tern or YUIDoc text
package generator

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"doxy2js/pkg/spec"
)

// Generator renders a model in one documentation format. Generate must not keep or
// modify the model.
type Generator interface {
	// Name returns the format name, which is also the output subdirectory
	Name() string

	// Filename returns the name of the rendered file
	Filename() string

	// Generate renders the model
	Generate(model *spec.Model) ([]byte, error)
}

// Formats lists the supported format names
var Formats = []string{"jsdoc", "ternjs", "yuidoc"}

// New creates the generator for a format name
func New(format string) (Generator, error) {
	switch strings.ToLower(format) {
	case "jsdoc":
		return NewJSDoc(), nil
	case "ternjs", "tern":
		return NewTern(), nil
	case "yuidoc":
		return NewYUIDoc(), nil
	default:
		return nil, fmt.Errorf("unsupported format: %s", format)
	}
}

// Error reports a failed generator run
type Error struct {
	Format string
	Err    error
}

func (e *Error) Error() string {
	return e.Format + ": " + e.Err.Error()
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Result is the outcome of one format
type Result struct {
	Format string
	Path   string
	Err    error
}

// OutputPath returns where a generator's file for module is written below outdir
func OutputPath(outdir, module string, g Generator) string {
	return filepath.Join(outdir, g.Name(), module, g.Filename())
}

// Run renders every format concurrently, each on its own copy of model, and writes the
// files below outdir. Results keep the order of formats; one failure does not stop the
// others. A format requested more than once, under any alias, is rendered once.
func Run(model *spec.Model, outdir string, formats []string) []Result {
	formats = distinctFormats(formats)
	results := make([]Result, len(formats))

	var wg sync.WaitGroup
	for i, format := range formats {
		wg.Add(1)
		go func(i int, format string) {
			defer wg.Done()
			results[i] = run(model.Clone(), outdir, format)
		}(i, format)
	}
	wg.Wait()

	return results
}

func distinctFormats(formats []string) []string {
	seen := make(map[string]bool)
	var result []string
	for _, format := range formats {
		key := strings.ToLower(format)
		if g, err := New(format); err == nil {
			key = g.Name()
		}
		if seen[key] {
			log.Warningf("format %s is requested more than once", format)
			continue
		}
		seen[key] = true
		result = append(result, format)
	}
	return result
}

func run(model *spec.Model, outdir, format string) Result {
	result := Result{Format: format}

	g, err := New(format)
	if err != nil {
		result.Err = &Error{Format: format, Err: err}
		return result
	}

	data, err := g.Generate(model)
	if err != nil {
		result.Err = &Error{Format: format, Err: err}
		return result
	}

	result.Path = OutputPath(outdir, model.Module, g)
	if err := os.MkdirAll(filepath.Dir(result.Path), 0755); err != nil {
		result.Err = &Error{Format: format, Err: fmt.Errorf("failed to create output directory: %w", err)}
		return result
	}
	if err := os.WriteFile(result.Path, data, 0644); err != nil {
		result.Err = &Error{Format: format, Err: fmt.Errorf("failed to write %s: %w", result.Path, err)}
		return result
	}

	log.Infof("wrote %s documentation to %s", g.Name(), result.Path)
	return result
}
