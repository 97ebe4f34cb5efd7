// Package assemble runs the documentation pipeline: it reads a module's Doxygen XML,
// extracts every class concurrently, attaches class groups and SWIG pointer classes,
// applies customizations and validates the result.
package assemble

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"sync"

	"doxy2js/pkg/customize"
	"doxy2js/pkg/document"
	"doxy2js/pkg/extract"
	"doxy2js/pkg/parser"
	"doxy2js/pkg/spec"
	"doxy2js/pkg/typemap"
	"doxy2js/pkg/validate"
)

// TypesFile is the optional shared type definitions compound
const TypesFile = "types_8h.xml"

// Options configures one assembly run
type Options struct {
	Module     string
	InputDir   string
	Custom     string         // Customization JSON, optional
	Typemaps   string         // SWIG typemaps directory, optional
	ImageDir   string         // Image link prefix, "images" when empty
	Strict     bool           // Drop members with invalid types
	EnumPrefix *regexp.Regexp // Stripped from enum member names, ^<MODULE>_ when nil
	AllowTypes []string       // Opaque types accepted by validation, defaults when nil
	Link       extract.LinkFunc
}

// ModuleFile returns the path of the module's namespace compound
func (o Options) ModuleFile() string {
	return filepath.Join(o.InputDir, "namespace"+o.Module+".xml")
}

// ClassFile returns the path of the compound with the given reference id
func (o Options) ClassFile(refID string) string {
	return filepath.Join(o.InputDir, refID+".xml")
}

// DefaultEnumPrefix matches the conventional upper-cased module prefix of enum members
func DefaultEnumPrefix(module string) *regexp.Regexp {
	return regexp.MustCompile("^" + regexp.QuoteMeta(strings.ToUpper(module)) + "_")
}

// Report collects everything that was left out or looked suspicious during a run
type Report struct {
	ClassErrors   []*ClassError
	Extraction    extract.Diagnostics
	Customization []error
	InvalidTypes  []*validate.InvalidTypeError
	Warnings      []string
}

func (r *Report) warn(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	log.Warning(msg)
	r.Warnings = append(r.Warnings, msg)
}

// Assemble builds the validated model for opts.Module. Only a missing or malformed module
// compound, or an unreadable input or typemaps directory, fails the run; everything else is
// logged, recorded in the report and left out of the model.
func Assemble(opts Options) (*spec.Model, *Report, error) {
	if opts.Module == "" {
		return nil, nil, errors.New("no module given")
	}
	if opts.EnumPrefix == nil {
		opts.EnumPrefix = DefaultEnumPrefix(opts.Module)
	}

	report := &Report{}
	p := parser.New()

	var typemaps *typemap.Typemaps
	if opts.Typemaps != "" {
		var err error
		if typemaps, err = typemap.LoadTypemaps(opts.Typemaps); err != nil {
			return nil, nil, err
		}
	}

	module, types, err := loadModule(p, opts)
	if err != nil {
		return nil, nil, err
	}

	refs := module.InnerClasses()
	classNames := make([]string, len(refs))
	for i, ref := range refs {
		classNames[i] = document.StripModule(ref.Name, opts.Module)
	}

	resolver := typemap.NewResolver(typemap.New(), typemaps, classNames)
	xopts := []extract.Option{extract.WithEnumPrefix(opts.EnumPrefix)}
	if opts.ImageDir != "" {
		xopts = append(xopts, extract.WithImageDir(opts.ImageDir))
	}
	if opts.Link != nil {
		xopts = append(xopts, extract.WithLinkFunc(opts.Link))
	}
	x := extract.New(resolver, xopts...)

	model := spec.NewModel(opts.Module)
	for _, doc := range []*document.Document{types, module} {
		if doc == nil {
			continue
		}
		enums, err := x.Enums(doc.Compound())
		if err != nil {
			return nil, nil, fmt.Errorf("failed to extract enums from %s: %w", doc.GetFilename(), err)
		}
		groups, err := x.EnumGroups(doc.Compound())
		if err != nil {
			return nil, nil, fmt.Errorf("failed to extract enums from %s: %w", doc.GetFilename(), err)
		}
		model.Enums.Merge(enums)
		model.EnumsByGroup.Merge(groups)
	}

	methods, diag := x.Methods(module.Compound(), "")
	model.Methods = methods
	report.Extraction.Merge(diag)

	var groups []*classGroup
	var groupErr error
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		groups, groupErr = loadGroups(p, x, opts)
	}()
	results := extractClasses(p, x, opts, refs)
	wg.Wait()
	if groupErr != nil {
		return nil, nil, groupErr
	}

	for _, r := range results {
		report.Extraction.Merge(r.diag)
		if r.err != nil {
			log.Errorf("%s", r.err)
			report.ClassErrors = append(report.ClassErrors, r.err)
			continue
		}
		model.Classes.Set(r.name, r.class)
	}
	for _, f := range report.Extraction.Failures {
		log.Errorf("%s", f)
	}
	for _, w := range report.Extraction.Warnings {
		log.Warning(w.String())
	}

	model.Classes.Each(func(name string, class *spec.Class) {
		if class.Parent != "" && !model.Classes.Has(class.Parent) {
			report.warn("Class %s has unknown parent class %s", name, class.Parent)
		}
	})

	attachGroups(model, groups, report)

	if opts.Custom != "" {
		applyCustomizations(model, opts.Custom, report)
	} else {
		log.Info("No customizations given.")
	}

	if typemaps != nil {
		addPointerClasses(model, typemaps, resolver)
	}

	vopts := []validate.Option{validate.WithStrict(opts.Strict)}
	if opts.AllowTypes != nil {
		vopts = append(vopts, validate.WithAllowTypes(opts.AllowTypes))
	}
	report.InvalidTypes = validate.New(resolver, vopts...).Validate(model)

	log.Infof("assembled module %s: %d classes, %d methods, %d enums",
		model.Module, model.Classes.Len(), model.Methods.Len(), model.Enums.Len())
	return model, report, nil
}

// loadModule reads the module compound and the optional types compound concurrently
func loadModule(p *parser.Parser, opts Options) (*document.Document, *document.Document, error) {
	var module, types *document.Document
	var moduleErr, typesErr error

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		module, moduleErr = document.NewFromFile(p, opts.ModuleFile())
	}()
	go func() {
		defer wg.Done()
		path := filepath.Join(opts.InputDir, TypesFile)
		if _, err := os.Stat(path); err != nil {
			return
		}
		types, typesErr = document.NewFromFile(p, path)
	}()
	wg.Wait()

	if moduleErr != nil {
		return nil, nil, fmt.Errorf("failed to load module %s: %w", opts.Module, moduleErr)
	}
	if typesErr != nil {
		return nil, nil, fmt.Errorf("failed to load shared types: %w", typesErr)
	}
	return module, types, nil
}

func applyCustomizations(model *spec.Model, path string, report *Report) {
	if _, err := os.Stat(path); err != nil {
		report.warn("No such customization file exists: %s", path)
		return
	}
	c, err := customize.Load(path)
	if err != nil {
		report.warn("invalid customization file, ignored: %s", err)
		return
	}
	report.Customization = customize.Apply(model, c)
}
