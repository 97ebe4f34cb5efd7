package assemble

import (
	"sync"

	"doxy2js/pkg/document"
	"doxy2js/pkg/extract"
	"doxy2js/pkg/parser"
	"doxy2js/pkg/spec"
)

type classResult struct {
	name  string
	class *spec.Class
	diag  extract.Diagnostics
	err   *ClassError
}

// extractClasses reads and extracts every referenced class concurrently. Results keep the
// order of refs; a failing class yields a result carrying its error and does not affect
// the others.
func extractClasses(p *parser.Parser, x *extract.Extractor, opts Options, refs []document.Ref) []classResult {
	results := make([]classResult, len(refs))

	var wg sync.WaitGroup
	for i, ref := range refs {
		wg.Add(1)
		go func(i int, ref document.Ref) {
			defer wg.Done()
			results[i] = extractClass(p, x, opts, ref)
		}(i, ref)
	}
	wg.Wait()

	return results
}

func extractClass(p *parser.Parser, x *extract.Extractor, opts Options, ref document.Ref) classResult {
	doc, err := document.NewFromFile(p, opts.ClassFile(ref.RefID))
	if err != nil {
		return classResult{err: &ClassError{RefID: ref.RefID, Class: ref.Name, Err: err}}
	}

	name := doc.Name(opts.Module)
	log.Debugf("extracting class %s from %s", name, doc.GetFilename())
	class, diag, err := x.Class(doc.Compound(), name)
	if err != nil {
		return classResult{diag: diag, err: &ClassError{RefID: ref.RefID, Class: name, Err: err}}
	}
	return classResult{name: name, class: class, diag: diag}
}
