// Package parser turns Doxygen XML documents into ast node trees
package parser

import (
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strings"

	"doxy2js/pkg/ast"
)

// Parser builds ast trees from XML text. Whitespace-only text between elements is dropped.
type Parser struct{}

// New creates a new parser
func New() *Parser {
	return &Parser{}
}

// SyntaxError reports malformed XML with its location
type SyntaxError struct {
	Filename string
	Line     int
	Err      error
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("%s:%d: %v", e.Filename, e.Line, e.Err)
}

func (e *SyntaxError) Unwrap() error {
	return e.Err
}

// Parse parses content into a document whose Root is the top-level element
func (p *Parser) Parse(filename, content string) (*ast.Document, error) {
	dec := xml.NewDecoder(strings.NewReader(content))

	doc := &ast.Document{Filename: filename}
	var stack []*ast.Node

	for {
		tok, err := dec.Token()
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			line, _ := dec.InputPos()
			return nil, &SyntaxError{Filename: filename, Line: line, Err: err}
		}

		switch t := tok.(type) {
		case xml.StartElement:
			line, col := dec.InputPos()
			node := ast.NewNode(t.Name.Local, convertAttrs(t.Attr)...)
			node.Pos = ast.Position{Line: line, Column: col, Offset: int(dec.InputOffset())}
			if len(stack) == 0 {
				if doc.Root != nil {
					return nil, &SyntaxError{Filename: filename, Line: line, Err: errors.New("multiple root elements")}
				}
				doc.Root = node
			} else {
				stack[len(stack)-1].AddChild(node)
			}
			stack = append(stack, node)
		case xml.EndElement:
			if len(stack) > 0 {
				stack = stack[:len(stack)-1]
			}
		case xml.CharData:
			if len(stack) == 0 {
				continue
			}
			text := string(t)
			if strings.TrimSpace(text) == "" {
				continue
			}
			stack[len(stack)-1].AddText(text)
		}
	}

	if doc.Root == nil {
		return nil, &SyntaxError{Filename: filename, Err: errors.New("document contains no root element")}
	}

	return doc, nil
}

func convertAttrs(attrs []xml.Attr) []ast.Attr {
	result := make([]ast.Attr, 0, len(attrs))
	for _, a := range attrs {
		result = append(result, ast.Attr{Name: a.Name.Local, Value: a.Value})
	}
	return result
}
