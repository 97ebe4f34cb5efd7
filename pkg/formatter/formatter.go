// Package formatter writes documentation comment blocks
package formatter

import "strings"

// Tag is one "@name value" line of a comment block
type Tag struct {
	Name  string
	Value string
}

// Comment is a documentation block: free text followed by tags
type Comment struct {
	Text string
	Tags []Tag
}

// NewComment creates a comment with the given description text
func NewComment(text string) *Comment {
	return &Comment{Text: text}
}

// Tag appends a tag whose value is the non-empty parts joined by spaces
func (c *Comment) Tag(name string, parts ...string) *Comment {
	var values []string
	for _, p := range parts {
		if p != "" {
			values = append(values, p)
		}
	}
	c.Tags = append(c.Tags, Tag{Name: name, Value: strings.Join(values, " ")})
	return c
}

// TagIf appends the tag only when cond is true
func (c *Comment) TagIf(cond bool, name string, parts ...string) *Comment {
	if cond {
		c.Tag(name, parts...)
	}
	return c
}

// Formatter renders comment blocks
type Formatter struct {
	indentSize int
}

// New creates a new formatter indenting by two spaces per depth level
func New() *Formatter {
	return &Formatter{indentSize: 2}
}

// FormatComment renders c as a /** ... */ block indented to depth, without a trailing newline
func (f *Formatter) FormatComment(c *Comment, depth int) string {
	var result strings.Builder
	indent := f.getIndent(depth)

	result.WriteString(indent + "/**\n")

	text := strings.Trim(c.Text, "\n")
	if text != "" {
		f.writeLines(&result, indent, text)
		if len(c.Tags) > 0 {
			result.WriteString(indent + " *\n")
		}
	}

	for _, tag := range c.Tags {
		f.writeLines(&result, indent, "@"+strings.TrimRight(tag.Name+" "+tag.Value, " "))
	}

	result.WriteString(indent + " */")
	return result.String()
}

// FormatComments renders the blocks separated by blank lines, ending with a newline
func (f *Formatter) FormatComments(comments []*Comment, depth int) string {
	blocks := make([]string, 0, len(comments))
	for _, c := range comments {
		blocks = append(blocks, f.FormatComment(c, depth))
	}
	if len(blocks) == 0 {
		return ""
	}
	return strings.Join(blocks, "\n\n") + "\n"
}

// writeLines writes each line of text behind the " * " margin. Trailing double spaces are
// markdown line breaks and are kept.
func (f *Formatter) writeLines(result *strings.Builder, indent, text string) {
	for _, line := range strings.Split(text, "\n") {
		if strings.TrimSpace(line) == "" {
			result.WriteString(indent + " *\n")
		} else {
			result.WriteString(indent + " * " + line + "\n")
		}
	}
}

// getIndent returns the indentation string for the given depth
func (f *Formatter) getIndent(depth int) string {
	return strings.Repeat(" ", depth*f.indentSize)
}
