package extract

import (
	"path"
	"strings"

	"doxy2js/pkg/ast"
)

// LinkFunc renders the flattened text of a <ref> node
type LinkFunc func(text string, ref *ast.Node) string

// PlainLink keeps the referenced text followed by a space
func PlainLink(text string, _ *ast.Node) string {
	return text + " "
}

// Flattener renders Doxygen description markup as a single markdown string
type Flattener struct {
	ImageDir string
	Link     LinkFunc
}

// NewFlattener creates a flattener with plain links
func NewFlattener(imageDir string) *Flattener {
	return &Flattener{ImageDir: imageDir, Link: PlainLink}
}

// Flatten renders the children of n. A nil node flattens to "".
func (f *Flattener) Flatten(n *ast.Node) (string, error) {
	if n == nil {
		return "", nil
	}
	text, err := f.flatten(n)
	if err != nil {
		return "", err
	}
	return strings.TrimRight(text, " \t\n"), nil
}

// inner renders a nested element's children trimmed on both sides
func (f *Flattener) inner(n *ast.Node) (string, error) {
	text, err := f.flatten(n)
	return strings.TrimSpace(text), err
}

func (f *Flattener) flatten(n *ast.Node) (string, error) {
	var b strings.Builder

	for _, child := range n.Children {
		if child.IsText() {
			b.WriteString(strings.TrimSpace(child.Text))
			b.WriteString(" ")
			continue
		}

		elem := child.Node
		switch elem.Name {
		case "parameterlist", "simplesect":
			// documented separately as params/return
		case "programlisting", "htmlonly":
			// no rendering target
		case "para":
			text, err := f.inner(elem)
			if err != nil {
				return "", err
			}
			b.WriteString(text + "  \n")
		case "ref":
			text, err := f.inner(elem)
			if err != nil {
				return "", err
			}
			link := f.Link
			if link == nil {
				link = PlainLink
			}
			b.WriteString(link(text, elem))
		case "itemizedlist":
			text, err := f.inner(elem)
			if err != nil {
				return "", err
			}
			b.WriteString("\n" + text + "\n")
		case "listitem":
			text, err := f.inner(elem)
			if err != nil {
				return "", err
			}
			b.WriteString("+ " + text + "\n")
		case "bold":
			text, err := f.inner(elem)
			if err != nil {
				return "", err
			}
			b.WriteString("__" + text + "__ ")
		case "emphasis":
			text, err := f.inner(elem)
			if err != nil {
				return "", err
			}
			b.WriteString("_" + text + "_ ")
		case "computeroutput":
			text, err := f.inner(elem)
			if err != nil {
				return "", err
			}
			b.WriteString("`" + text + "` ")
		case "ulink":
			text, err := f.inner(elem)
			if err != nil {
				return "", err
			}
			b.WriteString("[" + text + "](" + strings.TrimSpace(elem.AttrOr("url")) + ") ")
		case "image":
			name := elem.AttrOr("name")
			b.WriteString("  \n  \n![" + name + "](" + path.Join(f.ImageDir, name) + ") ")
		case "linebreak":
			b.WriteString("  \n")
		case "ndash":
			b.WriteString("– ")
		default:
			return "", &UnsupportedNodeKindError{Kind: elem.Name, Pos: elem.Pos}
		}
	}

	return b.String(), nil
}
