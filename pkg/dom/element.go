package dom

import (
	"fmt"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Element wraps an html.Node so callers can manipulate parsed markup without
// reaching into the x/net/html representation directly. The zero value is not
// usable; construct elements with NewElement or obtain them from a parse.
type Element struct {
	node *html.Node
}

// Attr is a name/value pair applied at construction time.
type Attr struct {
	Name  string
	Value string
}

// NewElement constructs a detached element with the supplied tag and
// attributes. Attribute names are lowercased to match parser behaviour.
func NewElement(tag string, attrs ...Attr) *Element {
	tag = strings.ToLower(strings.TrimSpace(tag))
	node := &html.Node{
		Type:     html.ElementNode,
		Data:     tag,
		DataAtom: atom.Lookup([]byte(tag)),
	}
	el := &Element{node: node}
	for _, attr := range attrs {
		el.SetAttr(attr.Name, attr.Value)
	}
	return el
}

// Parse reads a full HTML document.
func Parse(markup string) (*Element, error) {
	node, err := html.Parse(strings.NewReader(markup))
	if err != nil {
		return nil, fmt.Errorf("dom: parse document: %w", err)
	}
	return &Element{node: node}, nil
}

// ParseFragment parses markup as body content and returns the top-level
// elements, skipping interleaved whitespace-only text nodes.
func ParseFragment(markup string) ([]*Element, error) {
	context := &html.Node{Type: html.ElementNode, Data: "body", DataAtom: atom.Body}
	nodes, err := html.ParseFragment(strings.NewReader(markup), context)
	if err != nil {
		return nil, fmt.Errorf("dom: parse fragment: %w", err)
	}

	out := make([]*Element, 0, len(nodes))
	for _, node := range nodes {
		if node.Type == html.TextNode && strings.TrimSpace(node.Data) == "" {
			continue
		}
		out = append(out, &Element{node: node})
	}
	return out, nil
}

// Tag returns the element's tag name, or "" for non-element nodes.
func (e *Element) Tag() string {
	if e == nil || e.node == nil || e.node.Type != html.ElementNode {
		return ""
	}
	return e.node.Data
}

// Node exposes the underlying html.Node for callers that need to interoperate
// with x/net/html directly.
func (e *Element) Node() *html.Node {
	if e == nil {
		return nil
	}
	return e.node
}

// Attr returns the named attribute value and whether it is present.
func (e *Element) Attr(name string) (string, bool) {
	if e == nil || e.node == nil {
		return "", false
	}
	name = strings.ToLower(name)
	for _, attr := range e.node.Attr {
		if attr.Key == name {
			return attr.Val, true
		}
	}
	return "", false
}

// SetAttr adds or overwrites an attribute.
func (e *Element) SetAttr(name, value string) {
	if e == nil || e.node == nil {
		return
	}
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" {
		return
	}
	for i, attr := range e.node.Attr {
		if attr.Key == name {
			e.node.Attr[i].Val = value
			return
		}
	}
	e.node.Attr = append(e.node.Attr, html.Attribute{Key: name, Val: value})
}

// RemoveAttr deletes an attribute when present.
func (e *Element) RemoveAttr(name string) {
	if e == nil || e.node == nil {
		return
	}
	name = strings.ToLower(name)
	for i, attr := range e.node.Attr {
		if attr.Key == name {
			e.node.Attr = append(e.node.Attr[:i], e.node.Attr[i+1:]...)
			return
		}
	}
}

// AttrsWithPrefix returns every attribute whose name carries the supplied
// prefix, keyed by the full attribute name. Used to propagate configuration
// attributes verbatim when a node is replaced.
func (e *Element) AttrsWithPrefix(prefix string) map[string]string {
	if e == nil || e.node == nil || prefix == "" {
		return nil
	}
	prefix = strings.ToLower(prefix)
	var out map[string]string
	for _, attr := range e.node.Attr {
		if !strings.HasPrefix(attr.Key, prefix) {
			continue
		}
		if out == nil {
			out = make(map[string]string)
		}
		out[attr.Key] = attr.Val
	}
	return out
}

// HasClass reports whether the class attribute contains the supplied token.
func (e *Element) HasClass(class string) bool {
	raw, ok := e.Attr("class")
	if !ok {
		return false
	}
	for _, token := range strings.Fields(raw) {
		if token == class {
			return true
		}
	}
	return false
}

// AddClass appends a class token, preserving existing ones.
func (e *Element) AddClass(class string) {
	class = strings.TrimSpace(class)
	if class == "" || e.HasClass(class) {
		return
	}
	raw, _ := e.Attr("class")
	if raw == "" {
		e.SetAttr("class", class)
		return
	}
	e.SetAttr("class", raw+" "+class)
}

// RemoveClass drops a class token when present.
func (e *Element) RemoveClass(class string) {
	raw, ok := e.Attr("class")
	if !ok {
		return
	}
	tokens := strings.Fields(raw)
	out := tokens[:0]
	for _, token := range tokens {
		if token != class {
			out = append(out, token)
		}
	}
	e.SetAttr("class", strings.Join(out, " "))
}

// Text returns the concatenated text content of the element's subtree.
func (e *Element) Text() string {
	if e == nil || e.node == nil {
		return ""
	}
	var sb strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			sb.WriteString(n.Data)
		}
		for child := n.FirstChild; child != nil; child = child.NextSibling {
			walk(child)
		}
	}
	walk(e.node)
	return sb.String()
}

// SetText replaces the element's children with a single text node.
func (e *Element) SetText(text string) {
	if e == nil || e.node == nil {
		return
	}
	for e.node.FirstChild != nil {
		e.node.RemoveChild(e.node.FirstChild)
	}
	e.node.AppendChild(&html.Node{Type: html.TextNode, Data: text})
}

// AppendChild attaches child as the element's last child. Children already
// attached elsewhere must be detached first; this mirrors x/net/html, which
// panics otherwise.
func (e *Element) AppendChild(child *Element) error {
	if e == nil || e.node == nil || child == nil || child.node == nil {
		return fmt.Errorf("dom: append requires both elements")
	}
	if child.node.Parent != nil {
		return fmt.Errorf("dom: child %q already attached", child.Tag())
	}
	e.node.AppendChild(child.node)
	return nil
}

// Remove detaches the element from its parent. Detaching an already detached
// element is a no-op.
func (e *Element) Remove() {
	if e == nil || e.node == nil || e.node.Parent == nil {
		return
	}
	e.node.Parent.RemoveChild(e.node)
}

// ReplaceWith swaps the element for replacement in the parent's child list.
// The receiver is left detached. Replacing a detached element fails.
func (e *Element) ReplaceWith(replacement *Element) error {
	if e == nil || e.node == nil || replacement == nil || replacement.node == nil {
		return fmt.Errorf("dom: replace requires both elements")
	}
	parent := e.node.Parent
	if parent == nil {
		return fmt.Errorf("dom: cannot replace detached element %q", e.Tag())
	}
	if replacement.node.Parent != nil {
		return fmt.Errorf("dom: replacement %q already attached", replacement.Tag())
	}
	parent.InsertBefore(replacement.node, e.node)
	parent.RemoveChild(e.node)
	return nil
}

// Parent returns the enclosing element, or nil at the top of the tree.
func (e *Element) Parent() *Element {
	if e == nil || e.node == nil || e.node.Parent == nil {
		return nil
	}
	return &Element{node: e.node.Parent}
}

// Render serialises the element and its subtree back to markup.
func (e *Element) Render() (string, error) {
	if e == nil || e.node == nil {
		return "", fmt.Errorf("dom: render of nil element")
	}
	var sb strings.Builder
	if err := html.Render(&sb, e.node); err != nil {
		return "", fmt.Errorf("dom: render: %w", err)
	}
	return sb.String(), nil
}
