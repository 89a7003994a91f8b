package dom

import "golang.org/x/net/html"

// FindByClass returns every element in the subtree carrying the class token,
// in document order.
func (e *Element) FindByClass(class string) []*Element {
	return e.findAll(func(el *Element) bool {
		return el.HasClass(class)
	})
}

// FindByID returns the first element whose id attribute matches, or nil.
func (e *Element) FindByID(id string) *Element {
	matches := e.findAll(func(el *Element) bool {
		value, ok := el.Attr("id")
		return ok && value == id
	})
	if len(matches) == 0 {
		return nil
	}
	return matches[0]
}

// FindByTag returns every element in the subtree with the given tag name.
func (e *Element) FindByTag(tag string) []*Element {
	return e.findAll(func(el *Element) bool {
		return el.Tag() == tag
	})
}

// FindByAttr returns every element in the subtree where the named attribute
// equals value.
func (e *Element) FindByAttr(name, value string) []*Element {
	return e.findAll(func(el *Element) bool {
		got, ok := el.Attr(name)
		return ok && got == value
	})
}

// Closest walks up the ancestor chain looking for an element with the class
// token, returning nil when none matches.
func (e *Element) Closest(class string) *Element {
	for cursor := e; cursor != nil; cursor = cursor.Parent() {
		if cursor.HasClass(class) {
			return cursor
		}
	}
	return nil
}

func (e *Element) findAll(match func(*Element) bool) []*Element {
	if e == nil || e.node == nil {
		return nil
	}
	var out []*Element
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			el := &Element{node: n}
			if match(el) {
				out = append(out, el)
			}
		}
		for child := n.FirstChild; child != nil; child = child.NextSibling {
			walk(child)
		}
	}
	walk(e.node)
	return out
}
