package xmldoc

import (
	"strings"

	"github.com/beevik/etree"
)

// ChildrenWithAttr returns the direct children of parent named tag whose attr equals value.
// Tags match on local name, so "bean" also matches "beans:bean".
func ChildrenWithAttr(parent *etree.Element, tag, attr, value string) []*etree.Element {
	if parent == nil {
		return nil
	}
	var out []*etree.Element
	for _, child := range parent.SelectElements(tag) {
		if child.SelectAttrValue(attr, "") == value {
			out = append(out, child)
		}
	}
	return out
}

// ChildWithAttr returns the first child of parent named tag whose attr equals value.
func ChildWithAttr(parent *etree.Element, tag, attr, value string) *etree.Element {
	if found := ChildrenWithAttr(parent, tag, attr, value); len(found) > 0 {
		return found[0]
	}
	return nil
}

// ChildWithText returns the first child of parent named tag whose trimmed text equals text.
func ChildWithText(parent *etree.Element, tag, text string) *etree.Element {
	if parent == nil {
		return nil
	}
	for _, child := range parent.SelectElements(tag) {
		if strings.TrimSpace(child.Text()) == text {
			return child
		}
	}
	return nil
}

// ChildText returns the trimmed text of parent's first child named tag.
func ChildText(parent *etree.Element, tag string) string {
	if parent == nil {
		return ""
	}
	if child := parent.SelectElement(tag); child != nil {
		return strings.TrimSpace(child.Text())
	}
	return ""
}

// RemoveAll detaches every element from its parent and reports whether any was removed.
func RemoveAll(elems ...*etree.Element) bool {
	removed := false
	for _, e := range elems {
		if e == nil || e.Parent() == nil {
			continue
		}
		if e.Parent().RemoveChild(e) != nil {
			removed = true
		}
	}
	return removed
}

// RemoveChildren detaches all child tokens of e.
func RemoveChildren(e *etree.Element) {
	for len(e.Child) > 0 {
		e.RemoveChildAt(0)
	}
}

// EnsureChild returns parent's first child named tag, creating it when absent.
func EnsureChild(parent *etree.Element, tag string) *etree.Element {
	if child := parent.SelectElement(tag); child != nil {
		return child
	}
	return parent.CreateElement(tag)
}

// TextElement appends a child named tag holding text.
func TextElement(parent *etree.Element, tag, text string) *etree.Element {
	e := parent.CreateElement(tag)
	e.SetText(text)
	return e
}
