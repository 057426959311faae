package outline

import (
	"fmt"
	"html"
	"strings"
)

// Item is a node of a nested outline. Only Leaf and Group implement it.
type Item interface {
	outlineItem()
}

// Leaf is a displayable line of text.
type Leaf struct {
	Text string
}

// Group is an ordered sub-list of items.
type Group struct {
	Children []Item
}

func (Leaf) outlineItem()  {}
func (Group) outlineItem() {}

// Text builds a leaf.
func Text(text string) Item {
	return Leaf{Text: text}
}

// Nest builds a group from the given children.
func Nest(children ...Item) Item {
	return Group{Children: children}
}

// List is the structured form of a rendered outline.
type List struct {
	Entries []Entry `json:"entries"`
}

// Entry holds either text or a nested list, never both.
type Entry struct {
	Text   string `json:"text,omitempty"`
	Nested *List  `json:"nested,omitempty"`
}

// Render produces ordered-list markup for items. Leaf text is HTML escaped.
// It panics when an item is neither a Leaf nor a Group.
func Render(items []Item) string {
	var b strings.Builder
	writeList(&b, items)
	return b.String()
}

func writeList(b *strings.Builder, items []Item) {
	b.WriteString("<ol>")
	for _, item := range items {
		b.WriteString("<li>")
		switch v := item.(type) {
		case Leaf:
			b.WriteString(html.EscapeString(v.Text))
		case Group:
			writeList(b, v.Children)
		default:
			panic(badItem(item))
		}
		b.WriteString("</li>")
	}
	b.WriteString("</ol>")
}

// Build converts items into a List tree in document order.
// It panics when an item is neither a Leaf nor a Group.
func Build(items []Item) List {
	list := List{Entries: make([]Entry, 0, len(items))}
	for _, item := range items {
		switch v := item.(type) {
		case Leaf:
			list.Entries = append(list.Entries, Entry{Text: v.Text})
		case Group:
			nested := Build(v.Children)
			list.Entries = append(list.Entries, Entry{Nested: &nested})
		default:
			panic(badItem(item))
		}
	}
	return list
}

// LeafCount returns the number of leaves at any depth.
func LeafCount(items []Item) int {
	count := 0
	for _, item := range items {
		switch v := item.(type) {
		case Leaf:
			count++
		case Group:
			count += LeafCount(v.Children)
		default:
			panic(badItem(item))
		}
	}
	return count
}

// Depth returns the deepest Group nesting; flat lists have depth 0.
func Depth(items []Item) int {
	depth := 0
	for _, item := range items {
		switch v := item.(type) {
		case Leaf:
		case Group:
			if d := Depth(v.Children) + 1; d > depth {
				depth = d
			}
		default:
			panic(badItem(item))
		}
	}
	return depth
}

// LeafCount returns the number of text entries at any depth.
func (l List) LeafCount() int {
	count := 0
	for _, e := range l.Entries {
		if e.Nested != nil {
			count += e.Nested.LeafCount()
			continue
		}
		count++
	}
	return count
}

// Depth returns the deepest nested list below l.
func (l List) Depth() int {
	depth := 0
	for _, e := range l.Entries {
		if e.Nested == nil {
			continue
		}
		if d := e.Nested.Depth() + 1; d > depth {
			depth = d
		}
	}
	return depth
}

func badItem(item Item) string {
	return fmt.Sprintf("outline: unsupported item %T", item)
}
