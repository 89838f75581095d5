// Package view builds HTML render trees with declared event bindings.
//
// A tree is plain data: building one has no side effects, and the same
// inputs always produce the same tree. Event bindings only name the
// application message a DOM event should produce; the host decides how
// that message reaches its update loop.
package view

// Kind identifies what a Node renders as.
type Kind int

const (
	KindEmpty Kind = iota
	KindElement
	KindText
	KindRaw
)

// Event is a DOM event name.
type Event string

const (
	EventClick Event = "click"
)

// Message is an application message a binding can emit.
type Message interface {
	Name() string
}

// Binding associates a DOM event on an element with an application message.
type Binding struct {
	Event Event
	Msg   Message
}

type attr struct {
	key, val string
}

type styleDecl struct {
	prop, val string
}

// Node is one node of a render tree.
type Node struct {
	Kind     Kind
	Tag      string
	Text     string
	Children []Node
	Bindings []Binding

	id      string
	classes []string
	styles  []styleDecl
	attrs   []attr
}

// Item is anything that can be passed to El: an Option or a child Node.
type Item interface {
	apply(*Node)
}

// Option configures an element.
type Option func(*Node)

func (o Option) apply(n *Node) { o(n) }

// apply appends n as a child. Empty nodes are dropped.
func (n Node) apply(parent *Node) {
	if n.Kind == KindEmpty {
		return
	}
	parent.Children = append(parent.Children, n)
}

// El builds an element node.
func El(tag string, items ...Item) Node {
	n := Node{Kind: KindElement, Tag: tag}
	for _, it := range items {
		if it != nil {
			it.apply(&n)
		}
	}
	return n
}

// Div builds a <div>.
func Div(items ...Item) Node { return El("div", items...) }

// Span builds a <span>.
func Span(items ...Item) Node { return El("span", items...) }

// A builds an <a>.
func A(items ...Item) Node { return El("a", items...) }

// Text builds an escaped text node.
func Text(s string) Node { return Node{Kind: KindText, Text: s} }

// Raw builds a node whose content is written without escaping. Callers must
// only pass trusted or already sanitized HTML.
func Raw(html string) Node { return Node{Kind: KindRaw, Text: html} }

// Empty builds a node that renders nothing.
func Empty() Node { return Node{} }

// Class appends class tokens. Empty tokens are skipped.
func Class(tokens ...string) Option {
	return func(n *Node) {
		for _, t := range tokens {
			if t != "" {
				n.classes = append(n.classes, t)
			}
		}
	}
}

// ID sets the element id.
func ID(id string) Option {
	return func(n *Node) { n.id = id }
}

// Attr sets an attribute. Setting the same key twice keeps the last value.
func Attr(key, val string) Option {
	return func(n *Node) {
		for i := range n.attrs {
			if n.attrs[i].key == key {
				n.attrs[i].val = val
				return
			}
		}
		n.attrs = append(n.attrs, attr{key: key, val: val})
	}
}

// Href sets the href attribute.
func Href(url string) Option { return Attr("href", url) }

// Style appends an inline style declaration.
func Style(prop, val string) Option {
	return func(n *Node) {
		n.styles = append(n.styles, styleDecl{prop: prop, val: val})
	}
}

// On declares that event on this element emits msg.
func On(event Event, msg Message) Option {
	return func(n *Node) {
		n.Bindings = append(n.Bindings, Binding{Event: event, Msg: msg})
	}
}

// Classes returns the element's class tokens in declaration order.
func (n Node) Classes() []string { return n.classes }

// GetAttr returns the value of an attribute set with Attr.
func (n Node) GetAttr(key string) (string, bool) {
	for _, a := range n.attrs {
		if a.key == key {
			return a.val, true
		}
	}
	return "", false
}

// Walk visits n and its descendants depth-first, stopping when fn returns false.
func (n Node) Walk(fn func(Node) bool) bool {
	if !fn(n) {
		return false
	}
	for _, c := range n.Children {
		if !c.Walk(fn) {
			return false
		}
	}
	return true
}
