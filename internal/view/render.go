package view

import (
	"bytes"
	"context"
	"io"
	"strings"

	"github.com/a-h/templ"
	"github.com/starfederation/datastar-go/datastar"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// BindingEncoder turns a declared binding into an HTML attribute. An empty
// key drops the binding.
type BindingEncoder func(Binding) (key, val string)

// DatastarEncoder posts the message name to prefix/<name> through datastar,
// so the server applies the message and streams the patched view back.
func DatastarEncoder(prefix string) BindingEncoder {
	prefix = strings.TrimRight(prefix, "/")
	return func(b Binding) (string, string) {
		return "data-on:" + string(b.Event), datastar.PostSSE("%s/%s", prefix, b.Msg.Name())
	}
}

// DefaultEncoder is used when the render context carries no encoder.
var DefaultEncoder = DatastarEncoder("/messages")

type encoderKey struct{}

// WithEncoder returns a context whose renders encode bindings with enc.
func WithEncoder(ctx context.Context, enc BindingEncoder) context.Context {
	return context.WithValue(ctx, encoderKey{}, enc)
}

func encoderFrom(ctx context.Context) BindingEncoder {
	if enc, ok := ctx.Value(encoderKey{}).(BindingEncoder); ok && enc != nil {
		return enc
	}
	return DefaultEncoder
}

var _ templ.Component = Node{}

// Render writes the node as HTML. It satisfies templ.Component so trees can
// be patched through datastar or composed with other components.
func (n Node) Render(ctx context.Context, w io.Writer) error {
	if n.Kind == KindEmpty {
		return nil
	}
	return html.Render(w, n.toHTML(encoderFrom(ctx)))
}

// String renders the node with the default encoder.
func (n Node) String() string {
	var buf bytes.Buffer
	_ = n.Render(context.Background(), &buf)
	return buf.String()
}

func (n Node) toHTML(enc BindingEncoder) *html.Node {
	switch n.Kind {
	case KindText:
		return &html.Node{Type: html.TextNode, Data: n.Text}
	case KindRaw:
		return &html.Node{Type: html.RawNode, Data: n.Text}
	}

	out := &html.Node{
		Type:     html.ElementNode,
		Data:     n.Tag,
		DataAtom: atom.Lookup([]byte(n.Tag)),
	}
	if n.id != "" {
		out.Attr = append(out.Attr, html.Attribute{Key: "id", Val: n.id})
	}
	if len(n.classes) > 0 {
		out.Attr = append(out.Attr, html.Attribute{Key: "class", Val: strings.Join(n.classes, " ")})
	}
	if len(n.styles) > 0 {
		decls := make([]string, len(n.styles))
		for i, s := range n.styles {
			decls[i] = s.prop + ": " + s.val
		}
		out.Attr = append(out.Attr, html.Attribute{Key: "style", Val: strings.Join(decls, "; ")})
	}
	for _, a := range n.attrs {
		out.Attr = append(out.Attr, html.Attribute{Key: a.key, Val: a.val})
	}
	for _, b := range n.Bindings {
		key, val := enc(b)
		if key == "" {
			continue
		}
		out.Attr = append(out.Attr, html.Attribute{Key: key, Val: val})
	}
	for _, c := range n.Children {
		if c.Kind == KindEmpty {
			continue
		}
		out.AppendChild(c.toHTML(enc))
	}
	return out
}
