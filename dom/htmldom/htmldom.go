// Package htmldom is a headless implementation of the dom contract on top of
// golang.org/x/net/html node trees.
//
// It exists so that the renderer and the visual monitor can run natively, with
// no browser: tests materialize into it and inspect the resulting *html.Node
// tree, and the trace simulator runs the monitor against it. Event handlers
// are kept in a side table and fired with Dispatch.
package htmldom

import (
	"bytes"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/vcrobe/neonjsx/dom"
)

// Compile-time assertions.
var (
	_ dom.Document = (*Document)(nil)
	_ dom.Element  = (*Element)(nil)
	_ dom.Releaser = (*Element)(nil)
	_ dom.Event    = (*Event)(nil)
)

// Document owns an html.Node tree plus the handler and property tables for
// its elements.
type Document struct {
	root     *html.Node
	body     *html.Node
	handlers map[*html.Node]map[string]dom.EventHandler
	props    map[*html.Node]map[string]any
}

// New creates an empty document: <html><head></head><body></body></html>.
func New() *Document {
	root, err := html.Parse(strings.NewReader(""))
	if err != nil {
		// html.Parse only fails on reader errors.
		panic("htmldom: parse empty document: " + err.Error())
	}

	d := &Document{
		root:     root,
		handlers: make(map[*html.Node]map[string]dom.EventHandler),
		props:    make(map[*html.Node]map[string]any),
	}
	d.body = find(root, func(n *html.Node) bool {
		return n.Type == html.ElementNode && n.DataAtom == atom.Body
	})
	return d
}

// Body returns the <body> element.
func (d *Document) Body() *Element {
	return d.wrap(d.body)
}

// ByID returns the first element in the document with the given id, or nil.
func (d *Document) ByID(id string) *Element {
	return d.ByAttr("id", id)
}

// ByAttr returns the first element in the document whose name attribute
// equals value, or nil.
func (d *Document) ByAttr(name, value string) *Element {
	n := find(d.root, func(n *html.Node) bool {
		if n.Type != html.ElementNode {
			return false
		}
		v, ok := attr(n, name)
		return ok && v == value
	})
	if n == nil {
		return nil
	}
	return d.wrap(n)
}

// HandlerCount returns how many event handlers are currently registered
// across all elements, attached or not.
func (d *Document) HandlerCount() int {
	total := 0
	for _, hs := range d.handlers {
		total += len(hs)
	}
	return total
}

// CreateElement creates a detached element. Tag names are lower-cased as in
// an HTML document; names that are not valid element names fail with
// dom.ErrInvalidCharacter.
func (d *Document) CreateElement(tag string) (dom.Element, error) {
	if !validName(tag) {
		return nil, dom.ErrInvalidCharacter
	}
	name := strings.ToLower(tag)
	n := &html.Node{
		Type:     html.ElementNode,
		Data:     name,
		DataAtom: atom.Lookup([]byte(name)),
	}
	return d.wrap(n), nil
}

// CreateTextNode creates a detached text node.
func (d *Document) CreateTextNode(data string) dom.Node {
	return &Node{n: &html.Node{Type: html.TextNode, Data: data}, doc: d}
}

// CreateDocumentFragment creates a fragment. Appending it to a parent moves
// its children and leaves the fragment empty.
func (d *Document) CreateDocumentFragment() dom.Node {
	return &Node{n: &html.Node{Type: html.DocumentNode}, doc: d}
}

func (d *Document) wrap(n *html.Node) *Element {
	return &Element{Node: Node{n: n, doc: d}}
}

// Wrap adapts an element node of this document, e.g. one reached through
// Children.
func (d *Document) Wrap(n *html.Node) *Element {
	return d.wrap(n)
}

// Node wraps a text or fragment node.
type Node struct {
	n   *html.Node
	doc *Document
}

// HTML returns the underlying node.
func (n *Node) HTML() *html.Node {
	return n.n
}

func (n *Node) AppendChild(child dom.Node) {
	c := Unwrap(child)
	if c == nil {
		return
	}
	if c.Type == html.DocumentNode {
		for gc := c.FirstChild; gc != nil; {
			next := gc.NextSibling
			c.RemoveChild(gc)
			n.n.AppendChild(gc)
			gc = next
		}
		return
	}
	if c.Parent != nil {
		c.Parent.RemoveChild(c)
	}
	n.n.AppendChild(c)
}

// Element wraps an element node.
type Element struct {
	Node
}

func (e *Element) SetAttribute(name, value string) {
	name = strings.ToLower(name)
	for i := range e.n.Attr {
		if e.n.Attr[i].Namespace == "" && e.n.Attr[i].Key == name {
			e.n.Attr[i].Val = value
			return
		}
	}
	e.n.Attr = append(e.n.Attr, html.Attribute{Key: name, Val: value})
}

func (e *Element) RemoveAttribute(name string) {
	name = strings.ToLower(name)
	for i := range e.n.Attr {
		if e.n.Attr[i].Namespace == "" && e.n.Attr[i].Key == name {
			e.n.Attr = append(e.n.Attr[:i], e.n.Attr[i+1:]...)
			return
		}
	}
}

// Attr returns the value of the named attribute.
func (e *Element) Attr(name string) (string, bool) {
	return attr(e.n, strings.ToLower(name))
}

func (e *Element) SetEventHandler(name string, fn dom.EventHandler) {
	hs, ok := e.doc.handlers[e.n]
	if !ok {
		hs = make(map[string]dom.EventHandler)
		e.doc.handlers[e.n] = hs
	}
	hs[name] = fn
}

// Handler returns the handler registered under name ("onclick"), or nil.
func (e *Element) Handler(name string) dom.EventHandler {
	return e.doc.handlers[e.n][name]
}

// ReleaseHandlers drops every handler registered on this element.
func (e *Element) ReleaseHandlers() {
	delete(e.doc.handlers, e.n)
}

func (e *Element) SetProperty(name string, value any) {
	ps, ok := e.doc.props[e.n]
	if !ok {
		ps = make(map[string]any)
		e.doc.props[e.n] = ps
	}
	ps[name] = value
}

// Property returns a property previously set with SetProperty.
func (e *Element) Property(name string) (any, bool) {
	v, ok := e.doc.props[e.n][name]
	return v, ok
}

func (e *Element) SetTextContent(text string) {
	e.ReplaceChildren()
	if text != "" {
		e.n.AppendChild(&html.Node{Type: html.TextNode, Data: text})
	}
}

// TextContent concatenates the data of all descendant text nodes.
func (e *Element) TextContent() string {
	var b strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			if c.Type == html.TextNode {
				b.WriteString(c.Data)
			}
			walk(c)
		}
	}
	walk(e.n)
	return b.String()
}

func (e *Element) ReplaceChildren() {
	for c := e.n.FirstChild; c != nil; {
		next := c.NextSibling
		e.n.RemoveChild(c)
		c = next
	}
}

func (e *Element) Remove() {
	if e.n.Parent != nil {
		e.n.Parent.RemoveChild(e.n)
	}
}

// Attached reports whether the element is connected to its document.
func (e *Element) Attached() bool {
	for p := e.n.Parent; p != nil; p = p.Parent {
		if p == e.doc.root {
			return true
		}
	}
	return false
}

// Children returns the element's child nodes in order.
func (e *Element) Children() []*html.Node {
	var out []*html.Node
	for c := e.n.FirstChild; c != nil; c = c.NextSibling {
		out = append(out, c)
	}
	return out
}

// InnerHTML serializes the element's children.
func (e *Element) InnerHTML() string {
	var buf bytes.Buffer
	for c := e.n.FirstChild; c != nil; c = c.NextSibling {
		_ = html.Render(&buf, c)
	}
	return buf.String()
}

// OuterHTML serializes any node created by this package.
func OuterHTML(n dom.Node) string {
	hn := Unwrap(n)
	if hn == nil {
		return ""
	}
	var buf bytes.Buffer
	_ = html.Render(&buf, hn)
	return buf.String()
}

// Unwrap returns the *html.Node behind a node created by this package.
func Unwrap(n dom.Node) *html.Node {
	switch v := n.(type) {
	case *Element:
		return v.n
	case *Node:
		return v.n
	default:
		return nil
	}
}

// Event is a synthetic event for Dispatch.
type Event struct {
	Kind      string
	KeyName   string
	IsChecked bool
	Prevented bool
}

func (e *Event) Type() string    { return e.Kind }
func (e *Event) Key() string     { return e.KeyName }
func (e *Event) Checked() bool   { return e.IsChecked }
func (e *Event) PreventDefault() { e.Prevented = true }

// Dispatch fires the "on"+ev.Kind handler of el, if any, and reports whether
// one was registered.
func Dispatch(el *Element, ev *Event) bool {
	fn := el.Handler("on" + ev.Kind)
	if fn == nil {
		return false
	}
	fn(ev)
	return true
}

// Click dispatches a click event on el.
func Click(el *Element) bool {
	return Dispatch(el, &Event{Kind: "click"})
}

// Change sets the checked property of a checkbox and dispatches a change event.
func Change(el *Element, checked bool) bool {
	el.SetProperty("checked", checked)
	return Dispatch(el, &Event{Kind: "change", IsChecked: checked})
}

func attr(n *html.Node, key string) (string, bool) {
	for _, a := range n.Attr {
		if a.Namespace == "" && a.Key == key {
			return a.Val, true
		}
	}
	return "", false
}

func find(n *html.Node, match func(*html.Node) bool) *html.Node {
	if match(n) {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if found := find(c, match); found != nil {
			return found
		}
	}
	return nil
}

// validName approximates the XML Name production browsers use for
// createElement: a letter, '_' or ':' first, then name characters.
func validName(name string) bool {
	if name == "" {
		return false
	}
	for i, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r == '_', r == ':', r >= 0x80:
		case i > 0 && (r >= '0' && r <= '9' || r == '-' || r == '.'):
		default:
			return false
		}
	}
	return true
}
