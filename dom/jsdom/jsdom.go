//go:build js && wasm

// Package jsdom binds the dom contract to the browser document via syscall/js.
package jsdom

import (
	"syscall/js"

	"github.com/vcrobe/neonjsx/dom"
)

// Compile-time assertions.
var (
	_ dom.Document = (*Document)(nil)
	_ dom.Element  = (*Element)(nil)
	_ dom.Releaser = (*Element)(nil)
)

// Document wraps the global JS document.
type Document struct {
	doc js.Value
}

// New returns the global document, or nil when there is none (e.g. a worker).
func New() *Document {
	doc := js.Global().Get("document")
	if !doc.Truthy() {
		return nil
	}
	return &Document{doc: doc}
}

// Body returns document.body, or nil before the body is parsed.
func (d *Document) Body() *Element {
	body := d.doc.Get("body")
	if !body.Truthy() {
		return nil
	}
	return Wrap(body)
}

// QuerySelector returns the first element matching selector, or nil.
func (d *Document) QuerySelector(selector string) *Element {
	el := d.doc.Call("querySelector", selector)
	if !el.Truthy() {
		return nil
	}
	return Wrap(el)
}

// VisibilityState returns document.visibilityState ("visible", "hidden").
func (d *Document) VisibilityState() string {
	return d.doc.Get("visibilityState").String()
}

// CreateElement calls document.createElement. A DOMException thrown by the
// browser (invalid name) is returned as a js.Error.
func (d *Document) CreateElement(tag string) (el dom.Element, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			jsErr, ok := rec.(js.Error)
			if !ok {
				panic(rec)
			}
			el, err = nil, jsErr
		}
	}()
	return Wrap(d.doc.Call("createElement", tag)), nil
}

// CreateTextNode calls document.createTextNode.
func (d *Document) CreateTextNode(data string) dom.Node {
	return &textNode{v: d.doc.Call("createTextNode", data)}
}

// CreateDocumentFragment calls document.createDocumentFragment.
func (d *Document) CreateDocumentFragment() dom.Node {
	return &textNode{v: d.doc.Call("createDocumentFragment")}
}

// textNode wraps any non-element node (text, fragment).
type textNode struct {
	v js.Value
}

func (n *textNode) AppendChild(child dom.Node) {
	n.v.Call("appendChild", valueOf(child))
}

// Element wraps a JS element and owns the js.Func callbacks assigned to it.
type Element struct {
	v        js.Value
	handlers map[string]js.Func
}

// Wrap adapts an existing JS element.
func Wrap(v js.Value) *Element {
	return &Element{v: v}
}

// Value returns the underlying JS value.
func (e *Element) Value() js.Value {
	return e.v
}

func (e *Element) AppendChild(child dom.Node) {
	e.v.Call("appendChild", valueOf(child))
}

func (e *Element) SetAttribute(name, value string) {
	e.v.Call("setAttribute", name, value)
}

func (e *Element) RemoveAttribute(name string) {
	e.v.Call("removeAttribute", name)
}

// SetEventHandler assigns el[name] = cb. The previous callback registered
// under the same name is released.
func (e *Element) SetEventHandler(name string, fn dom.EventHandler) {
	if e.handlers == nil {
		e.handlers = make(map[string]js.Func)
	}
	if prev, ok := e.handlers[name]; ok {
		prev.Release()
	}
	cb := js.FuncOf(func(this js.Value, args []js.Value) any {
		if len(args) > 0 {
			fn(event{v: args[0]})
		} else {
			fn(event{v: js.Undefined()})
		}
		return nil
	})
	e.handlers[name] = cb
	e.v.Set(name, cb)
}

// ReleaseHandlers unassigns and releases every callback set on this element.
func (e *Element) ReleaseHandlers() {
	for name, cb := range e.handlers {
		e.v.Set(name, js.Null())
		cb.Release()
	}
	e.handlers = nil
}

func (e *Element) SetProperty(name string, value any) {
	e.v.Set(name, value)
}

func (e *Element) SetTextContent(text string) {
	e.v.Set("textContent", text)
}

func (e *Element) ReplaceChildren() {
	e.v.Call("replaceChildren")
}

func (e *Element) Remove() {
	e.v.Call("remove")
}

func valueOf(n dom.Node) js.Value {
	switch v := n.(type) {
	case *Element:
		return v.v
	case *textNode:
		return v.v
	default:
		panic("jsdom: foreign node type")
	}
}

// event adapts a JS Event.
type event struct {
	v js.Value
}

func (e event) Type() string {
	if !e.v.Truthy() {
		return ""
	}
	return e.v.Get("type").String()
}

func (e event) Key() string {
	if !e.v.Truthy() {
		return ""
	}
	key := e.v.Get("key")
	if key.Type() != js.TypeString {
		return ""
	}
	return key.String()
}

func (e event) Checked() bool {
	if !e.v.Truthy() {
		return false
	}
	target := e.v.Get("target")
	if !target.Truthy() {
		return false
	}
	return target.Get("checked").Truthy()
}

func (e event) PreventDefault() {
	if e.v.Truthy() {
		e.v.Call("preventDefault")
	}
}
