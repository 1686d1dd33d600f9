// Package dom defines the minimal platform document contract the renderer and
// the visual monitor are written against.
// This package has NO build tags: the browser binding lives in dom/jsdom and a
// headless implementation for native builds lives in dom/htmldom.
package dom

import "errors"

// ErrInvalidCharacter is returned by Document.CreateElement when the tag name
// is not a valid element name, mirroring the browser's InvalidCharacterError.
var ErrInvalidCharacter = errors.New("dom: invalid character in element name")

// Node is any node that can be placed in the tree: element, text or fragment.
type Node interface {
	// AppendChild appends child as the last child of this node. Appending a
	// fragment moves the fragment's children instead of the fragment itself.
	AppendChild(child Node)
}

// Element is a node with a tag name, attributes and children.
type Element interface {
	Node

	SetAttribute(name, value string)
	RemoveAttribute(name string)

	// SetEventHandler assigns the handler property (e.g. "onclick"), replacing
	// any previous handler registered under the same name.
	SetEventHandler(name string, fn EventHandler)

	// SetProperty sets a non-attribute property such as "checked".
	SetProperty(name string, value any)

	// SetTextContent replaces all children with a single text node.
	SetTextContent(text string)

	// ReplaceChildren removes every child of the element.
	ReplaceChildren()

	// Remove detaches the element from its parent. No-op when detached.
	Remove()
}

// Releaser is implemented by elements that hold platform resources for their
// event handlers (js.Func in the browser) which must be freed explicitly.
type Releaser interface {
	ReleaseHandlers()
}

// Document creates nodes.
type Document interface {
	CreateElement(tag string) (Element, error)
	CreateTextNode(data string) Node
	CreateDocumentFragment() Node
}

// Event is the subset of a platform event the handlers in this module need.
type Event interface {
	Type() string
	// Key returns the keyboard key for key events, "" otherwise.
	Key() string
	// Checked reports the checked state of the event target (checkbox inputs).
	Checked() bool
	PreventDefault()
}

// EventHandler is a native event handler.
type EventHandler func(Event)
