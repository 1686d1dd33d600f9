package vdom

import (
	"fmt"
	"log/slog"
	"maps"
	"slices"
	"strings"

	"github.com/vcrobe/neonjsx/dom"
)

// Renderer materializes node descriptors into a dom.Document.
//
// Every Render is a full replace: the container is emptied and rebuilt from
// the new descriptor, there is no diffing against the previous pass. The
// renderer remembers the elements that received event handlers so that the
// next pass can release them first.
type Renderer struct {
	doc    dom.Document
	logger *slog.Logger

	bound    []dom.Releaser
	elements int
}

// Option configures a Renderer.
type Option func(*Renderer)

// WithLogger sets the logger used for per-pass debug records.
func WithLogger(l *slog.Logger) Option {
	return func(r *Renderer) {
		if l != nil {
			r.logger = l
		}
	}
}

// NewRenderer creates a renderer for doc.
func NewRenderer(doc dom.Document, opts ...Option) *Renderer {
	r := &Renderer{
		doc:    doc,
		logger: slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Render removes every child of container and appends the materialized
// subtree of node. Errors from the document (invalid tag names) are returned
// unmodified; a panicking component propagates to the caller. In both cases
// the container has already been emptied.
func (r *Renderer) Render(node Node, container dom.Element) error {
	r.Release()
	container.ReplaceChildren()

	r.elements = 0
	out, err := r.ToDOM(node)
	if err != nil {
		return err
	}
	container.AppendChild(out)

	r.logger.Debug("vdom: render pass complete", "elements", r.elements, "handlers", len(r.bound))
	return nil
}

// Release frees the event handlers attached during the previous pass.
func (r *Renderer) Release() {
	for _, el := range r.bound {
		el.ReleaseHandlers()
	}
	r.bound = r.bound[:0]
}

// ToDOM converts a descriptor into a detached platform node. Cases are tried
// in order: empty, text, sequence, component, element.
func (r *Renderer) ToDOM(node Node) (dom.Node, error) {
	switch n := node.(type) {
	case nil, Empty:
		return r.doc.CreateTextNode(""), nil

	case Text:
		return r.doc.CreateTextNode(string(n)), nil

	case Number:
		return r.doc.CreateTextNode(formatNumber(float64(n))), nil

	case Sequence:
		frag := r.doc.CreateDocumentFragment()
		for _, child := range n {
			c, err := r.ToDOM(child)
			if err != nil {
				return nil, err
			}
			frag.AppendChild(c)
		}
		return frag, nil

	case *Component:
		if n == nil || n.Render == nil {
			return r.doc.CreateTextNode(""), nil
		}
		return r.ToDOM(n.Render(Props{Attrs: n.Attrs.Clone(), Children: n.Children}))

	case *Element:
		if n == nil {
			return r.doc.CreateTextNode(""), nil
		}
		return r.element(n)

	default:
		return nil, fmt.Errorf("vdom: unknown node type %T", node)
	}
}

func (r *Renderer) element(n *Element) (dom.Node, error) {
	el, err := r.doc.CreateElement(n.Tag)
	if err != nil {
		return nil, err
	}
	r.elements++

	if applyAttrs(el, n.Attrs) {
		if rel, ok := el.(dom.Releaser); ok {
			r.bound = append(r.bound, rel)
		}
	}

	for _, child := range n.Children {
		c, err := r.ToDOM(child)
		if err != nil {
			return nil, err
		}
		el.AppendChild(c)
	}
	return el, nil
}

// applyAttrs sets attributes in key order and reports whether any event
// handler was attached.
//
//	className + String   -> class attribute (other className values are ignored)
//	on* + Handler        -> handler property, key lower-cased (onClick -> onclick)
//	Bool(false), Null    -> omitted
//	anything else        -> stringified attribute
func applyAttrs(el dom.Element, attrs Attrs) (handlers bool) {
	for _, key := range slices.Sorted(maps.Keys(attrs)) {
		v := attrs[key]

		if key == "className" {
			if s, ok := v.(String); ok {
				el.SetAttribute("class", string(s))
			}
			continue
		}

		if h, ok := v.(Handler); ok && strings.HasPrefix(key, "on") {
			if h != nil {
				el.SetEventHandler(strings.ToLower(key), dom.EventHandler(h))
				handlers = true
			}
			continue
		}

		if s, ok := stringify(v); ok {
			el.SetAttribute(key, s)
		}
	}
	return handlers
}

// Render is a one-shot Renderer.Render.
func Render(doc dom.Document, node Node, container dom.Element) error {
	return NewRenderer(doc).Render(node, container)
}

// ToDOM is a one-shot Renderer.ToDOM.
func ToDOM(doc dom.Document, node Node) (dom.Node, error) {
	return NewRenderer(doc).ToDOM(node)
}
