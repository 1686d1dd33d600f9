package vdom

// Node is a node descriptor: the immutable description of one UI subtree
// before materialization. It is a closed set of variants:
//
//	Text, Number  character data
//	Empty         zero-width text (a nil Node means the same)
//	Sequence      fragment, flattened into the parent
//	*Element      platform element with attributes and children
//	*Component    pure function from Props to a Node
//
// The renderer reads a descriptor once per pass and never mutates it.
type Node interface {
	vnode()
}

// Text renders as a text node holding the string.
type Text string

// Number renders as a text node holding the number formatted the way
// JavaScript's String(n) does.
type Number float64

// Empty renders as an empty text node. It keeps the child index of nullish
// children aligned with the source children slice.
type Empty struct{}

// Sequence is an ordered list of nodes rendered without an owning element.
type Sequence []Node

// Element describes a platform element.
type Element struct {
	Tag      string
	Attrs    Attrs
	Children []Node
}

// ComponentFunc is a pure function from props to a node descriptor. It must
// not touch the platform tree while it runs; deferred work has to schedule
// itself and mutate the tree after the render pass.
type ComponentFunc func(Props) Node

// Component describes an invocation of a ComponentFunc.
type Component struct {
	Render   ComponentFunc
	Attrs    Attrs
	Children []Node
}

// Props is the single argument a ComponentFunc receives: the attributes given
// at the call site plus the children.
type Props struct {
	Attrs    Attrs
	Children []Node
}

func (Text) vnode()       {}
func (Number) vnode()     {}
func (Empty) vnode()      {}
func (Sequence) vnode()   {}
func (*Element) vnode()   {}
func (*Component) vnode() {}

// H creates an element descriptor. Nothing is validated: a bad tag name only
// fails when the descriptor is materialized. Children is never nil.
func H(tag string, attrs Attrs, children ...Node) *Element {
	if attrs == nil {
		attrs = Attrs{}
	}
	if children == nil {
		children = []Node{}
	}
	return &Element{Tag: tag, Attrs: attrs, Children: children}
}

// C creates a component descriptor. Children is never nil, so a component
// invoked with no children receives an empty slice.
func C(fn ComponentFunc, attrs Attrs, children ...Node) *Component {
	if attrs == nil {
		attrs = Attrs{}
	}
	if children == nil {
		children = []Node{}
	}
	return &Component{Render: fn, Attrs: attrs, Children: children}
}

// Fragment is the built-in component that returns its children as a
// Sequence, letting a component produce several siblings without a wrapper.
// Called directly with a nil Children slice it yields a one-element sequence
// holding Empty; through C or Frag with no children it yields nothing.
func Fragment(props Props) Node {
	if props.Children == nil {
		return Sequence{Empty{}}
	}
	return Sequence(props.Children)
}

// Frag is shorthand for C(Fragment, nil, children...).
func Frag(children ...Node) *Component {
	return C(Fragment, nil, children...)
}

// Paragraph creates a <p> holding text.
func Paragraph(text string, attrs Attrs) *Element {
	return H("p", attrs, Text(text))
}

// Div creates a <div> with the given children.
func Div(attrs Attrs, children ...Node) *Element {
	return H("div", attrs, children...)
}

// Button creates a <button type="button"> labelled with text.
func Button(text string, attrs Attrs) *Element {
	if _, ok := attrs["type"]; !ok {
		attrs = attrs.With("type", String("button"))
	}
	return H("button", attrs, Text(text))
}
