//go:build !wasm
// +build !wasm

package vdom

import (
	"errors"
	"testing"

	"golang.org/x/net/html"

	"github.com/vcrobe/neonjsx/dom"
	"github.com/vcrobe/neonjsx/dom/htmldom"
)

func newMount(t *testing.T) (*htmldom.Document, *htmldom.Element) {
	t.Helper()
	doc := htmldom.New()
	mount, err := doc.CreateElement("div")
	if err != nil {
		t.Fatalf("create mount: %v", err)
	}
	doc.Body().AppendChild(mount)
	return doc, mount.(*htmldom.Element)
}

// TestRender_FullReplaceIsIdempotent verifies that rendering the same tree
// twice does not accumulate nodes, and that a different tree replaces it.
func TestRender_FullReplaceIsIdempotent(t *testing.T) {
	// Arrange
	doc, mount := newMount(t)
	tree := H("ul", nil, H("li", nil, Text("one")), H("li", nil, Text("two")))

	// Act
	if err := Render(doc, tree, mount); err != nil {
		t.Fatalf("first render: %v", err)
	}
	first := mount.InnerHTML()
	if err := Render(doc, tree, mount); err != nil {
		t.Fatalf("second render: %v", err)
	}
	second := mount.InnerHTML()

	// Assert
	want := "<ul><li>one</li><li>two</li></ul>"
	if first != want {
		t.Errorf("first render: expected %q, got %q", want, first)
	}
	if second != first {
		t.Errorf("second render differs: %q vs %q", second, first)
	}
	if n := len(mount.Children()); n != 1 {
		t.Errorf("expected 1 child in mount after two renders, got %d", n)
	}

	if err := Render(doc, Paragraph("other", nil), mount); err != nil {
		t.Fatalf("third render: %v", err)
	}
	if got := mount.InnerHTML(); got != "<p>other</p>" {
		t.Errorf("expected replaced tree, got %q", got)
	}
}

// TestRender_SequencePreservesOrder verifies that a Sequence child expands
// contiguously between its siblings.
func TestRender_SequencePreservesOrder(t *testing.T) {
	// Arrange
	doc, mount := newMount(t)
	tree := H("div", nil,
		H("a", nil, Text("A")),
		Sequence{H("b", nil, Text("B1")), H("i", nil, Text("B2"))},
		H("span", nil, Text("C")),
	)

	// Act
	if err := Render(doc, tree, mount); err != nil {
		t.Fatalf("render: %v", err)
	}

	// Assert
	div := mount.Children()[0]
	var tags []string
	for c := div.FirstChild; c != nil; c = c.NextSibling {
		tags = append(tags, c.Data)
	}
	want := []string{"a", "b", "i", "span"}
	if len(tags) != len(want) {
		t.Fatalf("expected children %v, got %v", want, tags)
	}
	for i := range want {
		if tags[i] != want[i] {
			t.Errorf("child %d: expected %q, got %q", i, want[i], tags[i])
		}
	}
}

// TestRender_NullishChildKeepsIndex verifies that nil and Empty children
// produce empty text nodes instead of being dropped.
func TestRender_NullishChildKeepsIndex(t *testing.T) {
	// Arrange
	doc, mount := newMount(t)

	// Act
	if err := Render(doc, H("div", nil, Text("x"), nil, Text("y"), Empty{}), mount); err != nil {
		t.Fatalf("render: %v", err)
	}

	// Assert
	div := mount.Children()[0]
	var kids []*html.Node
	for c := div.FirstChild; c != nil; c = c.NextSibling {
		kids = append(kids, c)
	}
	if len(kids) != 4 {
		t.Fatalf("expected 4 children, got %d", len(kids))
	}
	want := []string{"x", "", "y", ""}
	for i, k := range kids {
		if k.Type != html.TextNode {
			t.Errorf("child %d: expected text node, got type %v", i, k.Type)
		}
		if k.Data != want[i] {
			t.Errorf("child %d: expected %q, got %q", i, want[i], k.Data)
		}
	}
}

// TestRender_AttributeMapping verifies className, handler, false and numeric
// attribute handling.
func TestRender_AttributeMapping(t *testing.T) {
	// Arrange
	doc, mount := newMount(t)
	clicks := 0
	tree := H("button", Attrs{
		"className": String("a b"),
		"onClick":   On(func(dom.Event) { clicks++ }),
		"disabled":  Bool(false),
		"hidden":    Null{},
		"data-x":    Int(5),
		"data-y":    Float(0.5),
		"draggable": Bool(true),
	}, Text("go"))

	// Act
	if err := Render(doc, tree, mount); err != nil {
		t.Fatalf("render: %v", err)
	}

	// Assert
	if got := mount.InnerHTML(); got != `<button class="a b" data-x="5" data-y="0.5" draggable="true">go</button>` {
		t.Errorf("unexpected markup: %s", got)
	}

	el := doc.Wrap(mount.Children()[0])
	if _, ok := el.Attr("onclick"); ok {
		t.Errorf("handler must not be set as an attribute")
	}
	if _, ok := el.Attr("disabled"); ok {
		t.Errorf("disabled=false must be omitted")
	}
	if !htmldom.Click(el) {
		t.Fatalf("expected an onclick handler to be registered")
	}
	if clicks != 1 {
		t.Errorf("expected 1 click, got %d", clicks)
	}
}

// TestRender_ClassNameNonStringIgnored verifies that only string class names
// are applied.
func TestRender_ClassNameNonStringIgnored(t *testing.T) {
	doc, mount := newMount(t)

	if err := Render(doc, H("div", Attrs{"className": Int(3)}), mount); err != nil {
		t.Fatalf("render: %v", err)
	}

	if got := mount.InnerHTML(); got != "<div></div>" {
		t.Errorf("expected bare div, got %q", got)
	}
}

// TestRender_ComponentInvocation verifies a component is called exactly once
// per pass with its attributes and children, and its result is materialized.
func TestRender_ComponentInvocation(t *testing.T) {
	// Arrange
	doc, mount := newMount(t)
	calls := 0
	var got Props
	myComponent := func(p Props) Node {
		calls++
		got = p
		return H("section", nil, p.Children...)
	}

	// Act
	if err := Render(doc, C(myComponent, Attrs{"a": Int(1)}, Text("child")), mount); err != nil {
		t.Fatalf("render: %v", err)
	}

	// Assert
	if calls != 1 {
		t.Errorf("expected 1 call, got %d", calls)
	}
	if v, ok := got.Attrs["a"].(Int); !ok || v != 1 {
		t.Errorf("expected prop a=1, got %#v", got.Attrs["a"])
	}
	if len(got.Children) != 1 || got.Children[0] != Text("child") {
		t.Errorf("expected children [child], got %#v", got.Children)
	}
	if markup := mount.InnerHTML(); markup != "<section>child</section>" {
		t.Errorf("unexpected markup: %s", markup)
	}

	// A second pass calls the component again.
	if err := Render(doc, C(myComponent, Attrs{"a": Int(1)}, Text("child")), mount); err != nil {
		t.Fatalf("render: %v", err)
	}
	if calls != 2 {
		t.Errorf("expected 2 calls after second pass, got %d", calls)
	}
}

// TestRender_FragmentReturnsSiblings verifies that a component built on
// Fragment renders its children with no wrapper element.
func TestRender_FragmentReturnsSiblings(t *testing.T) {
	doc, mount := newMount(t)

	if err := Render(doc, Frag(H("h2", nil, Text("t")), Paragraph("p", nil)), mount); err != nil {
		t.Fatalf("render: %v", err)
	}

	if got := mount.InnerHTML(); got != "<h2>t</h2><p>p</p>" {
		t.Errorf("unexpected markup: %s", got)
	}
}

// TestFragment_NilChildren verifies the single-child wrapping of Fragment
// when it is called directly without a children slice.
func TestFragment_NilChildren(t *testing.T) {
	seq, ok := Fragment(Props{}).(Sequence)
	if !ok {
		t.Fatalf("expected a Sequence")
	}
	if len(seq) != 1 {
		t.Fatalf("expected one element, got %d", len(seq))
	}
	if _, ok := seq[0].(Empty); !ok {
		t.Errorf("expected Empty, got %#v", seq[0])
	}
}

// TestRender_EmptyFragRendersNothing verifies that an empty Frag() between
// siblings adds no node, so sibling order and count are unchanged.
func TestRender_EmptyFragRendersNothing(t *testing.T) {
	// Arrange
	doc, mount := newMount(t)
	tree := H("div", nil, Text("a"), Frag(), Text("b"))

	// Act
	if err := Render(doc, tree, mount); err != nil {
		t.Fatalf("render: %v", err)
	}

	// Assert
	div := mount.Children()[0]
	var texts []string
	for c := div.FirstChild; c != nil; c = c.NextSibling {
		texts = append(texts, c.Data)
	}
	if len(texts) != 2 || texts[0] != "a" || texts[1] != "b" {
		t.Errorf("expected children [a b], got %q", texts)
	}
	if seq, ok := Fragment(Props{Children: Frag().Children}).(Sequence); !ok || len(seq) != 0 {
		t.Errorf("expected an empty Sequence through Frag, got %#v", seq)
	}
	if H("p", nil).Children == nil || C(Fragment, nil).Children == nil {
		t.Error("expected H and C to store a non-nil children slice")
	}
}

// TestRender_InvalidTag verifies the document error is returned unmodified.
func TestRender_InvalidTag(t *testing.T) {
	doc, mount := newMount(t)
	if err := Render(doc, Paragraph("old", nil), mount); err != nil {
		t.Fatalf("render: %v", err)
	}

	err := Render(doc, H("div", nil, H("bad tag", nil)), mount)

	if !errors.Is(err, dom.ErrInvalidCharacter) {
		t.Fatalf("expected ErrInvalidCharacter, got %v", err)
	}
	if n := len(mount.Children()); n != 0 {
		t.Errorf("expected emptied container, got %d children", n)
	}
}

// TestRender_ComponentPanicPropagates verifies there is no error boundary.
func TestRender_ComponentPanicPropagates(t *testing.T) {
	doc, mount := newMount(t)
	boom := func(Props) Node { panic("boom") }

	defer func() {
		if rec := recover(); rec != "boom" {
			t.Errorf("expected panic %q, got %v", "boom", rec)
		}
	}()
	_ = Render(doc, C(boom, nil), mount)
	t.Errorf("render should have panicked")
}

// TestRenderer_ReleasesPreviousHandlers verifies handlers of the previous pass
// are dropped before the next pass.
func TestRenderer_ReleasesPreviousHandlers(t *testing.T) {
	doc, mount := newMount(t)
	r := NewRenderer(doc)
	noop := On(func(dom.Event) {})
	tree := H("div", Attrs{"onClick": noop}, H("button", Attrs{"onClick": noop, "onKeyDown": noop}))

	if err := r.Render(tree, mount); err != nil {
		t.Fatalf("render: %v", err)
	}
	if n := doc.HandlerCount(); n != 3 {
		t.Fatalf("expected 3 handlers, got %d", n)
	}

	if err := r.Render(tree, mount); err != nil {
		t.Fatalf("render: %v", err)
	}
	if n := doc.HandlerCount(); n != 3 {
		t.Errorf("expected 3 handlers after second pass, got %d", n)
	}

	r.Release()
	if n := doc.HandlerCount(); n != 0 {
		t.Errorf("expected 0 handlers after release, got %d", n)
	}
}

// TestRender_Numbers verifies numbers are formatted like JavaScript.
func TestRender_Numbers(t *testing.T) {
	cases := []struct {
		in   float64
		want string
	}{
		{5, "5"},
		{-3, "-3"},
		{0.5, "0.5"},
		{1.25, "1.25"},
		{1e21, "1e+21"},
		{1e-7, "1e-7"},
		{123456789, "123456789"},
	}
	for _, tc := range cases {
		doc, mount := newMount(t)
		if err := Render(doc, Number(tc.in), mount); err != nil {
			t.Fatalf("render %v: %v", tc.in, err)
		}
		if got := mount.InnerHTML(); got != tc.want {
			t.Errorf("Number(%v): expected %q, got %q", tc.in, tc.want, got)
		}
	}
}
