package runtime

import "github.com/vcrobe/neonjsx/vdom"

// Component interface defines the structure for stateful roots mounted by the
// runtime. This interface has NO build tags, making it available to both WASM
// and native test builds.
type Component interface {
	// Render produces the node descriptor for the current state. It is called
	// once per pass; the result fully replaces what the previous pass produced.
	Render(r Renderer) vdom.Node

	// SetRenderer is called by the runtime when the component is mounted.
	// This enables StateHasChanged() to trigger re-renders.
	SetRenderer(r Renderer)
}

// Func adapts a vdom.ComponentFunc into a root Component. The function
// receives attrs on every pass.
func Func(fn vdom.ComponentFunc, attrs vdom.Attrs) Component {
	return &funcComponent{fn: fn, attrs: attrs}
}

type funcComponent struct {
	ComponentBase
	fn    vdom.ComponentFunc
	attrs vdom.Attrs
}

func (c *funcComponent) Render(Renderer) vdom.Node {
	return vdom.C(c.fn, c.attrs)
}
