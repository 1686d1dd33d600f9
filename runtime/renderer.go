package runtime

// Renderer defines the runtime operations a mounted component may use.
// This interface has NO build tags, making it available to both WASM and
// native test builds.
type Renderer interface {
	// ReRender requests that the renderer re-run the render cycle.
	// Used by StateHasChanged() when component state changes.
	ReRender()
}
