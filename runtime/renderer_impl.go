package runtime

import (
	"errors"
	"log/slog"

	"github.com/vcrobe/neonjsx/dom"
	"github.com/vcrobe/neonjsx/vdom"
)

// Compile-time assertion to ensure the concrete RendererImpl implements the Renderer interface.
var _ Renderer = (*RendererImpl)(nil)

// ErrNoComponent is returned by RenderRoot before SetCurrentComponent.
var ErrNoComponent = errors.New("runtime: no component to render")

// RendererImpl mounts one root component into a container element. Every pass
// empties the container and materializes the component's descriptor again;
// event callbacks bound by the previous pass are released first.
type RendererImpl struct {
	container dom.Element
	vdom      *vdom.Renderer
	logger    *slog.Logger

	currentComponent Component

	rendering bool
	pending   bool
	passes    int
}

// NewRenderer creates a renderer that mounts into container. logger may be nil.
func NewRenderer(doc dom.Document, container dom.Element, logger *slog.Logger) *RendererImpl {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &RendererImpl{
		container: container,
		vdom:      vdom.NewRenderer(doc, vdom.WithLogger(logger)),
		logger:    logger,
	}
}

// SetCurrentComponent sets the component to be rendered and attaches the
// renderer to it.
func (r *RendererImpl) SetCurrentComponent(comp Component) {
	r.currentComponent = comp
	if comp != nil {
		comp.SetRenderer(r)
	}
}

// RenderRoot renders the current component into the container. A ReRender
// requested while a pass is running is folded into one extra pass.
func (r *RendererImpl) RenderRoot() error {
	if r.currentComponent == nil {
		return ErrNoComponent
	}
	if r.rendering {
		r.pending = true
		return nil
	}

	r.rendering = true
	defer func() { r.rendering = false }()

	for {
		r.pending = false
		r.passes++
		node := r.currentComponent.Render(r)
		if err := r.vdom.Render(node, r.container); err != nil {
			return err
		}
		if !r.pending {
			return nil
		}
	}
}

// ReRender runs RenderRoot and logs a failure; callers of StateHasChanged
// have nobody to return an error to.
func (r *RendererImpl) ReRender() {
	if err := r.RenderRoot(); err != nil {
		r.logger.Error("runtime: render failed", "error", err)
	}
}

// Passes returns how many render passes have run.
func (r *RendererImpl) Passes() int {
	return r.passes
}

// Unmount empties the container and releases every bound callback.
func (r *RendererImpl) Unmount() {
	r.vdom.Release()
	r.container.ReplaceChildren()
	if r.currentComponent != nil {
		r.currentComponent.SetRenderer(nil)
		r.currentComponent = nil
	}
}
