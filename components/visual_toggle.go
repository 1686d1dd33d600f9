// Package components holds page sections built with vdom.
package components

import (
	"github.com/vcrobe/neonjsx/events"
	"github.com/vcrobe/neonjsx/runtime"
	"github.com/vcrobe/neonjsx/signals"
	"github.com/vcrobe/neonjsx/vdom"
	"github.com/vcrobe/neonjsx/visual"
)

// Ids rendered by VisualToggle.
const (
	VisualToggleID = "visual-toggle"
	VisualStatusID = "visual-status"
)

// VisualToggle renders the "Sight Mode" panel: a switch bound to the visual
// mode and a status line describing it. Toggling the switch calls set.
func VisualToggle(mode *signals.Signal[visual.Mode], set func(visual.Mode)) vdom.ComponentFunc {
	return func(vdom.Props) vdom.Node {
		low := mode.Get() == visual.Low

		onChange := vdom.Handler(events.AdaptCheckedEvent(func(checked bool) {
			if checked {
				set(visual.Low)
			} else {
				set(visual.Full)
			}
		}))

		status := "Full synthwave visuals enabled."
		statusClass := "status"
		if low {
			status = "Visual load reduced for stability."
			statusClass = "status active"
		}

		return vdom.H("section", vdom.Attrs{"className": vdom.String("panel visual")},
			vdom.H("h2", nil, vdom.Text("Sight Mode")),
			vdom.Paragraph("Dial back the glow when browsers start to sweat.", vdom.Attrs{"className": vdom.String("lede")}),
			vdom.Div(vdom.Attrs{"className": vdom.String("toggle-row")},
				vdom.H("span", vdom.Attrs{"className": vdom.String("toggle-label")}, vdom.Text("Visual load")),
				vdom.H("label", vdom.Attrs{"className": vdom.String("switch")},
					vdom.H("input", vdom.Attrs{
						"id":         vdom.String(VisualToggleID),
						"type":       vdom.String("checkbox"),
						"checked":    vdom.Bool(low),
						"onChange":   onChange,
						"aria-label": vdom.String("Visual performance mode"),
					}),
					vdom.H("span", vdom.Attrs{"className": vdom.String("switch-track"), "aria-hidden": vdom.String("true")},
						vdom.H("span", vdom.Attrs{"className": vdom.String("switch-knob")}),
					),
				),
			),
			vdom.Paragraph(status, vdom.Attrs{
				"id":        vdom.String(VisualStatusID),
				"className": vdom.String(statusClass),
				"aria-live": vdom.String("polite"),
			}),
		)
	}
}

// SightMode is a root component around VisualToggle that re-renders whenever
// the mode signal changes.
type SightMode struct {
	runtime.ComponentBase

	toggle      vdom.ComponentFunc
	unsubscribe func()
}

// NewSightMode subscribes to mode. Call Close to detach.
func NewSightMode(mode *signals.Signal[visual.Mode], set func(visual.Mode)) *SightMode {
	c := &SightMode{toggle: VisualToggle(mode, set)}
	c.unsubscribe = mode.Subscribe(func(visual.Mode) { c.StateHasChanged() })
	return c
}

func (c *SightMode) Render(runtime.Renderer) vdom.Node {
	return vdom.C(c.toggle, nil)
}

// Close stops following the mode signal.
func (c *SightMode) Close() {
	c.unsubscribe()
}
