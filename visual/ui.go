package visual

import (
	"fmt"
	"math"
	"strings"

	"github.com/vcrobe/neonjsx/dom"
	"github.com/vcrobe/neonjsx/events"
)

// Element ids and classes of the floating UI.
const (
	StickID        = "visual-perf-stick"
	PanelID        = "visual-perf-panel"
	PanelToggleID  = "visual-mode-toggle"
	PanelStatusID  = "visual-mode-status"
	BannerID       = "visual-banner"
)

// Banner buttons carry their action in ActionAttr.
const (
	ActionAttr    = "data-action"
	ActionReduce  = "reduce"
	ActionDismiss = "dismiss"
)

var (
	stickStyle = css(
		"position: fixed",
		"top: 0.75rem",
		"right: 0.75rem",
		"padding: 0.35rem 0.55rem",
		"border-radius: 999px",
		"border: 1px solid rgba(0, 255, 249, 0.35)",
		"background: rgba(5, 1, 13, 0.9)",
		"color: rgba(224, 224, 232, 0.75)",
		`font-family: "Share Tech Mono", monospace`,
		"font-size: 0.6rem",
		"letter-spacing: 0.12em",
		"text-transform: uppercase",
		"z-index: 2001",
		"pointer-events: auto",
		"cursor: pointer",
		"user-select: none",
		"box-shadow: 0 0 12px rgba(0, 255, 249, 0.18)",
	)
	panelStyle = css(
		"position: fixed",
		"top: 2.6rem",
		"right: 0.75rem",
		"min-width: 200px",
		"padding: 0.75rem 0.9rem",
		"border-radius: 10px",
		"border: 1px solid rgba(157, 78, 221, 0.45)",
		"background: rgba(10, 5, 21, 0.92)",
		"box-shadow: 0 0 18px rgba(157, 78, 221, 0.2)",
		"backdrop-filter: blur(6px)",
		"color: rgba(224, 224, 232, 0.85)",
		`font-family: "Share Tech Mono", monospace`,
		"font-size: 0.65rem",
		"letter-spacing: 0.08em",
		"text-transform: uppercase",
		"z-index: 2001",
	)
	panelTitleStyle = css(
		`font-family: "Orbitron", sans-serif`,
		"font-size: 0.65rem",
		"letter-spacing: 0.18em",
		"margin-bottom: 0.5rem",
		"color: rgba(0, 255, 249, 0.75)",
	)
	panelLabelStyle = css(
		"display: flex",
		"align-items: center",
		"gap: 0.5rem",
		"cursor: pointer",
	)
	panelStatusStyle = css(
		"margin-top: 0.45rem",
		"font-size: 0.55rem",
		"letter-spacing: 0.12em",
		"color: rgba(224, 224, 232, 0.6)",
	)
)

func css(decls ...string) string {
	return strings.Join(decls, "; ")
}

// ui holds the elements the monitor created. nil means not on screen.
type ui struct {
	stick  dom.Element
	panel  dom.Element
	toggle dom.Element
	status dom.Element
	banner dom.Element

	bannerButtons []dom.Element
}

// builder creates elements and remembers the first failure, so a whole
// widget can be assembled before checking a single error.
type builder struct {
	doc dom.Document
	err error
}

func (b *builder) el(tag string, attrs ...string) dom.Element {
	if b.err != nil {
		return nil
	}
	el, err := b.doc.CreateElement(tag)
	if err != nil {
		b.err = err
		return nil
	}
	for i := 0; i+1 < len(attrs); i += 2 {
		el.SetAttribute(attrs[i], attrs[i+1])
	}
	return el
}

func (u *ui) ensureStick(m *Monitor) dom.Element {
	if u.stick != nil {
		return u.stick
	}
	b := &builder{doc: m.env.Document}
	stick := b.el("div",
		"id", StickID,
		"role", "button",
		"tabindex", "0",
		"aria-label", "Visual performance options",
		"style", stickStyle,
	)
	if b.err != nil {
		m.logger.Warn("visual: creating status stick", "error", b.err)
		return nil
	}

	stick.SetTextContent(fmt.Sprintf("VIS FULL · %s · PERF …", m.hwLabel))
	stick.SetEventHandler("onclick", events.AdaptNoArgEvent(m.TogglePanel))
	stick.SetEventHandler("onkeydown", events.AdaptActivateKey(m.TogglePanel))
	m.env.Body.AppendChild(stick)
	u.stick = stick
	return stick
}

// updateStick writes the status line. With metrics it shows the live
// numbers, otherwise whether measuring is on for the mode.
func (u *ui) updateStick(m *Monitor, mode Mode, metrics *Metrics) {
	stick := u.ensureStick(m)
	if stick == nil {
		return
	}
	if metrics == nil {
		perf := "ON"
		if mode == Low {
			perf = "OFF"
		}
		stick.SetTextContent(fmt.Sprintf("VIS %s · %s · PERF %s", mode.label(), m.hwLabel, perf))
		return
	}

	lt := "n/a"
	if metrics.LongTaskAvailable {
		lt = fmt.Sprintf("%dms", int64(math.Round(metrics.LongTaskMs)))
	}
	stick.SetTextContent(fmt.Sprintf("VIS %s · %s · FPS %d · J %d · LT %s",
		mode.label(), m.hwLabel, int64(math.Round(metrics.FPS)), metrics.Jank, lt))
}

func (u *ui) updatePanel(mode Mode) {
	if u.toggle != nil {
		u.toggle.SetProperty("checked", mode == Low)
	}
	if u.status != nil {
		if mode == Low {
			u.status.SetTextContent("Low visuals enabled")
		} else {
			u.status.SetTextContent("Full visuals enabled")
		}
	}
}

func (u *ui) togglePanel(m *Monitor) {
	if u.panel != nil {
		u.closePanel()
		return
	}

	b := &builder{doc: m.env.Document}
	panel := b.el("div", "id", PanelID, "style", panelStyle)
	title := b.el("div", "style", panelTitleStyle)
	label := b.el("label", "style", panelLabelStyle)
	toggle := b.el("input", "type", "checkbox", "id", PanelToggleID)
	labelText := b.el("span")
	status := b.el("div", "id", PanelStatusID, "style", panelStatusStyle)
	if b.err != nil {
		m.logger.Warn("visual: creating panel", "error", b.err)
		return
	}

	title.SetTextContent("Visual Controls")
	labelText.SetTextContent("Low visuals")
	toggle.SetEventHandler("onchange", events.AdaptCheckedEvent(func(low bool) {
		if low {
			m.SetMode(Low)
		} else {
			m.SetMode(Full)
		}
	}))

	label.AppendChild(toggle)
	label.AppendChild(labelText)
	panel.AppendChild(title)
	panel.AppendChild(label)
	panel.AppendChild(status)
	m.env.Body.AppendChild(panel)

	u.panel, u.toggle, u.status = panel, toggle, status
	u.updatePanel(m.mode.Get())
}

func (u *ui) closePanel() {
	if u.panel == nil {
		return
	}
	release(u.toggle)
	u.panel.Remove()
	u.panel, u.toggle, u.status = nil, nil, nil
}

func (u *ui) showBanner(m *Monitor) {
	b := &builder{doc: m.env.Document}
	banner := b.el("div",
		"id", BannerID,
		"class", "visual-banner",
		"role", "status",
		"aria-live", "polite",
	)
	text := b.el("div", "class", "visual-banner__text")
	actions := b.el("div", "class", "visual-banner__actions")
	reduce := b.el("button", "type", "button", "class", "visual-banner__button visual-banner__button--primary", ActionAttr, ActionReduce)
	dismiss := b.el("button", "type", "button", "class", "visual-banner__button", ActionAttr, ActionDismiss)
	if b.err != nil {
		m.logger.Warn("visual: creating banner", "error", b.err)
		return
	}

	text.SetTextContent("Performance looks strained. Reduce visuals?")
	reduce.SetTextContent("Reduce")
	reduce.SetEventHandler("onclick", events.AdaptNoArgEvent(m.Reduce))
	dismiss.SetTextContent("Dismiss")
	dismiss.SetEventHandler("onclick", events.AdaptNoArgEvent(m.Dismiss))

	actions.AppendChild(reduce)
	actions.AppendChild(dismiss)
	banner.AppendChild(text)
	banner.AppendChild(actions)
	m.env.Body.AppendChild(banner)

	u.banner = banner
	u.bannerButtons = []dom.Element{reduce, dismiss}
}

func (u *ui) removeBanner() {
	if u.banner == nil {
		return
	}
	for _, btn := range u.bannerButtons {
		release(btn)
	}
	u.banner.Remove()
	u.banner, u.bannerButtons = nil, nil
}

func (u *ui) removeAll() {
	u.removeBanner()
	u.closePanel()
	if u.stick != nil {
		release(u.stick)
		u.stick.Remove()
		u.stick = nil
	}
}

func release(el dom.Element) {
	if r, ok := el.(dom.Releaser); ok {
		r.ReleaseHandlers()
	}
}
