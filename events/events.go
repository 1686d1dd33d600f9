// Package events adapts plain Go callbacks to dom.EventHandler.
// No build tags: the adapters only use the dom.Event contract.
package events

import "github.com/vcrobe/neonjsx/dom"

// AdaptNoArgEvent wraps a handler that does not need the event.
func AdaptNoArgEvent(handler func()) dom.EventHandler {
	return func(dom.Event) { handler() }
}

// AdaptCheckedEvent wraps a handler for checkbox change events; it receives
// the checkbox state after the change.
func AdaptCheckedEvent(handler func(checked bool)) dom.EventHandler {
	return func(ev dom.Event) { handler(ev.Checked()) }
}

// AdaptActivateKey wraps a keydown handler that fires on Enter or Space, the
// keys that activate an element with role="button". The default action of
// those keys is prevented; other keys are ignored.
func AdaptActivateKey(handler func()) dom.EventHandler {
	return func(ev dom.Event) {
		if k := ev.Key(); k == "Enter" || k == " " {
			ev.PreventDefault()
			handler()
		}
	}
}
