//go:build js && wasm

package visual

import (
	"errors"
	"fmt"
	"math"
	"syscall/js"

	"github.com/vcrobe/neonjsx/dom/jsdom"
	"github.com/vcrobe/neonjsx/storage"
)

// BrowserEnv builds an Env from the running browser page.
func BrowserEnv(doc *jsdom.Document) (Env, error) {
	if doc == nil {
		return Env{}, errors.New("visual: no document")
	}
	body := doc.Body()
	if body == nil {
		return Env{}, errors.New("visual: document has no body yet")
	}

	env := Env{
		Document: doc,
		Body:     body,
		Local:    storage.Local(),
		Session:  storage.Session(),
		Frames:   rafScheduler{},
		Now:      performanceNow,
		Hints:    browserHints(),
		PrefersReducedMotion: func() bool {
			return matchMedia("(prefers-reduced-motion: reduce)")
		},
		Visible: func() bool {
			return doc.VisibilityState() != "hidden"
		},
	}
	if js.Global().Get("PerformanceObserver").Truthy() {
		env.LongTasks = longTaskObserver{}
	}
	return env, nil
}

type rafScheduler struct{}

func (rafScheduler) RequestFrame(fn func(float64)) {
	var cb js.Func
	cb = js.FuncOf(func(this js.Value, args []js.Value) any {
		cb.Release()
		ts := performanceNow()
		if len(args) > 0 && args[0].Type() == js.TypeNumber {
			ts = args[0].Float()
		}
		fn(ts)
		return nil
	})
	js.Global().Call("requestAnimationFrame", cb)
}

func performanceNow() float64 {
	perf := js.Global().Get("performance")
	if !perf.Truthy() {
		return js.Global().Get("Date").Call("now").Float()
	}
	return perf.Call("now").Float()
}

type longTaskObserver struct{}

// Observe registers a PerformanceObserver for "longtask" entries. Browsers
// that know PerformanceObserver but not the longtask type throw here, which
// is reported as an error.
func (longTaskObserver) Observe(fn func([]float64)) (stop func(), err error) {
	var (
		cb      js.Func
		created bool
	)
	defer func() {
		if rec := recover(); rec != nil {
			if created {
				cb.Release()
			}
			stop, err = nil, fmt.Errorf("observing long tasks: %v", rec)
		}
	}()

	cb = js.FuncOf(func(this js.Value, args []js.Value) any {
		if len(args) == 0 {
			return nil
		}
		entries := args[0].Call("getEntries")
		durations := make([]float64, 0, entries.Length())
		for i := 0; i < entries.Length(); i++ {
			durations = append(durations, entries.Index(i).Get("duration").Float())
		}
		fn(durations)
		return nil
	})
	created = true
	observer := js.Global().Get("PerformanceObserver").New(cb)
	observer.Call("observe", map[string]any{"type": "longtask", "buffered": true})

	return func() {
		observer.Call("disconnect")
		cb.Release()
	}, nil
}

func browserHints() DeviceHints {
	nav := js.Global().Get("navigator")
	if !nav.Truthy() {
		return DeviceHints{}
	}
	var h DeviceHints
	if v, ok := finite(nav.Get("hardwareConcurrency")); ok {
		cores := int(v)
		h.Cores = &cores
	}
	if v, ok := finite(nav.Get("deviceMemory")); ok {
		h.MemoryGB = &v
	}
	return h
}

func finite(v js.Value) (float64, bool) {
	if v.Type() != js.TypeNumber {
		return 0, false
	}
	f := v.Float()
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

func matchMedia(query string) bool {
	mm := js.Global().Get("matchMedia")
	if mm.Type() != js.TypeFunction {
		return false
	}
	return js.Global().Call("matchMedia", query).Get("matches").Truthy()
}
