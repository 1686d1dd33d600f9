//go:build js && wasm

// Command neonjsx is the WebAssembly page bootstrap: it mounts the Sight Mode
// panel into #app and starts the visual performance monitor.
package main

import (
	"syscall/js"

	"github.com/vcrobe/neonjsx/components"
	"github.com/vcrobe/neonjsx/console"
	"github.com/vcrobe/neonjsx/dom/jsdom"
	"github.com/vcrobe/neonjsx/runtime"
	"github.com/vcrobe/neonjsx/signals"
	"github.com/vcrobe/neonjsx/visual"
)

// logLevel can be set at link time: -ldflags "-X main.logLevel=debug".
var logLevel = "info"

const mountSelector = "#app"

func main() {
	logger := console.NewLogger(logLevel)
	doc := jsdom.New()

	start := func() {
		env, err := visual.BrowserEnv(doc)
		if err != nil {
			logger.Error("building browser env", "error", err)
			return
		}

		mode := signals.New(visual.Full)
		monitor, err := visual.New(env, mode, visual.DefaultConfig(), logger)
		if err != nil {
			logger.Error("creating visual monitor", "error", err)
			return
		}

		if container := doc.QuerySelector(mountSelector); container != nil {
			renderer := runtime.NewRenderer(doc, container, logger)
			renderer.SetCurrentComponent(components.NewSightMode(mode, monitor.SetMode))
			if err := renderer.RenderRoot(); err != nil {
				logger.Error("rendering page", "error", err)
			}
		} else {
			logger.Warn("mount point not found", "selector", mountSelector)
		}

		monitor.Start()
	}

	document := js.Global().Get("document")
	if document.Get("readyState").String() == "loading" {
		var onReady js.Func
		onReady = js.FuncOf(func(js.Value, []js.Value) any {
			onReady.Release()
			start()
			return nil
		})
		document.Call("addEventListener", "DOMContentLoaded", onReady, map[string]any{"once": true})
	} else {
		start()
	}

	// Keep the Go program running
	select {}
}
