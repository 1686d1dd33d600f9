//go:build js && wasm

package storage

import (
	"fmt"
	"syscall/js"
)

// Web is a Store over a Web Storage object (localStorage, sessionStorage).
type Web struct {
	v js.Value
}

// Local returns window.localStorage, or Unavailable when the browser refuses
// access.
func Local() Store {
	return open("localStorage")
}

// Session returns window.sessionStorage, or Unavailable.
func Session() Store {
	return open("sessionStorage")
}

func open(name string) (s Store) {
	defer func() {
		if recover() != nil {
			s = Unavailable{}
		}
	}()
	v := js.Global().Get(name)
	if !v.Truthy() {
		return Unavailable{}
	}
	return &Web{v: v}
}

func (w *Web) Get(key string) (value string, ok bool, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			value, ok, err = "", false, fmt.Errorf("storage: get %q: %v: %w", key, rec, ErrUnavailable)
		}
	}()
	v := w.v.Call("getItem", key)
	if v.IsNull() || v.IsUndefined() {
		return "", false, nil
	}
	return v.String(), true, nil
}

func (w *Web) Set(key, value string) (err error) {
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("storage: set %q: %v: %w", key, rec, ErrUnavailable)
		}
	}()
	w.v.Call("setItem", key, value)
	return nil
}
