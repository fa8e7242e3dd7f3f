//go:build windows

package main

import (
	"sync/atomic"

	"github.com/jchv/go-webview2"
)

// webviewSurface posts commands into the WebView2 page. Eval must run on
// the webview thread, so every post goes through Dispatch.
type webviewSurface struct {
	w     webview2.WebView
	ready atomic.Bool
}

func newWebviewSurface(w webview2.WebView) *webviewSurface {
	return &webviewSurface{w: w}
}

func (s *webviewSurface) setReady(ok bool) { s.ready.Store(ok) }

func (s *webviewSurface) Post(cmd Command) error {
	if !s.ready.Load() {
		return errSurfaceNotReady
	}
	script, err := encodeCommandScript(cmd)
	if err != nil {
		return err
	}
	s.w.Dispatch(func() {
		defer safeDefer("webviewSurface.Eval")
		s.w.Eval(script)
	})
	return nil
}
