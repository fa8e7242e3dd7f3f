//go:build windows

package main

import (
	"errors"
	"fmt"
	"os"
	"syscall"
	"time"

	"github.com/jchv/go-webview2"
	"github.com/lxn/win"
	"github.com/skratchdot/open-golang/open"
)

const WA_INACTIVE = 0

func runOverlay(cfg Config) error {
	logs, err := setupLogging(cfg, time.Now())
	if err != nil {
		return err
	}
	defer logs.Close()
	logger.Printf("[STARTUP] policy=%s hotkey=%s port=%d debug=%v", cfg.DetectionPolicy, cfg.Hotkey, cfg.Port, cfg.Debug)

	hotkey, err := parseHotkey(cfg.Hotkey)
	if err != nil {
		return fmt.Errorf("hotkey: %w", err)
	}
	if cfg.ScanHID {
		go func() {
			defer safeDefer("logGameControllers")
			logGameControllers()
		}()
	}

	server, err := startUIServer(cfg.Port)
	if err != nil {
		return err
	}
	defer server.Close()

	os.Setenv("WEBVIEW2_ADDITIONAL_BROWSER_ARGUMENTS", "--disable-background-timer-throttling --disable-renderer-backgrounding --disable-backgrounding-occluded-windows --disable-extensions")

	logger.Printf("[STARTUP] creating WebView2 instance")
	w := webview2.NewWithOptions(webview2.WebViewOptions{
		Debug:     cfg.Debug,
		AutoFocus: false,
		WindowOptions: webview2.WindowOptions{
			Title:  appTitle,
			Width:  baseWidth,
			Height: baseHeight,
			IconId: 1,
		},
	})
	if w == nil {
		return errors.New("WebView2 runtime unavailable")
	}
	defer w.Destroy()

	shell := newWinShell(w)
	shell.applyOverlayStyle()
	surface := newWebviewSurface(w)
	tray := newTrayHost(hotkey)

	app := newOverlayApp(cfg, shell, surface)
	app.notify = tray
	app.openPath = open.Run
	app.logDir = logs.Dir
	app.surfaceLog = logs.SurfaceLog
	if sc, err := newStartupShortcut(""); err != nil {
		logger.Printf("[STARTUP] autostart unavailable: %v", err)
	} else {
		app.autostart = sc
	}

	loop := newControlLoop(tray.wake)
	tray.loop = loop
	tray.app = app
	shell.quit = func() {
		tray.stop()
		w.Dispatch(w.Terminate)
	}

	if err := w.Bind("overlayPost", func(raw string) {
		loop.Invoke(func() { app.handleSurfaceRaw(raw) })
	}); err != nil {
		return fmt.Errorf("bind overlayPost: %w", err)
	}
	w.Init(bridgeScript())
	subclassOverlayWindow(shell.hwnd, loop, app)

	loop.Invoke(app.start)
	go tray.run()

	logger.Printf("[STARTUP] webview navigating to %s", server.URL())
	w.Navigate(server.URL())
	app.shell.Show()

	logger.Printf("[STARTUP] entering webview run loop")
	w.Run()
	logger.Printf("[STARTUP] webview run loop exited")
	return nil
}

// subclassOverlayWindow keeps the overlay on top when it loses activation
// and turns a close request into hide.
func subclassOverlayWindow(hwnd win.HWND, loop *controlLoop, app *overlayApp) {
	var oldProc uintptr
	proc := func(h win.HWND, msg uint32, wParam, lParam uintptr) uintptr {
		switch msg {
		case win.WM_CLOSE:
			loop.Invoke(app.hideOverlay)
			return 0
		case win.WM_ACTIVATE:
			if wParam&0xFFFF == WA_INACTIVE {
				loop.Invoke(app.reassertTopmost)
			}
		}
		return win.CallWindowProc(oldProc, h, msg, wParam, lParam)
	}
	oldProc = win.SetWindowLongPtr(hwnd, win.GWLP_WNDPROC, syscall.NewCallback(proc))
}
