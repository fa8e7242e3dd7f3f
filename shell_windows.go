//go:build windows

package main

import (
	"sync"
	"syscall"
	"unsafe"

	"github.com/jchv/go-webview2"
	"github.com/lxn/win"
)

const (
	LWA_ALPHA             = 0x2
	MONITORINFOF_PRIMARY  = 0x1
	overlaySetPosNoChange = win.SWP_NOMOVE | win.SWP_NOSIZE | win.SWP_NOACTIVATE

	hwndTopmost   = ^uintptr(0)
	hwndNoTopmost = ^uintptr(1)
)

var (
	setLayeredWindowAttributes = user32.NewProc("SetLayeredWindowAttributes")
	enumDisplayMonitors        = user32.NewProc("EnumDisplayMonitors")

	monitorEnumOnce sync.Once
	monitorEnumCB   uintptr
	monitorEnumMu   sync.Mutex
	monitorEnumOut  []Display
)

// winShell drives the WebView2 top-level window as a borderless layered
// overlay.
type winShell struct {
	w    webview2.WebView
	hwnd win.HWND
	quit func()
}

func newWinShell(w webview2.WebView) *winShell {
	return &winShell{w: w, hwnd: win.HWND(w.Window())}
}

// applyOverlayStyle strips the frame, hides the taskbar button and makes
// the window layered so opacity can be set.
func (s *winShell) applyOverlayStyle() {
	style := uint32(win.GetWindowLong(s.hwnd, win.GWL_STYLE))
	style &^= win.WS_CAPTION | win.WS_THICKFRAME | win.WS_SYSMENU | win.WS_MINIMIZEBOX | win.WS_MAXIMIZEBOX
	style |= win.WS_POPUP
	win.SetWindowLong(s.hwnd, win.GWL_STYLE, int32(style))

	ex := uint32(win.GetWindowLong(s.hwnd, win.GWL_EXSTYLE))
	ex &^= win.WS_EX_APPWINDOW
	ex |= win.WS_EX_LAYERED | win.WS_EX_TOOLWINDOW
	win.SetWindowLong(s.hwnd, win.GWL_EXSTYLE, int32(ex))

	win.SetWindowPos(s.hwnd, 0, 0, 0, 0, 0, overlaySetPosNoChange|win.SWP_NOZORDER|win.SWP_FRAMECHANGED)
}

func (s *winShell) Show() {
	win.ShowWindow(s.hwnd, win.SW_SHOWNOACTIVATE)
}

func (s *winShell) Hide() {
	win.ShowWindow(s.hwnd, win.SW_HIDE)
}

func (s *winShell) IsVisible() bool {
	return win.IsWindowVisible(s.hwnd)
}

func (s *winShell) SetOpacity(alpha float64) {
	if alpha < 0 {
		alpha = 0
	} else if alpha > 1 {
		alpha = 1
	}
	a := byte(alpha*255 + 0.5)
	if r, _, err := setLayeredWindowAttributes.Call(uintptr(s.hwnd), 0, uintptr(a), LWA_ALPHA); r == 0 {
		logger.Printf("[SHELL] SetLayeredWindowAttributes: %v", err)
	}
}

func (s *winShell) SetSize(width, height int) {
	win.SetWindowPos(s.hwnd, 0, 0, 0, int32(width), int32(height), win.SWP_NOMOVE|win.SWP_NOZORDER|win.SWP_NOACTIVATE)
}

func (s *winShell) Size() (int, int) {
	var rc win.RECT
	if !win.GetWindowRect(s.hwnd, &rc) {
		return scaledSize(1)
	}
	return int(rc.Right - rc.Left), int(rc.Bottom - rc.Top)
}

func (s *winShell) SetBounds(r Rect) {
	win.SetWindowPos(s.hwnd, 0, int32(r.X), int32(r.Y), int32(r.Width), int32(r.Height), win.SWP_NOZORDER|win.SWP_NOACTIVATE)
}

func (s *winShell) SetClickThrough(on bool) {
	ex := uint32(win.GetWindowLong(s.hwnd, win.GWL_EXSTYLE))
	if on {
		ex |= win.WS_EX_TRANSPARENT
	} else {
		ex &^= win.WS_EX_TRANSPARENT
	}
	win.SetWindowLong(s.hwnd, win.GWL_EXSTYLE, int32(ex))
}

func (s *winShell) SetAlwaysOnTop(on bool) {
	after := hwndNoTopmost
	if on {
		after = hwndTopmost
	}
	win.SetWindowPos(s.hwnd, win.HWND(after), 0, 0, 0, 0, overlaySetPosNoChange)
}

func (s *winShell) Displays() []Display {
	monitorEnumOnce.Do(func() {
		monitorEnumCB = syscall.NewCallback(func(hMon win.HMONITOR, hdc win.HDC, rc *win.RECT, lParam uintptr) uintptr {
			var mi win.MONITORINFO
			mi.CbSize = uint32(unsafe.Sizeof(mi))
			if win.GetMonitorInfo(hMon, &mi) {
				monitorEnumOut = append(monitorEnumOut, Display{
					ID:       int(hMon),
					Primary:  mi.DwFlags&MONITORINFOF_PRIMARY != 0,
					Bounds:   rectFromWin(mi.RcMonitor),
					WorkArea: rectFromWin(mi.RcWork),
				})
			}
			return 1
		})
	})

	monitorEnumMu.Lock()
	defer monitorEnumMu.Unlock()
	monitorEnumOut = nil
	enumDisplayMonitors.Call(0, 0, monitorEnumCB, 0)
	out := make([]Display, len(monitorEnumOut))
	copy(out, monitorEnumOut)
	return out
}

func rectFromWin(r win.RECT) Rect {
	return Rect{X: int(r.Left), Y: int(r.Top), Width: int(r.Right - r.Left), Height: int(r.Bottom - r.Top)}
}

func (s *winShell) Quit() {
	if s.quit != nil {
		s.quit()
	}
}
