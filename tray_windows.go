//go:build windows

package main

import (
	"runtime"
	"sync"
	"sync/atomic"
	"syscall"
	"unsafe"

	"github.com/lxn/win"
)

const (
	WM_APP          = 0x8000
	WM_APP_TRAY_DO  = WM_APP + 1
	WM_APP_TRAY_MSG = WM_APP + 10
	WM_HOTKEY       = 0x0312
	WM_CONTEXTMENU  = 0x007B

	NIN_SELECT    = win.WM_USER + 0
	NIN_KEYSELECT = win.WM_USER + 1

	MOD_NOREPEAT = 0x4000

	mfChecked = 0x0008
	mfPopup   = 0x0010

	toggleHotkeyID = 1
)

var (
	user32         = syscall.NewLazyDLL("user32.dll")
	appendMenuW    = user32.NewProc("AppendMenuW")
	trackPopupMenu = user32.NewProc("TrackPopupMenu")
	registerHotKey = user32.NewProc("RegisterHotKey")
	unregHotKey    = user32.NewProc("UnregisterHotKey")
	taskbarCreated = win.RegisterWindowMessage(syscall.StringToUTF16Ptr("TaskbarCreated"))
)

// trayHost owns the hidden tray window. Its thread is the control thread:
// the control loop is drained from its window procedure.
type trayHost struct {
	hwnd   atomic.Uintptr
	nid    win.NOTIFYICONDATA
	nidMu  sync.Mutex
	loop   *controlLoop
	app    *overlayApp
	hotkey Hotkey
}

func newTrayHost(hotkey Hotkey) *trayHost {
	return &trayHost{hotkey: hotkey}
}

func (t *trayHost) window() win.HWND { return win.HWND(t.hwnd.Load()) }

// wake asks the tray thread to drain the control loop.
func (t *trayHost) wake() {
	if h := t.window(); h != 0 {
		win.PostMessage(h, WM_APP_TRAY_DO, 0, 0)
	}
}

// run creates the tray window and icon, then pumps messages until the
// window is destroyed. It must run on its own goroutine.
func (t *trayHost) run() {
	defer safeDefer("trayHost.run")
	runtime.LockOSThread()
	defer runtime.UnlockOSThread()

	hInst := win.GetModuleHandle(nil)
	className, _ := syscall.UTF16PtrFromString("GamepadOverlayTrayClass")
	wc := win.WNDCLASSEX{
		CbSize:        uint32(unsafe.Sizeof(win.WNDCLASSEX{})),
		LpfnWndProc:   syscall.NewCallback(t.wndProc),
		HInstance:     hInst,
		LpszClassName: className,
	}
	win.RegisterClassEx(&wc)

	windowName, _ := syscall.UTF16PtrFromString(appTitle + " Tray")
	hwnd := win.CreateWindowEx(0, className, windowName, 0, 0, 0, 0, 0, 0, 0, hInst, nil)
	if hwnd == 0 {
		logger.Printf("[TRAY] CreateWindowEx failed")
		return
	}
	t.hwnd.Store(uintptr(hwnd))

	t.nidMu.Lock()
	t.nid = win.NOTIFYICONDATA{}
	t.nid.CbSize = uint32(unsafe.Sizeof(t.nid))
	t.nid.HWnd = hwnd
	t.nid.UID = 1
	t.nid.UFlags = win.NIF_ICON | win.NIF_MESSAGE | win.NIF_TIP
	t.nid.UCallbackMessage = WM_APP_TRAY_MSG
	t.nid.HIcon = loadAppIcon(hInst)
	tip, _ := syscall.UTF16FromString(appTitle)
	copy(t.nid.SzTip[:], tip)
	t.addIconLocked()
	t.nidMu.Unlock()

	if r, _, err := registerHotKey.Call(uintptr(hwnd), toggleHotkeyID, uintptr(t.hotkey.Modifiers|MOD_NOREPEAT), uintptr(t.hotkey.Key)); r == 0 {
		logger.Printf("[HOTKEY] RegisterHotKey failed: %v", err)
	} else {
		logger.Printf("[HOTKEY] registered mods=0x%X vk=0x%X", t.hotkey.Modifiers, t.hotkey.Key)
	}

	t.loop.Drain()

	var msg win.MSG
	for win.GetMessage(&msg, 0, 0, 0) > 0 {
		win.TranslateMessage(&msg)
		win.DispatchMessage(&msg)
	}
	logger.Printf("[TRAY] message loop exited")
}

func loadAppIcon(hInst win.HINSTANCE) win.HICON {
	if h := win.LoadIcon(hInst, win.MAKEINTRESOURCE(1)); h != 0 {
		return h
	}
	return win.LoadIcon(0, win.MAKEINTRESOURCE(32512))
}

func (t *trayHost) addIconLocked() {
	win.Shell_NotifyIcon(win.NIM_ADD, &t.nid)
	t.nid.UVersion = win.NOTIFYICON_VERSION_4
	win.Shell_NotifyIcon(win.NIM_SETVERSION, &t.nid)
}

// stop removes the icon and ends the message loop. Called on the tray thread.
func (t *trayHost) stop() {
	h := t.window()
	if h == 0 {
		return
	}
	unregHotKey.Call(uintptr(h), toggleHotkeyID)
	t.nidMu.Lock()
	win.Shell_NotifyIcon(win.NIM_DELETE, &t.nid)
	t.nidMu.Unlock()
	win.DestroyWindow(h)
}

// Notify shows a balloon from the tray icon.
func (t *trayHost) Notify(title, message string) {
	infoTitle, _ := syscall.UTF16FromString(title)
	infoText, _ := syscall.UTF16FromString(message)

	t.nidMu.Lock()
	defer t.nidMu.Unlock()
	t.nid.UFlags = win.NIF_INFO
	t.nid.DwInfoFlags = win.NIIF_INFO
	copy(t.nid.SzInfoTitle[:], infoTitle)
	copy(t.nid.SzInfo[:], infoText)
	win.Shell_NotifyIcon(win.NIM_MODIFY, &t.nid)

	t.nid.UFlags = win.NIF_ICON | win.NIF_MESSAGE | win.NIF_TIP
	win.Shell_NotifyIcon(win.NIM_MODIFY, &t.nid)
}

func (t *trayHost) wndProc(hwnd win.HWND, msg uint32, wParam, lParam uintptr) uintptr {
	defer safeDefer("trayHost.wndProc")

	if msg == taskbarCreated {
		t.nidMu.Lock()
		t.addIconLocked()
		t.nidMu.Unlock()
		return 0
	}

	switch msg {
	case WM_APP_TRAY_MSG:
		code := uint32(lParam) & 0xFFFF
		switch code {
		case win.WM_RBUTTONUP, WM_CONTEXTMENU:
			t.showMenu()
		case win.WM_LBUTTONUP, NIN_SELECT, NIN_KEYSELECT:
			logger.Printf("[TRAY] icon clicked")
			t.app.toggleVisibility()
		}
		return 0

	case WM_APP_TRAY_DO:
		t.loop.Drain()
		return 0

	case WM_HOTKEY:
		if wParam == toggleHotkeyID {
			logger.Printf("[HOTKEY] toggle overlay")
			t.app.toggleVisibility()
		}
		return 0

	case win.WM_DESTROY:
		win.PostQuitMessage(0)
		return 0
	}
	return win.DefWindowProc(hwnd, msg, wParam, lParam)
}

// showMenu renders the latest menu build and runs the chosen item.
func (t *trayHost) showMenu() {
	hwnd := t.window()
	t.app.tray.Rebuild()

	hMenu := win.CreatePopupMenu()
	if hMenu == 0 {
		return
	}
	appendMenuItems(hMenu, t.app.tray.Items())

	var pt win.POINT
	win.GetCursorPos(&pt)
	win.SetForegroundWindow(hwnd)

	cmd, _, _ := trackPopupMenu.Call(
		uintptr(hMenu),
		uintptr(win.TPM_RETURNCMD|win.TPM_RIGHTBUTTON),
		uintptr(pt.X),
		uintptr(pt.Y),
		0,
		uintptr(hwnd),
		0,
	)
	win.PostMessage(hwnd, 0, 0, 0)
	win.DestroyMenu(hMenu)

	if cmd != 0 && !t.app.tray.Click(uint16(cmd)) {
		logger.Printf("[TRAY] stale menu command %d", cmd)
	}
}

func appendMenuItems(hMenu win.HMENU, items []MenuItem) {
	for _, it := range items {
		if it.Kind == ItemSeparator {
			appendMenuW.Call(uintptr(hMenu), uintptr(win.MF_SEPARATOR), 0, 0)
			continue
		}
		label, _ := syscall.UTF16PtrFromString(it.Label)
		flags := uint32(win.MF_STRING)
		if !it.Enabled {
			flags |= win.MF_GRAYED
		}
		if it.Kind == ItemSubmenu {
			sub := win.CreatePopupMenu()
			appendMenuItems(sub, it.Children)
			appendMenuW.Call(uintptr(hMenu), uintptr(flags|mfPopup), uintptr(sub), uintptr(unsafe.Pointer(label)))
			continue
		}
		if it.Checked {
			flags |= mfChecked
		}
		appendMenuW.Call(uintptr(hMenu), uintptr(flags), uintptr(it.ID), uintptr(unsafe.Pointer(label)))
	}
}
