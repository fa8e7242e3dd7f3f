package main

import (
	"errors"
	"fmt"
	"log"
)

// autostarter toggles launching the overlay at login.
type autostarter interface {
	Enabled() bool
	SetEnabled(on bool) error
}

// readySetter is implemented by surfaces that drop commands until the page
// has loaded.
type readySetter interface {
	setReady(ok bool)
}

type notifier interface {
	Notify(title, message string)
}

// overlayApp owns all process state. Handlers run on the control loop and
// receive the app by reference.
type overlayApp struct {
	cfg     Config
	overlay OverlayState
	shell   Shell
	surface Surface
	coord   *Coordinator
	tray    *TrayController

	autostart  autostarter
	notify     notifier
	openPath   func(path string) error
	logDir     string
	surfaceLog *log.Logger
}

func newOverlayApp(cfg Config, shell Shell, surface Surface) *overlayApp {
	a := &overlayApp{
		cfg:     cfg,
		overlay: defaultOverlayState(),
		shell:   shell,
		surface: surface,
		coord:   NewCoordinator(surface, cfg.DetectionPolicy),
	}
	a.tray = newTrayController(a.buildMenu)
	a.coord.OnRebuild(a.tray.Rebuild)
	a.coord.OnResolved(a.onDetectionResolved)
	return a
}

// start applies the initial window configuration and builds the first menu.
func (a *overlayApp) start() {
	w, h := scaledSize(a.overlay.Scale)
	a.shell.SetSize(w, h)
	a.shell.SetOpacity(a.overlay.Opacity)
	a.place()
	a.tray.Rebuild()
}

func (a *overlayApp) handleSurfaceRaw(raw string) {
	msg, err := decodeSurfaceMessage(raw)
	if err != nil {
		logger.Printf("[SURFACE] %v", err)
		return
	}
	a.handleSurfaceMessage(msg)
}

func (a *overlayApp) handleSurfaceMessage(msg SurfaceMessage) {
	switch msg.Type {
	case MsgReply:
		a.coord.HandleReply(*msg.Reply)
	case MsgControllerConnected:
		a.coord.OnControllerConnected(*msg.Gamepad)
	case MsgDetectionFinished:
		a.coord.OnDetectionFinished()
	case MsgReady:
		logger.Printf("[SURFACE] ready")
		if rs, ok := a.surface.(readySetter); ok {
			rs.setReady(true)
		}
		a.coord.Notify(Command{Kind: CmdSetDebug, On: a.cfg.Debug})
		a.coord.Notify(Command{Kind: CmdSetDraggable, On: a.overlay.Anchor == AnchorFree})
		a.coord.Sync()
	case MsgLog:
		if a.cfg.Debug && a.surfaceLog != nil {
			a.surfaceLog.Print(msg.Line)
		}
	}
}

func (a *overlayApp) onDetectionResolved(mode SkinMode) {
	if !a.cfg.NotifyOnDetect || a.notify == nil {
		return
	}
	if mode == skinNone {
		a.notify.Notify(appTitle, "Controller connected")
		return
	}
	a.notify.Notify(appTitle, fmt.Sprintf("Controller detected: %s", mode.Label()))
}

func (a *overlayApp) reassertTopmost() {
	if a.overlay.AlwaysOnTop {
		a.shell.SetAlwaysOnTop(true)
	}
}

func (a *overlayApp) setOpacity(v float64) {
	logger.Printf("[TRAY] opacity %.2f", v)
	a.overlay.Opacity = v
	a.shell.SetOpacity(v)
	a.reassertTopmost()
	a.tray.Rebuild()
}

func (a *overlayApp) setScale(scale float64) {
	logger.Printf("[TRAY] size %.2f", scale)
	a.overlay.Scale = scale
	w, h := scaledSize(scale)
	a.shell.SetSize(w, h)
	a.place()
	a.reassertTopmost()
	a.tray.Rebuild()
}

func (a *overlayApp) placeOn(displayID int, corner Corner) {
	logger.Printf("[TRAY] place display=%d corner=%s", displayID, corner)
	id := displayID
	a.overlay.DisplayID = &id
	a.overlay.Corner = corner
	a.place()
	a.tray.Rebuild()
}

// place moves the window to the configured corner of the configured
// display. An unknown display leaves the window where it is.
func (a *overlayApp) place() {
	d, ok := findDisplay(a.shell.Displays(), a.overlay.DisplayID)
	if !ok {
		logger.Printf("[TRAY] display not found; window not moved")
		return
	}
	w, h := a.shell.Size()
	x, y := cornerPosition(d.WorkArea, w, h, a.overlay.Corner)
	a.shell.SetBounds(Rect{X: x, Y: y, Width: w, Height: h})
	a.reassertTopmost()
}

func (a *overlayApp) setClickThrough(on bool) {
	logger.Printf("[TRAY] click-through %v", on)
	a.overlay.ClickThrough = on
	a.shell.SetClickThrough(on)
	a.reassertTopmost()
	a.tray.Rebuild()
}

func (a *overlayApp) setAlwaysOnTop(on bool) {
	logger.Printf("[TRAY] always on top %v", on)
	a.overlay.AlwaysOnTop = on
	a.shell.SetAlwaysOnTop(on)
	a.tray.Rebuild()
}

func (a *overlayApp) setAnchor(anchor Anchor) {
	logger.Printf("[TRAY] anchor %s", anchor)
	a.overlay.Anchor = anchor
	a.coord.Notify(Command{Kind: CmdSetDraggable, On: anchor == AnchorFree})
	a.tray.Rebuild()
}

func (a *overlayApp) toggleVisibility() {
	if a.shell.IsVisible() {
		a.hideOverlay()
		return
	}
	a.shell.Show()
	a.reassertTopmost()
	a.tray.Rebuild()
}

// hideOverlay handles a close request on the overlay window. It never
// shows a hidden window.
func (a *overlayApp) hideOverlay() {
	a.shell.Hide()
	a.tray.Rebuild()
}

func (a *overlayApp) requestSkin(mode SkinMode) {
	logger.Printf("[TRAY] skin %s", mode)
	if err := a.coord.RequestSkinChange(mode); err != nil && !errors.Is(err, ErrDetectionPending) {
		logger.Printf("[TRAY] skin change: %v", err)
	}
	a.reassertTopmost()
}

func (a *overlayApp) requestColor(color string) {
	logger.Printf("[TRAY] color %q", color)
	if err := a.coord.RequestColorChange(color); err != nil && !errors.Is(err, ErrDetectionPending) {
		logger.Printf("[TRAY] color change: %v", err)
	}
	a.reassertTopmost()
}

func (a *overlayApp) requestBackground(name string) {
	logger.Printf("[TRAY] background %s", name)
	if err := a.coord.RequestBackgroundChange(name); err != nil {
		logger.Printf("[TRAY] background change: %v", err)
	}
	a.reassertTopmost()
}

func (a *overlayApp) setTriggersMeter(on bool) {
	logger.Printf("[TRAY] triggers meter %v", on)
	a.coord.RequestTriggersMeter(on)
	a.reassertTopmost()
}

func (a *overlayApp) setAutostart(on bool) {
	if a.autostart == nil {
		return
	}
	if err := a.autostart.SetEnabled(on); err != nil {
		logger.Printf("[TRAY] autostart: %v", err)
	}
	a.tray.Rebuild()
}

func (a *overlayApp) openLogs() {
	if a.openPath == nil || a.logDir == "" {
		return
	}
	if err := a.openPath(a.logDir); err != nil {
		logger.Printf("[TRAY] open %s: %v", a.logDir, err)
	}
}

func (a *overlayApp) quit() {
	logger.Printf("[TRAY] exit")
	a.shell.Quit()
}
