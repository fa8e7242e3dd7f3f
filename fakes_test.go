package main

import (
	"fmt"
)

// fakeSurface models the display surface closely enough to answer commands
// with snapshots. Replies are only delivered by flush.
type fakeSurface struct {
	posted []Command
	acked  int
	err    error
	fail   map[CommandKind]bool
	state  SurfaceSnapshot
}

func newFakeSurface() *fakeSurface {
	return &fakeSurface{
		fail:  map[CommandKind]bool{},
		state: SurfaceSnapshot{Skin: SkinAuto, BackgroundStyle: "transparent", ActiveGamepadIndex: -1},
	}
}

func (s *fakeSurface) Post(cmd Command) error {
	if s.err != nil {
		return s.err
	}
	s.posted = append(s.posted, cmd)
	return nil
}

func (s *fakeSurface) connect(index int, id string) GamepadIdentity {
	g := GamepadIdentity{Index: index, RawID: id}
	s.state.Gamepads = append(s.state.Gamepads, g)
	s.state.ActiveGamepadIndex = index
	return g
}

func (s *fakeSurface) apply(cmd Command) Reply {
	if s.fail[cmd.Kind] {
		return Reply{Seq: cmd.Seq, OK: false, Error: fmt.Sprintf("%s failed", cmd.Kind), State: s.snapshot()}
	}
	switch cmd.Kind {
	case CmdChangeSkin:
		s.state.Skin = cmd.Skin
	case CmdChangeColor:
		s.state.ColorName = cmd.Color
	case CmdChangeBackground:
		s.state.BackgroundStyle = cmd.Background
	case CmdToggleTriggers:
		s.state.TriggersMeter = cmd.On
	case CmdSetActiveGamepad:
		if !s.state.hasGamepad(cmd.Index) {
			return Reply{Seq: cmd.Seq, OK: false, Error: "no gamepad", State: s.snapshot()}
		}
		s.state.ActiveGamepadIndex = cmd.Index
	}
	return Reply{Seq: cmd.Seq, OK: true, State: s.snapshot()}
}

func (s *fakeSurface) snapshot() *SurfaceSnapshot {
	st := s.state
	st.Gamepads = append([]GamepadIdentity(nil), s.state.Gamepads...)
	return &st
}

// flush answers every command not yet answered, including commands posted
// while flushing.
func (s *fakeSurface) flush(c *Coordinator) {
	for s.step(c) {
	}
}

// step answers the oldest unanswered command and reports whether there was one.
func (s *fakeSurface) step(c *Coordinator) bool {
	if s.acked >= len(s.posted) {
		return false
	}
	cmd := s.posted[s.acked]
	s.acked++
	c.HandleReply(s.apply(cmd))
	return true
}

func (s *fakeSurface) kinds() []CommandKind {
	out := make([]CommandKind, 0, len(s.posted))
	for _, c := range s.posted {
		out = append(out, c.Kind)
	}
	return out
}

func (s *fakeSurface) count(kind CommandKind) int {
	n := 0
	for _, c := range s.posted {
		if c.Kind == kind {
			n++
		}
	}
	return n
}

type fakeShell struct {
	visible      bool
	opacity      float64
	w, h         int
	bounds       Rect
	clickThrough bool
	topmost      bool
	topmostCalls int
	displays     []Display
	quit         bool
}

func newFakeShell() *fakeShell {
	return &fakeShell{
		displays: []Display{
			{ID: 1, Primary: true, Bounds: Rect{0, 0, 1920, 1080}, WorkArea: Rect{0, 0, 1920, 1040}},
			{ID: 2, Bounds: Rect{1920, 0, 1280, 1024}, WorkArea: Rect{1920, 0, 1280, 984}},
		},
	}
}

func (s *fakeShell) Show()                     { s.visible = true }
func (s *fakeShell) Hide()                     { s.visible = false }
func (s *fakeShell) IsVisible() bool           { return s.visible }
func (s *fakeShell) SetOpacity(alpha float64)  { s.opacity = alpha }
func (s *fakeShell) SetSize(width, height int) { s.w, s.h = width, height }
func (s *fakeShell) Size() (int, int)          { return s.w, s.h }
func (s *fakeShell) SetBounds(r Rect) {
	s.bounds = r
	s.w, s.h = r.Width, r.Height
}
func (s *fakeShell) SetClickThrough(on bool) { s.clickThrough = on }
func (s *fakeShell) SetAlwaysOnTop(on bool) {
	s.topmost = on
	s.topmostCalls++
}
func (s *fakeShell) Displays() []Display { return s.displays }
func (s *fakeShell) Quit()               { s.quit = true }

type fakeAutostart struct {
	on  bool
	err error
}

func (a *fakeAutostart) Enabled() bool { return a.on }
func (a *fakeAutostart) SetEnabled(on bool) error {
	if a.err != nil {
		return a.err
	}
	a.on = on
	return nil
}

type fakeNotifier struct {
	messages []string
}

func (n *fakeNotifier) Notify(title, message string) {
	n.messages = append(n.messages, message)
}
