package main

import (
	"fmt"
	"math"
)

const (
	baseWidth    = 600
	baseHeight   = 450
	cornerMargin = 20
)

type Anchor string

const (
	AnchorFree   Anchor = "free"
	AnchorLocked Anchor = "locked"
)

type Corner string

const (
	CornerTopLeft     Corner = "top-left"
	CornerTopRight    Corner = "top-right"
	CornerBottomLeft  Corner = "bottom-left"
	CornerBottomRight Corner = "bottom-right"
	CornerCenter      Corner = "center"
)

var cornerChoices = []struct {
	Corner Corner
	Label  string
}{
	{CornerTopLeft, "Top-Left"},
	{CornerTopRight, "Top-Right"},
	{CornerBottomLeft, "Bottom-Left"},
	{CornerBottomRight, "Bottom-Right"},
	{CornerCenter, "Center"},
}

var opacityChoices = []float64{1.0, 0.8, 0.6, 0.4}

var scaleChoices = []float64{0.5, 0.75, 1.0, 1.5, 2.0}

func percentLabel(v float64) string {
	return fmt.Sprintf("%d%%", int(math.Round(v*100)))
}

// OverlayState is the window configuration chosen from the tray menu. It
// lives for the whole process and is never written to disk.
type OverlayState struct {
	Opacity      float64
	Scale        float64
	ClickThrough bool
	AlwaysOnTop  bool
	Anchor       Anchor
	// DisplayID is nil for the primary display.
	DisplayID *int
	Corner    Corner
}

func defaultOverlayState() OverlayState {
	return OverlayState{
		Opacity:     1.0,
		Scale:       1.0,
		AlwaysOnTop: true,
		Anchor:      AnchorFree,
		Corner:      CornerTopLeft,
	}
}

type Rect struct {
	X, Y, Width, Height int
}

type Display struct {
	ID       int
	Primary  bool
	Bounds   Rect
	WorkArea Rect
}

// Shell is the window system seen by the app: the overlay window plus
// display enumeration.
type Shell interface {
	Show()
	Hide()
	IsVisible() bool
	SetOpacity(alpha float64)
	SetSize(width, height int)
	Size() (width, height int)
	SetBounds(r Rect)
	SetClickThrough(on bool)
	SetAlwaysOnTop(on bool)
	Displays() []Display
	Quit()
}

func scaledSize(scale float64) (int, int) {
	return int(math.Round(baseWidth * scale)), int(math.Round(baseHeight * scale))
}

// cornerPosition returns the top-left point of a w x h window anchored to
// corner inside the work area wa.
func cornerPosition(wa Rect, w, h int, corner Corner) (int, int) {
	switch corner {
	case CornerTopRight:
		return wa.X + wa.Width - w - cornerMargin, wa.Y + cornerMargin
	case CornerBottomLeft:
		return wa.X + cornerMargin, wa.Y + wa.Height - h - cornerMargin
	case CornerBottomRight:
		return wa.X + wa.Width - w - cornerMargin, wa.Y + wa.Height - h - cornerMargin
	case CornerCenter:
		return wa.X + int(math.Round(float64(wa.Width-w)/2)), wa.Y + int(math.Round(float64(wa.Height-h)/2))
	default:
		return wa.X + cornerMargin, wa.Y + cornerMargin
	}
}

// findDisplay returns the display with the given id, or the primary display
// when id is nil.
func findDisplay(displays []Display, id *int) (Display, bool) {
	for _, d := range displays {
		if id == nil && d.Primary {
			return d, true
		}
		if id != nil && d.ID == *id {
			return d, true
		}
	}
	if id == nil && len(displays) > 0 {
		return displays[0], true
	}
	return Display{}, false
}

func (s OverlayState) currentDisplay(displays []Display) int {
	if s.DisplayID != nil {
		return *s.DisplayID
	}
	if d, ok := findDisplay(displays, nil); ok {
		return d.ID
	}
	return -1
}
