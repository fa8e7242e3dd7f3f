package main

import "testing"

func TestCornerPosition(t *testing.T) {
	wa := Rect{X: 100, Y: 50, Width: 1000, Height: 800}
	tests := []struct {
		corner Corner
		x, y   int
	}{
		{CornerTopLeft, 120, 70},
		{CornerTopRight, 480, 70},
		{CornerBottomLeft, 120, 380},
		{CornerBottomRight, 480, 380},
		{CornerCenter, 300, 225},
	}

	for _, tt := range tests {
		t.Run(string(tt.corner), func(t *testing.T) {
			x, y := cornerPosition(wa, 600, 450, tt.corner)
			if x != tt.x || y != tt.y {
				t.Errorf("cornerPosition(%s) = (%d, %d), want (%d, %d)", tt.corner, x, y, tt.x, tt.y)
			}
		})
	}
}

func TestCornerPositionCenterRounds(t *testing.T) {
	x, y := cornerPosition(Rect{Width: 1001, Height: 451}, 600, 450, CornerCenter)
	if x != 201 || y != 1 {
		t.Errorf("center = (%d, %d), want (201, 1)", x, y)
	}
}

func TestScaledSize(t *testing.T) {
	tests := []struct {
		scale float64
		w, h  int
	}{
		{0.5, 300, 225},
		{0.75, 450, 338},
		{1.0, 600, 450},
		{1.5, 900, 675},
		{2.0, 1200, 900},
	}
	for _, tt := range tests {
		w, h := scaledSize(tt.scale)
		if w != tt.w || h != tt.h {
			t.Errorf("scaledSize(%v) = %dx%d, want %dx%d", tt.scale, w, h, tt.w, tt.h)
		}
	}
}

func TestFindDisplay(t *testing.T) {
	displays := newFakeShell().displays
	two := 2
	missing := 7

	if d, ok := findDisplay(displays, nil); !ok || d.ID != 1 {
		t.Errorf("primary = %+v, %v", d, ok)
	}
	if d, ok := findDisplay(displays, &two); !ok || d.ID != 2 {
		t.Errorf("display 2 = %+v, %v", d, ok)
	}
	if _, ok := findDisplay(displays, &missing); ok {
		t.Error("missing display found")
	}
	noPrimary := []Display{{ID: 5}, {ID: 6}}
	if d, ok := findDisplay(noPrimary, nil); !ok || d.ID != 5 {
		t.Errorf("fallback = %+v, %v", d, ok)
	}
	if _, ok := findDisplay(nil, nil); ok {
		t.Error("display found in empty list")
	}
}

func TestPercentLabel(t *testing.T) {
	for v, want := range map[float64]string{1: "100%", 0.8: "80%", 0.75: "75%", 1.5: "150%"} {
		if got := percentLabel(v); got != want {
			t.Errorf("percentLabel(%v) = %q, want %q", v, got, want)
		}
	}
}
