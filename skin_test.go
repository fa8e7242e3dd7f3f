package main

import "testing"

func TestClassifyController(t *testing.T) {
	tests := []struct {
		name string
		id   string
		want SkinMode
	}{
		{"DualShock 4 Chrome id", "Wireless Controller (STANDARD GAMEPAD Vendor: 054c Product: 09cc) DUALSHOCK 4", SkinDS4},
		{"DualSense", "DualSense Wireless Controller", SkinDS4},
		{"PS4 generic", "PS4 Controller", SkinDS4},
		{"PS5 generic", "ps5 pad", SkinDS4},
		{"Xbox Wireless", "Xbox Wireless Controller", SkinXboxOne},
		{"Xbox 360", "Xbox 360 Controller (XInput STANDARD GAMEPAD)", SkinXboxOne},
		{"XInput only", "XInput STANDARD GAMEPAD", SkinXboxOne},
		{"ds4 wins over xbox", "PS4 adapter for Xbox", SkinDS4},
		{"Generic joystick", "Generic USB Joystick", skinNone},
		{"DualShock 3 is not ds4", "DUALSHOCK 3", skinNone},
		{"Empty", "", skinNone},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := classifyController(tt.id); got != tt.want {
				t.Errorf("classifyController(%q) = %q, want %q", tt.id, got, tt.want)
			}
		})
	}
}

func TestParseSkinMode(t *testing.T) {
	tests := []struct {
		in      string
		want    SkinMode
		wantErr bool
	}{
		{"auto", SkinAuto, false},
		{" DS4 ", SkinDS4, false},
		{"xbox-one", SkinXboxOne, false},
		{"debug", SkinDebug, false},
		{"gamecube", skinNone, true},
		{"", skinNone, true},
	}

	for _, tt := range tests {
		got, err := parseSkinMode(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("parseSkinMode(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("parseSkinMode(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestColorAndBackgroundChoices(t *testing.T) {
	if !validColor("") {
		t.Error("empty color should restore the default palette")
	}
	if validColor("purple") {
		t.Error("purple should not be a color choice")
	}
	for _, b := range backgroundStyles {
		if !validBackground(b) {
			t.Errorf("validBackground(%q) = false", b)
		}
	}
	if validBackground("plaid") {
		t.Error("plaid should not be a background")
	}
	if got := backgroundLabel("dimgrey"); got != "Dimgrey" {
		t.Errorf("backgroundLabel(dimgrey) = %q", got)
	}
}
