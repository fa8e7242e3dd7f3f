package main

import "testing"

func TestGuessSkin(t *testing.T) {
	tests := []struct {
		product  string
		expected string
	}{
		{"DualSense Wireless Controller", "ds4"},
		{"Wireless Controller (DUALSHOCK 4)", "ds4"},
		{"PS4 Controller", "ds4"},
		{"Xbox Wireless Controller", "xbox-one"},
		{"XInput Gamepad", "xbox-one"},
		{"Generic USB Joystick", "unrecognized"},
		{"", "unrecognized"},
	}

	for _, tt := range tests {
		t.Run(tt.product, func(t *testing.T) {
			if got := guessSkin(tt.product); got != tt.expected {
				t.Errorf("guessSkin(%q) = %q, want %q", tt.product, got, tt.expected)
			}
		})
	}
}

func TestHexDump(t *testing.T) {
	data := make([]byte, 18)
	for i := range data {
		data[i] = byte(i)
	}
	want := "  0000: 00 01 02 03 04 05 06 07 08 09 0A 0B 0C 0D 0E 0F \n  0010: 10 11 "
	if got := hexDump(data); got != want {
		t.Errorf("hexDump = %q, want %q", got, want)
	}
}
