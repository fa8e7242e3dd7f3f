package main

import (
	"fmt"
	"strings"
)

// SkinMode names a visual theme for a controller type.
type SkinMode string

const (
	SkinAuto    SkinMode = "auto"
	SkinDS4     SkinMode = "ds4"
	SkinXboxOne SkinMode = "xbox-one"
	SkinDebug   SkinMode = "debug"

	// skinNone is the classification result for an unrecognized controller.
	skinNone SkinMode = ""
)

var skinLabels = map[SkinMode]string{
	SkinAuto:    "Auto",
	SkinDS4:     "DualShock 4",
	SkinXboxOne: "Xbox One",
	SkinDebug:   "Debug",
}

// skinOrder is the order skins appear in the tray menu.
var skinOrder = []SkinMode{SkinAuto, SkinDS4, SkinXboxOne, SkinDebug}

func (m SkinMode) Label() string {
	if l, ok := skinLabels[m]; ok {
		return l
	}
	return string(m)
}

func (m SkinMode) Valid() bool {
	_, ok := skinLabels[m]
	return ok
}

func parseSkinMode(s string) (SkinMode, error) {
	m := SkinMode(strings.ToLower(strings.TrimSpace(s)))
	if !m.Valid() {
		return skinNone, fmt.Errorf("unknown skin %q", s)
	}
	return m, nil
}

type skinPattern struct {
	mode     SkinMode
	patterns []string
}

// Checked in order; the first category with a matching substring wins.
var skinPatterns = []skinPattern{
	{mode: SkinDS4, patterns: []string{"dualsense", "dualshock 4", "ps5", "ps4"}},
	{mode: SkinXboxOne, patterns: []string{"xbox", "xinput"}},
}

// classifyController maps a controller identity string reported by the
// display surface (or a HID product string) to a skin. Unrecognized ids
// return skinNone.
func classifyController(rawID string) SkinMode {
	id := strings.ToLower(rawID)
	if id == "" {
		return skinNone
	}
	for _, p := range skinPatterns {
		for _, s := range p.patterns {
			if strings.Contains(id, s) {
				return p.mode
			}
		}
	}
	return skinNone
}

// colorChoice is one entry of the Color submenu. An empty Name restores the
// skin's default palette.
type colorChoice struct {
	Name  string
	Label string
}

var colorChoices = []colorChoice{
	{Name: "", Label: "Default"},
	{Name: "black", Label: "Black"},
	{Name: "white", Label: "White"},
	{Name: "red", Label: "Red"},
	{Name: "blue", Label: "Blue"},
}

var backgroundStyles = []string{"transparent", "checkered", "dimgrey", "black", "white", "lime", "magenta"}

func validColor(name string) bool {
	for _, c := range colorChoices {
		if c.Name == name {
			return true
		}
	}
	return false
}

func validBackground(name string) bool {
	for _, b := range backgroundStyles {
		if b == name {
			return true
		}
	}
	return false
}

func backgroundLabel(name string) string {
	if name == "" {
		return name
	}
	return strings.ToUpper(name[:1]) + name[1:]
}
