package main

import "fmt"

func (a *overlayApp) statusLine() string {
	st := a.coord.State()
	if st.DetectionPending {
		return "Detecting controller…"
	}
	label := "Skin: " + a.coord.DisplayedMode().Label()
	if st.ManualOverride {
		return label + " (manual)"
	}
	return label
}

// buildMenu renders the whole tray menu from OverlayState and SkinState.
func (a *overlayApp) buildMenu() []MenuItem {
	skin := a.coord.State()
	ov := a.overlay

	items := []MenuItem{
		menuLabel(a.statusLine()),
		menuSeparator(),
		menuCheckbox("Click-through", ov.ClickThrough, func() { a.setClickThrough(!a.overlay.ClickThrough) }),
		menuCheckbox("Always on top", ov.AlwaysOnTop, func() { a.setAlwaysOnTop(!a.overlay.AlwaysOnTop) }),
		menuCheckbox("Lock position", ov.Anchor == AnchorLocked, func() {
			if a.overlay.Anchor == AnchorLocked {
				a.setAnchor(AnchorFree)
			} else {
				a.setAnchor(AnchorLocked)
			}
		}),
		menuSeparator(),
		a.displayMenu(),
		a.opacityMenu(),
		a.sizeMenu(),
		a.skinMenu(skin),
		a.colorMenu(skin),
		a.backgroundMenu(skin),
		menuCheckbox("Triggers Meter", skin.TriggersMeterEnabled, func() {
			a.setTriggersMeter(!a.coord.State().TriggersMeterEnabled)
		}),
		menuSeparator(),
	}

	if a.shell.IsVisible() {
		items = append(items, menuAction("Hide overlay", a.toggleVisibility))
	} else {
		items = append(items, menuAction("Show overlay", a.toggleVisibility))
	}
	if a.autostart != nil {
		enabled := a.autostart.Enabled()
		items = append(items, menuCheckbox("Start with Windows", enabled, func() { a.setAutostart(!enabled) }))
	}
	if a.cfg.Debug && a.openPath != nil {
		items = append(items, menuAction("Open logs folder", a.openLogs))
	}
	items = append(items, menuSeparator(), menuAction("Exit", a.quit))
	return items
}

func displayLabel(idx int, d Display, current bool) string {
	label := fmt.Sprintf("Display %d (%dx%d)", idx+1, d.Bounds.Width, d.Bounds.Height)
	if current {
		label += " ✓"
	}
	return label
}

func (a *overlayApp) displayMenu() MenuItem {
	displays := a.shell.Displays()
	current := a.overlay.currentDisplay(displays)
	var children []MenuItem
	for idx, d := range displays {
		id := d.ID
		corners := make([]MenuItem, 0, len(cornerChoices))
		for _, c := range cornerChoices {
			corner := c.Corner
			corners = append(corners, menuRadio(c.Label, a.overlay.Corner == corner, func() { a.placeOn(id, corner) }))
		}
		children = append(children, menuSubmenu(displayLabel(idx, d, id == current),
			menuAction("Use this display", func() { a.placeOn(id, a.overlay.Corner) }),
			menuSeparator(),
			menuSubmenu("Corner", corners...),
		))
	}
	m := menuSubmenu("Display", children...)
	m.Enabled = len(children) > 0
	return m
}

func (a *overlayApp) opacityMenu() MenuItem {
	var children []MenuItem
	for _, v := range opacityChoices {
		v := v
		children = append(children, menuRadio(percentLabel(v), a.overlay.Opacity == v, func() { a.setOpacity(v) }))
	}
	return menuSubmenu("Opacity", children...)
}

func (a *overlayApp) sizeMenu() MenuItem {
	var children []MenuItem
	for _, v := range scaleChoices {
		v := v
		children = append(children, menuRadio(percentLabel(v), a.overlay.Scale == v, func() { a.setScale(v) }))
	}
	return menuSubmenu("Size", children...)
}

func (a *overlayApp) skinMenu(skin SkinState) MenuItem {
	var children []MenuItem
	shown := a.coord.DisplayedMode()
	for _, m := range skinOrder {
		m := m
		it := menuRadio(m.Label(), shown == m, func() { a.requestSkin(m) })
		it.Enabled = !skin.DetectionPending || m == SkinAuto
		children = append(children, it)
	}
	return menuSubmenu("Skin", children...)
}

func (a *overlayApp) colorMenu(skin SkinState) MenuItem {
	var children []MenuItem
	for _, c := range colorChoices {
		name := c.Name
		it := menuRadio(c.Label, skin.ColorName == name, func() { a.requestColor(name) })
		it.Enabled = !skin.DetectionPending
		children = append(children, it)
	}
	m := menuSubmenu("Color", children...)
	m.Enabled = !skin.DetectionPending
	return m
}

func (a *overlayApp) backgroundMenu(skin SkinState) MenuItem {
	var children []MenuItem
	for _, b := range backgroundStyles {
		b := b
		children = append(children, menuRadio(backgroundLabel(b), skin.BackgroundStyle == b, func() { a.requestBackground(b) }))
	}
	return menuSubmenu("Background", children...)
}
