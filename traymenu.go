package main

type ItemKind int

const (
	ItemNormal ItemKind = iota
	ItemCheckbox
	ItemRadio
	ItemSeparator
	ItemSubmenu
)

// firstMenuID is the command id of the first clickable item of a build.
// Ids below it are reserved by the tray window.
const firstMenuID = 2000

// MenuItem is one entry of the tray context menu. IDs are assigned when the
// menu is built; a click is dispatched by ID against the latest build.
// Disabled items and items without an action keep ID 0.
type MenuItem struct {
	ID       uint16
	Label    string
	Kind     ItemKind
	Checked  bool
	Enabled  bool
	Children []MenuItem

	action func()
}

func menuAction(label string, fn func()) MenuItem {
	return MenuItem{Label: label, Kind: ItemNormal, Enabled: true, action: fn}
}

func menuCheckbox(label string, checked bool, fn func()) MenuItem {
	return MenuItem{Label: label, Kind: ItemCheckbox, Checked: checked, Enabled: true, action: fn}
}

func menuRadio(label string, checked bool, fn func()) MenuItem {
	return MenuItem{Label: label, Kind: ItemRadio, Checked: checked, Enabled: true, action: fn}
}

func menuSubmenu(label string, children ...MenuItem) MenuItem {
	return MenuItem{Label: label, Kind: ItemSubmenu, Enabled: true, Children: children}
}

func menuSeparator() MenuItem {
	return MenuItem{Kind: ItemSeparator}
}

func menuLabel(label string) MenuItem {
	return MenuItem{Label: label, Kind: ItemNormal}
}

// TrayController holds the current menu. Every rebuild discards the old
// menu and builds a new one from state; items are never patched in place.
type TrayController struct {
	build     func() []MenuItem
	items     []MenuItem
	actions   map[uint16]func()
	rebuilds  int
	onRebuild func([]MenuItem)
}

func newTrayController(build func() []MenuItem) *TrayController {
	return &TrayController{build: build, actions: make(map[uint16]func())}
}

func (t *TrayController) Rebuild() {
	items := t.build()
	actions := make(map[uint16]func())
	next := uint16(firstMenuID)
	assignMenuIDs(items, &next, actions)
	t.items = items
	t.actions = actions
	t.rebuilds++
	if t.onRebuild != nil {
		t.onRebuild(items)
	}
}

func assignMenuIDs(items []MenuItem, next *uint16, actions map[uint16]func()) {
	for i := range items {
		it := &items[i]
		switch it.Kind {
		case ItemSeparator:
			continue
		case ItemSubmenu:
			assignMenuIDs(it.Children, next, actions)
			continue
		}
		if it.action == nil || !it.Enabled {
			continue
		}
		it.ID = *next
		actions[it.ID] = it.action
		*next++
	}
}

func (t *TrayController) Items() []MenuItem { return t.items }

// Rebuilds reports how many times the menu has been rebuilt.
func (t *TrayController) Rebuilds() int { return t.rebuilds }

// Click runs the action bound to id in the latest build and reports whether
// id was known.
func (t *TrayController) Click(id uint16) bool {
	fn, ok := t.actions[id]
	if !ok {
		return false
	}
	fn()
	return true
}

// findMenuItem walks labels down the submenu tree.
func findMenuItem(items []MenuItem, path ...string) (MenuItem, bool) {
	if len(path) == 0 {
		return MenuItem{}, false
	}
	for _, it := range items {
		if it.Kind == ItemSeparator || it.Label != path[0] {
			continue
		}
		if len(path) == 1 {
			return it, true
		}
		return findMenuItem(it.Children, path[1:]...)
	}
	return MenuItem{}, false
}
