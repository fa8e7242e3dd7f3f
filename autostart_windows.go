//go:build windows

package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-ole/go-ole"
	"github.com/go-ole/go-ole/oleutil"
)

// startupShortcut launches the overlay at login through a .lnk in the
// user's Startup folder. The shortcut's presence is the only state.
type startupShortcut struct {
	dir     string
	name    string
	exePath string
	args    string
}

func newStartupShortcut(args string) (*startupShortcut, error) {
	exePath, err := os.Executable()
	if err != nil {
		return nil, fmt.Errorf("locate executable: %w", err)
	}
	return &startupShortcut{
		dir:     filepath.Join(os.Getenv("APPDATA"), `Microsoft\Windows\Start Menu\Programs\Startup`),
		name:    appName,
		exePath: exePath,
		args:    args,
	}, nil
}

func (s *startupShortcut) path() string {
	return filepath.Join(s.dir, s.name+".lnk")
}

func (s *startupShortcut) Enabled() bool {
	_, err := os.Stat(s.path())
	return err == nil
}

func (s *startupShortcut) SetEnabled(on bool) error {
	if on {
		return s.create()
	}
	if err := os.Remove(s.path()); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove shortcut: %w", err)
	}
	return nil
}

// shortcutProperty is one IWshShortcut property written by create. Optional
// properties are best-effort.
type shortcutProperty struct {
	name     string
	value    string
	optional bool
}

func (s *startupShortcut) properties() []shortcutProperty {
	props := []shortcutProperty{{name: "TargetPath", value: s.exePath}}
	if args := strings.TrimSpace(s.args); args != "" {
		props = append(props, shortcutProperty{name: "Arguments", value: args})
	}
	return append(props,
		shortcutProperty{name: "Description", value: appTitle, optional: true},
		shortcutProperty{name: "IconLocation", value: s.exePath + ",0", optional: true},
		shortcutProperty{name: "WorkingDirectory", value: filepath.Dir(s.exePath), optional: true},
	)
}

func (s *startupShortcut) create() error {
	if err := os.MkdirAll(s.dir, 0755); err != nil {
		return fmt.Errorf("create startup folder: %w", err)
	}
	err := withShortcut(s.path(), func(sc *ole.IDispatch) error {
		for _, p := range s.properties() {
			if _, err := oleutil.PutProperty(sc, p.name, p.value); err != nil {
				if !p.optional {
					return fmt.Errorf("set %s: %w", p.name, err)
				}
				logger.Printf("[AUTOSTART] %s not set: %v", p.name, err)
			}
		}
		_, err := oleutil.CallMethod(sc, "Save")
		return err
	})
	if err != nil {
		return fmt.Errorf("shortcut %s: %w", s.path(), err)
	}
	logger.Printf("[AUTOSTART] created %s", s.path())
	return nil
}

// sFalse is returned by CoInitialize when the thread already joined the
// apartment, as the WebView2 UI thread has.
const sFalse = 0x1

// withShortcut opens the .lnk at path through WScript.Shell and runs fn on
// it. The COM apartment is held for the duration of fn.
func withShortcut(path string, fn func(sc *ole.IDispatch) error) error {
	if err := ole.CoInitialize(0); err != nil {
		if oe, ok := err.(*ole.OleError); !ok || oe.Code() != sFalse {
			return fmt.Errorf("CoInitialize: %w", err)
		}
	}
	defer ole.CoUninitialize()

	unknown, err := oleutil.CreateObject("WScript.Shell")
	if err != nil {
		return fmt.Errorf("create WScript.Shell: %w", err)
	}
	defer unknown.Release()

	shell, err := unknown.QueryInterface(ole.IID_IDispatch)
	if err != nil {
		return fmt.Errorf("WScript.Shell dispatch: %w", err)
	}
	defer shell.Release()

	v, err := oleutil.CallMethod(shell, "CreateShortcut", path)
	if err != nil {
		return fmt.Errorf("CreateShortcut: %w", err)
	}
	sc := v.ToIDispatch()
	defer sc.Release()
	return fn(sc)
}
