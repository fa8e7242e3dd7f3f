package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

const (
	appName  = "GamepadOverlay"
	appTitle = "Gamepad Overlay"
)

// Config is read at startup and never written back.
type Config struct {
	Debug           bool            `json:"debug"`
	Port            int             `json:"port"`
	Hotkey          string          `json:"hotkey"`
	DetectionPolicy DetectionPolicy `json:"detectionPolicy"`
	NotifyOnDetect  bool            `json:"notifyOnDetect"`
	ScanHID         bool            `json:"scanHid"`

	DataDir string `json:"-"`
}

func defaultConfig() Config {
	return Config{
		Port:            8766,
		Hotkey:          "Control+Alt+G",
		DetectionPolicy: DetectRecognized,
		ScanHID:         true,
		DataDir:         defaultDataDir(),
	}
}

func defaultDataDir() string {
	if appData := os.Getenv("APPDATA"); appData != "" {
		return filepath.Join(appData, appName)
	}
	if dir, err := os.UserConfigDir(); err == nil {
		return filepath.Join(dir, appName)
	}
	return appName
}

// loadConfigFile overlays the JSON file at path onto cfg. A missing file is
// not an error.
func loadConfigFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("read config: %w", err)
	}
	if err := json.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}
	return nil
}

func applyEnv(cfg *Config, getenv func(string) string) error {
	if v := getenv("GV_DEBUG"); v != "" {
		cfg.Debug = v == "1" || strings.EqualFold(v, "true")
	}
	if v := getenv("GV_PORT"); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("GV_PORT: %w", err)
		}
		cfg.Port = port
	}
	if v := getenv("GV_DETECTION_POLICY"); v != "" {
		cfg.DetectionPolicy = DetectionPolicy(v)
	}
	return nil
}

func (c Config) Validate() error {
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("port %d out of range", c.Port)
	}
	if _, err := parseDetectionPolicy(string(c.DetectionPolicy)); err != nil {
		return err
	}
	if _, err := parseHotkey(c.Hotkey); err != nil {
		return fmt.Errorf("hotkey: %w", err)
	}
	return nil
}

// Win32 RegisterHotKey modifier flags.
const (
	modAlt     = 0x0001
	modControl = 0x0002
	modShift   = 0x0004
	modWin     = 0x0008
)

type Hotkey struct {
	Modifiers uint32
	Key       uint32
}

// parseHotkey reads accelerator strings such as "Control+Alt+G" into
// RegisterHotKey modifiers and a virtual-key code.
func parseHotkey(s string) (Hotkey, error) {
	var hk Hotkey
	parts := strings.Split(s, "+")
	for i, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			return Hotkey{}, fmt.Errorf("empty key in %q", s)
		}
		last := i == len(parts)-1
		switch strings.ToLower(p) {
		case "control", "ctrl", "commandorcontrol", "cmdorctrl":
			hk.Modifiers |= modControl
			continue
		case "alt", "option":
			hk.Modifiers |= modAlt
			continue
		case "shift":
			hk.Modifiers |= modShift
			continue
		case "super", "win", "meta", "command", "cmd":
			hk.Modifiers |= modWin
			continue
		}
		if !last {
			return Hotkey{}, fmt.Errorf("unknown modifier %q", p)
		}
		vk, err := virtualKey(p)
		if err != nil {
			return Hotkey{}, err
		}
		hk.Key = vk
	}
	if hk.Key == 0 {
		return Hotkey{}, fmt.Errorf("no key in %q", s)
	}
	if hk.Modifiers == 0 {
		return Hotkey{}, fmt.Errorf("hotkey %q needs at least one modifier", s)
	}
	return hk, nil
}

func virtualKey(name string) (uint32, error) {
	up := strings.ToUpper(name)
	if len(up) == 1 {
		c := up[0]
		if (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9') {
			return uint32(c), nil
		}
	}
	if strings.HasPrefix(up, "F") {
		if n, err := strconv.Atoi(up[1:]); err == nil && n >= 1 && n <= 24 {
			return uint32(0x70 + n - 1), nil
		}
	}
	return 0, fmt.Errorf("unsupported key %q", name)
}
