package main

import (
	"io"
	"os"
	"path/filepath"
	"testing"
)

func TestParseHotkey(t *testing.T) {
	tests := []struct {
		in      string
		want    Hotkey
		wantErr bool
	}{
		{"Control+Alt+G", Hotkey{Modifiers: modControl | modAlt, Key: 'G'}, false},
		{"ctrl+shift+f5", Hotkey{Modifiers: modControl | modShift, Key: 0x74}, false},
		{"Alt + 1", Hotkey{Modifiers: modAlt, Key: '1'}, false},
		{"Super+F24", Hotkey{Modifiers: modWin, Key: 0x87}, false},
		{"CmdOrCtrl+o", Hotkey{Modifiers: modControl, Key: 'O'}, false},
		{"G", Hotkey{}, true},
		{"Control+Alt", Hotkey{}, true},
		{"Control++G", Hotkey{}, true},
		{"Hyper+G", Hotkey{}, true},
		{"Control+Enter", Hotkey{}, true},
		{"Control+F25", Hotkey{}, true},
		{"", Hotkey{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := parseHotkey(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("parseHotkey(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("parseHotkey(%q) = %+v, want %+v", tt.in, got, tt.want)
			}
		})
	}
}

func TestApplyEnv(t *testing.T) {
	env := map[string]string{
		"GV_DEBUG":            "true",
		"GV_PORT":             "9001",
		"GV_DETECTION_POLICY": "any-controller",
	}
	cfg := defaultConfig()
	if err := applyEnv(&cfg, func(k string) string { return env[k] }); err != nil {
		t.Fatal(err)
	}
	if !cfg.Debug || cfg.Port != 9001 || cfg.DetectionPolicy != DetectAnyController {
		t.Errorf("cfg = %+v", cfg)
	}

	cfg = defaultConfig()
	if err := applyEnv(&cfg, func(k string) string {
		if k == "GV_PORT" {
			return "eighty"
		}
		return ""
	}); err == nil {
		t.Error("bad GV_PORT accepted")
	}
	if cfg.Debug {
		t.Error("unset GV_DEBUG enabled debug")
	}
}

func TestLoadConfigFile(t *testing.T) {
	dir := t.TempDir()

	cfg := defaultConfig()
	if err := loadConfigFile(filepath.Join(dir, "missing.json"), &cfg); err != nil {
		t.Errorf("missing file: %v", err)
	}

	path := filepath.Join(dir, "config.json")
	writeFile(t, path, `{"port": 9000, "hotkey": "Alt+F9", "notifyOnDetect": true}`)
	if err := loadConfigFile(path, &cfg); err != nil {
		t.Fatal(err)
	}
	if cfg.Port != 9000 || cfg.Hotkey != "Alt+F9" || !cfg.NotifyOnDetect {
		t.Errorf("cfg = %+v", cfg)
	}
	if cfg.DetectionPolicy != DetectRecognized {
		t.Errorf("unset field overwritten: %q", cfg.DetectionPolicy)
	}

	writeFile(t, path, `{"port": `)
	if err := loadConfigFile(path, &cfg); err == nil {
		t.Error("truncated JSON accepted")
	}
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"port zero", func(c *Config) { c.Port = 0 }},
		{"port too big", func(c *Config) { c.Port = 70000 }},
		{"policy", func(c *Config) { c.DetectionPolicy = "first" }},
		{"hotkey", func(c *Config) { c.Hotkey = "G" }},
	}
	if err := defaultConfig().Validate(); err != nil {
		t.Fatalf("default config invalid: %v", err)
	}
	for _, tt := range tests {
		cfg := defaultConfig()
		tt.mutate(&cfg)
		if err := cfg.Validate(); err == nil {
			t.Errorf("%s: invalid config accepted", tt.name)
		}
	}
}

func writeFile(t *testing.T, path, data string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(data), 0644); err != nil {
		t.Fatal(err)
	}
}

func runCLI(t *testing.T, configJSON string, args ...string) (Config, error) {
	t.Helper()
	for _, k := range []string{"GV_DEBUG", "GV_PORT", "GV_DETECTION_POLICY"} {
		t.Setenv(k, "")
	}
	path := filepath.Join(t.TempDir(), "config.json")
	if configJSON != "" {
		writeFile(t, path, configJSON)
	}

	var got Config
	cmd := newRootCmd(func(cfg Config) error {
		got = cfg
		return nil
	})
	cmd.SetArgs(append([]string{"--config", path}, args...))
	cmd.SetOut(io.Discard)
	cmd.SetErr(io.Discard)
	err := cmd.Execute()
	return got, err
}

func TestCLIDefaults(t *testing.T) {
	cfg, err := runCLI(t, "")
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Port != 8766 || cfg.Hotkey != "Control+Alt+G" || cfg.DetectionPolicy != DetectRecognized || !cfg.ScanHID || cfg.Debug {
		t.Errorf("cfg = %+v", cfg)
	}
}

func TestCLIPrecedence(t *testing.T) {
	file := `{"port": 9000, "detectionPolicy": "any-controller", "hotkey": "Alt+H"}`

	cfg, err := runCLI(t, file, "--port", "9100", "--no-hid-scan")
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Port != 9100 {
		t.Errorf("port = %d, want the flag value", cfg.Port)
	}
	if cfg.DetectionPolicy != DetectAnyController || cfg.Hotkey != "Alt+H" {
		t.Errorf("file values lost: %+v", cfg)
	}
	if cfg.ScanHID {
		t.Error("--no-hid-scan ignored")
	}

	t.Setenv("GV_PORT", "9200")
	cmd := newRootCmd(func(c Config) error { cfg = c; return nil })
	path := filepath.Join(t.TempDir(), "config.json")
	writeFile(t, path, file)
	cmd.SetArgs([]string{"--config", path})
	cmd.SetOut(io.Discard)
	cmd.SetErr(io.Discard)
	if err := cmd.Execute(); err != nil {
		t.Fatal(err)
	}
	if cfg.Port != 9200 {
		t.Errorf("port = %d, want the environment value", cfg.Port)
	}
}

func TestCLIDebugFlags(t *testing.T) {
	for _, flag := range []string{"--gv-debug", "--debug"} {
		cfg, err := runCLI(t, "", flag)
		if err != nil {
			t.Fatalf("%s: %v", flag, err)
		}
		if !cfg.Debug {
			t.Errorf("%s did not enable debug", flag)
		}
	}
}

func TestCLIRejectsBadInput(t *testing.T) {
	tests := []struct {
		name string
		json string
		args []string
	}{
		{"policy flag", "", []string{"--detection-policy", "first"}},
		{"hotkey flag", "", []string{"--hotkey", "G"}},
		{"positional arg", "", []string{"extra"}},
		{"bad config file", `{"port":`, nil},
		{"port from file", `{"port": 0}`, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := runCLI(t, tt.json, tt.args...); err == nil {
				t.Error("accepted")
			}
		})
	}
}
