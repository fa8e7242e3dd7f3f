package main

import (
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
)

const appVersion = "1.0.0"

// newRootCmd builds the command line. run receives the merged config:
// defaults, then config.json, then environment, then flags.
func newRootCmd(run func(Config) error) *cobra.Command {
	var (
		configPath     string
		debug          bool
		legacyDebug    bool
		port           int
		hotkey         string
		policy         string
		notifyOnDetect bool
		noHID          bool
	)

	cmd := &cobra.Command{
		Use:   "gamepad-overlay",
		Short: "Always-on-top gamepad input overlay",
		Long: `Shows the connected gamepad (buttons, sticks, triggers) in a transparent
always-on-top window controlled from the system tray.

Examples:
  gamepad-overlay                                # start with defaults
  gamepad-overlay --gv-debug                     # write a session log
  gamepad-overlay --detection-policy any-controller`,
		Version:       appVersion,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := defaultConfig()
			path := configPath
			if path == "" {
				path = filepath.Join(cfg.DataDir, "config.json")
			}
			if err := loadConfigFile(path, &cfg); err != nil {
				return err
			}
			if err := applyEnv(&cfg, os.Getenv); err != nil {
				return err
			}

			flags := cmd.Flags()
			if debug || legacyDebug {
				cfg.Debug = true
			}
			if flags.Changed("port") {
				cfg.Port = port
			}
			if flags.Changed("hotkey") {
				cfg.Hotkey = hotkey
			}
			if flags.Changed("detection-policy") {
				cfg.DetectionPolicy = DetectionPolicy(policy)
			}
			if flags.Changed("notify-on-detect") {
				cfg.NotifyOnDetect = notifyOnDetect
			}
			if noHID {
				cfg.ScanHID = false
			}
			if err := cfg.Validate(); err != nil {
				return err
			}
			return run(cfg)
		},
	}

	f := cmd.Flags()
	f.StringVar(&configPath, "config", "", "config file (default <data dir>/config.json)")
	f.BoolVar(&debug, "gv-debug", false, "enable session logging and surface debug output")
	f.BoolVar(&legacyDebug, "debug", false, "alias of --gv-debug")
	_ = f.MarkDeprecated("debug", "use --gv-debug instead")
	f.IntVar(&port, "port", 0, "loopback port serving the overlay page")
	f.StringVar(&hotkey, "hotkey", "", "global hotkey toggling the overlay, e.g. Control+Alt+G")
	f.StringVar(&policy, "detection-policy", "", "which controllers end detection: recognized or any-controller")
	f.BoolVar(&notifyOnDetect, "notify-on-detect", false, "show a tray notification when the controller is detected")
	f.BoolVar(&noHID, "no-hid-scan", false, "skip the startup HID controller scan")
	return cmd
}
