package main

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/sstallion/go-hid"
)

// Prints HID game controllers and the overlay skin their product string maps
// to. With --dump, also prints raw input reports from each controller.
func main() {
	var dump int
	cmd := &cobra.Command{
		Use:   "list_gamepads",
		Short: "List HID game controllers and their overlay skin",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return listGamepads(dump)
		},
	}
	cmd.Flags().IntVar(&dump, "dump", 0, "input reports to read from each controller")
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func isGamepadUsage(info *hid.DeviceInfo) bool {
	return info.UsagePage == 0x01 && (info.Usage == 0x04 || info.Usage == 0x05 || info.Usage == 0x08)
}

func listGamepads(dump int) error {
	if err := hid.Init(); err != nil {
		return fmt.Errorf("hid init: %w", err)
	}
	defer hid.Exit()

	var paths []string
	fmt.Println("Game controllers:")
	err := hid.Enumerate(0, 0, func(info *hid.DeviceInfo) error {
		if !isGamepadUsage(info) {
			return nil
		}
		fmt.Printf("VID: 0x%04x, PID: 0x%04x, Usage: 0x%02x, Product: %q, Skin: %s, Path: %s\n",
			info.VendorID, info.ProductID, info.Usage, info.ProductStr, guessSkin(info.ProductStr), info.Path)
		paths = append(paths, info.Path)
		return nil
	})
	if err != nil {
		return err
	}

	for _, p := range paths {
		if dump > 0 {
			dumpReports(p, dump)
		}
	}
	return nil
}

// readTimeout bounds each report read.
const readTimeout = time.Second

func dumpReports(path string, n int) {
	d, err := hid.OpenPath(path)
	if err != nil {
		fmt.Printf("\n%s: open failed: %v\n", path, err)
		return
	}
	defer d.Close()

	fmt.Printf("\n%s:\n", path)
	for i := 0; i < n; i++ {
		buf := make([]byte, 128)
		got, err := d.ReadWithTimeout(buf, readTimeout)
		if err == hid.ErrTimeout {
			fmt.Printf("  Read %d: no report within %v\n", i+1, readTimeout)
			continue
		}
		if err != nil {
			fmt.Printf("  Read %d: ERROR - %v\n", i+1, err)
			continue
		}
		fmt.Printf("  Read %d: %d bytes\n%s\n", i+1, got, hexDump(buf[:got]))
	}
}

// guessSkin mirrors skinPatterns in skin.go; keep the two lists in sync.
func guessSkin(product string) string {
	p := strings.ToLower(product)
	for _, s := range []string{"dualsense", "dualshock 4", "ps5", "ps4"} {
		if strings.Contains(p, s) {
			return "ds4"
		}
	}
	for _, s := range []string{"xbox", "xinput"} {
		if strings.Contains(p, s) {
			return "xbox-one"
		}
	}
	return "unrecognized"
}

func hexDump(data []byte) string {
	var sb strings.Builder
	for i := 0; i < len(data); i += 16 {
		end := i + 16
		if end > len(data) {
			end = len(data)
		}
		sb.WriteString(fmt.Sprintf("  %04X: ", i))
		for j := i; j < end; j++ {
			sb.WriteString(fmt.Sprintf("%02X ", data[j]))
		}
		sb.WriteString("\n")
	}
	return strings.TrimRight(sb.String(), "\n")
}
