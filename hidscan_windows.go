//go:build windows

package main

import (
	"github.com/sstallion/go-hid"
)

const (
	usagePageGenericDesktop = 0x01
	usageJoystick           = 0x04
	usageGamepad            = 0x05
	usageMultiAxis          = 0x08
)

func isGameController(info *hid.DeviceInfo) bool {
	if info.UsagePage != usagePageGenericDesktop {
		return false
	}
	switch info.Usage {
	case usageJoystick, usageGamepad, usageMultiAxis:
		return true
	}
	return false
}

type hidController struct {
	VendorID  uint16
	ProductID uint16
	Product   string
	Skin      SkinMode
}

// scanGameControllers lists HID game controllers with the skin their
// product string would classify as.
func scanGameControllers() ([]hidController, error) {
	if err := hid.Init(); err != nil {
		return nil, err
	}
	defer hid.Exit()

	var out []hidController
	err := hid.Enumerate(0, 0, func(info *hid.DeviceInfo) error {
		if !isGameController(info) {
			return nil
		}
		out = append(out, hidController{
			VendorID:  info.VendorID,
			ProductID: info.ProductID,
			Product:   info.ProductStr,
			Skin:      classifyController(info.ProductStr),
		})
		return nil
	})
	return out, err
}

func logGameControllers() {
	logger.Printf("=== Scanning for HID game controllers ===")
	found, err := scanGameControllers()
	if err != nil {
		logger.Printf("[HID_SCAN] enumerate failed: %v", err)
		return
	}
	if len(found) == 0 {
		logger.Printf("[HID_SCAN] no game controllers found")
		return
	}
	for i, c := range found {
		skin := "unrecognized"
		if c.Skin != skinNone {
			skin = string(c.Skin)
		}
		logger.Printf("[HID_SCAN] [%d] VID: 0x%04x, PID: 0x%04x, Product: %q -> %s", i+1, c.VendorID, c.ProductID, c.Product, skin)
	}
}
