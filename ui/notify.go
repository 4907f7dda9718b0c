// Package ui provides the terminal user interface for Tunnelsplit.
// This file contains the desktop notification integration.
package ui

import (
	"os/exec"

	"github.com/yllada/tunnelsplit/common"
)

// DesktopNotifier sends desktop notifications through notify-send.
// It implements common.Notifier and degrades to a no-op when the
// binary is missing.
type DesktopNotifier struct {
	available bool
}

// NewDesktopNotifier probes for notify-send once.
func NewDesktopNotifier() *DesktopNotifier {
	_, err := exec.LookPath("notify-send")
	return &DesktopNotifier{available: err == nil}
}

// Notify sends a notification with the default icon.
func (n *DesktopNotifier) Notify(title, message string) error {
	return n.NotifyWithIcon(title, message, "network-vpn")
}

// NotifyWithIcon sends a notification with a custom icon.
func (n *DesktopNotifier) NotifyWithIcon(title, message, icon string) error {
	if !n.available {
		return nil
	}

	cmd := exec.Command("notify-send",
		"--app-name="+common.AppName,
		"--icon="+icon,
		"--urgency=normal",
		title,
		message,
	)

	if err := cmd.Run(); err != nil {
		common.LogWarn("notify-send failed: %v", err)
		return err
	}
	return nil
}
