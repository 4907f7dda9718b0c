// Package ui provides the terminal user interface for Tunnelsplit.
// This file contains the program lifecycle wiring.
package ui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/yllada/tunnelsplit/apps"
	"github.com/yllada/tunnelsplit/common"
	"github.com/yllada/tunnelsplit/config"
)

// Options configures the picker program.
type Options struct {
	Service *apps.Service
	Cache   *apps.Cache // optional
	Config  *config.Config
	// Localize resolves translation keys; nil uses fallback strings.
	Localize Localizer
	// Notifier receives save-failure notifications; nil disables them.
	Notifier common.Notifier
}

// Run starts the picker and blocks until the user quits.
// A pending selection change is flushed to the helper before returning.
func Run(opts Options) error {
	saver := apps.NewSaver(opts.Service, opts.Config.SaveDebounce())

	model := NewModel(opts.Service, saver, opts.Cache, opts.Config, opts.Localize)
	program := tea.NewProgram(model, tea.WithAltScreen())

	// Saver callbacks fire on the debounce goroutine; hand results to
	// the UI loop through the program's message queue.
	saver.SetOnSaved(func(snapshot []string) {
		if opts.Cache != nil {
			if err := opts.Cache.StoreAllowed(snapshot); err != nil {
				common.LogWarn("allowed cache write failed: %v", err)
			}
		}
		program.Send(selectionSavedMsg{count: len(snapshot)})
	})
	saver.SetOnError(func(err error) {
		program.Send(saveFailedMsg{err: err})
		if opts.Notifier != nil && opts.Config.ShowNotifications {
			title := resolve(opts.Localize, "notify.save_failed.title", "Split tunneling not saved")
			opts.Notifier.NotifyWithIcon(title, err.Error(), "dialog-error")
		}
	})

	_, err := program.Run()

	// The quiet period may not have elapsed when the user quits.
	saver.Flush()

	return err
}
