// Package ui provides the terminal user interface for Tunnelsplit.
//
// The UI is a single bubbletea program: a searchable checkbox list of
// installed applications. Checked applications bypass the VPN tunnel.
//
// # Components
//
//   - Model: the picker (search field, checkbox list, status line)
//   - Run: program wiring between the model, the debounced saver, the
//     catalog cache, and desktop notifications
//   - DesktopNotifier: notify-send integration for save failures
//
// # Data Flow
//
// The model renders the cached catalog immediately (when one exists)
// while a fresh fetch runs against the helper. Toggling a row updates
// the selection and schedules the debounced saver; the saver reports
// back through the program's message queue, which drives the status
// line.
//
// # Thread Safety
//
// The model is owned by the bubbletea event loop. Goroutines (saver
// callbacks, fetch commands) never touch the model; they communicate
// exclusively via messages.
package ui
