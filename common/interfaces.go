// Package common provides shared constants, types, and utilities
// used across the Tunnelsplit application.
package common

// TokenStore defines the interface for helper session-token storage.
// Implementations may use the system keyring, encrypted files, etc.
type TokenStore interface {
	// Store saves the helper session token.
	Store(token string) error
	// Get retrieves the helper session token.
	Get() (string, error)
	// Delete removes the helper session token.
	Delete() error
}

// Notifier defines the interface for sending desktop notifications.
type Notifier interface {
	// Notify sends a notification with the given title and message.
	Notify(title, message string) error
	// NotifyWithIcon sends a notification with a custom icon.
	NotifyWithIcon(title, message, icon string) error
}

// Logger defines the interface for structured logging.
type Logger interface {
	// Debug logs a debug message.
	Debug(msg string, args ...interface{})
	// Info logs an informational message.
	Info(msg string, args ...interface{})
	// Warn logs a warning message.
	Warn(msg string, args ...interface{})
	// Error logs an error message.
	Error(msg string, args ...interface{})
}
