// Package common provides shared constants, types, and utilities
// used across the Tunnelsplit application.
package common

import "time"

// Application metadata.
const (
	// AppName is the display name of the application.
	AppName = "Tunnelsplit"
	// ConfigDirName is the name of the configuration directory.
	ConfigDirName = "tunnelsplit"
)

// File names used by the application.
const (
	ConfigFileName  = "config.yaml"
	CatalogFileName = "catalog.db"
	TokenFileName   = ".helper-token"
	LogFileName     = "tunnelsplit.log"
)

// D-Bus identity of the privileged helper that owns application
// enumeration and traffic routing.
const (
	// HelperBusName is the well-known bus name of the helper service.
	HelperBusName = "io.tunnelsplit.Helper1"
	// HelperObjectPath is the object path exposing the invocation method.
	HelperObjectPath = "/io/tunnelsplit/Helper1"
	// HelperInterface is the D-Bus interface of the helper.
	HelperInterface = "io.tunnelsplit.Helper1"
	// HelperInvokeMethod is the fully qualified generic invocation method.
	HelperInvokeMethod = HelperInterface + ".Invoke"
)

// Bridge method names understood by the native helper.
const (
	MethodGetInstalledApps = "getInstalledApps"
	MethodSetAllowedApps   = "setAllowedApps"
	MethodGetAllowedApps   = "getAllowedApps"
)

// Default timeouts and intervals.
const (
	// DefaultBridgeTimeout is the maximum time to wait for a helper reply.
	DefaultBridgeTimeout = 10 * time.Second
	// DefaultSaveDebounce is the quiet period before a changed selection
	// is pushed to the helper.
	DefaultSaveDebounce = 750 * time.Millisecond
	// DefaultCacheTTL is how long a cached application catalog is
	// considered fresh.
	DefaultCacheTTL = 24 * time.Hour
)

// Theme values.
const (
	ThemeAuto  = "auto"
	ThemeLight = "light"
	ThemeDark  = "dark"
)
