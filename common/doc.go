// Package common provides shared constants, types, utilities, and interfaces
// used throughout the Tunnelsplit application.
//
// This package serves as the foundation for cross-cutting concerns:
//
//   - Constants: Application-wide constants like timeouts, file names, and
//     the D-Bus identity of the privileged helper
//   - Errors: Sentinel errors for consistent error handling across packages
//   - Interfaces: Abstractions for token storage, notifications, and logging
//   - Logger: Structured logging with optional rotating file output
//   - Utils: Common utility functions for file operations and string manipulation
//
// # Usage
//
// Import the package to access shared functionality:
//
//	import "github.com/yllada/tunnelsplit/common"
//
//	// Use constants
//	timeout := common.DefaultBridgeTimeout
//
//	// Use logger
//	common.LogInfo("Loaded %d installed applications", len(apps))
//
//	// Check errors
//	if errors.Is(err, common.ErrHelperUnavailable) {
//	    // Helper daemon is not running
//	}
//
// # Design Principles
//
// This package follows several design principles:
//
//   - Single Responsibility: Each file handles one concern
//   - Interface Segregation: Small, focused interfaces
//   - Dependency Inversion: High-level modules depend on abstractions
package common
