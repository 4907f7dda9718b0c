// Package apps provides the data-access layer for split tunneling.
//
// It talks to the privileged native helper through the bridge package and
// exposes three concerns:
//
//   - Catalog: fetching and filtering the list of installed applications
//   - Selection: the set of applications whose traffic bypasses the tunnel
//   - Saver: debounced persistence of selection changes to the helper
//
// # Data Flow
//
//  1. Service.InstalledApps invokes getInstalledApps and decodes the reply
//  2. The UI filters the catalog and toggles entries in a Selection
//  3. Every toggle schedules the Saver; after a quiet period the snapshot
//     is pushed via setAllowedApps and announced through the registered
//     callbacks
//
// A SQLite-backed Cache keeps the last fetched catalog so the picker can
// open instantly while a fresh fetch runs in the background. The cache is
// display-only; the helper remains the source of truth for the allowed
// set.
package apps
