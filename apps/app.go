package apps

import (
	"sort"
	"strings"
)

// App describes one installed application as reported by the helper.
type App struct {
	// PackageName is the stable identifier used in the allowed set.
	PackageName string `json:"packageName"`
	// Name is the human-readable application name.
	Name string `json:"name"`
	// Icon is an optional icon-theme name for the application.
	Icon string `json:"icon,omitempty"`
	// System marks system services as opposed to user applications.
	System bool `json:"isSystemApp,omitempty"`
}

// DisplayName returns the name to show in lists, falling back to the
// package name when the helper reports no display name.
func (a App) DisplayName() string {
	if a.Name != "" {
		return a.Name
	}
	return a.PackageName
}

// SortApps orders apps by display name, case-insensitive, with the
// package name as tiebreaker so the order is deterministic.
func SortApps(apps []App) {
	sort.SliceStable(apps, func(i, j int) bool {
		ni := strings.ToLower(apps[i].DisplayName())
		nj := strings.ToLower(apps[j].DisplayName())
		if ni != nj {
			return ni < nj
		}
		return apps[i].PackageName < apps[j].PackageName
	})
}

// DedupeApps drops entries with a duplicate or empty package name.
// The first occurrence wins.
func DedupeApps(apps []App) []App {
	seen := make(map[string]struct{}, len(apps))
	result := make([]App, 0, len(apps))
	for _, app := range apps {
		if app.PackageName == "" {
			continue
		}
		if _, ok := seen[app.PackageName]; ok {
			continue
		}
		seen[app.PackageName] = struct{}{}
		result = append(result, app)
	}
	return result
}

// Filter returns the apps whose display name or package name contains
// the query, case-insensitive. An empty query returns all apps.
func Filter(apps []App, query string) []App {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return apps
	}

	result := make([]App, 0, len(apps))
	for _, app := range apps {
		if strings.Contains(strings.ToLower(app.DisplayName()), query) ||
			strings.Contains(strings.ToLower(app.PackageName), query) {
			result = append(result, app)
		}
	}
	return result
}
