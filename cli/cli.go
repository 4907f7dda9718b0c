// Package cli provides command-line interface functionality for
// Tunnelsplit. This allows scripts to inspect and change the set of
// applications excluded from the tunnel without launching the picker.
package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/yllada/tunnelsplit/apps"
	"github.com/yllada/tunnelsplit/common"
)

// CLI represents the command-line interface.
type CLI struct {
	svc   *apps.Service
	cache *apps.Cache // may be nil
	out   io.Writer
}

// New creates a new CLI instance.
func New(svc *apps.Service, cache *apps.Cache) *CLI {
	return &CLI{
		svc:   svc,
		cache: cache,
		out:   os.Stdout,
	}
}

// ListApps lists installed applications with their allowed state.
func (c *CLI) ListApps(ctx context.Context) error {
	catalog, err := c.svc.InstalledApps(ctx)
	if err != nil {
		return fmt.Errorf("failed to list applications: %w", err)
	}

	if len(catalog) == 0 {
		fmt.Fprintln(c.out, "No installed applications reported by the helper.")
		return nil
	}

	allowed, err := c.svc.AllowedApps(ctx)
	if err != nil {
		return fmt.Errorf("failed to read allowed set: %w", err)
	}
	c.storeCache(catalog, allowed)

	selection := apps.NewSelection(allowed...)

	w := tabwriter.NewWriter(c.out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "PACKAGE\tNAME\tEXCLUDED\tTYPE")
	fmt.Fprintln(w, "-------\t----\t--------\t----")

	for _, app := range catalog {
		excluded := "no"
		if selection.Contains(app.PackageName) {
			excluded = "yes"
		}

		kind := "app"
		if app.System {
			kind = "system"
		}

		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n",
			app.PackageName, app.DisplayName(), excluded, kind)
	}

	return w.Flush()
}

// Allow adds an application to the set excluded from the tunnel.
func (c *CLI) Allow(ctx context.Context, nameOrPackage string) error {
	return c.setMembership(ctx, nameOrPackage, true)
}

// Disallow removes an application from the set excluded from the tunnel.
func (c *CLI) Disallow(ctx context.Context, nameOrPackage string) error {
	return c.setMembership(ctx, nameOrPackage, false)
}

func (c *CLI) setMembership(ctx context.Context, nameOrPackage string, allow bool) error {
	catalog, err := c.svc.InstalledApps(ctx)
	if err != nil {
		return fmt.Errorf("failed to list applications: %w", err)
	}

	app := findApp(catalog, nameOrPackage)
	if app == nil {
		return fmt.Errorf("%w: %s", common.ErrAppNotFound, nameOrPackage)
	}

	allowed, err := c.svc.AllowedApps(ctx)
	if err != nil {
		return fmt.Errorf("failed to read allowed set: %w", err)
	}

	selection := apps.NewSelection(allowed...)
	if selection.Contains(app.PackageName) == allow {
		if allow {
			fmt.Fprintf(c.out, "%s is already excluded from the tunnel.\n", app.DisplayName())
		} else {
			fmt.Fprintf(c.out, "%s is not excluded from the tunnel.\n", app.DisplayName())
		}
		return nil
	}
	selection.Set(app.PackageName, allow)

	snapshot := selection.Snapshot()
	if err := c.svc.SetAllowedApps(ctx, snapshot); err != nil {
		return err
	}
	c.storeCache(catalog, snapshot)

	if allow {
		fmt.Fprintf(c.out, "✓ %s now bypasses the tunnel.\n", app.DisplayName())
	} else {
		fmt.Fprintf(c.out, "✓ %s traffic now uses the tunnel.\n", app.DisplayName())
	}
	return nil
}

// ShowAllowed prints the applications currently excluded from the tunnel.
func (c *CLI) ShowAllowed(ctx context.Context) error {
	allowed, err := c.svc.AllowedApps(ctx)
	if err != nil {
		return fmt.Errorf("failed to read allowed set: %w", err)
	}

	if len(allowed) == 0 {
		fmt.Fprintln(c.out, "No applications are excluded; all traffic uses the tunnel.")
		return nil
	}

	for _, pkg := range allowed {
		fmt.Fprintln(c.out, pkg)
	}
	return nil
}

// Reset clears the excluded set so all traffic uses the tunnel.
func (c *CLI) Reset(ctx context.Context) error {
	if err := c.svc.SetAllowedApps(ctx, nil); err != nil {
		return err
	}
	if c.cache != nil {
		if err := c.cache.StoreAllowed(nil); err != nil {
			common.LogWarn("allowed cache write failed: %v", err)
		}
	}

	fmt.Fprintln(c.out, "✓ Excluded set cleared; all traffic uses the tunnel.")
	return nil
}

func (c *CLI) storeCache(catalog []apps.App, allowed []string) {
	if c.cache == nil {
		return
	}
	if err := c.cache.StoreCatalog(catalog); err != nil {
		common.LogWarn("catalog cache write failed: %v", err)
	}
	if err := c.cache.StoreAllowed(allowed); err != nil {
		common.LogWarn("allowed cache write failed: %v", err)
	}
}

// findApp resolves an application by exact package name, then by
// case-insensitive display name, then by package-name prefix.
func findApp(catalog []apps.App, nameOrPackage string) *apps.App {
	query := strings.TrimSpace(nameOrPackage)
	if query == "" {
		return nil
	}

	for i := range catalog {
		if catalog[i].PackageName == query {
			return &catalog[i]
		}
	}

	lower := strings.ToLower(query)
	for i := range catalog {
		if strings.ToLower(catalog[i].DisplayName()) == lower {
			return &catalog[i]
		}
	}

	for i := range catalog {
		if strings.HasPrefix(strings.ToLower(catalog[i].PackageName), lower) {
			return &catalog[i]
		}
	}

	return nil
}

// PrintHelp prints CLI usage help.
func PrintHelp() {
	fmt.Println(`Tunnelsplit - choose which applications bypass the VPN tunnel

Usage:
  tunnelsplit [OPTIONS]

Options:
  --version         Show version and exit
  --verbose         Enable verbose logging
  --list            List installed applications and their state
  --allow APP       Exclude an application from the tunnel
  --disallow APP    Route an application through the tunnel again
  --allowed         Print the currently excluded applications
  --reset           Clear the excluded set
  --help            Show this help message

Examples:
  tunnelsplit                 Launch the interactive picker
  tunnelsplit --list
  tunnelsplit --allow firefox
  tunnelsplit --disallow org.mozilla.firefox
  tunnelsplit --reset

Notes:
  - APP may be a package name or a display name
  - The privileged helper service must be running`)
}
