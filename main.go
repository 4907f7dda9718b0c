// Package main provides the entry point for Tunnelsplit.
// Tunnelsplit is a terminal application for choosing which installed
// applications bypass the VPN tunnel (split tunneling) on Linux.
//
// Features:
//   - Searchable checkbox list of installed applications
//   - Debounced persistence of the excluded set to the helper service
//   - Offline catalog cache for instant startup
//   - Command-line interface for scripting and automation
//
// Usage:
//
//	tunnelsplit [options]
//
// Environment:
//
//	The application requires the tunnelsplit helper service to be
//	running on the system D-Bus.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"golang.org/x/term"

	"github.com/yllada/tunnelsplit/apps"
	"github.com/yllada/tunnelsplit/bridge"
	"github.com/yllada/tunnelsplit/cli"
	"github.com/yllada/tunnelsplit/common"
	"github.com/yllada/tunnelsplit/config"
	"github.com/yllada/tunnelsplit/keyring"
	"github.com/yllada/tunnelsplit/ui"
)

// Build-time variables injected via ldflags (-X main.appVersion=x.y.z)
// Default values are used for local development builds
var (
	appVersion = "dev"
	buildTime  = "unknown"
	commitSHA  = "unknown"
)

var (
	// General flags
	showVersion = flag.Bool("version", false, "Show version and exit")
	verbose     = flag.Bool("verbose", false, "Enable verbose logging")
	showHelp    = flag.Bool("help", false, "Show help message")

	// CLI flags
	listApps    = flag.Bool("list", false, "List installed applications and their state")
	allowApp    = flag.String("allow", "", "Exclude an application from the tunnel")
	disallowApp = flag.String("disallow", "", "Route an application through the tunnel again")
	showAllowed = flag.Bool("allowed", false, "Print the currently excluded applications")
	resetAll    = flag.Bool("reset", false, "Clear the excluded set")
)

func main() {
	flag.Parse()

	// Handle help flag
	if *showHelp {
		cli.PrintHelp()
		os.Exit(0)
	}

	// Handle version flag
	if *showVersion {
		fmt.Printf("%s v%s\n", common.AppName, appVersion)
		if buildTime != "unknown" {
			fmt.Printf("  Build:  %s\n", buildTime)
			fmt.Printf("  Commit: %s\n", commitSHA)
		}
		os.Exit(0)
	}

	// Initialize logger with file output; the terminal belongs to the UI
	logLevel := common.LevelInfo
	if *verbose {
		logLevel = common.LevelDebug
	}

	if err := common.InitLogger(common.LogConfig{
		Level:       logLevel,
		EnableFile:  true,
		MaxFileSize: 5 * 1024 * 1024, // 5MB
		MaxBackups:  5,
	}); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: Could not initialize file logging: %v\n", err)
	}
	defer common.CloseLogger()

	cfg, err := config.Load()
	if err != nil {
		common.LogWarn("Config load failed, using defaults: %v", err)
		cfg = config.DefaultConfig()
	}

	// Setup graceful shutdown context
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Handle shutdown signals (SIGINT, SIGTERM)
	setupSignalHandler(cancel)

	// The helper authenticates callers with a token stored in the keyring;
	// a missing token is fine when the helper allows the active session.
	token, err := keyring.New().Get()
	if err != nil && !errors.Is(err, common.ErrTokenNotFound) {
		common.LogWarn("Helper token unavailable: %v", err)
	}

	invoker, err := bridge.Connect(token, cfg.BridgeTimeout())
	if err != nil {
		common.LogError("Helper connection failed: %v", err)
		fmt.Fprintln(os.Stderr, "Error: could not connect to the system bus.")
		os.Exit(1)
	}
	defer invoker.Close()

	if err := invoker.Ping(ctx); err != nil {
		common.LogError("Helper unreachable: %v", err)
		fmt.Fprintln(os.Stderr, "Error: the tunnelsplit helper service is not running.")
		os.Exit(1)
	}

	svc := apps.NewService(invoker)
	cache := openCache()
	if cache != nil {
		defer cache.Close()
	}

	// Check if any CLI mode flag is set
	if *listApps || *allowApp != "" || *disallowApp != "" || *showAllowed || *resetAll {
		runCLI(ctx, svc, cache)
		return
	}

	if !term.IsTerminal(int(os.Stdout.Fd())) {
		fmt.Fprintln(os.Stderr, "Error: the interactive picker needs a terminal. Use --list, --allow or --disallow for scripting.")
		os.Exit(1)
	}

	common.LogInfo("Starting %s v%s", common.AppName, appVersion)

	var notifier common.Notifier
	if cfg.ShowNotifications {
		notifier = ui.NewDesktopNotifier()
	}

	if err := ui.Run(ui.Options{
		Service:  svc,
		Cache:    cache,
		Config:   cfg,
		Notifier: notifier,
	}); err != nil {
		common.LogError("UI exited with error: %v", err)
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// runCLI handles command-line interface operations.
// It accepts a context for graceful shutdown support.
func runCLI(ctx context.Context, svc *apps.Service, cache *apps.Cache) {
	// Check if context is already cancelled before proceeding
	select {
	case <-ctx.Done():
		common.LogInfo("Operation cancelled before execution")
		return
	default:
	}

	cliApp := cli.New(svc, cache)

	var cliErr error

	switch {
	case *listApps:
		cliErr = cliApp.ListApps(ctx)
	case *allowApp != "":
		cliErr = cliApp.Allow(ctx, *allowApp)
	case *disallowApp != "":
		cliErr = cliApp.Disallow(ctx, *disallowApp)
	case *showAllowed:
		cliErr = cliApp.ShowAllowed(ctx)
	case *resetAll:
		cliErr = cliApp.Reset(ctx)
	}

	if cliErr != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", cliErr)
		os.Exit(1)
	}
}

// openCache opens the catalog cache in the data directory.
// A cache failure is never fatal; the application just runs without one.
func openCache() *apps.Cache {
	dataDir, err := common.GetDataDir()
	if err != nil {
		common.LogWarn("Data directory unavailable, cache disabled: %v", err)
		return nil
	}

	cache, err := apps.OpenCache(filepath.Join(dataDir, common.CatalogFileName))
	if err != nil {
		common.LogWarn("Catalog cache unavailable: %v", err)
		return nil
	}
	return cache
}

// setupSignalHandler configures graceful shutdown on SIGINT/SIGTERM.
// When a signal is received, it cancels the context to allow cleanup.
func setupSignalHandler(cancel context.CancelFunc) {
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	go func() {
		sig := <-sigChan
		common.LogInfo("Received signal %v, initiating graceful shutdown...", sig)
		cancel()
		// In CLI mode the context cancellation is checked before each call.
		// In UI mode bubbletea translates SIGINT into a quit message.
	}()
}
