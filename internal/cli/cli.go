// Package cli implements the deckmason command-line interface.
//
// This package provides commands for rendering deck artifacts from a
// template schema and a data payload, validating rendered artifacts
// against the schema that produced them, and inspecting templates. The
// CLI is built using cobra and supports verbose logging via the
// charmbracelet/log library.
//
// # Commands
//
// The main commands are:
//   - generate: Render a template and payload into a deck artifact
//   - validate: Re-derive expected content and check an artifact against it
//   - check: Verify a payload covers a template before rendering
//   - inspect: Summarize a template's slides, slots, and data keys
//   - graph: Draw the template structure as DOT, SVG, or PNG
//   - template: Manage built-in template schemas
//   - cache: Manage the artifact cache
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging. Loggers
// are passed through context.Context to allow structured progress
// tracking.
package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	charmlog "github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/deckmason/deckmason/pkg/buildinfo"
	"github.com/deckmason/deckmason/pkg/cache"
)

// appName is the application name used for directories and display.
const appName = "deckmason"

// Execute runs the deckmason CLI and returns an error if any command
// fails. The context is threaded through cobra so commands observe
// cancellation (e.g. SIGINT from main).
//
// Logging:
//   - Default: info level (logs to stderr)
//   - With --verbose (-v): debug level
//
// The logger is attached to the context and accessible to all commands
// via loggerFromContext.
func Execute(ctx context.Context) error {
	var verbose bool

	root := &cobra.Command{
		Use:          appName,
		Short:        "Deckmason renders and validates schema-driven slide decks",
		Long:         `Deckmason turns a declarative template schema plus a data payload into a structured deck artifact, and independently validates artifacts by re-deriving every expected value from the same schema.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := charmlog.InfoLevel
			if verbose {
				level = charmlog.DebugLevel
			}
			ctx := withLogger(cmd.Context(), newLogger(os.Stderr, level))
			cmd.SetContext(ctx)
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")

	root.AddCommand(newGenerateCmd())
	root.AddCommand(newValidateCmd())
	root.AddCommand(newCheckCmd())
	root.AddCommand(newInspectCmd())
	root.AddCommand(newGraphCmd())
	root.AddCommand(newTemplateCmd())
	root.AddCommand(newCacheCmd())

	return root.ExecuteContext(ctx)
}

// =============================================================================
// Cache Factory
// =============================================================================

// newCache selects the cache backend from the shared flags: Redis when
// an address is given, nothing with --no-cache, and the XDG file cache
// otherwise. A file cache that cannot be created degrades to a null
// cache rather than failing the command.
func newCache(ctx context.Context, noCache bool, redisAddr string) (cache.Cache, error) {
	if noCache {
		return cache.NewNullCache(), nil
	}
	if redisAddr != "" {
		c, err := cache.NewRedisCache(ctx, redisAddr)
		if err != nil {
			return nil, fmt.Errorf("connect to redis at %s: %w", redisAddr, err)
		}
		return c, nil
	}
	dir, err := cacheDir()
	if err != nil {
		return cache.NewNullCache(), nil
	}
	c, err := cache.NewFileCache(dir)
	if err != nil {
		return cache.NewNullCache(), nil
	}
	return c, nil
}

// =============================================================================
// Paths
// =============================================================================

// cacheDir returns the cache directory using XDG standard (~/.cache/deckmason/).
func cacheDir() (string, error) {
	if cacheHome := os.Getenv("XDG_CACHE_HOME"); cacheHome != "" {
		return filepath.Join(cacheHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", appName), nil
}
