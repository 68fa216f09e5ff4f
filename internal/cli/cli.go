// Package cli implements the brandkit command-line interface.
//
// The default action renders every brand asset from the logos in the working
// directory. Subcommands serve the assets for preview, manage the raster
// cache and inspect the configuration. The CLI is built on cobra and logs
// through charmbracelet/log; --verbose switches to debug output.
//
// # Commands
//
//   - generate: Render and write the asset set (default)
//   - serve: Preview the assets over HTTP
//   - config: Show, create or validate brandkit.toml
//   - cache: Manage the raster cache
//   - completion: Shell completion scripts
package cli

import (
	stderrors "errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/brandkit/pkg/buildinfo"
	"github.com/matzehuels/brandkit/pkg/cache"
	"github.com/matzehuels/brandkit/pkg/errors"
	"github.com/matzehuels/brandkit/pkg/raster"
)

// =============================================================================
// Constants
// =============================================================================

const (
	// appName is the application name used for directories and display.
	appName = buildinfo.Name

	// cacheEnv selects the raster cache location: a directory, a redis://
	// URL, or "none".
	cacheEnv = "BRANDKIT_CACHE"
)

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger  *log.Logger
	verbose bool
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{Logger: newLogger(w, level)}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
	c.verbose = level <= log.DebugLevel
}

// RootCommand creates the root cobra command with all subcommands registered.
// Run without a subcommand it behaves like "generate".
func (c *CLI) RootCommand() *cobra.Command {
	opts := defaultGenerateOptions()

	root := &cobra.Command{
		Use:   appName,
		Short: "brandkit renders favicons, touch icons and social previews from SVG logos",
		Long: `brandkit renders the brand assets of a web frontend from two SVG logos:
a multi-resolution favicon, an Apple touch icon, an Open Graph preview image
and a set of PWA icons. Run it in the directory holding logo-icon.svg and
logo.svg.`,
		Version:       buildinfo.Version,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runGenerate(cmd, opts)
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	opts.bind(root)

	root.AddCommand(c.generateCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.configCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// =============================================================================
// Rasterizer Factory
// =============================================================================

// newRasterizer creates a caching rasterizer for CLI use. The caller closes
// the returned cache. With strict set, SVG elements the rasterizer cannot
// draw fail the job instead of being skipped.
func (c *CLI) newRasterizer(noCache, strict bool) (*raster.Rasterizer, cache.Cache, error) {
	ch, err := newCache(noCache)
	if err != nil {
		return nil, nil, err
	}
	return raster.New(raster.Options{
		Cache:  ch,
		Keyer:  cache.NewScopedKeyer(cache.NewDefaultKeyer(), appName+":"),
		Strict: strict,
		Logger: c.Logger,
	}), ch, nil
}

func newCache(noCache bool) (cache.Cache, error) {
	if noCache {
		return cache.NewNullCache(), nil
	}
	if loc, ok := os.LookupEnv(cacheEnv); ok {
		ch, err := cache.Open(loc)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", cacheEnv, err)
		}
		return ch, nil
	}
	dir, err := cacheDir()
	if err != nil {
		return cache.NewNullCache(), nil
	}
	return cache.NewFileCache(dir)
}

// =============================================================================
// Paths
// =============================================================================

// cacheDir returns the cache directory using XDG standard (~/.cache/brandkit/).
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

// =============================================================================
// Error Reporting
// =============================================================================

// ReportError prints a command error to w with a remediation hint. Job
// failures have already been listed one by one, so only their summary is
// printed.
func ReportError(w io.Writer, err error) {
	fmt.Fprintln(w, styleIconError.Render(iconError)+" "+errors.UserMessage(err))
	var jobsFailed errJobsFailed
	if stderrors.As(err, &jobsFailed) {
		return
	}
	fmt.Fprintln(w, "  "+StyleDim.Render(hint(err)))
}
