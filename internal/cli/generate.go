package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/spf13/cobra"

	"github.com/matzehuels/brandkit/pkg/assets"
	"github.com/matzehuels/brandkit/pkg/brand"
	"github.com/matzehuels/brandkit/pkg/errors"
	"github.com/matzehuels/brandkit/pkg/observability"
)

// =============================================================================
// Options
// =============================================================================

// generateOptions holds the flags shared by the root command and generate.
type generateOptions struct {
	configPath string
	dir        string
	only       []string
	noCache    bool
	strict     bool
	tagline    string
}

func defaultGenerateOptions() *generateOptions {
	return &generateOptions{dir: "."}
}

func (o *generateOptions) bind(cmd *cobra.Command) {
	o.bindConfig(cmd)
	f := cmd.Flags()
	f.StringSliceVar(&o.only, "only", nil, "run only these jobs (favicon, touch-icon, social, icons)")
	f.BoolVar(&o.noCache, "no-cache", false, "disable the raster cache")
	f.BoolVar(&o.strict, "strict", false, "fail on SVG elements that cannot be rendered")
	f.StringVar(&o.tagline, "tagline", "", "tagline drawn on the social preview")
}

// bindConfig registers the flags that locate the configuration.
func (o *generateOptions) bindConfig(cmd *cobra.Command) {
	f := cmd.Flags()
	f.StringVarP(&o.configPath, "config", "c", "", "configuration file (default: brandkit.toml in --dir when present)")
	f.StringVarP(&o.dir, "dir", "C", ".", "working directory holding the logos")
}

// loadConfig resolves the configuration for o: an explicit --config file, or
// brandkit.toml in the working directory, or the defaults. Flag overrides
// are applied before validation.
func (o *generateOptions) loadConfig(cmd *cobra.Command) (brand.Config, string, error) {
	path := o.configPath
	if path == "" {
		candidate := filepath.Join(o.dir, brand.DefaultFile)
		if _, err := os.Stat(candidate); err == nil {
			path = candidate
		}
	}

	cfg := brand.Default()
	if path != "" {
		var err error
		if cfg, err = brand.Load(path); err != nil {
			return brand.Config{}, path, err
		}
	}
	if cmd.Flags().Changed("tagline") {
		cfg.Social.Tagline = o.tagline
	}
	if err := cfg.Validate(); err != nil {
		return brand.Config{}, path, err
	}
	return cfg, path, nil
}

// =============================================================================
// Command
// =============================================================================

// generateCommand creates the generate command.
func (c *CLI) generateCommand() *cobra.Command {
	opts := defaultGenerateOptions()
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Render and write all brand assets",
		Long: `Render the favicon, touch icon, social preview and PWA icons.

Inputs are read from the working directory (--dir). The favicon, touch icon
and social preview are written one level above it; the per-size PNGs are
written into it. Each job writes either all of its files or none.`,
		Example: `  brandkit generate
  brandkit generate -C web/public/brand --only favicon,icons
  brandkit generate --tagline "AI-powered leadership assistant"`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runGenerate(cmd, opts)
		},
	}
	opts.bind(cmd)
	return cmd
}

// errJobsFailed is returned after the per-job errors have been printed.
type errJobsFailed struct{ failed, total, files int }

func (e errJobsFailed) Error() string {
	return fmt.Sprintf("%d of %d jobs failed, %d files written", e.failed, e.total, e.files)
}

func (c *CLI) runGenerate(cmd *cobra.Command, opts *generateOptions) error {
	ctx := cmd.Context()
	logger := loggerFromContext(ctx)

	jobs, err := assets.ParseJobs(opts.only)
	if err != nil {
		return errors.Wrap(errors.ErrCodeInvalidInput, err, "--only")
	}
	cfg, cfgPath, err := opts.loadConfig(cmd)
	if err != nil {
		return err
	}
	if cfgPath != "" {
		logger.Debug("loaded configuration", "path", cfgPath)
	}

	rasterizer, ch, err := c.newRasterizer(opts.noCache, opts.strict)
	if err != nil {
		return err
	}
	defer ch.Close()

	counter := &cacheCounter{}
	observability.SetCacheHooks(counter)
	defer observability.SetCacheHooks(observability.NoopCacheHooks{})

	sink := assets.NewDirSink(opts.dir)
	gen := assets.NewGenerator(cfg.InDir(opts.dir), rasterizer, sink, logger)

	logger.Debug("running jobs", "jobs", joinJobs(jobs), "dir", opts.dir)
	printInfo("Generating brand assets in %s", opts.dir)
	prog := newProgress(logger)
	report := &assets.Report{}
	for i, job := range jobs {
		counter.reset()
		res, cancelled := c.runJob(ctx, gen, job, i+1, len(jobs))
		if cancelled != nil {
			report.Cancelled = cancelled
			break
		}
		report.Results = append(report.Results, res)
		printResult(res, sink, counter.cached())
	}

	if report.Interrupted() {
		printWarning("Interrupted")
		return report.Cancelled
	}

	if failed := len(report.Failed()); failed > 0 {
		return errJobsFailed{failed: failed, total: len(report.Results), files: report.Files()}
	}
	prog.done(fmt.Sprintf("Rendered %d files", report.Files()))
	return nil
}

// runJob generates a single job behind a spinner. It returns the context
// error instead of a result when the run was interrupted before the job.
func (c *CLI) runJob(ctx context.Context, gen *assets.Generator, job assets.Job, step, total int) (assets.Result, error) {
	var spinner *Spinner
	if !c.verbose {
		spinner = newJobSpinner(ctx, stderr, step, total, string(job))
		spinner.Start()
	}
	report := gen.Generate(ctx, job)
	if spinner != nil {
		spinner.Stop()
	}
	if report.Cancelled != nil {
		return assets.Result{}, report.Cancelled
	}
	return report.Results[0], nil
}

func printResult(res assets.Result, sink *assets.DirSink, cached *bool) {
	if !res.OK() {
		printError("%s: %s", res.Job, errors.UserMessage(res.Err))
		printHint(res.Err)
		return
	}
	printSuccess("%s", res.Job)
	for _, a := range res.Artifacts {
		printArtifact(sink.Path(a.Path), a)
	}
	printJobStats(len(res.Artifacts), res.Duration, cached)
}

// =============================================================================
// Remediation
// =============================================================================

// hint returns a suggestion for fixing err, chosen by its error code.
func hint(err error) string {
	switch errors.GetCode(err) {
	case errors.ErrCodeFileNotFound:
		return "Place logo-icon.svg and logo.svg in the working directory (--dir), or point [inputs] in " + brand.DefaultFile + " at them."
	case errors.ErrCodeInvalidSVG:
		return "Check that the logo is well-formed SVG with a viewBox or width and height attributes."
	case errors.ErrCodeWriteFailed:
		return "Check that the output directories exist and are writable."
	case errors.ErrCodeInvalidConfig:
		return "Run 'brandkit config validate' and compare with 'brandkit config show'."
	case errors.ErrCodeEncodeFailed:
		return "Check the configured sizes; ICO entries must be at most 256 pixels."
	}
	return "Re-run with --verbose for details."
}

func printHint(err error) {
	printDetail("%s", hint(err))
}

// =============================================================================
// Cache Accounting
// =============================================================================

// cacheCounter counts raster cache lookups for the job being rendered.
type cacheCounter struct {
	mu           sync.Mutex
	hits, misses int
}

func (c *cacheCounter) OnCacheHit(context.Context, string) {
	c.mu.Lock()
	c.hits++
	c.mu.Unlock()
}

func (c *cacheCounter) OnCacheMiss(context.Context, string) {
	c.mu.Lock()
	c.misses++
	c.mu.Unlock()
}

func (c *cacheCounter) OnCacheSet(context.Context, string, int) {}

func (c *cacheCounter) reset() {
	c.mu.Lock()
	c.hits, c.misses = 0, 0
	c.mu.Unlock()
}

// cached reports whether every lookup hit, or nil when there were none.
func (c *cacheCounter) cached() *bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.hits+c.misses == 0 {
		return nil
	}
	all := c.misses == 0
	return &all
}

// joinJobs formats job names for messages.
func joinJobs(jobs []assets.Job) string {
	names := make([]string, len(jobs))
	for i, j := range jobs {
		names[i] = string(j)
	}
	return strings.Join(names, ", ")
}
