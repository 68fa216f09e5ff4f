package assets

import (
	"context"
	"image"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/brandkit/pkg/brand"
	"github.com/matzehuels/brandkit/pkg/errors"
	"github.com/matzehuels/brandkit/pkg/observability"
)

// Rasterizer renders an SVG file to an image of exactly width x height.
// *raster.Rasterizer implements it.
type Rasterizer interface {
	RasterizeFile(ctx context.Context, path string, width, height int) (*image.NRGBA, error)
}

// Sink stores the artifacts of one job. Write either stores every artifact
// or returns an error.
type Sink interface {
	Write(ctx context.Context, artifacts []Artifact) error
}

// Generator renders brand assets from a configuration. It holds no mutable
// state, so Render may be called concurrently.
type Generator struct {
	cfg    brand.Config
	raster Rasterizer
	sink   Sink
	logger *log.Logger
}

// NewGenerator returns a Generator. A nil logger discards output; a nil sink
// is only valid for Render.
func NewGenerator(cfg brand.Config, r Rasterizer, sink Sink, logger *log.Logger) *Generator {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Generator{cfg: cfg, raster: r, sink: sink, logger: logger}
}

// Config returns the configuration the generator renders.
func (g *Generator) Config() brand.Config { return g.cfg }

// Generate runs jobs in execution order, all of them when none are given.
// Each job is rendered in memory and then written through the sink. A
// failing job is recorded in its Result and the next job still runs. The
// context is checked between jobs.
func (g *Generator) Generate(ctx context.Context, jobs ...Job) *Report {
	if len(jobs) == 0 {
		jobs = AllJobs
	}
	selected := make(map[Job]bool, len(jobs))
	for _, j := range jobs {
		selected[j] = true
	}

	report := &Report{}
	for _, job := range AllJobs {
		if !selected[job] {
			continue
		}
		if err := ctx.Err(); err != nil {
			report.Cancelled = err
			break
		}
		report.Results = append(report.Results, g.run(ctx, job))
	}
	return report
}

func (g *Generator) run(ctx context.Context, job Job) Result {
	start := time.Now()
	observability.Jobs().OnJobStart(ctx, string(job))
	g.logger.Debug("job started", "job", job)

	artifacts, err := g.Render(ctx, job)
	if err == nil {
		if g.sink == nil {
			err = errors.New(errors.ErrCodeInternal, "no sink configured")
		} else {
			err = g.sink.Write(ctx, artifacts)
		}
	}

	res := Result{Job: job, Artifacts: artifacts, Err: err, Duration: time.Since(start)}
	if err != nil {
		res.Artifacts = nil
	}
	observability.Jobs().OnJobComplete(ctx, string(job), len(res.Artifacts), res.Duration, err)
	if err != nil {
		g.logger.Debug("job failed", "job", job, "error", err)
	} else {
		g.logger.Debug("job finished", "job", job, "files", len(res.Artifacts), "duration", res.Duration)
	}
	return res
}

// Render produces the artifacts of one job without writing them.
func (g *Generator) Render(ctx context.Context, job Job) ([]Artifact, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	switch job {
	case JobFavicon:
		return g.favicon()
	case JobTouchIcon:
		return g.touchIcon(ctx)
	case JobSocial:
		return g.social(ctx)
	case JobIcons:
		return g.icons(ctx)
	}
	return nil, errors.New(errors.ErrCodeUnsupported, "unknown job %q", job)
}
