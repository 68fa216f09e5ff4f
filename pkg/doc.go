// Package pkg provides the core libraries for brandkit.
//
// # Overview
//
// brandkit turns two SVG logos into the image assets a web frontend
// publishes: a multi-resolution favicon, an Apple touch icon, an Open Graph
// preview image and a set of PWA icons. The pkg directory is organized into
// three areas:
//
//  1. [brand] - Configuration (palette, input and output paths, geometry)
//  2. [raster], [canvas], [fonts] - Imaging (SVG rasterization, compositing, encoding)
//  3. [assets] - Orchestration (jobs, generator, sinks)
//
// # Architecture
//
// The data flow for one run:
//
//	brandkit.toml (optional) → [brand.Config]
//	         ↓
//	logo-icon.svg / logo.svg → [raster] (oksvg + rasterx, cached by content hash)
//	         ↓
//	    [canvas] (flatten, paste, draw glyphs, encode PNG/ICO)
//	         ↓
//	    [assets.Generator] (one job at a time, rendered in memory)
//	         ↓
//	    [assets.DirSink] (all files of a job, or none)
//
// # Quick Start
//
//	import (
//	    "context"
//	    "github.com/matzehuels/brandkit/pkg/assets"
//	    "github.com/matzehuels/brandkit/pkg/brand"
//	    "github.com/matzehuels/brandkit/pkg/raster"
//	)
//
//	cfg := brand.Default().InDir("web/public/brand")
//	gen := assets.NewGenerator(cfg, raster.New(raster.Options{}),
//	    assets.NewDirSink("web/public/brand"), nil)
//	report := gen.Generate(context.Background())
//	if err := report.Err(); err != nil {
//	    // one entry per failed job
//	}
//
// # Main Packages
//
// ## Configuration
//
// [brand] - The explicit configuration of a run. [brand.Default] returns the
// stock layout; [brand.Load] overlays a TOML file; [brand.Config.Validate]
// rejects impossible sizes, paths and shapes before anything renders.
//
// ## Imaging
//
// [raster] - SVG to *image.NRGBA via oksvg and rasterx, aspect-preserving.
// Results are memoized in a [cache.Cache].
//
// [canvas] - Canvas creation, alpha-masked compositing, inclusive-box
// drawing with gg, PNG and ICO encoding.
//
// [fonts] - Embedded Go font faces for the optional social tagline.
//
// ## Orchestration
//
// [assets] - The four jobs (favicon, touch-icon, social, icons), the
// [assets.Generator] that runs them with per-job error isolation, and the
// directory and memory sinks.
//
// ## Infrastructure
//
// [cache] - Raster cache backends: file (CLI default), Redis (shared), null.
//
// [errors] - Structured error codes used for per-job reporting and CLI hints.
//
// [observability] - Hooks for job, cache and preview server events.
//
// [buildinfo] - Version information injected at build time.
//
// # Testing
//
// Run tests:
//
//	go test ./pkg/...           # All tests
//	go test ./pkg/assets/...    # Generator end to end
//
// [brand]: https://pkg.go.dev/github.com/matzehuels/brandkit/pkg/brand
// [raster]: https://pkg.go.dev/github.com/matzehuels/brandkit/pkg/raster
// [canvas]: https://pkg.go.dev/github.com/matzehuels/brandkit/pkg/canvas
// [fonts]: https://pkg.go.dev/github.com/matzehuels/brandkit/pkg/fonts
// [assets]: https://pkg.go.dev/github.com/matzehuels/brandkit/pkg/assets
// [cache]: https://pkg.go.dev/github.com/matzehuels/brandkit/pkg/cache
// [errors]: https://pkg.go.dev/github.com/matzehuels/brandkit/pkg/errors
// [observability]: https://pkg.go.dev/github.com/matzehuels/brandkit/pkg/observability
// [buildinfo]: https://pkg.go.dev/github.com/matzehuels/brandkit/pkg/buildinfo
// [brand.Config]: https://pkg.go.dev/github.com/matzehuels/brandkit/pkg/brand#Config
// [brand.Default]: https://pkg.go.dev/github.com/matzehuels/brandkit/pkg/brand#Default
// [brand.Load]: https://pkg.go.dev/github.com/matzehuels/brandkit/pkg/brand#Load
// [brand.Config.Validate]: https://pkg.go.dev/github.com/matzehuels/brandkit/pkg/brand#Config.Validate
// [cache.Cache]: https://pkg.go.dev/github.com/matzehuels/brandkit/pkg/cache#Cache
// [assets.Generator]: https://pkg.go.dev/github.com/matzehuels/brandkit/pkg/assets#Generator
// [assets.DirSink]: https://pkg.go.dev/github.com/matzehuels/brandkit/pkg/assets#DirSink
package pkg
