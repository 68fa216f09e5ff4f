// Package raster converts SVG documents into pixel images.
//
// Parsing and scan conversion are done by github.com/srwiley/oksvg and
// github.com/srwiley/rasterx. The drawing is scaled to fit the requested
// size, preserving its aspect ratio and centered on a transparent
// background, which is how browsers honor the default preserveAspectRatio.
//
// Rasterizations are pure functions of (document, width, height), so a
// Rasterizer can be given a cache.Cache that stores the PNG-encoded result
// under a content hash. Cache errors are logged and never fail a call.
package raster

import (
	"bytes"
	"context"
	"image"
	"io"
	"math"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/disintegration/imaging"
	"github.com/srwiley/oksvg"
	"github.com/srwiley/rasterx"

	"github.com/matzehuels/brandkit/pkg/cache"
	"github.com/matzehuels/brandkit/pkg/errors"
	"github.com/matzehuels/brandkit/pkg/observability"
)

// Options configures a Rasterizer.
type Options struct {
	// Cache stores encoded rasters. Nil disables caching.
	Cache cache.Cache
	// Keyer builds cache keys. Defaults to cache.NewDefaultKeyer().
	Keyer cache.Keyer
	// TTL of cached entries. Defaults to cache.DefaultTTL.
	TTL time.Duration
	// Strict rejects documents containing elements the parser cannot draw,
	// such as text or filters, instead of silently skipping them.
	Strict bool
	// Logger receives cache diagnostics. Defaults to a discard logger.
	Logger *log.Logger
}

// Rasterizer renders SVG documents. It is safe for concurrent use.
type Rasterizer struct {
	cache  cache.Cache
	keyer  cache.Keyer
	ttl    time.Duration
	mode   oksvg.ErrorMode
	logger *log.Logger
}

// New returns a Rasterizer configured by opts.
func New(opts Options) *Rasterizer {
	r := &Rasterizer{
		cache:  opts.Cache,
		keyer:  opts.Keyer,
		ttl:    opts.TTL,
		mode:   oksvg.IgnoreErrorMode,
		logger: opts.Logger,
	}
	if r.cache == nil {
		r.cache = cache.NewNullCache()
	}
	if r.keyer == nil {
		r.keyer = cache.NewDefaultKeyer()
	}
	if r.ttl <= 0 {
		r.ttl = cache.DefaultTTL
	}
	if opts.Strict {
		r.mode = oksvg.StrictErrorMode
	}
	if r.logger == nil {
		r.logger = log.New(io.Discard)
	}
	return r
}

// RasterizeFile reads the SVG at path and renders it at width x height.
// A missing file yields FILE_NOT_FOUND.
func (r *Rasterizer) RasterizeFile(ctx context.Context, path string, width, height int) (*image.NRGBA, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.New(errors.ErrCodeFileNotFound, "%s not found", path)
		}
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "read %s", path)
	}
	img, err := r.Rasterize(ctx, data, width, height)
	if err != nil {
		if e, ok := err.(*errors.Error); ok && e.Code == errors.ErrCodeInvalidSVG {
			e.Message = path + ": " + e.Message
		}
		return nil, err
	}
	return img, nil
}

// Rasterize renders an SVG document at width x height.
//
// A document that is not well-formed XML, or that declares neither a
// viewBox nor a positive width and height, yields INVALID_SVG.
func (r *Rasterizer) Rasterize(ctx context.Context, svg []byte, width, height int) (*image.NRGBA, error) {
	if err := errors.ValidateSize(width, height); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	key := r.keyer.RasterKey(cache.Hash(svg), cache.RasterKeyOpts{
		Width:  width,
		Height: height,
		Strict: r.mode == oksvg.StrictErrorMode,
	})
	if img, ok := r.lookup(ctx, key, width, height); ok {
		return img, nil
	}

	img, err := render(svg, width, height, r.mode)
	if err != nil {
		return nil, err
	}
	r.store(ctx, key, img)
	return img, nil
}

func render(svg []byte, width, height int, mode oksvg.ErrorMode) (*image.NRGBA, error) {
	icon, err := oksvg.ReadIconStream(bytes.NewReader(svg), mode)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidSVG, err, "parse svg")
	}
	vb := icon.ViewBox
	if !(vb.W > 0 && vb.H > 0) || math.IsInf(vb.W, 0) || math.IsInf(vb.H, 0) {
		return nil, errors.New(errors.ErrCodeInvalidSVG, "svg has no usable viewBox or size")
	}

	x, y, w, h := fit(vb.W, vb.H, float64(width), float64(height))
	icon.Transform = viewBoxTransform(vb, x, y, w, h)

	dst := image.NewRGBA(image.Rect(0, 0, width, height))
	scanner := rasterx.NewScannerGV(width, height, dst, dst.Bounds())
	icon.Draw(rasterx.NewDasher(width, height, scanner), 1.0)

	return imaging.Clone(dst), nil
}

// viewBoxTransform maps user space onto the target rectangle. The viewBox
// origin is subtracted before scaling; SvgIcon.SetTarget subtracts it after,
// which misplaces documents whose viewBox does not start at 0,0.
func viewBoxTransform(vb struct{ X, Y, W, H float64 }, x, y, w, h float64) rasterx.Matrix2D {
	return rasterx.Identity.Translate(x, y).Scale(w/vb.W, h/vb.H).Translate(-vb.X, -vb.Y)
}

// fit scales a srcW x srcH drawing into a dstW x dstH box, keeping its
// aspect ratio, and centers it.
func fit(srcW, srcH, dstW, dstH float64) (x, y, w, h float64) {
	scale := math.Min(dstW/srcW, dstH/srcH)
	w, h = srcW*scale, srcH*scale
	return (dstW - w) / 2, (dstH - h) / 2, w, h
}

func (r *Rasterizer) lookup(ctx context.Context, key string, width, height int) (*image.NRGBA, bool) {
	data, hit, err := r.cache.Get(ctx, key)
	if err != nil {
		r.logger.Debug("raster cache read failed", "key", key, "error", err)
		return nil, false
	}
	if !hit {
		observability.Cache().OnCacheMiss(ctx, "raster")
		return nil, false
	}

	img, err := imaging.Decode(bytes.NewReader(data))
	if err != nil || img.Bounds().Dx() != width || img.Bounds().Dy() != height {
		r.logger.Debug("discarding unusable raster cache entry", "key", key)
		_ = r.cache.Delete(ctx, key)
		observability.Cache().OnCacheMiss(ctx, "raster")
		return nil, false
	}
	observability.Cache().OnCacheHit(ctx, "raster")
	return imaging.Clone(img), true
}

func (r *Rasterizer) store(ctx context.Context, key string, img *image.NRGBA) {
	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, imaging.PNG); err != nil {
		r.logger.Debug("raster cache encode failed", "key", key, "error", err)
		return
	}
	if err := r.cache.Set(ctx, key, buf.Bytes(), r.ttl); err != nil {
		r.logger.Debug("raster cache write failed", "key", key, "error", err)
		return
	}
	observability.Cache().OnCacheSet(ctx, "raster", buf.Len())
}
