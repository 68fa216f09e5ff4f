// Package server serves brand assets over HTTP, rendering each one on
// request from the current configuration and logo files. It is meant for
// previewing changes to the logos in a browser.
//
// Every request runs the asset's job through an assets.Generator whose sink
// is an in-memory assets.MemorySink, and the response is read back from that
// sink. A job that fails answers with an error and leaves the last good
// rendering in the sink untouched.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"path"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/matzehuels/brandkit/pkg/assets"
	"github.com/matzehuels/brandkit/pkg/brand"
	"github.com/matzehuels/brandkit/pkg/cache"
	bkerrors "github.com/matzehuels/brandkit/pkg/errors"
)

// ShutdownTimeout bounds how long in-flight requests may run after the
// serving context ends.
const ShutdownTimeout = 5 * time.Second

// Server renders assets through a Generator on every request.
type Server struct {
	gen    *assets.Generator
	sink   *assets.MemorySink
	logger *log.Logger
	router chi.Router
}

// route ties a URL path to one artifact of one job.
type route struct {
	job  assets.Job
	path string
}

// New builds the routing table from cfg. Assets are rasterized with r.
func New(cfg brand.Config, r assets.Rasterizer, logger *log.Logger) *Server {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	sink := assets.NewMemorySink()
	s := &Server{
		gen:    assets.NewGenerator(cfg, r, sink, logger),
		sink:   sink,
		logger: logger,
	}

	router := chi.NewRouter()
	router.Use(middleware.Recoverer)
	router.Use(s.observe)

	router.Get("/healthz", s.handleHealth)
	router.Get("/manifest.webmanifest", s.handleManifest)

	top := []route{{assets.JobFavicon, cfg.Favicon.ICO}}
	for _, g := range cfg.Favicon.Glyphs {
		top = append(top, route{assets.JobFavicon, g.PNG})
	}
	top = append(top,
		route{assets.JobTouchIcon, cfg.TouchIcon.Path},
		route{assets.JobSocial, cfg.Social.Path},
	)
	for _, rt := range top {
		router.Get("/"+path.Base(rt.path), s.handleAsset(rt))
	}

	icons := make(map[string]route, len(cfg.Icons.Sizes))
	for _, is := range cfg.Icons.Sizes {
		icons[is.Filename] = route{assets.JobIcons, is.Filename}
	}
	router.Get("/icons/{name}", func(w http.ResponseWriter, req *http.Request) {
		rt, ok := icons[chi.URLParam(req, "name")]
		if !ok {
			http.NotFound(w, req)
			return
		}
		s.handleAsset(rt)(w, req)
	})

	s.router = router
	return s
}

// Handler returns the HTTP handler.
func (s *Server) Handler() http.Handler { return s.router }

// ListenAndServe serves on addr until ctx ends, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() { errCh <- srv.ListenAndServe() }()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errCh; !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *Server) handleAsset(rt route) http.HandlerFunc {
	return func(w http.ResponseWriter, req *http.Request) {
		report := s.gen.Generate(req.Context(), rt.job)
		if report.Interrupted() {
			// Client went away.
			return
		}
		if res := report.Results[0]; !res.OK() {
			s.renderError(w, rt.job, res.Err)
			return
		}
		a, ok := s.sink.Get(rt.path)
		if !ok {
			s.renderError(w, rt.job, bkerrors.New(bkerrors.ErrCodeInternal, "%s did not produce %s", rt.job, rt.path))
			return
		}
		serveBytes(w, req, a.Format.ContentType(), a.Data)
	}
}

func (s *Server) renderError(w http.ResponseWriter, job assets.Job, err error) {
	status := http.StatusInternalServerError
	switch bkerrors.GetCode(err) {
	case bkerrors.ErrCodeFileNotFound:
		status = http.StatusNotFound
	case bkerrors.ErrCodeInvalidSVG:
		status = http.StatusUnprocessableEntity
	}
	s.logger.Warn("render failed", "job", job, "error", err)
	http.Error(w, bkerrors.UserMessage(err), status)
}

// serveBytes writes data with a content-hash ETag, answering 304 when the
// client already holds it.
func serveBytes(w http.ResponseWriter, req *http.Request, contentType string, data []byte) {
	etag := `"` + cache.Hash(data)[:32] + `"`
	h := w.Header()
	h.Set("ETag", etag)
	h.Set("Cache-Control", "no-cache")
	if etagMatch(req.Header.Get("If-None-Match"), etag) {
		w.WriteHeader(http.StatusNotModified)
		return
	}
	h.Set("Content-Type", contentType)
	w.Write(data)
}

func etagMatch(header, etag string) bool {
	for _, tag := range strings.Split(header, ",") {
		tag = strings.TrimSpace(tag)
		if tag == "*" || strings.TrimPrefix(tag, "W/") == etag {
			return true
		}
	}
	return false
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	io.WriteString(w, "ok\n")
}

// manifest is the subset of the web app manifest describing icons.
type manifest struct {
	Name            string         `json:"name,omitempty"`
	Icons           []manifestIcon `json:"icons"`
	ThemeColor      string         `json:"theme_color"`
	BackgroundColor string         `json:"background_color"`
	Display         string         `json:"display"`
}

type manifestIcon struct {
	Src   string `json:"src"`
	Sizes string `json:"sizes"`
	Type  string `json:"type"`
}

func (s *Server) handleManifest(w http.ResponseWriter, req *http.Request) {
	cfg := s.gen.Config()
	m := manifest{
		Name:            cfg.Name,
		ThemeColor:      cfg.Palette.Accent.Hex(),
		BackgroundColor: cfg.Palette.Background.Hex(),
		Display:         "standalone",
	}
	for _, is := range cfg.Icons.Sizes {
		m.Icons = append(m.Icons, manifestIcon{
			Src:   "/icons/" + is.Filename,
			Sizes: sizeString(is.Size),
			Type:  assets.FormatPNG.ContentType(),
		})
	}
	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		s.renderError(w, "manifest", err)
		return
	}
	serveBytes(w, req, "application/manifest+json", data)
}

func sizeString(n int) string {
	return fmt.Sprintf("%dx%d", n, n)
}
