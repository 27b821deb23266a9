package cli

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/spf13/cobra"

	"github.com/diskforge/diskforge/pkg/cache"
	dferrors "github.com/diskforge/diskforge/pkg/errors"
	"github.com/diskforge/diskforge/pkg/pipeline"
)

// serveOpts holds the command-line flags for the serve command.
type serveOpts struct {
	addr     string
	redisURL string
}

// serveCommand creates the serve command: a local HTTP preview server.
func (c *CLI) serveCommand() *cobra.Command {
	opts := serveOpts{addr: ":8080"}

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP preview server",
		Long: `Run a local HTTP server for previewing templates and guides.

Endpoints:
  GET /healthz           liveness check
  GET /template.svg      rendered template (also .png, .pdf)
  GET /guide.md          fabrication guide (also .txt)
  GET /plan.json         the raw drawing plan

All endpoints accept query parameters to override the spec:
  preset, slots, pulley, diameter, slot_width, kind, style, scale

With --redis, rendered artifacts are cached in Redis so multiple
instances share work; otherwise the local file cache is used.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runServe(cmd.Context(), &opts)
		},
	}

	cmd.Flags().StringVar(&opts.addr, "addr", opts.addr, "listen address")
	cmd.Flags().StringVar(&opts.redisURL, "redis", "", "Redis URL for shared artifact caching (e.g. redis://localhost:6379/0)")

	return cmd
}

func (c *CLI) runServe(ctx context.Context, opts *serveOpts) error {
	cacheBackend, err := newServerCache(ctx, opts.redisURL)
	if err != nil {
		return err
	}
	defer cacheBackend.Close()

	var keyer cache.Keyer
	if opts.redisURL != "" {
		keyer = cache.NewScopedKeyer(nil, appName+":")
	}
	runner := pipeline.NewRunner(cacheBackend, keyer, c.Logger)
	srv := &previewServer{runner: runner, cli: c}

	httpSrv := &http.Server{
		Addr:              opts.addr,
		Handler:           srv.routes(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		c.Logger.Info("preview server listening", "addr", opts.addr)
		errCh <- httpSrv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = httpSrv.Shutdown(shutdownCtx)
		return nil
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}

// previewServer serves rendered artifacts over HTTP.
type previewServer struct {
	runner *pipeline.Runner
	cli    *CLI
}

func (s *previewServer) routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(s.logRequests)

	r.Get("/healthz", s.handleHealth)
	r.Get("/template.svg", s.handleArtifact(pipeline.FormatSVG, "image/svg+xml"))
	r.Get("/template.png", s.handleArtifact(pipeline.FormatPNG, "image/png"))
	r.Get("/template.pdf", s.handleArtifact(pipeline.FormatPDF, "application/pdf"))
	r.Get("/plan.json", s.handleArtifact(pipeline.FormatJSON, "application/json"))
	r.Get("/guide.md", s.handleGuide(pipeline.GuideMarkdown, "text/markdown; charset=utf-8"))
	r.Get("/guide.txt", s.handleGuide(pipeline.GuideText, "text/plain; charset=utf-8"))

	return r
}

func (s *previewServer) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		s.cli.Logger.Debug("request",
			"method", r.Method,
			"path", r.URL.Path,
			"duration", time.Since(start).Round(time.Millisecond))
	})
}

func (s *previewServer) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write([]byte(`{"status":"ok"}` + "\n"))
}

// handleArtifact renders one diagram format per request.
func (s *previewServer) handleArtifact(format, contentType string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		opts, err := optionsFromQuery(r)
		if err != nil {
			writeHTTPError(w, err)
			return
		}
		opts.Formats = []string{format}

		result, err := s.runner.Execute(r.Context(), *opts)
		if err != nil {
			writeHTTPError(w, err)
			return
		}
		if failure, ok := result.Failed[format]; ok {
			writeHTTPError(w, failure)
			return
		}

		w.Header().Set("Content-Type", contentType)
		_, _ = w.Write(result.Artifacts[format])
	}
}

// handleGuide renders one guide format per request.
func (s *previewServer) handleGuide(format, contentType string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		opts, err := optionsFromQuery(r)
		if err != nil {
			writeHTTPError(w, err)
			return
		}
		opts.GuideFormats = []string{format}

		result, err := s.runner.Execute(r.Context(), *opts)
		if err != nil {
			writeHTTPError(w, err)
			return
		}

		w.Header().Set("Content-Type", contentType)
		_, _ = w.Write(result.Guides[format])
	}
}

// optionsFromQuery builds pipeline options from the request query:
// preset selection plus individual spec overrides.
func optionsFromQuery(r *http.Request) (*pipeline.Options, error) {
	q := r.URL.Query()

	so := specOpts{
		preset:   q.Get("preset"),
		material: q.Get("material"),
	}
	var err error
	if so.slots, err = intParam(q.Get("slots")); err != nil {
		return nil, err
	}
	if so.pulley, err = floatParam(q.Get("pulley")); err != nil {
		return nil, err
	}
	if so.diameter, err = floatParam(q.Get("diameter")); err != nil {
		return nil, err
	}
	if so.slotWidth, err = floatParam(q.Get("slot_width")); err != nil {
		return nil, err
	}

	spec, err := so.resolve()
	if err != nil {
		return nil, err
	}

	scale, err := floatParam(q.Get("scale"))
	if err != nil {
		return nil, err
	}

	return &pipeline.Options{
		Spec:  spec,
		Kind:  q.Get("kind"),
		Style: q.Get("style"),
		Scale: scale,
	}, nil
}

func intParam(s string) (int, error) {
	if s == "" {
		return 0, nil
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return 0, dferrors.New(dferrors.ErrCodeInvalidSpec, "invalid integer parameter %q", s)
	}
	return v, nil
}

func floatParam(s string) (float64, error) {
	if s == "" {
		return 0, nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, dferrors.New(dferrors.ErrCodeInvalidSpec, "invalid numeric parameter %q", s)
	}
	return v, nil
}

// writeHTTPError maps error codes to HTTP statuses: validation
// problems are the client's fault, everything else is ours.
func writeHTTPError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch dferrors.GetCode(err) {
	case dferrors.ErrCodeInvalidSpec, dferrors.ErrCodeInvalidFormat,
		dferrors.ErrCodeInvalidStyle, dferrors.ErrCodeInvalidKind,
		dferrors.ErrCodeInvalidPreset:
		status = http.StatusBadRequest
	case dferrors.ErrCodeNotFound, dferrors.ErrCodeFileNotFound:
		status = http.StatusNotFound
	}
	http.Error(w, dferrors.UserMessage(err), status)
}
