package cli

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/spf13/cobra"

	"github.com/glasspiral/glasspiral/pkg/cache"
	gperrors "github.com/glasspiral/glasspiral/pkg/errors"
	"github.com/glasspiral/glasspiral/pkg/gallery"
	"github.com/glasspiral/glasspiral/pkg/observability"
	"github.com/glasspiral/glasspiral/pkg/pipeline"
	"github.com/glasspiral/glasspiral/pkg/render/sink"
	"github.com/glasspiral/glasspiral/pkg/trace"
)

// serveCommand creates the serve command, an HTTP API over the
// pipeline with a scene gallery.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		addr     string
		mongoURI string
		noCache  bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the pipeline and scene gallery over HTTP",
		Long: `Serve the pipeline and scene gallery over HTTP.

Exposes the pipeline as a JSON API: POST a trace to /api/scenes to
place it and store the scene in the gallery, then fetch renderings of
stored scenes by ID. The gallery uses MongoDB when a URI is configured
and an in-memory store otherwise; the cache uses Redis when an address
is configured so multiple instances share results.

Prometheus metrics for pipeline stages and cache traffic are exposed
on /metrics.

Examples:
  glasspiral serve
  glasspiral serve --addr :9000 --mongo-uri mongodb://localhost:27017`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if addr == "" {
				addr = c.Config.Serve.Addr
			}
			if mongoURI == "" {
				mongoURI = c.Config.Gallery.MongoURI
			}
			return c.runServe(cmd.Context(), addr, mongoURI, noCache)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default from config, :8080)")
	cmd.Flags().StringVar(&mongoURI, "mongo-uri", "", "MongoDB URI for the gallery (in-memory if empty)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "bypass the cache entirely")

	return cmd
}

// runServe wires up storage, metrics, and the router, then serves
// until the context is cancelled.
func (c *CLI) runServe(ctx context.Context, addr, mongoURI string, noCache bool) error {
	runner, err := c.serveRunner(ctx, noCache)
	if err != nil {
		return err
	}
	defer runner.Close()

	store, err := c.galleryStore(ctx, mongoURI)
	if err != nil {
		return err
	}
	defer store.Close(context.Background())

	hooks := observability.NewPrometheusHooks()
	observability.SetPipelineHooks(hooks)
	observability.SetCacheHooks(hooks)
	defer observability.Reset()

	srv := &server{
		cli:    c,
		runner: runner,
		store:  store,
	}

	httpServer := &http.Server{
		Addr:              addr,
		Handler:           srv.routes(hooks.Handler()),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		c.Logger.Info("listening", "addr", addr)
		errCh <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		c.Logger.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return httpServer.Shutdown(shutdownCtx)
	}
}

// serveRunner builds the pipeline runner for serving. Redis replaces
// the file cache when configured so instances share results.
func (c *CLI) serveRunner(ctx context.Context, noCache bool) (*pipeline.Runner, error) {
	if !noCache && c.Config.Cache.RedisAddr != "" {
		redisCache, err := cache.NewRedisCache(ctx, cache.RedisConfig{
			Addr:     c.Config.Cache.RedisAddr,
			Password: c.Config.Cache.RedisPassword,
			DB:       c.Config.Cache.RedisDB,
		})
		if err != nil {
			return nil, err
		}
		return pipeline.NewRunner(redisCache, nil, c.Logger), nil
	}
	return c.newRunner(noCache)
}

// galleryStore builds the gallery backend: Mongo when a URI is set,
// in-memory otherwise.
func (c *CLI) galleryStore(ctx context.Context, mongoURI string) (gallery.Store, error) {
	if mongoURI == "" {
		c.Logger.Warn("no MongoDB URI configured, gallery is in-memory and lost on restart")
		return gallery.NewMemoryStore(), nil
	}
	return gallery.NewMongoStore(ctx, gallery.MongoConfig{
		URI:      mongoURI,
		Database: c.Config.Gallery.MongoDatabase,
	})
}

// =============================================================================
// Server
// =============================================================================

// server holds the handler dependencies.
type server struct {
	cli    *CLI
	runner *pipeline.Runner
	store  gallery.Store
}

// sceneRequest is the POST /api/scenes body.
type sceneRequest struct {
	Trace string           `json:"trace"`
	Title string           `json:"title,omitempty"`
	Opts  pipeline.Options `json:"options"`
}

// routes builds the chi router.
func (s *server) routes(metrics http.Handler) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(30 * time.Second))
	r.Use(s.loggerMiddleware)

	r.Get("/", s.handleIndex)
	r.Get("/healthz", s.handleHealth)
	r.Method(http.MethodGet, "/metrics", metrics)

	r.Route("/api", func(api chi.Router) {
		api.Get("/example", s.handleExample)
		api.Post("/scenes", s.handleCreateScene)
		api.Get("/scenes", s.handleListScenes)
		api.Get("/scenes/{id}", s.handleGetScene)
		api.Get("/scenes/{id}/render", s.handleRenderScene)
		api.Delete("/scenes/{id}", s.handleDeleteScene)
	})

	return r
}

// handleIndex serves the HTML viewer of the built-in example trace.
// loggerMiddleware attaches the CLI logger to each request context so
// handlers can log without reaching back through the server struct.
func (s *server) loggerMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		next.ServeHTTP(w, r.WithContext(withLogger(r.Context(), s.cli.Logger)))
	})
}

func (s *server) handleIndex(w http.ResponseWriter, r *http.Request) {
	sc, err := s.runner.Place(r.Context(), trace.ExampleTrace(), "example", pipeline.Options{})
	if err != nil {
		s.writeError(w, err)
		return
	}
	page, err := sink.RenderHTML(sc, sink.WithHTMLTitle("glasspiral example"))
	if err != nil {
		s.writeError(w, err)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write(page)
}

func (s *server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleExample returns the placed example scene as JSON.
func (s *server) handleExample(w http.ResponseWriter, r *http.Request) {
	sc, err := s.runner.Place(r.Context(), trace.ExampleTrace(), "example", pipeline.Options{})
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, sc)
}

// handleCreateScene runs the pipeline on the posted trace and stores
// the placed scene in the gallery.
func (s *server) handleCreateScene(w http.ResponseWriter, r *http.Request) {
	var req sceneRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, gperrors.Wrap(gperrors.ErrCodeInvalidInput, err, "invalid request body"))
		return
	}

	opts := req.Opts
	opts.TraceText = req.Trace
	opts.TracePath = ""
	opts.Title = req.Title
	opts.Formats = []string{pipeline.FormatJSON}

	result, err := s.runner.Execute(r.Context(), opts)
	if err != nil {
		s.writeError(w, err)
		return
	}

	entry := gallery.NewEntry(req.Title, result.Scene)
	if err := s.store.Put(r.Context(), entry); err != nil {
		s.writeError(w, err)
		return
	}
	loggerFromContext(r.Context()).Info("scene stored", "id", entry.ID, "buildings", len(entry.Scene.Buildings))
	s.writeJSON(w, http.StatusCreated, entry.Summarize())
}

func (s *server) handleListScenes(w http.ResponseWriter, r *http.Request) {
	summaries, err := s.store.List(r.Context())
	if err != nil {
		s.writeError(w, err)
		return
	}
	if summaries == nil {
		summaries = []gallery.Summary{}
	}
	s.writeJSON(w, http.StatusOK, summaries)
}

func (s *server) handleGetScene(w http.ResponseWriter, r *http.Request) {
	entry, ok := s.lookupScene(w, r)
	if !ok {
		return
	}
	s.writeJSON(w, http.StatusOK, entry)
}

// handleRenderScene renders a stored scene in the requested format.
// Only scene-sufficient formats are available; the call-tree formats
// need the original trace, which the gallery does not keep.
func (s *server) handleRenderScene(w http.ResponseWriter, r *http.Request) {
	entry, ok := s.lookupScene(w, r)
	if !ok {
		return
	}

	format := r.URL.Query().Get("format")
	if format == "" {
		format = pipeline.FormatHTML
	}
	if err := pipeline.ValidateFormat(format); err != nil {
		s.writeError(w, err)
		return
	}

	data, supported, err := renderFormat(entry.Scene, format, entry.Title, pipeline.DefaultRevealDelay, false)
	if err != nil {
		s.writeError(w, err)
		return
	}
	if !supported {
		s.writeError(w, gperrors.New(gperrors.ErrCodeUnsupported, "format needs the original trace, POST it again with formats set"))
		return
	}

	w.Header().Set("Content-Type", contentType(format))
	_, _ = w.Write(data)
}

func (s *server) handleDeleteScene(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := gperrors.ValidateSceneID(id); err != nil {
		s.writeError(w, err)
		return
	}
	if err := s.store.Delete(r.Context(), id); err != nil {
		s.writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// lookupScene validates the ID and fetches the entry, writing the
// error response itself on failure.
func (s *server) lookupScene(w http.ResponseWriter, r *http.Request) (gallery.Entry, bool) {
	id := chi.URLParam(r, "id")
	if err := gperrors.ValidateSceneID(id); err != nil {
		s.writeError(w, err)
		return gallery.Entry{}, false
	}
	entry, err := s.store.Get(r.Context(), id)
	if errors.Is(err, gallery.ErrNotFound) {
		s.writeError(w, gperrors.New(gperrors.ErrCodeSceneNotFound, "scene not found"))
		return gallery.Entry{}, false
	}
	if err != nil {
		s.writeError(w, err)
		return gallery.Entry{}, false
	}
	return entry, true
}

// =============================================================================
// Response Helpers
// =============================================================================

// errorResponse is the JSON error body.
type errorResponse struct {
	Code  string `json:"code"`
	Error string `json:"error"`
}

func (s *server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.cli.Logger.Error("write response", "err", err)
	}
}

func (s *server) writeError(w http.ResponseWriter, err error) {
	code := gperrors.GetCode(err)
	s.writeJSON(w, statusFor(code), errorResponse{
		Code:  string(code),
		Error: gperrors.UserMessage(err),
	})
}

// statusFor maps error codes to HTTP status codes.
func statusFor(code gperrors.Code) int {
	switch code {
	case gperrors.ErrCodeSceneNotFound, gperrors.ErrCodeNotFound, gperrors.ErrCodeFileNotFound:
		return http.StatusNotFound
	case gperrors.ErrCodeInvalidInput, gperrors.ErrCodeInvalidFormat, gperrors.ErrCodeInvalidParams,
		gperrors.ErrCodeInvalidPath, gperrors.ErrCodeInvalidTitle, gperrors.ErrCodeInvalidScene:
		return http.StatusBadRequest
	case gperrors.ErrCodeTimeout:
		return http.StatusGatewayTimeout
	case gperrors.ErrCodeUnsupported:
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

// contentType returns the response content type for a format.
func contentType(format string) string {
	switch format {
	case pipeline.FormatHTML:
		return "text/html; charset=utf-8"
	case pipeline.FormatSVG:
		return "image/svg+xml"
	case pipeline.FormatPDF:
		return "application/pdf"
	case pipeline.FormatPNG:
		return "image/png"
	case pipeline.FormatDOT:
		return "text/vnd.graphviz"
	default:
		return "application/json"
	}
}
