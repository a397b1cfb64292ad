package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"html/template"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/spf13/cobra"

	spanio "github.com/matzehuels/spanviz/pkg/io"
	"github.com/matzehuels/spanviz/pkg/pipeline"
	"github.com/matzehuels/spanviz/pkg/stats"
	"github.com/matzehuels/spanviz/pkg/trace"
	"github.com/matzehuels/spanviz/pkg/trace/tree"
)

// serveCommand creates the serve command for the live preview server.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		addr    string
		noCache bool
	)
	opts := pipeline.Options{}
	setCLIDefaults(&opts)

	cmd := &cobra.Command{
		Use:   "serve [trace.json]",
		Short: "Serve a live preview of a task trace",
		Long: `Serve a live preview of a task trace.

The serve command starts a local HTTP server that runs the pipeline on
every request, so edits to a local trace file show up on reload. Remote
traces are cached; append ?refresh=1 to any endpoint to refetch.

Endpoints:

  /             HTML index embedding the diagram
  /diagram.svg  nested-rectangle diagram
  /tree.svg     fork-join tree as a node-link diagram
  /scene.json   computed scene geometry
  /stats.json   summary statistics
  /trace.json   normalized spans as loaded
  /healthz      liveness probe

Malformed traces return 422 with the validation error.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.Source = args[0]
			if addr == "" {
				addr = c.Config.Serve.Addr
			}
			c.applyRenderConfig(cmd, &opts)
			return c.runServe(cmd.Context(), addr, opts, noCache)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default from config, else localhost:8080)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	cmd.Flags().Float64Var(&opts.Width, "width", opts.Width, "frame width")
	cmd.Flags().Float64Var(&opts.Height, "height", opts.Height, "frame height")

	return cmd
}

// runServe starts the preview server and blocks until ctx is canceled.
func (c *CLI) runServe(ctx context.Context, addr string, opts pipeline.Options, noCache bool) error {
	runner, err := c.newRunner(noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	opts.Logger = c.Logger

	s := &server{cli: c, runner: runner, opts: opts}

	srv := &http.Server{
		Addr:              addr,
		Handler:           s.routes(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	printSuccess("Serving %s", opts.Source)
	printDetail("http://%s", addr)
	printNewline()

	select {
	case err := <-errCh:
		return fmt.Errorf("serve: %w", err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

// =============================================================================
// Server
// =============================================================================

// server handles preview requests for a single trace source.
type server struct {
	cli    *CLI
	runner *pipeline.Runner
	opts   pipeline.Options
}

// routes builds the router.
func (s *server) routes() http.Handler {
	r := chi.NewRouter()
	r.Use(s.logRequests)
	r.Get("/", s.handleIndex)
	r.Get("/healthz", s.handleHealthz)
	r.Get("/diagram.svg", s.handleDiagram)
	r.Get("/tree.svg", s.handleTree)
	r.Get("/scene.json", s.handleScene)
	r.Get("/stats.json", s.handleStats)
	r.Get("/trace.json", s.handleTrace)
	return r
}

// logRequests logs each request with status and timing.
func (s *server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		s.cli.Logger.Info("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"bytes", ww.BytesWritten(),
			"duration", time.Since(start),
		)
	})
}

// requestOptions copies the base options and applies per-request query
// parameters.
func (s *server) requestOptions(r *http.Request) pipeline.Options {
	opts := s.opts
	if r.URL.Query().Get("refresh") != "" {
		opts.Refresh = true
	}
	return opts
}

// buildTrace fetches and validates the trace for the current request.
func (s *server) buildTrace(r *http.Request) (*trace.Index, *tree.Node, error) {
	data, err := s.runner.Fetch(r.Context(), s.requestOptions(r))
	if err != nil {
		return nil, nil, err
	}
	return pipeline.BuildTrace(data)
}

// =============================================================================
// Handlers
// =============================================================================

var indexTemplate = template.Must(template.New("index").Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>spanviz: {{.Source}}</title>
<style>
body { font-family: system-ui, sans-serif; margin: 2rem; color: #222; }
img { max-width: 100%; border: 1px solid #ddd; }
nav a { margin-right: 1rem; }
</style>
</head>
<body>
<h1>{{.Source}}</h1>
<nav>
<a href="/diagram.svg">diagram</a>
<a href="/tree.svg">tree</a>
<a href="/scene.json">scene</a>
<a href="/stats.json">stats</a>
<a href="/trace.json">trace</a>
</nav>
<p><img src="/diagram.svg" alt="trace diagram"></p>
</body>
</html>
`))

func (s *server) handleIndex(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := indexTemplate.Execute(w, map[string]string{"Source": s.opts.Source}); err != nil {
		s.cli.Logger.Error("render index", "error", err)
	}
}

func (s *server) handleHealthz(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func (s *server) handleDiagram(w http.ResponseWriter, r *http.Request) {
	s.handleArtifact(w, r, pipeline.ViewDiagram, pipeline.FormatSVG, "image/svg+xml")
}

func (s *server) handleTree(w http.ResponseWriter, r *http.Request) {
	s.handleArtifact(w, r, pipeline.ViewTree, pipeline.FormatSVG, "image/svg+xml")
}

func (s *server) handleScene(w http.ResponseWriter, r *http.Request) {
	s.handleArtifact(w, r, pipeline.ViewDiagram, pipeline.FormatJSON, "application/json")
}

// handleArtifact runs the pipeline for one view/format pair and writes
// the artifact.
func (s *server) handleArtifact(w http.ResponseWriter, r *http.Request, view, format, contentType string) {
	opts := s.requestOptions(r)
	opts.View = view
	opts.Formats = []string{format}

	result, err := s.runner.Execute(r.Context(), opts)
	if err != nil {
		httpError(w, err)
		return
	}

	w.Header().Set("Content-Type", contentType)
	if _, err := w.Write(result.Artifacts[format]); err != nil {
		s.cli.Logger.Error("write artifact", "format", format, "error", err)
	}
}

func (s *server) handleStats(w http.ResponseWriter, r *http.Request) {
	idx, root, err := s.buildTrace(r)
	if err != nil {
		httpError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(stats.Summarize(idx, root)); err != nil {
		s.cli.Logger.Error("write stats", "error", err)
	}
}

func (s *server) handleTrace(w http.ResponseWriter, r *http.Request) {
	idx, _, err := s.buildTrace(r)
	if err != nil {
		httpError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := spanio.WriteSpans(idx.Spans(), w); err != nil {
		s.cli.Logger.Error("write trace", "error", err)
	}
}

// =============================================================================
// Errors
// =============================================================================

// httpError writes err with 422 for trace validation failures and 500
// for everything else.
func httpError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	if isMalformedTrace(err) {
		status = http.StatusUnprocessableEntity
	}
	http.Error(w, err.Error(), status)
}

// isMalformedTrace reports whether err stems from span validation
// rather than the server itself.
func isMalformedTrace(err error) bool {
	for _, sentinel := range []error{
		trace.ErrReservedID,
		trace.ErrNegativeID,
		trace.ErrDuplicateID,
		trace.ErrUnknownParent,
		trace.ErrNoRoot,
		trace.ErrMultipleRoots,
	} {
		if errors.Is(err, sentinel) {
			return true
		}
	}
	return false
}
