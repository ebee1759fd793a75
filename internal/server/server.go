//go:generate moq --stub -out 0moq_test.go . Client:ClientMock Recorder:RecorderMock

// package server serves the importer REST API. Every POST endpoint runs
// its operation with the request's logs captured and returns them to the
// caller in the msgs field of the response.
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/davseby/asyncapi-importer/internal/capture"
	"github.com/davseby/asyncapi-importer/internal/catalog"
	"github.com/davseby/asyncapi-importer/internal/importer"
	"github.com/davseby/asyncapi-importer/internal/request"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/exp/slog"
)

// _closeTimeout is the timeout for closing the server.
const _closeTimeout = 5 * time.Second

// Config holds the HTTP server settings.
type Config struct {
	// Addr is the address the server listens on.
	Addr string `default:":8080" yaml:"addr"`

	// CORS holds the cross-origin settings.
	CORS CORSConfig `yaml:"cors"`
}

// Client is the part of the cloud API client used by the handlers.
type Client interface {
	// ValidateToken should check whether the token is accepted.
	ValidateToken(ctx context.Context) error

	// ApplicationDomains should return all visible application domains.
	ApplicationDomains(ctx context.Context) ([]catalog.Domain, error)

	// ApplicationDomain should return the domain with the given id.
	ApplicationDomain(ctx context.Context, id string) (catalog.Domain, error)

	// FindApplicationDomain should return the domain with the given name.
	FindApplicationDomain(ctx context.Context, name string) (catalog.Domain, error)
}

// Recorder processes the records of served requests.
type Recorder interface {
	// Handle should process the record.
	Handle(rec request.Record) error
}

// Dependencies holds the collaborators of the server.
type Dependencies struct {
	// Router is the process-wide log router sinks are attached to.
	Router *capture.Router

	// Capture holds the captured lines settings.
	Capture capture.Config

	// Catalog is the shared cloud API.
	Catalog *catalog.API

	// DefaultRegion is used when a request does not select a region.
	DefaultRegion string

	// Importer imports the documents.
	Importer *importer.Importer

	// Recorder receives a record of every served request.
	Recorder Recorder
}

// Server is the importer REST API server.
type Server struct {
	log *slog.Logger

	server   *http.Server
	registry *prometheus.Registry
	metrics  *metrics

	router    *capture.Router
	sequence  *capture.Sequence
	formatter *capture.Formatter
	limits    capture.Limits

	connect       func(baseURL, token string) Client
	defaultRegion string
	importer      *importer.Importer
	recorder      Recorder
}

// NewServer creates a new server.
func NewServer(log *slog.Logger, cfg Config, deps Dependencies) (*Server, error) {
	f, err := deps.Capture.Formatter()
	if err != nil {
		return nil, fmt.Errorf("creating capture formatter: %w", err)
	}

	s := &Server{
		log:       log.With("job", "server"),
		registry:  prometheus.NewRegistry(),
		router:    deps.Router,
		sequence:  capture.NewSequence(),
		formatter: f,
		limits:    deps.Capture.Limits(),
		connect: func(baseURL, token string) Client {
			return deps.Catalog.Client(baseURL, token)
		},
		defaultRegion: deps.DefaultRegion,
		importer:      deps.Importer,
		recorder:      deps.Recorder,
	}

	s.metrics = newMetrics(s.registry, deps.Router)

	s.server = &http.Server{
		Addr:              cfg.Addr,
		Handler:           s.engine(cfg.CORS),
		ReadHeaderTimeout: 10 * time.Second,
	}

	return s, nil
}

// engine creates the HTTP routes.
func (s *Server) engine(cors CORSConfig) *gin.Engine {
	e := gin.New()
	e.Use(gin.Recovery(), s.observe, corsMiddleware(cors))

	e.GET("/importer/alive", s.handleAlive)
	e.POST("/importer", s.handleImport)
	e.POST("/importer/validate-token", s.handleValidateToken)
	e.POST("/importer/appdomains", s.handleAppDomains)
	e.GET("/metrics", gin.WrapH(promhttp.HandlerFor(s.registry, promhttp.HandlerOpts{})))

	return e
}

// ServeHTTP serves HTTP.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.server.Handler.ServeHTTP(w, r)
}

// ListenAndServe listens for and serves connections until the context is
// cancelled.
func (s *Server) ListenAndServe(ctx context.Context) error {
	errCh := make(chan error, 1)

	// NOTE: In case we need to exit due to application shutdown, we need
	// to close the server and wait for the listener to return.
	go func() {
		defer close(errCh)

		err := s.server.ListenAndServe()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("listening and serving: %w", err)
		}

		return nil
	case <-ctx.Done():
		closureCtx, closureCancel := context.WithTimeout(context.Background(), _closeTimeout)
		defer closureCancel()

		err := s.server.Shutdown(closureCtx)
		if err != nil {
			s.log.With("error", err).
				Error("shutting down server")
		}

		<-errCh

		return nil
	}
}

// observe records every served request and hands the record over to the
// recorder.
func (s *Server) observe(c *gin.Context) {
	rec := request.NewRecord(c.Request.Method, c.Request.Host, c.Request.URL.Path)
	c.Header("X-Request-ID", rec.ID.String())

	c.Next()

	rec.Finish(c.Writer.Status(), c.GetString(_correlationKey))

	endpoint := c.FullPath()
	if endpoint == "" {
		endpoint = "unmatched"
	}

	s.metrics.observeRequest(endpoint, rec.Status, rec.Duration)

	if s.recorder == nil {
		return
	}

	if err := s.recorder.Handle(rec); err != nil {
		s.log.With("error", err).
			Error("recording request")
	}
}
