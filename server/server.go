package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"

	"github.com/sirupsen/logrus"
	"github.com/spf13/afero"

	"ollamabench/config"
	"ollamabench/cors"
	"ollamabench/handler"
	"ollamabench/logging"
	"ollamabench/results"
)

var log *logrus.Logger

func init() {
	log = logging.GetLogger()
}

// Server is the status HTTP server.
type Server struct {
	cfg    *config.Config
	policy cors.Policy
	fs     afero.Fs
	http   *http.Server
}

// Option customizes a Server.
type Option func(*Server)

// WithFs sets the filesystem used by PrepareResultsDir.
func WithFs(fs afero.Fs) Option {
	return func(s *Server) {
		s.fs = fs
	}
}

// New creates a new Server. The config is shared read-only by all requests.
func New(cfg *config.Config, opts ...Option) *Server {
	s := &Server{
		cfg:    cfg,
		policy: cors.ParseOrigins(cfg.AllowedOrigins),
		fs:     afero.NewOsFs(),
	}
	for _, opt := range opts {
		opt(s)
	}

	mux := http.NewServeMux()
	handler.NewStatusHandler(cfg).Register(mux)

	s.http = &http.Server{
		Addr:    cfg.Server.ListenAddress,
		Handler: handler.WithLogging(cors.Middleware(s.policy, mux)),
	}
	return s
}

// Handler returns the fully wrapped request handler.
func (s *Server) Handler() http.Handler {
	return s.http.Handler
}

// Policy returns the effective origin policy.
func (s *Server) Policy() cors.Policy {
	return s.policy
}

// PrepareResultsDir checks the results directory is writable. A failure is
// logged and returned, but callers keep starting up.
func (s *Server) PrepareResultsDir() error {
	dir := results.Dir(s.cfg.ResultsCSV)
	if err := results.EnsureWritable(s.fs, dir); err != nil {
		log.Errorf("Unable to ensure results dir %s is writable: %v", dir, err)
		return err
	}
	log.Debugf("Results dir %s is writable", dir)
	return nil
}

// Start serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Start(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.http.Addr)
	if err != nil {
		return fmt.Errorf("listen: %w", err)
	}
	return s.Serve(ctx, ln)
}

// Serve is Start on an existing listener.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	log.Infof("Starting server on %s", ln.Addr())

	errCh := make(chan error, 1)
	go func() {
		errCh <- s.http.Serve(ln)
	}()

	select {
	case <-ctx.Done():
		log.Infoln("Shutting down server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), s.cfg.Server.ShutdownTimeout)
		defer cancel()
		if err := s.http.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown: %w", err)
		}
		return nil
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}
