package server

import (
	"context"
	"embed"
	"errors"
	"io"
	"io/fs"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"golang.org/x/sync/errgroup"

	"github.com/bietkhonhungvandi212/fitsim/internal/input"
	"github.com/bietkhonhungvandi212/fitsim/internal/logger"
	"github.com/bietkhonhungvandi212/fitsim/internal/sim"
	util "github.com/bietkhonhungvandi212/fitsim/internal/utils"
)

//go:embed static
var static embed.FS

var allowedCORSHeaders = []string{"Accept", "Accept-Language", "Content-Language", "Origin", headerContentType}

// Server exposes simulations over HTTP. Sessions and history live in
// process memory only.
type Server struct {
	opts       util.Options
	simOptions sim.Options
	sessions   *store
	history    *input.History
	limiter    Limiter
	log        *slog.Logger
}

func New(opts util.Options, log *slog.Logger) *Server {
	if log == nil {
		log = logger.NOP()
	}
	if opts.MaxBodySize <= 0 {
		opts.MaxBodySize = util.DefaultOptions().MaxBodySize
	}
	return &Server{
		opts:       opts,
		simOptions: sim.OptionsFrom(opts, log),
		sessions:   newStore(opts.MaxSessions, opts.SessionTTL),
		history:    input.NewHistory(),
		limiter:    NewLocalRateLimiter(opts.RateLimit, opts.RateBurst),
		log:        log,
	}
}

// Handler builds the router: the JSON API under /api/v1, the health
// check and the embedded page.
func (s *Server) Handler() http.Handler {
	r := mux.NewRouter()
	r.NotFoundHandler = http.HandlerFunc(http.NotFound)
	r.HandleFunc("/health", s.health).Methods(http.MethodGet)

	api := r.PathPrefix("/api/v1").Subrouter()
	api.Use(
		handlers.CORS(
			handlers.AllowedHeaders(allowedCORSHeaders),
			handlers.AllowedMethods([]string{http.MethodGet, http.MethodPost, http.MethodDelete, http.MethodOptions}),
		),
		s.rateLimit,
	)
	api.HandleFunc("/simulations", s.createSimulation).Methods(http.MethodPost, http.MethodOptions)
	api.HandleFunc("/simulations/{id}", s.getSimulation).Methods(http.MethodGet, http.MethodOptions)
	api.HandleFunc("/simulations/{id}", s.deleteSimulation).Methods(http.MethodDelete)
	api.HandleFunc("/simulations/{id}/steps", s.stepSimulation).Methods(http.MethodPost, http.MethodOptions)
	api.HandleFunc("/history", s.listHistory).Methods(http.MethodGet, http.MethodOptions)
	api.HandleFunc("/history/{index:[0-9]+}", s.getHistory).Methods(http.MethodGet, http.MethodOptions)

	page, err := fs.Sub(static, "static")
	if err != nil {
		panic(err)
	}
	r.PathPrefix("/").Handler(http.FileServerFS(page)).Methods(http.MethodGet, http.MethodHead)

	var h http.Handler = http.MaxBytesHandler(r, s.opts.MaxBodySize)
	h = handlers.CustomLoggingHandler(io.Discard, h, s.logRequest)
	h = handlers.RecoveryHandler(handlers.RecoveryLogger(slog.NewLogLogger(s.log.Handler(), slog.LevelError)))(h)
	return handlers.ProxyHeaders(h)
}

// ListenAndServe serves on addr until ctx is cancelled, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return err
	}
	return s.Serve(ctx, ln)
}

func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		ReadTimeout:       3 * time.Second,
		ReadHeaderTimeout: time.Second,
		WriteTimeout:      5 * time.Second,
		IdleTimeout:       30 * time.Second,
		Handler:           s.Handler(),
	}

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		s.log.Info("fitsim started", slog.String("addr", ln.Addr().String()))
		if err := srv.Serve(ln); !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		sctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(sctx); err != nil {
			s.log.Warn("shutting down http server", logger.Error(err))
			return err
		}
		s.log.Info("fitsim stopped")
		return nil
	})
	return g.Wait()
}

func (s *Server) rateLimit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !s.limiter.Allow(clientKey(r)) {
			writeAlert(w, r, util.MsgRateLimited, kindRateLimited, http.StatusTooManyRequests, s.log)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) logRequest(_ io.Writer, p handlers.LogFormatterParams) {
	s.log.Info("http request",
		slog.String("method", p.Request.Method),
		slog.String("path", p.URL.Path),
		slog.Int("status", p.StatusCode),
		slog.Int("size", p.Size),
		slog.String("client", clientKey(p.Request)),
		slog.Duration("elapsed", time.Since(p.TimeStamp)),
	)
}
