// Package httpserver exposes the codec over HTTP:
//
//	GET /roman/{n}        integer -> numeral
//	GET /arabic/{numeral} numeral -> integer
//	GET /healthz
package httpserver

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/aalvaropc/roman/internal/domain"
	"github.com/aalvaropc/roman/internal/infra/logger"
	"github.com/aalvaropc/roman/internal/usecase"
	"github.com/google/uuid"
)

const (
	DefaultAddr = ":8000"

	RequestIDHeader = "X-Request-Id"

	shutdownTimeout = 5 * time.Second
)

type Server struct {
	conv  *usecase.Converter
	addr  string
	log   *slog.Logger
	ready func(net.Addr)
	srv   *http.Server
}

type Option func(*Server)

func WithAddr(addr string) Option {
	return func(s *Server) {
		if addr != "" {
			s.addr = addr
		}
	}
}

func WithLogger(l *slog.Logger) Option {
	return func(s *Server) {
		if l != nil {
			s.log = l
		}
	}
}

// WithReady is called with the bound address once the listener is open.
func WithReady(fn func(net.Addr)) Option {
	return func(s *Server) { s.ready = fn }
}

func New(conv *usecase.Converter, opts ...Option) *Server {
	if conv == nil {
		conv = usecase.NewConverter(nil)
	}
	s := &Server{
		conv: conv,
		addr: DefaultAddr,
		log:  logger.L(),
	}
	for _, opt := range opts {
		opt(s)
	}

	s.srv = &http.Server{
		Addr:           s.addr,
		Handler:        s.Handler(),
		ReadTimeout:    10 * time.Second,
		WriteTimeout:   10 * time.Second,
		MaxHeaderBytes: 1 << 20,
	}
	return s
}

// Handler returns the routed handler with request ids and request logging.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /roman/{n}", s.handleRoman)
	mux.HandleFunc("GET /arabic/{numeral}", s.handleArabic)
	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		_, _ = w.Write([]byte("ok"))
	})
	return s.withRequestLog(mux)
}

// Run serves until ctx is done, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.addr)
	if err != nil {
		return &domain.OpError{Op: "httpserver.listen", Kind: domain.KindExecution, Input: s.addr, Err: err}
	}
	s.log.Info("serve.listen", "addr", ln.Addr().String(), "max", s.conv.Max())
	if s.ready != nil {
		s.ready(ln.Addr())
	}

	errc := make(chan error, 1)
	go func() { errc <- s.srv.Serve(ln) }()

	select {
	case err := <-errc:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return &domain.OpError{Op: "httpserver.serve", Kind: domain.KindExecution, Input: s.addr, Err: err}

	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		err := s.srv.Shutdown(shutdownCtx)
		<-errc
		s.log.Info("serve.stop", "addr", ln.Addr().String())
		if err != nil {
			return &domain.OpError{Op: "httpserver.shutdown", Kind: domain.KindExecution, Input: s.addr, Err: err}
		}
		return nil
	}
}

func (s *Server) handleRoman(w http.ResponseWriter, r *http.Request) {
	s.writeConversion(w, s.conv.Convert(r.PathValue("n"), domain.DirectionEncode))
}

func (s *Server) handleArabic(w http.ResponseWriter, r *http.Request) {
	s.writeConversion(w, s.conv.Convert(r.PathValue("numeral"), domain.DirectionDecode))
}

func (s *Server) writeConversion(w http.ResponseWriter, c domain.Conversion) {
	status := http.StatusOK
	if c.Error != nil {
		status = statusFor(c.Error.Kind)
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(c); err != nil {
		s.log.Warn("serve.write_failed", "err", err)
	}
}

// statusFor maps a conversion failure kind to an HTTP status.
func statusFor(k domain.ErrorKind) int {
	switch k {
	case domain.KindOutOfRange:
		return http.StatusNotFound
	case domain.KindUnrecognizedSymbol, domain.KindNonCanonical:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

func (s *Server) withRequestLog(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		id := uuid.NewString()
		w.Header().Set(RequestIDHeader, id)

		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)

		s.log.Info("serve.request",
			"request_id", id,
			"method", r.Method,
			"path", r.URL.Path,
			"status", rec.status,
			"duration_ms", time.Since(start).Milliseconds(),
		)
	})
}
