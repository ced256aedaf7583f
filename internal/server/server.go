// Package server exposes the batch conversion over HTTP.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/onlybana/qr-code-generator/internal/config"
	"github.com/onlybana/qr-code-generator/pkg/qrbatch"
	"go.uber.org/zap"
)

// Server handles conversion requests.
type Server struct {
	cfg    *config.Config
	opts   qrbatch.Options
	logger *zap.Logger
}

// New returns a Server for cfg. A nil logger discards output.
func New(cfg *config.Config, logger *zap.Logger) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	opts := cfg.Options()
	opts.Logger = logger
	return &Server{cfg: cfg, opts: opts, logger: logger}
}

// Handler returns the routed handler with middleware applied.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.Handle("/convert", RequireMethod(http.MethodPost)(http.HandlerFunc(s.handleConvert)))
	mux.Handle("/healthz", RequireMethod(http.MethodGet)(http.HandlerFunc(s.handleHealth)))
	return Chain(mux, RequestID(), AccessLog(s.logger))
}

// ListenAndServe serves until ctx is done, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.cfg.Server.Addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("Listening", zap.String("addr", srv.Addr))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return err
		}
		if err := <-errCh; !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	}
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleConvert(w http.ResponseWriter, r *http.Request) {
	if r.ContentLength > s.cfg.Server.MaxUploadBytes {
		writeJSON(w, http.StatusRequestEntityTooLarge, qrbatch.Response{Error: "File too large"})
		return
	}
	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.Server.MaxUploadBytes)
	if err := r.ParseMultipartForm(s.cfg.Server.MaxUploadBytes); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeJSON(w, http.StatusRequestEntityTooLarge, qrbatch.Response{Error: "File too large"})
			return
		}
		if !errors.Is(err, http.ErrNotMultipart) {
			writeJSON(w, http.StatusBadRequest, qrbatch.Response{Error: err.Error()})
			return
		}
	}
	if r.MultipartForm != nil {
		defer r.MultipartForm.RemoveAll()
	}

	req := qrbatch.Request{Theme: r.FormValue("theme")}
	if file, _, err := r.FormFile("file"); err == nil {
		defer file.Close()
		req.File = file
	}

	resp, err := qrbatch.Handle(r.Context(), req, s.opts)
	if err != nil {
		s.logger.Error("Conversion failed", zap.Error(err))
		writeJSON(w, statusFor(err), resp)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func statusFor(err error) int {
	var decodeErr *qrbatch.DecodeError
	switch {
	case errors.Is(err, qrbatch.ErrNoFile):
		return http.StatusBadRequest
	case errors.As(err, &decodeErr):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
