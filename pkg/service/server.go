package service

import (
	"fmt"
	"net/http"

	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// Server exposes the two pipelines over HTTP:
//
//	POST /interaction: interaction claim in, attestation issued, subject
//	  notified with a plaintext-UID magic link.
//	POST /mail: attestation UID in, sealed disclosure mailed to the
//	  attester with an encrypted magic link.
//	GET /healthz: readiness of the collaborators.
//
// The two POST endpoints are independent contracts with separate front-end
// destinations; they share a server only for deployment convenience.
type Server struct {
	service    *FeedbackService
	logger     *zap.Logger
	limiter    *rate.Limiter
	httpServer *http.Server
}

// NewServer wires the handlers onto a mux. ratePerSecond/burst bound the
// total inbound request rate; a saturated limiter returns 429.
func NewServer(logger *zap.Logger, service *FeedbackService, port int, ratePerSecond float64, burst int) *Server {
	s := &Server{
		service: service,
		logger:  logger,
		limiter: rate.NewLimiter(rate.Limit(ratePerSecond), burst),
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/interaction", s.withRateLimit(s.handleInteraction))
	mux.HandleFunc("/mail", s.withRateLimit(s.handleDisclosure))
	mux.HandleFunc("/healthz", s.handleHealth)

	s.httpServer = &http.Server{
		Addr:    fmt.Sprintf(":%d", port),
		Handler: mux,
	}

	return s
}

func (s *Server) withRateLimit(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !s.limiter.Allow() {
			http.Error(w, "Too many requests", http.StatusTooManyRequests)
			return
		}
		next(w, r)
	}
}

// Start starts the HTTP server
func (s *Server) Start() error {
	go func() {
		s.logger.Sugar().Infow("Starting HTTP server", "addr", s.httpServer.Addr)
		if err := s.httpServer.ListenAndServe(); err != http.ErrServerClosed {
			s.logger.Sugar().Errorw("HTTP server error", "error", err)
		}
	}()
	return nil
}

// Stop stops the HTTP server
func (s *Server) Stop() error {
	return s.httpServer.Close()
}

// GetHandler returns the HTTP handler (for testing)
func (s *Server) GetHandler() http.Handler {
	return s.httpServer.Handler
}
