package http

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/fwojciec/askdocs"
)

// DefaultRequestTimeout bounds the query pipeline per request.
const DefaultRequestTimeout = 60 * time.Second

// Server exposes the chat service over HTTP.
type Server struct {
	chat    askdocs.ChatService
	logger  *slog.Logger
	timeout time.Duration

	server *http.Server
}

// ServerOption configures a Server.
type ServerOption func(*Server)

// WithLogger sets the logger for request handling.
func WithLogger(logger *slog.Logger) ServerOption {
	return func(s *Server) {
		s.logger = logger
	}
}

// WithRequestTimeout bounds how long a single chat request may run.
// Defaults to DefaultRequestTimeout.
func WithRequestTimeout(d time.Duration) ServerOption {
	return func(s *Server) {
		s.timeout = d
	}
}

// NewServer creates a Server backed by the given chat service.
func NewServer(chat askdocs.ChatService, opts ...ServerOption) *Server {
	s := &Server{
		chat:    chat,
		logger:  slog.Default(),
		timeout: DefaultRequestTimeout,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Handler returns the HTTP handler serving the chat API.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /chat_endpoint", s.handleChat)
	mux.HandleFunc("GET /health", s.handleHealth)
	return mux
}

// Open starts listening on addr. It blocks until the server stops.
func (s *Server) Open(addr string) error {
	s.server = &http.Server{
		Addr:    addr,
		Handler: s.Handler(),
	}
	s.logger.Info("http server listening", "addr", addr)
	if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Close shuts the server down gracefully.
func (s *Server) Close(ctx context.Context) error {
	if s.server == nil {
		return nil
	}
	return s.server.Shutdown(ctx)
}

func (s *Server) handleChat(w http.ResponseWriter, r *http.Request) {
	var req askdocs.ChatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, askdocs.Errorf(askdocs.EINVALID, "invalid request body"))
		return
	}
	if err := req.Validate(); err != nil {
		s.writeError(w, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), s.timeout)
	defer cancel()

	result, err := s.chat.Chat(ctx, &req)
	if err != nil {
		s.logger.Error("chat request failed", "error", err)
		s.writeError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(result); err != nil {
		s.logger.Error("encoding response failed", "error", err)
	}
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}

// errorDetail is the uniform error envelope: failures surface as a
// status code plus {"detail": ...}, never as a partial response.
type errorDetail struct {
	Detail string `json:"detail"`
}

func (s *Server) writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	if askdocs.ErrorCode(err) == askdocs.EINVALID {
		status = http.StatusBadRequest
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(errorDetail{Detail: askdocs.ErrorMessage(err)})
}
