// Package chi exposes the booking chat over HTTP.
package chi

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	chatuc "github.com/chippyinn/concierge/internal/usecase/chat"
	healthuc "github.com/chippyinn/concierge/internal/usecase/health"
)

// Server handles the chat API.
type Server struct {
	chat   *chatuc.Service
	health *healthuc.Service
	logger *zap.Logger
}

// NewServer creates an HTTP API server.
func NewServer(chat *chatuc.Service, health *healthuc.Service, logger *zap.Logger) *Server {
	return &Server{chat: chat, health: health, logger: logger}
}

// Routes mounts the API on the router.
func (s *Server) Routes(r chi.Router) {
	r.Post("/booking-chat", s.bookingChat)
	r.Get("/healthz", s.healthz)
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())
}

// chatRequest is the POST /booking-chat body.
type chatRequest struct {
	Text      string `json:"text"`
	SessionID string `json:"sessionId"`
}

// chatResponse is the POST /booking-chat reply.
type chatResponse struct {
	Reply string `json:"reply"`
}

func (s *Server) bookingChat(w http.ResponseWriter, r *http.Request) {
	var req chatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", "Invalid request body: "+err.Error())
		return
	}
	if req.SessionID == "" {
		req.SessionID = "anon"
	}

	reply := s.chat.Handle(r.Context(), req.SessionID, req.Text)
	writeJSON(w, http.StatusOK, chatResponse{Reply: reply})
}

func (s *Server) healthz(w http.ResponseWriter, r *http.Request) {
	report := s.health.Check(r.Context())
	status := http.StatusOK
	if report.Status != healthuc.Healthy {
		status = http.StatusServiceUnavailable
	}
	writeJSON(w, status, map[string]any{
		"status": report.Status,
		"checks": report.Checks,
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, map[string]string{
		"code":    code,
		"message": message,
	})
}
