// Package chat orchestrates one conversational turn: log the message, extract
// intent, either pose the extractor's question or run the search, and log the
// reply. Every handled failure becomes a reply string so the conversation
// degrades gracefully instead of surfacing transport errors.
package chat

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/chippyinn/concierge/internal/domain"
	"github.com/chippyinn/concierge/internal/logger"
	"github.com/chippyinn/concierge/internal/metrics"
)

// Canned replies.
const (
	EmptyPrompt      = "Please say something."
	GreetingReply    = "Hi! How can I help with bookings?"
	ThanksReply      = "You're welcome!"
	NoMatchReply     = "No rooms match. Try other criteria."
	AIErrorReply     = "Sorry, I'm having trouble understanding right now. Please try again."
	SearchErrorReply = "Sorry, the room search failed. Please try again in a moment."
)

// Service composes the extractor, searcher, and session log into the
// per-message dialogue loop.
type Service struct {
	sessions Sessions
	extract  Extractor
	search   Searcher
}

// New creates the dialogue orchestrator.
func New(sessions Sessions, extract Extractor, search Searcher) *Service {
	return &Service{sessions: sessions, extract: extract, search: search}
}

// Handle processes one inbound message and returns the reply. Empty input
// short-circuits without touching session state; every other path appends
// exactly one user turn and one assistant turn.
func (s *Service) Handle(ctx context.Context, sessionID, text string) string {
	text = strings.TrimSpace(text)
	if text == "" {
		return EmptyPrompt
	}

	s.sessions.Append(sessionID, domain.Turn{Role: domain.RoleUser, Text: text})

	reply, outcome := s.reply(ctx, sessionID, text)
	s.sessions.Append(sessionID, domain.Turn{Role: domain.RoleAssistant, Text: reply})

	metrics.ChatTurnsTotal.WithLabelValues(outcome).Inc()
	return reply
}

func (s *Service) reply(ctx context.Context, sessionID, text string) (reply, outcome string) {
	if r, ok := smalltalk(text); ok {
		return r, "smalltalk"
	}

	log := logger.FromContext(ctx)

	intent, err := s.extract.Extract(ctx, s.sessions.History(sessionID))
	if err != nil {
		log.Error("intent extraction failed", zap.Error(err))
		return AIErrorReply, "ai_error"
	}

	if intent.Action == domain.ActionAsk {
		return intent.Question, "ask"
	}

	hits, err := s.search.Search(ctx, intent.Slots)
	if err != nil {
		log.Error("room search failed", zap.Error(err))
		return SearchErrorReply, "search_error"
	}
	if len(hits) == 0 {
		return NoMatchReply, "search_empty"
	}
	return formatHits(hits), "search_hit"
}

// smalltalk answers greetings and thanks without a model round-trip.
func smalltalk(text string) (string, bool) {
	lo := strings.ToLower(text)
	if strings.Contains(lo, "thank") {
		return ThanksReply, true
	}
	switch lo {
	case "hi", "hello", "hey":
		return GreetingReply, true
	}
	return "", false
}

// formatHits renders the hit list, one room per line.
func formatHits(hits []domain.Room) string {
	lines := make([]string, len(hits))
	for i, h := range hits {
		lines[i] = fmt.Sprintf("• %s — ₹%.0f | %s | sleeps %d", h.Name, h.Price, h.Location, h.Guests)
	}
	return strings.Join(lines, "\n")
}
