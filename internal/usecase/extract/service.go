// Package extract turns conversation history into a structured booking
// intent via a single completion call, with a guardrail that never lets an
// under-specified search through.
package extract

import (
	"context"
	"encoding/json"
	"fmt"

	"go.uber.org/zap"

	"github.com/chippyinn/concierge/internal/domain"
	"github.com/chippyinn/concierge/internal/logger"
)

// Canned replies for locally recovered extraction failures.
const (
	RephrasePrompt      = "Sorry, could you rephrase that?"
	MissingFieldsPrompt = "I need city, dates, and guest count first."
	defaultQuestion     = "Could you tell me more about your booking?"
)

// Service is the intent extractor.
type Service struct {
	llm     Completer
	catalog domain.Catalog
}

// New creates an extraction service grounded in the given inventory catalog.
func New(llm Completer, catalog domain.Catalog) *Service {
	return &Service{llm: llm, catalog: catalog}
}

// reply is the wire shape the model is instructed to produce.
type reply struct {
	Action         string   `json:"action"`
	Question       string   `json:"question"`
	Location       string   `json:"location"`
	CheckIn        string   `json:"check_in"`
	CheckOut       string   `json:"check_out"`
	Guests         int      `json:"guests"`
	BudgetPerNight *float64 `json:"budget_per_night"`
	Preferences    []string `json:"preferences"`
}

// Extract sends the history to the model and validates the structured reply.
// Parse failures and guardrail violations degrade to an ask intent; only a
// transport failure is returned as an error.
func (s *Service) Extract(ctx context.Context, history []domain.Turn) (domain.Intent, error) {
	raw, err := s.llm.Complete(ctx, s.systemPrompt(), history)
	if err != nil {
		return domain.Intent{}, fmt.Errorf("complete: %w", err)
	}

	log := logger.FromContext(ctx)

	var r reply
	if err := json.Unmarshal([]byte(extractJSONBlock(raw)), &r); err != nil {
		log.Warn("model reply not parseable", zap.Error(err), zap.String("raw", raw))
		return domain.NewAsk(RephrasePrompt), nil
	}

	switch r.Action {
	case string(domain.ActionAsk):
		if r.Question == "" {
			return domain.NewAsk(defaultQuestion), nil
		}
		return domain.NewAsk(r.Question), nil
	case string(domain.ActionSearch):
		slots := domain.Slots{
			Location:    r.Location,
			CheckIn:     r.CheckIn,
			CheckOut:    r.CheckOut,
			Guests:      r.Guests,
			Preferences: r.Preferences,
		}
		if r.BudgetPerNight != nil {
			slots.BudgetPerNight = *r.BudgetPerNight
		}
		// The model's terminal action is never trusted blindly.
		if err := slots.Validate(); err != nil {
			log.Info("search intent rejected by guardrail", zap.Error(err))
			return domain.NewAsk(MissingFieldsPrompt), nil
		}
		return domain.NewSearch(slots), nil
	default:
		log.Warn("model reply has unknown action", zap.String("action", r.Action))
		return domain.NewAsk(RephrasePrompt), nil
	}
}

func (s *Service) systemPrompt() string {
	return fmt.Sprintf(`You are a hotel booking assistant. Reply with exactly one JSON object and nothing else.

To book, you must collect: location, check_in (YYYY-MM-DD), check_out (YYYY-MM-DD), guests.
Optional: budget_per_night (number), preferences (array of amenity strings).

If any required field is still unknown, reply:
{"action":"ask","question":"<one short question for the missing field>"}
Once ALL required fields are known, reply:
{"action":"search","location":"...","check_in":"...","check_out":"...","guests":N,"budget_per_night":N,"preferences":[...]}

Current inventory:
- cities: %s
- price per night: %.0f to %.0f
- maximum guests per room: %d
- amenities: %s

Only propose cities and amenities from the inventory. check_out must be after check_in and guests must be at least 1.`,
		joinList(s.catalog.Cities),
		s.catalog.MinPrice, s.catalog.MaxPrice,
		s.catalog.MaxGuests,
		joinList(s.catalog.Amenities),
	)
}

func joinList(items []string) string {
	if len(items) == 0 {
		return "none"
	}
	out := items[0]
	for _, it := range items[1:] {
		out += ", " + it
	}
	return out
}
