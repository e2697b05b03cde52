package domain

import (
	"fmt"
	"time"
)

// Action is the terminal action extracted from a conversation.
type Action string

// Extraction actions.
const (
	ActionAsk    Action = "ask"
	ActionSearch Action = "search"
)

// DateLayout is the calendar date format used for check-in/check-out slots.
const DateLayout = "2006-01-02"

// Slots is the accumulated booking intent for one conversation.
// Location, CheckIn, CheckOut, and Guests are mandatory for a search.
type Slots struct {
	Location       string
	CheckIn        string
	CheckOut       string
	Guests         int
	BudgetPerNight float64
	Preferences    []string
}

// MissingMandatory returns the names of unfilled mandatory slots.
func (s Slots) MissingMandatory() []string {
	var missing []string
	if s.Location == "" {
		missing = append(missing, "location")
	}
	if s.CheckIn == "" {
		missing = append(missing, "check_in")
	}
	if s.CheckOut == "" {
		missing = append(missing, "check_out")
	}
	if s.Guests <= 0 {
		missing = append(missing, "guests")
	}
	return missing
}

// Validate checks that the mandatory slots are present and internally
// consistent: dates parse, check-out is strictly after check-in, guests >= 1.
func (s Slots) Validate() error {
	if missing := s.MissingMandatory(); len(missing) > 0 {
		return fmt.Errorf("%w: missing %v", ErrSlotsIncomplete, missing)
	}
	in, err := time.Parse(DateLayout, s.CheckIn)
	if err != nil {
		return fmt.Errorf("%w: check_in %q is not a valid date", ErrSlotsIncomplete, s.CheckIn)
	}
	out, err := time.Parse(DateLayout, s.CheckOut)
	if err != nil {
		return fmt.Errorf("%w: check_out %q is not a valid date", ErrSlotsIncomplete, s.CheckOut)
	}
	if !out.After(in) {
		return fmt.Errorf("%w: check_out must be after check_in", ErrSlotsIncomplete)
	}
	if s.BudgetPerNight < 0 {
		return fmt.Errorf("%w: budget_per_night must not be negative", ErrSlotsIncomplete)
	}
	return nil
}

// Intent is the tagged result of one extraction: either a question to pose
// back to the user or a fully validated slot set ready for search.
type Intent struct {
	Action   Action
	Question string
	Slots    Slots
}

// NewAsk creates an ask intent.
func NewAsk(question string) Intent {
	return Intent{Action: ActionAsk, Question: question}
}

// NewSearch creates a search intent from validated slots.
func NewSearch(slots Slots) Intent {
	return Intent{Action: ActionSearch, Slots: slots}
}
