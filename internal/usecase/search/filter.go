package search

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/chippyinn/concierge/internal/domain"
)

// BuildFilter compiles validated slots into an engine filter expression.
// Pure and deterministic: the same slots always produce the same bytes.
// Clause order is fixed: location, guests, then price when a budget is set.
func BuildFilter(s domain.Slots) string {
	parts := []string{
		fmt.Sprintf("location = %q", s.Location),
		fmt.Sprintf("guests >= %d", s.Guests),
	}
	if s.BudgetPerNight > 0 {
		parts = append(parts, "price <= "+strconv.FormatFloat(s.BudgetPerNight, 'f', -1, 64))
	}
	return strings.Join(parts, " AND ")
}
