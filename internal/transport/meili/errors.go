package meili

import (
	"fmt"
	"regexp"

	"github.com/chippyinn/concierge/internal/domain"
)

// APIError is a structured engine error response.
type APIError struct {
	StatusCode int
	Code       string `json:"code"`
	Message    string `json:"message"`
	Type       string `json:"type"`
}

func (e *APIError) Error() string {
	return fmt.Sprintf("engine error %d (%s): %s", e.StatusCode, e.Code, e.Message)
}

// Engine error codes that signal an attribute missing from index settings.
const (
	codeInvalidFilter = "invalid_search_filter"
	codeInvalidSort   = "invalid_search_sort"
	codeIndexNotFound = "index_not_found"
)

// offendingAttrRegex matches the backtick-quoted attribute the engine names
// when a filter or sort clause uses an undeclared attribute, e.g.
// "Attribute `amenities` is not sortable.".
var offendingAttrRegex = regexp.MustCompile("`([^`]+)` is not (?:filterable|sortable)")

// mapAPIError converts a structured engine error into a domain error where one
// applies; unrecognized errors are returned as-is for the caller to wrap.
func mapAPIError(apiErr *APIError) error {
	switch apiErr.Code {
	case codeIndexNotFound:
		return fmt.Errorf("%w: %s", domain.ErrNotFound, apiErr.Message)
	case codeInvalidFilter:
		if attrs := offendingAttributes(apiErr.Message); len(attrs) > 0 {
			return domain.NewSchemaMismatch(domain.FacetFilter, attrs)
		}
	case codeInvalidSort:
		if attrs := offendingAttributes(apiErr.Message); len(attrs) > 0 {
			return domain.NewSchemaMismatch(domain.FacetSort, attrs)
		}
	}
	return apiErr
}

// offendingAttributes extracts the attribute names the engine flagged.
func offendingAttributes(message string) []string {
	var attrs []string
	for _, m := range offendingAttrRegex.FindAllStringSubmatch(message, -1) {
		attrs = append(attrs, m[1])
	}
	return attrs
}
