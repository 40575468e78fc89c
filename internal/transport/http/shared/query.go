package shared

import (
	"net/http"
	"strconv"
)

// StringParam returns the query parameter value, or nil when the parameter
// is absent. Presence matters: an empty value clears a field while an absent
// one leaves it untouched.
func StringParam(r *http.Request, name string) *string {
	if !r.URL.Query().Has(name) {
		return nil
	}
	value := r.URL.Query().Get(name)
	return &value
}

// IntParam returns the query parameter as an int, or nil when absent or not
// a number.
func IntParam(r *http.Request, name string) *int {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return nil
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return nil
	}
	return &value
}

// Limit parses a positive limit parameter, falling back to the default and
// clamping to the maximum.
func Limit(r *http.Request, name string, defaultLimit, maxLimit int) int {
	limit := defaultLimit
	if v := IntParam(r, name); v != nil && *v > 0 {
		limit = *v
	}
	if maxLimit > 0 && limit > maxLimit {
		limit = maxLimit
	}
	return limit
}
