// Package pagination provides permissive page/limit query parsing.
// Malformed values fall back to defaults instead of rejecting the
// request, so stale or hand-edited URLs keep working.
package pagination

import "strconv"

// Defaults and bounds for page/limit parsing.
const (
	DefaultPage  = 1
	DefaultLimit = 20
	MaxLimit     = 100
)

// Params declares page/limit query parameters. They are strings so that
// non-numeric values reach ParsePage/ParseLimit instead of failing
// request validation.
type Params struct {
	Page  string `query:"page"  doc:"Page number, starting at 1"  example:"1"`
	Limit string `query:"limit" doc:"Maximum items per page"      example:"20"`
}

// PageOrDefault returns the parsed page number.
func (p Params) PageOrDefault() int {
	return ParsePage(p.Page)
}

// LimitOrDefault returns the parsed, clamped limit.
func (p Params) LimitOrDefault() int {
	return ParseLimit(p.Limit)
}

// ParsePage parses a page value, returning DefaultPage for anything that
// is not a positive integer.
func ParsePage(raw string) int {
	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 {
		return DefaultPage
	}
	return n
}

// ParseLimit parses a limit value, returning DefaultLimit for anything
// that is not a positive integer and clamping to MaxLimit.
func ParseLimit(raw string) int {
	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 {
		return DefaultLimit
	}
	if n > MaxLimit {
		return MaxLimit
	}
	return n
}

// ParseFloat parses a float query value, returning fallback for
// anything that does not parse.
func ParseFloat(raw string, fallback float64) float64 {
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return fallback
	}
	return f
}
