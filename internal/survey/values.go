package survey

import "strings"

// Or returns *p, or def when the field is unanswered.
func Or[T any](p *T, def T) T {
	if p == nil {
		return def
	}
	return *p
}

// Ptr returns a pointer to v.
func Ptr[T any](v T) *T {
	return &v
}

// Lower returns the answered text lower-cased and trimmed, or "".
func Lower(p *string) string {
	if p == nil {
		return ""
	}
	return strings.ToLower(strings.TrimSpace(*p))
}

// StateCode returns the two-letter state code, or def when the answer is
// missing or not two letters long.
func (r *Responses) StateCode(def string) string {
	s := strings.ToUpper(strings.TrimSpace(Or(r.Introduction.State, "")))
	if len(s) != 2 {
		return def
	}
	return s
}

// HouseholdSize returns the answered household size, or def when the answer
// is missing or not positive.
func (r *Responses) HouseholdSize(def int) int {
	n := Or(r.Introduction.HouseholdSize, 0)
	if n <= 0 {
		return def
	}
	return n
}
