package dashboard

import (
	"strings"

	"github.com/hairizuanbinnoorazman/script-tracker/script"
)

// Criteria is a conjunctive filter. Empty fields place no constraint.
type Criteria struct {
	Search   string
	Status   string
	Category string
	Priority string
}

// IsEmpty reports whether no field constrains the result.
func (c Criteria) IsEmpty() bool {
	return c == Criteria{}
}

// Matches reports whether s satisfies every non-empty field of c.
func (c Criteria) Matches(s script.Script) bool {
	if c.Search != "" {
		needle := strings.ToLower(c.Search)
		inName := strings.Contains(strings.ToLower(s.Name), needle)
		inNotes := s.Notes != "" && strings.Contains(strings.ToLower(s.Notes), needle)
		if !inName && !inNotes {
			return false
		}
	}
	if c.Status != "" && string(s.Status) != c.Status {
		return false
	}
	if c.Category != "" && s.Category != c.Category {
		return false
	}
	if c.Priority != "" && string(s.Priority) != c.Priority {
		return false
	}
	return true
}

// Filter returns the records matching c in their original order. The input is
// never modified.
func Filter(records []script.Script, c Criteria) []script.Script {
	filtered := make([]script.Script, 0, len(records))
	for _, s := range records {
		if c.Matches(s) {
			filtered = append(filtered, s)
		}
	}
	return filtered
}
