package dashboard

import (
	"testing"

	"github.com/hairizuanbinnoorazman/script-tracker/script"
	"github.com/stretchr/testify/assert"
)

func filterFixtures() []script.Script {
	return []script.Script{
		{ID: 1, Name: "Alpha index", Category: "BD", Priority: script.PriorityHigh, Status: script.StatusPending},
		{ID: 2, Name: "Beta view", Category: "Vistas", Priority: script.PriorityLow, Status: script.StatusApplied, Notes: "depends on alpha"},
		{ID: 3, Name: "Gamma grant", Category: "Permisos", Priority: script.PriorityHigh, Status: script.StatusError},
		{ID: 4, Name: "Delta alter", Category: "Alters", Priority: script.PriorityMedium, Status: script.StatusPending},
	}
}

func ids(records []script.Script) []uint {
	out := []uint{}
	for _, s := range records {
		out = append(out, s.ID)
	}
	return out
}

func TestFilter(t *testing.T) {
	records := filterFixtures()

	tests := []struct {
		name     string
		criteria Criteria
		want     []uint
	}{
		{name: "empty criteria keeps everything in order", criteria: Criteria{}, want: []uint{1, 2, 3, 4}},
		{name: "search is case-insensitive", criteria: Criteria{Search: "ALP"}, want: []uint{1, 2}},
		{name: "search matches notes", criteria: Criteria{Search: "depends"}, want: []uint{2}},
		{name: "status", criteria: Criteria{Status: "pending"}, want: []uint{1, 4}},
		{name: "category", criteria: Criteria{Category: "Permisos"}, want: []uint{3}},
		{name: "priority", criteria: Criteria{Priority: "high"}, want: []uint{1, 3}},
		{name: "predicates are anded", criteria: Criteria{Priority: "high", Status: "error"}, want: []uint{3}},
		{name: "one failing predicate excludes", criteria: Criteria{Search: "alpha", Category: "Alters"}, want: []uint{}},
		{name: "category match is exact", criteria: Criteria{Category: "bd"}, want: []uint{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Filter(records, tt.criteria)
			assert.Equal(t, tt.want, ids(got))
			for _, s := range got {
				assert.True(t, tt.criteria.Matches(s))
			}
		})
	}
}

func TestFilter_IsSubsetAndDoesNotMutate(t *testing.T) {
	records := filterFixtures()
	before := append([]script.Script(nil), records...)

	criteria := []Criteria{
		{}, {Search: "a"}, {Status: "applied"}, {Category: "BD", Priority: "high"}, {Search: "zzz"},
	}
	for _, c := range criteria {
		got := Filter(records, c)
		for _, s := range got {
			assert.Contains(t, records, s)
		}
		for _, s := range records {
			if !c.Matches(s) {
				assert.NotContains(t, got, s)
			}
		}
	}
	assert.Equal(t, before, records)
}

func TestFilter_SingleRecordSearch(t *testing.T) {
	got := Filter([]script.Script{{Name: "Alpha"}}, Criteria{Search: "alp"})
	assert.Len(t, got, 1)
}

func TestCriteria_IsEmpty(t *testing.T) {
	assert.True(t, Criteria{}.IsEmpty())
	assert.False(t, Criteria{Status: "pending"}.IsEmpty())
}

func TestComputeStats(t *testing.T) {
	records := []script.Script{
		{Status: script.StatusPending},
		{Status: script.StatusPending},
		{Status: script.StatusApplied},
		{Status: script.StatusError},
	}
	assert.Equal(t, script.Stats{Total: 4, Pending: 2, Applied: 1, Error: 1}, ComputeStats(records))
	assert.Equal(t, script.Stats{}, ComputeStats(nil))
}
