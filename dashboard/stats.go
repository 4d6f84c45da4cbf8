package dashboard

import "github.com/hairizuanbinnoorazman/script-tracker/script"

// ComputeStats counts records per status.
func ComputeStats(records []script.Script) script.Stats {
	stats := script.Stats{Total: len(records)}
	for _, s := range records {
		switch s.Status {
		case script.StatusPending:
			stats.Pending++
		case script.StatusApplied:
			stats.Applied++
		case script.StatusError:
			stats.Error++
		}
	}
	return stats
}
