package script

import (
	"context"
	"time"
)

// Store defines the interface for script persistence operations.
type Store interface {
	// Create creates a new script in the store.
	Create(ctx context.Context, script *Script) error

	// GetByID retrieves a script by its ID.
	GetByID(ctx context.Context, id uint) (*Script, error)

	// Update updates a script with the given setters.
	Update(ctx context.Context, id uint, setters ...UpdateSetter) error

	// Delete permanently removes a script.
	Delete(ctx context.Context, id uint) error

	// MarkApplied moves a script to applied and stamps date_applied.
	MarkApplied(ctx context.Context, id uint, at time.Time) (*Script, error)

	// List retrieves scripts matching the filter, newest first.
	List(ctx context.Context, filter ListFilter) ([]*Script, error)

	// Stats counts scripts per status.
	Stats(ctx context.Context) (*Stats, error)

	// Categories lists the distinct non-empty categories in use.
	Categories(ctx context.Context) ([]string, error)

	// Import upserts scripts by name. Invalid items are reported, not fatal.
	Import(ctx context.Context, scripts []Script) (*ImportResult, error)
}

// UpdateSetter is a function that updates a script field.
type UpdateSetter func(*Script) error

// ListFilter narrows List. Empty fields do not constrain the result.
type ListFilter struct {
	Search   string
	Status   string
	Category string
	Priority string
}

// Stats holds per-status script counts.
type Stats struct {
	Total   int `json:"total"`
	Pending int `json:"pending"`
	Applied int `json:"applied"`
	Error   int `json:"error"`
}

// ImportResult summarises an Import call.
type ImportResult struct {
	Imported int      `json:"imported_count"`
	Errors   []string `json:"errors"`
}
