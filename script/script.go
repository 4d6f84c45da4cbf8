package script

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"
)

var (
	// ErrScriptNotFound is returned when a script is not found.
	ErrScriptNotFound = errors.New("script not found")

	// ErrInvalidName is returned when a script name is empty.
	ErrInvalidName = errors.New("script name is required")

	// ErrInvalidCategory is returned when a script category is empty.
	ErrInvalidCategory = errors.New("script category is required")

	// ErrInvalidPriority is returned when priority is not high, medium or low.
	ErrInvalidPriority = errors.New("invalid priority")

	// ErrInvalidStatus is returned when status is not pending, applied or error.
	ErrInvalidStatus = errors.New("invalid status")
)

// DefaultResponsible is stored when a script is saved without a responsible party.
const DefaultResponsible = "DBA Team"

// Status represents where a script is in its rollout.
type Status string

const (
	StatusPending Status = "pending"
	StatusApplied Status = "applied"
	StatusError   Status = "error"
)

// IsValid checks if the status is valid.
func (s Status) IsValid() bool {
	switch s {
	case StatusPending, StatusApplied, StatusError:
		return true
	default:
		return false
	}
}

// Priority represents how urgently a script has to be applied.
type Priority string

const (
	PriorityHigh   Priority = "high"
	PriorityMedium Priority = "medium"
	PriorityLow    Priority = "low"
)

// IsValid checks if the priority is valid.
func (p Priority) IsValid() bool {
	switch p {
	case PriorityHigh, PriorityMedium, PriorityLow:
		return true
	default:
		return false
	}
}

// Well known categories. Category is an open set; other values are accepted.
const (
	CategoryDatabase    = "BD"
	CategoryAlters      = "Alters"
	CategoryUpdates     = "Updates"
	CategoryViews       = "Vistas"
	CategoryPermissions = "Permisos"
	CategoryScriptsID   = "Scripts ID"
)

// KnownCategories lists the categories offered by the dashboard form.
var KnownCategories = []string{
	CategoryDatabase,
	CategoryAlters,
	CategoryUpdates,
	CategoryViews,
	CategoryPermissions,
	CategoryScriptsID,
}

// Dependencies is a list of script names stored as a JSON text column.
type Dependencies []string

// Value implements driver.Valuer.
func (d Dependencies) Value() (driver.Value, error) {
	if len(d) == 0 {
		return nil, nil
	}
	b, err := json.Marshal([]string(d))
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

// MarshalJSON encodes an empty list as [] rather than null.
func (d Dependencies) MarshalJSON() ([]byte, error) {
	if d == nil {
		return []byte("[]"), nil
	}
	return json.Marshal([]string(d))
}

// Scan implements sql.Scanner.
func (d *Dependencies) Scan(value interface{}) error {
	if value == nil {
		*d = nil
		return nil
	}
	var raw []byte
	switch v := value.(type) {
	case []byte:
		raw = v
	case string:
		raw = []byte(v)
	default:
		return fmt.Errorf("failed to scan Dependencies: unsupported type %T", value)
	}
	if len(raw) == 0 {
		*d = nil
		return nil
	}
	var names []string
	if err := json.Unmarshal(raw, &names); err != nil {
		return fmt.Errorf("failed to scan Dependencies: %w", err)
	}
	*d = names
	return nil
}

// Script is a database script tracked through its rollout.
type Script struct {
	ID            uint         `json:"id" gorm:"primaryKey"`
	Name          string       `json:"name" gorm:"type:varchar(255);not null;index:idx_scripts_name"`
	Path          string       `json:"path" gorm:"type:varchar(500)"`
	Category      string       `json:"category" gorm:"type:varchar(50);not null;index:idx_scripts_category"`
	Priority      Priority     `json:"priority" gorm:"type:varchar(20);not null"`
	Status        Status       `json:"status" gorm:"type:varchar(20);not null;default:'pending';index:idx_scripts_status"`
	Responsible   string       `json:"responsible" gorm:"type:varchar(100)"`
	Notes         string       `json:"notes" gorm:"type:text"`
	FileSize      *int64       `json:"file_size"`
	Checksum      string       `json:"checksum" gorm:"type:varchar(32)"`
	ExecutionTime *int         `json:"execution_time"`
	Dependencies  Dependencies `json:"dependencies" gorm:"type:text"`
	DateApplied   *time.Time   `json:"date_applied"`
	DateCreated   time.Time    `json:"date_created" gorm:"autoCreateTime"`
	DateUpdated   time.Time    `json:"date_updated" gorm:"autoUpdateTime"`
}

// TableName pins the table name used by the migrations.
func (Script) TableName() string {
	return "scripts"
}

// ApplyDefaults fills the fields the backend defaults when a client omits them.
func (s *Script) ApplyDefaults() {
	if s.Status == "" {
		s.Status = StatusPending
	}
	if strings.TrimSpace(s.Responsible) == "" {
		s.Responsible = DefaultResponsible
	}
}

// Validate checks if the script has valid required fields.
func (s *Script) Validate() error {
	if strings.TrimSpace(s.Name) == "" {
		return ErrInvalidName
	}
	if strings.TrimSpace(s.Category) == "" {
		return ErrInvalidCategory
	}
	if !s.Priority.IsValid() {
		return ErrInvalidPriority
	}
	if !s.Status.IsValid() {
		return ErrInvalidStatus
	}
	return nil
}

// IsPending reports whether the script still has to be applied.
func (s *Script) IsPending() bool {
	return s.Status == StatusPending
}

// Input carries the user-editable fields of a script, as submitted by the
// dashboard form and the CLI.
type Input struct {
	Name        string   `json:"name"`
	Path        string   `json:"path"`
	Category    string   `json:"category"`
	Priority    Priority `json:"priority"`
	Status      Status   `json:"status"`
	Responsible string   `json:"responsible"`
	Notes       string   `json:"notes"`
}

// ToScript builds a new, unsaved script from the input.
func (in Input) ToScript() *Script {
	return &Script{
		Name:        strings.TrimSpace(in.Name),
		Path:        in.Path,
		Category:    in.Category,
		Priority:    in.Priority,
		Status:      in.Status,
		Responsible: in.Responsible,
		Notes:       in.Notes,
	}
}

// InputFrom returns the editable fields of s.
func InputFrom(s Script) Input {
	return Input{
		Name:        s.Name,
		Path:        s.Path,
		Category:    s.Category,
		Priority:    s.Priority,
		Status:      s.Status,
		Responsible: s.Responsible,
		Notes:       s.Notes,
	}
}
