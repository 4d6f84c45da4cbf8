package dashboard

import (
	"fmt"
	"time"

	"github.com/hairizuanbinnoorazman/script-tracker/script"
)

var priorityText = map[script.Priority]string{
	script.PriorityHigh:   "Alta",
	script.PriorityMedium: "Media",
	script.PriorityLow:    "Baja",
}

var statusText = map[script.Status]string{
	script.StatusPending: "Pendiente",
	script.StatusApplied: "Aplicado",
	script.StatusError:   "Error",
}

var categoryIcons = map[string]string{
	script.CategoryDatabase:    "fas fa-database",
	script.CategoryAlters:      "fas fa-wrench",
	script.CategoryUpdates:     "fas fa-sync-alt",
	script.CategoryViews:       "fas fa-eye",
	script.CategoryPermissions: "fas fa-key",
	script.CategoryScriptsID:   "fas fa-code",
}

var statusIcons = map[script.Status]string{
	script.StatusPending: "fas fa-clock",
	script.StatusApplied: "fas fa-check-circle",
	script.StatusError:   "fas fa-exclamation-triangle",
}

// Abbreviated month names as rendered by the es-ES locale.
var monthsES = [...]string{"ene", "feb", "mar", "abr", "may", "jun", "jul", "ago", "sept", "oct", "nov", "dic"}

const (
	defaultCategoryIcon = "fas fa-file-code"
	defaultStatusIcon   = "fas fa-question-circle"
)

// PriorityText returns the display label of a priority, or the raw code when unknown.
func PriorityText(p script.Priority) string {
	if text, ok := priorityText[p]; ok {
		return text
	}
	return string(p)
}

// StatusText returns the display label of a status, or the raw code when unknown.
func StatusText(s script.Status) string {
	if text, ok := statusText[s]; ok {
		return text
	}
	return string(s)
}

// CategoryIcon returns the icon class of a category.
func CategoryIcon(category string) string {
	if icon, ok := categoryIcons[category]; ok {
		return icon
	}
	return defaultCategoryIcon
}

// StatusIcon returns the icon class of a status.
func StatusIcon(s script.Status) string {
	if icon, ok := statusIcons[s]; ok {
		return icon
	}
	return defaultStatusIcon
}

// FormatDate renders t as a short es-ES date ("5 mar 2024") in the local
// time zone. Missing dates render as "-".
func FormatDate(t *time.Time) string {
	if t == nil || t.IsZero() {
		return "-"
	}
	local := t.Local()
	return fmt.Sprintf("%d %s %d", local.Day(), monthsES[local.Month()-1], local.Year())
}
