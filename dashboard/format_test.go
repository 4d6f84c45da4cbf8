package dashboard

import (
	"testing"
	"time"

	"github.com/hairizuanbinnoorazman/script-tracker/script"
	"github.com/stretchr/testify/assert"
)

func TestFormatHelpers(t *testing.T) {
	assert.Equal(t, "Alta", PriorityText(script.PriorityHigh))
	assert.Equal(t, "Media", PriorityText(script.PriorityMedium))
	assert.Equal(t, "Baja", PriorityText(script.PriorityLow))
	assert.Equal(t, "urgent", PriorityText("urgent"))

	assert.Equal(t, "Pendiente", StatusText(script.StatusPending))
	assert.Equal(t, "Aplicado", StatusText(script.StatusApplied))
	assert.Equal(t, "Error", StatusText(script.StatusError))
	assert.Equal(t, "archived", StatusText("archived"))

	assert.Equal(t, "fas fa-database", CategoryIcon("BD"))
	assert.Equal(t, "fas fa-code", CategoryIcon("Scripts ID"))
	assert.Equal(t, "fas fa-file-code", CategoryIcon("Misc"))

	assert.Equal(t, "fas fa-clock", StatusIcon(script.StatusPending))
	assert.Equal(t, "fas fa-question-circle", StatusIcon("archived"))
}

func TestFormatDate(t *testing.T) {
	assert.Equal(t, "-", FormatDate(nil))
	assert.Equal(t, "-", FormatDate(&time.Time{}))

	d := time.Date(2024, time.March, 5, 12, 0, 0, 0, time.Local)
	assert.Equal(t, "5 mar 2024", FormatDate(&d))

	d = time.Date(2023, time.September, 30, 12, 0, 0, 0, time.Local)
	assert.Equal(t, "30 sept 2023", FormatDate(&d))
}
