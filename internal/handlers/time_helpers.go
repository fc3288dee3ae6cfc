package handlers

import (
	"time"

	"github.com/northlight-studio/studio-scheduler/internal/models"
	"github.com/northlight-studio/studio-scheduler/internal/timezone"
)

// All request dates are interpreted in the studio's configured timezone.

func locationFromStudio(studio *models.Studio) *time.Location {
	if studio != nil {
		return timezone.Location(studio.Timezone)
	}
	return timezone.Location("")
}

func parseDateInStudio(studio *models.Studio, dateStr string) (time.Time, error) {
	return time.ParseInLocation(
		"2006-01-02",
		dateStr,
		locationFromStudio(studio),
	)
}
