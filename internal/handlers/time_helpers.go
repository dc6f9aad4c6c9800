package handlers

import (
	"time"

	"github.com/AgendaVivaBR/salon-scheduler/internal/models"
	"github.com/AgendaVivaBR/salon-scheduler/internal/timezone"
)

// resolve o timezone oficial do estabelecimento
func locationOf(est *models.Establishment) *time.Location {
	if est != nil {
		return timezone.Location(est.Timezone)
	}
	return timezone.Location("")
}

func parseDateIn(est *models.Establishment, dateStr string) (time.Time, error) {
	return time.ParseInLocation(
		"2006-01-02",
		dateStr,
		locationOf(est),
	)
}
