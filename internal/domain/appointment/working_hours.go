package appointment

import (
	"time"

	"github.com/AgendaVivaBR/salon-scheduler/internal/httperr"
	"github.com/AgendaVivaBR/salon-scheduler/internal/models"
)

const (
	DefaultOpensAt  = "08:00"
	DefaultClosesAt = "18:00"
)

// WeekdayIndex converte time.Weekday para a convenção da agenda:
// 0=segunda .. 6=domingo.
func WeekdayIndex(t time.Time) int {
	return (int(t.Weekday()) + 6) % 7
}

// ParseClock posiciona um "HH:MM" no dia/fuso de ref.
func ParseClock(hm string, ref time.Time) (time.Time, error) {
	t, err := time.Parse("15:04", hm)
	if err != nil {
		return time.Time{}, httperr.ErrBusiness("invalid_clock_time")
	}

	return time.Date(
		ref.Year(), ref.Month(), ref.Day(),
		t.Hour(), t.Minute(), 0, 0,
		ref.Location(),
	), nil
}

// ResolveWindow devolve a janela de atendimento do dia.
// Sem registro de expediente valem os padrões 08:00–18:00;
// com registro e fechado=true o dia não abre.
func ResolveWindow(wh *models.WorkingHours) (opensAt, closesAt string, open bool) {
	if wh == nil {
		return DefaultOpensAt, DefaultClosesAt, true
	}
	if wh.Closed {
		return "", "", false
	}

	opensAt = wh.OpensAt
	if opensAt == "" {
		opensAt = DefaultOpensAt
	}
	closesAt = wh.ClosesAt
	if closesAt == "" {
		closesAt = DefaultClosesAt
	}
	return opensAt, closesAt, true
}

// ValidateWindow aplica o invariante de WorkingHours: dia fechado não
// carrega horários; dia aberto exige abertura < fechamento.
func ValidateWindow(opensAt, closesAt string, closed bool) error {
	if closed {
		if opensAt != "" || closesAt != "" {
			return httperr.ErrBusiness("closed_day_with_hours")
		}
		return nil
	}

	open, err := time.Parse("15:04", opensAt)
	if err != nil {
		return httperr.ErrBusiness("invalid_clock_time")
	}
	closeT, err := time.Parse("15:04", closesAt)
	if err != nil {
		return httperr.ErrBusiness("invalid_clock_time")
	}

	if !open.Before(closeT) {
		return httperr.ErrBusiness("opens_after_closes")
	}
	return nil
}
