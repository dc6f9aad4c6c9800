package appointment

import (
	"context"

	domain "github.com/AgendaVivaBR/salon-scheduler/internal/domain/appointment"
)

type ListClosedWeekdays struct {
	repo domain.Repository
}

func NewListClosedWeekdays(repo domain.Repository) *ListClosedWeekdays {
	return &ListClosedWeekdays{repo: repo}
}

// Execute devolve os dias da semana (0=segunda .. 6=domingo) em que o
// estabelecimento está marcado como fechado.
func (uc *ListClosedWeekdays) Execute(
	ctx context.Context,
	establishmentID uint,
) ([]int, error) {
	return uc.repo.ListClosedWeekdays(ctx, establishmentID)
}
