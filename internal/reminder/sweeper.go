package reminder

import (
	"context"
	"log"
	"time"

	"github.com/go-redis/redis/v8"

	ucAppointment "github.com/AgendaVivaBR/salon-scheduler/internal/usecase/appointment"
)

const lockKey = "salon-scheduler:reminder-sweep:lock"

// Sweeper roda a varredura de lembretes em intervalo fixo. Com várias
// réplicas do serviço, o lock em redis garante uma varredura por vez;
// sem redis configurado a instância roda sozinha.
type Sweeper struct {
	sweep    *ucAppointment.ReminderSweep
	rdb      *redis.Client
	interval time.Duration
}

func NewSweeper(sweep *ucAppointment.ReminderSweep, rdb *redis.Client, interval time.Duration) *Sweeper {
	return &Sweeper{
		sweep:    sweep,
		rdb:      rdb,
		interval: interval,
	}
}

// Run bloqueia até ctx ser cancelado.
func (s *Sweeper) Run(ctx context.Context) {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	// primeira varredura logo na subida
	s.runOnce(ctx)

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.runOnce(ctx)
		}
	}
}

func (s *Sweeper) runOnce(ctx context.Context) {
	if !s.acquireLock(ctx) {
		return
	}

	sent, failed, err := s.sweep.Execute(ctx)
	if err != nil {
		log.Printf("reminder sweep failed: %v", err)
		return
	}

	if sent > 0 || failed > 0 {
		log.Printf("reminder sweep: sent=%d failed=%d", sent, failed)
	}
}

func (s *Sweeper) acquireLock(ctx context.Context) bool {
	if s.rdb == nil {
		return true
	}

	// o lock expira sozinho; não soltamos no fim para que o intervalo
	// mínimo entre varreduras valha também entre réplicas
	ok, err := s.rdb.SetNX(ctx, lockKey, "1", s.interval-time.Second).Result()
	if err != nil {
		log.Printf("reminder lock error, skipping sweep: %v", err)
		return false
	}
	return ok
}
