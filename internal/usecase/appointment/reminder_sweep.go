package appointment

import (
	"context"
	"log"
	"time"

	domain "github.com/AgendaVivaBR/salon-scheduler/internal/domain/appointment"
	"github.com/AgendaVivaBR/salon-scheduler/internal/notify"
)

// Janela da varredura: agendamentos a ~24h de distância, com margem de
// 30 minutos para cada lado.
const (
	reminderHorizon = 24 * time.Hour
	reminderMargin  = 30 * time.Minute
)

type ReminderSweep struct {
	repo   domain.Repository
	sender notify.Sender

	clock func() time.Time
}

// NewReminderSweep envia direto pelo Sender, sem passar pelo
// dispatcher assíncrono: a flag reminder_sent só pode subir depois de
// um envio confirmado.
func NewReminderSweep(repo domain.Repository, sender notify.Sender) *ReminderSweep {
	return &ReminderSweep{
		repo:   repo,
		sender: sender,
		clock:  time.Now,
	}
}

// Execute seleciona os agendamentos ativos com email de cliente e
// lembrete pendente dentro da janela, tenta o envio e marca a flag
// apenas quando o envio confirma. Falha deixa a flag intacta para a
// próxima varredura re-tentar.
func (uc *ReminderSweep) Execute(ctx context.Context) (sent, failed int, err error) {

	now := uc.clock()
	from := now.Add(reminderHorizon - reminderMargin)
	to := now.Add(reminderHorizon + reminderMargin)

	candidates, err := uc.repo.ListReminderCandidates(ctx, from, to)
	if err != nil {
		return 0, 0, err
	}

	for i := range candidates {
		ap := candidates[i]

		msg, ok := notify.BuildMessage(notify.Event{
			Kind:             notify.KindReminder,
			Appointment:      ap,
			Establishment:    ap.Establishment,
			ServiceName:      ap.Service.Name,
			ProfessionalName: ap.Professional.Name,
		})
		if !ok {
			continue
		}

		if sendErr := uc.sender.Send(msg); sendErr != nil {
			log.Printf("reminder send failed: appointment=%d: %v", ap.ID, sendErr)
			failed++
			continue
		}

		if markErr := uc.repo.MarkReminderSent(ctx, ap.ID); markErr != nil {
			log.Printf("reminder flag update failed: appointment=%d: %v", ap.ID, markErr)
			failed++
			continue
		}

		sent++
	}

	return sent, failed, nil
}
