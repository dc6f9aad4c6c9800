package notify

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/AgendaVivaBR/salon-scheduler/internal/models"
)

func sampleEvent(kind Kind) Event {
	return Event{
		Kind: kind,
		Appointment: models.Appointment{
			CustomerName:  "Maria",
			CustomerPhone: "11999990000",
			CustomerEmail: "maria@example.com",
			StartTime:     time.Date(2026, 9, 11, 10, 0, 0, 0, time.UTC),
			Price:         80,
			DurationMin:   60,
		},
		Establishment: models.Establishment{
			Name:        "Salão Aurora",
			NotifyEmail: "dona@aurora.com",
		},
		ServiceName:      "Corte",
		ProfessionalName: "João",
	}
}

func TestBuildMessageRecipients(t *testing.T) {
	// novo agendamento e cancelamento vão para o estabelecimento;
	// confirmação e lembrete vão para o cliente
	cases := []struct {
		kind Kind
		to   string
	}{
		{KindNewAppointment, "dona@aurora.com"},
		{KindCancellation, "dona@aurora.com"},
		{KindConfirmation, "maria@example.com"},
		{KindReminder, "maria@example.com"},
	}

	for _, tc := range cases {
		t.Run(string(tc.kind), func(t *testing.T) {
			msg, ok := BuildMessage(sampleEvent(tc.kind))
			assert.True(t, ok)
			assert.Equal(t, tc.to, msg.To)
			assert.NotEmpty(t, msg.Subject)
			assert.Contains(t, msg.Body, "Maria")
		})
	}
}

func TestBuildMessageWithoutRecipient(t *testing.T) {
	ev := sampleEvent(KindNewAppointment)
	ev.Establishment.NotifyEmail = ""
	_, ok := BuildMessage(ev)
	assert.False(t, ok)

	ev = sampleEvent(KindReminder)
	ev.Appointment.CustomerEmail = ""
	_, ok = BuildMessage(ev)
	assert.False(t, ok)
}

func TestBuildMessageUnknownKind(t *testing.T) {
	_, ok := BuildMessage(Event{Kind: Kind("sms")})
	assert.False(t, ok)
}

func TestBuildCancellationCarriesReason(t *testing.T) {
	ev := sampleEvent(KindCancellation)
	ev.Reason = "cliente desistiu"

	msg, ok := BuildMessage(ev)
	assert.True(t, ok)
	assert.Contains(t, msg.Body, "cliente desistiu")
}
