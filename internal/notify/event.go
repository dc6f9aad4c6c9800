package notify

import "github.com/AgendaVivaBR/salon-scheduler/internal/models"

type Kind string

const (
	KindNewAppointment Kind = "new_appointment"
	KindConfirmation   Kind = "confirmation"
	KindCancellation   Kind = "cancellation"
	KindReminder       Kind = "reminder"
)

// Event carrega um snapshot do agendamento já commitado. Eventos são
// emitidos depois da transação: falha de envio nunca desfaz o booking.
type Event struct {
	Kind Kind

	Appointment   models.Appointment
	Establishment models.Establishment

	ServiceName      string
	ProfessionalName string

	Reason string
}

// Message é o que efetivamente sai pelo Sender.
type Message struct {
	To      string
	Subject string
	Body    string
}

// Sender entrega uma mensagem. Implementações devolvem erro em vez de
// panicar: o chamador decide se loga ou re-tenta.
type Sender interface {
	Send(msg Message) error
}
