package notify

import "fmt"

// BuildMessage monta a mensagem de um evento. ok=false quando o evento
// não tem destinatário (estabelecimento sem email de notificação,
// cliente sem email).
func BuildMessage(ev Event) (Message, bool) {
	switch ev.Kind {
	case KindNewAppointment:
		return buildNewAppointment(ev)
	case KindConfirmation:
		return buildConfirmation(ev)
	case KindCancellation:
		return buildCancellation(ev)
	case KindReminder:
		return buildReminder(ev)
	}
	return Message{}, false
}

func buildNewAppointment(ev Event) (Message, bool) {
	if ev.Establishment.NotifyEmail == "" {
		return Message{}, false
	}

	ap := ev.Appointment

	body := fmt.Sprintf(`NOVO AGENDAMENTO RECEBIDO!

Cliente: %s
Telefone: %s
Email: %s

Data: %s
Horário: %s
Serviço: %s
Profissional: %s
Valor: R$ %.2f
Duração: %d minutos

%s---
%s
Sistema de Agendamento
`,
		ap.CustomerName,
		ap.CustomerPhone,
		ap.CustomerEmail,
		ap.StartTime.Format("02/01/2006"),
		ap.StartTime.Format("15:04"),
		ev.ServiceName,
		ev.ProfessionalName,
		ap.Price,
		ap.DurationMin,
		notesLine(ap.Notes),
		ev.Establishment.Name,
	)

	return Message{
		To: ev.Establishment.NotifyEmail,
		Subject: fmt.Sprintf(
			"Novo Agendamento - %s (%s)",
			ap.CustomerName,
			ap.StartTime.Format("02/01/2006 15:04"),
		),
		Body: body,
	}, true
}

func buildConfirmation(ev Event) (Message, bool) {
	ap := ev.Appointment
	if ap.CustomerEmail == "" {
		return Message{}, false
	}

	body := fmt.Sprintf(`Olá %s!

Seu agendamento foi CONFIRMADO pelo estabelecimento!

Data: %s
Horário: %s
Serviço: %s
Profissional: %s
Valor: R$ %.2f
Duração: %d minutos

%sESTABELECIMENTO:
%s
%s
Telefone: %s

Em caso de necessidade de cancelamento, entre em contato pelo menos 2 horas antes.

Muito obrigado e até breve!
`,
		ap.CustomerName,
		ap.StartTime.Format("02/01/2006"),
		ap.StartTime.Format("15:04"),
		ev.ServiceName,
		ev.ProfessionalName,
		ap.Price,
		ap.DurationMin,
		notesLine(ap.Notes),
		ev.Establishment.Name,
		ev.Establishment.Address,
		ev.Establishment.Phone,
	)

	return Message{
		To: ap.CustomerEmail,
		Subject: fmt.Sprintf(
			"Agendamento Confirmado - %s (%s)",
			ev.Establishment.Name,
			ap.StartTime.Format("02/01/2006 15:04"),
		),
		Body: body,
	}, true
}

func buildCancellation(ev Event) (Message, bool) {
	if ev.Establishment.NotifyEmail == "" {
		return Message{}, false
	}

	ap := ev.Appointment

	reason := ""
	if ev.Reason != "" {
		reason = fmt.Sprintf("Motivo: %s\n\n", ev.Reason)
	}

	body := fmt.Sprintf(`AGENDAMENTO CANCELADO

Cliente: %s
Telefone: %s

Data: %s
Horário: %s
Serviço: %s
Profissional: %s

%s---
%s
Sistema de Agendamento
`,
		ap.CustomerName,
		ap.CustomerPhone,
		ap.StartTime.Format("02/01/2006"),
		ap.StartTime.Format("15:04"),
		ev.ServiceName,
		ev.ProfessionalName,
		reason,
		ev.Establishment.Name,
	)

	return Message{
		To: ev.Establishment.NotifyEmail,
		Subject: fmt.Sprintf(
			"Agendamento Cancelado - %s (%s)",
			ap.CustomerName,
			ap.StartTime.Format("02/01/2006 15:04"),
		),
		Body: body,
	}, true
}

func buildReminder(ev Event) (Message, bool) {
	ap := ev.Appointment
	if ap.CustomerEmail == "" {
		return Message{}, false
	}

	body := fmt.Sprintf(`Olá %s,

Este é um lembrete do seu agendamento:

Data: %s
Horário: %s
Serviço: %s
Profissional: %s
Local: %s

Preço: R$ %.2f
Duração estimada: %d minutos

%sCaso precise cancelar ou reagendar, entre em contato conosco com antecedência.

Obrigado por escolher nossos serviços!
`,
		ap.CustomerName,
		ap.StartTime.Format("02/01/2006"),
		ap.StartTime.Format("15:04"),
		ev.ServiceName,
		ev.ProfessionalName,
		ev.Establishment.Name,
		ap.Price,
		ap.DurationMin,
		notesLine(ap.Notes),
	)

	return Message{
		To: ap.CustomerEmail,
		Subject: fmt.Sprintf(
			"Lembrete: Seu agendamento em %s",
			ev.Establishment.Name,
		),
		Body: body,
	}, true
}

func notesLine(notes string) string {
	if notes == "" {
		return ""
	}
	return fmt.Sprintf("Observações: %s\n\n", notes)
}
