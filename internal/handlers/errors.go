package handlers

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/AgendaVivaBR/salon-scheduler/internal/httperr"
)

// Mensagens padrão por código quando o erro não carrega a própria.
var businessMessages = map[string]string{
	"invalid_request":          "Dados inválidos.",
	"invalid_date_or_time":     "Data ou hora inválida.",
	"invalid_phone":            "Telefone inválido.",
	"invalid_email":            "Email inválido.",
	"invalid_status":           "Status inválido.",
	"invalid_state":            "Transição de status não permitida.",
	"past_time":                "Não é possível agendar para datas passadas.",
	"closed_day":               "O estabelecimento está fechado neste dia.",
	"missing_customer_name":    "Nome do cliente é obrigatório.",
	"time_conflict":            "Conflito de horário.",
	"cancellation_not_allowed": "Não foi possível cancelar este agendamento.",
	"cancellation_too_late":    "Não é possível cancelar agendamentos com menos de 2 horas de antecedência.",
	"duplicate_record":         "Registro duplicado.",
	"establishment_not_found":  "Estabelecimento não encontrado.",
	"service_not_found":        "Serviço não encontrado.",
	"professional_not_found":   "Profissional não encontrado.",
	"appointment_not_found":    "Agendamento não encontrado.",
	"closed_day_with_hours":    "Dia fechado não pode ter horários de abertura.",
	"invalid_clock_time":       "Horário inválido (use HH:MM).",
	"opens_after_closes":       "Abertura deve ser antes do fechamento.",
}

// writeBusiness traduz um BusinessError para a resposta HTTP.
// Retorna false quando o erro não é de negócio (o chamador responde 500).
func writeBusiness(c *gin.Context, err error) bool {
	be, ok := httperr.AsBusiness(err)
	if !ok {
		return false
	}

	msg := be.Message
	if msg == "" {
		msg = businessMessages[be.Code]
	}
	if msg == "" {
		msg = be.Code
	}

	switch {
	case strings.HasSuffix(be.Code, "_not_found"):
		httperr.NotFound(c, be.Code, msg)
	case be.Code == "time_conflict":
		httperr.Conflict(c, be.Code, msg)
	default:
		httperr.BadRequest(c, be.Code, msg)
	}

	return true
}
