package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/AgendaVivaBR/salon-scheduler/internal/httperr"
	"github.com/AgendaVivaBR/salon-scheduler/internal/httpresp"
	"github.com/AgendaVivaBR/salon-scheduler/internal/middleware"
	"github.com/AgendaVivaBR/salon-scheduler/internal/models"
	"github.com/AgendaVivaBR/salon-scheduler/internal/timezone"
	ucAppointment "github.com/AgendaVivaBR/salon-scheduler/internal/usecase/appointment"
)

////////////////////////////////////////////////////////
// HANDLER
////////////////////////////////////////////////////////

type AppointmentHandler struct {
	db *gorm.DB

	listByDateUC   *ucAppointment.ListAppointmentsByDate
	listByMonthUC  *ucAppointment.ListAppointmentsByMonth
	updateStatusUC *ucAppointment.UpdateStatus
}

func NewAppointmentHandler(
	db *gorm.DB,
	listByDateUC *ucAppointment.ListAppointmentsByDate,
	listByMonthUC *ucAppointment.ListAppointmentsByMonth,
	updateStatusUC *ucAppointment.UpdateStatus,
) *AppointmentHandler {
	return &AppointmentHandler{
		db:             db,
		listByDateUC:   listByDateUC,
		listByMonthUC:  listByMonthUC,
		updateStatusUC: updateStatusUC,
	}
}

////////////////////////////////////////////////////////
// DTOs
////////////////////////////////////////////////////////

type UpdateStatusRequest struct {
	Status string `json:"status" binding:"required"`
	Reason string `json:"reason"`
}

////////////////////////////////////////////////////////
// HELPERS
////////////////////////////////////////////////////////

func contextEstablishmentID(c *gin.Context) uint {
	val, _ := c.Get(middleware.ContextEstablishmentID)
	id, _ := val.(uint)
	return id
}

func contextUserID(c *gin.Context) uint {
	val, _ := c.Get(middleware.ContextUserID)
	id, _ := val.(uint)
	return id
}

func (h *AppointmentHandler) establishmentOf(c *gin.Context) (*models.Establishment, bool) {
	establishmentID := contextEstablishmentID(c)

	var est models.Establishment
	if err := h.db.First(&est, establishmentID).Error; err != nil {
		httperr.NotFound(c, "establishment_not_found", "Estabelecimento não encontrado.")
		return nil, false
	}

	return &est, true
}

////////////////////////////////////////////////////////
// LIST
////////////////////////////////////////////////////////

func (h *AppointmentHandler) ListByDate(c *gin.Context) {
	est, ok := h.establishmentOf(c)
	if !ok {
		return
	}

	date, err := parseDateIn(est, c.Query("date"))
	if err != nil {
		httperr.BadRequest(c, "invalid_date", "Data inválida.")
		return
	}

	// professional_id opcional: 0 significa todos
	var professionalID uint
	if raw := c.Query("professional_id"); raw != "" {
		id, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			httperr.BadRequest(c, "invalid_professional_id", "Profissional inválido.")
			return
		}
		professionalID = uint(id)
	}

	items, err := h.listByDateUC.Execute(c.Request.Context(), est.ID, professionalID, date)
	if err != nil {
		httperr.Internal(c, "failed_to_list_appointments", "Erro ao listar agendamentos.")
		return
	}

	httpresp.List(c, items)
}

func (h *AppointmentHandler) ListByMonth(c *gin.Context) {
	est, ok := h.establishmentOf(c)
	if !ok {
		return
	}

	year, err := strconv.Atoi(c.Query("year"))
	if err != nil || year < 2000 || year > 2100 {
		httperr.BadRequest(c, "invalid_year", "Ano inválido.")
		return
	}

	month, err := strconv.Atoi(c.Query("month"))
	if err != nil || month < 1 || month > 12 {
		httperr.BadRequest(c, "invalid_month", "Mês inválido.")
		return
	}

	// professional_id opcional: 0 significa todos
	var professionalID uint
	if raw := c.Query("professional_id"); raw != "" {
		id, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			httperr.BadRequest(c, "invalid_professional_id", "Profissional inválido.")
			return
		}
		professionalID = uint(id)
	}

	loc := timezone.Location(est.Timezone)

	items, err := h.listByMonthUC.Execute(
		c.Request.Context(),
		est.ID,
		professionalID,
		year,
		month,
		loc,
	)
	if err != nil {
		httperr.Internal(c, "failed_to_list_appointments", "Erro ao listar agendamentos.")
		return
	}

	httpresp.List(c, items)
}

func (h *AppointmentHandler) Get(c *gin.Context) {
	establishmentID := contextEstablishmentID(c)

	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "ID inválido.")
		return
	}

	var ap models.Appointment
	if err := h.db.
		Preload("Service").
		Preload("Professional").
		Where("id = ? AND establishment_id = ?", id, establishmentID).
		First(&ap).Error; err != nil {
		httperr.NotFound(c, "appointment_not_found", "Agendamento não encontrado.")
		return
	}

	c.JSON(http.StatusOK, ap)
}

////////////////////////////////////////////////////////
// STATUS
////////////////////////////////////////////////////////

func (h *AppointmentHandler) UpdateStatus(c *gin.Context) {
	establishmentID := contextEstablishmentID(c)
	userID := contextUserID(c)

	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "ID inválido.")
		return
	}

	var req UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	ap, err := h.updateStatusUC.Execute(
		c.Request.Context(),
		ucAppointment.UpdateStatusInput{
			EstablishmentID: establishmentID,
			UserID:          userID,
			AppointmentID:   uint(id),
			NewStatus:       req.Status,
			Reason:          req.Reason,
		},
	)

	if err != nil {
		if !writeBusiness(c, err) {
			httperr.Internal(c, "failed_to_update_status", "Erro ao atualizar status.")
		}
		return
	}

	c.JSON(http.StatusOK, ap)
}
