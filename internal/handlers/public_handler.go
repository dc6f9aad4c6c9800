package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	domain "github.com/AgendaVivaBR/salon-scheduler/internal/domain/appointment"
	"github.com/AgendaVivaBR/salon-scheduler/internal/httperr"
	"github.com/AgendaVivaBR/salon-scheduler/internal/models"
	ucAppointment "github.com/AgendaVivaBR/salon-scheduler/internal/usecase/appointment"
)

////////////////////////////////////////////////////////
// HANDLER
////////////////////////////////////////////////////////

// Superfície pública do booking: tudo resolvido por slug, sem sessão.
type PublicHandler struct {
	db *gorm.DB

	createUC       *ucAppointment.CreateAppointment
	availabilityUC *ucAppointment.GetAvailability
	closedUC       *ucAppointment.ListClosedWeekdays
	cancelUC       *ucAppointment.CancelByCustomer
}

func NewPublicHandler(
	db *gorm.DB,
	createUC *ucAppointment.CreateAppointment,
	availabilityUC *ucAppointment.GetAvailability,
	closedUC *ucAppointment.ListClosedWeekdays,
	cancelUC *ucAppointment.CancelByCustomer,
) *PublicHandler {
	return &PublicHandler{
		db:             db,
		createUC:       createUC,
		availabilityUC: availabilityUC,
		closedUC:       closedUC,
		cancelUC:       cancelUC,
	}
}

////////////////////////////////////////////////////////
// DTOs
////////////////////////////////////////////////////////

type PublicCreateAppointmentRequest struct {
	CustomerName   string `json:"customer_name" binding:"required"`
	CustomerPhone  string `json:"customer_phone" binding:"required"`
	CustomerEmail  string `json:"customer_email"`
	ServiceID      uint   `json:"service_id" binding:"required"`
	ProfessionalID uint   `json:"professional_id" binding:"required"`
	Date           string `json:"date" binding:"required"` // YYYY-MM-DD
	Time           string `json:"time" binding:"required"` // HH:mm
	Notes          string `json:"notes"`
}

type PublicCancelRequest struct {
	Phone string `json:"phone" binding:"required"`
}

////////////////////////////////////////////////////////
// HELPERS
////////////////////////////////////////////////////////

func (h *PublicHandler) findEstablishment(c *gin.Context) (*models.Establishment, bool) {
	slug := c.Param("slug")

	var est models.Establishment
	if err := h.db.
		Where("slug = ? AND active = true", slug).
		First(&est).Error; err != nil {
		httperr.NotFound(c, "establishment_not_found", "Estabelecimento não encontrado.")
		return nil, false
	}

	return &est, true
}

////////////////////////////////////////////////////////
// CATALOG
////////////////////////////////////////////////////////

func (h *PublicHandler) ListServices(c *gin.Context) {
	est, ok := h.findEstablishment(c)
	if !ok {
		return
	}

	query := strings.TrimSpace(strings.ToLower(c.Query("query")))

	q := h.db.Where("establishment_id = ? AND active = true", est.ID)

	if query != "" {
		like := "%" + query + "%"
		q = q.Where("LOWER(name) LIKE ? OR LOWER(description) LIKE ?", like, like)
	}

	var services []models.Service
	if err := q.Order("id ASC").Find(&services).Error; err != nil {
		httperr.Internal(c, "failed_to_list_services", "Erro ao listar serviços.")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"establishment": est,
		"services":      services,
	})
}

func (h *PublicHandler) ListProfessionals(c *gin.Context) {
	est, ok := h.findEstablishment(c)
	if !ok {
		return
	}

	var professionals []models.Professional
	if err := h.db.
		Where("establishment_id = ? AND active = true", est.ID).
		Order("name ASC").
		Find(&professionals).Error; err != nil {
		httperr.Internal(c, "failed_to_list_professionals", "Erro ao listar profissionais.")
		return
	}

	c.JSON(http.StatusOK, professionals)
}

////////////////////////////////////////////////////////
// AVAILABILITY
////////////////////////////////////////////////////////

func (h *PublicHandler) Availability(c *gin.Context) {
	est, ok := h.findEstablishment(c)
	if !ok {
		return
	}

	dateStr := c.Query("date")
	serviceIDStr := c.Query("service_id")
	professionalIDStr := c.Query("professional_id")

	if dateStr == "" || serviceIDStr == "" || professionalIDStr == "" {
		httperr.BadRequest(c, "missing_params", "Data, serviço e profissional obrigatórios.")
		return
	}

	serviceID, err := strconv.ParseUint(serviceIDStr, 10, 64)
	if err != nil {
		httperr.BadRequest(c, "invalid_service_id", "Serviço inválido.")
		return
	}

	professionalID, err := strconv.ParseUint(professionalIDStr, 10, 64)
	if err != nil {
		httperr.BadRequest(c, "invalid_professional_id", "Profissional inválido.")
		return
	}

	date, err := parseDateIn(est, dateStr)
	if err != nil {
		httperr.BadRequest(c, "invalid_date", "Data inválida.")
		return
	}

	slots, err := h.availabilityUC.Execute(
		c.Request.Context(),
		domain.AvailabilityInput{
			EstablishmentID: est.ID,
			ProfessionalID:  uint(professionalID),
			ServiceID:       uint(serviceID),
			Date:            date,
		},
	)

	if err != nil {
		if !writeBusiness(c, err) {
			httperr.Internal(c, "availability_failed", "Erro ao calcular horários.")
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"date":  dateStr,
		"slots": slots,
	})
}

func (h *PublicHandler) ClosedDays(c *gin.Context) {
	est, ok := h.findEstablishment(c)
	if !ok {
		return
	}

	weekdays, err := h.closedUC.Execute(c.Request.Context(), est.ID)
	if err != nil {
		httperr.Internal(c, "closed_days_failed", "Erro ao listar dias fechados.")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"closed_weekdays": weekdays,
	})
}

////////////////////////////////////////////////////////
// CREATE
////////////////////////////////////////////////////////

func (h *PublicHandler) CreateAppointment(c *gin.Context) {
	est, ok := h.findEstablishment(c)
	if !ok {
		return
	}

	var req PublicCreateAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	ap, err := h.createUC.Execute(
		c.Request.Context(),
		ucAppointment.CreateAppointmentInput{
			EstablishmentID: est.ID,
			ProfessionalID:  req.ProfessionalID,
			ServiceID:       req.ServiceID,
			CustomerName:    req.CustomerName,
			CustomerPhone:   req.CustomerPhone,
			CustomerEmail:   req.CustomerEmail,
			Date:            req.Date,
			Time:            req.Time,
			Notes:           req.Notes,
		},
	)

	if err != nil {
		if !writeBusiness(c, err) {
			httperr.Internal(c, "failed_to_create_appointment", "Erro ao criar agendamento.")
		}
		return
	}

	c.JSON(http.StatusCreated, ap)
}

////////////////////////////////////////////////////////
// CANCEL (CLIENTE)
////////////////////////////////////////////////////////

// O cliente cancela pela URL com o token público recebido na criação;
// o telefone re-informado é a credencial.
func (h *PublicHandler) CancelAppointment(c *gin.Context) {
	est, ok := h.findEstablishment(c)
	if !ok {
		return
	}

	var req PublicCancelRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	cancelled, err := h.cancelUC.Execute(
		c.Request.Context(),
		est.ID,
		c.Param("token"),
		req.Phone,
	)

	if err != nil {
		if !writeBusiness(c, err) {
			httperr.Internal(c, "failed_to_cancel", "Erro ao cancelar agendamento.")
		}
		return
	}

	c.JSON(http.StatusOK, cancelled)
}
