package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/AgendaVivaBR/salon-scheduler/internal/httperr"
	"github.com/AgendaVivaBR/salon-scheduler/internal/models"
)

type ProfessionalHandler struct {
	db *gorm.DB
}

func NewProfessionalHandler(db *gorm.DB) *ProfessionalHandler {
	return &ProfessionalHandler{db: db}
}

// --------- Requests ---------

type CreateProfessionalRequest struct {
	Name string `json:"name" binding:"required"`
}

type UpdateProfessionalRequest struct {
	Name   *string `json:"name,omitempty"`
	Active *bool   `json:"active,omitempty"`
}

// --------- Handlers ---------

func (h *ProfessionalHandler) List(c *gin.Context) {
	establishmentID := contextEstablishmentID(c)

	activeStr := strings.TrimSpace(c.Query("active"))

	q := h.db.Where("establishment_id = ?", establishmentID)

	if activeStr == "true" {
		q = q.Where("active = ?", true)
	} else if activeStr == "false" {
		q = q.Where("active = ?", false)
	}

	var professionals []models.Professional
	if err := q.
		Order("name ASC").
		Find(&professionals).Error; err != nil {

		httperr.Internal(c, "failed_to_list_professionals", "Erro ao listar profissionais.")
		return
	}

	c.JSON(http.StatusOK, professionals)
}

func (h *ProfessionalHandler) Create(c *gin.Context) {
	establishmentID := contextEstablishmentID(c)

	var req CreateProfessionalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	professional := models.Professional{
		EstablishmentID: establishmentID,
		Name:            strings.TrimSpace(req.Name),
		Active:          true,
	}

	if err := h.db.Create(&professional).Error; err != nil {
		httperr.Internal(c, "failed_to_create_professional", "Erro ao criar profissional.")
		return
	}

	c.JSON(http.StatusCreated, professional)
}

// Desativar (active=false) tira o profissional do booking público sem
// mexer nos agendamentos já feitos.
func (h *ProfessionalHandler) Update(c *gin.Context) {
	establishmentID := contextEstablishmentID(c)

	id := c.Param("id")

	var professional models.Professional
	if err := h.db.
		Where("id = ? AND establishment_id = ?", id, establishmentID).
		First(&professional).Error; err != nil {

		if err == gorm.ErrRecordNotFound {
			httperr.NotFound(c, "professional_not_found", "Profissional não encontrado.")
			return
		}
		httperr.Internal(c, "failed_to_get_professional", "Erro ao buscar profissional.")
		return
	}

	var req UpdateProfessionalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			httperr.BadRequest(c, "invalid_name", "Nome não pode ser vazio.")
			return
		}
		professional.Name = name
	}
	if req.Active != nil {
		professional.Active = *req.Active
	}

	if err := h.db.Save(&professional).Error; err != nil {
		httperr.Internal(c, "failed_to_update_professional", "Erro ao salvar profissional.")
		return
	}

	c.JSON(http.StatusOK, professional)
}

func (h *ProfessionalHandler) Delete(c *gin.Context) {
	establishmentID := contextEstablishmentID(c)

	id := c.Param("id")

	var professional models.Professional
	if err := h.db.
		Where("id = ? AND establishment_id = ?", id, establishmentID).
		First(&professional).Error; err != nil {

		if err == gorm.ErrRecordNotFound {
			httperr.NotFound(c, "professional_not_found", "Profissional não encontrado.")
			return
		}
		httperr.Internal(c, "failed_to_get_professional", "Erro ao buscar profissional.")
		return
	}

	var count int64
	if err := h.db.Model(&models.Appointment{}).
		Where("professional_id = ?", professional.ID).
		Count(&count).Error; err != nil {
		httperr.Internal(c, "failed_to_check_appointments", "Erro ao verificar agendamentos.")
		return
	}

	if count > 0 {
		httperr.Conflict(c, "professional_has_appointments",
			"Profissional possui agendamentos e não pode ser removido. Desative-o.")
		return
	}

	if err := h.db.Delete(&professional).Error; err != nil {
		httperr.Internal(c, "failed_to_delete_professional", "Erro ao remover profissional.")
		return
	}

	c.JSON(http.StatusOK, gin.H{"deleted": true})
}
