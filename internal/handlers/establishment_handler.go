package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/AgendaVivaBR/salon-scheduler/internal/httperr"
	"github.com/AgendaVivaBR/salon-scheduler/internal/models"
	"github.com/AgendaVivaBR/salon-scheduler/internal/timezone"
	"github.com/AgendaVivaBR/salon-scheduler/internal/validators"
)

type EstablishmentHandler struct {
	db *gorm.DB
}

func NewEstablishmentHandler(db *gorm.DB) *EstablishmentHandler {
	return &EstablishmentHandler{db: db}
}

type UpdateEstablishmentRequest struct {
	Name        *string `json:"name"`
	Phone       *string `json:"phone"`
	Address     *string `json:"address"`
	NotifyEmail *string `json:"notify_email"`
	Timezone    *string `json:"timezone"`
}

func (h *EstablishmentHandler) GetMeEstablishment(c *gin.Context) {
	establishmentID := contextEstablishmentID(c)

	var est models.Establishment
	if err := h.db.First(&est, establishmentID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			httperr.NotFound(c, "establishment_not_found", "Estabelecimento não encontrado.")
			return
		}
		httperr.Internal(c, "failed_to_get_establishment", "Erro ao buscar dados do estabelecimento.")
		return
	}

	c.JSON(http.StatusOK, est)
}

func (h *EstablishmentHandler) UpdateMeEstablishment(c *gin.Context) {
	establishmentID := contextEstablishmentID(c)

	var est models.Establishment
	if err := h.db.First(&est, establishmentID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			httperr.NotFound(c, "establishment_not_found", "Estabelecimento não encontrado.")
			return
		}
		httperr.Internal(c, "failed_to_get_establishment", "Erro ao buscar dados do estabelecimento.")
		return
	}

	var req UpdateEstablishmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos na requisição.")
		return
	}

	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			httperr.BadRequest(c, "invalid_name", "Nome não pode ser vazio.")
			return
		}
		est.Name = name
	}

	if req.Phone != nil {
		est.Phone = strings.TrimSpace(*req.Phone)
	}

	if req.Address != nil {
		est.Address = strings.TrimSpace(*req.Address)
	}

	if req.NotifyEmail != nil {
		email := strings.ToLower(strings.TrimSpace(*req.NotifyEmail))
		// vazio é permitido: desliga as notificações por email
		if email != "" && !validators.IsEmailFormatValid(email) {
			httperr.BadRequest(c, "invalid_email", "E-mail de notificação inválido.")
			return
		}
		est.NotifyEmail = email
	}

	if req.Timezone != nil {
		tz := strings.TrimSpace(*req.Timezone)
		if !timezone.IsValid(tz) {
			httperr.BadRequest(c, "invalid_timezone", "Timezone inválido.")
			return
		}
		est.Timezone = tz
	}

	if err := h.db.Save(&est).Error; err != nil {
		httperr.Internal(c, "failed_to_update_establishment", "Erro ao salvar as configurações do estabelecimento.")
		return
	}

	c.JSON(http.StatusOK, est)
}
