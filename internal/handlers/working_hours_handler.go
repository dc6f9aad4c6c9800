package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	domain "github.com/AgendaVivaBR/salon-scheduler/internal/domain/appointment"
	"github.com/AgendaVivaBR/salon-scheduler/internal/httperr"
	"github.com/AgendaVivaBR/salon-scheduler/internal/models"
)

type WorkingHoursHandler struct {
	db *gorm.DB
}

func NewWorkingHoursHandler(db *gorm.DB) *WorkingHoursHandler {
	return &WorkingHoursHandler{db: db}
}

type WorkingDayConfig struct {
	Weekday  int    `json:"weekday" binding:"min=0,max=6"`
	Closed   bool   `json:"closed"`
	OpensAt  string `json:"opens_at"`
	ClosesAt string `json:"closes_at"`
}

type WorkingHoursUpdateRequest struct {
	Days []WorkingDayConfig `json:"days" binding:"required"`
}

func (h *WorkingHoursHandler) Get(c *gin.Context) {
	establishmentID := contextEstablishmentID(c)

	var hours []models.WorkingHours
	if err := h.db.
		Where("establishment_id = ?", establishmentID).
		Order("weekday ASC").
		Find(&hours).Error; err != nil {

		httperr.Internal(c, "failed_to_get_working_hours", "Erro ao buscar expediente.")
		return
	}

	c.JSON(http.StatusOK, hours)
}

func (h *WorkingHoursHandler) Update(c *gin.Context) {
	establishmentID := contextEstablishmentID(c)

	var req WorkingHoursUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	seen := map[int]bool{}
	for _, d := range req.Days {
		if d.Weekday < 0 || d.Weekday > 6 {
			httperr.BadRequest(c, "invalid_weekday", "Dia da semana deve estar entre 0 (segunda) e 6 (domingo).")
			return
		}
		if seen[d.Weekday] {
			httperr.BadRequest(c, "duplicated_weekday", "Dia da semana repetido na requisição.")
			return
		}
		seen[d.Weekday] = true

		if err := domain.ValidateWindow(d.OpensAt, d.ClosesAt, d.Closed); err != nil {
			writeBusiness(c, err)
			return
		}
	}

	err := h.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("establishment_id = ?", establishmentID).
			Delete(&models.WorkingHours{}).Error; err != nil {
			return err
		}

		var toCreate []models.WorkingHours
		for _, d := range req.Days {
			toCreate = append(toCreate, models.WorkingHours{
				EstablishmentID: establishmentID,
				Weekday:         d.Weekday,
				OpensAt:         d.OpensAt,
				ClosesAt:        d.ClosesAt,
				Closed:          d.Closed,
			})
		}

		if len(toCreate) > 0 {
			if err := tx.Create(&toCreate).Error; err != nil {
				return err
			}
		}
		return nil
	})

	if err != nil {
		httperr.Internal(c, "failed_to_save_working_hours", "Erro ao salvar expediente.")
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
