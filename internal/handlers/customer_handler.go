package handlers

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/AgendaVivaBR/salon-scheduler/internal/httpresp"
	"github.com/AgendaVivaBR/salon-scheduler/internal/models"
)

// Clientes não têm cadastro próprio: são os dados informados nos
// agendamentos, agregados por telefone.
type CustomerHandler struct {
	db *gorm.DB
}

func NewCustomerHandler(db *gorm.DB) *CustomerHandler {
	return &CustomerHandler{db: db}
}

type CustomerSummary struct {
	Name      string    `json:"name"`
	Phone     string    `json:"phone"`
	Email     string    `json:"email"`
	Visits    int64     `json:"visits"`
	LastVisit time.Time `json:"last_visit"`
}

// ======================================================
// LIST CUSTOMERS (STAFF)
// ======================================================
func (h *CustomerHandler) List(c *gin.Context) {
	establishmentID := contextEstablishmentID(c)

	query := strings.ToLower(strings.TrimSpace(c.Query("query")))

	q := h.db.
		Model(&models.Appointment{}).
		Select(`customer_phone AS phone,
			MAX(customer_name) AS name,
			MAX(customer_email) AS email,
			COUNT(*) AS visits,
			MAX(start_time) AS last_visit`).
		Where("establishment_id = ?", establishmentID).
		Group("customer_phone")

	if query != "" {
		like := "%" + query + "%"
		q = q.Where(
			"LOWER(customer_name) LIKE ? OR customer_phone LIKE ? OR LOWER(customer_email) LIKE ?",
			like, like, like,
		)
	}

	var customers []CustomerSummary
	if err := q.
		Order("last_visit DESC").
		Scan(&customers).Error; err != nil {

		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "failed_to_list_customers",
		})
		return
	}

	httpresp.List(c, customers)
}
