package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cast"

	"github.com/travelintrips/driver-portal/internal/middleware"
	"github.com/travelintrips/driver-portal/internal/models"
	"github.com/travelintrips/driver-portal/internal/payments"
)

// PaymentController serves the transaction-history viewer.
type PaymentController struct {
	payments *payments.Service
}

func NewPaymentController(svc *payments.Service) *PaymentController {
	return &PaymentController{payments: svc}
}

// List returns one page of the driver's ledger, filtered and sorted per the
// query string: ?type=&status=&sort=&order=&page=&per_page=.
func (p *PaymentController) List(c *gin.Context) {
	driverID := middleware.DriverIDFromContext(c)
	if driverID == 0 {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Missing driver identity"})
		return
	}

	opts := payments.ListOptions{
		Type:    models.PaymentType(c.Query("type")),
		Status:  models.PaymentStatus(c.Query("status")),
		SortBy:  c.DefaultQuery("sort", "timestamp"),
		Order:   c.DefaultQuery("order", "desc"),
		Page:    cast.ToInt(c.DefaultQuery("page", "1")),
		PerPage: cast.ToInt(c.DefaultQuery("per_page", "20")),
	}

	list, total, err := p.payments.List(c.Request.Context(), driverID, opts)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data":     list,
		"total":    total,
		"page":     opts.Page,
		"per_page": opts.PerPage,
	})
}

// Summary returns the balance header: current balance and per-type totals.
func (p *PaymentController) Summary(c *gin.Context) {
	driverID := middleware.DriverIDFromContext(c)
	if driverID == 0 {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Missing driver identity"})
		return
	}

	summary, err := p.payments.Summarize(c.Request.Context(), driverID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, summary)
}
