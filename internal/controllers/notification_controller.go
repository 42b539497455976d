package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	logrus "github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/travelintrips/driver-portal/internal/middleware"
	"github.com/travelintrips/driver-portal/internal/models"
	"github.com/travelintrips/driver-portal/internal/reminders"
	"github.com/travelintrips/driver-portal/internal/transfers"
)

// NotificationController assembles the notifications panel: active transfer
// offers plus overdue-payment reminders derived fresh on every fetch.
type NotificationController struct {
	db        *gorm.DB
	workflow  *transfers.Workflow
	readState *reminders.ReadState
}

func NewNotificationController(db *gorm.DB, workflow *transfers.Workflow, readState *reminders.ReadState) *NotificationController {
	return &NotificationController{db: db, workflow: workflow, readState: readState}
}

// List returns active transfers and derived reminders for the session driver.
func (n *NotificationController) List(c *gin.Context) {
	driverID := middleware.DriverIDFromContext(c)
	if driverID == 0 {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Missing driver identity"})
		return
	}

	active, err := n.workflow.List(c.Request.Context(), driverID, transfers.GroupActive)
	if err != nil {
		respondError(c, err)
		return
	}

	// Only bookings with money still owed feed the deriver.
	var bookings []models.Booking
	if err := n.db.WithContext(c.Request.Context()).
		Where("driver_id = ? AND remaining_payments > 0", driverID).
		Find(&bookings).Error; err != nil {
		logrus.WithError(err).WithField("driver_id", driverID).Error("booking fetch for reminders failed")
		// Transfers are still worth showing when the reminder source is down.
		c.JSON(http.StatusOK, gin.H{"transfers": active, "reminders": []reminders.OverdueMessage{}})
		return
	}

	msgs := n.readState.Apply(driverID, reminders.Derive(bookings, time.Now()))
	c.JSON(http.StatusOK, gin.H{
		"transfers": active,
		"reminders": msgs,
	})
}

// MarkRead flags a derived reminder as read. The flag is session-local and
// resets on restart; reminders have no persisted read state.
func (n *NotificationController) MarkRead(c *gin.Context) {
	driverID := middleware.DriverIDFromContext(c)
	if driverID == 0 {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Missing driver identity"})
		return
	}

	id := c.Param("id")
	if id == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing reminder ID."})
		return
	}
	n.readState.MarkRead(driverID, id)
	c.JSON(http.StatusOK, gin.H{"message": "Reminder marked as read."})
}
