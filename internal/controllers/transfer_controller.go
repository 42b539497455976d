package controllers

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cast"

	"github.com/travelintrips/driver-portal/internal/middleware"
	"github.com/travelintrips/driver-portal/internal/transfers"
)

// TransferController exposes the transfer acceptance workflow.
type TransferController struct {
	workflow *transfers.Workflow
}

func NewTransferController(workflow *transfers.Workflow) *TransferController {
	return &TransferController{workflow: workflow}
}

// List returns the driver's transfers for ?group=active|history (default
// active). An empty list is a normal answer, not an error.
func (t *TransferController) List(c *gin.Context) {
	driverID := middleware.DriverIDFromContext(c)
	if driverID == 0 {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Missing driver identity"})
		return
	}

	group := transfers.GroupActive
	if c.Query("group") == string(transfers.GroupHistory) {
		group = transfers.GroupHistory
	}

	list, err := t.workflow.List(c.Request.Context(), driverID, group)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": list})
}

// Accept confirms a pending transfer for the calling driver.
func (t *TransferController) Accept(c *gin.Context) {
	t.mutate(c, t.workflow.Accept)
}

// Decline cancels a transfer regardless of its current state.
func (t *TransferController) Decline(c *gin.Context) {
	t.mutate(c, t.workflow.Decline)
}

// Complete marks a transfer completed. Repeat calls re-persist the same value.
func (t *TransferController) Complete(c *gin.Context) {
	t.mutate(c, t.workflow.Complete)
}

// mutate runs one workflow operation with the caller identity assembled from
// an optional ?driver_id override and the session claims.
func (t *TransferController) mutate(c *gin.Context, op func(ctx context.Context, caller transfers.Caller, transferID uint) (*transfers.Result, error)) {
	transferID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid transfer ID format."})
		return
	}

	caller := transfers.Caller{
		ExplicitID: cast.ToUint(c.Query("driver_id")),
		SessionID:  middleware.DriverIDFromContext(c),
	}

	result, err := op(c.Request.Context(), caller, uint(transferID))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}
