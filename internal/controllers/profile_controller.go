package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	logrus "github.com/sirupsen/logrus"

	"github.com/travelintrips/driver-portal/internal/identity"
	"github.com/travelintrips/driver-portal/internal/middleware"
	"github.com/travelintrips/driver-portal/internal/payments"
)

// ProfileController serves the driver's profile page data.
type ProfileController struct {
	resolver *identity.Resolver
	payments *payments.Service
}

func NewProfileController(resolver *identity.Resolver, payments *payments.Service) *ProfileController {
	return &ProfileController{resolver: resolver, payments: payments}
}

// GetProfile fetches the authenticated driver's record, falling back to the
// legacy users table for pre-portal accounts, plus the balance summary.
func (p *ProfileController) GetProfile(c *gin.Context) {
	// 1) Resolve who is calling from the session claims.
	driverID, err := p.resolver.Resolve(0, middleware.DriverIDFromContext(c))
	if err != nil {
		// Session carried no usable ID; try the email path before giving up.
		driver, emailErr := p.resolver.ResolveByEmail(c.Request.Context(), middleware.EmailFromContext(c))
		if emailErr != nil {
			respondError(c, err)
			return
		}
		driverID = driver.ID
	}

	// 2) Fetch the profile record.
	driver, err := p.resolver.Profile(c.Request.Context(), driverID)
	if err != nil {
		logrus.WithError(err).WithField("driver_id", driverID).Error("profile fetch failed")
		respondError(c, err)
		return
	}

	// 3) Attach the ledger summary for the balance header.
	summary, err := p.payments.Summarize(c.Request.Context(), driverID)
	if err != nil {
		// Profile is still useful without the summary.
		logrus.WithError(err).WithField("driver_id", driverID).Warn("balance summary failed")
		c.JSON(http.StatusOK, gin.H{"driver": driver})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"driver":  driver,
		"summary": summary,
	})
}
