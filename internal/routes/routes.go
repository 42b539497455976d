package routes

import (
	ginlog "github.com/gin-contrib/logger"
	"github.com/gin-gonic/gin"

	"github.com/travelintrips/driver-portal/internal/controllers"
	"github.com/travelintrips/driver-portal/internal/middleware"
)

// Controllers bundles everything the router needs, wired once at startup.
type Controllers struct {
	Tokens       *middleware.TokenIssuer
	Auth         *controllers.AuthController
	Profile      *controllers.ProfileController
	Transfer     *controllers.TransferController
	Notification *controllers.NotificationController
	Payment      *controllers.PaymentController
	Message      *controllers.MessageController
}

func SetupRouter(ctl Controllers) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())

	// Request logging middleware
	r.Use(ginlog.SetLogger())

	AuthRoutes(r, ctl.Auth)
	DriverRoutes(r, ctl)
	MessageRoutes(r, ctl.Message)

	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	return r
}
