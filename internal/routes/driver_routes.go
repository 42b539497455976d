package routes

import (
	"github.com/gin-gonic/gin"
)

// DriverRoutes registers the authenticated portal surface: profile,
// transfer workflow, notifications panel, transaction history.
func DriverRoutes(r *gin.Engine, ctl Controllers) {
	driver := r.Group("/driver")
	driver.Use(ctl.Tokens.RequireAuth())
	{
		driver.GET("/profile", ctl.Profile.GetProfile)

		driver.GET("/transfers", ctl.Transfer.List)
		driver.POST("/transfers/:id/accept", ctl.Transfer.Accept)
		driver.POST("/transfers/:id/decline", ctl.Transfer.Decline)
		driver.POST("/transfers/:id/complete", ctl.Transfer.Complete)

		driver.GET("/notifications", ctl.Notification.List)
		driver.POST("/notifications/:id/read", ctl.Notification.MarkRead)

		driver.GET("/payments", ctl.Payment.List)
		driver.GET("/payments/summary", ctl.Payment.Summary)
	}
}
