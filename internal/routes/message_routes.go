package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/travelintrips/driver-portal/internal/controllers"
)

// MessageRoutes registers the open forwarding endpoint. No auth: the gateway
// token never leaves the server and the endpoint only relays.
func MessageRoutes(r *gin.Engine, message *controllers.MessageController) {
	api := r.Group("/api")
	{
		api.POST("/messages/send", message.Send)
	}
}
