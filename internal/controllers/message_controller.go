package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/travelintrips/driver-portal/internal/messaging"
)

type sendMessageInput struct {
	// Target accepts a single number or a list of numbers.
	Target  interface{} `json:"target"`
	Message string      `json:"message"`
}

// MessageController forwards WhatsApp messages to the gateway. By design it
// always answers HTTP 200 and embeds the outcome in the envelope, so browser
// callers never need non-200 handling.
type MessageController struct {
	client *messaging.Client
}

func NewMessageController(client *messaging.Client) *MessageController {
	return &MessageController{client: client}
}

// Send validates and forwards one message.
func (m *MessageController) Send(c *gin.Context) {
	var input sendMessageInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusOK, messaging.Envelope{
			Success: false,
			Status:  http.StatusBadRequest,
			Data:    gin.H{"error": "invalid request body: " + err.Error()},
		})
		return
	}

	target, ok := messaging.NormalizeTarget(input.Target)
	if !ok || input.Message == "" {
		c.JSON(http.StatusOK, messaging.Envelope{
			Success: false,
			Status:  http.StatusBadRequest,
			Data:    gin.H{"error": "target and message are required"},
		})
		return
	}

	envelope := m.client.Send(c.Request.Context(), target, input.Message)
	c.JSON(http.StatusOK, envelope)
}
