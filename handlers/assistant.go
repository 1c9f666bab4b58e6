package handlers

import (
	"net/http"

	"mediconnect/services/assistant"
	"mediconnect/utils"

	"github.com/gin-gonic/gin"
)

// AssistantChatHandler handles POST /api/assistant/chat.
func AssistantChatHandler(svc assistant.AssistantService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req struct {
			Message string `json:"message" binding:"required"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			utils.JSONError(c, http.StatusBadRequest, "message is required", err.Error())
			return
		}
		reply, err := svc.Chat(c.Request.Context(), req.Message)
		if err != nil {
			respondServiceError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"reply": reply})
	}
}
