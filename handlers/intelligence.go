package handlers

import (
	"net/http"

	"localconnect/models"
	ai "localconnect/services/intelligence"

	"github.com/gin-gonic/gin"
)

// AIHandler serves the chat assistant.
type AIHandler struct {
	Chat ai.ChatService
}

func NewAIHandler(chat ai.ChatService) *AIHandler {
	return &AIHandler{Chat: chat}
}

// ChatHandler handles POST /api/ai/chat.
func (h *AIHandler) ChatHandler(c *gin.Context) {
	if h.Chat == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "chat assistant is not configured"})
		return
	}
	var req models.ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
		return
	}
	resp, err := h.Chat.Chat(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// ResetChatHandler handles DELETE /api/ai/chat/:sessionId.
func (h *AIHandler) ResetChatHandler(c *gin.Context) {
	if h.Chat == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "chat assistant is not configured"})
		return
	}
	if err := h.Chat.Reset(c.Request.Context(), c.Param("sessionId")); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
