package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type assistantRequest struct {
	Prompt string `json:"prompt"`
}

// AskAssistant обработчик для POST /ai-assistant.
func (h *Handler) AskAssistant(c *gin.Context) {
	var req assistantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Укажите prompt")
		return
	}
	reply, err := h.Assistant.Ask(c.Request.Context(), req.Prompt)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"reply": reply})
}
