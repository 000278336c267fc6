package handlers

import (
	"net/http"
	"os"

	"go-supermart-pos/internal/ai"

	"github.com/gin-gonic/gin"
)

type AskRequest struct {
	Message string `json:"message" binding:"required"`
}

// AskAI forwards a question to the shop assistant. Admin-only; the
// assistant has read-only tools.
func (h *Handler) AskAI(c *gin.Context) {
	var req AskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Message is required")
		return
	}

	apiKey := os.Getenv("GEMINI_API_KEY")
	if apiKey == "" {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Server missing Gemini API key"})
		return
	}

	agent := ai.NewAgent(h.Products, h.Dashboard)
	reply, err := agent.Run(c.Request.Context(), req.Message, apiKey)
	if err != nil {
		fail(c, err)
		return
	}

	respond(c, http.StatusOK, "OK", gin.H{"reply": reply})
}
