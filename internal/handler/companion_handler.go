package handler

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/canvas-companion-api/internal/dto"
)

type companionAsker interface {
	Ask(ctx context.Context, message string) (string, error)
}

// CompanionHandler exposes the AI companion chat endpoint. Its wire contract
// uses plain shapes ({"response": ...} / {"error": ...}) rather than the
// envelope; existing dashboard frontends consume it directly.
type CompanionHandler struct {
	service companionAsker
}

// NewCompanionHandler constructs the handler.
func NewCompanionHandler(service companionAsker) *CompanionHandler {
	return &CompanionHandler{service: service}
}

// Chat godoc
// @Summary Ask the AI companion a question
// @Tags Companion
// @Accept json
// @Produce json
// @Param request body dto.CompanionRequest true "Question"
// @Success 200 {object} dto.CompanionResponse
// @Failure 400 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Router /api/ai-companion [post]
func (h *CompanionHandler) Chat(c *gin.Context) {
	var req dto.CompanionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No message provided"})
		return
	}

	message := strings.TrimSpace(req.Message)
	if message == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No message provided"})
		return
	}

	answer, err := h.service.Ask(c.Request.Context(), message)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, dto.CompanionResponse{Response: answer})
}
