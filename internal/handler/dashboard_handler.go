package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/canvas-companion-api/internal/dto"
	"github.com/noah-isme/canvas-companion-api/pkg/response"
)

type dashboardBuilder interface {
	Build(ctx context.Context) (*dto.DashboardResponse, error)
}

// DashboardHandler serves the rendered dashboard page and its JSON twin.
type DashboardHandler struct {
	service dashboardBuilder
}

// NewDashboardHandler constructs the handler.
func NewDashboardHandler(service dashboardBuilder) *DashboardHandler {
	return &DashboardHandler{service: service}
}

// Page godoc
// @Summary Rendered dashboard view
// @Tags Dashboard
// @Produce html
// @Success 200 {string} string "dashboard page"
// @Router / [get]
func (h *DashboardHandler) Page(c *gin.Context) {
	view, err := h.service.Build(c.Request.Context())
	if err != nil {
		// No stack trace leaves the process; the error view only carries the
		// error's string form.
		c.HTML(http.StatusInternalServerError, "error.html", gin.H{"error": err.Error()})
		return
	}

	c.HTML(http.StatusOK, "dashboard.html", gin.H{
		"courses":     view.Courses,
		"homework":    view.Homework,
		"assignments": view.Assignments,
		"grades":      view.Grades,
	})
}

// Data godoc
// @Summary Dashboard view model as JSON
// @Tags Dashboard
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /api/dashboard [get]
func (h *DashboardHandler) Data(c *gin.Context) {
	start := time.Now()
	view, err := h.service.Build(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	meta := map[string]interface{}{"processing_time_ms": time.Since(start).Milliseconds()}
	response.JSON(c, http.StatusOK, view, meta)
}
