package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	apierrors "github.com/takamaro111/construction-management-app/internal/errors"
	"github.com/takamaro111/construction-management-app/internal/middleware"
	"github.com/takamaro111/construction-management-app/internal/services"
)

// DashboardHandler serves the dashboard aggregation endpoint.
type DashboardHandler struct {
	dashboardService *services.DashboardService
}

// NewDashboardHandler creates a new DashboardHandler.
func NewDashboardHandler(dashboardService *services.DashboardService) *DashboardHandler {
	return &DashboardHandler{
		dashboardService: dashboardService,
	}
}

// Stats returns the caller's company totals: projects, active projects,
// members, photos, documents and schedules starting today.
func (h *DashboardHandler) Stats(c *gin.Context) {
	user, _ := middleware.GetCurrentUser(c)

	counts, err := h.dashboardService.Stats(user.CompanyID, time.Now())
	if err != nil {
		apierrors.InternalError(c, "Failed to load dashboard stats")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"projects":        counts.Projects,
		"active_projects": counts.ActiveProjects,
		"members":         counts.Members,
		"photos":          counts.Photos,
		"documents":       counts.Documents,
		"today_schedules": counts.TodaySchedules,
	})
}
