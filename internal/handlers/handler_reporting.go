package handlers

import (
	"net/http"

	portssvc "github.com/budgetdash/budget_dash_app/internal/core/ports/services"
	"github.com/budgetdash/budget_dash_app/internal/dto"
	"github.com/budgetdash/budget_dash_app/internal/middleware"
	"github.com/gin-gonic/gin"
)

// reportingHandler serves the dashboard aggregates and the CSV export.
type reportingHandler struct {
	reportingService portssvc.ReportingSvcFacade
}

func newReportingHandler(rs portssvc.ReportingSvcFacade) *reportingHandler {
	return &reportingHandler{
		reportingService: rs,
	}
}

// registerReportingRoutes registers the reporting routes.
func registerReportingRoutes(rg *gin.RouterGroup, reportingService portssvc.ReportingSvcFacade) {
	h := newReportingHandler(reportingService)

	rg.GET("/dashboard", h.dashboard)
	rg.GET("/projects/:projectID/export", h.exportCSV) // Any member
}

// dashboard godoc
// @Summary Dashboard aggregates
// @Description Project count, active budget, total and current-month spend over the projects visible to the caller. Computed on demand.
// @Tags reporting
// @Produce  json
// @Success 200 {object} dto.DashboardStatsResponse
// @Security BearerAuth
// @Router /dashboard [get]
func (h *reportingHandler) dashboard(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	actor, ok := requireActor(c)
	if !ok {
		return
	}

	stats, err := h.reportingService.DashboardStats(c.Request.Context(), actor)
	if err != nil {
		respondWithServiceError(c, logger, err, "Failed to compute dashboard stats")
		return
	}

	c.JSON(http.StatusOK, dto.ToDashboardStatsResponse(stats))
}

// exportCSV godoc
// @Summary Export a project's ledger as CSV
// @Description Streams the full ledger, date descending, as a CSV attachment. Membership required.
// @Tags reporting
// @Produce  text/csv
// @Param   projectID path string true "Project ID"
// @Success 200 {string} string "CSV document"
// @Failure 403 {object} ErrorResponse "Not a member"
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /projects/{projectID}/export [get]
func (h *reportingHandler) exportCSV(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	actor, ok := requireActor(c)
	if !ok {
		return
	}

	csvBytes, err := h.reportingService.ExportTransactionsCSV(c.Request.Context(), actor, c.Param("projectID"))
	if err != nil {
		respondWithServiceError(c, logger, err, "Failed to export transactions")
		return
	}

	c.Header("Content-Disposition", `attachment; filename="transactions.csv"`)
	c.Data(http.StatusOK, "text/csv", csvBytes)
}
