package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/budgetdash/budget_dash_app/internal/core/ports/services"
	"github.com/budgetdash/budget_dash_app/internal/dto"
	"github.com/budgetdash/budget_dash_app/internal/middleware"
	"github.com/gin-gonic/gin"
)

// projectHandler handles HTTP requests related to projects and their members.
type projectHandler struct {
	projectService portssvc.ProjectSvcFacade
}

func newProjectHandler(ps portssvc.ProjectSvcFacade) *projectHandler {
	return &projectHandler{
		projectService: ps,
	}
}

// registerProjectRoutes registers all project-related routes.
func registerProjectRoutes(rg *gin.RouterGroup, projectService portssvc.ProjectSvcFacade) {
	h := newProjectHandler(projectService)

	projects := rg.Group("/projects")
	{
		projects.POST("", h.createProject)
		projects.GET("", h.listProjects)
		projects.GET("/:projectID", h.getProjectDetail)
		projects.PUT("/:projectID", h.updateProject)    // Owner or admin
		projects.DELETE("/:projectID", h.deleteProject) // Owner or admin, name confirmation

		projects.POST("/:projectID/members", h.addMember)              // Owner or admin
		projects.DELETE("/:projectID/members/:userID", h.removeMember) // Owner or admin
	}
}

// createProject godoc
// @Summary Create a project
// @Description Creates a project owned by the caller, with a fresh invite code and the caller as first member
// @Tags projects
// @Accept  json
// @Produce  json
// @Param   project body dto.CreateProjectRequest true "Project details"
// @Success 201 {object} dto.ProjectResponse
// @Failure 400 {object} ErrorResponse
// @Security BearerAuth
// @Router /projects [post]
func (h *projectHandler) createProject(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	actor, ok := requireActor(c)
	if !ok {
		return
	}

	var req dto.CreateProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body: " + err.Error()})
		return
	}

	project, err := h.projectService.CreateProject(c.Request.Context(), actor, req)
	if err != nil {
		respondWithServiceError(c, logger, err, "Failed to create project")
		return
	}

	logger.Info("Project created", slog.String("project_id", project.ProjectID))
	c.JSON(http.StatusCreated, dto.ToProjectResponse(project))
}

// listProjects godoc
// @Summary List visible projects
// @Description All projects for an admin, member-of projects for everyone else. Newest first.
// @Tags projects
// @Produce  json
// @Success 200 {object} dto.ListProjectsResponse
// @Security BearerAuth
// @Router /projects [get]
func (h *projectHandler) listProjects(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	actor, ok := requireActor(c)
	if !ok {
		return
	}

	projects, err := h.projectService.ListProjects(c.Request.Context(), actor)
	if err != nil {
		respondWithServiceError(c, logger, err, "Failed to list projects")
		return
	}

	c.JSON(http.StatusOK, dto.ToListProjectsResponse(projects))
}

// getProjectDetail godoc
// @Summary Get a project with members, ledger and budget summary
// @Tags projects
// @Produce  json
// @Param   projectID path string true "Project ID"
// @Success 200 {object} dto.ProjectDetailResponse
// @Failure 403 {object} ErrorResponse "Not a member"
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /projects/{projectID} [get]
func (h *projectHandler) getProjectDetail(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	actor, ok := requireActor(c)
	if !ok {
		return
	}

	detail, err := h.projectService.GetProjectDetail(c.Request.Context(), actor, c.Param("projectID"))
	if err != nil {
		respondWithServiceError(c, logger, err, "Failed to fetch project")
		return
	}

	c.JSON(http.StatusOK, dto.ToProjectDetailResponse(detail))
}

// updateProject godoc
// @Summary Update a project
// @Description Owner or admin only. The invite code is never changed by an update.
// @Tags projects
// @Accept  json
// @Produce  json
// @Param   projectID path string true "Project ID"
// @Param   project body dto.UpdateProjectRequest true "Fields to update"
// @Success 200 {object} dto.ProjectResponse
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /projects/{projectID} [put]
func (h *projectHandler) updateProject(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	actor, ok := requireActor(c)
	if !ok {
		return
	}

	var req dto.UpdateProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body: " + err.Error()})
		return
	}

	project, err := h.projectService.UpdateProject(c.Request.Context(), actor, c.Param("projectID"), req)
	if err != nil {
		respondWithServiceError(c, logger, err, "Failed to update project")
		return
	}

	c.JSON(http.StatusOK, dto.ToProjectResponse(project))
}

// deleteProject godoc
// @Summary Delete a project
// @Description Owner or admin only. The confirmation name must exactly match the project name. Transactions and memberships are removed with it.
// @Tags projects
// @Accept  json
// @Param   projectID path string true "Project ID"
// @Param   confirmation body dto.DeleteProjectRequest true "Name confirmation"
// @Success 204 "Deleted"
// @Failure 400 {object} ErrorResponse "Confirmation name mismatch"
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /projects/{projectID} [delete]
func (h *projectHandler) deleteProject(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	actor, ok := requireActor(c)
	if !ok {
		return
	}

	var req dto.DeleteProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Confirmation name is required"})
		return
	}

	projectID := c.Param("projectID")
	if err := h.projectService.DeleteProject(c.Request.Context(), actor, projectID, req.ConfirmName); err != nil {
		respondWithServiceError(c, logger, err, "Failed to delete project")
		return
	}

	logger.Info("Project deleted", slog.String("project_id", projectID))
	c.Status(http.StatusNoContent)
}

// addMember godoc
// @Summary Add a member by email
// @Description Owner or admin only. The email must belong to a registered user.
// @Tags projects
// @Accept  json
// @Param   projectID path string true "Project ID"
// @Param   member body dto.AddMemberRequest true "Member email"
// @Success 204 "Added"
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse "No registered user with that email"
// @Failure 409 {object} ErrorResponse "Already a member"
// @Security BearerAuth
// @Router /projects/{projectID}/members [post]
func (h *projectHandler) addMember(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	actor, ok := requireActor(c)
	if !ok {
		return
	}

	var req dto.AddMemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "A valid email is required"})
		return
	}

	if err := h.projectService.AddMember(c.Request.Context(), actor, c.Param("projectID"), req.Email); err != nil {
		respondWithServiceError(c, logger, err, "Failed to add member")
		return
	}

	c.Status(http.StatusNoContent)
}

// removeMember godoc
// @Summary Remove a member
// @Description Owner or admin only. The project owner can never be removed.
// @Tags projects
// @Param   projectID path string true "Project ID"
// @Param   userID path string true "User ID of the member"
// @Success 204 "Removed"
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /projects/{projectID}/members/{userID} [delete]
func (h *projectHandler) removeMember(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	actor, ok := requireActor(c)
	if !ok {
		return
	}

	if err := h.projectService.RemoveMember(c.Request.Context(), actor, c.Param("projectID"), c.Param("userID")); err != nil {
		respondWithServiceError(c, logger, err, "Failed to remove member")
		return
	}

	c.Status(http.StatusNoContent)
}
