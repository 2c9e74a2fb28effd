package handlers

import (
	"log/slog"
	"net/http"
	"regexp"

	portssvc "github.com/budgetdash/budget_dash_app/internal/core/ports/services"
	"github.com/budgetdash/budget_dash_app/internal/dto"
	"github.com/budgetdash/budget_dash_app/internal/middleware"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

var inviteCodePattern = regexp.MustCompile(`^[A-Za-z0-9]{6,8}$`)

// The "invitecode" binding tag checks the shape of a submitted code before
// it reaches the service. Case is normalized there, not here.
func init() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		v.RegisterValidation("invitecode", func(fl validator.FieldLevel) bool {
			return inviteCodePattern.MatchString(fl.Field().String())
		})
	}
}

// accessRequestHandler handles the invite-code join workflow.
type accessRequestHandler struct {
	accessRequestService portssvc.AccessRequestSvcFacade
}

func newAccessRequestHandler(ars portssvc.AccessRequestSvcFacade) *accessRequestHandler {
	return &accessRequestHandler{
		accessRequestService: ars,
	}
}

// registerAccessRequestRoutes registers all access-request routes.
func registerAccessRequestRoutes(rg *gin.RouterGroup, accessRequestService portssvc.AccessRequestSvcFacade) {
	h := newAccessRequestHandler(accessRequestService)

	requests := rg.Group("/access-requests")
	{
		requests.POST("", h.requestAccess)
		requests.GET("", h.listPending)                 // Admin or project owner
		requests.POST("/:requestID/resolve", h.resolve) // Admin or project owner
	}
}

// requestAccess godoc
// @Summary Request to join a project by invite code
// @Description Creates a pending request for the project matching the code. The code is matched case-insensitively.
// @Tags access-requests
// @Accept  json
// @Produce  json
// @Param   request body dto.RequestAccessRequest true "Invite code"
// @Success 201 {object} dto.AccessRequestResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse "No project matches that invite code"
// @Failure 409 {object} ErrorResponse "Already a member or a request already exists"
// @Security BearerAuth
// @Router /access-requests [post]
func (h *accessRequestHandler) requestAccess(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	actor, ok := requireActor(c)
	if !ok {
		return
	}

	var req dto.RequestAccessRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "A valid invite code is required"})
		return
	}

	request, err := h.accessRequestService.RequestAccess(c.Request.Context(), actor, req.InviteCode)
	if err != nil {
		respondWithServiceError(c, logger, err, "Failed to request access")
		return
	}

	logger.Info("Access requested", slog.String("request_id", request.RequestID), slog.String("project_id", request.ProjectID))
	c.JSON(http.StatusCreated, dto.ToAccessRequestResponse(request))
}

// listPending godoc
// @Summary List pending access requests
// @Description All pending requests for an admin, otherwise those of projects the caller owns. Newest first.
// @Tags access-requests
// @Produce  json
// @Success 200 {object} dto.ListAccessRequestsResponse
// @Security BearerAuth
// @Router /access-requests [get]
func (h *accessRequestHandler) listPending(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	actor, ok := requireActor(c)
	if !ok {
		return
	}

	requests, err := h.accessRequestService.ListPendingForActor(c.Request.Context(), actor)
	if err != nil {
		respondWithServiceError(c, logger, err, "Failed to list access requests")
		return
	}

	c.JSON(http.StatusOK, dto.ToListAccessRequestsResponse(requests))
}

// resolve godoc
// @Summary Approve or decline a pending access request
// @Description Project owner or admin only. Approval adds the requester to the membership in the same step as the status change; a request can only be resolved once.
// @Tags access-requests
// @Accept  json
// @Produce  json
// @Param   requestID path string true "Request ID"
// @Param   decision body dto.ResolveAccessRequestRequest true "Approve or decline"
// @Success 200 {object} dto.AccessRequestResponse
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse "Already resolved"
// @Security BearerAuth
// @Router /access-requests/{requestID}/resolve [post]
func (h *accessRequestHandler) resolve(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	actor, ok := requireActor(c)
	if !ok {
		return
	}

	var req dto.ResolveAccessRequestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "An approve decision is required"})
		return
	}

	request, err := h.accessRequestService.ResolveRequest(c.Request.Context(), actor, c.Param("requestID"), *req.Approve)
	if err != nil {
		respondWithServiceError(c, logger, err, "Failed to resolve access request")
		return
	}

	logger.Info("Access request resolved",
		slog.String("request_id", request.RequestID),
		slog.String("status", string(request.Status)),
	)
	c.JSON(http.StatusOK, dto.ToAccessRequestResponse(request))
}
