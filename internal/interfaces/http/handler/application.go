package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/jobseeker/backend/internal/application/activity"
)

// ApplicationHandler handles job application HTTP requests
type ApplicationHandler struct {
	BaseHandler
	applicationService *activity.ApplicationService
}

// NewApplicationHandler creates a new application handler
func NewApplicationHandler(applicationService *activity.ApplicationService) *ApplicationHandler {
	return &ApplicationHandler{applicationService: applicationService}
}

// UpdateApplicationStatusRequest represents a status transition request
type UpdateApplicationStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// Apply godoc
// @Summary      Apply to a job
// @Description  Create an application for the authenticated user
// @Tags         applications
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Job ID"
// @Success      201 {object} dto.Response{data=activity.ApplicationView}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      409 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /jobs/{id}/apply [post]
func (h *ApplicationHandler) Apply(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	jobID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid job ID")
		return
	}

	application, err := h.applicationService.Apply(c.Request.Context(), userID, jobID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, application)
}

// Withdraw godoc
// @Summary      Withdraw an application
// @Tags         applications
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Job ID"
// @Success      204 "No Content"
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /jobs/{id}/apply [delete]
func (h *ApplicationHandler) Withdraw(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	jobID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid job ID")
		return
	}

	if err := h.applicationService.Withdraw(c.Request.Context(), userID, jobID); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}

// ListMine godoc
// @Summary      List my applications
// @Description  Return every application the authenticated user has submitted, newest first
// @Tags         applications
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} dto.Response{data=[]activity.ApplicationView}
// @Router       /applications [get]
func (h *ApplicationHandler) ListMine(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	applications, err := h.applicationService.ListMine(c.Request.Context(), userID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, applications)
}

// HasApplied godoc
// @Summary      Check whether I have applied
// @Tags         applications
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Job ID"
// @Success      200 {object} dto.Response{data=handler.SavedData}
// @Router       /jobs/{id}/applied [get]
func (h *ApplicationHandler) HasApplied(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	jobID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid job ID")
		return
	}

	applied, err := h.applicationService.HasApplied(c.Request.Context(), userID, jobID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, gin.H{"applied": applied})
}

// Stats godoc
// @Summary      Application statistics
// @Description  Return per-status application counts for the authenticated user
// @Tags         applications
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} dto.Response{data=activity.ApplicationStats}
// @Router       /applications/stats [get]
func (h *ApplicationHandler) Stats(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	stats, err := h.applicationService.Stats(c.Request.Context(), userID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, stats)
}

// UpdateStatus godoc
// @Summary      Update an application's status
// @Description  Advance an application along the review pipeline
// @Tags         applications
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Application ID"
// @Param        request body UpdateApplicationStatusRequest true "Target status"
// @Success      200 {object} dto.Response{data=activity.ApplicationView}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      422 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /applications/{id}/status [put]
func (h *ApplicationHandler) UpdateStatus(c *gin.Context) {
	var req UpdateApplicationStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body")
		return
	}

	application, err := h.applicationService.UpdateStatus(c.Request.Context(), c.Param("id"), req.Status)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, application)
}

// RegisterRoutes registers application routes
func (h *ApplicationHandler) RegisterRoutes(rg *gin.RouterGroup) {
	jobs := rg.Group("/jobs")
	{
		jobs.POST(":id/apply", h.Apply)
		jobs.DELETE(":id/apply", h.Withdraw)
		jobs.GET(":id/applied", h.HasApplied)
	}

	applications := rg.Group("/applications")
	{
		applications.GET("", h.ListMine)
		applications.GET("/stats", h.Stats)
		applications.PUT(":id/status", h.UpdateStatus)
	}
}
