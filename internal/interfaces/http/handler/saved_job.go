package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/jobseeker/backend/internal/application/activity"
)

// SavedJobHandler handles saved job HTTP requests
type SavedJobHandler struct {
	BaseHandler
	savedJobService *activity.SavedJobService
}

// NewSavedJobHandler creates a new saved job handler
func NewSavedJobHandler(savedJobService *activity.SavedJobService) *SavedJobHandler {
	return &SavedJobHandler{savedJobService: savedJobService}
}

// Toggle godoc
// @Summary      Toggle a saved job
// @Description  Save the listing if it is not saved, remove it otherwise
// @Tags         saved-jobs
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Job ID"
// @Success      200 {object} dto.Response{data=activity.ToggleResult}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /jobs/{id}/save [post]
func (h *SavedJobHandler) Toggle(c *gin.Context) {
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

	result, err := h.savedJobService.Toggle(c.Request.Context(), userID, jobID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, result)
}

// ListMine godoc
// @Summary      List my saved jobs
// @Tags         saved-jobs
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} dto.Response{data=[]activity.SavedJobView}
// @Router       /saved-jobs [get]
func (h *SavedJobHandler) ListMine(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	saved, err := h.savedJobService.ListMine(c.Request.Context(), userID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, saved)
}

// IsSaved godoc
// @Summary      Check whether a job is saved
// @Tags         saved-jobs
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Job ID"
// @Success      200 {object} dto.Response{data=handler.SavedData}
// @Router       /jobs/{id}/saved [get]
func (h *SavedJobHandler) IsSaved(c *gin.Context) {
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

	saved, err := h.savedJobService.IsSaved(c.Request.Context(), userID, jobID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, SavedData{Saved: saved})
}

// RegisterRoutes registers saved job routes
func (h *SavedJobHandler) RegisterRoutes(rg *gin.RouterGroup) {
	jobs := rg.Group("/jobs")
	{
		jobs.POST(":id/save", h.Toggle)
		jobs.GET(":id/saved", h.IsSaved)
	}

	saved := rg.Group("/saved-jobs")
	{
		saved.GET("", h.ListMine)
	}
}
