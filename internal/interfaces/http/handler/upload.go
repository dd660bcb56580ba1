package handler

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/jobseeker/backend/internal/application/attachment"
	appidentity "github.com/jobseeker/backend/internal/application/identity"
)

// UploadHandler handles resume and profile picture HTTP requests
type UploadHandler struct {
	BaseHandler
	attachmentService *attachment.Service
}

// NewUploadHandler creates a new upload handler
func NewUploadHandler(attachmentService *attachment.Service) *UploadHandler {
	return &UploadHandler{attachmentService: attachmentService}
}

// InitiateResumeUploadRequest represents a resume upload grant request
type InitiateResumeUploadRequest struct {
	FileName    string `json:"file_name" binding:"required,min=1,max=255"`
	ContentType string `json:"content_type" binding:"required"`
}

// ConfirmResumeUploadRequest represents a resume upload confirmation
type ConfirmResumeUploadRequest struct {
	FileName string `json:"file_name" binding:"required,min=1,max=255"`
}

// InitiateAvatarUploadRequest represents a profile picture upload grant request
type InitiateAvatarUploadRequest struct {
	ContentType string `json:"content_type" binding:"required"`
}

// DownloadURLResponse carries a presigned download URL
type DownloadURLResponse struct {
	DownloadURL string    `json:"download_url"`
	ExpiresAt   time.Time `json:"expires_at"`
}

// InitiateResumeUpload godoc
// @Summary      Request a resume upload URL
// @Description  Validate the file and return a presigned URL the client uploads to directly
// @Tags         uploads
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body InitiateResumeUploadRequest true "File name and content type"
// @Success      200 {object} dto.Response{data=attachment.UploadTicket}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /uploads/resume [post]
func (h *UploadHandler) InitiateResumeUpload(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var req InitiateResumeUploadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body")
		return
	}

	ticket, err := h.attachmentService.InitiateResumeUpload(c.Request.Context(), userID, req.FileName, req.ContentType)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, ticket)
}

// ConfirmResumeUpload godoc
// @Summary      Confirm a resume upload
// @Description  Verify the object landed in storage and attach it to the profile
// @Tags         uploads
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body ConfirmResumeUploadRequest true "Uploaded file name"
// @Success      200 {object} dto.Response{data=identity.UserInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /uploads/resume/confirm [post]
func (h *UploadHandler) ConfirmResumeUpload(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var req ConfirmResumeUploadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body")
		return
	}

	user, err := h.attachmentService.ConfirmResumeUpload(c.Request.Context(), userID, req.FileName)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, appidentity.NewUserInfo(user))
}

// DownloadResume godoc
// @Summary      Get a resume download URL
// @Tags         uploads
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} dto.Response{data=DownloadURLResponse}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /uploads/resume [get]
func (h *UploadHandler) DownloadResume(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	url, expiresAt, err := h.attachmentService.ResumeDownloadURL(c.Request.Context(), userID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, DownloadURLResponse{DownloadURL: url, ExpiresAt: expiresAt})
}

// DeleteResume godoc
// @Summary      Delete my resume
// @Tags         uploads
// @Produce      json
// @Security     BearerAuth
// @Success      204 "No Content"
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /uploads/resume [delete]
func (h *UploadHandler) DeleteResume(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	if err := h.attachmentService.DeleteResume(c.Request.Context(), userID); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}

// InitiateAvatarUpload godoc
// @Summary      Request a profile picture upload URL
// @Tags         uploads
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body InitiateAvatarUploadRequest true "Image content type"
// @Success      200 {object} dto.Response{data=attachment.UploadTicket}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /uploads/avatar [post]
func (h *UploadHandler) InitiateAvatarUpload(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var req InitiateAvatarUploadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body")
		return
	}

	ticket, err := h.attachmentService.InitiateAvatarUpload(c.Request.Context(), userID, req.ContentType)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, ticket)
}

// ConfirmAvatarUpload godoc
// @Summary      Confirm a profile picture upload
// @Tags         uploads
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} dto.Response{data=identity.UserInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /uploads/avatar/confirm [post]
func (h *UploadHandler) ConfirmAvatarUpload(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	user, err := h.attachmentService.ConfirmAvatarUpload(c.Request.Context(), userID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, appidentity.NewUserInfo(user))
}

// DownloadAvatar godoc
// @Summary      Get a profile picture download URL
// @Tags         uploads
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} dto.Response{data=DownloadURLResponse}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /uploads/avatar [get]
func (h *UploadHandler) DownloadAvatar(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	url, expiresAt, err := h.attachmentService.AvatarDownloadURL(c.Request.Context(), userID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, DownloadURLResponse{DownloadURL: url, ExpiresAt: expiresAt})
}

// RegisterRoutes registers upload routes
func (h *UploadHandler) RegisterRoutes(rg *gin.RouterGroup) {
	uploads := rg.Group("/uploads")
	{
		uploads.POST("/resume", h.InitiateResumeUpload)
		uploads.POST("/resume/confirm", h.ConfirmResumeUpload)
		uploads.GET("/resume", h.DownloadResume)
		uploads.DELETE("/resume", h.DeleteResume)
		uploads.POST("/avatar", h.InitiateAvatarUpload)
		uploads.POST("/avatar/confirm", h.ConfirmAvatarUpload)
		uploads.GET("/avatar", h.DownloadAvatar)
	}
}
