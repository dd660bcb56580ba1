package handler

import (
	"github.com/gin-gonic/gin"

	appidentity "github.com/jobseeker/backend/internal/application/identity"
)

// UserHandler handles profile HTTP requests
type UserHandler struct {
	BaseHandler
	userService       *appidentity.UserService
	preferenceService *appidentity.PreferenceService
}

// NewUserHandler creates a new user handler
func NewUserHandler(userService *appidentity.UserService, preferenceService *appidentity.PreferenceService) *UserHandler {
	return &UserHandler{
		userService:       userService,
		preferenceService: preferenceService,
	}
}

// UpdateProfileRequest represents a profile update request
type UpdateProfileRequest struct {
	Name  string `json:"name" binding:"required,min=1,max=100"`
	Phone string `json:"phone" binding:"omitempty,max=30"`
}

// SkillRequest represents an add or remove skill request
type SkillRequest struct {
	Skill string `json:"skill" binding:"required,min=1,max=100"`
}

// ChangePasswordRequest represents a password change request
type ChangePasswordRequest struct {
	OldPassword string `json:"old_password" binding:"required"`
	NewPassword string `json:"new_password" binding:"required,min=6,max=128"`
}

// SetThemeRequest represents a theme preference update
type SetThemeRequest struct {
	Theme string `json:"theme" binding:"required"`
}

// GetProfile godoc
// @Summary      Get my profile
// @Tags         profile
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} dto.Response{data=identity.UserInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /profile [get]
func (h *UserHandler) GetProfile(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	profile, err := h.userService.GetProfile(c.Request.Context(), userID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, profile)
}

// UpdateProfile godoc
// @Summary      Update my profile
// @Tags         profile
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body UpdateProfileRequest true "Profile fields"
// @Success      200 {object} dto.Response{data=identity.UserInfo}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /profile [put]
func (h *UserHandler) UpdateProfile(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var req UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body")
		return
	}

	profile, err := h.userService.UpdateProfile(c.Request.Context(), appidentity.UpdateProfileInput{
		UserID: userID,
		Name:   req.Name,
		Phone:  req.Phone,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, profile)
}

// AddSkill godoc
// @Summary      Add a skill to my profile
// @Tags         profile
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body SkillRequest true "Skill name"
// @Success      200 {object} dto.Response{data=identity.UserInfo}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /profile/skills [post]
func (h *UserHandler) AddSkill(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var req SkillRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body")
		return
	}

	profile, err := h.userService.AddSkill(c.Request.Context(), userID, req.Skill)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, profile)
}

// RemoveSkill godoc
// @Summary      Remove a skill from my profile
// @Tags         profile
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body SkillRequest true "Skill name"
// @Success      200 {object} dto.Response{data=identity.UserInfo}
// @Router       /profile/skills [delete]
func (h *UserHandler) RemoveSkill(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var req SkillRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body")
		return
	}

	profile, err := h.userService.RemoveSkill(c.Request.Context(), userID, req.Skill)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, profile)
}

// ChangePassword godoc
// @Summary      Change my password
// @Tags         profile
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body ChangePasswordRequest true "Old and new passwords"
// @Success      204 "No Content"
// @Failure      401 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /profile/password [put]
func (h *UserHandler) ChangePassword(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var req ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body")
		return
	}

	if err := h.userService.ChangePassword(c.Request.Context(), appidentity.ChangePasswordInput{
		UserID:      userID,
		OldPassword: req.OldPassword,
		NewPassword: req.NewPassword,
	}); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}

// DeleteAccount godoc
// @Summary      Delete my account
// @Tags         profile
// @Produce      json
// @Security     BearerAuth
// @Success      204 "No Content"
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /profile [delete]
func (h *UserHandler) DeleteAccount(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	if err := h.userService.DeleteAccount(c.Request.Context(), userID); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}

// GetTheme godoc
// @Summary      Get my theme preference
// @Tags         preferences
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} dto.Response
// @Router       /preferences/theme [get]
func (h *UserHandler) GetTheme(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	theme := h.preferenceService.GetTheme(c.Request.Context(), userID)
	h.Success(c, gin.H{"theme": theme})
}

// SetTheme godoc
// @Summary      Set my theme preference
// @Tags         preferences
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body SetThemeRequest true "Theme name, light or dark"
// @Success      200 {object} dto.Response
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /preferences/theme [put]
func (h *UserHandler) SetTheme(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var req SetThemeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body")
		return
	}

	theme, err := h.preferenceService.SetTheme(c.Request.Context(), userID, req.Theme)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, gin.H{"theme": theme})
}

// RegisterRoutes registers profile and preference routes
func (h *UserHandler) RegisterRoutes(rg *gin.RouterGroup) {
	profile := rg.Group("/profile")
	{
		profile.GET("", h.GetProfile)
		profile.PUT("", h.UpdateProfile)
		profile.DELETE("", h.DeleteAccount)
		profile.POST("/skills", h.AddSkill)
		profile.DELETE("/skills", h.RemoveSkill)
		profile.PUT("/password", h.ChangePassword)
	}

	preferences := rg.Group("/preferences")
	{
		preferences.GET("/theme", h.GetTheme)
		preferences.PUT("/theme", h.SetTheme)
	}
}
