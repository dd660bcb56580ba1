package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/jobseeker/backend/internal/application/listing"
)

// JobHandler handles job listing HTTP requests
type JobHandler struct {
	BaseHandler
	listingService *listing.ListingService
	insightService *listing.SalaryInsightService
}

// NewJobHandler creates a new job handler
func NewJobHandler(listingService *listing.ListingService, insightService *listing.SalaryInsightService) *JobHandler {
	return &JobHandler{
		listingService: listingService,
		insightService: insightService,
	}
}

// ListJobsRequest represents the job listing query parameters
type ListJobsRequest struct {
	Search   string `form:"search"`
	Category string `form:"category"`
	Type     string `form:"type"`
	Level    string `form:"level"`
	Page     int    `form:"page" binding:"omitempty,min=1"`
	PageSize int    `form:"page_size" binding:"omitempty,min=1,max=100"`
}

// CreateJobRequest represents the job posting request body
type CreateJobRequest struct {
	Title            string   `json:"title" binding:"required,min=1,max=200"`
	Company          string   `json:"company" binding:"required,min=1,max=200"`
	Location         string   `json:"location" binding:"required,max=200"`
	Salary           string   `json:"salary" binding:"omitempty,max=200"`
	Description      string   `json:"description" binding:"required"`
	Category         string   `json:"category" binding:"required,max=100"`
	Type             string   `json:"type" binding:"omitempty,max=50"`
	Level            string   `json:"level" binding:"omitempty,max=50"`
	Requirements     []string `json:"requirements"`
	Responsibilities []string `json:"responsibilities"`
	Benefits         []string `json:"benefits"`
	CompanyLogo      string   `json:"company_logo" binding:"omitempty,url"`
}

// List godoc
// @Summary      List job listings
// @Description  Return one page of listings matching the search and selection filters
// @Tags         jobs
// @Produce      json
// @Param        search query string false "Keyword matched against title, company, location, description"
// @Param        category query string false "Category selection; All matches everything"
// @Param        type query string false "Job type selection"
// @Param        level query string false "Experience level selection"
// @Param        page query int false "Page number" default(1)
// @Param        page_size query int false "Page size" default(20)
// @Success      200 {object} dto.Response{data=[]listing.JobView}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /jobs [get]
func (h *JobHandler) List(c *gin.Context) {
	var req ListJobsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.BadRequest(c, "Invalid query parameters")
		return
	}

	result, err := h.listingService.List(c.Request.Context(), listing.ListQuery{
		Search:   req.Search,
		Category: req.Category,
		Type:     req.Type,
		Level:    req.Level,
		Page:     req.Page,
		PageSize: req.PageSize,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, result.Jobs, int64(result.Total), result.Page, result.PageSize)
}

// Get godoc
// @Summary      Get a job listing
// @Tags         jobs
// @Produce      json
// @Param        id path string true "Job ID"
// @Success      200 {object} dto.Response{data=listing.JobView}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /jobs/{id} [get]
func (h *JobHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid job ID")
		return
	}

	job, err := h.listingService.Get(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, job)
}

// Similar godoc
// @Summary      List similar jobs
// @Description  Return other listings from the same category, newest first
// @Tags         jobs
// @Produce      json
// @Param        id path string true "Job ID"
// @Param        limit query int false "Maximum results" default(5)
// @Success      200 {object} dto.Response{data=[]listing.JobView}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /jobs/{id}/similar [get]
func (h *JobHandler) Similar(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid job ID")
		return
	}

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "5"))

	similar, err := h.listingService.Similar(c.Request.Context(), id, limit)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, similar)
}

// Insight godoc
// @Summary      Salary insight for a listing
// @Description  Compare the listing's salary midpoint against the average of its category
// @Tags         jobs
// @Produce      json
// @Param        id path string true "Job ID"
// @Success      200 {object} dto.Response{data=listing.SalaryInsight}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      422 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /jobs/{id}/salary-insight [get]
func (h *JobHandler) Insight(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid job ID")
		return
	}

	insight, err := h.insightService.Insight(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, insight)
}

// Create godoc
// @Summary      Post a job listing
// @Tags         jobs
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body CreateJobRequest true "Listing details"
// @Success      201 {object} dto.Response{data=listing.JobView}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      409 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /jobs [post]
func (h *JobHandler) Create(c *gin.Context) {
	var req CreateJobRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body")
		return
	}

	job, err := h.listingService.Create(c.Request.Context(), listing.CreateJobInput{
		Title:            req.Title,
		Company:          req.Company,
		Location:         req.Location,
		Salary:           req.Salary,
		Description:      req.Description,
		Category:         req.Category,
		Type:             req.Type,
		Level:            req.Level,
		Requirements:     req.Requirements,
		Responsibilities: req.Responsibilities,
		Benefits:         req.Benefits,
		CompanyLogo:      req.CompanyLogo,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, job)
}

// Refresh godoc
// @Summary      Refresh the listing snapshot
// @Description  Discard the cached listing snapshot and fetch a fresh one
// @Tags         jobs
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} dto.Response
// @Router       /jobs/refresh [post]
func (h *JobHandler) Refresh(c *gin.Context) {
	snapshot, err := h.listingService.Refresh(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, gin.H{
		"generation": snapshot.Generation,
		"total":      snapshot.Total,
		"fetched_at": snapshot.FetchedAt,
	})
}

// RegisterRoutes registers job listing routes
func (h *JobHandler) RegisterRoutes(rg *gin.RouterGroup) {
	jobs := rg.Group("/jobs")
	{
		jobs.GET("", h.List)
		jobs.POST("", h.Create)
		jobs.POST("/refresh", h.Refresh)
		jobs.GET(":id", h.Get)
		jobs.GET(":id/similar", h.Similar)
		jobs.GET(":id/salary-insight", h.Insight)
	}
}
