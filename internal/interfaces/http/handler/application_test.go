package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	activityapp "github.com/jobseeker/backend/internal/application/activity"
	"github.com/jobseeker/backend/internal/domain/activity"
	"github.com/jobseeker/backend/internal/domain/listing"
	"github.com/jobseeker/backend/internal/domain/shared"
	"github.com/jobseeker/backend/internal/interfaces/http/dto"
)

// Mock implementation for the application repository

type fakeApplicationRepository struct {
	applications map[string]*activity.Application
	returnErr    error
}

func newFakeApplicationRepository() *fakeApplicationRepository {
	return &fakeApplicationRepository{applications: make(map[string]*activity.Application)}
}

func (f *fakeApplicationRepository) Create(ctx context.Context, application *activity.Application) error {
	if f.returnErr != nil {
		return f.returnErr
	}
	f.applications[application.ID] = application
	return nil
}

func (f *fakeApplicationRepository) UpdateStatus(ctx context.Context, application *activity.Application) error {
	if f.returnErr != nil {
		return f.returnErr
	}
	if _, ok := f.applications[application.ID]; !ok {
		return shared.ErrNotFound
	}
	f.applications[application.ID] = application
	return nil
}

func (f *fakeApplicationRepository) Delete(ctx context.Context, id string) error {
	if f.returnErr != nil {
		return f.returnErr
	}
	if _, ok := f.applications[id]; !ok {
		return shared.ErrNotFound
	}
	delete(f.applications, id)
	return nil
}

func (f *fakeApplicationRepository) FindByID(ctx context.Context, id string) (*activity.Application, error) {
	if f.returnErr != nil {
		return nil, f.returnErr
	}
	if application, ok := f.applications[id]; ok {
		return application, nil
	}
	return nil, shared.ErrNotFound
}

func (f *fakeApplicationRepository) FindByUser(ctx context.Context, userID uuid.UUID) ([]*activity.Application, error) {
	if f.returnErr != nil {
		return nil, f.returnErr
	}
	var result []*activity.Application
	for _, application := range f.applications {
		if application.UserID == userID {
			result = append(result, application)
		}
	}
	return result, nil
}

func (f *fakeApplicationRepository) ExistsByUserAndJob(ctx context.Context, userID, jobID uuid.UUID) (bool, error) {
	if f.returnErr != nil {
		return false, f.returnErr
	}
	_, ok := f.applications[activity.CompositeID(userID, jobID)]
	return ok, nil
}

func (f *fakeApplicationRepository) CountByStatus(ctx context.Context, userID uuid.UUID) (map[activity.ApplicationStatus]int64, error) {
	if f.returnErr != nil {
		return nil, f.returnErr
	}
	counts := make(map[activity.ApplicationStatus]int64)
	for _, application := range f.applications {
		if application.UserID == userID {
			counts[application.Status]++
		}
	}
	return counts, nil
}

// Test helper functions

func setupApplicationTestHandler() (*ApplicationHandler, *fakeApplicationRepository, *fakeJobRepository) {
	applicationRepo := newFakeApplicationRepository()
	jobRepo := newFakeJobRepository()

	service := activityapp.NewApplicationService(applicationRepo, jobRepo, zap.NewNop())

	return NewApplicationHandler(service), applicationRepo, jobRepo
}

func createTestApplication(t *testing.T, userID uuid.UUID, job *listing.Job) *activity.Application {
	t.Helper()
	application, err := activity.NewApplication(userID, job.ID, job.Title, job.Company)
	require.NoError(t, err)
	return application
}

// Tests

func TestApplicationHandler_Apply_Success(t *testing.T) {
	handler, applicationRepo, jobRepo := setupApplicationTestHandler()

	userID := uuid.New()
	job := createTestJob(t, "Backend Engineer", "Acme", "Development", "LKR 200,000")
	jobRepo.add(job)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodPost, "/jobs/"+job.ID.String()+"/apply", nil)
	c.Params = gin.Params{{Key: "id", Value: job.ID.String()}}
	setJWTContext(c, userID)

	handler.Apply(c)

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Len(t, applicationRepo.applications, 1)

	var resp dto.Response
	err := json.Unmarshal(w.Body.Bytes(), &resp)
	require.NoError(t, err)

	data := resp.Data.(map[string]interface{})
	assert.Equal(t, "pending", data["status"])
	assert.Equal(t, "Backend Engineer", data["job_title"])
}

func TestApplicationHandler_Apply_AlreadyApplied(t *testing.T) {
	handler, applicationRepo, jobRepo := setupApplicationTestHandler()

	userID := uuid.New()
	job := createTestJob(t, "Backend Engineer", "Acme", "Development", "LKR 200,000")
	jobRepo.add(job)

	existing := createTestApplication(t, userID, job)
	applicationRepo.applications[existing.ID] = existing

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodPost, "/jobs/"+job.ID.String()+"/apply", nil)
	c.Params = gin.Params{{Key: "id", Value: job.ID.String()}}
	setJWTContext(c, userID)

	handler.Apply(c)

	assert.Equal(t, http.StatusConflict, w.Code)

	var resp dto.Response
	err := json.Unmarshal(w.Body.Bytes(), &resp)
	require.NoError(t, err)
	assert.Equal(t, dto.ErrCodeAlreadyApplied, resp.Error.Code)
}

func TestApplicationHandler_Apply_JobNotFound(t *testing.T) {
	handler, _, _ := setupApplicationTestHandler()

	jobID := uuid.New()

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodPost, "/jobs/"+jobID.String()+"/apply", nil)
	c.Params = gin.Params{{Key: "id", Value: jobID.String()}}
	setJWTContext(c, uuid.New())

	handler.Apply(c)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestApplicationHandler_Apply_Unauthenticated(t *testing.T) {
	handler, _, _ := setupApplicationTestHandler()

	jobID := uuid.New()

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodPost, "/jobs/"+jobID.String()+"/apply", nil)
	c.Params = gin.Params{{Key: "id", Value: jobID.String()}}

	handler.Apply(c)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestApplicationHandler_Withdraw_Success(t *testing.T) {
	handler, applicationRepo, jobRepo := setupApplicationTestHandler()

	userID := uuid.New()
	job := createTestJob(t, "Backend Engineer", "Acme", "Development", "LKR 200,000")
	jobRepo.add(job)

	existing := createTestApplication(t, userID, job)
	applicationRepo.applications[existing.ID] = existing

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodDelete, "/jobs/"+job.ID.String()+"/apply", nil)
	c.Params = gin.Params{{Key: "id", Value: job.ID.String()}}
	setJWTContext(c, userID)

	handler.Withdraw(c)

	assert.Equal(t, http.StatusNoContent, c.Writer.Status())
	assert.Empty(t, applicationRepo.applications)
}

func TestApplicationHandler_Withdraw_NotFound(t *testing.T) {
	handler, _, _ := setupApplicationTestHandler()

	jobID := uuid.New()

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodDelete, "/jobs/"+jobID.String()+"/apply", nil)
	c.Params = gin.Params{{Key: "id", Value: jobID.String()}}
	setJWTContext(c, uuid.New())

	handler.Withdraw(c)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestApplicationHandler_ListMine_Success(t *testing.T) {
	handler, applicationRepo, jobRepo := setupApplicationTestHandler()

	userID := uuid.New()
	for _, title := range []string{"Backend Engineer", "Platform Engineer"} {
		job := createTestJob(t, title, "Acme", "Development", "LKR 200,000")
		jobRepo.add(job)
		application := createTestApplication(t, userID, job)
		applicationRepo.applications[application.ID] = application
	}

	// Someone else's application stays invisible
	otherJob := createTestJob(t, "Product Designer", "Initech", "Design", "LKR 150,000")
	jobRepo.add(otherJob)
	other := createTestApplication(t, uuid.New(), otherJob)
	applicationRepo.applications[other.ID] = other

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodGet, "/applications", nil)
	setJWTContext(c, userID)

	handler.ListMine(c)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp dto.Response
	err := json.Unmarshal(w.Body.Bytes(), &resp)
	require.NoError(t, err)
	items := resp.Data.([]interface{})
	assert.Len(t, items, 2)
}

func TestApplicationHandler_HasApplied(t *testing.T) {
	handler, applicationRepo, jobRepo := setupApplicationTestHandler()

	userID := uuid.New()
	job := createTestJob(t, "Backend Engineer", "Acme", "Development", "LKR 200,000")
	jobRepo.add(job)

	existing := createTestApplication(t, userID, job)
	applicationRepo.applications[existing.ID] = existing

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodGet, "/jobs/"+job.ID.String()+"/applied", nil)
	c.Params = gin.Params{{Key: "id", Value: job.ID.String()}}
	setJWTContext(c, userID)

	handler.HasApplied(c)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp dto.Response
	err := json.Unmarshal(w.Body.Bytes(), &resp)
	require.NoError(t, err)
	data := resp.Data.(map[string]interface{})
	assert.True(t, data["applied"].(bool))
}

func TestApplicationHandler_Stats_Success(t *testing.T) {
	handler, applicationRepo, jobRepo := setupApplicationTestHandler()

	userID := uuid.New()
	titles := []string{"Backend Engineer", "Platform Engineer", "API Engineer"}
	for i, title := range titles {
		job := createTestJob(t, title, "Acme", "Development", "LKR 200,000")
		jobRepo.add(job)
		application := createTestApplication(t, userID, job)
		if i > 0 {
			require.NoError(t, application.SetStatus(activity.StatusReviewing))
		}
		applicationRepo.applications[application.ID] = application
	}

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodGet, "/applications/stats", nil)
	setJWTContext(c, userID)

	handler.Stats(c)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp dto.Response
	err := json.Unmarshal(w.Body.Bytes(), &resp)
	require.NoError(t, err)

	data := resp.Data.(map[string]interface{})
	assert.Equal(t, float64(3), data["total"])
	byStatus := data["by_status"].(map[string]interface{})
	assert.Equal(t, float64(1), byStatus["pending"])
	assert.Equal(t, float64(2), byStatus["reviewing"])
}

func TestApplicationHandler_UpdateStatus_Success(t *testing.T) {
	handler, applicationRepo, jobRepo := setupApplicationTestHandler()

	userID := uuid.New()
	job := createTestJob(t, "Backend Engineer", "Acme", "Development", "LKR 200,000")
	jobRepo.add(job)

	existing := createTestApplication(t, userID, job)
	applicationRepo.applications[existing.ID] = existing

	body, _ := json.Marshal(UpdateApplicationStatusRequest{Status: "reviewing"})

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodPut, "/applications/"+existing.ID+"/status", bytes.NewBuffer(body))
	c.Request.Header.Set("Content-Type", "application/json")
	c.Params = gin.Params{{Key: "id", Value: existing.ID}}

	handler.UpdateStatus(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, activity.StatusReviewing, applicationRepo.applications[existing.ID].Status)
}

func TestApplicationHandler_UpdateStatus_BackwardsMove(t *testing.T) {
	handler, applicationRepo, jobRepo := setupApplicationTestHandler()

	userID := uuid.New()
	job := createTestJob(t, "Backend Engineer", "Acme", "Development", "LKR 200,000")
	jobRepo.add(job)

	existing := createTestApplication(t, userID, job)
	require.NoError(t, existing.SetStatus(activity.StatusInterviewing))
	applicationRepo.applications[existing.ID] = existing

	body, _ := json.Marshal(UpdateApplicationStatusRequest{Status: "pending"})

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodPut, "/applications/"+existing.ID+"/status", bytes.NewBuffer(body))
	c.Request.Header.Set("Content-Type", "application/json")
	c.Params = gin.Params{{Key: "id", Value: existing.ID}}

	handler.UpdateStatus(c)

	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Equal(t, activity.StatusInterviewing, applicationRepo.applications[existing.ID].Status)
}

func TestApplicationHandler_UpdateStatus_UnknownStatus(t *testing.T) {
	handler, applicationRepo, jobRepo := setupApplicationTestHandler()

	userID := uuid.New()
	job := createTestJob(t, "Backend Engineer", "Acme", "Development", "LKR 200,000")
	jobRepo.add(job)

	existing := createTestApplication(t, userID, job)
	applicationRepo.applications[existing.ID] = existing

	body, _ := json.Marshal(UpdateApplicationStatusRequest{Status: "shortlisted"})

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodPut, "/applications/"+existing.ID+"/status", bytes.NewBuffer(body))
	c.Request.Header.Set("Content-Type", "application/json")
	c.Params = gin.Params{{Key: "id", Value: existing.ID}}

	handler.UpdateStatus(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}
