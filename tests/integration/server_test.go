package integration

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	activityapp "github.com/jobseeker/backend/internal/application/activity"
	"github.com/jobseeker/backend/internal/application/attachment"
	identityapp "github.com/jobseeker/backend/internal/application/identity"
	listingapp "github.com/jobseeker/backend/internal/application/listing"
	"github.com/jobseeker/backend/internal/infrastructure/auth"
	"github.com/jobseeker/backend/internal/infrastructure/cache"
	"github.com/jobseeker/backend/internal/infrastructure/config"
	"github.com/jobseeker/backend/internal/infrastructure/persistence"
	"github.com/jobseeker/backend/internal/infrastructure/storage"
	"github.com/jobseeker/backend/internal/interfaces/http/handler"
	"github.com/jobseeker/backend/internal/interfaces/http/middleware"
	"github.com/jobseeker/backend/internal/interfaces/http/router"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// testServer wires the full HTTP stack against a real database.
// Redis-backed pieces run on their in-memory implementations so the
// suite only needs the PostgreSQL container.
type testServer struct {
	engine     *gin.Engine
	jwtService *auth.JWTService
}

func newTestServer(t *testing.T, tdb *TestDB) *testServer {
	t.Helper()

	log := zap.NewNop()

	userRepo := persistence.NewGormUserRepository(tdb.DB)
	jobRepo := persistence.NewGormJobRepository(tdb.DB)
	applicationRepo := persistence.NewGormApplicationRepository(tdb.DB)
	savedJobRepo := persistence.NewGormSavedJobRepository(tdb.DB)

	listingCache := cache.NewInMemoryListingCache()
	preferenceStore := cache.NewInMemoryPreferenceStore()

	jwtService := auth.NewJWTService(config.JWTConfig{
		Secret:                 "integration-test-secret-0123456789",
		AccessTokenExpiration:  15 * time.Minute,
		RefreshTokenExpiration: 24 * time.Hour,
		Issuer:                 "jobseeker-test",
		MaxRefreshCount:        10,
	})
	blacklist := auth.NewInMemoryTokenBlacklist()

	authService := identityapp.NewAuthService(userRepo, jwtService, blacklist, log)
	userService := identityapp.NewUserService(userRepo, log)
	preferenceService := identityapp.NewPreferenceService(preferenceStore, log)
	listingService := listingapp.NewListingService(jobRepo, listingCache, log)
	insightService := listingapp.NewSalaryInsightService(jobRepo, log)
	applicationService := activityapp.NewApplicationService(applicationRepo, jobRepo, log)
	savedJobService := activityapp.NewSavedJobService(savedJobRepo, jobRepo, log)
	attachmentService := attachment.NewService(userRepo, storage.NewStubObjectStorage())

	middleware.SetupValidator()

	engine := gin.New()
	engine.Use(middleware.RequestID())

	r := router.NewRouter(engine, router.WithAPIVersion("v1"))
	r.Use(middleware.JWTAuthMiddlewareWithConfig(middleware.JWTMiddlewareConfig{
		JWTService:     jwtService,
		TokenBlacklist: blacklist,
		SkipPaths: []string{
			"/api/v1/auth/register",
			"/api/v1/auth/login",
			"/api/v1/auth/refresh",
		},
		Logger: log,
	}))
	r.Register(
		handler.NewAuthHandler(authService, jwtService),
		handler.NewJobHandler(listingService, insightService),
		handler.NewApplicationHandler(applicationService),
		handler.NewSavedJobHandler(savedJobService),
		handler.NewUserHandler(userService, preferenceService),
		handler.NewUploadHandler(attachmentService),
	)
	r.Setup()

	return &testServer{
		engine:     engine,
		jwtService: jwtService,
	}
}

// request performs an HTTP request against the test server. An empty
// token leaves the request unauthenticated.
func (s *testServer) request(t *testing.T, method, path string, body interface{}, token string) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err, "Failed to marshal request body")
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	s.engine.ServeHTTP(w, req)
	return w
}

// decodeBody unmarshals a response envelope into a generic map.
func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body), "Failed to decode response body")
	return body
}

// dataField returns the data object from a success envelope.
func dataField(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()

	body := decodeBody(t, w)
	require.Equal(t, true, body["success"], "Expected success envelope, got: %s", w.Body.String())
	data, ok := body["data"].(map[string]interface{})
	require.True(t, ok, "Expected data object, got: %s", w.Body.String())
	return data
}

// errorCode returns the error code from an error envelope.
func errorCode(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()

	body := decodeBody(t, w)
	require.Equal(t, false, body["success"], "Expected error envelope, got: %s", w.Body.String())
	errObj, ok := body["error"].(map[string]interface{})
	require.True(t, ok, "Expected error object, got: %s", w.Body.String())
	code, _ := errObj["code"].(string)
	return code
}

// registerUser creates an account and returns the access token, refresh
// token, and user ID.
func (s *testServer) registerUser(t *testing.T, name, email, password string) (accessToken, refreshToken, userID string) {
	t.Helper()

	w := s.request(t, http.MethodPost, "/api/v1/auth/register", map[string]interface{}{
		"name":     name,
		"email":    email,
		"phone":    "0771234567",
		"password": password,
	}, "")
	require.Equal(t, http.StatusCreated, w.Code, "Registration failed: %s", w.Body.String())

	data := dataField(t, w)
	tokenObj, ok := data["token"].(map[string]interface{})
	require.True(t, ok, "Expected token object in session response")
	userObj, ok := data["user"].(map[string]interface{})
	require.True(t, ok, "Expected user object in session response")

	accessToken, _ = tokenObj["access_token"].(string)
	refreshToken, _ = tokenObj["refresh_token"].(string)
	userID, _ = userObj["id"].(string)
	require.NotEmpty(t, accessToken)
	require.NotEmpty(t, refreshToken)
	require.NotEmpty(t, userID)
	return accessToken, refreshToken, userID
}

// createJob posts a listing and returns its ID.
func (s *testServer) createJob(t *testing.T, token, title, company string) string {
	t.Helper()

	w := s.request(t, http.MethodPost, "/api/v1/jobs", map[string]interface{}{
		"title":       title,
		"company":     company,
		"location":    "Remote",
		"salary":      "$120,000 - $150,000",
		"description": fmt.Sprintf("%s at %s", title, company),
		"category":    "Engineering",
		"type":        "Full-time",
		"level":       "Senior",
	}, token)
	require.Equal(t, http.StatusCreated, w.Code, "Job creation failed: %s", w.Body.String())

	data := dataField(t, w)
	id, _ := data["id"].(string)
	require.NotEmpty(t, id)
	return id
}
