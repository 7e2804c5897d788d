package routes

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"gym-management-api/config"
	"gym-management-api/events"
	"gym-management-api/handlers"
	"gym-management-api/metrics"
	"gym-management-api/middleware"
	"gym-management-api/services"
	"gym-management-api/sessions"
	"gym-management-api/store"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func setupRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	name := strings.ReplaceAll(t.Name(), "/", "_")
	db, err := gorm.Open(sqlite.Open(fmt.Sprintf("file:%s?mode=memory&cache=shared", name)), &gorm.Config{Logger: gormlogger.Discard})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })
	require.NoError(t, store.Migrate(db))
	require.NoError(t, store.Seed(db, config.AdminConfig{Name: "Admin", Email: "admin@gym.com", Password: "admin123"}))

	m := metrics.New()
	sm := sessions.NewManager(time.Hour)
	hub := events.NewHub()
	svc := services.New(services.Deps{
		Store:            store.New(db),
		Sessions:         sm,
		Events:           hub,
		Metrics:          m,
		VerificationCode: "1234",
	})
	authn := middleware.NewAuthenticator("test-secret", time.Hour, sm)

	r := gin.New()
	r.Use(middleware.RequestLogger(m))
	require.NoError(t, SetupRoutes(r, handlers.New(svc, authn, hub), authn, m))
	return r
}

type response struct {
	Code int
	Body map[string]any
	Raw  string
}

func do(t *testing.T, r *gin.Engine, method, path, token string, body any) response {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	res := response{Code: w.Code, Raw: w.Body.String()}
	if strings.HasPrefix(w.Header().Get("Content-Type"), "application/json") {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &res.Body))
	}
	return res
}

func (r response) errorCode() string {
	errBody, _ := r.Body["error"].(map[string]any)
	code, _ := errBody["code"].(string)
	return code
}

func (r response) state() string {
	view, _ := r.Body["onboarding"].(map[string]any)
	state, _ := view["state"].(string)
	return state
}

func login(t *testing.T, r *gin.Engine, email, password string) (string, string) {
	t.Helper()
	res := do(t, r, http.MethodPost, "/api/auth/login", "", gin.H{"email": email, "password": password})
	require.Equal(t, http.StatusOK, res.Code, res.Raw)
	return res.Body["token"].(string), res.Body["destination"].(string)
}

func registerVerified(t *testing.T, r *gin.Engine, name, email, role string) {
	t.Helper()
	res := do(t, r, http.MethodPost, "/api/auth/register", "", gin.H{
		"name": name, "email": email, "password": "secret1", "role": role,
	})
	require.Equal(t, http.StatusCreated, res.Code, res.Raw)
	res = do(t, r, http.MethodPost, "/api/auth/verify", "", gin.H{"email": email, "code": "1234"})
	require.Equal(t, http.StatusOK, res.Code, res.Raw)
}

func TestPublicEndpoints(t *testing.T) {
	r := setupRouter(t)

	res := do(t, r, http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusOK, res.Code)
	assert.Equal(t, "healthy", res.Body["status"])

	res = do(t, r, http.MethodGet, "/api/plans", "", nil)
	assert.Equal(t, http.StatusOK, res.Code)
	assert.EqualValues(t, 3, res.Body["count"])

	res = do(t, r, http.MethodGet, "/api/state-machine", "", nil)
	assert.Equal(t, http.StatusOK, res.Code)
	assert.Contains(t, res.Body, "onboarding")
	assert.Contains(t, res.Body, "trainer_approval")

	res = do(t, r, http.MethodGet, "/metrics", "", nil)
	assert.Equal(t, http.StatusOK, res.Code)
	assert.Contains(t, res.Raw, "gym_http_requests_total")
}

func TestRegistrationValidation(t *testing.T) {
	r := setupRouter(t)

	res := do(t, r, http.MethodPost, "/api/auth/register", "", gin.H{
		"name": "Mallory", "email": "mallory@x.com", "password": "secret1", "role": "Admin",
	})
	assert.Equal(t, http.StatusBadRequest, res.Code)
	assert.Equal(t, "VALIDATION_FAILED", res.errorCode())

	registerVerified(t, r, "Alice", "alice@x.com", "Member")
	res = do(t, r, http.MethodPost, "/api/auth/register", "", gin.H{
		"name": "Alice", "email": "alice@x.com", "password": "secret1", "role": "Member",
	})
	assert.Equal(t, http.StatusConflict, res.Code)
	assert.Equal(t, "DUPLICATE_EMAIL", res.errorCode())

	res = do(t, r, http.MethodPost, "/api/auth/verify", "", gin.H{"email": "alice@x.com", "code": "0000"})
	assert.Equal(t, http.StatusBadRequest, res.Code)

	res = do(t, r, http.MethodPost, "/api/auth/verify", "", gin.H{"email": "ghost@x.com", "code": "1234"})
	assert.Equal(t, http.StatusNotFound, res.Code)
}

func TestLoginFailures(t *testing.T) {
	r := setupRouter(t)
	res := do(t, r, http.MethodPost, "/api/auth/register", "", gin.H{
		"name": "Alice", "email": "alice@x.com", "password": "secret1", "role": "Member",
	})
	require.Equal(t, http.StatusCreated, res.Code)

	res = do(t, r, http.MethodPost, "/api/auth/login", "", gin.H{"email": "alice@x.com", "password": "secret1"})
	assert.Equal(t, http.StatusForbidden, res.Code)
	assert.Equal(t, "UNVERIFIED", res.errorCode())

	res = do(t, r, http.MethodPost, "/api/auth/login", "", gin.H{"email": "alice@x.com", "password": "nope"})
	assert.Equal(t, http.StatusUnauthorized, res.Code)
	assert.Equal(t, "WRONG_PASSWORD", res.errorCode())

	res = do(t, r, http.MethodPost, "/api/auth/login", "", gin.H{"email": "nobody@x.com", "password": "nope"})
	assert.Equal(t, http.StatusNotFound, res.Code)
}

func TestFullOnboardingAndApprovalFlow(t *testing.T) {
	r := setupRouter(t)

	registerVerified(t, r, "Alice", "alice@x.com", "Member")
	alice, dest := login(t, r, "alice@x.com", "secret1")
	assert.Equal(t, "onboarding", dest)

	res := do(t, r, http.MethodGet, "/api/member/onboarding", alice, nil)
	require.Equal(t, http.StatusOK, res.Code, res.Raw)
	assert.Equal(t, "NEEDS_PLAN", res.state())

	res = do(t, r, http.MethodPost, "/api/member/onboarding/time-slot", alice, gin.H{"time_slot": "Evening"})
	assert.Equal(t, http.StatusConflict, res.Code)
	assert.Equal(t, "INVALID_TRANSITION", res.errorCode())

	res = do(t, r, http.MethodPost, "/api/member/onboarding/plan", alice, gin.H{"plan_id": 2})
	require.Equal(t, http.StatusOK, res.Code, res.Raw)
	assert.Equal(t, "NEEDS_TIME_SLOT", res.state())

	res = do(t, r, http.MethodPost, "/api/member/onboarding/time-slot", alice, gin.H{"time_slot": "Midnight"})
	assert.Equal(t, http.StatusBadRequest, res.Code)

	res = do(t, r, http.MethodPost, "/api/member/onboarding/time-slot", alice, gin.H{"time_slot": "Evening"})
	require.Equal(t, http.StatusOK, res.Code, res.Raw)
	assert.Equal(t, "NEEDS_TRAINER", res.state())
	assert.Equal(t, "No trainers available", res.Body["onboarding"].(map[string]any)["message"])

	registerVerified(t, r, "Bob", "bob@x.com", "Trainer")
	bob, dest := login(t, r, "bob@x.com", "secret1")
	assert.Equal(t, "trainer_dashboard", dest)

	res = do(t, r, http.MethodGet, "/api/admin/trainers/pending", alice, nil)
	assert.Equal(t, http.StatusForbidden, res.Code)

	admin, dest := login(t, r, "admin@gym.com", "admin123")
	assert.Equal(t, "admin_panel", dest)

	res = do(t, r, http.MethodGet, "/api/admin/trainers/pending", admin, nil)
	require.Equal(t, http.StatusOK, res.Code)
	require.EqualValues(t, 1, res.Body["count"])
	bobID := res.Body["trainers"].([]any)[0].(map[string]any)["trainer_id"]
	trainerPath := fmt.Sprintf("/api/admin/trainers/%v", bobID)

	res = do(t, r, http.MethodPut, trainerPath+"/approve", admin, nil)
	require.Equal(t, http.StatusOK, res.Code, res.Raw)
	res = do(t, r, http.MethodPut, trainerPath+"/approve", admin, nil)
	assert.Equal(t, http.StatusConflict, res.Code)

	res = do(t, r, http.MethodGet, "/api/trainer/dashboard", bob, nil)
	require.Equal(t, http.StatusOK, res.Code)
	assert.Equal(t, "APPROVED", res.Body["status"])

	res = do(t, r, http.MethodPost, "/api/member/onboarding/trainer", alice, gin.H{"trainer_id": bobID})
	require.Equal(t, http.StatusOK, res.Code, res.Raw)
	assert.Equal(t, "COMPLETE", res.state())

	res = do(t, r, http.MethodGet, "/api/member/dashboard", alice, nil)
	require.Equal(t, http.StatusOK, res.Code)
	dash := res.Body["dashboard"].(map[string]any)
	assert.Equal(t, "Evening", dash["time_slot"])

	res = do(t, r, http.MethodPost, "/api/member/check-in", alice, nil)
	assert.Equal(t, http.StatusNotImplemented, res.Code)

	res = do(t, r, http.MethodGet, "/api/admin/members", admin, nil)
	require.Equal(t, http.StatusOK, res.Code)
	members := res.Body["members"].([]any)
	require.Len(t, members, 1)
	assert.Equal(t, "Standard (Evening)", members[0].(map[string]any)["plan_name"])

	res = do(t, r, http.MethodDelete, trainerPath, admin, nil)
	require.Equal(t, http.StatusOK, res.Code, res.Raw)
	res = do(t, r, http.MethodPut, trainerPath+"/reject", admin, nil)
	assert.Equal(t, http.StatusNotFound, res.Code)
	res = do(t, r, http.MethodGet, "/api/trainer/dashboard", bob, nil)
	assert.Equal(t, http.StatusUnauthorized, res.Code, "the removed trainer's session is gone")
}

func TestLogoutInvalidatesToken(t *testing.T) {
	r := setupRouter(t)
	registerVerified(t, r, "Alice", "alice@x.com", "Member")
	token, _ := login(t, r, "alice@x.com", "secret1")

	res := do(t, r, http.MethodGet, "/api/profile", token, nil)
	require.Equal(t, http.StatusOK, res.Code)
	assert.Equal(t, "alice@x.com", res.Body["user"].(map[string]any)["email"])
	assert.NotContains(t, res.Raw, "password")

	res = do(t, r, http.MethodPost, "/api/auth/logout", token, nil)
	require.Equal(t, http.StatusOK, res.Code)

	res = do(t, r, http.MethodGet, "/api/profile", token, nil)
	assert.Equal(t, http.StatusUnauthorized, res.Code)
}

func TestAdminRejectsBadID(t *testing.T) {
	r := setupRouter(t)
	admin, _ := login(t, r, "admin@gym.com", "admin123")

	res := do(t, r, http.MethodPut, "/api/admin/trainers/abc/approve", admin, nil)
	assert.Equal(t, http.StatusBadRequest, res.Code)

	res = do(t, r, http.MethodDelete, "/api/admin/members/999", admin, nil)
	assert.Equal(t, http.StatusNotFound, res.Code)
}
