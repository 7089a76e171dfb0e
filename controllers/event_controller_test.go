package controllers_test

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"ReframeGo/config"
	"ReframeGo/models"
	"ReframeGo/routes"
	"ReframeGo/services"
	"ReframeGo/store"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"ReframeGo/utils"
)

func setupRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	config.Logger = zap.NewNop().Sugar()
	utils.InitJWT("test-secret")

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.New().String())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.User{}, &models.Event{}))

	eventStore := store.NewEventStore(db)
	eventService := services.NewEventService(eventStore, nil, config.Logger)

	r := gin.New()
	routes.RegisterRoutes(r, eventStore, eventService)
	return r
}

func doJSON(t *testing.T, r *gin.Engine, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", token)
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func signupAndLogin(t *testing.T, r *gin.Engine, email string) string {
	t.Helper()
	w := doJSON(t, r, http.MethodPost, "/api/v1/auth/signup", "", models.SignupRequest{
		Email:    email,
		Password: "correct-horse",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w = doJSON(t, r, http.MethodPost, "/api/v1/auth/login", "", models.LoginRequest{
		Email:    email,
		Password: "correct-horse",
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.Token)
	return resp.Token
}

func logEvent(t *testing.T, r *gin.Engine, token string, req models.LogEventRequest) models.Event {
	t.Helper()
	w := doJSON(t, r, http.MethodPost, "/api/v1/events", token, req)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var event models.Event
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &event))
	return event
}

func TestSignupConflict(t *testing.T) {
	r := setupRouter(t)

	w := doJSON(t, r, http.MethodPost, "/api/v1/auth/signup", "", models.SignupRequest{
		Email:    "taken@example.com",
		Password: "correct-horse",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	w = doJSON(t, r, http.MethodPost, "/api/v1/auth/signup", "", models.SignupRequest{
		Email:    "taken@example.com",
		Password: "another-pass",
	})
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestLoginWrongPassword(t *testing.T) {
	r := setupRouter(t)
	signupAndLogin(t, r, "user@example.com")

	w := doJSON(t, r, http.MethodPost, "/api/v1/auth/login", "", models.LoginRequest{
		Email:    "user@example.com",
		Password: "wrong",
	})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = doJSON(t, r, http.MethodPost, "/api/v1/auth/login", "", models.LoginRequest{
		Email:    "nobody@example.com",
		Password: "whatever",
	})
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestEventsRequireAuth(t *testing.T) {
	r := setupRouter(t)

	w := doJSON(t, r, http.MethodGet, "/api/v1/events", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = doJSON(t, r, http.MethodPost, "/api/v1/events", "garbage-token", models.LogEventRequest{
		Trigger: "noise", Behavior: "paced", Severity: 5,
	})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestLogAndListEvents(t *testing.T) {
	r := setupRouter(t)
	token := signupAndLogin(t, r, "logger@example.com")

	event := logEvent(t, r, token, models.LogEventRequest{
		Trigger:    "doorbell",
		Behavior:   "checked the lock",
		Severity:   7,
		Reflection: "again",
	})
	assert.Equal(t, 7, event.Severity)
	assert.Nil(t, event.Emotion)
	assert.NotEmpty(t, event.ID)
	assert.False(t, event.Timestamp.IsZero())

	w := doJSON(t, r, http.MethodGet, "/api/v1/events", token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Events []models.Event `json:"events"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Events, 1)
	assert.Equal(t, event.ID, resp.Events[0].ID)
}

func TestLogEventValidation(t *testing.T) {
	r := setupRouter(t)
	token := signupAndLogin(t, r, "strict@example.com")

	w := doJSON(t, r, http.MethodPost, "/api/v1/events", token, models.LogEventRequest{
		Trigger: "noise", Behavior: "paced", Severity: 0,
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doJSON(t, r, http.MethodPost, "/api/v1/events", token, models.LogEventRequest{
		Trigger: "noise", Behavior: "paced", Severity: 11,
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// Nothing got stored
	w = doJSON(t, r, http.MethodGet, "/api/v1/events", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var resp struct {
		Events []models.Event `json:"events"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Empty(t, resp.Events)
}

func TestDeleteEventCrossUser(t *testing.T) {
	r := setupRouter(t)
	aliceToken := signupAndLogin(t, r, "alice@example.com")
	bobToken := signupAndLogin(t, r, "bob@example.com")

	event := logEvent(t, r, aliceToken, models.LogEventRequest{
		Trigger: "crowds", Behavior: "left early", Severity: 5,
	})

	w := doJSON(t, r, http.MethodDelete, "/api/v1/events/"+event.ID, bobToken, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	// Alice still sees it, then deletes it herself
	w = doJSON(t, r, http.MethodGet, "/api/v1/events", aliceToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var resp struct {
		Events []models.Event `json:"events"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Events, 1)

	w = doJSON(t, r, http.MethodDelete, "/api/v1/events/"+event.ID, aliceToken, nil)
	assert.Equal(t, http.StatusNoContent, w.Code)
}

func TestAnalytics(t *testing.T) {
	r := setupRouter(t)
	token := signupAndLogin(t, r, "charts@example.com")

	logEvent(t, r, token, models.LogEventRequest{Trigger: "doorbell", Behavior: "checked", Severity: 4})
	logEvent(t, r, token, models.LogEventRequest{Trigger: "doorbell", Behavior: "checked", Severity: 6})
	logEvent(t, r, token, models.LogEventRequest{Trigger: "crowds", Behavior: "left", Severity: 8})

	w := doJSON(t, r, http.MethodGet, "/api/v1/analytics", token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp models.AnalyticsResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))

	require.Len(t, resp.DailyCounts, 1)
	assert.Equal(t, 3, resp.DailyCounts[0].Count)
	assert.InDelta(t, 6.0, resp.DailyCounts[0].AvgSeverity, 1e-9)

	require.Len(t, resp.TopTriggers, 2)
	assert.Equal(t, "doorbell", resp.TopTriggers[0].Trigger)
	assert.Equal(t, 2, resp.TopTriggers[0].Count)

	assert.Empty(t, resp.Emotions)
}

func TestExportCSV(t *testing.T) {
	r := setupRouter(t)
	token := signupAndLogin(t, r, "export@example.com")

	logEvent(t, r, token, models.LogEventRequest{
		Trigger: "doorbell", Behavior: "checked, twice", Severity: 7,
	})

	w := doJSON(t, r, http.MethodGet, "/api/v1/export?format=csv", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "text/csv", w.Header().Get("Content-Type"))
	assert.Contains(t, w.Header().Get("Content-Disposition"), "events.csv")

	rows, err := csv.NewReader(bytes.NewReader(w.Body.Bytes())).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "checked, twice", rows[1][2])
}

func TestExportPDF(t *testing.T) {
	r := setupRouter(t)
	token := signupAndLogin(t, r, "pdf@example.com")

	logEvent(t, r, token, models.LogEventRequest{
		Trigger: "doorbell", Behavior: "checked", Severity: 7,
	})

	w := doJSON(t, r, http.MethodGet, "/api/v1/export?format=pdf", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/pdf", w.Header().Get("Content-Type"))
	assert.True(t, bytes.HasPrefix(w.Body.Bytes(), []byte("%PDF")))
}

func TestExportUnknownFormat(t *testing.T) {
	r := setupRouter(t)
	token := signupAndLogin(t, r, "badformat@example.com")

	w := doJSON(t, r, http.MethodGet, "/api/v1/export?format=xml", token, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGetUser(t *testing.T) {
	r := setupRouter(t)
	token := signupAndLogin(t, r, "me@example.com")

	w := doJSON(t, r, http.MethodGet, "/api/v1/user", token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp models.UserResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "me@example.com", resp.Email)
	assert.NotEmpty(t, resp.ID)
}

func TestDeleteAccount(t *testing.T) {
	r := setupRouter(t)
	token := signupAndLogin(t, r, "bye@example.com")

	logEvent(t, r, token, models.LogEventRequest{Trigger: "noise", Behavior: "paced", Severity: 3})

	w := doJSON(t, r, http.MethodDelete, "/api/v1/account", token, nil)
	assert.Equal(t, http.StatusNoContent, w.Code)

	// Logging against the removed account now fails
	w = doJSON(t, r, http.MethodPost, "/api/v1/events", token, models.LogEventRequest{
		Trigger: "noise", Behavior: "paced", Severity: 3,
	})
	assert.Equal(t, http.StatusNotFound, w.Code)
}
