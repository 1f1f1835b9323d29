package http_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"course-catalog/internal/bootstrap"
	"course-catalog/internal/config"
	"course-catalog/internal/model"
	httptransport "course-catalog/internal/transport/http"
)

func newTestRouter(t *testing.T) (*gin.Engine, *gorm.DB) {
	db, err := gorm.Open(sqlite.Open(":memory:?_foreign_keys=on"), &gorm.Config{TranslateError: true})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&model.User{}, &model.Course{}, &model.AuditEvent{}))

	cfg, err := config.Load()
	require.NoError(t, err)
	cfg.App.GinMode = gin.TestMode

	app := &bootstrap.App{
		Config:    cfg,
		DB:        db,
		StartedAt: time.Now(),
	}
	return httptransport.NewRouter(app), db
}

func doJSON(router *gin.Engine, method, path string, body any, basicAuth ...string) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if len(basicAuth) == 2 {
		req.SetBasicAuth(basicAuth[0], basicAuth[1])
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func registerAda(t *testing.T, router *gin.Engine) {
	rec := doJSON(router, http.MethodPost, "/api/users", gin.H{
		"firstName":    "Ada",
		"lastName":     "L",
		"emailAddress": "ada@example.com",
		"password":     "secret",
	})
	require.Equal(t, http.StatusCreated, rec.Code)
}

func createCourse(t *testing.T, router *gin.Engine, ownerID uint, email, password string) string {
	rec := doJSON(router, http.MethodPost, "/api/courses", gin.H{
		"title":       "Go 101",
		"description": "An introduction to Go",
		"userId":      ownerID,
	}, email, password)
	require.Equal(t, http.StatusCreated, rec.Code)
	return rec.Header().Get("Location")
}

func TestGreeting(t *testing.T) {
	router, _ := newTestRouter(t)

	rec := doJSON(router, http.MethodGet, "/", nil)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"message":"Welcome to the Course Catalog REST API!"}`, rec.Body.String())
}

func TestUnmatchedRoute(t *testing.T) {
	router, _ := newTestRouter(t)

	rec := doJSON(router, http.MethodGet, "/api/nope", nil)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.JSONEq(t, `{"message":"Route Not Found"}`, rec.Body.String())
}

func TestRegisterAndFetchCurrentUser(t *testing.T) {
	router, _ := newTestRouter(t)

	rec := doJSON(router, http.MethodPost, "/api/users", gin.H{
		"firstName":    "Ada",
		"lastName":     "L",
		"emailAddress": "ada@example.com",
		"password":     "secret",
	})
	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "/", rec.Header().Get("Location"))
	assert.Empty(t, rec.Body.String())

	rec = doJSON(router, http.MethodGet, "/api/users", nil, "ada@example.com", "secret")
	assert.Equal(t, http.StatusOK, rec.Code)

	var payload map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &payload))
	assert.Equal(t, "Ada", payload["firstName"])
	assert.Equal(t, "L", payload["lastName"])
	assert.Equal(t, "ada@example.com", payload["emailAddress"])
	assert.Contains(t, payload, "id")
	assert.NotContains(t, payload, "password")
}

func TestCurrentUserWrongPassword(t *testing.T) {
	router, _ := newTestRouter(t)
	registerAda(t, router)

	rec := doJSON(router, http.MethodGet, "/api/users", nil, "ada@example.com", "wrong")

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.JSONEq(t, `{"message":"Access Denied"}`, rec.Body.String())
}

func TestCurrentUserNoCredentials(t *testing.T) {
	router, _ := newTestRouter(t)
	registerAda(t, router)

	rec := doJSON(router, http.MethodGet, "/api/users", nil)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.JSONEq(t, `{"message":"Access Denied"}`, rec.Body.String())
}

func TestRegisterValidationList(t *testing.T) {
	router, db := newTestRouter(t)

	rec := doJSON(router, http.MethodPost, "/api/users", gin.H{})

	assert.Equal(t, http.StatusBadRequest, rec.Code)

	var payload struct {
		Errors []string `json:"errors"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &payload))
	assert.Equal(t, []string{
		"First name is required",
		"Last name is required",
		"Email address is required",
		"Password is required",
	}, payload.Errors)

	var count int64
	db.Model(&model.User{}).Count(&count)
	assert.Zero(t, count)
}

func TestRegisterDuplicateEmailMessage(t *testing.T) {
	router, _ := newTestRouter(t)
	registerAda(t, router)

	rec := doJSON(router, http.MethodPost, "/api/users", gin.H{
		"firstName":    "Other",
		"lastName":     "Person",
		"emailAddress": "ada@example.com",
		"password":     "different",
	})

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "already in use")
}

func TestCreateCourseRequiresAuth(t *testing.T) {
	router, _ := newTestRouter(t)

	rec := doJSON(router, http.MethodPost, "/api/courses", gin.H{
		"title":       "Go 101",
		"description": "An introduction to Go",
		"userId":      1,
	})

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestCreateCourseValidationList(t *testing.T) {
	router, db := newTestRouter(t)
	registerAda(t, router)

	rec := doJSON(router, http.MethodPost, "/api/courses", gin.H{}, "ada@example.com", "secret")

	assert.Equal(t, http.StatusBadRequest, rec.Code)

	var payload struct {
		Errors []string `json:"errors"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &payload))
	assert.Equal(t, []string{
		"Title is required",
		"Description is required",
		"User ID is required",
	}, payload.Errors)

	var count int64
	db.Model(&model.Course{}).Count(&count)
	assert.Zero(t, count)
}

func TestCreateAndReadCourse(t *testing.T) {
	router, db := newTestRouter(t)
	registerAda(t, router)

	var ada model.User
	require.NoError(t, db.Where("email_address = ?", "ada@example.com").First(&ada).Error)

	location := createCourse(t, router, ada.ID, "ada@example.com", "secret")
	assert.Equal(t, fmt.Sprintf("/api/courses/%d", 1), location)

	rec := doJSON(router, http.MethodGet, location, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var payload map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &payload))
	assert.Equal(t, "Go 101", payload["title"])

	owner, ok := payload["user"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "ada@example.com", owner["emailAddress"])
	assert.NotContains(t, owner, "password")

	// Reads are idempotent: the same id returns the same body.
	again := doJSON(router, http.MethodGet, location, nil)
	assert.Equal(t, rec.Body.String(), again.Body.String())
}

func TestListCourses(t *testing.T) {
	router, db := newTestRouter(t)
	registerAda(t, router)

	var ada model.User
	require.NoError(t, db.Where("email_address = ?", "ada@example.com").First(&ada).Error)
	createCourse(t, router, ada.ID, "ada@example.com", "secret")

	rec := doJSON(router, http.MethodGet, "/api/courses", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var payload []map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &payload))
	require.Len(t, payload, 1)
	owner, ok := payload[0]["user"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "Ada", owner["firstName"])
}

func TestGetCourseNotFound(t *testing.T) {
	router, _ := newTestRouter(t)

	rec := doJSON(router, http.MethodGet, "/api/courses/999", nil)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.JSONEq(t, `{"message":"Course Not Found"}`, rec.Body.String())
}

func TestUpdateCourseByOwner(t *testing.T) {
	router, db := newTestRouter(t)
	registerAda(t, router)

	var ada model.User
	require.NoError(t, db.Where("email_address = ?", "ada@example.com").First(&ada).Error)
	location := createCourse(t, router, ada.ID, "ada@example.com", "secret")

	rec := doJSON(router, http.MethodPut, location, gin.H{
		"title":       "Go 102",
		"description": "A deeper look at Go",
		"userId":      ada.ID,
	}, "ada@example.com", "secret")
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Empty(t, rec.Body.String())

	rec = doJSON(router, http.MethodGet, location, nil)
	assert.Contains(t, rec.Body.String(), "Go 102")
}

func TestUpdateCourseByNonOwner(t *testing.T) {
	router, db := newTestRouter(t)
	registerAda(t, router)

	rec := doJSON(router, http.MethodPost, "/api/users", gin.H{
		"firstName":    "Eve",
		"lastName":     "M",
		"emailAddress": "eve@example.com",
		"password":     "secret",
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	var ada model.User
	require.NoError(t, db.Where("email_address = ?", "ada@example.com").First(&ada).Error)
	location := createCourse(t, router, ada.ID, "ada@example.com", "secret")

	rec = doJSON(router, http.MethodPut, location, gin.H{
		"title":       "Hijacked",
		"description": "Changed by a non-owner",
		"userId":      ada.ID,
	}, "eve@example.com", "secret")
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = doJSON(router, http.MethodGet, location, nil)
	assert.Contains(t, rec.Body.String(), "Go 101")
	assert.NotContains(t, rec.Body.String(), "Hijacked")
}

func TestDeleteCourseNotFound(t *testing.T) {
	router, _ := newTestRouter(t)
	registerAda(t, router)

	rec := doJSON(router, http.MethodDelete, "/api/courses/999", nil, "ada@example.com", "secret")

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestDeleteCourseByOwner(t *testing.T) {
	router, db := newTestRouter(t)
	registerAda(t, router)

	var ada model.User
	require.NoError(t, db.Where("email_address = ?", "ada@example.com").First(&ada).Error)
	location := createCourse(t, router, ada.ID, "ada@example.com", "secret")

	rec := doJSON(router, http.MethodDelete, location, nil, "ada@example.com", "secret")
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = doJSON(router, http.MethodGet, location, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestDeleteCourseByNonOwner(t *testing.T) {
	router, db := newTestRouter(t)
	registerAda(t, router)

	rec := doJSON(router, http.MethodPost, "/api/users", gin.H{
		"firstName":    "Eve",
		"lastName":     "M",
		"emailAddress": "eve@example.com",
		"password":     "secret",
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	var ada model.User
	require.NoError(t, db.Where("email_address = ?", "ada@example.com").First(&ada).Error)
	location := createCourse(t, router, ada.ID, "ada@example.com", "secret")

	rec = doJSON(router, http.MethodDelete, location, nil, "eve@example.com", "secret")
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = doJSON(router, http.MethodGet, location, nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestCreateCourseWithUnknownOwner(t *testing.T) {
	router, db := newTestRouter(t)
	registerAda(t, router)

	rec := doJSON(router, http.MethodPost, "/api/courses", gin.H{
		"title":       "Go 101",
		"description": "An introduction to Go",
		"userId":      999,
	}, "ada@example.com", "secret")

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "existing user")

	var count int64
	db.Model(&model.Course{}).Count(&count)
	assert.Zero(t, count)
}

func TestCourseAuditTrail(t *testing.T) {
	router, db := newTestRouter(t)
	registerAda(t, router)

	rec := doJSON(router, http.MethodPost, "/api/users", gin.H{
		"firstName":    "Eve",
		"lastName":     "M",
		"emailAddress": "eve@example.com",
		"password":     "secret",
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	var ada model.User
	require.NoError(t, db.Where("email_address = ?", "ada@example.com").First(&ada).Error)
	location := createCourse(t, router, ada.ID, "ada@example.com", "secret")

	rec = doJSON(router, http.MethodGet, location+"/audit", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = doJSON(router, http.MethodGet, location+"/audit", nil, "eve@example.com", "secret")
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = doJSON(router, http.MethodGet, location+"/audit", nil, "ada@example.com", "secret")
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestNonNumericCourseID(t *testing.T) {
	router, _ := newTestRouter(t)

	rec := doJSON(router, http.MethodGet, "/api/courses/abc", nil)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}
