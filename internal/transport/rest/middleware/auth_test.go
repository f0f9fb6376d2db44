package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rfxintake/internal/model"
	"rfxintake/internal/service"
)

func login(t *testing.T, svc *service.AuthService, username string) string {
	t.Helper()
	resp, err := svc.Login(username, "password123")
	require.NoError(t, err)
	return resp.Token
}

func TestRequireAuth(t *testing.T) {
	authSvc := service.NewAuthService()
	mw := NewAuthMiddleware(authSvc)

	var gotUserID string
	var gotRole model.Role
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUserID = GetUserID(r.Context())
		gotRole = GetRole(r.Context())
		w.WriteHeader(http.StatusOK)
	})

	handler := mw.RequireAuth(next)

	// Missing header
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest("GET", "/v1/forms", nil))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	// Garbage token
	rec = httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/v1/forms", nil)
	req.Header.Set("Authorization", "Bearer garbage")
	handler.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	// Valid token
	rec = httptest.NewRecorder()
	req = httptest.NewRequest("GET", "/v1/forms", nil)
	req.Header.Set("Authorization", "Bearer "+login(t, authSvc, "lead"))
	handler.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.NotEmpty(t, gotUserID)
	assert.Equal(t, model.RoleProcurementLead, gotRole)
}

func TestRequireRole(t *testing.T) {
	authSvc := service.NewAuthService()
	mw := NewAuthMiddleware(authSvc)

	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	handler := mw.RequireRole(model.RoleApprover)(next)

	// A procurement lead sits below approver in the hierarchy.
	rec := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/v1/review/forms/x/decision", nil)
	req.Header.Set("Authorization", "Bearer "+login(t, authSvc, "lead"))
	handler.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	// Approver passes.
	rec = httptest.NewRecorder()
	req = httptest.NewRequest("POST", "/v1/review/forms/x/decision", nil)
	req.Header.Set("Authorization", "Bearer "+login(t, authSvc, "approver"))
	handler.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)

	// Admin outranks approver.
	rec = httptest.NewRecorder()
	req = httptest.NewRequest("POST", "/v1/review/forms/x/decision", nil)
	req.Header.Set("Authorization", "Bearer "+login(t, authSvc, "admin"))
	handler.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
}
