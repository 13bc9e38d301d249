package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/emirkaya/staffdesk/internal/pkg/apperrors"
)

func performWithError(err error) *httptest.ResponseRecorder {
	router := gin.New()
	router.GET("/err", func(c *gin.Context) {
		HandleAPIError(c, err)
	})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest("GET", "/err", nil))
	return w
}

func TestHandleAPIError_StatusMapping(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantBody   string
	}{
		{"employee not found", apperrors.ErrEmployeeNotFound, http.StatusNotFound, "Employee not found"},
		{"duplicate email", apperrors.ErrEmailAlreadyExists, http.StatusBadRequest, "Email already exists"},
		{"invalid credentials", apperrors.ErrInvalidCredentials, http.StatusBadRequest, "Invalid login details"},
		{"validation failed", apperrors.ErrValidationFailed, http.StatusBadRequest, "Validation failed"},
		{"token expired", apperrors.ErrTokenExpired, http.StatusUnauthorized, "Token expired"},
		{"token invalid", apperrors.ErrTokenInvalid, http.StatusUnauthorized, "Invalid token"},
		{"unknown error", errors.New("pool exhausted"), http.StatusInternalServerError, "Internal server error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := performWithError(tt.err)
			assert.Equal(t, tt.wantStatus, w.Code)
			assert.Contains(t, w.Body.String(), tt.wantBody)
		})
	}
}

// Wrapped errors still map through errors.Is.
func TestHandleAPIError_WrappedError(t *testing.T) {
	wrapped := errors.Join(apperrors.ErrEmailAlreadyExists, errors.New("constraint employees_email_key"))
	w := performWithError(wrapped)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

// Internal failure detail never reaches the client.
func TestHandleAPIError_OpaqueInternalError(t *testing.T) {
	w := performWithError(errors.New("dial tcp 10.0.0.5:5432: connection refused"))
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.NotContains(t, w.Body.String(), "10.0.0.5")
}
