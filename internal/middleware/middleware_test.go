package middleware

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vdab/fietsen/internal/app/models/dto"
	"github.com/vdab/fietsen/internal/pkg/apperrors"
	"github.com/vdab/fietsen/internal/pkg/metrics"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func TestHandleAPIError(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
		code   dto.ErrorCode
	}{
		{"entity not found", apperrors.NewEntityNotFoundError(apperrors.EntityInstructor, 7), http.StatusNotFound, dto.ErrorCodeResourceNotFound},
		{"no instructors", apperrors.ErrNoInstructors, http.StatusNotFound, dto.ErrorCodeNoInstructors},
		{"validation", apperrors.NewValidationError("bad"), http.StatusBadRequest, dto.ErrorCodeValidationFailed},
		{"conflict", apperrors.NewConflictError("exists"), http.StatusConflict, dto.ErrorCodeResourceAlreadyExists},
		{"overflow", fmt.Errorf("update: %w", apperrors.ErrSalaryOverflow), http.StatusUnprocessableEntity, dto.ErrorCodeSalaryOverflow},
		{"constraint", fmt.Errorf("%w: fk", apperrors.ErrConstraintViolation), http.StatusConflict, dto.ErrorCodeConstraintViolation},
		{"unknown", fmt.Errorf("connection reset"), http.StatusInternalServerError, dto.ErrorCodeInternalServer},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(rec)
			c.Request = httptest.NewRequest(http.MethodGet, "/", nil)

			HandleAPIError(c, tt.err)

			assert.Equal(t, tt.status, rec.Code)
			var body dto.APIResponse
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			require.NotNil(t, body.Error)
			assert.Equal(t, tt.code, body.Error.Code)
		})
	}
}

func TestEntityNotFoundKeepsMessage(t *testing.T) {
	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)

	HandleAPIError(c, apperrors.NewEntityNotFoundError(apperrors.EntityInstructor, 7))

	var body dto.APIResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "instructor 7 not found", body.Error.Message)
}

func TestRequestID(t *testing.T) {
	router := gin.New()
	router.Use(RequestID())
	router.GET("/", func(c *gin.Context) { c.String(http.StatusOK, c.GetString(RequestIDKey)) })

	t.Run("generates an id", func(t *testing.T) {
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
		assert.NotEmpty(t, rec.Header().Get(RequestIDHeader))
		assert.Equal(t, rec.Header().Get(RequestIDHeader), rec.Body.String())
	})

	t.Run("keeps a valid incoming id", func(t *testing.T) {
		const id = "0b8e7a1c-3f41-4c55-9d1e-2a6f0f2b7c11"
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set(RequestIDHeader, id)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		assert.Equal(t, id, rec.Header().Get(RequestIDHeader))
	})
}

func TestMetricsMiddleware(t *testing.T) {
	m := metrics.New()
	router := gin.New()
	router.Use(Metrics(m))
	router.GET("/items/:id", func(c *gin.Context) { c.Status(http.StatusNoContent) })

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/items/3", nil))

	assert.Equal(t, float64(1), testutil.ToFloat64(m.HTTPRequests.WithLabelValues(http.MethodGet, "/items/:id", "204")))
}
