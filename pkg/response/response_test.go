package response

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "ripple/pkg/errors"
)

func newContext() (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) Response {
	t.Helper()
	var body Response
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func TestErrorMapsAppError(t *testing.T) {
	c, rec := newContext()

	require.NoError(t, Error(c, fmt.Errorf("wrapped: %w", apperrors.InsufficientBalance())))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	body := decode(t, rec)
	assert.False(t, body.Success)
	assert.Equal(t, apperrors.CodeInsufficientBalance, body.Error.Code)
}

func TestErrorHidesUnknownErrors(t *testing.T) {
	c, rec := newContext()

	require.NoError(t, Error(c, fmt.Errorf("rpc error: connection refused")))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	body := decode(t, rec)
	assert.Equal(t, "An unexpected error occurred", body.Error.Message)
}

func TestErrorMapsValidationError(t *testing.T) {
	type payload struct {
		Quantity int `validate:"min=1"`
	}
	err := validator.New().Struct(payload{Quantity: 0})
	c, rec := newContext()

	require.NoError(t, Error(c, err))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	body := decode(t, rec)
	assert.Equal(t, "VALIDATION_ERROR", body.Error.Code)
	assert.Equal(t, "quantity must be at least 1", body.Error.Message)
}

func TestErrorMapsEchoHTTPError(t *testing.T) {
	c, rec := newContext()

	require.NoError(t, Error(c, echo.NewHTTPError(http.StatusUnauthorized, "Invalid session")))

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	body := decode(t, rec)
	assert.Equal(t, "UNAUTHORIZED", body.Error.Code)
	assert.Equal(t, "Invalid session", body.Error.Message)
}

func TestPaginatedComputesTotalPages(t *testing.T) {
	c, rec := newContext()

	require.NoError(t, Paginated(c, []string{"a"}, 21, 1, 10))

	var body struct {
		Data PaginatedResponse `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, 3, body.Data.TotalPages)
}
