package utils

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
)

func TestGetPaginationParams(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/?page=3&limit=5", nil)
	c := e.NewContext(req, httptest.NewRecorder())

	p := GetPaginationParams(c)

	assert.Equal(t, 3, p.Page)
	assert.Equal(t, 5, p.PageSize)
	assert.Equal(t, 10, p.Offset)
}

func TestNewPaginationParamsDefaults(t *testing.T) {
	p := NewPaginationParams(0, 1000)

	assert.Equal(t, 1, p.Page)
	assert.Equal(t, DefaultPageSize, p.PageSize)
	assert.Equal(t, 0, p.Offset)
}

func TestWindowClampsToLength(t *testing.T) {
	p := NewPaginationParams(2, 10)

	start, end := p.Window(15)
	assert.Equal(t, 10, start)
	assert.Equal(t, 15, end)

	start, end = p.Window(4)
	assert.Equal(t, 4, start)
	assert.Equal(t, 4, end)
}
