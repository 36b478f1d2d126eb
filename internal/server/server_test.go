package server

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"line-of-credit/internal/config"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()
	cfg := &config.Config{
		ServerPort:   "0",
		StoreDriver:  config.StoreMemory,
		PeriodLength: 30,
	}
	s, err := NewServer(cfg, slog.New(slog.NewTextHandler(io.Discard, nil)))
	require.NoError(t, err)
	return s
}

func TestHealth(t *testing.T) {
	s := newTestServer(t)

	rec := httptest.NewRecorder()
	s.GetRouter().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"status":"healthy"`)
}

func TestRoutesAreMounted(t *testing.T) {
	s := newTestServer(t)

	body := strings.NewReader(`{"annual_rate":"0.35","credit_limit":"1000"}`)
	rec := httptest.NewRecorder()
	s.GetRouter().ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/accounts", body))

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Contains(t, rec.Body.String(), `"remaining_credit":"1000.00"`)
}

func TestNewServerRejectsInvalidConfig(t *testing.T) {
	_, err := NewServer(&config.Config{StoreDriver: "sqlite", PeriodLength: 30}, slog.New(slog.NewTextHandler(io.Discard, nil)))
	assert.Error(t, err)
}
