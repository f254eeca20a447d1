package admin

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/medibook/medibook/internal/platform/validate"
)

func TestHandlerLogin(t *testing.T) {
	e := echo.New()
	e.Validator = validate.New()

	repo := newMockRepo()
	seedAdmin(t, repo, "admin@example.com", "password123")
	h := NewHandler(newTestService(repo, fixedCounter(0), fixedCounter(0), fixedCounter(0)))

	req := httptest.NewRequest(http.MethodPost, "/api/admin/login",
		strings.NewReader(`{"email":"admin@example.com","password":"password123"}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()

	if err := h.Login(e.NewContext(req, rec)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var res AuthResult
	if err := json.Unmarshal(rec.Body.Bytes(), &res); err != nil {
		t.Fatalf("bad body: %v", err)
	}
	if res.Token == "" || res.Username != "admin" {
		t.Errorf("unexpected body: %+v", res)
	}
}

func TestHandlerStats(t *testing.T) {
	e := echo.New()
	e.Validator = validate.New()
	h := NewHandler(newTestService(newMockRepo(), fixedCounter(2), fixedCounter(5), fixedCounter(9)))

	req := httptest.NewRequest(http.MethodGet, "/api/admin/stats", nil)
	rec := httptest.NewRecorder()
	if err := h.Stats(e.NewContext(req, rec)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var stats Stats
	if err := json.Unmarshal(rec.Body.Bytes(), &stats); err != nil {
		t.Fatalf("bad body: %v", err)
	}
	if stats.Doctors != 2 || stats.Patients != 5 || stats.Appointments != 9 {
		t.Errorf("unexpected stats: %+v", stats)
	}
}
