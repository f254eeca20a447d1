package doctor

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/medibook/medibook/internal/platform/validate"
)

func newTestEcho() *echo.Echo {
	e := echo.New()
	e.Validator = validate.New()
	return e
}

func doJSON(e *echo.Echo, method, path, body string) (echo.Context, *httptest.ResponseRecorder) {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

const createBody = `{
	"name": "Dr. John Smith",
	"specialization": "Cardiology",
	"department": "Cardiology",
	"qualification": "MD",
	"experience": 10,
	"consultationFee": 150,
	"availableDays": ["Monday"],
	"availableTimeSlots": [{"start": "09:00", "end": "09:30"}],
	"email": "smith@clinic.com",
	"phone": "555-0200"
}`

func TestHandlerCreate(t *testing.T) {
	e := newTestEcho()
	h := NewHandler(NewService(newMockRepo()))

	c, rec := doJSON(e, http.MethodPost, "/api/doctors", createBody)
	if err := h.Create(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}

	var d Doctor
	if err := json.Unmarshal(rec.Body.Bytes(), &d); err != nil {
		t.Fatalf("bad body: %v", err)
	}
	if !d.IsActive {
		t.Error("new doctor should be active")
	}
	if len(d.AvailableTimeSlots) != 1 || d.AvailableTimeSlots[0].Start != "09:00" {
		t.Errorf("slots not persisted: %+v", d.AvailableTimeSlots)
	}
}

func TestHandlerCreate_MissingFields(t *testing.T) {
	e := newTestEcho()
	h := NewHandler(NewService(newMockRepo()))

	c, _ := doJSON(e, http.MethodPost, "/api/doctors", `{"name": "Dr. Incomplete"}`)
	err := h.Create(c)
	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %v", err)
	}
}

func TestHandlerUpdate_DeactivateViaFalse(t *testing.T) {
	e := newTestEcho()
	repo := newMockRepo()
	svc := NewService(repo)
	h := NewHandler(svc)

	d := sampleDoctor("Dr. A", "a@clinic.com")
	if err := svc.Create(context.Background(), d); err != nil {
		t.Fatalf("create: %v", err)
	}

	c, rec := doJSON(e, http.MethodPut, "/api/doctors/"+d.ID.String(), `{"isActive": false}`)
	c.SetParamNames("id")
	c.SetParamValues(d.ID.String())

	if err := h.Update(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var updated Doctor
	if err := json.Unmarshal(rec.Body.Bytes(), &updated); err != nil {
		t.Fatalf("bad body: %v", err)
	}
	if updated.IsActive {
		t.Error("isActive false was dropped on the way through the handler")
	}
}

func TestHandlerGet_NotFound(t *testing.T) {
	e := newTestEcho()
	h := NewHandler(NewService(newMockRepo()))

	c, _ := doJSON(e, http.MethodGet, "/api/doctors/not-a-uuid", "")
	c.SetParamNames("id")
	c.SetParamValues("not-a-uuid")

	err := h.Get(c)
	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %v", err)
	}
}

func TestHandlerList_EmptyIsArray(t *testing.T) {
	e := newTestEcho()
	h := NewHandler(NewService(newMockRepo()))

	c, rec := doJSON(e, http.MethodGet, "/api/doctors", "")
	if err := h.List(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if body := strings.TrimSpace(rec.Body.String()); body != "[]" {
		t.Errorf("expected empty array, got %q", body)
	}
}
