package patient

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/medibook/medibook/internal/platform/auth"
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

func httpStatus(err error, rec *httptest.ResponseRecorder) int {
	if err == nil {
		return rec.Code
	}
	if he, ok := err.(*echo.HTTPError); ok {
		return he.Code
	}
	return http.StatusInternalServerError
}

const registerBody = `{
	"fullName": "Jane Doe",
	"email": "jane@example.com",
	"phone": "555-0100",
	"dateOfBirth": "1990-01-01",
	"gender": "Female",
	"address": "1 Main St",
	"password": "password123"
}`

func TestHandlerRegister(t *testing.T) {
	e := newTestEcho()
	h := NewHandler(newTestService(newMockRepo(), &mockSender{}))

	c, rec := doJSON(e, http.MethodPost, "/api/auth/register", registerBody)
	err := h.Register(c)
	if got := httpStatus(err, rec); got != http.StatusCreated {
		t.Fatalf("expected 201, got %d (%v)", got, err)
	}

	var res AuthResult
	if err := json.Unmarshal(rec.Body.Bytes(), &res); err != nil {
		t.Fatalf("bad response body: %v", err)
	}
	if res.Token == "" || res.FullName != "Jane Doe" {
		t.Errorf("unexpected body: %+v", res)
	}

	// Same email again is a conflict, reported as 400.
	c, rec = doJSON(e, http.MethodPost, "/api/auth/register", registerBody)
	err = h.Register(c)
	if got := httpStatus(err, rec); got != http.StatusBadRequest {
		t.Errorf("expected 400 on duplicate, got %d", got)
	}
}

func TestHandlerRegister_ShortPassword(t *testing.T) {
	e := newTestEcho()
	h := NewHandler(newTestService(newMockRepo(), &mockSender{}))

	body := strings.Replace(registerBody, "password123", "short", 1)
	c, rec := doJSON(e, http.MethodPost, "/api/auth/register", body)
	err := h.Register(c)
	if got := httpStatus(err, rec); got != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", got)
	}
}

func TestHandlerLogin_BadCredentials(t *testing.T) {
	e := newTestEcho()
	svc := newTestService(newMockRepo(), &mockSender{})
	h := NewHandler(svc)

	c, rec := doJSON(e, http.MethodPost, "/api/auth/login", `{"email":"jane@example.com","password":"password123"}`)
	err := h.Login(c)
	if got := httpStatus(err, rec); got != http.StatusUnauthorized {
		t.Errorf("expected 401, got %d", got)
	}
	if he, ok := err.(*echo.HTTPError); ok {
		if msg, _ := he.Message.(string); msg != "Invalid email or password" {
			t.Errorf("unexpected message %q", msg)
		}
	}
}

func TestHandlerProfile(t *testing.T) {
	e := newTestEcho()
	repo := newMockRepo()
	svc := newTestService(repo, &mockSender{})
	h := NewHandler(svc)

	res, err := svc.Register(context.Background(), registerInput())
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}

	c, rec := doJSON(e, http.MethodGet, "/api/auth/profile", "")
	caller := &auth.Caller{ID: res.ID, Name: res.FullName, Email: res.Email, Role: auth.RolePatient}
	c.SetRequest(c.Request().WithContext(auth.WithCaller(c.Request().Context(), caller)))

	if err := h.Profile(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var body map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("bad response body: %v", err)
	}
	if body["email"] != "jane@example.com" {
		t.Errorf("unexpected email %v", body["email"])
	}
	if _, leaked := body["passwordHash"]; leaked {
		t.Error("password hash leaked in profile response")
	}
}

func TestHandlerResetPassword_MissingToken(t *testing.T) {
	e := newTestEcho()
	h := NewHandler(newTestService(newMockRepo(), &mockSender{}))

	c, rec := doJSON(e, http.MethodPost, "/api/auth/reset-password", `{"password":"newpassword1"}`)
	err := h.ResetPassword(c)
	if got := httpStatus(err, rec); got != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", got)
	}
}

func TestHandlerResetPassword_RemovedAccount(t *testing.T) {
	e := newTestEcho()
	h := NewHandler(newTestService(newMockRepo(), &mockSender{}))

	// A well-formed token whose subject no longer has an account is
	// rejected the same way as a bad token.
	tokens := auth.NewTokenIssuer([]byte("test-secret"), time.Hour)
	token, err := tokens.IssueReset(uuid.New())
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}

	c, rec := doJSON(e, http.MethodPost, "/api/auth/reset-password",
		`{"token":"`+token+`","password":"newpassword1"}`)
	herr := h.ResetPassword(c)
	if got := httpStatus(herr, rec); got != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", got)
	}
	if he, ok := herr.(*echo.HTTPError); ok {
		if msg, _ := he.Message.(string); msg != "Invalid or expired token" {
			t.Errorf("unexpected message %q", msg)
		}
	}
}
