package patient

import (
	"context"
	"errors"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/medibook/medibook/internal/platform/auth"
	"github.com/medibook/medibook/internal/platform/mail"
)

type mockRepo struct {
	byID    map[uuid.UUID]*Patient
	byEmail map[string]*Patient
	failAll bool
}

func newMockRepo() *mockRepo {
	return &mockRepo{byID: make(map[uuid.UUID]*Patient), byEmail: make(map[string]*Patient)}
}

func (m *mockRepo) Create(_ context.Context, p *Patient) error {
	if m.failAll {
		return errors.New("store down")
	}
	if _, ok := m.byEmail[p.Email]; ok {
		return ErrDuplicateEmail
	}
	p.ID = uuid.New()
	p.Role = Role
	m.byID[p.ID] = p
	m.byEmail[p.Email] = p
	return nil
}

func (m *mockRepo) GetByID(_ context.Context, id uuid.UUID) (*Patient, error) {
	if p, ok := m.byID[id]; ok {
		return p, nil
	}
	return nil, ErrNotFound
}

func (m *mockRepo) GetByEmail(_ context.Context, email string) (*Patient, error) {
	if p, ok := m.byEmail[email]; ok {
		return p, nil
	}
	return nil, ErrNotFound
}

func (m *mockRepo) UpdatePassword(_ context.Context, id uuid.UUID, hash string) error {
	p, ok := m.byID[id]
	if !ok {
		return ErrNotFound
	}
	p.PasswordHash = hash
	return nil
}

func (m *mockRepo) Count(_ context.Context) (int, error) { return len(m.byID), nil }

type mockSender struct {
	sent []mail.Message
	fail bool
}

func (m *mockSender) Send(_ context.Context, msg mail.Message) error {
	if m.fail {
		return errors.New("smtp down")
	}
	m.sent = append(m.sent, msg)
	return nil
}

func newTestService(repo Repository, sender mail.Sender) *Service {
	tokens := auth.NewTokenIssuer([]byte("test-secret"), time.Hour)
	return NewService(repo, tokens, sender, "http://localhost:3000", zerolog.New(os.Stderr))
}

func registerInput() RegisterInput {
	return RegisterInput{
		FullName:    "Jane Doe",
		Email:       "jane@example.com",
		Phone:       "555-0100",
		DateOfBirth: "1990-01-01",
		Gender:      "Female",
		Address:     "1 Main St",
		Password:    "password123",
	}
}

func TestRegister_CreatesPatientWithToken(t *testing.T) {
	repo := newMockRepo()
	svc := newTestService(repo, &mockSender{})

	res, err := svc.Register(context.Background(), registerInput())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Token == "" {
		t.Error("expected a token")
	}
	if res.FullName != "Jane Doe" || res.Email != "jane@example.com" {
		t.Errorf("unexpected identity fields: %+v", res)
	}

	stored := repo.byEmail["jane@example.com"]
	if stored == nil {
		t.Fatal("patient not persisted")
	}
	if stored.Role != Role {
		t.Errorf("expected role %q, got %q", Role, stored.Role)
	}
	if stored.PasswordHash == "password123" {
		t.Error("password stored in the clear")
	}
	if bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("password123")) != nil {
		t.Error("stored hash does not match the password")
	}
}

func TestRegister_DuplicateEmail(t *testing.T) {
	repo := newMockRepo()
	svc := newTestService(repo, &mockSender{})

	if _, err := svc.Register(context.Background(), registerInput()); err != nil {
		t.Fatalf("first register failed: %v", err)
	}
	_, err := svc.Register(context.Background(), registerInput())
	if !errors.Is(err, ErrDuplicateEmail) {
		t.Errorf("expected ErrDuplicateEmail, got %v", err)
	}
}

func TestLogin(t *testing.T) {
	repo := newMockRepo()
	svc := newTestService(repo, &mockSender{})
	if _, err := svc.Register(context.Background(), registerInput()); err != nil {
		t.Fatalf("register failed: %v", err)
	}

	res, err := svc.Login(context.Background(), "jane@example.com", "password123")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if res.Token == "" {
		t.Error("expected a token")
	}

	if _, err := svc.Login(context.Background(), "jane@example.com", "wrongpass"); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("wrong password: expected ErrInvalidCredentials, got %v", err)
	}
	if _, err := svc.Login(context.Background(), "nobody@example.com", "password123"); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("unknown email: expected ErrInvalidCredentials, got %v", err)
	}
}

func TestForgotPassword_SendsResetLink(t *testing.T) {
	repo := newMockRepo()
	sender := &mockSender{}
	svc := newTestService(repo, sender)
	if _, err := svc.Register(context.Background(), registerInput()); err != nil {
		t.Fatalf("register failed: %v", err)
	}

	if err := svc.ForgotPassword(context.Background(), "jane@example.com"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(sender.sent) != 1 {
		t.Fatalf("expected 1 email, got %d", len(sender.sent))
	}
	msg := sender.sent[0]
	if msg.To != "jane@example.com" {
		t.Errorf("sent to %q", msg.To)
	}
	if !strings.Contains(msg.HTML, "http://localhost:3000/reset-password/") {
		t.Error("reset link missing from body")
	}
}

func TestForgotPassword_UnknownEmail(t *testing.T) {
	svc := newTestService(newMockRepo(), &mockSender{})
	if err := svc.ForgotPassword(context.Background(), "nobody@example.com"); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestForgotPassword_SendFailure(t *testing.T) {
	repo := newMockRepo()
	svc := newTestService(repo, &mockSender{fail: true})
	if _, err := svc.Register(context.Background(), registerInput()); err != nil {
		t.Fatalf("register failed: %v", err)
	}
	if err := svc.ForgotPassword(context.Background(), "jane@example.com"); !errors.Is(err, ErrEmailSend) {
		t.Errorf("expected ErrEmailSend, got %v", err)
	}
}

func TestResetPassword_RoundTrip(t *testing.T) {
	repo := newMockRepo()
	sender := &mockSender{}
	svc := newTestService(repo, sender)
	if _, err := svc.Register(context.Background(), registerInput()); err != nil {
		t.Fatalf("register failed: %v", err)
	}
	if err := svc.ForgotPassword(context.Background(), "jane@example.com"); err != nil {
		t.Fatalf("forgot password failed: %v", err)
	}

	// Pull the token out of the emailed link.
	body := sender.sent[0].HTML
	idx := strings.Index(body, "/reset-password/")
	if idx < 0 {
		t.Fatal("no reset link in email")
	}
	token := strings.Fields(body[idx+len("/reset-password/"):])[0]

	if err := svc.ResetPassword(context.Background(), token, "newpassword1"); err != nil {
		t.Fatalf("reset failed: %v", err)
	}

	if _, err := svc.Login(context.Background(), "jane@example.com", "newpassword1"); err != nil {
		t.Errorf("login with new password failed: %v", err)
	}
	if _, err := svc.Login(context.Background(), "jane@example.com", "password123"); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("old password should no longer work, got %v", err)
	}
}

func TestResetPassword_BadToken(t *testing.T) {
	svc := newTestService(newMockRepo(), &mockSender{})
	if err := svc.ResetPassword(context.Background(), "garbage", "newpassword1"); !errors.Is(err, ErrInvalidResetToken) {
		t.Errorf("expected ErrInvalidResetToken, got %v", err)
	}
}

func TestResolveIdentity(t *testing.T) {
	repo := newMockRepo()
	svc := newTestService(repo, &mockSender{})
	res, err := svc.Register(context.Background(), registerInput())
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}

	caller, err := svc.ResolveIdentity(context.Background(), res.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if caller.Role != auth.RolePatient {
		t.Errorf("expected patient role, got %q", caller.Role)
	}
	if caller.Name != "Jane Doe" {
		t.Errorf("unexpected name %q", caller.Name)
	}

	if _, err := svc.ResolveIdentity(context.Background(), uuid.New()); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound for unknown id, got %v", err)
	}
}
