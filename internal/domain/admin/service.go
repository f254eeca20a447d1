package admin

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/medibook/medibook/internal/platform/auth"
)

var ErrInvalidCredentials = errors.New("invalid email or password")

// Counter reports the size of another domain's store; the dashboard
// aggregates one per domain without importing those packages.
type Counter interface {
	Count(ctx context.Context) (int, error)
}

type Service struct {
	repo         Repository
	tokens       *auth.TokenIssuer
	doctors      Counter
	patients     Counter
	appointments Counter
}

func NewService(repo Repository, tokens *auth.TokenIssuer, doctors, patients, appointments Counter) *Service {
	return &Service{repo: repo, tokens: tokens, doctors: doctors, patients: patients, appointments: appointments}
}

func (s *Service) Login(ctx context.Context, email, password string) (*AuthResult, error) {
	a, err := s.repo.GetByEmail(ctx, email)
	if errors.Is(err, ErrNotFound) {
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, err
	}
	if bcrypt.CompareHashAndPassword([]byte(a.PasswordHash), []byte(password)) != nil {
		return nil, ErrInvalidCredentials
	}

	token, err := s.tokens.Issue(a.ID)
	if err != nil {
		return nil, err
	}
	return &AuthResult{ID: a.ID, Username: a.Username, Email: a.Email, Role: a.Role, Token: token}, nil
}

func (s *Service) Stats(ctx context.Context) (*Stats, error) {
	doctors, err := s.doctors.Count(ctx)
	if err != nil {
		return nil, err
	}
	patients, err := s.patients.Count(ctx)
	if err != nil {
		return nil, err
	}
	appointments, err := s.appointments.Count(ctx)
	if err != nil {
		return nil, err
	}
	return &Stats{Doctors: doctors, Patients: patients, Appointments: appointments}, nil
}

// ResolveIdentity satisfies auth.IdentityResolver; the auth middleware
// consults it after the patient store misses.
func (s *Service) ResolveIdentity(ctx context.Context, id uuid.UUID) (*auth.Caller, error) {
	a, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return &auth.Caller{ID: a.ID, Name: a.Username, Email: a.Email, Role: auth.RoleAdmin}, nil
}
