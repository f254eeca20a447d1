package patient

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/medibook/medibook/internal/platform/auth"
	"github.com/medibook/medibook/internal/platform/mail"
)

var (
	// ErrInvalidCredentials covers both unknown email and password
	// mismatch so the response text cannot be used to enumerate users.
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrInvalidResetToken  = errors.New("invalid or expired token")
	ErrEmailSend          = errors.New("email could not be sent")
)

type Service struct {
	repo      Repository
	tokens    *auth.TokenIssuer
	mailer    mail.Sender
	clientURL string
	logger    zerolog.Logger
}

func NewService(repo Repository, tokens *auth.TokenIssuer, mailer mail.Sender, clientURL string, logger zerolog.Logger) *Service {
	return &Service{repo: repo, tokens: tokens, mailer: mailer, clientURL: clientURL, logger: logger}
}

type RegisterInput struct {
	FullName    string
	Email       string
	Phone       string
	DateOfBirth string
	Gender      string
	Address     string
	Password    string
}

// Register creates a patient account and returns a signed token. The
// email is pre-checked before the insert; the unique index on email is
// the real guarantee and also maps to ErrDuplicateEmail.
func (s *Service) Register(ctx context.Context, in RegisterInput) (*AuthResult, error) {
	if _, err := s.repo.GetByEmail(ctx, in.Email); err == nil {
		return nil, ErrDuplicateEmail
	} else if !errors.Is(err, ErrNotFound) {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	p := &Patient{
		FullName:     in.FullName,
		Email:        in.Email,
		Phone:        in.Phone,
		DateOfBirth:  in.DateOfBirth,
		Gender:       in.Gender,
		Address:      in.Address,
		PasswordHash: string(hash),
	}
	if err := s.repo.Create(ctx, p); err != nil {
		return nil, err
	}

	token, err := s.tokens.Issue(p.ID)
	if err != nil {
		return nil, err
	}
	return &AuthResult{ID: p.ID, FullName: p.FullName, Email: p.Email, Token: token}, nil
}

func (s *Service) Login(ctx context.Context, email, password string) (*AuthResult, error) {
	p, err := s.repo.GetByEmail(ctx, email)
	if errors.Is(err, ErrNotFound) {
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, err
	}
	if bcrypt.CompareHashAndPassword([]byte(p.PasswordHash), []byte(password)) != nil {
		return nil, ErrInvalidCredentials
	}

	token, err := s.tokens.Issue(p.ID)
	if err != nil {
		return nil, err
	}
	return &AuthResult{ID: p.ID, FullName: p.FullName, Email: p.Email, Token: token}, nil
}

func (s *Service) Profile(ctx context.Context, id uuid.UUID) (*Patient, error) {
	return s.repo.GetByID(ctx, id)
}

// ForgotPassword issues a short-lived reset token and emails the reset
// link. Unlike the booking notifications this send is synchronous: the
// caller needs to know whether the link went out.
func (s *Service) ForgotPassword(ctx context.Context, email string) error {
	p, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		return err
	}

	token, err := s.tokens.IssueReset(p.ID)
	if err != nil {
		return err
	}
	resetURL := fmt.Sprintf("%s/reset-password/%s", s.clientURL, token)

	msg := mail.Message{
		To:      p.Email,
		Subject: "Password Reset Request",
		HTML:    mail.PasswordReset(resetURL),
	}
	if err := s.mailer.Send(ctx, msg); err != nil {
		s.logger.Error().Err(err).Str("email", p.Email).Msg("password reset email failed")
		return ErrEmailSend
	}
	return nil
}

// ResetPassword verifies the reset token and overwrites the password.
// Tokens are not single-use; they stay valid until the 10 minute
// expiry even after a successful reset.
func (s *Service) ResetPassword(ctx context.Context, token, password string) error {
	id, err := s.tokens.Verify(token)
	if err != nil {
		return ErrInvalidResetToken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	return s.repo.UpdatePassword(ctx, id, string(hash))
}

// ResolveIdentity satisfies auth.IdentityResolver for the auth middleware.
func (s *Service) ResolveIdentity(ctx context.Context, id uuid.UUID) (*auth.Caller, error) {
	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return &auth.Caller{ID: p.ID, Name: p.FullName, Email: p.Email, Role: auth.RolePatient}, nil
}

func (s *Service) Count(ctx context.Context) (int, error) {
	return s.repo.Count(ctx)
}
