package auth

import (
	"testing"
	"time"

	"github.com/google/uuid"
)

func TestIssueVerify_RoundTrip(t *testing.T) {
	issuer := NewTokenIssuer([]byte("test-secret"), time.Hour)
	id := uuid.New()

	token, err := issuer.Issue(id)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got, err := issuer.Verify(token)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != id {
		t.Errorf("expected subject %s, got %s", id, got)
	}
}

func TestVerify_Expired(t *testing.T) {
	issuer := NewTokenIssuer([]byte("test-secret"), -time.Minute)
	token, err := issuer.Issue(uuid.New())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if _, err := issuer.Verify(token); err == nil {
		t.Error("expected error for expired token")
	}
}

func TestVerify_WrongSecret(t *testing.T) {
	issuer := NewTokenIssuer([]byte("test-secret"), time.Hour)
	other := NewTokenIssuer([]byte("other-secret"), time.Hour)

	token, err := issuer.Issue(uuid.New())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if _, err := other.Verify(token); err == nil {
		t.Error("expected error for token signed with a different secret")
	}
}

func TestVerify_Malformed(t *testing.T) {
	issuer := NewTokenIssuer([]byte("test-secret"), time.Hour)
	if _, err := issuer.Verify("not-a-token"); err == nil {
		t.Error("expected error for malformed token")
	}
}

func TestVerify_Tampered(t *testing.T) {
	issuer := NewTokenIssuer([]byte("test-secret"), time.Hour)
	token, err := issuer.Issue(uuid.New())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	tampered := token[:len(token)-2] + "xx"
	if _, err := issuer.Verify(tampered); err == nil {
		t.Error("expected error for tampered token")
	}
}

func TestIssueReset_VerifiesToSameSubject(t *testing.T) {
	issuer := NewTokenIssuer([]byte("test-secret"), time.Hour)
	id := uuid.New()

	token, err := issuer.IssueReset(id)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got, err := issuer.Verify(token)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != id {
		t.Errorf("expected subject %s, got %s", id, got)
	}
}
