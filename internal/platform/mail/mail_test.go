package mail

import (
	"context"
	"os"
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

func TestAppointmentConfirmation(t *testing.T) {
	body := AppointmentConfirmation("Jane Doe", "APT-123456", "Dr. John Smith", "2025-03-01", "09:00 AM - 10:00 AM")

	for _, want := range []string{"Jane Doe", "APT-123456", "Dr. John Smith", "2025-03-01", "09:00 AM - 10:00 AM", "Appointment Confirmed"} {
		if !strings.Contains(body, want) {
			t.Errorf("confirmation body missing %q", want)
		}
	}
}

func TestStatusUpdate_PanelColor(t *testing.T) {
	confirmed := StatusUpdate("Jane Doe", "APT-123456", "Confirmed")
	if !strings.Contains(confirmed, "#dcfce7") {
		t.Error("confirmed status should use the green panel")
	}

	cancelled := StatusUpdate("Jane Doe", "APT-123456", "Cancelled")
	if !strings.Contains(cancelled, "#fee2e2") {
		t.Error("non-confirmed status should use the red panel")
	}
	if !strings.Contains(cancelled, "Cancelled") {
		t.Error("body should include the new status")
	}
}

func TestPasswordReset(t *testing.T) {
	body := PasswordReset("http://localhost:3000/reset-password/tok")
	if strings.Count(body, "http://localhost:3000/reset-password/tok") != 2 {
		t.Error("reset body should include the link twice (href and text)")
	}
}

func TestStubSender(t *testing.T) {
	s := NewStubSender(zerolog.New(os.Stderr))
	err := s.Send(context.Background(), Message{To: "a@b.c", Subject: "hi", HTML: "<p>hi</p>"})
	if err != nil {
		t.Fatalf("stub sender should never fail: %v", err)
	}
}
