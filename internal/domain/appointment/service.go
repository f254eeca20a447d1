package appointment

import (
	"context"
	"fmt"
	"math/rand"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/medibook/medibook/internal/domain/doctor"
	"github.com/medibook/medibook/internal/domain/patient"
	"github.com/medibook/medibook/internal/platform/mail"
)

var validStatuses = map[string]bool{
	StatusPending:   true,
	StatusConfirmed: true,
	StatusCompleted: true,
	StatusCancelled: true,
}

// ErrInvalidStatus rejects values outside the four known statuses.
// Transitions between the four are deliberately unconstrained.
var ErrInvalidStatus = fmt.Errorf("invalid appointment status")

// DoctorDirectory is the slice of the doctor domain the ledger needs.
type DoctorDirectory interface {
	Get(ctx context.Context, id uuid.UUID) (*doctor.Doctor, error)
}

// PatientDirectory resolves patients for notification addressing.
type PatientDirectory interface {
	Profile(ctx context.Context, id uuid.UUID) (*patient.Patient, error)
}

type Service struct {
	repo     Repository
	doctors  DoctorDirectory
	patients PatientDirectory
	mailer   mail.Sender
	logger   zerolog.Logger
}

func NewService(repo Repository, doctors DoctorDirectory, patients PatientDirectory, mailer mail.Sender, logger zerolog.Logger) *Service {
	return &Service{repo: repo, doctors: doctors, patients: patients, mailer: mailer, logger: logger}
}

// newAppointmentNumber generates the human-facing reference code. The
// value is random and not retried on collision; the unique index on
// appointment_number rejects the rare duplicate.
func newAppointmentNumber() string {
	return fmt.Sprintf("APT-%d", 100000+rand.Intn(900000))
}

type BookInput struct {
	DoctorID        uuid.UUID
	AppointmentDate string
	TimeSlot        string
	ReasonForVisit  string
}

// Book creates a Pending appointment for the caller. The existence
// pre-check keeps the common double-booking path on a clean error; the
// partial unique index resolves the check-then-insert race by failing
// the losing write with ErrSlotTaken.
func (s *Service) Book(ctx context.Context, patientID uuid.UUID, in BookInput) (*Appointment, error) {
	d, err := s.doctors.Get(ctx, in.DoctorID)
	if err != nil {
		return nil, err
	}

	taken, err := s.repo.ExistsActive(ctx, in.DoctorID, in.AppointmentDate, in.TimeSlot)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, ErrSlotTaken
	}

	a := &Appointment{
		PatientID:         patientID,
		DoctorID:          in.DoctorID,
		AppointmentDate:   in.AppointmentDate,
		TimeSlot:          in.TimeSlot,
		ReasonForVisit:    in.ReasonForVisit,
		AppointmentNumber: newAppointmentNumber(),
		Status:            StatusPending,
	}
	if err := s.repo.Create(ctx, a); err != nil {
		return nil, err
	}

	go s.sendConfirmation(a, d.Name)
	return a, nil
}

func (s *Service) sendConfirmation(a *Appointment, doctorName string) {
	ctx := context.Background()
	p, err := s.patients.Profile(ctx, a.PatientID)
	if err != nil {
		s.logger.Error().Err(err).Str("appointment", a.AppointmentNumber).Msg("confirmation email skipped, patient lookup failed")
		return
	}
	msg := mail.Message{
		To:      p.Email,
		Subject: "Appointment Confirmation",
		HTML:    mail.AppointmentConfirmation(p.FullName, a.AppointmentNumber, doctorName, a.AppointmentDate, a.TimeSlot),
	}
	if err := s.mailer.Send(ctx, msg); err != nil {
		s.logger.Error().Err(err).Str("appointment", a.AppointmentNumber).Msg("confirmation email failed")
	}
}

// AvailableSlots subtracts booked, non-cancelled slots from the
// doctor's configured windows. Comparison is exact string equality on
// the "start - end" rendering, in the doctor's configured order.
func (s *Service) AvailableSlots(ctx context.Context, doctorID uuid.UUID, date string) ([]string, error) {
	d, err := s.doctors.Get(ctx, doctorID)
	if err != nil {
		return nil, err
	}

	booked, err := s.repo.BookedSlots(ctx, doctorID, date)
	if err != nil {
		return nil, err
	}
	taken := make(map[string]bool, len(booked))
	for _, slot := range booked {
		taken[slot] = true
	}

	available := []string{}
	for _, w := range d.AvailableTimeSlots {
		slot := fmt.Sprintf("%s - %s", w.Start, w.End)
		if !taken[slot] {
			available = append(available, slot)
		}
	}
	return available, nil
}

func (s *Service) MyAppointments(ctx context.Context, patientID uuid.UUID) ([]*Detail, error) {
	return s.repo.ListByPatient(ctx, patientID)
}

// Get returns any appointment to any authenticated caller. Restricting
// it to the owning patient or an admin is a known gap carried as-is.
func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Detail, error) {
	return s.repo.GetDetail(ctx, id)
}

// UpdateStatus sets any of the four statuses with no transition rules,
// then notifies the patient best-effort.
func (s *Service) UpdateStatus(ctx context.Context, id uuid.UUID, status string) (*Appointment, error) {
	if !validStatuses[status] {
		return nil, ErrInvalidStatus
	}

	a, err := s.repo.UpdateStatus(ctx, id, status)
	if err != nil {
		return nil, err
	}

	go s.sendStatusUpdate(a)
	return a, nil
}

func (s *Service) sendStatusUpdate(a *Appointment) {
	ctx := context.Background()
	p, err := s.patients.Profile(ctx, a.PatientID)
	if err != nil {
		s.logger.Error().Err(err).Str("appointment", a.AppointmentNumber).Msg("status email skipped, patient lookup failed")
		return
	}
	msg := mail.Message{
		To:      p.Email,
		Subject: "Appointment " + a.Status,
		HTML:    mail.StatusUpdate(p.FullName, a.AppointmentNumber, a.Status),
	}
	if err := s.mailer.Send(ctx, msg); err != nil {
		s.logger.Error().Err(err).Str("appointment", a.AppointmentNumber).Msg("status email failed")
	}
}

func (s *Service) ListAll(ctx context.Context) ([]*Detail, error) {
	return s.repo.ListAll(ctx)
}

func (s *Service) Count(ctx context.Context) (int, error) {
	return s.repo.Count(ctx)
}
