package appointment

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

var (
	ErrNotFound = errors.New("appointment not found")

	// ErrSlotTaken surfaces the unique index on (doctor, date, slot)
	// for non-cancelled rows. The pre-check in the booking flow catches
	// most duplicates; this one catches the race the pre-check cannot.
	ErrSlotTaken = errors.New("time slot already booked")

	// ErrDuplicateNumber surfaces a generated appointment number
	// collision. Numbers are random and not retried.
	ErrDuplicateNumber = errors.New("appointment number already in use")
)

type Repository interface {
	Create(ctx context.Context, a *Appointment) error
	GetByID(ctx context.Context, id uuid.UUID) (*Appointment, error)
	GetDetail(ctx context.Context, id uuid.UUID) (*Detail, error)
	ListByPatient(ctx context.Context, patientID uuid.UUID) ([]*Detail, error)
	ListAll(ctx context.Context) ([]*Detail, error)
	BookedSlots(ctx context.Context, doctorID uuid.UUID, date string) ([]string, error)
	ExistsActive(ctx context.Context, doctorID uuid.UUID, date, slot string) (bool, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status string) (*Appointment, error)
	Count(ctx context.Context) (int, error)
}
