// Package appointment owns the booking ledger and the slot
// availability calculation.
package appointment

import (
	"time"

	"github.com/google/uuid"
)

const (
	StatusPending   = "Pending"
	StatusConfirmed = "Confirmed"
	StatusCompleted = "Completed"
	StatusCancelled = "Cancelled"
)

type Appointment struct {
	ID                uuid.UUID `json:"id"`
	PatientID         uuid.UUID `json:"patientId"`
	DoctorID          uuid.UUID `json:"doctorId"`
	AppointmentDate   string    `json:"appointmentDate"`
	TimeSlot          string    `json:"timeSlot"`
	ReasonForVisit    string    `json:"reasonForVisit"`
	AppointmentNumber string    `json:"appointmentNumber"`
	Status            string    `json:"status"`
	CreatedAt         time.Time `json:"createdAt"`
	UpdatedAt         time.Time `json:"updatedAt"`
}

// DoctorRef is the doctor slice of an expanded appointment. The photo
// is only populated on the patient's own listing.
type DoctorRef struct {
	Name           string `json:"name"`
	Specialization string `json:"specialization"`
	ProfilePhoto   string `json:"profilePhoto,omitempty"`
}

type PatientRef struct {
	FullName string `json:"fullName"`
	Email    string `json:"email"`
	Phone    string `json:"phone,omitempty"`
}

// Detail is an appointment with its references expanded for display.
type Detail struct {
	Appointment
	Doctor  *DoctorRef  `json:"doctor,omitempty"`
	Patient *PatientRef `json:"patient,omitempty"`
}
