// Package doctor owns the public doctor directory and its admin CRUD.
package doctor

import (
	"time"

	"github.com/google/uuid"
)

// TimeSlot is one bookable window. Start and end are wall-clock
// strings ("09:00"); they are compared as opaque text, never parsed.
type TimeSlot struct {
	Start string `json:"start" validate:"required"`
	End   string `json:"end" validate:"required"`
}

type Doctor struct {
	ID                 uuid.UUID  `json:"id"`
	Name               string     `json:"name"`
	Specialization     string     `json:"specialization"`
	Department         string     `json:"department"`
	Qualification      string     `json:"qualification"`
	Experience         int        `json:"experience"`
	ConsultationFee    float64    `json:"consultationFee"`
	ProfilePhoto       string     `json:"profilePhoto"`
	AvailableDays      []string   `json:"availableDays"`
	AvailableTimeSlots []TimeSlot `json:"availableTimeSlots"`
	Email              string     `json:"email"`
	Phone              string     `json:"phone"`
	Bio                string     `json:"bio"`
	IsActive           bool       `json:"isActive"`
	CreatedAt          time.Time  `json:"createdAt"`
	UpdatedAt          time.Time  `json:"updatedAt"`
}
