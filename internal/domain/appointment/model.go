package appointment

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Status is the appointment lifecycle state. It is a closed set; anything
// else is rejected at the boundary.
type Status string

const (
	StatusScheduled Status = "scheduled"
	StatusCompleted Status = "completed"
	StatusCancelled Status = "cancelled"
	StatusNoShow    Status = "no-show"
)

func ParseStatus(s string) (Status, error) {
	switch Status(s) {
	case StatusScheduled, StatusCompleted, StatusCancelled, StatusNoShow:
		return Status(s), nil
	}
	return "", fmt.Errorf("unknown appointment status %q", s)
}

// Past reports whether the status belongs to the "already happened" bucket.
func (s Status) Past() bool {
	return s == StatusCompleted || s == StatusNoShow
}

// Appointment maps to the appointment table. Time is a slot string drawn
// from the doctor's availability vocabulary, not a timestamp. DoctorName and
// PatientName are joined read-only fields for listing responses.
type Appointment struct {
	ID          uuid.UUID `db:"id" json:"id"`
	DoctorID    uuid.UUID `db:"doctor_id" json:"doctor_id"`
	PatientID   uuid.UUID `db:"patient_id" json:"patient_id"`
	Date        time.Time `db:"appointment_date" json:"date"`
	Time        string    `db:"appointment_time" json:"time"`
	Status      Status    `db:"status" json:"status"`
	DoctorName  string    `db:"doctor_name" json:"doctor_name,omitempty"`
	PatientName string    `db:"patient_name" json:"patient_name,omitempty"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time `db:"updated_at" json:"updated_at"`
}

// BookingRequest is a validated-later request for a new appointment.
type BookingRequest struct {
	DoctorID uuid.UUID
	Date     time.Time
	Time     string
}

// Criteria filters a patient's own appointment listing. A zero-value field
// means "no constraint on that field".
type Criteria struct {
	Condition  string // "past" or "future"; anything else is rejected
	DoctorName string // exact, case-insensitive
}

const (
	ConditionPast   = "past"
	ConditionFuture = "future"
)
