package doctor

import (
	"time"

	"github.com/google/uuid"
)

// Doctor maps to the doctor table. AvailableTimes is the doctor's authored
// availability template: the ordered vocabulary of bookable slot strings.
// It changes only through doctor updates, never as a side effect of booking.
type Doctor struct {
	ID             uuid.UUID `db:"id" json:"id"`
	Name           string    `db:"name" json:"name"`
	Email          string    `db:"email" json:"email"`
	Phone          string    `db:"phone" json:"phone"`
	PasswordHash   string    `db:"password_hash" json:"-"`
	Specialty      string    `db:"specialty" json:"specialty"`
	AvailableTimes []string  `db:"available_times" json:"available_times"`
	CreatedAt      time.Time `db:"created_at" json:"created_at"`
	UpdatedAt      time.Time `db:"updated_at" json:"updated_at"`
}

// DefaultAvailability seeds the template for doctors registered without one.
func DefaultAvailability() []string {
	return []string{"09:00 AM", "10:00 AM", "11:00 AM", "02:00 PM", "03:00 PM"}
}

// Criteria is an immutable set of optional doctor filters. A zero-value field
// means "no constraint on that field", never "match empty string".
type Criteria struct {
	Name      string // substring, case-insensitive
	Specialty string // exact, case-insensitive
	TimeOfDay string // AM or PM; doctor qualifies if any slot falls in that half
}
