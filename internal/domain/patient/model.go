package patient

import (
	"time"

	"github.com/google/uuid"
)

// Patient maps to the patient table. Email and phone are both unique so a
// returning patient cannot register twice under either contact point.
type Patient struct {
	ID           uuid.UUID `db:"id" json:"id"`
	Name         string    `db:"name" json:"name"`
	Email        string    `db:"email" json:"email"`
	Phone        string    `db:"phone" json:"phone"`
	PasswordHash string    `db:"password_hash" json:"-"`
	Address      string    `db:"address" json:"address"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time `db:"updated_at" json:"updated_at"`
}
