package admin

import (
	"time"

	"github.com/google/uuid"
)

// Admin is a back-office account. Admins authenticate by username and hold
// full doctor-management rights.
type Admin struct {
	ID           uuid.UUID `db:"id" json:"id"`
	Username     string    `db:"username" json:"username"`
	PasswordHash string    `db:"password_hash" json:"-"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
}
