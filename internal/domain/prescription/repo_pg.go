package prescription

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type repoPG struct {
	pool *pgxpool.Pool
}

func NewRepo(pool *pgxpool.Pool) Repository {
	return &repoPG{pool: pool}
}

const rxCols = `id, appointment_id, patient_name, medication, dosage, notes, created_at`

func (r *repoPG) FindByAppointment(ctx context.Context, appointmentID uuid.UUID) (*Prescription, error) {
	var p Prescription
	err := r.pool.QueryRow(ctx, `SELECT `+rxCols+` FROM prescription WHERE appointment_id = $1`, appointmentID).
		Scan(&p.ID, &p.AppointmentID, &p.PatientName, &p.Medication, &p.Dosage, &p.Notes, &p.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *repoPG) Save(ctx context.Context, p *Prescription) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	_, err := r.pool.Exec(ctx, `
		INSERT INTO prescription (id, appointment_id, patient_name, medication, dosage, notes)
		VALUES ($1,$2,$3,$4,$5,$6)`,
		p.ID, p.AppointmentID, p.PatientName, p.Medication, p.Dosage, p.Notes,
	)
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return ErrDuplicate
	}
	return err
}
