package appointment

import (
	"context"
	"errors"
	"time"

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

const apptCols = `a.id, a.doctor_id, a.patient_id, a.appointment_date, a.appointment_time, a.status,
	d.name, p.name, a.created_at, a.updated_at`

const apptFrom = ` FROM appointment a
	JOIN doctor d ON d.id = a.doctor_id
	JOIN patient p ON p.id = a.patient_id`

func (r *repoPG) FindByID(ctx context.Context, id uuid.UUID) (*Appointment, error) {
	return scanAppt(r.pool.QueryRow(ctx, `SELECT `+apptCols+apptFrom+` WHERE a.id = $1`, id))
}

func (r *repoPG) FindByPatient(ctx context.Context, patientID uuid.UUID) ([]*Appointment, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+apptCols+apptFrom+`
		WHERE a.patient_id = $1
		ORDER BY a.appointment_date, a.appointment_time`, patientID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectAppts(rows)
}

func (r *repoPG) FindByDoctorAndDate(ctx context.Context, doctorID uuid.UUID, date time.Time) ([]*Appointment, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+apptCols+apptFrom+`
		WHERE a.doctor_id = $1 AND a.appointment_date = $2
		ORDER BY a.appointment_time`, doctorID, date)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectAppts(rows)
}

func (r *repoPG) Save(ctx context.Context, a *Appointment) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	if a.Status == "" {
		a.Status = StatusScheduled
	}
	_, err := r.pool.Exec(ctx, `
		INSERT INTO appointment (id, doctor_id, patient_id, appointment_date, appointment_time, status)
		VALUES ($1,$2,$3,$4,$5,$6)`,
		a.ID, a.DoctorID, a.PatientID, a.Date, a.Time, a.Status,
	)
	return mapSlotViolation(err)
}

func (r *repoPG) Update(ctx context.Context, a *Appointment) error {
	_, err := r.pool.Exec(ctx, `
		UPDATE appointment SET
			appointment_date=$2, appointment_time=$3, status=$4, updated_at=NOW()
		WHERE id = $1`,
		a.ID, a.Date, a.Time, a.Status,
	)
	return mapSlotViolation(err)
}

func (r *repoPG) UpdateStatus(ctx context.Context, id uuid.UUID, status Status) error {
	tag, err := r.pool.Exec(ctx, `UPDATE appointment SET status=$2, updated_at=NOW() WHERE id = $1`, id, status)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *repoPG) DeleteAllByDoctor(ctx context.Context, doctorID uuid.UUID) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM appointment WHERE doctor_id = $1`, doctorID)
	return err
}

func (r *repoPG) BookedTimes(ctx context.Context, doctorID uuid.UUID, date time.Time, exclude uuid.UUID) ([]string, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT appointment_time FROM appointment
		WHERE doctor_id = $1 AND appointment_date = $2
		AND status <> $3
		AND id <> $4`,
		doctorID, date, StatusCancelled, exclude)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var times []string
	for rows.Next() {
		var t string
		if err := rows.Scan(&t); err != nil {
			return nil, err
		}
		times = append(times, t)
	}
	return times, rows.Err()
}

// mapSlotViolation turns the partial unique index violation on
// (doctor_id, appointment_date, appointment_time) into ErrDuplicateSlot.
func mapSlotViolation(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return ErrDuplicateSlot
	}
	return err
}

func scanAppt(row pgx.Row) (*Appointment, error) {
	var a Appointment
	err := row.Scan(
		&a.ID, &a.DoctorID, &a.PatientID, &a.Date, &a.Time, &a.Status,
		&a.DoctorName, &a.PatientName, &a.CreatedAt, &a.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func collectAppts(rows pgx.Rows) ([]*Appointment, error) {
	var appts []*Appointment
	for rows.Next() {
		var a Appointment
		if err := rows.Scan(
			&a.ID, &a.DoctorID, &a.PatientID, &a.Date, &a.Time, &a.Status,
			&a.DoctorName, &a.PatientName, &a.CreatedAt, &a.UpdatedAt,
		); err != nil {
			return nil, err
		}
		appts = append(appts, &a)
	}
	return appts, rows.Err()
}
