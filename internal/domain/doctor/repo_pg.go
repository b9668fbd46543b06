package doctor

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type repoPG struct {
	pool *pgxpool.Pool
}

func NewRepo(pool *pgxpool.Pool) Repository {
	return &repoPG{pool: pool}
}

const doctorCols = `id, name, email, phone, password_hash, specialty, available_times, created_at, updated_at`

func (r *repoPG) FindByID(ctx context.Context, id uuid.UUID) (*Doctor, error) {
	return scanDoctor(r.pool.QueryRow(ctx, `SELECT `+doctorCols+` FROM doctor WHERE id = $1`, id))
}

func (r *repoPG) FindByEmail(ctx context.Context, email string) (*Doctor, error) {
	return scanDoctor(r.pool.QueryRow(ctx, `SELECT `+doctorCols+` FROM doctor WHERE LOWER(email) = LOWER($1)`, email))
}

func (r *repoPG) FindAll(ctx context.Context) ([]*Doctor, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+doctorCols+` FROM doctor ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectDoctors(rows)
}

func (r *repoPG) FindByNameAndSpecialty(ctx context.Context, name, specialty string) ([]*Doctor, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+doctorCols+` FROM doctor
		WHERE ($1 = '' OR name ILIKE $2)
		AND ($3 = '' OR LOWER(specialty) = LOWER($3))
		ORDER BY name`,
		name, "%"+name+"%", specialty)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectDoctors(rows)
}

func (r *repoPG) FindBySpecialty(ctx context.Context, specialty string) ([]*Doctor, error) {
	return r.FindByNameAndSpecialty(ctx, "", specialty)
}

func (r *repoPG) Save(ctx context.Context, d *Doctor) error {
	if d.ID == uuid.Nil {
		d.ID = uuid.New()
	}
	_, err := r.pool.Exec(ctx, `
		INSERT INTO doctor (id, name, email, phone, password_hash, specialty, available_times)
		VALUES ($1,$2,$3,$4,$5,$6,$7)`,
		d.ID, d.Name, d.Email, d.Phone, d.PasswordHash, d.Specialty, d.AvailableTimes,
	)
	return err
}

func (r *repoPG) Update(ctx context.Context, d *Doctor) error {
	_, err := r.pool.Exec(ctx, `
		UPDATE doctor SET
			name=$2, email=$3, phone=$4, specialty=$5, available_times=$6, updated_at=NOW()
		WHERE id = $1`,
		d.ID, d.Name, d.Email, d.Phone, d.Specialty, d.AvailableTimes,
	)
	return err
}

func (r *repoPG) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM doctor WHERE id = $1`, id)
	return err
}

func scanDoctor(row pgx.Row) (*Doctor, error) {
	var d Doctor
	err := row.Scan(
		&d.ID, &d.Name, &d.Email, &d.Phone, &d.PasswordHash, &d.Specialty,
		&d.AvailableTimes, &d.CreatedAt, &d.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &d, nil
}

func collectDoctors(rows pgx.Rows) ([]*Doctor, error) {
	var doctors []*Doctor
	for rows.Next() {
		var d Doctor
		if err := rows.Scan(
			&d.ID, &d.Name, &d.Email, &d.Phone, &d.PasswordHash, &d.Specialty,
			&d.AvailableTimes, &d.CreatedAt, &d.UpdatedAt,
		); err != nil {
			return nil, err
		}
		doctors = append(doctors, &d)
	}
	return doctors, rows.Err()
}
