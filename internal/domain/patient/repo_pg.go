package patient

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

const patientCols = `id, name, email, phone, password_hash, address, created_at, updated_at`

func (r *repoPG) FindByID(ctx context.Context, id uuid.UUID) (*Patient, error) {
	return scanPatient(r.pool.QueryRow(ctx, `SELECT `+patientCols+` FROM patient WHERE id = $1`, id))
}

func (r *repoPG) FindByEmail(ctx context.Context, email string) (*Patient, error) {
	return scanPatient(r.pool.QueryRow(ctx, `SELECT `+patientCols+` FROM patient WHERE LOWER(email) = LOWER($1)`, email))
}

func (r *repoPG) FindByEmailOrPhone(ctx context.Context, email, phone string) (*Patient, error) {
	return scanPatient(r.pool.QueryRow(ctx, `
		SELECT `+patientCols+` FROM patient
		WHERE LOWER(email) = LOWER($1) OR ($2 <> '' AND phone = $2)
		LIMIT 1`, email, phone))
}

func (r *repoPG) Save(ctx context.Context, p *Patient) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	_, err := r.pool.Exec(ctx, `
		INSERT INTO patient (id, name, email, phone, password_hash, address)
		VALUES ($1,$2,$3,$4,$5,$6)`,
		p.ID, p.Name, p.Email, p.Phone, p.PasswordHash, p.Address,
	)
	return err
}

func (r *repoPG) Update(ctx context.Context, p *Patient) error {
	_, err := r.pool.Exec(ctx, `
		UPDATE patient SET name=$2, email=$3, phone=$4, address=$5, updated_at=NOW()
		WHERE id = $1`,
		p.ID, p.Name, p.Email, p.Phone, p.Address,
	)
	return err
}

func scanPatient(row pgx.Row) (*Patient, error) {
	var p Patient
	err := row.Scan(&p.ID, &p.Name, &p.Email, &p.Phone, &p.PasswordHash, &p.Address, &p.CreatedAt, &p.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}
