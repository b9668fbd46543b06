package admin

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

const adminCols = `id, username, password_hash, created_at`

func (r *repoPG) FindByID(ctx context.Context, id uuid.UUID) (*Admin, error) {
	return scanAdmin(r.pool.QueryRow(ctx, `SELECT `+adminCols+` FROM admin_account WHERE id = $1`, id))
}

func (r *repoPG) FindByUsername(ctx context.Context, username string) (*Admin, error) {
	return scanAdmin(r.pool.QueryRow(ctx, `SELECT `+adminCols+` FROM admin_account WHERE username = $1`, username))
}

func (r *repoPG) Save(ctx context.Context, a *Admin) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	_, err := r.pool.Exec(ctx, `
		INSERT INTO admin_account (id, username, password_hash)
		VALUES ($1,$2,$3)`,
		a.ID, a.Username, a.PasswordHash,
	)
	return err
}

func scanAdmin(row pgx.Row) (*Admin, error) {
	var a Admin
	err := row.Scan(&a.ID, &a.Username, &a.PasswordHash, &a.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &a, nil
}
