package store

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shandysiswandi/userlab/internal/pkg/goerror"
	"github.com/shandysiswandi/userlab/internal/pkg/instrument"
	"github.com/shandysiswandi/userlab/internal/registration/entity"
)

var schema = []string{
	`CREATE TABLE IF NOT EXISTS registration_users (
		id         BIGINT PRIMARY KEY,
		firstname  TEXT NOT NULL,
		lastname   TEXT NOT NULL,
		email      TEXT NOT NULL,
		city       TEXT NOT NULL,
		zip_code   CHAR(5) NOT NULL,
		birth      DATE NOT NULL,
		created_at TIMESTAMPTZ NOT NULL
	)`,
	`CREATE UNIQUE INDEX IF NOT EXISTS registration_users_email_key ON registration_users (lower(email))`,
}

const (
	queryInsertUser = `INSERT INTO registration_users
		(id, firstname, lastname, email, city, zip_code, birth, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

	// LIMIT NULL returns every row.
	queryListUsers = `SELECT id, firstname, lastname, email, city, zip_code, birth, created_at
		FROM (
			SELECT * FROM registration_users ORDER BY id DESC LIMIT $1
		) recent
		ORDER BY id`
)

// Postgres stores users in the registration_users table.
type Postgres struct {
	conn *pgxpool.Pool
	ins  instrument.Instrumentation
}

// NewPostgres ensures the schema exists and returns the store.
func NewPostgres(ctx context.Context, conn *pgxpool.Pool, ins instrument.Instrumentation) (*Postgres, error) {
	for _, stmt := range schema {
		if _, err := conn.Exec(ctx, stmt); err != nil {
			return nil, err
		}
	}

	return &Postgres{conn: conn, ins: ins}, nil
}

// - 23505 unique violation → goerror.ErrConflict
func (p *Postgres) mapError(err error) error {
	if err == nil {
		return nil
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return goerror.ErrConflict
	}

	return err
}

func (p *Postgres) AppendUser(ctx context.Context, u entity.User) (err error) {
	ctx, span := startSpan(ctx, p.ins, "Postgres.AppendUser")
	defer func() { endSpan(span, err) }()

	_, err = p.conn.Exec(ctx, queryInsertUser,
		u.ID, u.Firstname, u.Lastname, u.Email, u.City, u.ZipCode, u.Birth, u.CreatedAt)
	err = p.mapError(err)
	return err
}

func (p *Postgres) ListUsers(ctx context.Context, limit int) (_ []entity.User, err error) {
	ctx, span := startSpan(ctx, p.ins, "Postgres.ListUsers")
	defer func() { endSpan(span, err) }()

	var arg any
	if limit > 0 {
		arg = limit
	}

	return p.list(ctx, arg)
}

func (p *Postgres) AllUsers(ctx context.Context) (_ []entity.User, err error) {
	ctx, span := startSpan(ctx, p.ins, "Postgres.AllUsers")
	defer func() { endSpan(span, err) }()

	return p.list(ctx, nil)
}

func (p *Postgres) list(ctx context.Context, limit any) ([]entity.User, error) {
	rows, err := p.conn.Query(ctx, queryListUsers, limit)
	if err != nil {
		return nil, p.mapError(err)
	}

	users, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (entity.User, error) {
		var u entity.User
		err := row.Scan(&u.ID, &u.Firstname, &u.Lastname, &u.Email, &u.City, &u.ZipCode, &u.Birth, &u.CreatedAt)
		return u, err
	})
	if err != nil {
		return nil, p.mapError(err)
	}

	return users, nil
}
