package repo

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/lib/pq"
)

const schema = `
CREATE TABLE IF NOT EXISTS users (
	id       SERIAL PRIMARY KEY,
	login    TEXT NOT NULL UNIQUE,
	email    TEXT NOT NULL,
	password TEXT NOT NULL
);
CREATE TABLE IF NOT EXISTS scenarios (
	id         SERIAL PRIMARY KEY,
	user_id    INTEGER NOT NULL REFERENCES users(id) ON DELETE CASCADE,
	name       TEXT NOT NULL,
	input      JSONB NOT NULL,
	created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
	UNIQUE (user_id, name)
);`

type PostgresRepository struct {
	db *sql.DB
}

func NewPostgres(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// Open connects with the lib/pq driver. sslmode=require is appended when the
// connection string does not choose one.
func Open(ctx context.Context, connStr string) (*sql.DB, error) {
	if !strings.Contains(connStr, "sslmode=") {
		if strings.HasPrefix(connStr, "postgres://") || strings.HasPrefix(connStr, "postgresql://") {
			if strings.Contains(connStr, "?") {
				connStr += "&sslmode=require"
			} else {
				connStr += "?sslmode=require"
			}
		} else {
			connStr += " sslmode=require"
		}
	}
	db, err := sql.Open("postgres", connStr)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(25)
	db.SetConnMaxLifetime(5 * time.Minute)

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, err
	}
	return db, nil
}

func (r *PostgresRepository) EnsureSchema(ctx context.Context) error {
	_, err := r.db.ExecContext(ctx, schema)
	return err
}

func (r *PostgresRepository) CreateUser(ctx context.Context, login, email, passwordHash string) (int, error) {
	var id int
	query := "INSERT INTO users (login, email, password) VALUES ($1, $2, $3) RETURNING id"
	err := r.db.QueryRowContext(ctx, query, login, email, passwordHash).Scan(&id)
	return id, mapErr(err)
}

func (r *PostgresRepository) GetByLogin(ctx context.Context, login string) (int, string, error) {
	var id int
	var hash string
	err := r.db.QueryRowContext(ctx, "SELECT id, password FROM users WHERE login=$1", login).Scan(&id, &hash)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, "", nil
	}
	if err != nil {
		return 0, "", err
	}
	return id, hash, nil
}

func (r *PostgresRepository) SaveScenario(ctx context.Context, s Scenario) (Scenario, error) {
	raw, err := json.Marshal(s.Input)
	if err != nil {
		return Scenario{}, err
	}
	query := `INSERT INTO scenarios (user_id, name, input) VALUES ($1, $2, $3)
		ON CONFLICT (user_id, name) DO UPDATE SET input = EXCLUDED.input
		RETURNING id, created_at`
	err = r.db.QueryRowContext(ctx, query, s.UserID, s.Name, raw).Scan(&s.ID, &s.CreatedAt)
	if err != nil {
		return Scenario{}, mapErr(err)
	}
	return s, nil
}

func (r *PostgresRepository) ListScenarios(ctx context.Context, userID int) ([]Scenario, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT id, user_id, name, input, created_at FROM scenarios WHERE user_id=$1 ORDER BY created_at, id", userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []Scenario{}
	for rows.Next() {
		s, err := scanScenario(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

func (r *PostgresRepository) GetScenario(ctx context.Context, userID, id int) (Scenario, error) {
	row := r.db.QueryRowContext(ctx,
		"SELECT id, user_id, name, input, created_at FROM scenarios WHERE user_id=$1 AND id=$2", userID, id)
	s, err := scanScenario(row)
	if errors.Is(err, sql.ErrNoRows) {
		return Scenario{}, ErrNotFound
	}
	return s, err
}

func (r *PostgresRepository) DeleteScenario(ctx context.Context, userID, id int) error {
	res, err := r.db.ExecContext(ctx, "DELETE FROM scenarios WHERE user_id=$1 AND id=$2", userID, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanScenario(row scanner) (Scenario, error) {
	var s Scenario
	var raw []byte
	if err := row.Scan(&s.ID, &s.UserID, &s.Name, &raw, &s.CreatedAt); err != nil {
		return Scenario{}, err
	}
	if err := json.Unmarshal(raw, &s.Input); err != nil {
		return Scenario{}, err
	}
	return s, nil
}

func mapErr(err error) error {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == "23505" {
		return ErrDuplicate
	}
	return err
}
