package repo

import (
	"context"
	"errors"
	"time"

	"Radiant/internal/calc/dashboard"
)

var (
	ErrNotFound  = errors.New("not found")
	ErrDuplicate = errors.New("already exists")
)

type Repository interface {
	CreateUser(ctx context.Context, login, email, passwordHash string) (int, error)
	// GetByLogin returns id 0 and no error when the login is unknown.
	GetByLogin(ctx context.Context, login string) (int, string, error)

	SaveScenario(ctx context.Context, s Scenario) (Scenario, error)
	ListScenarios(ctx context.Context, userID int) ([]Scenario, error)
	GetScenario(ctx context.Context, userID, id int) (Scenario, error)
	DeleteScenario(ctx context.Context, userID, id int) error
}

// Scenario is a named set of calculator inputs saved by a user.
type Scenario struct {
	ID        int             `json:"id"`
	UserID    int             `json:"-"`
	Name      string          `json:"name"`
	Input     dashboard.Input `json:"input"`
	CreatedAt time.Time       `json:"created_at"`
}
