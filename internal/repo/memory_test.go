package repo

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"Radiant/internal/calc/dashboard"
)

var _ Repository = (*MemoryRepository)(nil)
var _ Repository = (*PostgresRepository)(nil)

func TestMemory_Users(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()

	id, err := m.CreateUser(ctx, "ana", "ana@example.com", "hash")
	require.NoError(t, err)
	assert.Equal(t, 1, id)

	_, err = m.CreateUser(ctx, "ana", "other@example.com", "hash")
	assert.ErrorIs(t, err, ErrDuplicate)

	gotID, hash, err := m.GetByLogin(ctx, "ana")
	require.NoError(t, err)
	assert.Equal(t, id, gotID)
	assert.Equal(t, "hash", hash)

	gotID, _, err = m.GetByLogin(ctx, "nobody")
	require.NoError(t, err)
	assert.Zero(t, gotID)
}

func TestMemory_Scenarios(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()

	in := dashboard.Defaults()
	a, err := m.SaveScenario(ctx, Scenario{UserID: 1, Name: "desk", Input: in})
	require.NoError(t, err)
	assert.NotZero(t, a.ID)
	assert.False(t, a.CreatedAt.IsZero())

	in.AngleDeg = 45
	again, err := m.SaveScenario(ctx, Scenario{UserID: 1, Name: "desk", Input: in})
	require.NoError(t, err)
	assert.Equal(t, a.ID, again.ID)
	assert.Equal(t, 45.0, again.Input.AngleDeg)

	_, err = m.SaveScenario(ctx, Scenario{UserID: 2, Name: "desk", Input: in})
	require.NoError(t, err)

	list, err := m.ListScenarios(ctx, 1)
	require.NoError(t, err)
	assert.Len(t, list, 1)

	_, err = m.GetScenario(ctx, 2, a.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	assert.ErrorIs(t, m.DeleteScenario(ctx, 2, a.ID), ErrNotFound)
	require.NoError(t, m.DeleteScenario(ctx, 1, a.ID))
	_, err = m.GetScenario(ctx, 1, a.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}
