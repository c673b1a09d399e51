package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"monagenda.fr/myagenda/pkg/apperror"
)

func TestCompletionToggle(t *testing.T) {
	f := newFixtures()
	alice := f.addUser(t, "alice", "3B", false)
	svc := NewCompletionService(f.completions, f.homeworks)

	due := time.Date(2026, 9, 15, 0, 0, 0, 0, time.Local)
	hw := f.addHomework(t, nil, "Exercices", "Maths", "3B", due)

	ctx := context.Background()

	completed, err := svc.Toggle(ctx, alice.ID, hw.ID)
	require.NoError(t, err)
	assert.True(t, completed)

	completed, err = svc.Toggle(ctx, alice.ID, hw.ID)
	require.NoError(t, err)
	assert.False(t, completed)

	completed, err = svc.Toggle(ctx, alice.ID, hw.ID)
	require.NoError(t, err)
	assert.True(t, completed)
}

func TestCompletionToggleUnknownHomework(t *testing.T) {
	f := newFixtures()
	alice := f.addUser(t, "alice", "3B", false)
	svc := NewCompletionService(f.completions, f.homeworks)

	_, err := svc.Toggle(context.Background(), alice.ID, uuid.New())
	assert.ErrorIs(t, err, apperror.ErrNotFound)
}

func TestCompletionToggleIgnoresClass(t *testing.T) {
	f := newFixtures()
	carol := f.addUser(t, "carol", "5A", false)
	svc := NewCompletionService(f.completions, f.homeworks)

	due := time.Date(2026, 9, 15, 0, 0, 0, 0, time.Local)
	hw := f.addHomework(t, nil, "Exercices", "Maths", "3B", due)

	// Completion tracking is personal bookkeeping, not gated by class.
	completed, err := svc.Toggle(context.Background(), carol.ID, hw.ID)
	require.NoError(t, err)
	assert.True(t, completed)
}

func TestCompletionTogglesAreIndependentPerUser(t *testing.T) {
	f := newFixtures()
	alice := f.addUser(t, "alice", "3B", false)
	bob := f.addUser(t, "bob", "3B", false)
	svc := NewCompletionService(f.completions, f.homeworks)

	due := time.Date(2026, 9, 15, 0, 0, 0, 0, time.Local)
	hw := f.addHomework(t, nil, "Exercices", "Maths", "3B", due)

	ctx := context.Background()

	_, err := svc.Toggle(ctx, alice.ID, hw.ID)
	require.NoError(t, err)

	bobCompletion, err := f.completions.FindByUserAndHomework(ctx, bob.ID, hw.ID)
	assert.Error(t, err)
	assert.Nil(t, bobCompletion)
}
