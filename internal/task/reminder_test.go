package task

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"monagenda.fr/myagenda/internal/model"
	"monagenda.fr/myagenda/internal/repository/memory"
)

type reminderFixture struct {
	homeworks *memory.HomeworkRepository
	users     *memory.UserRepository
	notifs    *memory.NotificationRepository
	task      *ReminderTask
}

func newReminderFixture(t *testing.T, now time.Time) *reminderFixture {
	t.Helper()
	f := &reminderFixture{
		homeworks: memory.NewHomeworkRepository(),
		users:     memory.NewUserRepository(),
		notifs:    memory.NewNotificationRepository(),
	}
	f.task = NewReminderTask(f.homeworks, f.users, f.notifs, "0 * * * *")
	f.task.now = func() time.Time { return now }
	return f
}

func (f *reminderFixture) addUser(t *testing.T, username, classe string) *model.User {
	t.Helper()
	user := &model.User{Username: username, Email: username + "@example.com", Classe: classe}
	require.NoError(t, f.users.Create(context.Background(), user))
	return user
}

func (f *reminderFixture) addHomework(t *testing.T, title, classe string, due time.Time) *model.Homework {
	t.Helper()
	hw := &model.Homework{Title: title, Subject: "Maths", Class: classe, DueDate: &due}
	require.NoError(t, f.homeworks.Create(context.Background(), hw))
	return hw
}

func TestReminderNotifiesClassWithin24h(t *testing.T) {
	now := time.Date(2026, 9, 14, 18, 0, 0, 0, time.Local)
	f := newReminderFixture(t, now)

	alice := f.addUser(t, "alice", "3B")
	bob := f.addUser(t, "bob", "3B")
	carol := f.addUser(t, "carol", "5A")

	hw := f.addHomework(t, "Exercices", "3B", now.Add(16*time.Hour))

	ctx := context.Background()
	require.NoError(t, f.task.Execute(ctx))

	for _, user := range []*model.User{alice, bob} {
		notifs, err := f.notifs.FindByUserID(ctx, user.ID, 50)
		require.NoError(t, err)
		require.Len(t, notifs, 1)
		assert.Equal(t, model.NotificationTypeReminder, notifs[0].Type)
		require.NotNil(t, notifs[0].HomeworkID)
		assert.Equal(t, hw.ID, *notifs[0].HomeworkID)
	}

	notifs, err := f.notifs.FindByUserID(ctx, carol.ID, 50)
	require.NoError(t, err)
	assert.Empty(t, notifs)
}

func TestReminderWindowBoundaries(t *testing.T) {
	now := time.Date(2026, 9, 14, 18, 0, 0, 0, time.Local)
	f := newReminderFixture(t, now)
	alice := f.addUser(t, "alice", "3B")

	// Already due, exactly at the horizon, and past the horizon.
	f.addHomework(t, "Passé", "3B", now.Add(-time.Minute))
	atHorizon := f.addHomework(t, "Limite", "3B", now.Add(24*time.Hour))
	f.addHomework(t, "Trop loin", "3B", now.Add(24*time.Hour+time.Minute))

	ctx := context.Background()
	require.NoError(t, f.task.Execute(ctx))

	notifs, err := f.notifs.FindByUserID(ctx, alice.ID, 50)
	require.NoError(t, err)
	require.Len(t, notifs, 1)
	assert.Equal(t, atHorizon.ID, *notifs[0].HomeworkID)
}

func TestReminderRunsAreIdempotent(t *testing.T) {
	now := time.Date(2026, 9, 14, 18, 0, 0, 0, time.Local)
	f := newReminderFixture(t, now)
	alice := f.addUser(t, "alice", "3B")

	f.addHomework(t, "Exercices", "3B", now.Add(16*time.Hour))

	ctx := context.Background()
	require.NoError(t, f.task.Execute(ctx))
	require.NoError(t, f.task.Execute(ctx))

	notifs, err := f.notifs.FindByUserID(ctx, alice.ID, 50)
	require.NoError(t, err)
	assert.Len(t, notifs, 1)
}

func TestReminderMessageWording(t *testing.T) {
	now := time.Date(2026, 9, 14, 18, 0, 0, 0, time.Local)

	sameDay := time.Date(2026, 9, 14, 22, 30, 0, 0, time.Local)
	hw := &model.Homework{Title: "Exercices", Subject: "Maths", DueDate: &sameDay}
	assert.Equal(t,
		`Rappel : Le devoir "Exercices" (Maths) est à rendre aujourd'hui à 22h30 !`,
		reminderMessage(hw, now))

	nextDay := time.Date(2026, 9, 15, 8, 0, 0, 0, time.Local)
	hw.DueDate = &nextDay
	assert.Equal(t,
		`Rappel : Le devoir "Exercices" (Maths) est à rendre demain à 08h00 !`,
		reminderMessage(hw, now))
}
