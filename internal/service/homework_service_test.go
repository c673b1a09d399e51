package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"monagenda.fr/myagenda/internal/dto"
	"monagenda.fr/myagenda/internal/model"
	"monagenda.fr/myagenda/pkg/apperror"
)

func TestHomeworkCreateForcesCreatorClass(t *testing.T) {
	f := newFixtures()
	alice := f.addUser(t, "alice", "3B", false)
	svc := f.homeworkService()

	hw, err := svc.Create(context.Background(), alice, dto.CreateHomeworkRequest{
		Title:   "Exercices 12 et 13",
		Subject: "Maths",
		DueDate: "2026-09-15",
		Class:   "5A",
	})
	require.NoError(t, err)

	assert.Equal(t, "3B", hw.Class)
	require.NotNil(t, hw.CreatorID)
	assert.Equal(t, alice.ID, *hw.CreatorID)
	require.NotNil(t, hw.DueDate)
	assert.Equal(t, time.Date(2026, 9, 15, 0, 0, 0, 0, time.Local), *hw.DueDate)
}

func TestHomeworkCreateWithTimeOfDay(t *testing.T) {
	f := newFixtures()
	alice := f.addUser(t, "alice", "3B", false)
	svc := f.homeworkService()

	hw, err := svc.Create(context.Background(), alice, dto.CreateHomeworkRequest{
		Title:   "Contrôle",
		Subject: "Histoire",
		DueDate: "2026-09-15",
		Time:    "14:30",
	})
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, 9, 15, 14, 30, 0, 0, time.Local), *hw.DueDate)
}

func TestHomeworkCreateRejectsBadInput(t *testing.T) {
	f := newFixtures()
	alice := f.addUser(t, "alice", "3B", false)
	admin := f.addUser(t, "admin", "", true)
	svc := f.homeworkService()

	_, err := svc.Create(context.Background(), alice, dto.CreateHomeworkRequest{
		Title:   "Sans date",
		Subject: "Maths",
		DueDate: "pas-une-date",
	})
	assert.ErrorIs(t, err, apperror.ErrInvalidInput)

	// An admin carries no class of their own, so the payload has to name one.
	_, err = svc.Create(context.Background(), admin, dto.CreateHomeworkRequest{
		Title:   "Sans classe",
		Subject: "Maths",
		DueDate: "2026-09-15",
	})
	assert.ErrorIs(t, err, apperror.ErrInvalidInput)
}

func TestHomeworkCreateSanitizesDescription(t *testing.T) {
	f := newFixtures()
	alice := f.addUser(t, "alice", "3B", false)
	svc := f.homeworkService()

	hw, err := svc.Create(context.Background(), alice, dto.CreateHomeworkRequest{
		Title:       "Lecture",
		Subject:     "Français",
		DueDate:     "2026-09-15",
		Description: `<script>alert(1)</script>Lire le chapitre 3`,
	})
	require.NoError(t, err)
	assert.Equal(t, "Lire le chapitre 3", hw.Description)
}

func TestHomeworkCreateNotifiesClassmatesOnly(t *testing.T) {
	f := newFixtures()
	alice := f.addUser(t, "alice", "3B", false)
	bob := f.addUser(t, "bob", "3B", false)
	carol := f.addUser(t, "carol", "5A", false)
	svc := f.homeworkService()

	hw, err := svc.Create(context.Background(), alice, dto.CreateHomeworkRequest{
		Title:   "Exposé",
		Subject: "SVT",
		DueDate: "2026-09-20",
	})
	require.NoError(t, err)

	ctx := context.Background()

	bobNotifs, err := f.notifs.FindByUserID(ctx, bob.ID, 50)
	require.NoError(t, err)
	require.Len(t, bobNotifs, 1)
	assert.Equal(t, model.NotificationTypeNewHomework, bobNotifs[0].Type)
	assert.Equal(t, "Nouveau devoir : Exposé (SVT)", bobNotifs[0].Message)
	require.NotNil(t, bobNotifs[0].HomeworkID)
	assert.Equal(t, hw.ID, *bobNotifs[0].HomeworkID)

	carolNotifs, err := f.notifs.FindByUserID(ctx, carol.ID, 50)
	require.NoError(t, err)
	assert.Empty(t, carolNotifs)

	aliceNotifs, err := f.notifs.FindByUserID(ctx, alice.ID, 50)
	require.NoError(t, err)
	assert.Empty(t, aliceNotifs)
}

func TestHomeworkListScopesToClassAndCreations(t *testing.T) {
	f := newFixtures()
	alice := f.addUser(t, "alice", "3B", false)
	carol := f.addUser(t, "carol", "5A", false)
	admin := f.addUser(t, "admin", "", true)
	svc := f.homeworkService()

	due := time.Date(2026, 9, 15, 0, 0, 0, 0, time.Local)
	hw3B := f.addHomework(t, nil, "Maths 3B", "Maths", "3B", due)
	hw5A := f.addHomework(t, nil, "Maths 5A", "Maths", "5A", due.Add(24*time.Hour))
	// Created by alice for another class; she keeps seeing it as its creator.
	hwOther := f.addHomework(t, alice, "Ancien devoir", "Anglais", "6C", due.Add(48*time.Hour))

	ctx := context.Background()

	items, err := svc.List(ctx, alice, dto.HomeworkFilter{})
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, hw3B.ID, items[0].ID)
	assert.Equal(t, hwOther.ID, items[1].ID)

	items, err = svc.List(ctx, carol, dto.HomeworkFilter{})
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, hw5A.ID, items[0].ID)

	items, err = svc.List(ctx, admin, dto.HomeworkFilter{})
	require.NoError(t, err)
	assert.Len(t, items, 3)
}

func TestHomeworkListFiltersAndSorts(t *testing.T) {
	f := newFixtures()
	alice := f.addUser(t, "alice", "3B", false)
	svc := f.homeworkService()

	due := time.Date(2026, 9, 15, 0, 0, 0, 0, time.Local)
	early := f.addHomework(t, nil, "Tôt", "Maths", "3B", due)
	late := f.addHomework(t, nil, "Tard", "Maths", "3B", due.Add(72*time.Hour))
	f.addHomework(t, nil, "Autre matière", "Anglais", "3B", due.Add(24*time.Hour))

	ctx := context.Background()

	items, err := svc.List(ctx, alice, dto.HomeworkFilter{Subject: "Maths"})
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, early.ID, items[0].ID)
	assert.Equal(t, late.ID, items[1].ID)

	items, err = svc.List(ctx, alice, dto.HomeworkFilter{Subject: "Maths", Sort: "desc"})
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, late.ID, items[0].ID)
	assert.Equal(t, early.ID, items[1].ID)
}

func TestHomeworkListAnnotatesOwnCompletions(t *testing.T) {
	f := newFixtures()
	alice := f.addUser(t, "alice", "3B", false)
	bob := f.addUser(t, "bob", "3B", false)
	svc := f.homeworkService()

	due := time.Date(2026, 9, 15, 0, 0, 0, 0, time.Local)
	done := f.addHomework(t, nil, "Fait", "Maths", "3B", due)
	f.addHomework(t, nil, "Pas fait", "Maths", "3B", due.Add(24*time.Hour))

	ctx := context.Background()
	require.NoError(t, f.completions.Create(ctx, &model.Completion{
		HomeworkID: done.ID,
		UserID:     alice.ID,
		Completed:  true,
	}))

	items, err := svc.List(ctx, alice, dto.HomeworkFilter{})
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.True(t, items[0].Completed)
	assert.False(t, items[1].Completed)

	// Bob never toggled anything; alice's flags are invisible to him.
	items, err = svc.List(ctx, bob, dto.HomeworkFilter{})
	require.NoError(t, err)
	for _, item := range items {
		assert.False(t, item.Completed)
	}
}

func TestHomeworkGetEnforcesAccess(t *testing.T) {
	f := newFixtures()
	alice := f.addUser(t, "alice", "3B", false)
	carol := f.addUser(t, "carol", "5A", false)
	svc := f.homeworkService()

	due := time.Date(2026, 9, 15, 0, 0, 0, 0, time.Local)
	hw := f.addHomework(t, alice, "Exercices", "Maths", "3B", due)

	ctx := context.Background()

	detail, err := svc.Get(ctx, alice, hw.ID)
	require.NoError(t, err)
	assert.Equal(t, hw.ID, detail.ID)
	assert.Empty(t, detail.Comments)

	_, err = svc.Get(ctx, carol, hw.ID)
	assert.ErrorIs(t, err, apperror.ErrForbidden)

	_, err = svc.Get(ctx, alice, uuid.New())
	assert.ErrorIs(t, err, apperror.ErrNotFound)
}

func TestHomeworkGetIncludesComments(t *testing.T) {
	f := newFixtures()
	alice := f.addUser(t, "alice", "3B", false)
	bob := f.addUser(t, "bob", "3B", false)
	svc := f.homeworkService()

	due := time.Date(2026, 9, 15, 0, 0, 0, 0, time.Local)
	hw := f.addHomework(t, alice, "Exercices", "Maths", "3B", due)

	ctx := context.Background()
	require.NoError(t, f.comments.Create(ctx, &model.Comment{
		Content:    "J'ai une question sur le 12",
		UserID:     bob.ID,
		HomeworkID: hw.ID,
	}))

	detail, err := svc.Get(ctx, alice, hw.ID)
	require.NoError(t, err)
	require.Len(t, detail.Comments, 1)
	assert.Equal(t, "J'ai une question sur le 12", detail.Comments[0].Content)
	assert.Equal(t, "bob", detail.Comments[0].Author)
}

func TestHomeworkUpdate(t *testing.T) {
	f := newFixtures()
	alice := f.addUser(t, "alice", "3B", false)
	carol := f.addUser(t, "carol", "5A", false)
	svc := f.homeworkService()

	due := time.Date(2026, 9, 15, 0, 0, 0, 0, time.Local)
	hw := f.addHomework(t, alice, "Exercices", "Maths", "3B", due)

	ctx := context.Background()

	_, err := svc.Update(ctx, carol, hw.ID, dto.UpdateHomeworkRequest{
		Title:   "Piraté",
		Subject: "Maths",
	})
	require.ErrorIs(t, err, apperror.ErrForbidden)

	stored, err := f.homeworks.FindByID(ctx, hw.ID)
	require.NoError(t, err)
	assert.Equal(t, "Exercices", stored.Title)

	// An empty due date in the payload keeps the stored one.
	updated, err := svc.Update(ctx, alice, hw.ID, dto.UpdateHomeworkRequest{
		Title:   "Exercices corrigés",
		Subject: "Maths",
		Class:   "5A",
	})
	require.NoError(t, err)
	assert.Equal(t, "Exercices corrigés", updated.Title)
	assert.Equal(t, "3B", updated.Class)
	require.NotNil(t, updated.DueDate)
	assert.Equal(t, due, *updated.DueDate)
}

func TestHomeworkUpdateAdminCanMoveClass(t *testing.T) {
	f := newFixtures()
	admin := f.addUser(t, "admin", "", true)
	svc := f.homeworkService()

	due := time.Date(2026, 9, 15, 0, 0, 0, 0, time.Local)
	hw := f.addHomework(t, nil, "Exercices", "Maths", "3B", due)

	updated, err := svc.Update(context.Background(), admin, hw.ID, dto.UpdateHomeworkRequest{
		Title:   "Exercices",
		Subject: "Maths",
		Class:   "5A",
	})
	require.NoError(t, err)
	assert.Equal(t, "5A", updated.Class)
}

func TestHomeworkDelete(t *testing.T) {
	f := newFixtures()
	alice := f.addUser(t, "alice", "3B", false)
	carol := f.addUser(t, "carol", "5A", false)
	svc := f.homeworkService()

	due := time.Date(2026, 9, 15, 0, 0, 0, 0, time.Local)
	hw := f.addHomework(t, alice, "Exercices", "Maths", "3B", due)

	ctx := context.Background()

	err := svc.Delete(ctx, carol, hw.ID)
	require.ErrorIs(t, err, apperror.ErrForbidden)

	require.NoError(t, svc.Delete(ctx, alice, hw.ID))

	_, err = f.homeworks.FindByID(ctx, hw.ID)
	assert.Error(t, err)

	err = svc.Delete(ctx, alice, hw.ID)
	assert.ErrorIs(t, err, apperror.ErrNotFound)
}

func TestHomeworkDeleteRemovesStoredAttachment(t *testing.T) {
	f := newFixtures()
	alice := f.addUser(t, "alice", "3B", false)
	files := &fakeFileStorage{}
	svc := f.homeworkServiceWithStorage(files)

	due := time.Date(2026, 9, 15, 0, 0, 0, 0, time.Local)
	creatorID := alice.ID
	hw := &model.Homework{
		Title:      "Exposé",
		Subject:    "SVT",
		Class:      "3B",
		DueDate:    &due,
		Attachment: "https://files.example.com/attachments/sujet.pdf",
		CreatorID:  &creatorID,
	}
	require.NoError(t, f.homeworks.Create(context.Background(), hw))

	require.NoError(t, svc.Delete(context.Background(), alice, hw.ID))
	assert.Equal(t, []string{"https://files.example.com/attachments/sujet.pdf"}, files.deleted)
}

func TestHomeworkUpdateReplacingAttachmentDeletesOld(t *testing.T) {
	f := newFixtures()
	alice := f.addUser(t, "alice", "3B", false)
	files := &fakeFileStorage{}
	svc := f.homeworkServiceWithStorage(files)

	due := time.Date(2026, 9, 15, 0, 0, 0, 0, time.Local)
	creatorID := alice.ID
	hw := &model.Homework{
		Title:      "Exposé",
		Subject:    "SVT",
		Class:      "3B",
		DueDate:    &due,
		Attachment: "https://files.example.com/attachments/v1.pdf",
		CreatorID:  &creatorID,
	}
	require.NoError(t, f.homeworks.Create(context.Background(), hw))

	ctx := context.Background()

	// Same attachment resubmitted: the stored file stays.
	_, err := svc.Update(ctx, alice, hw.ID, dto.UpdateHomeworkRequest{
		Title:      "Exposé",
		Subject:    "SVT",
		Attachment: "https://files.example.com/attachments/v1.pdf",
	})
	require.NoError(t, err)
	assert.Empty(t, files.deleted)

	updated, err := svc.Update(ctx, alice, hw.ID, dto.UpdateHomeworkRequest{
		Title:      "Exposé",
		Subject:    "SVT",
		Attachment: "https://files.example.com/attachments/v2.pdf",
	})
	require.NoError(t, err)
	assert.Equal(t, "https://files.example.com/attachments/v2.pdf", updated.Attachment)
	assert.Equal(t, []string{"https://files.example.com/attachments/v1.pdf"}, files.deleted)
}

func TestHomeworkExportICal(t *testing.T) {
	f := newFixtures()
	alice := f.addUser(t, "alice", "3B", false)
	carol := f.addUser(t, "carol", "5A", false)

	svc := f.homeworkService().(*homeworkService)
	svc.now = func() time.Time {
		return time.Date(2026, 9, 1, 10, 0, 0, 0, time.UTC)
	}

	due := time.Date(2026, 9, 15, 14, 30, 0, 0, time.UTC)
	hw := f.addHomework(t, alice, "Contrôle", "Maths", "3B", due)

	ctx := context.Background()

	ical, err := svc.ExportICal(ctx, alice, hw.ID)
	require.NoError(t, err)
	assert.Contains(t, ical, "BEGIN:VCALENDAR")
	assert.Contains(t, ical, "SUMMARY:Contrôle")
	assert.Contains(t, ical, "DTSTART:20260915T143000Z")

	_, err = svc.ExportICal(ctx, carol, hw.ID)
	assert.True(t, errors.Is(err, apperror.ErrForbidden))
}
