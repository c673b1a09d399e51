package task

import (
	"context"
	"fmt"
	"log"
	"time"

	"monagenda.fr/myagenda/internal/model"
	"monagenda.fr/myagenda/internal/repository"
)

// ReminderTask creates due-soon notifications: for every homework due within
// the next 24 hours, each user of its class gets one reminder notification.
// An existing reminder for the same (user, homework) pair is not recreated,
// so running the sweep repeatedly is safe; two sweeps racing each other can
// still both pass the existence check and double-insert.
type ReminderTask struct {
	homeworkRepo     repository.HomeworkRepository
	userRepo         repository.UserRepository
	notificationRepo repository.NotificationRepository
	schedule         string
	now              func() time.Time
}

func NewReminderTask(
	homeworkRepo repository.HomeworkRepository,
	userRepo repository.UserRepository,
	notificationRepo repository.NotificationRepository,
	schedule string,
) *ReminderTask {
	return &ReminderTask{
		homeworkRepo:     homeworkRepo,
		userRepo:         userRepo,
		notificationRepo: notificationRepo,
		schedule:         schedule,
		now:              time.Now,
	}
}

func (t *ReminderTask) Name() string { return "reminders" }

func (t *ReminderTask) Schedule() string { return t.schedule }

func (t *ReminderTask) Execute(ctx context.Context) error {
	now := t.now()
	horizon := now.Add(24 * time.Hour)

	dueSoon, err := t.homeworkRepo.FindDueBetween(ctx, now, horizon)
	if err != nil {
		return fmt.Errorf("failed to list homework due soon: %w", err)
	}

	log.Printf("[reminders] found %d homework(s) due within 24h", len(dueSoon))

	for _, homework := range dueSoon {
		users, err := t.userRepo.FindByClasse(ctx, homework.Class)
		if err != nil {
			return fmt.Errorf("failed to list users of class %s: %w", homework.Class, err)
		}

		for _, user := range users {
			exists, err := t.notificationRepo.ReminderExists(ctx, user.ID, homework.ID)
			if err != nil {
				return err
			}
			if exists {
				continue
			}

			homeworkID := homework.ID
			notification := &model.Notification{
				UserID:     user.ID,
				HomeworkID: &homeworkID,
				Type:       model.NotificationTypeReminder,
				Message:    reminderMessage(&homework, now),
			}
			if err := t.notificationRepo.Create(ctx, notification); err != nil {
				return err
			}
		}
	}

	return nil
}

// reminderMessage says "aujourd'hui" when the due date falls on the current
// calendar day, "demain" otherwise.
func reminderMessage(homework *model.Homework, now time.Time) string {
	due := homework.DueDate.In(time.Local)

	dayText := "demain"
	y1, m1, d1 := due.Date()
	y2, m2, d2 := now.In(time.Local).Date()
	if y1 == y2 && m1 == m2 && d1 == d2 {
		dayText = "aujourd'hui"
	}

	return fmt.Sprintf("Rappel : Le devoir \"%s\" (%s) est à rendre %s à %s !",
		homework.Title, homework.Subject, dayText, due.Format("15h04"))
}
