package task

import (
	"context"
	"fmt"
	"log"
	"time"

	"monagenda.fr/myagenda/internal/repository"
)

// CleanupTask deletes homework whose due date is strictly before the start
// of the current calendar day (local time).
type CleanupTask struct {
	homeworkRepo repository.HomeworkRepository
	schedule     string
	now          func() time.Time
}

func NewCleanupTask(homeworkRepo repository.HomeworkRepository, schedule string) *CleanupTask {
	return &CleanupTask{
		homeworkRepo: homeworkRepo,
		schedule:     schedule,
		now:          time.Now,
	}
}

func (t *CleanupTask) Name() string { return "cleanup" }

func (t *CleanupTask) Schedule() string { return t.schedule }

func (t *CleanupTask) Execute(ctx context.Context) error {
	now := t.now().In(time.Local)
	midnight := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.Local)

	deleted, err := t.homeworkRepo.DeleteDueBefore(ctx, midnight)
	if err != nil {
		return fmt.Errorf("failed to delete expired homework: %w", err)
	}

	if deleted > 0 {
		log.Printf("[cleanup] deleted %d expired homework(s)", deleted)
	}

	return nil
}
