package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"monagenda.fr/myagenda/internal/model"
	"monagenda.fr/myagenda/internal/repository"
)

type NotificationRepository struct {
	mu            sync.RWMutex
	notifications []model.Notification
}

var _ repository.NotificationRepository = (*NotificationRepository)(nil)

func NewNotificationRepository() *NotificationRepository {
	return &NotificationRepository{}
}

func (r *NotificationRepository) Create(ctx context.Context, notification *model.Notification) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.insert(notification)
}

func (r *NotificationRepository) CreateBatch(ctx context.Context, notifications []model.Notification) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i := range notifications {
		if err := r.insert(&notifications[i]); err != nil {
			return err
		}
	}
	return nil
}

func (r *NotificationRepository) insert(notification *model.Notification) error {
	if notification.ID == uuid.Nil {
		id, err := uuid.NewV7()
		if err != nil {
			return err
		}
		notification.ID = id
	}
	if notification.CreatedAt.IsZero() {
		notification.CreatedAt = time.Now()
	}
	r.notifications = append(r.notifications, *notification)
	return nil
}

func (r *NotificationRepository) FindByUserID(ctx context.Context, userID uuid.UUID, limit int) ([]model.Notification, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var notifications []model.Notification
	for _, n := range r.notifications {
		if n.UserID == userID {
			notifications = append(notifications, n)
		}
	}

	sort.SliceStable(notifications, func(i, j int) bool {
		return notifications[i].CreatedAt.After(notifications[j].CreatedAt)
	})

	if limit > 0 && len(notifications) > limit {
		notifications = notifications[:limit]
	}
	return notifications, nil
}

func (r *NotificationRepository) MarkAsRead(ctx context.Context, id, userID uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i := range r.notifications {
		if r.notifications[i].ID == id && r.notifications[i].UserID == userID {
			r.notifications[i].Read = true
			return nil
		}
	}
	return errNotFound
}

func (r *NotificationRepository) MarkAllAsRead(ctx context.Context, userID uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i := range r.notifications {
		if r.notifications[i].UserID == userID {
			r.notifications[i].Read = true
		}
	}
	return nil
}

func (r *NotificationRepository) CountUnread(ctx context.Context, userID uuid.UUID) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var count int64
	for _, n := range r.notifications {
		if n.UserID == userID && !n.Read {
			count++
		}
	}
	return count, nil
}

func (r *NotificationRepository) ReminderExists(ctx context.Context, userID, homeworkID uuid.UUID) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, n := range r.notifications {
		if n.UserID == userID &&
			n.Type == model.NotificationTypeReminder &&
			n.HomeworkID != nil && *n.HomeworkID == homeworkID {
			return true, nil
		}
	}
	return false, nil
}
