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

type CommentRepository struct {
	mu       sync.RWMutex
	comments []model.Comment
	// users lets FindByHomeworkID resolve authors like the SQL preload does.
	users *UserRepository
}

var _ repository.CommentRepository = (*CommentRepository)(nil)

func NewCommentRepository(users *UserRepository) *CommentRepository {
	return &CommentRepository{users: users}
}

func (r *CommentRepository) Create(ctx context.Context, comment *model.Comment) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if comment.ID == uuid.Nil {
		id, err := uuid.NewV7()
		if err != nil {
			return err
		}
		comment.ID = id
	}
	if comment.CreatedAt.IsZero() {
		comment.CreatedAt = time.Now()
	}
	r.comments = append(r.comments, *comment)
	return nil
}

func (r *CommentRepository) FindByHomeworkID(ctx context.Context, homeworkID uuid.UUID) ([]model.Comment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var comments []model.Comment
	for _, c := range r.comments {
		if c.HomeworkID != homeworkID {
			continue
		}
		if r.users != nil {
			if user, err := r.users.FindByID(ctx, c.UserID); err == nil {
				c.User = user
			}
		}
		comments = append(comments, c)
	}

	sort.SliceStable(comments, func(i, j int) bool {
		return comments[i].CreatedAt.Before(comments[j].CreatedAt)
	})
	return comments, nil
}
