package memory

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"monagenda.fr/myagenda/internal/model"
	"monagenda.fr/myagenda/internal/repository"
)

type CompletionRepository struct {
	mu          sync.RWMutex
	completions map[uuid.UUID]model.Completion
}

var _ repository.CompletionRepository = (*CompletionRepository)(nil)

func NewCompletionRepository() *CompletionRepository {
	return &CompletionRepository{completions: make(map[uuid.UUID]model.Completion)}
}

func (r *CompletionRepository) FindByUserAndHomework(ctx context.Context, userID, homeworkID uuid.UUID) (*model.Completion, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, c := range r.completions {
		if c.UserID == userID && c.HomeworkID == homeworkID {
			found := c
			return &found, nil
		}
	}
	return nil, errNotFound
}

func (r *CompletionRepository) FindByUserAndHomeworkIDs(ctx context.Context, userID uuid.UUID, homeworkIDs []uuid.UUID) ([]model.Completion, error) {
	wanted := make(map[uuid.UUID]bool, len(homeworkIDs))
	for _, id := range homeworkIDs {
		wanted[id] = true
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	var completions []model.Completion
	for _, c := range r.completions {
		if c.UserID == userID && wanted[c.HomeworkID] {
			completions = append(completions, c)
		}
	}
	return completions, nil
}

func (r *CompletionRepository) Create(ctx context.Context, completion *model.Completion) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if completion.ID == uuid.Nil {
		completion.ID = uuid.New()
	}
	r.completions[completion.ID] = *completion
	return nil
}

func (r *CompletionRepository) Update(ctx context.Context, completion *model.Completion) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.completions[completion.ID]; !ok {
		return errNotFound
	}
	r.completions[completion.ID] = *completion
	return nil
}
