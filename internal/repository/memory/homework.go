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

type HomeworkRepository struct {
	mu        sync.RWMutex
	homeworks map[uuid.UUID]model.Homework
}

var _ repository.HomeworkRepository = (*HomeworkRepository)(nil)

func NewHomeworkRepository() *HomeworkRepository {
	return &HomeworkRepository{homeworks: make(map[uuid.UUID]model.Homework)}
}

func (r *HomeworkRepository) Create(ctx context.Context, homework *model.Homework) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if homework.ID == uuid.Nil {
		id, err := uuid.NewV7()
		if err != nil {
			return err
		}
		homework.ID = id
	}
	r.homeworks[homework.ID] = *homework
	return nil
}

func (r *HomeworkRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Homework, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	homework, ok := r.homeworks[id]
	if !ok {
		return nil, errNotFound
	}
	return &homework, nil
}

func (r *HomeworkRepository) FindAll(ctx context.Context, filter repository.HomeworkFilter) ([]model.Homework, error) {
	homeworks := r.findAll(func(hw model.Homework) bool {
		if filter.Class != "" || filter.CreatorID != nil {
			scoped := hw.Class == filter.Class ||
				(filter.CreatorID != nil && hw.CreatorID != nil && *hw.CreatorID == *filter.CreatorID)
			if !scoped {
				return false
			}
		}
		if filter.Subject != "" && hw.Subject != filter.Subject {
			return false
		}
		return true
	})

	sortByDueDate(homeworks, filter.SortDesc)
	return homeworks, nil
}

func (r *HomeworkRepository) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]model.Homework, error) {
	wanted := make(map[uuid.UUID]bool, len(ids))
	for _, id := range ids {
		wanted[id] = true
	}

	homeworks := r.findAll(func(hw model.Homework) bool { return wanted[hw.ID] })
	sortByDueDate(homeworks, false)
	return homeworks, nil
}

func (r *HomeworkRepository) FindDueBetween(ctx context.Context, from, to time.Time) ([]model.Homework, error) {
	homeworks := r.findAll(func(hw model.Homework) bool {
		return hw.DueDate != nil && hw.DueDate.After(from) && !hw.DueDate.After(to)
	})

	sortByDueDate(homeworks, false)
	return homeworks, nil
}

func (r *HomeworkRepository) Update(ctx context.Context, homework *model.Homework) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.homeworks[homework.ID]; !ok {
		return errNotFound
	}
	r.homeworks[homework.ID] = *homework
	return nil
}

func (r *HomeworkRepository) Delete(ctx context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.homeworks, id)
	return nil
}

func (r *HomeworkRepository) DeleteDueBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var deleted int64
	for id, hw := range r.homeworks {
		if hw.DueDate != nil && hw.DueDate.Before(cutoff) {
			delete(r.homeworks, id)
			deleted++
		}
	}
	return deleted, nil
}

func (r *HomeworkRepository) findAll(match func(model.Homework) bool) []model.Homework {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var homeworks []model.Homework
	for _, hw := range r.homeworks {
		if match(hw) {
			homeworks = append(homeworks, hw)
		}
	}
	return homeworks
}

func sortByDueDate(homeworks []model.Homework, desc bool) {
	sort.SliceStable(homeworks, func(i, j int) bool {
		a, b := homeworks[i].DueDate, homeworks[j].DueDate
		if a == nil {
			return !desc
		}
		if b == nil {
			return desc
		}
		if desc {
			return a.After(*b)
		}
		return a.Before(*b)
	})
}
