package service

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"monagenda.fr/myagenda/internal/model"
	"monagenda.fr/myagenda/internal/repository"
	"monagenda.fr/myagenda/pkg/apperror"
)

type CompletionService interface {
	// Toggle flips the caller's completion flag for one homework and
	// returns the state after the toggle. The first toggle for a pair
	// creates the record with completed = true.
	Toggle(ctx context.Context, userID, homeworkID uuid.UUID) (bool, error)
}

type completionService struct {
	completionRepo repository.CompletionRepository
	homeworkRepo   repository.HomeworkRepository
}

func NewCompletionService(completionRepo repository.CompletionRepository, homeworkRepo repository.HomeworkRepository) CompletionService {
	return &completionService{
		completionRepo: completionRepo,
		homeworkRepo:   homeworkRepo,
	}
}

// Toggle deliberately performs no class/creator access check: any
// authenticated user may track completion of any homework they can name.
func (s *completionService) Toggle(ctx context.Context, userID, homeworkID uuid.UUID) (bool, error) {
	if _, err := s.homeworkRepo.FindByID(ctx, homeworkID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, apperror.ErrNotFound
		}
		return false, err
	}

	completion, err := s.completionRepo.FindByUserAndHomework(ctx, userID, homeworkID)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return false, err
		}

		completion = &model.Completion{
			HomeworkID: homeworkID,
			UserID:     userID,
			Completed:  true,
		}
		if err := s.completionRepo.Create(ctx, completion); err != nil {
			return false, err
		}
		return true, nil
	}

	completion.Completed = !completion.Completed
	if err := s.completionRepo.Update(ctx, completion); err != nil {
		return false, err
	}

	return completion.Completed, nil
}
