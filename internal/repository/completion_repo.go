package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"monagenda.fr/myagenda/internal/model"
)

type CompletionRepository interface {
	FindByUserAndHomework(ctx context.Context, userID, homeworkID uuid.UUID) (*model.Completion, error)
	FindByUserAndHomeworkIDs(ctx context.Context, userID uuid.UUID, homeworkIDs []uuid.UUID) ([]model.Completion, error)
	Create(ctx context.Context, completion *model.Completion) error
	Update(ctx context.Context, completion *model.Completion) error
}

type completionRepository struct {
	db *gorm.DB
}

func NewCompletionRepository(db *gorm.DB) CompletionRepository {
	return &completionRepository{db: db}
}

func (r *completionRepository) FindByUserAndHomework(ctx context.Context, userID, homeworkID uuid.UUID) (*model.Completion, error) {
	var completion model.Completion
	if err := r.db.WithContext(ctx).
		Where("user_id = ? AND homework_id = ?", userID, homeworkID).
		First(&completion).Error; err != nil {
		return nil, err
	}

	return &completion, nil
}

func (r *completionRepository) FindByUserAndHomeworkIDs(ctx context.Context, userID uuid.UUID, homeworkIDs []uuid.UUID) ([]model.Completion, error) {
	var completions []model.Completion
	if len(homeworkIDs) == 0 {
		return completions, nil
	}

	if err := r.db.WithContext(ctx).
		Where("user_id = ? AND homework_id IN ?", userID, homeworkIDs).
		Find(&completions).Error; err != nil {
		return nil, err
	}

	return completions, nil
}

func (r *completionRepository) Create(ctx context.Context, completion *model.Completion) error {
	return r.db.WithContext(ctx).Create(completion).Error
}

func (r *completionRepository) Update(ctx context.Context, completion *model.Completion) error {
	return r.db.WithContext(ctx).Save(completion).Error
}
