package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"monagenda.fr/myagenda/internal/model"
)

type CommentRepository interface {
	Create(ctx context.Context, comment *model.Comment) error
	// FindByHomeworkID returns the comments of a homework in ascending
	// creation order, with the author resolved.
	FindByHomeworkID(ctx context.Context, homeworkID uuid.UUID) ([]model.Comment, error)
}

type commentRepository struct {
	db *gorm.DB
}

func NewCommentRepository(db *gorm.DB) CommentRepository {
	return &commentRepository{db: db}
}

func (r *commentRepository) Create(ctx context.Context, comment *model.Comment) error {
	return r.db.WithContext(ctx).Create(comment).Error
}

func (r *commentRepository) FindByHomeworkID(ctx context.Context, homeworkID uuid.UUID) ([]model.Comment, error) {
	var comments []model.Comment
	if err := r.db.WithContext(ctx).
		Where("homework_id = ?", homeworkID).
		Order("created_at asc").
		Preload("User", func(db *gorm.DB) *gorm.DB {
			return db.Select("id", "username")
		}).
		Find(&comments).Error; err != nil {
		return nil, err
	}

	return comments, nil
}
