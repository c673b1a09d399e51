package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"monagenda.fr/myagenda/internal/model"
)

// HomeworkFilter narrows a homework listing. An empty filter returns every
// row (admin view). When Class or CreatorID is set, rows must match the
// class OR be created by the given user; Subject is combined with AND.
type HomeworkFilter struct {
	Class     string
	CreatorID *uuid.UUID
	Subject   string
	SortDesc  bool
}

type HomeworkRepository interface {
	Create(ctx context.Context, homework *model.Homework) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Homework, error)
	FindAll(ctx context.Context, filter HomeworkFilter) ([]model.Homework, error)
	FindByIDs(ctx context.Context, ids []uuid.UUID) ([]model.Homework, error)
	// FindDueBetween returns homework whose due date is strictly after from
	// and at or before to.
	FindDueBetween(ctx context.Context, from, to time.Time) ([]model.Homework, error)
	Update(ctx context.Context, homework *model.Homework) error
	Delete(ctx context.Context, id uuid.UUID) error
	// DeleteDueBefore removes every homework whose due date is strictly
	// before cutoff and returns the number of deleted rows.
	DeleteDueBefore(ctx context.Context, cutoff time.Time) (int64, error)
}

type homeworkRepository struct {
	db *gorm.DB
}

func NewHomeworkRepository(db *gorm.DB) HomeworkRepository {
	return &homeworkRepository{db: db}
}

func (r *homeworkRepository) Create(ctx context.Context, homework *model.Homework) error {
	return r.db.WithContext(ctx).Create(homework).Error
}

func (r *homeworkRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Homework, error) {
	var homework model.Homework
	if err := r.db.WithContext(ctx).
		Preload("Creator").
		Where("id = ?", id).
		First(&homework).Error; err != nil {
		return nil, err
	}

	return &homework, nil
}

func (r *homeworkRepository) FindAll(ctx context.Context, filter HomeworkFilter) ([]model.Homework, error) {
	q := r.db.WithContext(ctx).Model(&model.Homework{}).Preload("Creator")

	if filter.Class != "" || filter.CreatorID != nil {
		q = q.Where("class = ? OR creator_id = ?", filter.Class, filter.CreatorID)
	}
	if filter.Subject != "" {
		q = q.Where("subject = ?", filter.Subject)
	}

	order := "due_date asc"
	if filter.SortDesc {
		order = "due_date desc"
	}

	var homeworks []model.Homework
	if err := q.Order(order).Find(&homeworks).Error; err != nil {
		return nil, err
	}

	return homeworks, nil
}

func (r *homeworkRepository) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]model.Homework, error) {
	var homeworks []model.Homework
	if len(ids) == 0 {
		return homeworks, nil
	}

	if err := r.db.WithContext(ctx).
		Preload("Creator").
		Where("id IN ?", ids).
		Order("due_date asc").
		Find(&homeworks).Error; err != nil {
		return nil, err
	}

	return homeworks, nil
}

func (r *homeworkRepository) FindDueBetween(ctx context.Context, from, to time.Time) ([]model.Homework, error) {
	var homeworks []model.Homework
	if err := r.db.WithContext(ctx).
		Where("due_date > ? AND due_date <= ?", from, to).
		Order("due_date asc").
		Find(&homeworks).Error; err != nil {
		return nil, err
	}

	return homeworks, nil
}

func (r *homeworkRepository) Update(ctx context.Context, homework *model.Homework) error {
	return r.db.WithContext(ctx).Save(homework).Error
}

func (r *homeworkRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.Homework{}, "id = ?", id).Error
}

func (r *homeworkRepository) DeleteDueBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	result := r.db.WithContext(ctx).
		Where("due_date < ?", cutoff).
		Delete(&model.Homework{})
	return result.RowsAffected, result.Error
}
