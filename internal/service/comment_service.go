package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/google/uuid"
	"github.com/microcosm-cc/bluemonday"
	"gorm.io/gorm"

	"monagenda.fr/myagenda/internal/model"
	"monagenda.fr/myagenda/internal/policy"
	"monagenda.fr/myagenda/internal/repository"
	"monagenda.fr/myagenda/pkg/apperror"
)

type CommentService interface {
	Create(ctx context.Context, user *model.User, homeworkID uuid.UUID, content string) (*model.Comment, error)
}

type commentService struct {
	commentRepo   repository.CommentRepository
	homeworkRepo  repository.HomeworkRepository
	notifications NotificationService
	sanitizer     *bluemonday.Policy
}

func NewCommentService(commentRepo repository.CommentRepository, homeworkRepo repository.HomeworkRepository, notifications NotificationService) CommentService {
	return &commentService{
		commentRepo:   commentRepo,
		homeworkRepo:  homeworkRepo,
		notifications: notifications,
		sanitizer:     bluemonday.UGCPolicy(),
	}
}

func (s *commentService) Create(ctx context.Context, user *model.User, homeworkID uuid.UUID, content string) (*model.Comment, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, fmt.Errorf("%w: le contenu est requis", apperror.ErrInvalidInput)
	}

	homework, err := s.homeworkRepo.FindByID(ctx, homeworkID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.ErrNotFound
		}
		return nil, err
	}

	if !policy.CanAccess(user, homework) {
		return nil, apperror.ErrForbidden
	}

	comment := &model.Comment{
		Content:    s.sanitizer.Sanitize(content),
		UserID:     user.ID,
		HomeworkID: homeworkID,
	}

	if err := s.commentRepo.Create(ctx, comment); err != nil {
		return nil, err
	}

	s.notifyCreator(ctx, user, homework)

	return comment, nil
}

// notifyCreator tells the homework's creator about the new comment, unless
// the commenter is the creator. Best effort: a failure never fails the
// comment that was persisted.
func (s *commentService) notifyCreator(ctx context.Context, commenter *model.User, homework *model.Homework) {
	if homework.CreatorID == nil || *homework.CreatorID == commenter.ID {
		return
	}

	homeworkID := homework.ID
	notification := &model.Notification{
		UserID:     *homework.CreatorID,
		HomeworkID: &homeworkID,
		Type:       model.NotificationTypeComment,
		Message:    fmt.Sprintf("%s a commenté votre devoir \"%s\"", commenter.Username, homework.Title),
	}

	if err := s.notifications.Create(ctx, notification); err != nil {
		log.Printf("Erreur lors de la création de la notification de commentaire: %v", err)
	}
}
