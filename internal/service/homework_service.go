package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/microcosm-cc/bluemonday"
	"gorm.io/gorm"

	"monagenda.fr/myagenda/internal/calendar"
	"monagenda.fr/myagenda/internal/dto"
	"monagenda.fr/myagenda/internal/model"
	"monagenda.fr/myagenda/internal/policy"
	"monagenda.fr/myagenda/internal/repository"
	"monagenda.fr/myagenda/pkg/apperror"
	"monagenda.fr/myagenda/pkg/storage"
)

type HomeworkService interface {
	List(ctx context.Context, user *model.User, filter dto.HomeworkFilter) ([]dto.HomeworkListItem, error)
	Create(ctx context.Context, user *model.User, req dto.CreateHomeworkRequest) (*model.Homework, error)
	Get(ctx context.Context, user *model.User, id uuid.UUID) (*dto.HomeworkDetail, error)
	Update(ctx context.Context, user *model.User, id uuid.UUID, req dto.UpdateHomeworkRequest) (*model.Homework, error)
	Delete(ctx context.Context, user *model.User, id uuid.UUID) error
	ExportICal(ctx context.Context, user *model.User, id uuid.UUID) (string, error)
}

type homeworkService struct {
	homeworkRepo   repository.HomeworkRepository
	userRepo       repository.UserRepository
	completionRepo repository.CompletionRepository
	commentRepo    repository.CommentRepository
	notifications  NotificationService
	search         SearchService
	files          storage.FileStorage
	sanitizer      *bluemonday.Policy
	now            func() time.Time
}

func NewHomeworkService(
	homeworkRepo repository.HomeworkRepository,
	userRepo repository.UserRepository,
	completionRepo repository.CompletionRepository,
	commentRepo repository.CommentRepository,
	notifications NotificationService,
	search SearchService,
	files storage.FileStorage,
) HomeworkService {
	return &homeworkService{
		homeworkRepo:   homeworkRepo,
		userRepo:       userRepo,
		completionRepo: completionRepo,
		commentRepo:    commentRepo,
		notifications:  notifications,
		search:         search,
		files:          files,
		sanitizer:      bluemonday.UGCPolicy(),
		now:            time.Now,
	}
}

// buildDueDate combines a date and an optional time-of-day into one local
// timestamp. A date without a time means midnight.
func buildDueDate(dateStr, timeStr string) (*time.Time, error) {
	if dateStr == "" {
		return nil, nil
	}

	if timeStr != "" {
		t, err := time.ParseInLocation("2006-01-02 15:04", dateStr+" "+timeStr, time.Local)
		if err != nil {
			return nil, err
		}
		return &t, nil
	}

	t, err := time.ParseInLocation("2006-01-02", dateStr, time.Local)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func (s *homeworkService) List(ctx context.Context, user *model.User, filter dto.HomeworkFilter) ([]dto.HomeworkListItem, error) {
	var (
		homeworks []model.Homework
		err       error
	)

	if filter.Search != "" && s.search != nil {
		homeworks, err = s.searchHomeworks(ctx, user, filter)
	} else {
		repoFilter := repository.HomeworkFilter{
			Subject:  filter.Subject,
			SortDesc: filter.Sort == "desc",
		}
		if !user.IsAdmin {
			repoFilter.Class = user.Classe
			repoFilter.CreatorID = &user.ID
		}
		homeworks, err = s.homeworkRepo.FindAll(ctx, repoFilter)
	}
	if err != nil {
		return nil, err
	}

	return s.annotateCompletions(ctx, user.ID, homeworks)
}

// searchHomeworks resolves a full-text query through the search index, then
// re-applies scoping, the subject filter and the sort order in memory: the
// index knows nothing about per-user access.
func (s *homeworkService) searchHomeworks(ctx context.Context, user *model.User, filter dto.HomeworkFilter) ([]model.Homework, error) {
	idStrs, err := s.search.Search(filter.Search)
	if err != nil {
		return nil, err
	}

	ids := make([]uuid.UUID, 0, len(idStrs))
	for _, raw := range idStrs {
		id, err := uuid.Parse(raw)
		if err != nil {
			continue
		}
		ids = append(ids, id)
	}

	rows, err := s.homeworkRepo.FindByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}

	homeworks := make([]model.Homework, 0, len(rows))
	for _, hw := range rows {
		if !policy.CanAccess(user, &hw) {
			continue
		}
		if filter.Subject != "" && hw.Subject != filter.Subject {
			continue
		}
		homeworks = append(homeworks, hw)
	}

	if filter.Sort == "desc" {
		for i, j := 0, len(homeworks)-1; i < j; i, j = i+1, j-1 {
			homeworks[i], homeworks[j] = homeworks[j], homeworks[i]
		}
	}

	return homeworks, nil
}

// annotateCompletions merges the caller's completion flags into the listing.
// Absence of a completion row means "not completed".
func (s *homeworkService) annotateCompletions(ctx context.Context, userID uuid.UUID, homeworks []model.Homework) ([]dto.HomeworkListItem, error) {
	ids := make([]uuid.UUID, len(homeworks))
	for i, hw := range homeworks {
		ids[i] = hw.ID
	}

	completions, err := s.completionRepo.FindByUserAndHomeworkIDs(ctx, userID, ids)
	if err != nil {
		return nil, err
	}

	completedByID := make(map[uuid.UUID]bool, len(completions))
	for _, c := range completions {
		completedByID[c.HomeworkID] = c.Completed
	}

	items := make([]dto.HomeworkListItem, len(homeworks))
	for i, hw := range homeworks {
		items[i] = dto.HomeworkListItem{
			Homework:  hw,
			Completed: completedByID[hw.ID],
		}
	}

	return items, nil
}

func (s *homeworkService) Create(ctx context.Context, user *model.User, req dto.CreateHomeworkRequest) (*model.Homework, error) {
	dueDate, err := buildDueDate(req.DueDate, req.Time)
	if err != nil {
		return nil, fmt.Errorf("%w: date de rendu invalide", apperror.ErrInvalidInput)
	}
	if dueDate == nil {
		return nil, fmt.Errorf("%w: la date de rendu est requise", apperror.ErrInvalidInput)
	}

	// Non-admin creators always get their own class, whatever the request
	// payload says.
	targetClass := req.Class
	if !user.IsAdmin {
		targetClass = user.Classe
	}
	if targetClass == "" {
		return nil, fmt.Errorf("%w: la classe est requise", apperror.ErrInvalidInput)
	}

	creatorID := user.ID
	homework := &model.Homework{
		Title:       req.Title,
		Subject:     req.Subject,
		DueDate:     dueDate,
		Description: s.sanitizer.Sanitize(req.Description),
		Attachment:  req.Attachment,
		Class:       targetClass,
		CreatorID:   &creatorID,
	}

	if err := s.homeworkRepo.Create(ctx, homework); err != nil {
		return nil, err
	}

	s.notifyClassmates(ctx, user, homework)
	s.indexHomework(homework)

	return homework, nil
}

// notifyClassmates fans a new_homework notification out to every other user
// of the target class. Fanout is best effort: a failure is logged and never
// rolls back the homework that was just created.
func (s *homeworkService) notifyClassmates(ctx context.Context, creator *model.User, homework *model.Homework) {
	classmates, err := s.userRepo.FindByClasseExcluding(ctx, homework.Class, creator.ID)
	if err != nil {
		log.Printf("Erreur lors de la création des notifications: %v", err)
		return
	}
	if len(classmates) == 0 {
		return
	}

	homeworkID := homework.ID
	notifications := make([]model.Notification, len(classmates))
	for i, classmate := range classmates {
		notifications[i] = model.Notification{
			UserID:     classmate.ID,
			HomeworkID: &homeworkID,
			Type:       model.NotificationTypeNewHomework,
			Message:    fmt.Sprintf("Nouveau devoir : %s (%s)", homework.Title, homework.Subject),
		}
	}

	if err := s.notifications.CreateBatch(ctx, notifications); err != nil {
		log.Printf("Erreur lors de la création des notifications: %v", err)
	}
}

func (s *homeworkService) indexHomework(homework *model.Homework) {
	if s.search == nil {
		return
	}
	if err := s.search.IndexHomework(homework); err != nil {
		log.Printf("Failed to index homework: %v", err)
	}
}

func (s *homeworkService) Get(ctx context.Context, user *model.User, id uuid.UUID) (*dto.HomeworkDetail, error) {
	homework, err := s.findHomework(ctx, id)
	if err != nil {
		return nil, err
	}

	if !policy.CanAccess(user, homework) {
		return nil, fmt.Errorf("%w : ce devoir n'est pas pour votre classe", apperror.ErrForbidden)
	}

	comments, err := s.commentRepo.FindByHomeworkID(ctx, id)
	if err != nil {
		return nil, err
	}

	detail := &dto.HomeworkDetail{
		Homework: *homework,
		Comments: make([]dto.CommentResponse, len(comments)),
	}
	for i, comment := range comments {
		author := ""
		if comment.User != nil {
			author = comment.User.Username
		}
		detail.Comments[i] = dto.CommentResponse{
			ID:        comment.ID.String(),
			Content:   comment.Content,
			Author:    author,
			CreatedAt: comment.CreatedAt.Format(time.RFC3339),
		}
	}

	return detail, nil
}

func (s *homeworkService) Update(ctx context.Context, user *model.User, id uuid.UUID, req dto.UpdateHomeworkRequest) (*model.Homework, error) {
	homework, err := s.findHomework(ctx, id)
	if err != nil {
		return nil, err
	}

	// Rights are checked against the stored row, not the submitted payload.
	if !policy.CanModify(user, homework) {
		return nil, apperror.ErrForbidden
	}

	dueDate, err := buildDueDate(req.DueDate, req.Time)
	if err != nil {
		return nil, fmt.Errorf("%w: date de rendu invalide", apperror.ErrInvalidInput)
	}
	if dueDate != nil {
		homework.DueDate = dueDate
	}

	targetClass := req.Class
	if !user.IsAdmin {
		targetClass = user.Classe
	}
	if targetClass != "" {
		homework.Class = targetClass
	}

	previousAttachment := homework.Attachment

	homework.Title = req.Title
	homework.Subject = req.Subject
	homework.Description = s.sanitizer.Sanitize(req.Description)
	homework.Attachment = req.Attachment

	if err := s.homeworkRepo.Update(ctx, homework); err != nil {
		return nil, err
	}

	if previousAttachment != homework.Attachment {
		s.deleteAttachment(ctx, previousAttachment)
	}
	s.indexHomework(homework)

	return homework, nil
}

func (s *homeworkService) Delete(ctx context.Context, user *model.User, id uuid.UUID) error {
	homework, err := s.findHomework(ctx, id)
	if err != nil {
		return err
	}

	if !policy.CanModify(user, homework) {
		return apperror.ErrForbidden
	}

	if err := s.homeworkRepo.Delete(ctx, id); err != nil {
		return err
	}

	s.deleteAttachment(ctx, homework.Attachment)

	if s.search != nil {
		if err := s.search.DeleteHomework(id.String()); err != nil {
			log.Printf("Failed to remove homework from index: %v", err)
		}
	}

	return nil
}

// deleteAttachment removes a stored attachment file. Best effort: the row
// mutation already happened, so a storage failure is only logged.
func (s *homeworkService) deleteAttachment(ctx context.Context, url string) {
	if s.files == nil || url == "" {
		return
	}
	if err := s.files.DeleteFile(ctx, url); err != nil {
		log.Printf("Erreur lors de la suppression de la pièce jointe: %v", err)
	}
}

func (s *homeworkService) ExportICal(ctx context.Context, user *model.User, id uuid.UUID) (string, error) {
	homework, err := s.findHomework(ctx, id)
	if err != nil {
		return "", err
	}

	if !policy.CanAccess(user, homework) {
		return "", apperror.ErrForbidden
	}

	return calendar.BuildICal(homework, s.now()), nil
}

func (s *homeworkService) findHomework(ctx context.Context, id uuid.UUID) (*model.Homework, error) {
	homework, err := s.homeworkRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.ErrNotFound
		}
		return nil, err
	}
	return homework, nil
}
