package service

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"monagenda.fr/myagenda/internal/model"
	"monagenda.fr/myagenda/internal/repository"
	"monagenda.fr/myagenda/pkg/apperror"
)

type AdminService interface {
	ListUsers(ctx context.Context) ([]model.User, error)
	DeleteUser(ctx context.Context, adminID, targetID uuid.UUID) error
	// ToggleAdmin flips the admin flag of another user and returns the new
	// value. Admins cannot change their own rights.
	ToggleAdmin(ctx context.Context, adminID, targetID uuid.UUID) (bool, error)
}

type adminService struct {
	repo repository.UserRepository
}

func NewAdminService(repo repository.UserRepository) AdminService {
	return &adminService{repo: repo}
}

func (s *adminService) ListUsers(ctx context.Context) ([]model.User, error) {
	users, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	for i := range users {
		users[i].PasswordHash = ""
	}

	return users, nil
}

func (s *adminService) DeleteUser(ctx context.Context, adminID, targetID uuid.UUID) error {
	if adminID == targetID {
		return apperror.New(http.StatusBadRequest, "vous ne pouvez pas vous supprimer vous-même", nil)
	}

	if _, err := s.findUser(ctx, targetID); err != nil {
		return err
	}

	return s.repo.Delete(ctx, targetID)
}

func (s *adminService) ToggleAdmin(ctx context.Context, adminID, targetID uuid.UUID) (bool, error) {
	if adminID == targetID {
		return false, apperror.New(http.StatusBadRequest, "vous ne pouvez pas modifier vos propres droits", nil)
	}

	user, err := s.findUser(ctx, targetID)
	if err != nil {
		return false, err
	}

	user.IsAdmin = !user.IsAdmin
	if err := s.repo.Update(ctx, user); err != nil {
		return false, err
	}

	return user.IsAdmin, nil
}

func (s *adminService) findUser(ctx context.Context, id uuid.UUID) (*model.User, error) {
	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: utilisateur introuvable", apperror.ErrNotFound)
		}
		return nil, err
	}
	return user, nil
}
