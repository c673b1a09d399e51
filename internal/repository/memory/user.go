package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/google/uuid"

	"monagenda.fr/myagenda/internal/model"
	"monagenda.fr/myagenda/internal/repository"
)

type UserRepository struct {
	mu    sync.RWMutex
	users map[uuid.UUID]model.User
}

var _ repository.UserRepository = (*UserRepository)(nil)

func NewUserRepository() *UserRepository {
	return &UserRepository{users: make(map[uuid.UUID]model.User)}
}

func (r *UserRepository) Create(ctx context.Context, user *model.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}
	r.users[user.ID] = *user
	return nil
}

func (r *UserRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	user, ok := r.users[id]
	if !ok {
		return nil, errNotFound
	}
	return &user, nil
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	return r.findFirst(func(u model.User) bool { return u.Email == email })
}

func (r *UserRepository) FindByUsername(ctx context.Context, username string) (*model.User, error) {
	return r.findFirst(func(u model.User) bool { return u.Username == username })
}

func (r *UserRepository) FindByIdentifier(ctx context.Context, identifier string) (*model.User, error) {
	return r.findFirst(func(u model.User) bool {
		return u.Email == identifier || u.Username == identifier
	})
}

func (r *UserRepository) FindByClasse(ctx context.Context, classe string) ([]model.User, error) {
	return r.findAll(func(u model.User) bool { return u.Classe == classe }), nil
}

func (r *UserRepository) FindByClasseExcluding(ctx context.Context, classe string, excludeID uuid.UUID) ([]model.User, error) {
	return r.findAll(func(u model.User) bool {
		return u.Classe == classe && u.ID != excludeID
	}), nil
}

func (r *UserRepository) FindAll(ctx context.Context) ([]model.User, error) {
	users := r.findAll(func(model.User) bool { return true })
	sort.Slice(users, func(i, j int) bool { return users[i].Username < users[j].Username })
	return users, nil
}

func (r *UserRepository) Update(ctx context.Context, user *model.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.users[user.ID]; !ok {
		return errNotFound
	}
	r.users[user.ID] = *user
	return nil
}

func (r *UserRepository) Delete(ctx context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.users, id)
	return nil
}

func (r *UserRepository) findFirst(match func(model.User) bool) (*model.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, user := range r.users {
		if match(user) {
			u := user
			return &u, nil
		}
	}
	return nil, errNotFound
}

func (r *UserRepository) findAll(match func(model.User) bool) []model.User {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var users []model.User
	for _, user := range r.users {
		if match(user) {
			users = append(users, user)
		}
	}
	return users
}
