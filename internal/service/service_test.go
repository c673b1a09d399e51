package service

import (
	"context"
	"io"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"monagenda.fr/myagenda/internal/model"
	"monagenda.fr/myagenda/internal/repository/memory"
	"monagenda.fr/myagenda/pkg/storage"
)

// fixtures bundles the in-memory repositories shared by the service tests.
type fixtures struct {
	users       *memory.UserRepository
	homeworks   *memory.HomeworkRepository
	completions *memory.CompletionRepository
	comments    *memory.CommentRepository
	notifs      *memory.NotificationRepository
}

func newFixtures() *fixtures {
	users := memory.NewUserRepository()
	return &fixtures{
		users:       users,
		homeworks:   memory.NewHomeworkRepository(),
		completions: memory.NewCompletionRepository(),
		comments:    memory.NewCommentRepository(users),
		notifs:      memory.NewNotificationRepository(),
	}
}

func (f *fixtures) addUser(t *testing.T, username, classe string, admin bool) *model.User {
	t.Helper()
	user := &model.User{
		Username:     username,
		Email:        username + "@example.com",
		PasswordHash: "x",
		Classe:       classe,
		IsAdmin:      admin,
	}
	require.NoError(t, f.users.Create(context.Background(), user))
	return user
}

func (f *fixtures) addHomework(t *testing.T, creator *model.User, title, subject, class string, due time.Time) *model.Homework {
	t.Helper()
	hw := &model.Homework{
		Title:   title,
		Subject: subject,
		Class:   class,
		DueDate: &due,
	}
	if creator != nil {
		creatorID := creator.ID
		hw.CreatorID = &creatorID
	}
	require.NoError(t, f.homeworks.Create(context.Background(), hw))
	return hw
}

func (f *fixtures) notificationService() NotificationService {
	return NewNotificationService(f.notifs, nil)
}

func (f *fixtures) homeworkService() HomeworkService {
	return NewHomeworkService(f.homeworks, f.users, f.completions, f.comments, f.notificationService(), nil, nil)
}

func (f *fixtures) homeworkServiceWithStorage(files storage.FileStorage) HomeworkService {
	return NewHomeworkService(f.homeworks, f.users, f.completions, f.comments, f.notificationService(), nil, files)
}

// fakeFileStorage records deletions so tests can assert on storage side
// effects without a real provider.
type fakeFileStorage struct {
	deleted []string
}

var _ storage.FileStorage = (*fakeFileStorage)(nil)

func (fs *fakeFileStorage) UploadFile(ctx context.Context, r io.Reader, folder, fileName string) (string, error) {
	return "https://files.example.com/" + folder + "/" + fileName, nil
}

func (fs *fakeFileStorage) DeleteFile(ctx context.Context, fileURL string) error {
	fs.deleted = append(fs.deleted, fileURL)
	return nil
}
