package services

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"golang.org/x/crypto/bcrypt"

	"github.com/dmitrijs2005/taskboard/internal/common"
	"github.com/dmitrijs2005/taskboard/internal/dbx"
	"github.com/dmitrijs2005/taskboard/internal/server/config"
	"github.com/dmitrijs2005/taskboard/internal/server/models"
	tasksrepo "github.com/dmitrijs2005/taskboard/internal/server/repositories/tasks"
	usersrepo "github.com/dmitrijs2005/taskboard/internal/server/repositories/users"
)

// --- helpers ---

func newSQLMockDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return db, mock
}

func mustHash(t *testing.T, password string) string {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("bcrypt error: %v", err)
	}
	return string(hash)
}

func testConfig() *config.Config {
	return &config.Config{
		SecretKey:             "k",
		TokenValidityDuration: time.Hour,
	}
}

// --- fake users repository ---

type fakeUsersRepo struct {
	users map[string]*models.User // by id

	created []*models.User
	updated []*models.User
	deleted []string

	createErr error
	getErr    error
	updateErr error
	deleteErr error
	listErr   error
}

func newFakeUsersRepo(users ...*models.User) *fakeUsersRepo {
	f := &fakeUsersRepo{users: make(map[string]*models.User)}
	for _, u := range users {
		f.users[u.ID] = u
	}
	return f
}

func (f *fakeUsersRepo) Create(ctx context.Context, user *models.User) (*models.User, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	for _, u := range f.users {
		if u.Email == user.Email {
			return nil, common.ErrDuplicateEmail
		}
	}
	user.CreatedAt = time.Now()
	f.users[user.ID] = user
	f.created = append(f.created, user)
	return user, nil
}

func (f *fakeUsersRepo) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	for _, u := range f.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, common.ErrNotFound
}

func (f *fakeUsersRepo) GetByID(ctx context.Context, id string) (*models.User, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	if u, ok := f.users[id]; ok {
		return u, nil
	}
	return nil, common.ErrNotFound
}

func (f *fakeUsersRepo) ListByRole(ctx context.Context, role models.Role) ([]models.User, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	var result []models.User
	for _, u := range f.users {
		if u.Role == role {
			result = append(result, *u)
		}
	}
	return result, nil
}

func (f *fakeUsersRepo) Update(ctx context.Context, user *models.User) (*models.User, error) {
	if f.updateErr != nil {
		return nil, f.updateErr
	}
	if _, ok := f.users[user.ID]; !ok {
		return nil, common.ErrNotFound
	}
	f.users[user.ID] = user
	f.updated = append(f.updated, user)
	return user, nil
}

func (f *fakeUsersRepo) Delete(ctx context.Context, id string) error {
	if f.deleteErr != nil {
		return f.deleteErr
	}
	if _, ok := f.users[id]; !ok {
		return common.ErrNotFound
	}
	delete(f.users, id)
	f.deleted = append(f.deleted, id)
	return nil
}

// --- fake tasks repository ---

type fakeTasksRepo struct {
	tasks map[string]*models.Task // by id

	created       []*models.Task
	fieldUpdates  []models.Task
	replacedWith  map[string][]string
	retracted     []string
	addedComments []*models.Comment

	listAllOut    []models.Task
	listByUserOut []models.Task

	createErr  error
	getErr     error
	updateErr  error
	replaceErr error
	retractErr error
	commentErr error
}

func newFakeTasksRepo(tasks ...*models.Task) *fakeTasksRepo {
	f := &fakeTasksRepo{
		tasks:        make(map[string]*models.Task),
		replacedWith: make(map[string][]string),
	}
	for _, task := range tasks {
		f.tasks[task.ID] = task
	}
	return f
}

func (f *fakeTasksRepo) Create(ctx context.Context, task *models.Task) (*models.Task, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	task.CreatedAt = time.Now()
	f.tasks[task.ID] = task
	f.created = append(f.created, task)
	return task, nil
}

func (f *fakeTasksRepo) GetByID(ctx context.Context, id string) (*models.Task, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	if task, ok := f.tasks[id]; ok {
		return task, nil
	}
	return nil, common.ErrNotFound
}

func (f *fakeTasksRepo) ListAll(ctx context.Context) ([]models.Task, error) {
	return f.listAllOut, nil
}

func (f *fakeTasksRepo) ListByAssignee(ctx context.Context, userID string) ([]models.Task, error) {
	return f.listByUserOut, nil
}

func (f *fakeTasksRepo) UpdateFields(ctx context.Context, task *models.Task) error {
	if f.updateErr != nil {
		return f.updateErr
	}
	if _, ok := f.tasks[task.ID]; !ok {
		return common.ErrNotFound
	}
	f.tasks[task.ID] = task
	f.fieldUpdates = append(f.fieldUpdates, *task)
	return nil
}

func (f *fakeTasksRepo) ReplaceAssignees(ctx context.Context, taskID string, userIDs []string) error {
	if f.replaceErr != nil {
		return f.replaceErr
	}
	f.replacedWith[taskID] = userIDs
	return nil
}

func (f *fakeTasksRepo) RetractAssignee(ctx context.Context, userID string) error {
	if f.retractErr != nil {
		return f.retractErr
	}
	f.retracted = append(f.retracted, userID)
	return nil
}

func (f *fakeTasksRepo) AddComment(ctx context.Context, comment *models.Comment) (*models.Comment, error) {
	if f.commentErr != nil {
		return nil, f.commentErr
	}
	comment.CreatedAt = time.Now()
	f.addedComments = append(f.addedComments, comment)
	return comment, nil
}

// --- fake repository manager ---

type fakeRepoManager struct {
	u *fakeUsersRepo
	t *fakeTasksRepo
}

func (m *fakeRepoManager) RunMigrations(context.Context, *sql.DB) error { return nil }
func (m *fakeRepoManager) Users(db dbx.DBTX) usersrepo.Repository       { return m.u }
func (m *fakeRepoManager) Tasks(db dbx.DBTX) tasksrepo.Repository       { return m.t }
