package rest

import (
	"context"
	"log/slog"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/dmitrijs2005/taskboard/internal/logging"
	"github.com/dmitrijs2005/taskboard/internal/server/auth"
	"github.com/dmitrijs2005/taskboard/internal/server/models"
	"github.com/dmitrijs2005/taskboard/internal/server/services"
)

const testSecret = "test-secret"

// --- fake services ---

type fakeUserService struct {
	loginOut *services.LoginResult
	loginErr error

	meOut *models.User
	meErr error

	registerOut *models.User
	registerErr error

	listOut []models.User
	listErr error

	createOut *models.User
	createErr error

	updateOut *models.User
	updateErr error

	deleteErr  error
	deletedIDs []string
}

func (f *fakeUserService) Register(ctx context.Context, name, email, password string, role models.Role) (*models.User, error) {
	if f.registerErr != nil {
		return nil, f.registerErr
	}
	return f.registerOut, nil
}

func (f *fakeUserService) Login(ctx context.Context, email, password string) (*services.LoginResult, error) {
	if f.loginErr != nil {
		return nil, f.loginErr
	}
	return f.loginOut, nil
}

func (f *fakeUserService) Me(ctx context.Context, actor models.Actor) (*models.User, error) {
	if f.meErr != nil {
		return nil, f.meErr
	}
	return f.meOut, nil
}

func (f *fakeUserService) ListStaff(ctx context.Context, actor models.Actor) ([]models.User, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.listOut, nil
}

func (f *fakeUserService) CreateStaff(ctx context.Context, actor models.Actor, name, email, password string) (*models.User, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	return f.createOut, nil
}

func (f *fakeUserService) UpdateUser(ctx context.Context, actor models.Actor, id string, input services.UpdateUserInput) (*models.User, error) {
	if f.updateErr != nil {
		return nil, f.updateErr
	}
	return f.updateOut, nil
}

func (f *fakeUserService) DeleteUser(ctx context.Context, actor models.Actor, id string) error {
	if f.deleteErr != nil {
		return f.deleteErr
	}
	f.deletedIDs = append(f.deletedIDs, id)
	return nil
}

type fakeTaskService struct {
	createOut *models.Task
	createErr error

	listOut []models.Task
	listErr error

	getOut *models.Task
	getErr error

	updateOut   *models.Task
	updateErr   error
	updateInput services.UpdateTaskInput

	commentOut *models.Comment
	commentErr error

	statsOut *services.Stats
	statsErr error

	lastActor models.Actor
}

func (f *fakeTaskService) Create(ctx context.Context, actor models.Actor, input services.CreateTaskInput) (*models.Task, error) {
	f.lastActor = actor
	if f.createErr != nil {
		return nil, f.createErr
	}
	return f.createOut, nil
}

func (f *fakeTaskService) List(ctx context.Context, actor models.Actor) ([]models.Task, error) {
	f.lastActor = actor
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.listOut, nil
}

func (f *fakeTaskService) Get(ctx context.Context, actor models.Actor, taskID string) (*models.Task, error) {
	f.lastActor = actor
	if f.getErr != nil {
		return nil, f.getErr
	}
	return f.getOut, nil
}

func (f *fakeTaskService) Update(ctx context.Context, actor models.Actor, taskID string, input services.UpdateTaskInput) (*models.Task, error) {
	f.lastActor = actor
	f.updateInput = input
	if f.updateErr != nil {
		return nil, f.updateErr
	}
	return f.updateOut, nil
}

func (f *fakeTaskService) AddComment(ctx context.Context, actor models.Actor, taskID, content string) (*models.Comment, error) {
	f.lastActor = actor
	if f.commentErr != nil {
		return nil, f.commentErr
	}
	return f.commentOut, nil
}

func (f *fakeTaskService) GetStats(ctx context.Context, actor models.Actor) (*services.Stats, error) {
	f.lastActor = actor
	if f.statsErr != nil {
		return nil, f.statsErr
	}
	return f.statsOut, nil
}

// --- helpers ---

func newTestServer(t *testing.T, us UserService, ts TaskService) *RESTServer {
	t.Helper()
	gin.SetMode(gin.TestMode)
	logger := logging.NewSlogLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError})))
	s, err := NewRESTServer(":0", logger, us, ts, testSecret)
	if err != nil {
		t.Fatalf("NewRESTServer error: %v", err)
	}
	return s
}

func bearerFor(t *testing.T, actor models.Actor) string {
	t.Helper()
	token, err := auth.GenerateToken(actor.ID, actor.Role, []byte(testSecret), time.Hour)
	if err != nil {
		t.Fatalf("GenerateToken error: %v", err)
	}
	return "Bearer " + token
}

func doRequest(s *RESTServer, method, path, body, authHeader string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	w := httptest.NewRecorder()
	s.Router().ServeHTTP(w, req)
	return w
}
