// Package rest is the HTTP API surface: a thin gin layer that authenticates
// requests, converts JSON bodies into typed inputs, calls the services, and
// maps the core error taxonomy to status codes. No business rules live here.
package rest

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/dmitrijs2005/taskboard/internal/logging"
	"github.com/dmitrijs2005/taskboard/internal/server/models"
	"github.com/dmitrijs2005/taskboard/internal/server/services"
)

// UserService is the identity/session surface consumed by the handlers.
// Implemented by *services.UserService.
type UserService interface {
	Register(ctx context.Context, name, email, password string, role models.Role) (*models.User, error)
	Login(ctx context.Context, email, password string) (*services.LoginResult, error)
	Me(ctx context.Context, actor models.Actor) (*models.User, error)
	ListStaff(ctx context.Context, actor models.Actor) ([]models.User, error)
	CreateStaff(ctx context.Context, actor models.Actor, name, email, password string) (*models.User, error)
	UpdateUser(ctx context.Context, actor models.Actor, id string, input services.UpdateUserInput) (*models.User, error)
	DeleteUser(ctx context.Context, actor models.Actor, id string) error
}

// TaskService is the task lifecycle surface consumed by the handlers.
// Implemented by *services.TaskService.
type TaskService interface {
	Create(ctx context.Context, actor models.Actor, input services.CreateTaskInput) (*models.Task, error)
	List(ctx context.Context, actor models.Actor) ([]models.Task, error)
	Get(ctx context.Context, actor models.Actor, taskID string) (*models.Task, error)
	Update(ctx context.Context, actor models.Actor, taskID string, input services.UpdateTaskInput) (*models.Task, error)
	AddComment(ctx context.Context, actor models.Actor, taskID, content string) (*models.Comment, error)
	GetStats(ctx context.Context, actor models.Actor) (*services.Stats, error)
}

type RESTServer struct {
	address   string
	logger    logging.Logger
	users     UserService
	tasks     TaskService
	jwtSecret []byte
}

func NewRESTServer(a string, l logging.Logger, us UserService, ts TaskService, secretKey string) (*RESTServer, error) {
	return &RESTServer{
		address:   a,
		logger:    l.With("module", "rest_server"),
		users:     us,
		tasks:     ts,
		jwtSecret: []byte(secretKey),
	}, nil
}

// Router builds the gin engine with all routes registered.
func (s *RESTServer) Router() *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())

	router.GET("/", func(c *gin.Context) {
		c.String(http.StatusOK, "Task Assignment API is running")
	})

	api := router.Group("/api")

	authRoutes := api.Group("/auth")
	authRoutes.POST("/register", s.registerAction)
	authRoutes.POST("/login", s.loginAction)
	authRoutes.GET("/me", s.authRequired(), s.meAction)

	userRoutes := api.Group("/users", s.authRequired())
	userRoutes.GET("", s.listStaffAction)
	userRoutes.POST("", s.createStaffAction)
	userRoutes.PUT("/:id", s.updateUserAction)
	userRoutes.DELETE("/:id", s.deleteUserAction)

	taskRoutes := api.Group("/tasks", s.authRequired())
	taskRoutes.GET("", s.listTasksAction)
	taskRoutes.POST("", s.createTaskAction)
	taskRoutes.GET("/stats", s.taskStatsAction)
	taskRoutes.GET("/:id", s.getTaskAction)
	taskRoutes.PUT("/:id", s.updateTaskAction)
	taskRoutes.POST("/:id/comments", s.addCommentAction)

	return router
}

// Run serves the API until ctx is cancelled, then shuts down gracefully.
func (s *RESTServer) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:    s.address,
		Handler: s.Router(),
	}

	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping HTTP server...")
		_ = srv.Shutdown(context.Background())
	}()

	s.logger.Info(ctx, "Starting HTTP server", "address", s.address)

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	return nil
}
