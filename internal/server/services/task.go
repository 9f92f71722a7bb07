package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/dmitrijs2005/taskboard/internal/common"
	"github.com/dmitrijs2005/taskboard/internal/dbx"
	"github.com/dmitrijs2005/taskboard/internal/server/models"
	"github.com/dmitrijs2005/taskboard/internal/server/policy"
	"github.com/dmitrijs2005/taskboard/internal/server/repositories/repomanager"
)

// CreateTaskInput is the typed payload for task creation.
type CreateTaskInput struct {
	Title       string
	Description string
	Priority    models.Priority
	DueDate     *time.Time
	AssigneeIDs []string
}

// UpdateTaskInput carries a partial task update. Nil fields are left
// unchanged. A non-nil AssigneeIDs replaces the full assignee set; it never
// merges. Status and AssigneeIDs are authorized independently.
type UpdateTaskInput struct {
	Status      *models.TaskStatus
	AssigneeIDs []string
	Title       *string
	Description *string
	Priority    *models.Priority
	DueDate     *time.Time
}

// Stats are derived counters over the actor's visible task set. They are
// computed on demand and never persisted.
type Stats struct {
	Total    int
	ByStatus map[models.TaskStatus]int
	Overdue  int
}

// TaskService is the task lifecycle engine. Every operation takes the
// acting identity explicitly and consults the policy package before
// touching storage.
type TaskService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
}

// NewTaskService constructs a TaskService over the given repositories.
func NewTaskService(db *sql.DB, m repomanager.RepositoryManager) *TaskService {
	return &TaskService{db: db, repomanager: m}
}

// resolveAssignees checks that every id references an existing STAFF user
// and returns the deduplicated user records. Any other id fails validation.
func (s *TaskService) resolveAssignees(ctx context.Context, ids []string) ([]models.User, error) {
	repo := s.repomanager.Users(s.db)

	seen := make(map[string]struct{}, len(ids))
	resolved := make([]models.User, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}

		user, err := repo.GetByID(ctx, id)
		if err != nil {
			if errors.Is(err, common.ErrNotFound) {
				return nil, common.ErrValidation
			}
			return nil, common.ErrInternal
		}
		if user.Role != models.RoleStaff {
			return nil, common.ErrValidation
		}
		resolved = append(resolved, *user)
	}
	return resolved, nil
}

func assigneeIDs(users []models.User) []string {
	ids := make([]string, 0, len(users))
	for _, u := range users {
		ids = append(ids, u.ID)
	}
	return ids
}

// Create makes a new PENDING task with an empty comment thread. Admin only.
func (s *TaskService) Create(ctx context.Context, actor models.Actor, input CreateTaskInput) (*models.Task, error) {
	if !policy.CanCreateTask(actor) {
		return nil, common.ErrForbidden
	}

	if strings.TrimSpace(input.Title) == "" || strings.TrimSpace(input.Description) == "" {
		return nil, common.ErrValidation
	}

	priority := input.Priority
	if priority == "" {
		priority = models.PriorityMedium
	}
	if !models.ValidPriority(priority) {
		return nil, common.ErrValidation
	}

	assignees, err := s.resolveAssignees(ctx, input.AssigneeIDs)
	if err != nil {
		return nil, err
	}

	task := &models.Task{
		ID:          uuid.NewString(),
		Title:       input.Title,
		Description: input.Description,
		Priority:    priority,
		Status:      models.TaskPending,
		DueDate:     input.DueDate,
	}

	err = dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.repomanager.Tasks(tx)
		if _, err := repo.Create(ctx, task); err != nil {
			return fmt.Errorf("error creating task: %w", err)
		}
		if err := repo.ReplaceAssignees(ctx, task.ID, assigneeIDs(assignees)); err != nil {
			return fmt.Errorf("error assigning task: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	task.Assignees = assignees
	task.Comments = nil
	return task, nil
}

// List returns the tasks visible to the actor, newest first: all tasks for
// admins, assigned tasks for staff.
func (s *TaskService) List(ctx context.Context, actor models.Actor) ([]models.Task, error) {
	repo := s.repomanager.Tasks(s.db)

	var (
		tasks []models.Task
		err   error
	)
	if actor.Role == models.RoleAdmin {
		tasks, err = repo.ListAll(ctx)
	} else {
		tasks, err = repo.ListByAssignee(ctx, actor.ID)
	}
	if err != nil {
		return nil, fmt.Errorf("error listing tasks: %w", err)
	}
	return tasks, nil
}

// Get returns a single task, subject to the view policy.
func (s *TaskService) Get(ctx context.Context, actor models.Actor, taskID string) (*models.Task, error) {
	task, err := s.repomanager.Tasks(s.db).GetByID(ctx, taskID)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, common.ErrNotFound
		}
		return nil, common.ErrInternal
	}
	if !policy.CanViewTask(actor, task) {
		return nil, common.ErrForbidden
	}
	return task, nil
}

// Update applies a partial task update. Each present field is authorized on
// its own: status by CanMutateStatus, assignees by CanMutateAssignees, and
// the descriptive fields by CanEditTaskDetails. A failed update leaves the
// task untouched.
func (s *TaskService) Update(ctx context.Context, actor models.Actor, taskID string, input UpdateTaskInput) (*models.Task, error) {
	repo := s.repomanager.Tasks(s.db)

	task, err := repo.GetByID(ctx, taskID)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, common.ErrNotFound
		}
		return nil, common.ErrInternal
	}

	if input.Status != nil {
		if !models.ValidTaskStatus(*input.Status) {
			return nil, common.ErrValidation
		}
		if !policy.CanMutateStatus(actor, task) {
			return nil, common.ErrForbidden
		}
		// Transitions are free-form: any of the three states may be set,
		// including reopening a COMPLETED task.
		task.Status = *input.Status
	}

	var assignees []models.User
	replaceAssignees := input.AssigneeIDs != nil
	if replaceAssignees {
		if !policy.CanMutateAssignees(actor) {
			return nil, common.ErrForbidden
		}
		assignees, err = s.resolveAssignees(ctx, input.AssigneeIDs)
		if err != nil {
			return nil, err
		}
	}

	if input.Title != nil || input.Description != nil || input.Priority != nil || input.DueDate != nil {
		if !policy.CanEditTaskDetails(actor) {
			return nil, common.ErrForbidden
		}
		if input.Title != nil {
			if strings.TrimSpace(*input.Title) == "" {
				return nil, common.ErrValidation
			}
			task.Title = *input.Title
		}
		if input.Description != nil {
			if strings.TrimSpace(*input.Description) == "" {
				return nil, common.ErrValidation
			}
			task.Description = *input.Description
		}
		if input.Priority != nil {
			if !models.ValidPriority(*input.Priority) {
				return nil, common.ErrValidation
			}
			task.Priority = *input.Priority
		}
		if input.DueDate != nil {
			task.DueDate = input.DueDate
		}
	}

	err = dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		txRepo := s.repomanager.Tasks(tx)
		if err := txRepo.UpdateFields(ctx, task); err != nil {
			return fmt.Errorf("error updating task: %w", err)
		}
		if replaceAssignees {
			if err := txRepo.ReplaceAssignees(ctx, task.ID, assigneeIDs(assignees)); err != nil {
				return fmt.Errorf("error replacing assignees: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if replaceAssignees {
		task.Assignees = assignees
	}
	return task, nil
}

// AddComment appends an immutable comment to the task's thread. Anyone who
// can view the task may comment; whitespace-only content is rejected and
// everything else is stored exactly as submitted.
func (s *TaskService) AddComment(ctx context.Context, actor models.Actor, taskID, content string) (*models.Comment, error) {
	task, err := s.repomanager.Tasks(s.db).GetByID(ctx, taskID)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, common.ErrNotFound
		}
		return nil, common.ErrInternal
	}

	if !policy.CanViewTask(actor, task) {
		return nil, common.ErrForbidden
	}

	if strings.TrimSpace(content) == "" {
		return nil, common.ErrValidation
	}

	comment := &models.Comment{
		ID:      uuid.NewString(),
		TaskID:  task.ID,
		UserID:  actor.ID,
		Content: content,
	}

	created, err := s.repomanager.Tasks(s.db).AddComment(ctx, comment)
	if err != nil {
		return nil, fmt.Errorf("error adding comment: %w", err)
	}
	return created, nil
}

// GetStats computes dashboard counters over the actor's visible task set.
func (s *TaskService) GetStats(ctx context.Context, actor models.Actor) (*Stats, error) {
	tasks, err := s.List(ctx, actor)
	if err != nil {
		return nil, err
	}
	stats := ComputeStats(tasks, time.Now())
	return &stats, nil
}

// ComputeStats derives counters from a task set: total, per-status counts,
// and the number of overdue tasks (due date passed, not completed).
func ComputeStats(tasks []models.Task, now time.Time) Stats {
	stats := Stats{
		Total:    len(tasks),
		ByStatus: make(map[models.TaskStatus]int),
	}
	for i := range tasks {
		stats.ByStatus[tasks[i].Status]++
		if tasks[i].Overdue(now) {
			stats.Overdue++
		}
	}
	return stats
}
