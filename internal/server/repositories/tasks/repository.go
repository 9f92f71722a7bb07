package tasks

import (
	"context"

	"github.com/dmitrijs2005/taskboard/internal/server/models"
)

// Repository is the task store contract: task rows, the task/user assignee
// join, and the append-only comment thread. Lookups of absent tasks return
// common.ErrNotFound.
type Repository interface {
	Create(ctx context.Context, task *models.Task) (*models.Task, error)
	GetByID(ctx context.Context, id string) (*models.Task, error)
	ListAll(ctx context.Context) ([]models.Task, error)
	ListByAssignee(ctx context.Context, userID string) ([]models.Task, error)
	UpdateFields(ctx context.Context, task *models.Task) error
	ReplaceAssignees(ctx context.Context, taskID string, userIDs []string) error
	RetractAssignee(ctx context.Context, userID string) error
	AddComment(ctx context.Context, comment *models.Comment) (*models.Comment, error)
}
