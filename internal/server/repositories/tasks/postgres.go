package tasks

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/taskboard/internal/common"
	"github.com/dmitrijs2005/taskboard/internal/dbx"
	"github.com/dmitrijs2005/taskboard/internal/server/models"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(ctx context.Context, task *models.Task) (*models.Task, error) {

	query :=
		`INSERT INTO tasks (id, title, description, priority, status, due_date)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 RETURNING created_at
		 `

	err := r.db.QueryRowContext(ctx, query,
		task.ID, task.Title, task.Description, task.Priority, task.Status, task.DueDate).Scan(&task.CreatedAt)

	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return task, nil
}

func (r *PostgresRepository) GetByID(ctx context.Context, id string) (*models.Task, error) {
	query :=
		`SELECT id, title, description, priority, status, due_date, created_at FROM tasks
		 WHERE id = $1
		 `

	task := &models.Task{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&task.ID, &task.Title, &task.Description, &task.Priority, &task.Status, &task.DueDate, &task.CreatedAt)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	if err := r.loadRelations(ctx, task); err != nil {
		return nil, err
	}

	return task, nil
}

func (r *PostgresRepository) ListAll(ctx context.Context) ([]models.Task, error) {
	query :=
		`SELECT id, title, description, priority, status, due_date, created_at FROM tasks
		 ORDER BY created_at DESC
		 `

	return r.list(ctx, query)
}

func (r *PostgresRepository) ListByAssignee(ctx context.Context, userID string) ([]models.Task, error) {
	query :=
		`SELECT t.id, t.title, t.description, t.priority, t.status, t.due_date, t.created_at FROM tasks t
		 JOIN task_assignees ta ON ta.task_id = t.id
		 WHERE ta.user_id = $1
		 ORDER BY t.created_at DESC
		 `

	return r.list(ctx, query, userID)
}

func (r *PostgresRepository) list(ctx context.Context, query string, args ...any) ([]models.Task, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var result []models.Task
	for rows.Next() {
		var task models.Task
		if err := rows.Scan(&task.ID, &task.Title, &task.Description, &task.Priority,
			&task.Status, &task.DueDate, &task.CreatedAt); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		result = append(result, task)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	for i := range result {
		if err := r.loadRelations(ctx, &result[i]); err != nil {
			return nil, err
		}
	}

	return result, nil
}

func (r *PostgresRepository) loadRelations(ctx context.Context, task *models.Task) error {
	assignees, err := r.loadAssignees(ctx, task.ID)
	if err != nil {
		return err
	}
	task.Assignees = assignees

	comments, err := r.loadComments(ctx, task.ID)
	if err != nil {
		return err
	}
	task.Comments = comments

	return nil
}

func (r *PostgresRepository) loadAssignees(ctx context.Context, taskID string) ([]models.User, error) {
	query :=
		`SELECT u.id, u.name, u.email, u.role, u.status, u.created_at FROM users u
		 JOIN task_assignees ta ON ta.user_id = u.id
		 WHERE ta.task_id = $1
		 ORDER BY u.created_at
		 `

	rows, err := r.db.QueryContext(ctx, query, taskID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var result []models.User
	for rows.Next() {
		var user models.User
		if err := rows.Scan(&user.ID, &user.Name, &user.Email, &user.Role, &user.Status, &user.CreatedAt); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		result = append(result, user)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return result, nil
}

func (r *PostgresRepository) loadComments(ctx context.Context, taskID string) ([]models.Comment, error) {
	query :=
		`SELECT c.id, c.task_id, c.user_id, c.content, c.created_at,
		        u.id, u.name, u.email, u.role, u.status, u.created_at
		 FROM comments c
		 JOIN users u ON u.id = c.user_id
		 WHERE c.task_id = $1
		 ORDER BY c.created_at
		 `

	rows, err := r.db.QueryContext(ctx, query, taskID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var result []models.Comment
	for rows.Next() {
		var comment models.Comment
		author := models.User{}
		if err := rows.Scan(&comment.ID, &comment.TaskID, &comment.UserID, &comment.Content, &comment.CreatedAt,
			&author.ID, &author.Name, &author.Email, &author.Role, &author.Status, &author.CreatedAt); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		comment.Author = &author
		result = append(result, comment)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return result, nil
}

func (r *PostgresRepository) UpdateFields(ctx context.Context, task *models.Task) error {
	query :=
		`UPDATE tasks
		 SET title = $2, description = $3, priority = $4, status = $5, due_date = $6
		 WHERE id = $1
		 `

	result, err := r.db.ExecContext(ctx, query,
		task.ID, task.Title, task.Description, task.Priority, task.Status, task.DueDate)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	if affected == 0 {
		return common.ErrNotFound
	}

	return nil
}

// ReplaceAssignees swaps the full assignee set of a task. Run it inside a
// transaction when the caller needs all-or-nothing semantics.
func (r *PostgresRepository) ReplaceAssignees(ctx context.Context, taskID string, userIDs []string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM task_assignees WHERE task_id = $1`, taskID); err != nil {
		return fmt.Errorf("db error: %w", err)
	}

	query := `INSERT INTO task_assignees (task_id, user_id) VALUES ($1, $2)`
	for _, userID := range userIDs {
		if _, err := r.db.ExecContext(ctx, query, taskID, userID); err != nil {
			return fmt.Errorf("db error: %w", err)
		}
	}

	return nil
}

// RetractAssignee removes the user from every task's assignee set. Used by
// user deletion, inside the same transaction as the user row delete.
func (r *PostgresRepository) RetractAssignee(ctx context.Context, userID string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM task_assignees WHERE user_id = $1`, userID); err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func (r *PostgresRepository) AddComment(ctx context.Context, comment *models.Comment) (*models.Comment, error) {
	query :=
		`INSERT INTO comments (id, task_id, user_id, content)
		 VALUES ($1, $2, $3, $4)
		 RETURNING created_at
		 `

	err := r.db.QueryRowContext(ctx, query,
		comment.ID, comment.TaskID, comment.UserID, comment.Content).Scan(&comment.CreatedAt)

	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return comment, nil
}
