package rest

import (
	"time"

	"github.com/dmitrijs2005/taskboard/internal/server/models"
	"github.com/dmitrijs2005/taskboard/internal/server/services"
)

// Request bodies are typed and validated here, at the API boundary; the core
// services receive plain structs, never raw JSON.

type loginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type registerRequest struct {
	Name     string      `json:"name" binding:"required"`
	Email    string      `json:"email" binding:"required"`
	Password string      `json:"password" binding:"required"`
	Role     models.Role `json:"role"`
}

type createStaffRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type updateUserRequest struct {
	Name     *string        `json:"name"`
	Email    *string        `json:"email"`
	Password *string        `json:"password"`
	Status   *models.Status `json:"status"`
}

type createTaskRequest struct {
	Title       string          `json:"title" binding:"required"`
	Description string          `json:"description" binding:"required"`
	Priority    models.Priority `json:"priority"`
	DueDate     *time.Time      `json:"dueDate"`
	AssigneeIDs []string        `json:"assigneeIds"`
}

type updateTaskRequest struct {
	Status      *models.TaskStatus `json:"status"`
	AssigneeIDs []string           `json:"assigneeIds"`
	Title       *string            `json:"title"`
	Description *string            `json:"description"`
	Priority    *models.Priority   `json:"priority"`
	DueDate     *time.Time         `json:"dueDate"`
}

type addCommentRequest struct {
	Content string `json:"content"`
}

// Responses. The credential hash never leaves the server.

type userResponse struct {
	ID        string        `json:"id"`
	Name      string        `json:"name"`
	Email     string        `json:"email"`
	Role      models.Role   `json:"role"`
	Status    models.Status `json:"status"`
	CreatedAt time.Time     `json:"createdAt"`
}

type commentResponse struct {
	ID        string        `json:"id"`
	Content   string        `json:"content"`
	CreatedAt time.Time     `json:"createdAt"`
	UserID    string        `json:"userId"`
	User      *userResponse `json:"user,omitempty"`
}

type taskResponse struct {
	ID          string            `json:"id"`
	Title       string            `json:"title"`
	Description string            `json:"description"`
	Priority    models.Priority   `json:"priority"`
	Status      models.TaskStatus `json:"status"`
	DueDate     *time.Time        `json:"dueDate"`
	CreatedAt   time.Time         `json:"createdAt"`
	Assignees   []userResponse    `json:"assignees"`
	Comments    []commentResponse `json:"comments"`
}

type loginResponse struct {
	Token string       `json:"token"`
	User  userResponse `json:"user"`
}

type statsResponse struct {
	Total    int                       `json:"total"`
	ByStatus map[models.TaskStatus]int `json:"byStatus"`
	Overdue  int                       `json:"overdue"`
}

func toUserResponse(u *models.User) userResponse {
	return userResponse{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		Role:      u.Role,
		Status:    u.Status,
		CreatedAt: u.CreatedAt,
	}
}

func toCommentResponse(c *models.Comment) commentResponse {
	resp := commentResponse{
		ID:        c.ID,
		Content:   c.Content,
		CreatedAt: c.CreatedAt,
		UserID:    c.UserID,
	}
	if c.Author != nil {
		author := toUserResponse(c.Author)
		resp.User = &author
	}
	return resp
}

func toTaskResponse(t *models.Task) taskResponse {
	resp := taskResponse{
		ID:          t.ID,
		Title:       t.Title,
		Description: t.Description,
		Priority:    t.Priority,
		Status:      t.Status,
		DueDate:     t.DueDate,
		CreatedAt:   t.CreatedAt,
		Assignees:   make([]userResponse, 0, len(t.Assignees)),
		Comments:    make([]commentResponse, 0, len(t.Comments)),
	}
	for i := range t.Assignees {
		resp.Assignees = append(resp.Assignees, toUserResponse(&t.Assignees[i]))
	}
	for i := range t.Comments {
		resp.Comments = append(resp.Comments, toCommentResponse(&t.Comments[i]))
	}
	return resp
}

func toStatsResponse(s *services.Stats) statsResponse {
	return statsResponse{Total: s.Total, ByStatus: s.ByStatus, Overdue: s.Overdue}
}
