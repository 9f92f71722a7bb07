package rest

import (
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/taskboard/internal/common"
	"github.com/dmitrijs2005/taskboard/internal/server/models"
	"github.com/dmitrijs2005/taskboard/internal/server/services"
)

func sampleUser() *models.User {
	return &models.User{
		ID:           "u1",
		Name:         "Alice",
		Email:        "alice@company.com",
		PasswordHash: "$2a$04$secret",
		Role:         models.RoleStaff,
		Status:       models.StatusActive,
		CreatedAt:    time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC),
	}
}

func TestLogin_Success(t *testing.T) {
	us := &fakeUserService{loginOut: &services.LoginResult{Token: "tok123", User: sampleUser()}}
	s := newTestServer(t, us, &fakeTaskService{})

	w := doRequest(s, http.MethodPost, "/api/auth/login",
		`{"email":"alice@company.com","password":"pw"}`, "")

	require.Equal(t, http.StatusOK, w.Code)

	var resp loginResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "tok123", resp.Token)
	assert.Equal(t, "u1", resp.User.ID)
	assert.NotContains(t, w.Body.String(), "secret", "credential hash must not be serialized")
}

func TestLogin_BadCredentials(t *testing.T) {
	us := &fakeUserService{loginErr: common.ErrInvalidCredentials}
	s := newTestServer(t, us, &fakeTaskService{})

	w := doRequest(s, http.MethodPost, "/api/auth/login",
		`{"email":"alice@company.com","password":"wrong"}`, "")

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestLogin_InactiveAccount(t *testing.T) {
	us := &fakeUserService{loginErr: common.ErrAccountInactive}
	s := newTestServer(t, us, &fakeTaskService{})

	w := doRequest(s, http.MethodPost, "/api/auth/login",
		`{"email":"alice@company.com","password":"pw"}`, "")

	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestLogin_MissingFields(t *testing.T) {
	s := newTestServer(t, &fakeUserService{}, &fakeTaskService{})

	w := doRequest(s, http.MethodPost, "/api/auth/login", `{"email":"alice@company.com"}`, "")

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestRegister_DuplicateEmail(t *testing.T) {
	us := &fakeUserService{registerErr: common.ErrDuplicateEmail}
	s := newTestServer(t, us, &fakeTaskService{})

	w := doRequest(s, http.MethodPost, "/api/auth/register",
		`{"name":"Bob","email":"bob@company.com","password":"pw"}`, "")

	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestRegister_Success(t *testing.T) {
	us := &fakeUserService{registerOut: sampleUser()}
	s := newTestServer(t, us, &fakeTaskService{})

	w := doRequest(s, http.MethodPost, "/api/auth/register",
		`{"name":"Alice","email":"alice@company.com","password":"pw"}`, "")

	require.Equal(t, http.StatusCreated, w.Code)

	var resp userResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "alice@company.com", resp.Email)
	assert.NotContains(t, w.Body.String(), "secret")
}

func TestMe_ReturnsCurrentUser(t *testing.T) {
	us := &fakeUserService{meOut: sampleUser()}
	s := newTestServer(t, us, &fakeTaskService{})

	actor := models.Actor{ID: "u1", Role: models.RoleStaff}
	w := doRequest(s, http.MethodGet, "/api/auth/me", "", bearerFor(t, actor))

	require.Equal(t, http.StatusOK, w.Code)

	var resp userResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "u1", resp.ID)
}

func TestCreateStaff_ForbiddenForStaff(t *testing.T) {
	us := &fakeUserService{createErr: common.ErrForbidden}
	s := newTestServer(t, us, &fakeTaskService{})

	actor := models.Actor{ID: "u1", Role: models.RoleStaff}
	w := doRequest(s, http.MethodPost, "/api/users",
		`{"name":"Bob","email":"bob@company.com","password":"pw"}`, bearerFor(t, actor))

	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestDeleteUser_Success(t *testing.T) {
	us := &fakeUserService{}
	s := newTestServer(t, us, &fakeTaskService{})

	actor := models.Actor{ID: "a1", Role: models.RoleAdmin}
	w := doRequest(s, http.MethodDelete, "/api/users/u1", "", bearerFor(t, actor))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, []string{"u1"}, us.deletedIDs)
}

func TestDeleteUser_NotFound(t *testing.T) {
	us := &fakeUserService{deleteErr: common.ErrNotFound}
	s := newTestServer(t, us, &fakeTaskService{})

	actor := models.Actor{ID: "a1", Role: models.RoleAdmin}
	w := doRequest(s, http.MethodDelete, "/api/users/missing", "", bearerFor(t, actor))

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestCreateTask_Success(t *testing.T) {
	due := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)
	ts := &fakeTaskService{createOut: &models.Task{
		ID:       "t1",
		Title:    "Ship it",
		Priority: models.PriorityHigh,
		Status:   models.TaskPending,
		DueDate:  &due,
	}}
	s := newTestServer(t, &fakeUserService{}, ts)

	actor := models.Actor{ID: "a1", Role: models.RoleAdmin}
	w := doRequest(s, http.MethodPost, "/api/tasks",
		`{"title":"Ship it","description":"asap","priority":"HIGH","assigneeIds":["u1"]}`,
		bearerFor(t, actor))

	require.Equal(t, http.StatusCreated, w.Code)

	var resp taskResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "t1", resp.ID)
	assert.Equal(t, models.TaskPending, resp.Status)
	assert.NotNil(t, resp.Assignees, "assignees serializes as [] not null")
	assert.NotNil(t, resp.Comments)
}

func TestCreateTask_ValidationError(t *testing.T) {
	ts := &fakeTaskService{createErr: common.ErrValidation}
	s := newTestServer(t, &fakeUserService{}, ts)

	actor := models.Actor{ID: "a1", Role: models.RoleAdmin}
	w := doRequest(s, http.MethodPost, "/api/tasks",
		`{"title":"x","description":"y","assigneeIds":["ghost"]}`, bearerFor(t, actor))

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestUpdateTask_PassesFieldsThrough(t *testing.T) {
	ts := &fakeTaskService{updateOut: &models.Task{ID: "t1", Status: models.TaskCompleted}}
	s := newTestServer(t, &fakeUserService{}, ts)

	actor := models.Actor{ID: "u1", Role: models.RoleStaff}
	w := doRequest(s, http.MethodPut, "/api/tasks/t1",
		`{"status":"COMPLETED"}`, bearerFor(t, actor))

	require.Equal(t, http.StatusOK, w.Code)
	require.NotNil(t, ts.updateInput.Status)
	assert.Equal(t, models.TaskCompleted, *ts.updateInput.Status)
	assert.Nil(t, ts.updateInput.AssigneeIDs, "absent assigneeIds must stay nil")
	assert.Nil(t, ts.updateInput.Title)
}

func TestGetTask_ForbiddenForOutsider(t *testing.T) {
	ts := &fakeTaskService{getErr: common.ErrForbidden}
	s := newTestServer(t, &fakeUserService{}, ts)

	actor := models.Actor{ID: "u2", Role: models.RoleStaff}
	w := doRequest(s, http.MethodGet, "/api/tasks/t1", "", bearerFor(t, actor))

	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestAddComment_Created(t *testing.T) {
	ts := &fakeTaskService{commentOut: &models.Comment{
		ID:      "c1",
		TaskID:  "t1",
		UserID:  "u1",
		Content: "  spaced  ",
		Author:  sampleUser(),
	}}
	s := newTestServer(t, &fakeUserService{}, ts)

	actor := models.Actor{ID: "u1", Role: models.RoleStaff}
	w := doRequest(s, http.MethodPost, "/api/tasks/t1/comments",
		`{"content":"  spaced  "}`, bearerFor(t, actor))

	require.Equal(t, http.StatusCreated, w.Code)

	var resp commentResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "  spaced  ", resp.Content)
	require.NotNil(t, resp.User)
	assert.Equal(t, "u1", resp.User.ID)
}

func TestTaskStats(t *testing.T) {
	ts := &fakeTaskService{statsOut: &services.Stats{
		Total:    3,
		ByStatus: map[models.TaskStatus]int{models.TaskPending: 2, models.TaskCompleted: 1},
		Overdue:  1,
	}}
	s := newTestServer(t, &fakeUserService{}, ts)

	actor := models.Actor{ID: "a1", Role: models.RoleAdmin}
	w := doRequest(s, http.MethodGet, "/api/tasks/stats", "", bearerFor(t, actor))

	require.Equal(t, http.StatusOK, w.Code)

	var resp statsResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 3, resp.Total)
	assert.Equal(t, 1, resp.Overdue)
	assert.Equal(t, 2, resp.ByStatus[models.TaskPending])
}

func TestInternalErrorIsNotLeaked(t *testing.T) {
	ts := &fakeTaskService{listErr: assert.AnError}
	s := newTestServer(t, &fakeUserService{}, ts)

	actor := models.Actor{ID: "a1", Role: models.RoleAdmin}
	w := doRequest(s, http.MethodGet, "/api/tasks", "", bearerFor(t, actor))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.NotContains(t, w.Body.String(), assert.AnError.Error())
	assert.Contains(t, w.Body.String(), common.ErrInternal.Error())
}
