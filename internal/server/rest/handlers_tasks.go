package rest

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/dmitrijs2005/taskboard/internal/common"
	"github.com/dmitrijs2005/taskboard/internal/server/services"
)

func (s *RESTServer) listTasksAction(c *gin.Context) {
	tasks, err := s.tasks.List(c.Request.Context(), actorFrom(c))
	if err != nil {
		handleError(c, err)
		return
	}

	resp := make([]taskResponse, 0, len(tasks))
	for i := range tasks {
		resp = append(resp, toTaskResponse(&tasks[i]))
	}
	c.JSON(http.StatusOK, resp)
}

func (s *RESTServer) createTaskAction(c *gin.Context) {
	var req createTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		handleError(c, common.ErrValidation)
		return
	}

	input := services.CreateTaskInput{
		Title:       req.Title,
		Description: req.Description,
		Priority:    req.Priority,
		DueDate:     req.DueDate,
		AssigneeIDs: req.AssigneeIDs,
	}

	task, err := s.tasks.Create(c.Request.Context(), actorFrom(c), input)
	if err != nil {
		handleError(c, err)
		return
	}

	s.logger.Info(c.Request.Context(), "task created", "id", task.ID, "title", task.Title)
	c.JSON(http.StatusCreated, toTaskResponse(task))
}

func (s *RESTServer) getTaskAction(c *gin.Context) {
	task, err := s.tasks.Get(c.Request.Context(), actorFrom(c), c.Param("id"))
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, toTaskResponse(task))
}

func (s *RESTServer) updateTaskAction(c *gin.Context) {
	var req updateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		handleError(c, common.ErrValidation)
		return
	}

	input := services.UpdateTaskInput{
		Status:      req.Status,
		AssigneeIDs: req.AssigneeIDs,
		Title:       req.Title,
		Description: req.Description,
		Priority:    req.Priority,
		DueDate:     req.DueDate,
	}

	task, err := s.tasks.Update(c.Request.Context(), actorFrom(c), c.Param("id"), input)
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, toTaskResponse(task))
}

func (s *RESTServer) addCommentAction(c *gin.Context) {
	var req addCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		handleError(c, common.ErrValidation)
		return
	}

	comment, err := s.tasks.AddComment(c.Request.Context(), actorFrom(c), c.Param("id"), req.Content)
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusCreated, toCommentResponse(comment))
}

func (s *RESTServer) taskStatsAction(c *gin.Context) {
	stats, err := s.tasks.GetStats(c.Request.Context(), actorFrom(c))
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, toStatsResponse(stats))
}
