package rest

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/dmitrijs2005/taskboard/internal/common"
	"github.com/dmitrijs2005/taskboard/internal/server/services"
)

func (s *RESTServer) listStaffAction(c *gin.Context) {
	staff, err := s.users.ListStaff(c.Request.Context(), actorFrom(c))
	if err != nil {
		handleError(c, err)
		return
	}

	resp := make([]userResponse, 0, len(staff))
	for i := range staff {
		resp = append(resp, toUserResponse(&staff[i]))
	}
	c.JSON(http.StatusOK, resp)
}

func (s *RESTServer) createStaffAction(c *gin.Context) {
	var req createStaffRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		handleError(c, common.ErrValidation)
		return
	}

	user, err := s.users.CreateStaff(c.Request.Context(), actorFrom(c), req.Name, req.Email, req.Password)
	if err != nil {
		handleError(c, err)
		return
	}

	s.logger.Info(c.Request.Context(), "staff created", "email", user.Email)
	c.JSON(http.StatusCreated, toUserResponse(user))
}

func (s *RESTServer) updateUserAction(c *gin.Context) {
	var req updateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		handleError(c, common.ErrValidation)
		return
	}

	input := services.UpdateUserInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
		Status:   req.Status,
	}

	user, err := s.users.UpdateUser(c.Request.Context(), actorFrom(c), c.Param("id"), input)
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, toUserResponse(user))
}

func (s *RESTServer) deleteUserAction(c *gin.Context) {
	if err := s.users.DeleteUser(c.Request.Context(), actorFrom(c), c.Param("id")); err != nil {
		handleError(c, err)
		return
	}

	s.logger.Info(c.Request.Context(), "user deleted", "id", c.Param("id"))
	c.JSON(http.StatusOK, gin.H{"message": "User deleted"})
}
