package rest

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/dmitrijs2005/taskboard/internal/common"
)

func (s *RESTServer) registerAction(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		handleError(c, common.ErrValidation)
		return
	}

	user, err := s.users.Register(c.Request.Context(), req.Name, req.Email, req.Password, req.Role)
	if err != nil {
		handleError(c, err)
		return
	}

	s.logger.Info(c.Request.Context(), "user registered", "email", user.Email, "role", user.Role)
	c.JSON(http.StatusCreated, toUserResponse(user))
}

func (s *RESTServer) loginAction(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		handleError(c, common.ErrValidation)
		return
	}

	result, err := s.users.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, loginResponse{
		Token: result.Token,
		User:  toUserResponse(result.User),
	})
}

func (s *RESTServer) meAction(c *gin.Context) {
	user, err := s.users.Me(c.Request.Context(), actorFrom(c))
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, toUserResponse(user))
}
