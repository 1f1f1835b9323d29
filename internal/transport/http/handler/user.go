package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"course-catalog/internal/app"
	"course-catalog/internal/transport/http/middleware"
	"course-catalog/internal/transport/http/response"
)

type UserHandler struct {
	userService *app.UserService
}

type CreateUserRequest struct {
	FirstName    string `json:"firstName"`
	LastName     string `json:"lastName"`
	EmailAddress string `json:"emailAddress"`
	Password     string `json:"password"`
}

func NewUserHandler(userService *app.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

func (h *UserHandler) Register(c *gin.Context) {
	var req CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Message(c, http.StatusBadRequest, "invalid request payload")
		return
	}

	_, err := h.userService.Register(app.RegisterInput{
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		EmailAddress: req.EmailAddress,
		Password:     req.Password,
	})
	if err != nil {
		var validationErr *app.ValidationError
		switch {
		case errors.As(err, &validationErr):
			response.ValidationErrors(c, validationErr.Messages)
		case errors.Is(err, app.ErrEmailExists):
			response.Message(c, http.StatusBadRequest, err.Error())
		default:
			_ = c.Error(err)
			response.Message(c, http.StatusInternalServerError, err.Error())
		}
		return
	}

	response.Created(c, "/")
}

// Current returns the public fields of the authenticated identity.
func (h *UserHandler) Current(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		response.Message(c, http.StatusUnauthorized, "Access Denied")
		return
	}
	c.JSON(http.StatusOK, user.Public())
}
