package handler

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"course-catalog/internal/app"
	"course-catalog/internal/transport/http/middleware"
	"course-catalog/internal/transport/http/response"
)

type CourseHandler struct {
	courseService *app.CourseService
}

type CourseRequest struct {
	Title           string `json:"title"`
	Description     string `json:"description"`
	EstimatedTime   string `json:"estimatedTime"`
	MaterialsNeeded string `json:"materialsNeeded"`
	UserID          uint   `json:"userId"`
}

func NewCourseHandler(courseService *app.CourseService) *CourseHandler {
	return &CourseHandler{courseService: courseService}
}

func (h *CourseHandler) List(c *gin.Context) {
	courses, err := h.courseService.List()
	if err != nil {
		_ = c.Error(err)
		response.Message(c, http.StatusInternalServerError, err.Error())
		return
	}
	c.JSON(http.StatusOK, courses)
}

func (h *CourseHandler) Get(c *gin.Context) {
	id, ok := courseID(c)
	if !ok {
		return
	}

	course, err := h.courseService.Get(id)
	if err != nil {
		if errors.Is(err, app.ErrCourseNotFound) {
			response.Message(c, http.StatusNotFound, "Course Not Found")
			return
		}
		_ = c.Error(err)
		response.Message(c, http.StatusInternalServerError, err.Error())
		return
	}
	c.JSON(http.StatusOK, course)
}

func (h *CourseHandler) Create(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		response.Message(c, http.StatusUnauthorized, "Access Denied")
		return
	}

	var req CourseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Message(c, http.StatusBadRequest, "invalid request payload")
		return
	}

	course, err := h.courseService.Create(user.ID, courseInput(req))
	if err != nil {
		h.respondMutationError(c, err)
		return
	}

	response.Created(c, fmt.Sprintf("/api/courses/%d", course.ID))
}

func (h *CourseHandler) Update(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		response.Message(c, http.StatusUnauthorized, "Access Denied")
		return
	}

	id, ok := courseID(c)
	if !ok {
		return
	}

	var req CourseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Message(c, http.StatusBadRequest, "invalid request payload")
		return
	}

	if err := h.courseService.Update(user.ID, id, courseInput(req)); err != nil {
		h.respondMutationError(c, err)
		return
	}
	response.NoContent(c)
}

func (h *CourseHandler) Delete(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		response.Message(c, http.StatusUnauthorized, "Access Denied")
		return
	}

	id, ok := courseID(c)
	if !ok {
		return
	}

	if err := h.courseService.Delete(user.ID, id); err != nil {
		h.respondMutationError(c, err)
		return
	}
	response.NoContent(c)
}

func (h *CourseHandler) AuditTrail(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		response.Message(c, http.StatusUnauthorized, "Access Denied")
		return
	}

	id, ok := courseID(c)
	if !ok {
		return
	}

	events, err := h.courseService.AuditTrail(user.ID, id)
	if err != nil {
		h.respondMutationError(c, err)
		return
	}
	c.JSON(http.StatusOK, events)
}

func (h *CourseHandler) respondMutationError(c *gin.Context, err error) {
	var validationErr *app.ValidationError
	switch {
	case errors.As(err, &validationErr):
		response.ValidationErrors(c, validationErr.Messages)
	case errors.Is(err, app.ErrCourseNotFound):
		response.Message(c, http.StatusNotFound, "Course Not Found")
	case errors.Is(err, app.ErrNotCourseOwner):
		response.Message(c, http.StatusForbidden, err.Error())
	case errors.Is(err, app.ErrOwnerNotFound):
		response.Message(c, http.StatusBadRequest, err.Error())
	default:
		_ = c.Error(err)
		response.Message(c, http.StatusInternalServerError, err.Error())
	}
}

// courseID parses the :id segment. A non-numeric id cannot reference any
// course, so it reads as not found.
func courseID(c *gin.Context) (uint, bool) {
	raw := c.Param("id")
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		response.Message(c, http.StatusNotFound, "Course Not Found")
		return 0, false
	}
	return uint(id), true
}

func courseInput(req CourseRequest) app.CourseInput {
	return app.CourseInput{
		Title:           req.Title,
		Description:     req.Description,
		EstimatedTime:   req.EstimatedTime,
		MaterialsNeeded: req.MaterialsNeeded,
		UserID:          req.UserID,
	}
}
