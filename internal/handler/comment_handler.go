package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"projecthub/internal/service"
)

// CommentHandler handles task comment endpoints.
type CommentHandler struct {
	commentService service.CommentService
}

// NewCommentHandler creates a new comment handler.
func NewCommentHandler(commentService service.CommentService) *CommentHandler {
	return &CommentHandler{commentService: commentService}
}

// CommentRequest is the body of comment creation. The author is always the caller.
type CommentRequest struct {
	TaskID  uint   `json:"task_id" validate:"required"`
	Comment string `json:"comment" validate:"required"`
}

// CreateComment godoc
// @Summary Comment on a task
// @Tags comments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body CommentRequest true "Comment"
// @Success 201 {object} model.TaskComment
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /comments/ [post]
func (h *CommentHandler) CreateComment(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}

	var req CommentRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	comment, err := h.commentService.Create(c.Request().Context(), user, req.TaskID, req.Comment)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusCreated, comment)
}

// ListTaskComments godoc
// @Summary List comments of a task, oldest first
// @Tags comments
// @Produce json
// @Security BearerAuth
// @Param id path int true "Task ID"
// @Success 200 {array} model.TaskComment
// @Failure 401 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /comments/task/{id} [get]
func (h *CommentHandler) ListTaskComments(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}
	taskID, err := pathID(c, "id")
	if err != nil {
		return err
	}

	comments, err := h.commentService.ListForTask(c.Request().Context(), user, taskID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, comments)
}
