package handler

import (
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	apperrors "projecthub/internal/errors"
	"projecthub/internal/model"
	"projecthub/internal/service"
)

// dueDateLayouts are tried in order when parsing due_date.
var dueDateLayouts = []string{"2006-01-02", time.RFC3339}

// TaskHandler handles task endpoints.
type TaskHandler struct {
	taskService service.TaskService
}

// NewTaskHandler creates a new task handler.
func NewTaskHandler(taskService service.TaskService) *TaskHandler {
	return &TaskHandler{taskService: taskService}
}

// TaskRequest is the body of task create and update. project_id is ignored on update.
type TaskRequest struct {
	Title       string  `json:"title" validate:"required,max=100"`
	Description *string `json:"description"`
	Status      string  `json:"status" validate:"omitempty,oneof=todo in_progress done"`
	ProjectID   uint    `json:"project_id"`
	AssigneeID  *uint   `json:"assignee_id"`
	DueDate     *string `json:"due_date" example:"2025-01-31"`
}

// AssignRequest names the new assignee of a task.
type AssignRequest struct {
	AssigneeID uint `json:"assignee_id" validate:"required"`
}

// AssignResponse confirms an assignment.
type AssignResponse struct {
	Detail     string `json:"detail"`
	AssigneeID uint   `json:"assignee_id"`
}

func (r TaskRequest) input() (service.TaskInput, error) {
	in := service.TaskInput{
		Title:       r.Title,
		Description: r.Description,
		Status:      model.TaskStatus(r.Status),
		ProjectID:   r.ProjectID,
		AssigneeID:  r.AssigneeID,
	}
	if r.DueDate != nil && strings.TrimSpace(*r.DueDate) != "" {
		due, err := parseDueDate(*r.DueDate)
		if err != nil {
			return in, err
		}
		in.DueDate = &due
	}
	return in, nil
}

func parseDueDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range dueDateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, apperrors.ErrInvalidDueDate
}

// CreateTask godoc
// @Summary Create a task in an owned project
// @Tags tasks
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body TaskRequest true "Task data"
// @Success 201 {object} model.Task
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /tasks/ [post]
func (h *TaskHandler) CreateTask(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}

	var req TaskRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	if req.ProjectID == 0 {
		return badRequest("project_id is required", "VALIDATION_ERROR")
	}
	in, err := req.input()
	if err != nil {
		return respondError(c, err)
	}

	task, err := h.taskService.Create(c.Request().Context(), user, in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusCreated, task)
}

// ListTasks godoc
// @Summary List tasks of one owned project, or of all owned projects
// @Tags tasks
// @Produce json
// @Security BearerAuth
// @Param project_id query int false "Project ID"
// @Success 200 {array} model.Task
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /tasks/ [get]
func (h *TaskHandler) ListTasks(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}

	var projectID *uint
	if c.QueryParam("project_id") != "" {
		var id uint
		if err := echo.QueryParamsBinder(c).Uint("project_id", &id).BindError(); err != nil {
			return badRequest("invalid project_id", "INVALID_ID")
		}
		projectID = &id
	}

	tasks, err := h.taskService.List(c.Request().Context(), user, projectID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, tasks)
}

// GetTask godoc
// @Summary Get a task
// @Tags tasks
// @Produce json
// @Security BearerAuth
// @Param id path int true "Task ID"
// @Success 200 {object} model.Task
// @Failure 401 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /tasks/{id} [get]
func (h *TaskHandler) GetTask(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	task, err := h.taskService.Get(c.Request().Context(), user, id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, task)
}

// UpdateTask godoc
// @Summary Replace a task's fields
// @Tags tasks
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Task ID"
// @Param request body TaskRequest true "Task data"
// @Success 200 {object} model.Task
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /tasks/{id} [put]
func (h *TaskHandler) UpdateTask(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	var req TaskRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	in, err := req.input()
	if err != nil {
		return respondError(c, err)
	}

	task, err := h.taskService.Update(c.Request().Context(), user, id, in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, task)
}

// DeleteTask godoc
// @Summary Delete a task and its comments
// @Tags tasks
// @Produce json
// @Security BearerAuth
// @Param id path int true "Task ID"
// @Success 200 {object} MessageResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /tasks/{id} [delete]
func (h *TaskHandler) DeleteTask(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	if err := h.taskService.Delete(c.Request().Context(), user, id); err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, MessageResponse{Detail: "Task deleted"})
}

// AssignTask godoc
// @Summary Change only the assignee of a task
// @Tags tasks
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Task ID"
// @Param request body AssignRequest true "Assignee"
// @Success 200 {object} AssignResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /tasks/{id}/assign [post]
func (h *TaskHandler) AssignTask(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	var req AssignRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	task, err := h.taskService.Assign(c.Request().Context(), user, id, req.AssigneeID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, AssignResponse{
		Detail:     "Task assigned successfully",
		AssigneeID: *task.AssigneeID,
	})
}
