package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"projecthub/internal/service"
)

// ProjectHandler handles project and membership endpoints.
type ProjectHandler struct {
	projectService service.ProjectService
}

// NewProjectHandler creates a new project handler.
func NewProjectHandler(projectService service.ProjectService) *ProjectHandler {
	return &ProjectHandler{projectService: projectService}
}

// ProjectRequest is the body of project create and update.
type ProjectRequest struct {
	Name        string  `json:"name" validate:"required,max=100"`
	Description *string `json:"description"`
}

// MemberRequest adds a user to a project.
type MemberRequest struct {
	UserID uint   `json:"user_id" validate:"required"`
	Role   string `json:"role" validate:"required,max=32"`
}

func (r ProjectRequest) input() service.ProjectInput {
	return service.ProjectInput{Name: r.Name, Description: r.Description}
}

// CreateProject godoc
// @Summary Create a project
// @Description Requires the admin or manager role. The caller becomes the owner.
// @Tags projects
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body ProjectRequest true "Project data"
// @Success 201 {object} model.Project
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /projects/ [post]
func (h *ProjectHandler) CreateProject(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}

	var req ProjectRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	project, err := h.projectService.Create(c.Request().Context(), user, req.input())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusCreated, project)
}

// ListProjects godoc
// @Summary List the caller's projects
// @Tags projects
// @Produce json
// @Security BearerAuth
// @Success 200 {array} model.Project
// @Failure 401 {object} errors.ErrorResponse
// @Router /projects/ [get]
func (h *ProjectHandler) ListProjects(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}

	projects, err := h.projectService.List(c.Request().Context(), user)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, projects)
}

// GetProject godoc
// @Summary Get a project
// @Tags projects
// @Produce json
// @Security BearerAuth
// @Param id path int true "Project ID"
// @Success 200 {object} model.Project
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /projects/{id} [get]
func (h *ProjectHandler) GetProject(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	project, err := h.projectService.Get(c.Request().Context(), user, id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, project)
}

// UpdateProject godoc
// @Summary Update a project
// @Tags projects
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Project ID"
// @Param request body ProjectRequest true "Project data"
// @Success 200 {object} model.Project
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /projects/{id} [put]
func (h *ProjectHandler) UpdateProject(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	var req ProjectRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	project, err := h.projectService.Update(c.Request().Context(), user, id, req.input())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, project)
}

// DeleteProject godoc
// @Summary Delete a project with its tasks, comments and memberships
// @Tags projects
// @Produce json
// @Security BearerAuth
// @Param id path int true "Project ID"
// @Success 200 {object} MessageResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /projects/{id} [delete]
func (h *ProjectHandler) DeleteProject(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	if err := h.projectService.Delete(c.Request().Context(), user, id); err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, MessageResponse{Detail: "Project deleted successfully"})
}

// AddMember godoc
// @Summary Add a member to a project
// @Tags projects
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Project ID"
// @Param request body MemberRequest true "Membership"
// @Success 201 {object} model.ProjectMember
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /projects/{id}/members [post]
func (h *ProjectHandler) AddMember(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	var req MemberRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	member, err := h.projectService.AddMember(c.Request().Context(), user, id, req.UserID, req.Role)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusCreated, member)
}

// ListMembers godoc
// @Summary List project members
// @Tags projects
// @Produce json
// @Security BearerAuth
// @Param id path int true "Project ID"
// @Success 200 {array} model.ProjectMember
// @Failure 401 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /projects/{id}/members [get]
func (h *ProjectHandler) ListMembers(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	members, err := h.projectService.ListMembers(c.Request().Context(), user, id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, members)
}

// RemoveMember godoc
// @Summary Remove a member from a project
// @Tags projects
// @Produce json
// @Security BearerAuth
// @Param id path int true "Project ID"
// @Param user_id path int true "User ID"
// @Success 200 {object} MessageResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /projects/{id}/members/{user_id} [delete]
func (h *ProjectHandler) RemoveMember(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	userID, err := pathID(c, "user_id")
	if err != nil {
		return err
	}

	if err := h.projectService.RemoveMember(c.Request().Context(), user, id, userID); err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, MessageResponse{Detail: "Member removed"})
}
