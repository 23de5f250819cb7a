package auth

import (
	apperrors "projecthub/internal/errors"
	"projecthub/internal/model"
)

// ProjectCreatorRoles are the roles allowed to create projects.
var ProjectCreatorRoles = []model.Role{model.RoleAdmin, model.RoleManager}

// Authorize grants the operation when user's role is one of allowed.
func Authorize(user *model.User, allowed ...model.Role) error {
	if user == nil {
		return apperrors.ErrNotAuthenticated
	}
	for _, role := range allowed {
		if user.Role == role {
			return nil
		}
	}
	return apperrors.ErrRoleNotPermitted
}

// OwnsProject reports whether user owns project.
func OwnsProject(user *model.User, project *model.Project) bool {
	return user != nil && project != nil && project.OwnerID == user.ID
}

// RequireProjectOwner fails with NotFound when user does not own project, so
// non-owners cannot confirm the project exists.
func RequireProjectOwner(user *model.User, project *model.Project) error {
	if !OwnsProject(user, project) {
		return apperrors.ErrProjectNotFound
	}
	return nil
}
