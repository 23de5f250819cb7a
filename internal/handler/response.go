package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"projecthub/internal/auth"
	apperrors "projecthub/internal/errors"
	"projecthub/internal/model"
)

// PrincipalContextKey is where the authentication middleware stores the *auth.Principal.
const PrincipalContextKey = "user"

// MessageResponse is returned by operations that have no entity to return.
type MessageResponse struct {
	Detail string `json:"detail"`
}

// respondError maps err to its HTTP status and client-safe body. Unmapped
// errors are logged with the request id and answered with a generic 500.
func respondError(c echo.Context, err error) error {
	httpErr := apperrors.MapErrorToHTTP(err)
	if httpErr.StatusCode == http.StatusInternalServerError {
		c.Logger().Errorf("request %s %s failed (id=%s): %v",
			c.Request().Method, c.Path(), c.Response().Header().Get(echo.HeaderXRequestID), err)
	}
	return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
}

func badRequest(message, code string) *echo.HTTPError {
	return echo.NewHTTPError(http.StatusBadRequest, apperrors.ErrorResponse{
		Error: message,
		Code:  code,
	})
}

// bindAndValidate decodes the request into req and runs struct validation.
func bindAndValidate(c echo.Context, req interface{}) error {
	if err := c.Bind(req); err != nil {
		return badRequest("invalid request body", "INVALID_REQUEST")
	}
	if err := c.Validate(req); err != nil {
		return badRequest(err.Error(), "VALIDATION_ERROR")
	}
	return nil
}

func pathID(c echo.Context, name string) (uint, error) {
	var id uint
	if err := echo.PathParamsBinder(c).MustUint(name, &id).BindError(); err != nil || id == 0 {
		return 0, badRequest("invalid "+name, "INVALID_ID")
	}
	return id, nil
}

func principal(c echo.Context) (*auth.Principal, error) {
	p, ok := c.Get(PrincipalContextKey).(*auth.Principal)
	if !ok || p == nil || p.User == nil {
		return nil, respondError(c, apperrors.ErrNotAuthenticated)
	}
	return p, nil
}

func currentUser(c echo.Context) (*model.User, error) {
	p, err := principal(c)
	if err != nil {
		return nil, err
	}
	return p.User, nil
}
