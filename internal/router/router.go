package router

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"

	"projecthub/internal/auth"
	"projecthub/internal/config"
	apperrors "projecthub/internal/errors"
	"projecthub/internal/handler"
)

// Handlers groups the HTTP handlers mounted by Register.
type Handlers struct {
	Auth    *handler.AuthHandler
	User    *handler.UserHandler
	Project *handler.ProjectHandler
	Task    *handler.TaskHandler
	Comment *handler.CommentHandler
	Stats   *handler.StatsHandler
}

// Register wires routes and middleware.
func Register(e *echo.Echo, cfg *config.Config, resolver *auth.Resolver, h Handlers) {
	e.Pre(middleware.RemoveTrailingSlash())
	e.Use(middleware.RequestID())
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins:     cfg.CORSAllowedOrigins,
		AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowHeaders:     []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization},
		AllowCredentials: true,
	}))

	e.Validator = &CustomValidator{validator: validator.New()}

	e.GET("/", func(c echo.Context) error {
		return c.JSON(http.StatusOK, echo.Map{"message": "Backend running, see /swagger/index.html for API"})
	})
	e.GET("/healthz", func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	requireAuth := Authenticate(resolver)

	// Public routes
	users := e.Group("/users")
	users.POST("", h.Auth.Register)
	users.POST("/login", h.Auth.Login)
	users.POST("/refresh", h.Auth.Refresh)

	users.POST("/logout", h.Auth.Logout, requireAuth)
	users.GET("", h.User.ListUsers, requireAuth)
	users.GET("/me", h.User.Me, requireAuth)

	projects := e.Group("/projects", requireAuth)
	projects.POST("", h.Project.CreateProject)
	projects.GET("", h.Project.ListProjects)
	projects.GET("/:id", h.Project.GetProject)
	projects.PUT("/:id", h.Project.UpdateProject)
	projects.DELETE("/:id", h.Project.DeleteProject)
	projects.POST("/:id/members", h.Project.AddMember)
	projects.GET("/:id/members", h.Project.ListMembers)
	projects.DELETE("/:id/members/:user_id", h.Project.RemoveMember)

	tasks := e.Group("/tasks", requireAuth)
	tasks.POST("", h.Task.CreateTask)
	tasks.GET("", h.Task.ListTasks)
	tasks.GET("/:id", h.Task.GetTask)
	tasks.PUT("/:id", h.Task.UpdateTask)
	tasks.DELETE("/:id", h.Task.DeleteTask)
	tasks.POST("/:id/assign", h.Task.AssignTask)

	comments := e.Group("/comments", requireAuth)
	comments.POST("", h.Comment.CreateComment)
	comments.GET("/task/:id", h.Comment.ListTaskComments)

	e.GET("/stats", h.Stats.GetStats, requireAuth)
}

// Authenticate extracts the bearer token and resolves it to an *auth.Principal
// stored under handler.PrincipalContextKey. Every failure is a generic 401.
func Authenticate(resolver *auth.Resolver) echo.MiddlewareFunc {
	return echojwt.WithConfig(echojwt.Config{
		ContextKey:  handler.PrincipalContextKey,
		TokenLookup: "header:" + echo.HeaderAuthorization + ":Bearer ",
		ParseTokenFunc: func(c echo.Context, token string) (interface{}, error) {
			return resolver.Resolve(c.Request().Context(), token)
		},
		ErrorHandler: func(c echo.Context, err error) error {
			c.Response().Header().Set(echo.HeaderWWWAuthenticate, "Bearer")
			httpErr := apperrors.MapErrorToHTTP(apperrors.ErrNotAuthenticated)
			return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
		},
	})
}

// CustomValidator wraps validator for Echo.
type CustomValidator struct {
	validator *validator.Validate
}

// Validate implements echo.Validator interface.
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}
