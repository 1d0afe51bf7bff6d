package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/miniblog/backend/internal/metrics"
	"github.com/miniblog/backend/internal/models"
	"github.com/miniblog/backend/internal/repositories"
)

// UserHandler handles HTTP requests related to users
type UserHandler struct {
	userRepository repositories.UserRepository
	postRepository repositories.PostRepository
}

// NewUserHandler creates a new UserHandler
func NewUserHandler(userRepo repositories.UserRepository, postRepo repositories.PostRepository) *UserHandler {
	return &UserHandler{
		userRepository: userRepo,
		postRepository: postRepo,
	}
}

// RegisterUserRoutes registers user-related routes
func (h *UserHandler) RegisterUserRoutes(g *echo.Group) {
	g.POST("/users", h.CreateUser)
	g.GET("/users", h.ListUsers)
	g.GET("/users/:id", h.GetUser)
	g.DELETE("/users/:id", h.DeleteUser)
	g.GET("/users/:id/posts", h.ListUserPosts)
}

// CreateUser registers a new user
func (h *UserHandler) CreateUser(c echo.Context) error {
	var req models.CreateUserRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	user := &models.User{Username: req.Username}
	if err := h.userRepository.CreateUser(user); err != nil {
		if errors.Is(err, models.ErrUsernameTaken) {
			metrics.IntegrityRejectionsTotal.WithLabelValues("duplicate_username").Inc()
		}
		return err
	}

	metrics.UsersCreatedTotal.Inc()
	return c.JSON(http.StatusCreated, user)
}

// ListUsers retrieves all users
func (h *UserHandler) ListUsers(c echo.Context) error {
	users, err := h.userRepository.GetUsers()
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, users)
}

// GetUser retrieves a user by ID
func (h *UserHandler) GetUser(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	user, err := h.userRepository.GetUserByID(id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, user)
}

// DeleteUser deletes a user by ID. Users that still own posts are not
// deletable (RESTRICT) and the attempt is answered with 409.
func (h *UserHandler) DeleteUser(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	if err := h.userRepository.DeleteUser(id); err != nil {
		if errors.Is(err, models.ErrUserHasPosts) {
			metrics.IntegrityRejectionsTotal.WithLabelValues("user_has_posts").Inc()
		}
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// ListUserPosts exposes the lazy posts view of a user. Supported query
// params: contains (body substring), since (RFC 3339), limit, and count_only.
// With count_only=true only the matching row count is computed; no posts are
// loaded.
func (h *UserHandler) ListUserPosts(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	// Distinguish "user without posts" from "no such user".
	if _, err := h.userRepository.GetUserByID(id); err != nil {
		return err
	}

	view := h.postRepository.PostsByAuthor(id)

	if contains := c.QueryParam("contains"); contains != "" {
		view = view.BodyContains(contains)
	}
	if since := c.QueryParam("since"); since != "" {
		t, err := time.Parse(time.RFC3339, since)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "Invalid 'since' timestamp, expected RFC 3339")
		}
		view = view.CreatedAfter(t)
	}

	if c.QueryParam("count_only") == "true" {
		count, err := view.Count()
		if err != nil {
			return err
		}
		return c.JSON(http.StatusOK, map[string]int64{"count": count})
	}

	if limitParam := c.QueryParam("limit"); limitParam != "" {
		limit, err := strconv.Atoi(limitParam)
		if err != nil || limit < 0 {
			return echo.NewHTTPError(http.StatusBadRequest, "Invalid 'limit'")
		}
		view = view.Limit(limit)
	}

	posts, err := view.All()
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, posts)
}

func parseID(c echo.Context) (uint, error) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "Invalid ID")
	}
	return uint(id), nil
}
