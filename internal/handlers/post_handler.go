package handlers

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/miniblog/backend/internal/metrics"
	"github.com/miniblog/backend/internal/models"
	"github.com/miniblog/backend/internal/repositories"
)

// PostHandler handles HTTP requests related to posts
type PostHandler struct {
	postRepository repositories.PostRepository
}

// NewPostHandler creates a new PostHandler
func NewPostHandler(postRepo repositories.PostRepository) *PostHandler {
	return &PostHandler{postRepository: postRepo}
}

// RegisterPostRoutes registers post-related routes
func (h *PostHandler) RegisterPostRoutes(g *echo.Group) {
	g.POST("/posts", h.CreatePost)
	g.GET("/posts/:id", h.GetPost)
	g.GET("/posts/:id/author", h.GetPostAuthor)
	g.DELETE("/posts/:id", h.DeletePost)
}

// CreatePost publishes a new post. CreatedAt is stamped by the model layer at
// insert time; the caller never supplies it. A dangling author_id is rejected
// by the store and answered with 422.
func (h *PostHandler) CreatePost(c echo.Context) error {
	var req models.CreatePostRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	post := &models.Post{
		Body:     req.Body,
		AuthorID: req.AuthorID,
	}
	if err := h.postRepository.CreatePost(post); err != nil {
		if errors.Is(err, models.ErrAuthorNotFound) {
			metrics.IntegrityRejectionsTotal.WithLabelValues("dangling_author").Inc()
		}
		return err
	}

	metrics.PostsCreatedTotal.Inc()
	return c.JSON(http.StatusCreated, post)
}

// GetPost retrieves a post by ID, author included
func (h *PostHandler) GetPost(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	post, err := h.postRepository.GetPostByID(id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, post)
}

// GetPostAuthor resolves the user who authored a post
func (h *PostHandler) GetPostAuthor(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	post, err := h.postRepository.GetPostByID(id)
	if err != nil {
		return err
	}
	author, err := h.postRepository.GetAuthor(post)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, author)
}

// DeletePost deletes a post by ID
func (h *PostHandler) DeletePost(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	if err := h.postRepository.DeletePost(id); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
