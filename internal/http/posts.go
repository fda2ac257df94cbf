package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"blog-server/internal/repository"
)

type createPostRequest struct {
	Title   string   `json:"title" binding:"required"`
	Content string   `json:"content" binding:"required"`
	Tags    []string `json:"tags"`
	Author  string   `json:"author"`
}

type updatePostRequest struct {
	Title   string   `json:"title" binding:"required"`
	Content string   `json:"content" binding:"required"`
	Tags    []string `json:"tags"`
}

func (h *Handler) listPosts(c *gin.Context) {
	posts, err := h.posts.ListPosts(c.Request.Context())
	if err != nil {
		h.serverError(c, "failed to load posts", err)
		return
	}

	resp := make([]PostResponse, len(posts))
	for i := range posts {
		resp[i] = postToResponse(posts[i])
	}
	c.JSON(http.StatusOK, gin.H{"posts": resp})
}

func (h *Handler) getPost(c *gin.Context) {
	post, err := h.posts.GetPost(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, repository.ErrPostNotFound) {
			fail(c, http.StatusNotFound, "post not found")
			return
		}
		h.serverError(c, "failed to load post", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"post": postToResponse(*post)})
}

func (h *Handler) createPost(c *gin.Context) {
	var req createPostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusUnprocessableEntity, "invalid input")
		return
	}

	author := req.Author
	if author == "" {
		// fall back to the authenticated identity
		author = c.GetString(ctxUserEmail)
	}

	post, err := h.posts.CreatePost(c.Request.Context(), req.Title, req.Content, author, req.Tags)
	if err != nil {
		h.serverError(c, "failed to create post", err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"post": postToResponse(*post)})
}

func (h *Handler) updatePost(c *gin.Context) {
	var req updatePostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusUnprocessableEntity, "invalid input")
		return
	}

	post, err := h.posts.UpdatePost(c.Request.Context(), c.Param("id"), req.Title, req.Content, req.Tags)
	if err != nil {
		if errors.Is(err, repository.ErrPostNotFound) {
			fail(c, http.StatusNotFound, "post not found")
			return
		}
		h.serverError(c, "failed to update post", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"post": postToResponse(*post)})
}

func (h *Handler) deletePost(c *gin.Context) {
	if err := h.posts.DeletePost(c.Request.Context(), c.Param("id")); err != nil {
		h.serverError(c, "failed to delete post", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "post deleted"})
}
