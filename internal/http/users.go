package http

import (
	"errors"
	"fmt"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"

	"blog-server/internal/auth"
	"blog-server/internal/service"
	"blog-server/internal/storage"
)

type signupRequest struct {
	Username string `json:"username" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
	GithubID string `json:"github_id"`
	Avatar   string `json:"avatar"`
}

type loginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type refreshRequest struct {
	RefreshToken string `json:"refreshToken"`
}

func (h *Handler) signup(c *gin.Context) {
	var req signupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusUnprocessableEntity, "invalid input")
		return
	}

	pair, err := h.users.Signup(c.Request.Context(), service.SignupInput{
		Username:  req.Username,
		Email:     req.Email,
		Password:  req.Password,
		GithubID:  req.GithubID,
		AvatarURL: req.Avatar,
	})
	if err != nil {
		if errors.Is(err, service.ErrEmailTaken) {
			fail(c, http.StatusUnprocessableEntity, "email already taken")
			return
		}
		h.serverError(c, "signup failed", err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"accessToken":  pair.AccessToken,
		"refreshToken": pair.RefreshToken,
	})
}

func (h *Handler) login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusUnprocessableEntity, "invalid input")
		return
	}

	pair, err := h.users.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrEmailNotFound):
			fail(c, http.StatusUnauthorized, "email not found")
		case errors.Is(err, service.ErrPasswordMismatch):
			fail(c, http.StatusUnauthorized, "password mismatch")
		default:
			h.serverError(c, "login failed", err)
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"accessToken":  pair.AccessToken,
		"refreshToken": pair.RefreshToken,
	})
}

func (h *Handler) refreshToken(c *gin.Context) {
	var req refreshRequest
	if err := c.ShouldBindJSON(&req); err != nil || strings.TrimSpace(req.RefreshToken) == "" {
		fail(c, http.StatusForbidden, "refresh token required")
		return
	}

	access, err := h.users.Refresh(c.Request.Context(), req.RefreshToken)
	if err != nil {
		switch {
		case errors.Is(err, auth.ErrTokenExpired), errors.Is(err, auth.ErrTokenInvalid), errors.Is(err, auth.ErrTokenMissing):
			fail(c, http.StatusForbidden, "invalid refresh token")
		case errors.Is(err, service.ErrUserNotFound):
			fail(c, http.StatusNotFound, "user not found")
		default:
			h.serverError(c, "refresh failed", err)
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"accessToken": access})
}

func (h *Handler) listUsers(c *gin.Context) {
	users, err := h.users.List(c.Request.Context())
	if err != nil {
		h.serverError(c, "failed to load users", err)
		return
	}

	resp := make([]UserResponse, len(users))
	for i := range users {
		resp[i] = userToResponse(users[i])
	}
	c.JSON(http.StatusOK, gin.H{"users": resp})
}

func (h *Handler) uploadAvatar(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		fail(c, http.StatusNotFound, "no user data")
		return
	}

	if h.storage == nil || h.bucket == "" {
		fail(c, http.StatusInternalServerError, "storage not configured")
		return
	}

	file, err := c.FormFile("avatar")
	if err != nil {
		fail(c, http.StatusUnprocessableEntity, "avatar file required")
		return
	}

	src, err := file.Open()
	if err != nil {
		h.serverError(c, "failed to read avatar", err)
		return
	}
	defer src.Close()

	key := fmt.Sprintf("%s/%s%s", strings.Trim(h.keyPrefix, "/"), userID, filepath.Ext(file.Filename))
	url, err := h.storage.UploadObject(c.Request.Context(), src, storage.UploadOptions{
		Bucket:      h.bucket,
		Key:         key,
		ContentType: file.Header.Get("Content-Type"),
	})
	if err != nil {
		h.serverError(c, "failed to store avatar", err)
		return
	}

	user, err := h.users.SetAvatar(c.Request.Context(), userID, url)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			fail(c, http.StatusNotFound, "user not found")
			return
		}
		h.serverError(c, "failed to update avatar", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"user": userToResponse(*user)})
}
