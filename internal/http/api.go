package http

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"blog-server/internal/auth"
	"blog-server/internal/domain"
	"blog-server/internal/service"
	"blog-server/internal/storage"
)

// Handler wires HTTP routes to domain services.
type Handler struct {
	users     service.UserService
	posts     service.PostService
	tokens    *auth.TokenService
	storage   storage.Service
	bucket    string
	keyPrefix string
	logger    *logrus.Logger
}

func NewHandler(users service.UserService, posts service.PostService, tokens *auth.TokenService, store storage.Service, bucket, keyPrefix string, logger *logrus.Logger) *Handler {
	if logger == nil {
		logger = logrus.New()
	}
	return &Handler{
		users:     users,
		posts:     posts,
		tokens:    tokens,
		storage:   store,
		bucket:    bucket,
		keyPrefix: keyPrefix,
		logger:    logger,
	}
}

func (h *Handler) RegisterRoutes(router *gin.Engine) {
	router.Use(cors.New(cors.Config{
		AllowAllOrigins: true,
		AllowMethods:    []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:    []string{"Origin", "Content-Type", "Accept", "Authorization"},
		MaxAge:          12 * time.Hour,
	}))

	api := router.Group("/api")
	{
		users := api.Group("/users")
		{
			users.GET("/", h.requireAuth(), h.listUsers)
			users.POST("/signup", h.signup)
			users.POST("/login", h.login)
			users.POST("/refresh-token", h.refreshToken)
			users.POST("/avatar", h.requireAuth(), h.uploadAvatar)
		}

		posts := api.Group("/posts")
		{
			posts.GET("/", h.listPosts)
			posts.GET("/:id", h.getPost)
			posts.POST("/", h.requireAuth(), h.createPost)
			posts.PATCH("/:id", h.requireAuth(), h.updatePost)
			posts.DELETE("/:id", h.requireAuth(), h.deletePost)
		}

		api.GET("/health", func(ctx *gin.Context) {
			ctx.JSON(http.StatusOK, gin.H{"ok": "ok"})
		})
	}

	router.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"message": "could not find this route"})
	})
}

// fail writes the sanitized error body shared by every failure path.
func fail(c *gin.Context, status int, message string) {
	c.JSON(status, gin.H{"message": message})
}

// serverError logs the full error server-side and sends a sanitized message.
func (h *Handler) serverError(c *gin.Context, message string, err error) {
	h.logger.WithError(err).WithFields(logrus.Fields{
		"method": c.Request.Method,
		"path":   c.Request.URL.Path,
	}).Error(message)
	fail(c, http.StatusInternalServerError, message)
}

type UserResponse struct {
	ID        string `json:"id"`
	Username  string `json:"username"`
	Email     string `json:"email"`
	GithubID  string `json:"github_id,omitempty"`
	Avatar    string `json:"avatar,omitempty"`
	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`
}

type PostResponse struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Tags        []string `json:"tags"`
	Date        string   `json:"date"`
	UpdatedDate string   `json:"updated_date"`
	Author      string   `json:"author"`
	Content     string   `json:"content"`
}

func userToResponse(user domain.User) UserResponse {
	return UserResponse{
		ID:        user.ID,
		Username:  user.Username,
		Email:     user.Email,
		GithubID:  user.GithubID,
		Avatar:    user.AvatarURL,
		CreatedAt: user.CreatedAt.Format(time.RFC3339),
		UpdatedAt: user.UpdatedAt.Format(time.RFC3339),
	}
}

func postToResponse(post domain.Post) PostResponse {
	tags := post.Tags
	if tags == nil {
		tags = []string{}
	}
	return PostResponse{
		ID:          post.ID,
		Title:       post.Title,
		Tags:        tags,
		Date:        post.CreatedAt.Format(time.RFC3339),
		UpdatedDate: post.UpdatedAt.Format(time.RFC3339),
		Author:      post.Author,
		Content:     post.Content,
	}
}
