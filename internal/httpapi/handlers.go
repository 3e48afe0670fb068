package httpapi

import (
	"errors"
	"net/http"
	"time"

	"social-platform/internal/audit"
	"social-platform/internal/auth"
	"social-platform/internal/comments"
	"social-platform/internal/posts"
	"social-platform/internal/rbac"
	"social-platform/internal/users"
	"social-platform/pkg/logger"
	"social-platform/pkg/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// Handlers groups HTTP handlers for dependency injection.
// Keep these thin: parse/validate input, call internal services, return JSON.

type Handlers struct {
	Auth     *auth.Service
	Users    *users.Service
	Posts    *posts.Service
	Comments *comments.Service
	Audit    *audit.Service

	// Redis backs the login attempt limiter. Nil disables throttling (tests).
	Redis *redis.Client
}

const (
	loginAttemptLimit  = 10
	loginAttemptWindow = 15 * time.Minute
)

// --- Auth ---

type registerRequest struct {
	Email       string `json:"email"`
	DisplayName string `json:"display_name"`
	Password    string `json:"password"`
}

// Register provisions an account with the default role and logs it straight
// in, returning the same token pair shape as Login.
func (h Handlers) Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}

	u, err := h.Users.Register(c.Request.Context(), req.Email, req.DisplayName, req.Password)
	if err != nil {
		h.writeError(c, err)
		return
	}

	pair, err := h.Auth.IssuePair(c.Request.Context(), time.Now(), u.ID)
	if err != nil {
		h.writeError(c, err)
		return
	}

	if h.Audit != nil {
		_ = h.Audit.LogAuth(c.Request.Context(), audit.EventTypeLogin, u.ID)
	}
	setTokenHeaders(c, pair)
	c.JSON(http.StatusCreated, gin.H{
		"user":          u,
		"access_token":  pair.AccessToken,
		"refresh_token": pair.RefreshToken,
	})
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Login verifies credentials and issues a token pair. The access token goes
// out in the Authorization response header with a Bearer prefix, the refresh
// token in the Refresh-Token header; both also appear in the JSON body.
func (h Handlers) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}
	if req.Email == "" || req.Password == "" {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "email and password required"})
		return
	}

	attemptKey := "login_attempts:" + req.Email + ":" + c.ClientIP()
	if h.Redis != nil {
		ok, err := utils.AllowAttempt(c.Request.Context(), h.Redis, attemptKey, loginAttemptLimit, loginAttemptWindow)
		if err != nil {
			logger.FromGin(c).Warn("login limiter unavailable", "err", err)
		} else if !ok {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"error": "too many attempts"})
			return
		}
	}

	u, err := h.Users.Authenticate(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, users.ErrInvalidCredentials) {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid credentials"})
			return
		}
		h.writeError(c, err)
		return
	}

	pair, err := h.Auth.IssuePair(c.Request.Context(), time.Now(), u.ID)
	if err != nil {
		h.writeError(c, err)
		return
	}

	if h.Redis != nil {
		// A proven credential ends the attempt window early.
		_ = utils.ResetAttempts(c.Request.Context(), h.Redis, attemptKey)
	}
	if h.Audit != nil {
		_ = h.Audit.LogAuth(c.Request.Context(), audit.EventTypeLogin, u.ID)
	}
	setTokenHeaders(c, pair)
	c.JSON(http.StatusOK, gin.H{
		"access_token":  pair.AccessToken,
		"refresh_token": pair.RefreshToken,
	})
}

// Refresh exchanges the Refresh-Token request header for a new pair. The
// presented token is consumed; the rotated replacement comes back in the
// response headers and body.
func (h Handlers) Refresh(c *gin.Context) {
	presented := c.GetHeader(auth.RefreshTokenHeader)

	pair, userID, err := h.Auth.Refresh(c.Request.Context(), time.Now(), presented)
	if err != nil {
		h.writeError(c, err)
		return
	}

	if h.Audit != nil {
		_ = h.Audit.LogAuth(c.Request.Context(), audit.EventTypeTokenRefresh, userID)
	}
	setTokenHeaders(c, pair)
	c.JSON(http.StatusOK, gin.H{
		"access_token":  pair.AccessToken,
		"refresh_token": pair.RefreshToken,
	})
}

// Logout revokes the presented refresh token and clears the auth headers.
func (h Handlers) Logout(c *gin.Context) {
	presented := c.GetHeader(auth.RefreshTokenHeader)

	if err := h.Auth.Revoke(c.Request.Context(), presented); err != nil {
		h.writeError(c, err)
		return
	}

	if h.Audit != nil {
		if userID, err := auth.UserID(c.Request.Context()); err == nil {
			_ = h.Audit.LogAuth(c.Request.Context(), audit.EventTypeTokenRevoke, userID)
		}
	}
	c.Writer.Header().Set("Authorization", "")
	c.Writer.Header().Set(auth.RefreshTokenHeader, "")
	c.Status(http.StatusNoContent)
}

// Me returns the authenticated account.
func (h Handlers) Me(c *gin.Context) {
	userID, err := auth.UserID(c.Request.Context())
	if err != nil {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
		return
	}
	u, err := h.Users.Get(c.Request.Context(), userID)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, u)
}

// --- Posts ---

func (h Handlers) CreatePost(c *gin.Context) {
	userID, err := auth.UserID(c.Request.Context())
	if err != nil {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
		return
	}

	var req posts.CreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}

	p, err := h.Posts.Create(c.Request.Context(), userID, req)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, p)
}

func (h Handlers) GetPost(c *gin.Context) {
	postID, ok := paramUUID(c, "post_id")
	if !ok {
		return
	}
	p, err := h.Posts.Get(c.Request.Context(), postID)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

func (h Handlers) UpdatePost(c *gin.Context) {
	userID, postID, ok := identityAndParam(c, "post_id")
	if !ok {
		return
	}

	var req posts.UpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}

	p, err := h.Posts.Update(c.Request.Context(), userID, postID, req)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

type setHiddenRequest struct {
	Hidden bool `json:"hidden"`
}

func (h Handlers) SetPostHidden(c *gin.Context) {
	userID, postID, ok := identityAndParam(c, "post_id")
	if !ok {
		return
	}

	var req setHiddenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}

	p, err := h.Posts.SetHidden(c.Request.Context(), userID, postID, req.Hidden)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

func (h Handlers) DeletePost(c *gin.Context) {
	userID, postID, ok := identityAndParam(c, "post_id")
	if !ok {
		return
	}
	if err := h.Posts.Delete(c.Request.Context(), userID, postID); err != nil {
		h.writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// --- Comments ---

type createCommentRequest struct {
	Body string `json:"body"`
}

func (h Handlers) CreateComment(c *gin.Context) {
	userID, postID, ok := identityAndParam(c, "post_id")
	if !ok {
		return
	}

	var req createCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}

	cm, err := h.Comments.Create(c.Request.Context(), userID, postID, req.Body)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, cm)
}

type updateCommentRequest struct {
	Body string `json:"body"`
}

func (h Handlers) UpdateComment(c *gin.Context) {
	userID, commentID, ok := identityAndParam(c, "comment_id")
	if !ok {
		return
	}

	var req updateCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}

	cm, err := h.Comments.Update(c.Request.Context(), userID, commentID, req.Body)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, cm)
}

func (h Handlers) DeleteComment(c *gin.Context) {
	userID, commentID, ok := identityAndParam(c, "comment_id")
	if !ok {
		return
	}
	if err := h.Comments.Delete(c.Request.Context(), userID, commentID); err != nil {
		h.writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// --- shared ---

func setTokenHeaders(c *gin.Context, pair auth.TokenPair) {
	c.Writer.Header().Set("Authorization", "Bearer "+pair.AccessToken)
	c.Writer.Header().Set(auth.RefreshTokenHeader, pair.RefreshToken)
}

func paramUUID(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": name + " must be a uuid"})
		return uuid.Nil, false
	}
	return id, true
}

func identityAndParam(c *gin.Context, name string) (uuid.UUID, uuid.UUID, bool) {
	userID, err := auth.UserID(c.Request.Context())
	if err != nil {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
		return uuid.Nil, uuid.Nil, false
	}
	id, ok := paramUUID(c, name)
	if !ok {
		return uuid.Nil, uuid.Nil, false
	}
	return userID, id, true
}

// writeError maps the error taxonomy to uniform responses. Bodies never name
// owners or missing permissions; denial detail stays server-side.
func (h Handlers) writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, auth.ErrMalformedIdentity):
		logger.FromGin(c).Error("malformed identity", "err", err)
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
	case errors.Is(err, auth.ErrUnauthorized):
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
	case errors.Is(err, rbac.ErrDenied):
		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": err.Error()})
	case errors.Is(err, posts.ErrNotFound), errors.Is(err, comments.ErrNotFound), errors.Is(err, users.ErrNotFound):
		c.AbortWithStatusJSON(http.StatusNotFound, gin.H{"error": "not found"})
	case errors.Is(err, posts.ErrInvalidArgument), errors.Is(err, comments.ErrInvalidArgument):
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "invalid argument"})
	case errors.Is(err, users.ErrInvalidRegistration):
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, users.ErrEmailTaken):
		c.AbortWithStatusJSON(http.StatusConflict, gin.H{"error": "email already registered"})
	case errors.Is(err, auth.ErrStoreUnavailable):
		logger.FromGin(c).Warn("token store unavailable", "err", err)
		c.AbortWithStatusJSON(http.StatusServiceUnavailable, gin.H{"error": "temporarily unavailable"})
	default:
		logger.FromGin(c).Error("internal error", "err", err)
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}
