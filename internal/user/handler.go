package user

import (
	"errors"
	"net/http"

	"github.com/dustin/movies-backend/internal/utils"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// Handler handles HTTP requests for user operations
type Handler struct {
	service Service
}

// NewHandler creates a new user handler
func NewHandler(service Service) *Handler {
	return &Handler{
		service: service,
	}
}

// SignUp handles user registration
func (h *Handler) SignUp(c *gin.Context) {
	var req CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Fail(c, http.StatusBadRequest, utils.CodeValidation, err.Error())
		return
	}

	user, err := h.service.SignUp(req.Name, req.Email, req.Password)
	if err != nil {
		if errors.Is(err, ErrExists) {
			utils.Fail(c, http.StatusConflict, utils.CodeConflict, "User already exists")
		} else {
			utils.Fail(c, http.StatusInternalServerError, utils.CodeInternal, "Internal server error")
		}
		return
	}

	utils.OK(c, http.StatusCreated, user.ToResponse())
}

// Login handles user authentication. The token is delivered both in the
// body and in an HTTP-only cookie - browser clients rely on the cookie,
// CLI clients on the body.
func (h *Handler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Fail(c, http.StatusBadRequest, utils.CodeValidation, err.Error())
		return
	}

	token, user, err := h.service.Login(req.Email, req.Password)
	if err != nil {
		if errors.Is(err, ErrInvalidCredentials) {
			utils.Fail(c, http.StatusUnauthorized, utils.CodeUnauthorized, "Invalid credentials")
		} else {
			utils.Fail(c, http.StatusInternalServerError, utils.CodeInternal, "Failed to log in")
		}
		return
	}

	maxAge := int(h.service.TokenTTL().Seconds())
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(h.service.CookieName(), token, maxAge, "/", "", false, true)

	utils.OK(c, http.StatusOK, gin.H{
		"token": token,
		"user":  user.ToResponse(),
	})
}

// Logout clears the auth cookie
func (h *Handler) Logout(c *gin.Context) {
	c.SetCookie(h.service.CookieName(), "", -1, "/", "", false, true)
	utils.OK(c, http.StatusOK, gin.H{"message": "Logged out"})
}

// GetMe returns current user information
func (h *Handler) GetMe(c *gin.Context) {
	userInterface, exists := c.Get("user")
	if !exists {
		utils.Fail(c, http.StatusUnauthorized, utils.CodeUnauthorized, "User not found in context")
		return
	}

	user, ok := userInterface.(*User)
	if !ok {
		utils.Fail(c, http.StatusInternalServerError, utils.CodeInternal, "Invalid user data")
		return
	}

	utils.OK(c, http.StatusOK, user.ToResponse())
}

// SetAvatar attaches an uploaded media blob as the caller's avatar
func (h *Handler) SetAvatar(c *gin.Context) {
	var req SetAvatarRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Fail(c, http.StatusBadRequest, utils.CodeValidation, err.Error())
		return
	}

	userID, err := utils.CurrentUserID(c)
	if err != nil {
		utils.Fail(c, http.StatusUnauthorized, utils.CodeUnauthorized, "Invalid token")
		return
	}

	mediaID, err := uuid.Parse(req.MediaID)
	if err != nil {
		utils.Fail(c, http.StatusBadRequest, utils.CodeValidation, "Invalid media ID")
		return
	}

	user, err := h.service.SetAvatar(userID, mediaID)
	if err != nil {
		if errors.Is(err, ErrInvalidAvatar) {
			utils.Fail(c, http.StatusBadRequest, utils.CodeValidation, "Invalid avatar media")
		} else {
			utils.Fail(c, http.StatusInternalServerError, utils.CodeInternal, "Failed to set avatar")
		}
		return
	}

	utils.OK(c, http.StatusOK, user.ToResponse())
}

// AuthMiddleware creates middleware for JWT authentication. The token is
// read from the auth cookie first, then from the Authorization header.
func (h *Handler) AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString, err := utils.ExtractToken(c, h.service.CookieName())
		if err != nil {
			utils.Fail(c, http.StatusUnauthorized, utils.CodeUnauthorized, err.Error())
			c.Abort()
			return
		}

		user, err := h.service.ValidateToken(tokenString)
		if err != nil {
			utils.Fail(c, http.StatusUnauthorized, utils.CodeUnauthorized, "Invalid token")
			c.Abort()
			return
		}

		// Store user in context for handlers
		c.Set("user", user)
		c.Set("user_id", user.ID)
		c.Set("role", user.Role)
		c.Next()
	}
}

// RegisterRoutes registers all user routes
func (h *Handler) RegisterRoutes(router *gin.RouterGroup, authMiddleware gin.HandlerFunc) {
	// Public routes
	router.POST("/signup", h.SignUp)
	router.POST("/login", h.Login)
	router.POST("/logout", h.Logout)

	// Protected routes
	protected := router.Group("/users")
	protected.Use(authMiddleware)
	{
		protected.GET("/me", h.GetMe)
		protected.PUT("/me/avatar", h.SetAvatar)
	}
}
