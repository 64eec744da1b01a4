package media

import (
	"errors"
	"io"
	"net/http"

	"github.com/dustin/movies-backend/internal/utils"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// Handler handles HTTP requests for media operations
type Handler struct {
	service Service
}

// NewHandler creates a new media handler
func NewHandler(service Service) *Handler {
	return &Handler{
		service: service,
	}
}

// Upload handles multipart media upload
func (h *Handler) Upload(c *gin.Context) {
	userID, err := utils.CurrentUserID(c)
	if err != nil {
		utils.Fail(c, http.StatusUnauthorized, utils.CodeUnauthorized, "Invalid token")
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		utils.Fail(c, http.StatusBadRequest, utils.CodeValidation, "file field is required")
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		utils.Fail(c, http.StatusBadRequest, utils.CodeValidation, "failed to read uploaded file")
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		utils.Fail(c, http.StatusInternalServerError, utils.CodeInternal, "failed to read uploaded file")
		return
	}

	contentType := fileHeader.Header.Get("Content-Type")

	media, err := h.service.Upload(userID, contentType, data)
	if err != nil {
		switch {
		case errors.Is(err, ErrTooLarge):
			utils.Fail(c, http.StatusBadRequest, utils.CodeValidation, ErrTooLarge.Error())
		case errors.Is(err, ErrUnsupportedType):
			utils.Fail(c, http.StatusBadRequest, utils.CodeValidation, ErrUnsupportedType.Error())
		default:
			utils.Fail(c, http.StatusInternalServerError, utils.CodeInternal, "Failed to store media")
		}
		return
	}

	utils.OK(c, http.StatusCreated, media.ToResponse())
}

// Serve streams a stored media blob. The payload is returned raw, not
// enveloped - callers embed the URL directly in img tags.
func (h *Handler) Serve(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.Fail(c, http.StatusBadRequest, utils.CodeValidation, "Invalid media ID")
		return
	}

	media, err := h.service.Get(id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			utils.Fail(c, http.StatusNotFound, utils.CodeNotFound, "Media not found")
		} else {
			utils.Fail(c, http.StatusInternalServerError, utils.CodeInternal, "Failed to load media")
		}
		return
	}

	c.Data(http.StatusOK, media.ContentType, media.Data)
}

// RegisterRoutes registers all media routes
func (h *Handler) RegisterRoutes(router *gin.RouterGroup, authMiddleware gin.HandlerFunc) {
	mediaGroup := router.Group("/media")
	{
		// Serving is public so posters and avatars render without auth
		mediaGroup.GET("/:id", h.Serve)

		protected := mediaGroup.Group("")
		protected.Use(authMiddleware)
		{
			protected.POST("", h.Upload)
		}
	}
}
