package rating

import (
	"errors"
	"net/http"

	"github.com/dustin/movies-backend/internal/utils"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// Handler handles HTTP requests for rating operations
type Handler struct {
	service Service
}

// NewHandler creates a new rating handler
func NewHandler(service Service) *Handler {
	return &Handler{
		service: service,
	}
}

// RateMovie handles rating creation/update
func (h *Handler) RateMovie(c *gin.Context) {
	var req RateMovieRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Fail(c, http.StatusBadRequest, utils.CodeValidation, err.Error())
		return
	}

	userID, err := utils.CurrentUserID(c)
	if err != nil {
		utils.Fail(c, http.StatusUnauthorized, utils.CodeUnauthorized, "Invalid token")
		return
	}

	movieID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.Fail(c, http.StatusBadRequest, utils.CodeValidation, "Invalid movie ID")
		return
	}

	average, err := h.service.UpsertRating(userID, movieID, req.Value)
	if err != nil {
		switch {
		case errors.Is(err, ErrMovieNotFound):
			utils.Fail(c, http.StatusNotFound, utils.CodeNotFound, "Movie not found")
		case errors.Is(err, ErrInvalidValue):
			utils.Fail(c, http.StatusBadRequest, utils.CodeValidation, err.Error())
		default:
			utils.Fail(c, http.StatusInternalServerError, utils.CodeInternal, "Failed to rate movie")
		}
		return
	}

	utils.OK(c, http.StatusOK, gin.H{
		"movie_id":       movieID,
		"value":          req.Value,
		"average_rating": average,
	})
}

// GetRating handles fetching the caller's rating for a movie
func (h *Handler) GetRating(c *gin.Context) {
	userID, err := utils.CurrentUserID(c)
	if err != nil {
		utils.Fail(c, http.StatusUnauthorized, utils.CodeUnauthorized, "Invalid token")
		return
	}

	movieID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.Fail(c, http.StatusBadRequest, utils.CodeValidation, "Invalid movie ID")
		return
	}

	rating, err := h.service.GetUserRating(userID, movieID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			utils.Fail(c, http.StatusNotFound, utils.CodeNotFound, "Rating not found")
		} else {
			utils.Fail(c, http.StatusInternalServerError, utils.CodeInternal, "Failed to load rating")
		}
		return
	}

	utils.OK(c, http.StatusOK, gin.H{
		"movie_id":   rating.MovieID,
		"value":      rating.Value,
		"created_at": rating.CreatedAt,
		"updated_at": rating.UpdatedAt,
	})
}

// DeleteRating handles rating removal
func (h *Handler) DeleteRating(c *gin.Context) {
	userID, err := utils.CurrentUserID(c)
	if err != nil {
		utils.Fail(c, http.StatusUnauthorized, utils.CodeUnauthorized, "Invalid token")
		return
	}

	movieID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.Fail(c, http.StatusBadRequest, utils.CodeValidation, "Invalid movie ID")
		return
	}

	average, err := h.service.DeleteRating(userID, movieID)
	if err != nil {
		switch {
		case errors.Is(err, ErrMovieNotFound):
			utils.Fail(c, http.StatusNotFound, utils.CodeNotFound, "Movie not found")
		case errors.Is(err, ErrNotFound):
			utils.Fail(c, http.StatusNotFound, utils.CodeNotFound, "Rating not found")
		default:
			utils.Fail(c, http.StatusInternalServerError, utils.CodeInternal, "Failed to delete rating")
		}
		return
	}

	utils.OK(c, http.StatusOK, gin.H{
		"message":        "Rating deleted successfully",
		"average_rating": average,
	})
}

// RegisterRoutes registers all rating routes
func (h *Handler) RegisterRoutes(router *gin.RouterGroup, authMiddleware gin.HandlerFunc) {
	movies := router.Group("/movies")
	movies.Use(authMiddleware)
	{
		movies.PUT("/:id/rating", h.RateMovie)
		movies.GET("/:id/rating", h.GetRating)
		movies.DELETE("/:id/rating", h.DeleteRating)
	}
}
