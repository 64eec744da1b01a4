package review

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/dustin/movies-backend/internal/utils"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// Handler handles HTTP requests for review operations
type Handler struct {
	service Service
}

// NewHandler creates a new review handler
func NewHandler(service Service) *Handler {
	return &Handler{
		service: service,
	}
}

// CreateReview handles review creation for a movie
func (h *Handler) CreateReview(c *gin.Context) {
	var req CreateReviewRequest
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

	review, err := h.service.CreateReview(userID, movieID, req.Content)
	if err != nil {
		switch {
		case errors.Is(err, ErrMovieNotFound):
			utils.Fail(c, http.StatusNotFound, utils.CodeNotFound, "Movie not found")
		case errors.Is(err, ErrEmptyContent):
			utils.Fail(c, http.StatusBadRequest, utils.CodeValidation, ErrEmptyContent.Error())
		default:
			utils.Fail(c, http.StatusInternalServerError, utils.CodeInternal, "Failed to create review")
		}
		return
	}

	utils.OK(c, http.StatusCreated, review.ToResponse())
}

// ListMovieReviews handles paginated review listing for a movie
func (h *Handler) ListMovieReviews(c *gin.Context) {
	movieID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.Fail(c, http.StatusBadRequest, utils.CodeValidation, "Invalid movie ID")
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))

	reviews, total, err := h.service.ListMovieReviews(movieID, page, limit)
	if err != nil {
		if errors.Is(err, ErrMovieNotFound) {
			utils.Fail(c, http.StatusNotFound, utils.CodeNotFound, "Movie not found")
		} else {
			utils.Fail(c, http.StatusInternalServerError, utils.CodeInternal, "Failed to list reviews")
		}
		return
	}

	responses := make([]*ReviewResponse, 0, len(reviews))
	for _, r := range reviews {
		responses = append(responses, r.ToResponse())
	}

	meta := utils.CalculatePagination(total, page, limit)

	utils.OK(c, http.StatusOK, gin.H{
		"reviews": responses,
		"total":   meta.Total,
		"page":    meta.Page,
		"limit":   meta.Limit,
		"pages":   meta.Pages,
	})
}

// UpdateReview handles review content updates
func (h *Handler) UpdateReview(c *gin.Context) {
	var req UpdateReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Fail(c, http.StatusBadRequest, utils.CodeValidation, err.Error())
		return
	}

	userID, err := utils.CurrentUserID(c)
	if err != nil {
		utils.Fail(c, http.StatusUnauthorized, utils.CodeUnauthorized, "Invalid token")
		return
	}

	reviewID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.Fail(c, http.StatusBadRequest, utils.CodeValidation, "Invalid review ID")
		return
	}

	review, err := h.service.UpdateReview(userID, reviewID, req.Content)
	if err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			utils.Fail(c, http.StatusNotFound, utils.CodeNotFound, "Review not found")
		case errors.Is(err, ErrEmptyContent):
			utils.Fail(c, http.StatusBadRequest, utils.CodeValidation, ErrEmptyContent.Error())
		default:
			utils.Fail(c, http.StatusInternalServerError, utils.CodeInternal, "Failed to update review")
		}
		return
	}

	utils.OK(c, http.StatusOK, review.ToResponse())
}

// DeleteReview handles review deletion
func (h *Handler) DeleteReview(c *gin.Context) {
	userID, err := utils.CurrentUserID(c)
	if err != nil {
		utils.Fail(c, http.StatusUnauthorized, utils.CodeUnauthorized, "Invalid token")
		return
	}

	reviewID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.Fail(c, http.StatusBadRequest, utils.CodeValidation, "Invalid review ID")
		return
	}

	if err := h.service.DeleteReview(userID, reviewID); err != nil {
		if errors.Is(err, ErrNotFound) {
			utils.Fail(c, http.StatusNotFound, utils.CodeNotFound, "Review not found")
		} else {
			utils.Fail(c, http.StatusInternalServerError, utils.CodeInternal, "Failed to delete review")
		}
		return
	}

	utils.OK(c, http.StatusOK, gin.H{"message": "Review deleted successfully"})
}

// RegisterRoutes registers all review routes
func (h *Handler) RegisterRoutes(router *gin.RouterGroup, authMiddleware gin.HandlerFunc) {
	movies := router.Group("/movies")
	movies.Use(authMiddleware)
	{
		movies.POST("/:id/reviews", h.CreateReview)
		movies.GET("/:id/reviews", h.ListMovieReviews)
	}

	reviews := router.Group("/reviews")
	reviews.Use(authMiddleware)
	{
		reviews.PUT("/:id", h.UpdateReview)
		reviews.DELETE("/:id", h.DeleteReview)
	}
}
