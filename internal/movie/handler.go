package movie

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/dustin/movies-backend/internal/utils"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// Handler handles HTTP requests for movie operations
type Handler struct {
	service Service
}

// NewHandler creates a new movie handler
func NewHandler(service Service) *Handler {
	return &Handler{
		service: service,
	}
}

// CreateMovie handles movie creation
func (h *Handler) CreateMovie(c *gin.Context) {
	var req CreateMovieRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Fail(c, http.StatusBadRequest, utils.CodeValidation, err.Error())
		return
	}

	userID, err := utils.CurrentUserID(c)
	if err != nil {
		utils.Fail(c, http.StatusUnauthorized, utils.CodeUnauthorized, "Invalid token")
		return
	}

	movie, err := h.service.CreateMovie(userID, &req)
	if err != nil {
		switch {
		case errors.Is(err, ErrTitleTaken):
			utils.Fail(c, http.StatusConflict, utils.CodeConflict, "Movie title already exists")
		case isValidationError(err):
			utils.Fail(c, http.StatusBadRequest, utils.CodeValidation, err.Error())
		default:
			utils.Fail(c, http.StatusInternalServerError, utils.CodeInternal, "Failed to create movie")
		}
		return
	}

	utils.OK(c, http.StatusCreated, movie.ToResponse())
}

// GetMovie handles fetching a single movie
func (h *Handler) GetMovie(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.Fail(c, http.StatusBadRequest, utils.CodeValidation, "Invalid movie ID")
		return
	}

	movie, err := h.service.GetMovie(id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			utils.Fail(c, http.StatusNotFound, utils.CodeNotFound, "Movie not found")
		} else {
			utils.Fail(c, http.StatusInternalServerError, utils.CodeInternal, "Failed to load movie")
		}
		return
	}

	utils.OK(c, http.StatusOK, movie.ToResponse())
}

// ListMovies handles the filtered/sorted/paginated movie listing
func (h *Handler) ListMovies(c *gin.Context) {
	filter, ok := h.parseListFilter(c)
	if !ok {
		return
	}

	result, err := h.service.ListMovies(filter)
	if err != nil {
		utils.Fail(c, http.StatusInternalServerError, utils.CodeInternal, "Failed to list movies")
		return
	}

	utils.OK(c, http.StatusOK, result)
}

// SuggestTitles handles title autocomplete
func (h *Handler) SuggestTitles(c *gin.Context) {
	suggestions, err := h.service.SuggestTitles(c.Query("q"))
	if err != nil {
		utils.Fail(c, http.StatusInternalServerError, utils.CodeInternal, "Failed to suggest titles")
		return
	}

	utils.OK(c, http.StatusOK, suggestions)
}

// UpdateMovie handles owner-only movie updates
func (h *Handler) UpdateMovie(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.Fail(c, http.StatusBadRequest, utils.CodeValidation, "Invalid movie ID")
		return
	}

	var req UpdateMovieRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Fail(c, http.StatusBadRequest, utils.CodeValidation, err.Error())
		return
	}

	userID, err := utils.CurrentUserID(c)
	if err != nil {
		utils.Fail(c, http.StatusUnauthorized, utils.CodeUnauthorized, "Invalid token")
		return
	}

	movie, err := h.service.UpdateMovie(id, userID, &req)
	if err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			utils.Fail(c, http.StatusNotFound, utils.CodeNotFound, "Movie not found")
		case errors.Is(err, ErrForbidden):
			utils.Fail(c, http.StatusForbidden, utils.CodeForbidden, "Only the movie owner can update it")
		case errors.Is(err, ErrTitleTaken):
			utils.Fail(c, http.StatusConflict, utils.CodeConflict, "Movie title already exists")
		case errors.Is(err, ErrInvalidPoster):
			utils.Fail(c, http.StatusBadRequest, utils.CodeValidation, "Invalid poster media")
		case isValidationError(err):
			utils.Fail(c, http.StatusBadRequest, utils.CodeValidation, err.Error())
		default:
			utils.Fail(c, http.StatusInternalServerError, utils.CodeInternal, "Failed to update movie")
		}
		return
	}

	utils.OK(c, http.StatusOK, movie.ToResponse())
}

// DeleteMovie handles owner-only movie deletion
func (h *Handler) DeleteMovie(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.Fail(c, http.StatusBadRequest, utils.CodeValidation, "Invalid movie ID")
		return
	}

	userID, err := utils.CurrentUserID(c)
	if err != nil {
		utils.Fail(c, http.StatusUnauthorized, utils.CodeUnauthorized, "Invalid token")
		return
	}

	if err := h.service.DeleteMovie(id, userID); err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			utils.Fail(c, http.StatusNotFound, utils.CodeNotFound, "Movie not found")
		case errors.Is(err, ErrForbidden):
			utils.Fail(c, http.StatusForbidden, utils.CodeForbidden, "Only the movie owner can delete it")
		default:
			utils.Fail(c, http.StatusInternalServerError, utils.CodeInternal, "Failed to delete movie")
		}
		return
	}

	utils.OK(c, http.StatusOK, gin.H{"message": "Movie deleted successfully"})
}

// parseListFilter converts loose query params into the closed ListFilter.
// Writes the error response itself when a parameter is malformed.
func (h *Handler) parseListFilter(c *gin.Context) (*ListFilter, bool) {
	filter := &ListFilter{
		Query:    c.Query("q"),
		Page:     1,
		PageSize: 20,
	}

	if raw := c.Query("min_stars"); raw != "" {
		minStars, err := strconv.Atoi(raw)
		if err != nil || minStars < 0 || minStars > 5 {
			utils.Fail(c, http.StatusBadRequest, utils.CodeValidation, "min_stars must be an integer between 0 and 5")
			return nil, false
		}
		filter.MinStars = minStars
	}

	scope, ok := ParseReviewScope(c.Query("scope"))
	if !ok {
		utils.Fail(c, http.StatusBadRequest, utils.CodeValidation, "scope must be one of all, mine, not_mine")
		return nil, false
	}
	filter.Scope = scope

	sort, ok := ParseSortKey(c.Query("sort"))
	if !ok {
		utils.Fail(c, http.StatusBadRequest, utils.CodeValidation, "unknown sort key")
		return nil, false
	}
	filter.Sort = sort

	if raw := c.Query("page"); raw != "" {
		page, err := strconv.Atoi(raw)
		if err != nil || page < 1 {
			utils.Fail(c, http.StatusBadRequest, utils.CodeValidation, "page must be a positive integer")
			return nil, false
		}
		filter.Page = page
	}

	if raw := c.Query("page_size"); raw != "" {
		pageSize, err := strconv.Atoi(raw)
		if err != nil || pageSize < 1 || pageSize > 100 {
			utils.Fail(c, http.StatusBadRequest, utils.CodeValidation, "page_size must be between 1 and 100")
			return nil, false
		}
		filter.PageSize = pageSize
	}

	// Review scope only takes effect for an authenticated caller
	if userID, err := utils.CurrentUserID(c); err == nil {
		filter.RequestingUserID = userID
	}

	return filter, true
}

// isValidationError reports whether err came from request field validation
func isValidationError(err error) bool {
	return errors.Is(err, ErrEmptyTitle) || errors.Is(err, ErrBadReleaseDate)
}

// RegisterRoutes registers all movie routes
func (h *Handler) RegisterRoutes(router *gin.RouterGroup, authMiddleware gin.HandlerFunc) {
	movies := router.Group("/movies")
	movies.Use(authMiddleware)
	{
		movies.POST("", h.CreateMovie)
		movies.GET("", h.ListMovies)
		movies.GET("/suggest", h.SuggestTitles)
		movies.GET("/:id", h.GetMovie)
		movies.PUT("/:id", h.UpdateMovie)
		movies.DELETE("/:id", h.DeleteMovie)
	}
}
