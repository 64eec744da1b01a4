package movie

import (
	"time"

	"github.com/google/uuid"
)

// Movie represents a movie with denormalized aggregate fields.
// AverageRating, ReviewCount and Rank are derived values and are only
// mutated through the transactional repository operations - never directly.
type Movie struct {
	ID            uuid.UUID  `json:"id" gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Title         string     `json:"title" gorm:"uniqueIndex;not null;size:500"`
	ReleaseDate   time.Time  `json:"release_date" gorm:"type:date;not null"`
	Synopsis      string     `json:"synopsis" gorm:"type:text"`
	TrailerURL    string     `json:"trailer_url" gorm:"size:2048"`
	PosterMediaID *uuid.UUID `json:"poster_media_id,omitempty" gorm:"type:uuid"`
	CreatedBy     uuid.UUID  `json:"created_by" gorm:"type:uuid;not null;index:idx_movie_creator"`
	AverageRating float64    `json:"average_rating" gorm:"default:0;index"`
	ReviewCount   int        `json:"review_count" gorm:"default:0;index"`
	Rank          int        `json:"rank" gorm:"default:0"`
	CreatedAt     time.Time  `json:"created_at" gorm:"autoCreateTime;index"`
	UpdatedAt     time.Time  `json:"updated_at" gorm:"autoUpdateTime"`

	// Associations - loaded explicitly when needed
	Creator *User    `json:"creator,omitempty" gorm:"foreignKey:CreatedBy;constraint:OnDelete:CASCADE"`
	Reviews []Review `json:"reviews,omitempty" gorm:"foreignKey:MovieID;constraint:OnDelete:CASCADE"`
	Ratings []Rating `json:"ratings,omitempty" gorm:"foreignKey:MovieID;constraint:OnDelete:CASCADE"`
}

// User represents user for foreign key relationship (forward declaration)
type User struct {
	ID   uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name string
}

// Review represents review for foreign key relationship (forward declaration)
type Review struct {
	ID      uuid.UUID `gorm:"type:uuid;primaryKey"`
	MovieID uuid.UUID `gorm:"type:uuid;not null;index"`
	UserID  uuid.UUID `gorm:"type:uuid;not null"`
}

// Rating represents rating for foreign key relationship (forward declaration)
type Rating struct {
	MovieID uuid.UUID `gorm:"type:uuid;primaryKey"`
	UserID  uuid.UUID `gorm:"type:uuid;primaryKey"`
	Value   int
}

// SortKey is the closed set of listing sort orders. Free-form sort strings
// from the query layer are converted exactly once at the HTTP boundary.
type SortKey string

const (
	SortReviewsDesc  SortKey = "reviews_desc"
	SortRatingDesc   SortKey = "rating_desc"
	SortReleaseDesc  SortKey = "release_desc"
	SortReleaseAsc   SortKey = "release_asc"
	SortUploadedDesc SortKey = "uploaded_desc"
)

// ParseSortKey validates a raw sort parameter. Empty input falls back to
// the default uploaded_desc ordering.
func ParseSortKey(raw string) (SortKey, bool) {
	switch SortKey(raw) {
	case SortReviewsDesc, SortRatingDesc, SortReleaseDesc, SortReleaseAsc, SortUploadedDesc:
		return SortKey(raw), true
	case "":
		return SortUploadedDesc, true
	}
	return "", false
}

// ReviewScope selects movies based on whether the requesting user has
// authored a review for them.
type ReviewScope string

const (
	ScopeAll     ReviewScope = "all"
	ScopeMine    ReviewScope = "mine"
	ScopeNotMine ReviewScope = "not_mine"
)

// ParseReviewScope validates a raw review scope parameter.
func ParseReviewScope(raw string) (ReviewScope, bool) {
	switch ReviewScope(raw) {
	case ScopeAll, ScopeMine, ScopeNotMine:
		return ReviewScope(raw), true
	case "":
		return ScopeAll, true
	}
	return "", false
}

// ListFilter describes one movie-listing request. RequestingUserID is
// uuid.Nil when the caller is not scoping by own reviews.
type ListFilter struct {
	Query            string
	MinStars         int
	Scope            ReviewScope
	Sort             SortKey
	Page             int
	PageSize         int
	RequestingUserID uuid.UUID
}

// SuggestLimit caps title suggestion results
const SuggestLimit = 5

// Repository defines the interface for movie data access
type Repository interface {
	Create(movie *Movie) error
	FindByID(id uuid.UUID) (*Movie, error)
	FindByTitle(title string) (*Movie, error)
	List(filter *ListFilter) ([]*Movie, int64, error)
	SuggestByTitle(q string, limit int) ([]*Movie, error)
	Update(movie *Movie) error
	Delete(id uuid.UUID) error
}

// Service defines the interface for movie business logic
type Service interface {
	CreateMovie(userID uuid.UUID, req *CreateMovieRequest) (*Movie, error)
	GetMovie(id uuid.UUID) (*Movie, error)
	ListMovies(filter *ListFilter) (*MovieListResponse, error)
	SuggestTitles(q string) ([]*MovieSuggestion, error)
	UpdateMovie(id, userID uuid.UUID, req *UpdateMovieRequest) (*Movie, error)
	DeleteMovie(id, userID uuid.UUID) error
}

// MediaService interface for poster validation
type MediaService interface {
	GetMedia(id uuid.UUID) (*Media, error)
}

// Media represents media for poster attachment (forward declaration)
type Media struct {
	ID          uuid.UUID
	ContentType string
	OwnerUserID *uuid.UUID
}

// CreateMovieRequest represents movie creation request
type CreateMovieRequest struct {
	Title       string `json:"title" binding:"required,min=1,max=500"`
	ReleaseDate string `json:"release_date" binding:"required"`
	Synopsis    string `json:"synopsis"`
	TrailerURL  string `json:"trailer_url" binding:"omitempty,url"`
}

// UpdateMovieRequest represents movie update request; nil fields are untouched
type UpdateMovieRequest struct {
	Title         *string `json:"title" binding:"omitempty,min=1,max=500"`
	ReleaseDate   *string `json:"release_date"`
	Synopsis      *string `json:"synopsis"`
	TrailerURL    *string `json:"trailer_url" binding:"omitempty,url"`
	PosterMediaID *string `json:"poster_media_id"`
}

// MovieResponse represents movie in API responses
type MovieResponse struct {
	ID            uuid.UUID  `json:"id"`
	Title         string     `json:"title"`
	ReleaseDate   string     `json:"release_date"`
	Synopsis      string     `json:"synopsis"`
	TrailerURL    string     `json:"trailer_url,omitempty"`
	PosterMediaID *uuid.UUID `json:"poster_media_id,omitempty"`
	CreatedBy     uuid.UUID  `json:"created_by"`
	AverageRating float64    `json:"average_rating"`
	ReviewCount   int        `json:"review_count"`
	Rank          int        `json:"rank,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
}

// MovieListResponse represents paginated movie list
type MovieListResponse struct {
	Movies []*MovieResponse `json:"movies"`
	Total  int64            `json:"total"`
	Page   int              `json:"page"`
	Limit  int              `json:"limit"`
	Pages  int              `json:"pages"`
}

// MovieSuggestion represents a title autocomplete entry
type MovieSuggestion struct {
	ID    uuid.UUID `json:"id"`
	Title string    `json:"title"`
}

// ToResponse converts Movie to MovieResponse
func (m *Movie) ToResponse() *MovieResponse {
	return &MovieResponse{
		ID:            m.ID,
		Title:         m.Title,
		ReleaseDate:   m.ReleaseDate.Format("2006-01-02"),
		Synopsis:      m.Synopsis,
		TrailerURL:    m.TrailerURL,
		PosterMediaID: m.PosterMediaID,
		CreatedBy:     m.CreatedBy,
		AverageRating: m.AverageRating,
		ReviewCount:   m.ReviewCount,
		Rank:          m.Rank,
		CreatedAt:     m.CreatedAt,
		UpdatedAt:     m.UpdatedAt,
	}
}

// TableName returns the table name for GORM
func (Movie) TableName() string {
	return "movies"
}
