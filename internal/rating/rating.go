package rating

import (
	"time"

	"github.com/google/uuid"
)

// Rating represents a user's star rating of a movie. At most one row exists
// per (movie, user) pair - a second submission overwrites the value.
type Rating struct {
	MovieID   uuid.UUID `json:"movie_id" gorm:"type:uuid;primaryKey;not null;index:idx_movie_ratings"`
	UserID    uuid.UUID `json:"user_id" gorm:"type:uuid;primaryKey;not null;index:idx_user_ratings"`
	Value     int       `json:"value" gorm:"not null;check:value >= 1 AND value <= 5"`
	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt time.Time `json:"updated_at" gorm:"autoUpdateTime"`

	// Associations (forward declarations)
	User  *User  `json:"user,omitempty" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	Movie *Movie `json:"movie,omitempty" gorm:"foreignKey:MovieID;constraint:OnDelete:CASCADE"`
}

// User represents user for foreign key relationship (forward declaration)
type User struct {
	ID    uuid.UUID `gorm:"type:uuid;primaryKey"`
	Email string
}

// Movie represents movie for aggregate updates (forward declaration).
// GORM maps it onto the movies table owned by the movie package.
type Movie struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey"`
	CreatedBy     uuid.UUID `gorm:"type:uuid;not null"`
	Title         string
	AverageRating float64
}

// Repository defines the interface for rating data access. Upsert and delete
// recompute the movie's average inside the same transaction as the write so
// the denormalized aggregate can never drift from the rating rows.
type Repository interface {
	UpsertWithAverage(userID, movieID uuid.UUID, value int) (float64, error)
	DeleteWithAverage(userID, movieID uuid.UUID) (float64, error)
	FindByUserAndMovie(userID, movieID uuid.UUID) (*Rating, error)
}

// Service defines the interface for rating business logic
type Service interface {
	UpsertRating(userID, movieID uuid.UUID, value int) (float64, error)
	GetUserRating(userID, movieID uuid.UUID) (*Rating, error)
	DeleteRating(userID, movieID uuid.UUID) (float64, error)
}

// MovieService interface for movie existence checks
type MovieService interface {
	GetMovie(id uuid.UUID) (*Movie, error)
}

// RateMovieRequest represents rating submission
type RateMovieRequest struct {
	Value int `json:"value" binding:"required,min=1,max=5"`
}

// RatingResponse represents rating in API responses
type RatingResponse struct {
	MovieID       uuid.UUID `json:"movie_id"`
	UserID        uuid.UUID `json:"user_id"`
	Value         int       `json:"value"`
	AverageRating float64   `json:"average_rating"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// IsValidValue checks if the star value is within valid range
func (r *Rating) IsValidValue() bool {
	return r.Value >= 1 && r.Value <= 5
}

// TableName returns the table name for GORM
func (Rating) TableName() string {
	return "ratings"
}
