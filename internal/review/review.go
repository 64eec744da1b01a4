package review

import (
	"time"

	"github.com/google/uuid"
)

// Review represents a user's written review of a movie
type Review struct {
	ID        uuid.UUID `json:"id" gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	MovieID   uuid.UUID `json:"movie_id" gorm:"type:uuid;not null;index:idx_movie_reviews"`
	UserID    uuid.UUID `json:"user_id" gorm:"type:uuid;not null;index:idx_user_reviews"`
	Content   string    `json:"content" gorm:"type:text;not null"`
	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt time.Time `json:"updated_at" gorm:"autoUpdateTime"`

	// Associations (forward declarations)
	User  *User  `json:"user,omitempty" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	Movie *Movie `json:"movie,omitempty" gorm:"foreignKey:MovieID;constraint:OnDelete:CASCADE"`
}

// User represents user for foreign key relationship (forward declaration)
type User struct {
	ID   uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name string
}

// Movie represents movie for count maintenance (forward declaration).
// GORM maps it onto the movies table owned by the movie package.
type Movie struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	CreatedBy   uuid.UUID `gorm:"type:uuid;not null"`
	Title       string
	ReviewCount int
}

// Repository defines the interface for review data access. Create and delete
// maintain the movie's denormalized review count inside the same transaction
// as the row write so the count never drifts.
type Repository interface {
	CreateWithCount(review *Review) error
	DeleteWithCount(userID, reviewID uuid.UUID) error
	UpdateContent(userID, reviewID uuid.UUID, content string) (*Review, error)
	FindByMovie(movieID uuid.UUID, offset, limit int) ([]*Review, int64, error)
}

// Service defines the interface for review business logic
type Service interface {
	CreateReview(userID, movieID uuid.UUID, content string) (*Review, error)
	UpdateReview(userID, reviewID uuid.UUID, content string) (*Review, error)
	DeleteReview(userID, reviewID uuid.UUID) error
	ListMovieReviews(movieID uuid.UUID, page, limit int) ([]*Review, int64, error)
}

// MovieService interface for movie existence checks
type MovieService interface {
	GetMovie(id uuid.UUID) (*Movie, error)
}

// CreateReviewRequest represents review creation request
type CreateReviewRequest struct {
	Content string `json:"content" binding:"required,min=1"`
}

// UpdateReviewRequest represents review content update
type UpdateReviewRequest struct {
	Content string `json:"content" binding:"required,min=1"`
}

// ReviewResponse represents review in API responses
type ReviewResponse struct {
	ID         uuid.UUID `json:"id"`
	MovieID    uuid.UUID `json:"movie_id"`
	UserID     uuid.UUID `json:"user_id"`
	AuthorName string    `json:"author_name,omitempty"`
	Content    string    `json:"content"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// ToResponse converts Review to ReviewResponse
func (r *Review) ToResponse() *ReviewResponse {
	response := &ReviewResponse{
		ID:        r.ID,
		MovieID:   r.MovieID,
		UserID:    r.UserID,
		Content:   r.Content,
		CreatedAt: r.CreatedAt,
		UpdatedAt: r.UpdatedAt,
	}
	if r.User != nil {
		response.AuthorName = r.User.Name
	}
	return response
}

// TableName returns the table name for GORM
func (Review) TableName() string {
	return "reviews"
}
