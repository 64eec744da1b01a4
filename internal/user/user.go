package user

import (
	"time"

	"github.com/google/uuid"
)

// Role constants
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// User represents a registered account
type User struct {
	ID            uuid.UUID  `json:"id" gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Name          string     `json:"name" gorm:"not null;size:255"`
	Email         string     `json:"email" gorm:"uniqueIndex;not null;size:255"`
	PasswordHash  string     `json:"-" gorm:"not null;size:255"`
	Role          string     `json:"role" gorm:"size:20;default:'user'"`
	AvatarMediaID *uuid.UUID `json:"avatar_media_id,omitempty" gorm:"type:uuid"`
	CreatedAt     time.Time  `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt     time.Time  `json:"updated_at" gorm:"autoUpdateTime"`

	// Associations - loaded explicitly when needed
	Movies  []Movie  `json:"movies,omitempty" gorm:"foreignKey:CreatedBy;constraint:OnDelete:CASCADE"`
	Reviews []Review `json:"reviews,omitempty" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	Ratings []Rating `json:"ratings,omitempty" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
}

// Movie represents the movie entity (forward declaration for association)
type Movie struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	CreatedBy uuid.UUID `gorm:"type:uuid;not null;index"`
	Title     string
}

// Review represents the review entity (forward declaration for association)
type Review struct {
	ID      uuid.UUID `gorm:"type:uuid;primaryKey"`
	MovieID uuid.UUID `gorm:"type:uuid;not null"`
	UserID  uuid.UUID `gorm:"type:uuid;not null;index"`
}

// Rating represents the rating entity (forward declaration for association)
type Rating struct {
	MovieID uuid.UUID `gorm:"type:uuid;primaryKey"`
	UserID  uuid.UUID `gorm:"type:uuid;primaryKey"`
	Value   int
}

// Media represents media for avatar attachment (forward declaration)
type Media struct {
	ID          uuid.UUID
	ContentType string
	OwnerUserID *uuid.UUID
}

// Repository defines the interface for user data access
type Repository interface {
	Create(user *User) error
	FindByEmail(email string) (*User, error)
	FindByID(id uuid.UUID) (*User, error)
	Update(user *User) error
}

// Service defines the interface for user business logic
type Service interface {
	SignUp(name, email, password string) (*User, error)
	Login(email, password string) (string, *User, error)
	GetUserByID(id uuid.UUID) (*User, error)
	SetAvatar(userID, mediaID uuid.UUID) (*User, error)
	ValidateToken(tokenString string) (*User, error)
	CookieName() string
	TokenTTL() time.Duration
}

// MediaService interface for avatar validation
type MediaService interface {
	GetMedia(id uuid.UUID) (*Media, error)
}

// CreateUserRequest represents user registration request
type CreateUserRequest struct {
	Name     string `json:"name" binding:"required,min=1,max=255"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
}

// LoginRequest represents login request
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// SetAvatarRequest represents avatar attachment request
type SetAvatarRequest struct {
	MediaID string `json:"media_id" binding:"required,uuid"`
}

// UserResponse represents user in API responses (without password)
type UserResponse struct {
	ID            uuid.UUID  `json:"id"`
	Name          string     `json:"name"`
	Email         string     `json:"email"`
	Role          string     `json:"role"`
	AvatarMediaID *uuid.UUID `json:"avatar_media_id,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
}

// ToResponse converts User to UserResponse
func (u *User) ToResponse() *UserResponse {
	return &UserResponse{
		ID:            u.ID,
		Name:          u.Name,
		Email:         u.Email,
		Role:          u.Role,
		AvatarMediaID: u.AvatarMediaID,
		CreatedAt:     u.CreatedAt,
		UpdatedAt:     u.UpdatedAt,
	}
}

// TableName returns the table name for GORM
func (User) TableName() string {
	return "users"
}
