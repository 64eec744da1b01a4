package media

import (
	"time"

	"github.com/google/uuid"
)

// Media represents an uploaded binary blob (poster or avatar image).
// The payload is stored opaque - the service only checks size and content
// type at the boundary.
type Media struct {
	ID          uuid.UUID  `json:"id" gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	ContentType string     `json:"content_type" gorm:"not null;size:100"`
	Size        int64      `json:"size" gorm:"not null"`
	Data        []byte     `json:"-" gorm:"type:bytea;not null"`
	OwnerUserID *uuid.UUID `json:"owner_user_id,omitempty" gorm:"type:uuid;index"`
	CreatedAt   time.Time  `json:"created_at" gorm:"autoCreateTime"`
}

// Repository defines the interface for media data access
type Repository interface {
	Create(media *Media) error
	FindByID(id uuid.UUID) (*Media, error)
}

// Service defines the interface for media business logic
type Service interface {
	Upload(ownerID uuid.UUID, contentType string, data []byte) (*Media, error)
	Get(id uuid.UUID) (*Media, error)
}

// MediaResponse represents media metadata in API responses (no payload)
type MediaResponse struct {
	ID          uuid.UUID `json:"id"`
	ContentType string    `json:"content_type"`
	Size        int64     `json:"size"`
	CreatedAt   time.Time `json:"created_at"`
}

// ToResponse converts Media to MediaResponse
func (m *Media) ToResponse() *MediaResponse {
	return &MediaResponse{
		ID:          m.ID,
		ContentType: m.ContentType,
		Size:        m.Size,
		CreatedAt:   m.CreatedAt,
	}
}

// TableName returns the table name for GORM
func (Media) TableName() string {
	return "media"
}
