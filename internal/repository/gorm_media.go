package repository

import (
	"errors"
	"fmt"

	mediaPkg "github.com/dustin/movies-backend/internal/media"
	"github.com/dustin/movies-backend/pkg/logger"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// gormMediaRepository implements the media.Repository interface
type gormMediaRepository struct {
	db     *gorm.DB
	logger *logger.Logger
}

// NewGORMMediaRepository creates a new GORM-based media repository
func NewGORMMediaRepository(db *gorm.DB, log *logger.Logger) mediaPkg.Repository {
	return &gormMediaRepository{
		db:     db,
		logger: log.WithComponent("gorm-media-repository"),
	}
}

func (r *gormMediaRepository) Create(media *mediaPkg.Media) error {
	r.logger.Info("Storing media " + media.ID.String() + " (" + fmt.Sprintf("%d", media.Size) + " bytes)")

	if err := r.db.Create(media).Error; err != nil {
		r.logger.Error("Failed to store media " + media.ID.String() + ": " + err.Error())
		return fmt.Errorf("failed to store media: %w", err)
	}

	return nil
}

func (r *gormMediaRepository) FindByID(id uuid.UUID) (*mediaPkg.Media, error) {
	var media mediaPkg.Media

	err := r.db.First(&media, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, mediaPkg.ErrNotFound
		}

		r.logger.Error("Database error finding media " + id.String() + ": " + err.Error())
		return nil, fmt.Errorf("database error: %w", err)
	}

	return &media, nil
}
