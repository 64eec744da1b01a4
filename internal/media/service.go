package media

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/dustin/movies-backend/config"
	"github.com/dustin/movies-backend/pkg/logger"
	"github.com/google/uuid"
)

var (
	// ErrNotFound is returned when the media blob does not exist
	ErrNotFound = errors.New("media not found")
	// ErrTooLarge is returned when the upload exceeds the size limit
	ErrTooLarge = errors.New("media exceeds maximum size")
	// ErrUnsupportedType is returned for non-image content types
	ErrUnsupportedType = errors.New("unsupported media content type")
)

var allowedContentTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/webp": true,
	"image/gif":  true,
}

// service implements the Service interface
type service struct {
	repo    Repository
	maxSize int64
	logger  *logger.Logger
}

// NewService creates a media service with validation and defaults
func NewService(cfg *config.MediaConfig, repo Repository, log *logger.Logger) (*service, error) {
	// Set defaults for nil or empty config values
	var maxSize int64 = 5 << 20 // 5 MiB
	if cfg != nil && cfg.MaxSize != "" {
		parsed, err := strconv.ParseInt(cfg.MaxSize, 10, 64)
		if err != nil || parsed <= 0 {
			return nil, fmt.Errorf("invalid media max size '%s': expected positive byte count", cfg.MaxSize)
		}
		maxSize = parsed
	}

	return &service{
		repo:    repo,
		maxSize: maxSize,
		logger:  log.WithComponent("media-service"),
	}, nil
}

func (s *service) Upload(ownerID uuid.UUID, contentType string, data []byte) (*Media, error) {
	s.logger.Info("Uploading media for user " + ownerID.String() + " type " + contentType + " size " + strconv.Itoa(len(data)))

	if int64(len(data)) > s.maxSize {
		s.logger.Info("Media upload rejected - too large: " + strconv.Itoa(len(data)) + " bytes")
		return nil, ErrTooLarge
	}

	if !allowedContentTypes[contentType] {
		s.logger.Info("Media upload rejected - unsupported type: " + contentType)
		return nil, ErrUnsupportedType
	}

	owner := ownerID
	media := &Media{
		ID:          uuid.New(),
		ContentType: contentType,
		Size:        int64(len(data)),
		Data:        data,
		OwnerUserID: &owner,
		CreatedAt:   time.Now(),
	}

	if err := s.repo.Create(media); err != nil {
		s.logger.Error("Failed to store media for user " + ownerID.String() + ": " + err.Error())
		return nil, err
	}

	s.logger.Info("Media stored successfully: " + media.ID.String())

	return media, nil
}

func (s *service) Get(id uuid.UUID) (*Media, error) {
	media, err := s.repo.FindByID(id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			s.logger.Info("Media not found: " + id.String())
			return nil, ErrNotFound
		}
		s.logger.Error("Failed to load media " + id.String() + ": " + err.Error())
		return nil, err
	}

	return media, nil
}
