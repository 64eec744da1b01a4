package review

import (
	"errors"
	"strings"
	"time"

	"github.com/dustin/movies-backend/internal/utils"
	"github.com/dustin/movies-backend/pkg/logger"
	"github.com/google/uuid"
)

var (
	// ErrNotFound is returned when no review matches (id, user). A review
	// owned by someone else is indistinguishable from a missing one on
	// purpose - the lookup predicate includes ownership.
	ErrNotFound = errors.New("review not found")
	// ErrMovieNotFound is returned when the referenced movie does not exist
	ErrMovieNotFound = errors.New("movie not found")
	// ErrEmptyContent is returned when the review body is blank
	ErrEmptyContent = errors.New("review content must not be empty")
)

// service implements the Service interface
type service struct {
	repo         Repository
	movieService MovieService
	logger       *logger.Logger
}

// NewService creates a new review service
func NewService(repo Repository, movieService MovieService, log *logger.Logger) Service {
	return &service{
		repo:         repo,
		movieService: movieService,
		logger:       log.WithComponent("review-service"),
	}
}

// CreateReview inserts the review and increments the movie's review count.
// Both writes happen in one repository transaction - if either fails,
// neither is committed.
func (s *service) CreateReview(userID, movieID uuid.UUID, content string) (*Review, error) {
	s.logger.Info("Creating review for movie " + movieID.String() + " by user " + userID.String())

	if strings.TrimSpace(content) == "" {
		return nil, ErrEmptyContent
	}

	// Fast-fail on unknown movies; the repository re-checks under lock
	if _, err := s.movieService.GetMovie(movieID); err != nil {
		if errors.Is(err, ErrMovieNotFound) {
			s.logger.Info("Movie not found for review: " + movieID.String())
			return nil, ErrMovieNotFound
		}
		s.logger.Error("Failed to check movie " + movieID.String() + " before review: " + err.Error())
		return nil, err
	}

	review := &Review{
		ID:        uuid.New(),
		MovieID:   movieID,
		UserID:    userID,
		Content:   content,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}

	if err := s.repo.CreateWithCount(review); err != nil {
		s.logger.Error("Failed to create review for movie " + movieID.String() + " by user " + userID.String() + ": " + err.Error())
		return nil, err
	}

	s.logger.Info("Review created successfully: " + review.ID.String() + " for movie " + movieID.String())

	return review, nil
}

// UpdateReview overwrites the content of the caller's review. No count
// change is involved.
func (s *service) UpdateReview(userID, reviewID uuid.UUID, content string) (*Review, error) {
	s.logger.Info("Updating review " + reviewID.String() + " by user " + userID.String())

	if strings.TrimSpace(content) == "" {
		return nil, ErrEmptyContent
	}

	review, err := s.repo.UpdateContent(userID, reviewID, content)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			s.logger.Info("Review not found (or not owned): " + reviewID.String())
			return nil, ErrNotFound
		}
		s.logger.Error("Failed to update review " + reviewID.String() + ": " + err.Error())
		return nil, err
	}

	s.logger.Info("Review updated successfully: " + reviewID.String())

	return review, nil
}

// DeleteReview removes the caller's review and decrements the movie's
// review count in one transaction. A second delete of the same id is a
// NotFound, not a no-op.
func (s *service) DeleteReview(userID, reviewID uuid.UUID) error {
	s.logger.Info("Deleting review " + reviewID.String() + " by user " + userID.String())

	if err := s.repo.DeleteWithCount(userID, reviewID); err != nil {
		if errors.Is(err, ErrNotFound) {
			s.logger.Info("Review not found (or not owned): " + reviewID.String())
			return ErrNotFound
		}
		s.logger.Error("Failed to delete review " + reviewID.String() + ": " + err.Error())
		return err
	}

	s.logger.Info("Review deleted successfully: " + reviewID.String())

	return nil
}

func (s *service) ListMovieReviews(movieID uuid.UUID, page, limit int) ([]*Review, int64, error) {
	page, limit = utils.NormalizePageBounds(page, limit)

	if _, err := s.movieService.GetMovie(movieID); err != nil {
		if errors.Is(err, ErrMovieNotFound) {
			return nil, 0, ErrMovieNotFound
		}
		s.logger.Error("Failed to check movie " + movieID.String() + " before listing reviews: " + err.Error())
		return nil, 0, err
	}

	reviews, total, err := s.repo.FindByMovie(movieID, (page-1)*limit, limit)
	if err != nil {
		s.logger.Error("Failed to list reviews for movie " + movieID.String() + ": " + err.Error())
		return nil, 0, err
	}

	return reviews, total, nil
}
