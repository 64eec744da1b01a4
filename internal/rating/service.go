package rating

import (
	"errors"
	"fmt"

	"github.com/dustin/movies-backend/internal/utils"
	"github.com/dustin/movies-backend/pkg/logger"
	"github.com/google/uuid"
)

var (
	// ErrNotFound is returned when the user has not rated the movie
	ErrNotFound = errors.New("rating not found")
	// ErrMovieNotFound is returned when the referenced movie does not exist
	ErrMovieNotFound = errors.New("movie not found")
	// ErrInvalidValue is returned when the rating value is outside 1..5
	ErrInvalidValue = errors.New("value must be between 1 and 5")
)

// service implements the Service interface
type service struct {
	repo         Repository
	movieService MovieService
	logger       *logger.Logger
}

// NewService creates a new rating service
func NewService(repo Repository, movieService MovieService, log *logger.Logger) Service {
	return &service{
		repo:         repo,
		movieService: movieService,
		logger:       log.WithComponent("rating-service"),
	}
}

// UpsertRating writes the caller's rating for a movie and returns the
// recomputed average. The rating write and the aggregate recomputation run
// in a single transaction at the repository, so concurrent raters of the
// same movie serialize on the movie row and no update is lost.
func (s *service) UpsertRating(userID, movieID uuid.UUID, value int) (float64, error) {
	s.logger.Info("Rating movie " + movieID.String() + " by user " + userID.String() + " with value " + utils.IntToString(value))

	if value < 1 || value > 5 {
		s.logger.Error("Invalid rating value " + utils.IntToString(value) + " for movie " + movieID.String())
		return 0, fmt.Errorf("%w, got %d", ErrInvalidValue, value)
	}

	// Fast-fail on unknown movies; the repository re-checks under lock
	if _, err := s.movieService.GetMovie(movieID); err != nil {
		if errors.Is(err, ErrMovieNotFound) {
			s.logger.Info("Movie not found for rating: " + movieID.String())
			return 0, ErrMovieNotFound
		}
		s.logger.Error("Failed to check movie " + movieID.String() + " before rating: " + err.Error())
		return 0, err
	}

	average, err := s.repo.UpsertWithAverage(userID, movieID, value)
	if err != nil {
		s.logger.Error("Failed to upsert rating for movie " + movieID.String() + " by user " + userID.String() + ": " + err.Error())
		return 0, err
	}

	s.logger.Info("Rating upserted for movie " + movieID.String() + " by user " + userID.String() + " value " + utils.IntToString(value))

	return average, nil
}

func (s *service) GetUserRating(userID, movieID uuid.UUID) (*Rating, error) {
	rating, err := s.repo.FindByUserAndMovie(userID, movieID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			s.logger.Info("Rating not found for movie " + movieID.String() + " by user " + userID.String())
			return nil, ErrNotFound
		}
		s.logger.Error("Failed to load rating for movie " + movieID.String() + " by user " + userID.String() + ": " + err.Error())
		return nil, err
	}

	return rating, nil
}

// DeleteRating removes the caller's rating and re-aggregates the movie's
// average in the same transaction.
func (s *service) DeleteRating(userID, movieID uuid.UUID) (float64, error) {
	s.logger.Info("Deleting rating for movie " + movieID.String() + " by user " + userID.String())

	if _, err := s.movieService.GetMovie(movieID); err != nil {
		if errors.Is(err, ErrMovieNotFound) {
			return 0, ErrMovieNotFound
		}
		s.logger.Error("Failed to check movie " + movieID.String() + " before rating delete: " + err.Error())
		return 0, err
	}

	average, err := s.repo.DeleteWithAverage(userID, movieID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return 0, ErrNotFound
		}
		s.logger.Error("Failed to delete rating for movie " + movieID.String() + " by user " + userID.String() + ": " + err.Error())
		return 0, err
	}

	s.logger.Info("Rating deleted for movie " + movieID.String() + " by user " + userID.String())

	return average, nil
}
