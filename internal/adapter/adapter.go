package adapter

import (
	"errors"

	"github.com/dustin/movies-backend/internal/media"
	"github.com/dustin/movies-backend/internal/movie"
	"github.com/dustin/movies-backend/internal/rating"
	"github.com/dustin/movies-backend/internal/review"
	"github.com/dustin/movies-backend/internal/user"
	"github.com/google/uuid"
)

// MovieServiceToRatingMovieService adapts movie.Service to rating.MovieService
type MovieServiceToRatingMovieService struct {
	service movie.Service
}

// NewMovieServiceToRatingMovieService creates a new adapter
func NewMovieServiceToRatingMovieService(s movie.Service) rating.MovieService {
	return &MovieServiceToRatingMovieService{
		service: s,
	}
}

// GetMovie translates movie.ErrNotFound into the rating package's sentinel
// so the rating service can match it without importing movie. Other errors
// (database failures) pass through untranslated.
func (a *MovieServiceToRatingMovieService) GetMovie(id uuid.UUID) (*rating.Movie, error) {
	movieEntity, err := a.service.GetMovie(id)
	if err != nil {
		if errors.Is(err, movie.ErrNotFound) {
			return nil, rating.ErrMovieNotFound
		}
		return nil, err
	}

	return &rating.Movie{
		ID:            movieEntity.ID,
		CreatedBy:     movieEntity.CreatedBy,
		Title:         movieEntity.Title,
		AverageRating: movieEntity.AverageRating,
	}, nil
}

// MovieServiceToReviewMovieService adapts movie.Service to review.MovieService
type MovieServiceToReviewMovieService struct {
	service movie.Service
}

// NewMovieServiceToReviewMovieService creates a new adapter
func NewMovieServiceToReviewMovieService(s movie.Service) review.MovieService {
	return &MovieServiceToReviewMovieService{
		service: s,
	}
}

func (a *MovieServiceToReviewMovieService) GetMovie(id uuid.UUID) (*review.Movie, error) {
	movieEntity, err := a.service.GetMovie(id)
	if err != nil {
		if errors.Is(err, movie.ErrNotFound) {
			return nil, review.ErrMovieNotFound
		}
		return nil, err
	}

	return &review.Movie{
		ID:          movieEntity.ID,
		CreatedBy:   movieEntity.CreatedBy,
		Title:       movieEntity.Title,
		ReviewCount: movieEntity.ReviewCount,
	}, nil
}

// MediaServiceToUserMediaService adapts media.Service to user.MediaService
type MediaServiceToUserMediaService struct {
	service media.Service
}

// NewMediaServiceToUserMediaService creates a new adapter
func NewMediaServiceToUserMediaService(s media.Service) user.MediaService {
	return &MediaServiceToUserMediaService{
		service: s,
	}
}

// GetMedia translates media.ErrNotFound into user.ErrInvalidAvatar - a
// missing blob can never become an avatar. Other errors pass through.
func (a *MediaServiceToUserMediaService) GetMedia(id uuid.UUID) (*user.Media, error) {
	mediaEntity, err := a.service.Get(id)
	if err != nil {
		if errors.Is(err, media.ErrNotFound) {
			return nil, user.ErrInvalidAvatar
		}
		return nil, err
	}

	return &user.Media{
		ID:          mediaEntity.ID,
		ContentType: mediaEntity.ContentType,
		OwnerUserID: mediaEntity.OwnerUserID,
	}, nil
}

// MediaServiceToMovieMediaService adapts media.Service to movie.MediaService
type MediaServiceToMovieMediaService struct {
	service media.Service
}

// NewMediaServiceToMovieMediaService creates a new adapter
func NewMediaServiceToMovieMediaService(s media.Service) movie.MediaService {
	return &MediaServiceToMovieMediaService{
		service: s,
	}
}

func (a *MediaServiceToMovieMediaService) GetMedia(id uuid.UUID) (*movie.Media, error) {
	mediaEntity, err := a.service.Get(id)
	if err != nil {
		if errors.Is(err, media.ErrNotFound) {
			return nil, movie.ErrInvalidPoster
		}
		return nil, err
	}

	return &movie.Media{
		ID:          mediaEntity.ID,
		ContentType: mediaEntity.ContentType,
		OwnerUserID: mediaEntity.OwnerUserID,
	}, nil
}
