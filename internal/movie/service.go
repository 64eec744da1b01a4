package movie

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/dustin/movies-backend/internal/utils"
	"github.com/dustin/movies-backend/pkg/logger"
	"github.com/google/uuid"
)

var (
	// ErrNotFound is returned when the referenced movie does not exist
	ErrNotFound = errors.New("movie not found")
	// ErrTitleTaken is returned on unique title violations
	ErrTitleTaken = errors.New("movie title already exists")
	// ErrForbidden is returned when a non-owner mutates a movie
	ErrForbidden = errors.New("not the movie owner")
	// ErrInvalidPoster is returned when the poster media is missing or not owned by the caller
	ErrInvalidPoster = errors.New("invalid poster media")
	// ErrEmptyTitle is returned when a create/update carries a blank title
	ErrEmptyTitle = errors.New("title must not be empty")
	// ErrBadReleaseDate is returned when the release date is not YYYY-MM-DD
	ErrBadReleaseDate = errors.New("invalid release date")
)

// service implements the Service interface
type service struct {
	repo         Repository
	mediaService MediaService
	logger       *logger.Logger
}

// NewService creates a new movie service
func NewService(repo Repository, mediaService MediaService, log *logger.Logger) Service {
	return &service{
		repo:         repo,
		mediaService: mediaService,
		logger:       log.WithComponent("movie-service"),
	}
}

func (s *service) CreateMovie(userID uuid.UUID, req *CreateMovieRequest) (*Movie, error) {
	title := strings.TrimSpace(req.Title)
	s.logger.Info("Creating movie '" + title + "' for user " + userID.String())

	if title == "" {
		return nil, ErrEmptyTitle
	}

	releaseDate, err := time.Parse("2006-01-02", req.ReleaseDate)
	if err != nil {
		return nil, fmt.Errorf("%w '%s': expected YYYY-MM-DD", ErrBadReleaseDate, req.ReleaseDate)
	}

	// Check title uniqueness before insert
	existing, _ := s.repo.FindByTitle(title)
	if existing != nil {
		s.logger.Info("Movie creation failed - title already exists: " + title)
		return nil, ErrTitleTaken
	}

	movie := &Movie{
		ID:          uuid.New(),
		Title:       title,
		ReleaseDate: releaseDate,
		Synopsis:    req.Synopsis,
		TrailerURL:  req.TrailerURL,
		CreatedBy:   userID,
		CreatedAt:   time.Now(),
		UpdatedAt:   time.Now(),
	}

	if err := s.repo.Create(movie); err != nil {
		s.logger.Error("Failed to create movie '" + title + "' for user " + userID.String() + ": " + err.Error())
		return nil, err
	}

	s.logger.Info("Movie created successfully: " + movie.ID.String() + " '" + title + "'")

	return movie, nil
}

func (s *service) GetMovie(id uuid.UUID) (*Movie, error) {
	movie, err := s.repo.FindByID(id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			s.logger.Info("Movie not found: " + id.String())
			return nil, ErrNotFound
		}
		s.logger.Error("Failed to load movie " + id.String() + ": " + err.Error())
		return nil, err
	}

	return movie, nil
}

func (s *service) ListMovies(filter *ListFilter) (*MovieListResponse, error) {
	filter.Page, filter.PageSize = utils.NormalizePageBounds(filter.Page, filter.PageSize)
	if filter.Sort == "" {
		filter.Sort = SortUploadedDesc
	}
	if filter.Scope == "" {
		filter.Scope = ScopeAll
	}

	movies, total, err := s.repo.List(filter)
	if err != nil {
		s.logger.Error("Failed to list movies: " + err.Error())
		return nil, err
	}

	responses := make([]*MovieResponse, 0, len(movies))
	for _, m := range movies {
		responses = append(responses, m.ToResponse())
	}

	meta := utils.CalculatePagination(total, filter.Page, filter.PageSize)

	return &MovieListResponse{
		Movies: responses,
		Total:  meta.Total,
		Page:   meta.Page,
		Limit:  meta.Limit,
		Pages:  meta.Pages,
	}, nil
}

func (s *service) SuggestTitles(q string) ([]*MovieSuggestion, error) {
	// Blank queries short-circuit without touching the database
	q = strings.TrimSpace(q)
	if q == "" {
		return []*MovieSuggestion{}, nil
	}

	movies, err := s.repo.SuggestByTitle(q, SuggestLimit)
	if err != nil {
		s.logger.Error("Failed to suggest titles for '" + q + "': " + err.Error())
		return nil, err
	}

	suggestions := make([]*MovieSuggestion, 0, len(movies))
	for _, m := range movies {
		suggestions = append(suggestions, &MovieSuggestion{ID: m.ID, Title: m.Title})
	}

	return suggestions, nil
}

func (s *service) UpdateMovie(id, userID uuid.UUID, req *UpdateMovieRequest) (*Movie, error) {
	s.logger.Info("Updating movie " + id.String() + " by user " + userID.String())

	movie, err := s.repo.FindByID(id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, ErrNotFound
		}
		s.logger.Error("Failed to load movie " + id.String() + ": " + err.Error())
		return nil, err
	}

	if movie.CreatedBy != userID {
		s.logger.Info("Movie update rejected - user " + userID.String() + " is not the owner of " + id.String())
		return nil, ErrForbidden
	}

	if req.Title != nil {
		title := strings.TrimSpace(*req.Title)
		if title == "" {
			return nil, ErrEmptyTitle
		}
		if title != movie.Title {
			existing, _ := s.repo.FindByTitle(title)
			if existing != nil && existing.ID != movie.ID {
				return nil, ErrTitleTaken
			}
			movie.Title = title
		}
	}
	if req.ReleaseDate != nil {
		releaseDate, err := time.Parse("2006-01-02", *req.ReleaseDate)
		if err != nil {
			return nil, fmt.Errorf("%w '%s': expected YYYY-MM-DD", ErrBadReleaseDate, *req.ReleaseDate)
		}
		movie.ReleaseDate = releaseDate
	}
	if req.Synopsis != nil {
		movie.Synopsis = *req.Synopsis
	}
	if req.TrailerURL != nil {
		movie.TrailerURL = *req.TrailerURL
	}
	if req.PosterMediaID != nil {
		if *req.PosterMediaID == "" {
			movie.PosterMediaID = nil
		} else {
			mediaID, err := uuid.Parse(*req.PosterMediaID)
			if err != nil {
				return nil, ErrInvalidPoster
			}
			media, err := s.mediaService.GetMedia(mediaID)
			if err != nil {
				if errors.Is(err, ErrInvalidPoster) {
					return nil, ErrInvalidPoster
				}
				s.logger.Error("Failed to load poster media " + mediaID.String() + ": " + err.Error())
				return nil, err
			}
			if media.OwnerUserID != nil && *media.OwnerUserID != userID {
				return nil, ErrInvalidPoster
			}
			movie.PosterMediaID = &mediaID
		}
	}

	movie.UpdatedAt = time.Now()

	if err := s.repo.Update(movie); err != nil {
		s.logger.Error("Failed to update movie " + id.String() + ": " + err.Error())
		return nil, err
	}

	s.logger.Info("Movie updated successfully: " + id.String())

	return movie, nil
}

func (s *service) DeleteMovie(id, userID uuid.UUID) error {
	s.logger.Info("Deleting movie " + id.String() + " by user " + userID.String())

	movie, err := s.repo.FindByID(id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return ErrNotFound
		}
		s.logger.Error("Failed to load movie " + id.String() + ": " + err.Error())
		return err
	}

	if movie.CreatedBy != userID {
		s.logger.Info("Movie delete rejected - user " + userID.String() + " is not the owner of " + id.String())
		return ErrForbidden
	}

	if err := s.repo.Delete(id); err != nil {
		s.logger.Error("Failed to delete movie " + id.String() + ": " + err.Error())
		return err
	}

	s.logger.Info("Movie deleted successfully: " + id.String())

	return nil
}
