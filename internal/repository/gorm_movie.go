package repository

import (
	"fmt"
	"strings"

	moviePkg "github.com/dustin/movies-backend/internal/movie"
	"github.com/dustin/movies-backend/pkg/logger"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// gormMovieRepository implements the movie.Repository interface with GORM optimizations
type gormMovieRepository struct {
	db     *gorm.DB
	logger *logger.Logger
}

// NewGORMMovieRepository creates a new GORM-based movie repository
func NewGORMMovieRepository(db *gorm.DB, log *logger.Logger) moviePkg.Repository {
	return &gormMovieRepository{
		db:     db,
		logger: log.WithComponent("gorm-movie-repository"),
	}
}

func (r *gormMovieRepository) Create(movie *moviePkg.Movie) error {
	r.logger.Info("Creating movie " + movie.ID.String() + " '" + movie.Title + "'")

	if err := r.db.Create(movie).Error; err != nil {
		r.logger.Error("Failed to create movie " + movie.ID.String() + ": " + err.Error())
		return fmt.Errorf("failed to create movie: %w", err)
	}

	return nil
}

func (r *gormMovieRepository) FindByID(id uuid.UUID) (*moviePkg.Movie, error) {
	var movie moviePkg.Movie

	err := r.db.First(&movie, "id = ?", id).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			r.logger.Info("Movie not found: " + id.String())
			return nil, moviePkg.ErrNotFound
		}

		r.logger.Error("Database error finding movie " + id.String() + ": " + err.Error())
		return nil, fmt.Errorf("database error: %w", err)
	}

	return &movie, nil
}

func (r *gormMovieRepository) FindByTitle(title string) (*moviePkg.Movie, error) {
	var movie moviePkg.Movie

	err := r.db.Where("title = ?", title).First(&movie).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, moviePkg.ErrNotFound
		}

		r.logger.Error("Database error finding movie by title '" + title + "': " + err.Error())
		return nil, fmt.Errorf("database error: %w", err)
	}

	return &movie, nil
}

// List translates the closed filter into one filtered/sorted/paginated read.
// Total is counted on the same predicate before the page window is applied.
func (r *gormMovieRepository) List(filter *moviePkg.ListFilter) ([]*moviePkg.Movie, int64, error) {
	query := r.db.Model(&moviePkg.Movie{})

	if q := strings.TrimSpace(filter.Query); q != "" {
		like := "%" + strings.ToLower(q) + "%"
		query = query.Where("LOWER(title) LIKE ? OR LOWER(synopsis) LIKE ?", like, like)
	}

	if filter.MinStars > 0 {
		query = query.Where("average_rating >= ?", float64(filter.MinStars))
	}

	// Review scope only applies when a requesting user is known
	if filter.RequestingUserID != uuid.Nil {
		sub := r.db.Model(&moviePkg.Review{}).
			Select("1").
			Where("reviews.movie_id = movies.id AND reviews.user_id = ?", filter.RequestingUserID)

		switch filter.Scope {
		case moviePkg.ScopeMine:
			query = query.Where("EXISTS (?)", sub)
		case moviePkg.ScopeNotMine:
			query = query.Where("NOT EXISTS (?)", sub)
		}
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		r.logger.Error("Database error counting movies: " + err.Error())
		return nil, 0, fmt.Errorf("database error: %w", err)
	}

	var movies []*moviePkg.Movie
	err := query.Order(orderClause(filter.Sort)).
		Offset((filter.Page - 1) * filter.PageSize).
		Limit(filter.PageSize).
		Find(&movies).Error

	if err != nil {
		r.logger.Error("Database error listing movies: " + err.Error())
		return nil, 0, fmt.Errorf("database error: %w", err)
	}

	r.logger.Info("Found " + fmt.Sprintf("%d", len(movies)) + " movies (total " + fmt.Sprintf("%d", total) + ")")

	return movies, total, nil
}

func (r *gormMovieRepository) SuggestByTitle(q string, limit int) ([]*moviePkg.Movie, error) {
	var movies []*moviePkg.Movie

	like := "%" + strings.ToLower(q) + "%"
	err := r.db.Where("LOWER(title) LIKE ?", like).
		Order("review_count DESC, average_rating DESC, created_at DESC").
		Limit(limit).
		Find(&movies).Error

	if err != nil {
		r.logger.Error("Database error suggesting titles for '" + q + "': " + err.Error())
		return nil, fmt.Errorf("database error: %w", err)
	}

	return movies, nil
}

// Update writes only the owner-editable columns. The derived
// average_rating/review_count/rank columns belong to the rating, review and
// ranking write paths; persisting them from an in-memory Movie would clobber
// concurrent aggregate commits.
func (r *gormMovieRepository) Update(movie *moviePkg.Movie) error {
	r.logger.Info("Updating movie " + movie.ID.String())

	err := r.db.Model(movie).
		Select("title", "release_date", "synopsis", "trailer_url", "poster_media_id", "updated_at").
		Updates(movie).Error
	if err != nil {
		r.logger.Error("Failed to update movie " + movie.ID.String() + ": " + err.Error())
		return fmt.Errorf("failed to update movie: %w", err)
	}

	return nil
}

// Delete removes the movie and its dependent rows in one transaction
func (r *gormMovieRepository) Delete(id uuid.UUID) error {
	r.logger.Info("Deleting movie: " + id.String())

	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&moviePkg.Rating{}, "movie_id = ?", id).Error; err != nil {
			return fmt.Errorf("failed to delete movie ratings: %w", err)
		}
		if err := tx.Delete(&moviePkg.Review{}, "movie_id = ?", id).Error; err != nil {
			return fmt.Errorf("failed to delete movie reviews: %w", err)
		}

		result := tx.Delete(&moviePkg.Movie{}, "id = ?", id)
		if result.Error != nil {
			return fmt.Errorf("failed to delete movie: %w", result.Error)
		}
		if result.RowsAffected == 0 {
			return moviePkg.ErrNotFound
		}

		return nil
	})

	if err != nil {
		r.logger.Error("Failed to delete movie " + id.String() + ": " + err.Error())
		return err
	}

	r.logger.Info("Movie deleted successfully: " + id.String())

	return nil
}

// orderClause maps the closed sort key onto SQL. Every branch ends with the
// created_at/id tie-break so page windows are stable.
func orderClause(sort moviePkg.SortKey) string {
	switch sort {
	case moviePkg.SortReviewsDesc:
		return "review_count DESC, created_at DESC, id ASC"
	case moviePkg.SortRatingDesc:
		return "average_rating DESC, created_at DESC, id ASC"
	case moviePkg.SortReleaseDesc:
		return "release_date DESC, created_at DESC, id ASC"
	case moviePkg.SortReleaseAsc:
		return "release_date ASC, created_at DESC, id ASC"
	default:
		return "created_at DESC, id ASC"
	}
}
