package repository

import (
	"errors"
	"fmt"
	"time"

	ratingPkg "github.com/dustin/movies-backend/internal/rating"
	"github.com/dustin/movies-backend/pkg/logger"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// gormRatingRepository implements the rating.Repository interface.
// All aggregate-touching writes lock the movie row first, so concurrent
// raters of the same movie serialize and the stored average always matches
// the full current rating set.
type gormRatingRepository struct {
	db     *gorm.DB
	logger *logger.Logger
}

// NewGORMRatingRepository creates a new GORM-based rating repository
func NewGORMRatingRepository(db *gorm.DB, log *logger.Logger) ratingPkg.Repository {
	return &gormRatingRepository{
		db:     db,
		logger: log.WithComponent("gorm-rating-repository"),
	}
}

// UpsertWithAverage performs, in one transaction: lock the movie row,
// insert-or-overwrite the (movie,user) rating, recompute the mean over all
// ratings for the movie, and persist it. Returns the new average.
func (r *gormRatingRepository) UpsertWithAverage(userID, movieID uuid.UUID, value int) (float64, error) {
	var average float64

	err := r.db.Transaction(func(tx *gorm.DB) error {
		// SELECT ... FOR UPDATE scopes contention to this movie row
		var movie ratingPkg.Movie
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&movie, "id = ?", movieID).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ratingPkg.ErrMovieNotFound
			}
			return fmt.Errorf("database error: %w", err)
		}

		now := time.Now()
		rating := &ratingPkg.Rating{
			MovieID:   movieID,
			UserID:    userID,
			Value:     value,
			CreatedAt: now,
			UpdatedAt: now,
		}

		err = tx.Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "movie_id"}, {Name: "user_id"}},
			DoUpdates: clause.Assignments(map[string]interface{}{
				"value":      value,
				"updated_at": now,
			}),
		}).Create(rating).Error
		if err != nil {
			return fmt.Errorf("failed to upsert rating: %w", err)
		}

		if err := r.scanAverage(tx, movieID, &average); err != nil {
			return err
		}

		err = tx.Model(&ratingPkg.Movie{}).
			Where("id = ?", movieID).
			Update("average_rating", average).Error
		if err != nil {
			return fmt.Errorf("failed to update average rating: %w", err)
		}

		return nil
	})

	if err != nil {
		if !errors.Is(err, ratingPkg.ErrMovieNotFound) {
			r.logger.Error("Rating upsert transaction failed for movie " + movieID.String() + ": " + err.Error())
		}
		return 0, err
	}

	r.logger.Info("Rating upserted for movie " + movieID.String() + " by user " + userID.String())

	return average, nil
}

// DeleteWithAverage removes the rating and re-aggregates in one transaction
func (r *gormRatingRepository) DeleteWithAverage(userID, movieID uuid.UUID) (float64, error) {
	var average float64

	err := r.db.Transaction(func(tx *gorm.DB) error {
		var movie ratingPkg.Movie
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&movie, "id = ?", movieID).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ratingPkg.ErrMovieNotFound
			}
			return fmt.Errorf("database error: %w", err)
		}

		result := tx.Delete(&ratingPkg.Rating{}, "movie_id = ? AND user_id = ?", movieID, userID)
		if result.Error != nil {
			return fmt.Errorf("failed to delete rating: %w", result.Error)
		}
		if result.RowsAffected == 0 {
			return ratingPkg.ErrNotFound
		}

		if err := r.scanAverage(tx, movieID, &average); err != nil {
			return err
		}

		err = tx.Model(&ratingPkg.Movie{}).
			Where("id = ?", movieID).
			Update("average_rating", average).Error
		if err != nil {
			return fmt.Errorf("failed to update average rating: %w", err)
		}

		return nil
	})

	if err != nil {
		return 0, err
	}

	r.logger.Info("Rating deleted for movie " + movieID.String() + " by user " + userID.String())

	return average, nil
}

func (r *gormRatingRepository) FindByUserAndMovie(userID, movieID uuid.UUID) (*ratingPkg.Rating, error) {
	var rating ratingPkg.Rating

	// Compound primary key lookup
	err := r.db.Where("movie_id = ? AND user_id = ?", movieID, userID).First(&rating).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ratingPkg.ErrNotFound
		}

		r.logger.Error("Database error finding rating for movie " + movieID.String() + ": " + err.Error())
		return nil, fmt.Errorf("database error: %w", err)
	}

	return &rating, nil
}

// scanAverage computes the mean over all current ratings for the movie
// inside the caller's transaction. Zero when no ratings remain.
func (r *gormRatingRepository) scanAverage(tx *gorm.DB, movieID uuid.UUID, out *float64) error {
	err := tx.Model(&ratingPkg.Rating{}).
		Select("COALESCE(AVG(value), 0)").
		Where("movie_id = ?", movieID).
		Scan(out).Error
	if err != nil {
		return fmt.Errorf("failed to compute average rating: %w", err)
	}
	return nil
}
