package repository

import (
	"errors"
	"fmt"
	"time"

	reviewPkg "github.com/dustin/movies-backend/internal/review"
	"github.com/dustin/movies-backend/pkg/logger"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// gormReviewRepository implements the review.Repository interface. Row
// writes and review-count mutations are paired in one transaction so the
// denormalized count never drifts from the actual row count.
type gormReviewRepository struct {
	db     *gorm.DB
	logger *logger.Logger
}

// NewGORMReviewRepository creates a new GORM-based review repository
func NewGORMReviewRepository(db *gorm.DB, log *logger.Logger) reviewPkg.Repository {
	return &gormReviewRepository{
		db:     db,
		logger: log.WithComponent("gorm-review-repository"),
	}
}

// CreateWithCount inserts the review and increments the movie's review
// count in one transaction.
func (r *gormReviewRepository) CreateWithCount(review *reviewPkg.Review) error {
	err := r.db.Transaction(func(tx *gorm.DB) error {
		var movie reviewPkg.Movie
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&movie, "id = ?", review.MovieID).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return reviewPkg.ErrMovieNotFound
			}
			return fmt.Errorf("database error: %w", err)
		}

		if err := tx.Create(review).Error; err != nil {
			return fmt.Errorf("failed to create review: %w", err)
		}

		err = tx.Model(&reviewPkg.Movie{}).
			Where("id = ?", review.MovieID).
			UpdateColumn("review_count", gorm.Expr("review_count + 1")).Error
		if err != nil {
			return fmt.Errorf("failed to increment review count: %w", err)
		}

		return nil
	})

	if err != nil {
		if !errors.Is(err, reviewPkg.ErrMovieNotFound) {
			r.logger.Error("Review create transaction failed for movie " + review.MovieID.String() + ": " + err.Error())
		}
		return err
	}

	r.logger.Info("Review created: " + review.ID.String() + " for movie " + review.MovieID.String())

	return nil
}

// DeleteWithCount removes the review matched by (id, user) and decrements
// the movie's review count in one transaction. Ownership is part of the
// lookup predicate - a miss is a not-found, whoever owns the row.
func (r *gormReviewRepository) DeleteWithCount(userID, reviewID uuid.UUID) error {
	err := r.db.Transaction(func(tx *gorm.DB) error {
		var review reviewPkg.Review
		err := tx.Where("id = ? AND user_id = ?", reviewID, userID).First(&review).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return reviewPkg.ErrNotFound
			}
			return fmt.Errorf("database error: %w", err)
		}

		var movie reviewPkg.Movie
		err = tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&movie, "id = ?", review.MovieID).Error
		if err != nil {
			return fmt.Errorf("database error: %w", err)
		}

		result := tx.Delete(&reviewPkg.Review{}, "id = ? AND user_id = ?", reviewID, userID)
		if result.Error != nil {
			return fmt.Errorf("failed to delete review: %w", result.Error)
		}
		if result.RowsAffected == 0 {
			return reviewPkg.ErrNotFound
		}

		err = tx.Model(&reviewPkg.Movie{}).
			Where("id = ?", review.MovieID).
			UpdateColumn("review_count", gorm.Expr("review_count - 1")).Error
		if err != nil {
			return fmt.Errorf("failed to decrement review count: %w", err)
		}

		return nil
	})

	if err != nil {
		if !errors.Is(err, reviewPkg.ErrNotFound) {
			r.logger.Error("Review delete transaction failed for review " + reviewID.String() + ": " + err.Error())
		}
		return err
	}

	r.logger.Info("Review deleted: " + reviewID.String())

	return nil
}

// UpdateContent overwrites the review body for the caller's own review.
// No count change is involved, so no transaction is needed.
func (r *gormReviewRepository) UpdateContent(userID, reviewID uuid.UUID, content string) (*reviewPkg.Review, error) {
	result := r.db.Model(&reviewPkg.Review{}).
		Where("id = ? AND user_id = ?", reviewID, userID).
		Updates(map[string]interface{}{
			"content":    content,
			"updated_at": time.Now(),
		})

	if result.Error != nil {
		r.logger.Error("Failed to update review " + reviewID.String() + ": " + result.Error.Error())
		return nil, fmt.Errorf("failed to update review: %w", result.Error)
	}

	if result.RowsAffected == 0 {
		return nil, reviewPkg.ErrNotFound
	}

	var review reviewPkg.Review
	if err := r.db.First(&review, "id = ?", reviewID).Error; err != nil {
		return nil, fmt.Errorf("database error: %w", err)
	}

	return &review, nil
}

func (r *gormReviewRepository) FindByMovie(movieID uuid.UUID, offset, limit int) ([]*reviewPkg.Review, int64, error) {
	var total int64
	err := r.db.Model(&reviewPkg.Review{}).
		Where("movie_id = ?", movieID).
		Count(&total).Error
	if err != nil {
		r.logger.Error("Database error counting reviews for movie " + movieID.String() + ": " + err.Error())
		return nil, 0, fmt.Errorf("database error: %w", err)
	}

	var reviews []*reviewPkg.Review
	err = r.db.Preload("User").
		Where("movie_id = ?", movieID).
		Order("created_at DESC").
		Offset(offset).
		Limit(limit).
		Find(&reviews).Error

	if err != nil {
		r.logger.Error("Database error finding reviews for movie " + movieID.String() + ": " + err.Error())
		return nil, 0, fmt.Errorf("database error: %w", err)
	}

	return reviews, total, nil
}
