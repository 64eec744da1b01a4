package repository

import (
	"fmt"

	rankingPkg "github.com/dustin/movies-backend/internal/ranking"
	"github.com/dustin/movies-backend/pkg/logger"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// gormRankingRepository implements the ranking.Repository interface.
// Reads are a plain table scan of the rank tuple columns; each rank write
// is its own atomic UPDATE so the batch never holds a long transaction.
type gormRankingRepository struct {
	db     *gorm.DB
	logger *logger.Logger
}

// NewGORMRankingRepository creates a new GORM-based ranking repository
func NewGORMRankingRepository(db *gorm.DB, log *logger.Logger) rankingPkg.Repository {
	return &gormRankingRepository{
		db:     db,
		logger: log.WithComponent("gorm-ranking-repository"),
	}
}

func (r *gormRankingRepository) FindAllForRanking() ([]*rankingPkg.RankedMovie, error) {
	var movies []*rankingPkg.RankedMovie

	err := r.db.Table("movies").
		Select("id, review_count, average_rating, created_at, rank").
		Scan(&movies).Error

	if err != nil {
		r.logger.Error("Database error loading movies for ranking: " + err.Error())
		return nil, fmt.Errorf("database error: %w", err)
	}

	r.logger.Info("Loaded " + fmt.Sprintf("%d", len(movies)) + " movies for ranking")

	return movies, nil
}

func (r *gormRankingRepository) UpdateRank(movieID uuid.UUID, rank int) error {
	err := r.db.Table("movies").
		Where("id = ?", movieID).
		Update("rank", rank).Error

	if err != nil {
		r.logger.Error("Failed to update rank for movie " + movieID.String() + ": " + err.Error())
		return fmt.Errorf("failed to update rank: %w", err)
	}

	return nil
}
