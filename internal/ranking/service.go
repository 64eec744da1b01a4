package ranking

import (
	"fmt"
	"sort"

	"github.com/dustin/movies-backend/pkg/logger"
)

// service implements the Service interface
type service struct {
	repo   Repository
	logger *logger.Logger
}

// NewService creates a new ranking service
func NewService(repo Repository, log *logger.Logger) Service {
	return &service{
		repo:   repo,
		logger: log.WithComponent("ranking-service"),
	}
}

// RecomputeAllRanks loads every movie, sorts by the rank tuple and writes
// 1-based positions back. Each rank write is its own atomic update; the
// batch deliberately does not hold one transaction across the full scan.
func (s *service) RecomputeAllRanks() error {
	s.logger.Info("Recomputing movie ranks")

	movies, err := s.repo.FindAllForRanking()
	if err != nil {
		s.logger.Error("Failed to load movies for ranking: " + err.Error())
		return fmt.Errorf("failed to load movies for ranking: %w", err)
	}

	sort.SliceStable(movies, func(i, j int) bool {
		return Less(movies[i], movies[j])
	})

	updated := 0
	for i, m := range movies {
		rank := i + 1
		if m.Rank == rank {
			continue
		}
		if err := s.repo.UpdateRank(m.ID, rank); err != nil {
			s.logger.Error("Failed to write rank " + fmt.Sprintf("%d", rank) + " for movie " + m.ID.String() + ": " + err.Error())
			return fmt.Errorf("failed to write rank for movie %s: %w", m.ID, err)
		}
		updated++
	}

	s.logger.Info("Rank recomputation complete: " + fmt.Sprintf("%d", len(movies)) + " movies, " + fmt.Sprintf("%d", updated) + " updated")

	return nil
}
