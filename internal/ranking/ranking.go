package ranking

import (
	"time"

	"github.com/google/uuid"
)

// RankedMovie carries the fields the rank tuple is computed from plus the
// movie identity. Loaded from the movies table, never written back whole -
// only the rank column is updated.
type RankedMovie struct {
	ID            uuid.UUID
	ReviewCount   int
	AverageRating float64
	CreatedAt     time.Time
	Rank          int
}

// Repository defines the interface for rank data access
type Repository interface {
	FindAllForRanking() ([]*RankedMovie, error)
	UpdateRank(movieID uuid.UUID, rank int) error
}

// Service defines the interface for rank recomputation.
// Ranks are recomputed as a batch at startup and on a schedule; listing
// queries never depend on them being fresh, so staleness between runs is
// documented behavior.
type Service interface {
	RecomputeAllRanks() error
}

// Less orders movies by the rank tuple:
// review count desc, average rating desc, created at desc, id asc.
// The id tie-break makes the order total, so rank assignment is
// deterministic for any fixed data set.
func Less(a, b *RankedMovie) bool {
	if a.ReviewCount != b.ReviewCount {
		return a.ReviewCount > b.ReviewCount
	}
	if a.AverageRating != b.AverageRating {
		return a.AverageRating > b.AverageRating
	}
	if !a.CreatedAt.Equal(b.CreatedAt) {
		return a.CreatedAt.After(b.CreatedAt)
	}
	return a.ID.String() < b.ID.String()
}
