package repository

import (
	"context"

	"github.com/doctornein/dynasty-tokens/internal/model"
)

// Pinger represents a minimal readiness probe capability.
// I use it to decouple health checks from storage implementation details.
type Pinger interface {
	Ping(ctx context.Context) error
}

// TxFunc is the unit of work executed within a transaction boundary.
// I pass context through so nested calls can honor cancellations and deadlines.
type TxFunc func(ctx context.Context) error

// TxManager abstracts transactional execution for repositories that support it.
// I prefer a single entry point to keep transaction boundaries explicit and testable.
type TxManager interface {
	WithinTx(ctx context.Context, fn TxFunc) error
}

// RewardRepository declares persistence for performance rewards. The
// detection engine never writes; it hands new rewards to the caller, which
// persists them here. ExistingIDs feeds the next scan's dedup set. The
// claim/redeem transitions also live here, never inside the engine.
type RewardRepository interface {
	// ExistingIDs returns the set of all known reward ids.
	ExistingIDs(ctx context.Context) (map[string]struct{}, error)
	// InsertRewards stores newly detected rewards. A row whose id already
	// exists is skipped silently; the deterministic id scheme makes
	// re-insertion a no-op rather than an error.
	InsertRewards(ctx context.Context, rs []model.PerformanceReward) error
	ListByPlayer(ctx context.Context, playerID int64, p Page) (PageResult[model.PerformanceReward], error)
	GetByID(ctx context.Context, id string) (model.PerformanceReward, error)
	// Claim transitions unclaimed -> claimed; ErrConflict on any other state.
	Claim(ctx context.Context, id string) (model.PerformanceReward, error)
	// Redeem transitions claimed -> redeemed; ErrConflict on any other state.
	Redeem(ctx context.Context, id string) (model.PerformanceReward, error)
}

// CardRepository declares persistence for the card pool and ownership.
type CardRepository interface {
	// ListOwnedCards returns ownership context for every player with at
	// least one owned card instance, grouped per player.
	ListOwnedCards(ctx context.Context) ([]model.OwnedCardInfo, error)
	// IssueCard records a freshly minted card instance for a player.
	IssueCard(ctx context.Context, playerID int64, instance model.CardInstance, rarity model.Rarity, rating int) error
}
