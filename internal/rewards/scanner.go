package rewards

import (
	"context"
	"sync"

	"github.com/doctornein/dynasty-tokens/internal/model"
	"github.com/rs/zerolog"
)

// scanGroupSize bounds simultaneous outbound provider requests. Groups run
// strictly one after another; this is a throttle, not a correctness
// dependency.
const scanGroupSize = 10

// GameLogFetcher is the minimal contract the scanner needs from the
// provider layer. I keep it local so tests can fake it without touching
// HTTP at all.
type GameLogFetcher interface {
	FetchGameLogs(ctx context.Context, providerID string) ([]model.GameLogEntry, error)
}

// Scanner drives the reward detector across many players with bounded
// fan-out and per-player failure isolation.
type Scanner struct {
	fetcher  GameLogFetcher
	detector *Detector
	log      zerolog.Logger
}

func NewScanner(fetcher GameLogFetcher, detector *Detector, logger zerolog.Logger) *Scanner {
	l := logger.With().Str("module", "rewards").Str("component", "scanner").Logger()
	return &Scanner{fetcher: fetcher, detector: detector, log: l}
}

// Scan fetches game logs and runs detection for every player, ten at a
// time. A single player's fetch failure contributes zero rewards and never
// aborts the group or subsequent groups. For fixed inputs the returned set
// is deterministic; only enumeration order within a group may vary with
// goroutine completion, so callers must not rely on order.
func (s *Scanner) Scan(ctx context.Context, players []model.OwnedCardInfo, existingIDs map[string]struct{}) []model.PerformanceReward {
	all := make([]model.PerformanceReward, 0)

	for start := 0; start < len(players); start += scanGroupSize {
		end := start + scanGroupSize
		if end > len(players) {
			end = len(players)
		}
		group := players[start:end]

		var (
			mu      sync.Mutex
			wg      sync.WaitGroup
			batched []model.PerformanceReward
		)
		for _, player := range group {
			wg.Add(1)
			go func(p model.OwnedCardInfo) {
				defer wg.Done()
				games, err := s.fetcher.FetchGameLogs(ctx, p.ProviderID)
				if err != nil {
					// Isolated: this player simply yields nothing this scan.
					s.log.Warn().Err(err).Str("provider_id", p.ProviderID).Int64("player_id", p.PlayerID).Msg("game log fetch failed, skipping player")
					return
				}
				found := s.detector.DetectNewRewards(p, games, existingIDs)
				if len(found) == 0 {
					return
				}
				mu.Lock()
				batched = append(batched, found...)
				mu.Unlock()
			}(player)
		}
		wg.Wait()
		all = append(all, batched...)
	}

	s.log.Info().Int("players", len(players)).Int("rewards", len(all)).Msg("reward scan complete")
	return all
}
