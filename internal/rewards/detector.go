package rewards

import (
	"fmt"
	"time"

	"github.com/doctornein/dynasty-tokens/internal/model"
	"github.com/rs/zerolog"
)

const gameDateLayout = "2006-01-02"

// RewardID derives the deterministic identity of a reward from the provider
// player id, the game date and the threshold type. Two detection runs over
// the same inputs always produce the same id; it is the sole dedup key, so
// the caller owns persistence of known ids and the engine stays stateless.
func RewardID(providerID, gameDate, thresholdType string) string {
	return fmt.Sprintf("%s_%s_%s", providerID, gameDate, thresholdType)
}

// Detector evaluates the threshold rule set against one player's game logs.
type Detector struct {
	rules []Threshold
	now   func() time.Time
	log   zerolog.Logger
}

// NewDetector wires a detector with the given rule set. now is injectable
// so tests can pin DetectedAt; pass nil for the wall clock.
func NewDetector(rules []Threshold, now func() time.Time, logger zerolog.Logger) *Detector {
	if now == nil {
		now = time.Now
	}
	l := logger.With().Str("module", "rewards").Str("component", "detector").Logger()
	return &Detector{rules: rules, now: now, log: l}
}

// DetectNewRewards returns the set of rewards triggered by games that are
// not yet present in existingIDs. Output is a set keyed by reward id; input
// order is irrelevant and duplicate provider rows collapse naturally through
// the id scheme. A malformed game row is skipped, never fatal: the rest of
// the player's games still scan.
func (d *Detector) DetectNewRewards(player model.OwnedCardInfo, games []model.GameLogEntry, existingIDs map[string]struct{}) []model.PerformanceReward {
	out := make([]model.PerformanceReward, 0)
	seen := make(map[string]struct{}, len(games))
	name := fmt.Sprintf("%s %s", player.FirstName, player.LastName)

	for _, game := range games {
		gameStart, err := time.Parse(gameDateLayout, game.Date)
		if err != nil {
			d.log.Warn().Str("provider_id", player.ProviderID).Str("date", game.Date).Msg("skipping game with unparseable date")
			continue
		}

		// Ownership must precede the game, not follow it; buying a card
		// after a big night earns nothing retroactively.
		owned := cardsOwnedBefore(player.Instances, gameStart)
		if owned == 0 {
			continue
		}

		for _, rule := range d.rules {
			if !rule.Detect(game) {
				continue
			}
			id := RewardID(player.ProviderID, game.Date, rule.Type)
			if _, ok := existingIDs[id]; ok {
				continue // already detected on a previous scan
			}
			if _, ok := seen[id]; ok {
				continue // duplicate provider row within this batch
			}
			seen[id] = struct{}{}

			out = append(out, model.PerformanceReward{
				ID:          id,
				TriggerType: rule.Type,
				PlayerID:    player.PlayerID,
				PlayerName:  name,
				ProviderID:  player.ProviderID,
				GameDate:    game.Date,
				Opponent:    game.Opponent,
				StatLine:    renderStatLine(game),
				CardsOwned:  owned,
				BaseValue:   rule.BaseValue,
				TotalValue:  rule.BaseValue * float64(owned),
				Status:      model.RewardUnclaimed,
				DetectedAt:  d.now().UTC(),
			})
		}
	}
	return out
}

// cardsOwnedBefore counts card instances acquired strictly before the game
// started. Instances is unordered; each copy counts independently.
func cardsOwnedBefore(instances []model.CardInstance, gameStart time.Time) int {
	owned := 0
	for _, inst := range instances {
		if inst.AcquiredAt.Before(gameStart) {
			owned++
		}
	}
	return owned
}

// renderStatLine builds the human-readable summary in a fixed, locale-free
// order: PTS / REB / AST always, STL and BLK only when non-zero.
func renderStatLine(g model.GameLogEntry) string {
	line := fmt.Sprintf("%d PTS / %d REB / %d AST", g.Pts, g.Reb, g.Ast)
	if g.Stl > 0 {
		line += fmt.Sprintf(" / %d STL", g.Stl)
	}
	if g.Blk > 0 {
		line += fmt.Sprintf(" / %d BLK", g.Blk)
	}
	return line
}
