// Package arena holds the pure scoring primitives for head-to-head arena
// challenges: stat aggregation over a date window and "did not play"
// inference. The settlement process that consumes them lives behind the
// HTTP boundary; nothing here blocks or mutates.
package arena

import "github.com/doctornein/dynasty-tokens/internal/model"

// Score sums the requested stat categories over every game log whose date
// falls in the inclusive [startDate, endDate] window. Dates are ISO strings
// so plain string comparison orders them correctly. Empty input, an empty
// category set or a non-overlapping window all yield 0; an unknown category
// contributes 0 rather than erroring.
func Score(gameLogs []model.GameLogEntry, startDate, endDate string, categories []model.ArenaStatCategory) float64 {
	total := 0.0
	for _, g := range gameLogs {
		if g.Date < startDate || g.Date > endDate {
			continue
		}
		for _, cat := range categories {
			total += categoryValue(g, cat)
		}
	}
	return total
}

// HasDNP reports whether the team played at least one game in the window
// that the player has no individual log for. Score deliberately tolerates
// missing dates as non-contributing; this check is the one that surfaces
// them, so a player who sat out is flagged instead of silently scoring zero.
func HasDNP(teamGameDates, playerGameDates []string, startDate, endDate string) bool {
	played := make(map[string]struct{}, len(playerGameDates))
	for _, d := range playerGameDates {
		played[d] = struct{}{}
	}
	for _, d := range teamGameDates {
		if d < startDate || d > endDate {
			continue
		}
		if _, ok := played[d]; !ok {
			return true
		}
	}
	return false
}

func categoryValue(g model.GameLogEntry, cat model.ArenaStatCategory) float64 {
	switch cat {
	case model.CategoryPoints:
		return float64(g.Pts)
	case model.CategoryRebounds:
		return float64(g.Reb)
	case model.CategoryAssists:
		return float64(g.Ast)
	case model.CategorySteals:
		return float64(g.Stl)
	case model.CategoryBlocks:
		return float64(g.Blk)
	default:
		return 0
	}
}
