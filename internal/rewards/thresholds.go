// Package rewards implements performance-triggered reward detection over
// normalized game logs, plus the batch scanner that drives detection across
// the whole card pool.
package rewards

import "github.com/doctornein/dynasty-tokens/internal/model"

// Threshold is one airdrop rule: a named predicate over a game log entry
// and the base value it pays when satisfied. Rules are independent; a single
// game may satisfy zero, one or several of them, and each satisfied rule
// yields its own reward.
type Threshold struct {
	Type      string
	BaseValue float64
	Detect    func(model.GameLogEntry) bool
}

// DefaultThresholds returns the production rule set in evaluation order.
// Adding a rule here is the whole change; the detection engine evaluates
// the set uniformly and never branches per rule.
func DefaultThresholds() []Threshold {
	return []Threshold{
		{
			Type:      "40_points",
			BaseValue: 50,
			Detect:    func(g model.GameLogEntry) bool { return g.Pts >= 40 },
		},
		{
			Type:      "50_points",
			BaseValue: 120,
			Detect:    func(g model.GameLogEntry) bool { return g.Pts >= 50 },
		},
		{
			Type:      "triple_double",
			BaseValue: 150,
			Detect:    isTripleDouble,
		},
		{
			Type:      "20_rebounds",
			BaseValue: 60,
			Detect:    func(g model.GameLogEntry) bool { return g.Reb >= 20 },
		},
		{
			Type:      "15_assists",
			BaseValue: 60,
			Detect:    func(g model.GameLogEntry) bool { return g.Ast >= 15 },
		},
		{
			Type:      "5_steals",
			BaseValue: 75,
			Detect:    func(g model.GameLogEntry) bool { return g.Stl >= 5 },
		},
		{
			Type:      "5_blocks",
			BaseValue: 75,
			Detect:    func(g model.GameLogEntry) bool { return g.Blk >= 5 },
		},
	}
}

// isTripleDouble reports double digits in at least three of the five
// countable categories.
func isTripleDouble(g model.GameLogEntry) bool {
	doubles := 0
	for _, v := range [5]int{g.Pts, g.Reb, g.Ast, g.Stl, g.Blk} {
		if v >= 10 {
			doubles++
		}
	}
	return doubles >= 3
}
