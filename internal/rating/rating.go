// Package rating computes a continuous rating from season averages and
// assigns discrete rarity tiers by percentile rank across a cohort.
package rating

import (
	"math"

	"github.com/doctornein/dynasty-tokens/internal/model"
)

// Fixed policy weights for the raw score. Changing any of these reshapes
// the entire rating distribution and is a breaking data-model change.
const (
	weightPPG    = 2.0
	weightRPG    = 1.2
	weightAPG    = 1.5
	weightSPG    = 3.0
	weightBPG    = 3.0
	weightFgPct  = 0.3
	weightFg3Pct = 0.15
	weightFtPct  = 0.1
	weightMPG    = 0.4
)

// Raw score range and the bounded rating band it maps onto.
const (
	rawMin    = 20.0
	rawMax    = 120.0
	ratingMin = 65
	ratingMax = 99
)

// Percentile bands for rarity assignment, applied top-down over a cohort
// sorted by rating descending.
const (
	legendaryShare = 0.05
	epicShare      = 0.10
	rareShare      = 0.20
)

// RawScore is the fixed linear weighted sum over the nine season-average
// fields.
func RawScore(stats model.PlayerStats) float64 {
	return stats.PPG*weightPPG +
		stats.RPG*weightRPG +
		stats.APG*weightAPG +
		stats.SPG*weightSPG +
		stats.BPG*weightBPG +
		stats.FgPct*weightFgPct +
		stats.Fg3Pct*weightFg3Pct +
		stats.FtPct*weightFtPct +
		stats.MPG*weightMPG
}

// RawToRating clamps raw to [20, 120] and maps it linearly onto [65, 99],
// rounded to the nearest integer. The mapping saturates: anything below 20
// is a 65, anything above 120 is a 99.
func RawToRating(raw float64) int {
	if raw < rawMin {
		raw = rawMin
	}
	if raw > rawMax {
		raw = rawMax
	}
	scaled := (raw - rawMin) / (rawMax - rawMin) * float64(ratingMax-ratingMin)
	return ratingMin + int(math.Round(scaled))
}

// AssignRarities partitions a cohort of size n into contiguous percentile
// bands: top round(0.05n) legendary, next round(0.10n) epic, next
// round(0.20n) rare, remainder common. Each non-common band is floored at 1
// so even a tiny cohort has one member per tier, with the common band
// absorbing any rounding slack.
//
// The input is positional: index 0 is the highest-rated player. Callers
// must supply a stable descending order (ties broken by a deterministic
// secondary key such as original insertion index); this function never
// sorts.
func AssignRarities(n int) []model.Rarity {
	if n <= 0 {
		return nil
	}
	legendary := bandSize(n, legendaryShare)
	epic := bandSize(n, epicShare)
	rare := bandSize(n, rareShare)

	out := make([]model.Rarity, n)
	for i := range out {
		switch {
		case i < legendary:
			out[i] = model.RarityLegendary
		case i < legendary+epic:
			out[i] = model.RarityEpic
		case i < legendary+epic+rare:
			out[i] = model.RarityRare
		default:
			out[i] = model.RarityCommon
		}
	}
	return out
}

func bandSize(n int, share float64) int {
	size := int(math.Round(float64(n) * share))
	if size < 1 {
		size = 1
	}
	return size
}
