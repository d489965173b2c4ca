// Package model contains domain entities and DTOs used across layers.
// I keep it lean and focused on data shapes without behavior.
package model

import "time"

// GameLogEntry is one normalized player-game statistical line as produced
// by the provider adapter. Exactly one entry exists per player per calendar
// date the player appeared in; entries are immutable once produced.
type GameLogEntry struct {
	Date         string  `json:"date"` // ISO calendar date, e.g. 2024-01-05
	Opponent     string  `json:"opponent"`
	OpponentAbbr string  `json:"opponent_abbr"`
	IsHome       bool    `json:"is_home"`
	Min          string  `json:"min"` // raw minutes display, e.g. "34:12"
	Pts          int     `json:"pts"`
	Reb          int     `json:"reb"`
	Ast          int     `json:"ast"`
	Stl          int     `json:"stl"`
	Blk          int     `json:"blk"`
	Turnover     int     `json:"turnover"`
	FgPct        float64 `json:"fg_pct"`
	Fg3Pct       float64 `json:"fg3_pct"`
	Result       string  `json:"result"` // free-text outcome, e.g. "W 112-104"
}

// CardInstance is a single owned copy of a player card. AcquiredAt decides
// whether the copy counts toward a reward (acquisition must precede the game).
type CardInstance struct {
	InstanceID string    `json:"instance_id"`
	AcquiredAt time.Time `json:"acquired_at"`
}

// OwnedCardInfo is a player's ownership context for reward scanning.
// Instances is unordered; a player may hold several copies acquired at
// different times and each counts independently.
type OwnedCardInfo struct {
	PlayerID   int64          `json:"player_id"`
	FirstName  string         `json:"first_name"`
	LastName   string         `json:"last_name"`
	TeamAbbr   string         `json:"team_abbr"`
	ProviderID string         `json:"provider_id"`
	Instances  []CardInstance `json:"instances"`
}

// RewardStatus is the lifecycle state of a performance reward. The detection
// engine only ever creates rewards as unclaimed; claim/redeem transitions
// belong to the storage layer.
type RewardStatus string

const (
	RewardUnclaimed RewardStatus = "unclaimed"
	RewardClaimed   RewardStatus = "claimed"
	RewardRedeemed  RewardStatus = "redeemed"
)

// PerformanceReward is the detection engine's output unit. ID is a pure
// function of (provider id, game date, threshold type) and is the sole
// deduplication key across scans.
type PerformanceReward struct {
	ID          string       `json:"id"`
	TriggerType string       `json:"trigger_type"`
	PlayerID    int64        `json:"player_id"`
	PlayerName  string       `json:"player_name"`
	ProviderID  string       `json:"provider_id"`
	GameDate    string       `json:"game_date"`
	Opponent    string       `json:"opponent"`
	StatLine    string       `json:"stat_line"`
	CardsOwned  int          `json:"cards_owned"`
	BaseValue   float64      `json:"base_value"`
	TotalValue  float64      `json:"total_value"`
	Status      RewardStatus `json:"status"`
	DetectedAt  time.Time    `json:"detected_at"`
	ClaimedAt   *time.Time   `json:"claimed_at,omitempty"`
	RedeemedAt  *time.Time   `json:"redeemed_at,omitempty"`
}

// ArenaStatCategory selects one stat column for arena challenge scoring.
type ArenaStatCategory string

const (
	CategoryPoints   ArenaStatCategory = "pts"
	CategoryRebounds ArenaStatCategory = "reb"
	CategoryAssists  ArenaStatCategory = "ast"
	CategorySteals   ArenaStatCategory = "stl"
	CategoryBlocks   ArenaStatCategory = "blk"
)

// TeamGameDay is one entry of a team's schedule as returned by the
// schedule source; Status distinguishes completed from upcoming games.
type TeamGameDay struct {
	Date   string `json:"date"`
	Status string `json:"status"`
}

// PlayerStats holds season per-game averages. This is a pre-aggregated
// shape consumed only by the rating engine; never conflate it with the
// per-game GameLogEntry.
type PlayerStats struct {
	PPG    float64 `json:"ppg"`
	RPG    float64 `json:"rpg"`
	APG    float64 `json:"apg"`
	SPG    float64 `json:"spg"`
	BPG    float64 `json:"bpg"`
	FgPct  float64 `json:"fg_pct"`
	Fg3Pct float64 `json:"fg3_pct"`
	FtPct  float64 `json:"ft_pct"`
	MPG    float64 `json:"mpg"`
}

// Rarity is the discrete tier assigned by percentile rank within a cohort.
type Rarity string

const (
	RarityCommon    Rarity = "common"
	RarityRare      Rarity = "rare"
	RarityEpic      Rarity = "epic"
	RarityLegendary Rarity = "legendary"
)

// PlayerRating is the rating engine's per-player output at card-issuance
// time: continuous raw score, bounded integer rating and rarity label.
type PlayerRating struct {
	PlayerID int64   `json:"player_id"`
	RawScore float64 `json:"raw_score"`
	Rating   int     `json:"rating"`
	Rarity   Rarity  `json:"rarity"`
}
