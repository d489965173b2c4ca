// Package service holds business logic orchestration across repositories,
// the provider adapter and the pure engines. Kept intentionally lean: only
// use-case coordination, validation and domain error shaping.
package service

import (
	"context"
	"errors"

	"github.com/doctornein/dynasty-tokens/internal/model"
	"github.com/doctornein/dynasty-tokens/internal/repository"
)

// ErrInvalidInput is the marker error for aggregated validation failures (maps to HTTP 400).
// Field-level details are retrieved via FieldErrors(err).
var ErrInvalidInput = errors.New("invalid input")

// FieldError describes a single invalid field in a client request.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// invalidInputError aggregates multiple FieldError instances and unwraps to ErrInvalidInput.
type invalidInputError struct {
	fields []FieldError
}

func (e *invalidInputError) Error() string        { return ErrInvalidInput.Error() }
func (e *invalidInputError) Unwrap() error        { return ErrInvalidInput }
func (e *invalidInputError) Fields() []FieldError { return e.fields }

// NewInvalidInputError builds an aggregated validation error if any field errors are present.
func NewInvalidInputError(fe []FieldError) error {
	if len(fe) == 0 { // protective case
		return nil
	}
	return &invalidInputError{fields: fe}
}

// FieldErrors extracts field errors from an aggregated validation error.
func FieldErrors(err error) []FieldError {
	if err == nil {
		return nil
	}
	type feIface interface{ Fields() []FieldError }
	if v, ok := err.(feIface); ok && errors.Is(err, ErrInvalidInput) {
		return v.Fields()
	}
	return nil
}

// StatsProvider is the external sports-data boundary as the services see
// it: normalized game logs and team schedules, nothing else.
type StatsProvider interface {
	FetchGameLogs(ctx context.Context, providerID string) ([]model.GameLogEntry, error)
	FetchTeamSchedule(ctx context.Context, teamAbbr string) ([]model.TeamGameDay, error)
}

// ScanSummary reports one batch scan run.
type ScanSummary struct {
	PlayersScanned int                       `json:"players_scanned"`
	NewRewards     int                       `json:"new_rewards"`
	Rewards        []model.PerformanceReward `json:"rewards"`
}

// RewardService defines reward-oriented use cases: running the batch scan
// and the claim/redeem lifecycle owned by the storage layer.
type RewardService interface {
	RunScan(ctx context.Context) (ScanSummary, error)
	ListPlayerRewards(ctx context.Context, playerID int64, page repository.Page) (repository.PageResult[model.PerformanceReward], error)
	ClaimReward(ctx context.Context, id string) (model.PerformanceReward, error)
	RedeemReward(ctx context.Context, id string) (model.PerformanceReward, error)
}

// ArenaScore is the settlement-facing result for one player over a window.
type ArenaScore struct {
	ProviderID string  `json:"provider_id"`
	TeamAbbr   string  `json:"team_abbr"`
	StartDate  string  `json:"start_date"`
	EndDate    string  `json:"end_date"`
	Score      float64 `json:"score"`
	DidNotPlay bool    `json:"did_not_play"`
}

// ArenaService defines arena-oriented use cases.
type ArenaService interface {
	ScoreWindow(ctx context.Context, providerID, teamAbbr, startDate, endDate string, categories []model.ArenaStatCategory) (ArenaScore, error)
}

// CohortEntry is one player's season averages fed into a rating pass.
type CohortEntry struct {
	PlayerID int64             `json:"player_id"`
	Stats    model.PlayerStats `json:"stats"`
}

// RatingService defines the rating/rarity use case over a full cohort.
type RatingService interface {
	RateCohort(ctx context.Context, cohort []CohortEntry) ([]model.PlayerRating, error)
}

// CardService mints card instances at issuance time.
type CardService interface {
	IssueCard(ctx context.Context, playerID int64, rarity model.Rarity, rating int) (model.CardInstance, error)
}
