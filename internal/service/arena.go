package service

import (
	"context"
	"strings"

	"github.com/doctornein/dynasty-tokens/internal/arena"
	"github.com/doctornein/dynasty-tokens/internal/model"
	"github.com/rs/zerolog"
)

type arenaService struct {
	provider StatsProvider
	log      zerolog.Logger
}

func NewArenaService(provider StatsProvider, logger zerolog.Logger) ArenaService {
	l := logger.With().Str("module", "service").Str("component", "arena").Logger()
	return &arenaService{provider: provider, log: l}
}

// ScoreWindow computes one player's arena score over an inclusive date
// window together with the DNP flag. A failed game-log fetch degrades to an
// empty log (zero score, dashboards stay populated); a failed schedule
// lookup is a hard error because DNP cannot be decided without it.
func (s *arenaService) ScoreWindow(ctx context.Context, providerID, teamAbbr, startDate, endDate string, categories []model.ArenaStatCategory) (ArenaScore, error) {
	var ferrs []FieldError
	if strings.TrimSpace(providerID) == "" {
		ferrs = append(ferrs, FieldError{Field: "provider_id", Message: "must not be empty"})
	}
	if strings.TrimSpace(teamAbbr) == "" {
		ferrs = append(ferrs, FieldError{Field: "team_abbr", Message: "must not be empty"})
	}
	if !isValidDate(startDate) {
		ferrs = append(ferrs, FieldError{Field: "start_date", Message: "must be YYYY-MM-DD"})
	}
	if !isValidDate(endDate) {
		ferrs = append(ferrs, FieldError{Field: "end_date", Message: "must be YYYY-MM-DD"})
	}
	if isValidDate(startDate) && isValidDate(endDate) && startDate > endDate {
		ferrs = append(ferrs, FieldError{Field: "end_date", Message: "must not precede start_date"})
	}
	if len(categories) == 0 {
		ferrs = append(ferrs, FieldError{Field: "categories", Message: "must not be empty"})
	}
	for _, cat := range categories {
		if !isValidCategory(cat) {
			ferrs = append(ferrs, FieldError{Field: "categories", Message: "unknown category: " + string(cat)})
			break
		}
	}
	if err := NewInvalidInputError(ferrs); err != nil {
		return ArenaScore{}, err
	}

	schedule, err := s.provider.FetchTeamSchedule(ctx, teamAbbr)
	if err != nil {
		s.log.Error().Err(err).Str("team_abbr", teamAbbr).Msg("team schedule fetch failed")
		return ArenaScore{}, err
	}

	gameLogs, err := s.provider.FetchGameLogs(ctx, providerID)
	if err != nil {
		s.log.Warn().Err(err).Str("provider_id", providerID).Msg("game log fetch failed, scoring empty log")
		gameLogs = nil
	}

	playerDates := make([]string, 0, len(gameLogs))
	for _, g := range gameLogs {
		playerDates = append(playerDates, g.Date)
	}
	teamDates := completedDates(schedule)

	return ArenaScore{
		ProviderID: providerID,
		TeamAbbr:   teamAbbr,
		StartDate:  startDate,
		EndDate:    endDate,
		Score:      arena.Score(gameLogs, startDate, endDate, categories),
		DidNotPlay: arena.HasDNP(teamDates, playerDates, startDate, endDate),
	}, nil
}

// completedDates keeps only game days the team actually played; an upcoming
// game can't be a DNP.
func completedDates(schedule []model.TeamGameDay) []string {
	dates := make([]string, 0, len(schedule))
	for _, day := range schedule {
		switch strings.ToLower(day.Status) {
		case "final", "completed":
			dates = append(dates, day.Date)
		}
	}
	return dates
}
