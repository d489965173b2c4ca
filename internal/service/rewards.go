package service

import (
	"context"
	"time"

	"github.com/doctornein/dynasty-tokens/internal/model"
	"github.com/doctornein/dynasty-tokens/internal/repository"
	"github.com/doctornein/dynasty-tokens/internal/rewards"
	"github.com/rs/zerolog"
)

type rewardService struct {
	rewards repository.RewardRepository
	cards   repository.CardRepository
	txm     repository.TxManager
	scanner *rewards.Scanner
	log     zerolog.Logger
}

func NewRewardService(rewardRepo repository.RewardRepository, cardRepo repository.CardRepository, txm repository.TxManager, scanner *rewards.Scanner, logger zerolog.Logger) RewardService {
	l := logger.With().Str("module", "service").Str("component", "rewards").Logger()
	return &rewardService{rewards: rewardRepo, cards: cardRepo, txm: txm, scanner: scanner, log: l}
}

// RunScan loads ownership context and the known reward ids, drives the
// batch scanner across the whole pool and persists whatever is new. The
// existing-ids set is read-only for the duration of the scan; persisting
// the result is what prevents re-detection next run.
func (s *rewardService) RunScan(ctx context.Context) (ScanSummary, error) {
	start := time.Now()

	players, err := s.cards.ListOwnedCards(ctx)
	if err != nil {
		s.log.Error().Err(err).Msg("loading owned cards failed")
		return ScanSummary{}, err
	}
	existing, err := s.rewards.ExistingIDs(ctx)
	if err != nil {
		s.log.Error().Err(err).Msg("loading existing reward ids failed")
		return ScanSummary{}, err
	}

	found := s.scanner.Scan(ctx, players, existing)
	if len(found) > 0 {
		// One transaction for the whole batch: either every detected reward
		// lands or none do, so a partial write can't poison the dedup set.
		err := s.txm.WithinTx(ctx, func(txCtx context.Context) error {
			return s.rewards.InsertRewards(txCtx, found)
		})
		if err != nil {
			s.log.Error().Err(err).Int("rewards", len(found)).Msg("persisting detected rewards failed")
			return ScanSummary{}, err
		}
	}

	s.log.Info().
		Dur("took", time.Since(start)).
		Int("players", len(players)).
		Int("new_rewards", len(found)).
		Msg("reward scan finished")

	return ScanSummary{
		PlayersScanned: len(players),
		NewRewards:     len(found),
		Rewards:        found,
	}, nil
}

func (s *rewardService) ListPlayerRewards(ctx context.Context, playerID int64, page repository.Page) (repository.PageResult[model.PerformanceReward], error) {
	if playerID <= 0 {
		return repository.PageResult[model.PerformanceReward]{}, NewInvalidInputError([]FieldError{{Field: "player_id", Message: "must be > 0"}})
	}
	return s.rewards.ListByPlayer(ctx, playerID, normalizePage(page))
}

func (s *rewardService) ClaimReward(ctx context.Context, id string) (model.PerformanceReward, error) {
	if id == "" {
		return model.PerformanceReward{}, NewInvalidInputError([]FieldError{{Field: "id", Message: "must not be empty"}})
	}
	out, err := s.rewards.Claim(ctx, id)
	if err != nil {
		s.log.Debug().Err(err).Str("reward_id", id).Msg("claim failed")
		return model.PerformanceReward{}, err
	}
	s.log.Info().Str("reward_id", id).Msg("reward claimed")
	return out, nil
}

func (s *rewardService) RedeemReward(ctx context.Context, id string) (model.PerformanceReward, error) {
	if id == "" {
		return model.PerformanceReward{}, NewInvalidInputError([]FieldError{{Field: "id", Message: "must not be empty"}})
	}
	out, err := s.rewards.Redeem(ctx, id)
	if err != nil {
		s.log.Debug().Err(err).Str("reward_id", id).Msg("redeem failed")
		return model.PerformanceReward{}, err
	}
	s.log.Info().Str("reward_id", id).Msg("reward redeemed")
	return out, nil
}
