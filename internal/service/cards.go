package service

import (
	"context"
	"time"

	"github.com/doctornein/dynasty-tokens/internal/model"
	"github.com/doctornein/dynasty-tokens/internal/repository"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

type cardService struct {
	cards repository.CardRepository
	now   func() time.Time
	log   zerolog.Logger
}

func NewCardService(cards repository.CardRepository, logger zerolog.Logger) CardService {
	l := logger.With().Str("module", "service").Str("component", "cards").Logger()
	return &cardService{cards: cards, now: time.Now, log: l}
}

// IssueCard mints a new card instance with a fresh uuid and the rarity and
// rating labels produced by the rating pass. AcquiredAt is stamped here:
// the reward engine's ownership-before-game rule hinges on it.
func (s *cardService) IssueCard(ctx context.Context, playerID int64, rarity model.Rarity, ratingValue int) (model.CardInstance, error) {
	var ferrs []FieldError
	if playerID <= 0 {
		ferrs = append(ferrs, FieldError{Field: "player_id", Message: "must be > 0"})
	}
	switch rarity {
	case model.RarityCommon, model.RarityRare, model.RarityEpic, model.RarityLegendary:
	default:
		ferrs = append(ferrs, FieldError{Field: "rarity", Message: "unknown rarity"})
	}
	if ratingValue < 65 || ratingValue > 99 {
		ferrs = append(ferrs, FieldError{Field: "rating", Message: "must be between 65 and 99"})
	}
	if err := NewInvalidInputError(ferrs); err != nil {
		return model.CardInstance{}, err
	}

	instance := model.CardInstance{
		InstanceID: uuid.NewString(),
		AcquiredAt: s.now().UTC(),
	}
	if err := s.cards.IssueCard(ctx, playerID, instance, rarity, ratingValue); err != nil {
		s.log.Error().Err(err).Int64("player_id", playerID).Msg("issue card failed")
		return model.CardInstance{}, err
	}
	s.log.Info().Int64("player_id", playerID).Str("instance_id", instance.InstanceID).Str("rarity", string(rarity)).Msg("card issued")
	return instance, nil
}
