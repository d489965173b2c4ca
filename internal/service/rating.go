package service

import (
	"context"
	"sort"

	"github.com/doctornein/dynasty-tokens/internal/model"
	"github.com/doctornein/dynasty-tokens/internal/rating"
	"github.com/rs/zerolog"
)

type ratingService struct {
	log zerolog.Logger
}

func NewRatingService(logger zerolog.Logger) RatingService {
	l := logger.With().Str("module", "service").Str("component", "rating").Logger()
	return &ratingService{log: l}
}

// RateCohort rates every entry, sorts the cohort by rating descending and
// assigns percentile rarities. Ties are broken by original input index so
// repeated runs over identical input always produce the same assignment;
// the rating engine itself never sorts.
func (s *ratingService) RateCohort(_ context.Context, cohort []CohortEntry) ([]model.PlayerRating, error) {
	if len(cohort) == 0 {
		return nil, NewInvalidInputError([]FieldError{{Field: "cohort", Message: "must not be empty"}})
	}

	type indexed struct {
		model.PlayerRating
		idx int
	}
	rated := make([]indexed, len(cohort))
	for i, entry := range cohort {
		raw := rating.RawScore(entry.Stats)
		rated[i] = indexed{
			PlayerRating: model.PlayerRating{
				PlayerID: entry.PlayerID,
				RawScore: raw,
				Rating:   rating.RawToRating(raw),
			},
			idx: i,
		}
	}

	sort.SliceStable(rated, func(i, j int) bool {
		if rated[i].Rating != rated[j].Rating {
			return rated[i].Rating > rated[j].Rating
		}
		return rated[i].idx < rated[j].idx
	})

	rarities := rating.AssignRarities(len(rated))
	out := make([]model.PlayerRating, len(rated))
	for i, r := range rated {
		r.PlayerRating.Rarity = rarities[i]
		out[i] = r.PlayerRating
	}

	s.log.Info().Int("cohort", len(out)).Msg("cohort rated")
	return out, nil
}
