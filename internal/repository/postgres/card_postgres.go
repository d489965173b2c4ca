package postgres

import (
	"context"

	"github.com/doctornein/dynasty-tokens/internal/model"
	"github.com/doctornein/dynasty-tokens/internal/repository"
	"github.com/jackc/pgx/v5/pgxpool"
)

type cardRepository struct{ pool *pgxpool.Pool }

func NewCardRepository(pool *pgxpool.Pool) repository.CardRepository {
	return &cardRepository{pool: pool}
}

// ListOwnedCards joins the player pool with owned card instances and groups
// the result per player. Ordering by player id keeps the scanner's group
// partitioning stable between runs.
func (r *cardRepository) ListOwnedCards(ctx context.Context) ([]model.OwnedCardInfo, error) {
	if err := ensurePool(r.pool); err != nil {
		return nil, err
	}
	exec := getQ(ctx, r.pool)
	rows, err := exec.Query(ctx,
		`SELECT p.id, p.first_name, p.last_name, p.team_abbr, p.provider_id, c.instance_id, c.acquired_at
		 FROM players p
		 JOIN card_instances c ON c.player_id = p.id
		 ORDER BY p.id, c.acquired_at`)
	if err != nil {
		return nil, repository.MapPgError(err)
	}
	defer rows.Close()

	out := make([]model.OwnedCardInfo, 0)
	index := make(map[int64]int)
	for rows.Next() {
		var (
			info model.OwnedCardInfo
			inst model.CardInstance
		)
		if err := rows.Scan(&info.PlayerID, &info.FirstName, &info.LastName, &info.TeamAbbr, &info.ProviderID, &inst.InstanceID, &inst.AcquiredAt); err != nil {
			return nil, repository.MapPgError(err)
		}
		if i, ok := index[info.PlayerID]; ok {
			out[i].Instances = append(out[i].Instances, inst)
			continue
		}
		info.Instances = []model.CardInstance{inst}
		index[info.PlayerID] = len(out)
		out = append(out, info)
	}
	return out, rows.Err()
}

func (r *cardRepository) IssueCard(ctx context.Context, playerID int64, instance model.CardInstance, rarity model.Rarity, rating int) error {
	if err := ensurePool(r.pool); err != nil {
		return err
	}
	exec := getQ(ctx, r.pool)
	_, err := exec.Exec(ctx,
		`INSERT INTO card_instances (instance_id, player_id, acquired_at, rarity, rating)
		 VALUES ($1, $2, $3, $4, $5)`,
		instance.InstanceID, playerID, instance.AcquiredAt, rarity, rating,
	)
	return repository.MapPgError(err)
}

var _ repository.CardRepository = (*cardRepository)(nil)
