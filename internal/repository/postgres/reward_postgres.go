package postgres

import (
	"context"
	"errors"

	"github.com/doctornein/dynasty-tokens/internal/model"
	"github.com/doctornein/dynasty-tokens/internal/repository"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type rewardRepository struct{ pool *pgxpool.Pool }

func NewRewardRepository(pool *pgxpool.Pool) repository.RewardRepository {
	return &rewardRepository{pool: pool}
}

const rewardColumns = `id, trigger_type, player_id, player_name, provider_id, game_date, opponent, stat_line, cards_owned, base_value, total_value, status, detected_at, claimed_at, redeemed_at`

func scanReward(row pgx.Row) (model.PerformanceReward, error) {
	var r model.PerformanceReward
	err := row.Scan(&r.ID, &r.TriggerType, &r.PlayerID, &r.PlayerName, &r.ProviderID, &r.GameDate, &r.Opponent, &r.StatLine, &r.CardsOwned, &r.BaseValue, &r.TotalValue, &r.Status, &r.DetectedAt, &r.ClaimedAt, &r.RedeemedAt)
	return r, err
}

func (r *rewardRepository) ExistingIDs(ctx context.Context) (map[string]struct{}, error) {
	if err := ensurePool(r.pool); err != nil {
		return nil, err
	}
	exec := getQ(ctx, r.pool)
	rows, err := exec.Query(ctx, `SELECT id FROM performance_rewards`)
	if err != nil {
		return nil, repository.MapPgError(err)
	}
	defer rows.Close()
	ids := make(map[string]struct{})
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, repository.MapPgError(err)
		}
		ids[id] = struct{}{}
	}
	return ids, rows.Err()
}

// InsertRewards persists newly detected rewards. ON CONFLICT DO NOTHING
// keeps re-insertion of an already-known deterministic id a harmless no-op,
// which matches the engine's idempotency contract.
func (r *rewardRepository) InsertRewards(ctx context.Context, rs []model.PerformanceReward) error {
	if err := ensurePool(r.pool); err != nil {
		return err
	}
	exec := getQ(ctx, r.pool)
	for _, reward := range rs {
		_, err := exec.Exec(ctx,
			`INSERT INTO performance_rewards (`+rewardColumns+`)
			 VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15)
			 ON CONFLICT (id) DO NOTHING`,
			reward.ID, reward.TriggerType, reward.PlayerID, reward.PlayerName, reward.ProviderID,
			reward.GameDate, reward.Opponent, reward.StatLine, reward.CardsOwned, reward.BaseValue,
			reward.TotalValue, reward.Status, reward.DetectedAt, reward.ClaimedAt, reward.RedeemedAt,
		)
		if err != nil {
			return repository.MapPgError(err)
		}
	}
	return nil
}

func (r *rewardRepository) ListByPlayer(ctx context.Context, playerID int64, p repository.Page) (repository.PageResult[model.PerformanceReward], error) {
	var res repository.PageResult[model.PerformanceReward]
	if err := ensurePool(r.pool); err != nil {
		return res, err
	}
	limit, offset := sanitizeLimitOffset(p.Limit, p.Offset)
	exec := getQ(ctx, r.pool)

	if err := exec.QueryRow(ctx,
		`SELECT COUNT(*) FROM performance_rewards WHERE player_id = $1`, playerID,
	).Scan(&res.Total); err != nil {
		return res, repository.MapPgError(err)
	}

	rows, err := exec.Query(ctx,
		`SELECT `+rewardColumns+` FROM performance_rewards
		 WHERE player_id = $1 ORDER BY detected_at DESC, id LIMIT $2 OFFSET $3`,
		playerID, limit, offset,
	)
	if err != nil {
		return res, repository.MapPgError(err)
	}
	defer rows.Close()
	res.Items = make([]model.PerformanceReward, 0, limit)
	for rows.Next() {
		it, err := scanReward(rows)
		if err != nil {
			return res, repository.MapPgError(err)
		}
		res.Items = append(res.Items, it)
	}
	return res, rows.Err()
}

func (r *rewardRepository) GetByID(ctx context.Context, id string) (model.PerformanceReward, error) {
	if err := ensurePool(r.pool); err != nil {
		return model.PerformanceReward{}, err
	}
	exec := getQ(ctx, r.pool)
	out, err := scanReward(exec.QueryRow(ctx,
		`SELECT `+rewardColumns+` FROM performance_rewards WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.PerformanceReward{}, repository.ErrNotFound
		}
		return model.PerformanceReward{}, repository.MapPgError(err)
	}
	return out, nil
}

func (r *rewardRepository) Claim(ctx context.Context, id string) (model.PerformanceReward, error) {
	return r.transition(ctx, id, model.RewardUnclaimed,
		`UPDATE performance_rewards SET status = 'claimed', claimed_at = NOW()
		 WHERE id = $1 AND status = 'unclaimed'
		 RETURNING `+rewardColumns)
}

func (r *rewardRepository) Redeem(ctx context.Context, id string) (model.PerformanceReward, error) {
	return r.transition(ctx, id, model.RewardClaimed,
		`UPDATE performance_rewards SET status = 'redeemed', redeemed_at = NOW()
		 WHERE id = $1 AND status = 'claimed'
		 RETURNING `+rewardColumns)
}

// transition runs a guarded status update. When the UPDATE matches no row
// the reward is either absent (ErrNotFound) or in the wrong state
// (ErrConflict); one extra lookup tells the two apart.
func (r *rewardRepository) transition(ctx context.Context, id string, _ model.RewardStatus, sql string) (model.PerformanceReward, error) {
	if err := ensurePool(r.pool); err != nil {
		return model.PerformanceReward{}, err
	}
	exec := getQ(ctx, r.pool)
	out, err := scanReward(exec.QueryRow(ctx, sql, id))
	if err == nil {
		return out, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return model.PerformanceReward{}, repository.MapPgError(err)
	}
	if _, getErr := r.GetByID(ctx, id); getErr != nil {
		return model.PerformanceReward{}, getErr
	}
	return model.PerformanceReward{}, repository.ErrConflict
}

var _ repository.RewardRepository = (*rewardRepository)(nil)
