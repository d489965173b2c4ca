// Package contract holds implementation-agnostic test suites for the
// repository interfaces. Any storage backend claiming to implement them can
// run these against a real database to prove the semantics, not just the
// signatures.
package contract

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/doctornein/dynasty-tokens/internal/model"
	"github.com/doctornein/dynasty-tokens/internal/repository"
)

type RewardFactory func(t *testing.T) (repository.RewardRepository, func())

type CardFactory func(t *testing.T) (repo repository.CardRepository, mkPlayer func(ctx context.Context, providerID string) (int64, error), cleanup func())

func sampleReward(id string, playerID int64) model.PerformanceReward {
	return model.PerformanceReward{
		ID:          id,
		TriggerType: "40_points",
		PlayerID:    playerID,
		PlayerName:  "Test Player",
		ProviderID:  "prov-test",
		GameDate:    "2024-01-05",
		Opponent:    "Celtics",
		StatLine:    "41 PTS / 5 REB / 4 AST",
		CardsOwned:  1,
		BaseValue:   50,
		TotalValue:  50,
		Status:      model.RewardUnclaimed,
		DetectedAt:  time.Now().UTC(),
	}
}

func RunRewardRepositoryContract(t *testing.T, makeRepo RewardFactory) {
	t.Helper()

	t.Run("insert_and_get", func(t *testing.T) {
		repo, cleanup := makeRepo(t)
		t.Cleanup(cleanup)
		ctx := context.Background()

		in := sampleReward("prov-test_2024-01-05_40_points", 1)
		if err := repo.InsertRewards(ctx, []model.PerformanceReward{in}); err != nil {
			t.Fatalf("insert failed: %v", err)
		}
		got, err := repo.GetByID(ctx, in.ID)
		if err != nil {
			t.Fatalf("get failed: %v", err)
		}
		if got.ID != in.ID || got.TotalValue != in.TotalValue || got.Status != model.RewardUnclaimed {
			t.Fatalf("mismatch: %+v", got)
		}
	})

	t.Run("reinsert_same_id_is_noop", func(t *testing.T) {
		repo, cleanup := makeRepo(t)
		t.Cleanup(cleanup)
		ctx := context.Background()

		in := sampleReward("prov-test_2024-01-05_40_points", 1)
		if err := repo.InsertRewards(ctx, []model.PerformanceReward{in}); err != nil {
			t.Fatalf("insert: %v", err)
		}
		dup := in
		dup.TotalValue = 9999 // must not overwrite
		if err := repo.InsertRewards(ctx, []model.PerformanceReward{dup}); err != nil {
			t.Fatalf("reinsert must be a no-op, got: %v", err)
		}
		got, err := repo.GetByID(ctx, in.ID)
		if err != nil {
			t.Fatalf("get: %v", err)
		}
		if got.TotalValue != in.TotalValue {
			t.Fatalf("reinsert overwrote the original row: %+v", got)
		}
	})

	t.Run("existing_ids_round_trip", func(t *testing.T) {
		repo, cleanup := makeRepo(t)
		t.Cleanup(cleanup)
		ctx := context.Background()

		want := []string{"a_2024-01-01_40_points", "b_2024-01-02_triple_double"}
		for i, id := range want {
			if err := repo.InsertRewards(ctx, []model.PerformanceReward{sampleReward(id, int64(i+1))}); err != nil {
				t.Fatalf("seed: %v", err)
			}
		}
		ids, err := repo.ExistingIDs(ctx)
		if err != nil {
			t.Fatalf("existing ids: %v", err)
		}
		for _, id := range want {
			if _, ok := ids[id]; !ok {
				t.Fatalf("id %s missing from %v", id, ids)
			}
		}
	})

	t.Run("lifecycle_transitions", func(t *testing.T) {
		repo, cleanup := makeRepo(t)
		t.Cleanup(cleanup)
		ctx := context.Background()

		in := sampleReward("prov-test_2024-01-05_40_points", 1)
		if err := repo.InsertRewards(ctx, []model.PerformanceReward{in}); err != nil {
			t.Fatalf("seed: %v", err)
		}

		// Redeeming before claiming conflicts.
		if _, err := repo.Redeem(ctx, in.ID); err != repository.ErrConflict {
			t.Fatalf("expected ErrConflict, got %v", err)
		}
		claimed, err := repo.Claim(ctx, in.ID)
		if err != nil {
			t.Fatalf("claim: %v", err)
		}
		if claimed.Status != model.RewardClaimed || claimed.ClaimedAt == nil {
			t.Fatalf("unexpected claim state: %+v", claimed)
		}
		if _, err := repo.Claim(ctx, in.ID); err != repository.ErrConflict {
			t.Fatalf("double claim must conflict, got %v", err)
		}
		redeemed, err := repo.Redeem(ctx, in.ID)
		if err != nil {
			t.Fatalf("redeem: %v", err)
		}
		if redeemed.Status != model.RewardRedeemed || redeemed.RedeemedAt == nil {
			t.Fatalf("unexpected redeem state: %+v", redeemed)
		}
		if _, err := repo.Claim(ctx, "missing_id"); err != repository.ErrNotFound {
			t.Fatalf("expected ErrNotFound, got %v", err)
		}
	})

	t.Run("list_by_player_paged", func(t *testing.T) {
		repo, cleanup := makeRepo(t)
		t.Cleanup(cleanup)
		ctx := context.Background()

		for i := 0; i < 7; i++ {
			r := sampleReward(RewardIDForTest(i), 42)
			if err := repo.InsertRewards(ctx, []model.PerformanceReward{r}); err != nil {
				t.Fatalf("seed: %v", err)
			}
		}
		res, err := repo.ListByPlayer(ctx, 42, repository.Page{Limit: 3, Offset: 0})
		if err != nil {
			t.Fatalf("list: %v", err)
		}
		if len(res.Items) != 3 || res.Total != 7 {
			t.Fatalf("unexpected page: len=%d total=%d", len(res.Items), res.Total)
		}
	})
}

// RewardIDForTest fabricates distinct deterministic ids for seeding.
func RewardIDForTest(i int) string {
	return fmt.Sprintf("prov-test_2024-01-%02d_40_points", i+1)
}

func RunCardRepositoryContract(t *testing.T, makeRepo CardFactory) {
	t.Helper()

	t.Run("issue_and_list_grouped", func(t *testing.T) {
		repo, mkPlayer, cleanup := makeRepo(t)
		t.Cleanup(cleanup)
		ctx := context.Background()

		playerID, err := mkPlayer(ctx, "prov-xyz")
		if err != nil {
			t.Fatalf("seed player: %v", err)
		}
		for i, inst := range []model.CardInstance{
			{InstanceID: "inst-1", AcquiredAt: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)},
			{InstanceID: "inst-2", AcquiredAt: time.Date(2024, 1, 9, 0, 0, 0, 0, time.UTC)},
		} {
			ratings := []int{70, 85}
			if err := repo.IssueCard(ctx, playerID, inst, model.RarityCommon, ratings[i]); err != nil {
				t.Fatalf("issue: %v", err)
			}
		}

		owned, err := repo.ListOwnedCards(ctx)
		if err != nil {
			t.Fatalf("list: %v", err)
		}
		var found *model.OwnedCardInfo
		for i := range owned {
			if owned[i].PlayerID == playerID {
				found = &owned[i]
				break
			}
		}
		if found == nil {
			t.Fatalf("player %d missing from owned cards", playerID)
		}
		if len(found.Instances) != 2 || found.ProviderID != "prov-xyz" {
			t.Fatalf("instances not grouped per player: %+v", found)
		}
	})
}
