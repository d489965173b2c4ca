package service_test

import (
	"context"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/doctornein/dynasty-tokens/internal/model"
	"github.com/doctornein/dynasty-tokens/internal/repository"
	"github.com/doctornein/dynasty-tokens/internal/rewards"
	"github.com/doctornein/dynasty-tokens/internal/service"
)

// fakeRewardRepo keeps rewards in memory and mimics the repository's
// lifecycle semantics closely enough for service-level tests.
type fakeRewardRepo struct {
	stored map[string]model.PerformanceReward
}

func newFakeRewardRepo() *fakeRewardRepo {
	return &fakeRewardRepo{stored: map[string]model.PerformanceReward{}}
}

func (f *fakeRewardRepo) ExistingIDs(context.Context) (map[string]struct{}, error) {
	ids := make(map[string]struct{}, len(f.stored))
	for id := range f.stored {
		ids[id] = struct{}{}
	}
	return ids, nil
}

func (f *fakeRewardRepo) InsertRewards(_ context.Context, rs []model.PerformanceReward) error {
	for _, r := range rs {
		if _, ok := f.stored[r.ID]; ok {
			continue
		}
		f.stored[r.ID] = r
	}
	return nil
}

func (f *fakeRewardRepo) ListByPlayer(_ context.Context, playerID int64, _ repository.Page) (repository.PageResult[model.PerformanceReward], error) {
	var res repository.PageResult[model.PerformanceReward]
	for _, r := range f.stored {
		if r.PlayerID == playerID {
			res.Items = append(res.Items, r)
		}
	}
	res.Total = len(res.Items)
	return res, nil
}

func (f *fakeRewardRepo) GetByID(_ context.Context, id string) (model.PerformanceReward, error) {
	r, ok := f.stored[id]
	if !ok {
		return model.PerformanceReward{}, repository.ErrNotFound
	}
	return r, nil
}

func (f *fakeRewardRepo) Claim(_ context.Context, id string) (model.PerformanceReward, error) {
	r, ok := f.stored[id]
	if !ok {
		return model.PerformanceReward{}, repository.ErrNotFound
	}
	if r.Status != model.RewardUnclaimed {
		return model.PerformanceReward{}, repository.ErrConflict
	}
	now := time.Now()
	r.Status = model.RewardClaimed
	r.ClaimedAt = &now
	f.stored[id] = r
	return r, nil
}

func (f *fakeRewardRepo) Redeem(_ context.Context, id string) (model.PerformanceReward, error) {
	r, ok := f.stored[id]
	if !ok {
		return model.PerformanceReward{}, repository.ErrNotFound
	}
	if r.Status != model.RewardClaimed {
		return model.PerformanceReward{}, repository.ErrConflict
	}
	now := time.Now()
	r.Status = model.RewardRedeemed
	r.RedeemedAt = &now
	f.stored[id] = r
	return r, nil
}

var _ repository.RewardRepository = (*fakeRewardRepo)(nil)

type fakeCardRepo struct {
	owned  []model.OwnedCardInfo
	issued []model.CardInstance
}

func (f *fakeCardRepo) ListOwnedCards(context.Context) ([]model.OwnedCardInfo, error) {
	return f.owned, nil
}

func (f *fakeCardRepo) IssueCard(_ context.Context, _ int64, inst model.CardInstance, _ model.Rarity, _ int) error {
	f.issued = append(f.issued, inst)
	return nil
}

var _ repository.CardRepository = (*fakeCardRepo)(nil)

type stubFetcher struct {
	games map[string][]model.GameLogEntry
	err   error
}

func (s *stubFetcher) FetchGameLogs(_ context.Context, providerID string) ([]model.GameLogEntry, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.games[providerID], nil
}

// passthroughTxManager runs the unit of work without a real transaction.
type passthroughTxManager struct{}

func (passthroughTxManager) WithinTx(ctx context.Context, fn repository.TxFunc) error {
	return fn(ctx)
}

func newRewardService(rewardRepo *fakeRewardRepo, cardRepo *fakeCardRepo, fetcher *stubFetcher) service.RewardService {
	log := zerolog.New(io.Discard)
	detector := rewards.NewDetector(rewards.DefaultThresholds(), nil, log)
	scanner := rewards.NewScanner(fetcher, detector, log)
	return service.NewRewardService(rewardRepo, cardRepo, passthroughTxManager{}, scanner, log)
}

func TestRewardService_RunScan_PersistsAndIsIdempotent(t *testing.T) {
	rewardRepo := newFakeRewardRepo()
	cardRepo := &fakeCardRepo{owned: []model.OwnedCardInfo{{
		PlayerID:   1,
		ProviderID: "prov-1",
		Instances: []model.CardInstance{
			{InstanceID: "i1", AcquiredAt: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)},
		},
	}}}
	fetcher := &stubFetcher{games: map[string][]model.GameLogEntry{
		"prov-1": {{Date: "2024-01-05", Pts: 44}},
	}}
	svc := newRewardService(rewardRepo, cardRepo, fetcher)

	first, err := svc.RunScan(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if first.PlayersScanned != 1 || first.NewRewards != 1 {
		t.Fatalf("unexpected summary: %+v", first)
	}
	if len(rewardRepo.stored) != 1 {
		t.Fatalf("expected 1 persisted reward, got %d", len(rewardRepo.stored))
	}

	// Second run over identical data finds nothing new.
	second, err := svc.RunScan(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if second.NewRewards != 0 {
		t.Fatalf("re-scan must be idempotent, got %d new rewards", second.NewRewards)
	}
}

func TestRewardService_RunScan_ProviderDownYieldsEmptyRun(t *testing.T) {
	rewardRepo := newFakeRewardRepo()
	cardRepo := &fakeCardRepo{owned: []model.OwnedCardInfo{{
		PlayerID:   1,
		ProviderID: "prov-1",
		Instances:  []model.CardInstance{{InstanceID: "i1", AcquiredAt: time.Unix(0, 0)}},
	}}}
	fetcher := &stubFetcher{err: errors.New("provider down")}
	svc := newRewardService(rewardRepo, cardRepo, fetcher)

	summary, err := svc.RunScan(context.Background())
	if err != nil {
		t.Fatalf("provider failure must not fail the scan: %v", err)
	}
	if summary.NewRewards != 0 || len(rewardRepo.stored) != 0 {
		t.Fatalf("expected empty run, got %+v", summary)
	}
}

func TestRewardService_ClaimLifecycle(t *testing.T) {
	rewardRepo := newFakeRewardRepo()
	rewardRepo.stored["r1"] = model.PerformanceReward{ID: "r1", PlayerID: 1, Status: model.RewardUnclaimed}
	svc := newRewardService(rewardRepo, &fakeCardRepo{}, &stubFetcher{})
	ctx := context.Background()

	claimed, err := svc.ClaimReward(ctx, "r1")
	if err != nil {
		t.Fatalf("claim: %v", err)
	}
	if claimed.Status != model.RewardClaimed || claimed.ClaimedAt == nil {
		t.Fatalf("unexpected claim state: %+v", claimed)
	}

	// Claiming twice conflicts.
	if _, err := svc.ClaimReward(ctx, "r1"); !errors.Is(err, repository.ErrConflict) {
		t.Fatalf("expected conflict, got %v", err)
	}

	redeemed, err := svc.RedeemReward(ctx, "r1")
	if err != nil {
		t.Fatalf("redeem: %v", err)
	}
	if redeemed.Status != model.RewardRedeemed || redeemed.RedeemedAt == nil {
		t.Fatalf("unexpected redeem state: %+v", redeemed)
	}

	if _, err := svc.ClaimReward(ctx, ""); !errors.Is(err, service.ErrInvalidInput) {
		t.Fatalf("expected invalid input for empty id, got %v", err)
	}
	if _, err := svc.ClaimReward(ctx, "missing"); !errors.Is(err, repository.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}
