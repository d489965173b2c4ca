package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/doctornein/dynasty-tokens/internal/handler"
	"github.com/doctornein/dynasty-tokens/internal/model"
	"github.com/doctornein/dynasty-tokens/internal/repository"
	"github.com/doctornein/dynasty-tokens/internal/service"
)

const testToken = "settlement-secret"

// stubPingerNoop satisfies handler.Pinger (health endpoints not focus here).
type stubPingerNoop struct{}

func (s stubPingerNoop) Ping(ctx context.Context) error { return nil }

// stubRewardService lets us control each method outcome.
type stubRewardService struct {
	scan struct {
		res service.ScanSummary
		err error
	}
	list struct {
		res repository.PageResult[model.PerformanceReward]
		err error
	}
	claim struct {
		res model.PerformanceReward
		err error
	}
	redeem struct {
		res model.PerformanceReward
		err error
	}
}

func (s *stubRewardService) RunScan(ctx context.Context) (service.ScanSummary, error) {
	return s.scan.res, s.scan.err
}
func (s *stubRewardService) ListPlayerRewards(ctx context.Context, playerID int64, p repository.Page) (repository.PageResult[model.PerformanceReward], error) {
	return s.list.res, s.list.err
}
func (s *stubRewardService) ClaimReward(ctx context.Context, id string) (model.PerformanceReward, error) {
	return s.claim.res, s.claim.err
}
func (s *stubRewardService) RedeemReward(ctx context.Context, id string) (model.PerformanceReward, error) {
	return s.redeem.res, s.redeem.err
}

type stubArenaService struct {
	res service.ArenaScore
	err error
}

func (s *stubArenaService) ScoreWindow(ctx context.Context, providerID, teamAbbr, startDate, endDate string, categories []model.ArenaStatCategory) (service.ArenaScore, error) {
	return s.res, s.err
}

type stubRatingService struct {
	res []model.PlayerRating
	err error
}

func (s *stubRatingService) RateCohort(ctx context.Context, cohort []service.CohortEntry) ([]model.PlayerRating, error) {
	return s.res, s.err
}

type stubCardService struct {
	res model.CardInstance
	err error
}

func (s *stubCardService) IssueCard(ctx context.Context, playerID int64, rarity model.Rarity, rating int) (model.CardInstance, error) {
	return s.res, s.err
}

type stubs struct {
	rewards *stubRewardService
	arena   *stubArenaService
	ratings *stubRatingService
	cards   *stubCardService
}

func newRouter(token string) (*gin.Engine, *stubs) {
	gin.SetMode(gin.TestMode)
	st := &stubs{
		rewards: &stubRewardService{},
		arena:   &stubArenaService{},
		ratings: &stubRatingService{},
		cards:   &stubCardService{},
	}
	r := gin.New()
	handler.Register(r, stubPingerNoop{}, token, st.rewards, st.arena, st.ratings, st.cards)
	return r, st
}

func doJSON(r *gin.Engine, method, path, token string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestScan_OK(t *testing.T) {
	r, st := newRouter(testToken)
	st.rewards.scan.res = service.ScanSummary{PlayersScanned: 12, NewRewards: 2}

	w := doJSON(r, http.MethodPost, "/api/v1/rewards/scan", testToken, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	var resp service.ScanSummary
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil || resp.PlayersScanned != 12 || resp.NewRewards != 2 {
		t.Fatalf("unexpected body: %s", w.Body.String())
	}
}

func TestScan_RequiresBearerToken(t *testing.T) {
	r, _ := newRouter(testToken)

	if w := doJSON(r, http.MethodPost, "/api/v1/rewards/scan", "", nil); w.Code != http.StatusUnauthorized {
		t.Fatalf("missing token: expected 401, got %d", w.Code)
	}
	if w := doJSON(r, http.MethodPost, "/api/v1/rewards/scan", "wrong-token", nil); w.Code != http.StatusUnauthorized {
		t.Fatalf("wrong token: expected 401, got %d", w.Code)
	}
}

func TestScan_NoTokenConfiguredFailsClosed(t *testing.T) {
	r, _ := newRouter("")
	w := doJSON(r, http.MethodPost, "/api/v1/rewards/scan", "anything", nil)
	if w.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503, got %d", w.Code)
	}
}

func TestListPlayerRewards_OK(t *testing.T) {
	r, st := newRouter(testToken)
	st.rewards.list.res = repository.PageResult[model.PerformanceReward]{
		Items: []model.PerformanceReward{{ID: "p1_2024-01-05_40_points", TotalValue: 50}},
		Total: 1,
	}

	w := doJSON(r, http.MethodGet, "/api/v1/players/7/rewards?limit=10&offset=0", "", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	if !bytes.Contains(w.Body.Bytes(), []byte("p1_2024-01-05_40_points")) {
		t.Fatalf("expected reward in body: %s", w.Body.String())
	}
}

func TestListPlayerRewards_BadID(t *testing.T) {
	r, _ := newRouter(testToken)
	w := doJSON(r, http.MethodGet, "/api/v1/players/abc/rewards", "", nil)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
	if !bytes.Contains(w.Body.Bytes(), []byte("invalid_input")) {
		t.Fatalf("expected invalid_input, body=%s", w.Body.String())
	}
}

func TestClaim_Conflict(t *testing.T) {
	r, st := newRouter(testToken)
	st.rewards.claim.err = repository.ErrConflict

	w := doJSON(r, http.MethodPost, "/api/v1/rewards/x_2024-01-05_40_points/claim", "", nil)
	if w.Code != http.StatusConflict {
		t.Fatalf("expected 409, got %d: %s", w.Code, w.Body.String())
	}
}

func TestRedeem_NotFound(t *testing.T) {
	r, st := newRouter(testToken)
	st.rewards.redeem.err = repository.ErrNotFound

	w := doJSON(r, http.MethodPost, "/api/v1/rewards/missing/redeem", "", nil)
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", w.Code)
	}
}

func TestArenaScore_OK(t *testing.T) {
	r, st := newRouter(testToken)
	st.arena.res = service.ArenaScore{ProviderID: "prov-1", Score: 65, DidNotPlay: false}

	body := map[string]any{
		"provider_id": "prov-1", "team_abbr": "BOS",
		"start_date": "2024-01-01", "end_date": "2024-01-03",
		"categories": []string{"pts", "reb"},
	}
	w := doJSON(r, http.MethodPost, "/api/v1/arena/score", testToken, body)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	var resp service.ArenaScore
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil || resp.Score != 65 {
		t.Fatalf("unexpected body: %s", w.Body.String())
	}
}

func TestArenaScore_Guarded(t *testing.T) {
	r, _ := newRouter(testToken)
	w := doJSON(r, http.MethodPost, "/api/v1/arena/score", "", map[string]any{})
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", w.Code)
	}
}

func TestArenaScore_ValidationSurfacesFields(t *testing.T) {
	r, st := newRouter(testToken)
	st.arena.err = service.NewInvalidInputError([]service.FieldError{{Field: "end_date", Message: "must not precede start_date"}})

	body := map[string]any{
		"provider_id": "prov-1", "team_abbr": "BOS",
		"start_date": "2024-01-05", "end_date": "2024-01-03",
		"categories": []string{"pts"},
	}
	w := doJSON(r, http.MethodPost, "/api/v1/arena/score", testToken, body)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d: %s", w.Code, w.Body.String())
	}
	if !bytes.Contains(w.Body.Bytes(), []byte("end_date")) {
		t.Fatalf("expected field error for end_date, body=%s", w.Body.String())
	}
}

func TestRateCohort_OK(t *testing.T) {
	r, st := newRouter(testToken)
	st.ratings.res = []model.PlayerRating{
		{PlayerID: 1, Rating: 93, Rarity: model.RarityLegendary},
		{PlayerID: 2, Rating: 80, Rarity: model.RarityCommon},
	}

	body := map[string]any{"cohort": []map[string]any{
		{"player_id": 1, "stats": map[string]any{"ppg": 30.0}},
		{"player_id": 2, "stats": map[string]any{"ppg": 12.0}},
	}}
	w := doJSON(r, http.MethodPost, "/api/v1/ratings/cohort", "", body)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	if !bytes.Contains(w.Body.Bytes(), []byte("legendary")) {
		t.Fatalf("expected rarity in body: %s", w.Body.String())
	}
}

func TestIssueCard_Created(t *testing.T) {
	r, st := newRouter(testToken)
	st.cards.res = model.CardInstance{InstanceID: "uuid-1"}

	body := map[string]any{"player_id": 7, "rarity": "epic", "rating": 88}
	w := doJSON(r, http.MethodPost, "/api/v1/cards", "", body)
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", w.Code, w.Body.String())
	}
	if !bytes.Contains(w.Body.Bytes(), []byte("uuid-1")) {
		t.Fatalf("expected instance id in body: %s", w.Body.String())
	}
}

func TestHealth_Liveness(t *testing.T) {
	r, _ := newRouter(testToken)
	w := doJSON(r, http.MethodGet, "/live", "", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
}
