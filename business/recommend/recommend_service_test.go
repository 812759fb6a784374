package recommend

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shopifyPulse/business/insight"
	"shopifyPulse/domain"
)

type fakeSnapshots struct {
	snap       *insight.MetricSnapshot
	benchmarks insight.BenchmarkSet
	err        error
	calls      int
}

func (f *fakeSnapshots) Snapshot(_ context.Context, _ uint, _ string) (*insight.MetricSnapshot, insight.BenchmarkSet, error) {
	f.calls++
	return f.snap, f.benchmarks, f.err
}

type fakeRecoRepo struct {
	stored   map[uint][]domain.Recommendation
	byID     map[string]domain.Recommendation
	replaced int
}

func newFakeRecoRepo() *fakeRecoRepo {
	return &fakeRecoRepo{
		stored: map[uint][]domain.Recommendation{},
		byID:   map[string]domain.Recommendation{},
	}
}

func (f *fakeRecoRepo) ReplaceGenerated(_ context.Context, storeID uint, recs []domain.Recommendation) error {
	f.replaced++
	f.stored[storeID] = recs
	for _, rec := range recs {
		f.byID[rec.ID] = rec
	}
	return nil
}

func (f *fakeRecoRepo) FindByStore(_ context.Context, storeID uint, includeDismissed bool) ([]domain.Recommendation, error) {
	var out []domain.Recommendation
	for _, rec := range f.stored[storeID] {
		if !includeDismissed && rec.Dismissed {
			continue
		}
		out = append(out, rec)
	}
	return out, nil
}

func (f *fakeRecoRepo) FindByID(_ context.Context, id string) (domain.Recommendation, error) {
	rec, ok := f.byID[id]
	if !ok {
		return domain.Recommendation{}, errors.New("recommendation not found")
	}
	return rec, nil
}

func (f *fakeRecoRepo) MarkDismissed(_ context.Context, id string) error {
	rec, ok := f.byID[id]
	if !ok {
		return errors.New("recommendation not found")
	}
	rec.Dismissed = true
	f.byID[id] = rec
	for storeID, recs := range f.stored {
		for i := range recs {
			if recs[i].ID == id {
				recs[i].Dismissed = true
			}
		}
		f.stored[storeID] = recs
	}
	return nil
}

func (f *fakeRecoRepo) MarkImplemented(_ context.Context, id string, at time.Time) error {
	rec, ok := f.byID[id]
	if !ok {
		return errors.New("recommendation not found")
	}
	rec.IsImplemented = true
	rec.ImplementedAt = &at
	f.byID[id] = rec
	return nil
}

type fakeCache struct {
	entries     map[string][]domain.Recommendation
	invalidated []uint
}

func newFakeCache() *fakeCache {
	return &fakeCache{entries: map[string][]domain.Recommendation{}}
}

func (f *fakeCache) Get(_ context.Context, key string) ([]domain.Recommendation, bool, error) {
	recs, ok := f.entries[key]
	return recs, ok, nil
}

func (f *fakeCache) Set(_ context.Context, key string, recs []domain.Recommendation) error {
	f.entries[key] = recs
	return nil
}

func (f *fakeCache) InvalidateStore(_ context.Context, storeID uint) error {
	f.invalidated = append(f.invalidated, storeID)
	for k := range f.entries {
		delete(f.entries, k)
	}
	return nil
}

// troubledSnapshot has a heavy checkout drop-off and a lapsed cohort.
func troubledSnapshot(t *testing.T) *insight.MetricSnapshot {
	t.Helper()

	snap, err := insight.NewMetricSnapshot(insight.MetricSnapshot{
		Period: insight.Period{
			Start: time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC),
			End:   time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC),
		},
		Traffic: insight.Traffic{
			Visits:     45000,
			Sessions:   52000,
			BounceRate: 0.35,
			Sources: map[string]float64{
				"organic": 0.55,
				"paid":    0.45,
			},
		},
		Funnel: []insight.FunnelStage{
			{Name: insight.StageVisit, Count: 45000},
			{Name: insight.StageAddToCart, Count: 6750},
			{Name: insight.StageCheckout, Count: 2700},
			{Name: insight.StagePurchase, Count: 1560},
		},
		ConversionByDevice: map[string]float64{"desktop": 0.062, "mobile": 0.058},
		AvgOrderValue:      78,
		Customers: insight.Customers{
			Total: 5000,
			RecencyBuckets: map[string]int{
				insight.BucketOver90: 1400,
			},
			LapsedAvgOrderValue: 145,
		},
		TrailingRevenue30d: 121680,
		DaysOfData:         30,
	})
	require.NoError(t, err)
	return snap
}

func testRecommendService(t *testing.T) (*recommendService, *fakeRecoRepo, *fakeCache, *fakeSnapshots) {
	t.Helper()

	snapshots := &fakeSnapshots{snap: troubledSnapshot(t)}
	repo := newFakeRecoRepo()
	cache := newFakeCache()

	svc := NewRecommendService(insight.NewEngine(insight.DefaultConfig()), snapshots, repo, cache)
	svc.now = func() time.Time { return time.Date(2025, 7, 1, 12, 0, 0, 0, time.UTC) }
	return svc, repo, cache, snapshots
}

func TestGeneratePersistsRecommendations(t *testing.T) {
	svc, repo, _, _ := testRecommendService(t)

	recs, err := svc.Generate(context.Background(), 1, "30d", 0)
	require.NoError(t, err)
	require.NotEmpty(t, recs)

	assert.Equal(t, 1, repo.replaced)
	assert.Len(t, repo.stored[1], len(recs))

	for _, rec := range recs {
		assert.NotEmpty(t, rec.ID)
		assert.Equal(t, uint(1), rec.StoreID)
		assert.Equal(t, "rule", rec.GeneratedBy)
		assert.NotEmpty(t, rec.Priority)
		assert.Contains(t, rec.Evidence, "trailing_revenue_30d")
	}
}

func TestGenerateUsesCache(t *testing.T) {
	svc, repo, _, snapshots := testRecommendService(t)

	first, err := svc.Generate(context.Background(), 1, "30d", 0)
	require.NoError(t, err)
	require.Equal(t, 1, snapshots.calls)

	second, err := svc.Generate(context.Background(), 1, "30d", 0)
	require.NoError(t, err)

	// Second call is served from cache: no new snapshot, no new write.
	assert.Equal(t, 1, snapshots.calls)
	assert.Equal(t, 1, repo.replaced)
	assert.Equal(t, first, second)
}

func TestGenerateWorksWithoutCache(t *testing.T) {
	snapshots := &fakeSnapshots{snap: troubledSnapshot(t)}
	repo := newFakeRecoRepo()

	svc := NewRecommendService(insight.NewEngine(insight.DefaultConfig()), snapshots, repo, nil)

	recs, err := svc.Generate(context.Background(), 1, "30d", 0)
	require.NoError(t, err)
	assert.NotEmpty(t, recs)
}

func TestGeneratePropagatesSnapshotError(t *testing.T) {
	svc, _, _, snapshots := testRecommendService(t)
	snapshots.err = errors.New("store not found")
	snapshots.snap = nil

	_, err := svc.Generate(context.Background(), 1, "30d", 0)
	require.Error(t, err)
	assert.Equal(t, "store not found", err.Error())
}

func TestDismissInvalidatesCache(t *testing.T) {
	svc, repo, cache, _ := testRecommendService(t)

	recs, err := svc.Generate(context.Background(), 1, "30d", 0)
	require.NoError(t, err)
	require.NotEmpty(t, recs)
	require.NotEmpty(t, cache.entries)

	require.NoError(t, svc.Dismiss(context.Background(), recs[0].ID))

	assert.True(t, repo.byID[recs[0].ID].Dismissed)
	assert.Equal(t, []uint{1}, cache.invalidated)
	assert.Empty(t, cache.entries)
}

func TestImplementStampsTime(t *testing.T) {
	svc, repo, _, _ := testRecommendService(t)

	recs, err := svc.Generate(context.Background(), 1, "30d", 0)
	require.NoError(t, err)
	require.NotEmpty(t, recs)

	require.NoError(t, svc.Implement(context.Background(), recs[0].ID))

	stored := repo.byID[recs[0].ID]
	assert.True(t, stored.IsImplemented)
	require.NotNil(t, stored.ImplementedAt)
	assert.Equal(t, time.Date(2025, 7, 1, 12, 0, 0, 0, time.UTC), *stored.ImplementedAt)
}

func TestDismissUnknownID(t *testing.T) {
	svc, _, _, _ := testRecommendService(t)

	err := svc.Dismiss(context.Background(), "nope")
	require.Error(t, err)
	assert.Equal(t, "recommendation not found", err.Error())
}

func TestListExcludesDismissed(t *testing.T) {
	svc, _, _, _ := testRecommendService(t)

	recs, err := svc.Generate(context.Background(), 1, "30d", 0)
	require.NoError(t, err)
	require.NotEmpty(t, recs)

	require.NoError(t, svc.Dismiss(context.Background(), recs[0].ID))

	listed, err := svc.List(context.Background(), 1)
	require.NoError(t, err)
	assert.Len(t, listed, len(recs)-1)
	for _, rec := range listed {
		assert.NotEqual(t, recs[0].ID, rec.ID)
	}
}

func TestAlertsMapPriorities(t *testing.T) {
	svc, _, _, _ := testRecommendService(t)

	alerts, err := svc.Alerts(context.Background(), 1)
	require.NoError(t, err)
	require.NotEmpty(t, alerts)

	for _, alert := range alerts {
		assert.Contains(t, []string{"warning", "opportunity"}, alert.Type)
		assert.Contains(t, []string{"critical", "high"}, alert.Impact)
		assert.NotEmpty(t, alert.Title)
		if alert.Impact == "critical" {
			assert.Equal(t, "warning", alert.Type)
		} else {
			assert.Equal(t, "opportunity", alert.Type)
		}
	}
}
