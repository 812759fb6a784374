package rest

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shopifyPulse/domain"
)

type stubRecommendService struct {
	recs      []domain.Recommendation
	alerts    []domain.Alert
	err       error
	generated int
	listed    int
	dismissed []string
}

func (s *stubRecommendService) Generate(_ context.Context, storeID uint, _ string, _ int) ([]domain.Recommendation, error) {
	s.generated++
	if s.err != nil {
		return nil, s.err
	}
	out := make([]domain.Recommendation, len(s.recs))
	copy(out, s.recs)
	for i := range out {
		out[i].StoreID = storeID
	}
	return out, nil
}

func (s *stubRecommendService) List(_ context.Context, _ uint) ([]domain.Recommendation, error) {
	s.listed++
	return s.recs, s.err
}

func (s *stubRecommendService) Dismiss(_ context.Context, id string) error {
	if s.err != nil {
		return s.err
	}
	s.dismissed = append(s.dismissed, id)
	return nil
}

func (s *stubRecommendService) Implement(_ context.Context, id string) error {
	return s.err
}

func (s *stubRecommendService) Alerts(_ context.Context, _ uint) ([]domain.Alert, error) {
	return s.alerts, s.err
}

func sampleRec() domain.Recommendation {
	return domain.Recommendation{
		ID:               "rec-1",
		StoreID:          1,
		Title:            "Fix checkout abandonment spike",
		Category:         "conversion",
		Priority:         "high",
		ImpactScore:      78,
		PotentialRevenue: 88920,
		GeneratedBy:      "rule",
		CreatedAt:        time.Now(),
	}
}

func newContext(t *testing.T, method, target string) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(method, target, nil)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func TestRecommendGet(t *testing.T) {
	svc := &stubRecommendService{recs: []domain.Recommendation{sampleRec()}}
	h := NewRecommendHandler(svc, 1, 10)

	c, rec := newContext(t, http.MethodGet, "/api/v1/recommendations?period=30d")

	require.NoError(t, h.Get(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 1, svc.generated)
	assert.Contains(t, rec.Body.String(), "Fix checkout abandonment spike")
}

func TestRecommendGetDefaultsToDemoStore(t *testing.T) {
	svc := &stubRecommendService{recs: []domain.Recommendation{sampleRec()}}
	h := NewRecommendHandler(svc, 7, 10)

	c, rec := newContext(t, http.MethodGet, "/api/v1/recommendations")

	require.NoError(t, h.Get(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	// storeOrDemo substitutes the configured demo store.
	assert.Contains(t, rec.Body.String(), `"store_id":7`)
}

func TestRecommendGetSavedUsesList(t *testing.T) {
	svc := &stubRecommendService{recs: []domain.Recommendation{sampleRec()}}
	h := NewRecommendHandler(svc, 1, 10)

	c, rec := newContext(t, http.MethodGet, "/api/v1/recommendations?saved=true")

	require.NoError(t, h.Get(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 0, svc.generated)
	assert.Equal(t, 1, svc.listed)
}

func TestRecommendGetRejectsBadPeriod(t *testing.T) {
	h := NewRecommendHandler(&stubRecommendService{}, 1, 10)

	c, rec := newContext(t, http.MethodGet, "/api/v1/recommendations?period=14d")

	require.NoError(t, h.Get(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRecommendGetStoreNotFound(t *testing.T) {
	svc := &stubRecommendService{err: errors.New("store not found")}
	h := NewRecommendHandler(svc, 1, 10)

	c, rec := newContext(t, http.MethodGet, "/api/v1/recommendations?store_id=99")

	require.NoError(t, h.Get(c))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestRecommendDismiss(t *testing.T) {
	svc := &stubRecommendService{}
	h := NewRecommendHandler(svc, 1, 10)

	c, rec := newContext(t, http.MethodPost, "/api/v1/recommendations/rec-1/dismiss")
	c.SetParamNames("id")
	c.SetParamValues("rec-1")

	require.NoError(t, h.Dismiss(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, []string{"rec-1"}, svc.dismissed)
}

func TestRecommendDismissUnknownID(t *testing.T) {
	svc := &stubRecommendService{err: errors.New("recommendation not found")}
	h := NewRecommendHandler(svc, 1, 10)

	c, rec := newContext(t, http.MethodPost, "/api/v1/recommendations/nope/dismiss")
	c.SetParamNames("id")
	c.SetParamValues("nope")

	require.NoError(t, h.Dismiss(c))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestRecommendAlerts(t *testing.T) {
	svc := &stubRecommendService{alerts: []domain.Alert{{
		ID:    "rec-1",
		Type:  "warning",
		Title: "Fix checkout abandonment spike",
	}}}
	h := NewRecommendHandler(svc, 1, 10)

	c, rec := newContext(t, http.MethodGet, "/api/v1/alerts")

	require.NoError(t, h.Alerts(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"warning"`)
}
