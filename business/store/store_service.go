package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/pobyzaarif/goshortcute"

	"shopifyPulse/domain"
	"shopifyPulse/pkg/logger"
)

// StoreRepository contract interface
type StoreRepository interface {
	FindByID(ctx context.Context, id uint) (domain.Store, error)
	Update(ctx context.Context, store *domain.Store) error
}

// HealthScorer computes the composite health score shown on the overview.
type HealthScorer interface {
	HealthScore(ctx context.Context, storeID uint) (int, error)
}

type storeService struct {
	storeRepo StoreRepository
	health    HealthScorer
	tokenKey  string

	now func() time.Time
}

func NewStoreService(storeRepo StoreRepository, health HealthScorer, tokenKey string) *storeService {
	return &storeService{
		storeRepo: storeRepo,
		health:    health,
		tokenKey:  tokenKey,
		now:       time.Now,
	}
}

func (s *storeService) Overview(ctx context.Context, storeID uint) (*domain.StoreOverview, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	store, err := s.storeRepo.FindByID(ctx, storeID)
	if err != nil {
		logger.Error("failed to find store", "store_id", storeID, "error", err)
		return nil, err
	}

	score, err := s.health.HealthScore(ctx, storeID)
	if err != nil {
		logger.Error("failed to compute health score", "store_id", storeID, "error", err)
		return nil, fmt.Errorf("failed to compute health score: %w", err)
	}

	return &domain.StoreOverview{
		ID:              store.ID,
		Name:            store.Name,
		Platform:        store.Platform,
		URL:             store.URL,
		AnnualRevenue:   store.AnnualRevenue,
		MonthlyVisitors: store.MonthlyVisitors,
		ConversionRate:  store.ConversionRate,
		AOV:             store.AOV,
		LTV:             store.LTV,
		Tier:            store.Tier,
		ConnectedAt:     store.ConnectedAt,
		LastSync:        store.LastSync,
		HealthScore:     score,
	}, nil
}

// Connect stores the platform credentials for a store. The access token
// is AES-CBC encrypted before it touches the database.
func (s *storeService) Connect(ctx context.Context, storeID uint, platform, url, accessToken string) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context error: %w", err)
	}

	if platform == "" {
		return errors.New("platform is required")
	}
	if accessToken == "" {
		return errors.New("access token is required")
	}

	store, err := s.storeRepo.FindByID(ctx, storeID)
	if err != nil {
		logger.Error("failed to find store", "store_id", storeID, "error", err)
		return err
	}

	encrypted, err := goshortcute.AESCBCEncrypt([]byte(accessToken), []byte(s.tokenKey))
	if err != nil {
		logger.Error("failed to encrypt access token", "store_id", storeID, "error", err)
		return errors.New("failed to encrypt access token")
	}

	now := s.now()
	store.Platform = platform
	if url != "" {
		store.URL = url
	}
	store.AccessToken = goshortcute.StringtoBase64Encode(encrypted)
	store.IsConnected = true
	store.ConnectedAt = &now
	store.LastSync = &now

	if err := s.storeRepo.Update(ctx, &store); err != nil {
		logger.Error("failed to save store connection", "store_id", storeID, "error", err)
		return fmt.Errorf("failed to save store connection: %w", err)
	}

	logger.Info("store connected", "store_id", storeID, "platform", platform)
	return nil
}

// Sync validates the stored credentials and stamps the sync time. The
// actual data pull is owned by the ingestion job.
func (s *storeService) Sync(ctx context.Context, storeID uint) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context error: %w", err)
	}

	store, err := s.storeRepo.FindByID(ctx, storeID)
	if err != nil {
		logger.Error("failed to find store", "store_id", storeID, "error", err)
		return err
	}

	if !store.IsConnected {
		return errors.New("store is not connected")
	}

	if _, err := s.accessToken(store); err != nil {
		logger.Error("stored access token is unreadable", "store_id", storeID, "error", err)
		return errors.New("stored credentials are invalid, reconnect the store")
	}

	now := s.now()
	store.LastSync = &now

	if err := s.storeRepo.Update(ctx, &store); err != nil {
		logger.Error("failed to stamp sync time", "store_id", storeID, "error", err)
		return fmt.Errorf("failed to stamp sync time: %w", err)
	}

	logger.Info("store sync recorded", "store_id", storeID)
	return nil
}

func (s *storeService) accessToken(store domain.Store) (string, error) {
	if store.AccessToken == "" {
		return "", errors.New("no access token on record")
	}

	decoded := goshortcute.StringtoBase64Decode(store.AccessToken)
	token, err := goshortcute.AESCBCDecrypt([]byte(decoded), []byte(s.tokenKey))
	if err != nil {
		return "", err
	}
	return token, nil
}
