package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"github.com/comitanigiacomo/kanso-food-diary/internal/core/domain"
)

type SettingsService struct {
	mu     sync.RWMutex
	store  domain.KVStore
	logger *zap.Logger
}

func NewSettingsService(store domain.KVStore, logger *zap.Logger) *SettingsService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SettingsService{
		store:  store,
		logger: logger,
	}
}

// Get returns the stored goal profile, or the defaults when none was saved.
// Fields missing from an older stored profile keep their default value. A
// stored profile that fails validation is a decode failure; Save replaces it.
func (s *SettingsService) Get(ctx context.Context) (domain.GoalProfile, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.load(ctx)
}

func (s *SettingsService) Save(ctx context.Context, profile domain.GoalProfile) (domain.GoalProfile, error) {
	if profile.WeightUnit == "" {
		profile.WeightUnit = domain.WeightUnitKg
	}
	if err := profile.Validate(); err != nil {
		return domain.GoalProfile{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.save(ctx, profile); err != nil {
		return domain.GoalProfile{}, err
	}
	return profile, nil
}

// Update applies a partial change on top of the current profile.
func (s *SettingsService) Update(ctx context.Context, patch domain.GoalPatch) (domain.GoalProfile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	current, err := s.load(ctx)
	if err != nil {
		return domain.GoalProfile{}, err
	}

	updated := patch.Apply(current)
	if err := updated.Validate(); err != nil {
		return domain.GoalProfile{}, err
	}
	if err := s.save(ctx, updated); err != nil {
		return domain.GoalProfile{}, err
	}
	return updated, nil
}

func (s *SettingsService) load(ctx context.Context) (domain.GoalProfile, error) {
	data, err := s.store.Get(ctx, domain.SettingsKey)
	if errors.Is(err, domain.ErrKeyNotFound) {
		return domain.DefaultGoalProfile(), nil
	}
	if err != nil {
		s.logger.Error("failed to load settings", zap.Error(err))
		return domain.GoalProfile{}, &domain.PersistenceError{Op: "load", Key: domain.SettingsKey, Err: err}
	}

	profile := domain.DefaultGoalProfile()
	if err := json.Unmarshal(data, &profile); err != nil {
		s.logger.Error("stored settings are unreadable", zap.Error(err))
		return domain.GoalProfile{}, &domain.PersistenceError{Op: "decode", Key: domain.SettingsKey, Err: err}
	}
	if err := profile.Validate(); err != nil {
		s.logger.Error("stored settings are invalid", zap.Error(err))
		return domain.GoalProfile{}, &domain.PersistenceError{
			Op:  "decode",
			Key: domain.SettingsKey,
			Err: fmt.Errorf("stored profile failed validation: %v", err),
		}
	}
	return profile, nil
}

func (s *SettingsService) save(ctx context.Context, profile domain.GoalProfile) error {
	data, err := json.Marshal(profile)
	if err != nil {
		return &domain.PersistenceError{Op: "encode", Key: domain.SettingsKey, Err: err}
	}
	if err := s.store.Set(ctx, domain.SettingsKey, data); err != nil {
		s.logger.Error("failed to persist settings", zap.Error(err))
		return &domain.PersistenceError{Op: "save", Key: domain.SettingsKey, Err: err}
	}
	s.logger.Info("settings saved", zap.Float64("calories", profile.DailyCalorieGoal))
	return nil
}
