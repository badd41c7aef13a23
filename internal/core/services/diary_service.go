package services

import (
	"context"
	"errors"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/comitanigiacomo/kanso-food-diary/internal/core/domain"
	"github.com/comitanigiacomo/kanso-food-diary/internal/core/workers"
)

// DiaryService owns the ledger map. Every mutation loads the whole map,
// applies one change and writes it back while holding the write lock, so two
// concurrent mutations can never overwrite each other.
type DiaryService struct {
	mu     sync.RWMutex
	store  domain.KVStore
	worker *workers.HistoryWorker
	logger *zap.Logger
	now    func() time.Time
	loc    *time.Location
}

type DiaryOption func(*DiaryService)

func WithClock(now func() time.Time) DiaryOption {
	return func(s *DiaryService) {
		s.now = now
	}
}

// WithLocation sets the time zone used to decide which calendar day "today" is.
func WithLocation(loc *time.Location) DiaryOption {
	return func(s *DiaryService) {
		s.loc = loc
	}
}

func NewDiaryService(store domain.KVStore, worker *workers.HistoryWorker, logger *zap.Logger, opts ...DiaryOption) *DiaryService {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &DiaryService{
		store:  store,
		worker: worker,
		logger: logger,
		now:    time.Now,
		loc:    time.Local,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *DiaryService) Today() string {
	return domain.Today(s.now(), s.loc)
}

func (s *DiaryService) GetLedger(ctx context.Context, date string) (domain.DailyLedger, error) {
	if _, err := domain.ParseDay(date); err != nil {
		return domain.DailyLedger{}, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	ledgers, err := s.load(ctx)
	if err != nil {
		return domain.DailyLedger{}, err
	}
	return ledgers.Get(date)
}

// AddFood appends an already built entry to the ledger of date.
func (s *DiaryService) AddFood(ctx context.Context, date string, entry domain.FoodEntry) error {
	if _, err := domain.ParseDay(date); err != nil {
		return err
	}
	if err := entry.Validate(); err != nil {
		return err
	}

	err := s.mutate(ctx, "add food", func(ledgers domain.Ledgers) error {
		return ledgers.AddFood(date, entry)
	})
	if err != nil {
		return err
	}

	s.logger.Info("food logged",
		zap.String("date", date),
		zap.String("meal", string(entry.ConsumedMeal)),
		zap.String("name", entry.Name),
		zap.Float64("servings", entry.Servings))

	if s.worker != nil {
		s.worker.Enqueue(entry)
	}
	return nil
}

// LogFood builds a new entry from input and adds it. An empty date means today.
func (s *DiaryService) LogFood(ctx context.Context, input domain.FoodEntryInput) (domain.FoodEntry, error) {
	if input.Date == "" {
		input.Date = s.Today()
	}

	entry, err := domain.NewFoodEntry(input)
	if err != nil {
		return domain.FoodEntry{}, err
	}
	entry.LoggedAt = s.now().UTC()

	if err := s.AddFood(ctx, entry.ConsumedDate, entry); err != nil {
		return domain.FoodEntry{}, err
	}
	return entry, nil
}

func (s *DiaryService) RemoveFood(ctx context.Context, date, id string) (domain.FoodEntry, error) {
	if _, err := domain.ParseDay(date); err != nil {
		return domain.FoodEntry{}, err
	}

	var removed domain.FoodEntry
	err := s.mutate(ctx, "remove food", func(ledgers domain.Ledgers) error {
		var err error
		removed, err = ledgers.RemoveFood(date, id)
		return err
	})
	if err != nil {
		return domain.FoodEntry{}, err
	}

	s.logger.Info("food removed", zap.String("date", date), zap.String("id", id))
	return removed, nil
}

// AddWater adjusts the glass counter of date by delta and returns the new
// count. The counter never drops below zero.
func (s *DiaryService) AddWater(ctx context.Context, date string, delta int) (int, error) {
	if _, err := domain.ParseDay(date); err != nil {
		return 0, err
	}

	var glasses int
	err := s.mutate(ctx, "add water", func(ledgers domain.Ledgers) error {
		var err error
		glasses, err = ledgers.AddWater(date, delta)
		return err
	})
	if err != nil {
		return 0, err
	}
	return glasses, nil
}

// SetWeight records weight for date. Weights are stored in kilograms; unit
// names the unit the value was entered in and defaults to kg.
func (s *DiaryService) SetWeight(ctx context.Context, date string, weight float64, unit domain.WeightUnit) error {
	if _, err := domain.ParseDay(date); err != nil {
		return err
	}
	if unit == "" {
		unit = domain.WeightUnitKg
	}
	if unit != domain.WeightUnitKg && unit != domain.WeightUnitLbs {
		return domain.ErrInvalidWeightUnit
	}

	kg := domain.ConvertWeight(weight, unit, domain.WeightUnitKg)
	err := s.mutate(ctx, "set weight", func(ledgers domain.Ledgers) error {
		return ledgers.SetWeight(date, kg)
	})
	if err != nil {
		return err
	}

	s.logger.Info("weight recorded", zap.String("date", date), zap.Float64("kg", kg))
	return nil
}

// WeeklyWindow returns the ledgers that exist among the days calendar days
// ending at end, oldest first.
func (s *DiaryService) WeeklyWindow(ctx context.Context, end string, days int) ([]domain.DailyLedger, error) {
	if _, err := domain.ParseDay(end); err != nil {
		return nil, err
	}
	if days < 1 || days > domain.MaxWindowDays {
		return nil, domain.ErrInvalidWindow
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	ledgers, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	return ledgers.Window(end, days)
}

func (s *DiaryService) mutate(ctx context.Context, op string, apply func(domain.Ledgers) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	ledgers, err := s.load(ctx)
	if err != nil {
		return err
	}
	if err := apply(ledgers); err != nil {
		return err
	}
	if err := s.save(ctx, ledgers); err != nil {
		s.logger.Error("failed to persist ledgers", zap.String("op", op), zap.Error(err))
		return err
	}
	return nil
}

func (s *DiaryService) load(ctx context.Context) (domain.Ledgers, error) {
	data, err := s.store.Get(ctx, domain.LedgersKey)
	if errors.Is(err, domain.ErrKeyNotFound) {
		return domain.NewLedgers(), nil
	}
	if err != nil {
		s.logger.Error("failed to load ledgers", zap.Error(err))
		return nil, &domain.PersistenceError{Op: "load", Key: domain.LedgersKey, Err: err}
	}

	ledgers, err := domain.UnmarshalLedgers(data)
	if err != nil {
		s.logger.Error("stored ledgers are unreadable", zap.Error(err))
		return nil, &domain.PersistenceError{Op: "decode", Key: domain.LedgersKey, Err: err}
	}
	return ledgers, nil
}

func (s *DiaryService) save(ctx context.Context, ledgers domain.Ledgers) error {
	data, err := domain.MarshalLedgers(ledgers)
	if err != nil {
		return &domain.PersistenceError{Op: "encode", Key: domain.LedgersKey, Err: err}
	}
	if err := s.store.Set(ctx, domain.LedgersKey, data); err != nil {
		return &domain.PersistenceError{Op: "save", Key: domain.LedgersKey, Err: err}
	}
	return nil
}
