package services

import (
	"context"
	"encoding/json"
	"errors"
	"sort"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/comitanigiacomo/kanso-food-diary/internal/core/domain"
)

// HistoryService keeps the most recent version of every food ever logged,
// keyed by barcode, so it can be re-logged without another catalogue lookup.
type HistoryService struct {
	mu     sync.Mutex
	store  domain.KVStore
	logger *zap.Logger
	now    func() time.Time
}

func NewHistoryService(store domain.KVStore, logger *zap.Logger) *HistoryService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &HistoryService{
		store:  store,
		logger: logger,
		now:    time.Now,
	}
}

func (s *HistoryService) Record(ctx context.Context, entry domain.FoodEntry) error {
	key := historyKey(entry)
	if key == "" {
		return domain.ErrEntryNameEmpty
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	items, err := s.load(ctx)
	if err != nil {
		return err
	}

	item := items[key]
	item.Entry = entry
	item.TimesUsed++
	item.LastUsedAt = s.now().UTC()
	items[key] = item

	data, err := json.Marshal(items)
	if err != nil {
		return &domain.PersistenceError{Op: "encode", Key: domain.HistoryKey, Err: err}
	}
	if err := s.store.Set(ctx, domain.HistoryKey, data); err != nil {
		s.logger.Error("failed to persist food history", zap.Error(err))
		return &domain.PersistenceError{Op: "save", Key: domain.HistoryKey, Err: err}
	}
	return nil
}

// List returns history items most recently used first. A limit of zero or
// less returns everything.
func (s *HistoryService) List(ctx context.Context, limit int) ([]domain.HistoryItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	items, err := s.load(ctx)
	if err != nil {
		return nil, err
	}

	list := make([]domain.HistoryItem, 0, len(items))
	for _, item := range items {
		list = append(list, item)
	}
	sort.Slice(list, func(i, j int) bool {
		if list[i].LastUsedAt.Equal(list[j].LastUsedAt) {
			return list[i].Entry.Name < list[j].Entry.Name
		}
		return list[i].LastUsedAt.After(list[j].LastUsedAt)
	})

	if limit > 0 && len(list) > limit {
		list = list[:limit]
	}
	return list, nil
}

func (s *HistoryService) load(ctx context.Context) (map[string]domain.HistoryItem, error) {
	items := make(map[string]domain.HistoryItem)

	data, err := s.store.Get(ctx, domain.HistoryKey)
	if errors.Is(err, domain.ErrKeyNotFound) {
		return items, nil
	}
	if err != nil {
		s.logger.Error("failed to load food history", zap.Error(err))
		return nil, &domain.PersistenceError{Op: "load", Key: domain.HistoryKey, Err: err}
	}

	if err := json.Unmarshal(data, &items); err != nil {
		return nil, &domain.PersistenceError{Op: "decode", Key: domain.HistoryKey, Err: err}
	}
	if items == nil {
		items = make(map[string]domain.HistoryItem)
	}
	return items, nil
}

// Foods typed in by hand have no barcode and are remembered by name.
func historyKey(entry domain.FoodEntry) string {
	if b := strings.TrimSpace(entry.Barcode); b != "" {
		return b
	}
	if name := strings.ToLower(strings.TrimSpace(entry.Name)); name != "" {
		return "name:" + name
	}
	return ""
}
