package domain

import (
	"encoding/json"
	"fmt"
)

const MaxWindowDays = 366

// DailyLedger is everything recorded for one calendar date.
type DailyLedger struct {
	Date         string      `json:"date"`
	Foods        []FoodEntry `json:"foods"`
	WaterGlasses int         `json:"waterGlasses"`
	Weight       *float64    `json:"weight,omitempty"`
}

func NewDailyLedger(date string) DailyLedger {
	return DailyLedger{
		Date:  date,
		Foods: []FoodEntry{},
	}
}

func (l DailyLedger) Clone() DailyLedger {
	out := l
	out.Foods = make([]FoodEntry, len(l.Foods))
	copy(out.Foods, l.Foods)
	if l.Weight != nil {
		out.Weight = Float(*l.Weight)
	}
	return out
}

// Ledgers maps dates to their materialized ledgers. It is the unit that gets
// persisted: every mutation is applied to a loaded snapshot and the whole map
// is written back. The zero value is readable; mutations need a non-nil map.
type Ledgers map[string]DailyLedger

func NewLedgers() Ledgers {
	return make(Ledgers)
}

// Get returns a copy of the ledger stored for date, or an empty ledger when
// nothing was recorded that day. It never inserts into the map.
func (s Ledgers) Get(date string) (DailyLedger, error) {
	if _, err := ParseDay(date); err != nil {
		return DailyLedger{}, err
	}
	if l, ok := s[date]; ok {
		return l.Clone(), nil
	}
	return NewDailyLedger(date), nil
}

// AddFood appends entry to the ledger of date, creating the ledger if needed.
// The same product may be logged any number of times.
func (s Ledgers) AddFood(date string, entry FoodEntry) error {
	if _, err := ParseDay(date); err != nil {
		return err
	}
	if err := entry.Validate(); err != nil {
		return err
	}
	if entry.ConsumedDate != date {
		return ErrDateMismatch
	}

	l := s.materialize(date)
	l.Foods = append(l.Foods, entry)
	s[date] = l
	return nil
}

// RemoveFood deletes the entry with the given id from the ledger of date and
// returns it.
func (s Ledgers) RemoveFood(date, id string) (FoodEntry, error) {
	if _, err := ParseDay(date); err != nil {
		return FoodEntry{}, err
	}
	l, ok := s[date]
	if !ok {
		return FoodEntry{}, ErrEntryNotFound
	}

	for i, f := range l.Foods {
		if f.ID != id {
			continue
		}
		foods := make([]FoodEntry, 0, len(l.Foods)-1)
		foods = append(foods, l.Foods[:i]...)
		foods = append(foods, l.Foods[i+1:]...)
		l.Foods = foods
		s[date] = l
		return f, nil
	}
	return FoodEntry{}, ErrEntryNotFound
}

// AddWater adjusts the glass count of date by delta, never going below zero,
// and returns the new count.
func (s Ledgers) AddWater(date string, delta int) (int, error) {
	if _, err := ParseDay(date); err != nil {
		return 0, err
	}
	l := s.materialize(date)
	l.WaterGlasses = max(0, l.WaterGlasses+delta)
	s[date] = l
	return l.WaterGlasses, nil
}

// SetWeight records the weight observation of date, replacing any earlier one.
func (s Ledgers) SetWeight(date string, weight float64) error {
	if _, err := ParseDay(date); err != nil {
		return err
	}
	if !finitePositive(weight) {
		return ErrInvalidWeight
	}
	l := s.materialize(date)
	l.Weight = Float(weight)
	s[date] = l
	return nil
}

// Window returns the materialized ledgers among the days calendar days ending
// at end (inclusive), oldest first. Days without activity are skipped, so the
// result may be shorter than days.
func (s Ledgers) Window(end string, days int) ([]DailyLedger, error) {
	endDay, err := ParseDay(end)
	if err != nil {
		return nil, err
	}
	if days < 1 || days > MaxWindowDays {
		return nil, ErrInvalidWindow
	}

	out := make([]DailyLedger, 0, days)
	for i := days - 1; i >= 0; i-- {
		key := FormatDay(endDay.AddDate(0, 0, -i))
		if l, ok := s[key]; ok {
			out = append(out, l.Clone())
		}
	}
	return out, nil
}

func (s Ledgers) Clone() Ledgers {
	out := make(Ledgers, len(s))
	for k, l := range s {
		out[k] = l.Clone()
	}
	return out
}

func (s Ledgers) materialize(date string) DailyLedger {
	if l, ok := s[date]; ok {
		return l
	}
	return NewDailyLedger(date)
}

// MarshalLedgers encodes the store as a flat date -> ledger JSON object.
func MarshalLedgers(s Ledgers) ([]byte, error) {
	if s == nil {
		s = NewLedgers()
	}
	return json.Marshal(s)
}

// UnmarshalLedgers decodes a stored ledger map and checks that every ledger
// sits under its own date.
func UnmarshalLedgers(data []byte) (Ledgers, error) {
	s := NewLedgers()
	if len(data) == 0 {
		return s, nil
	}
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("decode ledgers: %w", err)
	}
	if s == nil {
		return NewLedgers(), nil
	}

	for key, l := range s {
		if _, err := ParseDay(key); err != nil {
			return nil, fmt.Errorf("decode ledgers: bad key %q: %w", key, err)
		}
		if l.Date == "" {
			l.Date = key
		}
		if l.Date != key {
			return nil, fmt.Errorf("decode ledgers: ledger dated %q stored under %q", l.Date, key)
		}
		if l.Foods == nil {
			l.Foods = []FoodEntry{}
		}
		s[key] = l
	}
	return s, nil
}
