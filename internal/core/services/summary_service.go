package services

import (
	"context"
	"math"

	"github.com/comitanigiacomo/kanso-food-diary/internal/core/domain"
)

type LedgerReader interface {
	GetLedger(ctx context.Context, date string) (domain.DailyLedger, error)
	WeeklyWindow(ctx context.Context, end string, days int) ([]domain.DailyLedger, error)
}

type GoalReader interface {
	Get(ctx context.Context) (domain.GoalProfile, error)
}

// SummaryService combines ledgers with the goal profile into the read views
// shown on the dashboard and the progress chart.
type SummaryService struct {
	ledgers LedgerReader
	goals   GoalReader
}

func NewSummaryService(ledgers LedgerReader, goals GoalReader) *SummaryService {
	return &SummaryService{
		ledgers: ledgers,
		goals:   goals,
	}
}

func (s *SummaryService) Daily(ctx context.Context, date string) (*domain.DailySummary, error) {
	ledger, err := s.ledgers.GetLedger(ctx, date)
	if err != nil {
		return nil, err
	}
	goals, err := s.goals.Get(ctx)
	if err != nil {
		return nil, err
	}

	meals := make([]domain.MealSummary, 0, len(domain.Meals()))
	for _, meal := range domain.Meals() {
		entries := make([]domain.FoodEntry, 0)
		for _, f := range ledger.Foods {
			if f.ConsumedMeal == meal {
				entries = append(entries, f)
			}
		}
		meals = append(meals, domain.MealSummary{
			Meal:    meal,
			Entries: entries,
			Totals:  domain.MealTotals(ledger, meal),
		})
	}

	totals := domain.DailyTotals(ledger)

	return &domain.DailySummary{
		Date:         ledger.Date,
		Label:        domain.DayLabel(ledger.Date),
		Meals:        meals,
		Totals:       totals,
		Remaining:    domain.Remaining(totals, goals),
		Progress:     domain.Progress(totals, goals),
		Goals:        goals,
		WaterGlasses: ledger.WaterGlasses,
		Weight:       displayWeight(ledger.Weight, goals.WeightUnit),
		WeightUnit:   goals.WeightUnit,
	}, nil
}

func (s *SummaryService) Weekly(ctx context.Context, end string, days int, stat domain.Stat) (*domain.WeeklySummary, error) {
	if _, err := domain.ParseStat(string(stat)); err != nil {
		return nil, err
	}

	window, err := s.ledgers.WeeklyWindow(ctx, end, days)
	if err != nil {
		return nil, err
	}
	goals, err := s.goals.Get(ctx)
	if err != nil {
		return nil, err
	}

	points, err := domain.WeeklySeries(window, goals, stat)
	if err != nil {
		return nil, err
	}

	sum := 0.0
	over := 0
	for i := range points {
		points[i].Weight = displayWeight(points[i].Weight, goals.WeightUnit)
		sum += points[i].Value
		if points[i].OverGoal {
			over++
		}
	}

	average := 0.0
	if len(points) > 0 {
		average = math.Round(sum / float64(len(points)))
	}

	endDay, _ := domain.ParseDay(end)
	goal := goals.Target(stat)

	return &domain.WeeklySummary{
		StartDate:    domain.FormatDay(endDay.AddDate(0, 0, -(days - 1))),
		EndDate:      end,
		Days:         days,
		Stat:         stat,
		Goal:         goal,
		Max:          domain.MaxForScale(points, goal),
		Average:      average,
		DaysOverGoal: over,
		WeightUnit:   goals.WeightUnit,
		Points:       points,
	}, nil
}

// displayWeight converts a stored kilogram value into unit, to one decimal.
func displayWeight(kg *float64, unit domain.WeightUnit) *float64 {
	if kg == nil {
		return nil
	}
	v := domain.ConvertWeight(*kg, domain.WeightUnitKg, unit)
	return domain.Float(math.Round(v*10) / 10)
}
