package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

type MealSlot string

const (
	MealBreakfast MealSlot = "breakfast"
	MealLunch     MealSlot = "lunch"
	MealDinner    MealSlot = "dinner"
	MealSnacks    MealSlot = "snacks"
)

const DefaultServingSize = "100g"

func Meals() []MealSlot {
	return []MealSlot{MealBreakfast, MealLunch, MealDinner, MealSnacks}
}

func ParseMeal(s string) (MealSlot, error) {
	switch meal := MealSlot(strings.ToLower(strings.TrimSpace(s))); meal {
	case MealBreakfast, MealLunch, MealDinner, MealSnacks:
		return meal, nil
	default:
		return "", ErrInvalidMeal
	}
}

// FoodEntry is one confirmed consumption event. Entries are never edited in
// place; correcting one means removing it and logging a new one.
type FoodEntry struct {
	ID           string    `json:"id"`
	Barcode      string    `json:"barcode"`
	Name         string    `json:"name"`
	Brand        string    `json:"brand,omitempty"`
	ServingSize  string    `json:"servingSize"`
	ImageURL     string    `json:"imageUrl,omitempty"`
	Nutrition    Nutrition `json:"nutrition"`
	Servings     float64   `json:"servings"`
	ConsumedDate string    `json:"consumedDate"`
	ConsumedMeal MealSlot  `json:"consumedMeal"`
	LoggedAt     time.Time `json:"loggedAt"`
}

type FoodEntryInput struct {
	Barcode     string
	Name        string
	Brand       string
	ServingSize string
	ImageURL    string
	Nutrition   Nutrition
	Servings    float64
	Date        string
	Meal        MealSlot
}

func NewFoodEntry(in FoodEntryInput) (FoodEntry, error) {
	servingSize := strings.TrimSpace(in.ServingSize)
	if servingSize == "" {
		servingSize = DefaultServingSize
	}

	entry := FoodEntry{
		ID:           uuid.NewString(),
		Barcode:      strings.TrimSpace(in.Barcode),
		Name:         strings.TrimSpace(in.Name),
		Brand:        strings.TrimSpace(in.Brand),
		ServingSize:  servingSize,
		ImageURL:     strings.TrimSpace(in.ImageURL),
		Nutrition:    in.Nutrition,
		Servings:     in.Servings,
		ConsumedDate: strings.TrimSpace(in.Date),
		ConsumedMeal: MealSlot(strings.ToLower(strings.TrimSpace(string(in.Meal)))),
		LoggedAt:     time.Now().UTC(),
	}

	if err := entry.Validate(); err != nil {
		return FoodEntry{}, err
	}
	return entry, nil
}

func (e FoodEntry) Validate() error {
	if strings.TrimSpace(e.Name) == "" {
		return ErrEntryNameEmpty
	}
	if !finitePositive(e.Servings) {
		return ErrInvalidServings
	}
	if _, err := ParseMeal(string(e.ConsumedMeal)); err != nil {
		return err
	}
	if _, err := ParseDay(e.ConsumedDate); err != nil {
		return err
	}
	return e.Nutrition.Validate()
}

// EffectiveNutrition is the entry's nutrition scaled by its serving count.
func (e FoodEntry) EffectiveNutrition() Nutrition {
	return e.Nutrition.Scale(e.Servings)
}
