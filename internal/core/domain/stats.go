package domain

type MealSummary struct {
	Meal    MealSlot    `json:"meal"`
	Entries []FoodEntry `json:"entries"`
	Totals  Nutrition   `json:"totals"`
}

// DailySummary is the dashboard view of one day.
type DailySummary struct {
	Date         string        `json:"date"`
	Label        string        `json:"label"`
	Meals        []MealSummary `json:"meals"`
	Totals       Nutrition     `json:"totals"`
	Remaining    Macros        `json:"remaining"`
	Progress     Macros        `json:"progress"`
	Goals        GoalProfile   `json:"goals"`
	WaterGlasses int           `json:"waterGlasses"`
	Weight       *float64      `json:"weight,omitempty"`
	WeightUnit   WeightUnit    `json:"weightUnit"`
}

type WeeklySummary struct {
	StartDate    string        `json:"startDate"`
	EndDate      string        `json:"endDate"`
	Days         int           `json:"days"`
	Stat         Stat          `json:"stat"`
	Goal         float64       `json:"goal"`
	Max          float64       `json:"max"`
	Average      float64       `json:"average"`
	DaysOverGoal int           `json:"daysOverGoal"`
	WeightUnit   WeightUnit    `json:"weightUnit"`
	Points       []SeriesPoint `json:"points"`
}
