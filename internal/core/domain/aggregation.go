package domain

// The functions in this file derive every read-side view from ledgers.
// They do no I/O and never modify their inputs.

// Macros is the four-field view used for budgets and progress.
type Macros struct {
	Calories float64 `json:"calories"`
	Protein  float64 `json:"protein"`
	Carbs    float64 `json:"carbs"`
	Fat      float64 `json:"fat"`
}

type SeriesPoint struct {
	Day      string   `json:"day"`
	Label    string   `json:"label"`
	Value    float64  `json:"value"`
	Goal     float64  `json:"goal"`
	OverGoal bool     `json:"overGoal"`
	Weight   *float64 `json:"weight,omitempty"`
	Water    int      `json:"water"`
}

// MealTotals sums the effective nutrition of the entries logged for meal.
// Each entry is rounded before it is added, so totals are sums of rounded
// values rather than a rounded exact sum.
func MealTotals(l DailyLedger, meal MealSlot) Nutrition {
	total := ZeroNutrition()
	for _, f := range l.Foods {
		if f.ConsumedMeal == meal {
			total = total.Add(f.EffectiveNutrition())
		}
	}
	return total
}

func DailyTotals(l DailyLedger) Nutrition {
	total := ZeroNutrition()
	for _, f := range l.Foods {
		total = total.Add(f.EffectiveNutrition())
	}
	return total
}

// Remaining is goal minus consumed per macro. Negative values mean the
// budget is exceeded; clamping for display is left to the caller.
func Remaining(totals Nutrition, goals GoalProfile) Macros {
	return Macros{
		Calories: goals.DailyCalorieGoal - totals.Calories,
		Protein:  goals.DailyProteinGoal - totals.Protein,
		Carbs:    goals.DailyCarbsGoal - totals.Carbs,
		Fat:      goals.DailyFatGoal - totals.Fat,
	}
}

// Progress expresses consumption as a percentage of each goal. A zero goal
// yields zero rather than an infinite percentage.
func Progress(totals Nutrition, goals GoalProfile) Macros {
	return Macros{
		Calories: percentOf(totals.Calories, goals.DailyCalorieGoal),
		Protein:  percentOf(totals.Protein, goals.DailyProteinGoal),
		Carbs:    percentOf(totals.Carbs, goals.DailyCarbsGoal),
		Fat:      percentOf(totals.Fat, goals.DailyFatGoal),
	}
}

// WeeklySeries builds one chart point per ledger, in the order given.
// Days without a ledger produce no point.
func WeeklySeries(ledgers []DailyLedger, goals GoalProfile, stat Stat) ([]SeriesPoint, error) {
	if _, err := ParseStat(string(stat)); err != nil {
		return nil, err
	}

	goal := goals.Target(stat)
	points := make([]SeriesPoint, 0, len(ledgers))
	for _, l := range ledgers {
		value := DailyTotals(l).Value(stat)

		var weight *float64
		if l.Weight != nil {
			weight = Float(*l.Weight)
		}

		points = append(points, SeriesPoint{
			Day:      l.Date,
			Label:    DayLabel(l.Date),
			Value:    value,
			Goal:     goal,
			OverGoal: value > goal,
			Weight:   weight,
			Water:    l.WaterGlasses,
		})
	}
	return points, nil
}

// MaxForScale is the chart ceiling: the goal, or the largest value if any
// day went over it. An all-zero week still scales to the goal.
func MaxForScale(series []SeriesPoint, goal float64) float64 {
	top := goal
	for _, p := range series {
		top = max(top, p.Value)
	}
	return top
}

func percentOf(v, goal float64) float64 {
	if goal == 0 {
		return 0
	}
	return v / goal * 100
}
