package domain

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

type WeightUnit string

const (
	WeightUnitKg  WeightUnit = "kg"
	WeightUnitLbs WeightUnit = "lbs"
)

type Gender string

const (
	GenderMale   Gender = "male"
	GenderFemale Gender = "female"
)

var (
	ErrInvalidGoal       = fmt.Errorf("%w: goals must be finite numbers greater than zero", ErrValidation)
	ErrInvalidWeightUnit = fmt.Errorf("%w: weight unit must be kg or lbs", ErrValidation)
	ErrInvalidHeight     = fmt.Errorf("%w: height must be a finite number greater than zero", ErrValidation)
	ErrInvalidAge        = fmt.Errorf("%w: age must be a whole number between 1 and 150", ErrValidation)
	ErrInvalidGender     = fmt.Errorf("%w: gender must be male or female", ErrValidation)
)

// GoalProfile holds the user's daily targets. It lives under its own storage
// key, independent of the ledgers.
type GoalProfile struct {
	DailyCalorieGoal float64    `json:"dailyCalorieGoal"`
	DailyProteinGoal float64    `json:"dailyProteinGoal"`
	DailyCarbsGoal   float64    `json:"dailyCarbsGoal"`
	DailyFatGoal     float64    `json:"dailyFatGoal"`
	WeightUnit       WeightUnit `json:"weightUnit"`
	Height           *float64   `json:"height,omitempty"`
	Age              *int       `json:"age,omitempty"`
	Gender           Gender     `json:"gender,omitempty"`
}

func DefaultGoalProfile() GoalProfile {
	return GoalProfile{
		DailyCalorieGoal: 2000,
		DailyProteinGoal: 150,
		DailyCarbsGoal:   250,
		DailyFatGoal:     65,
		WeightUnit:       WeightUnitKg,
	}
}

func (g GoalProfile) Validate() error {
	for _, v := range []float64{g.DailyCalorieGoal, g.DailyProteinGoal, g.DailyCarbsGoal, g.DailyFatGoal} {
		if !finitePositive(v) {
			return ErrInvalidGoal
		}
	}
	if g.WeightUnit != WeightUnitKg && g.WeightUnit != WeightUnitLbs {
		return ErrInvalidWeightUnit
	}
	if g.Height != nil && !finitePositive(*g.Height) {
		return ErrInvalidHeight
	}
	if g.Age != nil && (*g.Age < 1 || *g.Age > 150) {
		return ErrInvalidAge
	}
	if g.Gender != "" && g.Gender != GenderMale && g.Gender != GenderFemale {
		return ErrInvalidGender
	}
	return nil
}

func (g GoalProfile) Target(stat Stat) float64 {
	switch stat {
	case StatCalories:
		return g.DailyCalorieGoal
	case StatProtein:
		return g.DailyProteinGoal
	case StatCarbs:
		return g.DailyCarbsGoal
	case StatFat:
		return g.DailyFatGoal
	default:
		return 0
	}
}

// GoalPatch carries a partial update; nil fields keep their current value.
type GoalPatch struct {
	DailyCalorieGoal *float64    `json:"dailyCalorieGoal"`
	DailyProteinGoal *float64    `json:"dailyProteinGoal"`
	DailyCarbsGoal   *float64    `json:"dailyCarbsGoal"`
	DailyFatGoal     *float64    `json:"dailyFatGoal"`
	WeightUnit       *WeightUnit `json:"weightUnit"`
	Height           *float64    `json:"height"`
	Age              *int        `json:"age"`
	Gender           *Gender     `json:"gender"`
}

func (p GoalPatch) Apply(g GoalProfile) GoalProfile {
	if p.DailyCalorieGoal != nil {
		g.DailyCalorieGoal = *p.DailyCalorieGoal
	}
	if p.DailyProteinGoal != nil {
		g.DailyProteinGoal = *p.DailyProteinGoal
	}
	if p.DailyCarbsGoal != nil {
		g.DailyCarbsGoal = *p.DailyCarbsGoal
	}
	if p.DailyFatGoal != nil {
		g.DailyFatGoal = *p.DailyFatGoal
	}
	if p.WeightUnit != nil {
		g.WeightUnit = *p.WeightUnit
	}
	if p.Height != nil {
		g.Height = Float(*p.Height)
	}
	if p.Age != nil {
		age := *p.Age
		g.Age = &age
	}
	if p.Gender != nil {
		g.Gender = *p.Gender
	}
	return g
}

// GoalInput is the raw text of a settings form.
type GoalInput struct {
	Calories   string
	Protein    string
	Carbs      string
	Fat        string
	WeightUnit string
	Height     string
	Age        string
	Gender     string
}

// ParseGoalInput turns form text into a validated profile. Malformed or empty
// goal fields are reported, never replaced with defaults; the caller decides
// whether to keep the previous profile. Height, age and gender may be blank.
func ParseGoalInput(in GoalInput) (GoalProfile, error) {
	var g GoalProfile
	var err error

	if g.DailyCalorieGoal, err = parseGoal(in.Calories); err != nil {
		return GoalProfile{}, fmt.Errorf("calorie goal: %w", err)
	}
	if g.DailyProteinGoal, err = parseGoal(in.Protein); err != nil {
		return GoalProfile{}, fmt.Errorf("protein goal: %w", err)
	}
	if g.DailyCarbsGoal, err = parseGoal(in.Carbs); err != nil {
		return GoalProfile{}, fmt.Errorf("carbs goal: %w", err)
	}
	if g.DailyFatGoal, err = parseGoal(in.Fat); err != nil {
		return GoalProfile{}, fmt.Errorf("fat goal: %w", err)
	}

	g.WeightUnit = WeightUnit(strings.ToLower(strings.TrimSpace(in.WeightUnit)))

	if h := strings.TrimSpace(in.Height); h != "" {
		v, err := strconv.ParseFloat(h, 64)
		if err != nil {
			return GoalProfile{}, ErrInvalidHeight
		}
		g.Height = Float(v)
	}
	if a := strings.TrimSpace(in.Age); a != "" {
		v, err := strconv.Atoi(a)
		if err != nil {
			return GoalProfile{}, ErrInvalidAge
		}
		g.Age = &v
	}
	g.Gender = Gender(strings.ToLower(strings.TrimSpace(in.Gender)))

	if err := g.Validate(); err != nil {
		return GoalProfile{}, err
	}
	return g, nil
}

func parseGoal(s string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) || v <= 0 {
		return 0, ErrInvalidGoal
	}
	return v, nil
}
