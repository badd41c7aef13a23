package domain

import (
	"math"
	"strings"
)

// Nutrition holds the nutrient amounts of one reference serving.
// Fiber, Sugar and Salt are optional: nil means the source never declared them,
// which is different from a declared zero.
type Nutrition struct {
	Calories float64  `json:"calories"`
	Protein  float64  `json:"protein"`
	Carbs    float64  `json:"carbs"`
	Fat      float64  `json:"fat"`
	Fiber    *float64 `json:"fiber,omitempty"`
	Sugar    *float64 `json:"sugar,omitempty"`
	Salt     *float64 `json:"salt,omitempty"`
}

type Stat string

const (
	StatCalories Stat = "calories"
	StatProtein  Stat = "protein"
	StatCarbs    Stat = "carbs"
	StatFat      Stat = "fat"
)

func Stats() []Stat {
	return []Stat{StatCalories, StatProtein, StatCarbs, StatFat}
}

func ParseStat(s string) (Stat, error) {
	switch stat := Stat(strings.ToLower(strings.TrimSpace(s))); stat {
	case StatCalories, StatProtein, StatCarbs, StatFat:
		return stat, nil
	default:
		return "", ErrInvalidStat
	}
}

// Float returns a pointer to v, for filling optional nutrient fields.
func Float(v float64) *float64 {
	return &v
}

// Scale multiplies every present field by factor and applies the display
// rounding policy: macros and fiber/sugar to the nearest integer (halves away
// from zero, so 12.5 becomes 13), salt to three decimals. Salt is always
// present in the result; a missing source salt counts as zero.
func (n Nutrition) Scale(factor float64) Nutrition {
	out := Nutrition{
		Calories: math.Round(n.Calories * factor),
		Protein:  math.Round(n.Protein * factor),
		Carbs:    math.Round(n.Carbs * factor),
		Fat:      math.Round(n.Fat * factor),
	}
	if n.Fiber != nil {
		out.Fiber = Float(math.Round(*n.Fiber * factor))
	}
	if n.Sugar != nil {
		out.Sugar = Float(math.Round(*n.Sugar * factor))
	}
	out.Salt = Float(roundSalt(valueOf(n.Salt) * factor))
	return out
}

// Add sums two records field by field. Absent optional fields count as zero
// and the result always carries every field.
func (n Nutrition) Add(o Nutrition) Nutrition {
	return Nutrition{
		Calories: n.Calories + o.Calories,
		Protein:  n.Protein + o.Protein,
		Carbs:    n.Carbs + o.Carbs,
		Fat:      n.Fat + o.Fat,
		Fiber:    Float(valueOf(n.Fiber) + valueOf(o.Fiber)),
		Sugar:    Float(valueOf(n.Sugar) + valueOf(o.Sugar)),
		Salt:     Float(valueOf(n.Salt) + valueOf(o.Salt)),
	}
}

func (n Nutrition) Value(stat Stat) float64 {
	switch stat {
	case StatCalories:
		return n.Calories
	case StatProtein:
		return n.Protein
	case StatCarbs:
		return n.Carbs
	case StatFat:
		return n.Fat
	default:
		return 0
	}
}

func (n Nutrition) Validate() error {
	for _, v := range []float64{n.Calories, n.Protein, n.Carbs, n.Fat} {
		if !validAmount(v) {
			return ErrInvalidNutrition
		}
	}
	for _, p := range []*float64{n.Fiber, n.Sugar, n.Salt} {
		if p != nil && !validAmount(*p) {
			return ErrInvalidNutrition
		}
	}
	return nil
}

// ZeroNutrition is the identity for Add, with every optional field present.
func ZeroNutrition() Nutrition {
	return Nutrition{Fiber: Float(0), Sugar: Float(0), Salt: Float(0)}
}

func roundSalt(v float64) float64 {
	return math.Round(v*1000) / 1000
}

func valueOf(p *float64) float64 {
	if p == nil {
		return 0
	}
	return *p
}

func validAmount(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0) && v >= 0
}

func finitePositive(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0) && v > 0
}
