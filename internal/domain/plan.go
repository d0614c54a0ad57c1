package domain

import "time"

// DayKeys are the seven ordinal slot keys, in order. They are never calendar weekdays.
var DayKeys = [7]string{"day1", "day2", "day3", "day4", "day5", "day6", "day7"}

// ExerciseItem is a single prescribed exercise inside a block.
type ExerciseItem struct {
	Exercise      string   `bson:"exercise" json:"exercise"`
	Sets          int      `bson:"sets" json:"sets"`
	Reps          string   `bson:"reps" json:"reps"`
	RIR           string   `bson:"rir,omitempty" json:"RIR,omitempty"`
	RPE           string   `bson:"rpe,omitempty" json:"RPE,omitempty"`
	Tempo         string   `bson:"tempo,omitempty" json:"tempo,omitempty"`
	Rest          string   `bson:"rest,omitempty" json:"rest,omitempty"`
	Load          string   `bson:"load,omitempty" json:"load,omitempty"`
	Substitutions []string `bson:"substitutions,omitempty" json:"substitutions,omitempty"`
}

// Block is a named group of exercise items (warm-up, main, cool-down...).
type Block struct {
	Name  string         `bson:"name" json:"name"`
	Items []ExerciseItem `bson:"items" json:"items"`
}

type Workout struct {
	Focus  []string `bson:"focus" json:"focus"`
	Blocks []Block  `bson:"blocks" json:"blocks"`
	Notes  string   `bson:"notes,omitempty" json:"notes"`
}

type Macros struct {
	Kcal     float64 `bson:"kcal,omitempty" json:"kcal,omitempty"`
	ProteinG float64 `bson:"proteinG,omitempty" json:"protein_g,omitempty"`
	CarbsG   float64 `bson:"carbsG,omitempty" json:"carbs_g,omitempty"`
	FatG     float64 `bson:"fatG,omitempty" json:"fat_g,omitempty"`
}

// MealItem must always carry both a food name and a quantity.
type MealItem struct {
	Food   string  `bson:"food" json:"food"`
	Qty    string  `bson:"qty" json:"qty"`
	Macros *Macros `bson:"macros,omitempty" json:"macros,omitempty"`
}

type Meal struct {
	Name  string     `bson:"name" json:"name"`
	Items []MealItem `bson:"items" json:"items"`
}

type Nutrition struct {
	TotalKcal  int     `bson:"totalKcal" json:"total_kcal"`
	ProteinG   int     `bson:"proteinG" json:"protein_g"`
	Meals      []Meal  `bson:"meals" json:"meals"`
	HydrationL float64 `bson:"hydrationL" json:"hydration_l"`
}

type Recovery struct {
	Mobility    []string `bson:"mobility" json:"mobility"`
	Sleep       []string `bson:"sleep" json:"sleep"`
	CareNotes   []string `bson:"careNotes,omitempty" json:"careNotes,omitempty"`
	Supplements []string `bson:"supplements,omitempty" json:"supplements,omitempty"`
}

type DayPlan struct {
	Workout   Workout   `bson:"workout" json:"workout"`
	Nutrition Nutrition `bson:"nutrition" json:"nutrition"`
	Recovery  Recovery  `bson:"recovery" json:"recovery"`
	Reason    string    `bson:"reason" json:"reason"`
}

// WeeklyPlan is the output contract: exactly the seven DayKeys plus plan-level metadata.
type WeeklyPlan struct {
	Days                 map[string]DayPlan `bson:"days" json:"days"`
	CreatedAt            time.Time          `bson:"createdAt" json:"createdAt"`
	Locked               bool               `bson:"locked" json:"locked"`
	EstimatedWeeksToGoal int                `bson:"estimatedWeeksToGoal" json:"estimatedWeeksToGoal"`
}

// Clone returns a deep copy so pipeline stages never share slices with their input.
func (p WeeklyPlan) Clone() WeeklyPlan {
	out := p
	out.Days = make(map[string]DayPlan, len(p.Days))
	for k, d := range p.Days {
		out.Days[k] = d.Clone()
	}
	return out
}

func (d DayPlan) Clone() DayPlan {
	out := d
	out.Workout.Focus = append([]string(nil), d.Workout.Focus...)
	out.Workout.Blocks = make([]Block, len(d.Workout.Blocks))
	for i, b := range d.Workout.Blocks {
		nb := Block{Name: b.Name, Items: make([]ExerciseItem, len(b.Items))}
		for j, it := range b.Items {
			it.Substitutions = append([]string(nil), it.Substitutions...)
			nb.Items[j] = it
		}
		out.Workout.Blocks[i] = nb
	}
	out.Nutrition.Meals = make([]Meal, len(d.Nutrition.Meals))
	for i, m := range d.Nutrition.Meals {
		nm := Meal{Name: m.Name, Items: make([]MealItem, len(m.Items))}
		for j, it := range m.Items {
			if it.Macros != nil {
				mc := *it.Macros
				it.Macros = &mc
			}
			nm.Items[j] = it
		}
		out.Nutrition.Meals[i] = nm
	}
	out.Recovery.Mobility = append([]string(nil), d.Recovery.Mobility...)
	out.Recovery.Sleep = append([]string(nil), d.Recovery.Sleep...)
	out.Recovery.CareNotes = append([]string(nil), d.Recovery.CareNotes...)
	out.Recovery.Supplements = append([]string(nil), d.Recovery.Supplements...)
	return out
}
