package planner

import (
	"alcyxob/fitness-planner/internal/domain"
	"fmt"
	"sort"
	"strings"
)

type ViolationKind string

const (
	ViolationMissing    ViolationKind = "missing"
	ViolationInvalid    ViolationKind = "invalid"
	ViolationUnexpected ViolationKind = "unexpected"
)

// Violation names one schema defect. Path is relative to the day when Day is set.
type Violation struct {
	Day     string        `json:"day,omitempty"`
	Path    string        `json:"path"`
	Kind    ViolationKind `json:"kind"`
	Message string        `json:"message"`
}

func (v Violation) String() string {
	if v.Day == "" {
		return fmt.Sprintf("%s: %s (%s)", v.Path, v.Message, v.Kind)
	}
	return fmt.Sprintf("%s.%s: %s (%s)", v.Day, v.Path, v.Message, v.Kind)
}

// Report is the validator output. An empty report means the plan passed.
type Report struct {
	Violations []Violation `json:"violations"`
}

func (r Report) OK() bool { return len(r.Violations) == 0 }

// Days lists the day keys that carry at least one violation, in order.
func (r Report) Days() []string {
	seen := map[string]bool{}
	for _, v := range r.Violations {
		if v.Day != "" {
			seen[v.Day] = true
		}
	}
	out := make([]string, 0, len(seen))
	for k := range seen {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

func (r Report) String() string {
	if r.OK() {
		return "ok"
	}
	parts := make([]string, len(r.Violations))
	for i, v := range r.Violations {
		parts[i] = v.String()
	}
	return strings.Join(parts, "; ")
}

type reporter struct {
	day string
	out []Violation
}

func (r *reporter) missing(path string) {
	r.out = append(r.out, Violation{Day: r.day, Path: path, Kind: ViolationMissing, Message: "required field is missing or empty"})
}

func (r *reporter) invalid(path, msg string) {
	r.out = append(r.out, Violation{Day: r.day, Path: path, Kind: ViolationInvalid, Message: msg})
}

// Validate checks the document against the plan schema. It never fails; defects are reported.
func Validate(p PartialPlan) Report {
	var out []Violation
	if !p.HasDays {
		out = append(out, Violation{Path: "days", Kind: ViolationMissing, Message: "per-day mapping not found"})
	}
	for _, key := range domain.DayKeys {
		day, ok := p.Days[key]
		if !ok || day == nil {
			out = append(out, Violation{Day: key, Path: key, Kind: ViolationMissing, Message: "day is missing"})
			continue
		}
		r := &reporter{day: key}
		validateDay(r, day)
		out = append(out, r.out...)
	}
	for _, k := range p.Unexpected {
		out = append(out, Violation{Day: k, Path: k, Kind: ViolationUnexpected, Message: "unknown day key"})
	}
	return Report{Violations: out}
}

func validateDay(r *reporter, d *PartialDay) {
	if w := d.Workout; w == nil {
		r.missing("workout")
	} else {
		if len(w.Focus) == 0 {
			r.missing("workout.focus")
		}
		if len(w.Blocks) == 0 {
			r.missing("workout.blocks")
		}
		for i, b := range w.Blocks {
			bp := fmt.Sprintf("workout.blocks[%d]", i)
			if b.Name == "" {
				r.missing(bp + ".name")
			}
			if len(b.Items) == 0 {
				r.missing(bp + ".items")
			}
			for j, it := range b.Items {
				ip := fmt.Sprintf("%s.items[%d]", bp, j)
				if strings.TrimSpace(it.Exercise) == "" {
					r.missing(ip + ".exercise")
				}
				if it.Sets <= 0 {
					r.invalid(ip+".sets", "sets must be a positive number")
				}
				if strings.TrimSpace(it.Reps) == "" {
					r.missing(ip + ".reps")
				}
			}
		}
	}

	if n := d.Nutrition; n == nil {
		r.missing("nutrition")
	} else {
		if n.TotalKcal == nil {
			r.missing("nutrition.total_kcal")
		} else if *n.TotalKcal <= 0 {
			r.invalid("nutrition.total_kcal", "energy total must be positive")
		}
		if n.ProteinG == nil {
			r.missing("nutrition.protein_g")
		} else if *n.ProteinG <= 0 {
			r.invalid("nutrition.protein_g", "protein total must be positive")
		}
		if len(n.Meals) == 0 {
			r.missing("nutrition.meals")
		}
		for i, m := range n.Meals {
			mp := fmt.Sprintf("nutrition.meals[%d]", i)
			if strings.TrimSpace(m.Name) == "" {
				r.missing(mp + ".name")
			}
			if len(m.Items) == 0 {
				r.missing(mp + ".items")
			}
			for j, it := range m.Items {
				ip := fmt.Sprintf("%s.items[%d]", mp, j)
				if strings.TrimSpace(it.Food) == "" {
					r.missing(ip + ".food")
				}
				if strings.TrimSpace(it.Qty) == "" {
					r.missing(ip + ".qty")
				}
			}
		}
	}

	if rec := d.Recovery; rec == nil {
		r.missing("recovery")
	} else {
		if len(rec.Mobility) == 0 {
			r.missing("recovery.mobility")
		}
		if len(rec.Sleep) == 0 {
			r.missing("recovery.sleep")
		}
	}

	if strings.TrimSpace(d.Reason) == "" {
		r.missing("reason")
	}
}
