// Package insight owns the numeric computations behind generated
// insights: year-over-year percentage changes and their direction words.
// The language model never computes these values, it only phrases them;
// the auditor recomputes them with the same functions.
package insight

import (
	"math"
)

// Direction words used in generated prose.
const (
	DirectionUp   = "aumentó"
	DirectionDown = "disminuyó"
)

// Change is a computed percentage change for one metric. Pct is nil when
// the prior-period value is absent or zero, which makes the change
// undefined; an undefined change must be reported as such, never
// fabricated.
type Change struct {
	Current float64  `json:"current"`
	Prior   float64  `json:"prior"`
	Pct     *float64 `json:"pct,omitempty"`
}

// PctChange computes the signed percentage change between a current and a
// prior value: (current - prior) / prior * 100.
func PctChange(current, prior float64) Change {
	res := Change{Current: current, Prior: prior}
	if prior <= 0 {
		return res
	}
	pct := (current - prior) / prior * 100
	res.Pct = &pct
	return res
}

// Defined reports whether the percentage change could be computed.
func (c Change) Defined() bool {
	return c.Pct != nil
}

// Direction returns the direction word for the change, empty when the
// change is undefined. A zero change counts as an increase.
func (c Change) Direction() string {
	if c.Pct == nil {
		return ""
	}
	if *c.Pct >= 0 {
		return DirectionUp
	}
	return DirectionDown
}

// Magnitude returns the absolute percentage change rounded to one
// decimal, 0 when undefined.
func (c Change) Magnitude() float64 {
	if c.Pct == nil {
		return 0
	}
	return Round1(math.Abs(*c.Pct))
}

// Round1 rounds to one decimal place.
func Round1(f float64) float64 {
	return math.Round(f*10) / 10
}
