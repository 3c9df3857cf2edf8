package campus

import (
	"fmt"
	"strings"
)

// Category is one of the five ordered qualitative performance tiers.
// The underlying numeric score that produced a category must never be
// surfaced in generated prose, only the category word.
type Category string

const (
	Deficiente    Category = "deficiente"
	Regular       Category = "regular"
	Satisfactorio Category = "satisfactorio"
	Sobresaliente Category = "sobresaliente"
	Excepcional   Category = "excepcional"
)

// Categories returns the vocabulary ordered from worst to best.
func Categories() []Category {
	return []Category{
		Deficiente, Regular, Satisfactorio, Sobresaliente, Excepcional,
	}
}

// Valid reports whether the category belongs to the vocabulary.
func (c Category) Valid() bool {
	switch c {
	case Deficiente, Regular, Satisfactorio, Sobresaliente, Excepcional:
		return true
	}
	return false
}

// ParseCategory converts a raw string to a registered Category.
func ParseCategory(s string) (Category, error) {
	c := Category(strings.ToLower(strings.TrimSpace(s)))
	if !c.Valid() {
		return "", fmt.Errorf("unknown category %q", s)
	}
	return c, nil
}

// CategoryFromScore maps an underlying numeric score to its category tier.
// Ranges: 0-75 deficiente, 76-100 regular, 101-120 satisfactorio,
// 121-140 sobresaliente, 141+ excepcional.
func CategoryFromScore(score int) Category {
	switch {
	case score <= 75:
		return Deficiente
	case score <= 100:
		return Regular
	case score <= 120:
		return Satisfactorio
	case score <= 140:
		return Sobresaliente
	default:
		return Excepcional
	}
}
