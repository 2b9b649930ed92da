package services

import (
	"case_team_app_go/models"
	"fmt"
)

// LawyerBounds is the team size policy for a case.
type LawyerBounds struct {
	Minimum     int `json:"minimum"`
	Recommended int `json:"recommended"`
	Maximum     int `json:"maximum"`
}

var complexityCapacity = map[models.Complexity]LawyerBounds{
	models.ComplexitySimple:      {Minimum: 1, Recommended: 2, Maximum: 2},
	models.ComplexityMedium:      {Minimum: 2, Recommended: 3, Maximum: 4},
	models.ComplexityComplex:     {Minimum: 3, Recommended: 4, Maximum: 6},
	models.ComplexityVeryComplex: {Minimum: 4, Recommended: 5, Maximum: 8},
}

// CapacityFor returns the table bounds for a complexity tier.
func CapacityFor(complexity models.Complexity) (LawyerBounds, bool) {
	bounds, ok := complexityCapacity[complexity]
	return bounds, ok
}

// EffectiveBounds returns the bounds the engine enforces for a case: the
// complexity table, with per-case overrides applied where set. Unknown
// tiers fall back to MEDIUM.
func EffectiveBounds(c *models.LegalCase) LawyerBounds {
	bounds, ok := complexityCapacity[c.Complexity]
	if !ok {
		bounds = complexityCapacity[models.ComplexityMedium]
	}

	if c.MinimumLawyersRequired > 0 {
		bounds.Minimum = c.MinimumLawyersRequired
	}
	if c.MaximumLawyersAllowed > 0 {
		bounds.Maximum = c.MaximumLawyersAllowed
	}

	// Keep the recommendation inside whatever the overrides allow
	if bounds.Recommended < bounds.Minimum {
		bounds.Recommended = bounds.Minimum
	}
	if bounds.Recommended > bounds.Maximum {
		bounds.Recommended = bounds.Maximum
	}
	return bounds
}

// ValidateBounds checks a case's override pair against its complexity
// tier. Zero values mean "use the table" and are resolved before checking.
func ValidateBounds(complexity models.Complexity, minimum, maximum int) error {
	if minimum < 0 || maximum < 0 {
		return fmt.Errorf("%w: bounds cannot be negative", ErrInvalidBounds)
	}
	bounds := EffectiveBounds(&models.LegalCase{
		Complexity:             complexity,
		MinimumLawyersRequired: minimum,
		MaximumLawyersAllowed:  maximum,
	})
	if bounds.Minimum < 1 {
		return fmt.Errorf("%w: minimum must be at least 1", ErrInvalidBounds)
	}
	if bounds.Minimum > bounds.Maximum {
		return fmt.Errorf("%w: minimum %d exceeds maximum %d", ErrInvalidBounds, bounds.Minimum, bounds.Maximum)
	}
	return nil
}
