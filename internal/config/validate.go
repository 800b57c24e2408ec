package config

import (
	"errors"
	"fmt"

	"github.com/vovakirdan/tui-snake/internal/core"
)

// ErrInvalid is wrapped by every validation failure.
var ErrInvalid = errors.New("config: invalid")

// Validate checks the structural rules of a config. Capacity against the
// board is checked by the simulation, which owns the board size.
func (c SnakeConfig) Validate() error {
	if len(c.Speed) == 0 {
		return fmt.Errorf("%w: speed: at least one tier required", ErrInvalid)
	}
	if c.Speed[0].MinLength != 1 {
		return fmt.Errorf("%w: speed: first tier must start at length 1, got %d", ErrInvalid, c.Speed[0].MinLength)
	}
	for i, tier := range c.Speed {
		if tier.TickRate <= 0 {
			return fmt.Errorf("%w: speed[%d]: tick_rate must be positive", ErrInvalid, i)
		}
		switch tier.Skin {
		case SkinBase, SkinTier1, SkinTier2:
		default:
			return fmt.Errorf("%w: speed[%d]: unknown skin %q", ErrInvalid, i, tier.Skin)
		}
		if i == 0 {
			continue
		}
		prev := c.Speed[i-1]
		if tier.MinLength <= prev.MinLength {
			return fmt.Errorf("%w: speed[%d]: min_length must increase", ErrInvalid, i)
		}
		if tier.TickRate < prev.TickRate {
			return fmt.Errorf("%w: speed[%d]: tick_rate must not decrease", ErrInvalid, i)
		}
	}

	if c.Obstacles.Count < 0 {
		return fmt.Errorf("%w: obstacles.count must not be negative", ErrInvalid)
	}
	if c.Hazards.ShrinkAmount < 1 || c.Hazards.PenaltyAmount < 1 {
		return fmt.Errorf("%w: hazards: shrink amounts must be at least 1", ErrInvalid)
	}
	if c.Hazards.MaxActive < 0 || c.Bonus.MaxActive < 0 {
		return fmt.Errorf("%w: max_active must not be negative", ErrInvalid)
	}
	if c.Bonus.MinGrowth < 1 || c.Bonus.MaxGrowth < c.Bonus.MinGrowth {
		return fmt.Errorf("%w: bonus: growth range [%d,%d] is empty", ErrInvalid, c.Bonus.MinGrowth, c.Bonus.MaxGrowth)
	}

	colors := map[string]string{
		"snake":       c.Palette.Snake,
		"snake_tier1": c.Palette.SnakeTier1,
		"snake_tier2": c.Palette.SnakeTier2,
		"fruit":       c.Palette.Fruit,
		"obstacle":    c.Palette.Obstacle,
		"shrink":      c.Palette.Shrink,
		"penalty":     c.Palette.Penalty,
		"bonus":       c.Palette.Bonus,
		"border":      c.Palette.Border,
	}
	for key, name := range colors {
		if _, err := core.ParseColor(name); err != nil {
			return fmt.Errorf("%w: palette.%s: %v", ErrInvalid, key, err)
		}
	}
	return nil
}

// Budget returns the most board cells non-snake entities can claim at once:
// the fruit, the obstacle cluster, both hazard kinds and the bonus.
func (c SnakeConfig) Budget() int {
	return 1 + c.Obstacles.Count + 2*c.Hazards.MaxActive + c.Bonus.MaxActive
}
