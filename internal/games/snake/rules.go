package snake

import (
	"fmt"

	"github.com/vovakirdan/tui-snake/internal/config"
	"github.com/vovakirdan/tui-snake/internal/core"
)

// Palette holds the render color of each entity.
type Palette struct {
	Snake      core.Color
	SnakeTier1 core.Color
	SnakeTier2 core.Color
	Fruit      core.Color
	Obstacle   core.Color
	Shrink     core.Color
	Penalty    core.Color
	Bonus      core.Color
	Border     core.Color
}

// SnakeColor returns the body color for skin.
func (p Palette) SnakeColor(s Skin) core.Color {
	switch s {
	case SkinTier1:
		return p.SnakeTier1
	case SkinTier2:
		return p.SnakeTier2
	default:
		return p.Snake
	}
}

// ColorOf returns the color of an entity kind.
func (p Palette) ColorOf(k Kind) core.Color {
	switch k {
	case KindFruit:
		return p.Fruit
	case KindObstacle:
		return p.Obstacle
	case KindShrink:
		return p.Shrink
	case KindPenalty:
		return p.Penalty
	case KindBonus:
		return p.Bonus
	default:
		return core.ColorDefault
	}
}

// Rules is the complete rule set of one simulation.
type Rules struct {
	Speed         []SpeedTier
	Events        EventScheduler
	ObstacleCount int
	ShrinkAmount  int
	PenaltyAmount int
	HazardLimit   int // per hazard kind
	BonusMin      int
	BonusMax      int
	BonusLimit    int
	Palette       Palette
	StartDir      Direction // direction at simulation start; resets draw at random
}

// MaxBudget is the most cells non-snake entities may claim. The other
// half of the board is left to the snake and to free-cell sampling.
const MaxBudget = BoardCells / 2

// DefaultRules returns the canonical rule set.
func DefaultRules() Rules {
	rules, err := RulesFromConfig(config.DefaultSnakeConfig())
	if err != nil {
		panic(fmt.Sprintf("snake: default rules invalid: %v", err))
	}
	return rules
}

// ClassicRules returns the fruit-only rule set at a constant speed.
func ClassicRules() Rules {
	rules, err := RulesFromConfig(config.ClassicSnakeConfig())
	if err != nil {
		panic(fmt.Sprintf("snake: classic rules invalid: %v", err))
	}
	return rules
}

// RulesFromConfig converts and validates a loaded config.
func RulesFromConfig(cfg config.SnakeConfig) (Rules, error) {
	if err := cfg.Validate(); err != nil {
		return Rules{}, err
	}
	if budget := cfg.Budget(); budget > MaxBudget {
		return Rules{}, fmt.Errorf("%w: entities may claim %d cells, at most %d allowed", config.ErrInvalid, budget, MaxBudget)
	}

	palette, err := paletteFromConfig(cfg.Palette)
	if err != nil {
		return Rules{}, err
	}

	tiers := make([]SpeedTier, len(cfg.Speed))
	for i, t := range cfg.Speed {
		tiers[i] = SpeedTier{MinLength: t.MinLength, TickRate: t.TickRate, Skin: skinFromConfig(t.Skin)}
	}

	return Rules{
		Speed: tiers,
		Events: EventScheduler{
			Bonus:   Gate{N: cfg.Events.BonusAfterFruit},
			Penalty: Gate{N: cfg.Events.PenaltyAfterFruit},
			Shrink:  Gate{N: cfg.Events.ShrinkAfterFruit},
			Lottery: Gate{N: cfg.Events.BonusLottery},
		},
		ObstacleCount: cfg.Obstacles.Count,
		ShrinkAmount:  cfg.Hazards.ShrinkAmount,
		PenaltyAmount: cfg.Hazards.PenaltyAmount,
		HazardLimit:   cfg.Hazards.MaxActive,
		BonusMin:      cfg.Bonus.MinGrowth,
		BonusMax:      cfg.Bonus.MaxGrowth,
		BonusLimit:    cfg.Bonus.MaxActive,
		Palette:       palette,
		StartDir:      DirRight,
	}, nil
}

func skinFromConfig(name string) Skin {
	switch name {
	case config.SkinTier1:
		return SkinTier1
	case config.SkinTier2:
		return SkinTier2
	default:
		return SkinBase
	}
}

func paletteFromConfig(pc config.PaletteConfig) (Palette, error) {
	var p Palette
	fields := []struct {
		dst  *core.Color
		name string
	}{
		{&p.Snake, pc.Snake},
		{&p.SnakeTier1, pc.SnakeTier1},
		{&p.SnakeTier2, pc.SnakeTier2},
		{&p.Fruit, pc.Fruit},
		{&p.Obstacle, pc.Obstacle},
		{&p.Shrink, pc.Shrink},
		{&p.Penalty, pc.Penalty},
		{&p.Bonus, pc.Bonus},
		{&p.Border, pc.Border},
	}
	for _, f := range fields {
		c, err := core.ParseColor(f.name)
		if err != nil {
			return Palette{}, err
		}
		*f.dst = c
	}
	return p, nil
}
