package config

import (
	_ "embed"
)

//go:embed defaults/snake.yaml
var defaultSnakeYAML []byte

// DefaultSnakeConfig returns the canonical rule set: obstacles, hazards,
// bonus coin and the length-driven speed curve.
func DefaultSnakeConfig() SnakeConfig {
	return SnakeConfig{
		Speed: []SpeedTier{
			{MinLength: 1, TickRate: 5, Skin: SkinBase},
			{MinLength: 4, TickRate: 7, Skin: SkinBase},
			{MinLength: 7, TickRate: 9, Skin: SkinBase},
			{MinLength: 11, TickRate: 14, Skin: SkinBase},
			{MinLength: 16, TickRate: 17, Skin: SkinBase},
			{MinLength: 21, TickRate: 22, Skin: SkinTier1},
			{MinLength: 31, TickRate: 25, Skin: SkinTier2},
		},
		Events: EventConfig{
			BonusAfterFruit:   30,
			PenaltyAfterFruit: 7,
			ShrinkAfterFruit:  3,
			BonusLottery:      300,
		},
		Obstacles: ObstacleConfig{
			Count: 3,
		},
		Hazards: HazardConfig{
			ShrinkAmount:  1,
			PenaltyAmount: 3,
			MaxActive:     8,
		},
		Bonus: BonusConfig{
			MinGrowth: 1,
			MaxGrowth: 9,
			MaxActive: 8,
		},
		Palette: DefaultPalette(),
	}
}

// ClassicSnakeConfig returns the minimal rule set: fruit only, constant speed.
func ClassicSnakeConfig() SnakeConfig {
	cfg := DefaultSnakeConfig()
	cfg.Speed = []SpeedTier{{MinLength: 1, TickRate: 10, Skin: SkinBase}}
	cfg.Events = EventConfig{}
	cfg.Obstacles.Count = 0
	cfg.Hazards.MaxActive = 0
	cfg.Bonus.MaxActive = 0
	return cfg
}

// DefaultPalette returns the default entity colors.
func DefaultPalette() PaletteConfig {
	return PaletteConfig{
		Snake:      "salmon",
		SnakeTier1: "gold",
		SnakeTier2: "purple",
		Fruit:      "bright_green",
		Obstacle:   "gray",
		Shrink:     "brown",
		Penalty:    "magenta",
		Bonus:      "yellow",
		Border:     "cyan",
	}
}

// GetDefaultYAML returns the embedded default YAML.
func GetDefaultYAML() []byte {
	return defaultSnakeYAML
}
