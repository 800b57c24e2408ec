// Package config provides YAML-based rule-set configuration for the snake
// simulation: the speed curve, event gates, entity budgets and colors.
// Board dimensions are fixed by the simulation and are not configurable.
package config

// SnakeConfig contains all configuration for the snake simulation.
type SnakeConfig struct {
	Speed     []SpeedTier    `yaml:"speed"`
	Events    EventConfig    `yaml:"events"`
	Obstacles ObstacleConfig `yaml:"obstacles"`
	Hazards   HazardConfig   `yaml:"hazards"`
	Bonus     BonusConfig    `yaml:"bonus"`
	Palette   PaletteConfig  `yaml:"palette"`
}

// SpeedTier maps every length from MinLength up to the next tier to a tick rate.
type SpeedTier struct {
	MinLength int    `yaml:"min_length"`
	TickRate  int    `yaml:"tick_rate"`
	Skin      string `yaml:"skin"` // "base", "tier1" or "tier2"
}

// EventConfig holds the 1-in-N gates drawn after fruit and every tick.
// A non-positive value disables the gate.
type EventConfig struct {
	BonusAfterFruit   int `yaml:"bonus_after_fruit"`
	PenaltyAfterFruit int `yaml:"penalty_after_fruit"`
	ShrinkAfterFruit  int `yaml:"shrink_after_fruit"`
	BonusLottery      int `yaml:"bonus_lottery"`
}

// ObstacleConfig defines the static obstacle cluster placed once per life.
type ObstacleConfig struct {
	Count int `yaml:"count"`
}

// HazardConfig defines shrink and penalty hazards.
type HazardConfig struct {
	ShrinkAmount  int `yaml:"shrink_amount"`
	PenaltyAmount int `yaml:"penalty_amount"`
	MaxActive     int `yaml:"max_active"` // per hazard kind
}

// BonusConfig defines the bonus coin.
type BonusConfig struct {
	MinGrowth int `yaml:"min_growth"`
	MaxGrowth int `yaml:"max_growth"`
	MaxActive int `yaml:"max_active"`
}

// PaletteConfig names the render color of each entity.
// Values are core color names such as "salmon" or "bright_green".
type PaletteConfig struct {
	Snake      string `yaml:"snake"`
	SnakeTier1 string `yaml:"snake_tier1"`
	SnakeTier2 string `yaml:"snake_tier2"`
	Fruit      string `yaml:"fruit"`
	Obstacle   string `yaml:"obstacle"`
	Shrink     string `yaml:"shrink"`
	Penalty    string `yaml:"penalty"`
	Bonus      string `yaml:"bonus"`
	Border     string `yaml:"border"`
}

// Skin names accepted in SpeedTier.Skin.
const (
	SkinBase  = "base"
	SkinTier1 = "tier1"
	SkinTier2 = "tier2"
)
