package snake

import "sort"

// Skin is the cosmetic tier of the snake, driven by its length.
type Skin int

const (
	SkinBase Skin = iota
	SkinTier1
	SkinTier2
)

func (s Skin) String() string {
	switch s {
	case SkinTier1:
		return "tier1"
	case SkinTier2:
		return "tier2"
	default:
		return "base"
	}
}

// SpeedTier applies from MinLength up to the next tier's MinLength.
type SpeedTier struct {
	MinLength int
	TickRate  int
	Skin      Skin
}

// DefaultSpeedTiers is the canonical length-to-speed table.
var DefaultSpeedTiers = []SpeedTier{
	{MinLength: 1, TickRate: 5},
	{MinLength: 4, TickRate: 7},
	{MinLength: 7, TickRate: 9},
	{MinLength: 11, TickRate: 14},
	{MinLength: 16, TickRate: 17},
	{MinLength: 21, TickRate: 22, Skin: SkinTier1},
	{MinLength: 31, TickRate: 25, Skin: SkinTier2},
}

// SpeedController maps snake length to a tick rate and a skin.
type SpeedController struct {
	tiers []SpeedTier
	rate  int
	skin  Skin
}

// NewSpeedController creates a controller over tiers, starting at the base tier.
func NewSpeedController(tiers []SpeedTier) *SpeedController {
	sorted := make([]SpeedTier, len(tiers))
	copy(sorted, tiers)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].MinLength < sorted[j].MinLength })

	sc := &SpeedController{tiers: sorted}
	sc.Reset()
	return sc
}

// TierFor returns the tier that applies to length. Lengths below the first
// tier use the first tier.
func (sc *SpeedController) TierFor(length int) SpeedTier {
	tier := sc.tiers[0]
	for _, t := range sc.tiers[1:] {
		if length < t.MinLength {
			break
		}
		tier = t
	}
	return tier
}

// RateFor returns the tick rate for length without changing state.
func (sc *SpeedController) RateFor(length int) int {
	return sc.TierFor(length).TickRate
}

// Recompute stores the tick rate and skin for length and returns the rate.
func (sc *SpeedController) Recompute(length int) int {
	tier := sc.TierFor(length)
	sc.rate = tier.TickRate
	sc.skin = tier.Skin
	return sc.rate
}

// Reset returns to the base tier.
func (sc *SpeedController) Reset() {
	sc.Recompute(1)
}

// Rate returns the current tick rate.
func (sc *SpeedController) Rate() int {
	return sc.rate
}

// Skin returns the current skin.
func (sc *SpeedController) Skin() Skin {
	return sc.skin
}
