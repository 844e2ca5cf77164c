package insight

// UnlockTier gates insight categories behind trade-count thresholds.
// MinTrades is inclusive, MaxTrades exclusive; the last tier is open-ended.
type UnlockTier struct {
	Name      string   `json:"name"`
	MinTrades int      `json:"min_trades"`
	MaxTrades int      `json:"max_trades,omitempty"` // 0 = open-ended
	Features  []string `json:"features"`
}

// Tiers returns the fixed tier ladder, ordered by MinTrades.
func Tiers() []UnlockTier {
	return []UnlockTier{
		{
			Name:      "Getting Started",
			MinTrades: 0,
			MaxTrades: 10,
			Features:  []string{"Benchmark comparisons", "Basic win/loss stats"},
		},
		{
			Name:      "Pattern Detection",
			MinTrades: 10,
			MaxTrades: 30,
			Features:  []string{"Early warning patterns", "Fee awareness", "Win/loss ratio checks"},
		},
		{
			Name:      "Behavioral Insights",
			MinTrades: 30,
			MaxTrades: 100,
			Features:  []string{"Money-impact calculators", "Timing analysis", "Symbol focus"},
		},
		{
			Name:      "Advanced Analytics",
			MinTrades: 100,
			Features:  []string{"Psychology profile", "Drawdown forensics", "Full combined dashboard"},
		},
	}
}

// CurrentTier returns the tier whose [MinTrades, MaxTrades) range contains
// tradeCount.
func CurrentTier(tradeCount int) UnlockTier {
	tiers := Tiers()
	for _, t := range tiers {
		if tradeCount >= t.MinTrades && (t.MaxTrades == 0 || tradeCount < t.MaxTrades) {
			return t
		}
	}
	return tiers[len(tiers)-1]
}

// NextTier returns the first tier the user has not yet reached, or ok=false
// when the user is already in the last tier.
func NextTier(tradeCount int) (UnlockTier, bool) {
	for _, t := range Tiers() {
		if tradeCount < t.MinTrades {
			return t, true
		}
	}
	return UnlockTier{}, false
}
