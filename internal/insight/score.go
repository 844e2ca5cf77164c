package insight

import "strings"

// ScoringPolicy holds the hand-tuned additive weights used to rank insights.
// The values are behavior, not tuning knobs: changing any of them reorders
// every dashboard, so treat edits as a product decision.
type ScoringPolicy struct {
	SavingsOver1000 int
	SavingsOver500  int
	SavingsOver100  int
	SavingsOver0    int

	WeaknessBonus       int
	ActionableWeakness  int // extra on top of WeaknessBonus when savings > 0
	ZeroSavingsStrength int // applied as a penalty (negative)
	RiskWeaknessBonus   int
	OpportunityStrength int

	ActionEasy   int
	ActionMedium int
	ActionHard   int
	StepsFew     int // inferred: <= 2 steps
	StepsSome    int // inferred: <= 4 steps
	StepsMany    int

	CounterIntuitive   int
	ExplicitlyExpected int
	SurpriseTextBonus  int

	Evidence20 int
	Evidence10 int
	Evidence5  int
	Evidence1  int

	ImpactMultiplier int
}

// DefaultScoringPolicy returns the production weights.
func DefaultScoringPolicy() ScoringPolicy {
	return ScoringPolicy{
		SavingsOver1000: 40,
		SavingsOver500:  30,
		SavingsOver100:  20,
		SavingsOver0:    10,

		WeaknessBonus:       15,
		ActionableWeakness:  10,
		ZeroSavingsStrength: -10,
		RiskWeaknessBonus:   5,
		OpportunityStrength: 3,

		ActionEasy:   30,
		ActionMedium: 20,
		ActionHard:   10,
		StepsFew:     25,
		StepsSome:    15,
		StepsMany:    10,

		CounterIntuitive:   20,
		ExplicitlyExpected: 5,
		SurpriseTextBonus:  15,

		Evidence20: 10,
		Evidence10: 7,
		Evidence5:  4,
		Evidence1:  2,

		ImpactMultiplier: 2,
	}
}

var surpriseMarkers = []string{
	"2x", "3x", "4x",
	"surprising", "unexpected", "hidden", "counterintuitive",
}

// Score computes the 0-100 priority of a single insight.
func (p ScoringPolicy) Score(in Insight) int {
	score := 0

	switch {
	case in.PotentialSavings > 1000:
		score += p.SavingsOver1000
	case in.PotentialSavings > 500:
		score += p.SavingsOver500
	case in.PotentialSavings > 100:
		score += p.SavingsOver100
	case in.PotentialSavings > 0:
		score += p.SavingsOver0
	}

	switch in.Type {
	case TypeWeakness:
		score += p.WeaknessBonus
		if in.PotentialSavings > 0 {
			score += p.ActionableWeakness
		}
	case TypeStrength:
		if in.PotentialSavings == 0 {
			score += p.ZeroSavingsStrength
		}
	}

	switch {
	case in.ActionDifficulty == DifficultyEasy:
		score += p.ActionEasy
	case in.ActionDifficulty == DifficultyMedium:
		score += p.ActionMedium
	case in.ActionDifficulty == DifficultyHard:
		score += p.ActionHard
	case in.Action != nil:
		switch n := len(in.Action.Steps); {
		case n <= 2:
			score += p.StepsFew
		case n <= 4:
			score += p.StepsSome
		default:
			score += p.StepsMany
		}
	}

	if in.CounterIntuitive != nil {
		if *in.CounterIntuitive {
			score += p.CounterIntuitive
		} else {
			score += p.ExplicitlyExpected
		}
	}
	msg := strings.ToLower(in.Message)
	for _, marker := range surpriseMarkers {
		if strings.Contains(msg, marker) {
			score += p.SurpriseTextBonus
			break
		}
	}

	switch n := in.Samples(); {
	case n >= 20:
		score += p.Evidence20
	case n >= 10:
		score += p.Evidence10
	case n >= 5:
		score += p.Evidence5
	case n > 0:
		score += p.Evidence1
	}

	score += in.Impact * p.ImpactMultiplier

	category := inferCategory(in)
	if in.Type == TypeWeakness && category == CategoryRiskManagement {
		score += p.RiskWeaknessBonus
	}
	if in.Type == TypeStrength && category == CategoryOpportunity {
		score += p.OpportunityStrength
	}

	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return score
}
