// Package insight generates, scores and ranks actionable findings over a
// trader's executed history. All functions are pure over their inputs and
// deterministic; nothing here performs I/O.
package insight

// InsightType is the closed set of finding kinds. Generators only ever emit
// these values, which lets the prioritizer switch exhaustively.
type InsightType string

const (
	TypeWeakness       InsightType = "weakness"
	TypeStrength       InsightType = "strength"
	TypeOpportunity    InsightType = "opportunity"
	TypeRecommendation InsightType = "recommendation"
	TypeBenchmark      InsightType = "benchmark"
	TypeEducational    InsightType = "educational"
	TypeUnlock         InsightType = "unlock"
)

// InsightCategory groups findings for the behavioral bucket and UI filters.
type InsightCategory string

const (
	CategoryRiskManagement InsightCategory = "risk_management"
	CategoryOptimization   InsightCategory = "optimization"
	CategoryTiming         InsightCategory = "timing"
	CategoryOpportunity    InsightCategory = "opportunity"
	CategoryBehavioral     InsightCategory = "behavioral"
	CategoryPerformance    InsightCategory = "performance"
	CategoryEducation      InsightCategory = "education"
	CategoryProgression    InsightCategory = "progression"
)

// Confidence is a qualitative reliability label derived from sample size.
type Confidence string

const (
	ConfidenceHigh   Confidence = "high"
	ConfidenceMedium Confidence = "medium"
	ConfidenceLow    Confidence = "low"
)

// Difficulty describes how hard the recommended action is to execute.
type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
)

// Metric tags an insight with the structured benchmark metric it speaks
// about, so display enhancement never has to re-derive it from prose.
type Metric string

const (
	MetricNone                 Metric = ""
	MetricWinRate              Metric = "winRate"
	MetricProfitFactor         Metric = "profitFactor"
	MetricAvgWin               Metric = "avgWin"
	MetricAvgLoss              Metric = "avgLoss"
	MetricCommissionEfficiency Metric = "commissionEfficiency"
)

// Action is the recommended next step attached to actionable insights.
type Action struct {
	Title          string   `json:"title"`
	Steps          []string `json:"steps"`
	ExpectedImpact string   `json:"expected_impact"`
}

// Insight is a single scored, human-readable finding. Instances are created
// fresh on every analysis pass and discarded after rendering.
type Insight struct {
	Type     InsightType     `json:"type"`
	Category InsightCategory `json:"category"`
	Source   string          `json:"source,omitempty"`
	Metric   Metric          `json:"metric,omitempty"`

	Title   string `json:"title"`
	Message string `json:"message"`
	Summary string `json:"summary,omitempty"`

	PotentialSavings float64    `json:"potential_savings"`
	Impact           int        `json:"impact"` // 1..4
	DataPoints       int        `json:"data_points"`
	AffectedTrades   int        `json:"affected_trades"`
	Confidence       Confidence `json:"confidence"`

	ActionDifficulty Difficulty `json:"action_difficulty,omitempty"`
	CounterIntuitive *bool      `json:"counter_intuitive,omitempty"`
	Action           *Action    `json:"action,omitempty"`

	// Only set on unlock-type insights.
	Unlock *UnlockProgress `json:"unlock,omitempty"`

	// Assigned by the prioritization engine.
	Score int `json:"score"`

	// Assigned by display enhancement.
	Urgency          Urgency        `json:"urgency,omitempty"`
	FormattedSavings string         `json:"formatted_savings,omitempty"`
	Benchmark        *Comparison    `json:"benchmark,omitempty"`
	VisualPriority   VisualPriority `json:"visual_priority,omitempty"`
}

// Samples returns the sample size backing the claim, preferring DataPoints.
func (in Insight) Samples() int {
	if in.DataPoints > 0 {
		return in.DataPoints
	}
	return in.AffectedTrades
}

// inferCategory fills a missing category from the insight's type.
func inferCategory(in Insight) InsightCategory {
	if in.Category != "" {
		return in.Category
	}
	switch in.Type {
	case TypeWeakness:
		return CategoryRiskManagement
	case TypeOpportunity:
		return CategoryOpportunity
	case TypeEducational:
		return CategoryEducation
	case TypeUnlock:
		return CategoryProgression
	default:
		return CategoryPerformance
	}
}

// confidenceForSamples maps an affected-trade count to the calculator-side
// confidence label used by the value-first generator.
func confidenceForSamples(n int) Confidence {
	switch {
	case n >= 10:
		return ConfidenceHigh
	case n >= 5:
		return ConfidenceMedium
	default:
		return ConfidenceLow
	}
}

func boolPtr(b bool) *bool { return &b }
