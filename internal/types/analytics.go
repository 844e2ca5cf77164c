package types

// SymbolStats aggregates the executed trades of a single symbol.
type SymbolStats struct {
	Symbol    string  `json:"symbol"`
	Trades    int     `json:"trades"`
	NetPnL    float64 `json:"net_pnl"`
	WinRate   float64 `json:"win_rate"`
	AvgPnL    float64 `json:"avg_pnl"`
	GrossWin  float64 `json:"gross_win"`
	GrossLoss float64 `json:"gross_loss"`
}

// AnalyticsSnapshot is the precomputed aggregate consumed by the insight
// engine. Immutable for the duration of one analysis pass.
type AnalyticsSnapshot struct {
	TotalTrades     int                    `json:"total_trades"`
	WinRate         float64                `json:"win_rate"` // 0..100
	ProfitFactor    float64                `json:"profit_factor"`
	AvgWin          float64                `json:"avg_win"`  // dollar magnitude
	AvgLoss         float64                `json:"avg_loss"` // dollar magnitude, positive
	TotalPnL        float64                `json:"total_pnl"`
	TotalCommission float64                `json:"total_commission"`
	Symbols         map[string]SymbolStats `json:"symbols"`
	AllTrades       []Trade                `json:"-"`
}

// Severity labels for psychology findings.
const (
	SeverityLow    = "low"
	SeverityMedium = "medium"
	SeverityHigh   = "high"
)

// PsychologyWeakness is one behavioral finding about the trader.
type PsychologyWeakness struct {
	Title    string `json:"title"`
	Message  string `json:"message"`
	Severity string `json:"severity"`
	Impact   int    `json:"impact"` // 1..4
}

// PsychologyAssessment is consumed read-only by the combined aggregator.
type PsychologyAssessment struct {
	Weaknesses []PsychologyWeakness `json:"weaknesses"`
}

// DrawdownSegment describes one peak-to-trough stretch of the equity curve.
type DrawdownSegment struct {
	Peak       float64 `json:"peak"`
	Trough     float64 `json:"trough"`
	Magnitude  float64 `json:"magnitude"` // fraction of peak, 0..1
	TradeCount int     `json:"trade_count"`
}

// HourStats aggregates trades executed within one hour-of-day bucket (0-23).
type HourStats struct {
	Hour     int     `json:"hour"`
	Trades   int     `json:"trades"`
	TotalPnL float64 `json:"total_pnl"`
	AvgPnL   float64 `json:"avg_pnl"`
	WinRate  float64 `json:"win_rate"`
}
