package symbol

import "strings"

// Symbol is a parsed trading pair.
type Symbol struct {
	Base  string
	Quote string
}

func (s Symbol) Internal() string {
	if s.Base == "" || s.Quote == "" {
		return ""
	}
	return s.Base + "/" + s.Quote
}

var quoteCurrencies = []string{"USDT", "BUSD", "USDC", "TUSD", "FDUSD", "DAI", "BTC", "ETH", "BNB"}

// Parse splits "BTC/USDT", "BTCUSDT" or "BTC/USDT:USDT" into base and quote.
func Parse(s string) Symbol {
	s = strings.ToUpper(strings.TrimSpace(s))
	if s == "" {
		return Symbol{}
	}
	if idx := strings.Index(s, ":"); idx >= 0 {
		s = s[:idx]
	}
	if parts := strings.SplitN(s, "/", 2); len(parts) == 2 {
		return Symbol{Base: strings.TrimSpace(parts[0]), Quote: strings.TrimSpace(parts[1])}
	}
	for _, quote := range quoteCurrencies {
		if strings.HasSuffix(s, quote) && len(s) > len(quote) {
			return Symbol{Base: s[:len(s)-len(quote)], Quote: quote}
		}
	}
	return Symbol{Base: s}
}

var stableAssets = map[string]bool{
	"USDT":  true,
	"USDC":  true,
	"BUSD":  true,
	"TUSD":  true,
	"FDUSD": true,
	"DAI":   true,
	"UST":   true,
	"USDP":  true,
}

// IsStablePair reports whether both legs of the pair are stablecoins
// (e.g. USDCUSDT). Such pairs carry no directional edge and are excluded
// from symbol-level opportunity ranking.
func IsStablePair(raw string) bool {
	sym := Parse(raw)
	return stableAssets[sym.Base] && stableAssets[sym.Quote]
}
