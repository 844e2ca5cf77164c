// Package ingest turns loosely-shaped exchange exports into normalized
// trades. Different exchanges name the same fields differently (pnl vs
// realized, time vs timestamp, fee vs commission); gjson lets us probe the
// aliases without declaring a struct per exchange.
package ingest

import (
	"fmt"
	"time"

	"github.com/tidwall/gjson"

	"tradescope/internal/types"
)

// NormalizeTrades validates and converts an uploaded JSON array into trades.
// Records without any P&L field are kept (zero P&L is "neither win nor
// loss"); records without a parsable timestamp keep a zero time and are
// skipped by time-based calculators downstream.
func NormalizeTrades(payload []byte) ([]types.Trade, error) {
	if err := ValidatePayload(payload); err != nil {
		return nil, err
	}
	parsed := gjson.ParseBytes(payload)
	if !parsed.IsArray() {
		return nil, fmt.Errorf("expected a JSON array of trades")
	}
	items := parsed.Array()
	out := make([]types.Trade, 0, len(items))
	for _, item := range items {
		out = append(out, normalizeOne(item))
	}
	return out, nil
}

func normalizeOne(item gjson.Result) types.Trade {
	return types.Trade{
		Symbol:     item.Get("symbol").String(),
		PnL:        firstNumber(item, "pnl", "realized"),
		Commission: firstNumber(item, "commission", "fee"),
		Qty:        firstNumber(item, "qty", "quantity"),
		Price:      item.Get("price").Float(),
		Timestamp:  parseTimestamp(item),
	}
}

func firstNumber(item gjson.Result, keys ...string) float64 {
	for _, key := range keys {
		if v := item.Get(key); v.Exists() {
			return v.Float()
		}
	}
	return 0
}

// parseTimestamp accepts epoch millis, epoch seconds, or RFC3339 strings.
// The millis/seconds split is at 1e12: every plausible trading date in
// seconds is far below it and in millis far above.
func parseTimestamp(item gjson.Result) time.Time {
	for _, key := range []string{"timestamp", "time"} {
		v := item.Get(key)
		if !v.Exists() {
			continue
		}
		if v.Type == gjson.String {
			if ts, err := time.Parse(time.RFC3339, v.String()); err == nil {
				return ts
			}
			// fall through: numeric strings are handled below
		}
		if f := v.Float(); f > 0 {
			if f >= 1e12 {
				return time.UnixMilli(int64(f)).UTC()
			}
			return time.Unix(int64(f), 0).UTC()
		}
	}
	return time.Time{}
}
