package types

import (
	"math"
	"time"
)

// MarketData is a single TOHLCV bar in the canonical schema.
// Prices that the provider could not supply are NaN.
type MarketData struct {
	Time   time.Time `csv:"time"`
	Open   float64   `csv:"open"`
	High   float64   `csv:"high"`
	Low    float64   `csv:"low"`
	Close  float64   `csv:"close"`
	Volume float64   `csv:"volume"`
}

// Columns is the canonical column order for persisted TOHLCV files.
var Columns = []string{"time", "open", "high", "low", "close", "volume"}

// IsMissing reports whether a price value is missing.
func IsMissing(v float64) bool {
	return math.IsNaN(v)
}
