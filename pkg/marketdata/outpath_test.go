package marketdata

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSanitizeToken(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"plain ticker", "AAPL", "AAPL"},
		{"crypto pair", "BTC-USD", "BTC_USD"},
		{"index", "^GSPC", "GSPC"},
		{"fx pair", "EURUSD=X", "EURUSD_X"},
		{"futures", "GC=F", "GC_F"},
		{"shanghai listing", "000001.SS", "000001_SS"},
		{"date", "2025-01-01", "2025_01_01"},
		{"multiple separators", "a--b__c", "a_b_c"},
		{"leading and trailing junk", "--AAPL--", "AAPL"},
		{"whitespace", "  SPY  ", "SPY"},
		{"empty", "", "NA"},
		{"only junk", "^=--", "NA"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, SanitizeToken(tt.input))
		})
	}
}

func TestBuildOutputPath(t *testing.T) {
	path := BuildOutputPath("data", "BTC-USD", IntervalOneHour, "2025-01-01", "2026-01-01", ".parquet")

	expected := filepath.Join("data", "BTC_USD", "tohlcv", "1h", "2025_01_01_2026_01_01.parquet")
	assert.Equal(t, expected, path)
}

func TestBuildOutputPathCSV(t *testing.T) {
	path := BuildOutputPath("/var/data", "^GSPC", IntervalOneDay, "2024-06-01", "2024-06-30", ".csv")

	expected := filepath.Join("/var/data", "GSPC", "tohlcv", "1d", "2024_06_01_2024_06_30.csv")
	assert.Equal(t, expected, path)
}

func TestBuildOutputPathDeterministic(t *testing.T) {
	a := BuildOutputPath("data", "AAPL", IntervalOneHour, "2025-01-01", "2025-02-01", ".parquet")
	b := BuildOutputPath("data", "AAPL", IntervalOneHour, "2025-01-01", "2025-02-01", ".parquet")
	assert.Equal(t, a, b)
}
