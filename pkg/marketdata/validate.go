package marketdata

import (
	"fmt"

	"github.com/quantfold/fohlcv/internal/types"
	"github.com/quantfold/fohlcv/pkg/errors"
)

// ValidateSeries checks the invariants every downloaded series must satisfy
// before it is persisted:
//
//   - the series is non-empty
//   - no bar has a missing (zero) timestamp
//   - no two bars share a timestamp
//   - timestamps are strictly ascending
//   - none of open/high/low/close is missing across the whole series
//
// Volume is allowed to be zero or missing; some instruments never report it.
func ValidateSeries(bars []types.MarketData) error {
	if len(bars) == 0 {
		return errors.New(errors.ErrCodeEmptySeries, "series is empty")
	}

	duplicates := 0

	for i, bar := range bars {
		if bar.Time.IsZero() {
			return errors.Newf(errors.ErrCodeMissingTimestamp, "bar %d has a missing timestamp", i)
		}

		if i == 0 {
			continue
		}

		switch {
		case bar.Time.Equal(bars[i-1].Time):
			duplicates++
		case bar.Time.Before(bars[i-1].Time):
			return errors.Newf(errors.ErrCodeUnorderedTimestamps,
				"timestamps are not strictly ascending at index %d (%s after %s)",
				i, bar.Time.Format("2006-01-02T15:04:05Z"), bars[i-1].Time.Format("2006-01-02T15:04:05Z"))
		}
	}

	if duplicates > 0 {
		return errors.Newf(errors.ErrCodeDuplicateTimestamp, "series has %d duplicate timestamps", duplicates)
	}

	fields := []struct {
		name  string
		value func(types.MarketData) float64
	}{
		{"open", func(b types.MarketData) float64 { return b.Open }},
		{"high", func(b types.MarketData) float64 { return b.High }},
		{"low", func(b types.MarketData) float64 { return b.Low }},
		{"close", func(b types.MarketData) float64 { return b.Close }},
	}

	for _, f := range fields {
		allMissing := true

		for _, bar := range bars {
			if !types.IsMissing(f.value(bar)) {
				allMissing = false

				break
			}
		}

		if allMissing {
			return errors.Newf(errors.ErrCodeAllValuesMissing, "column %s is entirely missing", f.name)
		}
	}

	return nil
}

// OHLCConsistencyWarnings reports bars whose prices are internally
// inconsistent (high below low, or open/close outside the high/low range).
// Yahoo occasionally serves such bars for thinly traded instruments, so these
// are warnings rather than validation failures.
func OHLCConsistencyWarnings(bars []types.MarketData) []string {
	var warnings []string

	for i, bar := range bars {
		if types.IsMissing(bar.Open) || types.IsMissing(bar.High) ||
			types.IsMissing(bar.Low) || types.IsMissing(bar.Close) {
			continue
		}

		switch {
		case bar.High < bar.Low:
			warnings = append(warnings, fmt.Sprintf("bar %d (%s): high %.6f below low %.6f",
				i, bar.Time.Format("2006-01-02T15:04"), bar.High, bar.Low))
		case bar.Open > bar.High || bar.Open < bar.Low:
			warnings = append(warnings, fmt.Sprintf("bar %d (%s): open %.6f outside [%.6f, %.6f]",
				i, bar.Time.Format("2006-01-02T15:04"), bar.Open, bar.Low, bar.High))
		case bar.Close > bar.High || bar.Close < bar.Low:
			warnings = append(warnings, fmt.Sprintf("bar %d (%s): close %.6f outside [%.6f, %.6f]",
				i, bar.Time.Format("2006-01-02T15:04"), bar.Close, bar.Low, bar.High))
		}
	}

	return warnings
}
