package marketdata

import (
	"time"

	"github.com/piquette/finance-go/datetime"

	"github.com/quantfold/fohlcv/pkg/errors"
)

// Interval is a bar width supported by the Yahoo chart API.
type Interval string

const (
	IntervalOneMinute      Interval = "1m"
	IntervalTwoMinutes     Interval = "2m"
	IntervalFiveMinutes    Interval = "5m"
	IntervalFifteenMinutes Interval = "15m"
	IntervalThirtyMinutes  Interval = "30m"
	IntervalSixtyMinutes   Interval = "60m"
	IntervalNinetyMinutes  Interval = "90m"
	IntervalOneHour        Interval = "1h"
	IntervalOneDay         Interval = "1d"
	IntervalFiveDays       Interval = "5d"
	IntervalOneWeek        Interval = "1wk"
	IntervalOneMonth       Interval = "1mo"
	IntervalThreeMonths    Interval = "3mo"
)

// DefaultInterval is used when neither flags nor config specify one.
const DefaultInterval = IntervalOneHour

// SupportedIntervals lists all intervals in display order.
func SupportedIntervals() []Interval {
	return []Interval{
		IntervalOneMinute,
		IntervalTwoMinutes,
		IntervalFiveMinutes,
		IntervalFifteenMinutes,
		IntervalThirtyMinutes,
		IntervalSixtyMinutes,
		IntervalNinetyMinutes,
		IntervalOneHour,
		IntervalOneDay,
		IntervalFiveDays,
		IntervalOneWeek,
		IntervalOneMonth,
		IntervalThreeMonths,
	}
}

// ParseInterval validates a user-supplied interval string.
func ParseInterval(s string) (Interval, error) {
	for _, iv := range SupportedIntervals() {
		if Interval(s) == iv {
			return iv, nil
		}
	}

	return "", errors.Newf(errors.ErrCodeInvalidInterval,
		"unsupported interval: %q (examples: 1m, 5m, 15m, 1h, 1d, 1wk, 1mo)", s)
}

// Chart converts the interval to the provider's interval type. The canonical
// strings match the chart API's granularity values one to one.
func (i Interval) Chart() datetime.Interval {
	return datetime.Interval(i)
}

// Duration returns the nominal width of one bar. Calendar intervals use the
// usual approximations (1wk = 7d, 1mo = 30d, 3mo = 90d).
func (i Interval) Duration() time.Duration {
	switch i {
	case IntervalOneMinute:
		return time.Minute
	case IntervalTwoMinutes:
		return 2 * time.Minute
	case IntervalFiveMinutes:
		return 5 * time.Minute
	case IntervalFifteenMinutes:
		return 15 * time.Minute
	case IntervalThirtyMinutes:
		return 30 * time.Minute
	case IntervalSixtyMinutes, IntervalOneHour:
		return time.Hour
	case IntervalNinetyMinutes:
		return 90 * time.Minute
	case IntervalOneDay:
		return 24 * time.Hour
	case IntervalFiveDays:
		return 5 * 24 * time.Hour
	case IntervalOneWeek:
		return 7 * 24 * time.Hour
	case IntervalOneMonth:
		return 30 * 24 * time.Hour
	case IntervalThreeMonths:
		return 90 * 24 * time.Hour
	default:
		return 24 * time.Hour
	}
}

func (i Interval) String() string {
	return string(i)
}
