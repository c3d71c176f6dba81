package marketdata

import (
	"regexp"
	"strconv"
	"time"

	"github.com/quantfold/fohlcv/pkg/errors"
)

// Period is a named lookback window, used when no explicit start/end range is
// given. Examples: 5d, 60d, 2wk, 3mo, 1y, ytd, max.
type Period string

const (
	// DefaultPeriod is a reasonable window for the default hourly interval.
	DefaultPeriod Period = "60d"

	PeriodYTD Period = "ytd"
	PeriodMax Period = "max"
)

var periodPattern = regexp.MustCompile(`^(\d+)(d|wk|mo|y)$`)

// maxPeriodStart is the lower bound used for the "max" period. Yahoo has no
// bar data before the epoch.
var maxPeriodStart = time.Unix(0, 0).UTC()

// ParsePeriod validates a user-supplied period string.
func ParsePeriod(s string) (Period, error) {
	p := Period(s)
	if p == PeriodYTD || p == PeriodMax || periodPattern.MatchString(s) {
		return p, nil
	}

	return "", errors.Newf(errors.ErrCodeInvalidPeriod,
		"unsupported period: %q (examples: 5d, 60d, 3mo, 1y, ytd, max)", s)
}

// Resolve converts the period to an absolute UTC range ending at now.
func (p Period) Resolve(now time.Time) (start, end time.Time, err error) {
	now = now.UTC()

	switch p {
	case PeriodYTD:
		return time.Date(now.Year(), time.January, 1, 0, 0, 0, 0, time.UTC), now, nil
	case PeriodMax:
		return maxPeriodStart, now, nil
	}

	m := periodPattern.FindStringSubmatch(string(p))
	if m == nil {
		return time.Time{}, time.Time{}, errors.Newf(errors.ErrCodeInvalidPeriod,
			"unsupported period: %q", string(p))
	}

	n, err := strconv.Atoi(m[1])
	if err != nil {
		return time.Time{}, time.Time{}, errors.Wrapf(errors.ErrCodeInvalidPeriod, err,
			"unsupported period: %q", string(p))
	}

	switch m[2] {
	case "d":
		start = now.AddDate(0, 0, -n)
	case "wk":
		start = now.AddDate(0, 0, -7*n)
	case "mo":
		start = now.AddDate(0, -n, 0)
	case "y":
		start = now.AddDate(-n, 0, 0)
	}

	return start, now, nil
}

func (p Period) String() string {
	return string(p)
}
