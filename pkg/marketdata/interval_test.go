package marketdata

import (
	"testing"
	"time"

	"github.com/piquette/finance-go/datetime"
	"github.com/stretchr/testify/suite"
)

type IntervalTestSuite struct {
	suite.Suite
}

func TestIntervalSuite(t *testing.T) {
	suite.Run(t, new(IntervalTestSuite))
}

func (suite *IntervalTestSuite) TestParseInterval() {
	for _, iv := range SupportedIntervals() {
		parsed, err := ParseInterval(iv.String())
		suite.NoError(err)
		suite.Equal(iv, parsed)
	}
}

func (suite *IntervalTestSuite) TestParseIntervalInvalid() {
	for _, s := range []string{"", "7m", "1x", "hourly", "1H"} {
		_, err := ParseInterval(s)
		suite.Error(err, "expected error for %q", s)
	}
}

func (suite *IntervalTestSuite) TestChart() {
	suite.Equal(datetime.Interval("1h"), IntervalOneHour.Chart())
	suite.Equal(datetime.Interval("1wk"), IntervalOneWeek.Chart())
}

func (suite *IntervalTestSuite) TestDuration() {
	tests := []struct {
		interval Interval
		expected time.Duration
	}{
		{IntervalOneMinute, time.Minute},
		{IntervalTwoMinutes, 2 * time.Minute},
		{IntervalFiveMinutes, 5 * time.Minute},
		{IntervalFifteenMinutes, 15 * time.Minute},
		{IntervalThirtyMinutes, 30 * time.Minute},
		{IntervalSixtyMinutes, time.Hour},
		{IntervalNinetyMinutes, 90 * time.Minute},
		{IntervalOneHour, time.Hour},
		{IntervalOneDay, 24 * time.Hour},
		{IntervalFiveDays, 5 * 24 * time.Hour},
		{IntervalOneWeek, 7 * 24 * time.Hour},
		{IntervalOneMonth, 30 * 24 * time.Hour},
		{IntervalThreeMonths, 90 * 24 * time.Hour},
	}

	for _, tc := range tests {
		suite.Run(tc.interval.String(), func() {
			suite.Equal(tc.expected, tc.interval.Duration())
		})
	}
}

func (suite *IntervalTestSuite) TestDurationDefault() {
	unknown := Interval("unknown")
	suite.Equal(24*time.Hour, unknown.Duration())
}
