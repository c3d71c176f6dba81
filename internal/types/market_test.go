package types

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
)

type MarketTestSuite struct {
	suite.Suite
}

func TestMarketSuite(t *testing.T) {
	suite.Run(t, new(MarketTestSuite))
}

func (suite *MarketTestSuite) TestMarketDataStruct() {
	now := time.Now().UTC()
	data := MarketData{
		Time:   now,
		Open:   150.0,
		High:   155.0,
		Low:    148.0,
		Close:  152.5,
		Volume: 1000000.0,
	}

	suite.Equal(now, data.Time)
	suite.Equal(150.0, data.Open)
	suite.Equal(155.0, data.High)
	suite.Equal(148.0, data.Low)
	suite.Equal(152.5, data.Close)
	suite.Equal(1000000.0, data.Volume)
}

func (suite *MarketTestSuite) TestColumnsOrder() {
	suite.Equal([]string{"time", "open", "high", "low", "close", "volume"}, Columns)
}

func (suite *MarketTestSuite) TestIsMissing() {
	suite.True(IsMissing(math.NaN()))
	suite.False(IsMissing(0.0))
	suite.False(IsMissing(-1.5))
	suite.False(IsMissing(152.5))
}
