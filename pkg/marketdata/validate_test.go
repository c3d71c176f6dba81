package marketdata

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/quantfold/fohlcv/internal/types"
	"github.com/quantfold/fohlcv/mocks"
	"github.com/quantfold/fohlcv/pkg/errors"
)

type ValidateTestSuite struct {
	suite.Suite
	bars []types.MarketData
}

func TestValidateSuite(t *testing.T) {
	suite.Run(t, new(ValidateTestSuite))
}

func (suite *ValidateTestSuite) SetupTest() {
	suite.bars = mocks.GenerateSeries(50)
}

func (suite *ValidateTestSuite) TestValidSeries() {
	suite.NoError(ValidateSeries(suite.bars))
}

func (suite *ValidateTestSuite) TestEmptySeries() {
	err := ValidateSeries(nil)
	suite.Error(err)
	suite.True(errors.HasCode(err, errors.ErrCodeEmptySeries))
}

func (suite *ValidateTestSuite) TestMissingTimestamp() {
	suite.bars[10].Time = time.Time{}

	err := ValidateSeries(suite.bars)
	suite.Error(err)
	suite.True(errors.HasCode(err, errors.ErrCodeMissingTimestamp))
}

func (suite *ValidateTestSuite) TestDuplicateTimestamps() {
	suite.bars[5].Time = suite.bars[4].Time
	suite.bars[20].Time = suite.bars[19].Time

	err := ValidateSeries(suite.bars)
	suite.Error(err)
	suite.True(errors.HasCode(err, errors.ErrCodeDuplicateTimestamp))
	suite.Contains(err.Error(), "2 duplicate timestamps")
}

func (suite *ValidateTestSuite) TestUnorderedTimestamps() {
	suite.bars[30].Time = suite.bars[0].Time.Add(-time.Hour)

	err := ValidateSeries(suite.bars)
	suite.Error(err)
	suite.True(errors.HasCode(err, errors.ErrCodeUnorderedTimestamps))
}

func (suite *ValidateTestSuite) TestAllValuesMissing() {
	for i := range suite.bars {
		suite.bars[i].Close = math.NaN()
	}

	err := ValidateSeries(suite.bars)
	suite.Error(err)
	suite.True(errors.HasCode(err, errors.ErrCodeAllValuesMissing))
	suite.Contains(err.Error(), "close")
}

func (suite *ValidateTestSuite) TestPartiallyMissingValuesAllowed() {
	// Isolated gaps are tolerated; only a fully missing column fails.
	suite.bars[3].Open = math.NaN()
	suite.bars[7].Close = math.NaN()

	suite.NoError(ValidateSeries(suite.bars))
}

func (suite *ValidateTestSuite) TestMissingVolumeAllowed() {
	for i := range suite.bars {
		suite.bars[i].Volume = math.NaN()
	}

	suite.NoError(ValidateSeries(suite.bars))
}

func (suite *ValidateTestSuite) TestConsistencyWarningsCleanSeries() {
	suite.Empty(OHLCConsistencyWarnings(suite.bars))
}

func (suite *ValidateTestSuite) TestConsistencyWarningHighBelowLow() {
	suite.bars[2].High = suite.bars[2].Low - 1

	warnings := OHLCConsistencyWarnings(suite.bars)
	suite.Len(warnings, 1)
	suite.Contains(warnings[0], "below low")
}

func (suite *ValidateTestSuite) TestConsistencyWarningOpenOutsideRange() {
	suite.bars[4].Open = suite.bars[4].High + 10

	warnings := OHLCConsistencyWarnings(suite.bars)
	suite.Len(warnings, 1)
	suite.Contains(warnings[0], "open")
}

func (suite *ValidateTestSuite) TestConsistencyWarningsSkipMissingBars() {
	suite.bars[6].High = suite.bars[6].Low - 1
	suite.bars[6].Open = math.NaN()

	suite.Empty(OHLCConsistencyWarnings(suite.bars))
}
