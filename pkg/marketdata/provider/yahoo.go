package provider

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/piquette/finance-go/chart"
	"github.com/piquette/finance-go/datetime"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/quantfold/fohlcv/internal/logger"
	"github.com/quantfold/fohlcv/internal/types"
	"github.com/quantfold/fohlcv/pkg/errors"
)

// YahooClient fetches historical bars from the Yahoo Finance chart API.
type YahooClient struct {
	logger *logger.Logger
}

// NewYahooClient creates a new Yahoo Finance provider.
func NewYahooClient(log *logger.Logger) (Provider, error) {
	if log == nil {
		log = logger.NewNop()
	}

	return &YahooClient{
		logger: log,
	}, nil
}

// Fetch downloads the bars for the requested range and normalizes them into
// the canonical schema. Yahoo treats the end bound as exclusive; callers are
// expected to have adjusted single-day ranges already.
func (c *YahooClient) Fetch(ctx context.Context, req FetchRequest, onProgress OnDownloadProgress) ([]types.MarketData, error) {
	ticker := strings.TrimSpace(req.Ticker)
	if ticker == "" {
		return nil, errors.New(errors.ErrCodeInvalidTicker, "ticker is empty")
	}

	start := req.Start.UTC()
	end := req.End.UTC()

	params := &chart.Params{
		Symbol:     ticker,
		Interval:   req.Interval,
		Start:      &datetime.Datetime{Year: start.Year(), Month: int(start.Month()), Day: start.Day()},
		End:        &datetime.Datetime{Year: end.Year(), Month: int(end.Month()), Day: end.Day()},
		IncludeExt: req.IncludePrePost,
	}

	c.logger.Info("fetching bars from Yahoo Finance",
		zap.String("ticker", ticker),
		zap.String("interval", string(req.Interval)),
		zap.Time("start", start),
		zap.Time("end", end),
	)

	iter := chart.Get(params)

	var bars []types.MarketData

	for iter.Next() {
		select {
		case <-ctx.Done():
			return nil, errors.Wrap(errors.ErrCodeFetchFailed, "fetch cancelled", ctx.Err())
		default:
		}

		bar := iter.Bar()
		bars = append(bars, convertBar(bar.Timestamp, bar.Open, bar.High, bar.Low, bar.Close, bar.AdjClose, bar.Volume, req.AutoAdjust))

		if onProgress != nil {
			onProgress(float64(len(bars)), -1, fmt.Sprintf("Downloading %s", ticker))
		}
	}

	if err := iter.Err(); err != nil {
		return nil, errors.Wrapf(errors.ErrCodeFetchFailed, err, "Yahoo chart request failed for %s", ticker)
	}

	if len(bars) == 0 {
		return nil, errors.Newf(errors.ErrCodeNoDataReturned,
			"Yahoo returned no bars for %s (interval=%s)", ticker, req.Interval)
	}

	sort.Slice(bars, func(i, j int) bool {
		return bars[i].Time.Before(bars[j].Time)
	})

	c.logger.Info("fetched bars",
		zap.String("ticker", ticker),
		zap.Int("rows", len(bars)),
	)

	return bars, nil
}

// convertBar maps a provider bar onto the canonical schema. Timestamps are
// unix seconds and become UTC-aware times. When autoAdjust is set, open, high
// and low are scaled by the AdjClose/Close ratio and close becomes AdjClose,
// mirroring split/dividend adjustment.
func convertBar(timestamp int, open, high, low, closePrice, adjClose decimal.Decimal, volume int, autoAdjust bool) types.MarketData {
	if autoAdjust && !closePrice.IsZero() {
		ratio := adjClose.Div(closePrice)
		open = open.Mul(ratio)
		high = high.Mul(ratio)
		low = low.Mul(ratio)
		closePrice = adjClose
	}

	return types.MarketData{
		Time:   time.Unix(int64(timestamp), 0).UTC(),
		Open:   open.InexactFloat64(),
		High:   high.InexactFloat64(),
		Low:    low.InexactFloat64(),
		Close:  closePrice.InexactFloat64(),
		Volume: float64(volume),
	}
}
