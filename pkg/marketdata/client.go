package marketdata

import (
	"context"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/moznion/go-optional"
	"go.uber.org/zap"

	"github.com/quantfold/fohlcv/internal/logger"
	"github.com/quantfold/fohlcv/internal/types"
	"github.com/quantfold/fohlcv/pkg/errors"
	"github.com/quantfold/fohlcv/pkg/marketdata/provider"
	"github.com/quantfold/fohlcv/pkg/marketdata/writer"
)

const dateLayout = "2006-01-02"

// ClientConfig holds the configuration for the market data client.
type ClientConfig struct {
	DataRoot string        `validate:"required"`
	Format   writer.Format `validate:"required,oneof=parquet csv"`
}

// DownloadParams holds the parameters for a TOHLCV download request.
// Either Start/End or Period is used; when both are present, Start/End wins,
// matching the provider's own precedence.
type DownloadParams struct {
	Ticker         string `validate:"required"`
	Interval       Interval
	Start          optional.Option[time.Time]
	End            optional.Option[time.Time]
	Period         optional.Option[Period]
	AutoAdjust     bool
	IncludePrePost bool
	// OutputPath overrides the deterministic path entirely when set.
	OutputPath optional.Option[string]
	// NoSave skips persistence; the series is still fetched and validated.
	NoSave bool
}

// DownloadResult summarizes a completed download.
type DownloadResult struct {
	Ticker   string
	Interval Interval
	Rows     int
	First    time.Time
	Last     time.Time
	StartTag string
	EndTag   string
	// OutputPath is empty when the series was not saved.
	OutputPath string
	// Warnings holds non-fatal data quality findings.
	Warnings []string
}

// Client is the TOHLCV client responsible for fetching data from the provider,
// validating the series, and persisting it using a writer.
type Client struct {
	provider   provider.Provider
	config     ClientConfig
	validate   *validator.Validate
	logger     *logger.Logger
	onProgress provider.OnDownloadProgress
	now        func() time.Time
}

// NewClient creates a new client backed by the Yahoo Finance provider.
func NewClient(config ClientConfig, log *logger.Logger, onProgress provider.OnDownloadProgress) (*Client, error) {
	if log == nil {
		log = logger.NewNop()
	}

	yahoo, err := provider.NewYahooClient(log)
	if err != nil {
		return nil, fmt.Errorf("failed to create Yahoo client: %w", err)
	}

	return NewClientWithProvider(config, yahoo, log, onProgress)
}

// NewClientWithProvider creates a client with an explicit provider. Used by
// tests to substitute a mock.
func NewClientWithProvider(config ClientConfig, p provider.Provider, log *logger.Logger, onProgress provider.OnDownloadProgress) (*Client, error) {
	validate := validator.New()
	if err := validate.Struct(config); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidConfiguration, "invalid client configuration", err)
	}

	if log == nil {
		log = logger.NewNop()
	}

	return &Client{
		provider:   p,
		config:     config,
		validate:   validate,
		logger:     log,
		onProgress: onProgress,
		now:        time.Now,
	}, nil
}

// Download fetches, validates, and (unless NoSave is set) persists a TOHLCV
// series. The context can be used to cancel the fetch.
func (c *Client) Download(ctx context.Context, params DownloadParams) (*DownloadResult, error) {
	if err := c.validate.Struct(params); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidParameter, "invalid download parameters", err)
	}

	interval := params.Interval
	if interval == "" {
		interval = DefaultInterval
	}

	if _, err := ParseInterval(interval.String()); err != nil {
		return nil, err
	}

	start, end, explicitRange, err := c.resolveRange(params)
	if err != nil {
		return nil, err
	}

	bars, err := c.provider.Fetch(ctx, provider.FetchRequest{
		Ticker:         params.Ticker,
		Start:          start,
		End:            end,
		Interval:       interval.Chart(),
		AutoAdjust:     params.AutoAdjust,
		IncludePrePost: params.IncludePrePost,
	}, c.onProgress)
	if err != nil {
		return nil, err
	}

	if err := ValidateSeries(bars); err != nil {
		return nil, err
	}

	warnings := OHLCConsistencyWarnings(bars)
	for _, w := range warnings {
		c.logger.Warn("inconsistent OHLC bar", zap.String("detail", w))
	}

	result := &DownloadResult{
		Ticker:   params.Ticker,
		Interval: interval,
		Rows:     len(bars),
		First:    bars[0].Time,
		Last:     bars[len(bars)-1].Time,
		Warnings: warnings,
	}

	// Name the file after the requested range when one was given, otherwise
	// after the range actually downloaded.
	if explicitRange {
		result.StartTag = start.Format(dateLayout)
		result.EndTag = end.Format(dateLayout)
	} else {
		result.StartTag = result.First.Format(dateLayout)
		result.EndTag = result.Last.Format(dateLayout)
	}

	if params.NoSave {
		return result, nil
	}

	outputPath := params.OutputPath.TakeOr(
		BuildOutputPath(c.config.DataRoot, params.Ticker, interval, result.StartTag, result.EndTag, c.config.Format.Ext()),
	)

	if err := c.save(bars, outputPath); err != nil {
		return nil, err
	}

	result.OutputPath = outputPath

	c.logger.Info("saved series",
		zap.String("ticker", params.Ticker),
		zap.String("path", outputPath),
		zap.Int("rows", result.Rows),
	)

	return result, nil
}

// resolveRange turns the request's optional start/end/period into an absolute
// UTC range. explicitRange reports whether the caller supplied dates directly.
func (c *Client) resolveRange(params DownloadParams) (start, end time.Time, explicitRange bool, err error) {
	now := c.now().UTC()

	if params.Start.IsSome() || params.End.IsSome() {
		start = params.Start.TakeOr(maxPeriodStart).UTC()
		end = params.End.TakeOr(now).UTC()

		if !end.After(start) && !sameCalendarDay(start, end) {
			return time.Time{}, time.Time{}, false, errors.Newf(errors.ErrCodeInvalidDateRange,
				"end date %s is before start date %s", end.Format(dateLayout), start.Format(dateLayout))
		}

		// The provider treats the end bound as exclusive, so a single-day
		// request would come back empty. Advance end by one day instead.
		if sameCalendarDay(start, end) {
			end = end.AddDate(0, 0, 1)
			c.logger.Warn("single-day range detected; provider end bound is exclusive, advancing end by one day",
				zap.String("start", start.Format(dateLayout)),
				zap.String("end", end.Format(dateLayout)),
			)
		}

		return start, end, true, nil
	}

	period := params.Period.TakeOr(DefaultPeriod)

	if _, err := ParsePeriod(period.String()); err != nil {
		return time.Time{}, time.Time{}, false, err
	}

	start, end, err = period.Resolve(now)
	if err != nil {
		return time.Time{}, time.Time{}, false, err
	}

	return start, end, false, nil
}

// save writes the validated series through the writer.
func (c *Client) save(bars []types.MarketData, outputPath string) (err error) {
	w := writer.NewDuckDBWriter(outputPath, c.config.Format)

	if err := w.Initialize(); err != nil {
		return errors.Wrapf(errors.ErrCodeWriteFailed, err, "failed to initialize writer at %s", outputPath)
	}

	defer func() {
		if cerr := w.Close(); cerr != nil && err == nil {
			err = errors.Wrap(errors.ErrCodeWriteFailed, "failed to close writer", cerr)
		}
	}()

	for _, bar := range bars {
		if err := w.Write(bar); err != nil {
			return errors.Wrap(errors.ErrCodeWriteFailed, "failed to write bar", err)
		}
	}

	if _, err := w.Finalize(); err != nil {
		return errors.Wrapf(errors.ErrCodeWriteFailed, err, "failed to export series to %s", outputPath)
	}

	return nil
}

func sameCalendarDay(a, b time.Time) bool {
	ay, am, ad := a.UTC().Date()
	by, bm, bd := b.UTC().Date()

	return ay == by && am == bm && ad == bd
}
