package provider

import (
	"context"
	"time"

	"github.com/piquette/finance-go/datetime"

	"github.com/quantfold/fohlcv/internal/types"
)

// OnDownloadProgress is invoked as bars arrive. total is negative when the
// provider cannot know the series length up front.
type OnDownloadProgress = func(current float64, total float64, message string)

// FetchRequest describes a single historical TOHLCV download.
// Start and End are absolute UTC bounds; End is exclusive on the provider side.
type FetchRequest struct {
	Ticker         string
	Start          time.Time
	End            time.Time
	Interval       datetime.Interval
	AutoAdjust     bool
	IncludePrePost bool
}

// Provider fetches a normalized TOHLCV series from a market data source.
type Provider interface {
	// Fetch downloads the bars for the given request and returns them in the
	// canonical schema: UTC timestamps, sorted ascending by time.
	// The context can be used to cancel the fetch.
	Fetch(ctx context.Context, req FetchRequest, onProgress OnDownloadProgress) ([]types.MarketData, error)
}
