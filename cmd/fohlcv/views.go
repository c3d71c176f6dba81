package main

import (
	"strings"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"

	"github.com/quantfold/fohlcv/pkg/marketdata"
)

// listItem implements list.Item for the selection lists.
type listItem struct {
	name        string
	description string
}

func (i listItem) Title() string       { return i.name }
func (i listItem) Description() string { return i.description }
func (i listItem) FilterValue() string { return i.name }

// assetType groups example Yahoo tickers by instrument class so the wizard
// can suggest a valid symbol for whatever the user wants to download.
type assetType struct {
	name        string
	description string
	examples    []string
}

var assetTypes = []assetType{
	{"stock", "Common stock", []string{"AAPL", "MSFT", "TSLA"}},
	{"etf", "Exchange traded fund", []string{"SPY", "QQQ", "IWM"}},
	{"index", "Market index", []string{
		"^GSPC", "^IXIC", "^DJI", "^RUT", "^VIX",
		"^STOXX50E", "^FTSE", "^GDAXI", "^FCHI", "^IBEX", "^SSMI",
		"000001.SS", "399001.SZ", "000300.SS", "^HSI", "^HSCE",
	}},
	{"crypto", "Cryptocurrency pair", []string{"BTC-USD", "ETH-USD", "SOL-USD"}},
	{"fx", "Currency pair", []string{"EURUSD=X", "GBPUSD=X", "USDJPY=X"}},
	{"commodity", "Commodity future", []string{"GC=F", "CL=F", "SI=F"}},
	{"rate", "Treasury yield", []string{"^TNX", "^IRX", "^TYX"}},
	{"other", "Anything else Yahoo knows", nil},
}

// examplesFor returns the example tickers for an asset type name.
func examplesFor(name string) []string {
	for _, at := range assetTypes {
		if at.name == name {
			return at.examples
		}
	}

	return nil
}

// NewAssetTypeList creates the asset type selection list.
func NewAssetTypeList() list.Model {
	items := make([]list.Item, 0, len(assetTypes))
	for _, at := range assetTypes {
		desc := at.description
		if len(at.examples) > 0 {
			desc += " (e.g. " + strings.Join(at.examples[:min(3, len(at.examples))], ", ") + ")"
		}

		items = append(items, listItem{name: at.name, description: desc})
	}

	delegate := list.NewDefaultDelegate()
	delegate.ShowDescription = true

	l := list.New(items, delegate, 0, 0)
	l.Title = "Select Asset Type"
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(false)
	l.SetShowHelp(false)

	return l
}

// NewIntervalList creates the interval selection list.
func NewIntervalList() list.Model {
	descriptions := map[marketdata.Interval]string{
		marketdata.IntervalOneMinute:      "1 minute bars",
		marketdata.IntervalTwoMinutes:     "2 minute bars",
		marketdata.IntervalFiveMinutes:    "5 minute bars",
		marketdata.IntervalFifteenMinutes: "15 minute bars",
		marketdata.IntervalThirtyMinutes:  "30 minute bars",
		marketdata.IntervalSixtyMinutes:   "60 minute bars",
		marketdata.IntervalNinetyMinutes:  "90 minute bars",
		marketdata.IntervalOneHour:        "1 hour bars (default)",
		marketdata.IntervalOneDay:         "1 day bars",
		marketdata.IntervalFiveDays:       "5 day bars",
		marketdata.IntervalOneWeek:        "1 week bars",
		marketdata.IntervalOneMonth:       "1 month bars",
		marketdata.IntervalThreeMonths:    "3 month bars",
	}

	items := make([]list.Item, 0, len(descriptions))
	for _, iv := range marketdata.SupportedIntervals() {
		items = append(items, listItem{name: iv.String(), description: descriptions[iv]})
	}

	delegate := list.NewDefaultDelegate()
	delegate.ShowDescription = true

	l := list.New(items, delegate, 0, 0)
	l.Title = "Select Interval"
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(false)
	l.SetShowHelp(false)

	return l
}

// NewFormatList creates the output format selection list.
func NewFormatList() list.Model {
	items := []list.Item{
		listItem{name: "parquet", description: "Apache Parquet (columnar, compressed)"},
		listItem{name: "csv", description: "Comma separated values with header"},
	}

	delegate := list.NewDefaultDelegate()
	delegate.ShowDescription = true

	l := list.New(items, delegate, 0, 0)
	l.Title = "Select Output Format"
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(false)
	l.SetShowHelp(false)

	return l
}

// NewSaveList creates the save-to-disk choice list.
func NewSaveList() list.Model {
	items := []list.Item{
		listItem{name: "yes", description: "Write the series to the data directory"},
		listItem{name: "no", description: "Only show the download summary"},
	}

	delegate := list.NewDefaultDelegate()
	delegate.ShowDescription = true

	l := list.New(items, delegate, 0, 0)
	l.Title = "Save To Disk?"
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(false)
	l.SetShowHelp(false)

	return l
}

// NewTickerInput creates the ticker text input.
func NewTickerInput() textinput.Model {
	ti := textinput.New()
	ti.Placeholder = "AAPL"
	ti.CharLimit = 32
	ti.Width = 40
	ti.Prompt = "> "

	return ti
}

// NewDateInput creates a text input for an optional YYYY-MM-DD date.
func NewDateInput() textinput.Model {
	ti := textinput.New()
	ti.Placeholder = "YYYY-MM-DD (empty = use period)"
	ti.CharLimit = 10
	ti.Width = 40
	ti.Prompt = "> "

	return ti
}

// NewPeriodInput creates a text input for the lookback period.
func NewPeriodInput() textinput.Model {
	ti := textinput.New()
	ti.Placeholder = string(marketdata.DefaultPeriod)
	ti.CharLimit = 8
	ti.Width = 40
	ti.Prompt = "> "

	return ti
}
