package main

import (
	"context"
	"fmt"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/moznion/go-optional"
	"github.com/schollz/progressbar/v3"
	"github.com/urfave/cli/v3"

	"github.com/quantfold/fohlcv/internal/config"
	"github.com/quantfold/fohlcv/internal/logger"
	"github.com/quantfold/fohlcv/pkg/marketdata"
	"github.com/quantfold/fohlcv/pkg/marketdata/writer"
)

const dateLayout = "2006-01-02"

// downloadAction is the core logic executed by the root command. It merges the
// config file, flags and (optionally) wizard answers into download parameters
// and runs the download.
func downloadAction(ctx context.Context, cmd *cli.Command) error {
	cfg := config.Default()

	if path := cmd.String("config"); path != "" {
		loaded, err := config.Load(path)
		if err != nil {
			return err
		}

		cfg = loaded
	}

	ticker := cmd.String("ticker")
	interval := cmd.String("interval")
	startDate := cmd.Timestamp("start")
	endDate := cmd.Timestamp("end")
	period := cmd.String("period")
	format := cmd.String("format")
	noSave := cmd.Bool("no-save")
	outPath := cmd.String("out")

	if interval == "" {
		interval = cfg.Interval
	}

	if format == "" {
		format = cfg.Format
	}

	params := marketdata.DownloadParams{
		Ticker:         ticker,
		AutoAdjust:     cmd.Bool("auto-adjust"),
		IncludePrePost: cmd.Bool("prepost"),
		NoSave:         noSave,
	}

	if !startDate.IsZero() {
		params.Start = optional.Some(startDate.UTC())
	}

	if !endDate.IsZero() {
		params.End = optional.Some(endDate.UTC())
	}

	if period != "" {
		params.Period = optional.Some(marketdata.Period(period))
	}

	if outPath != "" {
		params.OutputPath = optional.Some(outPath)
	}

	// The wizard takes over when asked for explicitly or when no ticker was
	// given on the command line.
	if cmd.Bool("wizard") || ticker == "" {
		answers, ok, err := runWizard()
		if err != nil {
			return err
		}

		if !ok {
			return nil // Aborted, nothing to do.
		}

		params, err = applyWizard(params, answers)
		if err != nil {
			return err
		}

		interval = answers.Interval
		format = answers.Format
	}

	parsedInterval, err := marketdata.ParseInterval(interval)
	if err != nil {
		printErrorHints(err, params)

		return cli.Exit("", 2)
	}

	params.Interval = parsedInterval

	parsedFormat, err := writer.ParseFormat(format)
	if err != nil {
		printErrorHints(err, params)

		return cli.Exit("", 2)
	}

	dataRoot := cmd.String("data")
	if dataRoot == "" {
		dataRoot = cfg.DataRoot
	}

	log, err := logger.NewLogger()
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}
	defer log.Sync()

	bar := progressbar.NewOptions(-1,
		progressbar.OptionSetDescription(fmt.Sprintf("Downloading %s", params.Ticker)),
		progressbar.OptionShowCount(),
		progressbar.OptionSpinnerType(14),
	)

	onProgress := func(current, total float64, message string) {
		bar.Describe(message)
		_ = bar.Set(int(current))
	}

	client, err := marketdata.NewClient(marketdata.ClientConfig{
		DataRoot: dataRoot,
		Format:   parsedFormat,
	}, log, onProgress)
	if err != nil {
		return err
	}

	result, err := client.Download(ctx, params)

	_ = bar.Finish()
	fmt.Println()

	if err != nil {
		printErrorHints(err, params)

		return cli.Exit("", 2)
	}

	printSummary(result)

	return nil
}

// statsAction reads a previously saved file back and prints its stats.
func statsAction(ctx context.Context, cmd *cli.Command) error {
	path := cmd.Args().First()
	if path == "" {
		return fmt.Errorf("usage: fohlcv stats <path>")
	}

	stats, err := marketdata.ReadStats(path)
	if err != nil {
		return err
	}

	fmt.Println(TitleStyle.Render("File Stats"))
	fmt.Printf("%s %s\n", LabelStyle.Render("path"), path)
	fmt.Printf("%s %d\n", LabelStyle.Render("rows"), stats.Rows)
	fmt.Printf("%s %s\n", LabelStyle.Render("from"), stats.Start.UTC().Format(time.RFC3339))
	fmt.Printf("%s %s\n", LabelStyle.Render("to"), stats.End.UTC().Format(time.RFC3339))
	fmt.Printf("%s %d\n", LabelStyle.Render("days"), stats.DaysCovered())

	return nil
}

// runWizard runs the interactive wizard and returns the collected answers.
func runWizard() (WizardResult, bool, error) {
	p := tea.NewProgram(NewModel())

	final, err := p.Run()
	if err != nil {
		return WizardResult{}, false, fmt.Errorf("wizard failed: %w", err)
	}

	m, ok := final.(Model)
	if !ok {
		return WizardResult{}, false, fmt.Errorf("unexpected wizard model type")
	}

	answers, completed := m.Result()

	return answers, completed, nil
}

// applyWizard overlays wizard answers onto the download parameters.
func applyWizard(params marketdata.DownloadParams, answers WizardResult) (marketdata.DownloadParams, error) {
	params.Ticker = answers.Ticker
	params.NoSave = answers.NoSave
	params.Start = optional.None[time.Time]()
	params.End = optional.None[time.Time]()
	params.Period = optional.None[marketdata.Period]()

	interval, err := marketdata.ParseInterval(answers.Interval)
	if err != nil {
		return params, err
	}

	params.Interval = interval

	if answers.Start != "" {
		start, err := time.ParseInLocation(dateLayout, answers.Start, time.UTC)
		if err != nil {
			return params, fmt.Errorf("invalid start date %q: %w", answers.Start, err)
		}

		params.Start = optional.Some(start)
	}

	if answers.End != "" {
		end, err := time.ParseInLocation(dateLayout, answers.End, time.UTC)
		if err != nil {
			return params, fmt.Errorf("invalid end date %q: %w", answers.End, err)
		}

		params.End = optional.Some(end)
	}

	if answers.Period != "" {
		params.Period = optional.Some(marketdata.Period(answers.Period))
	}

	return params, nil
}

// printSummary prints the download result.
func printSummary(result *marketdata.DownloadResult) {
	fmt.Println(TitleStyle.Render("TOHLCV Downloaded"))
	fmt.Printf("%s %s\n", LabelStyle.Render("ticker"), result.Ticker)
	fmt.Printf("%s %s\n", LabelStyle.Render("interval"), result.Interval)
	fmt.Printf("%s %d\n", LabelStyle.Render("rows"), result.Rows)
	fmt.Printf("%s %s\n", LabelStyle.Render("from"), result.First.Format(time.RFC3339))
	fmt.Printf("%s %s\n", LabelStyle.Render("to"), result.Last.Format(time.RFC3339))

	for _, w := range result.Warnings {
		fmt.Println(WarnStyle.Render("warning: " + w))
	}

	if result.OutputPath != "" {
		fmt.Println(SuccessStyle.Render("Saved → " + result.OutputPath))
	}
}

// printErrorHints prints the error plus quick suggestions for the usual Yahoo
// pitfalls.
func printErrorHints(err error, params marketdata.DownloadParams) {
	fmt.Println()
	fmt.Println(ErrorStyle.Render("ERROR: " + err.Error()))
	fmt.Println()
	fmt.Println("Quick suggestions (Yahoo Finance):")

	if params.Start.IsSome() && params.End.IsSome() {
		fmt.Println(" - For a single day, use end = the next day (the end bound is exclusive).")
	}

	fmt.Println(" - Try interval=1d (many tickers have no intraday data).")
	fmt.Println(" - Try period=30d or 60d (without start/end).")
	fmt.Println(" - For commodities and futures, intraday data may be limited to recent periods.")
	fmt.Println()
}

func main() {
	cmd := &cli.Command{
		Name:  "fohlcv",
		Usage: "Download TOHLCV bars from Yahoo Finance and save them to disk",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "ticker",
				Aliases: []string{"t"},
				Usage:   "Yahoo ticker symbol (e.g. AAPL, BTC-USD, ^GSPC, EURUSD=X)",
			},
			&cli.StringFlag{
				Name:    "interval",
				Aliases: []string{"i"},
				Usage:   "Bar interval (e.g. 1m, 5m, 15m, 1h, 1d, 1wk, 1mo)",
			},
			&cli.TimestampFlag{
				Name:    "start",
				Aliases: []string{"s"},
				Usage:   "Start date in `YYYY-MM-DD` format",
				Config: cli.TimestampConfig{
					Layouts: []string{dateLayout},
				},
			},
			&cli.TimestampFlag{
				Name:    "end",
				Aliases: []string{"e"},
				Usage:   "End date in `YYYY-MM-DD` format (exclusive)",
				Config: cli.TimestampConfig{
					Layouts: []string{dateLayout},
				},
			},
			&cli.StringFlag{
				Name:    "period",
				Aliases: []string{"p"},
				Usage:   "Lookback period (e.g. 60d, 1y, max). Ignored when start/end are given",
			},
			&cli.StringFlag{
				Name:    "format",
				Aliases: []string{"f"},
				Usage:   "Output format: parquet or csv",
			},
			&cli.StringFlag{
				Name:    "out",
				Aliases: []string{"o"},
				Usage:   "Exact output path (overrides the generated one)",
			},
			&cli.StringFlag{
				Name:    "data",
				Aliases: []string{"d"},
				Usage:   "Data output directory",
			},
			&cli.BoolFlag{
				Name:  "no-save",
				Usage: "Do not save, only show the download summary",
			},
			&cli.BoolFlag{
				Name:  "auto-adjust",
				Usage: "Adjust prices for splits and dividends",
			},
			&cli.BoolFlag{
				Name:  "prepost",
				Usage: "Include pre/after-market bars where available",
			},
			&cli.BoolFlag{
				Name:    "wizard",
				Aliases: []string{"w"},
				Usage:   "Interactive wizard mode",
			},
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Path to a YAML config file",
			},
		},
		Action: downloadAction,
		Commands: []*cli.Command{
			{
				Name:      "stats",
				Usage:     "Show row count and date range of a saved file",
				ArgsUsage: "<path>",
				Action:    statsAction,
			},
		},
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
