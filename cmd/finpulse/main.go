// finpulse — financial news sentiment vs. price movement analysis.
//
// Main CLI entrypoint using cobra command framework.
package main

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/seenimoa/finpulse/internal/analysis/correlate"
	"github.com/seenimoa/finpulse/internal/analysis/sentiment"
	"github.com/seenimoa/finpulse/internal/analysis/technical"
	"github.com/seenimoa/finpulse/internal/config"
	"github.com/seenimoa/finpulse/internal/dataset"
	"github.com/seenimoa/finpulse/internal/datasource"
	"github.com/seenimoa/finpulse/internal/report"
	"github.com/seenimoa/finpulse/pkg/models"
	"github.com/seenimoa/finpulse/pkg/utils"
)

// Build-time variables (set via -ldflags).
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

// Global config
var cfg *config.Config

func main() {
	// Local .env is optional; missing file is not an error.
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "finpulse",
	Short: "finpulse — headline sentiment vs. stock price movement",
	Long: `finpulse loads a financial-news headline dataset and daily price
bars, cleans and featurizes the news table, scores headline sentiment with a
deterministic lexicon scorer, computes technical indicators, and correlates
per-ticker daily sentiment with daily returns.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		configFile, _ := cmd.Flags().GetString("config")
		if configFile != "" {
			cfg, err = config.LoadFromFile(configFile)
		} else {
			cfg, err = config.Load()
		}
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().String("config", "", "config file path (default: ./config/config.yaml)")

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(preprocessCmd)
	rootCmd.AddCommand(sentimentCmd)
	rootCmd.AddCommand(indicatorsCmd)
	rootCmd.AddCommand(correlateCmd)
	rootCmd.AddCommand(reportCmd)
	rootCmd.AddCommand(fetchNewsCmd)
	rootCmd.AddCommand(statusCmd)
}

// --- Version Command ---

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("finpulse %s\n", version)
		fmt.Printf("  commit:  %s\n", commit)
		fmt.Printf("  built:   %s\n", date)
	},
}

// --- Preprocess Command ---

var preprocessCmd = &cobra.Command{
	Use:   "preprocess",
	Short: "Load, quality-check, clean and featurize the news dataset",
	RunE: func(cmd *cobra.Command, args []string) error {
		save, _ := cmd.Flags().GetBool("save")

		fmt.Printf("📰 Preprocessing %s\n", cfg.Data.NewsCSV)
		records, rep, err := dataset.Preprocess(
			cfg.Data.NewsCSV,
			dataset.LoadOptions{SampleSize: cfg.Data.SampleSize},
			cleanPolicy(),
		)
		if err != nil {
			return err
		}

		fmt.Println()
		fmt.Print(rep.Summary())

		if save {
			if err := dataset.SaveSnapshot(cfg.Data.Snapshot, cfg.Data.NewsCSV, rep, records); err != nil {
				return err
			}
			fmt.Printf("\n💾 Snapshot saved to %s (%d rows)\n", cfg.Data.Snapshot, len(records))
		}
		return nil
	},
}

func init() {
	preprocessCmd.Flags().Bool("save", false, "save the processed table snapshot")
}

// --- Sentiment Command ---

var sentimentCmd = &cobra.Command{
	Use:   "sentiment [ticker]",
	Short: "Score headline sentiment and print daily aggregates",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		records, _, err := loadProcessed()
		if err != nil {
			return err
		}

		scorer := sentiment.NewLexiconScorerWithThresholds(
			cfg.Sentiment.PositiveThreshold, cfg.Sentiment.NegativeThreshold)
		scores := scorer.ScoreRecords(records)
		daily := sentiment.AggregateDaily(scores)

		chart, _ := cmd.Flags().GetBool("chart")
		if chart && len(args) == 0 {
			return fmt.Errorf("--chart requires a ticker argument")
		}

		if len(args) == 1 {
			ticker := utils.NormalizeTicker(args[0])
			var filtered []models.DailySentiment
			for _, d := range daily {
				if d.Ticker == ticker {
					filtered = append(filtered, d)
				}
			}
			daily = filtered
			fmt.Printf("🗞  Daily sentiment for %s (%d headline(s) scored)\n\n", ticker, len(scores))

			if chart {
				dates := make([]time.Time, len(daily))
				values := make([]float64, len(daily))
				for i, d := range daily {
					dates[i] = d.Date
					values[i] = d.Score
				}
				style := chartStyle()
				style.Title = ticker + " Daily Sentiment"
				path := filepath.Join(cfg.Report.OutDir, ticker+"_sentiment.svg")
				svg := report.LineChart(dates,
					[]report.NamedSeries{{Name: "mean score", Values: values}}, style)
				if err := writeFile(path, svg); err != nil {
					return err
				}
				fmt.Printf("  📈 chart written to %s\n\n", path)
			}
		} else {
			fmt.Printf("🗞  Daily sentiment across %d ticker-dates (%d headline(s) scored)\n\n",
				len(daily), len(scores))
		}

		limit := 30
		for i, d := range daily {
			if i >= limit {
				fmt.Printf("  ... %d more rows\n", len(daily)-limit)
				break
			}
			fmt.Printf("  %-8s %s  %+.4f  (n=%d)\n",
				d.Ticker, utils.FormatDate(d.Date), d.Score, d.N)
		}
		return nil
	},
}

func init() {
	sentimentCmd.Flags().Bool("chart", false, "write an SVG line chart of daily sentiment")
}

// --- Indicators Command ---

var indicatorsCmd = &cobra.Command{
	Use:   "indicators <ticker>",
	Short: "Compute technical indicators for a ticker",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ticker := utils.NormalizeTicker(args[0])
		chart, _ := cmd.Flags().GetBool("chart")

		provider := barProvider()
		from, to := barRange()

		fmt.Printf("📊 %s daily bars from %s\n", ticker, provider.Name())
		bars, err := provider.GetDailyBars(context.Background(), ticker, from, to)
		if err != nil {
			return err
		}

		set := technical.ComputeSet(ticker, bars, indicatorParams())
		if set == nil {
			return fmt.Errorf("no bars for %s", ticker)
		}

		fmt.Printf("  bars:     %d (%s to %s)\n", len(bars),
			utils.FormatDate(bars[0].Date), utils.FormatDate(bars[len(bars)-1].Date))
		for _, p := range sortedKeys(set.SMA) {
			fmt.Printf("  SMA(%d):  %s\n", p, formatIndicator(technical.Latest(set.SMA[p])))
		}
		for _, p := range sortedKeys(set.EMA) {
			fmt.Printf("  EMA(%d):  %s\n", p, formatIndicator(technical.Latest(set.EMA[p])))
		}
		fmt.Printf("  RSI(%d):  %s\n", cfg.Indicators.RSIPeriod, formatIndicator(technical.Latest(set.RSI)))
		fmt.Printf("  MACD:     %s (signal %s)\n",
			formatIndicator(technical.Latest(set.MACD)), formatIndicator(technical.Latest(set.Signal)))

		if chart {
			overlays := make([]report.NamedSeries, 0, len(set.SMA))
			for _, p := range sortedKeys(set.SMA) {
				overlays = append(overlays, report.NamedSeries{
					Name:   fmt.Sprintf("SMA %d", p),
					Values: set.SMA[p],
				})
			}
			style := chartStyle()
			style.Title = ticker + " — Daily"
			path := filepath.Join(cfg.Report.OutDir, ticker+"_candles.svg")
			if err := writeFile(path, report.CandlestickChart(bars, overlays, style)); err != nil {
				return err
			}
			fmt.Printf("  📈 chart written to %s\n", path)
		}
		return nil
	},
}

func init() {
	indicatorsCmd.Flags().Bool("chart", false, "write an SVG candlestick chart")
}

// --- Correlate Command ---

var correlateCmd = &cobra.Command{
	Use:   "correlate [tickers...]",
	Short: "Correlate daily headline sentiment with daily returns",
	Long: `Runs the full pipeline: preprocess the news dataset, score and
aggregate sentiment per ticker-date, fetch daily bars, inner-join on date,
and report Pearson and Spearman correlation with the sample size. With no
arguments, every ticker present in the dataset is correlated.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		records, _, err := loadProcessed()
		if err != nil {
			return err
		}

		scorer := sentiment.NewLexiconScorerWithThresholds(
			cfg.Sentiment.PositiveThreshold, cfg.Sentiment.NegativeThreshold)
		daily := sentiment.AggregateDaily(scorer.ScoreRecords(records))

		byTicker := make(map[string][]models.DailySentiment)
		for _, d := range daily {
			byTicker[d.Ticker] = append(byTicker[d.Ticker], d)
		}

		tickers := args
		for i, t := range tickers {
			tickers[i] = utils.NormalizeTicker(t)
		}
		if len(tickers) == 0 {
			for t := range byTicker {
				tickers = append(tickers, t)
			}
			sort.Strings(tickers)
		}

		provider := barProvider()
		from, to := barRange()
		opts := correlate.Options{
			MinSamples:  cfg.Correlation.MinSamples,
			Concurrency: cfg.Correlation.Concurrency,
		}

		fmt.Printf("🔗 Correlating %d ticker(s) — bars from %s\n\n", len(tickers), provider.Name())

		run := func(ctx context.Context, ticker string) (*models.CorrelationResult, error) {
			sentimentDays := byTicker[ticker]
			if len(sentimentDays) == 0 {
				return nil, fmt.Errorf("no scored headlines for %s", ticker)
			}
			bars, err := provider.GetDailyBars(ctx, ticker, from, to)
			if err != nil {
				return nil, err
			}
			points := correlate.Align(sentimentDays, bars)
			return correlate.Correlate(ticker, points, opts)
		}

		results, failures := correlate.Batch(context.Background(), tickers, run, opts)

		var table []models.CorrelationResult
		for _, t := range tickers {
			if r, ok := results[t]; ok {
				table = append(table, *r)
			}
		}
		if len(table) > 0 {
			fmt.Print(report.CorrelationTable(table))
		}

		if len(failures) > 0 {
			fmt.Printf("\n⚠️  %d ticker(s) skipped:\n", len(failures))
			for _, t := range tickers {
				if err, ok := failures[t]; ok {
					reason := err.Error()
					if errors.Is(err, correlate.ErrInsufficientData) {
						reason = "insufficient paired observations"
					}
					fmt.Printf("  %-8s %s\n", t, reason)
				}
			}
		}
		return nil
	},
}

// --- Report Command ---

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Write summary statistics and charts to the output directory",
	RunE: func(cmd *cobra.Command, args []string) error {
		records, rep, err := loadProcessed()
		if err != nil {
			return err
		}

		fmt.Print(rep.Summary())
		fmt.Println()
		fmt.Print(report.SummaryText(records))

		if err := os.MkdirAll(cfg.Report.OutDir, 0o755); err != nil {
			return err
		}

		style := chartStyle()
		style.Title = "Headlines per Publisher"
		publishers := report.CountByPublisher(records)
		if len(publishers) > 15 {
			publishers = publishers[:15]
		}
		path := filepath.Join(cfg.Report.OutDir, "publishers.svg")
		if err := writeFile(path, report.BarChart(publishers, style)); err != nil {
			return err
		}
		fmt.Printf("\n📈 charts written to %s\n", cfg.Report.OutDir)
		return nil
	},
}

// --- Fetch News Command ---

var fetchNewsCmd = &cobra.Command{
	Use:   "fetch-news",
	Short: "Pull current headlines from the configured RSS feeds",
	Long: `Fetches the configured RSS feeds and writes the headlines to the
feed output directory in the raw dataset schema, so the file can be fed back
through preprocess. With feeds.fetch_bodies enabled, article body text is
fetched and scored instead of the headline alone.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()
		sources := make([]datasource.FeedSource, len(cfg.Feeds.Sources))
		for i, s := range cfg.Feeds.Sources {
			sources[i] = datasource.FeedSource{Name: s.Name, URL: s.URL}
		}

		feeds := datasource.NewFeeds(sources, cfg.Feeds.RequestsPerS)
		fmt.Println("🌐 Fetching RSS feeds...")
		records, err := feeds.FetchHeadlines(ctx)
		if err != nil {
			return err
		}
		fmt.Printf("  fetched %d headline(s)\n", len(records))

		path := filepath.Join(cfg.Feeds.OutputDir,
			"headlines_"+time.Now().UTC().Format("2006-01-02")+".csv")
		if err := writeHeadlinesCSV(path, records); err != nil {
			return err
		}
		fmt.Printf("  💾 written to %s\n", path)

		scorer := sentiment.NewLexiconScorerWithThresholds(
			cfg.Sentiment.PositiveThreshold, cfg.Sentiment.NegativeThreshold)
		for i, r := range records {
			if i >= 10 {
				break
			}
			text := r.Headline
			if cfg.Feeds.FetchBodies {
				if body, err := feeds.ArticleText(ctx, r.URL); err == nil {
					text = body
				}
			}
			score := scorer.Score(text)
			fmt.Printf("  %+.3f %-8s [%s] %s\n", score, scorer.Label(score), r.Publisher, r.Headline)
		}
		return nil
	},
}

// writeHeadlinesCSV stores fetched records in the raw dataset schema. The
// stock column is left empty; attribution is out of scope for live fetches
// and the cleaner's missing-value policy decides what happens downstream.
func writeHeadlinesCSV(path string, records []models.NewsRecord) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write([]string{"headline", "url", "publisher", "date", "stock"}); err != nil {
		return err
	}
	for _, r := range records {
		if err := w.Write([]string{r.Headline, r.URL, r.Publisher, r.RawDate, r.Ticker}); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}

// --- Status Command ---

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show configuration and dataset status",
	RunE: func(cmd *cobra.Command, args []string) error {
		fmt.Println("═══════════════════════════════════════")
		fmt.Println("  finpulse — Status")
		fmt.Println("═══════════════════════════════════════")
		fmt.Printf("  Version:        %s (%s)\n", version, commit)
		fmt.Printf("  News CSV:       %s\n", cfg.Data.NewsCSV)
		fmt.Printf("  Snapshot:       %s\n", cfg.Data.Snapshot)
		fmt.Printf("  Bar provider:   %s\n", cfg.Prices.Provider)
		fmt.Printf("  Output dir:     %s\n", cfg.Report.OutDir)

		if snap, err := dataset.LoadSnapshot(cfg.Data.Snapshot); err == nil {
			state := "fresh"
			if snap.Stale() {
				state = "stale (source changed)"
			}
			fmt.Printf("  Snapshot state: %s — %d rows saved %s\n",
				state, len(snap.Records), snap.SavedAt.Format(time.RFC3339))
		} else {
			fmt.Println("  Snapshot state: not present")
		}
		fmt.Println("═══════════════════════════════════════")
		return nil
	},
}

// --- Helpers ---

// loadProcessed returns the processed table, via the snapshot when fresh.
func loadProcessed() ([]models.NewsRecord, models.QualityReport, error) {
	return dataset.LoadOrPreprocess(
		cfg.Data.Snapshot,
		cfg.Data.NewsCSV,
		dataset.LoadOptions{SampleSize: cfg.Data.SampleSize},
		cleanPolicy(),
	)
}

func cleanPolicy() dataset.CleanPolicy {
	return dataset.CleanPolicy{
		Duplicates:     cfg.Cleaning.Duplicates,
		MissingDefault: cfg.Cleaning.MissingDefault,
		Missing:        cfg.Cleaning.Missing,
		Dates:          cfg.Cleaning.Dates,
		Outliers:       cfg.Cleaning.Outliers,
	}
}

func indicatorParams() technical.Params {
	return technical.Params{
		SMAPeriods: cfg.Indicators.SMAPeriods,
		EMAPeriods: cfg.Indicators.EMAPeriods,
		RSIPeriod:  cfg.Indicators.RSIPeriod,
		MACDFast:   cfg.Indicators.MACDFast,
		MACDSlow:   cfg.Indicators.MACDSlow,
		MACDSignal: cfg.Indicators.MACDSignal,
	}
}

func barProvider() datasource.BarProvider {
	switch cfg.Prices.Provider {
	case "alpaca":
		return datasource.NewAlpaca(cfg.Prices.AlpacaKey, cfg.Prices.AlpacaSecret)
	case "csv":
		return datasource.NewCSVFiles(cfg.Prices.CSVDir)
	default:
		return datasource.NewYahoo()
	}
}

func barRange() (from, to time.Time) {
	to = time.Now().UTC()
	lookback := cfg.Prices.LookbackDays
	if lookback <= 0 {
		lookback = 365
	}
	return to.AddDate(0, 0, -lookback), to
}

func chartStyle() report.ChartStyle {
	style := report.DefaultChartStyle()
	if cfg.Report.ChartWidth > 0 {
		style.Width = cfg.Report.ChartWidth
	}
	if cfg.Report.ChartHeight > 0 {
		style.Height = cfg.Report.ChartHeight
	}
	return style
}

func formatIndicator(v float64) string {
	if v != v { // NaN
		return "undefined"
	}
	return fmt.Sprintf("%.2f", v)
}

func sortedKeys(m map[int][]float64) []int {
	keys := make([]int, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Ints(keys)
	return keys
}

func writeFile(path, content string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return os.WriteFile(path, []byte(content), 0o644)
}
