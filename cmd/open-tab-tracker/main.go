package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/kappa/open-tab-tracker/internal/browser"
	"github.com/kappa/open-tab-tracker/internal/firefox"
	"github.com/kappa/open-tab-tracker/internal/logging"
	"github.com/kappa/open-tab-tracker/internal/models"
	"github.com/kappa/open-tab-tracker/internal/output"
	"github.com/kappa/open-tab-tracker/internal/snss"
	"github.com/kappa/open-tab-tracker/internal/store"
)

var (
	browserFlag  string
	jsonFlag     bool
	compactFlag  bool
	outputFile   string
	storePath    string
	historyLimit int
	logLevel     string
	version      = "0.1.0-alpha"
)

var rootCmd = &cobra.Command{
	Use:   "open-tab-tracker",
	Short: "Reconstruct open browser tabs from Chromium's session log",
	Long: `open-tab-tracker decodes a Chromium-family browser's SNSS session log
and reconstructs what tabs, windows, and tab groups were open, without
ever touching history or bookmarks.

Examples:
  open-tab-tracker count                    # How many tabs are open right now
  open-tab-tracker tabs --browser chrome    # Full tab/window breakdown
  open-tab-tracker tabs --json              # Same, as JSON
  open-tab-tracker list                     # Which browsers were detected
  open-tab-tracker history --browser chrome # Recorded tab-count trend
`,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&browserFlag, "browser", "b", "auto", "Browser type: auto, chrome, chromium, edge, brave, vivaldi, or firefox")
	rootCmd.PersistentFlags().StringVarP(&outputFile, "output", "o", "", "Output file (default: stdout)")
	rootCmd.PersistentFlags().StringVar(&storePath, "db-path", "", "Custom path for the tab-count history database")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "Log level: debug, info, warn, error")

	countCmd.Flags().BoolVar(&jsonFlag, "json", false, "Output as JSON")
	tabsCmd.Flags().BoolVar(&jsonFlag, "json", false, "Output as JSON")
	tabsCmd.Flags().BoolVar(&compactFlag, "compact", false, "Compact JSON (no indentation)")
	historyCmd.Flags().IntVar(&historyLimit, "limit", 20, "Maximum number of recorded samples to show")

	rootCmd.AddCommand(versionCmd, countCmd, tabsCmd, listCmd, historyCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("open-tab-tracker version %s\n", version)
	},
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List detected browsers",
	RunE: func(cmd *cobra.Command, args []string) error {
		browsers := browser.NewDetector().Detect()
		if len(browsers) == 0 {
			fmt.Println("No browsers detected")
			return nil
		}

		rows := make([]output.BrowserRow, 0, len(browsers))
		for _, b := range browsers {
			row := output.BrowserRow{Name: b.Name, Path: b.Path}
			if b.Type == browser.Firefox {
				if err := firefox.CheckDeps(); err != nil {
					row.Note = "count unavailable: " + err.Error()
				} else {
					row.Note = "count only"
				}
			}
			rows = append(rows, row)
		}
		return output.PrintTable(os.Stdout, output.BrowsersTable{Rows_: rows})
	},
}

var countCmd = &cobra.Command{
	Use:   "count",
	Short: "Print the number of tabs currently open, recording it to history",
	RunE:  runCount,
}

var tabsCmd = &cobra.Command{
	Use:   "tabs",
	Short: "Reconstruct the full window/tab breakdown",
	RunE:  runTabs,
}

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show recorded tab-count history for a browser",
	RunE:  runHistory,
}

// errFirefoxUnsupported rejects commands that need a full SNSS decode.
// Firefox doesn't write SNSS logs, so anything past a bare tab count has
// nothing to work with.
var errFirefoxUnsupported = errors.New("firefox supports tab counts only")

// resolveBrowser picks the browser named by --browser, or the first
// non-Firefox browser detected when --browser is "auto" (Firefox requires
// shelling out to external tools). Firefox is chosen for "auto" only when
// it is the only browser detected.
func resolveBrowser() (*browser.Browser, error) {
	if browserFlag == "" || browserFlag == string(browser.Auto) {
		detected := browser.NewDetector().Detect()
		for _, b := range detected {
			if b.Type != browser.Firefox {
				return &b, nil
			}
		}
		if len(detected) > 0 {
			return &detected[0], nil
		}
		return nil, browser.ErrBrowserNotAvailable
	}
	return browser.NewDetector().GetBrowser(browser.Type(browserFlag))
}

func runCount(cmd *cobra.Command, args []string) error {
	log := logging.New(logLevel)

	b, err := resolveBrowser()
	if err != nil {
		return err
	}

	count, err := countTabs(b)
	if err != nil {
		return err
	}

	if err := persistCount(b.Name, count); err != nil {
		log.WithError(err).WithFields(logrus.Fields{"browser": b.Name}).Warn("failed to record tab-count sample")
	}

	if jsonFlag {
		encoder := json.NewEncoder(os.Stdout)
		return encoder.Encode(struct {
			Browser string `json:"browser"`
			Count   int    `json:"count"`
		}{Browser: b.Name, Count: count})
	}
	fmt.Println(count)
	return nil
}

func countTabs(b *browser.Browser) (int, error) {
	if b.Type == browser.Firefox {
		return firefox.Count()
	}
	result, err := decodeSession(b)
	if err != nil {
		return 0, err
	}
	return result.TabCount(), nil
}

func runTabs(cmd *cobra.Command, args []string) error {
	b, err := resolveBrowser()
	if err != nil {
		return err
	}
	if b.Type == browser.Firefox {
		return fmt.Errorf("tabs: %w", errFirefoxUnsupported)
	}

	result, err := decodeSession(b)
	if err != nil {
		return err
	}
	report := models.Report{Browser: b.Name, Result: result}

	out := os.Stdout
	if outputFile != "" {
		f, err := os.Create(outputFile)
		if err != nil {
			return fmt.Errorf("failed to create output file: %v", err)
		}
		defer f.Close()
		out = f
	}

	if jsonFlag {
		if compactFlag {
			return output.FormatJSONCompact(out, report)
		}
		return output.FormatJSON(out, report)
	}

	return output.PrintTable(out, output.TabsTable{Report: report})
}

func runHistory(cmd *cobra.Command, args []string) error {
	if browserFlag == string(browser.Auto) {
		return fmt.Errorf("history: pass --browser explicitly, history is recorded per browser")
	}
	if browser.Type(browserFlag) == browser.Firefox {
		return fmt.Errorf("history: %w", errFirefoxUnsupported)
	}

	path, err := resolveStorePath()
	if err != nil {
		return err
	}
	s, err := store.Open(path)
	if err != nil {
		return err
	}
	defer s.Close()

	samples, err := s.Recent(browserFlag, historyLimit)
	if err != nil {
		return err
	}

	rows := make([]output.CountRow, 0, len(samples))
	for _, sample := range samples {
		rows = append(rows, output.CountRow{
			Browser:    sample.Browser,
			Count:      sample.Count,
			ObservedAt: sample.ObservedAt,
		})
	}

	return output.PrintTable(os.Stdout, output.CountsTable{Rows_: rows})
}

func decodeSession(b *browser.Browser) (models.Result, error) {
	sessionFile, err := browser.FindLatestSessionFile(b.Path)
	if err != nil {
		return models.Result{}, err
	}
	return snss.ParseFile(sessionFile)
}

func persistCount(name string, count int) error {
	path, err := resolveStorePath()
	if err != nil {
		return err
	}
	s, err := store.Open(path)
	if err != nil {
		return err
	}
	defer s.Close()
	return s.Record(name, count, time.Now())
}

func resolveStorePath() (string, error) {
	if storePath != "" {
		return storePath, nil
	}
	return store.DefaultPath()
}
