package main

import (
	"os"
	"time"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"github.com/saniyar-dev/subxray/internal/config"
	"github.com/saniyar-dev/subxray/internal/geoip"
	"github.com/saniyar-dev/subxray/internal/link"
	"github.com/saniyar-dev/subxray/internal/logger"
	"github.com/saniyar-dev/subxray/internal/model"
	"github.com/saniyar-dev/subxray/internal/pipeline"
	"github.com/saniyar-dev/subxray/internal/sink"
	sinkfile "github.com/saniyar-dev/subxray/internal/sink/file"
	"github.com/saniyar-dev/subxray/internal/store"
	"github.com/saniyar-dev/subxray/internal/subscription"
)

var (
	flagOmitFirst bool
	flagOutputDir string
	flagStdout    bool
)

var generateCmd = &cobra.Command{
	Use:   "generate <subscription-url>",
	Short: "Fetch a subscription and write one config file per link",
	Long:  `Fetch the base64 subscription document, decode every share link in it, and persist each one as an individual JSON configuration file. Use --omit-first to drop the leading traffic-stats pseudo-link.`,
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := config.Load(cfgFile)
		if err != nil {
			logger.Log.Fatalf("Error loading config: %v", err)
		}
		if flagOutputDir != "" {
			cfg.OutputDir = flagOutputDir
		}

		subURL := args[0]
		fetcher, err := subscription.FetcherFor(subURL, cfg.Fetch)
		if err != nil {
			logger.Log.Fatalf("Error selecting fetcher: %v", err)
		}

		logger.Log.Infof("Fetching subscription: %s", subURL)
		body, err := fetcher.Fetch(subURL)
		if err != nil {
			logger.Log.Fatalf("Error fetching subscription: %v", err)
		}

		links, err := subscription.Links(body)
		if err != nil {
			logger.Log.Fatalf("Error decoding subscription: %v", err)
		}
		if len(links) == 0 {
			logger.Log.Fatalf("No links to process.")
		}
		logger.Log.Infof("Fetched and decoded %d links.", len(links))

		out, err := buildSink(cfg)
		if err != nil {
			logger.Log.Fatalf("Error creating sink: %v", err)
		}

		if cfg.GeoIP.CountryPath != "" {
			if err := geoip.Init(cfg.GeoIP.CountryPath); err != nil {
				logger.Log.Warnf("GeoIP disabled: %v", err)
			}
			defer geoip.Close()
		}

		total := len(links)
		if flagOmitFirst && total > 0 {
			total--
		}
		bar := progressbar.NewOptions(total,
			progressbar.OptionEnableColorCodes(true),
			progressbar.OptionShowBytes(false),
			progressbar.OptionSetWidth(15),
			progressbar.OptionSetDescription("[cyan]Generating...[reset]"),
			progressbar.OptionSetWriter(os.Stderr),
			progressbar.OptionSetTheme(progressbar.Theme{
				Saucer:        "[green]=[reset]",
				SaucerHead:    "[green]>[reset]",
				SaucerPadding: " ",
				BarStart:      "[",
				BarEnd:        "]",
			}),
		)

		var batch []model.GeneratedConfig
		res := pipeline.Run(links, out, pipeline.Options{
			OmitFirst: flagOmitFirst,
			Progress:  func() { _ = bar.Add(1) },
			Observer: func(c *link.Config) {
				batch = append(batch, historyRecord(c))
			},
		})
		_ = bar.Finish()

		if cfg.Database.Path != "" {
			recordHistory(cfg.Database.Path, batch)
		}

		logger.Log.Infof("Successfully generated configs: %d", res.Generated)
		logger.Log.Infof("Failed or skipped links: %d", res.Failed)
	},
}

func buildSink(cfg *config.Config) (sink.Sink, error) {
	if flagStdout {
		return sink.Get("stdout", nil)
	}
	return sink.Get("file", map[string]interface{}{"dir": cfg.OutputDir})
}

func historyRecord(cfg *link.Config) model.GeneratedConfig {
	rec := model.GeneratedConfig{
		Hash:      cfg.Fingerprint(),
		Remarks:   cfg.Remarks,
		Protocol:  cfg.Outbounds[0].Protocol,
		Address:   cfg.Address,
		Port:      cfg.Port,
		Filename:  sinkfile.Filename(cfg),
		CreatedAt: time.Now(),
	}
	if geoip.Enabled() {
		if country, err := geoip.Country(cfg.Address); err == nil {
			rec.Country = country
		}
	}
	return rec
}

func recordHistory(path string, batch []model.GeneratedConfig) {
	db, err := store.Connect(path)
	if err != nil {
		logger.Log.Warnf("History disabled, cannot open database: %v", err)
		return
	}
	defer store.Close(db)

	if err := store.Migrate(db); err != nil {
		logger.Log.Warnf("History disabled, migration failed: %v", err)
		return
	}

	inserted, err := store.Record(db, batch)
	if err != nil {
		logger.Log.Warnf("Failed to record history: %v", err)
		return
	}
	logger.Log.Debugf("Recorded %d new configs in history.", inserted)
}

func init() {
	generateCmd.Flags().BoolVar(&flagOmitFirst, "omit-first", false, "Omit the first link from the subscription (often a stats link)")
	generateCmd.Flags().StringVarP(&flagOutputDir, "output-dir", "o", "", "Directory to write config files into")
	generateCmd.Flags().BoolVar(&flagStdout, "stdout", false, "Print configs to stdout instead of writing files")
	rootCmd.AddCommand(generateCmd)
}
