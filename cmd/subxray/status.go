package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/saniyar-dev/subxray/internal/config"
	"github.com/saniyar-dev/subxray/internal/logger"
	"github.com/saniyar-dev/subxray/internal/model"
	"github.com/saniyar-dev/subxray/internal/store"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show generation history statistics",
	Long:  `Displays a dashboard over the history database: total generated configs, protocol and country breakdowns, and the most recent entries.`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := config.Load(cfgFile)
		if err != nil {
			logger.Log.Fatalf("Error loading config: %v", err)
		}
		if cfg.Database.Path == "" {
			logger.Log.Fatalf("No history database configured (set database.path).")
		}

		db, err := store.Connect(cfg.Database.Path)
		if err != nil {
			logger.Log.Fatalf("Error connecting to DB: %v", err)
		}
		defer store.Close(db)

		var total int64
		db.Model(&model.GeneratedConfig{}).Count(&total)

		type groupStat struct {
			Key   string
			Count int
		}

		var protoStats []groupStat
		db.Model(&model.GeneratedConfig{}).
			Select("protocol as key, count(*) as count").
			Group("protocol").
			Order("count desc").
			Scan(&protoStats)

		var countryStats []groupStat
		db.Model(&model.GeneratedConfig{}).
			Select("country as key, count(*) as count").
			Where("country != ''").
			Group("country").
			Order("count desc").
			Limit(5).
			Scan(&countryStats)

		var recent []model.GeneratedConfig
		db.Order("created_at desc").Limit(5).Find(&recent)

		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintf(w, "Database:\t%s (%s)\n", cfg.Database.Path, fileSize(cfg.Database.Path))
		fmt.Fprintf(w, "Total configs:\t%d\n", total)
		fmt.Fprintln(w)

		fmt.Fprintln(w, "PROTOCOL\tCOUNT")
		for _, s := range protoStats {
			fmt.Fprintf(w, "%s\t%d\n", s.Key, s.Count)
		}
		if len(countryStats) > 0 {
			fmt.Fprintln(w)
			fmt.Fprintln(w, "COUNTRY\tCOUNT")
			for _, s := range countryStats {
				fmt.Fprintf(w, "%s\t%d\n", s.Key, s.Count)
			}
		}
		if len(recent) > 0 {
			fmt.Fprintln(w)
			fmt.Fprintln(w, "RECENT\tPROTOCOL\tFILE")
			for _, r := range recent {
				fmt.Fprintf(w, "%s\t%s\t%s\n", r.Remarks, r.Protocol, r.Filename)
			}
		}
		w.Flush()
	},
}

func fileSize(path string) string {
	info, err := os.Stat(path)
	if err != nil {
		return "n/a"
	}
	size := float64(info.Size())
	for _, unit := range []string{"B", "KB", "MB", "GB"} {
		if size < 1024 {
			return fmt.Sprintf("%.1f %s", size, unit)
		}
		size /= 1024
	}
	return fmt.Sprintf("%.1f TB", size)
}

func init() {
	rootCmd.AddCommand(statusCmd)
}
