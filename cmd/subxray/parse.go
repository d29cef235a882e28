package main

import (
	"github.com/spf13/cobra"

	"github.com/saniyar-dev/subxray/internal/config"
	"github.com/saniyar-dev/subxray/internal/logger"
	"github.com/saniyar-dev/subxray/internal/pipeline"
)

var parseCmd = &cobra.Command{
	Use:   "parse <share-link>...",
	Short: "Convert share links given on the command line",
	Args:  cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := config.Load(cfgFile)
		if err != nil {
			logger.Log.Fatalf("Error loading config: %v", err)
		}
		if flagOutputDir != "" {
			cfg.OutputDir = flagOutputDir
		}

		out, err := buildSink(cfg)
		if err != nil {
			logger.Log.Fatalf("Error creating sink: %v", err)
		}

		res := pipeline.Run(args, out, pipeline.Options{})
		logger.Log.Infof("Successfully generated configs: %d", res.Generated)
		logger.Log.Infof("Failed or skipped links: %d", res.Failed)
	},
}

func init() {
	parseCmd.Flags().StringVarP(&flagOutputDir, "output-dir", "o", "", "Directory to write config files into")
	parseCmd.Flags().BoolVar(&flagStdout, "stdout", false, "Print configs to stdout instead of writing files")
	rootCmd.AddCommand(parseCmd)
}
