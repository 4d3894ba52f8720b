package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/Veraticus/segscope/internal/cli"
	"github.com/Veraticus/segscope/internal/common"
	"github.com/Veraticus/segscope/internal/config"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	cfgFile string
	version = "dev"
	rootCmd = &cobra.Command{
		Use:   "segscope",
		Short: "📊 RFM customer segmentation dashboard",
		Long: `segscope: explore a precomputed RFM segmentation table in the terminal.

Pick clusters, compare their Recency, Frequency and Monetary profiles,
read the marketing notes for each segment and export the filtered customers.`,
		PersistentPreRunE: initConfig,
		SilenceUsage:      true,
	}
)

func init() {
	config.SetDefaults(viper.GetViper())

	// Global flags
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: $HOME/.config/segscope/config.yaml)")
	rootCmd.PersistentFlags().String("log-level", "info", "log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().String("log-format", "console", "log format (console, json)")
	rootCmd.PersistentFlags().String("source", "", "segmentation source: CSV path, sqlite://path?table=name or postgres:// DSN")
	rootCmd.PersistentFlags().String("profiles", "", "YAML file with cluster labels and marketing notes")

	// Bind flags to viper
	_ = viper.BindPFlag("logging.level", rootCmd.PersistentFlags().Lookup("log-level"))
	_ = viper.BindPFlag("logging.format", rootCmd.PersistentFlags().Lookup("log-format"))
	_ = viper.BindPFlag("data.source", rootCmd.PersistentFlags().Lookup("source"))
	_ = viper.BindPFlag("profiles.path", rootCmd.PersistentFlags().Lookup("profiles"))

	rootCmd.AddCommand(dashboardCmd())
	rootCmd.AddCommand(summaryCmd())
	rootCmd.AddCommand(exportCmd())
	rootCmd.AddCommand(clustersCmd())
	rootCmd.AddCommand(interactiveCmd())
	rootCmd.AddCommand(versionCmd())
}

func main() {
	interrupts := cli.NewInterruptHandler(os.Stderr, "Interrupted, shutting down")
	ctx, stop := interrupts.HandleInterrupts(context.Background())

	err := rootCmd.ExecuteContext(ctx)
	stop()

	if err != nil {
		fmt.Fprintln(os.Stderr, errorMessage(err))
		os.Exit(1)
	}
}

func initConfig(_ *cobra.Command, _ []string) error {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("failed to get home directory: %w", err)
		}

		viper.AddConfigPath(fmt.Sprintf("%s/.config/segscope", home))
		viper.AddConfigPath(".")
		viper.SetConfigName("config")
		viper.SetConfigType("yaml")
	}

	viper.SetEnvPrefix("SEGSCOPE")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return fmt.Errorf("failed to read config: %w", err)
		}
	}

	if err := setupLogging(); err != nil {
		return fmt.Errorf("failed to setup logging: %w", err)
	}

	return nil
}

func setupLogging() error {
	logger, err := common.NewLogger(os.Stderr, viper.GetString("logging.level"), viper.GetString("logging.format"))
	if err != nil {
		return err
	}

	logger, session := common.WithSession(logger)
	slog.SetDefault(logger)
	slog.Debug("Logging initialized", "session", session)

	return nil
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "segscope %s\n", version)
		},
	}
}
