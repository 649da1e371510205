package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/aretw0/bombrisk"
	"github.com/aretw0/bombrisk/internal/logging"
	"github.com/aretw0/bombrisk/pkg/adapters/loam"
	"github.com/aretw0/bombrisk/pkg/domain"
	"github.com/aretw0/bombrisk/pkg/gauge"
	"github.com/aretw0/bombrisk/pkg/ports"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// config holds settings from flags, BOMBRISK_* variables and bombrisk.yaml, in that order of precedence.
var config = viper.New()

var rootCmd = &cobra.Command{
	Use:   "bombrisk",
	Short: "Bomb risk elicitation task",
	Long: `bombrisk runs the bomb risk elicitation task: a participant chooses how many
boxes to open, one of which hides a bomb. It can be played in the terminal,
hosted over HTTP or MCP, or simulated in batch.`,
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	pf := rootCmd.PersistentFlags()
	pf.String("config", "", "Config file (default ./bombrisk.yaml)")
	pf.String("log-level", "warn", "Log level: debug, info, warn, error")
	pf.String("treatments", "", "Directory of treatment documents")
	_ = config.BindPFlag("log_level", pf.Lookup("log-level"))
	_ = config.BindPFlag("treatments", pf.Lookup("treatments"))
}

func initConfig() {
	config.SetEnvPrefix("BOMBRISK")
	config.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))
	config.AutomaticEnv()

	if file, _ := rootCmd.PersistentFlags().GetString("config"); file != "" {
		config.SetConfigFile(file)
	} else {
		config.SetConfigName("bombrisk")
		config.SetConfigType("yaml")
		config.AddConfigPath(".")
	}
	if err := config.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			fmt.Fprintf(os.Stderr, "Warning: could not read config: %v\n", err)
		}
	}
}

func newLogger() (*slog.Logger, error) {
	level, err := logging.ParseLevel(config.GetString("log_level"))
	if err != nil {
		return nil, err
	}
	return logging.New(level), nil
}

// widgetOptions are shared by every command: all hosts offer the Lottery method.
func widgetOptions(logger *slog.Logger, extra ...bombrisk.Option) []bombrisk.Option {
	opts := []bombrisk.Option{
		bombrisk.WithLogger(logger),
		bombrisk.WithMethod(domain.MethodLottery, gauge.NewLotteryGauge),
	}
	return append(opts, extra...)
}

// treatmentLoader opens the configured treatment catalogue, or returns nil.
func treatmentLoader() (ports.TreatmentLoader, error) {
	dir := config.GetString("treatments")
	if dir == "" {
		return nil, nil
	}
	loader, err := loam.Open(dir)
	if err != nil {
		return nil, fmt.Errorf("open treatments: %w", err)
	}
	return loader, nil
}
