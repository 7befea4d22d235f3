package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"pagewatch/app"
	"pagewatch/config"
	"pagewatch/lib"
	"pagewatch/lib/baselines"
	"pagewatch/lib/extract"
	"pagewatch/lib/sources"
	"pagewatch/senders"
)

func NewLogger() (*zap.Logger, error) {
	switch os.Getenv("ENVIRONMENT") {
	default:
		return zap.NewDevelopment()

	case "production":
		logCfg := zap.NewProductionConfig()
		logCfg.EncoderConfig.EncodeTime = func(t time.Time, enc zapcore.PrimitiveArrayEncoder) {
			t = t.UTC()
			zapcore.ISO8601TimeEncoder(t, enc)
		}
		return logCfg.Build()
	}
}

var (
	interval string
	source   string
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "pagewatch",
		Short: "Monitor web pages for text changes and send email alerts",
		Long: `pagewatch fetches a set of tracked URLs, extracts their visible text
(optionally scoped to a selector, optionally after JavaScript rendering),
compares it against the stored baseline and emails an alert on change.

Tracked URLs come from a local urls.yaml, a tracker database, or both.
Scheduling is external: run it from cron or CI at whatever cadence the
check intervals require.`,
		Args:         cobra.NoArgs,
		RunE:         run,
		SilenceUsage: true,
	}

	rootCmd.Flags().StringVarP(&interval, "interval", "i", "all", "Only check URLs with this check_interval (hourly, 6hours, daily, all)")
	rootCmd.Flags().StringVarP(&source, "source", "s", "both", "Where to load URL configs from (yaml, db, both)")

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func run(cmd *cobra.Command, args []string) error {
	if err := validateFlags(); err != nil {
		return err
	}

	opts := lib.RunOptions{Interval: interval, Mode: lib.SourceMode(source)}

	var runErr error
	fxApp := fx.New(
		fx.Provide(config.NewConfig),
		fx.Provide(NewLogger),

		fx.Provide(app.NewTransport),
		fx.Provide(app.NewDatabase),

		fx.Provide(extract.NewRenderer),
		fx.Provide(extract.NewExtractor),
		fx.Provide(baselines.NewStores),
		fx.Provide(senders.NewSenderRegistry),
		fx.Provide(senders.NewNotifier),
		fx.Provide(sources.NewFileSource),
		fx.Provide(sources.NewDatabaseSource),
		fx.Provide(lib.NewReconciler),
		fx.Provide(lib.NewRunner),

		fx.Invoke(func(lc fx.Lifecycle, runner *lib.Runner, shutdowner fx.Shutdowner) {
			lc.Append(fx.Hook{
				OnStart: func(context.Context) error {
					go func() {
						runErr = runner.Run(context.Background(), opts)
						shutdowner.Shutdown()
					}()
					return nil
				},
			})
		}),
	)
	fxApp.Run()

	return runErr
}

func validateFlags() error {
	validIntervals := map[string]bool{
		"hourly": true,
		"6hours": true,
		"daily":  true,
		"all":    true,
	}
	if !validIntervals[interval] {
		return fmt.Errorf("invalid interval: %s", interval)
	}

	validSources := map[string]bool{
		string(lib.ModeFile): true,
		string(lib.ModeDB):   true,
		string(lib.ModeBoth): true,
	}
	if !validSources[source] {
		return fmt.Errorf("invalid source: %s", source)
	}

	return nil
}
