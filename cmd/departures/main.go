package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	departures "github.com/theoremus-urban-solutions/golemio-zivyobraz"
	"github.com/theoremus-urban-solutions/golemio-zivyobraz/config"
	"github.com/theoremus-urban-solutions/golemio-zivyobraz/internal"
)

type flags struct {
	configPath string
	logFile    string
	envFile    string
	logLevel   string
	timeout    time.Duration
	dryRun     bool
}

func newRootCmd() *cobra.Command {
	f := &flags{}
	cmd := &cobra.Command{
		Use:           "departures",
		Short:         "Publish upcoming Golemio departures to a Živý obraz display",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return run(cmd, f)
		},
	}
	cmd.Flags().StringVarP(&f.configPath, "config", "c", config.DefaultPath, "Path to the configuration file")
	cmd.Flags().StringVar(&f.logFile, "log-file", internal.DefaultLogFile, "Log file, opened in append mode (- for stdout)")
	cmd.Flags().StringVar(&f.envFile, "env-file", ".env", "Optional dotenv file with API credentials")
	cmd.Flags().StringVar(&f.logLevel, "log-level", "info", "Log level")
	cmd.Flags().DurationVar(&f.timeout, "timeout", 0, "HTTP client timeout, 0 for none")
	cmd.Flags().BoolVar(&f.dryRun, "dry-run", false, "Fetch and format departures without publishing them")
	return cmd
}

func run(cmd *cobra.Command, f *flags) error {
	level, err := log.ParseLevel(f.logLevel)
	if err != nil {
		return err
	}
	closer, err := internal.InitLogging(f.logFile, level)
	if err != nil {
		fmt.Fprintf(os.Stderr, "logging to stdout: %v\n", err)
		closer, _ = internal.InitLogging("-", level)
	}
	defer closer.Close()

	// the job always exits cleanly; failures end up in the log
	_, err = departures.Run(cmd.Context(), departures.Options{
		ConfigPath:  f.configPath,
		Credentials: config.NewEnvCredentials(f.envFile),
		HTTPClient:  &http.Client{Timeout: f.timeout},
		DryRun:      f.dryRun,
	})
	if err != nil {
		log.Errorf("An error occurred: %+v", err)
	}
	return nil
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
