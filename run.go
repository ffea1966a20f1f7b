// Package departures wires the departure board job together: load and validate
// the configuration, fetch the board once, publish one display slot per request.
package departures

import (
	"context"
	"net/http"

	log "github.com/sirupsen/logrus"

	"github.com/theoremus-urban-solutions/golemio-zivyobraz/config"
	"github.com/theoremus-urban-solutions/golemio-zivyobraz/golemio"
	"github.com/theoremus-urban-solutions/golemio-zivyobraz/utils"
	"github.com/theoremus-urban-solutions/golemio-zivyobraz/zivyobraz"
)

// Options configures a single run
type Options struct {
	ConfigPath  string
	Credentials config.Credentials
	HTTPClient  *http.Client
	Clock       utils.Clock
	DryRun      bool
}

// Run executes one fetch/publish cycle. Configuration and fetch errors abort
// the run before anything is published; slot failures are logged and reported
// in the result only.
func Run(ctx context.Context, opts Options) (*zivyobraz.Result, error) {
	path := opts.ConfigPath
	if path == "" {
		path = config.DefaultPath
	}
	settings, err := config.LoadSettings(path)
	if err != nil {
		return nil, err
	}

	board, err := golemio.NewClient(opts.HTTPClient, opts.Credentials, opts.Clock).Fetch(ctx, settings)
	if err != nil {
		return nil, err
	}

	publisher := zivyobraz.NewClient(opts.HTTPClient, opts.Credentials)
	publisher.DryRun = opts.DryRun
	result := publisher.Publish(ctx, board, settings)
	if err := result.Err(); err != nil {
		log.WithError(err).Warn("Some departures were not published")
	}
	log.WithFields(log.Fields{
		"slots": len(result.Slots),
		"sent":  result.Sent(),
	}).Info("Departures run finished")
	return &result, nil
}
