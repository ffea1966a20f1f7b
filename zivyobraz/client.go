package zivyobraz

import (
	"context"
	stderrors "errors"
	"fmt"
	"io"
	"net/http"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"

	"github.com/theoremus-urban-solutions/golemio-zivyobraz/config"
	"github.com/theoremus-urban-solutions/golemio-zivyobraz/golemio"
	"github.com/theoremus-urban-solutions/golemio-zivyobraz/utils"
)

// ErrPublish indicates a slot could not be delivered
var ErrPublish = errors.New("zivyobraz import failed")

// SlotResult records what happened to one slot
type SlotResult struct {
	Slot       Slot
	StatusCode int // 0 when no response was received or the request was skipped
	Err        error
}

// Result summarizes a publish run
type Result struct {
	Slots []SlotResult
}

// Sent counts slots that got a 2xx response
func (r Result) Sent() int {
	n := 0
	for _, s := range r.Slots {
		if s.Err == nil && s.StatusCode >= 200 && s.StatusCode < 300 {
			n++
		}
	}
	return n
}

// Err joins the per-slot failures, nil when every slot went through
func (r Result) Err() error {
	var errs []error
	for _, s := range r.Slots {
		if s.Err != nil {
			errs = append(errs, s.Err)
		}
	}
	if len(errs) == 0 {
		return nil
	}
	return errors.WithStack(fmt.Errorf("%d of %d slots failed: %w", len(errs), len(r.Slots), stderrors.Join(errs...)))
}

// Client sends display slots to the import API
type Client struct {
	httpClient  *http.Client
	credentials config.Credentials

	// DryRun logs the slots without sending them
	DryRun bool
}

// NewClient creates an import API client. A nil httpClient falls back to http.DefaultClient.
func NewClient(httpClient *http.Client, credentials config.Credentials) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{
		httpClient:  httpClient,
		credentials: credentials,
	}
}

// Publish renders the board into slots and sends them one request at a time in
// slot order. A failing slot is logged and recorded; the remaining slots are
// still sent. Cancelling ctx fails every slot not yet sent.
func (c *Client) Publish(ctx context.Context, board *golemio.Response, s config.Settings) Result {
	log.Info("Send departure information to Zivyobraz API")

	var departures []golemio.Departure
	if board != nil {
		departures = board.Departures
	}
	importKey := ""
	if c.credentials != nil {
		importKey = c.credentials.ZivyobrazImportKey()
	}

	slots := BuildSlots(departures, s)
	result := Result{Slots: make([]SlotResult, 0, len(slots))}
	for _, slot := range slots {
		log.Infof("Sending import %d: Route: %s, Arrival: %s, Delay: %s, Headsign: %s",
			slot.Index, slot.Route, slot.Arrival, slot.Delay, slot.Headsign)

		if c.DryRun {
			result.Slots = append(result.Slots, SlotResult{Slot: slot})
			continue
		}
		result.Slots = append(result.Slots, c.send(ctx, s.ZivyobrazAPIBaseURL, slot, importKey))
	}
	return result
}

func (c *Client) send(ctx context.Context, baseURL string, slot Slot, importKey string) SlotResult {
	res := SlotResult{Slot: slot}
	logger := log.WithField("slot", slot.Index)

	target, err := utils.AppendQuery(baseURL, slot.Params(importKey))
	if err != nil {
		res.Err = errors.WithStack(fmt.Errorf("%w: slot %d: %w", ErrPublish, slot.Index, err))
		logger.WithError(err).Error("Sending import failed")
		return res
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		res.Err = errors.WithStack(fmt.Errorf("%w: slot %d: %w", ErrPublish, slot.Index, err))
		logger.WithError(err).Error("Sending import failed")
		return res
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		res.Err = errors.WithStack(fmt.Errorf("%w: slot %d: %w", ErrPublish, slot.Index, err))
		logger.WithError(err).Error("Sending import failed")
		return res
	}
	defer func() { _ = resp.Body.Close() }()
	_, _ = io.Copy(io.Discard, resp.Body)

	res.StatusCode = resp.StatusCode
	log.Infof("Sending import %d: Status code %d", slot.Index, resp.StatusCode)
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		res.Err = errors.WithStack(fmt.Errorf("%w: slot %d: HTTP %d", ErrPublish, slot.Index, resp.StatusCode))
		logger.WithField("status", resp.StatusCode).Warn("Import rejected")
	}
	return res
}
