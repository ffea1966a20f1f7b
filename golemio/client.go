package golemio

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/google/go-querystring/query"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"

	"github.com/theoremus-urban-solutions/golemio-zivyobraz/config"
	"github.com/theoremus-urban-solutions/golemio-zivyobraz/utils"
)

// AccessTokenHeader carries the Golemio API key
const AccessTokenHeader = "X-Access-Token"

var (
	// ErrUpstream indicates the departure board request could not be completed
	ErrUpstream = errors.New("golemio request failed")

	// ErrMalformedResponse indicates the response body is not a departure board document
	ErrMalformedResponse = errors.New("malformed golemio response")
)

// Query is the departure board request. Field order does not matter on the
// wire; ids[] is repeated once per stop in configured order.
type Query struct {
	IDs                []string `url:"ids[]"`
	MinutesBefore      int      `url:"minutesBefore"`
	MinutesAfter       int      `url:"minutesAfter"`
	TimeFrom           string   `url:"timeFrom"`
	IncludeMetroTrains bool     `url:"includeMetroTrains"`
	AirCondition       bool     `url:"airCondition"`
	PreferredTimezone  string   `url:"preferredTimezone"`
	Mode               string   `url:"mode"`
	Order              string   `url:"order"`
	Filter             string   `url:"filter"`
	Skip               string   `url:"skip"`
	Limit              int      `url:"limit"`
	Total              int      `url:"total"`
	Offset             int      `url:"offset"`
}

// BuildQuery maps settings onto a request anchored at timeFrom
func BuildQuery(s config.Settings, timeFrom string) Query {
	return Query{
		IDs:                s.StopIDs,
		MinutesBefore:      s.MinutesBefore,
		MinutesAfter:       s.MinutesAfter,
		TimeFrom:           timeFrom,
		IncludeMetroTrains: s.IncludeMetroTrains,
		AirCondition:       s.AirCondition,
		PreferredTimezone:  s.PreferredTimezone,
		Mode:               s.Mode,
		Order:              s.Order,
		Filter:             s.FilterValue,
		Skip:               s.Skip,
		Limit:              s.MaxEntries,
		Total:              s.MaxEntries,
		Offset:             0,
	}
}

// URL appends the encoded query to the API endpoint, keeping any query the endpoint already has
func (q Query) URL(endpoint string) (string, error) {
	values, err := query.Values(q)
	if err != nil {
		return "", errors.Wrap(err, "encoding departure board query")
	}
	return utils.AppendQuery(endpoint, values)
}

// Client fetches departure boards
type Client struct {
	httpClient  *http.Client
	credentials config.Credentials
	clock       utils.Clock
}

// NewClient creates a departure board client. A nil httpClient or clock falls
// back to http.DefaultClient and the system clock.
func NewClient(httpClient *http.Client, credentials config.Credentials, clock utils.Clock) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	if clock == nil {
		clock = utils.SystemClock
	}
	return &Client{
		httpClient:  httpClient,
		credentials: credentials,
		clock:       clock,
	}
}

// Fetch performs a single departure board request for the configured stops.
// The status code is logged but not interpreted; whatever body comes back must
// decode into a document with a departures list.
func (c *Client) Fetch(ctx context.Context, s config.Settings) (*Response, error) {
	log.Info("Fetch departure information from the Golemio API.")

	timeFrom, err := utils.LocalTimestamp(c.clock, s.PreferredTimezone)
	if err != nil {
		return nil, err
	}
	target, err := BuildQuery(s, timeFrom).URL(s.GolemioAPIURL)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, errors.Wrap(err, "building golemio request")
	}
	req.Header.Set("Accept", "application/json")
	if c.credentials != nil {
		if token := c.credentials.GolemioAccessToken(); token != "" {
			req.Header.Set(AccessTokenHeader, token)
		}
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, errors.WithStack(fmt.Errorf("%w: %w", ErrUpstream, err))
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errors.WithStack(fmt.Errorf("%w: reading body: %w", ErrUpstream, err))
	}

	log.Infof("Golemio API - status: %d, response: %s", resp.StatusCode, body)

	return decodeResponse(body, resp.StatusCode)
}

func decodeResponse(body []byte, status int) (*Response, error) {
	var r Response
	if err := json.Unmarshal(body, &r); err != nil {
		return nil, errors.WithStack(fmt.Errorf("%w (HTTP %d): %w", ErrMalformedResponse, status, err))
	}
	if r.Departures == nil {
		return nil, errors.WithStack(fmt.Errorf("%w (HTTP %d): no departures list", ErrMalformedResponse, status))
	}
	return &r, nil
}
