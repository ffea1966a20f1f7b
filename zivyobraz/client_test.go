package zivyobraz

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync"
	"testing"

	"github.com/pkg/errors"
	logtest "github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/theoremus-urban-solutions/golemio-zivyobraz/config"
	"github.com/theoremus-urban-solutions/golemio-zivyobraz/golemio"
)

type importRecorder struct {
	mu       sync.Mutex
	requests []url.Values
	statusFn func(n int) int
}

func (r *importRecorder) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	r.mu.Lock()
	r.requests = append(r.requests, req.URL.Query())
	n := len(r.requests)
	r.mu.Unlock()

	status := http.StatusOK
	if r.statusFn != nil {
		status = r.statusFn(n)
	}
	w.WriteHeader(status)
}

func TestPublish_OneRequestPerSlot(t *testing.T) {
	hook := logtest.NewGlobal()
	defer hook.Reset()

	rec := &importRecorder{}
	srv := httptest.NewServer(rec)
	defer srv.Close()

	s := settings(3)
	s.ZivyobrazAPIBaseURL = srv.URL + "/"
	board := &golemio.Response{Departures: []golemio.Departure{
		departure("22", "Bílá Hora", "", "2024-01-15T12:42:00+01:00"),
	}}

	c := NewClient(srv.Client(), config.StaticCredentials{ImportKey: "imp"})
	res := c.Publish(context.Background(), board, s)

	require.Len(t, rec.requests, 3)
	assert.Equal(t, 3, res.Sent())
	assert.NoError(t, res.Err())

	first := rec.requests[0]
	assert.Equal(t, "imp", first.Get("import_key"))
	assert.Equal(t, "22", first.Get("departures.1.route"))
	assert.Equal(t, "12:42", first.Get("departures.1.arrival"))
	assert.Equal(t, "+0 min", first.Get("departures.1.delay"))
	assert.Equal(t, "Bílá Hora", first.Get("departures.1.headsign"))

	for i, n := range []string{"2", "3"} {
		q := rec.requests[i+1]
		assert.Equal(t, "...", q.Get("departures."+n+".route"))
		assert.Equal(t, ".....", q.Get("departures."+n+".arrival"))
		assert.Equal(t, ".....", q.Get("departures."+n+".delay"))
		assert.Equal(t, ".....", q.Get("departures."+n+".headsign"))
		assert.Equal(t, "imp", q.Get("import_key"))
	}

	var messages []string
	for _, e := range hook.AllEntries() {
		messages = append(messages, e.Message)
	}
	assert.Subset(t, messages, []string{
		"Sending import 1: Route: 22, Arrival: 12:42, Delay: +0 min, Headsign: Bílá Hora",
		"Sending import 1: Status code 200",
		"Sending import 2: Route: ..., Arrival: ....., Delay: ....., Headsign: .....",
		"Sending import 2: Status code 200",
		"Sending import 3: Route: ..., Arrival: ....., Delay: ....., Headsign: .....",
		"Sending import 3: Status code 200",
	})
}

func TestPublish_FailedSlotDoesNotStopTheRest(t *testing.T) {
	rec := &importRecorder{statusFn: func(n int) int {
		if n == 2 {
			return http.StatusInternalServerError
		}
		return http.StatusOK
	}}
	srv := httptest.NewServer(rec)
	defer srv.Close()

	s := settings(4)
	s.ZivyobrazAPIBaseURL = srv.URL
	res := NewClient(srv.Client(), nil).Publish(context.Background(), &golemio.Response{}, s)

	require.Len(t, rec.requests, 4)
	require.Len(t, res.Slots, 4)
	assert.Equal(t, 3, res.Sent())
	assert.Equal(t, http.StatusInternalServerError, res.Slots[1].StatusCode)

	err := res.Err()
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrPublish))
	assert.Contains(t, err.Error(), "1 of 4 slots failed")

	_, sentKey := rec.requests[0]["import_key"]
	assert.False(t, sentKey, "no credentials, no import_key")
}

func TestPublish_TransportFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	base := srv.URL
	srv.Close()

	s := settings(2)
	s.ZivyobrazAPIBaseURL = base
	res := NewClient(nil, nil).Publish(context.Background(), nil, s)

	require.Len(t, res.Slots, 2)
	for _, sr := range res.Slots {
		assert.Error(t, sr.Err)
		assert.Zero(t, sr.StatusCode)
	}
	assert.Equal(t, 0, res.Sent())
}

func TestPublish_DryRun(t *testing.T) {
	rec := &importRecorder{}
	srv := httptest.NewServer(rec)
	defer srv.Close()

	s := settings(2)
	s.ZivyobrazAPIBaseURL = srv.URL
	c := NewClient(srv.Client(), nil)
	c.DryRun = true
	res := c.Publish(context.Background(), &golemio.Response{}, s)

	assert.Empty(t, rec.requests)
	assert.Len(t, res.Slots, 2)
	assert.NoError(t, res.Err())
}
