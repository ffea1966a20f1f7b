package zivyobraz

import (
	"fmt"
	"net/url"
	"strconv"

	"github.com/theoremus-urban-solutions/golemio-zivyobraz/config"
	"github.com/theoremus-urban-solutions/golemio-zivyobraz/golemio"
	"github.com/theoremus-urban-solutions/golemio-zivyobraz/utils"
)

// Filler values for slots without a departure
const (
	PlaceholderRoute = "..."
	PlaceholderValue = "....."
)

// NotAvailable replaces a missing route or headsign
const NotAvailable = "N/A"

// Slot is one display row, numbered from 1
type Slot struct {
	Index       int
	Route       string
	Arrival     string
	Delay       string
	Headsign    string
	Placeholder bool
}

// Placeholder returns the filler row for position i
func Placeholder(i int) Slot {
	return Slot{
		Index:       i,
		Route:       PlaceholderRoute,
		Arrival:     PlaceholderValue,
		Delay:       PlaceholderValue,
		Headsign:    PlaceholderValue,
		Placeholder: true,
	}
}

// FormatDeparture renders departure d into row i. A departure without any
// fields renders as a placeholder.
func FormatDeparture(i int, d golemio.Departure) Slot {
	if d.IsEmpty() {
		return Placeholder(i)
	}

	route, ok := d.RouteShortName()
	if !ok {
		route = NotAvailable
	}
	headsign, ok := d.Headsign()
	if !ok {
		headsign = NotAvailable
	}
	scheduled, _ := d.ScheduledTime()

	return Slot{
		Index:    i,
		Route:    route,
		Arrival:  utils.TimeOfDay(scheduled),
		Delay:    fmt.Sprintf("+%d min", d.DelayMinutes()),
		Headsign: headsign,
	}
}

// Filter drops departures heading to an ignored headsign
func Filter(departures []golemio.Departure, s config.Settings) []golemio.Departure {
	kept := make([]golemio.Departure, 0, len(departures))
	for _, d := range departures {
		if h, ok := d.Headsign(); ok && s.Ignores(h) {
			continue
		}
		kept = append(kept, d)
	}
	return kept
}

// BuildSlots filters departures and pads the result with placeholders up to
// MaxEntries. Rows beyond MaxEntries are kept.
func BuildSlots(departures []golemio.Departure, s config.Settings) []Slot {
	kept := Filter(departures, s)

	n := len(kept)
	if n < s.MaxEntries {
		n = s.MaxEntries
	}
	slots := make([]Slot, 0, n)
	for i, d := range kept {
		slots = append(slots, FormatDeparture(i+1, d))
	}
	for i := len(kept); i < n; i++ {
		slots = append(slots, Placeholder(i+1))
	}
	return slots
}

// Params encodes the slot for the import API. An empty importKey is not sent.
func (s Slot) Params(importKey string) url.Values {
	prefix := "departures." + strconv.Itoa(s.Index) + "."
	v := url.Values{}
	if importKey != "" {
		v.Set("import_key", importKey)
	}
	v.Set(prefix+"route", s.Route)
	v.Set(prefix+"arrival", s.Arrival)
	v.Set(prefix+"delay", s.Delay)
	v.Set(prefix+"headsign", s.Headsign)
	return v
}
