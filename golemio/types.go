package golemio

import "encoding/json"

// Timestamp holds the scheduled time of an arrival or departure
type Timestamp struct {
	Scheduled *string `json:"scheduled"`
}

// Delay describes the realtime delay of a trip
type Delay struct {
	IsAvailable bool `json:"is_available"`
	Minutes     *int `json:"minutes"`
}

// Route identifies the line serving a departure
type Route struct {
	ShortName *string `json:"short_name"`
}

// Trip identifies the vehicle run
type Trip struct {
	Headsign *string `json:"headsign"`
}

// Departure is a single departure board row. Only the fields the display
// needs are decoded; everything else in the row is ignored.
type Departure struct {
	ArrivalTimestamp   *Timestamp `json:"arrival_timestamp"`
	DepartureTimestamp *Timestamp `json:"departure_timestamp"`
	Delay              *Delay     `json:"delay"`
	Route              *Route     `json:"route"`
	Trip               *Trip      `json:"trip"`

	// number of keys in the source object, known ones or not
	fields int
}

// Response is the departure board document
type Response struct {
	Departures []Departure `json:"departures"`
}

func (d *Departure) UnmarshalJSON(data []byte) error {
	var keys map[string]json.RawMessage
	if err := json.Unmarshal(data, &keys); err != nil {
		return err
	}
	type plain Departure
	var p plain
	if err := json.Unmarshal(data, &p); err != nil {
		return err
	}
	*d = Departure(p)
	d.fields = len(keys)
	return nil
}

// IsEmpty reports whether the departure carried no data at all
func (d Departure) IsEmpty() bool {
	return d.fields == 0 && d.ArrivalTimestamp == nil && d.DepartureTimestamp == nil &&
		d.Delay == nil && d.Route == nil && d.Trip == nil
}

// Headsign returns the trip headsign and whether it was present
func (d Departure) Headsign() (string, bool) {
	if d.Trip == nil || d.Trip.Headsign == nil {
		return "", false
	}
	return *d.Trip.Headsign, true
}

// RouteShortName returns the line name and whether it was present
func (d Departure) RouteShortName() (string, bool) {
	if d.Route == nil || d.Route.ShortName == nil {
		return "", false
	}
	return *d.Route.ShortName, true
}

// ScheduledTime returns the scheduled arrival if set, otherwise the scheduled departure
func (d Departure) ScheduledTime() (string, bool) {
	if d.ArrivalTimestamp != nil && d.ArrivalTimestamp.Scheduled != nil && *d.ArrivalTimestamp.Scheduled != "" {
		return *d.ArrivalTimestamp.Scheduled, true
	}
	if d.DepartureTimestamp != nil && d.DepartureTimestamp.Scheduled != nil {
		return *d.DepartureTimestamp.Scheduled, true
	}
	return "", false
}

// DelayMinutes returns the delay in minutes, 0 unless the delay is marked available
func (d Departure) DelayMinutes() int {
	if d.Delay == nil || !d.Delay.IsAvailable || d.Delay.Minutes == nil {
		return 0
	}
	return *d.Delay.Minutes
}
