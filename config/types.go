package config

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// Int is an integer setting that only accepts YAML integers. Floats and quoted
// numbers are rejected instead of being truncated.
type Int int

func (i *Int) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.ScalarNode || node.ShortTag() != "!!int" {
		return fmt.Errorf("line %d: expected an integer, got %q", node.Line, node.Value)
	}
	var v int
	if err := node.Decode(&v); err != nil {
		return err
	}
	*i = Int(v)
	return nil
}

// GolemioSection contains the upstream departure board API settings
type GolemioSection struct {
	APIURL *string `yaml:"api_url" validate:"required"`
}

// ZivyobrazSection contains the downstream display import API settings
type ZivyobrazSection struct {
	APIBaseURL *string `yaml:"api_base_url" validate:"required"`
}

// DepartureSettings mirrors the departure_settings section.
// Pointer fields distinguish an absent key from a zero value.
type DepartureSettings struct {
	IDs                []string `yaml:"ids" validate:"required"`
	MinutesBefore      *Int     `yaml:"minutes_before" validate:"required,min=0,max=30"`
	MinutesAfter       *Int     `yaml:"minutes_after" validate:"required,gt=0,max=300"`
	IncludeMetroTrains *bool    `yaml:"include_metro_trains" validate:"required"`
	AirCondition       *bool    `yaml:"air_condition" validate:"required"`
	PreferredTimezone  *string  `yaml:"preferred_timezone" validate:"required"`
	Mode               *string  `yaml:"mode" validate:"required,oneof=departures arrivals mixed"`
	Order              *string  `yaml:"order" validate:"required,oneof=real timetable"`
	FilterValue        *string  `yaml:"filter_value" validate:"required"`
	Skip               *string  `yaml:"skip" validate:"required,oneof=canceled atStop untracked"`
	MaxEntries         *Int     `yaml:"max_entries" validate:"required"`
	Ignore             []string `yaml:"ignore"`
}

// Document is the root configuration structure as read from disk
type Document struct {
	Golemio           *GolemioSection    `yaml:"golemio" validate:"required"`
	Zivyobraz         *ZivyobrazSection  `yaml:"zivyobraz" validate:"required"`
	DepartureSettings *DepartureSettings `yaml:"departure_settings" validate:"required"`
}

// Settings is the validated, flattened configuration handed to every stage of a run.
// It is built once and never modified afterwards.
type Settings struct {
	GolemioAPIURL       string
	ZivyobrazAPIBaseURL string

	StopIDs            []string
	MinutesBefore      int
	MinutesAfter       int
	IncludeMetroTrains bool
	AirCondition       bool
	PreferredTimezone  string
	Mode               string
	Order              string
	FilterValue        string
	Skip               string
	MaxEntries         int

	// Ignore is nil when the ignore key is absent
	Ignore map[string]struct{}
}

// Ignores reports whether departures towards headsign are dropped before publishing
func (s Settings) Ignores(headsign string) bool {
	if s.Ignore == nil {
		return false
	}
	_, ok := s.Ignore[headsign]
	return ok
}

// Settings flattens a validated document. Calling it on a document that did not
// pass Validate panics on the first missing field.
func (d *Document) Settings() Settings {
	ds := d.DepartureSettings
	s := Settings{
		GolemioAPIURL:       *d.Golemio.APIURL,
		ZivyobrazAPIBaseURL: *d.Zivyobraz.APIBaseURL,
		StopIDs:             append([]string(nil), ds.IDs...),
		MinutesBefore:       int(*ds.MinutesBefore),
		MinutesAfter:        int(*ds.MinutesAfter),
		IncludeMetroTrains:  *ds.IncludeMetroTrains,
		AirCondition:        *ds.AirCondition,
		PreferredTimezone:   *ds.PreferredTimezone,
		Mode:                *ds.Mode,
		Order:               *ds.Order,
		FilterValue:         *ds.FilterValue,
		Skip:                *ds.Skip,
		MaxEntries:          int(*ds.MaxEntries),
	}
	if ds.Ignore != nil {
		s.Ignore = make(map[string]struct{}, len(ds.Ignore))
		for _, h := range ds.Ignore {
			s.Ignore[h] = struct{}{}
		}
	}
	return s
}
