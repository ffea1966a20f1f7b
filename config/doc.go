// Package config handles loading and validation of the departures job configuration.
//
// Configuration is read from a YAML document (departures.yml by default) with three
// required sections: golemio, zivyobraz and departure_settings. Validation runs the
// rules in a fixed order and stops at the first violation, so the reported key is
// always the first one a reader would hit when fixing the file top to bottom.
//
// Credentials for the two APIs are not part of the document; they come from a
// Credentials provider, by default the process environment.
package config
