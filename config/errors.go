package config

import (
	"fmt"

	"github.com/pkg/errors"
)

var (
	// ErrConfigNotFound indicates the configuration file does not exist
	ErrConfigNotFound = errors.New("configuration file not found")

	// ErrConfigParse indicates the configuration file is not valid YAML for the document shape
	ErrConfigParse = errors.New("error parsing configuration file")

	// ErrConfigInvalid indicates a required key is missing or a value is out of range
	ErrConfigInvalid = errors.New("invalid configuration")
)

// InvalidError describes the first validation rule a document violated
type InvalidError struct {
	Key     string // dotted path, e.g. departure_settings.mode
	Rule    string // accepted values, empty for missing keys
	Missing bool
}

func (e *InvalidError) Error() string {
	if e.Missing {
		return fmt.Sprintf("missing required key '%s' in configuration", e.Key)
	}
	return fmt.Sprintf("invalid '%s' value %s", e.Key, e.Rule)
}

// Is makes errors.Is(err, ErrConfigInvalid) hold for every InvalidError
func (e *InvalidError) Is(target error) bool {
	return target == ErrConfigInvalid
}
