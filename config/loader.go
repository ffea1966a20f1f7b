package config

import (
	"os"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

// DefaultPath is where the job looks for its configuration when no path is given
const DefaultPath = "./config/departures.yml"

// accepted values reported for range and enum violations
var ruleText = map[string]string{
	"departure_settings.minutes_before": "[0..30]",
	"departure_settings.minutes_after":  "(0..300]",
	"departure_settings.mode":           "['departures', 'arrivals', 'mixed']",
	"departure_settings.order":          "['real', 'timetable']",
	"departure_settings.skip":           "['canceled', 'atStop', 'untracked']",
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("yaml"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// Load reads and parses the configuration document at path.
// It does not validate; see Validate and LoadSettings.
func Load(path string) (*Document, error) {
	log.Infof("Try to load config file %s....", path)

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			log.Errorf("Configuration file '%s' not found.", path)
			return nil, errors.Wrapf(ErrConfigNotFound, "'%s'", path)
		}
		return nil, errors.Wrapf(err, "reading configuration file '%s'", path)
	}

	var doc Document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		log.Errorf("Error parsing YAML file: %v", err)
		return nil, errors.Wrapf(ErrConfigParse, "%v", err)
	}
	return &doc, nil
}

// Validate checks the document and returns an *InvalidError for the first violated rule.
//
// Rules are reported in this order: missing top-level sections, missing
// golemio/zivyobraz keys, missing departure_settings keys, then the value rules
// for minutes_before, minutes_after, mode, order and skip.
func Validate(doc *Document) error {
	log.Info("Config validation....")

	if doc == nil {
		doc = &Document{}
	}
	err := validate.Struct(doc)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return errors.Wrap(err, "validating configuration")
	}

	invalid := firstViolation(fieldErrs)
	log.WithField("key", invalid.Key).Error(invalid.Error())
	return errors.WithStack(invalid)
}

// firstViolation picks the error to report. The validator walks fields in
// declaration order, which already matches the reporting order inside each
// phase; the phase itself is derived from the tag and nesting depth.
func firstViolation(fieldErrs validator.ValidationErrors) *InvalidError {
	var best *InvalidError
	bestRank := 3
	for _, fe := range fieldErrs {
		key := fe.Namespace()
		if i := strings.IndexByte(key, '.'); i >= 0 {
			key = key[i+1:]
		}

		var rank int
		ie := &InvalidError{Key: key}
		switch {
		case fe.Tag() == "required" && !strings.Contains(key, "."):
			rank, ie.Missing = 0, true
		case fe.Tag() == "required":
			rank, ie.Missing = 1, true
		default:
			rank = 2
			ie.Rule = ruleText[key]
			if ie.Rule == "" {
				ie.Rule = fe.Tag() + "=" + fe.Param()
			}
		}
		if rank < bestRank {
			best, bestRank = ie, rank
		}
	}
	return best
}

// LoadSettings loads, validates and flattens the configuration at path
func LoadSettings(path string) (Settings, error) {
	doc, err := Load(path)
	if err != nil {
		return Settings{}, err
	}
	if err := Validate(doc); err != nil {
		return Settings{}, err
	}
	return doc.Settings(), nil
}
