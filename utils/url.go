package utils

import (
	"net/url"

	"github.com/pkg/errors"
)

// AppendQuery adds values to endpoint, keeping any query parameters the endpoint already carries
func AppendQuery(endpoint string, values url.Values) (string, error) {
	u, err := url.Parse(endpoint)
	if err != nil {
		return "", errors.Wrapf(err, "parsing endpoint %q", endpoint)
	}
	merged := u.Query()
	for k, vs := range values {
		merged[k] = append(merged[k], vs...)
	}
	u.RawQuery = merged.Encode()
	return u.String(), nil
}
