// Package utils provides small shared helpers for the departures job.
//
// It contains:
//   - Wall clock abstraction used to anchor upstream queries
//   - Timezone-localized timestamp formatting
package utils
