// Package golemio fetches departure boards from the Golemio PID API.
//
// The upstream response is decoded into Departure records whose nested fields
// are all optional; callers read them through the accessor methods, which apply
// the same defaults the display expects.
package golemio
