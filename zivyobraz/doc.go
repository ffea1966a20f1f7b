// Package zivyobraz publishes departure rows to the Živý obraz import API.
//
// A run renders exactly max_entries display slots (more if the board returned
// more rows than that after filtering) and sends each slot as its own GET
// request carrying departures.<n>.route, .arrival, .delay and .headsign.
package zivyobraz
