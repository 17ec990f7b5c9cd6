package domain

import "errors"

// ErrInvalidTimeframe is returned when a report is requested for a
// non-positive number of days. The request is rejected rather than coerced
// to the default.
var ErrInvalidTimeframe = errors.New("timeframe must be a positive number of days")
