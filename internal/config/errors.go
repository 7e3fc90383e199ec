package config

import "errors"

// Sentinel error kinds for this package, matchable with errors.Is.
var (
	ErrInvalidConfig       = errors.New("invalid config")
	ErrLoadConfig          = errors.New("load config failed")
	ErrMissingCalendarName = errors.New("calendar_name is required")
)
