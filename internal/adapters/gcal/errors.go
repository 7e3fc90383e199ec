package gcal

import "errors"

// Sentinel kinds for calendar store errors.
var (
	// ErrCredentials marks a failure to load or use calendar credentials.
	ErrCredentials = errors.New("calendar credentials unavailable")

	// ErrCalendarResolution marks a failure to find or create the target
	// calendar. Fatal: no candidate is processed after it.
	ErrCalendarResolution = errors.New("calendar resolution failed")

	// ErrRemoteCall marks a failed lookup or write for one candidate.
	ErrRemoteCall = errors.New("calendar call failed")
)
