package core

import "github.com/rotisserie/eris"

var (
	// ErrUnrecognizedURL is returned for URLs that match no known service.
	ErrUnrecognizedURL = eris.New("url not recognized")
	// ErrFetchFailed marks transport errors and non-success responses.
	ErrFetchFailed = eris.New("fetch failed")
	// ErrManualUnavailable is returned when a fetch failed and no operator can be asked.
	ErrManualUnavailable = eris.New("manual entry unavailable")
	// ErrMissingCoordinates is returned when every coordinate strategy came up empty.
	ErrMissingCoordinates = eris.New("could not extract coordinates")
	// ErrNoCategory is returned when a maps place has neither a chosen nor an inferred category.
	ErrNoCategory = eris.New("no category")
)
