package domain

import "errors"

var (
	// ErrMalformedSample indicates a sample is missing axis or intensity values
	ErrMalformedSample = errors.New("malformed sensor sample")

	// ErrUnknownSensor indicates a sample was tagged with an unsupported sensor kind
	ErrUnknownSensor = errors.New("unknown sensor kind")
)
