package app

import "errors"

// Sentinel kinds for pipeline validation errors.
var (
	ErrBadSubject  = errors.New("subject screen name required")
	ErrBadLayers   = errors.New("invalid layer request")
	ErrLayerBudget = errors.New("layer request exceeds avatar batch limit")
)
