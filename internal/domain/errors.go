package domain

import "errors"

// ErrCatalogNotReady is surfaced by the classify endpoint when a request
// arrives before the rule catalog has completed its first load.
var ErrCatalogNotReady = errors.New("rule catalog not ready")

// ErrMissingField is surfaced by webhook decoding when a required field
// is absent from the payload.
var ErrMissingField = errors.New("missing required field")
