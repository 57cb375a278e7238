package sentinel

import "errors"

// Sentinel errors for infrastructure facts. Stores and infrastructure layers
// return these (optionally wrapped) so services can translate them into
// domain errors.
//
// ErrNotFound states an entity does not exist in the store. It is a fact,
// not a validation failure; for bad input use pkg/domain-errors directly.
var ErrNotFound = errors.New("not found")
