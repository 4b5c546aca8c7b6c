package transit

import "errors"

// ErrStopNotFound is returned by stop detail lookups for unknown stop
// identifiers. It is terminal - an arrival cannot be estimated for a stop
// that does not exist
var ErrStopNotFound = errors.New("stop not found")
