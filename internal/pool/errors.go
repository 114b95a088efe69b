package pool

import "errors"

// ErrEmptyPool is returned when sampling is attempted against an empty
// collection. Bootstrap guarantees non-empty pools before scheduling
// starts, so hitting this is a programming error, not a runtime
// condition to recover from.
var ErrEmptyPool = errors.New("reference pool: empty collection")
