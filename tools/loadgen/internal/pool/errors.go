package pool

import "errors"

// ErrPoolClosed is returned by every operation on a pool after Close.
var ErrPoolClosed = errors.New("parameter pool is closed")
