package interfaces

import "github.com/m-mizutani/goerr/v2"

// ErrNotFound is returned by any repository when the requested record does
// not exist. Implementations wrap it so callers can use errors.Is regardless
// of the backend.
var ErrNotFound = goerr.New("record not found")
