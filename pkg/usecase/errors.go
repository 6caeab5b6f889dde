package usecase

import "github.com/m-mizutani/goerr/v2"

// Sentinel errors for the use case layer. Message texts for the permission
// and empty-history cases are user-facing and stable.
var (
	ErrPermissionDenied = goerr.New("SMS permission required")
	ErrNoConversations  = goerr.New("No SMS conversations found")
	ErrPersonNotFound   = goerr.New("person not found")
	ErrInvalidInput     = goerr.New("invalid input")
)
