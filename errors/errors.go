package errors

import "fmt"

// Error categories. Callers branch with errors.Is against these; specific
// failures wrap them with %w. No error here is fatal to the process.
var (
	ErrValidation = fmt.Errorf("validation error")
	ErrConnection = fmt.Errorf("connection error")
	ErrFetch      = fmt.Errorf("fetch error")
)

var (
	ErrEmptyMessage       = fmt.Errorf("%w: empty message text", ErrValidation)
	ErrNoOpenConversation = fmt.Errorf("%w: no conversation is open", ErrValidation)
	ErrNotSender          = fmt.Errorf("%w: only the sender may retract for everyone", ErrValidation)
	ErrNotConnected       = fmt.Errorf("%w: channel is not connected", ErrConnection)
	ErrTornDown           = fmt.Errorf("%w: connection manager is torn down", ErrConnection)
	ErrMalformedEvent     = fmt.Errorf("malformed channel event")
	ErrUnknownEvent       = fmt.Errorf("unknown channel event")
	ErrNoSession          = fmt.Errorf("no stored session")
	ErrInvalidToken       = fmt.Errorf("invalid session token")
)
