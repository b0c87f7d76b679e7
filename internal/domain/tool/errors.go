package tool

import (
	"errors"
	"fmt"
)

// ErrUnknownTool is returned when a call names a tool the registry does not know.
var ErrUnknownTool = errors.New("unknown tool")

// MissingCredentialError is returned when a required credential header was not
// forwarded with the request. Raised before any CRM call is attempted.
type MissingCredentialError struct {
	Header string
}

func (e *MissingCredentialError) Error() string {
	return fmt.Sprintf("missing credential: header %s not present on the request", e.Header)
}

// InvalidArgumentsError is returned when a tool call has a missing or
// malformed parameter. Raised before any CRM call is attempted.
type InvalidArgumentsError struct {
	Param  string
	Reason string
}

func (e *InvalidArgumentsError) Error() string {
	return fmt.Sprintf("invalid arguments: parameter %q %s", e.Param, e.Reason)
}
