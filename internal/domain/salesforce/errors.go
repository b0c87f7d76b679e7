package salesforce

import (
	"fmt"
	"strings"
)

// restError is one entry of the Salesforce REST error payload:
// [{"message": "...", "errorCode": "...", "fields": ["LastName"]}]
type restError struct {
	Message   string   `json:"message"`
	ErrorCode string   `json:"errorCode"`
	Fields    []string `json:"fields"`
}

// AuthError indicates an expired or invalid access token.
type AuthError struct {
	Code    string
	Message string
}

func (e *AuthError) Error() string {
	return fmt.Sprintf("salesforce auth error (%s): %s", e.Code, e.Message)
}

// QueryError indicates Salesforce rejected the SOQL string.
// The query is forwarded verbatim, so malformed input surfaces here.
type QueryError struct {
	Code    string
	Message string
}

func (e *QueryError) Error() string {
	return fmt.Sprintf("salesforce query error (%s): %s", e.Code, e.Message)
}

// ValidationError indicates a CRM-side validation failure on a record
// operation. Message and Fields carry Salesforce's detail verbatim so the
// caller can see which field failed.
type ValidationError struct {
	Code    string
	Message string
	Fields  []string
}

func (e *ValidationError) Error() string {
	if len(e.Fields) > 0 {
		return fmt.Sprintf("salesforce validation error (%s) on fields [%s]: %s",
			e.Code, strings.Join(e.Fields, ", "), e.Message)
	}
	return fmt.Sprintf("salesforce validation error (%s): %s", e.Code, e.Message)
}

// Error codes that always mean the session/token is bad, regardless of status.
var authErrorCodes = map[string]bool{
	"INVALID_SESSION_ID":  true,
	"SESSION_EXPIRED":     true,
	"INVALID_AUTH_HEADER": true,
}

// Error codes raised for bad SOQL. Anything 4xx on the query path is also
// treated as a query error even if the code is not listed here.
var queryErrorCodes = map[string]bool{
	"MALFORMED_QUERY":               true,
	"INVALID_QUERY_FILTER_OPERATOR": true,
	"INVALID_QUERY_LOCATOR":         true,
	"INVALID_TYPE":                  true,
}

// classifyError maps a Salesforce REST failure to the adapter's taxonomy.
// isQueryPath marks failures from /query, which default to QueryError.
func classifyError(status int, errs []restError, isQueryPath bool) error {
	var top restError
	if len(errs) > 0 {
		top = errs[0]
	} else {
		top = restError{ErrorCode: "UNKNOWN", Message: fmt.Sprintf("HTTP %d with no error detail", status)}
	}

	switch {
	case status == 401 || authErrorCodes[top.ErrorCode]:
		return &AuthError{Code: top.ErrorCode, Message: top.Message}
	case queryErrorCodes[top.ErrorCode]:
		return &QueryError{Code: top.ErrorCode, Message: top.Message}
	case isQueryPath:
		return &QueryError{Code: top.ErrorCode, Message: top.Message}
	default:
		return &ValidationError{Code: top.ErrorCode, Message: top.Message, Fields: top.Fields}
	}
}
