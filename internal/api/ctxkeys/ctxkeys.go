// Shared context keys for the API layer.
// Extracted to a leaf package to avoid import cycles between api, middleware
// and the tool dispatcher.
package ctxkeys

import "context"

// Forwarded credential header names. Part of the external contract, not
// configurable; shared between the HTTP middleware (extraction) and the tool
// dispatcher (user-visible MissingCredential messages).
const (
	HeaderAccessToken = "x-forwarded-access-token"
	HeaderInstanceURL = "x-forwarded-salesforce-instance-url"
)

// Key is the unexported named type for all API context keys.
// Using a named type avoids collisions with string keys from other packages
// at runtime (context.Value compares both type and value).
type Key string

const (
	// AccessToken is the context key for the forwarded Salesforce access token.
	// Injected by CredentialMiddleware from x-forwarded-access-token, read by
	// the tool dispatcher. Never logged, never persisted.
	AccessToken Key = "sf_access_token"

	// InstanceURL is the context key for the forwarded Salesforce instance URL.
	// Injected by CredentialMiddleware from x-forwarded-salesforce-instance-url.
	InstanceURL Key = "sf_instance_url"
)

// WithValue adds a ctxkeys.Key value to the context.
func WithValue(ctx context.Context, key Key, value string) context.Context {
	return context.WithValue(ctx, key, value)
}

// Value retrieves a string value previously stored under key.
// Returns "" when the key is absent or holds a non-string.
func Value(ctx context.Context, key Key) string {
	v, ok := ctx.Value(key).(string)
	if !ok {
		return ""
	}
	return v
}
