// Per-request Salesforce credential extraction.
// Reads the forwarded headers and injects them into context; the tool
// dispatcher fails the individual call when they are missing, so this
// middleware never rejects a request itself (the MCP handshake and
// tool listing must work without credentials).
package middleware

import (
	"net/http"
	"strings"

	"github.com/matiasleandrokruk/salesbridge/internal/api/ctxkeys"
)

// CredentialMiddleware injects the forwarded Salesforce credential headers
// into the request context using typed keys.
//
// Flow:
//  1. Read x-forwarded-access-token and x-forwarded-salesforce-instance-url
//  2. Inject each non-empty value under ctxkeys.AccessToken / ctxkeys.InstanceURL
//  3. Call next handler unconditionally — absence is a per-tool-call error,
//     not a transport error
func CredentialMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		if token := strings.TrimSpace(r.Header.Get(ctxkeys.HeaderAccessToken)); token != "" {
			ctx = ctxkeys.WithValue(ctx, ctxkeys.AccessToken, token)
		}
		if instance := strings.TrimSpace(r.Header.Get(ctxkeys.HeaderInstanceURL)); instance != "" {
			ctx = ctxkeys.WithValue(ctx, ctxkeys.InstanceURL, instance)
		}

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
