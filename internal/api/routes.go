// Route registration and go-chi router setup.
package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/modelcontextprotocol/go-sdk/mcp"

	apmiddleware "github.com/matiasleandrokruk/salesbridge/internal/api/middleware"
)

// MCPPath is the fixed mount path of the MCP endpoint.
const MCPPath = "/"

// NewRouter creates and configures a new chi router with all routes:
// an unauthenticated liveness probe plus the MCP endpoint, which runs behind
// the credential middleware so tool handlers can read the forwarded
// Salesforce credential from context.
func NewRouter(mcpServer *mcp.Server) *chi.Mux {
	r := chi.NewRouter()

	// Global middleware (runs on all routes)
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	// Health check — always succeeds, regardless of credential headers.
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"healthy"}`)) //nolint:errcheck
	})

	// MCP endpoint — the streamable HTTP transport owns the protocol
	// envelope; this layer only injects credentials per request.
	streamable := mcp.NewStreamableHTTPHandler(func(*http.Request) *mcp.Server { return mcpServer }, nil)
	r.With(apmiddleware.CredentialMiddleware).Handle(MCPPath, streamable)

	return r
}
