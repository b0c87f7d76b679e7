// Package tool is the registry/dispatcher: it maps each tool name to its
// declared parameters and handler, validates calls, and shapes results.
// All CRM access goes through the salesforce.Client capability interface.
package tool

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/matiasleandrokruk/salesbridge/internal/api/ctxkeys"
	"github.com/matiasleandrokruk/salesbridge/internal/domain/salesforce"
)

// HandlerFunc executes one tool call with the per-request credential.
type HandlerFunc func(ctx context.Context, cred salesforce.Credential, args Args) (any, error)

// Definition declares one tool: its MCP-facing schema plus the required
// parameter list the dispatcher enforces before invoking the handler.
type Definition struct {
	Name        string
	Description string
	InputSchema json.RawMessage
	Required    []string
	Handler     HandlerFunc
}

// Registry holds the fixed tool set. Immutable after construction; safe for
// concurrent dispatch.
type Registry struct {
	client salesforce.Client
	defs   map[string]Definition
	order  []string
}

// NewRegistry builds the registry with every built-in tool registered.
func NewRegistry(client salesforce.Client) *Registry {
	r := &Registry{
		client: client,
		defs:   make(map[string]Definition),
	}
	r.registerBuiltins()
	return r
}

func (r *Registry) register(def Definition) {
	if _, exists := r.defs[def.Name]; exists {
		panic(fmt.Sprintf("duplicate tool definition: %s", def.Name))
	}
	r.defs[def.Name] = def
	r.order = append(r.order, def.Name)
}

// Definitions returns all tool definitions in registration order.
func (r *Registry) Definitions() []Definition {
	out := make([]Definition, 0, len(r.order))
	for _, name := range r.order {
		out = append(out, r.defs[name])
	}
	return out
}

// CredentialFromContext extracts the forwarded Salesforce credential injected
// by the HTTP middleware. Both values must be present; absence fails fast
// with a user-visible error naming the missing header.
func CredentialFromContext(ctx context.Context) (salesforce.Credential, error) {
	token := ctxkeys.Value(ctx, ctxkeys.AccessToken)
	if token == "" {
		return salesforce.Credential{}, &MissingCredentialError{Header: ctxkeys.HeaderAccessToken}
	}
	instance := ctxkeys.Value(ctx, ctxkeys.InstanceURL)
	if instance == "" {
		return salesforce.Credential{}, &MissingCredentialError{Header: ctxkeys.HeaderInstanceURL}
	}
	return salesforce.Credential{AccessToken: token, InstanceURL: instance}, nil
}

// Dispatch resolves and executes one tool call.
// Order: unknown tool -> missing credential -> missing parameters -> handler.
// The credential and parameter gates run before any CRM call; handler errors
// pass through unaltered.
func (r *Registry) Dispatch(ctx context.Context, name string, args Args) (any, error) {
	def, ok := r.defs[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownTool, name)
	}

	cred, err := CredentialFromContext(ctx)
	if err != nil {
		return nil, err
	}

	if args == nil {
		args = Args{}
	}
	for _, param := range def.Required {
		if _, present := args[param]; !present {
			return nil, &InvalidArgumentsError{Param: param, Reason: "is required"}
		}
	}

	return def.Handler(ctx, cred, args)
}
