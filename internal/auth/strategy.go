package auth

import (
	"context"
	"net/http"

	"auth-api/internal/user"
)

// Strategy is the contract every authentication policy implements.
// Exactly one strategy is bound per deployment.
//
// Contract:
//   - Concurrency: implementations must be safe for concurrent use.
//   - CurrentPrincipal returns one of the sentinel errors from this
//     package when no principal can be resolved; any other error is a
//     backend failure.
type Strategy interface {
	// Name returns the strategy identifier (e.g. "basic", "session_db").
	Name() string

	// Supports reports whether the request carries this strategy's
	// credential material at all (header or cookie).
	Supports(r *http.Request) bool

	// CurrentPrincipal resolves the authenticated user for the request.
	CurrentPrincipal(ctx context.Context, r *http.Request) (*user.User, error)
}

// Facade pairs the path matcher with the bound strategy. It is the only
// entry point route handlers and middleware talk to.
type Facade struct {
	matcher  *Matcher
	strategy Strategy
}

func NewFacade(strategy Strategy, excluded []string) *Facade {
	return &Facade{
		matcher:  NewMatcher(excluded),
		strategy: strategy,
	}
}

func (f *Facade) RequiresAuth(path string) bool {
	return f.matcher.RequiresAuth(path)
}

func (f *Facade) CurrentPrincipal(ctx context.Context, r *http.Request) (*user.User, error) {
	return f.strategy.CurrentPrincipal(ctx, r)
}

func (f *Facade) Strategy() Strategy {
	return f.strategy
}

// NoAuth is the disabled policy: it never resolves a principal. It exists
// so a deployment with AUTH_TYPE=none still binds a concrete strategy.
type NoAuth struct{}

func (NoAuth) Name() string { return "none" }

func (NoAuth) Supports(*http.Request) bool { return false }

func (NoAuth) CurrentPrincipal(context.Context, *http.Request) (*user.User, error) {
	return nil, ErrNoCredentials
}
