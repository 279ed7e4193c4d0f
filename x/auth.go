package x

import (
	"context"
	"fmt"

	"github.com/ethereum/go-ethereum/common"
	"github.com/iov-one/vault"
)

// Authenticator is an interface we can use to extract authentication info
// from the context. This should be passed into the constructor of
// handlers, so we can plug in another authentication system,
// rather than hard-coding one for all extensions.
//
// The transport is trusted: an identity returned by an Authenticator was
// already verified and cannot be impersonated.
type Authenticator interface {
	// GetCallers reveals all identities authenticated for the request.
	GetCallers(vault.Context) []common.Address
	// HasAddress checks if any of the callers matches this address
	HasAddress(vault.Context, common.Address) bool
}

// MultiAuth chains together many Authenticators into one
type MultiAuth struct {
	impls []Authenticator
}

var _ Authenticator = MultiAuth{}

// ChainAuth groups together a series of Authenticator
func ChainAuth(impls ...Authenticator) MultiAuth {
	return MultiAuth{impls}
}

// GetCallers combines all callers from all Authenticators
func (m MultiAuth) GetCallers(ctx vault.Context) []common.Address {
	var res []common.Address
	for _, impl := range m.impls {
		res = append(res, impl.GetCallers(ctx)...)
	}
	return res
}

// HasAddress returns true iff any Authenticator support this
func (m MultiAuth) HasAddress(ctx vault.Context, addr common.Address) bool {
	for _, impl := range m.impls {
		if impl.HasAddress(ctx, addr) {
			return true
		}
	}
	return false
}

// MainCaller returns the first authenticated caller. The second value is
// false if the request is anonymous.
func MainCaller(ctx vault.Context, auth Authenticator) (common.Address, bool) {
	callers := auth.GetCallers(ctx)
	if len(callers) == 0 {
		return common.Address{}, false
	}
	return callers[0], true
}

// CtxAuth is an Authenticator using the context to store and retrieve the
// callers. The transport that authenticated a request sets the callers, the
// handlers read them.
type CtxAuth struct {
	// Key used to set and retrieve callers from the context. For
	// convenience only string type keys are allowed.
	Key string
}

var _ Authenticator = CtxAuth{}

type ctxAuthKey string

// SetCallers returns a context authenticated as given callers.
func (a CtxAuth) SetCallers(ctx vault.Context, callers ...common.Address) vault.Context {
	return context.WithValue(ctx, ctxAuthKey(a.Key), callers)
}

// GetCallers returns callers previously set on this context
func (a CtxAuth) GetCallers(ctx vault.Context) []common.Address {
	val := ctx.Value(ctxAuthKey(a.Key))
	if val == nil {
		return nil
	}
	callers, ok := val.([]common.Address)
	if !ok {
		panic(fmt.Sprintf("instead of []common.Address got %T", val))
	}
	return callers
}

// HasAddress returns true iff this address is in GetCallers
func (a CtxAuth) HasAddress(ctx vault.Context, addr common.Address) bool {
	for _, c := range a.GetCallers(ctx) {
		if c == addr {
			return true
		}
	}
	return false
}
