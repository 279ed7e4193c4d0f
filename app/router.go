package app

import (
	"fmt"

	"github.com/iov-one/vault"
	"github.com/iov-one/vault/errors"
)

// Router allows us to register many handlers with different paths and
// dispatch each message to the right one.
type Router struct {
	routes map[string]vault.Handler
}

var _ vault.Registry = (*Router)(nil)
var _ vault.Handler = (*Router)(nil)

// NewRouter returns a new empty router instance.
func NewRouter() *Router {
	return &Router{
		routes: make(map[string]vault.Handler),
	}
}

// Handle registers a handler for given path. It panics if the path is not
// valid or already taken.
func (r *Router) Handle(path string, h vault.Handler) {
	if !vault.IsPath(path) {
		panic(fmt.Sprintf("invalid path: %q", path))
	}
	if _, ok := r.routes[path]; ok {
		panic(fmt.Sprintf("re-registering route: %s", path))
	}
	r.routes[path] = h
}

// handler returns the handler of given message path. A handler that always
// fails is returned for unknown paths.
func (r *Router) handler(tx vault.Tx) vault.Handler {
	msg, err := tx.GetMsg()
	if err != nil {
		return failing{err: err}
	}
	if h, ok := r.routes[msg.Path()]; ok {
		return h
	}
	return failing{err: errors.Wrapf(errors.ErrNotFound, "no handler for %s", msg.Path())}
}

// Check dispatches to the proper handler based on path
func (r *Router) Check(ctx vault.Context, store vault.KVStore, tx vault.Tx) (*vault.CheckResult, error) {
	return r.handler(tx).Check(ctx, store, tx)
}

// Deliver dispatches to the proper handler based on path
func (r *Router) Deliver(ctx vault.Context, store vault.KVStore, tx vault.Tx) (*vault.DeliverResult, error) {
	return r.handler(tx).Deliver(ctx, store, tx)
}

type failing struct {
	err error
}

func (f failing) Check(vault.Context, vault.KVStore, vault.Tx) (*vault.CheckResult, error) {
	return nil, f.err
}

func (f failing) Deliver(vault.Context, vault.KVStore, vault.Tx) (*vault.DeliverResult, error) {
	return nil, f.err
}
