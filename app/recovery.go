package app

import (
	"github.com/iov-one/vault"
	"github.com/iov-one/vault/errors"
)

// Recovery wraps a handler to recover from panics, so we can return them
// as errors.
type Recovery struct {
	next vault.Handler
}

var _ vault.Handler = Recovery{}

// NewRecovery returns a handler turning panics of next into ErrPanic.
func NewRecovery(next vault.Handler) Recovery {
	return Recovery{next: next}
}

// Check turns panics into normal errors
func (r Recovery) Check(ctx vault.Context, store vault.KVStore, tx vault.Tx) (res *vault.CheckResult, err error) {
	defer errors.Recover(&err)
	return r.next.Check(ctx, store, tx)
}

// Deliver turns panics into normal errors
func (r Recovery) Deliver(ctx vault.Context, store vault.KVStore, tx vault.Tx) (res *vault.DeliverResult, err error) {
	defer errors.Recover(&err)
	return r.next.Deliver(ctx, store, tx)
}
