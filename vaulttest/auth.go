package vaulttest

import (
	"github.com/ethereum/go-ethereum/common"
	"github.com/iov-one/vault"
	"github.com/iov-one/vault/x"
)

// Auth is a mock implementing x.Authenticator interface.
//
// This structure authenticates any of referenced addresses. You can use
// either Caller or Callers (or both) attributes. Caller is a convenience
// attribute when authenticating a single identity; it comes first when
// both are set.
type Auth struct {
	Caller  *common.Address
	Callers []common.Address
}

var _ x.Authenticator = (*Auth)(nil)

// AuthAs returns an Auth authenticating given address only.
func AuthAs(addr common.Address) *Auth {
	return &Auth{Caller: &addr}
}

func (a *Auth) GetCallers(vault.Context) []common.Address {
	if a.Caller == nil {
		return a.Callers
	}
	return append([]common.Address{*a.Caller}, a.Callers...)
}

func (a *Auth) HasAddress(ctx vault.Context, addr common.Address) bool {
	for _, c := range a.GetCallers(ctx) {
		if c == addr {
			return true
		}
	}
	return false
}
