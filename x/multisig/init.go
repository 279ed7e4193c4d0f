package multisig

import (
	"github.com/ethereum/go-ethereum/common"
	"github.com/iov-one/vault"
	"github.com/iov-one/vault/errors"
)

// GenesisWallet is the owner set declared in the genesis file.
type GenesisWallet struct {
	Owners    []common.Address `json:"owners"`
	Threshold uint32           `json:"threshold"`
}

// Initializer fulfils the Initializer interface to load data from the genesis
// file
type Initializer struct{}

var _ vault.Initializer = (*Initializer)(nil)

// FromGenesis will parse the owner set from genesis and save it in the
// database. A genesis without the multisig section leaves the wallet
// uninitialized.
func (*Initializer) FromGenesis(opts vault.Options, db vault.KVStore) error {
	var w *GenesisWallet
	if err := opts.ReadOptions("multisig", &w); err != nil {
		return errors.Wrap(errors.ErrInput, err.Error())
	}
	if w == nil {
		return nil
	}
	reg, err := NewOwnerRegistry(w.Owners, w.Threshold)
	if err != nil {
		return err
	}
	return SaveRegistry(db, reg)
}
