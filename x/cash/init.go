package cash

import (
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/math"
	"github.com/iov-one/vault"
	"github.com/iov-one/vault/errors"
)

// GenesisAccount is a single balance declared in the genesis file.
type GenesisAccount struct {
	Address common.Address        `json:"address"`
	Balance *math.HexOrDecimal256 `json:"balance"`
}

// Initializer fulfils the Initializer interface to load data from the
// genesis file
type Initializer struct{}

var _ vault.Initializer = (*Initializer)(nil)

// FromGenesis will parse initial account info from genesis and save it to
// the database
func (*Initializer) FromGenesis(opts vault.Options, db vault.KVStore) error {
	var accounts []GenesisAccount
	if err := opts.ReadOptions("cash", &accounts); err != nil {
		return errors.Wrap(errors.ErrInput, err.Error())
	}

	ctrl := NewController(NewBucket())
	for i, acc := range accounts {
		if acc.Balance == nil {
			return errors.Wrapf(errors.ErrAmount, "account #%d: missing balance", i)
		}
		if err := ctrl.Issue(db, acc.Address, (*big.Int)(acc.Balance)); err != nil {
			return errors.Wrapf(err, "account #%d", i)
		}
	}
	return nil
}
