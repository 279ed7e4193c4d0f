package cash

import (
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/iov-one/vault"
	"github.com/iov-one/vault/coin"
	"github.com/iov-one/vault/errors"
	"github.com/iov-one/vault/orm"
)

// BucketName is where we store the balances
const BucketName = "cash"

// Account is the state of a single address.
type Account struct {
	Balance *big.Int
}

var _ orm.Model = (*Account)(nil)

// Validate requires a well formed balance.
func (a *Account) Validate() error {
	return errors.Wrap(coin.Validate(a.Balance), "balance")
}

// Bucket is a type-safe wrapper around orm.Bucket
type Bucket struct {
	orm.Bucket
}

// NewBucket initializes a cash.Bucket with default name
func NewBucket() Bucket {
	return Bucket{
		Bucket: orm.NewBucket(BucketName, (*Account)(nil)),
	}
}

// GetOrEmpty returns the account stored under given address. An address
// that never received anything has an empty account.
func (b Bucket) GetOrEmpty(db vault.ReadOnlyKVStore, addr common.Address) (*Account, error) {
	var acc Account
	switch err := b.One(db, addr.Bytes(), &acc); {
	case err == nil:
		return &acc, nil
	case errors.ErrNotFound.Is(err):
		return &Account{Balance: new(big.Int)}, nil
	default:
		return nil, err
	}
}

// Save writes the account under given address.
func (b Bucket) Save(db vault.KVStore, addr common.Address, acc *Account) error {
	return b.Put(db, addr.Bytes(), acc)
}
