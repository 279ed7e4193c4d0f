package cash

import (
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/iov-one/vault"
	"github.com/iov-one/vault/coin"
	"github.com/iov-one/vault/errors"
)

// Controller is the functionality needed by other extensions to move funds
// around.
type Controller interface {
	// Balance returns the current balance of an address. Unknown
	// addresses hold nothing.
	Balance(db vault.ReadOnlyKVStore, addr common.Address) (*big.Int, error)

	// Transfer moves the given amount from src to dest.
	// If src doesn't have sufficient funds, it fails.
	Transfer(db vault.KVStore, src, dest common.Address, amount *big.Int) error

	// Issue adds the given amount to the destination address out of
	// thin air. It is used to load the genesis balances.
	Issue(db vault.KVStore, dest common.Address, amount *big.Int) error
}

// BaseController is a simple implementation of Controller.
type BaseController struct {
	bucket Bucket
}

var _ Controller = BaseController{}

// NewController returns a controller operating on given bucket.
func NewController(bucket Bucket) BaseController {
	return BaseController{bucket: bucket}
}

// Balance returns the current balance of an address.
func (c BaseController) Balance(db vault.ReadOnlyKVStore, addr common.Address) (*big.Int, error) {
	acc, err := c.bucket.GetOrEmpty(db, addr)
	if err != nil {
		return nil, errors.Wrap(err, "cannot load account")
	}
	return acc.Balance, nil
}

// Transfer moves the given amount from src to dest.
func (c BaseController) Transfer(db vault.KVStore, src, dest common.Address, amount *big.Int) error {
	if err := coin.Validate(amount); err != nil {
		return errors.Wrap(err, "transfer amount")
	}

	sender, err := c.bucket.GetOrEmpty(db, src)
	if err != nil {
		return errors.Wrap(err, "cannot load sender")
	}
	if sender.Balance.Cmp(amount) < 0 {
		return errors.Wrapf(errors.ErrAmount,
			"insufficient funds: %s holds %s, needs %s", src.Hex(), sender.Balance, amount)
	}
	if src == dest {
		return nil
	}

	recipient, err := c.bucket.GetOrEmpty(db, dest)
	if err != nil {
		return errors.Wrap(err, "cannot load recipient")
	}
	if sender.Balance, err = coin.Sub(sender.Balance, amount); err != nil {
		return err
	}
	if recipient.Balance, err = coin.Add(recipient.Balance, amount); err != nil {
		return err
	}

	if err := c.bucket.Save(db, src, sender); err != nil {
		return errors.Wrap(err, "cannot save sender")
	}
	return errors.Wrap(c.bucket.Save(db, dest, recipient), "cannot save recipient")
}

// Issue adds the given amount to the destination address.
func (c BaseController) Issue(db vault.KVStore, dest common.Address, amount *big.Int) error {
	acc, err := c.bucket.GetOrEmpty(db, dest)
	if err != nil {
		return errors.Wrap(err, "cannot load account")
	}
	if acc.Balance, err = coin.Add(acc.Balance, amount); err != nil {
		return err
	}
	return c.bucket.Save(db, dest, acc)
}
