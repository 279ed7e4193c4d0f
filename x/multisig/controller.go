package multisig

import (
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/iov-one/vault"
	"github.com/iov-one/vault/coin"
	"github.com/iov-one/vault/errors"
)

// Funds is the external collaborator holding the wallet currency.
// cash.Controller implements it.
type Funds interface {
	Balance(db vault.ReadOnlyKVStore, addr common.Address) (*big.Int, error)
	Transfer(db vault.KVStore, src, dest common.Address, amount *big.Int) error
}

// Ledger is the transaction ledger of the wallet. All methods expect an
// already authenticated caller. None of them is atomic on its own, callers
// must run each one in a cache wrap and discard it on error.
type Ledger struct {
	bucket TransactionBucket
	funds  Funds
}

// NewLedger returns a ledger paying out through given funds.
func NewLedger(bucket TransactionBucket, funds Funds) Ledger {
	return Ledger{bucket: bucket, funds: funds}
}

// Propose records a new transaction signed by the caller and returns its
// id. No funds are moved.
func (l Ledger) Propose(db vault.KVStore, caller, recipient common.Address, amount *big.Int) (uint64, error) {
	reg, err := LoadRegistry(db)
	if err != nil {
		return 0, err
	}
	if !reg.IsOwner(caller) {
		return 0, errors.Wrapf(errors.ErrUnauthorized, "%s is not an owner", caller.Hex())
	}
	if err := coin.Validate(amount); err != nil {
		return 0, errors.Wrap(err, "amount")
	}
	t := &Transaction{
		Recipient: recipient,
		Amount:    new(big.Int).Set(amount),
		Finalized: false,
		Signers:   []common.Address{caller},
	}
	return l.bucket.Create(db, t)
}

// Sign adds the caller approval to a pending transaction. When the
// threshold is reached the transaction is paid out and finalized. Returned
// transaction is the state after signing.
func (l Ledger) Sign(db vault.KVStore, caller common.Address, id uint64) (*Transaction, error) {
	reg, t, err := l.loadForSign(db, caller, id)
	if err != nil {
		return nil, err
	}

	t.Signers = append(t.Signers, caller)
	if uint32(len(t.Signers)) < reg.Threshold() {
		if err := l.bucket.Update(db, id, t); err != nil {
			return nil, err
		}
		return t, nil
	}

	balance, err := l.funds.Balance(db, reg.Address())
	if err != nil {
		return nil, errors.Wrap(err, "wallet balance")
	}
	if balance.Cmp(t.Amount) < 0 {
		return nil, errors.Wrapf(ErrInsufficientFunds, "wallet holds %s, transaction %d needs %s", balance, id, t.Amount)
	}

	t.Finalized = true
	if err := l.bucket.Update(db, id, t); err != nil {
		return nil, err
	}
	if err := l.funds.Transfer(db, reg.Address(), t.Recipient, t.Amount); err != nil {
		return nil, errors.Wrapf(err, "payout of transaction %d", id)
	}
	return t, nil
}

// CheckSign returns the error signing would fail with, not considering the
// wallet balance. It does not modify the state.
func (l Ledger) CheckSign(db vault.ReadOnlyKVStore, caller common.Address, id uint64) error {
	_, _, err := l.loadForSign(db, caller, id)
	return err
}

// loadForSign checks that caller can sign given transaction.
func (l Ledger) loadForSign(db vault.ReadOnlyKVStore, caller common.Address, id uint64) (*OwnerRegistry, *Transaction, error) {
	reg, err := LoadRegistry(db)
	if err != nil {
		return nil, nil, err
	}
	t, err := l.bucket.GetTransaction(db, id)
	if err != nil {
		return nil, nil, err
	}
	if !reg.IsOwner(caller) {
		return nil, nil, errors.Wrapf(errors.ErrUnauthorized, "%s is not an owner", caller.Hex())
	}
	if t.Finalized {
		return nil, nil, errors.Wrapf(ErrAlreadyFinalized, "transaction %d", id)
	}
	if t.HasSigned(caller) {
		return nil, nil, errors.Wrapf(ErrDuplicateSignature, "%s already signed transaction %d", caller.Hex(), id)
	}
	return reg, t, nil
}

// Signatures returns the signers of a transaction in signing order. Only
// owners may inspect signatures.
func (l Ledger) Signatures(db vault.ReadOnlyKVStore, caller common.Address, id uint64) ([]common.Address, error) {
	reg, err := LoadRegistry(db)
	if err != nil {
		return nil, err
	}
	if !reg.IsOwner(caller) {
		return nil, errors.Wrapf(errors.ErrUnauthorized, "%s is not an owner", caller.Hex())
	}
	t, err := l.bucket.GetTransaction(db, id)
	if err != nil {
		return nil, err
	}
	return t.Signers, nil
}

// Balance returns the funds held by the wallet. Only owners may inspect it.
func (l Ledger) Balance(db vault.ReadOnlyKVStore, caller common.Address) (*big.Int, error) {
	reg, err := LoadRegistry(db)
	if err != nil {
		return nil, err
	}
	if !reg.IsOwner(caller) {
		return nil, errors.Wrapf(errors.ErrUnauthorized, "%s is not an owner", caller.Hex())
	}
	return l.funds.Balance(db, reg.Address())
}

// Deposit moves funds of any identity into the wallet.
func (l Ledger) Deposit(db vault.KVStore, from common.Address, amount *big.Int) error {
	reg, err := LoadRegistry(db)
	if err != nil {
		return err
	}
	return l.funds.Transfer(db, from, reg.Address(), amount)
}

// Transaction returns the transaction with given id. It is public.
func (l Ledger) Transaction(db vault.ReadOnlyKVStore, id uint64) (*Transaction, error) {
	return l.bucket.GetTransaction(db, id)
}

// Count returns the number of transactions ever proposed.
func (l Ledger) Count(db vault.ReadOnlyKVStore) (uint64, error) {
	return l.bucket.Count(db)
}
