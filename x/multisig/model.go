package multisig

import (
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/iov-one/vault"
	"github.com/iov-one/vault/coin"
	"github.com/iov-one/vault/errors"
	"github.com/iov-one/vault/orm"
)

const (
	// BucketName is where we store the transactions
	BucketName = "txs"
	// SequenceName is an auto-increment ID counter for transactions
	SequenceName = "id"
)

// Transaction is a proposed payout from the wallet.
type Transaction struct {
	Recipient common.Address
	Amount    *big.Int
	Finalized bool
	// Signers are the owners that approved this transaction, in the order
	// they signed. The first one is the proposer.
	Signers []common.Address
}

var _ orm.Model = (*Transaction)(nil)

// Validate ensures the transaction is well formed.
func (t *Transaction) Validate() error {
	if t.Recipient == (common.Address{}) {
		return errors.Wrap(errors.ErrModel, "missing recipient")
	}
	if err := coin.Validate(t.Amount); err != nil {
		return errors.Wrap(err, "amount")
	}
	if len(t.Signers) == 0 {
		return errors.Wrap(errors.ErrModel, "missing proposer")
	}
	seen := make(map[common.Address]struct{}, len(t.Signers))
	for _, s := range t.Signers {
		if _, ok := seen[s]; ok {
			return errors.Wrapf(errors.ErrModel, "duplicated signer %s", s.Hex())
		}
		seen[s] = struct{}{}
	}
	return nil
}

// HasSigned returns true if given address is one of the signers.
func (t *Transaction) HasSigned(addr common.Address) bool {
	for _, s := range t.Signers {
		if s == addr {
			return true
		}
	}
	return false
}

// TransactionBucket is a type-safe wrapper around orm.Bucket
type TransactionBucket struct {
	orm.Bucket
	idSeq orm.Sequence
}

// NewTransactionBucket initializes a TransactionBucket with default name
func NewTransactionBucket() TransactionBucket {
	return TransactionBucket{
		Bucket: orm.NewBucket(BucketName, (*Transaction)(nil)),
		idSeq:  orm.NewSequence(BucketName, SequenceName),
	}
}

// Create stores a new transaction under the next free id.
func (b TransactionBucket) Create(db vault.KVStore, t *Transaction) (uint64, error) {
	// Validate before the sequence is advanced.
	if err := t.Validate(); err != nil {
		return 0, err
	}
	id, err := b.idSeq.NextInt(db)
	if err != nil {
		return 0, errors.Wrap(err, "cannot acquire ID")
	}
	if err := b.Put(db, orm.EncodeSequence(id), t); err != nil {
		return 0, err
	}
	return id, nil
}

// GetTransaction returns the transaction with given id.
func (b TransactionBucket) GetTransaction(db vault.ReadOnlyKVStore, id uint64) (*Transaction, error) {
	var t Transaction
	if err := b.One(db, orm.EncodeSequence(id), &t); err != nil {
		if errors.ErrNotFound.Is(err) {
			return nil, errors.Wrapf(errors.ErrNotFound, "transaction %d", id)
		}
		return nil, errors.Wrapf(err, "transaction %d", id)
	}
	return &t, nil
}

// Update overwrites an existing transaction.
func (b TransactionBucket) Update(db vault.KVStore, id uint64, t *Transaction) error {
	return b.Put(db, orm.EncodeSequence(id), t)
}

// Count returns the number of transactions ever proposed.
func (b TransactionBucket) Count(db vault.ReadOnlyKVStore) (uint64, error) {
	return b.idSeq.Count(db)
}
