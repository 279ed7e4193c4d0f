package app

import (
	"math/big"
	"sync"

	"github.com/ethereum/go-ethereum/common"
	"github.com/iov-one/vault"
	"github.com/iov-one/vault/errors"
	"github.com/iov-one/vault/notify"
	"github.com/iov-one/vault/orm"
	"github.com/iov-one/vault/x"
	"github.com/iov-one/vault/x/cash"
	"github.com/iov-one/vault/x/multisig"
	"github.com/tendermint/tendermint/libs/log"
)

// Wallet is the wallet service. All methods are safe for concurrent use,
// commands and queries are processed one at a time.
type Wallet struct {
	mu sync.Mutex

	store    vault.CacheableKVStore
	handler  vault.Handler
	auth     x.CtxAuth
	cash     cash.Controller
	ledger   multisig.Ledger
	notifier notify.Notifier
	logger   log.Logger
}

// NewWallet returns a wallet operating on given store. Events are delivered
// to the notifier, which may be nil.
func NewWallet(store vault.CacheableKVStore, notifier notify.Notifier) *Wallet {
	ctrl := cash.NewController(cash.NewBucket())
	return newWallet(store, notifier, ctrl, ctrl)
}

// newWallet returns a wallet whose ledger moves funds through given
// collaborator. Account balances and genesis always use ctrl.
func newWallet(store vault.CacheableKVStore, notifier notify.Notifier, ctrl cash.Controller, funds multisig.Funds) *Wallet {
	if notifier == nil {
		notifier = notify.Nop{}
	}
	auth := x.CtxAuth{Key: "vault"}

	r := NewRouter()
	multisig.RegisterRoutes(r, auth, funds)

	return &Wallet{
		store:    store,
		handler:  NewRecovery(r),
		auth:     auth,
		cash:     ctrl,
		ledger:   multisig.NewLedger(multisig.NewTransactionBucket(), funds),
		notifier: notifier,
		logger:   log.NewNopLogger(),
	}
}

// WithLogger sets the logger used for all commands.
func (w *Wallet) WithLogger(logger log.Logger) *Wallet {
	w.logger = logger
	return w
}

// InitGenesis loads the initial balances and the owner set. The wallet can
// be initialized only once.
func (w *Wallet) InitGenesis(opts vault.Options) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	genesis := vault.ChainInitializers{
		&cash.Initializer{},
		&multisig.Initializer{},
	}
	cache := w.store.CacheWrap()
	if err := genesis.FromGenesis(opts, cache); err != nil {
		cache.Discard()
		return errors.Wrap(err, "genesis")
	}
	if err := cache.Write(); err != nil {
		return errors.Wrap(errors.ErrDatabase, err.Error())
	}
	w.logger.Info("wallet initialized")
	return nil
}

// Check runs the message handler against the current state without
// changing it.
func (w *Wallet) Check(ctx vault.Context, caller common.Address, msg vault.Msg) (*vault.CheckResult, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	cache := w.store.CacheWrap()
	defer cache.Discard()
	return w.handler.Check(w.context(ctx, caller, msg), cache, vault.MsgTx{Msg: msg})
}

// Deliver executes the message as given caller. The state changes are
// written only if the handler succeeds.
func (w *Wallet) Deliver(ctx vault.Context, caller common.Address, msg vault.Msg) (*vault.DeliverResult, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	ctx = w.context(ctx, caller, msg)
	cache := w.store.CacheWrap()
	res, err := w.handler.Deliver(ctx, cache, vault.MsgTx{Msg: msg})
	if err != nil {
		cache.Discard()
		vault.GetLogger(ctx).Debug("command failed", "err", err)
		return nil, err
	}
	if err := cache.Write(); err != nil {
		return nil, errors.Wrap(errors.ErrDatabase, err.Error())
	}

	if len(res.Events) != 0 {
		if err := w.notifier.Notify(ctx, res.Events); err != nil {
			vault.GetLogger(ctx).Error("cannot deliver events", "err", err)
		}
	}
	return res, nil
}

func (w *Wallet) context(ctx vault.Context, caller common.Address, msg vault.Msg) vault.Context {
	ctx = vault.WithLogger(ctx, w.logger)
	ctx = vault.WithLogInfo(ctx, "path", msg.Path(), "caller", caller.Hex())
	return w.auth.SetCallers(ctx, caller)
}

// Deposit moves amount from the caller account into the wallet. Anyone can
// deposit.
func (w *Wallet) Deposit(ctx vault.Context, from common.Address, amount *big.Int) error {
	_, err := w.Deliver(ctx, from, &multisig.DepositMsg{Amount: amount})
	return err
}

// Propose records a new transaction and returns its id.
func (w *Wallet) Propose(ctx vault.Context, caller, recipient common.Address, amount *big.Int) (uint64, error) {
	res, err := w.Deliver(ctx, caller, &multisig.ProposeMsg{Recipient: recipient, Amount: amount})
	if err != nil {
		return 0, err
	}
	return orm.DecodeSequence(res.Data)
}

// Sign approves a transaction. It returns true if the transaction was paid
// out by this signature.
func (w *Wallet) Sign(ctx vault.Context, caller common.Address, id uint64) (bool, error) {
	res, err := w.Deliver(ctx, caller, &multisig.SignMsg{TransactionID: id})
	if err != nil {
		return false, err
	}
	for _, e := range res.Events {
		if e.Type == multisig.EventTransactionConfirmed {
			return true, nil
		}
	}
	return false, nil
}

// Signatures returns the owners that signed given transaction, in signing
// order. Only owners may call it.
func (w *Wallet) Signatures(caller common.Address, id uint64) ([]common.Address, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.ledger.Signatures(w.store, caller, id)
}

// Balance returns the funds held by the wallet. Only owners may call it.
func (w *Wallet) Balance(caller common.Address) (*big.Int, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.ledger.Balance(w.store, caller)
}

// Transaction returns the transaction with given id.
func (w *Wallet) Transaction(id uint64) (*multisig.Transaction, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.ledger.Transaction(w.store, id)
}

// Count returns the number of proposed transactions.
func (w *Wallet) Count() (uint64, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.ledger.Count(w.store)
}

// IsOwner returns true if given address is one of the wallet owners.
func (w *Wallet) IsOwner(addr common.Address) (bool, error) {
	reg, err := w.Registry()
	if err != nil {
		return false, err
	}
	return reg.IsOwner(addr), nil
}

// Registry returns the owner set of the wallet.
func (w *Wallet) Registry() (*multisig.OwnerRegistry, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	return multisig.LoadRegistry(w.store)
}

// AccountBalance returns the funds held by any account, outside of the
// wallet.
func (w *Wallet) AccountBalance(addr common.Address) (*big.Int, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.cash.Balance(w.store, addr)
}
