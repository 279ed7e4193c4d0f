package multisig

import (
	"strconv"

	"github.com/ethereum/go-ethereum/common"
	"github.com/iov-one/vault"
	"github.com/iov-one/vault/errors"
	"github.com/iov-one/vault/orm"
	"github.com/iov-one/vault/x"
)

// Event types emitted by the handlers.
const (
	EventDeposit              = "Deposit"
	EventTransactionProposal  = "TransactionProposal"
	EventTransactionConfirmed = "TransactionConfirmed"
)

// RegisterRoutes will instantiate and register
// all handlers in this package
func RegisterRoutes(r vault.Registry, auth x.Authenticator, funds Funds) {
	ledger := NewLedger(NewTransactionBucket(), funds)
	r.Handle(pathProposeMsg, ProposeHandler{auth: auth, ledger: ledger})
	r.Handle(pathSignMsg, SignHandler{auth: auth, ledger: ledger})
	r.Handle(pathDepositMsg, DepositHandler{auth: auth, ledger: ledger})
}

// ProposeHandler records new transactions.
type ProposeHandler struct {
	auth   x.Authenticator
	ledger Ledger
}

var _ vault.Handler = ProposeHandler{}

// Check verifies the caller is an owner and the message is well formed.
func (h ProposeHandler) Check(ctx vault.Context, db vault.KVStore, tx vault.Tx) (*vault.CheckResult, error) {
	caller, msg, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	return &vault.CheckResult{
		Log: caller.Hex() + " proposes " + msg.Amount.String() + " to " + msg.Recipient.Hex(),
	}, nil
}

// Deliver stores the transaction and returns its id.
func (h ProposeHandler) Deliver(ctx vault.Context, db vault.KVStore, tx vault.Tx) (*vault.DeliverResult, error) {
	caller, msg, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	id, err := h.ledger.Propose(db, caller, msg.Recipient, msg.Amount)
	if err != nil {
		return nil, err
	}

	vault.GetLogger(ctx).Info("transaction proposed",
		"id", id, "proposer", caller.Hex(), "recipient", msg.Recipient.Hex(), "amount", msg.Amount.String())

	return &vault.DeliverResult{
		Data: orm.EncodeSequence(id),
		Log:  "transaction " + strconv.FormatUint(id, 10) + " proposed",
		Events: []vault.Event{
			vault.NewEvent(EventTransactionProposal, "transaction_id", strconv.FormatUint(id, 10)),
		},
	}, nil
}

// validate does all common pre-processing between Check and Deliver. Only
// owners get their message validated.
func (h ProposeHandler) validate(ctx vault.Context, db vault.KVStore, tx vault.Tx) (common.Address, *ProposeMsg, error) {
	caller, err := ownerCaller(ctx, h.auth, db)
	if err != nil {
		return common.Address{}, nil, err
	}
	var msg ProposeMsg
	if err := vault.LoadMsg(tx, &msg); err != nil {
		return common.Address{}, nil, errors.Wrap(err, "load msg")
	}
	return caller, &msg, nil
}

// SignHandler approves transactions and pays them out once approved by
// enough owners.
type SignHandler struct {
	auth   x.Authenticator
	ledger Ledger
}

var _ vault.Handler = SignHandler{}

// Check verifies the caller can sign the transaction. The wallet balance is
// only known at delivery.
func (h SignHandler) Check(ctx vault.Context, db vault.KVStore, tx vault.Tx) (*vault.CheckResult, error) {
	var msg SignMsg
	if err := vault.LoadMsg(tx, &msg); err != nil {
		return nil, errors.Wrap(err, "load msg")
	}
	caller, ok := x.MainCaller(ctx, h.auth)
	if !ok {
		return nil, errors.Wrap(errors.ErrUnauthorized, "anonymous caller")
	}
	if err := h.ledger.CheckSign(db, caller, msg.TransactionID); err != nil {
		return nil, err
	}
	return &vault.CheckResult{
		Log: caller.Hex() + " signs transaction " + strconv.FormatUint(msg.TransactionID, 10),
	}, nil
}

// Deliver adds the signature and pays out the transaction if the threshold
// is reached.
func (h SignHandler) Deliver(ctx vault.Context, db vault.KVStore, tx vault.Tx) (*vault.DeliverResult, error) {
	var msg SignMsg
	if err := vault.LoadMsg(tx, &msg); err != nil {
		return nil, errors.Wrap(err, "load msg")
	}
	caller, ok := x.MainCaller(ctx, h.auth)
	if !ok {
		return nil, errors.Wrap(errors.ErrUnauthorized, "anonymous caller")
	}
	t, err := h.ledger.Sign(db, caller, msg.TransactionID)
	if err != nil {
		return nil, err
	}

	id := strconv.FormatUint(msg.TransactionID, 10)
	res := &vault.DeliverResult{
		Data: orm.EncodeSequence(msg.TransactionID),
		Log:  "transaction " + id + " signed",
	}
	if t.Finalized {
		vault.GetLogger(ctx).Info("transaction confirmed",
			"id", msg.TransactionID, "recipient", t.Recipient.Hex(), "amount", t.Amount.String())
		res.Log = "transaction " + id + " confirmed"
		res.Events = append(res.Events, vault.NewEvent(EventTransactionConfirmed, "transaction_id", id))
	}
	return res, nil
}

// DepositHandler moves funds of any caller into the wallet.
type DepositHandler struct {
	auth   x.Authenticator
	ledger Ledger
}

var _ vault.Handler = DepositHandler{}

// Check verifies the message and that the caller is known.
func (h DepositHandler) Check(ctx vault.Context, db vault.KVStore, tx vault.Tx) (*vault.CheckResult, error) {
	caller, msg, err := h.validate(ctx, tx)
	if err != nil {
		return nil, err
	}
	return &vault.CheckResult{
		Log: caller.Hex() + " deposits " + msg.Amount.String(),
	}, nil
}

// Deliver transfers the funds to the wallet account.
func (h DepositHandler) Deliver(ctx vault.Context, db vault.KVStore, tx vault.Tx) (*vault.DeliverResult, error) {
	caller, msg, err := h.validate(ctx, tx)
	if err != nil {
		return nil, err
	}
	if err := h.ledger.Deposit(db, caller, msg.Amount); err != nil {
		return nil, err
	}

	vault.GetLogger(ctx).Debug("deposit", "contributor", caller.Hex(), "value", msg.Amount.String())

	return &vault.DeliverResult{
		Log: "deposited " + msg.Amount.String(),
		Events: []vault.Event{
			vault.NewEvent(EventDeposit, "contributor", caller.Hex(), "value", msg.Amount.String()),
		},
	}, nil
}

// validate does all common pre-processing between Check and Deliver. Only
// owners get their message validated.
func (h DepositHandler) validate(ctx vault.Context, tx vault.Tx) (common.Address, *DepositMsg, error) {
	var msg DepositMsg
	if err := vault.LoadMsg(tx, &msg); err != nil {
		return common.Address{}, nil, errors.Wrap(err, "load msg")
	}
	caller, ok := x.MainCaller(ctx, h.auth)
	if !ok {
		return common.Address{}, nil, errors.Wrap(errors.ErrUnauthorized, "anonymous caller")
	}
	return caller, &msg, nil
}

// ownerCaller returns the authenticated caller, if it is one of the owners.
func ownerCaller(ctx vault.Context, auth x.Authenticator, db vault.ReadOnlyKVStore) (common.Address, error) {
	caller, ok := x.MainCaller(ctx, auth)
	if !ok {
		return common.Address{}, errors.Wrap(errors.ErrUnauthorized, "anonymous caller")
	}
	reg, err := LoadRegistry(db)
	if err != nil {
		return common.Address{}, err
	}
	if !reg.IsOwner(caller) {
		return common.Address{}, errors.Wrapf(errors.ErrUnauthorized, "%s is not an owner", caller.Hex())
	}
	return caller, nil
}
