package multisig

import (
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/iov-one/vault"
	"github.com/iov-one/vault/coin"
	"github.com/iov-one/vault/errors"
)

const (
	pathProposeMsg = "multisig/propose"
	pathSignMsg    = "multisig/sign"
	pathDepositMsg = "multisig/deposit"
)

// ProposeMsg asks for a payout of Amount from the wallet to Recipient.
type ProposeMsg struct {
	Recipient common.Address `json:"recipient"`
	Amount    *big.Int       `json:"amount"`
}

var _ vault.Msg = (*ProposeMsg)(nil)

// Path fulfills vault.Msg interface to allow routing
func (ProposeMsg) Path() string {
	return pathProposeMsg
}

// Validate ensures the recipient is set and the amount is well formed.
func (m *ProposeMsg) Validate() error {
	if m.Recipient == (common.Address{}) {
		return errors.Wrap(errors.ErrMsg, "missing recipient")
	}
	if err := coin.Validate(m.Amount); err != nil {
		return errors.Wrap(errors.ErrMsg, err.Error())
	}
	return nil
}

// SignMsg approves a pending transaction.
type SignMsg struct {
	TransactionID uint64 `json:"transaction_id"`
}

var _ vault.Msg = (*SignMsg)(nil)

// Path fulfills vault.Msg interface to allow routing
func (SignMsg) Path() string {
	return pathSignMsg
}

// Validate is a noop, any id can be addressed.
func (m *SignMsg) Validate() error {
	return nil
}

// DepositMsg moves Amount from the caller account into the wallet.
type DepositMsg struct {
	Amount *big.Int `json:"amount"`
}

var _ vault.Msg = (*DepositMsg)(nil)

// Path fulfills vault.Msg interface to allow routing
func (DepositMsg) Path() string {
	return pathDepositMsg
}

// Validate ensures the amount is well formed.
func (m *DepositMsg) Validate() error {
	if err := coin.Validate(m.Amount); err != nil {
		return errors.Wrap(errors.ErrMsg, err.Error())
	}
	return nil
}
