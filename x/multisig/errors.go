package multisig

import (
	"github.com/iov-one/vault/errors"
)

// multisig takes codes 1040-1049
var (
	ErrInvalidConfiguration = errors.Register(1040, "invalid configuration")
	ErrAlreadyFinalized     = errors.Register(1041, "transaction already finalized")
	ErrDuplicateSignature   = errors.Register(1042, "duplicate signature")
	ErrInsufficientFunds    = errors.Register(1043, "insufficient funds")
)
