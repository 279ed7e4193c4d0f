package multisig

import (
	"math/big"
	"testing"

	"github.com/iov-one/vault"
	"github.com/iov-one/vault/errors"
	"github.com/iov-one/vault/vaulttest"
	"github.com/stretchr/testify/assert"
)

func TestMsgValidate(t *testing.T) {
	recipient := vaulttest.NewAddress()

	cases := map[string]struct {
		msg     vault.Msg
		wantErr *errors.Error
	}{
		"valid propose": {
			msg: &ProposeMsg{Recipient: recipient, Amount: big.NewInt(100000000)},
		},
		"propose zero amount": {
			msg: &ProposeMsg{Recipient: recipient, Amount: new(big.Int)},
		},
		"propose without recipient": {
			msg:     &ProposeMsg{Amount: big.NewInt(1)},
			wantErr: errors.ErrMsg,
		},
		"propose without amount": {
			msg:     &ProposeMsg{Recipient: recipient},
			wantErr: errors.ErrMsg,
		},
		"propose negative amount": {
			msg:     &ProposeMsg{Recipient: recipient, Amount: big.NewInt(-5)},
			wantErr: errors.ErrMsg,
		},
		"sign": {
			msg: &SignMsg{TransactionID: 12},
		},
		"valid deposit": {
			msg: &DepositMsg{Amount: big.NewInt(1)},
		},
		"deposit without amount": {
			msg:     &DepositMsg{},
			wantErr: errors.ErrMsg,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			err := tc.msg.Validate()
			if tc.wantErr == nil {
				assert.NoError(t, err)
			} else {
				assert.True(t, tc.wantErr.Is(err), "got %+v", err)
			}
			assert.True(t, vault.IsPath(tc.msg.Path()))
		})
	}
}
