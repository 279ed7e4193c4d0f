package vault

import (
	"testing"

	"github.com/iov-one/vault/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type pingMsg struct {
	Text string
}

func (pingMsg) Path() string { return "test/ping" }

func (m *pingMsg) Validate() error {
	if m.Text == "" {
		return errors.Wrap(errors.ErrMsg, "empty text")
	}
	return nil
}

type pongMsg struct{}

func (pongMsg) Path() string     { return "test/pong" }
func (*pongMsg) Validate() error { return nil }

func TestLoadMsg(t *testing.T) {
	cases := map[string]struct {
		tx      Tx
		dest    interface{}
		wantErr *errors.Error
		want    interface{}
	}{
		"success": {
			tx:   MsgTx{Msg: &pingMsg{Text: "hi"}},
			dest: &pingMsg{},
			want: &pingMsg{Text: "hi"},
		},
		"invalid message": {
			tx:      MsgTx{Msg: &pingMsg{}},
			dest:    &pingMsg{},
			wantErr: errors.ErrMsg,
		},
		"missing message": {
			tx:      MsgTx{},
			dest:    &pingMsg{},
			wantErr: errors.ErrEmpty,
		},
		"type mismatch": {
			tx:      MsgTx{Msg: &pongMsg{}},
			dest:    &pingMsg{},
			wantErr: errors.ErrType,
		},
		"not a pointer": {
			tx:      MsgTx{Msg: &pingMsg{Text: "hi"}},
			dest:    pingMsg{},
			wantErr: errors.ErrType,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			err := LoadMsg(tc.tx, tc.dest)
			if tc.wantErr != nil {
				assert.True(t, tc.wantErr.Is(err), "got %+v", err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, tc.dest)
		})
	}
}

func TestGetPath(t *testing.T) {
	assert.Equal(t, "test/ping", GetPath(MsgTx{Msg: &pingMsg{}}))
	assert.Equal(t, "(missing)", GetPath(MsgTx{}))
}
