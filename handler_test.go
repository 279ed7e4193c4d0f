package vault

import (
	"testing"

	"github.com/iov-one/vault/errors"
	"github.com/stretchr/testify/assert"
)

type recordingInit struct {
	name  string
	err   error
	calls *[]string
}

func (r recordingInit) FromGenesis(opts Options, kv KVStore) error {
	*r.calls = append(*r.calls, r.name)
	return r.err
}

func TestChainInitializers(t *testing.T) {
	cases := map[string]struct {
		inits     func(calls *[]string) ChainInitializers
		wantErr   *errors.Error
		wantCalls []string
	}{
		"all called in order": {
			inits: func(calls *[]string) ChainInitializers {
				return ChainInitializers{
					recordingInit{name: "first", calls: calls},
					recordingInit{name: "second", calls: calls},
				}
			},
			wantCalls: []string{"first", "second"},
		},
		"failure stops the chain": {
			inits: func(calls *[]string) ChainInitializers {
				return ChainInitializers{
					recordingInit{name: "first", calls: calls, err: errors.ErrInput},
					recordingInit{name: "second", calls: calls},
				}
			},
			wantErr:   errors.ErrInput,
			wantCalls: []string{"first"},
		},
		"empty": {
			inits:     func(calls *[]string) ChainInitializers { return nil },
			wantCalls: nil,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			var calls []string
			err := tc.inits(&calls).FromGenesis(Options{}, nil)
			if tc.wantErr != nil {
				assert.True(t, tc.wantErr.Is(err), "got %+v", err)
			} else {
				assert.NoError(t, err)
			}
			assert.Equal(t, tc.wantCalls, calls)
		})
	}
}
