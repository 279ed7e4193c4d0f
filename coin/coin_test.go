package coin

import (
	"math/big"
	"testing"

	"github.com/iov-one/vault/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func bigString(t *testing.T, s string) *big.Int {
	t.Helper()
	v, ok := new(big.Int).SetString(s, 10)
	require.True(t, ok)
	return v
}

func TestParse(t *testing.T) {
	cases := map[string]struct {
		raw     string
		want    *big.Int
		wantErr *errors.Error
	}{
		"decimal": {
			raw:  "9984703199999",
			want: big.NewInt(9984703199999),
		},
		"hex": {
			raw:  "0x64",
			want: big.NewInt(100),
		},
		"beyond uint64": {
			raw:  "20000000000000000000",
			want: bigString(t, "20000000000000000000"),
		},
		"zero": {
			raw:  "0",
			want: big.NewInt(0),
		},
		"garbage": {
			raw:     "ten",
			wantErr: errors.ErrAmount,
		},
		"negative": {
			raw:     "-5",
			wantErr: errors.ErrAmount,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			got, err := Parse(tc.raw)
			if tc.wantErr != nil {
				assert.True(t, tc.wantErr.Is(err), "got %v", err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, 0, tc.want.Cmp(got), "want %s, got %s", tc.want, got)
		})
	}
}

func TestValidate(t *testing.T) {
	assert.True(t, errors.ErrAmount.Is(Validate(nil)))
	assert.True(t, errors.ErrAmount.Is(Validate(big.NewInt(-1))))
	tooBig := new(big.Int).Add(MaxAmount, big.NewInt(1))
	assert.True(t, errors.ErrOverflow.Is(Validate(tooBig)))
	assert.NoError(t, Validate(big.NewInt(0)))
	assert.NoError(t, Validate(MaxAmount))
}

func TestAddSub(t *testing.T) {
	ten := bigString(t, "10000000000000000000")

	sum, err := Add(ten, ten)
	require.NoError(t, err)
	assert.Equal(t, "20000000000000000000", sum.String())
	// Operands are not modified.
	assert.Equal(t, "10000000000000000000", ten.String())

	_, err = Add(MaxAmount, big.NewInt(1))
	assert.True(t, errors.ErrOverflow.Is(err))

	diff, err := Sub(sum, ten)
	require.NoError(t, err)
	assert.Equal(t, 0, diff.Cmp(ten))

	_, err = Sub(big.NewInt(100), big.NewInt(101))
	assert.True(t, errors.ErrAmount.Is(err))
}

func TestIsPositive(t *testing.T) {
	assert.False(t, IsPositive(nil))
	assert.False(t, IsPositive(big.NewInt(0)))
	assert.True(t, IsPositive(big.NewInt(1)))
}

func TestFormat(t *testing.T) {
	assert.Equal(t, "1.5", Format(big.NewInt(1500), 3))
	assert.Equal(t, "20", Format(bigString(t, "20000000000000000000"), 18))
	assert.Equal(t, "0.0000001", Format(big.NewInt(100000000000), 18))
	assert.Equal(t, "0", Format(nil, 18))
}
