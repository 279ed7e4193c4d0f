package main

import (
	"bytes"
	"io/ioutil"
	"os"
	"strings"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/iov-one/vault/errors"
	"github.com/iov-one/vault/x/multisig"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	ownerA    = "0x00000000000000000000000000000000000000a1"
	ownerB    = "0x00000000000000000000000000000000000000b2"
	ownerC    = "0x00000000000000000000000000000000000000c3"
	recipient = "0x00000000000000000000000000000000000000d4"
	outsider  = "0x00000000000000000000000000000000000000e5"
)

const genesis = `{
	"multisig": {
		"owners": [
			"0x00000000000000000000000000000000000000a1",
			"0x00000000000000000000000000000000000000b2",
			"0x00000000000000000000000000000000000000c3"
		]
	},
	"cash": [
		{"address": "0x00000000000000000000000000000000000000b2", "balance": "9984703199999"}
	]
}`

// withHome points vaultd to a new, empty home directory.
func withHome(t *testing.T) func() {
	t.Helper()
	home, err := ioutil.TempDir("", "vaultd")
	require.NoError(t, err)
	prevHome, hadHome := os.LookupEnv("VAULT_HOME")
	require.NoError(t, os.Setenv("VAULT_HOME", home))
	require.NoError(t, os.Setenv("VAULT_LOG_LEVEL", "none"))
	return func() {
		if hadHome {
			os.Setenv("VAULT_HOME", prevHome)
		} else {
			os.Unsetenv("VAULT_HOME")
		}
		os.Unsetenv("VAULT_LOG_LEVEL")
		os.RemoveAll(home)
	}
}

func run(t *testing.T, input string, cmd string, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	err := commands[cmd](strings.NewReader(input), &out, args)
	return strings.TrimSpace(out.String()), err
}

func mustRun(t *testing.T, input string, cmd string, args ...string) string {
	t.Helper()
	out, err := run(t, input, cmd, args...)
	require.NoError(t, err, "%s %s", cmd, strings.Join(args, " "))
	return out
}

func TestWalletLifecycle(t *testing.T) {
	defer withHome(t)()

	wallet := mustRun(t, genesis, "init")
	require.Len(t, wallet, 42)

	_, err := run(t, genesis, "init")
	assert.True(t, errors.ErrDuplicate.Is(err), "got %+v", err)

	mustRun(t, "", "deposit", "-as", ownerB, "-amount", "9984703199999")
	assert.Equal(t, "9984703199999", mustRun(t, "", "balance", "-as", ownerC))
	assert.Equal(t, "0", mustRun(t, "", "account", "-address", ownerB))

	id := mustRun(t, "", "propose", "-as", ownerA, "-to", recipient, "-amount", "100000000")
	assert.Equal(t, "0", id)

	_, err = run(t, "", "sign", "-as", ownerA, "-id", id)
	assert.True(t, multisig.ErrDuplicateSignature.Is(err), "got %+v", err)

	assert.Equal(t, strings.ToLower(ownerA), strings.ToLower(mustRun(t, "", "signatures", "-as", ownerB, "-id", id)))

	assert.Equal(t, "confirmed", mustRun(t, "", "sign", "-as", ownerB, "-id", id))
	assert.Equal(t, "100000000", mustRun(t, "", "account", "-address", recipient))
	assert.Equal(t, "1", mustRun(t, "", "account", "-address", recipient, "-decimals", "8"))
	assert.Equal(t, "9984603199999", mustRun(t, "", "balance", "-as", ownerA))

	tx := mustRun(t, "", "transaction", "-id", id)
	assert.Contains(t, tx, `"finalized": true`)
	assert.Contains(t, tx, `"amount": "100000000"`)

	owners := mustRun(t, "", "owners")
	assert.Contains(t, owners, `"threshold": 2`)
	assert.Contains(t, owners, `"proposals": 1`)
	assert.Contains(t, strings.ToLower(owners), strings.ToLower(wallet))
}

func TestCommandsRequireOwner(t *testing.T) {
	defer withHome(t)()
	mustRun(t, genesis, "init")

	_, err := run(t, "", "propose", "-as", outsider, "-to", recipient, "-amount", "1")
	assert.True(t, errors.ErrUnauthorized.Is(err), "got %+v", err)

	_, err = run(t, "", "balance", "-as", outsider)
	assert.True(t, errors.ErrUnauthorized.Is(err), "got %+v", err)

	_, err = run(t, "", "signatures", "-as", outsider, "-id", "0")
	assert.True(t, errors.ErrUnauthorized.Is(err), "got %+v", err)
}

func TestCommandsRequireFlags(t *testing.T) {
	defer withHome(t)()

	_, err := run(t, "", "deposit", "-amount", "1")
	assert.Error(t, err)
	_, err = run(t, "", "propose", "-as", ownerA, "-amount", "1")
	assert.Error(t, err)
	_, err = run(t, "", "account")
	assert.Error(t, err)
}

func TestCmdVersion(t *testing.T) {
	out := mustRun(t, "", "version")
	assert.True(t, strings.HasPrefix(out, "v"), out)
}

func TestLoadConfig(t *testing.T) {
	defer withHome(t)()
	require.NoError(t, os.Setenv("VAULT_DEBUG", "true"))
	defer os.Unsetenv("VAULT_DEBUG")

	conf, err := LoadConfig()
	require.NoError(t, err)
	assert.True(t, conf.Debug)
	assert.Equal(t, "none", conf.LogLevel)

	_, err = conf.Logger()
	require.NoError(t, err)

	conf.LogLevel = "loud"
	_, err = conf.Logger()
	assert.True(t, errors.ErrInput.Is(err), "got %+v", err)

	var usage bytes.Buffer
	conf.OutputUsage(&usage)
	assert.Contains(t, usage.String(), "VAULT_HOME")
	assert.Contains(t, usage.String(), "VAULT_LOG_LEVEL")
}

func TestMerkleState(t *testing.T) {
	defer withHome(t)()
	require.NoError(t, os.Setenv("VAULT_MERKLE", "true"))
	defer os.Unsetenv("VAULT_MERKLE")

	mustRun(t, genesis, "init")
	before := mustRun(t, "", "owners")
	assert.Contains(t, before, `"state_version": 1`)
	assert.Contains(t, before, `"state_hash": "0x`)

	mustRun(t, "", "deposit", "-as", ownerB, "-amount", "10")
	after := mustRun(t, "", "owners")
	assert.Contains(t, after, `"state_version": 2`)

	// A rejected command does not create a new version.
	_, err := run(t, "", "propose", "-as", outsider, "-to", recipient, "-amount", "1")
	assert.True(t, errors.ErrUnauthorized.Is(err), "got %+v", err)
	assert.Equal(t, after, mustRun(t, "", "owners"))
}

func TestPlainStateHasNoVersion(t *testing.T) {
	defer withHome(t)()
	mustRun(t, genesis, "init")
	assert.NotContains(t, mustRun(t, "", "owners"), "state_hash")
}

func TestBech32Addresses(t *testing.T) {
	defer withHome(t)()
	mustRun(t, genesis, "init")

	owners := mustRun(t, "", "owners", "-bech32", "vault")
	assert.NotContains(t, owners, "0x")

	a, err := parseAddress(ownerA)
	require.NoError(t, err)
	encoded, err := formatAddress("vault", a)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(encoded, "vault1"), encoded)
	assert.Contains(t, owners, encoded)

	// Both representations name the same owner.
	decoded, err := parseAddress(encoded)
	require.NoError(t, err)
	assert.Equal(t, a, decoded)
	mustRun(t, "", "balance", "-as", encoded)
}

func TestParseAddress(t *testing.T) {
	short, err := formatAddress("vault", common.Address{})
	require.NoError(t, err)
	broken := short[:len(short)-1] + "q"
	if broken == short {
		broken = short[:len(short)-1] + "p"
	}

	cases := map[string]struct {
		raw     string
		wantErr bool
	}{
		"hex":                 {raw: ownerA},
		"hex without prefix":  {raw: ownerA[2:]},
		"bech32":              {raw: short},
		"garbage":             {raw: "not an address", wantErr: true},
		"bad bech32 checksum": {raw: broken, wantErr: true},
		"empty":               {raw: "", wantErr: true},
	}
	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			_, err := parseAddress(tc.raw)
			if tc.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
