package main

import (
	"flag"
	"fmt"
	"math/big"
	"os"

	"github.com/btcsuite/btcutil/bech32"
	"github.com/ethereum/go-ethereum/common"
	"github.com/iov-one/vault"
	"github.com/iov-one/vault/app"
	"github.com/iov-one/vault/coin"
	"github.com/iov-one/vault/notify"
	"github.com/iov-one/vault/store"
)

// Names of the databases inside of the home directory. Plain and merkle
// state are kept apart so switching the backend never mixes formats.
const (
	dbName     = "vault"
	merkleName = "vault-merkle"
)

// state is the database backing an opened wallet.
type state struct {
	close  func()
	merkle *store.MerkleStore
}

// Close releases the database.
func (s *state) Close() {
	s.close()
}

// Version returns the version and the root hash of the state. Both are zero
// unless the state is kept in a merkle tree.
func (s *state) Version() (int64, []byte) {
	if s.merkle == nil {
		return 0, nil
	}
	return s.merkle.Version(), s.merkle.Hash()
}

// openWallet opens the wallet stored in the configured home directory. The
// returned state must be closed to release the database.
func openWallet() (*app.Wallet, *state, error) {
	conf, err := LoadConfig()
	if err != nil {
		return nil, nil, err
	}
	logger, err := conf.Logger()
	if err != nil {
		return nil, nil, err
	}
	if err := os.MkdirAll(conf.Home, 0700); err != nil {
		return nil, nil, fmt.Errorf("cannot create home directory: %s", err)
	}

	var (
		db vault.CacheableKVStore
		st state
	)
	if conf.Merkle {
		m, err := store.OpenMerkleStore(merkleName, conf.Home)
		if err != nil {
			return nil, nil, err
		}
		db, st.close, st.merkle = m, m.Close, m
	} else {
		c, err := store.OpenCommitStore(dbName, conf.Home)
		if err != nil {
			return nil, nil, err
		}
		db, st.close = c, c.Close
	}

	logger = logger.With("module", "vaultd")
	w := app.NewWallet(db, notify.NewLogNotifier(logger)).WithLogger(logger)
	return w, &st, nil
}

// addressFlag is a flag.Value of an address, either 0x hex or bech32
// encoded.
type addressFlag struct {
	addr common.Address
	set  bool
}

var _ flag.Value = (*addressFlag)(nil)

func (a *addressFlag) String() string {
	if !a.set {
		return ""
	}
	return a.addr.Hex()
}

func (a *addressFlag) Set(raw string) error {
	addr, err := parseAddress(raw)
	if err != nil {
		return err
	}
	a.addr = addr
	a.set = true
	return nil
}

// parseAddress accepts both 0x hex and bech32 representation of an address.
// The human readable part of a bech32 address is not checked.
func parseAddress(raw string) (common.Address, error) {
	if common.IsHexAddress(raw) {
		return common.HexToAddress(raw), nil
	}
	_, payload, err := bech32.Decode(raw)
	if err != nil {
		return common.Address{}, fmt.Errorf("invalid address %q", raw)
	}
	payload, err = bech32.ConvertBits(payload, 5, 8, false)
	if err != nil {
		return common.Address{}, fmt.Errorf("invalid address %q: %s", raw, err)
	}
	if len(payload) != common.AddressLength {
		return common.Address{}, fmt.Errorf("invalid address %q: want %d bytes, got %d", raw, common.AddressLength, len(payload))
	}
	return common.BytesToAddress(payload), nil
}

// formatAddress returns the bech32 representation of an address using given
// human readable part, or the checksummed hex if hrp is empty.
func formatAddress(hrp string, addr common.Address) (string, error) {
	if hrp == "" {
		return addr.Hex(), nil
	}
	payload, err := bech32.ConvertBits(addr.Bytes(), 8, 5, true)
	if err != nil {
		return "", fmt.Errorf("convert bits: %s", err)
	}
	raw, err := bech32.Encode(hrp, payload)
	if err != nil {
		return "", fmt.Errorf("bech32 encode: %s", err)
	}
	return raw, nil
}

// flAddress returns an address flag. The value must be checked with
// required before use.
func flAddress(fl *flag.FlagSet, name, usage string) *addressFlag {
	var a addressFlag
	fl.Var(&a, name, usage)
	return &a
}

func (a *addressFlag) required(name string) (common.Address, error) {
	if !a.set {
		return common.Address{}, fmt.Errorf("-%s is required", name)
	}
	return a.addr, nil
}

// amountFlag is a flag.Value of an amount written in decimal or 0x hex.
type amountFlag struct {
	amount *big.Int
}

var _ flag.Value = (*amountFlag)(nil)

func (a *amountFlag) String() string {
	if a.amount == nil {
		return ""
	}
	return a.amount.String()
}

func (a *amountFlag) Set(raw string) error {
	n, err := coin.Parse(raw)
	if err != nil {
		return err
	}
	a.amount = n
	return nil
}

// flAmount returns an amount flag. The value must be checked with required
// before use.
func flAmount(fl *flag.FlagSet, name, usage string) *amountFlag {
	var a amountFlag
	fl.Var(&a, name, usage)
	return &a
}

func (a *amountFlag) required(name string) (*big.Int, error) {
	if a.amount == nil {
		return nil, fmt.Errorf("-%s is required", name)
	}
	return a.amount, nil
}
