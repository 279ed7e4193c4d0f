package multisig

import (
	"encoding/binary"

	"github.com/ethereum/go-ethereum/common"
	"github.com/iov-one/vault"
	"github.com/iov-one/vault/errors"
	"github.com/iov-one/vault/gconf"
	"golang.org/x/crypto/sha3"
)

const (
	// MinOwners is the smallest owner set a wallet can be created with.
	MinOwners = 3
	// DefaultThreshold is used when the configuration does not declare
	// one. The proposer and one more owner must approve.
	DefaultThreshold uint32 = 2

	// configKey is the gconf package name the owner set is stored under.
	configKey = "multisig"
)

// Configuration is the persisted form of the owner set.
type Configuration struct {
	Owners    []common.Address
	Threshold uint32
	Address   common.Address
}

var _ gconf.Configuration = (*Configuration)(nil)

// Validate runs the same checks as NewOwnerRegistry and ensures the stored
// wallet address matches the owner set.
func (c *Configuration) Validate() error {
	reg, err := NewOwnerRegistry(c.Owners, c.Threshold)
	if err != nil {
		return err
	}
	if reg.Address() != c.Address {
		return errors.Wrapf(ErrInvalidConfiguration, "wallet address %s does not match owners", c.Address.Hex())
	}
	return nil
}

// OwnerRegistry is the fixed set of identities allowed to propose and sign
// transactions. It is immutable once created.
type OwnerRegistry struct {
	owners    []common.Address
	index     map[common.Address]struct{}
	threshold uint32
	address   common.Address
}

// NewOwnerRegistry returns a registry of given owners. At least MinOwners
// distinct, non zero addresses are required. A zero threshold means
// DefaultThreshold, any other value must be between 2 and the number of
// owners.
func NewOwnerRegistry(owners []common.Address, threshold uint32) (*OwnerRegistry, error) {
	if len(owners) < MinOwners {
		return nil, errors.Wrapf(ErrInvalidConfiguration,
			"at least %d owners required, got %d", MinOwners, len(owners))
	}
	if threshold == 0 {
		threshold = DefaultThreshold
	}
	if threshold < 2 || threshold > uint32(len(owners)) {
		return nil, errors.Wrapf(ErrInvalidConfiguration,
			"threshold %d not in [2, %d]", threshold, len(owners))
	}

	index := make(map[common.Address]struct{}, len(owners))
	for i, o := range owners {
		if o == (common.Address{}) {
			return nil, errors.Wrapf(ErrInvalidConfiguration, "owner #%d: zero address", i)
		}
		if _, ok := index[o]; ok {
			return nil, errors.Wrapf(ErrInvalidConfiguration, "owner #%d: duplicate %s", i, o.Hex())
		}
		index[o] = struct{}{}
	}

	cp := make([]common.Address, len(owners))
	copy(cp, owners)
	return &OwnerRegistry{
		owners:    cp,
		index:     index,
		threshold: threshold,
		address:   walletAddress(cp, threshold),
	}, nil
}

// IsOwner returns true if given address belongs to the owner set.
func (r *OwnerRegistry) IsOwner(addr common.Address) bool {
	_, ok := r.index[addr]
	return ok
}

// Owners returns a copy of the owner set, in construction order.
func (r *OwnerRegistry) Owners() []common.Address {
	cp := make([]common.Address, len(r.owners))
	copy(cp, r.owners)
	return cp
}

// Threshold is the number of signers a transaction needs to be paid out.
func (r *OwnerRegistry) Threshold() uint32 {
	return r.threshold
}

// Address is the account holding the wallet funds.
func (r *OwnerRegistry) Address() common.Address {
	return r.address
}

// Configuration returns the persisted form of this registry.
func (r *OwnerRegistry) Configuration() *Configuration {
	return &Configuration{
		Owners:    r.Owners(),
		Threshold: r.threshold,
		Address:   r.address,
	}
}

// walletAddress derives the wallet account from the owner set. Different
// owner sets or thresholds never share an account.
func walletAddress(owners []common.Address, threshold uint32) common.Address {
	h := sha3.NewLegacyKeccak256()
	_, _ = h.Write([]byte("multisig/wallet"))
	var th [4]byte
	binary.BigEndian.PutUint32(th[:], threshold)
	_, _ = h.Write(th[:])
	for _, o := range owners {
		_, _ = h.Write(o.Bytes())
	}
	return common.BytesToAddress(h.Sum(nil))
}

// SaveRegistry persists the owner set. The owner set can be saved only once.
func SaveRegistry(db vault.KVStore, r *OwnerRegistry) error {
	switch ok, err := gconf.Exists(db, configKey); {
	case err != nil:
		return errors.Wrap(err, "cannot check configuration")
	case ok:
		return errors.Wrap(errors.ErrDuplicate, "owner set already initialized")
	}
	return gconf.Save(db, configKey, r.Configuration())
}

// LoadRegistry returns the persisted owner set. It fails with ErrNotFound if
// the wallet was never initialized.
func LoadRegistry(db vault.ReadOnlyKVStore) (*OwnerRegistry, error) {
	var conf Configuration
	if err := gconf.Load(db, configKey, &conf); err != nil {
		return nil, errors.Wrap(err, "owner set")
	}
	return NewOwnerRegistry(conf.Owners, conf.Threshold)
}
