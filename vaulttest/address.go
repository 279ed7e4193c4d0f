package vaulttest

import (
	"encoding/binary"
	"sync/atomic"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"golang.org/x/crypto/sha3"
)

var addressSeq uint64

// NewAddress returns a new, unique and never zero address. Addresses are
// deterministic for a given call order.
func NewAddress() common.Address {
	var raw [8]byte
	binary.BigEndian.PutUint64(raw[:], atomic.AddUint64(&addressSeq, 1))
	h := sha3.NewLegacyKeccak256()
	_, _ = h.Write([]byte("vaulttest"))
	_, _ = h.Write(raw[:])
	return common.BytesToAddress(h.Sum(nil))
}

// ParseAddress decodes a 0x prefixed hex address, failing the test if it is
// malformed.
func ParseAddress(t testing.TB, hex string) common.Address {
	t.Helper()
	if !common.IsHexAddress(hex) {
		t.Fatalf("invalid address %q", hex)
	}
	return common.HexToAddress(hex)
}
