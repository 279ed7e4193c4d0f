package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/iov-one/vault/coin"
)

func cmdSignatures(input io.Reader, output io.Writer, args []string) error {
	fl := flag.NewFlagSet("", flag.ExitOnError)
	fl.Usage = func() {
		fmt.Fprint(flag.CommandLine.Output(), `
Print the owners that signed a transaction, one per line in signing order.
Only owners can see the signatures.
`)
		fl.PrintDefaults()
	}
	var (
		asFl = flAddress(fl, "as", "Address of the caller.")
		idFl = fl.Uint64("id", 0, "ID of the transaction.")
	)
	fl.Parse(args)

	caller, err := asFl.required("as")
	if err != nil {
		return err
	}

	w, st, err := openWallet()
	if err != nil {
		return err
	}
	defer st.Close()

	sigs, err := w.Signatures(caller, *idFl)
	if err != nil {
		return err
	}
	for _, s := range sigs {
		if _, err := fmt.Fprintln(output, s.Hex()); err != nil {
			return err
		}
	}
	return nil
}

func cmdBalance(input io.Reader, output io.Writer, args []string) error {
	fl := flag.NewFlagSet("", flag.ExitOnError)
	fl.Usage = func() {
		fmt.Fprint(flag.CommandLine.Output(), `
Print the funds held by the wallet. Only owners can see the balance.
`)
		fl.PrintDefaults()
	}
	var (
		asFl       = flAddress(fl, "as", "Address of the caller.")
		decimalsFl = fl.Int("decimals", 0, "Number of decimals of a whole unit. Zero prints base units.")
	)
	fl.Parse(args)

	caller, err := asFl.required("as")
	if err != nil {
		return err
	}

	w, st, err := openWallet()
	if err != nil {
		return err
	}
	defer st.Close()

	balance, err := w.Balance(caller)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(output, coin.Format(balance, int32(*decimalsFl)))
	return err
}

func cmdAccount(input io.Reader, output io.Writer, args []string) error {
	fl := flag.NewFlagSet("", flag.ExitOnError)
	fl.Usage = func() {
		fmt.Fprint(flag.CommandLine.Output(), `
Print the funds held by any account.
`)
		fl.PrintDefaults()
	}
	var (
		addressFl  = flAddress(fl, "address", "Address of the account.")
		decimalsFl = fl.Int("decimals", 0, "Number of decimals of a whole unit. Zero prints base units.")
	)
	fl.Parse(args)

	addr, err := addressFl.required("address")
	if err != nil {
		return err
	}

	w, st, err := openWallet()
	if err != nil {
		return err
	}
	defer st.Close()

	balance, err := w.AccountBalance(addr)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(output, coin.Format(balance, int32(*decimalsFl)))
	return err
}

// transactionView is the JSON representation of a transaction.
type transactionView struct {
	ID        uint64           `json:"id"`
	Recipient common.Address   `json:"recipient"`
	Amount    string           `json:"amount"`
	Finalized bool             `json:"finalized"`
	Signers   []common.Address `json:"signers"`
}

func cmdTransaction(input io.Reader, output io.Writer, args []string) error {
	fl := flag.NewFlagSet("", flag.ExitOnError)
	fl.Usage = func() {
		fmt.Fprint(flag.CommandLine.Output(), `
Print a transaction as JSON.
`)
		fl.PrintDefaults()
	}
	var (
		idFl = fl.Uint64("id", 0, "ID of the transaction.")
	)
	fl.Parse(args)

	w, st, err := openWallet()
	if err != nil {
		return err
	}
	defer st.Close()

	t, err := w.Transaction(*idFl)
	if err != nil {
		return err
	}
	pretty, err := json.MarshalIndent(transactionView{
		ID:        *idFl,
		Recipient: t.Recipient,
		Amount:    t.Amount.String(),
		Finalized: t.Finalized,
		Signers:   t.Signers,
	}, "", "\t")
	if err != nil {
		return fmt.Errorf("cannot JSON serialize: %s", err)
	}
	_, err = fmt.Fprintln(output, string(pretty))
	return err
}

// ownersView is the JSON representation of the owner set.
type ownersView struct {
	Wallet       string        `json:"wallet"`
	Threshold    uint32        `json:"threshold"`
	Owners       []string      `json:"owners"`
	Proposals    uint64        `json:"proposals"`
	StateVersion int64         `json:"state_version,omitempty"`
	StateHash    hexutil.Bytes `json:"state_hash,omitempty"`
}

func cmdOwners(input io.Reader, output io.Writer, args []string) error {
	fl := flag.NewFlagSet("", flag.ExitOnError)
	fl.Usage = func() {
		fmt.Fprint(flag.CommandLine.Output(), `
Print the wallet owner set, its threshold and address as JSON. When the
state is kept in a merkle tree, its version and root hash are printed too.
`)
		fl.PrintDefaults()
	}
	var (
		hrpFl = fl.String("bech32", "", "Print addresses bech32 encoded with given human readable part.")
	)
	fl.Parse(args)

	w, st, err := openWallet()
	if err != nil {
		return err
	}
	defer st.Close()

	reg, err := w.Registry()
	if err != nil {
		return err
	}
	n, err := w.Count()
	if err != nil {
		return err
	}
	view := ownersView{
		Threshold: reg.Threshold(),
		Proposals: n,
	}
	view.StateVersion, view.StateHash = st.Version()
	if view.Wallet, err = formatAddress(*hrpFl, reg.Address()); err != nil {
		return err
	}
	for _, o := range reg.Owners() {
		s, err := formatAddress(*hrpFl, o)
		if err != nil {
			return err
		}
		view.Owners = append(view.Owners, s)
	}
	pretty, err := json.MarshalIndent(view, "", "\t")
	if err != nil {
		return fmt.Errorf("cannot JSON serialize: %s", err)
	}
	_, err = fmt.Fprintln(output, string(pretty))
	return err
}
