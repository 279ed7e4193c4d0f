package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"io/ioutil"

	"github.com/iov-one/vault"
)

func cmdInit(input io.Reader, output io.Writer, args []string) error {
	fl := flag.NewFlagSet("", flag.ExitOnError)
	fl.Usage = func() {
		fmt.Fprint(flag.CommandLine.Output(), `
Initialize the wallet from a genesis file. The genesis declares the owner set
and the initial account balances, for example:

  {
    "multisig": {"owners": ["0x...", "0x...", "0x..."], "threshold": 2},
    "cash": [{"address": "0x...", "balance": "9984703199999"}]
  }

A wallet can be initialized only once.
`)
		fl.PrintDefaults()
	}
	var (
		genesisFl = fl.String("genesis", "-", "Path to the genesis file. Use - to read from stdin.")
	)
	fl.Parse(args)

	var raw []byte
	var err error
	if *genesisFl == "-" {
		raw, err = ioutil.ReadAll(input)
	} else {
		raw, err = ioutil.ReadFile(*genesisFl)
	}
	if err != nil {
		return fmt.Errorf("cannot read genesis: %s", err)
	}
	var opts vault.Options
	if err := json.Unmarshal(raw, &opts); err != nil {
		return fmt.Errorf("cannot decode genesis: %s", err)
	}

	w, st, err := openWallet()
	if err != nil {
		return err
	}
	defer st.Close()

	if err := w.InitGenesis(opts); err != nil {
		return err
	}
	reg, err := w.Registry()
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(output, reg.Address().Hex())
	return err
}

func cmdDeposit(input io.Reader, output io.Writer, args []string) error {
	fl := flag.NewFlagSet("", flag.ExitOnError)
	fl.Usage = func() {
		fmt.Fprint(flag.CommandLine.Output(), `
Move funds from the caller account into the wallet. Anyone can deposit.
`)
		fl.PrintDefaults()
	}
	var (
		asFl     = flAddress(fl, "as", "Address of the caller.")
		amountFl = flAmount(fl, "amount", "Amount to deposit, decimal or 0x prefixed hex.")
	)
	fl.Parse(args)

	caller, err := asFl.required("as")
	if err != nil {
		return err
	}
	amount, err := amountFl.required("amount")
	if err != nil {
		return err
	}

	w, st, err := openWallet()
	if err != nil {
		return err
	}
	defer st.Close()

	return w.Deposit(context.Background(), caller, amount)
}

func cmdPropose(input io.Reader, output io.Writer, args []string) error {
	fl := flag.NewFlagSet("", flag.ExitOnError)
	fl.Usage = func() {
		fmt.Fprint(flag.CommandLine.Output(), `
Propose a payout from the wallet. The caller must be an owner and becomes the
first signer. The ID of the new transaction is printed.
`)
		fl.PrintDefaults()
	}
	var (
		asFl     = flAddress(fl, "as", "Address of the proposing owner.")
		toFl     = flAddress(fl, "to", "Address of the recipient.")
		amountFl = flAmount(fl, "amount", "Amount to pay out, decimal or 0x prefixed hex.")
	)
	fl.Parse(args)

	caller, err := asFl.required("as")
	if err != nil {
		return err
	}
	recipient, err := toFl.required("to")
	if err != nil {
		return err
	}
	amount, err := amountFl.required("amount")
	if err != nil {
		return err
	}

	w, st, err := openWallet()
	if err != nil {
		return err
	}
	defer st.Close()

	id, err := w.Propose(context.Background(), caller, recipient, amount)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(output, id)
	return err
}

func cmdSign(input io.Reader, output io.Writer, args []string) error {
	fl := flag.NewFlagSet("", flag.ExitOnError)
	fl.Usage = func() {
		fmt.Fprint(flag.CommandLine.Output(), `
Approve a pending transaction. The transaction is paid out if this signature
reaches the threshold and the wallet holds enough funds.
`)
		fl.PrintDefaults()
	}
	var (
		asFl = flAddress(fl, "as", "Address of the signing owner.")
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

	paid, err := w.Sign(context.Background(), caller, *idFl)
	if err != nil {
		return err
	}
	if paid {
		_, err = fmt.Fprintln(output, "confirmed")
	} else {
		_, err = fmt.Fprintln(output, "signed")
	}
	return err
}
