/*
Command vaultd operates a threshold-approval wallet stored in a local
leveldb database.

The caller of a command is given with the -as flag, as a 0x hex or bech32
address. vaultd trusts its operator to be authenticated already and does
not verify keys.

With VAULT_MERKLE set the state is kept in a versioned merkle tree instead,
and the owners command prints the state version and root hash.
*/
package main

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/iov-one/vault"
	"github.com/iov-one/vault/errors"
)

// commands is a register of all available commands that can be executed by
// this program. The name is used to match with the first argument given.
//
// A command function is given stdin, stdout and the command line arguments
// except the program name and the command name. It is the responsibility of
// the command function to parse the arguments using the flag package. Each
// command opens the database, executes a single operation and closes it.
var commands = map[string]func(input io.Reader, output io.Writer, args []string) error{
	"account":     cmdAccount,
	"balance":     cmdBalance,
	"deposit":     cmdDeposit,
	"init":        cmdInit,
	"owners":      cmdOwners,
	"propose":     cmdPropose,
	"sign":        cmdSign,
	"signatures":  cmdSignatures,
	"transaction": cmdTransaction,
	"version":     cmdVersion,
}

func main() {
	if len(os.Args) == 1 || os.Args[1] == "-help" || os.Args[1] == "help" {
		fmt.Fprintf(os.Stderr, "%s operates a multi-owner threshold-approval wallet.\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Usage: %s <command> [<flags>]\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "\nAvailable commands are:\n\t%s\n", strings.Join(availableCmds(), "\n\t"))
		fmt.Fprintf(os.Stderr, "Run '%s <command> -help' to learn more about each command.\n\n", os.Args[0])
		var c Config
		c.OutputUsage(os.Stderr)
		os.Exit(2)
	}
	run, ok := commands[os.Args[1]]
	if !ok {
		fmt.Fprintf(os.Stderr, "Unknown command %q\n", os.Args[1])
		fmt.Fprintf(os.Stderr, "\nAvailable commands are:\n\t%s\n", strings.Join(availableCmds(), "\n\t"))
		os.Exit(2)
	}

	// Skip two first arguments. Second argument is the command name that
	// we just consumed.
	if err := run(os.Stdin, os.Stdout, os.Args[2:]); err != nil {
		var debug bool
		if conf, cerr := LoadConfig(); cerr == nil {
			debug = conf.Debug
		}
		code, log := errors.Report(err, debug)
		fmt.Fprintf(os.Stderr, "error %d: %s\n", code, log)
		os.Exit(1)
	}
}

func availableCmds() []string {
	available := make([]string, 0, len(commands))
	for name := range commands {
		available = append(available, name)
	}
	sort.Strings(available)
	return available
}

func cmdVersion(in io.Reader, out io.Writer, args []string) error {
	_, err := fmt.Fprintln(out, vault.Version())
	return err
}
