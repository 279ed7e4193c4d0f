/*
Package multisig implements a wallet shared by a fixed set of owners.

Funds deposited into the wallet can only leave it through a transaction
proposed by one owner and approved by enough other owners. The proposer
counts as the first signer. A transaction is paid out by the sign that
makes the number of signers reach the threshold, and only if the wallet
holds enough funds at that moment. Paid out transactions are final.

The OwnerRegistry is created once, from the genesis file, and never
changes. It is stored as a configuration record. The TransactionLedger
keeps every proposal under a dense sequence starting at zero. Proposals
are never deleted.

Funds are held by an external collaborator implementing the Funds
interface, usually x/cash.
*/
package multisig
