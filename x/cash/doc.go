/*
Package cash holds the balances of all accounts.

It is the funds-holding collaborator of the wallet: the multisig extension
never keeps an amount itself, it asks the Controller for the balance of the
wallet account and instructs it to transfer funds out once a transaction is
approved. Initial balances are loaded from the genesis file.
*/
package cash
