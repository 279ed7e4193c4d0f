/*
Package app wires the extensions into a long lived wallet service.

Wallet processes one command at a time. Every command runs on a fresh
cache wrap of the committed store: it is written only if the handler
succeeds and discarded otherwise, so a failed command never leaves partial
state behind. Events produced by a command are delivered to the notifier
after its state is written.
*/
package app
