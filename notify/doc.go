/*
Package notify delivers the events produced by handlers to observers.

Events are only handed to a Notifier once the state changes that produced
them are written. A Notifier never changes the outcome of a command; a
failed delivery is reported to the caller, who usually just logs it.
*/
package notify
