/*
Package gconf implements a configuration store intended to be used as a
global, in-database configuration.

Each extension owns a single configuration record, written once (usually
from the genesis file) and read on every call that needs it. Records are
validated before they are written, so a loaded configuration is always a
valid one.
*/
package gconf
