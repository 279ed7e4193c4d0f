package vault

import (
	"encoding/json"
	"regexp"
)

// Msg is message for the blockchain to take an action
// (Make a state transition). It is just the request, and
// must be validated by the Handlers. All authentication
// information is in the wrapping Tx.
type Msg interface {
	// Path returns the path of the message, to be used for routing.
	Path() string

	// Validate performs a sanity checks on this message. It returns an
	// error if at least one of the values is not valid. It never touches
	// the state.
	Validate() error
}

// Tx represent the data sent from the user to the chain.
// It contains the actual message. Authentication of the
// caller is done by the transport and carried in the context.
type Tx interface {
	// GetMsg returns the action we wish to communicate
	GetMsg() (Msg, error)
}

// Handler is a core engine that can process a few specific messages
// This could represent "propose a transfer", or "sign a proposal"
type Handler interface {
	Checker
	Deliverer
}

// Checker is a subset of Handler to verify the validity of a transaction.
// It is its own interface to allow better type controls in the next
// arguments in Decorator
type Checker interface {
	Check(ctx Context, store KVStore, tx Tx) (*CheckResult, error)
}

// Deliverer is a subset of Handler to execute a transaction.
// It is its own interface to allow better type controls in the next
// arguments in Decorator
type Deliverer interface {
	Deliver(ctx Context, store KVStore, tx Tx) (*DeliverResult, error)
}

// CheckResult captures any non-error info from running a message
// against the state without applying it.
type CheckResult struct {
	// Log is a human readable description of what would happen.
	Log string
}

// DeliverResult captures any non-error info from executing a message.
type DeliverResult struct {
	// Data is a machine-parseable return value, like the id of a
	// created entity.
	Data []byte
	// Log is human-readable informational string
	Log string
	// Events are published by the caller only once the state changes
	// that produced them are written.
	Events []Event
}

// Event is a notification about a state transition. Attributes are flat
// string pairs so that any transport can index them.
type Event struct {
	Type       string
	Attributes map[string]string
}

// NewEvent returns an event of given type. Attributes are consumed in
// key, value pairs.
func NewEvent(typ string, kv ...string) Event {
	attrs := make(map[string]string, len(kv)/2)
	for i := 0; i+1 < len(kv); i += 2 {
		attrs[kv[i]] = kv[i+1]
	}
	return Event{Type: typ, Attributes: attrs}
}

// Registry is an interface to register your handler,
// the setup side of a Router
type Registry interface {
	Handle(path string, h Handler)
}

// IsPath is the RegExp to ensure valid message paths.
var IsPath = regexp.MustCompile(`^[a-z_]+/[a-z_]+$`).MatchString

// Options are the app options
// Each extension can look up it's key and parse the json as desired
type Options map[string]json.RawMessage

// ReadOptions reads the values stored under a given key,
// and parses the json into the given obj.
// Returns an error if it cannot parse.
// Noop and no error if key is missing
func (o Options) ReadOptions(key string, obj interface{}) error {
	msg := o[key]
	if len(msg) == 0 {
		return nil
	}
	return json.Unmarshal(msg, obj)
}

// Initializer implementations are used to initialize
// extensions from genesis file contents
type Initializer interface {
	FromGenesis(Options, KVStore) error
}

// ChainInitializers lets you initialize many extensions at once
type ChainInitializers []Initializer

var _ Initializer = ChainInitializers(nil)

// FromGenesis passes the options to every initializer in order. The first
// failure stops the chain.
func (c ChainInitializers) FromGenesis(opts Options, kv KVStore) error {
	for _, i := range c {
		if err := i.FromGenesis(opts, kv); err != nil {
			return err
		}
	}
	return nil
}
