package notify

import (
	"sync"

	"github.com/iov-one/vault"
	"github.com/iov-one/vault/errors"
	"github.com/tendermint/tendermint/libs/log"
)

// Notifier delivers events to observers.
type Notifier interface {
	Notify(ctx vault.Context, events []vault.Event) error
}

// Nop drops all events.
type Nop struct{}

var _ Notifier = Nop{}

// Notify does nothing.
func (Nop) Notify(vault.Context, []vault.Event) error { return nil }

// LogNotifier writes every event to a logger.
type LogNotifier struct {
	logger log.Logger
}

var _ Notifier = (*LogNotifier)(nil)

// NewLogNotifier returns a notifier writing to given logger. The context
// logger is used if nil.
func NewLogNotifier(logger log.Logger) *LogNotifier {
	return &LogNotifier{logger: logger}
}

// Notify logs each event with its attributes.
func (n *LogNotifier) Notify(ctx vault.Context, events []vault.Event) error {
	logger := n.logger
	if logger == nil {
		logger = vault.GetLogger(ctx)
	}
	for _, e := range events {
		keyvals := make([]interface{}, 0, 2*len(e.Attributes))
		for _, k := range sortedKeys(e.Attributes) {
			keyvals = append(keyvals, k, e.Attributes[k])
		}
		logger.Info(e.Type, keyvals...)
	}
	return nil
}

// Recorder keeps all events in memory. It is safe for concurrent use.
type Recorder struct {
	mu     sync.Mutex
	events []vault.Event
}

var _ Notifier = (*Recorder)(nil)

// Notify appends events to the record.
func (r *Recorder) Notify(_ vault.Context, events []vault.Event) error {
	r.mu.Lock()
	r.events = append(r.events, events...)
	r.mu.Unlock()
	return nil
}

// Events returns a copy of all recorded events in delivery order.
func (r *Recorder) Events() []vault.Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := make([]vault.Event, len(r.events))
	copy(cp, r.events)
	return cp
}

// Reset drops all recorded events.
func (r *Recorder) Reset() {
	r.mu.Lock()
	r.events = nil
	r.mu.Unlock()
}

// Multi fans out events to many notifiers.
type Multi []Notifier

var _ Notifier = Multi(nil)

// Notify delivers events to every notifier, even if some of them fail. The
// first failure is returned.
func (m Multi) Notify(ctx vault.Context, events []vault.Event) error {
	var first error
	for i, n := range m {
		if err := n.Notify(ctx, events); err != nil && first == nil {
			first = errors.Wrapf(err, "notifier #%d", i)
		}
	}
	return first
}
