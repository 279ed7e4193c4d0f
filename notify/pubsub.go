package notify

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/iov-one/vault"
	"github.com/iov-one/vault/errors"
	tmpubsub "github.com/tendermint/tendermint/libs/pubsub"
	tmquery "github.com/tendermint/tendermint/libs/pubsub/query"
)

// EventTypeKey is the tag holding the event type of every published event.
// Attributes are published as "<type>.<attribute>" tags.
const EventTypeKey = "vault.event"

// DefaultPublishTimeout bounds the time spent publishing a single event.
const DefaultPublishTimeout = time.Second

// PubSub publishes events on a tendermint pubsub server, so that any
// number of subscribers can select them by query.
type PubSub struct {
	server  *tmpubsub.Server
	timeout time.Duration
}

var _ Notifier = (*PubSub)(nil)

// NewPubSub returns a notifier publishing on given server. The server must
// be started by the caller.
func NewPubSub(server *tmpubsub.Server) *PubSub {
	return &PubSub{server: server, timeout: DefaultPublishTimeout}
}

// WithTimeout changes the time a single publish may take.
func (p *PubSub) WithTimeout(d time.Duration) *PubSub {
	p.timeout = d
	return p
}

// Notify publishes each event as a separate message. The message data is
// the vault.Event itself. It fails instead of blocking when the server is
// not running or does not accept an event in time.
func (p *PubSub) Notify(ctx vault.Context, events []vault.Event) error {
	if !p.server.IsRunning() {
		return errors.Wrap(errors.ErrState, "pubsub server not running")
	}
	for _, e := range events {
		if err := p.publish(ctx, e); err != nil {
			return errors.Wrapf(errors.ErrState, "publish %s: %s", e.Type, err)
		}
	}
	return nil
}

func (p *PubSub) publish(ctx vault.Context, e vault.Event) error {
	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()
	return p.server.PublishWithTags(ctx, e, Tags(e))
}

// Tags returns the pubsub tags describing given event.
func Tags(e vault.Event) map[string]string {
	tags := make(map[string]string, len(e.Attributes)+1)
	tags[EventTypeKey] = e.Type
	for k, v := range e.Attributes {
		tags[e.Type+"."+k] = v
	}
	return tags
}

// QueryForEvent returns a query matching all events of given type.
func QueryForEvent(typ string) tmpubsub.Query {
	return tmquery.MustParse(fmt.Sprintf("%s = '%s'", EventTypeKey, typ))
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
