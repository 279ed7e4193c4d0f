package notify

import (
	"context"
	"testing"
	"time"

	"github.com/iov-one/vault"
	"github.com/iov-one/vault/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	tmpubsub "github.com/tendermint/tendermint/libs/pubsub"
)

func TestPubSub(t *testing.T) {
	server := tmpubsub.NewServer()
	require.NoError(t, server.Start())
	defer server.Stop()

	ctx := context.Background()
	deposits, err := server.Subscribe(ctx, "deposits", QueryForEvent("Deposit"), 10)
	require.NoError(t, err)
	confirmed, err := server.Subscribe(ctx, "confirmed", QueryForEvent("TransactionConfirmed"), 10)
	require.NoError(t, err)

	deposit := vault.NewEvent("Deposit", "contributor", "0xb0b", "value", "9984703199999")
	proposal := vault.NewEvent("TransactionProposal", "transaction_id", "0")
	confirmation := vault.NewEvent("TransactionConfirmed", "transaction_id", "0")

	n := NewPubSub(server)
	require.NoError(t, n.Notify(ctx, []vault.Event{deposit, proposal, confirmation}))

	select {
	case msg := <-deposits.Out():
		assert.Equal(t, deposit, msg.Data())
		assert.Equal(t, "9984703199999", msg.Tags()["Deposit.value"])
	case <-time.After(time.Second):
		t.Fatal("deposit not delivered")
	}

	select {
	case msg := <-confirmed.Out():
		assert.Equal(t, confirmation, msg.Data())
	case <-time.After(time.Second):
		t.Fatal("confirmation not delivered")
	}

	select {
	case msg := <-deposits.Out():
		t.Fatalf("unexpected message %v", msg.Data())
	case <-time.After(50 * time.Millisecond):
	}
}

func TestTags(t *testing.T) {
	e := vault.NewEvent("Deposit", "contributor", "0xb0b", "value", "1")
	assert.Equal(t, map[string]string{
		"vault.event":         "Deposit",
		"Deposit.contributor": "0xb0b",
		"Deposit.value":       "1",
	}, Tags(e))
}

func TestPubSubNeverBlocks(t *testing.T) {
	e := vault.NewEvent("Deposit", "contributor", "0xb0b", "value", "1")

	cases := map[string]func(t *testing.T) *tmpubsub.Server{
		"server never started": func(t *testing.T) *tmpubsub.Server {
			return tmpubsub.NewServer()
		},
		"server stopped": func(t *testing.T) *tmpubsub.Server {
			s := tmpubsub.NewServer()
			require.NoError(t, s.Start())
			require.NoError(t, s.Stop())
			return s
		},
	}

	for testName, newServer := range cases {
		t.Run(testName, func(t *testing.T) {
			n := NewPubSub(newServer(t)).WithTimeout(50 * time.Millisecond)

			done := make(chan error, 1)
			go func() { done <- n.Notify(context.Background(), []vault.Event{e}) }()

			select {
			case err := <-done:
				assert.True(t, errors.ErrState.Is(err), "got %+v", err)
			case <-time.After(time.Second):
				t.Fatal("notify blocked")
			}
		})
	}
}
