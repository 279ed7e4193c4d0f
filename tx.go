package vault

import (
	"reflect"

	"github.com/iov-one/vault/errors"
)

// MsgTx is the simplest transaction, carrying a single message. The caller
// is authenticated by the transport, so nothing else needs to be attached.
type MsgTx struct {
	Msg Msg
}

var _ Tx = MsgTx{}

// GetMsg returns the wrapped message.
func (tx MsgTx) GetMsg() (Msg, error) {
	if tx.Msg == nil {
		return nil, errors.Wrap(errors.ErrEmpty, "no message")
	}
	return tx.Msg, nil
}

// GetPath returns the path of the message, or (missing) if no message
func GetPath(tx Tx) string {
	msg, err := tx.GetMsg()
	if err == nil && msg != nil {
		return msg.Path()
	}
	return "(missing)"
}

// LoadMsg extracts the message represented by given transaction into given
// destination. Before returning message validation method is called.
func LoadMsg(tx Tx, destination interface{}) error {
	msg, err := tx.GetMsg()
	if err != nil {
		return errors.Wrap(err, "cannot get transaction message")
	}
	if err := msg.Validate(); err != nil {
		return errors.Wrap(err, "validation")
	}

	// Below is a reflection black magic to set value of the message into
	// the destination. It works the same way as json.Unmarshal does.

	res := reflect.ValueOf(msg)
	if res.Kind() == reflect.Ptr {
		res = res.Elem()
	}

	dest := reflect.ValueOf(destination)
	if dest.Kind() != reflect.Ptr || dest.IsNil() {
		return errors.Wrapf(errors.ErrType, "destination must be a pointer, got %T", destination)
	}
	if dest.Elem().Type() != res.Type() {
		return errors.Wrapf(errors.ErrType, "want %T message, got %T", destination, msg)
	}
	dest.Elem().Set(res)
	return nil
}
