package slack

import (
	"context"
	"errors"
	"sync"
)

type NotifierStub struct {
	mu      sync.Mutex
	sent    []Message
	sendErr error
}

func NewNotifierStub() *NotifierStub {
	return &NotifierStub{}
}

func (n *NotifierStub) Send(ctx context.Context, message Message) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.sendErr != nil {
		return n.sendErr
	}
	n.sent = append(n.sent, message)
	return nil
}

func (n *NotifierStub) Sent() []Message {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]Message(nil), n.sent...)
}

func (n *NotifierStub) SetSendError(err error) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.sendErr = err
}

func (n *NotifierStub) Reset() {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.sent = nil
	n.sendErr = nil
}

var ErrNotifierTestError = errors.New("notifier test error")
