// Package dummymail records messages instead of sending them; tests assert
// on SentMessages.
package dummymail

import (
	"sync"

	"github.com/dnhuan/rollcall/core"
)

type service struct {
	mu   sync.Mutex
	sent []core.EmailMessage
}

var _ core.EmailService = (*service)(nil)

func NewService() *service {
	return &service{}
}

// SendMessages records sendable messages synchronously.
func (svc *service) SendMessages(messages ...*core.EmailMessage) {
	svc.mu.Lock()
	defer svc.mu.Unlock()

	for _, msg := range messages {
		if msg.HasRecipients() && msg.HasContent() {
			svc.sent = append(svc.sent, *msg)
		}
	}
}

func (svc *service) SentMessages() []core.EmailMessage {
	svc.mu.Lock()
	defer svc.mu.Unlock()

	sent := make([]core.EmailMessage, len(svc.sent))
	copy(sent, svc.sent)
	return sent
}

func (svc *service) Reset() {
	svc.mu.Lock()
	defer svc.mu.Unlock()

	svc.sent = nil
}
