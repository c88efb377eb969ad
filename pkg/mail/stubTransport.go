package mail

import (
	"context"
	"sync"
)

// StubTransport records sent mail in memory for tests.
type StubTransport struct {
	mu   sync.Mutex
	Sent []*Mail
	Err  error
}

func NewStubTransport() *StubTransport {
	return &StubTransport{}
}

func (s *StubTransport) SendMail(_ context.Context, mail *Mail) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return s.Err
	}
	s.Sent = append(s.Sent, mail)
	return nil
}

func (s *StubTransport) SenderAddress() string {
	return "stub-sender@mailchain.com"
}

// SentMail returns a snapshot of everything delivered so far.
func (s *StubTransport) SentMail() []*Mail {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]*Mail, len(s.Sent))
	copy(out, s.Sent)
	return out
}
