package gateway

import (
	"context"
	"sync"

	"github.com/oklog/ulid/v2"
)

// Gateway names.
const (
	GatewayConsole   = "console"
	GatewayHTTP      = "http"
	GatewayWebSocket = "websocket"
)

// Reply is one answer sent back to a message.
type Reply struct {
	Text  string `json:"text"`
	Error bool   `json:"error,omitempty"`
}

// SendFunc delivers a reply to wherever the message came from.
type SendFunc func(ctx context.Context, reply Reply) error

// Message is a chat message received by a gateway. It is the context value
// commands receive, and replies through the gateway that created it.
type Message struct {
	ID      string `json:"id"`
	Gateway string `json:"gateway"`
	Channel string `json:"channel,omitempty"`
	Author  string `json:"author,omitempty"`
	Bot     bool   `json:"bot,omitempty"`
	Text    string `json:"text"`

	send    SendFunc
	mu      sync.Mutex
	replies []Reply
}

// NewMessage creates a message with a fresh ULID. send may be nil, in which
// case replies are only recorded.
func NewMessage(gateway, text string, send SendFunc) *Message {
	return &Message{
		ID:      ulid.Make().String(),
		Gateway: gateway,
		Text:    text,
		send:    send,
	}
}

// Reply sends text back to the message's origin.
func (m *Message) Reply(ctx context.Context, text string) error {
	return m.deliver(ctx, Reply{Text: text})
}

// ReplyError sends an error back to the message's origin.
func (m *Message) ReplyError(ctx context.Context, err error) error {
	return m.deliver(ctx, Reply{Text: err.Error(), Error: true})
}

func (m *Message) deliver(ctx context.Context, r Reply) error {
	m.mu.Lock()
	m.replies = append(m.replies, r)
	m.mu.Unlock()

	if m.send == nil {
		return nil
	}
	return m.send(ctx, r)
}

// Replies returns every reply sent so far.
func (m *Message) Replies() []Reply {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]Reply, len(m.replies))
	copy(out, m.replies)
	return out
}
