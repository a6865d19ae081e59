package gateway

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"

	"github.com/gorilla/websocket"

	"github.com/pikachuaaaa/RPGBot/internal/logging"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// Frame types sent over /ws.
const (
	FrameReply  = "reply"
	FrameResult = "result"
	FrameError  = "error"
)

// Frame is a server-to-client WebSocket message.
type Frame struct {
	Type      string  `json:"type"`
	MessageID string  `json:"messageID,omitempty"`
	Text      string  `json:"text,omitempty"`
	Error     bool    `json:"error,omitempty"`
	Result    *Result `json:"result,omitempty"`
}

// wsConn serializes writes, which gorilla connections do not allow
// concurrently.
type wsConn struct {
	conn *websocket.Conn
	mu   sync.Mutex
}

func (c *wsConn) writeJSON(v any) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.conn.WriteJSON(v)
}

// chatSocket treats every MessageRequest frame as a chat message. Replies are
// streamed as they are sent, followed by a result frame.
func (s *Server) chatSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		logging.Warn().Err(err).Msg("websocket upgrade failed")
		return
	}
	defer conn.Close()

	ws := &wsConn{conn: conn}
	ctx := r.Context()

	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				logging.Debug().Err(err).Msg("websocket closed")
			}
			return
		}

		var req MessageRequest
		if err := json.Unmarshal(data, &req); err != nil {
			if err := ws.writeJSON(Frame{Type: FrameError, Text: "invalid message frame"}); err != nil {
				return
			}
			continue
		}

		var msg *Message
		msg = req.message(GatewayWebSocket, func(_ context.Context, reply Reply) error {
			return ws.writeJSON(Frame{
				Type:      FrameReply,
				MessageID: msg.ID,
				Text:      reply.Text,
				Error:     reply.Error,
			})
		})

		res := s.dispatcher.Dispatch(ctx, msg)
		if err := ws.writeJSON(Frame{Type: FrameResult, MessageID: msg.ID, Result: &res}); err != nil {
			logging.Debug().Err(err).Msg("websocket write failed")
			return
		}
	}
}

// eventSocket streams every bus event to the client as JSON.
func (s *Server) eventSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		logging.Warn().Err(err).Msg("websocket upgrade failed")
		return
	}
	defer conn.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	stream, err := s.bus.Stream(ctx)
	if err != nil {
		_ = conn.WriteJSON(Frame{Type: FrameError, Text: err.Error()})
		return
	}

	// Reads only detect the client going away.
	go func() {
		defer cancel()
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return
		case payload, ok := <-stream:
			if !ok {
				return
			}
			if err := conn.WriteMessage(websocket.TextMessage, payload); err != nil {
				return
			}
		}
	}
}
