package gateway

import (
	"context"
	"strings"
	"sync/atomic"

	"github.com/pikachuaaaa/RPGBot/internal/event"
	"github.com/pikachuaaaa/RPGBot/internal/logging"
	"github.com/pikachuaaaa/RPGBot/internal/parser"
)

// Reasons a message is ignored.
const (
	IgnoredBot      = "bot"
	IgnoredEmpty    = "empty"
	IgnoredNoPrefix = "no_prefix"
)

// Result describes how a message was handled.
type Result struct {
	MessageID string  `json:"messageID"`
	Handled   bool    `json:"handled"`
	Ignored   string  `json:"ignored,omitempty"`
	Command   string  `json:"command,omitempty"`
	Kind      string  `json:"kind,omitempty"`
	Error     string  `json:"error,omitempty"`
	Replies   []Reply `json:"replies"`
}

// Dispatcher feeds messages from every gateway into the active parser. The
// parser can be swapped at any time; messages already being handled finish
// on the parser they started with.
type Dispatcher struct {
	parser atomic.Pointer[parser.Parser]
	bus    *event.Bus
}

// NewDispatcher creates a dispatcher. bus may be nil.
func NewDispatcher(p *parser.Parser, bus *event.Bus) *Dispatcher {
	d := &Dispatcher{bus: bus}
	d.parser.Store(p)
	return d
}

// Parser returns the active parser.
func (d *Dispatcher) Parser() *parser.Parser {
	return d.parser.Load()
}

// Swap replaces the active parser.
func (d *Dispatcher) Swap(p *parser.Parser) {
	d.parser.Store(p)
}

// Dispatch parses msg and runs the matched command. Messages from bots, empty
// messages and messages without a registered prefix are ignored. Any failure
// is replied to the message as text.
func (d *Dispatcher) Dispatch(ctx context.Context, msg *Message) Result {
	res := Result{MessageID: msg.ID}

	d.publish(event.MessageReceived, event.MessageReceivedData{
		MessageID: msg.ID,
		Gateway:   msg.Gateway,
		Channel:   msg.Channel,
		Author:    msg.Author,
		Text:      msg.Text,
	})

	switch {
	case msg.Bot:
		res.Ignored = IgnoredBot
	case strings.TrimSpace(msg.Text) == "":
		res.Ignored = IgnoredEmpty
	}
	if res.Ignored != "" {
		return d.ignore(msg, res)
	}

	inv, ok, err := d.Parser().Match(msg.Text, msg)
	if !ok {
		res.Ignored = IgnoredNoPrefix
		return d.ignore(msg, res)
	}

	res.Handled = true
	if inv != nil {
		res.Command = inv.Command.FullName()
	}
	if err == nil {
		err = inv.Invoke(ctx)
	}

	if err != nil {
		res.Kind = parser.Kind(err)
		res.Error = err.Error()

		logging.Warn().
			Str("messageID", msg.ID).
			Str("gateway", msg.Gateway).
			Str("kind", res.Kind).
			Err(err).
			Msg("command failed")

		d.publish(event.CommandFailed, event.CommandFailedData{
			MessageID: msg.ID,
			Command:   res.Command,
			Kind:      res.Kind,
			Error:     res.Error,
		})

		if replyErr := msg.ReplyError(ctx, err); replyErr != nil {
			logging.Error().Err(replyErr).Str("messageID", msg.ID).Msg("failed to send error reply")
		}
		res.Replies = msg.Replies()
		return res
	}

	logging.Info().
		Str("messageID", msg.ID).
		Str("gateway", msg.Gateway).
		Str("command", res.Command).
		Msg("command invoked")

	args := make(map[string]any, len(inv.Args))
	for k, v := range inv.Args {
		if k != inv.Command.ContextParam {
			args[k] = v
		}
	}
	d.publish(event.CommandInvoked, event.CommandInvokedData{
		MessageID: msg.ID,
		Prefix:    inv.Command.Prefix,
		Command:   inv.Command.Name,
		Args:      args,
	})

	res.Replies = msg.Replies()
	return res
}

func (d *Dispatcher) ignore(msg *Message, res Result) Result {
	logging.Debug().
		Str("messageID", msg.ID).
		Str("reason", res.Ignored).
		Msg("message ignored")

	d.publish(event.MessageIgnored, event.MessageIgnoredData{
		MessageID: msg.ID,
		Reason:    res.Ignored,
	})

	res.Replies = []Reply{}
	return res
}

func (d *Dispatcher) publish(t event.EventType, data any) {
	if d.bus != nil {
		d.bus.Publish(event.Event{Type: t, Data: data})
	}
}
