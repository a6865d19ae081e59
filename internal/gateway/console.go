package gateway

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/fatih/color"
)

var (
	promptColor = color.New(color.FgCyan)
	replyColor  = color.New(color.FgHiGreen)
	errorColor  = color.New(color.FgHiRed)
	infoColor   = color.New(color.FgHiYellow)
)

// Console is a line-based chat gateway over a reader and a writer. Every
// line read is one message.
type Console struct {
	dispatcher *Dispatcher
	in         io.Reader
	out        io.Writer
	author     string
	prompt     bool

	mu sync.Mutex
}

// NewConsole creates a console gateway. author is recorded on every message.
func NewConsole(d *Dispatcher, in io.Reader, out io.Writer, author string) *Console {
	return &Console{dispatcher: d, in: in, out: out, author: author}
}

// WithPrompt enables the "> " prompt, for interactive terminals.
func (c *Console) WithPrompt(enabled bool) *Console {
	c.prompt = enabled
	return c
}

// Run reads lines until the input ends or ctx is cancelled.
func (c *Console) Run(ctx context.Context) error {
	lines := make(chan string)
	errCh := make(chan error, 1)

	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(c.in)
		for scanner.Scan() {
			select {
			case lines <- scanner.Text():
			case <-ctx.Done():
				return
			}
		}
		errCh <- scanner.Err()
	}()

	if c.prompt {
		c.printBanner()
	}

	for {
		c.showPrompt()
		select {
		case <-ctx.Done():
			return ctx.Err()
		case line, ok := <-lines:
			if !ok {
				select {
				case err := <-errCh:
					return err
				default:
					return nil
				}
			}
			c.Handle(ctx, line)
		}
	}
}

// Handle dispatches a single line and prints the replies.
func (c *Console) Handle(ctx context.Context, line string) Result {
	msg := NewMessage(GatewayConsole, line, c.send)
	msg.Author = c.author
	return c.dispatcher.Dispatch(ctx, msg)
}

func (c *Console) send(_ context.Context, r Reply) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if r.Error {
		_, err := errorColor.Fprintln(c.out, r.Text)
		return err
	}
	_, err := replyColor.Fprintln(c.out, r.Text)
	return err
}

func (c *Console) showPrompt() {
	if !c.prompt {
		return
	}
	c.mu.Lock()
	promptColor.Fprint(c.out, "> ")
	c.mu.Unlock()
}

func (c *Console) printBanner() {
	c.mu.Lock()
	defer c.mu.Unlock()
	prefixes := c.dispatcher.Parser().Prefixes()
	infoColor.Fprintf(c.out, "Listening for %s. Press Ctrl+D to quit.\n", strings.Join(quoteAll(prefixes), ", "))
}

func quoteAll(items []string) []string {
	out := make([]string, len(items))
	for i, s := range items {
		out[i] = fmt.Sprintf("%q", s)
	}
	return out
}
