package parser_test

import (
	"context"
	"errors"
	"sync"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/pikachuaaaa/RPGBot/internal/command"
	"github.com/pikachuaaaa/RPGBot/internal/convert"
	"github.com/pikachuaaaa/RPGBot/internal/parser"
)

// channel is a chat channel that records replies.
type channel struct {
	mu      sync.Mutex
	replies []string
}

func (c *channel) Reply(_ context.Context, text string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.replies = append(c.replies, text)
	return nil
}

func (c *channel) Replies() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]string(nil), c.replies...)
}

var _ = Describe("Parsing chat messages", func() {
	var (
		p    *parser.Parser
		ch   *channel
		ctx  context.Context
		hits map[string]int
	)

	BeforeEach(func() {
		ctx = context.Background()
		ch = &channel{}
		hits = map[string]int{}

		reg := command.NewRegistry()
		reg.Register("!rpg", "ping!", func(ctx context.Context, args command.Args) error {
			hits["ping!"]++
			return command.Reply(ctx, args, command.DefaultContextParam, "pong!")
		})
		reg.Register("!rpg", "attack", func(ctx context.Context, args command.Args) error {
			hits["attack"]++
			return command.Reply(ctx, args, command.DefaultContextParam, "you hit "+args.String("target"))
		}, command.WithParams(command.Required("target", convert.String)))
		reg.Register("!rpg", "attack heavy", func(ctx context.Context, args command.Args) error {
			hits["attack heavy"]++
			return command.Reply(ctx, args, command.DefaultContextParam, "you smash "+args.String("target"))
		}, command.WithParams(command.Required("target", convert.String)))
		reg.Register("!rpg", "sum", func(ctx context.Context, args command.Args) error {
			total := 0
			for _, v := range args.List("values") {
				total += v.(int)
			}
			hits["sum"] += total
			return nil
		}, command.WithParams(command.Required("values", convert.ListOf(convert.Int))))

		var err error
		p, err = parser.New(reg.Commands(), parser.DefaultConfig())
		Expect(err).NotTo(HaveOccurred())
	})

	It("answers a zero argument command exactly once", func() {
		handled, err := p.Parse(ctx, "!rpg ping!", ch)
		Expect(err).NotTo(HaveOccurred())
		Expect(handled).To(BeTrue())
		Expect(hits["ping!"]).To(Equal(1))
		Expect(ch.Replies()).To(Equal([]string{"pong!"}))
	})

	It("ignores messages addressed to nobody", func() {
		for _, text := range []string{"hello", "ping!", "!dnd ping!", "what (is this"} {
			handled, err := p.Parse(ctx, text, ch)
			Expect(err).NotTo(HaveOccurred())
			Expect(handled).To(BeFalse())
		}
		Expect(ch.Replies()).To(BeEmpty())
	})

	It("prefers the longest command name", func() {
		_, err := p.Parse(ctx, "!rpg attack heavy goblin", ch)
		Expect(err).NotTo(HaveOccurred())
		Expect(hits).To(HaveKeyWithValue("attack heavy", 1))
		Expect(hits).NotTo(HaveKey("attack"))
		Expect(ch.Replies()).To(ConsistOf("you smash goblin"))
	})

	It("binds keyword arguments by name", func() {
		_, err := p.Parse(ctx, `!rpg attack target:"cave troll"`, ch)
		Expect(err).NotTo(HaveOccurred())
		Expect(ch.Replies()).To(ConsistOf("you hit cave troll"))
	})

	DescribeTable("list arguments",
		func(text string, total int) {
			_, err := p.Parse(ctx, text, ch)
			Expect(err).NotTo(HaveOccurred())
			Expect(hits["sum"]).To(Equal(total))
		},
		Entry("comma separated", "!rpg sum 1, 2, 3", 6),
		Entry("bracketed", "!rpg sum [1,2,3]", 6),
		Entry("single element", "!rpg sum 4,", 4),
		Entry("keyword", "!rpg sum values: 5, 5", 10),
	)

	It("reports unbalanced delimiters as syntax errors", func() {
		handled, err := p.Parse(ctx, "!rpg sum (1, 2", ch)
		Expect(handled).To(BeTrue())

		var syntaxErr *parser.SyntaxError
		Expect(errors.As(err, &syntaxErr)).To(BeTrue())
		Expect(syntaxErr.Pos).To(Equal(9))
		Expect(hits).To(BeEmpty())
	})

	It("suggests a close command name", func() {
		_, err := p.Parse(ctx, "!rpg atack", ch)

		var notFound *parser.CommandNotFoundError
		Expect(errors.As(err, &notFound)).To(BeTrue())
		Expect(notFound.Suggestion).To(Equal("attack"))
		Expect(err.Error()).To(ContainSubstring(`did you mean "attack"?`))
	})

	It("matches the whole unknown run against command names", func() {
		_, err := p.Parse(ctx, "!rpg atack goblin", ch)

		var notFound *parser.CommandNotFoundError
		Expect(errors.As(err, &notFound)).To(BeTrue())
		Expect(notFound.Name).To(Equal("atack goblin"))
		Expect(notFound.Suggestion).To(BeEmpty())
	})

	It("suggests from a short abbreviation", func() {
		_, err := p.Parse(ctx, "!rpg att", ch)
		Expect(err).To(MatchError(`cannot find command "att" (did you mean "attack"?)`))
	})

	It("offers nothing for unrelated names", func() {
		_, err := p.Parse(ctx, "!rpg dance", ch)
		Expect(parser.Kind(err)).To(Equal(parser.KindCommandNotFound))
		Expect(err.Error()).NotTo(ContainSubstring("did you mean"))
	})

	It("names the missing argument", func() {
		_, err := p.Parse(ctx, "!rpg attack", ch)
		Expect(err).To(MatchError(`missing argument "target"`))
	})

	It("points at the redundant argument", func() {
		_, err := p.Parse(ctx, "!rpg attack goblin orc", ch)
		Expect(err).To(MatchError(`redundant argument on position 2 ("orc")`))
	})

	It("rejects commands that differ only by case", func() {
		_, err := parser.New([]*command.Command{
			command.MustNew("!rpg", "Ping", func(context.Context, command.Args) error { return nil }),
			command.MustNew("!rpg", "ping", func(context.Context, command.Args) error { return nil }),
		}, parser.DefaultConfig())
		Expect(parser.Kind(err)).To(Equal(parser.KindAmbiguousCommand))
	})
})
