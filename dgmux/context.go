package dgmux

import (
	"fmt"
	"time"

	"github.com/bwmarrin/discordgo"
)

// Session is the slice of *discordgo.Session the mux and its commands send
// through. Keeping it narrow lets tests swap in a recording fake.
type Session interface {
	ChannelMessageSend(channelID string, content string, options ...discordgo.RequestOption) (*discordgo.Message, error)
	ChannelMessageSendComplex(channelID string, data *discordgo.MessageSend, options ...discordgo.RequestOption) (*discordgo.Message, error)
	ChannelMessageSendReply(channelID string, content string, reference *discordgo.MessageReference, options ...discordgo.RequestOption) (*discordgo.Message, error)
	UserChannelPermissions(userID string, channelID string, fetchOptions ...discordgo.RequestOption) (int64, error)
}

// Ctx carries the per-invocation state handed to command run functions and
// error hooks.
type Ctx struct {
	S       Session
	Mux     *Mux
	Message *discordgo.MessageCreate
	// The resolved command. Nil when the invocation token didn't match
	// anything.
	Command *Command
	Prefix  string
	// The first token after the prefix, exactly as the user typed it.
	InvokedWith string
	Args        []string
	// The bot's own user ID, for bot-side permission checks.
	BotID string
	// Set before the error dispatcher re-runs an unresolved invocation as a
	// tag lookup, so the reinterpretation can never loop.
	InvokedFromErrorHandler bool
}

func (c *Ctx) Author() *discordgo.User {
	if c.Message == nil {
		return nil
	}
	return c.Message.Author
}

func (c *Ctx) ChannelID() string {
	if c.Message == nil {
		return ""
	}
	return c.Message.ChannelID
}

func (c *Ctx) GuildID() string {
	if c.Message == nil {
		return ""
	}
	return c.Message.GuildID
}

// Send posts a plain message to the originating channel.
func (c *Ctx) Send(content string) error {
	startTimer := time.Now()
	_, err := c.S.ChannelMessageSend(c.ChannelID(), content)
	if err != nil {
		return fmt.Errorf("(*Ctx).Send: %w", err)
	}
	c.observeSend(time.Since(startTimer))
	return nil
}

// SendEmbed posts a single embed to the originating channel.
func (c *Ctx) SendEmbed(embed *discordgo.MessageEmbed) error {
	startTimer := time.Now()
	_, err := c.S.ChannelMessageSendComplex(c.ChannelID(), &discordgo.MessageSend{
		Embeds: []*discordgo.MessageEmbed{embed},
	})
	if err != nil {
		return fmt.Errorf("(*Ctx).SendEmbed: %w", err)
	}
	c.observeSend(time.Since(startTimer))
	return nil
}

// Reply posts a message referencing the invoking one.
func (c *Ctx) Reply(content string) error {
	if c.Message == nil {
		return c.Send(content)
	}
	startTimer := time.Now()
	_, err := c.S.ChannelMessageSendReply(c.ChannelID(), content, c.Message.Reference())
	if err != nil {
		return fmt.Errorf("(*Ctx).Reply: %w", err)
	}
	c.observeSend(time.Since(startTimer))
	return nil
}

func (c *Ctx) observeSend(elapsed time.Duration) {
	if c.Mux != nil && c.Mux.OnSend != nil {
		c.Mux.OnSend(elapsed)
	}
}

// Invoke runs another command with this invocation's message context. Checks,
// cooldowns, and invoke-error wrapping are all bypassed: the run function's
// error comes back raw. The re-dispatch marker carries over.
func (c *Ctx) Invoke(cmd *Command, args ...string) error {
	if cmd == nil {
		return fmt.Errorf("(*Ctx).Invoke: nil command")
	}
	if cmd.Run == nil {
		return fmt.Errorf("(*Ctx).Invoke: command %q has no run function", cmd.QualifiedName())
	}
	derived := &Ctx{
		S:                       c.S,
		Mux:                     c.Mux,
		Message:                 c.Message,
		Command:                 cmd,
		Prefix:                  c.Prefix,
		InvokedWith:             cmd.Name,
		Args:                    args,
		BotID:                   c.BotID,
		InvokedFromErrorHandler: c.InvokedFromErrorHandler,
	}
	return cmd.Run(derived)
}
