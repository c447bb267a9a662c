package dgmux

import "strings"

// Command describes one invocable message command, or a group of them when
// Subcommands is set. Groups without their own Run function reject bare
// invocations with a missing-argument error so the caller gets steered
// toward the help output.
type Command struct {
	Name        string
	Aliases     []string
	Description string
	// One-line argument synopsis shown by the help renderer, e.g.
	// "<name> <content...>". Bracketed tokens double as parameter names
	// for missing-argument errors.
	Usage   string
	MinArgs int
	// Hidden commands still run but are left out of the help overview.
	Hidden   bool
	Disabled bool
	// GuildOnly commands refuse direct messages.
	GuildOnly bool
	// Permission bitmasks checked against the invoking user and the bot
	// before the command runs. Zero means no requirement.
	RequiredPermissions int64
	BotPermissions      int64
	Cooldown            Cooldown
	// Extra checks run after the built-in ones. Returning an error aborts
	// the invocation; taxonomy errors propagate as-is.
	Checks []CheckFunc

	Run func(ctx *Ctx) error
	// Local error hook. When set, the global handler is expected to leave
	// errors from this command alone.
	OnError func(ctx *Ctx, err error)

	Subcommands []*Command

	parent *Command
}

// CheckFunc is a pre-invocation predicate. A nil return lets the invocation
// proceed.
type CheckFunc func(ctx *Ctx) error

// Parent returns the group this command is registered under, or nil for a
// root command.
func (c *Command) Parent() *Command { return c.parent }

// QualifiedName returns the full invocation path, e.g. "tags get".
func (c *Command) QualifiedName() string {
	if c.parent == nil {
		return c.Name
	}
	return c.parent.QualifiedName() + " " + c.Name
}

// findSub resolves one subcommand token against names and aliases.
func (c *Command) findSub(token string) *Command {
	for _, sub := range c.Subcommands {
		if sub.Name == token {
			return sub
		}
		for _, alias := range sub.Aliases {
			if alias == token {
				return sub
			}
		}
	}
	return nil
}

// paramName derives the name of the idx-th parameter from the usage synopsis,
// falling back to a generic label when the synopsis doesn't cover it.
func (c *Command) paramName(idx int) string {
	fields := strings.Fields(c.Usage)
	if idx >= 0 && idx < len(fields) {
		return strings.Trim(fields[idx], "<>[].")
	}
	if len(c.Subcommands) > 0 {
		return "subcommand"
	}
	return "argument"
}

// link records parent pointers down the subcommand tree.
func (c *Command) link(parent *Command) {
	c.parent = parent
	for _, sub := range c.Subcommands {
		sub.link(c)
	}
}
