package dgmux

import (
	"fmt"
	"sort"
	"strings"

	"github.com/bwmarrin/discordgo"
)

// The built-in help renderer. Registered by New so error handlers can replay
// it for a specific command via Get("help") + (*Ctx).Invoke.
func newHelpCommand(mx *Mux) *Command {
	return &Command{
		Name:        "help",
		Description: "Shows the command list, or how one command is used.",
		Usage:       "[command] [subcommand]",
		Run: func(ctx *Ctx) error {
			if len(ctx.Args) == 0 {
				return sendHelpOverview(mx, ctx)
			}
			path := strings.Join(ctx.Args, " ")
			cmd := mx.Get(path)
			if cmd == nil {
				return ctx.Send(fmt.Sprintf("No command called %q found.", path))
			}
			return sendCommandHelp(ctx, cmd)
		},
	}
}

func sendHelpOverview(mx *Mux, ctx *Ctx) error {
	var lines []string
	mx.Walk(func(cmd *Command) {
		if cmd.Hidden {
			return
		}
		line := fmt.Sprintf("`%s%s` - %s", ctx.Prefix, cmd.Name, cmd.Description)
		if len(cmd.Subcommands) > 0 {
			names := make([]string, len(cmd.Subcommands))
			for i, sub := range cmd.Subcommands {
				names[i] = sub.Name
			}
			line += fmt.Sprintf(" (subcommands: %s)", strings.Join(names, ", "))
		}
		lines = append(lines, line)
	})
	sort.Strings(lines)

	return ctx.SendEmbed(&discordgo.MessageEmbed{
		Title:       "Commands",
		Description: strings.Join(lines, "\n"),
		Footer: &discordgo.MessageEmbedFooter{
			Text: fmt.Sprintf("Use %shelp <command> for details on one command.", ctx.Prefix),
		},
	})
}

func sendCommandHelp(ctx *Ctx, cmd *Command) error {
	title := ctx.Prefix + cmd.QualifiedName()
	if cmd.Usage != "" {
		title += " " + cmd.Usage
	}

	embed := &discordgo.MessageEmbed{
		Title:       title,
		Description: cmd.Description,
	}
	if len(cmd.Aliases) > 0 {
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
			Name:   "Aliases",
			Value:  strings.Join(cmd.Aliases, ", "),
			Inline: true,
		})
	}
	if len(cmd.Subcommands) > 0 {
		var lines []string
		for _, sub := range cmd.Subcommands {
			lines = append(lines, fmt.Sprintf("`%s` - %s", sub.Name, sub.Description))
		}
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
			Name:  "Subcommands",
			Value: strings.Join(lines, "\n"),
		})
	}
	return ctx.SendEmbed(embed)
}
