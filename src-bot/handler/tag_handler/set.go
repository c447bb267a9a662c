package tag_handler

import (
	"context"
	"fmt"
	"log/slog"
	"regexp"
	"strings"

	"squire/dgmux"
	"squire/src-bot/api"
	"squire/src-bot/utils"

	"github.com/bwmarrin/discordgo"
)

// tag names stay url- and autocomplete-friendly
var tagNameRegex = regexp.MustCompile(`^[a-z0-9][a-z0-9._-]*$`)

func set(as *utils.AppState, subCmds *[]*dgmux.Command) {
	*subCmds = append(*subCmds, &dgmux.Command{
		Name:                "set",
		Description:         "Create or overwrite a tag.",
		Usage:               "<name> <content...>",
		MinArgs:             2,
		RequiredPermissions: discordgo.PermissionManageMessages,
		Run: func(ctx *dgmux.Ctx) error {
			name := ctx.Args[0]
			content := strings.Join(ctx.Args[1:], " ")

			switch {
			case len(name) > 50:
				return &dgmux.BadArgumentError{
					Param:   "name",
					Message: "tag names can't be longer than 50 characters",
				}
			case !tagNameRegex.MatchString(name):
				return &dgmux.BadArgumentError{
					Param:   "name",
					Message: fmt.Sprintf("tag names can only contain lowercase letters, digits, dots, and dashes, got %q", name),
				}
			}

			if err := as.Api.CreateTag(context.Background(), api.Tag{
				Title:   name,
				Content: content,
			}); err != nil {
				return fmt.Errorf("tagSetHandler: %w", err)
			}

			if err := ctx.Send(fmt.Sprintf("Tag `%s` saved.", name)); err != nil {
				slog.Warn("can't respond", "handler", "tags set", "error", err)
			}
			return nil
		},
	})
}
