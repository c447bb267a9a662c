package tag_handler

import (
	"context"
	"fmt"
	"log/slog"

	"squire/dgmux"
	"squire/src-bot/utils"

	"github.com/bwmarrin/discordgo"
)

func delete(as *utils.AppState, subCmds *[]*dgmux.Command) {
	*subCmds = append(*subCmds, &dgmux.Command{
		Name:                "delete",
		Aliases:             []string{"rm"},
		Description:         "Remove a tag.",
		Usage:               "<name>",
		MinArgs:             1,
		RequiredPermissions: discordgo.PermissionManageMessages,
		Run: func(ctx *dgmux.Ctx) error {
			name := ctx.Args[0]
			if err := as.Api.DeleteTag(context.Background(), name); err != nil {
				return fmt.Errorf("tagDeleteHandler: %w", err)
			}

			if err := ctx.Send(fmt.Sprintf("Tag `%s` deleted.", name)); err != nil {
				slog.Warn("can't respond", "handler", "tags delete", "error", err)
			}
			return nil
		},
	})
}
