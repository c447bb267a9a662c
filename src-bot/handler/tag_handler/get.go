package tag_handler

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"squire/dgmux"
	"squire/src-bot/utils"

	"github.com/bwmarrin/discordgo"
)

func get(as *utils.AppState, subCmds *[]*dgmux.Command) {
	*subCmds = append(*subCmds, &dgmux.Command{
		Name:        "get",
		Description: "Show a tag.",
		Usage:       "<name>",
		MinArgs:     1,
		Cooldown:    dgmux.Cooldown{Rate: 3, Per: 30 * time.Second},
		Run: func(ctx *dgmux.Ctx) error {
			tag, err := as.Api.Tag(context.Background(), ctx.Args[0])
			if err != nil {
				return fmt.Errorf("tagGetHandler: %w", err)
			}

			if err := ctx.SendEmbed(&discordgo.MessageEmbed{
				Title:       tag.Title,
				Description: tag.Content,
			}); err != nil {
				slog.Warn("can't respond", "handler", "tags get", "error", err)
			}
			return nil
		},
	})
}
