package tag_handler

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"time"

	"squire/dgmux"
	"squire/src-bot/utils"

	"github.com/bwmarrin/discordgo"
)

func list(as *utils.AppState, subCmds *[]*dgmux.Command) {
	*subCmds = append(*subCmds, &dgmux.Command{
		Name:        "list",
		Aliases:     []string{"ls"},
		Description: "List every tag.",
		Cooldown:    dgmux.Cooldown{Rate: 1, Per: 30 * time.Second},
		Run: func(ctx *dgmux.Ctx) error {
			tags, err := as.Api.Tags(context.Background())
			if err != nil {
				return fmt.Errorf("tagListHandler: %w", err)
			}

			if len(tags) == 0 {
				if err := ctx.Send("There are no tags yet."); err != nil {
					slog.Warn("can't respond", "handler", "tags list", "error", err)
				}
				return nil
			}

			names := make([]string, len(tags))
			for i, tag := range tags {
				names[i] = "`" + tag.Title + "`"
			}
			sort.Strings(names)

			if err := ctx.SendEmbed(&discordgo.MessageEmbed{
				Title:       "Tags",
				Description: strings.Join(names, ", "),
				Footer: &discordgo.MessageEmbedFooter{
					Text: fmt.Sprintf("%d tag(s)", len(tags)),
				},
			}); err != nil {
				slog.Warn("can't respond", "handler", "tags list", "error", err)
			}
			return nil
		},
	})
}
