package remind_handler

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"squire/dgmux"
	"squire/src-bot/model"
	"squire/src-bot/utils"

	"github.com/bwmarrin/discordgo"
)

func list(as *utils.AppState, subCmds *[]*dgmux.Command) {
	*subCmds = append(*subCmds, &dgmux.Command{
		Name:        "list",
		Aliases:     []string{"ls"},
		Description: "List your pending reminders.",
		Run: func(ctx *dgmux.Ctx) error {
			reminderModels := make([]model.Reminder, 0)
			startTimer := time.Now()
			if err := as.BunDB.NewSelect().
				Model(&reminderModels).
				Where("user_id = ?", ctx.Author().ID).
				Where("fired = ?", false).
				Order("due_at ASC").
				Limit(25).
				Scan(context.Background()); err != nil {
				return fmt.Errorf("remindListHandler: can't get reminders: %w", err)
			}
			go func() {
				as.MetricChans.DatabaseRead <- float64(time.Since(startTimer).Microseconds())
			}()

			if len(reminderModels) == 0 {
				if err := ctx.Send("You have no pending reminders."); err != nil {
					slog.Warn("can't respond", "handler", "remind list", "error", err)
				}
				return nil
			}

			lines := make([]string, len(reminderModels))
			for i, reminderModel := range reminderModels {
				repeats := ""
				if reminderModel.RRule != "" {
					repeats = " (repeats)"
				}
				lines[i] = fmt.Sprintf("`%s` <t:%d:f>%s - %s",
					reminderModel.ID[:8],
					reminderModel.DueAt,
					repeats,
					reminderModel.Content,
				)
			}

			if err := ctx.SendEmbed(&discordgo.MessageEmbed{
				Title:       "Your reminders",
				Description: strings.Join(lines, "\n"),
				Footer: &discordgo.MessageEmbedFooter{
					Text: "Use remind delete <id> to drop one.",
				},
			}); err != nil {
				slog.Warn("can't respond", "handler", "remind list", "error", err)
			}
			return nil
		},
	})
}
