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
)

func delete(as *utils.AppState, subCmds *[]*dgmux.Command) {
	*subCmds = append(*subCmds, &dgmux.Command{
		Name:        "delete",
		Aliases:     []string{"rm"},
		Description: "Drop one of your reminders by its id.",
		Usage:       "<id>",
		MinArgs:     1,
		Run: func(ctx *dgmux.Ctx) error {
			idPrefix := strings.ToLower(ctx.Args[0])

			// own reminders only, matched by id prefix so the short form
			// from "remind list" works
			reminderModels := make([]model.Reminder, 0)
			startTimer := time.Now()
			if err := as.BunDB.NewSelect().
				Model(&reminderModels).
				Where("user_id = ?", ctx.Author().ID).
				Where("id LIKE ?", idPrefix+"%").
				Scan(context.Background()); err != nil {
				return fmt.Errorf("remindDeleteHandler: can't get reminders: %w", err)
			}
			go func() {
				as.MetricChans.DatabaseRead <- float64(time.Since(startTimer).Microseconds())
			}()

			switch len(reminderModels) {
			case 0:
				if err := ctx.Send(fmt.Sprintf("No reminder of yours starts with `%s`.", idPrefix)); err != nil {
					slog.Warn("can't respond", "handler", "remind delete", "error", err)
				}
				return nil
			case 1:
			default:
				if err := ctx.Send(fmt.Sprintf("More than one reminder starts with `%s`, give me a few more characters.", idPrefix)); err != nil {
					slog.Warn("can't respond", "handler", "remind delete", "error", err)
				}
				return nil
			}

			startTimer = time.Now()
			if _, err := as.BunDB.NewDelete().
				Model((*model.Reminder)(nil)).
				Where("id = ?", reminderModels[0].ID).
				Exec(context.Background()); err != nil {
				return fmt.Errorf("remindDeleteHandler: can't delete reminder: %w", err)
			}
			go func() {
				as.MetricChans.DatabaseWrite <- float64(time.Since(startTimer).Microseconds())
			}()

			if err := ctx.Send(fmt.Sprintf("Dropped `%s`: %s", reminderModels[0].ID[:8], reminderModels[0].Content)); err != nil {
				slog.Warn("can't respond", "handler", "remind delete", "error", err)
			}
			return nil
		},
	})
}
