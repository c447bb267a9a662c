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

	"github.com/google/uuid"
	"github.com/xyedo/rrule"
)

func me(as *utils.AppState, subCmds *[]*dgmux.Command) {
	*subCmds = append(*subCmds, &dgmux.Command{
		Name:        "me",
		Description: "Schedule a reminder in this channel.",
		Usage:       "<when and what> [rrule=FREQ=DAILY]",
		MinArgs:     1,
		Cooldown:    dgmux.Cooldown{Rate: 2, Per: time.Minute},
		Run: func(ctx *dgmux.Ctx) error {
			args := ctx.Args
			var rruleStr string
			if last := args[len(args)-1]; strings.HasPrefix(last, "rrule=") {
				rruleStr = strings.TrimPrefix(last, "rrule=")
				args = args[:len(args)-1]
			}
			text := strings.Join(args, " ")

			if rruleStr != "" {
				if _, err := rrule.StrToRRuleSet("RRULE:" + rruleStr); err != nil {
					return &dgmux.BadArgumentError{
						Param:   "rrule",
						Message: fmt.Sprintf("can't parse the recurrence rule: %s", err),
					}
				}
			}

			now := time.Now().In(as.Config.GetLocation())
			result, err := as.When.Parse(text, now)
			if err != nil || result == nil {
				return &dgmux.BadArgumentError{
					Param:   "when",
					Message: fmt.Sprintf("can't find a time in %q", text),
				}
			}
			if !result.Time.After(now) {
				return &dgmux.BadArgumentError{
					Param:   "when",
					Message: "that time is already in the past",
				}
			}

			// whatever the date parser didn't consume is the reminder text
			content := strings.TrimSpace(strings.Replace(text, result.Text, "", 1))
			content = strings.Trim(content, " :,")
			content = strings.TrimPrefix(content, "to ")
			if content == "" {
				return &dgmux.MissingRequiredArgumentError{Param: "what"}
			}
			content = utils.CleanupString(content)

			reminderModel := model.Reminder{
				ID:        uuid.NewString(),
				UserID:    ctx.Author().ID,
				ChannelID: ctx.ChannelID(),
				Content:   content,
				DueAt:     result.Time.UTC().Unix(),
				RRule:     rruleStr,
				CreatedAt: time.Now().UTC().Unix(),
			}

			startTimer := time.Now()
			if err := reminderModel.Upsert(context.Background(), as.BunDB); err != nil {
				return fmt.Errorf("remindMeHandler: can't save reminder: %w", err)
			}
			go func() {
				as.MetricChans.DatabaseWrite <- float64(time.Since(startTimer).Microseconds())
			}()

			if err := ctx.Reply(fmt.Sprintf(
				"Okay, I'll remind you <t:%d:R>: %s",
				reminderModel.DueAt,
				reminderModel.Content,
			)); err != nil {
				slog.Warn("can't respond", "handler", "remind me", "error", err)
			}
			return nil
		},
	})
}
