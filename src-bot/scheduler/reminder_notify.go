package scheduler

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"squire/src-bot/model"
	"squire/src-bot/utils"

	"github.com/bwmarrin/discordgo"
)

// sender is the slice of the discord session the notifier sends through.
type sender interface {
	ChannelMessageSendComplex(channelID string, data *discordgo.MessageSend, options ...discordgo.RequestOption) (*discordgo.Message, error)
}

// ReminderNotify pings users whose reminders came due. Repeating reminders
// get re-armed at their next occurrence, one-shots get marked fired.
func ReminderNotify(as *utils.AppState) {
	gracefulShutdownCh := as.CreateGracefulShutdownChan()
	ticker := time.NewTicker(30 * time.Second)
	defer ticker.Stop()
	for {
		select {
		case <-*gracefulShutdownCh:
			return
		case <-ticker.C:
			notifyDueReminders(as, as.DgSession, time.Now())
		}
	}
}

func notifyDueReminders(as *utils.AppState, s sender, now time.Time) {
	reminderModels := make([]model.Reminder, 0)
	startTimer := time.Now()
	if err := as.BunDB.NewSelect().
		Model(&reminderModels).
		Where("fired = ?", false).
		Where("due_at <= ?", now.UTC().Unix()).
		Scan(context.Background()); err != nil {
		slog.Error("can't get due reminders", "error", err)
		return
	}
	go func() {
		as.MetricChans.DatabaseRead <- float64(time.Since(startTimer).Microseconds())
	}()

	for _, reminderModel := range reminderModels {
		sendTimer := time.Now()
		if _, err := s.ChannelMessageSendComplex(reminderModel.ChannelID, &discordgo.MessageSend{
			Content: fmt.Sprintf("<@%s>", reminderModel.UserID),
			Embeds:  []*discordgo.MessageEmbed{reminderModel.ToDiscordEmbed()},
		}); err != nil {
			// keep it pending, the next tick retries
			slog.Error("can't send reminder", "id", reminderModel.ID, "error", err)
			continue
		}
		go func() {
			as.MetricChans.DiscordSendMessage <- float64(time.Since(sendTimer).Microseconds())
		}()

		if next, ok := reminderModel.NextOccurrence(now); ok {
			reminderModel.DueAt = next.UTC().Unix()
		} else {
			reminderModel.Fired = true
		}

		writeTimer := time.Now()
		if err := reminderModel.Upsert(context.Background(), as.BunDB); err != nil {
			slog.Error("can't update sent reminder", "id", reminderModel.ID, "error", err)
			continue
		}
		go func() {
			as.MetricChans.DatabaseWrite <- float64(time.Since(writeTimer).Microseconds())
		}()
	}
}
