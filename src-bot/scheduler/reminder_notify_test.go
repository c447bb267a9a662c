package scheduler

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"squire/src-bot/model"
	"squire/src-bot/utils"

	"github.com/bwmarrin/discordgo"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/sqlitedialect"
	"github.com/uptrace/bun/driver/sqliteshim"
)

type fakeSender struct {
	channels []string
	contents []string
	fail     bool
}

func (f *fakeSender) ChannelMessageSendComplex(channelID string, data *discordgo.MessageSend, options ...discordgo.RequestOption) (*discordgo.Message, error) {
	if f.fail {
		return nil, errors.New("send failed")
	}
	f.channels = append(f.channels, channelID)
	if data != nil {
		f.contents = append(f.contents, data.Content)
	}
	return &discordgo.Message{}, nil
}

func testBunDB(t *testing.T) *bun.DB {
	t.Helper()
	db, err := sql.Open(sqliteshim.ShimName, ":memory:")
	if err != nil {
		t.Error(err)
	}
	bundb := bun.NewDB(db, sqlitedialect.New())
	if _, err := bundb.NewCreateTable().
		Model((*model.Reminder)(nil)).
		IfNotExists().
		Exec(context.Background()); err != nil {
		t.Error(err)
	}
	return bundb
}

func TestNotifyDueReminders(t *testing.T) {
	now := time.Date(2024, 6, 1, 12, 0, 30, 0, time.UTC)
	as := &utils.AppState{
		BunDB:       testBunDB(t),
		MetricChans: utils.NewMetric(),
	}

	dueOnce := model.Reminder{
		ID:        uuid.NewString(),
		UserID:    "user-1",
		ChannelID: "chan-1",
		Content:   "Water the plants",
		DueAt:     now.Add(-time.Minute).Unix(),
		CreatedAt: now.Unix(),
	}
	dueDaily := model.Reminder{
		ID:        uuid.NewString(),
		UserID:    "user-2",
		ChannelID: "chan-2",
		Content:   "Stand up",
		DueAt:     time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC).Unix(),
		RRule:     "FREQ=DAILY",
		CreatedAt: now.Unix(),
	}
	future := model.Reminder{
		ID:        uuid.NewString(),
		UserID:    "user-3",
		ChannelID: "chan-3",
		Content:   "Way later",
		DueAt:     now.Add(time.Hour).Unix(),
		CreatedAt: now.Unix(),
	}
	for _, reminderModel := range []model.Reminder{dueOnce, dueDaily, future} {
		if err := reminderModel.Upsert(context.Background(), as.BunDB); err != nil {
			t.Error(err)
		}
	}

	fs := &fakeSender{}
	notifyDueReminders(as, fs, now)

	// case: only the due reminders get sent, mentioning their owner
	func() {
		if len(fs.channels) != 2 {
			t.Error("expected two notifications", fs.channels)
		}
		for _, content := range fs.contents {
			if content != "<@user-1>" && content != "<@user-2>" {
				t.Error("notification should mention the owner", content)
			}
		}
	}()

	// case: the one-shot is marked fired
	func() {
		reminderModelTest := new(model.Reminder)
		if err := as.BunDB.NewSelect().
			Model(reminderModelTest).
			Where("id = ?", dueOnce.ID).
			Scan(context.Background()); err != nil {
			t.Error(err)
		}
		if !reminderModelTest.Fired {
			t.Error("one-shot reminder should be fired")
		}
	}()

	// case: the repeating one is re-armed for the next day
	func() {
		reminderModelTest := new(model.Reminder)
		if err := as.BunDB.NewSelect().
			Model(reminderModelTest).
			Where("id = ?", dueDaily.ID).
			Scan(context.Background()); err != nil {
			t.Error(err)
		}
		if reminderModelTest.Fired {
			t.Error("repeating reminder should stay pending")
		}
		wantDueAt := time.Date(2024, 6, 2, 12, 0, 0, 0, time.UTC).Unix()
		if reminderModelTest.DueAt != wantDueAt {
			t.Error("unexpected re-armed due date", reminderModelTest.DueAt, wantDueAt)
		}
	}()

	// case: the future one is untouched
	func() {
		reminderModelTest := new(model.Reminder)
		if err := as.BunDB.NewSelect().
			Model(reminderModelTest).
			Where("id = ?", future.ID).
			Scan(context.Background()); err != nil {
			t.Error(err)
		}
		if reminderModelTest.Fired || reminderModelTest.DueAt != future.DueAt {
			t.Error("future reminder should be untouched")
		}
	}()
}

func TestNotifyDueRemindersSendFailure(t *testing.T) {
	now := time.Date(2024, 6, 1, 12, 0, 30, 0, time.UTC)
	as := &utils.AppState{
		BunDB:       testBunDB(t),
		MetricChans: utils.NewMetric(),
	}

	reminderModel := model.Reminder{
		ID:        uuid.NewString(),
		UserID:    "user-1",
		ChannelID: "chan-1",
		Content:   "Water the plants",
		DueAt:     now.Add(-time.Minute).Unix(),
		CreatedAt: now.Unix(),
	}
	if err := reminderModel.Upsert(context.Background(), as.BunDB); err != nil {
		t.Error(err)
	}

	notifyDueReminders(as, &fakeSender{fail: true}, now)

	// case: a failed send keeps the reminder pending for the next tick
	reminderModelTest := new(model.Reminder)
	if err := as.BunDB.NewSelect().
		Model(reminderModelTest).
		Where("id = ?", reminderModel.ID).
		Scan(context.Background()); err != nil {
		t.Error(err)
	}
	if reminderModelTest.Fired {
		t.Error("failed send should keep the reminder pending")
	}
}
