package model_test

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"squire/src-bot/model"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/sqlitedialect"
	"github.com/uptrace/bun/driver/sqliteshim"
)

func TestReminderUpsert(t *testing.T) {
	// init db
	db, err := sql.Open(sqliteshim.ShimName, ":memory:")
	if err != nil {
		t.Error(err)
	}
	bundb := bun.NewDB(db, sqlitedialect.New())

	// init tables
	if _, err := bundb.NewCreateTable().
		Model((*model.Reminder)(nil)).
		IfNotExists().
		Exec(context.Background()); err != nil {
		t.Error(err)
	}

	reminderModel := model.Reminder{
		ID:        uuid.NewString(),
		UserID:    "user-1",
		ChannelID: "chan-1",
		Content:   "Water the plants",
		DueAt:     time.Now().Add(time.Hour).UTC().Unix(),
		CreatedAt: time.Now().UTC().Unix(),
	}

	// case: valid reminder round-trips
	func() {
		if err := reminderModel.Upsert(context.Background(), bundb); err != nil {
			t.Error(err)
		}
		reminderModelTest := new(model.Reminder)
		if err := bundb.NewSelect().
			Model(reminderModelTest).
			Where("id = ?", reminderModel.ID).
			Scan(context.Background()); err != nil {
			t.Error(err)
		}
		if reminderModelTest.Content != reminderModel.Content {
			t.Error("reminder content not found")
		}
	}()

	// case: upserting again updates instead of duplicating
	func() {
		reminderModel.Content = "Water the plants twice"
		if err := reminderModel.Upsert(context.Background(), bundb); err != nil {
			t.Error(err)
		}
		count, err := bundb.NewSelect().
			Model((*model.Reminder)(nil)).
			Where("user_id = ?", reminderModel.UserID).
			Count(context.Background())
		if err != nil {
			t.Error(err)
		}
		if count != 1 {
			t.Error("expected one reminder row", count)
		}
		reminderModelTest := new(model.Reminder)
		if err := bundb.NewSelect().
			Model(reminderModelTest).
			Where("id = ?", reminderModel.ID).
			Scan(context.Background()); err != nil {
			t.Error(err)
		}
		if reminderModelTest.Content != "Water the plants twice" {
			t.Error("reminder content not updated")
		}
	}()

	// case: blank content is rejected
	func() {
		badModel := reminderModel
		badModel.Content = ""
		if err := badModel.Upsert(context.Background(), bundb); err == nil {
			t.Error("blank content should not upsert")
		}
	}()

	// case: unparseable rrule is rejected
	func() {
		badModel := reminderModel
		badModel.RRule = "FREQ=SOMETIMES"
		if err := badModel.Upsert(context.Background(), bundb); err == nil {
			t.Error("invalid rrule should not upsert")
		}
	}()
}

func TestReminderNextOccurrence(t *testing.T) {
	dueAt := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

	// case: one-shot reminders never repeat
	func() {
		reminderModel := model.Reminder{DueAt: dueAt.Unix()}
		if _, ok := reminderModel.NextOccurrence(dueAt.Add(time.Hour)); ok {
			t.Error("one-shot reminder should not have a next occurrence")
		}
	}()

	// case: a daily rule lands on the next day
	func() {
		reminderModel := model.Reminder{DueAt: dueAt.Unix(), RRule: "FREQ=DAILY"}
		next, ok := reminderModel.NextOccurrence(dueAt.Add(time.Hour))
		if !ok {
			t.Error("daily reminder should have a next occurrence")
		}
		if !next.Equal(dueAt.Add(24 * time.Hour)) {
			t.Error("unexpected next occurrence", next)
		}
	}()

	// case: an exhausted rule stops repeating
	func() {
		reminderModel := model.Reminder{DueAt: dueAt.Unix(), RRule: "FREQ=DAILY;COUNT=1"}
		if _, ok := reminderModel.NextOccurrence(dueAt.Add(time.Hour)); ok {
			t.Error("exhausted rule should not have a next occurrence")
		}
	}()
}
