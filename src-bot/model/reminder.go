package model

import (
	"context"
	"fmt"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/uptrace/bun"
	"github.com/xyedo/rrule"
)

// One scheduled ping for one user. Repeating reminders keep an RRULE string
// next to the due date and get re-armed by the scheduler after each fire.
type Reminder struct {
	bun.BaseModel `bun:"table:reminders"`

	ID        string `bun:"id,pk,notnull"`
	UserID    string `bun:"user_id,notnull"`    // required
	ChannelID string `bun:"channel_id,notnull"` // required
	Content   string `bun:"content,notnull"`    // required
	DueAt     int64  `bun:"due_at,notnull"`     // unix utc
	RRule     string `bun:"rrule"`
	Fired     bool   `bun:"fired"`
	CreatedAt int64  `bun:"created_at,notnull"`
}

func (r *Reminder) Upsert(ctx context.Context, db bun.IDB) error {
	switch {
	case r.ID == "":
		return fmt.Errorf("(*Reminder).Upsert: id is required")
	case r.UserID == "":
		return fmt.Errorf("(*Reminder).Upsert: user id is required")
	case r.ChannelID == "":
		return fmt.Errorf("(*Reminder).Upsert: channel id is required")
	case r.Content == "":
		return fmt.Errorf("(*Reminder).Upsert: content is required")
	case r.DueAt <= 0:
		return fmt.Errorf("(*Reminder).Upsert: due date is required")
	}
	if r.RRule != "" {
		if _, err := rrule.StrToRRuleSet(r.sourceStr()); err != nil {
			return fmt.Errorf("(*Reminder).Upsert: invalid rrule: %w", err)
		}
	}

	// upsert to db
	if _, err := db.NewInsert().
		Model(r).
		On("CONFLICT (id) DO UPDATE").
		Set("content = EXCLUDED.content").
		Set("due_at = EXCLUDED.due_at").
		Set("rrule = EXCLUDED.rrule").
		Set("fired = EXCLUDED.fired").
		Exec(ctx); err != nil {
		return fmt.Errorf("(*Reminder).Upsert: %w", err)
	}

	return nil
}

func (r *Reminder) sourceStr() string {
	return "DTSTART:" + time.Unix(r.DueAt, 0).UTC().Format("20060102T150405Z") +
		"\nRRULE:" + r.RRule
}

// NextOccurrence resolves the first repeat strictly after the given time.
// False for one-shot reminders and for exhausted rules.
func (r *Reminder) NextOccurrence(after time.Time) (time.Time, bool) {
	if r.RRule == "" {
		return time.Time{}, false
	}
	rruleSet, err := rrule.StrToRRuleSet(r.sourceStr())
	if err != nil {
		return time.Time{}, false
	}
	next := rruleSet.After(after.UTC(), false)
	if next.IsZero() {
		return time.Time{}, false
	}
	return next, true
}

func (r *Reminder) ToDiscordEmbed() *discordgo.MessageEmbed {
	embed := &discordgo.MessageEmbed{
		Title:       "Reminder",
		Description: r.Content,
		Fields: []*discordgo.MessageEmbedField{
			{
				Name:   "Due",
				Value:  fmt.Sprintf("<t:%d:f>", r.DueAt),
				Inline: true,
			},
		},
		Footer: &discordgo.MessageEmbedFooter{
			Text: r.ID,
		},
	}
	if r.RRule != "" {
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
			Name:   "Repeats",
			Value:  r.RRule,
			Inline: true,
		})
	}
	return embed
}
