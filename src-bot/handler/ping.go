package handler

import (
	"fmt"
	"log/slog"
	"runtime"

	"squire/dgmux"
	"squire/src-bot/utils"

	"github.com/bwmarrin/discordgo"
)

func Ping(as *utils.AppState) {
	as.Mux.Register(pingCommand(as))
}

func pingCommand(as *utils.AppState) *dgmux.Command {
	return &dgmux.Command{
		Name:        "ping",
		Description: "A ping command.",
		Run: func(ctx *dgmux.Ctx) error {
			var m runtime.MemStats
			runtime.ReadMemStats(&m)
			memUsage := float64(m.Sys) / 1024 / 1024

			embed := &discordgo.MessageEmbed{
				Title: "Pong!",
				Footer: &discordgo.MessageEmbedFooter{
					Text: ctx.GuildID(),
				},
				Fields: []*discordgo.MessageEmbedField{
					{
						Name:  "Uptime",
						Value: as.GetUptime().String(),
					},
					{
						Name:   "Latency",
						Value:  fmt.Sprintf("%dms", as.DgSession.HeartbeatLatency().Milliseconds()),
						Inline: true,
					},
					{
						Name:   "Go version",
						Value:  runtime.Version(),
						Inline: true,
					},
					{
						Name:   "Memory",
						Value:  fmt.Sprintf("%.2fMB", memUsage),
						Inline: true,
					},
				},
			}

			if err := ctx.SendEmbed(embed); err != nil {
				slog.Warn("can't respond", "handler", "ping", "error", err)
			}
			return nil
		},
	}
}
