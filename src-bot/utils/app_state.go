package utils

import (
	"database/sql"
	"log/slog"
	"os"
	"sync"
	"time"

	"squire/dgmux"
	"squire/src-bot/api"

	"github.com/bwmarrin/discordgo"
	"github.com/olebedev/when"
	"github.com/olebedev/when/rules/common"
	"github.com/olebedev/when/rules/en"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/sqlitedialect"
	"github.com/uptrace/bun/driver/sqliteshim"
	"github.com/uptrace/bun/extra/bundebug"
)

type AppState struct {
	Config    *Config
	RawDB     *sql.DB
	BunDB     *bun.DB
	DgSession *discordgo.Session
	When      *when.Parser

	// prefix command muxer, fed into DgSession.AddHandler in main
	Mux *dgmux.Mux
	// client for the companion site's REST API
	Api *api.Client

	MetricChans        *Metric
	AppCloseSignalChan chan os.Signal

	startedAt time.Time

	gracefulShutdownChansMutex sync.Mutex
	gracefulShutdownChans      []chan struct{}
}

func NewAppState() *AppState {
	as := &AppState{
		MetricChans:        NewMetric(),
		AppCloseSignalChan: make(chan os.Signal, 1),
		startedAt:          time.Now(),
	}

	// date parser
	as.When = when.New(nil)
	as.When.Add(en.All...)
	as.When.Add(common.All...)

	// env
	as.Config = NewConfig()

	// database
	var err error
	as.RawDB, err = sql.Open(sqliteshim.ShimName, as.Config.GetSqlitePath()+"?mode=rwc")
	if err != nil {
		slog.Error("cannot open sqlite database", "error", err)
		os.Exit(1)
	}
	as.RawDB.SetMaxIdleConns(8)

	as.BunDB = bun.NewDB(as.RawDB, sqlitedialect.New())
	as.BunDB.AddQueryHook(bundebug.NewQueryHook(
		bundebug.WithVerbose(true),
		bundebug.FromEnv("BUNDEBUG"),
	))

	// discord session, message content needed for prefix commands
	as.DgSession, err = discordgo.New("Bot " + as.Config.GetDiscordAppToken())
	if err != nil {
		slog.Error("cannot create discord session", "error", err)
		os.Exit(1)
	}
	as.DgSession.Identify.Intents = discordgo.IntentsGuildMessages |
		discordgo.IntentsDirectMessages |
		discordgo.IntentMessageContent

	// site API client
	as.Api = api.NewClient(as.Config.GetSiteAPIURL(), as.Config.GetSiteAPIToken())

	// command muxer; the chan sends run in goroutines so a slow Prometheus
	// collector never stalls a command
	as.Mux = dgmux.New(as.Config.GetPrefix())
	as.Mux.OnInvoke = func(ctx *dgmux.Ctx) {
		name := ctx.Command.QualifiedName()
		go func() {
			as.MetricChans.CommandInvocation <- name
		}()
	}
	as.Mux.OnSend = func(elapsed time.Duration) {
		go func() {
			as.MetricChans.DiscordSendMessage <- float64(elapsed.Microseconds())
		}()
	}

	return as
}

func (as *AppState) GetUptime() time.Duration {
	return time.Since(as.startedAt)
}

// CreateGracefulShutdownChan hands out a chan that gets closed when the app
// is shutting down. Every long-running goroutine should grab one.
func (as *AppState) CreateGracefulShutdownChan() *chan struct{} {
	as.gracefulShutdownChansMutex.Lock()
	defer as.gracefulShutdownChansMutex.Unlock()

	ch := make(chan struct{})
	as.gracefulShutdownChans = append(as.gracefulShutdownChans, ch)
	return &ch
}

// GracefulShutdown tells everyone holding a shutdown chan to wrap up.
func (as *AppState) GracefulShutdown() {
	as.gracefulShutdownChansMutex.Lock()
	defer as.gracefulShutdownChansMutex.Unlock()

	for _, ch := range as.gracefulShutdownChans {
		close(ch)
	}
	as.gracefulShutdownChans = nil
}
