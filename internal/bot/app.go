// Package bot wires the dialogue engine into the Telegram transport:
// command/callback registration, routing, and reply rendering.
package bot

import (
	"context"
	"fmt"
	"sync/atomic"

	"log/slog"

	"github.com/m3rciful/taskbot/internal/config"
	"github.com/m3rciful/taskbot/internal/dialog"
	"github.com/m3rciful/taskbot/internal/logger"
	"github.com/m3rciful/taskbot/internal/observability"
	"github.com/m3rciful/taskbot/internal/session"
	tg "github.com/m3rciful/taskbot/internal/telegram"
	"github.com/m3rciful/taskbot/internal/telegram/callbacks"
	"github.com/m3rciful/taskbot/internal/telegram/commands"
	tghelpers "github.com/m3rciful/taskbot/internal/telegram/helpers"
	"github.com/m3rciful/taskbot/internal/telegram/router"
	"github.com/m3rciful/taskbot/internal/telegram/sender"

	tele "gopkg.in/telebot.v4"
)

// App glues the dialogue engine to the Telegram bot runtime.
type App struct {
	cfg      *config.Config
	engine   *dialog.Engine
	sessions session.Store
	metrics  *observability.Metrics

	dispatcher atomic.Pointer[sender.Dispatcher]
}

// New builds the app around an already-constructed engine. Metrics may be
// nil when the listener is disabled.
func New(cfg *config.Config, engine *dialog.Engine, sessions session.Store, metrics *observability.Metrics) *App {
	return &App{
		cfg:      cfg,
		engine:   engine,
		sessions: sessions,
		metrics:  metrics,
	}
}

// InProgress reports whether the user is mid-dialogue. Part of
// router.Conversation.
func (a *App) InProgress(userID int64) bool {
	return a.sessions.InProgress(userID)
}

// Handle routes a text update into the dialogue engine. Part of
// router.Conversation.
func (a *App) Handle(c tele.Context) error {
	return a.onText(c)
}

// RunOptions assembles the registry, routes and middlewares for
// tg.RunTelegram.
func (a *App) RunOptions() tg.RunOptions {
	reg := tg.NewRegistry()
	a.registerCommands(reg)
	a.registerCallbacks(reg)
	reg.SetTextFallback(a.onText)

	routes := router.TextRoutes(a, reg, router.TextOptions{})
	routes = append(routes, router.CallbackRoute(reg, router.CallbackOptions{}))
	routes = append(routes, router.CommandRoutes(reg, router.CommandRouteOptions{
		AdminID: a.cfg.Telegram.AdminID,
	})...)

	return tg.RunOptions{
		Config:      a.cfg,
		Registry:    reg,
		Middlewares: tg.DefaultMiddlewares(a.cfg, nil),
		Routes:      routes,
		OnStart: func(_ context.Context, rt tg.Runtime) error {
			a.dispatcher.Store(rt.Dispatcher)
			return nil
		},
	}
}

func (a *App) registerCommands(reg *tg.Registry) {
	reg.RegisterCommand("/start", commands.Command{
		Description: "Open the main menu",
		Handler: func(c tele.Context) error {
			return renderReply(c, a.engine.Welcome(c.Sender().ID))
		},
	})
	reg.RegisterCommand("/help", commands.Command{
		Description: "Show usage hints",
		Handler: func(c tele.Context) error {
			return renderReply(c, a.engine.Help())
		},
	})
	reg.RegisterCommand("/stats", commands.Command{
		Description: "Runtime counters",
		AdminOnly:   true,
		Hidden:      true,
		Handler:     a.onStats,
	})
}

func (a *App) registerCallbacks(reg *tg.Registry) {
	for _, key := range dialog.CallbackKeys() {
		if err := reg.RegisterCallback(key, a.onCallback); err != nil {
			logger.LogEvent(logger.Background(), logger.TG, slog.LevelWarn, "callback.register.fail",
				slog.String("key", key),
				slog.String("err", err.Error()),
			)
		}
	}
}

func (a *App) onText(c tele.Context) error {
	ctx := tghelpers.BuildContext(c)
	a.countUpdate(config.UpdateMessage)

	replies, err := a.engine.HandleText(ctx, c.Sender().ID, c.Text())
	a.observeResult("text", err)
	if rerr := renderReplies(c, replies); rerr != nil {
		return rerr
	}
	return err
}

func (a *App) onCallback(c tele.Context) error {
	ctx := tghelpers.BuildContext(c)
	a.countUpdate(config.UpdateCallback)

	replies, err := a.engine.HandleCallback(ctx, c.Sender().ID, callbacks.Data(c))
	a.observeResult("callback", err)
	if rerr := renderReplies(c, replies); rerr != nil {
		return rerr
	}
	return err
}

func (a *App) onStats(c tele.Context) error {
	var sendErrors uint64
	if d := a.dispatcher.Load(); d != nil {
		sendErrors = d.ErrorCount()
	}
	text := fmt.Sprintf("Active sessions: %d\nSend errors: %d",
		a.sessions.Count(), sendErrors)
	return tghelpers.SendText(c, text)
}

func (a *App) countUpdate(kind string) {
	if a.metrics == nil {
		return
	}
	a.metrics.UpdatesTotal.WithLabelValues(kind).Inc()
}

func (a *App) observeResult(handler string, err error) {
	if a.metrics == nil {
		return
	}
	if err != nil {
		a.metrics.HandlerErrors.WithLabelValues(handler).Inc()
	}
	a.metrics.ActiveSessions.Set(float64(a.sessions.Count()))
}
