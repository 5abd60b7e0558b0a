package bot

import (
	"context"
	"errors"

	coreconfig "github.com/m3rciful/artbot/core/config"
	"github.com/m3rciful/artbot/core/logger"
	tg "github.com/m3rciful/artbot/core/telegram"
	tghelpers "github.com/m3rciful/artbot/core/telegram/helpers"
	"github.com/m3rciful/artbot/core/telegram/middleware"
	"github.com/m3rciful/artbot/core/telegram/router"
	tgsender "github.com/m3rciful/artbot/core/telegram/sender"
	"github.com/m3rciful/artbot/internal/conversation"

	tele "gopkg.in/telebot.v4"
)

// App binds the conversation router to the Telegram runtime.
type App struct {
	cfg        *coreconfig.Config
	router     *conversation.Router
	handlers   *Handlers
	notifier   *AdminNotifier
	dispatcher *tgsender.Dispatcher
}

// NewApp assembles the Telegram side of the bot.
func NewApp(cfg *coreconfig.Config, r *conversation.Router, notifier *AdminNotifier, dispatcher *tgsender.Dispatcher) *App {
	return &App{
		cfg:        cfg,
		router:     r,
		handlers:   NewHandlers(r),
		notifier:   notifier,
		dispatcher: dispatcher,
	}
}

// TelegramRunOptions builds the routes, middleware and hooks for tg.RunTelegram.
func (a *App) TelegramRunOptions() (tg.RunOptions, error) {
	if a.cfg == nil || a.router == nil {
		return tg.RunOptions{}, errors.New("bot: app is not initialized")
	}

	reg := tg.NewRegistry()
	if err := a.handlers.Register(reg); err != nil {
		return tg.RunOptions{}, err
	}

	routes := router.CommandRoutes(reg, router.CommandRouteOptions{
		AdminID:       a.cfg.Telegram.AdminID,
		OnAdminReject: AdminReject,
	})
	routes = append(routes,
		router.CallbackRoute(reg, a.handlers),
		router.TextRoute(a.handlers),
	)

	return tg.RunOptions{
		Config:      a.cfg,
		Registry:    reg,
		Dispatcher:  a.dispatcher,
		Middlewares: tg.DefaultMiddlewares(a.cfg, RateLimited),
		Routes:      routes,
		OnError:     a.reportError,
		OnStart: func(_ context.Context, rt tg.Runtime) error {
			if a.notifier != nil {
				a.notifier.SetSender(rt.Bot)
			}
			middleware.SetPanicHook(a.reportError)
			return nil
		},
		OnStop: func(_ context.Context, _ tg.Runtime) error {
			middleware.SetPanicHook(nil)
			if a.notifier != nil {
				a.notifier.SetSender(nil)
			}
			return nil
		},
	}, nil
}

// reportError is the dispatch boundary for handler failures and recovered panics.
// The user gets no special reply and keeps the current mode.
func (a *App) reportError(err error, c tele.Context) {
	ctx := tghelpers.BuildContext(c)
	meta := conversation.ErrorMeta{
		UpdateID: logger.UpdateIDFrom(ctx),
		UserID:   logger.UserIDFrom(ctx),
		Handler:  logger.HandlerFrom(ctx),
	}
	a.router.Error(ctx, err, meta)
}
