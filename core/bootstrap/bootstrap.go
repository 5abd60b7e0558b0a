package bootstrap

import (
	"errors"
	"fmt"
	"log/slog"

	coreconfig "github.com/m3rciful/artbot/core/config"
	"github.com/m3rciful/artbot/core/logger"
	tgsender "github.com/m3rciful/artbot/core/telegram/sender"
	"github.com/m3rciful/artbot/core/telegram/state"
)

// Options control the generic bootstrap pipeline shared between bots.
type Options struct {
	Config *coreconfig.Config

	LoggerInit func(*coreconfig.Config) error
	// Sessions overrides the in-memory session store.
	Sessions state.Manager
}

// Result exposes infrastructure initialized by the bootstrap pipeline.
type Result struct {
	Sessions   state.Manager
	Dispatcher *tgsender.Dispatcher
}

// Run initializes the logger, the session store and the outbound dispatcher.
func Run(opts Options) (*Result, error) {
	if opts.Config == nil {
		return nil, errors.New("bootstrap: nil config provided")
	}

	loggerInit := opts.LoggerInit
	if loggerInit == nil {
		loggerInit = logger.InitLogger
	}
	if err := loggerInit(opts.Config); err != nil {
		return nil, fmt.Errorf("bootstrap: logger init failed: %w", err)
	}

	sessions := opts.Sessions
	if sessions == nil {
		sessions = state.NewMemoryManager()
	}

	sc := opts.Config.Sender
	dispatcher := tgsender.NewDispatcher(tgsender.Options{
		QueueSize:  sc.QueueSize,
		Workers:    sc.Workers,
		MaxRetries: sc.MaxRetries,
	})

	logger.Info(logger.Background(), logger.CompApp, "bootstrap.done",
		slog.String("status", "ok"),
		slog.String("mode", opts.Config.Telegram.RunMode),
		slog.Bool("admin", opts.Config.Telegram.AdminID != 0),
		slog.Int("sender_retries", sc.MaxRetries),
	)
	return &Result{Sessions: sessions, Dispatcher: dispatcher}, nil
}
