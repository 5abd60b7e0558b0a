package app

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/m3rciful/artbot/core/bootstrap"
	"github.com/m3rciful/artbot/core/buildinfo"
	corecmd "github.com/m3rciful/artbot/core/cmd"
	coreconfig "github.com/m3rciful/artbot/core/config"
	"github.com/m3rciful/artbot/core/logger"
	"github.com/m3rciful/artbot/internal/bot"
	"github.com/m3rciful/artbot/internal/conversation"
)

// Load adapts LoadConfig to the cmd runner.
func Load(path string) (corecmd.ConfigCarrier, error) {
	cfg, err := LoadConfig(path)
	if err != nil {
		return nil, err
	}
	return cfg, nil
}

// Bootstrap adapts Build to the cmd runner.
func Bootstrap(carrier corecmd.ConfigCarrier) (corecmd.TelegramApp, error) {
	cfg, ok := carrier.(*Config)
	if !ok {
		return nil, fmt.Errorf("app: unexpected config type %T", carrier)
	}
	return Build(cfg, nil)
}

// Build initializes core infrastructure and assembles the Telegram app.
// loggerInit overrides logger.InitLogger when non-nil.
func Build(cfg *Config, loggerInit func(*coreconfig.Config) error) (*bot.App, error) {
	if cfg == nil {
		return nil, errors.New("app: nil config")
	}
	res, err := bootstrap.Run(bootstrap.Options{
		Config:     &cfg.Config,
		LoggerInit: loggerInit,
	})
	if err != nil {
		return nil, err
	}

	notifier := bot.NewAdminNotifier(cfg.Telegram.AdminID)
	router := conversation.New(conversation.Options{
		Store:     res.Sessions,
		Log:       conversation.NewQuestionLog(cfg.Conversation.HistoryLimit),
		Selectors: Selectors(cfg.Conversation),
		Alerter:   notifier,
		Delivery:  res.Dispatcher,
		Version:   buildinfo.String(),
	})

	logger.Info(logger.Background(), logger.CompConversation, "router.ready",
		slog.String("status", "ok"),
		slog.String("ask_strategy", cfg.Conversation.AskStrategy),
		slog.Int("history_limit", cfg.Conversation.HistoryLimit),
	)
	return bot.NewApp(&cfg.Config, router, notifier, res.Dispatcher), nil
}

// Selectors builds the answer selectors for the configured ask strategy.
func Selectors(c ConversationConfig) map[conversation.Mode]conversation.AnswerSelector {
	seed := c.RandomSeed
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	selectors := conversation.DefaultSelectors(conversation.NewPCGSource(seed))
	if c.AskStrategy == AskRandom {
		selectors[conversation.ModeAsk] = selectors[conversation.ModeFreeChat]
	}
	return selectors
}
