package app

import (
	"errors"
	"fmt"
	"os"
	"strings"

	coreconfig "github.com/m3rciful/artbot/core/config"
	"github.com/m3rciful/artbot/internal/conversation"
)

// Answer strategies for the ask mode.
const (
	AskKeyword = "keyword"
	AskRandom  = "random"
)

// legacyTokenEnv is read when TELEGRAM_TOKEN is not set.
const legacyTokenEnv = "BOT_TOKEN"

// ConversationConfig tunes the conversation router.
type ConversationConfig struct {
	AskStrategy  string `yaml:"ask_strategy" envconfig:"ASK_STRATEGY"`
	HistoryLimit int    `yaml:"history_limit" envconfig:"HISTORY_LIMIT"`
	// RandomSeed seeds the random answer pools; 0 seeds from the clock.
	RandomSeed uint64 `yaml:"random_seed" envconfig:"RANDOM_SEED"`
}

// Config is the full bot configuration: the core section plus conversation settings.
type Config struct {
	coreconfig.Config `yaml:",inline"`
	Conversation      ConversationConfig `yaml:"conversation"`
}

// CoreConfig implements cmd.ConfigCarrier.
func (c *Config) CoreConfig() *coreconfig.Config {
	if c == nil {
		return nil
	}
	return &c.Config
}

// LoadConfig reads the YAML file at path (optional) and the environment.
func LoadConfig(path string) (*Config, error) {
	var cfg Config
	if err := coreconfig.Decode(path, &cfg); err != nil {
		return nil, err
	}
	if strings.TrimSpace(cfg.Telegram.Token) == "" {
		cfg.Telegram.Token = os.Getenv(legacyTokenEnv)
	}
	if err := coreconfig.Normalize(&cfg.Config); err != nil {
		return nil, err
	}
	if err := normalizeConversation(&cfg.Conversation); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func normalizeConversation(c *ConversationConfig) error {
	if c == nil {
		return errors.New("nil conversation config")
	}
	c.AskStrategy = strings.ToLower(strings.TrimSpace(c.AskStrategy))
	switch c.AskStrategy {
	case "":
		c.AskStrategy = AskKeyword
	case AskKeyword, AskRandom:
	default:
		return fmt.Errorf("invalid conversation.ask_strategy %q; allowed: keyword, random", c.AskStrategy)
	}
	if c.HistoryLimit < 0 {
		return fmt.Errorf("conversation.history_limit must be >= 0")
	}
	if c.HistoryLimit == 0 {
		c.HistoryLimit = conversation.DefaultHistoryLimit
	}
	return nil
}
