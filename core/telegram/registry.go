package telegram

import (
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"sync"

	"github.com/m3rciful/artbot/core/logger"
	"github.com/m3rciful/artbot/core/telegram/commands"

	tele "gopkg.in/telebot.v4"
)

var (
	// ErrInvalidRegistration is returned for empty names, missing handlers or descriptions.
	ErrInvalidRegistration = errors.New("telegram registry: invalid registration")
	// ErrDuplicate is returned when a name is registered twice.
	ErrDuplicate = errors.New("telegram registry: already registered")
)

// Registry maps command names and callback keys to handlers.
type Registry struct {
	mu        sync.RWMutex
	commands  map[string]commands.Command
	callbacks map[string]tele.HandlerFunc
}

// NewRegistry creates an empty Registry.
func NewRegistry() *Registry {
	return &Registry{
		commands:  make(map[string]commands.Command),
		callbacks: make(map[string]tele.HandlerFunc),
	}
}

// RegisterCommand adds cmd under name. Names start with a slash and need a description.
func (r *Registry) RegisterCommand(name string, cmd commands.Command) error {
	switch {
	case cmd.Handler == nil || strings.TrimSpace(cmd.Description) == "":
		return rejected("command", name, ErrInvalidRegistration)
	case !strings.HasPrefix(name, "/") || len(name) < 2:
		return rejected("command", name, fmt.Errorf("%w: %q lacks a slash prefix", ErrInvalidRegistration, name))
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, dup := r.commands[name]; dup {
		return rejected("command", name, ErrDuplicate)
	}
	r.commands[name] = cmd
	return nil
}

// RegisterCallback binds handler to the callback unique key.
func (r *Registry) RegisterCallback(key string, handler tele.HandlerFunc) error {
	if key == "" || handler == nil {
		return rejected("callback", key, ErrInvalidRegistration)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, dup := r.callbacks[key]; dup {
		return rejected("callback", key, ErrDuplicate)
	}
	r.callbacks[key] = handler
	return nil
}

func rejected(kind, name string, err error) error {
	logger.Warn(logger.Background(), logger.CompWire, "register."+kind+".rejected",
		slog.String("status", "skip"),
		slog.String("name", name),
		slog.String("err", err.Error()),
	)
	return fmt.Errorf("%s %q: %w", kind, name, err)
}

// Commands returns a copy of the registered commands.
func (r *Registry) Commands() map[string]commands.Command {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make(map[string]commands.Command, len(r.commands))
	for name, cmd := range r.commands {
		out[name] = cmd
	}
	return out
}

// ListCommands returns commands sorted by name. visibleOnly drops hidden and admin-only ones.
func (r *Registry) ListCommands(visibleOnly bool) []tele.Command {
	var list []tele.Command
	for name, cmd := range r.Commands() {
		if visibleOnly && (cmd.Hidden || cmd.AdminOnly) {
			continue
		}
		list = append(list, tele.Command{Text: name, Description: cmd.Description})
	}
	sort.Slice(list, func(i, j int) bool { return list[i].Text < list[j].Text })
	return list
}

// GetCallback returns the handler bound to key.
func (r *Registry) GetCallback(key string) (tele.HandlerFunc, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	h, ok := r.callbacks[key]
	return h, ok
}

// ListCallbacks returns the registered keys in sorted order.
func (r *Registry) ListCallbacks() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	keys := make([]string, 0, len(r.callbacks))
	for k := range r.callbacks {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// InitBotCommands publishes the visible commands to the Telegram command menu.
func InitBotCommands(bot *tele.Bot, reg *Registry) {
	cmds := reg.ListCommands(true)
	ctx := logger.Background()
	if err := bot.SetCommands(cmds); err != nil {
		logger.Error(ctx, logger.CompWire, "register.commands.publish",
			slog.String("status", "fail"),
			slog.String("err", err.Error()),
		)
		return
	}
	logger.Info(ctx, logger.CompWire, "register.commands.publish",
		slog.String("status", "ok"),
		slog.Int("commands", len(cmds)),
	)
}
