package bot

import (
	"log/slog"

	"github.com/m3rciful/artbot/core/logger"
	tg "github.com/m3rciful/artbot/core/telegram"
	"github.com/m3rciful/artbot/core/telegram/callbacks"
	"github.com/m3rciful/artbot/core/telegram/commands"
	tghelpers "github.com/m3rciful/artbot/core/telegram/helpers"
	"github.com/m3rciful/artbot/internal/conversation"

	tele "gopkg.in/telebot.v4"
)

const (
	textAdminOnly   = "Команда доступна только администратору."
	textRateLimited = "Слишком часто, подождите немного."
)

// Handlers adapts telebot updates to conversation.Router calls.
type Handlers struct {
	router *conversation.Router
}

// NewHandlers wraps router.
func NewHandlers(router *conversation.Router) *Handlers {
	return &Handlers{router: router}
}

func senderID(c tele.Context) int64 {
	if u := c.Sender(); u != nil {
		return u.ID
	}
	return 0
}

// Register adds the commands and one callback per known button id to reg.
// Unknown buttons and plain text reach the router through UnknownCallback and UnknownText.
func (h *Handlers) Register(reg *tg.Registry) error {
	cmds := []struct {
		name string
		cmd  commands.Command
	}{
		{"/start", commands.Command{Handler: h.start, Description: "Главное меню"}},
		{"/help", commands.Command{Handler: h.help, Description: "Справка"}},
		{"/cancel", commands.Command{Handler: h.cancel, Description: "Выйти из режима"}},
		{"/history", commands.Command{Handler: h.history, Description: "Мои вопросы"}},
		{"/health", commands.Command{Handler: h.health, Description: "Проверка работы", Hidden: true}},
		{"/stats", commands.Command{Handler: h.stats, Description: "Статистика", AdminOnly: true}},
	}
	for _, c := range cmds {
		if err := reg.RegisterCommand(c.name, c.cmd); err != nil {
			return err
		}
	}
	for _, id := range conversation.ButtonIDs {
		if err := reg.RegisterCallback(string(id), h.button); err != nil {
			return err
		}
	}

	logger.Info(logger.Background(), logger.CompWire, "register.handlers",
		slog.String("status", "ok"),
		slog.Int("commands", len(cmds)),
		slog.Int("callbacks", len(conversation.ButtonIDs)),
	)
	return nil
}

func (h *Handlers) start(c tele.Context) error {
	return h.router.Start(tghelpers.BuildContext(c), newOutbox(c), senderID(c))
}

func (h *Handlers) help(c tele.Context) error {
	return h.router.Help(tghelpers.BuildContext(c), newOutbox(c), senderID(c))
}

func (h *Handlers) health(c tele.Context) error {
	return h.router.Health(tghelpers.BuildContext(c), newOutbox(c))
}

func (h *Handlers) cancel(c tele.Context) error {
	return h.router.Cancel(tghelpers.BuildContext(c), newOutbox(c), senderID(c))
}

func (h *Handlers) history(c tele.Context) error {
	return h.router.History(tghelpers.BuildContext(c), newOutbox(c), senderID(c))
}

func (h *Handlers) stats(c tele.Context) error {
	return h.router.Stats(tghelpers.BuildContext(c), newOutbox(c))
}

func (h *Handlers) button(c tele.Context) error {
	id := conversation.ButtonID(callbacks.CallbackKey(c))
	return h.router.Button(tghelpers.BuildContext(c), newOutbox(c), senderID(c), id)
}

func (h *Handlers) text(c tele.Context) error {
	return h.router.Text(tghelpers.BuildContext(c), newOutbox(c), senderID(c), c.Text())
}

// UnknownText answers texts that reach no route.
func (h *Handlers) UnknownText() tele.HandlerFunc {
	return h.text
}

// UnknownCallback routes unregistered button ids through the router's fallback branch.
func (h *Handlers) UnknownCallback() tele.HandlerFunc {
	return h.button
}

// AdminReject tells non-admin users the command is restricted.
func AdminReject(c tele.Context) error {
	return tghelpers.SendText(c, textAdminOnly)
}

// RateLimited answers throttled updates. Callbacks still get their acknowledgment.
func RateLimited(c tele.Context) error {
	if c.Callback() != nil {
		return c.Respond(&tele.CallbackResponse{Text: textRateLimited})
	}
	return nil
}
