package conversation

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"time"

	"github.com/m3rciful/artbot/core/logger"
	"github.com/m3rciful/artbot/core/telegram/state"

	"github.com/google/uuid"
)

// Options wires a Router. Store and Log are required; the rest have defaults.
type Options struct {
	Store     state.Manager
	Log       *QuestionLog
	Selectors map[Mode]AnswerSelector
	Alerter   Alerter
	Delivery  DeliveryCounter
	Now       func() time.Time
	Version   string
}

// Router is the conversation state machine. It is safe for concurrent use.
type Router struct {
	store     state.Manager
	log       *QuestionLog
	selectors map[Mode]AnswerSelector
	alerter   Alerter
	delivery  DeliveryCounter
	now       func() time.Time
	version   string
}

// DefaultSelectors answers ask with the keyword table and the sticky modes from random pools.
func DefaultSelectors(src IntSource) map[Mode]AnswerSelector {
	pool := NewRandomPool(src, DefaultPools())
	return map[Mode]AnswerSelector{
		ModeAsk:          NewKeywordTable(DefaultRules()...),
		ModeFreeChat:     pool,
		ModeCoursePicker: pool,
	}
}

// New constructs a Router.
func New(opts Options) *Router {
	r := &Router{
		store:     opts.Store,
		log:       opts.Log,
		selectors: opts.Selectors,
		alerter:   opts.Alerter,
		delivery:  opts.Delivery,
		now:       opts.Now,
		version:   opts.Version,
	}
	if r.store == nil {
		r.store = state.NewMemoryManager()
	}
	if r.log == nil {
		r.log = NewQuestionLog(DefaultHistoryLimit)
	}
	if r.selectors == nil {
		r.selectors = DefaultSelectors(NewPCGSource(uint64(time.Now().UnixNano())))
	}
	if r.now == nil {
		r.now = time.Now
	}
	return r
}

// Mode returns the user's current mode.
func (r *Router) Mode(userID int64) Mode {
	return r.store.GetState(userID)
}

// Start resets the user to idle and greets with the main menu.
func (r *Router) Start(ctx context.Context, out Outbox, userID int64) error {
	prev := r.store.Transition(userID, func(Mode) Mode { return ModeIdle })
	return r.deliver(ctx, userID, prev, ModeIdle, "start", out.Send, Reply{Text: textGreeting, Menu: MainMenu()})
}

// Help lists the commands.
func (r *Router) Help(_ context.Context, out Outbox, _ int64) error {
	return out.Send(Reply{Text: textHelp})
}

// Health reports liveness with the current server time.
func (r *Router) Health(_ context.Context, out Outbox) error {
	text := "✅ Бот работает.\nВремя сервера: " + r.now().Format("2006-01-02 15:04:05 MST")
	if r.version != "" {
		text += "\nВерсия: " + r.version
	}
	return out.Send(Reply{Text: text})
}

// Cancel drops the user's session; unknown users read as idle.
func (r *Router) Cancel(ctx context.Context, out Outbox, userID int64) error {
	prev := r.store.Clear(userID)
	return r.deliver(ctx, userID, prev, ModeIdle, "cancel", out.Send, Reply{Text: textCancelled, Menu: MainMenu()})
}

// Button handles an inline button press. The press is acknowledged exactly once
// before anything else; a failed acknowledgment is logged and processing continues.
func (r *Router) Button(ctx context.Context, out Outbox, userID int64, id ButtonID) error {
	if err := out.Acknowledge(); err != nil {
		logger.Warn(ctx, logger.CompConversation, "button.ack_failed",
			slog.String("status", "fail"),
			slog.String("button", string(id)),
			slog.String("err", err.Error()),
		)
	}

	if mode, ok := modeButtons[id]; ok {
		prev := r.store.Transition(userID, func(Mode) Mode { return mode })
		return r.deliver(ctx, userID, prev, mode, "button."+string(id), out.Edit, Reply{Text: modePrompts[mode], Menu: PromptMenu()})
	}
	if id == ButtonReset {
		prev := r.store.Transition(userID, func(Mode) Mode { return ModeIdle })
		return r.deliver(ctx, userID, prev, ModeIdle, "button.reset", out.Edit, Reply{Text: textReset, Menu: MainMenu()})
	}
	if text, ok := infoTexts[id]; ok {
		return out.Edit(Reply{Text: text, Menu: MainMenu()})
	}

	logger.Info(ctx, logger.CompConversation, "button.unknown",
		slog.String("status", "skip"),
		slog.String("button", logger.SanitizeLimit(string(id), 64)),
	)
	return out.Edit(Reply{Text: textUnknownBtn, Menu: MainMenu()})
}

// Text records the message and answers it according to the user's mode.
// Ask answers once and returns to idle; free chat and course picker stay active.
// In any other mode the user is pointed at the menu.
func (r *Router) Text(ctx context.Context, out Outbox, userID int64, text string) error {
	r.log.Append(userID, r.now(), text)

	prev := r.store.Transition(userID, func(cur Mode) Mode {
		if _, ok := r.selectors[cur]; ok && !sticky(cur) {
			return ModeIdle
		}
		return cur
	})

	selector, ok := r.selectors[prev]
	if !ok {
		logger.Debug(ctx, logger.CompConversation, "text.nudge",
			slog.String("status", "skip"),
			slog.String("mode", string(prev)),
		)
		return out.Send(Reply{Text: textNudge, Menu: MainMenu()})
	}

	answer := selector.Answer(prev, text)
	next := prev
	if !sticky(prev) {
		next = ModeIdle
	}
	if err := r.deliver(ctx, userID, prev, next, "answered", out.Send, Reply{Text: answer.Text, Menu: MainMenu()}); err != nil {
		return err
	}

	outcome := "ok"
	if answer.Fallback {
		outcome = "fallback"
	}
	attrs := []slog.Attr{
		slog.String("status", "ok"),
		slog.String("outcome", outcome),
		slog.String("mode", string(prev)),
	}
	if answer.Rule != "" {
		attrs = append(attrs, slog.String("rule", answer.Rule))
	}
	logger.Info(ctx, logger.CompConversation, "text.answered", attrs...)
	return nil
}

// History lists the user's recent texts, oldest first.
func (r *Router) History(_ context.Context, out Outbox, userID int64) error {
	entries := r.log.Entries(userID)
	if len(entries) == 0 {
		return out.Send(Reply{Text: textHistoryEmpty, Menu: MainMenu()})
	}
	var b strings.Builder
	b.WriteString(textHistoryHead)
	for i, e := range entries {
		fmt.Fprintf(&b, "\n%d. [%s] %s", i+1, e.At.Format("02.01 15:04"), e.Text)
	}
	return out.Send(Reply{Text: b.String(), Menu: MainMenu()})
}

// Stats reports users per mode, logged questions and send totals.
func (r *Router) Stats(_ context.Context, out Outbox) error {
	counts := r.store.Count()
	modes := make([]string, 0, len(counts))
	total := 0
	for m, n := range counts {
		modes = append(modes, string(m))
		total += n
	}
	sort.Strings(modes)

	var b strings.Builder
	fmt.Fprintf(&b, "📊 Пользователей: %d", total)
	for _, m := range modes {
		fmt.Fprintf(&b, "\n  %s: %d", m, counts[Mode(m)])
	}
	fmt.Fprintf(&b, "\nВопросов в журнале: %d", r.log.Len())
	if r.delivery != nil {
		fmt.Fprintf(&b, "\nОтправлено сообщений: %d", r.delivery.SentCount())
		fmt.Fprintf(&b, "\nОшибок отправки: %d", r.delivery.ErrorCount())
	}
	return out.Send(Reply{Text: b.String()})
}

// ErrorMeta describes the update during which an error happened.
type ErrorMeta struct {
	UpdateID int
	UserID   int64
	Handler  string
}

// Error logs a handler failure under a new incident id and forwards it to the admin.
// Alert delivery is best-effort: its result is logged and then discarded.
func (r *Router) Error(ctx context.Context, err error, meta ErrorMeta) string {
	if err == nil {
		return ""
	}
	incident := uuid.NewString()
	ctx = logger.WithIncident(ctx, incident)
	if meta.UserID == 0 {
		meta.UserID = logger.UserIDFrom(ctx)
	}
	if meta.UpdateID == 0 {
		meta.UpdateID = logger.UpdateIDFrom(ctx)
	}
	if meta.Handler == "" {
		meta.Handler = logger.HandlerFrom(ctx)
	}

	logger.Error(ctx, logger.CompConversation, "handler.error",
		slog.String("status", "fail"),
		slog.String("err", logger.SanitizeLimit(err.Error(), 512)),
		slog.String("handler", meta.Handler),
		slog.Int64("user_id", meta.UserID),
		slog.Int("update_id", meta.UpdateID),
	)

	if r.alerter == nil {
		return incident
	}
	res := r.alerter.Alert(ctx, formatAlert(incident, err, meta, r.now()))
	switch {
	case res.Skipped:
		logger.Debug(ctx, logger.CompConversation, "alert.skipped", slog.String("status", "skip"))
	case res.Err != nil:
		logger.Warn(ctx, logger.CompConversation, "alert.failed",
			slog.String("status", "fail"),
			slog.String("err", res.Err.Error()),
		)
	default:
		logger.Debug(ctx, logger.CompConversation, "alert.sent", slog.String("status", "ok"))
	}
	return incident
}

func formatAlert(incident string, err error, meta ErrorMeta, at time.Time) string {
	var b strings.Builder
	b.WriteString("⚠️ Ошибка обработчика\n")
	fmt.Fprintf(&b, "incident: %s\n", incident)
	fmt.Fprintf(&b, "time: %s\n", at.UTC().Format(time.RFC3339))
	if meta.Handler != "" {
		fmt.Fprintf(&b, "handler: %s\n", meta.Handler)
	}
	if meta.UserID != 0 {
		fmt.Fprintf(&b, "user: %d\n", meta.UserID)
	}
	if meta.UpdateID != 0 {
		fmt.Fprintf(&b, "update: %d\n", meta.UpdateID)
	}
	fmt.Fprintf(&b, "error: %s", logger.SanitizeLimit(err.Error(), 1024))
	return b.String()
}

// deliver sends reply after the user was moved from prev to next. When delivery
// fails the user gets prev back, unless another update changed the mode meanwhile.
func (r *Router) deliver(ctx context.Context, userID int64, prev, next Mode, action string, send func(Reply) error, reply Reply) error {
	if err := send(reply); err != nil {
		if prev != next {
			r.store.Transition(userID, func(cur Mode) Mode {
				if cur == next {
					return prev
				}
				return cur
			})
			logger.Warn(ctx, logger.CompConversation, "mode.restored",
				slog.String("status", "fail"),
				slog.String("action", action),
				slog.String("mode", string(prev)),
				slog.String("err", err.Error()),
			)
		}
		return err
	}
	logModeChange(ctx, prev, next, action)
	return nil
}

func logModeChange(ctx context.Context, prev, next Mode, action string) {
	if prev == next {
		return
	}
	logger.Info(ctx, logger.CompConversation, "mode.changed",
		slog.String("status", "ok"),
		slog.String("action", action),
		slog.String("prev_mode", string(prev)),
		slog.String("mode", string(next)),
	)
}
