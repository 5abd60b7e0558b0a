package helpers

import (
	"errors"
	"log/slog"
	"sync/atomic"

	"github.com/m3rciful/artbot/core/logger"
	"github.com/m3rciful/artbot/core/telegram/sender"

	tele "gopkg.in/telebot.v4"
)

var globalDispatcher atomic.Pointer[sender.Dispatcher]

// SetDispatcher wires the asynchronous sender used by helper functions.
func SetDispatcher(d *sender.Dispatcher) {
	globalDispatcher.Store(d)
}

// CurrentDispatcher returns the dispatcher set by SetDispatcher, if any.
func CurrentDispatcher() *sender.Dispatcher {
	return globalDispatcher.Load()
}

// sendAsync enqueues run on the dispatcher. Without a dispatcher, or when the queue
// rejects the job, run executes inline so the reply is not lost.
func sendAsync(c tele.Context, action, endpoint string, run func() error) error {
	disp := CurrentDispatcher()
	if disp == nil {
		return run()
	}

	ctx := BuildContext(c)
	err := disp.Enqueue(ctx, action, endpoint, run)
	switch {
	case err == nil:
		return nil
	case errors.Is(err, sender.ErrQueueFull), errors.Is(err, sender.ErrQueueClosed):
		logger.Warn(ctx, logger.CompSender, "queue.fallback",
			slog.String("action", action),
			slog.String("endpoint", endpoint),
			slog.String("err", err.Error()),
		)
		return run()
	default:
		return err
	}
}

func firstMarkup(markup []*tele.ReplyMarkup) *tele.ReplyMarkup {
	if len(markup) > 0 {
		return markup[0]
	}
	return nil
}

// SendText sends plain text (no parse mode) with an optional inline keyboard.
func SendText(c tele.Context, text string, markup ...*tele.ReplyMarkup) error {
	opts := &tele.SendOptions{ReplyMarkup: firstMarkup(markup)}
	return sendAsync(c, "send.text", "sendMessage", func() error {
		return c.Send(text, opts)
	})
}

// EditOrSendText edits the message that carried the callback. When there is nothing
// to edit or Telegram refuses the edit, a new message is sent instead.
func EditOrSendText(c tele.Context, text string, markup ...*tele.ReplyMarkup) error {
	opts := &tele.SendOptions{ReplyMarkup: firstMarkup(markup)}
	return sendAsync(c, "edit.text", "editMessageText", func() error {
		if c.Callback() == nil || c.Message() == nil {
			return c.Send(text, opts)
		}
		err := c.Edit(text, opts)
		if err == nil || isNotModified(err) {
			return nil
		}
		return c.Send(text, opts)
	})
}

func isNotModified(err error) bool {
	return errors.Is(err, tele.ErrSameMessageContent) || errors.Is(err, tele.ErrMessageNotModified)
}
