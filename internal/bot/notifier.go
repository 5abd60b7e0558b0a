package bot

import (
	"context"
	"errors"
	"sync/atomic"

	"github.com/m3rciful/artbot/core/telegram/format"
	"github.com/m3rciful/artbot/internal/conversation"

	tele "gopkg.in/telebot.v4"
)

// ErrNotifierNotReady is reported when an alert is raised before the bot started.
var ErrNotifierNotReady = errors.New("admin notifier: bot is not started")

// MessageSender is the part of *tele.Bot used to deliver alerts.
type MessageSender interface {
	Send(to tele.Recipient, what interface{}, opts ...interface{}) (*tele.Message, error)
}

type senderBox struct{ s MessageSender }

// AdminNotifier sends incident alerts to the configured admin chat.
type AdminNotifier struct {
	adminID int64
	sender  atomic.Pointer[senderBox]
}

// NewAdminNotifier returns a notifier for adminID; 0 disables alerts.
func NewAdminNotifier(adminID int64) *AdminNotifier {
	return &AdminNotifier{adminID: adminID}
}

// SetSender attaches the bot once it is built.
func (n *AdminNotifier) SetSender(s MessageSender) {
	if s == nil {
		n.sender.Store(nil)
		return
	}
	n.sender.Store(&senderBox{s: s})
}

// Alert sends text as an escaped MarkdownV2 message.
func (n *AdminNotifier) Alert(_ context.Context, text string) conversation.AlertResult {
	if n.adminID == 0 {
		return conversation.AlertResult{Skipped: true}
	}
	box := n.sender.Load()
	if box == nil {
		return conversation.AlertResult{Err: ErrNotifierNotReady}
	}
	escaped, err := format.EscapeMarkdown(text, format.MarkdownV2)
	if err != nil {
		return conversation.AlertResult{Err: err}
	}
	_, err = box.s.Send(tele.ChatID(n.adminID), escaped, &tele.SendOptions{ParseMode: tele.ModeMarkdownV2})
	return conversation.AlertResult{Err: err}
}
