package bot

import (
	"github.com/m3rciful/artbot/core/telegram/helpers"
	"github.com/m3rciful/artbot/core/telegram/keyboard"
	"github.com/m3rciful/artbot/internal/conversation"

	tele "gopkg.in/telebot.v4"
)

// outbox delivers router replies for the update carried by c.
type outbox struct {
	c tele.Context
}

func newOutbox(c tele.Context) conversation.Outbox {
	return outbox{c: c}
}

func (o outbox) Acknowledge() error {
	if o.c.Callback() == nil {
		return nil
	}
	return o.c.Respond()
}

func (o outbox) Send(r conversation.Reply) error {
	return helpers.SendText(o.c, r.Text, Markup(r.Menu))
}

func (o outbox) Edit(r conversation.Reply) error {
	return helpers.EditOrSendText(o.c, r.Text, Markup(r.Menu))
}

// Markup renders a menu as an inline keyboard. The button id is the callback unique.
// An empty menu yields nil so messages go out without a keyboard.
func Markup(menu conversation.Menu) *tele.ReplyMarkup {
	if len(menu) == 0 {
		return nil
	}
	rows := make([][]keyboard.InlineBtn, 0, len(menu))
	for _, row := range menu {
		btns := make([]keyboard.InlineBtn, 0, len(row))
		for _, b := range row {
			btns = append(btns, keyboard.InlineBtn{Text: b.Label, Unique: string(b.ID)})
		}
		rows = append(rows, btns)
	}
	return keyboard.InlineButtonsRows(rows...)
}
