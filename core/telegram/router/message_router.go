package router

import (
	tg "github.com/m3rciful/artbot/core/telegram"
	"github.com/m3rciful/artbot/core/telegram/ui"

	tele "gopkg.in/telebot.v4"
)

// TextRoute hands plain text to fb.UnknownText. Commands never reach it: telebot
// routes them to their own endpoints.
func TextRoute(fb ui.FallbackProvider) tg.Route {
	handler := func(c tele.Context) error {
		s := newSummary("text")
		if fb != nil {
			if h := fb.UnknownText(); h != nil {
				return s.run(c, h)
			}
		}
		s.status = "skip"
		s.log(c, nil)
		return nil
	}
	return tg.Route{Endpoint: tele.OnText, Handler: wrap(handler)}
}
