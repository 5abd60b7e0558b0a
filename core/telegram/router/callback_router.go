package router

import (
	"log/slog"

	tg "github.com/m3rciful/artbot/core/telegram"
	"github.com/m3rciful/artbot/core/telegram/callbacks"
	"github.com/m3rciful/artbot/core/telegram/middleware"
	"github.com/m3rciful/artbot/core/telegram/ui"

	tele "gopkg.in/telebot.v4"
)

// CallbackRoute routes button presses to the handler registered for their key.
// Unknown keys go to fb.UnknownCallback; without one the press is only acknowledged.
// Acknowledging is otherwise left to the resolved handler.
func CallbackRoute(reg *tg.Registry, fb ui.FallbackProvider) tg.Route {
	handler := func(c tele.Context) error {
		cb := c.Callback()
		if cb == nil {
			return nil
		}
		key, _ := callbacks.ParseCallbackData(cb)
		s := newSummary("callback."+handlerName(key), slog.String("cb_key", key))

		if reg != nil {
			if h, ok := reg.GetCallback(key); ok {
				return s.run(c, h)
			}
		}
		s.extras = append(s.extras, slog.String("reason", "not_found"))
		if fb != nil {
			if h := fb.UnknownCallback(); h != nil {
				return s.run(c, h)
			}
		}
		s.status = "skip"
		s.log(c, nil)
		return c.Respond()
	}
	return tg.Route{Endpoint: tele.OnCallback, Handler: wrap(handler)}
}

// wrap applies the per-route middleware shared by all routes.
func wrap(h tele.HandlerFunc) tele.HandlerFunc {
	return middleware.RecoverMiddleware(middleware.LoggerMiddleware(middleware.MessageMetricsMiddleware(h)))
}
