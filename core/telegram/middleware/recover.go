package middleware

import (
	"fmt"
	"log/slog"
	"runtime/debug"
	"sync/atomic"

	"github.com/m3rciful/artbot/core/logger"
	tghelpers "github.com/m3rciful/artbot/core/telegram/helpers"

	tele "gopkg.in/telebot.v4"
)

// PanicHook receives panics recovered from handlers, converted to errors.
type PanicHook func(err error, c tele.Context)

var panicHook atomic.Pointer[PanicHook]

// SetPanicHook installs fn as the receiver of recovered panics. A nil fn removes it.
func SetPanicHook(fn PanicHook) {
	if fn == nil {
		panicHook.Store(nil)
		return
	}
	panicHook.Store(&fn)
}

// RecoverMiddleware catches panics in handlers and prevents the bot from crashing.
func RecoverMiddleware(next tele.HandlerFunc) tele.HandlerFunc {
	return func(c tele.Context) error {
		defer func() {
			r := recover()
			if r == nil {
				return
			}
			err, ok := r.(error)
			if !ok {
				err = fmt.Errorf("panic: %v", r)
			}
			ctx := tghelpers.BuildContext(c)
			logger.Error(ctx, logger.CompTG, "tg.panic",
				slog.String("status", "fail"),
				slog.String("err", err.Error()),
				slog.String("stack", string(debug.Stack())),
			)
			if hook := panicHook.Load(); hook != nil {
				(*hook)(err, c)
			}
		}()
		return next(c)
	}
}
