package router

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/m3rciful/artbot/core/logger"
	tghelpers "github.com/m3rciful/artbot/core/telegram/helpers"
	"github.com/m3rciful/artbot/core/telegram/middleware"
	"github.com/m3rciful/artbot/core/telegram/sender"

	tele "gopkg.in/telebot.v4"
)

// summary is the completion record logged once per routed update.
type summary struct {
	name   string
	start  time.Time
	status string
	extras []slog.Attr
}

func newSummary(name string, extras ...slog.Attr) *summary {
	return &summary{name: name, start: time.Now(), extras: extras}
}

// run tags the update context with the handler name, calls h and logs the result.
func (s *summary) run(c tele.Context, h tele.HandlerFunc) error {
	tghelpers.WithHandler(c, s.name)
	err := h(c)
	s.log(c, err)
	return err
}

func (s *summary) log(c tele.Context, err error) {
	ctx := tghelpers.WithHandler(c, s.name)
	msgs, kb := middleware.GetCounters(c)

	status := s.status
	switch {
	case status != "":
	case err != nil:
		status = "fail"
	default:
		status = "ok"
	}

	attrs := append([]slog.Attr{
		slog.String("status", status),
		slog.String("handler", s.name),
		slog.Int("messages", msgs),
		slog.Bool("kb", kb),
		slog.Duration("duration", time.Since(s.start)),
	}, s.extras...)
	if err != nil {
		attrs = append(attrs,
			slog.String("err", logger.SanitizeLimit(err.Error(), 256)),
			slog.String("err_code", errorCode(err)),
		)
	}
	logger.Info(ctx, logger.CompTG, "handler.done", attrs...)
}

// handlerName turns a command or callback key into a log-friendly name.
func handlerName(key string) string {
	key = strings.TrimPrefix(strings.TrimSpace(key), "/")
	if key == "" {
		return "unknown"
	}
	return strings.ToLower(strings.ReplaceAll(key, " ", "_"))
}

// errorCode maps err to a short upper-case code for summary logs.
func errorCode(err error) string {
	var (
		flood  tele.FloodError
		apiErr *tele.Error
	)
	switch {
	case err == nil:
		return ""
	case errors.As(err, &flood):
		return "FLOOD"
	case errors.As(err, &apiErr):
		return fmt.Sprintf("TG_%d", apiErr.Code)
	case errors.Is(err, sender.ErrQueueFull):
		return "QUEUE_FULL"
	case errors.Is(err, sender.ErrQueueClosed):
		return "QUEUE_CLOSED"
	case errors.Is(err, context.DeadlineExceeded):
		return "TIMEOUT"
	}
	if c, ok := err.(interface{ Code() string }); ok {
		if code := strings.TrimSpace(c.Code()); code != "" {
			return strings.ToUpper(strings.ReplaceAll(code, " ", "_"))
		}
	}
	name := strings.TrimLeft(fmt.Sprintf("%T", err), "*")
	if i := strings.LastIndexByte(name, '.'); i >= 0 {
		name = name[i+1:]
	}
	return strings.ToUpper(name)
}
