package router

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	tg "github.com/m3rciful/artbot/core/telegram"
	"github.com/m3rciful/artbot/core/telegram/commands"
	"github.com/m3rciful/artbot/core/telegram/sender"

	tele "gopkg.in/telebot.v4"
)

func newTestBot(t *testing.T) *tele.Bot {
	t.Helper()
	b, err := tele.NewBot(tele.Settings{Offline: true})
	if err != nil {
		t.Fatalf("offline bot: %v", err)
	}
	return b
}

func callbackUpdate(id int, data string) tele.Update {
	return tele.Update{
		ID: id,
		Callback: &tele.Callback{
			ID:     "cb",
			Sender: &tele.User{ID: 5},
			Data:   data,
		},
	}
}

// fallbacks records which fallback handler ran.
type fallbacks struct{ hits []string }

func (f *fallbacks) UnknownText() tele.HandlerFunc {
	return func(c tele.Context) error {
		f.hits = append(f.hits, "text:"+c.Text())
		return nil
	}
}

func (f *fallbacks) UnknownCallback() tele.HandlerFunc {
	return func(tele.Context) error {
		f.hits = append(f.hits, "callback")
		return nil
	}
}

func TestCallbackRouteDispatchesByKey(t *testing.T) {
	b := newTestBot(t)
	reg := tg.NewRegistry()
	fb := &fallbacks{}
	_ = reg.RegisterCallback("ask", func(tele.Context) error {
		fb.hits = append(fb.hits, "ask")
		return nil
	})

	route := CallbackRoute(reg, fb)
	if route.Endpoint != tele.OnCallback {
		t.Fatalf("endpoint = %v", route.Endpoint)
	}
	_ = route.Handler(b.NewContext(callbackUpdate(1, "\fask")))
	_ = route.Handler(b.NewContext(callbackUpdate(2, "\fnope|x")))

	if got := strings.Join(fb.hits, ","); got != "ask,callback" {
		t.Fatalf("dispatch order = %s", got)
	}
}

func TestCallbackRoutePropagatesErrors(t *testing.T) {
	b := newTestBot(t)
	reg := tg.NewRegistry()
	boom := errors.New("boom")
	_ = reg.RegisterCallback("ask", func(tele.Context) error { return boom })

	err := CallbackRoute(reg, nil).Handler(b.NewContext(callbackUpdate(1, "\fask")))
	if !errors.Is(err, boom) {
		t.Fatalf("err = %v, want boom", err)
	}
}

func TestTextRouteUsesFallback(t *testing.T) {
	b := newTestBot(t)
	fb := &fallbacks{}

	upd := tele.Update{ID: 3, Message: &tele.Message{Sender: &tele.User{ID: 5}, Text: "pva"}}
	if err := TextRoute(fb).Handler(b.NewContext(upd)); err != nil {
		t.Fatal(err)
	}
	if len(fb.hits) != 1 || fb.hits[0] != "text:pva" {
		t.Fatalf("fallback hits = %v", fb.hits)
	}
	if err := TextRoute(nil).Handler(b.NewContext(upd)); err != nil {
		t.Fatalf("text without fallback: %v", err)
	}
}

func TestCommandRoutesAdminOnly(t *testing.T) {
	b := newTestBot(t)
	reg := tg.NewRegistry()
	var handled, rejected int
	reg.RegisterCommand("/stats", commands.Command{
		Handler:     func(tele.Context) error { handled++; return nil },
		Description: "stats",
		AdminOnly:   true,
	})
	routes := CommandRoutes(reg, CommandRouteOptions{
		AdminID:       42,
		OnAdminReject: func(tele.Context) error { rejected++; return nil },
	})
	if len(routes) != 1 || routes[0].Endpoint != "/stats" {
		t.Fatalf("routes = %+v", routes)
	}

	for i, uid := range []int64{42, 7} {
		upd := tele.Update{ID: 10 + i, Message: &tele.Message{Sender: &tele.User{ID: uid}, Text: "/stats"}}
		_ = routes[0].Handler(b.NewContext(upd))
	}
	if handled != 1 || rejected != 1 {
		t.Fatalf("handled=%d rejected=%d", handled, rejected)
	}
}

func TestHandlerName(t *testing.T) {
	tests := map[string]string{
		"/Start":     "start",
		"":           "unknown",
		" free chat": "free_chat",
	}
	for in, want := range tests {
		if got := handlerName(in); got != want {
			t.Errorf("handlerName(%q) = %q, want %q", in, got, want)
		}
	}
}

type codedErr struct{}

func (codedErr) Error() string { return "coded" }
func (codedErr) Code() string  { return "bad input" }

type plainErr struct{}

func (*plainErr) Error() string { return "plain" }

func TestErrorCode(t *testing.T) {
	tests := []struct {
		err  error
		want string
	}{
		{nil, ""},
		{fmt.Errorf("send: %w", sender.ErrQueueFull), "QUEUE_FULL"},
		{&tele.Error{Code: 403, Description: "Forbidden"}, "TG_403"},
		{fmt.Errorf("wait: %w", context.DeadlineExceeded), "TIMEOUT"},
		{codedErr{}, "BAD_INPUT"},
		{&plainErr{}, "PLAINERR"},
	}
	for _, tt := range tests {
		if got := errorCode(tt.err); got != tt.want {
			t.Errorf("errorCode(%v) = %q, want %q", tt.err, got, tt.want)
		}
	}
}
