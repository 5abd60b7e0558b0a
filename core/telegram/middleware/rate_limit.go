package middleware

import (
	"log/slog"
	"sync"
	"time"

	"github.com/m3rciful/artbot/core/logger"
	tghelpers "github.com/m3rciful/artbot/core/telegram/helpers"

	"golang.org/x/time/rate"
	tele "gopkg.in/telebot.v4"
)

const maxTrackedUsers = 10000

// RateLimitOptions configures behaviour of the rate limit middleware.
type RateLimitOptions struct {
	// Interval is the refill period of one token per user.
	Interval time.Duration
	// Burst is the number of updates a user may send back to back.
	Burst     int
	Exclude   map[string]struct{}
	OnLimited tele.HandlerFunc

	now func() time.Time
}

type userLimiters struct {
	mu     sync.Mutex
	every  rate.Limit
	burst  int
	byUser map[int64]*rate.Limiter
}

func (u *userLimiters) allow(userID int64, now time.Time) bool {
	u.mu.Lock()
	defer u.mu.Unlock()
	lim, ok := u.byUser[userID]
	if !ok {
		if len(u.byUser) >= maxTrackedUsers {
			u.pruneFull(now)
		}
		lim = rate.NewLimiter(u.every, u.burst)
		u.byUser[userID] = lim
	}
	return lim.AllowN(now, 1)
}

// pruneFull forgets users whose bucket has refilled; a fresh limiter behaves the same.
func (u *userLimiters) pruneFull(now time.Time) {
	for id, lim := range u.byUser {
		if lim.TokensAt(now) >= float64(u.burst) {
			delete(u.byUser, id)
		}
	}
}

// UpdateKind classifies an update for rate limit exclusions.
func UpdateKind(upd tele.Update) string {
	switch {
	case upd.Callback != nil:
		return "callback"
	case upd.Message != nil:
		return "message"
	case upd.Query != nil:
		return "inline_query"
	}
	return "other"
}

// RateLimitMiddleware returns a middleware that throttles each user with a token bucket.
func RateLimitMiddleware(opts RateLimitOptions) tele.MiddlewareFunc {
	if opts.Burst <= 0 {
		opts.Burst = 1
	}
	if opts.now == nil {
		opts.now = time.Now
	}
	limiters := &userLimiters{
		every:  rate.Every(opts.Interval),
		burst:  opts.Burst,
		byUser: make(map[int64]*rate.Limiter),
	}
	return func(next tele.HandlerFunc) tele.HandlerFunc {
		return func(c tele.Context) error {
			user := c.Sender()
			if user == nil || opts.Interval <= 0 {
				return next(c)
			}
			kind := UpdateKind(c.Update())
			if _, skip := opts.Exclude[kind]; skip {
				return next(c)
			}
			if limiters.allow(user.ID, opts.now()) {
				return next(c)
			}

			logger.Warn(tghelpers.BuildContext(c), logger.CompTG, "tg.rate_limit",
				slog.String("status", "rate_limited"),
				slog.String("kind", kind),
			)
			if opts.OnLimited != nil {
				_ = opts.OnLimited(c)
			}
			return nil
		}
	}
}
